package identity

import (
	"crypto/ed25519"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Credential is the opaque handle produced by a successful login: a stable
// principal plus a bearer token the transport attaches to authenticated
// calls.
type Credential struct {
	Principal string
	Token     string
	Expires   time.Time
}

var (
	ErrInvalidCredential = errors.New("invalid credential")
	ErrCredentialExpired = errors.New("credential expired")
)

// IssueCredential signs a self-certifying bearer token with the identity's
// ed25519 key. The token carries the public key, so a verifier needs no key
// registry: it checks the signature against the embedded key and re-derives
// the principal from it.
func IssueCredential(priv ed25519.PrivateKey, ttl time.Duration) (*Credential, error) {
	pub := priv.Public().(ed25519.PublicKey)
	principal := PrincipalFromPublicKey(pub)
	expires := time.Now().Add(ttl)

	claims := jwt.MapClaims{
		"sub": principal,
		"pub": hex.EncodeToString(pub),
		"iat": jwt.NewNumericDate(time.Now()),
		"exp": jwt.NewNumericDate(expires),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodEdDSA, claims).SignedString(priv)
	if err != nil {
		return nil, fmt.Errorf("signing credential: %w", err)
	}
	return &Credential{Principal: principal, Token: token, Expires: expires}, nil
}

// VerifyCredential checks a bearer token's signature against its embedded
// public key and confirms the subject is the principal that key derives to.
// Returns the verified principal.
func VerifyCredential(token string) (string, error) {
	var pub ed25519.PublicKey

	parsed, err := jwt.Parse(token, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodEd25519); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		claims, ok := t.Claims.(jwt.MapClaims)
		if !ok {
			return nil, ErrInvalidCredential
		}
		pubHex, _ := claims["pub"].(string)
		raw, err := hex.DecodeString(pubHex)
		if err != nil || len(raw) != ed25519.PublicKeySize {
			return nil, ErrInvalidCredential
		}
		pub = ed25519.PublicKey(raw)
		return pub, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return "", ErrCredentialExpired
		}
		return "", fmt.Errorf("%w: %v", ErrInvalidCredential, err)
	}

	sub, err := parsed.Claims.GetSubject()
	if err != nil || sub != PrincipalFromPublicKey(pub) {
		return "", ErrInvalidCredential
	}
	return sub, nil
}
