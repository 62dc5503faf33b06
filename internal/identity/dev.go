package identity

import (
	"context"
	"crypto/ed25519"
	"time"

	"golang.org/x/crypto/argon2"
)

// devSalt keeps passphrase-derived identities stable across runs. It is a
// development convenience only; production identities come from the real
// identity provider.
var devSalt = []byte("vrmarket-dev-identity-v1")

const defaultCredentialTTL = 8 * time.Hour

// DevProvider is an identity provider for local development: it derives a
// deterministic ed25519 identity from a passphrase with argon2id and
// self-issues credentials, standing in for the interactive Internet Identity
// flow.
type DevProvider struct {
	priv ed25519.PrivateKey
	ttl  time.Duration
}

// NewDevProvider derives the identity for passphrase. The same passphrase
// always yields the same principal.
func NewDevProvider(passphrase []byte) *DevProvider {
	seed := argon2.IDKey(passphrase, devSalt, 1, 64*1024, 4, ed25519.SeedSize)
	return &DevProvider{priv: ed25519.NewKeyFromSeed(seed), ttl: defaultCredentialTTL}
}

// Login issues a fresh credential for the derived identity.
func (p *DevProvider) Login(ctx context.Context) (*Credential, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return IssueCredential(p.priv, p.ttl)
}

// Logout is a no-op: dev credentials are bearer tokens with a TTL and hold
// no provider-side state.
func (p *DevProvider) Logout(ctx context.Context) error {
	return nil
}
