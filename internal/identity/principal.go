// Package identity derives and validates principals, and provides the
// credentials the call gateway attaches to authenticated requests.
package identity

import (
	"crypto/ed25519"
	"crypto/sha256"
	"encoding/base32"
	"encoding/binary"
	"errors"
	"hash/crc32"
	"strings"
)

// AnonymousPrincipal is the textual form of the fixed anonymous principal.
const AnonymousPrincipal = "2vxsx-fae"

const selfAuthenticatingTag = 0x04

var principalEncoding = base32.StdEncoding.WithPadding(base32.NoPadding)

// PrincipalFromPublicKey derives the self-authenticating principal for an
// ed25519 public key: sha224(key) with a trailing tag byte, rendered in the
// checksummed textual form.
func PrincipalFromPublicKey(pub ed25519.PublicKey) string {
	digest := sha256.Sum224(pub)
	raw := append(digest[:], selfAuthenticatingTag)
	return EncodePrincipal(raw)
}

// EncodePrincipal renders raw principal bytes as lowercase base32 groups of
// five, prefixed with a big-endian CRC32 checksum.
func EncodePrincipal(raw []byte) string {
	buf := make([]byte, 4+len(raw))
	binary.BigEndian.PutUint32(buf, crc32.ChecksumIEEE(raw))
	copy(buf[4:], raw)

	enc := strings.ToLower(principalEncoding.EncodeToString(buf))
	var b strings.Builder
	for i, r := range enc {
		if i > 0 && i%5 == 0 {
			b.WriteByte('-')
		}
		b.WriteRune(r)
	}
	return b.String()
}

// ValidatePrincipal checks the textual form and its checksum.
func ValidatePrincipal(p string) error {
	compact := strings.ToUpper(strings.ReplaceAll(p, "-", ""))
	buf, err := principalEncoding.DecodeString(compact)
	if err != nil || len(buf) < 5 {
		return errors.New("malformed principal")
	}
	if binary.BigEndian.Uint32(buf) != crc32.ChecksumIEEE(buf[4:]) {
		return errors.New("principal checksum mismatch")
	}
	return nil
}
