// Package crypto wraps the cryptographic primitives used by the transaction core: SHA3-256, SHA3-512, RIPEMD-160,
// RFC 4648 base32 and the Ed25519 signature schemes. It carries no policy of its own.
package crypto

import (
	"github.com/cockroachdb/errors"
	"github.com/multiformats/go-base32"
	"golang.org/x/crypto/ripemd160"
	"golang.org/x/crypto/sha3"
)

const (
	// SHA3256Size is the digest size of SHA3-256.
	SHA3256Size = 32
	// RIPEMD160Size is the digest size of RIPEMD-160.
	RIPEMD160Size = ripemd160.Size
)

// base32Encoding is the RFC 4648 alphabet without padding.
var base32Encoding = base32.StdEncoding.WithPadding(base32.NoPadding)

// SHA3256 returns the SHA3-256 digest of the concatenation of the given byte slices.
func SHA3256(data ...[]byte) (digest [SHA3256Size]byte) {
	hash := sha3.New256()
	for _, chunk := range data {
		_, _ = hash.Write(chunk)
	}
	copy(digest[:], hash.Sum(nil))

	return digest
}

// SHA3512 returns the SHA3-512 digest of the concatenation of the given byte slices.
func SHA3512(data ...[]byte) (digest [64]byte) {
	hash := sha3.New512()
	for _, chunk := range data {
		_, _ = hash.Write(chunk)
	}
	copy(digest[:], hash.Sum(nil))

	return digest
}

// RIPEMD160 returns the RIPEMD-160 digest of data.
func RIPEMD160(data []byte) (digest [RIPEMD160Size]byte) {
	hash := ripemd160.New()
	_, _ = hash.Write(data)
	copy(digest[:], hash.Sum(nil))

	return digest
}

// Base32Encode encodes data with the RFC 4648 alphabet and strips the padding.
func Base32Encode(data []byte) string {
	return base32Encoding.EncodeToString(data)
}

// Base32Decode decodes an unpadded RFC 4648 string.
func Base32Decode(encoded string) ([]byte, error) {
	decoded, err := base32Encoding.DecodeString(encoded)
	if err != nil {
		return nil, errors.Errorf("failed to decode base32 string: %w", err)
	}

	return decoded, nil
}
