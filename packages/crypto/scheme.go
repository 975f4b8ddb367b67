package crypto

import (
	"go.dedis.ch/kyber/v3"
	"go.dedis.ch/kyber/v3/group/edwards25519"

	hiveed25519 "github.com/iotaledger/hive.go/crypto/ed25519"
)

// region SignatureScheme //////////////////////////////////////////////////////////////////////////////////////////////

var (
	// SchemeEd25519SHA3 is Ed25519 with SHA3-512 as its internal hash. It is the scheme of the Sirius networks and the
	// default of every KeyPair.
	SchemeEd25519SHA3 SignatureScheme = ed25519SHA3{}

	// SchemeEd25519SHA2 is RFC 8032 Ed25519 with SHA-512 as its internal hash.
	SchemeEd25519SHA2 SignatureScheme = ed25519SHA2{}
)

// SignatureScheme derives public keys and produces/verifies signatures from 32 byte private keys.
type SignatureScheme interface {
	// Name returns a human-readable name of the scheme.
	Name() string

	// PublicKey derives the public key that belongs to the private key.
	PublicKey(privateKey PrivateKey) PublicKey

	// Sign signs data. The result is deterministic.
	Sign(privateKey PrivateKey, publicKey PublicKey, data []byte) Signature

	// Verify checks that signature was produced over data by the owner of publicKey.
	Verify(publicKey PublicKey, data []byte, signature Signature) bool
}

// endregion ///////////////////////////////////////////////////////////////////////////////////////////////////////////

// region ed25519SHA3 //////////////////////////////////////////////////////////////////////////////////////////////////

var curve = new(edwards25519.Curve)

type ed25519SHA3 struct{}

func (ed25519SHA3) Name() string {
	return "Ed25519-SHA3"
}

func (s ed25519SHA3) PublicKey(privateKey PrivateKey) (publicKey PublicKey) {
	secret, _ := s.expand(privateKey)
	point := curve.Point().Mul(secret, nil)
	copy(publicKey[:], mustMarshal(point))

	return publicKey
}

func (s ed25519SHA3) Sign(privateKey PrivateKey, publicKey PublicKey, data []byte) (signature Signature) {
	secret, prefix := s.expand(privateKey)

	rDigest := SHA3512(prefix, data)
	r := curve.Scalar().SetBytes(rDigest[:])
	encodedR := mustMarshal(curve.Point().Mul(r, nil))

	kDigest := SHA3512(encodedR, publicKey[:], data)
	k := curve.Scalar().SetBytes(kDigest[:])
	S := curve.Scalar().Add(r, curve.Scalar().Mul(k, secret))

	copy(signature[:32], encodedR)
	copy(signature[32:], mustMarshal(S))

	return signature
}

func (s ed25519SHA3) Verify(publicKey PublicKey, data []byte, signature Signature) bool {
	A := curve.Point()
	if err := A.UnmarshalBinary(publicKey[:]); err != nil {
		return false
	}
	R := curve.Point()
	if err := R.UnmarshalBinary(signature[:32]); err != nil {
		return false
	}
	// UnmarshalBinary rejects non-canonical scalars (S >= L)
	S := curve.Scalar()
	if err := S.UnmarshalBinary(signature[32:]); err != nil {
		return false
	}

	kDigest := SHA3512(signature[:32], publicKey[:], data)
	k := curve.Scalar().SetBytes(kDigest[:])

	expected := curve.Point().Add(R, curve.Point().Mul(k, A))

	return curve.Point().Mul(S, nil).Equal(expected)
}

// expand returns the clamped secret scalar and the nonce prefix of a private key.
func (ed25519SHA3) expand(privateKey PrivateKey) (secret kyber.Scalar, prefix []byte) {
	digest := SHA3512(privateKey[:])
	digest[0] &= 248
	digest[31] &= 127
	digest[31] |= 64

	return curve.Scalar().SetBytes(digest[:32]), digest[32:]
}

func mustMarshal(marshaler interface{ MarshalBinary() ([]byte, error) }) []byte {
	bytes, err := marshaler.MarshalBinary()
	if err != nil {
		panic(err)
	}

	return bytes
}

// endregion ///////////////////////////////////////////////////////////////////////////////////////////////////////////

// region ed25519SHA2 //////////////////////////////////////////////////////////////////////////////////////////////////

type ed25519SHA2 struct{}

func (ed25519SHA2) Name() string {
	return "Ed25519-SHA2"
}

func (ed25519SHA2) PublicKey(privateKey PrivateKey) PublicKey {
	return PublicKey(hiveed25519.PrivateKeyFromSeed(privateKey[:]).Public())
}

func (ed25519SHA2) Sign(privateKey PrivateKey, _ PublicKey, data []byte) Signature {
	return Signature(hiveed25519.PrivateKeyFromSeed(privateKey[:]).Sign(data))
}

func (ed25519SHA2) Verify(publicKey PublicKey, data []byte, signature Signature) bool {
	return hiveed25519.PublicKey(publicKey).VerifySignature(data, hiveed25519.Signature(signature))
}

// endregion ///////////////////////////////////////////////////////////////////////////////////////////////////////////
