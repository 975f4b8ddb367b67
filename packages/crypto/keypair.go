package crypto

import (
	"crypto/rand"
	"encoding/hex"
	"strings"

	"github.com/iotaledger/hive.go/stringify"

	"github.com/proximax-storage/sirius-client-go/packages/sdkerrors"
)

const (
	// PrivateKeySize is the size of a private key.
	PrivateKeySize = 32
	// PublicKeySize is the size of a public key.
	PublicKeySize = 32
	// SignatureSize is the size of a signature.
	SignatureSize = 64
)

// region PrivateKey ///////////////////////////////////////////////////////////////////////////////////////////////////

// PrivateKey is the 32 byte secret of a KeyPair.
type PrivateKey [PrivateKeySize]byte

// PrivateKeyFromHex parses a 64 character hex string.
func PrivateKeyFromHex(hexString string) (privateKey PrivateKey, err error) {
	err = decodeFixedHex("privateKey", hexString, privateKey[:])

	return
}

// Hex returns the lowercase hex form of the key.
func (p PrivateKey) Hex() string {
	return hex.EncodeToString(p[:])
}

// endregion ///////////////////////////////////////////////////////////////////////////////////////////////////////////

// region PublicKey ////////////////////////////////////////////////////////////////////////////////////////////////////

// EmptyPublicKey is the zero value of a PublicKey.
var EmptyPublicKey PublicKey

// PublicKey is the 32 byte public half of a KeyPair.
type PublicKey [PublicKeySize]byte

// PublicKeyFromHex parses a 64 character hex string.
func PublicKeyFromHex(hexString string) (publicKey PublicKey, err error) {
	err = decodeFixedHex("publicKey", hexString, publicKey[:])

	return
}

// PublicKeyFromBytes copies 32 bytes into a PublicKey.
func PublicKeyFromBytes(bytes []byte) (publicKey PublicKey, err error) {
	if len(bytes) != PublicKeySize {
		return publicKey, sdkerrors.InvalidInput("publicKey", "expected %d bytes, got %d", PublicKeySize, len(bytes))
	}
	copy(publicKey[:], bytes)

	return publicKey, nil
}

// IsEmpty reports whether all bytes of the key are zero.
func (p PublicKey) IsEmpty() bool {
	return p == EmptyPublicKey
}

// Bytes returns a copy of the key bytes.
func (p PublicKey) Bytes() []byte {
	return append([]byte{}, p[:]...)
}

// Hex returns the lowercase hex form of the key.
func (p PublicKey) Hex() string {
	return hex.EncodeToString(p[:])
}

// String returns the uppercase hex form used by the node REST API.
func (p PublicKey) String() string {
	return strings.ToUpper(p.Hex())
}

// endregion ///////////////////////////////////////////////////////////////////////////////////////////////////////////

// region Signature ////////////////////////////////////////////////////////////////////////////////////////////////////

// EmptySignature is the placeholder written into unsigned payloads.
var EmptySignature Signature

// Signature is a 64 byte Ed25519 signature.
type Signature [SignatureSize]byte

// SignatureFromHex parses a 128 character hex string.
func SignatureFromHex(hexString string) (signature Signature, err error) {
	err = decodeFixedHex("signature", hexString, signature[:])

	return
}

// Bytes returns a copy of the signature bytes.
func (s Signature) Bytes() []byte {
	return append([]byte{}, s[:]...)
}

// String returns the uppercase hex form used by the node REST API.
func (s Signature) String() string {
	return strings.ToUpper(hex.EncodeToString(s[:]))
}

// endregion ///////////////////////////////////////////////////////////////////////////////////////////////////////////

// region KeyPair //////////////////////////////////////////////////////////////////////////////////////////////////////

// KeyPair is an Ed25519 private/public key pair bound to a SignatureScheme.
type KeyPair struct {
	privateKey PrivateKey
	PublicKey  PublicKey
	scheme     SignatureScheme
}

// NewKeyPair derives the public key of privateKey. A nil scheme selects SchemeEd25519SHA3.
func NewKeyPair(privateKey PrivateKey, scheme SignatureScheme) *KeyPair {
	if scheme == nil {
		scheme = SchemeEd25519SHA3
	}

	return &KeyPair{
		privateKey: privateKey,
		PublicKey:  scheme.PublicKey(privateKey),
		scheme:     scheme,
	}
}

// KeyPairFromPrivateKeyHex parses a hex private key and derives its KeyPair.
func KeyPairFromPrivateKeyHex(hexString string, scheme SignatureScheme) (*KeyPair, error) {
	privateKey, err := PrivateKeyFromHex(hexString)
	if err != nil {
		return nil, err
	}

	return NewKeyPair(privateKey, scheme), nil
}

// GenerateKeyPair creates a KeyPair from 32 bytes of OS randomness.
func GenerateKeyPair(scheme SignatureScheme) (*KeyPair, error) {
	var privateKey PrivateKey
	if _, err := rand.Read(privateKey[:]); err != nil {
		return nil, sdkerrors.InvalidInput("privateKey", "failed to read randomness: %s", err)
	}

	return NewKeyPair(privateKey, scheme), nil
}

// PrivateKey returns the private key.
func (k *KeyPair) PrivateKey() PrivateKey {
	return k.privateKey
}

// Scheme returns the SignatureScheme of the KeyPair.
func (k *KeyPair) Scheme() SignatureScheme {
	return k.scheme
}

// Sign signs data with the private key.
func (k *KeyPair) Sign(data []byte) Signature {
	return k.scheme.Sign(k.privateKey, k.PublicKey, data)
}

// Verify checks a signature of data against the public key.
func (k *KeyPair) Verify(data []byte, signature Signature) bool {
	return k.scheme.Verify(k.PublicKey, data, signature)
}

// Destroy overwrites the private key with zeros. The KeyPair must not be used for signing afterwards.
func (k *KeyPair) Destroy() {
	for i := range k.privateKey {
		k.privateKey[i] = 0
	}
}

// String returns a human-readable version of the KeyPair that never contains the private key.
func (k *KeyPair) String() string {
	return stringify.Struct("KeyPair",
		stringify.StructField("publicKey", k.PublicKey.Hex()),
		stringify.StructField("scheme", k.scheme.Name()),
	)
}

// endregion ///////////////////////////////////////////////////////////////////////////////////////////////////////////

func decodeFixedHex(field, hexString string, target []byte) error {
	if len(hexString) != 2*len(target) {
		return sdkerrors.InvalidInput(field, "expected %d hex characters, got %d", 2*len(target), len(hexString))
	}
	if _, err := hex.Decode(target, []byte(hexString)); err != nil {
		return sdkerrors.InvalidInput(field, "malformed hex %q", hexString)
	}

	return nil
}
