package crypto

import (
	"encoding/hex"
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/proximax-storage/sirius-client-go/packages/sdkerrors"
)

const (
	testPrivateKey = "26b64cb10f005e5988a36744ca19e20d835ccc7c105aaa5f3b212da593180930"
	testPublicKey  = "c2f93346e27ce6ad1a9f8f5e3066f8326593a406bdf357acb041e2f9ab402efe"
)

func TestHashes(t *testing.T) {
	sha3 := SHA3256([]byte{})
	assert.Equal(t, "a7ffc6f8bf1ed76651c14756a061d662f580ff4de43b49fa82d80a4b80f8434a", hex.EncodeToString(sha3[:]))

	// chunks are hashed as their concatenation
	assert.Equal(t, SHA3256([]byte("abc")), SHA3256([]byte("a"), []byte("bc")))

	ripemd := RIPEMD160([]byte{})
	assert.Equal(t, "9c1185a5c5e9fc54612808977ee8f548b2258d31", hex.EncodeToString(ripemd[:]))
}

func TestBase32(t *testing.T) {
	data := []byte{0xa8, 0xaa, 0x4f, 0x10, 0x5d}
	encoded := Base32Encode(data)
	assert.Equal(t, "VCVE6EC5", encoded)

	decoded, err := Base32Decode(encoded)
	require.NoError(t, err)
	assert.Equal(t, data, decoded)

	_, err = Base32Decode("VCVE6EC1")
	assert.Error(t, err)
}

func TestKeyPairFromPrivateKey(t *testing.T) {
	keyPair, err := KeyPairFromPrivateKeyHex(testPrivateKey, nil)
	require.NoError(t, err)

	assert.Equal(t, testPublicKey, keyPair.PublicKey.Hex())
	assert.Equal(t, testPrivateKey, keyPair.PrivateKey().Hex())
	assert.Equal(t, SchemeEd25519SHA3, keyPair.Scheme())
}

func TestKeyPairSignData(t *testing.T) {
	keyPair, err := KeyPairFromPrivateKeyHex(testPrivateKey, SchemeEd25519SHA3)
	require.NoError(t, err)

	data := []byte("proximax is wonderful!")
	signature := keyPair.Sign(data)
	assert.Equal(t,
		"80822c0e05f7e390b35f77af8e346cef7a6b67c99d788c0903bedc257d11407c4e00a21aeac28fb6de4060ce8eea4d43521a546a48c683bd099c82cdd9fed304",
		hex.EncodeToString(signature[:]),
	)
	assert.True(t, keyPair.Verify(data, signature))
	assert.True(t, SchemeEd25519SHA3.Verify(keyPair.PublicKey, data, signature))

	// deterministic
	assert.Equal(t, signature, keyPair.Sign(data))

	assert.False(t, keyPair.Verify([]byte("proximax is wonderful?"), signature))
	tampered := signature
	tampered[40] ^= 0x01
	assert.False(t, keyPair.Verify(data, tampered))
}

func TestSchemeEd25519SHA2(t *testing.T) {
	// RFC 8032, test 1
	keyPair, err := KeyPairFromPrivateKeyHex("9d61b19deffd5a60ba844af492ec2cc44449c5697b326919703bac031cae7f60", SchemeEd25519SHA2)
	require.NoError(t, err)
	assert.Equal(t, "d75a980182b10ab7d54bfed3c964073a0ee172f3daa62325af021a68f707511a", keyPair.PublicKey.Hex())

	signature := keyPair.Sign([]byte{})
	assert.Equal(t, "e5564300c360ac729086e2cc806e828a", hex.EncodeToString(signature[:16]))
	assert.True(t, keyPair.Verify([]byte{}, signature))

	// the schemes are not interchangeable
	assert.False(t, SchemeEd25519SHA3.Verify(keyPair.PublicKey, []byte{}, signature))
}

func TestGenerateKeyPair(t *testing.T) {
	first, err := GenerateKeyPair(nil)
	require.NoError(t, err)
	second, err := GenerateKeyPair(nil)
	require.NoError(t, err)

	assert.NotEqual(t, first.PublicKey, second.PublicKey)

	signature := first.Sign([]byte("data"))
	assert.True(t, first.Verify([]byte("data"), signature))
	assert.False(t, second.Verify([]byte("data"), signature))
}

func TestKeyPairDestroy(t *testing.T) {
	keyPair, err := KeyPairFromPrivateKeyHex(testPrivateKey, nil)
	require.NoError(t, err)

	keyPair.Destroy()
	assert.Equal(t, PrivateKey{}, keyPair.PrivateKey())
	assert.NotContains(t, keyPair.String(), testPrivateKey)
}

func TestMalformedKeys(t *testing.T) {
	_, err := PrivateKeyFromHex("abcd")
	assert.True(t, errors.Is(err, sdkerrors.ErrInvalidInput))

	_, err = PublicKeyFromHex("zz" + testPublicKey[2:])
	assert.True(t, errors.Is(err, sdkerrors.ErrInvalidInput))

	_, err = PublicKeyFromBytes(make([]byte, 31))
	assert.True(t, errors.Is(err, sdkerrors.ErrInvalidInput))
}
