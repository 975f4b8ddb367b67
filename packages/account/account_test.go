package account

import (
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/proximax-storage/sirius-client-go/packages/address"
	"github.com/proximax-storage/sirius-client-go/packages/crypto"
	"github.com/proximax-storage/sirius-client-go/packages/sdkerrors"
)

const testPrivateKey = "26b64cb10f005e5988a36744ca19e20d835ccc7c105aaa5f3b212da593180930"

func TestFromPrivateKey(t *testing.T) {
	account, err := FromPrivateKey(testPrivateKey, address.PrivateTest, nil)
	require.NoError(t, err)

	assert.Equal(t, "WCTVW23D2MN5VE4AQ4TZIDZENGNOZXPRPSIBCI5Q", account.Address.Raw())
	assert.Equal(t, "c2f93346e27ce6ad1a9f8f5e3066f8326593a406bdf357acb041e2f9ab402efe", account.PublicKey.Hex())
	assert.Equal(t, address.PrivateTest, account.NetworkType())
}

func TestSignData(t *testing.T) {
	account, err := FromPrivateKey(testPrivateKey, address.PrivateTest, nil)
	require.NoError(t, err)

	data := []byte("proximax is wonderful!")
	signature := account.SignData(data)

	assert.True(t, account.VerifySignature(data, signature))

	publicAccount, err := PublicAccountFromHex(account.PublicKey.Hex(), address.PrivateTest)
	require.NoError(t, err)
	assert.True(t, publicAccount.VerifySignature(data, signature))
	assert.False(t, publicAccount.VerifySignature([]byte("other"), signature))
	assert.True(t, publicAccount.Equal(account.PublicAccount))
}

func TestAddressRoundTripForRandomAccounts(t *testing.T) {
	for _, networkType := range []address.NetworkType{address.Public, address.PublicTest, address.Private, address.PrivateTest, address.Mijin, address.MijinTest} {
		account, err := New(networkType, nil)
		require.NoError(t, err)

		decoded, err := address.FromEncoded(address.FromPublicKey(account.PublicKey, networkType).Encoded())
		require.NoError(t, err)
		assert.True(t, account.Address.Equal(decoded))
	}
}

func TestSchemeIsCarriedToPublicAccount(t *testing.T) {
	account, err := New(address.PublicTest, crypto.SchemeEd25519SHA2)
	require.NoError(t, err)

	signature := account.SignData([]byte("data"))
	assert.True(t, account.VerifySignature([]byte("data"), signature))
	assert.True(t, crypto.SchemeEd25519SHA2.Verify(account.PublicKey, []byte("data"), signature))
}

func TestInvalidNetwork(t *testing.T) {
	_, err := FromPrivateKey(testPrivateKey, address.NetworkType(0x01), nil)
	assert.True(t, errors.Is(err, sdkerrors.ErrInvalidInput))

	_, err = PublicAccountFromHex("c2f9", address.PublicTest)
	assert.True(t, errors.Is(err, sdkerrors.ErrInvalidInput))
}

func TestDestroy(t *testing.T) {
	account, err := FromPrivateKey(testPrivateKey, address.PrivateTest, nil)
	require.NoError(t, err)

	account.Destroy()
	assert.Equal(t, crypto.PrivateKey{}, account.KeyPair().PrivateKey())
}
