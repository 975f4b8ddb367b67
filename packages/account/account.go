// Package account binds key pairs to a network: an Account can sign, a PublicAccount can only verify.
package account

import (
	"github.com/iotaledger/hive.go/stringify"

	"github.com/proximax-storage/sirius-client-go/packages/address"
	"github.com/proximax-storage/sirius-client-go/packages/crypto"
	"github.com/proximax-storage/sirius-client-go/packages/sdkerrors"
)

// region PublicAccount ////////////////////////////////////////////////////////////////////////////////////////////////

// PublicAccount is the public key of an account together with its Address.
type PublicAccount struct {
	PublicKey crypto.PublicKey
	Address   *address.Address
	scheme    crypto.SignatureScheme
}

// NewPublicAccount derives the PublicAccount of publicKey on the given network.
func NewPublicAccount(publicKey crypto.PublicKey, networkType address.NetworkType) *PublicAccount {
	return &PublicAccount{
		PublicKey: publicKey,
		Address:   address.FromPublicKey(publicKey, networkType),
		scheme:    crypto.SchemeEd25519SHA3,
	}
}

// PublicAccountFromHex parses a hex public key and derives its PublicAccount.
func PublicAccountFromHex(publicKeyHex string, networkType address.NetworkType) (*PublicAccount, error) {
	if !networkType.IsValid() {
		return nil, sdkerrors.InvalidInput("networkType", "unsupported network %d", networkType)
	}

	publicKey, err := crypto.PublicKeyFromHex(publicKeyHex)
	if err != nil {
		return nil, err
	}

	return NewPublicAccount(publicKey, networkType), nil
}

// WithScheme returns a copy of the PublicAccount that verifies signatures with the given scheme.
func (p *PublicAccount) WithScheme(scheme crypto.SignatureScheme) *PublicAccount {
	return &PublicAccount{
		PublicKey: p.PublicKey,
		Address:   p.Address,
		scheme:    scheme,
	}
}

// NetworkType returns the network of the account.
func (p *PublicAccount) NetworkType() address.NetworkType {
	return p.Address.NetworkType()
}

// VerifySignature checks that signature was produced over data by this account.
func (p *PublicAccount) VerifySignature(data []byte, signature crypto.Signature) bool {
	return p.scheme.Verify(p.PublicKey, data, signature)
}

// Equal reports whether both accounts have the same key and address.
func (p *PublicAccount) Equal(other *PublicAccount) bool {
	return p.PublicKey == other.PublicKey && p.Address.Equal(other.Address)
}

// String returns a human-readable version of the PublicAccount.
func (p *PublicAccount) String() string {
	return stringify.Struct("PublicAccount",
		stringify.StructField("publicKey", p.PublicKey.Hex()),
		stringify.StructField("address", p.Address.Raw()),
	)
}

// endregion ///////////////////////////////////////////////////////////////////////////////////////////////////////////

// region Account //////////////////////////////////////////////////////////////////////////////////////////////////////

// Account owns a KeyPair. Its Address is fully determined by the public key and the network.
type Account struct {
	*PublicAccount

	keyPair *crypto.KeyPair
}

// New creates an Account from a random private key. A nil scheme selects crypto.SchemeEd25519SHA3.
func New(networkType address.NetworkType, scheme crypto.SignatureScheme) (*Account, error) {
	keyPair, err := crypto.GenerateKeyPair(scheme)
	if err != nil {
		return nil, err
	}

	return FromKeyPair(keyPair, networkType)
}

// FromPrivateKey creates an Account from a hex private key.
func FromPrivateKey(privateKeyHex string, networkType address.NetworkType, scheme crypto.SignatureScheme) (*Account, error) {
	keyPair, err := crypto.KeyPairFromPrivateKeyHex(privateKeyHex, scheme)
	if err != nil {
		return nil, err
	}

	return FromKeyPair(keyPair, networkType)
}

// FromKeyPair binds an existing KeyPair to a network.
func FromKeyPair(keyPair *crypto.KeyPair, networkType address.NetworkType) (*Account, error) {
	if !networkType.IsValid() || networkType == address.AliasAddress {
		return nil, sdkerrors.InvalidInput("networkType", "unsupported network %d", networkType)
	}

	return &Account{
		PublicAccount: NewPublicAccount(keyPair.PublicKey, networkType).WithScheme(keyPair.Scheme()),
		keyPair:       keyPair,
	}, nil
}

// KeyPair returns the KeyPair of the account.
func (a *Account) KeyPair() *crypto.KeyPair {
	return a.keyPair
}

// SignData signs arbitrary data with the private key.
func (a *Account) SignData(data []byte) crypto.Signature {
	return a.keyPair.Sign(data)
}

// Destroy zeroes the private key.
func (a *Account) Destroy() {
	a.keyPair.Destroy()
}

// String returns a human-readable version of the Account that never contains the private key.
func (a *Account) String() string {
	return stringify.Struct("Account",
		stringify.StructField("publicAccount", a.PublicAccount),
		stringify.StructField("scheme", a.keyPair.Scheme().Name()),
	)
}

// endregion ///////////////////////////////////////////////////////////////////////////////////////////////////////////
