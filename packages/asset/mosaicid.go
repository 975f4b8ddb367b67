// Package asset contains the identifiers of mosaics and namespaces and their derivation rules.
//
// Mosaic ids always have the top bit cleared and namespace ids always have it set, so any 8 byte identifier can be
// routed to the right resolver without a type tag (see AssetIDFromUint64).
package asset

import (
	"crypto/rand"
	"encoding/binary"

	"github.com/iotaledger/hive.go/stringify"

	"github.com/proximax-storage/sirius-client-go/packages/account"
	"github.com/proximax-storage/sirius-client-go/packages/crypto"
	"github.com/proximax-storage/sirius-client-go/packages/sdkerrors"
	"github.com/proximax-storage/sirius-client-go/packages/types"
)

const topBit = uint64(1) << 63

// region AssetID //////////////////////////////////////////////////////////////////////////////////////////////////////

// AssetIDType distinguishes the two kinds of AssetID.
type AssetIDType uint8

const (
	// MosaicIDType is the type of a MosaicID.
	MosaicIDType AssetIDType = iota

	// NamespaceIDType is the type of a NamespaceID.
	NamespaceIDType
)

// String returns the name of the AssetIDType.
func (a AssetIDType) String() string {
	return [...]string{
		"MosaicID",
		"NamespaceID",
	}[a]
}

// AssetID is an identifier that can be used wherever the network expects a mosaic: either a MosaicID or the
// NamespaceID of a mosaic alias.
type AssetID interface {
	// Type returns the kind of the identifier.
	Type() AssetIDType

	// ID returns the identifier value.
	ID() types.Uint64

	// String returns a human-readable version of the identifier.
	String() string
}

// AssetIDFromUint64 returns a NamespaceID if the top bit of id is set and a MosaicID otherwise.
func AssetIDFromUint64(id types.Uint64) AssetID {
	if id.TopBit() {
		return &NamespaceID{id: id}
	}

	return &MosaicID{id: id}
}

// endregion ///////////////////////////////////////////////////////////////////////////////////////////////////////////

// region MosaicNonce //////////////////////////////////////////////////////////////////////////////////////////////////

// MosaicNonceLength is the amount of bytes of a MosaicNonce.
const MosaicNonceLength = 4

// MosaicNonce is the 4 byte value chosen by a mosaic creator to make the mosaic id owner-unique.
type MosaicNonce [MosaicNonceLength]byte

// NewMosaicNonce creates a MosaicNonce from its little-endian uint32 value.
func NewMosaicNonce(value uint32) (nonce MosaicNonce) {
	binary.LittleEndian.PutUint32(nonce[:], value)

	return nonce
}

// RandomMosaicNonce draws a MosaicNonce from the OS random number generator.
func RandomMosaicNonce() (nonce MosaicNonce, err error) {
	if _, err = rand.Read(nonce[:]); err != nil {
		return nonce, sdkerrors.InvalidInput("nonce", "failed to read randomness: %s", err)
	}

	return nonce, nil
}

// Uint32 returns the little-endian value of the nonce.
func (n MosaicNonce) Uint32() uint32 {
	return binary.LittleEndian.Uint32(n[:])
}

// Bytes returns a copy of the nonce bytes.
func (n MosaicNonce) Bytes() []byte {
	return append([]byte{}, n[:]...)
}

// endregion ///////////////////////////////////////////////////////////////////////////////////////////////////////////

// region MosaicID /////////////////////////////////////////////////////////////////////////////////////////////////////

// MosaicID identifies a mosaic. Its top bit is always 0.
type MosaicID struct {
	id types.Uint64
}

// NewMosaicID wraps an existing mosaic id value.
func NewMosaicID(id types.Uint64) (*MosaicID, error) {
	if id.TopBit() {
		return nil, sdkerrors.InvalidMosaic("mosaic id %s has the namespace bit set", id.Hex())
	}

	return &MosaicID{id: id}, nil
}

// MosaicIDFromHex parses the hex form of a mosaic id.
func MosaicIDFromHex(hexString string) (*MosaicID, error) {
	id, err := types.Uint64FromHex(hexString)
	if err != nil {
		return nil, err
	}

	return NewMosaicID(id)
}

// MosaicIDFromNonceAndOwner derives the id of the mosaic created by owner with the given nonce:
// the first 8 bytes of SHA3-256(nonce || owner public key), read little-endian, with the top bit cleared.
func MosaicIDFromNonceAndOwner(nonce MosaicNonce, owner *account.PublicAccount) *MosaicID {
	return mosaicIDFromNonceAndOwnerKey(nonce, owner.PublicKey)
}

func mosaicIDFromNonceAndOwnerKey(nonce MosaicNonce, ownerPublicKey crypto.PublicKey) *MosaicID {
	digest := crypto.SHA3256(nonce[:], ownerPublicKey[:])

	return &MosaicID{id: types.NewUint64(binary.LittleEndian.Uint64(digest[:8]) &^ topBit)}
}

// Type returns MosaicIDType.
func (m *MosaicID) Type() AssetIDType {
	return MosaicIDType
}

// ID returns the identifier value.
func (m *MosaicID) ID() types.Uint64 {
	return m.id
}

// Equal reports whether both ids are the same.
func (m *MosaicID) Equal(other *MosaicID) bool {
	return m.id.Equal(other.id)
}

// String returns a human-readable version of the MosaicID.
func (m *MosaicID) String() string {
	return stringify.Struct("MosaicID",
		stringify.StructField("id", m.id.Hex()),
	)
}

// endregion ///////////////////////////////////////////////////////////////////////////////////////////////////////////
