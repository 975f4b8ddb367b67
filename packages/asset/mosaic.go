package asset

import (
	"github.com/iotaledger/hive.go/stringify"

	"github.com/proximax-storage/sirius-client-go/packages/sdkerrors"
	"github.com/proximax-storage/sirius-client-go/packages/types"
)

const (
	// XPXDivisibility is the divisibility of the network currency.
	XPXDivisibility = 6

	// MaxDivisibility is the largest divisibility a mosaic may have.
	MaxDivisibility = 6
)

// XPXNamespaceID is the id of the "prx.xpx" alias of the network currency.
var XPXNamespaceID = &NamespaceID{id: types.NewUint64(0xbffb42a19116bdf6)}

// region Mosaic ///////////////////////////////////////////////////////////////////////////////////////////////////////

// Mosaic is an amount of an asset.
type Mosaic struct {
	AssetID AssetID
	Amount  types.Uint64
}

// NewMosaic creates a Mosaic.
func NewMosaic(assetID AssetID, amount uint64) (*Mosaic, error) {
	if assetID == nil {
		return nil, sdkerrors.InvalidInput("assetID", "must not be nil")
	}

	return &Mosaic{AssetID: assetID, Amount: types.NewUint64(amount)}, nil
}

// XPX returns an absolute amount of the network currency.
func XPX(amount uint64) *Mosaic {
	return &Mosaic{AssetID: XPXNamespaceID, Amount: types.NewUint64(amount)}
}

// XPXRelative returns a whole-unit amount of the network currency (amount * 10^6 absolute units).
func XPXRelative(amount uint64) *Mosaic {
	return XPX(amount * 1000000)
}

// String returns a human-readable version of the Mosaic.
func (m *Mosaic) String() string {
	return stringify.Struct("Mosaic",
		stringify.StructField("assetID", m.AssetID),
		stringify.StructField("amount", m.Amount.String()),
	)
}

// endregion ///////////////////////////////////////////////////////////////////////////////////////////////////////////
