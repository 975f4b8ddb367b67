package asset

import (
	"github.com/iotaledger/hive.go/stringify"

	"github.com/proximax-storage/sirius-client-go/packages/sdkerrors"
	"github.com/proximax-storage/sirius-client-go/packages/types"
)

// region MosaicPropertyID /////////////////////////////////////////////////////////////////////////////////////////////

// MosaicPropertyID identifies a mosaic property on the wire.
type MosaicPropertyID uint8

const (
	// MosaicPropertyFlagsID holds the flag bits.
	MosaicPropertyFlagsID MosaicPropertyID = iota

	// MosaicPropertyDivisibilityID holds the divisibility.
	MosaicPropertyDivisibilityID

	// MosaicPropertyDurationID holds the duration in blocks.
	MosaicPropertyDurationID
)

// String returns the name of the MosaicPropertyID.
func (m MosaicPropertyID) String() string {
	switch m {
	case MosaicPropertyFlagsID:
		return "Flags"
	case MosaicPropertyDivisibilityID:
		return "Divisibility"
	case MosaicPropertyDurationID:
		return "Duration"
	default:
		return "Unknown"
	}
}

// endregion ///////////////////////////////////////////////////////////////////////////////////////////////////////////

// region MosaicFlags //////////////////////////////////////////////////////////////////////////////////////////////////

// MosaicFlags is the bit set stored in the flags property.
type MosaicFlags uint8

const (
	// MosaicFlagNone has no flag set.
	MosaicFlagNone MosaicFlags = 0

	// MosaicFlagSupplyMutable allows supply changes by the owner.
	MosaicFlagSupplyMutable MosaicFlags = 1 << 0

	// MosaicFlagTransferable allows transfers between third parties.
	MosaicFlagTransferable MosaicFlags = 1 << 1
)

// Has reports whether flag is set.
func (f MosaicFlags) Has(flag MosaicFlags) bool {
	return f&flag == flag
}

// endregion ///////////////////////////////////////////////////////////////////////////////////////////////////////////

// region MosaicProperty ///////////////////////////////////////////////////////////////////////////////////////////////

// MosaicProperty is a single (id, value) entry of the optional property list.
type MosaicProperty struct {
	ID    MosaicPropertyID
	Value types.Uint64
}

// NewMosaicProperty creates a MosaicProperty. Only the ids 0 to 2 exist.
func NewMosaicProperty(id MosaicPropertyID, value types.Uint64) (*MosaicProperty, error) {
	if id > MosaicPropertyDurationID {
		return nil, sdkerrors.InvalidMosaic("unknown property id %d", id)
	}

	return &MosaicProperty{ID: id, Value: value}, nil
}

// endregion ///////////////////////////////////////////////////////////////////////////////////////////////////////////

// region MosaicProperties /////////////////////////////////////////////////////////////////////////////////////////////

// MosaicProperties are the properties of a mosaic definition.
type MosaicProperties struct {
	SupplyMutable bool
	Transferable  bool
	Divisibility  uint8
	Duration      types.Uint64
}

// NewMosaicProperties creates MosaicProperties. A zero duration means the mosaic never expires.
func NewMosaicProperties(supplyMutable, transferable bool, divisibility uint8, duration uint64) (*MosaicProperties, error) {
	if divisibility > MaxDivisibility {
		return nil, sdkerrors.InvalidMosaic("divisibility %d is out of range [0, %d]", divisibility, MaxDivisibility)
	}

	return &MosaicProperties{
		SupplyMutable: supplyMutable,
		Transferable:  transferable,
		Divisibility:  divisibility,
		Duration:      types.NewUint64(duration),
	}, nil
}

// MosaicPropertiesFromList rebuilds MosaicProperties from the property list of the REST API.
func MosaicPropertiesFromList(properties []*MosaicProperty) (*MosaicProperties, error) {
	if len(properties) == 0 {
		return nil, sdkerrors.InvalidMosaic("missing properties")
	}

	result := &MosaicProperties{}
	for _, property := range properties {
		switch property.ID {
		case MosaicPropertyFlagsID:
			flags := MosaicFlags(property.Value.Uint64())
			result.SupplyMutable = flags.Has(MosaicFlagSupplyMutable)
			result.Transferable = flags.Has(MosaicFlagTransferable)
		case MosaicPropertyDivisibilityID:
			if property.Value.Uint64() > MaxDivisibility {
				return nil, sdkerrors.InvalidMosaic("divisibility %d is out of range [0, %d]", property.Value.Uint64(), MaxDivisibility)
			}
			result.Divisibility = uint8(property.Value.Uint64())
		case MosaicPropertyDurationID:
			result.Duration = property.Value
		default:
			return nil, sdkerrors.InvalidMosaic("unknown property id %d", property.ID)
		}
	}

	return result, nil
}

// Flags returns the flag bits.
func (m *MosaicProperties) Flags() (flags MosaicFlags) {
	if m.SupplyMutable {
		flags |= MosaicFlagSupplyMutable
	}
	if m.Transferable {
		flags |= MosaicFlagTransferable
	}

	return flags
}

// OptionalProperties returns the entries that follow flags and divisibility on the wire.
func (m *MosaicProperties) OptionalProperties() []*MosaicProperty {
	if m.Duration.IsZero() {
		return nil
	}

	return []*MosaicProperty{{ID: MosaicPropertyDurationID, Value: m.Duration}}
}

// String returns a human-readable version of the MosaicProperties.
func (m *MosaicProperties) String() string {
	return stringify.Struct("MosaicProperties",
		stringify.StructField("supplyMutable", m.SupplyMutable),
		stringify.StructField("transferable", m.Transferable),
		stringify.StructField("divisibility", m.Divisibility),
		stringify.StructField("duration", m.Duration.String()),
	)
}

// endregion ///////////////////////////////////////////////////////////////////////////////////////////////////////////
