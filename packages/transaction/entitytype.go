package transaction

import (
	"fmt"
)

// region EntityType ///////////////////////////////////////////////////////////////////////////////////////////////////

// EntityType is the 2 byte code of a transaction type as the network defines it.
type EntityType uint16

const (
	// TransferType is the code of a Transfer.
	TransferType EntityType = 0x4154
	// RegisterNamespaceType is the code of a RegisterNamespace.
	RegisterNamespaceType EntityType = 0x414e
	// AddressAliasType is the code of an AddressAlias.
	AddressAliasType EntityType = 0x424e
	// MosaicAliasType is the code of a MosaicAlias.
	MosaicAliasType EntityType = 0x434e
	// MosaicDefinitionType is the code of a MosaicDefinition.
	MosaicDefinitionType EntityType = 0x414d
	// MosaicSupplyChangeType is the code of a MosaicSupplyChange.
	MosaicSupplyChangeType EntityType = 0x424d
	// ModifyMultisigType is the code of a ModifyMultisig.
	ModifyMultisigType EntityType = 0x4155
	// AggregateCompletedType is the code of a complete Aggregate.
	AggregateCompletedType EntityType = 0x4141
	// AggregateBondedType is the code of a bonded Aggregate.
	AggregateBondedType EntityType = 0x4241
	// HashLockType is the code of a HashLock.
	HashLockType EntityType = 0x4148
	// AccountPropertiesMosaicType is the code of an AccountPropertiesMosaic.
	AccountPropertiesMosaicType EntityType = 0x4250
	// AccountMetadataV2Type is the code of an account Metadata.
	AccountMetadataV2Type EntityType = 0x413f
	// MosaicMetadataV2Type is the code of a mosaic Metadata.
	MosaicMetadataV2Type EntityType = 0x423f
	// NamespaceMetadataV2Type is the code of a namespace Metadata.
	NamespaceMetadataV2Type EntityType = 0x433f
)

var entityTypeNames = map[EntityType]string{
	TransferType:                "Transfer",
	RegisterNamespaceType:       "RegisterNamespace",
	AddressAliasType:            "AddressAlias",
	MosaicAliasType:             "MosaicAlias",
	MosaicDefinitionType:        "MosaicDefinition",
	MosaicSupplyChangeType:      "MosaicSupplyChange",
	ModifyMultisigType:          "ModifyMultisig",
	AggregateCompletedType:      "AggregateCompleted",
	AggregateBondedType:         "AggregateBonded",
	HashLockType:                "HashLock",
	AccountPropertiesMosaicType: "AccountPropertiesMosaic",
	AccountMetadataV2Type:       "AccountMetadataV2",
	MosaicMetadataV2Type:        "MosaicMetadataV2",
	NamespaceMetadataV2Type:     "NamespaceMetadataV2",
}

var entityVersions = map[EntityType]EntityVersion{
	TransferType:                3,
	RegisterNamespaceType:       2,
	AddressAliasType:            1,
	MosaicAliasType:             1,
	MosaicDefinitionType:        3,
	MosaicSupplyChangeType:      2,
	ModifyMultisigType:          3,
	AggregateCompletedType:      2,
	AggregateBondedType:         2,
	HashLockType:                1,
	AccountPropertiesMosaicType: 1,
	AccountMetadataV2Type:       1,
	MosaicMetadataV2Type:        1,
	NamespaceMetadataV2Type:     1,
}

// Version returns the entity version this module writes for the type.
func (e EntityType) Version() EntityVersion {
	return entityVersions[e]
}

// IsAggregate reports whether the type is one of the aggregate envelopes.
func (e EntityType) IsAggregate() bool {
	return e == AggregateCompletedType || e == AggregateBondedType
}

// IsKnown reports whether the type is supported by this module.
func (e EntityType) IsKnown() bool {
	_, exists := entityTypeNames[e]

	return exists
}

// String returns the name of the EntityType.
func (e EntityType) String() string {
	if name, exists := entityTypeNames[e]; exists {
		return name
	}

	return fmt.Sprintf("EntityType(%#04x)", uint16(e))
}

// endregion ///////////////////////////////////////////////////////////////////////////////////////////////////////////

// EntityVersion is the per-type layout version carried in the low byte of the version field.
type EntityVersion uint8
