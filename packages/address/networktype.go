package address

import (
	"strings"

	"github.com/proximax-storage/sirius-client-go/packages/sdkerrors"
)

// region NetworkType //////////////////////////////////////////////////////////////////////////////////////////////////

const (
	// NotSupportedNet is the zero value of a NetworkType.
	NotSupportedNet NetworkType = 0

	// Public is the public main network (addresses start with X).
	Public NetworkType = 0xb8

	// PublicTest is the public test network (addresses start with V).
	PublicTest NetworkType = 0xa8

	// Private is the private main network (addresses start with Z).
	Private NetworkType = 0xc8

	// PrivateTest is the private test network (addresses start with W).
	PrivateTest NetworkType = 0xb0

	// Mijin is the mijin network (addresses start with M).
	Mijin NetworkType = 0x60

	// MijinTest is the mijin test network (addresses start with S).
	MijinTest NetworkType = 0x90

	// AliasAddress marks an address that is a namespace alias instead of a key-derived address.
	AliasAddress NetworkType = 0x91
)

// NetworkType is the 8-bit network tag that prefixes every address and fills the high byte of every transaction
// version.
type NetworkType uint8

var networkTypeNames = map[NetworkType]string{
	Public:       "PUBLIC",
	PublicTest:   "PUBLIC_TEST",
	Private:      "PRIVATE",
	PrivateTest:  "PRIVATE_TEST",
	Mijin:        "MIJIN",
	MijinTest:    "MIJIN_TEST",
	AliasAddress: "ALIAS_ADDRESS",
}

// addressNetworks maps the first character of a raw address to its network. The alias tag shares 'S' with MijinTest
// and is never derived from a public key, so it is not listed.
var addressNetworks = map[byte]NetworkType{
	'X': Public,
	'V': PublicTest,
	'Z': Private,
	'W': PrivateTest,
	'M': Mijin,
	'S': MijinTest,
}

// NetworkTypeFromString parses the name of a network ("PUBLIC_TEST", "publicTest", "public-test" are all accepted).
func NetworkTypeFromString(name string) (NetworkType, error) {
	normalized := strings.NewReplacer("-", "", "_", "").Replace(strings.ToUpper(name))
	for networkType, networkName := range networkTypeNames {
		if strings.ReplaceAll(networkName, "_", "") == normalized {
			return networkType, nil
		}
	}

	return NotSupportedNet, sdkerrors.InvalidInput("networkType", "unknown network %q", name)
}

// NetworkTypeFromRaw returns the network of a raw address by its first character.
func NetworkTypeFromRaw(raw string) (NetworkType, error) {
	if len(raw) == 0 {
		return NotSupportedNet, sdkerrors.InvalidAddress(sdkerrors.ReasonLength)
	}
	networkType, exists := addressNetworks[strings.ToUpper(raw[:1])[0]]
	if !exists {
		return NotSupportedNet, sdkerrors.InvalidAddress(sdkerrors.ReasonNetwork)
	}

	return networkType, nil
}

// IsValid reports whether the NetworkType is one of the known networks.
func (n NetworkType) IsValid() bool {
	_, exists := networkTypeNames[n]

	return exists
}

// String returns the name of the network.
func (n NetworkType) String() string {
	if name, exists := networkTypeNames[n]; exists {
		return name
	}

	return "NOT_SUPPORTED"
}

// endregion ///////////////////////////////////////////////////////////////////////////////////////////////////////////
