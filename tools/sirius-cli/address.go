package main

import (
	"fmt"
	"strings"

	"github.com/cockroachdb/errors"
	flag "github.com/spf13/pflag"

	"github.com/proximax-storage/sirius-client-go/packages/account"
	"github.com/proximax-storage/sirius-client-go/packages/address"
)

var (
	addressFlags        = flag.NewFlagSet("address", flag.ExitOnError)
	addressPublicKeyPtr = addressFlags.String("public-key", "", "derive the address of this hex public key")
	addressValuePtr     = addressFlags.String("address", "", "convert this address (raw, pretty or hex encoded)")
)

func init() {
	registerCommand("address", "derive an address from a public key or convert between address forms", addressFlags, execAddressCommand)
}

// execAddressCommand only resolves the network when deriving from a public key, so conversions work offline.
func execAddressCommand(networkType networkTypeResolver) (err error) {
	var addr *address.Address
	switch {
	case *addressPublicKeyPtr != "":
		network, networkErr := networkType()
		if networkErr != nil {
			return networkErr
		}
		publicAccount, accountErr := account.PublicAccountFromHex(*addressPublicKeyPtr, network)
		if accountErr != nil {
			return accountErr
		}
		addr = publicAccount.Address
	case len(*addressValuePtr) == address.EncodedLength && !strings.Contains(*addressValuePtr, "-"):
		addr, err = address.FromEncoded(*addressValuePtr)
	case *addressValuePtr != "":
		addr, err = address.FromRaw(*addressValuePtr)
	default:
		return errors.New("either --public-key or --address has to be set")
	}
	if err != nil {
		return err
	}

	fmt.Println()
	fmt.Println("NETWORK: ", addr.NetworkType())
	fmt.Println("RAW:     ", addr.Raw())
	fmt.Println("PRETTY:  ", addr.Pretty())
	fmt.Println("ENCODED: ", addr.Encoded())

	return nil
}
