package main

import (
	"fmt"

	flag "github.com/spf13/pflag"

	"github.com/proximax-storage/sirius-client-go/packages/account"
	"github.com/proximax-storage/sirius-client-go/packages/address"
)

var (
	accountFlags         = flag.NewFlagSet("account", flag.ExitOnError)
	accountImportPtr     = accountFlags.Bool("import", false, "show an existing account instead of generating a new one")
	accountPrivateKeyPtr = accountFlags.String("private-key", "", "the private key of the account to show (prompted if empty)")
)

func init() {
	registerCommand("account", "generate a new account or show an existing one", accountFlags, execAccountCommand)
}

func execAccountCommand(networkType address.NetworkType) (err error) {
	var acc *account.Account
	if *accountImportPtr || *accountPrivateKeyPtr != "" {
		privateKeyHex, promptErr := promptPrivateKey(*accountPrivateKeyPtr)
		if promptErr != nil {
			return promptErr
		}
		acc, err = account.FromPrivateKey(privateKeyHex, networkType, nil)
	} else {
		acc, err = account.New(networkType, nil)
	}
	if err != nil {
		return err
	}
	defer acc.Destroy()

	fmt.Println()
	fmt.Println("NETWORK:     ", networkType)
	fmt.Println("ADDRESS:     ", acc.Address.Pretty())
	fmt.Println("PUBLIC KEY:  ", acc.PublicKey.Hex())
	if !*accountImportPtr && *accountPrivateKeyPtr == "" {
		fmt.Println("PRIVATE KEY: ", acc.KeyPair().PrivateKey().Hex())
	}

	return nil
}
