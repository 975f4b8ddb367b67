package main

import (
	"github.com/AlecAivazis/survey/v2"
	"github.com/cockroachdb/errors"

	"github.com/proximax-storage/sirius-client-go/packages/crypto"
)

// region survey ///////////////////////////////////////////////////////////////////////////////////////////////////////

var privateKeyQuestion = &survey.Password{
	Message: "Private key (hex):",
	Help:    "The key never leaves this process; only the signed payload is sent to the node.",
}

var announceQuestion = func(hash string) *survey.Confirm {
	return &survey.Confirm{
		Message: "Announce transaction " + hash + "?",
		Default: false,
	}
}

// promptPrivateKey returns privateKeyHex or, if it is empty, asks for it.
func promptPrivateKey(privateKeyHex string) (string, error) {
	if privateKeyHex != "" {
		return privateKeyHex, nil
	}

	if err := survey.AskOne(privateKeyQuestion, &privateKeyHex, survey.WithValidator(validatePrivateKey)); err != nil {
		return "", errors.Errorf("failed to read private key: %w", err)
	}

	return privateKeyHex, nil
}

// confirmAnnounce asks whether the transaction with the given hash should be announced.
func confirmAnnounce(hash string) (confirmed bool, err error) {
	if err = survey.AskOne(announceQuestion(hash), &confirmed); err != nil {
		return false, errors.Errorf("failed to read confirmation: %w", err)
	}

	return confirmed, nil
}

func validatePrivateKey(answer interface{}) error {
	value, ok := answer.(string)
	if !ok {
		return errors.New("expected a string")
	}
	_, err := crypto.PrivateKeyFromHex(value)

	return err
}

// endregion ///////////////////////////////////////////////////////////////////////////////////////////////////////////
