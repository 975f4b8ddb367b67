package main

import (
	"context"
	"fmt"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/iotaledger/hive.go/generics/event"
	"github.com/iotaledger/hive.go/logger"
	flag "github.com/spf13/pflag"
	"go.uber.org/dig"

	"github.com/proximax-storage/sirius-client-go/client"
	"github.com/proximax-storage/sirius-client-go/packages/account"
	"github.com/proximax-storage/sirius-client-go/packages/address"
	"github.com/proximax-storage/sirius-client-go/packages/asset"
	"github.com/proximax-storage/sirius-client-go/packages/clock"
	"github.com/proximax-storage/sirius-client-go/packages/transaction"
	"github.com/proximax-storage/sirius-client-go/packages/types"
)

var (
	transferFlags         = flag.NewFlagSet("transfer", flag.ExitOnError)
	transferRecipientPtr  = transferFlags.String("recipient", "", "the address of the recipient")
	transferAmountPtr     = transferFlags.Uint64("amount", 0, "the amount to send, in the smallest unit of the mosaic")
	transferRelativePtr   = transferFlags.Bool("relative", false, "interpret --amount in whole XPX (only without --mosaic)")
	transferMosaicPtr     = transferFlags.String("mosaic", "", "the hex id of the mosaic or mosaic alias to send (XPX if empty)")
	transferMessagePtr    = transferFlags.String("message", "", "a plain message attached to the transfer")
	transferPrivateKeyPtr = transferFlags.String("private-key", "", "the private key of the sender (prompted if empty)")
	transferAnnouncePtr   = transferFlags.Bool("announce", false, "announce the signed transfer to the node")
	transferYesPtr        = transferFlags.BoolP("yes", "y", false, "announce without asking for confirmation")
	transferWaitPtr       = transferFlags.Bool("wait", false, "wait until the announced transfer is confirmed or rejected")
)

func init() {
	registerCommand("transfer", "sign and optionally announce a transfer", transferFlags, execTransferCommand)
}

type transferDependencies struct {
	dig.In

	Log            *logger.Logger
	Clock          clock.Clock
	NetworkType    address.NetworkType
	GenerationHash types.Hash
	API            *client.SiriusAPI
	Listener       *client.Listener
}

func execTransferCommand(deps transferDependencies) error {
	defer deps.API.Close()

	signed, sender, err := signTransfer(deps)
	if err != nil {
		return err
	}

	fmt.Println()
	fmt.Println("SENDER:  ", sender.Pretty())
	fmt.Println("HASH:    ", signed.Hash().Hex())
	fmt.Println("PAYLOAD: ", signed.PayloadHex())

	if !*transferAnnouncePtr {
		return nil
	}
	if !*transferYesPtr {
		confirmed, confirmErr := confirmAnnounce(signed.Hash().Hex())
		if confirmErr != nil || !confirmed {
			return confirmErr
		}
	}

	if !*transferWaitPtr {
		res, announceErr := deps.API.Announce(context.Background(), signed)
		if announceErr != nil {
			return announceErr
		}
		fmt.Println()
		fmt.Println(res.Message)

		return nil
	}

	return announceAndWait(deps, signed, sender)
}

// signTransfer builds the transfer described by the flags and signs it with the sender's key.
func signTransfer(deps transferDependencies) (*transaction.SignedTransaction, *address.Address, error) {
	recipient, err := address.FromRaw(*transferRecipientPtr)
	if err != nil {
		return nil, nil, errors.Errorf("invalid recipient: %w", err)
	}

	mosaic, err := transferMosaic()
	if err != nil {
		return nil, nil, err
	}

	privateKeyHex, err := promptPrivateKey(*transferPrivateKeyPtr)
	if err != nil {
		return nil, nil, err
	}
	sender, err := account.FromPrivateKey(privateKeyHex, deps.NetworkType, nil)
	if err != nil {
		return nil, nil, err
	}
	defer sender.Destroy()

	deadline := transaction.NewDeadline(TransactionParameters.Deadline, deps.Clock)
	transfer, err := transaction.NewTransfer(deadline, recipient, []*asset.Mosaic{mosaic}, transaction.NewPlainMessage(*transferMessagePtr), deps.NetworkType)
	if err != nil {
		return nil, nil, err
	}
	transfer.SetMaxFee(TransactionParameters.MaxFee)

	deps.Log.Debugw("Signing transfer", "transfer", transfer)
	signed, err := transaction.Sign(transfer, sender, deps.GenerationHash)
	if err != nil {
		return nil, nil, err
	}

	return signed, sender.Address, nil
}

func transferMosaic() (*asset.Mosaic, error) {
	if *transferMosaicPtr == "" {
		if *transferRelativePtr {
			return asset.XPXRelative(*transferAmountPtr), nil
		}
		return asset.XPX(*transferAmountPtr), nil
	}

	id, err := types.Uint64FromHex(*transferMosaicPtr)
	if err != nil {
		return nil, errors.Errorf("invalid mosaic: %w", err)
	}

	return asset.NewMosaic(asset.AssetIDFromUint64(id), *transferAmountPtr)
}

// announceAndWait subscribes to the sender's status and confirmedAdded channels before announcing, so neither outcome
// can be missed, and returns once one of them reports the transfer.
func announceAndWait(deps transferDependencies, signed *transaction.SignedTransaction, sender *address.Address) error {
	ctx, cancel := context.WithTimeout(context.Background(), TransactionParameters.ConfirmationTimeout)
	defer cancel()

	if err := deps.Listener.Connect(ctx); err != nil {
		return err
	}
	defer func() {
		if err := deps.Listener.Close(); err != nil {
			deps.Log.Warnw("Failed to close listener", "err", err)
		}
	}()

	outcome := make(chan error, 1)
	report := func(err error) {
		select {
		case outcome <- err:
		default:
		}
	}

	confirmedClosure := event.NewClosure(func(e *client.TransactionEvent) {
		if e.Transaction.Meta.Hash == signed.Hash().Hex() {
			report(nil)
		}
	})
	statusClosure := event.NewClosure(func(e *client.StatusEvent) {
		if e.Hash == signed.Hash() {
			report(errors.Errorf("transfer rejected: %s", e.Status))
		}
	})
	deps.Listener.Events.ConfirmedAdded.Attach(confirmedClosure)
	defer deps.Listener.Events.ConfirmedAdded.Detach(confirmedClosure)
	deps.Listener.Events.Status.Attach(statusClosure)
	defer deps.Listener.Events.Status.Detach(statusClosure)

	for _, channel := range []client.Channel{client.StatusChannel, client.ConfirmedAddedChannel} {
		if err := deps.Listener.Subscribe(channel, sender); err != nil {
			return err
		}
	}

	if _, err := deps.API.Announce(ctx, signed); err != nil {
		return err
	}
	fmt.Println()
	fmt.Printf("Announced, waiting up to %s for confirmation ...\n", TransactionParameters.ConfirmationTimeout)

	start := time.Now()
	select {
	case err := <-outcome:
		if err != nil {
			return err
		}
		fmt.Printf("Confirmed after %s\n", time.Since(start).Round(time.Second))
		return nil
	case <-ctx.Done():
		return errors.Errorf("transfer not confirmed: %w", ctx.Err())
	}
}
