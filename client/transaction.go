package client

import (
	"context"
	"net/http"

	"github.com/cockroachdb/errors"

	"github.com/proximax-storage/sirius-client-go/packages/jsonmodels"
	"github.com/proximax-storage/sirius-client-go/packages/sdkerrors"
	"github.com/proximax-storage/sirius-client-go/packages/transaction"
	"github.com/proximax-storage/sirius-client-go/packages/types"
)

const (
	routeTransaction         = "transaction"
	routeTransactionPartial  = "transaction/partial"
	routeTransactionCosign   = "transaction/cosignature"
	routeTransactionByHash   = "transaction/%s"
	routeTransactionStatus   = "transaction/%s/status"
	routeTransactionStatuses = "transaction/statuses"
)

// Announce announces a signed transaction to the network.
func (api *SiriusAPI) Announce(ctx context.Context, signed *transaction.SignedTransaction) (*jsonmodels.AnnounceResponse, error) {
	if signed.EntityType() == transaction.AggregateBondedType {
		return nil, sdkerrors.InvalidAggregate("aggregate bonded transactions are announced with AnnounceAggregateBonded")
	}

	return api.announce(ctx, routeTransaction, jsonmodels.NewAnnounceTransaction(signed))
}

// AnnounceAggregateBonded announces a signed aggregate bonded transaction. The network only accepts it after the
// HashLock locking its hash is confirmed.
func (api *SiriusAPI) AnnounceAggregateBonded(ctx context.Context, signed *transaction.SignedTransaction) (*jsonmodels.AnnounceResponse, error) {
	if signed.EntityType() != transaction.AggregateBondedType {
		return nil, sdkerrors.InvalidAggregate("expected an aggregate bonded transaction, got %s", signed.EntityType())
	}

	return api.announce(ctx, routeTransactionPartial, jsonmodels.NewAnnounceTransaction(signed))
}

// AnnounceCosignature announces a cosignature of a pending aggregate bonded transaction.
func (api *SiriusAPI) AnnounceCosignature(ctx context.Context, cosignature *transaction.CosignatureSignedTransaction) (*jsonmodels.AnnounceResponse, error) {
	return api.announce(ctx, routeTransactionCosign, jsonmodels.NewCosignature(cosignature))
}

func (api *SiriusAPI) announce(ctx context.Context, route string, reqObj interface{}) (*jsonmodels.AnnounceResponse, error) {
	res := &jsonmodels.AnnounceResponse{}
	err := api.do(ctx, http.MethodPut, route, reqObj, res)
	api.metrics.countAnnounce(route, err)
	if err != nil {
		return nil, errors.Errorf("failed to announce to %s: %w", route, err)
	}

	if api.log != nil {
		api.log.Debugw("Announced", "route", route, "message", res.Message)
	}

	return res, nil
}

// GetTransactionStatus gets the status of the transaction with the given hash.
func (api *SiriusAPI) GetTransactionStatus(ctx context.Context, hash types.Hash) (*transaction.Status, error) {
	res := &jsonmodels.TransactionStatus{}
	if err := api.do(ctx, http.MethodGet, routeTransactionStatus, nil, res, hash.Hex()); err != nil {
		return nil, err
	}

	return res.ToStatus()
}

// GetTransactionStatuses gets the statuses of the transactions with the given hashes. Unknown hashes are missing from
// the result.
func (api *SiriusAPI) GetTransactionStatuses(ctx context.Context, hashes ...types.Hash) ([]*transaction.Status, error) {
	var res []*jsonmodels.TransactionStatus
	if err := api.do(ctx, http.MethodPost, routeTransactionStatuses, jsonmodels.NewTransactionHashes(hashes...), &res); err != nil {
		return nil, err
	}

	statuses := make([]*transaction.Status, len(res))
	for i, dto := range res {
		status, err := dto.ToStatus()
		if err != nil {
			return nil, err
		}
		statuses[i] = status
	}

	return statuses, nil
}

// GetTransaction gets the transaction with the given hash. Its meta is mapped to a transaction.Info, the body is
// returned as the raw JSON model.
func (api *SiriusAPI) GetTransaction(ctx context.Context, hash types.Hash) (*transaction.Info, *jsonmodels.Transaction, error) {
	res := &jsonmodels.Transaction{}
	if err := api.do(ctx, http.MethodGet, routeTransactionByHash, nil, res, hash.Hex()); err != nil {
		return nil, nil, err
	}

	info, err := res.Meta.ToInfo()
	if err != nil {
		return nil, nil, err
	}

	return info, res, nil
}
