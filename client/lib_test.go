package client

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/iotaledger/hive.go/logger"
	"github.com/labstack/echo"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/atomic"

	"github.com/proximax-storage/sirius-client-go/packages/address"
	"github.com/proximax-storage/sirius-client-go/packages/jsonmodels"
	"github.com/proximax-storage/sirius-client-go/packages/sdkerrors"
	"github.com/proximax-storage/sirius-client-go/packages/transaction"
	"github.com/proximax-storage/sirius-client-go/packages/types"
)

const (
	generationHashHex  = "56D112C98F7A7E34D1AEDC4BD01BC06CA2276DD546A93E36690B785E82439CA9"
	signedTransferHex  = "A9000000F4FD6007572B16F06DC3B692A2185DE57C6AD4502C2EE47E70D773D59C5F6EE09ED9EE0B104673A77ACEE7FDCB391DA58C2FB9631E0E4BF074A6CC67778BBC01C2F93346E27CE6AD1A9F8F5E3066F8326593A406BDF357ACB041E2F9AB402EFE030000B05441000000000000000080EE360000000000B0AA4F105D23E0EFBED73664DC72BA920F469C6AB8F2CB8D98030001006869F6BD1691A142FBBF0100000000000000"
	signedTransferHash = "2E7A1E8F00878569793063F4DADA1FA3777A951B0FBA51CBAF17DC5F6B62F84B"
	signerPublicKeyHex = "C2F93346E27CE6AD1A9F8F5E3066F8326593A406BDF357ACB041E2F9AB402EFE"
)

var log = logger.NewExampleLogger("client")

func newTestAPI(t *testing.T, e *echo.Echo) (*SiriusAPI, *Metrics) {
	server := httptest.NewServer(e)
	t.Cleanup(server.Close)

	metrics, err := NewMetrics(prometheus.NewRegistry())
	require.NoError(t, err)

	api, err := NewSiriusAPIFromURL(server.URL, WithLogger(log), WithMetrics(metrics))
	require.NoError(t, err)
	t.Cleanup(api.Close)

	return api, metrics
}

func testSignedTransfer(t *testing.T) *transaction.SignedTransaction {
	hash, err := types.HashFromHex(signedTransferHash)
	require.NoError(t, err)

	signed, err := transaction.NewSignedTransaction(transaction.TransferType, signedTransferHex, hash)
	require.NoError(t, err)

	return signed
}

func TestSiriusAPI_GetGenerationHash(t *testing.T) {
	calls := atomic.NewInt32(0)
	e := echo.New()
	e.GET("/block/1", func(c echo.Context) error {
		calls.Inc()
		return c.JSON(http.StatusOK, &jsonmodels.Block{
			Meta:  jsonmodels.BlockMeta{GenerationHash: generationHashHex},
			Block: jsonmodels.BlockHeader{Height: jsonmodels.Uint64DTO{1, 0}},
		})
	})
	api, metrics := newTestAPI(t, e)

	for i := 0; i < 3; i++ {
		hash, err := api.GetGenerationHash(context.Background())
		require.NoError(t, err)
		assert.Equal(t, generationHashHex, hash.Hex())
	}
	assert.Equal(t, int32(1), calls.Load())
	assert.Equal(t, float64(1), testutil.ToFloat64(metrics.requests.WithLabelValues(routeBlock, resultSuccess)))
}

func TestSiriusAPI_GetNetworkType(t *testing.T) {
	e := echo.New()
	e.GET("/network", func(c echo.Context) error {
		return c.JSON(http.StatusOK, &jsonmodels.Network{Name: "privateTest", Description: "private test network"})
	})
	api, _ := newTestAPI(t, e)

	networkType, err := api.GetNetworkType(context.Background())
	require.NoError(t, err)
	assert.Equal(t, address.PrivateTest, networkType)
}

func TestSiriusAPI_Announce(t *testing.T) {
	signed := testSignedTransfer(t)
	e := echo.New()
	e.PUT("/transaction", func(c echo.Context) error {
		req := &jsonmodels.AnnounceTransaction{}
		if err := c.Bind(req); err != nil {
			return err
		}
		if req.Payload != signedTransferHex {
			return c.JSON(http.StatusBadRequest, map[string]string{"code": "InvalidArgument", "message": "unexpected payload"})
		}
		return c.JSON(http.StatusAccepted, &jsonmodels.AnnounceResponse{Message: "packet 9 was pushed to the network via /transaction"})
	})
	api, metrics := newTestAPI(t, e)

	res, err := api.Announce(context.Background(), signed)
	require.NoError(t, err)
	assert.Contains(t, res.Message, "pushed")
	assert.Equal(t, float64(1), testutil.ToFloat64(metrics.announcements.WithLabelValues(routeTransaction, resultSuccess)))

	_, err = api.AnnounceAggregateBonded(context.Background(), signed)
	assert.True(t, errors.Is(err, sdkerrors.ErrInvalidAggregate))
}

func TestSiriusAPI_AnnounceCosignature(t *testing.T) {
	received := make(chan *jsonmodels.Cosignature, 1)
	e := echo.New()
	e.PUT("/transaction/cosignature", func(c echo.Context) error {
		req := &jsonmodels.Cosignature{}
		if err := c.Bind(req); err != nil {
			return err
		}
		received <- req
		return c.JSON(http.StatusAccepted, &jsonmodels.AnnounceResponse{Message: "ok"})
	})
	api, _ := newTestAPI(t, e)

	cosignature, err := (&jsonmodels.Cosignature{
		ParentHash: signedTransferHash,
		Signature:  "80822C0E05F7E390B35F77AF8E346CEF7A6B67C99D788C0903BEDC257D11407C4E00A21AEAC28FB6DE4060CE8EEA4D43521A546A48C683BD099C82CDD9FED304",
		Signer:     signerPublicKeyHex,
	}).ToCosignature()
	require.NoError(t, err)

	_, err = api.AnnounceCosignature(context.Background(), cosignature)
	require.NoError(t, err)

	req := <-received
	assert.Equal(t, signedTransferHash, req.ParentHash)
	assert.Equal(t, cosignature.Signature.String(), req.Signature)
}

func TestSiriusAPI_GetTransactionStatuses(t *testing.T) {
	e := echo.New()
	e.GET("/transaction/:hash/status", func(c echo.Context) error {
		return c.JSON(http.StatusOK, &jsonmodels.TransactionStatus{
			Group:    "confirmed",
			Status:   "Success",
			Hash:     c.Param("hash"),
			Deadline: jsonmodels.Uint64DTO{3600000, 0},
			Height:   jsonmodels.Uint64DTO{7, 0},
		})
	})
	e.POST("/transaction/statuses", func(c echo.Context) error {
		req := &jsonmodels.TransactionHashes{}
		if err := c.Bind(req); err != nil {
			return err
		}
		res := make([]*jsonmodels.TransactionStatus, len(req.Hashes))
		for i, hash := range req.Hashes {
			res[i] = &jsonmodels.TransactionStatus{Group: "failed", Status: "Failure_Core_Insufficient_Balance", Hash: hash}
		}
		return c.JSON(http.StatusOK, res)
	})
	api, _ := newTestAPI(t, e)

	hash := testSignedTransfer(t).Hash()

	status, err := api.GetTransactionStatus(context.Background(), hash)
	require.NoError(t, err)
	assert.True(t, status.IsConfirmed())
	assert.True(t, status.IsSuccess())
	assert.Equal(t, uint64(7), status.Height.Uint64())

	statuses, err := api.GetTransactionStatuses(context.Background(), hash, hash)
	require.NoError(t, err)
	require.Len(t, statuses, 2)
	assert.False(t, statuses[1].IsSuccess())
	assert.Equal(t, hash, statuses[1].Hash)
}

func TestSiriusAPI_GetTransaction(t *testing.T) {
	e := echo.New()
	e.GET("/transaction/:hash", func(c echo.Context) error {
		return c.JSONBlob(http.StatusOK, []byte(`{
			"meta": {"height": [12, 0], "index": 0, "id": "5C7C06FF5CC1FE000176FA12", "hash": "`+c.Param("hash")+`", "merkleComponentHash": "`+c.Param("hash")+`"},
			"transaction": {"signer": "`+signerPublicKeyHex+`", "version": 2952790019, "type": 16724, "maxFee": [0, 0], "deadline": [3600000, 0]}
		}`))
	})
	api, _ := newTestAPI(t, e)

	info, tx, err := api.GetTransaction(context.Background(), testSignedTransfer(t).Hash())
	require.NoError(t, err)
	assert.Equal(t, uint64(12), info.Height.Uint64())
	require.NotNil(t, info.Hash)
	assert.Equal(t, signedTransferHash, info.Hash.Hex())

	header, err := tx.Header()
	require.NoError(t, err)
	assert.Equal(t, transaction.TransferType, header.EntityType())
	assert.Equal(t, address.PrivateTest, header.NetworkType())
}

func TestSiriusAPI_Errors(t *testing.T) {
	e := echo.New()
	e.GET("/transaction/:hash/status", func(c echo.Context) error {
		return c.JSON(http.StatusConflict, map[string]string{"code": "Conflict", "message": "already known"})
	})
	e.PUT("/transaction", func(c echo.Context) error {
		return c.JSON(http.StatusBadRequest, map[string]string{"code": "InvalidArgument", "message": "payload is malformed"})
	})
	e.GET("/network", func(c echo.Context) error {
		return c.String(http.StatusBadGateway, "upstream down")
	})
	api, metrics := newTestAPI(t, e)
	signed := testSignedTransfer(t)

	_, err := api.GetTransactionStatus(context.Background(), signed.Hash())
	assert.True(t, errors.Is(err, ErrConflict))

	_, err = api.Announce(context.Background(), signed)
	assert.True(t, errors.Is(err, ErrBadRequest))
	assert.Contains(t, err.Error(), "payload is malformed")
	assert.Equal(t, float64(1), testutil.ToFloat64(metrics.announcements.WithLabelValues(routeTransaction, resultFailure)))

	_, _, err = api.GetTransaction(context.Background(), signed.Hash())
	assert.True(t, errors.Is(err, ErrNotFound))

	_, err = api.GetNetworkType(context.Background())
	assert.True(t, errors.Is(err, ErrUnknownError))
	assert.Contains(t, err.Error(), "upstream down")
}
