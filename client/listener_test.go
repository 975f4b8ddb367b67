package client

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/iotaledger/hive.go/generics/event"
	"github.com/labstack/echo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/proximax-storage/sirius-client-go/packages/address"
	"github.com/proximax-storage/sirius-client-go/packages/jsonmodels"
	"github.com/proximax-storage/sirius-client-go/packages/transaction"
)

const (
	listenerUID  = "a6f7a6b3-7b6f-4d8c-9a5e-1c7f0d9c4b21"
	recipientRaw = "WCVE6EC5EPQO7PWXGZSNY4V2SIHUNHDKXDZMXDMY"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// fakeNode accepts one WebSocket connection, sends the uid handshake, forwards every subscription it reads to
// subscriptions and pushes every message written to pushes.
func fakeNode(t *testing.T, subscriptions chan<- *jsonmodels.Subscription, pushes <-chan string) string {
	e := echo.New()
	e.GET("/ws", func(c echo.Context) error {
		ws, err := upgrader.Upgrade(c.Response(), c.Request(), nil)
		if err != nil {
			return err
		}
		defer ws.Close()

		if err = ws.WriteJSON(&jsonmodels.ListenerMessage{UID: listenerUID}); err != nil {
			return err
		}

		go func() {
			for push := range pushes {
				if err := ws.WriteMessage(websocket.TextMessage, []byte(push)); err != nil {
					return
				}
			}
		}()

		for {
			subscription := &jsonmodels.Subscription{}
			if err := ws.ReadJSON(subscription); err != nil {
				return nil
			}
			subscriptions <- subscription
		}
	})

	server := httptest.NewServer(e)
	t.Cleanup(server.Close)

	return "ws" + strings.TrimPrefix(server.URL, "http") + "/ws"
}

func await[T any](t *testing.T, events <-chan T) T {
	select {
	case value := <-events:
		return value
	case <-time.After(5 * time.Second):
		require.FailNow(t, "timed out waiting for listener event")
	}

	var zero T
	return zero
}

func collect[T any](e *event.Event[T]) <-chan T {
	values := make(chan T, 10)
	e.Attach(event.NewClosure(func(value T) {
		values <- value
	}))

	return values
}

func TestListener(t *testing.T) {
	subscriptions := make(chan *jsonmodels.Subscription, 10)
	pushes := make(chan string, 10)
	defer close(pushes)

	metrics, err := NewMetrics(nil)
	require.NoError(t, err)

	listener, err := NewListener(fakeNode(t, subscriptions, pushes), DefaultListenerWorkers, log, metrics)
	require.NoError(t, err)

	blocks := collect(listener.Events.Block)
	confirmed := collect(listener.Events.ConfirmedAdded)
	removed := collect(listener.Events.PartialRemoved)
	statuses := collect(listener.Events.Status)
	cosignatures := collect(listener.Events.Cosignature)
	failures := collect(listener.Events.Error)

	require.ErrorIs(t, listener.Subscribe(BlockChannel, nil), ErrListenerNotConnected)

	require.NoError(t, listener.Connect(context.Background()))
	assert.Equal(t, listenerUID, listener.UID())
	assert.True(t, listener.IsConnected())

	recipient, err := address.FromRaw(recipientRaw)
	require.NoError(t, err)

	require.NoError(t, listener.Subscribe(BlockChannel, recipient))
	subscription := await(t, subscriptions)
	assert.Equal(t, listenerUID, subscription.UID)
	assert.Equal(t, "block", subscription.Subscribe)

	require.NoError(t, listener.Subscribe(ConfirmedAddedChannel, recipient))
	assert.Equal(t, "confirmedAdded/"+recipientRaw, await(t, subscriptions).Subscribe)

	require.NoError(t, listener.Unsubscribe(ConfirmedAddedChannel, recipient))
	assert.Equal(t, "confirmedAdded/"+recipientRaw, await(t, subscriptions).Unsubscribe)

	pushes <- `{"block": {"height": [2, 0], "type": 33091}, "meta": {"hash": "` + signedTransferHash + `", "generationHash": "` + generationHashHex + `"}}`
	blockEvent := await(t, blocks)
	assert.Equal(t, uint32(2), blockEvent.Block.Block.Height[0])
	assert.Equal(t, generationHashHex, blockEvent.Block.Meta.GenerationHash)

	pushes <- `{"transaction": {"signer": "` + signerPublicKeyHex + `", "version": 2952790019, "type": 16724}, "meta": {"channelName": "confirmedAdded", "height": [9, 0], "hash": "` + signedTransferHash + `"}}`
	transactionEvent := await(t, confirmed)
	assert.Equal(t, ConfirmedAddedChannel, transactionEvent.Channel)
	info, err := transactionEvent.Transaction.Meta.ToInfo()
	require.NoError(t, err)
	assert.Equal(t, uint64(9), info.Height.Uint64())

	pushes <- `{"meta": {"channelName": "partialRemoved", "hash": "` + signedTransferHash + `"}}`
	removedEvent := await(t, removed)
	assert.Equal(t, signedTransferHash, removedEvent.Hash.Hex())

	pushes <- `{"hash": "` + signedTransferHash + `", "status": "Failure_Core_Past_Deadline", "deadline": [3600000, 0]}`
	statusEvent := await(t, statuses)
	assert.Equal(t, "Failure_Core_Past_Deadline", statusEvent.Status)
	assert.Equal(t, transaction.NemesisEpoch.Add(time.Hour).Unix(), statusEvent.Deadline.Unix())

	pushes <- `{"parentHash": "` + signedTransferHash + `", "signature": "80822C0E05F7E390B35F77AF8E346CEF7A6B67C99D788C0903BEDC257D11407C4E00A21AEAC28FB6DE4060CE8EEA4D43521A546A48C683BD099C82CDD9FED304", "signer": "` + signerPublicKeyHex + `"}`
	cosignatureEvent := await(t, cosignatures)
	assert.Equal(t, signedTransferHash, cosignatureEvent.Cosignature.ParentHash.Hex())

	pushes <- `{"unexpected": true}`
	assert.Error(t, await(t, failures))

	require.NoError(t, listener.Close())
	assert.False(t, listener.IsConnected())
	assert.ErrorIs(t, listener.Subscribe(BlockChannel, nil), ErrListenerNotConnected)
}
