package client

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/gorilla/websocket"
	"github.com/iotaledger/hive.go/generics/event"
	"github.com/iotaledger/hive.go/logger"
	"github.com/panjf2000/ants/v2"
	"go.uber.org/atomic"

	"github.com/proximax-storage/sirius-client-go/packages/address"
	"github.com/proximax-storage/sirius-client-go/packages/jsonmodels"
	"github.com/proximax-storage/sirius-client-go/packages/transaction"
	"github.com/proximax-storage/sirius-client-go/packages/types"
)

var (
	// ErrListenerNotConnected is returned when a Listener is used before Connect or after Close.
	ErrListenerNotConnected = errors.New("listener not connected")
	// ErrMissingUID is returned when the node does not open the connection with a uid message.
	ErrMissingUID = errors.New("missing uid in handshake")
)

const (
	// DefaultListenerWorkers is the amount of goroutines dispatching listener events. A single worker keeps the order in
	// which the node pushed the messages.
	DefaultListenerWorkers = 1

	listenerWriteTimeout = 3 * time.Second
)

// region Channel //////////////////////////////////////////////////////////////////////////////////////////////////////

// Channel is the name of a WebSocket channel of the node.
type Channel string

const (
	// BlockChannel pushes every new block.
	BlockChannel Channel = "block"
	// ConfirmedAddedChannel pushes transactions of an address once they are confirmed.
	ConfirmedAddedChannel Channel = "confirmedAdded"
	// UnconfirmedAddedChannel pushes transactions of an address when they enter the unconfirmed cache.
	UnconfirmedAddedChannel Channel = "unconfirmedAdded"
	// UnconfirmedRemovedChannel pushes the hash of a transaction that left the unconfirmed cache.
	UnconfirmedRemovedChannel Channel = "unconfirmedRemoved"
	// PartialAddedChannel pushes aggregate bonded transactions waiting for cosignatures.
	PartialAddedChannel Channel = "partialAdded"
	// PartialRemovedChannel pushes the hash of an aggregate bonded transaction that left the partial cache.
	PartialRemovedChannel Channel = "partialRemoved"
	// StatusChannel pushes validation errors of transactions signed by an address.
	StatusChannel Channel = "status"
	// CosignatureChannel pushes cosignatures added to aggregate bonded transactions of an address.
	CosignatureChannel Channel = "cosignature"
)

// Path returns the subscription path of the channel for the given address. The block channel ignores the address.
func (c Channel) Path(addr *address.Address) string {
	if c == BlockChannel || addr == nil {
		return string(c)
	}

	return string(c) + "/" + addr.Raw()
}

// endregion ///////////////////////////////////////////////////////////////////////////////////////////////////////////

// region ListenerEvents ///////////////////////////////////////////////////////////////////////////////////////////////

// ListenerEvents contains the events a Listener triggers for the messages it receives.
type ListenerEvents struct {
	Block              *event.Event[*BlockEvent]
	ConfirmedAdded     *event.Event[*TransactionEvent]
	UnconfirmedAdded   *event.Event[*TransactionEvent]
	UnconfirmedRemoved *event.Event[*RemovedEvent]
	PartialAdded       *event.Event[*TransactionEvent]
	PartialRemoved     *event.Event[*RemovedEvent]
	Status             *event.Event[*StatusEvent]
	Cosignature        *event.Event[*CosignatureEvent]
	// Error is triggered for messages that cannot be decoded and when the connection drops.
	Error *event.Event[error]
}

func newListenerEvents() *ListenerEvents {
	return &ListenerEvents{
		Block:              event.New[*BlockEvent](),
		ConfirmedAdded:     event.New[*TransactionEvent](),
		UnconfirmedAdded:   event.New[*TransactionEvent](),
		UnconfirmedRemoved: event.New[*RemovedEvent](),
		PartialAdded:       event.New[*TransactionEvent](),
		PartialRemoved:     event.New[*RemovedEvent](),
		Status:             event.New[*StatusEvent](),
		Cosignature:        event.New[*CosignatureEvent](),
		Error:              event.New[error](),
	}
}

// BlockEvent carries a block pushed on the block channel.
type BlockEvent struct {
	Block *jsonmodels.Block
}

// TransactionEvent carries a transaction pushed on one of the *Added channels.
type TransactionEvent struct {
	Channel     Channel
	Transaction *jsonmodels.Transaction
}

// RemovedEvent carries the hash of a transaction that left the unconfirmed or partial cache.
type RemovedEvent struct {
	Channel Channel
	Hash    types.Hash
}

// StatusEvent carries a validation error of a transaction.
type StatusEvent struct {
	Hash     types.Hash
	Status   string
	Deadline *transaction.Deadline
}

// CosignatureEvent carries a cosignature added to an aggregate bonded transaction.
type CosignatureEvent struct {
	Cosignature *transaction.CosignatureSignedTransaction
}

// endregion ///////////////////////////////////////////////////////////////////////////////////////////////////////////

// region Listener /////////////////////////////////////////////////////////////////////////////////////////////////////

// Listener subscribes to the WebSocket channels of a node and turns the pushed messages into events.
type Listener struct {
	Events *ListenerEvents

	url        string
	dialer     *websocket.Dialer
	conn       *websocket.Conn
	uid        *atomic.String
	connected  *atomic.Bool
	writeMutex sync.Mutex
	pool       *ants.Pool
	done       chan struct{}
	metrics    *Metrics
	log        *logger.Logger
}

// NewListener returns a Listener for the WebSocket endpoint at url (usually ws://host:port/ws). Decoded messages are
// dispatched by workers goroutines. log must not be nil.
func NewListener(url string, workers int, log *logger.Logger, metrics *Metrics) (*Listener, error) {
	if workers <= 0 {
		workers = DefaultListenerWorkers
	}

	pool, err := ants.NewPool(workers)
	if err != nil {
		return nil, errors.Errorf("failed to create listener worker pool: %w", err)
	}

	return &Listener{
		Events:    newListenerEvents(),
		url:       url,
		dialer:    websocket.DefaultDialer,
		uid:       atomic.NewString(""),
		connected: atomic.NewBool(false),
		pool:      pool,
		metrics:   metrics,
		log:       log,
	}, nil
}

// Connect dials the node and waits for the uid handshake. Messages are read in the background until Close.
func (l *Listener) Connect(ctx context.Context) error {
	conn, _, err := l.dialer.DialContext(ctx, l.url, nil)
	if err != nil {
		return errors.Errorf("failed to dial %s: %w", l.url, err)
	}

	handshake := &jsonmodels.ListenerMessage{}
	if err = conn.ReadJSON(handshake); err != nil {
		_ = conn.Close()
		return errors.Errorf("failed to read handshake: %w", err)
	}
	if handshake.UID == "" {
		_ = conn.Close()
		return errors.WithStack(ErrMissingUID)
	}

	l.conn = conn
	l.uid.Store(handshake.UID)
	l.done = make(chan struct{})
	l.connected.Store(true)
	l.log.Infow("Listener connected", "url", l.url, "uid", handshake.UID)

	go l.readLoop()

	return nil
}

// UID returns the uid the node assigned to the connection.
func (l *Listener) UID() string {
	return l.uid.Load()
}

// IsConnected reports whether the connection is open.
func (l *Listener) IsConnected() bool {
	return l.connected.Load()
}

// Subscribe subscribes to channel for the given address. The address is ignored for the block channel.
func (l *Listener) Subscribe(channel Channel, addr *address.Address) error {
	return l.send(&jsonmodels.Subscription{UID: l.UID(), Subscribe: channel.Path(addr)})
}

// Unsubscribe cancels a subscription made with Subscribe.
func (l *Listener) Unsubscribe(channel Channel, addr *address.Address) error {
	return l.send(&jsonmodels.Subscription{UID: l.UID(), Unsubscribe: channel.Path(addr)})
}

// Close closes the connection, waits for the reader to stop and releases the workers.
func (l *Listener) Close() error {
	if !l.connected.Swap(false) {
		l.pool.Release()
		return nil
	}

	l.writeMutex.Lock()
	_ = l.conn.SetWriteDeadline(time.Now().Add(listenerWriteTimeout))
	err := l.conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
	l.writeMutex.Unlock()

	if closeErr := l.conn.Close(); err == nil {
		err = closeErr
	}
	<-l.done
	l.pool.Release()

	if err != nil && !errors.Is(err, websocket.ErrCloseSent) {
		return errors.Errorf("failed to close listener: %w", err)
	}

	return nil
}

func (l *Listener) send(subscription *jsonmodels.Subscription) error {
	if !l.connected.Load() {
		return errors.WithStack(ErrListenerNotConnected)
	}

	l.writeMutex.Lock()
	defer l.writeMutex.Unlock()

	_ = l.conn.SetWriteDeadline(time.Now().Add(listenerWriteTimeout))
	if err := l.conn.WriteJSON(subscription); err != nil {
		return errors.Errorf("failed to send subscription: %w", err)
	}

	return nil
}

func (l *Listener) readLoop() {
	defer close(l.done)

	for {
		_, data, err := l.conn.ReadMessage()
		if err != nil {
			if l.connected.Swap(false) {
				l.log.Warnw("Listener connection lost", "url", l.url, "err", err)
				trigger(l, l.Events.Error, errors.Errorf("listener connection lost: %w", err))
			}
			return
		}

		if err = l.dispatch(data); err != nil {
			l.log.Debugw("Failed to decode listener message", "err", err)
			trigger(l, l.Events.Error, err)
		}
	}
}

// dispatch decodes a message and triggers the event of its channel.
func (l *Listener) dispatch(data []byte) error {
	message := &jsonmodels.ListenerMessage{}
	if err := json.Unmarshal(data, message); err != nil {
		return errors.Errorf("failed to decode listener message: %w", err)
	}

	switch {
	case len(message.Transaction) > 0:
		return l.dispatchTransaction(Channel(message.ChannelName()), data)

	case len(message.Block) > 0:
		block := &jsonmodels.Block{}
		if err := json.Unmarshal(data, block); err != nil {
			return errors.Errorf("failed to decode block: %w", err)
		}
		l.metrics.countListenerMessage(string(BlockChannel))
		trigger(l, l.Events.Block, &BlockEvent{Block: block})

	case message.ParentHash != "":
		cosignature, err := (&jsonmodels.Cosignature{
			ParentHash: message.ParentHash,
			Signature:  message.Signature,
			Signer:     message.Signer,
		}).ToCosignature()
		if err != nil {
			return err
		}
		l.metrics.countListenerMessage(string(CosignatureChannel))
		trigger(l, l.Events.Cosignature, &CosignatureEvent{Cosignature: cosignature})

	case message.Status != "":
		hash, err := types.HashFromHex(message.Hash)
		if err != nil {
			return errors.Errorf("failed to decode status hash: %w", err)
		}
		statusEvent := &StatusEvent{Hash: hash, Status: message.Status}
		if message.Deadline != nil {
			statusEvent.Deadline = transaction.DeadlineFromUint64(message.Deadline.ToUint64())
		}
		l.metrics.countListenerMessage(string(StatusChannel))
		trigger(l, l.Events.Status, statusEvent)

	case message.Meta != nil && message.Meta.Hash != "":
		return l.dispatchRemoved(Channel(message.Meta.ChannelName), message.Meta.Hash)

	default:
		return errors.Errorf("unknown listener message: %s", data)
	}

	return nil
}

func (l *Listener) dispatchTransaction(channel Channel, data []byte) error {
	tx := &jsonmodels.Transaction{}
	if err := json.Unmarshal(data, tx); err != nil {
		return errors.Errorf("failed to decode transaction: %w", err)
	}

	var target *event.Event[*TransactionEvent]
	switch channel {
	case ConfirmedAddedChannel:
		target = l.Events.ConfirmedAdded
	case UnconfirmedAddedChannel:
		target = l.Events.UnconfirmedAdded
	case PartialAddedChannel:
		target = l.Events.PartialAdded
	default:
		return errors.Errorf("transaction on unknown channel %q", channel)
	}

	l.metrics.countListenerMessage(string(channel))
	trigger(l, target, &TransactionEvent{Channel: channel, Transaction: tx})

	return nil
}

func (l *Listener) dispatchRemoved(channel Channel, hashHex string) error {
	hash, err := types.HashFromHex(hashHex)
	if err != nil {
		return errors.Errorf("failed to decode removed hash: %w", err)
	}

	var target *event.Event[*RemovedEvent]
	switch channel {
	case UnconfirmedRemovedChannel:
		target = l.Events.UnconfirmedRemoved
	case PartialRemovedChannel:
		target = l.Events.PartialRemoved
	default:
		return errors.Errorf("removal on unknown channel %q", channel)
	}

	l.metrics.countListenerMessage(string(channel))
	trigger(l, target, &RemovedEvent{Channel: channel, Hash: hash})

	return nil
}

// trigger hands the event to the worker pool.
func trigger[T any](l *Listener, e *event.Event[T], value T) {
	if err := l.pool.Submit(func() { e.Trigger(value) }); err != nil {
		l.log.Errorw("Failed to dispatch listener event", "err", err)
	}
}

// endregion ///////////////////////////////////////////////////////////////////////////////////////////////////////////
