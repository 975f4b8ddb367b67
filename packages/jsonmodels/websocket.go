package jsonmodels

import (
	"encoding/json"
)

// Subscription represents the JSON model of a subscribe or unsubscribe request of the WebSocket listener.
type Subscription struct {
	UID         string `json:"uid"`
	Subscribe   string `json:"subscribe,omitempty"`
	Unsubscribe string `json:"unsubscribe,omitempty"`
}

// ListenerMeta holds the routing fields of the meta object of a listener message.
type ListenerMeta struct {
	ChannelName string `json:"channelName"`
	Address     string `json:"address,omitempty"`
	Hash        string `json:"hash,omitempty"`
}

// ListenerMessage is the union of all messages pushed by the WebSocket listener. Exactly one group of fields is set:
// UID for the handshake, Transaction for the transaction channels, Block for the block channel, Status for status
// errors and ParentHash for cosignatures.
type ListenerMessage struct {
	UID         string          `json:"uid,omitempty"`
	Meta        *ListenerMeta   `json:"meta,omitempty"`
	Transaction json.RawMessage `json:"transaction,omitempty"`
	Block       json.RawMessage `json:"block,omitempty"`
	Status      string          `json:"status,omitempty"`
	Hash        string          `json:"hash,omitempty"`
	Deadline    *Uint64DTO      `json:"deadline,omitempty"`
	ParentHash  string          `json:"parentHash,omitempty"`
	Signature   string          `json:"signature,omitempty"`
	Signer      string          `json:"signer,omitempty"`
}

// ChannelName returns the channel name carried in the meta object, if any.
func (l *ListenerMessage) ChannelName() string {
	if l.Meta == nil {
		return ""
	}

	return l.Meta.ChannelName
}
