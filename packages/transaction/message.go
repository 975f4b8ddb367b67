package transaction

import (
	"github.com/iotaledger/hive.go/stringify"
)

// MessageType tells the receiver how to interpret the payload of a Message.
type MessageType uint8

// PlainMessageType is an unencrypted message.
const PlainMessageType MessageType = 0

// MaxMessagePayloadSize is the largest payload whose size (plus the type byte) still fits the 2 byte size field.
const MaxMessagePayloadSize = 0xffff - 1

// Message is the optional payload attached to a Transfer.
type Message struct {
	Type    MessageType
	Payload []byte
}

// NewPlainMessage creates an unencrypted Message.
func NewPlainMessage(text string) *Message {
	return &Message{Type: PlainMessageType, Payload: []byte(text)}
}

// EmptyMessage returns a plain Message without payload.
func EmptyMessage() *Message {
	return &Message{Type: PlainMessageType, Payload: []byte{}}
}

// Size returns the value of the message size field: one type byte followed by the payload.
func (m *Message) Size() int {
	return 1 + len(m.Payload)
}

// String returns a human-readable version of the Message.
func (m *Message) String() string {
	return stringify.Struct("Message",
		stringify.StructField("type", uint8(m.Type)),
		stringify.StructField("payload", string(m.Payload)),
	)
}
