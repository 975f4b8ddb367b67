// Package types contains the fixed-width values shared by all layers of the transaction core.
package types

import (
	"encoding/binary"
	"encoding/hex"
	"encoding/json"
	"strconv"

	"github.com/cockroachdb/errors"
	"github.com/iotaledger/hive.go/cerrors"
	"github.com/iotaledger/hive.go/marshalutil"

	"github.com/proximax-storage/sirius-client-go/packages/sdkerrors"
)

// Uint64Length is the amount of bytes of a marshaled Uint64.
const Uint64Length = 8

// region Uint64 ///////////////////////////////////////////////////////////////////////////////////////////////////////

// Uint64 is an unsigned 64-bit value as it travels through the network: as a [low, high] pair of uint32 in JSON, as
// 8 little-endian bytes on the wire and as 16 lowercase hex digits in human-readable form.
type Uint64 struct {
	value uint64
}

// NewUint64 wraps a native value.
func NewUint64(value uint64) Uint64 {
	return Uint64{value: value}
}

// Uint64FromIntArray creates a Uint64 from its [low, high] representation.
func Uint64FromIntArray(lowHigh [2]uint32) Uint64 {
	return Uint64{value: uint64(lowHigh[1])<<32 | uint64(lowHigh[0])}
}

// Uint64FromHex parses up to 16 hex digits (big-endian, as printed by Hex).
func Uint64FromHex(hexString string) (Uint64, error) {
	if len(hexString) == 0 || len(hexString) > 2*Uint64Length {
		return Uint64{}, sdkerrors.InvalidInput("uint64", "hex string must have between 1 and 16 digits, got %d", len(hexString))
	}

	value, err := strconv.ParseUint(hexString, 16, 64)
	if err != nil {
		return Uint64{}, sdkerrors.InvalidInput("uint64", "malformed hex %q", hexString)
	}

	return Uint64{value: value}, nil
}

// Uint64FromDecimal parses a base-10 string.
func Uint64FromDecimal(decimal string) (Uint64, error) {
	value, err := strconv.ParseUint(decimal, 10, 64)
	if err != nil {
		return Uint64{}, sdkerrors.InvalidInput("uint64", "malformed decimal %q", decimal)
	}

	return Uint64{value: value}, nil
}

// Uint64FromBytes unmarshals a Uint64 from 8 little-endian bytes.
func Uint64FromBytes(bytes []byte) (result Uint64, consumedBytes int, err error) {
	marshalUtil := marshalutil.New(bytes)
	if result, err = Uint64FromMarshalUtil(marshalUtil); err != nil {
		err = errors.Errorf("failed to parse Uint64 from MarshalUtil: %w", err)
		return
	}
	consumedBytes = marshalUtil.ReadOffset()

	return
}

// Uint64FromMarshalUtil reads a Uint64 from the given MarshalUtil.
func Uint64FromMarshalUtil(marshalUtil *marshalutil.MarshalUtil) (result Uint64, err error) {
	value, err := marshalUtil.ReadUint64()
	if err != nil {
		err = errors.Errorf("failed to parse Uint64 (%v): %w", err, cerrors.ErrParseBytesFailed)
		return
	}

	return Uint64{value: value}, nil
}

// Uint64 returns the native value.
func (u Uint64) Uint64() uint64 {
	return u.value
}

// IntArray returns the [low, high] representation.
func (u Uint64) IntArray() [2]uint32 {
	return [2]uint32{uint32(u.value), uint32(u.value >> 32)}
}

// Bytes returns the 8 little-endian bytes of the value.
func (u Uint64) Bytes() []byte {
	bytes := make([]byte, Uint64Length)
	binary.LittleEndian.PutUint64(bytes, u.value)

	return bytes
}

// Hex returns the value as 16 lowercase hex digits.
func (u Uint64) Hex() string {
	var bigEndian [Uint64Length]byte
	binary.BigEndian.PutUint64(bigEndian[:], u.value)

	return hex.EncodeToString(bigEndian[:])
}

// TopBit reports whether the most significant bit is set.
func (u Uint64) TopBit() bool {
	return u.value&(1<<63) != 0
}

// IsZero reports whether the value is 0.
func (u Uint64) IsZero() bool {
	return u.value == 0
}

// Equal reports whether both values are the same.
func (u Uint64) Equal(other Uint64) bool {
	return u.value == other.value
}

// Compare returns -1, 0 or 1 if u is smaller, equal or bigger than other.
func (u Uint64) Compare(other Uint64) int {
	switch {
	case u.value < other.value:
		return -1
	case u.value > other.value:
		return 1
	default:
		return 0
	}
}

// String returns the decimal representation.
func (u Uint64) String() string {
	return strconv.FormatUint(u.value, 10)
}

// MarshalJSON encodes the value as [low, high].
func (u Uint64) MarshalJSON() ([]byte, error) {
	return json.Marshal(u.IntArray())
}

// UnmarshalJSON decodes a [low, high] array.
func (u *Uint64) UnmarshalJSON(data []byte) error {
	var lowHigh []uint32
	if err := json.Unmarshal(data, &lowHigh); err != nil {
		return errors.Errorf("failed to decode Uint64 (%v): %w", err, cerrors.ErrParseBytesFailed)
	}
	if len(lowHigh) != 2 {
		return sdkerrors.InvalidInput("uint64", "expected [low, high], got %d elements", len(lowHigh))
	}
	*u = Uint64FromIntArray([2]uint32{lowHigh[0], lowHigh[1]})

	return nil
}

// endregion ///////////////////////////////////////////////////////////////////////////////////////////////////////////
