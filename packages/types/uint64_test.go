package types

import (
	"encoding/json"
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/proximax-storage/sirius-client-go/packages/sdkerrors"
)

func TestUint64RoundTrips(t *testing.T) {
	for _, value := range []uint64{0, 1, 0xffffffff, 1 << 32, 0x84b3552d375ffa4b, ^uint64(0)} {
		u := NewUint64(value)

		fromHex, err := Uint64FromHex(u.Hex())
		require.NoError(t, err)
		assert.Equal(t, u, fromHex)

		assert.Equal(t, u, Uint64FromIntArray(u.IntArray()))

		fromBytes, consumed, err := Uint64FromBytes(u.Bytes())
		require.NoError(t, err)
		assert.Equal(t, Uint64Length, consumed)
		assert.Equal(t, u, fromBytes)
	}
}

func TestUint64Representations(t *testing.T) {
	u := NewUint64(0x84b3552d375ffa4b)

	assert.Equal(t, "84b3552d375ffa4b", u.Hex())
	assert.Equal(t, [2]uint32{0x375ffa4b, 0x84b3552d}, u.IntArray())
	assert.Equal(t, []byte{0x4b, 0xfa, 0x5f, 0x37, 0x2d, 0x55, 0xb3, 0x84}, u.Bytes())
	assert.True(t, u.TopBit())
	assert.Equal(t, "0000000000000001", NewUint64(1).Hex())
}

func TestUint64JSON(t *testing.T) {
	u := NewUint64(0x84b3552d375ffa4b)

	data, err := json.Marshal(u)
	require.NoError(t, err)
	assert.Equal(t, "[929036875,2226345261]", string(data))

	var decoded Uint64
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, u, decoded)

	err = json.Unmarshal([]byte("[1,2,3]"), &decoded)
	assert.True(t, errors.Is(err, sdkerrors.ErrInvalidInput))
}

func TestUint64Ordering(t *testing.T) {
	assert.Equal(t, -1, NewUint64(1).Compare(NewUint64(2)))
	assert.Equal(t, 0, NewUint64(2).Compare(NewUint64(2)))
	assert.Equal(t, 1, NewUint64(1<<40).Compare(NewUint64(2)))
	assert.True(t, NewUint64(7).Equal(Uint64FromIntArray([2]uint32{7, 0})))
}

func TestUint64FromHexRejectsMalformed(t *testing.T) {
	_, err := Uint64FromHex("")
	assert.True(t, errors.Is(err, sdkerrors.ErrInvalidInput))

	_, err = Uint64FromHex("00000000000000000")
	assert.True(t, errors.Is(err, sdkerrors.ErrInvalidInput))

	_, err = Uint64FromHex("xyz")
	assert.True(t, errors.Is(err, sdkerrors.ErrInvalidInput))
}

func TestHashHex(t *testing.T) {
	hash, err := HashFromHex("7b00000000000000000000000000000000000000000000000000000000000000")
	require.NoError(t, err)
	assert.Equal(t, byte(0x7b), hash[0])
	assert.Equal(t, "7B00000000000000000000000000000000000000000000000000000000000000", hash.Hex())
	assert.False(t, hash.IsEmpty())
	assert.True(t, EmptyHash.IsEmpty())

	_, err = HashFromHex("7b")
	assert.True(t, errors.Is(err, sdkerrors.ErrInvalidInput))
}
