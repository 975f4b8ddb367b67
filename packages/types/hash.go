package types

import (
	"encoding/hex"
	"encoding/json"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/iotaledger/hive.go/cerrors"

	"github.com/proximax-storage/sirius-client-go/packages/sdkerrors"
)

// HashLength is the size of transaction hashes and generation hashes.
const HashLength = 32

// EmptyHash is the zero value of a Hash.
var EmptyHash Hash

// Hash is a 32 byte digest (transaction hash, aggregate hash or network generation hash).
type Hash [HashLength]byte

// HashFromHex parses a 64 character hex string (case insensitive).
func HashFromHex(hexString string) (hash Hash, err error) {
	if len(hexString) != 2*HashLength {
		return hash, sdkerrors.InvalidInput("hash", "expected %d hex characters, got %d", 2*HashLength, len(hexString))
	}
	if _, err = hex.Decode(hash[:], []byte(hexString)); err != nil {
		return hash, sdkerrors.InvalidInput("hash", "malformed hex %q", hexString)
	}

	return hash, nil
}

// HashFromBytes copies the first HashLength bytes into a Hash.
func HashFromBytes(bytes []byte) (hash Hash, consumedBytes int, err error) {
	if len(bytes) < HashLength {
		err = errors.Errorf("bytes too short (%d < %d): %w", len(bytes), HashLength, cerrors.ErrParseBytesFailed)
		return
	}
	copy(hash[:], bytes)

	return hash, HashLength, nil
}

// Bytes returns a copy of the hash bytes.
func (h Hash) Bytes() []byte {
	return append([]byte{}, h[:]...)
}

// IsEmpty reports whether all bytes are zero.
func (h Hash) IsEmpty() bool {
	return h == EmptyHash
}

// Hex returns the uppercase hex form used by the node REST API.
func (h Hash) Hex() string {
	return strings.ToUpper(hex.EncodeToString(h[:]))
}

// String returns the hex form of the hash.
func (h Hash) String() string {
	return h.Hex()
}

// MarshalJSON encodes the hash as a hex string.
func (h Hash) MarshalJSON() ([]byte, error) {
	return json.Marshal(h.Hex())
}

// UnmarshalJSON decodes a hex string.
func (h *Hash) UnmarshalJSON(data []byte) (err error) {
	var hexString string
	if err = json.Unmarshal(data, &hexString); err != nil {
		return errors.Errorf("failed to decode Hash (%v): %w", err, cerrors.ErrParseBytesFailed)
	}
	*h, err = HashFromHex(hexString)

	return err
}
