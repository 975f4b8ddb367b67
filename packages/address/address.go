// Package address derives account addresses from public keys and converts them between their binary, raw (base32),
// encoded (hex) and pretty (dashed) forms.
package address

import (
	"bytes"
	"encoding/hex"
	"encoding/json"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/iotaledger/hive.go/cerrors"
	"github.com/iotaledger/hive.go/marshalutil"
	"github.com/iotaledger/hive.go/stringify"

	"github.com/proximax-storage/sirius-client-go/packages/crypto"
	"github.com/proximax-storage/sirius-client-go/packages/sdkerrors"
	"github.com/proximax-storage/sirius-client-go/packages/types"
)

const (
	// Length is the amount of bytes of an Address.
	Length = 25

	// RawLength is the amount of characters of the base32 form.
	RawLength = 40

	// EncodedLength is the amount of characters of the hex form.
	EncodedLength = 2 * Length

	// ChecksumLength is the amount of trailing checksum bytes.
	ChecksumLength = 4

	prefixedLength = Length - ChecksumLength
	prettyGroup    = 6
	base32Alphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ234567"
)

// region Address //////////////////////////////////////////////////////////////////////////////////////////////////////

// Address is the 25 byte account identifier: network tag (1) | RIPEMD-160(SHA3-256(public key)) (20) | checksum (4).
type Address struct {
	bytes [Length]byte
}

// FromPublicKey derives the Address of a public key on the given network.
func FromPublicKey(publicKey crypto.PublicKey, networkType NetworkType) *Address {
	sha3Digest := crypto.SHA3256(publicKey[:])
	ripemdDigest := crypto.RIPEMD160(sha3Digest[:])

	address := &Address{}
	address.bytes[0] = byte(networkType)
	copy(address.bytes[1:prefixedLength], ripemdDigest[:])
	copy(address.bytes[prefixedLength:], address.checksum())

	return address
}

// FromNamespaceID creates the alias Address that points to a namespace: AliasAddress tag | id (8, little-endian)
// followed by zero bytes.
func FromNamespaceID(namespaceID types.Uint64) *Address {
	address := &Address{}
	address.bytes[0] = byte(AliasAddress)
	copy(address.bytes[1:], namespaceID.Bytes())

	return address
}

// FromRaw parses a raw (base32) address. Dashes and whitespace are ignored and the input is case-insensitive, so both
// raw and pretty forms are accepted. The checksum is verified.
func FromRaw(raw string) (*Address, error) {
	normalized := Normalize(raw)
	if len(normalized) != RawLength {
		return nil, sdkerrors.InvalidAddress(sdkerrors.ReasonLength)
	}
	if strings.IndexFunc(normalized, func(r rune) bool { return !strings.ContainsRune(base32Alphabet, r) }) != -1 {
		return nil, sdkerrors.InvalidAddress(sdkerrors.ReasonCharset)
	}
	if _, err := NetworkTypeFromRaw(normalized); err != nil {
		return nil, err
	}

	decoded, err := crypto.Base32Decode(normalized)
	if err != nil || len(decoded) != Length {
		return nil, sdkerrors.InvalidAddress(sdkerrors.ReasonCharset)
	}

	address := &Address{}
	copy(address.bytes[:], decoded)
	if !address.IsValid() {
		return nil, sdkerrors.InvalidAddress(sdkerrors.ReasonChecksum)
	}

	return address, nil
}

// FromEncoded parses the 50 character hex form. Length, charset and network are checked; the checksum is not, so
// that addresses reported by the node round-trip unchanged. Call IsValid on the result before trusting hex input from
// any other source.
func FromEncoded(encoded string) (*Address, error) {
	if len(encoded) != EncodedLength {
		return nil, sdkerrors.InvalidAddress(sdkerrors.ReasonLength)
	}

	decoded, err := hex.DecodeString(encoded)
	if err != nil {
		return nil, sdkerrors.InvalidAddress(sdkerrors.ReasonCharset)
	}

	address, _, err := FromBytes(decoded)

	return address, err
}

// FromBytes unmarshals an Address from a sequence of bytes.
func FromBytes(bytes []byte) (address *Address, consumedBytes int, err error) {
	marshalUtil := marshalutil.New(bytes)
	if address, err = FromMarshalUtil(marshalUtil); err != nil {
		return nil, 0, err
	}
	consumedBytes = marshalUtil.ReadOffset()

	return
}

// FromMarshalUtil reads an Address from the given MarshalUtil and checks its network tag.
func FromMarshalUtil(marshalUtil *marshalutil.MarshalUtil) (*Address, error) {
	addressBytes, err := marshalUtil.ReadBytes(Length)
	if err != nil {
		return nil, errors.Errorf("failed to parse Address (%v): %w", err, cerrors.ErrParseBytesFailed)
	}

	address := &Address{}
	copy(address.bytes[:], addressBytes)
	if !address.NetworkType().IsValid() {
		return nil, sdkerrors.InvalidAddress(sdkerrors.ReasonNetwork)
	}

	return address, nil
}

// IsValidRaw reports whether FromRaw accepts the given string.
func IsValidRaw(raw string) bool {
	_, err := FromRaw(raw)

	return err == nil
}

// Normalize removes dashes and whitespace from a raw or pretty address and uppercases it.
func Normalize(raw string) string {
	return strings.ToUpper(strings.Map(func(r rune) rune {
		if r == '-' || r == ' ' || r == '\t' || r == '\n' || r == '\r' {
			return -1
		}

		return r
	}, raw))
}

// NetworkType returns the network tag stored in the first byte.
func (a *Address) NetworkType() NetworkType {
	return NetworkType(a.bytes[0])
}

// IsAlias reports whether the Address is a namespace alias.
func (a *Address) IsAlias() bool {
	return a.NetworkType() == AliasAddress
}

// IsValid re-derives the checksum and compares it with the stored one.
func (a *Address) IsValid() bool {
	return bytes.Equal(a.bytes[prefixedLength:], a.checksum())
}

// Bytes returns a copy of the 25 address bytes.
func (a *Address) Bytes() []byte {
	return append([]byte{}, a.bytes[:]...)
}

// Array returns the address bytes as an array.
func (a *Address) Array() [Length]byte {
	return a.bytes
}

// Raw returns the 40 character base32 form.
func (a *Address) Raw() string {
	return crypto.Base32Encode(a.bytes[:])
}

// Encoded returns the 50 character uppercase hex form.
func (a *Address) Encoded() string {
	return strings.ToUpper(hex.EncodeToString(a.bytes[:]))
}

// Pretty returns the raw form with a dash after every 6 characters; the last group has 4 characters.
func (a *Address) Pretty() string {
	raw := a.Raw()

	var builder strings.Builder
	for i := 0; i < len(raw); i += prettyGroup {
		if i > 0 {
			builder.WriteByte('-')
		}
		end := i + prettyGroup
		if end > len(raw) {
			end = len(raw)
		}
		builder.WriteString(raw[i:end])
	}

	return builder.String()
}

// Equal reports whether both addresses have the same bytes.
func (a *Address) Equal(other *Address) bool {
	if a == nil || other == nil {
		return a == other
	}

	return a.bytes == other.bytes
}

// MarshalJSON encodes the Address in its raw form.
func (a *Address) MarshalJSON() ([]byte, error) {
	return json.Marshal(a.Raw())
}

// UnmarshalJSON decodes a raw or pretty address.
func (a *Address) UnmarshalJSON(data []byte) error {
	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return errors.Errorf("failed to decode Address (%v): %w", err, cerrors.ErrParseBytesFailed)
	}
	parsed, err := FromRaw(raw)
	if err != nil {
		return err
	}
	*a = *parsed

	return nil
}

// String returns a human-readable version of the Address.
func (a *Address) String() string {
	return stringify.Struct("Address",
		stringify.StructField("networkType", a.NetworkType().String()),
		stringify.StructField("raw", a.Raw()),
	)
}

func (a *Address) checksum() []byte {
	digest := crypto.SHA3256(a.bytes[:prefixedLength])

	return digest[:ChecksumLength]
}

// endregion ///////////////////////////////////////////////////////////////////////////////////////////////////////////
