package transaction

import (
	"github.com/cockroachdb/errors"
	"github.com/iotaledger/hive.go/cerrors"
	"github.com/iotaledger/hive.go/marshalutil"
	"github.com/iotaledger/hive.go/stringify"

	"github.com/proximax-storage/sirius-client-go/packages/address"
	"github.com/proximax-storage/sirius-client-go/packages/crypto"
	"github.com/proximax-storage/sirius-client-go/packages/types"
)

// region ParsedHeader /////////////////////////////////////////////////////////////////////////////////////////////////

// ParsedHeader is the header read back from a wire payload. Signature, MaxFee and Deadline are zero for embedded
// headers.
type ParsedHeader struct {
	Size        uint32
	Signature   crypto.Signature
	Signer      crypto.PublicKey
	NetworkType address.NetworkType
	Version     EntityVersion
	Type        EntityType
	MaxFee      types.Uint64
	Deadline    types.Uint64
}

// ParseCommon reads the common header of a standalone payload.
func ParseCommon(payload []byte) (header *ParsedHeader, err error) {
	marshalUtil := marshalutil.New(payload)
	header = &ParsedHeader{}

	if header.Size, err = marshalUtil.ReadUint32(); err != nil {
		return nil, errors.Errorf("failed to parse size (%v): %w", err, cerrors.ErrParseBytesFailed)
	}
	signature, err := marshalUtil.ReadBytes(SignatureSize)
	if err != nil {
		return nil, errors.Errorf("failed to parse signature (%v): %w", err, cerrors.ErrParseBytesFailed)
	}
	copy(header.Signature[:], signature)
	if err = header.parseSignerVersionType(marshalUtil); err != nil {
		return nil, err
	}
	if header.MaxFee, err = types.Uint64FromMarshalUtil(marshalUtil); err != nil {
		return nil, errors.Errorf("failed to parse max fee: %w", err)
	}
	if header.Deadline, err = types.Uint64FromMarshalUtil(marshalUtil); err != nil {
		return nil, errors.Errorf("failed to parse deadline: %w", err)
	}
	if int(header.Size) > len(payload) {
		return nil, errors.Errorf("size field %d exceeds payload of %d bytes: %w", header.Size, len(payload), cerrors.ErrParseBytesFailed)
	}

	return header, nil
}

// ParseEmbeddedHeaders reads the headers of the inner transactions of an aggregate payload, in order.
func ParseEmbeddedHeaders(payload []byte) (headers []*ParsedHeader, err error) {
	innerSize, err := aggregateInnerSize(payload)
	if err != nil {
		return nil, err
	}
	if HeaderSize+4+innerSize > len(payload) {
		return nil, errors.Errorf("inner payload of %d bytes exceeds payload: %w", innerSize, cerrors.ErrParseBytesFailed)
	}

	inner := payload[HeaderSize+4 : HeaderSize+4+innerSize]
	for offset := 0; offset < len(inner); {
		marshalUtil := marshalutil.New(inner[offset:])
		header := &ParsedHeader{}
		if header.Size, err = marshalUtil.ReadUint32(); err != nil {
			return nil, errors.Errorf("failed to parse size of inner transaction %d (%v): %w", len(headers), err, cerrors.ErrParseBytesFailed)
		}
		if header.Size < EmbeddedHeaderSize || offset+int(header.Size) > len(inner) {
			return nil, errors.Errorf("inner transaction %d has invalid size %d: %w", len(headers), header.Size, cerrors.ErrParseBytesFailed)
		}
		if err = header.parseSignerVersionType(marshalUtil); err != nil {
			return nil, err
		}

		headers = append(headers, header)
		offset += int(header.Size)
	}

	return headers, nil
}

// ParseAggregateCosignatures reads the cosignatures appended to a signed aggregate payload.
func ParseAggregateCosignatures(payload []byte, parentHash types.Hash) (cosignatures []*CosignatureSignedTransaction, err error) {
	innerSize, err := aggregateInnerSize(payload)
	if err != nil {
		return nil, err
	}

	end := HeaderSize + 4 + innerSize
	if end > len(payload) {
		return nil, errors.Errorf("aggregate body of %d bytes exceeds payload of %d bytes: %w", innerSize, len(payload), cerrors.ErrParseBytesFailed)
	}

	marshalUtil := marshalutil.New(payload)
	marshalUtil.ReadSeek(end)
	for marshalUtil.ReadOffset() < len(payload) {
		signer, err := marshalUtil.ReadBytes(SignerSize)
		if err != nil {
			return nil, errors.Errorf("failed to parse cosigner %d (%v): %w", len(cosignatures), err, cerrors.ErrParseBytesFailed)
		}
		signature, err := marshalUtil.ReadBytes(SignatureSize)
		if err != nil {
			return nil, errors.Errorf("failed to parse cosignature %d (%v): %w", len(cosignatures), err, cerrors.ErrParseBytesFailed)
		}

		cosignature := &CosignatureSignedTransaction{ParentHash: parentHash}
		copy(cosignature.Signer[:], signer)
		copy(cosignature.Signature[:], signature)
		cosignatures = append(cosignatures, cosignature)
	}

	return cosignatures, nil
}

// String returns a human-readable version of the ParsedHeader.
func (p *ParsedHeader) String() string {
	return stringify.Struct("ParsedHeader",
		stringify.StructField("size", p.Size),
		stringify.StructField("signer", p.Signer),
		stringify.StructField("networkType", p.NetworkType.String()),
		stringify.StructField("version", p.Version),
		stringify.StructField("type", p.Type.String()),
		stringify.StructField("maxFee", p.MaxFee.String()),
		stringify.StructField("deadline", p.Deadline.String()),
	)
}

func (p *ParsedHeader) parseSignerVersionType(marshalUtil *marshalutil.MarshalUtil) error {
	signer, err := marshalUtil.ReadBytes(SignerSize)
	if err != nil {
		return errors.Errorf("failed to parse signer (%v): %w", err, cerrors.ErrParseBytesFailed)
	}
	copy(p.Signer[:], signer)

	version, err := marshalUtil.ReadUint32()
	if err != nil {
		return errors.Errorf("failed to parse version (%v): %w", err, cerrors.ErrParseBytesFailed)
	}
	p.NetworkType = address.NetworkType(version >> 24)
	p.Version = EntityVersion(version)

	entityType, err := marshalUtil.ReadUint16()
	if err != nil {
		return errors.Errorf("failed to parse type (%v): %w", err, cerrors.ErrParseBytesFailed)
	}
	p.Type = EntityType(entityType)

	return nil
}

// endregion ///////////////////////////////////////////////////////////////////////////////////////////////////////////

func aggregateInnerSize(payload []byte) (int, error) {
	if len(payload) < HeaderSize+4 {
		return 0, errors.Errorf("aggregate payload of %d bytes is too short: %w", len(payload), cerrors.ErrParseBytesFailed)
	}

	marshalUtil := marshalutil.New(payload)
	marshalUtil.ReadSeek(HeaderSize)
	innerSize, err := marshalUtil.ReadUint32()
	if err != nil {
		return 0, errors.Errorf("failed to parse inner payload size (%v): %w", err, cerrors.ErrParseBytesFailed)
	}

	return int(innerSize), nil
}
