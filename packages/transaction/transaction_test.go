package transaction

import (
	"encoding/hex"
	"testing"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/iotaledger/hive.go/cerrors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/proximax-storage/sirius-client-go/packages/account"
	"github.com/proximax-storage/sirius-client-go/packages/address"
	"github.com/proximax-storage/sirius-client-go/packages/asset"
	"github.com/proximax-storage/sirius-client-go/packages/clock"
	"github.com/proximax-storage/sirius-client-go/packages/sdkerrors"
	"github.com/proximax-storage/sirius-client-go/packages/types"
)

const (
	signerPrivateKey   = "26b64cb10f005e5988a36744ca19e20d835ccc7c105aaa5f3b212da593180930"
	cosignerPrivateKey = "68b3fbb18729c1fde225c57f8ce080fa828f0067e451a3fd81fa628842b0b763"
	recipientRaw       = "WCVE6EC5EPQO7PWXGZSNY4V2SIHUNHDKXDZMXDMY"
	generationHashHex  = "56D112C98F7A7E34D1AEDC4BD01BC06CA2276DD546A93E36690B785E82439CA9"

	unsignedTransferHex = "a9000000" +
		"00000000000000000000000000000000000000000000000000000000000000000000000000000000000000000000000000000000000000000000000000000000" +
		"0000000000000000000000000000000000000000000000000000000000000000" +
		"030000b0" + "5441" + "0000000000000000" + "80ee360000000000" +
		"b0aa4f105d23e0efbed73664dc72ba920f469c6ab8f2cb8d98" + "0300" + "01" + "00" + "6869" + "f6bd1691a142fbbf" + "0100000000000000"
	signedTransferHex = "A9000000F4FD6007572B16F06DC3B692A2185DE57C6AD4502C2EE47E70D773D59C5F6EE09ED9EE0B104673A77ACEE7FDCB391DA58C2FB9631E0E4BF074A6CC67778BBC01C2F93346E27CE6AD1A9F8F5E3066F8326593A406BDF357ACB041E2F9AB402EFE030000B05441000000000000000080EE360000000000B0AA4F105D23E0EFBED73664DC72BA920F469C6AB8F2CB8D98030001006869F6BD1691A142FBBF0100000000000000"
	signedTransferHash = "2E7A1E8F00878569793063F4DADA1FA3777A951B0FBA51CBAF17DC5F6B62F84B"
)

var testDeadline = NewDeadlineFromTime(NemesisEpoch.Add(time.Hour))

func testAccount(t *testing.T, privateKey string) *account.Account {
	acc, err := account.FromPrivateKey(privateKey, address.PrivateTest, nil)
	require.NoError(t, err)

	return acc
}

func testGenerationHash(t *testing.T) types.Hash {
	hash, err := types.HashFromHex(generationHashHex)
	require.NoError(t, err)

	return hash
}

func testTransfer(t *testing.T) *Transfer {
	recipient, err := address.FromRaw(recipientRaw)
	require.NoError(t, err)

	transfer, err := NewTransfer(testDeadline, recipient, []*asset.Mosaic{asset.XPX(1)}, NewPlainMessage("hi"), address.PrivateTest)
	require.NoError(t, err)

	return transfer
}

func TestTransfer_Bytes(t *testing.T) {
	transfer := testTransfer(t)

	payload, err := Bytes(transfer)
	require.NoError(t, err)
	assert.Equal(t, unsignedTransferHex, hex.EncodeToString(payload))
	assert.Equal(t, 169, transfer.Size())

	header, err := ParseCommon(payload)
	require.NoError(t, err)
	assert.Equal(t, uint32(169), header.Size)
	assert.Equal(t, TransferType, header.Type)
	assert.Equal(t, EntityVersion(3), header.Version)
	assert.Equal(t, address.PrivateTest, header.NetworkType)
	assert.Equal(t, uint64(3600000), header.Deadline.Uint64())
}

func TestTransfer_EmptyMessage(t *testing.T) {
	recipient, err := address.FromRaw(recipientRaw)
	require.NoError(t, err)

	transfer, err := NewTransfer(testDeadline, recipient, nil, nil, address.PrivateTest)
	require.NoError(t, err)

	payload, err := Bytes(transfer)
	require.NoError(t, err)
	require.Len(t, payload, HeaderSize+25+2+1+1)
	assert.Equal(t, []byte{1, 0, 0, 0}, payload[HeaderSize+25:])
}

func TestTransfer_Invalid(t *testing.T) {
	_, err := NewTransfer(testDeadline, nil, nil, nil, address.PrivateTest)
	assert.True(t, errors.Is(err, sdkerrors.ErrInvalidInput))

	recipient, err := address.FromRaw(recipientRaw)
	require.NoError(t, err)
	transfer, err := NewTransfer(nil, recipient, nil, nil, address.PrivateTest)
	require.NoError(t, err)
	_, err = Bytes(transfer)
	assert.True(t, errors.Is(err, sdkerrors.ErrInvalidInput))
}

func TestSign(t *testing.T) {
	signer := testAccount(t, signerPrivateKey)
	generationHash := testGenerationHash(t)

	signed, err := Sign(testTransfer(t), signer, generationHash)
	require.NoError(t, err)
	assert.Equal(t, signedTransferHex, signed.PayloadHex())
	assert.Equal(t, signedTransferHash, signed.Hash().Hex())
	assert.Equal(t, TransferType, signed.EntityType())
	assert.Equal(t, signer.PublicKey, signed.Signer())

	payload := signed.Payload()
	assert.Equal(t, signed.Hash(), Hash(payload, generationHash))

	again, err := Sign(testTransfer(t), signer, generationHash)
	require.NoError(t, err)
	assert.Equal(t, signed, again)
}

func TestSignedTransaction_Verify(t *testing.T) {
	signer := testAccount(t, signerPrivateKey)
	generationHash := testGenerationHash(t)

	signed, err := Sign(testTransfer(t), signer, generationHash)
	require.NoError(t, err)
	assert.True(t, signed.Verify(generationHash, nil))

	otherHash := generationHash
	otherHash[0] ^= 0xff
	assert.False(t, signed.Verify(otherHash, nil))

	restored, err := NewSignedTransaction(TransferType, signed.PayloadHex(), signed.Hash())
	require.NoError(t, err)
	assert.Equal(t, signed, restored)
}

func TestSign_Errors(t *testing.T) {
	signer := testAccount(t, signerPrivateKey)

	_, err := Sign(testTransfer(t), signer, types.EmptyHash)
	assert.True(t, errors.Is(err, sdkerrors.ErrMissingGenerationHash))
	assert.True(t, errors.Is(err, sdkerrors.ErrSigningFailed))

	_, err = Sign(testTransfer(t), nil, testGenerationHash(t))
	assert.True(t, errors.Is(err, sdkerrors.ErrSigningFailed))
}

func TestAggregate(t *testing.T) {
	signer := testAccount(t, signerPrivateKey)
	cosigner := testAccount(t, cosignerPrivateKey)
	generationHash := testGenerationHash(t)

	inner := testTransfer(t)
	inner.ToAggregate(signer.PublicAccount)

	aggregate, err := NewAggregateComplete(testDeadline, []Transaction{inner}, address.PrivateTest)
	require.NoError(t, err)
	assert.Equal(t, "59000000c2f93346e27ce6ad1a9f8f5e3066f8326593a406bdf357acb041e2f9ab402efe030000b05441b0aa4f105d23e0efbed73664dc72ba920f469c6ab8f2cb8d98030001006869f6bd1691a142fbbf0100000000000000", hex.EncodeToString(aggregate.InnerPayload()))

	signed, err := SignWithCosignatories(aggregate, signer, []*account.Account{cosigner}, generationHash)
	require.NoError(t, err)
	assert.Equal(t, "5DAB7FA9F81CA4DFFF837FA91E8577565031436FB0DB3494A3452F8F76A69A23", signed.Hash().Hex())
	assert.Equal(t, "37010000C722DF4029EB18DB53AB396CF8FB02554925C44E2BF5EEADD570EA0A3FE067A250748EBB292DA12E2BB7BC41585BE609147B022845AA7362A4C6B721747B7300C2F93346E27CE6AD1A9F8F5E3066F8326593A406BDF357ACB041E2F9AB402EFE020000B04141000000000000000080EE3600000000005900000059000000C2F93346E27CE6AD1A9F8F5E3066F8326593A406BDF357ACB041E2F9AB402EFE030000B05441B0AA4F105D23E0EFBED73664DC72BA920F469C6AB8F2CB8D98030001006869F6BD1691A142FBBF0100000000000000363D4890D66E67C1C3441BF16496421CCAEAF021AF771E0504A97C7D931C8D7AB846CC4857F957B94E2CFA0C6ECF930E17CF835465F6190248173474B4F43375104C39CD7C7FD1F8D7C68039E3F5E38D20EEECABA27857FC03529CE767B93C0A", signed.PayloadHex())
	assert.True(t, signed.Verify(generationHash, nil))

	unsigned, err := Sign(aggregate, signer, generationHash)
	require.NoError(t, err)
	assert.Equal(t, unsigned.Hash(), signed.Hash())

	payload := signed.Payload()
	cosignatures, err := ParseAggregateCosignatures(payload, signed.Hash())
	require.NoError(t, err)
	require.Len(t, cosignatures, 1)
	assert.Equal(t, cosigner.PublicKey, cosignatures[0].Signer)
	assert.True(t, cosigner.VerifySignature(signed.Hash().Bytes(), cosignatures[0].Signature))
	assert.True(t, cosignatures[0].Verify(nil))
	assert.Equal(t, payload[len(payload)-CosignatureSize:], append(cosigner.PublicKey.Bytes(), cosignatures[0].Signature.Bytes()...))

	headers, err := ParseEmbeddedHeaders(payload)
	require.NoError(t, err)
	require.Len(t, headers, 1)
	assert.Equal(t, uint32(inner.Size()-SignatureSize-MaxFeeSize-DeadlineSize), headers[0].Size)
	assert.Equal(t, signer.PublicKey, headers[0].Signer)
	assert.Equal(t, TransferType, headers[0].Type)
}

func TestParseAggregateCosignatures_Truncated(t *testing.T) {
	payload := make([]byte, HeaderSize+4)
	payload[HeaderSize] = 0xff

	cosignatures, err := ParseAggregateCosignatures(payload, types.Hash{})
	assert.True(t, errors.Is(err, cerrors.ErrParseBytesFailed))
	assert.Empty(t, cosignatures)
}

func TestAggregate_CosignatureOrder(t *testing.T) {
	signer := testAccount(t, signerPrivateKey)
	generationHash := testGenerationHash(t)

	cosigners := make([]*account.Account, 3)
	for i := range cosigners {
		cosigner, err := account.New(address.PrivateTest, nil)
		require.NoError(t, err)
		cosigners[i] = cosigner
	}

	inner := testTransfer(t)
	inner.ToAggregate(cosigners[0].PublicAccount)
	aggregate, err := NewAggregateBonded(testDeadline, []Transaction{inner}, address.PrivateTest)
	require.NoError(t, err)

	signed, err := SignWithCosignatories(aggregate, signer, cosigners, generationHash)
	require.NoError(t, err)
	assert.Equal(t, AggregateBondedType, signed.EntityType())

	payload := signed.Payload()
	header, err := ParseCommon(payload)
	require.NoError(t, err)
	assert.Equal(t, uint32(len(payload)), header.Size)
	assert.Equal(t, aggregate.Size()+3*CosignatureSize, len(payload))

	trailer := payload[aggregate.Size():]
	for i, cosigner := range cosigners {
		record := trailer[i*CosignatureSize : (i+1)*CosignatureSize]
		assert.Equal(t, cosigner.PublicKey.Bytes(), record[:SignerSize])
		assert.Equal(t, cosigner.SignData(signed.Hash().Bytes()).Bytes(), record[SignerSize:])
	}
}

func TestAggregate_Invalid(t *testing.T) {
	_, err := NewAggregateComplete(testDeadline, nil, address.PrivateTest)
	assert.True(t, errors.Is(err, sdkerrors.ErrInvalidAggregate))

	_, err = NewAggregateComplete(testDeadline, []Transaction{testTransfer(t)}, address.PrivateTest)
	assert.True(t, errors.Is(err, sdkerrors.ErrInvalidAggregate))
}

func TestSignCosignature(t *testing.T) {
	cosigner := testAccount(t, cosignerPrivateKey)
	hash, err := types.HashFromHex(signedTransferHash)
	require.NoError(t, err)

	cosignature, err := SignCosignature(hash, cosigner)
	require.NoError(t, err)
	assert.Equal(t, hash, cosignature.ParentHash)
	assert.Equal(t, cosigner.PublicKey, cosignature.Signer)
	assert.True(t, cosignature.Verify(nil))

	_, err = SignCosignature(types.EmptyHash, cosigner)
	assert.True(t, errors.Is(err, sdkerrors.ErrSigningFailed))
}

func TestHashLock(t *testing.T) {
	signer := testAccount(t, signerPrivateKey)
	generationHash := testGenerationHash(t)

	signedTransfer, err := Sign(testTransfer(t), signer, generationHash)
	require.NoError(t, err)
	_, err = NewHashLock(testDeadline, asset.XPXRelative(10), 240, signedTransfer, address.PrivateTest)
	assert.True(t, errors.Is(err, sdkerrors.ErrInvalidInput))

	inner := testTransfer(t)
	inner.ToAggregate(signer.PublicAccount)
	aggregate, err := NewAggregateBonded(testDeadline, []Transaction{inner}, address.PrivateTest)
	require.NoError(t, err)
	signedAggregate, err := Sign(aggregate, signer, generationHash)
	require.NoError(t, err)

	lock, err := NewHashLock(testDeadline, asset.XPXRelative(10), 240, signedAggregate, address.PrivateTest)
	require.NoError(t, err)

	payload, err := Bytes(lock)
	require.NoError(t, err)
	require.Len(t, payload, HeaderSize+56)
	assert.Equal(t, asset.XPXNamespaceID.ID().Bytes(), payload[HeaderSize:HeaderSize+8])
	assert.Equal(t, types.NewUint64(10000000).Bytes(), payload[HeaderSize+8:HeaderSize+16])
	assert.Equal(t, types.NewUint64(240).Bytes(), payload[HeaderSize+16:HeaderSize+24])
	assert.Equal(t, signedAggregate.Hash().Bytes(), payload[HeaderSize+24:])
}

func TestDeadline(t *testing.T) {
	assert.Equal(t, int64(1459468800000), NemesisEpoch.UnixNano()/int64(time.Millisecond))
	assert.Equal(t, uint64(3600000), testDeadline.Uint64().Uint64())
	assert.True(t, DeadlineFromUint64(types.NewUint64(3600000)).Equal(testDeadline.Time))

	now := time.Date(2022, 5, 1, 12, 0, 0, 0, time.UTC)
	deadline := NewDeadline(2*time.Hour, clock.FixedClock(now))
	assert.Equal(t, now.Add(2*time.Hour), deadline.Time)

	assert.Zero(t, NewDeadlineFromTime(NemesisEpoch.Add(-time.Hour)).Uint64().Uint64())
}

func TestEntityType(t *testing.T) {
	assert.Equal(t, "Transfer", TransferType.String())
	assert.Equal(t, EntityVersion(2), AggregateBondedType.Version())
	assert.True(t, AggregateCompletedType.IsAggregate())
	assert.False(t, TransferType.IsAggregate())
	assert.False(t, EntityType(0x1234).IsKnown())
	assert.Equal(t, "EntityType(0x1234)", EntityType(0x1234).String())
}
