package abi

import (
	"encoding/hex"
	"math/big"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncodeParamsArityMismatch(t *testing.T) {
	_, err := EncodeParams([]Type{Uint(256)}, nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrArityMismatch)
}

func TestEncodeAddressAndUint256(t *testing.T) {
	addr := common.HexToAddress("0x000000000000000000000000000000000000001")
	amount := big.NewInt(1000)

	data, err := EncodeParams([]Type{AddressType(), Uint(256)}, []Value{
		NewAddress(addr),
		NewUint(amount),
	})
	require.NoError(t, err)
	require.Len(t, data, 64)

	assert.Equal(t, addr[:], data[12:32])
	assert.Equal(t, amount, new(big.Int).SetBytes(data[32:64]))
}

func TestEncodeBoolAndNegativeInt(t *testing.T) {
	data, err := EncodeParams([]Type{BoolType(), Int(8)}, []Value{
		NewBool(true),
		NewInt(big.NewInt(-1)),
	})
	require.NoError(t, err)
	require.Len(t, data, 64)
	assert.Equal(t, byte(1), data[31])
	// -1 in two's complement over 256 bits is all 0xff.
	for _, b := range data[32:64] {
		assert.Equal(t, byte(0xff), b)
	}
}

func TestEncodeUint8Overflow(t *testing.T) {
	_, err := EncodeParams([]Type{Uint(8)}, []Value{NewUint(big.NewInt(256))})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrRangeError)
}

func TestEncodeInt8Overflow(t *testing.T) {
	_, err := EncodeParams([]Type{Int(8)}, []Value{NewInt(big.NewInt(128))})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrRangeError)
}

func TestEncodeNegativeUintRejected(t *testing.T) {
	_, err := EncodeParams([]Type{Uint(256)}, []Value{NewUint(big.NewInt(-1))})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrRangeError)
}

func TestEncodeEmptyBytes(t *testing.T) {
	data, err := EncodeParams([]Type{BytesType()}, []Value{NewBytes(nil)})
	require.NoError(t, err)
	// one head offset word + one length word (zero), no payload tail.
	require.Len(t, data, 64)
	assert.Equal(t, int64(0), new(big.Int).SetBytes(data[32:64]).Int64())
}

func TestEncodeFixedArrayOfZeroElements(t *testing.T) {
	ty := FixedArray(Uint(256), 0)
	assert.False(t, ty.IsDynamic())
	data, err := EncodeParams([]Type{ty}, []Value{NewArray(nil)})
	require.NoError(t, err)
	assert.Empty(t, data)
}

func TestEncodeDynamicArrayAndBytesWithTuple(t *testing.T) {
	ty, err := ParseType("(bytes,uint256)")
	require.NoError(t, err)

	payload := []byte("hello world")
	data, err := EncodeParams([]Type{ty}, []Value{
		NewTuple([]NamedValue{
			{Name: "data", Value: NewBytes(payload)},
			{Name: "amount", Value: NewUint(big.NewInt(42))},
		}),
	})
	require.NoError(t, err)

	decoded, err := DecodeParams([]Type{ty}, data)
	require.NoError(t, err)
	require.Len(t, decoded, 1)
	fields := decoded[0].Fields
	assert.Equal(t, payload, fields[0].Value.Bytes)
	assert.Equal(t, big.NewInt(42), fields[1].Value.Int)
}

func TestTransferSelectorMatchesKnownValue(t *testing.T) {
	def := &FunctionDef{
		Name: "transfer",
		Inputs: []Param{
			{Name: "to", Type: AddressType()},
			{Name: "value", Type: Uint(256)},
		},
	}
	sel := FunctionSelector(def)
	assert.Equal(t, "a9059cbb", hex.EncodeToString(sel[:]))
}

func TestTransferEventTopicMatchesKnownValue(t *testing.T) {
	def := &EventDef{
		Name: "Transfer",
		Inputs: []Param{
			{Name: "from", Type: AddressType(), Indexed: true},
			{Name: "to", Type: AddressType(), Indexed: true},
			{Name: "value", Type: Uint(256)},
		},
	}
	topic := EventTopic(def)
	assert.Equal(t, "ddf252ad1be2c89b69c2b068fc378daa952ba7f163c4a11628f55a4df523b3ef", hex.EncodeToString(topic[:]))
}
