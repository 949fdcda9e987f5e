package abi

import (
	"math/big"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeParamsEmptyData(t *testing.T) {
	values, err := DecodeParams(nil, nil)
	require.NoError(t, err)
	assert.Empty(t, values)

	values, err = DecodeParams([]Type{Uint(256), BoolType()}, nil)
	require.NoError(t, err)
	require.Len(t, values, 2)
	assert.True(t, values[0].IsAbsent())
	assert.True(t, values[1].IsAbsent())
}

func TestDecodeTruncatedBuffer(t *testing.T) {
	_, err := DecodeParams([]Type{Uint(256)}, make([]byte, 10))
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrTruncated)
}

func TestEncodeDecodeRoundTripEveryWordIsAMultipleOf32(t *testing.T) {
	ty, err := ParseType("(uint256,address,bool,bytes,string,uint256[])")
	require.NoError(t, err)

	value := NewTuple([]NamedValue{
		{Name: "amount", Value: NewUint(big.NewInt(123456789))},
		{Name: "owner", Value: NewAddress(common.HexToAddress("0x00000000000000000000000000000000000042"))},
		{Name: "ok", Value: NewBool(true)},
		{Name: "payload", Value: NewBytes([]byte("variable length payload"))},
		{Name: "label", Value: NewString("hello")},
		{Name: "amounts", Value: NewArray([]Value{
			NewUint(big.NewInt(1)), NewUint(big.NewInt(2)), NewUint(big.NewInt(3)),
		})},
	})

	data, err := EncodeParams([]Type{ty}, []Value{value})
	require.NoError(t, err)
	assert.Zero(t, len(data)%WordSize, "encoded length must be a multiple of 32")

	decoded, err := DecodeParams([]Type{ty}, data)
	require.NoError(t, err)
	require.Len(t, decoded, 1)

	fields := decoded[0].Fields
	assert.Equal(t, big.NewInt(123456789), fields[0].Value.Int)
	assert.Equal(t, common.HexToAddress("0x00000000000000000000000000000000000042"), fields[1].Value.Addr)
	assert.True(t, fields[2].Value.Bool)
	assert.Equal(t, []byte("variable length payload"), fields[3].Value.Bytes)
	assert.Equal(t, "hello", fields[4].Value.Str)
	require.Len(t, fields[5].Value.Items, 3)
	assert.Equal(t, big.NewInt(2), fields[5].Value.Items[1].Int)
}

func TestDecodeNestedDynamicTupleOffsetsAreBlockRelative(t *testing.T) {
	ty, err := ParseType("((bytes,uint256),(bytes,uint256))")
	require.NoError(t, err)

	value := NewTuple([]NamedValue{
		{Value: NewTuple([]NamedValue{
			{Value: NewBytes([]byte("first"))},
			{Value: NewUint(big.NewInt(1))},
		})},
		{Value: NewTuple([]NamedValue{
			{Value: NewBytes([]byte("second, a bit longer"))},
			{Value: NewUint(big.NewInt(2))},
		})},
	})

	data, err := EncodeParams([]Type{ty}, []Value{value})
	require.NoError(t, err)

	decoded, err := DecodeParams([]Type{ty}, data)
	require.NoError(t, err)

	outer := decoded[0].Fields
	assert.Equal(t, []byte("first"), outer[0].Value.Fields[0].Value.Bytes)
	assert.Equal(t, big.NewInt(1), outer[0].Value.Fields[1].Value.Int)
	assert.Equal(t, []byte("second, a bit longer"), outer[1].Value.Fields[0].Value.Bytes)
	assert.Equal(t, big.NewInt(2), outer[1].Value.Fields[1].Value.Int)
}

func TestDecodeInvalidOffsetOutOfBounds(t *testing.T) {
	data := make([]byte, 32)
	// An offset pointing past the end of the single-word buffer.
	big.NewInt(1024).FillBytes(data)
	_, err := DecodeParams([]Type{BytesType()}, data)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidOffset)
}

func TestDecodeInvalidUTF8String(t *testing.T) {
	ty := StringType()
	data, err := EncodeParams([]Type{BytesType()}, []Value{NewBytes([]byte{0xff, 0xfe, 0xfd})})
	require.NoError(t, err)
	_, err = DecodeParams([]Type{ty}, data)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidUTF8)
}

// TestDecodeUint8OverflowWord mirrors spec scenario 6: a uint8 slot
// holding the 32-byte word for 256 (0x100) must fail with RangeError
// on decode, the same way an out-of-range value fails on encode.
func TestDecodeUint8OverflowWord(t *testing.T) {
	word := make([]byte, WordSize)
	big.NewInt(256).FillBytes(word)

	_, err := DecodeParams([]Type{Uint(8)}, word)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrRangeError)
}

func TestEncodeTypeMismatchOnFixedArrayArity(t *testing.T) {
	ty := FixedArray(Uint(256), 2)
	_, err := EncodeParams([]Type{ty}, []Value{NewArray([]Value{NewUint(big.NewInt(1))})})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrTypeMismatch)
}

// TestDecodeDynamicArrayHugeLengthRejectedBeforeAllocating guards
// against a crafted length word (here, 2^62) driving an allocation
// sized off attacker-controlled input before any bounds check runs —
// it must fail with ErrTruncated, not panic or exhaust memory.
func TestDecodeDynamicArrayHugeLengthRejectedBeforeAllocating(t *testing.T) {
	data := make([]byte, 2*WordSize)
	big.NewInt(int64(WordSize)).FillBytes(data[:WordSize]) // offset -> start of tail
	new(big.Int).Lsh(big.NewInt(1), 62).FillBytes(data[WordSize:])

	_, err := DecodeParams([]Type{DynamicArray(Uint(256))}, data)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrTruncated)
}

// TestDecodeFixedArrayHugeArrayLenRejectedBeforeAllocating exercises
// the FixedArray side of the same guard: ArrayLen can come straight
// from an attacker-supplied interface document (registry.go/human.go)
// rather than from decoded bytes, so a dynamic-element fixed array
// with an enormous declared length must also fail before make()-ing
// that many Types/Values.
func TestDecodeFixedArrayHugeArrayLenRejectedBeforeAllocating(t *testing.T) {
	ty := FixedArray(BytesType(), 1<<30)
	data := make([]byte, 2*WordSize)
	big.NewInt(int64(WordSize)).FillBytes(data[:WordSize]) // offset -> start of tail

	_, err := DecodeParams([]Type{ty}, data)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrTruncated)
}
