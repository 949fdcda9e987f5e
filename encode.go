package abi

import (
	"fmt"
	"math/big"

	"github.com/holiman/uint256"
)

// WordSize is the size of an ABI word in bytes.
const WordSize = 32

var (
	one256     = new(big.Int).Lsh(big.NewInt(1), 256)
	maxUint256 = new(big.Int).Sub(one256, big.NewInt(1))
)

// EncodeParams converts a sequence of values plus a matching type
// list into a byte block obeying the head/tail layout.
// Length mismatch fails with ErrArityMismatch.
func EncodeParams(types []Type, values []Value) ([]byte, error) {
	if len(types) != len(values) {
		return nil, fmt.Errorf("%w: %d types, %d values", ErrArityMismatch, len(types), len(values))
	}
	return encodeBlock(types, values)
}

// encodeBlock implements the head/tail layout algorithm
// for one parameter list: a top-level call, a tuple's fields, or a
// fixed array's n copies of its element type. Every recursive call
// here starts a *fresh* block — offsets computed inside are always
// relative to this block's own start, never to an outer buffer. That
// locality is what keeps nested-tuple/array offsets correct.
func encodeBlock(types []Type, values []Value) ([]byte, error) {
	n := len(types)
	heads := make([][]byte, n)
	tails := make([][]byte, n)

	headSize := 0
	for _, t := range types {
		headSize += t.HeadWidth()
	}

	tailOffset := headSize
	for i, t := range types {
		if t.IsDynamic() {
			tail, err := encodeValue(t, values[i])
			if err != nil {
				return nil, fmt.Errorf("field %d (%s): %w", i, t, err)
			}
			heads[i] = encodeUintWord(big.NewInt(int64(tailOffset)))
			tails[i] = tail
			tailOffset += len(tail)
		} else {
			head, err := encodeValue(t, values[i])
			if err != nil {
				return nil, fmt.Errorf("field %d (%s): %w", i, t, err)
			}
			heads[i] = head
		}
	}

	out := make([]byte, 0, tailOffset)
	for _, h := range heads {
		out = append(out, h...)
	}
	for _, tl := range tails {
		out = append(out, tl...)
	}
	return out, nil
}

// encodeValue encodes a single value against a single type, returning
// its complete encoding (head-only for static types, the full
// self-contained blob for dynamic types that the caller places in its
// tail).
func encodeValue(t Type, v Value) ([]byte, error) {
	switch t.Kind {
	case KindUint:
		if v.Kind != ValueUint {
			return nil, fmt.Errorf("%w: expected uint%d, got value kind %d", ErrTypeMismatch, t.Bits, v.Kind)
		}
		return encodeUintChecked(v.Int, bitsOrDefault(t.Bits))
	case KindInt:
		if v.Kind != ValueInt {
			return nil, fmt.Errorf("%w: expected int%d, got value kind %d", ErrTypeMismatch, t.Bits, v.Kind)
		}
		return encodeIntChecked(v.Int, bitsOrDefault(t.Bits))
	case KindBool:
		if v.Kind != ValueBool {
			return nil, fmt.Errorf("%w: expected bool", ErrTypeMismatch)
		}
		return encodeBool(v.Bool), nil
	case KindAddress:
		if v.Kind != ValueAddress {
			return nil, fmt.Errorf("%w: expected address", ErrTypeMismatch)
		}
		return encodeAddress(v.Addr), nil
	case KindFixedBytes:
		if v.Kind != ValueFixedBytes {
			return nil, fmt.Errorf("%w: expected bytes%d", ErrTypeMismatch, t.Size)
		}
		if len(v.Bytes) > t.Size {
			return nil, fmt.Errorf("%w: bytes%d value has %d bytes", ErrTypeMismatch, t.Size, len(v.Bytes))
		}
		return encodeFixedBytes(v.Bytes), nil
	case KindBytes:
		if v.Kind != ValueBytes {
			return nil, fmt.Errorf("%w: expected bytes", ErrTypeMismatch)
		}
		return encodeDynamicBytes(v.Bytes), nil
	case KindString:
		if v.Kind != ValueString {
			return nil, fmt.Errorf("%w: expected string", ErrTypeMismatch)
		}
		return encodeDynamicBytes([]byte(v.Str)), nil
	case KindFixedArray:
		if v.Kind != ValueArray {
			return nil, fmt.Errorf("%w: expected array", ErrTypeMismatch)
		}
		if len(v.Items) != t.ArrayLen {
			return nil, fmt.Errorf("%w: fixed array wants %d elements, got %d", ErrTypeMismatch, t.ArrayLen, len(v.Items))
		}
		return encodeBlock(repeatType(*t.Elem, t.ArrayLen), v.Items)
	case KindDynamicArray:
		if v.Kind != ValueArray {
			return nil, fmt.Errorf("%w: expected array", ErrTypeMismatch)
		}
		body, err := encodeBlock(repeatType(*t.Elem, len(v.Items)), v.Items)
		if err != nil {
			return nil, err
		}
		out := make([]byte, 0, WordSize+len(body))
		out = append(out, encodeUintWord(big.NewInt(int64(len(v.Items))))...)
		out = append(out, body...)
		return out, nil
	case KindTuple:
		if v.Kind != ValueTuple {
			return nil, fmt.Errorf("%w: expected tuple", ErrTypeMismatch)
		}
		if len(v.Fields) != len(t.Fields) {
			return nil, fmt.Errorf("%w: tuple wants %d fields, got %d", ErrTypeMismatch, len(t.Fields), len(v.Fields))
		}
		types := make([]Type, len(t.Fields))
		values := make([]Value, len(v.Fields))
		for i, f := range t.Fields {
			types[i] = f.Type
			values[i] = v.Fields[i].Value
		}
		return encodeBlock(types, values)
	default:
		return nil, fmt.Errorf("%w: unhandled type kind %d", ErrTypeMismatch, t.Kind)
	}
}

func repeatType(t Type, n int) []Type {
	out := make([]Type, n)
	for i := range out {
		out[i] = t
	}
	return out
}

func bitsOrDefault(bits int) int {
	if bits == 0 {
		return 256
	}
	return bits
}

// encodeUintWord left-pads a non-negative big.Int's big-endian bytes
// to 32 bytes. Callers are responsible for range-checking first.
func encodeUintWord(value *big.Int) []byte {
	buf := make([]byte, WordSize)
	value.FillBytes(buf)
	return buf
}

// encodeUintChecked validates 0 <= value < 2^bits, then encodes. Takes
// the holiman/uint256 fast path for the common 256-bit unsigned case,
// mirroring the generator's UseUint256 option (generator/encoders.go
// genUint256Encoding), and falls back to the general big.Int path
// shared by every other width.
func encodeUintChecked(value *big.Int, bits int) ([]byte, error) {
	if value.Sign() < 0 {
		return nil, fmt.Errorf("%w: negative value for uint%d", ErrRangeError, bits)
	}
	if bits == 256 {
		return encodeUint256Fast(value)
	}
	maxVal := new(big.Int).Lsh(big.NewInt(1), uint(bits))
	if value.Cmp(maxVal) >= 0 {
		return nil, fmt.Errorf("%w: value exceeds uint%d", ErrRangeError, bits)
	}
	return encodeUintWord(value), nil
}

// encodeUint256Fast takes the uint256.Int fast path for the common
// full-width unsigned case.
func encodeUint256Fast(value *big.Int) ([]byte, error) {
	if value.Cmp(maxUint256) > 0 {
		return nil, fmt.Errorf("%w: value exceeds uint256", ErrRangeError)
	}
	u, overflow := uint256.FromBig(value)
	if overflow {
		return nil, fmt.Errorf("%w: value exceeds uint256", ErrRangeError)
	}
	var buf [32]byte
	u.WriteToArray32(&buf)
	return buf[:], nil
}

// encodeIntChecked validates -2^(bits-1) <= value <= 2^(bits-1)-1,
// then encodes two's-complement over 256 bits for negative values.
func encodeIntChecked(value *big.Int, bits int) ([]byte, error) {
	minVal := new(big.Int).Neg(new(big.Int).Lsh(big.NewInt(1), uint(bits-1)))
	maxVal := new(big.Int).Sub(new(big.Int).Lsh(big.NewInt(1), uint(bits-1)), big.NewInt(1))
	if value.Cmp(minVal) < 0 || value.Cmp(maxVal) > 0 {
		return nil, fmt.Errorf("%w: value out of range for int%d", ErrRangeError, bits)
	}
	if value.Sign() >= 0 {
		return encodeUintWord(value), nil
	}
	twosComplement := new(big.Int).Add(one256, value)
	return encodeUintWord(twosComplement), nil
}

func encodeBool(value bool) []byte {
	buf := make([]byte, WordSize)
	if value {
		buf[WordSize-1] = 1
	}
	return buf
}

func encodeAddress(addr [20]byte) []byte {
	buf := make([]byte, WordSize)
	copy(buf[WordSize-20:], addr[:])
	return buf
}

func encodeFixedBytes(data []byte) []byte {
	buf := make([]byte, WordSize)
	copy(buf, data)
	return buf
}

// encodeDynamicBytes encodes Bytes/String: a 32-byte length followed
// by the payload, right-padded to the next multiple of 32.
func encodeDynamicBytes(data []byte) []byte {
	padded := pad32(len(data))
	buf := make([]byte, WordSize+padded)
	big.NewInt(int64(len(data))).FillBytes(buf[:WordSize])
	copy(buf[WordSize:], data)
	return buf
}

// pad32 rounds n up to the next multiple of 32.
func pad32(n int) int {
	return (n + WordSize - 1) / WordSize * WordSize
}
