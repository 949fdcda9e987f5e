package abi

import (
	"fmt"
	"math/big"
	"unicode/utf8"

	"github.com/ethereum/go-ethereum/common"
)

// DecodeParams parses a byte block plus a type list into a value
// list, the inverse of EncodeParams. An empty or missing data buffer
// with zero types yields the empty list; with a non-empty type list it
// yields len(types) absence sentinels instead of failing — callers
// that require strictness check Value.IsAbsent themselves.
func DecodeParams(types []Type, data []byte) ([]Value, error) {
	if len(data) == 0 {
		if len(types) == 0 {
			return []Value{}, nil
		}
		out := make([]Value, len(types))
		for i := range out {
			out[i] = AbsentValue()
		}
		return out, nil
	}
	return decodeBlock(types, data)
}

// decodeBlock is the inverse of encodeBlock: it walks a head cursor
// over data (the *current block*, whatever its origin) and, for each
// dynamic type, re-reads data relative to that same origin — never to
// an outer buffer. This keeps nested tuple and array offsets anchored
// to their own block rather than to the absolute buffer position,
// avoiding the rounding errors a "round the outer offset down to a
// word boundary, then add the inner offset" scheme produces for
// non-word-aligned nested dynamic offsets.
func decodeBlock(types []Type, data []byte) ([]Value, error) {
	values := make([]Value, len(types))
	cursor := 0
	for i, t := range types {
		width := t.HeadWidth()
		if cursor+width > len(data) {
			return nil, fmt.Errorf("%w: field %d (%s) head at byte %d needs %d bytes, have %d", ErrTruncated, i, t, cursor, width, len(data))
		}
		if t.IsDynamic() {
			offset, err := readOffset(data[cursor:cursor+WordSize], len(data))
			if err != nil {
				return nil, fmt.Errorf("field %d (%s): %w", i, t, err)
			}
			v, err := decodeValue(t, data[offset:])
			if err != nil {
				return nil, fmt.Errorf("field %d (%s) at offset %d: %w", i, t, offset, err)
			}
			values[i] = v
		} else {
			v, err := decodeValue(t, data[cursor:cursor+width])
			if err != nil {
				return nil, fmt.Errorf("field %d (%s): %w", i, t, err)
			}
			values[i] = v
		}
		cursor += width
	}
	return values, nil
}

// readOffset reads a 32-byte big-endian offset and checks it falls
// within the buffer it indexes into (monotonicity beyond that — e.g.
// tail ordering — is left unenforced, since it's documented as "may optionally
// enforce").
func readOffset(word []byte, bufLen int) (int, error) {
	offsetVal := new(big.Int).SetBytes(word)
	if !offsetVal.IsInt64() || offsetVal.Sign() < 0 {
		return 0, ErrInvalidOffset
	}
	offset := int(offsetVal.Int64())
	if offset < 0 || offset > bufLen {
		return 0, fmt.Errorf("%w: offset %d exceeds buffer length %d", ErrInvalidOffset, offset, bufLen)
	}
	return offset, nil
}

// decodeValue parses a single value of type t from data, where data
// begins at t's layout origin (its head slot for static types, or the
// tail position for dynamic ones).
func decodeValue(t Type, data []byte) (Value, error) {
	switch t.Kind {
	case KindUint:
		word, err := readWord(data)
		if err != nil {
			return Value{}, err
		}
		bits := bitsOrDefault(t.Bits)
		val := new(big.Int).SetBytes(word)
		if bits < 256 {
			maxVal := new(big.Int).Lsh(big.NewInt(1), uint(bits))
			if val.Cmp(maxVal) >= 0 {
				return Value{}, fmt.Errorf("%w: value exceeds uint%d", ErrRangeError, bits)
			}
		}
		return NewUint(val), nil

	case KindInt:
		word, err := readWord(data)
		if err != nil {
			return Value{}, err
		}
		bits := bitsOrDefault(t.Bits)
		raw := new(big.Int).SetBytes(word)
		val := raw
		if raw.Cmp(signedThreshold) >= 0 {
			val = new(big.Int).Sub(raw, one256)
		}
		minVal := new(big.Int).Neg(new(big.Int).Lsh(big.NewInt(1), uint(bits-1)))
		maxVal := new(big.Int).Sub(new(big.Int).Lsh(big.NewInt(1), uint(bits-1)), big.NewInt(1))
		if val.Cmp(minVal) < 0 || val.Cmp(maxVal) > 0 {
			return Value{}, fmt.Errorf("%w: value out of range for int%d", ErrRangeError, bits)
		}
		return NewInt(val), nil

	case KindBool:
		word, err := readWord(data)
		if err != nil {
			return Value{}, err
		}
		return NewBool(word[WordSize-1] != 0), nil

	case KindAddress:
		word, err := readWord(data)
		if err != nil {
			return Value{}, err
		}
		var addr common.Address
		copy(addr[:], word[WordSize-20:])
		return NewAddress(addr), nil

	case KindFixedBytes:
		word, err := readWord(data)
		if err != nil {
			return Value{}, err
		}
		return NewFixedBytes(append([]byte(nil), word[:t.Size]...)), nil

	case KindBytes, KindString:
		payload, err := decodeLengthPrefixed(data)
		if err != nil {
			return Value{}, err
		}
		if t.Kind == KindString {
			if !utf8.Valid(payload) {
				return Value{}, ErrInvalidUTF8
			}
			return NewString(string(payload)), nil
		}
		return NewBytes(payload), nil

	case KindFixedArray:
		// t.ArrayLen can originate from an attacker-supplied interface
		// document (registry.go/human.go), not just trusted Go code, so
		// it gets the same pre-allocation bounds check as a decoded
		// dynamic-array length below.
		if err := checkArrayFitsRemaining(t.ArrayLen, t.Elem.HeadWidth(), len(data)); err != nil {
			return Value{}, err
		}
		items, err := decodeBlock(repeatType(*t.Elem, t.ArrayLen), data)
		if err != nil {
			return Value{}, err
		}
		return NewArray(items), nil

	case KindDynamicArray:
		word, err := readWord(data)
		if err != nil {
			return Value{}, err
		}
		length := new(big.Int).SetBytes(word)
		if !length.IsInt64() {
			return Value{}, fmt.Errorf("%w: array length overflows int64", ErrInvalidOffset)
		}
		n := int(length.Int64())
		if n < 0 {
			return Value{}, fmt.Errorf("%w: negative array length", ErrInvalidOffset)
		}
		// n is an attacker-controlled 32-byte word in data; reject
		// before make()-ing n Types/Values rather than after, so a
		// huge claimed length (near math.MaxInt64) fails with
		// ErrTruncated instead of panicking or exhausting memory.
		if err := checkArrayFitsRemaining(n, t.Elem.HeadWidth(), len(data)-WordSize); err != nil {
			return Value{}, err
		}
		items, err := decodeBlock(repeatType(*t.Elem, n), data[WordSize:])
		if err != nil {
			return Value{}, err
		}
		return NewArray(items), nil

	case KindTuple:
		types := make([]Type, len(t.Fields))
		for i, f := range t.Fields {
			types[i] = f.Type
		}
		values, err := decodeBlock(types, data)
		if err != nil {
			return Value{}, err
		}
		fields := make([]NamedValue, len(t.Fields))
		for i, f := range t.Fields {
			fields[i] = NamedValue{Name: f.Name, Value: values[i]}
		}
		return NewTuple(fields), nil

	default:
		return Value{}, fmt.Errorf("%w: unhandled type kind %d", ErrTypeMismatch, t.Kind)
	}
}

var signedThreshold = new(big.Int).Lsh(big.NewInt(1), 255)

// checkArrayFitsRemaining rejects an array of n elements, each at
// least elemWidth bytes wide on the wire, before the caller
// make()-s n Types/Values for it. Mirrors the teacher's
// genSliceDecoding bounds check (len(data) < ElemSize*length ->
// io.ErrUnexpectedEOF) ahead of its own make([]GoType, length) call,
// so a crafted buffer or interface document can't turn a claimed
// length into an allocation-size or stack-depth DoS.
func checkArrayFitsRemaining(n, elemWidth, remaining int) error {
	if n < 0 {
		return fmt.Errorf("%w: negative array length", ErrInvalidOffset)
	}
	if elemWidth > 0 && n > remaining/elemWidth {
		return fmt.Errorf("%w: array of %d elements needs at least %d bytes, have %d remaining", ErrTruncated, n, n*elemWidth, remaining)
	}
	return nil
}

func readWord(data []byte) ([]byte, error) {
	if len(data) < WordSize {
		return nil, fmt.Errorf("%w: need %d bytes, have %d", ErrTruncated, WordSize, len(data))
	}
	return data[:WordSize], nil
}

// decodeLengthPrefixed reads a 32-byte length L followed by exactly L
// payload bytes.
func decodeLengthPrefixed(data []byte) ([]byte, error) {
	word, err := readWord(data)
	if err != nil {
		return nil, err
	}
	lengthBig := new(big.Int).SetBytes(word)
	if !lengthBig.IsInt64() || lengthBig.Sign() < 0 {
		return nil, fmt.Errorf("%w: invalid length prefix", ErrInvalidOffset)
	}
	length := int(lengthBig.Int64())
	end := WordSize + length
	if end > len(data) {
		return nil, fmt.Errorf("%w: declared length %d exceeds remaining %d bytes", ErrTruncated, length, len(data)-WordSize)
	}
	return append([]byte(nil), data[WordSize:end]...), nil
}
