package abi

import (
	"encoding/hex"
	"math/big"
	"strconv"
	"strings"

	"github.com/ethereum/go-ethereum/common"
)

// ValueKind mirrors Kind for the decoded-value side of the variant.
type ValueKind uint8

const (
	ValueUint ValueKind = iota
	ValueInt
	ValueBool
	ValueAddress
	ValueFixedBytes
	ValueBytes
	ValueString
	ValueArray
	ValueTuple
	// ValueAbsent marks a sentinel result for DecodeParams(types, nil)
	// with a non-empty type list: there is no data to
	// decode, but the caller asked for k values back.
	ValueAbsent
)

// AbsentValue is the sentinel returned in place of each type when
// DecodeParams is given empty/missing bytes against a non-empty type
// list. Callers that require strict presence should check IsAbsent.
func AbsentValue() Value { return Value{Kind: ValueAbsent} }

// IsAbsent reports whether v is the DecodeParams absence sentinel.
func (v Value) IsAbsent() bool { return v.Kind == ValueAbsent }

// Value is the closed tagged variant carrying decoded ABI content. It
// replaces the "interface{} in, interface{} out" shape the generator
// relied on (type-switching on `value.(*big.Int)` at every leaf);
// here the Kind tag lets Encoder/Decoder match exhaustively and lets
// callers avoid a second layer of reflection on their own data.
type Value struct {
	Kind ValueKind

	Int     *big.Int // ValueUint, ValueInt
	Bool    bool     // ValueBool
	Addr    common.Address
	Bytes   []byte // ValueFixedBytes, ValueBytes
	Str     string // ValueString
	Items   []Value
	Fields  []NamedValue // ValueTuple
}

// NamedValue pairs a tuple/record field name with its value. Unnamed
// fields (tuples parsed without field names) get synthetic names
// field0, field1, ... at the record-construction boundary, not here.
type NamedValue struct {
	Name  string
	Value Value
}

func NewUint(v *big.Int) Value  { return Value{Kind: ValueUint, Int: v} }
func NewInt(v *big.Int) Value   { return Value{Kind: ValueInt, Int: v} }
func NewBool(v bool) Value      { return Value{Kind: ValueBool, Bool: v} }
func NewAddress(a common.Address) Value {
	return Value{Kind: ValueAddress, Addr: a}
}
func NewFixedBytes(b []byte) Value { return Value{Kind: ValueFixedBytes, Bytes: b} }
func NewBytes(b []byte) Value      { return Value{Kind: ValueBytes, Bytes: b} }
func NewString(s string) Value     { return Value{Kind: ValueString, Str: s} }
func NewArray(items []Value) Value { return Value{Kind: ValueArray, Items: items} }
func NewTuple(fields []NamedValue) Value {
	return Value{Kind: ValueTuple, Fields: fields}
}

// HexBytes renders byte content (Bytes/FixedBytes/address) as
// lower-case, 0x-prefixed hex, the canonical rendering at the API
// boundary.
func (v Value) HexBytes() string {
	switch v.Kind {
	case ValueAddress:
		return "0x" + strings.ToLower(hex.EncodeToString(v.Addr[:]))
	case ValueBytes, ValueFixedBytes:
		return "0x" + strings.ToLower(hex.EncodeToString(v.Bytes))
	default:
		return ""
	}
}

// AsRecord converts a ValueTuple into a name -> Value map, assigning
// synthetic names field0, field1, ... to any field left unnamed by the
// interface document.
func (v Value) AsRecord() map[string]Value {
	m := make(map[string]Value, len(v.Fields))
	for i, f := range v.Fields {
		name := f.Name
		if name == "" {
			name = syntheticFieldName(i)
		}
		m[name] = f.Value
	}
	return m
}

func syntheticFieldName(i int) string {
	return "field" + strconv.Itoa(i)
}
