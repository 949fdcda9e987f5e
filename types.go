package abi

import (
	"fmt"
	"strconv"
	"strings"
)

// MaxTypeDepth bounds recursion over user-supplied type trees. Real
// contracts rarely nest past a handful of levels; this guards against
// pathological interface documents (see isDynamicType/getTypeSize in
// the original per-type generator, which had no such guard because
// nesting depth was fixed at code-generation time).
const MaxTypeDepth = 32

// Kind tags the closed variant a Type can be.
type Kind uint8

const (
	KindUint Kind = iota
	KindInt
	KindBool
	KindAddress
	KindFixedBytes
	KindBytes
	KindString
	KindFixedArray
	KindDynamicArray
	KindTuple
)

// Type is the canonical representation of an ABI parameter type: a
// closed tagged variant matched exhaustively by Encoder/Decoder,
// rather than the string-tag-plus-generated-code shape ("abi.Type" T
// field sniffed with == comparisons) the generator used. Only the
// fields relevant to Kind are meaningful.
type Type struct {
	Kind Kind

	// KindUint / KindInt: width in bits, 8..256, multiple of 8.
	Bits int

	// KindFixedBytes: width in bytes, 1..32.
	Size int

	// KindFixedArray: element count.
	ArrayLen int

	// KindFixedArray / KindDynamicArray: element type.
	Elem *Type

	// KindTuple: ordered, possibly-named fields.
	Fields []TupleField
}

// TupleField is one named component of a Tuple type. Names are
// preserved for decoded records but ignored by Canonical.
type TupleField struct {
	Name string
	Type Type
}

func Uint(bits int) Type    { return Type{Kind: KindUint, Bits: bits} }
func Int(bits int) Type     { return Type{Kind: KindInt, Bits: bits} }
func FixedBytes(n int) Type { return Type{Kind: KindFixedBytes, Size: n} }
func BoolType() Type        { return Type{Kind: KindBool} }
func AddressType() Type     { return Type{Kind: KindAddress} }
func BytesType() Type       { return Type{Kind: KindBytes} }
func StringType() Type      { return Type{Kind: KindString} }

func FixedArray(elem Type, n int) Type {
	return Type{Kind: KindFixedArray, Elem: &elem, ArrayLen: n}
}

func DynamicArray(elem Type) Type { return Type{Kind: KindDynamicArray, Elem: &elem} }

func TupleOf(fields ...TupleField) Type {
	return Type{Kind: KindTuple, Fields: fields}
}

// IsDynamic reports whether a type is dynamic: Bytes, String,
// DynamicArray, a FixedArray of a dynamic element, or a Tuple
// containing any dynamic field. Encoder and Decoder must agree on
// this for every type; disagreement corrupts offsets.
func (t Type) IsDynamic() bool {
	switch t.Kind {
	case KindBytes, KindString, KindDynamicArray:
		return true
	case KindFixedArray:
		return t.Elem.IsDynamic()
	case KindTuple:
		for _, f := range t.Fields {
			if f.Type.IsDynamic() {
				return true
			}
		}
		return false
	default:
		return false
	}
}

// HeadWidth is the number of bytes this type occupies in a head: the
// static encoded size for static types, or 32 (an offset slot) for
// dynamic types.
func (t Type) HeadWidth() int {
	if t.IsDynamic() {
		return 32
	}
	return t.staticSize()
}

// staticSize is only meaningful for non-dynamic types; callers check
// IsDynamic first.
func (t Type) staticSize() int {
	switch t.Kind {
	case KindUint, KindInt, KindBool, KindAddress, KindFixedBytes:
		return 32
	case KindFixedArray:
		return t.ArrayLen * t.Elem.staticSize()
	case KindTuple:
		total := 0
		for _, f := range t.Fields {
			total += f.Type.staticSize()
		}
		return total
	default:
		return 0
	}
}

// Canonical renders the type's canonical signature string: atomics as
// uintN/intN/bool/address/bytesN/bytes/string, arrays as
// elem[n]/elem[], tuples as (f1,f2,...). Bare uint/int normalize to
// uint256/int256. Field names are dropped.
func (t Type) Canonical() string {
	var b strings.Builder
	t.writeCanonical(&b)
	return b.String()
}

func (t Type) writeCanonical(b *strings.Builder) {
	switch t.Kind {
	case KindUint:
		bits := t.Bits
		if bits == 0 {
			bits = 256
		}
		fmt.Fprintf(b, "uint%d", bits)
	case KindInt:
		bits := t.Bits
		if bits == 0 {
			bits = 256
		}
		fmt.Fprintf(b, "int%d", bits)
	case KindBool:
		b.WriteString("bool")
	case KindAddress:
		b.WriteString("address")
	case KindFixedBytes:
		fmt.Fprintf(b, "bytes%d", t.Size)
	case KindBytes:
		b.WriteString("bytes")
	case KindString:
		b.WriteString("string")
	case KindFixedArray:
		t.Elem.writeCanonical(b)
		fmt.Fprintf(b, "[%d]", t.ArrayLen)
	case KindDynamicArray:
		t.Elem.writeCanonical(b)
		b.WriteString("[]")
	case KindTuple:
		b.WriteByte('(')
		for i, f := range t.Fields {
			if i > 0 {
				b.WriteByte(',')
			}
			f.Type.writeCanonical(b)
		}
		b.WriteByte(')')
	}
}

func (t Type) String() string { return t.Canonical() }

// ParseType parses a single canonical type string into a Type. Tuple
// forms accept optional per-field names ("uint256 amount"); names are
// preserved for decoded records but ignored for signature computation.
// Parsing is a single left-to-right pass tracking bracket/paren depth
// so commas inside nested tuples never split top-level fields. Fails
// with ErrInvalidType on unknown base tokens, unmatched brackets, or
// non-numeric array/integer widths.
func ParseType(s string) (Type, error) {
	return parseTypeDepth(strings.TrimSpace(s), 0)
}

func parseTypeDepth(s string, depth int) (Type, error) {
	if depth > MaxTypeDepth {
		return Type{}, fmt.Errorf("%w: type nesting exceeds %d levels", ErrInvalidType, MaxTypeDepth)
	}
	s = strings.TrimSpace(s)
	if s == "" {
		return Type{}, fmt.Errorf("%w: empty type", ErrInvalidType)
	}

	if s[0] == '(' {
		return parseTupleDepth(s, depth)
	}

	base, suffixes, err := splitArraySuffixes(s)
	if err != nil {
		return Type{}, err
	}

	t, err := parseAtomic(base)
	if err != nil {
		return Type{}, err
	}
	return applyArraySuffixes(t, suffixes)
}

// applyArraySuffixes wraps t in Fixed/DynamicArray for each bracket
// suffix, left-to-right: "uint256[2][]" is a dynamic array of
// fixed-2-arrays of uint256.
func applyArraySuffixes(t Type, suffixes []string) (Type, error) {
	for _, suf := range suffixes {
		if suf == "" {
			t = DynamicArray(t)
			continue
		}
		n, err := strconv.Atoi(suf)
		if err != nil || n < 0 {
			return Type{}, fmt.Errorf("%w: non-numeric array length %q", ErrInvalidType, suf)
		}
		t = FixedArray(t, n)
	}
	return t, nil
}

// splitArraySuffixes splits "uint256[2][]" into base="uint256" and
// suffixes=["2",""].
func splitArraySuffixes(s string) (string, []string, error) {
	i := strings.IndexByte(s, '[')
	if i < 0 {
		return s, nil, nil
	}
	base := s[:i]
	rest := s[i:]
	var suffixes []string
	for len(rest) > 0 {
		if rest[0] != '[' {
			return "", nil, fmt.Errorf("%w: malformed array suffix in %q", ErrInvalidType, s)
		}
		closeIdx := strings.IndexByte(rest, ']')
		if closeIdx < 0 {
			return "", nil, fmt.Errorf("%w: unmatched '[' in %q", ErrInvalidType, s)
		}
		suffixes = append(suffixes, rest[1:closeIdx])
		rest = rest[closeIdx+1:]
	}
	return base, suffixes, nil
}

func parseAtomic(base string) (Type, error) {
	switch {
	case base == "bool":
		return BoolType(), nil
	case base == "address":
		return AddressType(), nil
	case base == "bytes":
		return BytesType(), nil
	case base == "string":
		return StringType(), nil
	case base == "uint":
		return Uint(256), nil
	case base == "int":
		return Int(256), nil
	case strings.HasPrefix(base, "uint"):
		bits, err := strconv.Atoi(base[4:])
		if err != nil || !validIntBits(bits) {
			return Type{}, fmt.Errorf("%w: bad uint width in %q", ErrInvalidType, base)
		}
		return Uint(bits), nil
	case strings.HasPrefix(base, "int"):
		bits, err := strconv.Atoi(base[3:])
		if err != nil || !validIntBits(bits) {
			return Type{}, fmt.Errorf("%w: bad int width in %q", ErrInvalidType, base)
		}
		return Int(bits), nil
	case strings.HasPrefix(base, "bytes"):
		n, err := strconv.Atoi(base[5:])
		if err != nil || n < 1 || n > 32 {
			return Type{}, fmt.Errorf("%w: bad fixed-bytes width in %q", ErrInvalidType, base)
		}
		return FixedBytes(n), nil
	default:
		return Type{}, fmt.Errorf("%w: unknown base type %q", ErrInvalidType, base)
	}
}

func validIntBits(bits int) bool {
	return bits > 0 && bits <= 256 && bits%8 == 0
}

// parseTupleDepth parses "(t1,t2 name2,(t3,t4))..." possibly followed
// by array suffixes, tracking paren depth so nested tuples' commas
// don't split the outer field list.
func parseTupleDepth(s string, depth int) (Type, error) {
	if depth > MaxTypeDepth {
		return Type{}, fmt.Errorf("%w: type nesting exceeds %d levels", ErrInvalidType, MaxTypeDepth)
	}
	closeIdx, err := matchingParen(s)
	if err != nil {
		return Type{}, err
	}
	inner := s[1:closeIdx]
	rest := s[closeIdx+1:]

	fieldStrs := splitTopLevel(inner)
	fields := make([]TupleField, 0, len(fieldStrs))
	for _, fs := range fieldStrs {
		fs = strings.TrimSpace(fs)
		if fs == "" {
			continue
		}
		name, typeStr := splitNameAndType(fs)
		ft, err := parseTypeDepth(typeStr, depth+1)
		if err != nil {
			return Type{}, err
		}
		fields = append(fields, TupleField{Name: name, Type: ft})
	}
	t := TupleOf(fields...)

	trailing, suffixes, err := splitArraySuffixes(rest)
	if err != nil {
		return Type{}, err
	}
	if trailing != "" {
		return Type{}, fmt.Errorf("%w: unexpected %q after tuple in %q", ErrInvalidType, trailing, s)
	}
	return applyArraySuffixes(t, suffixes)
}

// matchingParen returns the index of the ')' matching the '(' at s[0].
func matchingParen(s string) (int, error) {
	if len(s) == 0 || s[0] != '(' {
		return 0, fmt.Errorf("%w: expected '(' in %q", ErrInvalidType, s)
	}
	depth := 0
	for i, c := range s {
		switch c {
		case '(':
			depth++
		case ')':
			depth--
			if depth == 0 {
				return i, nil
			}
		}
	}
	return 0, fmt.Errorf("%w: unmatched '(' in %q", ErrInvalidType, s)
}

// splitTopLevel splits a comma-separated field list, skipping commas
// nested inside parentheses so a nested tuple's own fields don't leak
// into the outer split.
func splitTopLevel(s string) []string {
	var parts []string
	depth := 0
	start := 0
	for i, c := range s {
		switch c {
		case '(':
			depth++
		case ')':
			depth--
		case ',':
			if depth == 0 {
				parts = append(parts, s[start:i])
				start = i + 1
			}
		}
	}
	parts = append(parts, s[start:])
	return parts
}

// splitNameAndType splits a tuple field declaration like "uint256
// amount" into its name and its type string. A field with no name
// ("uint256") returns an empty name. The type may itself be a tuple
// ("(uint256,bool) pair"), so the split point is the last top-level
// space, not the first.
func splitNameAndType(fieldDecl string) (name, typeStr string) {
	depth := 0
	lastSpace := -1
	for i, c := range fieldDecl {
		switch c {
		case '(':
			depth++
		case ')':
			depth--
		case ' ':
			if depth == 0 {
				lastSpace = i
			}
		}
	}
	if lastSpace < 0 {
		return "", fieldDecl
	}
	return strings.TrimSpace(fieldDecl[lastSpace+1:]), strings.TrimSpace(fieldDecl[:lastSpace])
}
