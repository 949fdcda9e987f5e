package abi

import (
	"fmt"
	"strings"
)

// ParseHumanReadableInterface parses human-readable signature lines
// ("function transfer(address to, uint256 value) returns (bool)",
// "event Transfer(address indexed from, address indexed to, uint256
// value)") into the same ABIEntry shape ParseInterfaceJSON produces,
// so NewRegistry can be built from either form. The entries are built
// directly, with no intermediate go-ethereum JSON ABI round-trip.
// Constructor, fallback, and receive lines are recognized and
// ignored.
func ParseHumanReadableInterface(lines []string) ([]ABIEntry, error) {
	var entries []ABIEntry
	for _, raw := range lines {
		line := strings.TrimSpace(raw)
		if line == "" || strings.HasPrefix(line, "//") {
			continue
		}

		if entry, ok, err := parseFunctionLine(line); err != nil {
			return nil, fmt.Errorf("parsing %q: %w", line, err)
		} else if ok {
			entries = append(entries, entry)
			continue
		}

		if entry, ok, err := parseEventLine(line); err != nil {
			return nil, fmt.Errorf("parsing %q: %w", line, err)
		} else if ok {
			entries = append(entries, entry)
			continue
		}

		if isIgnoredLine(line) {
			continue
		}

		return nil, fmt.Errorf("unrecognized interface line: %q", line)
	}
	return entries, nil
}

func isIgnoredLine(line string) bool {
	return strings.HasPrefix(line, "constructor") ||
		strings.HasPrefix(line, "fallback") ||
		strings.HasPrefix(line, "receive")
}

// parseFunctionLine parses "function NAME(INPUTS) [payable|view|pure]
// [returns (OUTPUTS)]". Returns ok=false (no error) if line isn't a
// function declaration.
func parseFunctionLine(line string) (ABIEntry, bool, error) {
	const prefix = "function "
	if !strings.HasPrefix(line, prefix) {
		return ABIEntry{}, false, nil
	}
	rest := strings.TrimSpace(line[len(prefix):])

	name, afterName, err := splitNameAndParenGroup(rest)
	if err != nil {
		return ABIEntry{}, true, err
	}
	closeIdx, err := matchingParen(afterName)
	if err != nil {
		return ABIEntry{}, true, err
	}
	inputsStr := afterName[1:closeIdx]
	tail := strings.TrimSpace(afterName[closeIdx+1:])

	var outputsStr string
	if idx := strings.Index(tail, "returns"); idx >= 0 {
		afterReturns := strings.TrimSpace(tail[idx+len("returns"):])
		if !strings.HasPrefix(afterReturns, "(") {
			return ABIEntry{}, true, fmt.Errorf("%w: expected '(' after returns in %q", ErrInvalidType, line)
		}
		rc, err := matchingParen(afterReturns)
		if err != nil {
			return ABIEntry{}, true, err
		}
		outputsStr = afterReturns[1:rc]
	}

	inputs, err := parseHumanFieldList(inputsStr, false, 0)
	if err != nil {
		return ABIEntry{}, true, err
	}
	outputs, err := parseHumanFieldList(outputsStr, false, 0)
	if err != nil {
		return ABIEntry{}, true, err
	}

	return ABIEntry{Type: "function", Name: name, Inputs: inputs, Outputs: outputs}, true, nil
}

// parseEventLine parses "event NAME(INPUTS) [anonymous]".
func parseEventLine(line string) (ABIEntry, bool, error) {
	const prefix = "event "
	if !strings.HasPrefix(line, prefix) {
		return ABIEntry{}, false, nil
	}
	rest := strings.TrimSpace(line[len(prefix):])

	name, afterName, err := splitNameAndParenGroup(rest)
	if err != nil {
		return ABIEntry{}, true, err
	}
	closeIdx, err := matchingParen(afterName)
	if err != nil {
		return ABIEntry{}, true, err
	}
	inputsStr := afterName[1:closeIdx]
	tail := strings.TrimSpace(afterName[closeIdx+1:])

	inputs, err := parseHumanFieldList(inputsStr, true, 0)
	if err != nil {
		return ABIEntry{}, true, err
	}

	return ABIEntry{Type: "event", Name: name, Inputs: inputs, Anonymous: tail == "anonymous"}, true, nil
}

// splitNameAndParenGroup splits "transfer(address to)..." into
// name="transfer" and afterName="(address to)...".
func splitNameAndParenGroup(s string) (name, afterName string, err error) {
	i := strings.IndexByte(s, '(')
	if i < 0 {
		return "", "", fmt.Errorf("%w: missing '(' in %q", ErrInvalidType, s)
	}
	return strings.TrimSpace(s[:i]), s[i:], nil
}

// parseHumanFieldList splits a top-level comma list (commas nested in
// tuple parens don't split) and parses each field. depth is the
// paren-nesting depth of s itself, threaded the same way
// parseTupleDepth threads depth to its field list in types.go.
func parseHumanFieldList(s string, isEvent bool, depth int) ([]ABIParam, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	parts := splitTopLevel(s)
	out := make([]ABIParam, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		field, err := parseHumanField(p, isEvent, depth)
		if err != nil {
			return nil, err
		}
		out = append(out, field)
	}
	return out, nil
}

// parseHumanField parses one "type [indexed] [name]" declaration,
// where type may itself be a parenthesized tuple with an array
// suffix: "(uint256,address)[] pair".
func parseHumanField(fieldStr string, isEvent bool, depth int) (ABIParam, error) {
	fieldStr = strings.TrimSpace(fieldStr)

	var typeStr, rest string
	if strings.HasPrefix(fieldStr, "(") {
		closeIdx, err := matchingParen(fieldStr)
		if err != nil {
			return ABIParam{}, err
		}
		afterParen := fieldStr[closeIdx+1:]
		i := 0
		for i < len(afterParen) && afterParen[i] == '[' {
			end := strings.IndexByte(afterParen[i:], ']')
			if end < 0 {
				return ABIParam{}, fmt.Errorf("%w: unmatched '[' in %q", ErrInvalidType, fieldStr)
			}
			i += end + 1
		}
		typeStr = fieldStr[:closeIdx+1+i]
		rest = strings.TrimSpace(afterParen[i:])
	} else if idx := strings.IndexByte(fieldStr, ' '); idx >= 0 {
		typeStr = fieldStr[:idx]
		rest = strings.TrimSpace(fieldStr[idx+1:])
	} else {
		typeStr = fieldStr
	}

	indexed := false
	name := ""
	for _, tok := range strings.Fields(rest) {
		if isEvent && tok == "indexed" {
			indexed = true
		} else {
			name = tok
		}
	}

	field, err := humanTypeToABIParam(typeStr, depth)
	if err != nil {
		return ABIParam{}, err
	}
	field.Name = name
	field.Indexed = indexed
	return field, nil
}

// humanTypeToABIParam converts a human-readable type string,
// including parenthesized tuple syntax, into the {type, components}
// shape ParseInterfaceJSON's ABIParam uses — "(uint256,bool)[]"
// becomes Type: "tuple[]" with two Components. depth tracks nested
// parenthesized tuples the same way parseTypeDepth/parseTupleDepth
// do for canonical strings, so a deeply nested human-readable tuple
// field can't recurse past MaxTypeDepth.
func humanTypeToABIParam(typeStr string, depth int) (ABIParam, error) {
	if depth > MaxTypeDepth {
		return ABIParam{}, fmt.Errorf("%w: type nesting exceeds %d levels", ErrInvalidType, MaxTypeDepth)
	}
	typeStr = strings.TrimSpace(typeStr)
	if !strings.HasPrefix(typeStr, "(") {
		return ABIParam{Type: typeStr}, nil
	}

	closeIdx, err := matchingParen(typeStr)
	if err != nil {
		return ABIParam{}, err
	}
	inner := typeStr[1:closeIdx]
	suffix := typeStr[closeIdx+1:]

	// innerFields is already fully formed (Name, Type, and any nested
	// Components) by parseHumanField's own call into
	// humanTypeToABIParam one level deeper; it becomes this tuple's
	// Components list directly; re-deriving each from its bare Type
	// string would throw away any Components a nested field collected.
	innerFields, err := parseHumanFieldList(inner, false, depth+1)
	if err != nil {
		return ABIParam{}, err
	}

	return ABIParam{Type: "tuple" + suffix, Components: innerFields}, nil
}
