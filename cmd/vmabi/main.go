// Command vmabi is a small demo CLI over the abi package: given a
// contract interface document, it encodes a function call from CLI
// arguments or decodes call-data, return-data, or a log into a
// printed record.
package main

import (
	"bufio"
	"encoding/hex"
	"flag"
	"fmt"
	"log"
	"math/big"
	"os"
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"github.com/vmabi/abi"
)

func main() {
	var (
		docPath  = flag.String("doc", "", "path to a contract interface document (JSON unless -human is set)")
		human    = flag.String("human", "", "path to a file of human-readable signature lines, instead of -doc")
		op       = flag.String("op", "encode", "operation: encode | decode | result | log")
		fn       = flag.String("fn", "", "function or event name")
		dataHex  = flag.String("data", "", "hex call-data/return-data/log data (decode/result/log ops)")
		topicHex = flag.String("topics", "", "comma-separated hex topics (log op)")
	)
	flag.Parse()

	registry, err := loadRegistry(*docPath, *human)
	if err != nil {
		log.Fatalf("loading interface document: %v", err)
	}

	switch *op {
	case "encode":
		args, err := parseArgValues(flag.Args())
		if err != nil {
			log.Fatalf("parsing arguments: %v", err)
		}
		callData, err := registry.EncodeFunction(*fn, args)
		if err != nil {
			log.Fatalf("encoding %s: %v", *fn, err)
		}
		fmt.Println("0x" + hex.EncodeToString(callData))

	case "decode":
		data, err := decodeHex(*dataHex)
		if err != nil {
			log.Fatalf("parsing -data: %v", err)
		}
		values, err := registry.DecodeFunction(*fn, data)
		if err != nil {
			log.Fatalf("decoding %s: %v", *fn, err)
		}
		printValues(values)

	case "result":
		data, err := decodeHex(*dataHex)
		if err != nil {
			log.Fatalf("parsing -data: %v", err)
		}
		values, err := registry.DecodeFunctionResult(*fn, data)
		if err != nil {
			log.Fatalf("decoding result of %s: %v", *fn, err)
		}
		printValues(values)

	case "log":
		data, err := decodeHex(*dataHex)
		if err != nil {
			log.Fatalf("parsing -data: %v", err)
		}
		topics, err := parseTopics(*topicHex)
		if err != nil {
			log.Fatalf("parsing -topics: %v", err)
		}
		event, err := registry.DecodeLogByName(data, topics, *fn)
		if err != nil {
			log.Fatalf("decoding log: %v", err)
		}
		printEvent(event)

	default:
		log.Fatalf("unknown -op %q: want encode, decode, result, or log", *op)
	}
}

func loadRegistry(docPath, humanPath string) (*abi.Registry, error) {
	switch {
	case humanPath != "":
		lines, err := readLines(humanPath)
		if err != nil {
			return nil, err
		}
		entries, err := abi.ParseHumanReadableInterface(lines)
		if err != nil {
			return nil, err
		}
		return abi.NewRegistry(entries)
	case docPath != "":
		data, err := os.ReadFile(docPath)
		if err != nil {
			return nil, err
		}
		entries, err := abi.ParseInterfaceJSON(data)
		if err != nil {
			return nil, err
		}
		return abi.NewRegistry(entries)
	default:
		return nil, fmt.Errorf("one of -doc or -human is required")
	}
}

func readLines(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var lines []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		lines = append(lines, scanner.Text())
	}
	return lines, scanner.Err()
}

func decodeHex(s string) ([]byte, error) {
	return hex.DecodeString(strings.TrimPrefix(s, "0x"))
}

func parseTopics(s string) ([][32]byte, error) {
	if s == "" {
		return nil, nil
	}
	parts := strings.Split(s, ",")
	topics := make([][32]byte, len(parts))
	for i, p := range parts {
		b, err := decodeHex(strings.TrimSpace(p))
		if err != nil {
			return nil, err
		}
		if len(b) != 32 {
			return nil, fmt.Errorf("topic %d is %d bytes, want 32", i, len(b))
		}
		copy(topics[i][:], b)
	}
	return topics, nil
}

// parseArgValues takes positional CLI strings and guesses a Value
// kind for each: 0x-prefixed 40-hex-char strings become addresses,
// other 0x-prefixed strings become bytes, "true"/"false" become
// booleans, decimal strings become unsigned integers, and anything
// else is treated as a string. This
// is a convenience for quick CLI calls, not a general type inference
// scheme — CLI users needing precise typing should construct Values
// programmatically instead.
func parseArgValues(args []string) ([]abi.Value, error) {
	values := make([]abi.Value, len(args))
	for i, a := range args {
		switch {
		case strings.HasPrefix(a, "0x") && len(a) == 42:
			values[i] = abi.NewAddress(common.HexToAddress(a))
		case strings.HasPrefix(a, "0x"):
			b, err := decodeHex(a)
			if err != nil {
				return nil, fmt.Errorf("argument %d: %w", i, err)
			}
			values[i] = abi.NewBytes(b)
		case a == "true" || a == "false":
			values[i] = abi.NewBool(a == "true")
		default:
			n, ok := new(big.Int).SetString(a, 10)
			if ok {
				values[i] = abi.NewUint(n)
			} else {
				values[i] = abi.NewString(a)
			}
		}
	}
	return values, nil
}

func printValues(values []abi.Value) {
	for i, v := range values {
		fmt.Printf("[%d] %s\n", i, formatValue(v))
	}
}

func printEvent(event *abi.DecodedEvent) {
	fmt.Println(event.Name)
	for _, name := range event.Order {
		fmt.Printf("  %s = %s\n", name, formatValue(event.Args[name]))
	}
}

func formatValue(v abi.Value) string {
	switch v.Kind {
	case abi.ValueUint, abi.ValueInt:
		return v.Int.String()
	case abi.ValueBool:
		return fmt.Sprintf("%t", v.Bool)
	case abi.ValueAddress, abi.ValueBytes, abi.ValueFixedBytes:
		return v.HexBytes()
	case abi.ValueString:
		return v.Str
	case abi.ValueArray:
		parts := make([]string, len(v.Items))
		for i, item := range v.Items {
			parts[i] = formatValue(item)
		}
		return "[" + strings.Join(parts, ", ") + "]"
	case abi.ValueTuple:
		parts := make([]string, len(v.Fields))
		for i, f := range v.Fields {
			parts[i] = f.Name + ": " + formatValue(f.Value)
		}
		return "(" + strings.Join(parts, ", ") + ")"
	case abi.ValueAbsent:
		return "<absent>"
	default:
		return "<unknown>"
	}
}
