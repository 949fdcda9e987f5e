/*
Package abi provides a runtime Go library for encoding and decoding
contract call-data, return-data, and event logs against a parsed
contract interface.

Overview

Unlike a code generator that emits per-contract Go structs ahead of
time, this library works against a runtime type tree: a Type describes
one ABI type (atomic, fixed or dynamic array, tuple), and a Registry
built from a contract interface document looks up functions and events
by name, by 4-byte selector, or by 32-byte event topic.

Quick Start

Build a registry from a JSON interface document or a list of
human-readable signatures:

	entries, err := abi.ParseInterfaceJSON(jsonDoc)
	registry, err := abi.NewRegistry(entries)

	entries, err := abi.ParseHumanReadableInterface([]string{
		"function transfer(address to, uint256 value) returns (bool)",
		"event Transfer(address indexed from, address indexed to, uint256 value)",
	})
	registry, err := abi.NewRegistry(entries)

Encode a function call and decode its result:

	callData, err := registry.EncodeFunction("transfer", []abi.Value{
		abi.NewAddress(common.HexToAddress("0x...")),
		abi.NewUint(big.NewInt(1000)),
	})

	args, err := registry.DecodeFunction("transfer", callData)
	results, err := registry.DecodeFunctionResult("transfer", returnData)

Decode an event log:

	event, err := registry.DecodeLogByName(log.Data, log.Topics, "Transfer")
	for _, name := range event.Order {
		fmt.Println(name, event.Args[name])
	}

Type Model

A Type is a closed tagged variant over the supported ABI kinds, each
carrying exactly the fields that kind needs:

	uintN/intN -> KindUint/KindInt, Bits set
	bool       -> KindBool
	address    -> KindAddress
	bytesN     -> KindFixedBytes, Size set to N
	bytes      -> KindBytes
	string     -> KindString
	type[N]    -> KindFixedArray, Elem set, ArrayLen set
	type[]     -> KindDynamicArray, Elem set
	(t1,t2,..) -> KindTuple, Fields set

ParseType parses a canonical type signature string into a Type;
Canonical renders one back. IsDynamic reports whether a type's
encoding needs a tail slot, which in turn governs how Encoder and
Decoder lay out the head/tail block for it.

Value Model

A Value pairs one decoded or to-be-encoded datum with the Kind it was
produced for, so encode-side callers construct values with NewUint,
NewAddress, NewBytes, and so on, and decode-side callers switch on
Value.Kind to recover typed data without a type assertion per call
site.

Features

- Runtime type parsing and canonical signature rendering
- Head/tail ABI encoding and decoding for all parameter shapes,
  including nested tuples and arrays
- Function selector and event topic computation via keccak256
- A Registry supporting lookup by name, selector, and topic, with
  overload disambiguation
- Indexed/non-indexed event log decoding
- Thin receipt-log helpers for scanning many logs against a registry

The cmd/vmabi command is a small CLI demo built on this package.
*/
package abi
