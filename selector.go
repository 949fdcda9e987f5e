package abi

import "github.com/ethereum/go-ethereum/crypto"

// FunctionSelector computes function_selector(def) = keccak256(sig)[0:4],
// the one cryptographic primitive this codec consumes. Hashes the
// canonical signature with crypto.Keccak256, against a runtime
// FunctionDef rather than a code-generation-time method name.
func FunctionSelector(f *FunctionDef) [4]byte {
	hash := crypto.Keccak256([]byte(f.Signature()))
	var sel [4]byte
	copy(sel[:], hash[:4])
	return sel
}

// EventTopic computes event_topic(def) = keccak256(sig), the full
// 32-byte hash used as topics[0] for non-anonymous events.
func EventTopic(e *EventDef) [32]byte {
	hash := crypto.Keccak256([]byte(e.Signature()))
	var topic [32]byte
	copy(topic[:], hash)
	return topic
}
