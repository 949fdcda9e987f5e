package abi

import "fmt"

// DecodedEvent is the named-field result of decoding one log against
// an EventDef.
type DecodedEvent struct {
	Name string
	Args map[string]Value
	// Order preserves event.Inputs' declaration order, since Args
	// (a map) does not.
	Order []string
}

// DecodeLog splits topics into the leading event-signature hash (for
// non-anonymous events) and per-indexed-parameter topics, decodes
// data against the non-indexed parameter list via the Decoder, and
// merges both into one named record. Callers are expected
// to have already matched topics[0] against event.Topic() themselves;
// this decoder does not re-check it.
func DecodeLog(event *EventDef, data []byte, topics [][32]byte) (*DecodedEvent, error) {
	indexed := event.indexedParams()
	nonIndexed := event.nonIndexedParams()

	topicOffset := 0
	if !event.Anonymous {
		topicOffset = 1
	}
	required := topicOffset + len(indexed)
	if len(topics) < required {
		return nil, fmt.Errorf("%w: event %s needs %d topics, got %d", ErrTopicCount, event.Name, required, len(topics))
	}

	nonIndexedValues, err := DecodeParams(paramTypes(nonIndexed), data)
	if err != nil {
		return nil, fmt.Errorf("decoding non-indexed data for event %s: %w", event.Name, err)
	}

	record := make(map[string]Value, len(event.Inputs))
	order := make([]string, 0, len(event.Inputs))
	indexedSeen, nonIndexedSeen := 0, 0

	for i, p := range event.Inputs {
		name := p.Name
		if name == "" {
			name = syntheticFieldName(i)
		}

		var v Value
		if p.Indexed {
			topic := topics[topicOffset+indexedSeen]
			indexedSeen++
			if p.Type.IsDynamic() {
				// Indexed dynamic parameters are logged as the
				// keccak256 of their encoding, not the value itself
				// the original value is
				// unrecoverable from the log alone.
				v = NewFixedBytes(append([]byte(nil), topic[:]...))
			} else {
				decoded, err := DecodeParams([]Type{p.Type}, topic[:])
				if err != nil {
					return nil, fmt.Errorf("decoding indexed parameter %s of event %s: %w", name, event.Name, err)
				}
				v = decoded[0]
			}
		} else {
			v = nonIndexedValues[nonIndexedSeen]
			nonIndexedSeen++
		}

		record[name] = v
		order = append(order, name)
	}

	return &DecodedEvent{Name: event.Name, Args: record, Order: order}, nil
}
