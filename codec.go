package abi

import "fmt"

// EncodeFunction builds call-data: a 4-byte selector followed by
// EncodeParams(inputs, args).
func (r *Registry) EncodeFunction(name string, args []Value) ([]byte, error) {
	def, err := r.FunctionByName(name)
	if err != nil {
		return nil, err
	}
	body, err := EncodeParams(def.inputTypes(), args)
	if err != nil {
		return nil, fmt.Errorf("encoding arguments for %s: %w", name, err)
	}
	sel := def.Selector()
	out := make([]byte, 4+len(body))
	copy(out, sel[:])
	copy(out[4:], body)
	return out, nil
}

// DecodeFunction checks call-data's leading 4 bytes against the named
// function's selector, then decodes the remainder against its inputs.
func (r *Registry) DecodeFunction(name string, callData []byte) ([]Value, error) {
	def, err := r.FunctionByName(name)
	if err != nil {
		return nil, err
	}
	if len(callData) < 4 {
		return nil, fmt.Errorf("%w: call-data shorter than a 4-byte selector", ErrTruncated)
	}
	var sel [4]byte
	copy(sel[:], callData[:4])
	if sel != def.Selector() {
		return nil, fmt.Errorf("%w: call-data selector %x, expected %x", ErrSelectorMismatch, sel, def.Selector())
	}
	return DecodeParams(def.inputTypes(), callData[4:])
}

// DecodeFunctionResult decodes return-data against the named
// function's outputs.
func (r *Registry) DecodeFunctionResult(name string, data []byte) ([]Value, error) {
	def, err := r.FunctionByName(name)
	if err != nil {
		return nil, err
	}
	return DecodeParams(def.outputTypes(), data)
}

// DecodeLogByName decodes one log. If name is non-empty it looks up
// the event by name; otherwise it dispatches on topics[0], failing
// with ErrUnknownEvent if that topic isn't registered.
func (r *Registry) DecodeLogByName(data []byte, topics [][32]byte, name string) (*DecodedEvent, error) {
	var event *EventDef
	var err error
	if name != "" {
		event, err = r.EventByName(name)
	} else {
		if len(topics) == 0 {
			return nil, fmt.Errorf("%w: no topics and no event name given", ErrTopicCount)
		}
		event, err = r.EventByTopic(topics[0])
	}
	if err != nil {
		return nil, err
	}
	return DecodeLog(event, data, topics)
}

// FunctionSelector returns the cached 4-byte selector for name.
func (r *Registry) FunctionSelector(name string) ([4]byte, error) {
	def, err := r.FunctionByName(name)
	if err != nil {
		return [4]byte{}, err
	}
	return def.Selector(), nil
}

// EventTopic returns the cached 32-byte topic hash for name.
func (r *Registry) EventTopic(name string) ([32]byte, error) {
	def, err := r.EventByName(name)
	if err != nil {
		return [32]byte{}, err
	}
	return def.Topic(), nil
}
