package abi

// Param is one named, typed function/event argument.
type Param struct {
	Name    string
	Type    Type
	Indexed bool // event inputs only
}

// FunctionDef describes one callable contract function: its ordered
// inputs and outputs, and its selector, computed once and cached at
// registration time.
type FunctionDef struct {
	Name     string
	Inputs   []Param
	Outputs  []Param
	selector [4]byte
}

// Selector returns the 4-byte selector cached at registration.
func (f *FunctionDef) Selector() [4]byte { return f.selector }

// Signature renders the canonical function signature: name plus the
// canonical tuple of inputs, without the outer tuple's field names.
func (f *FunctionDef) Signature() string {
	return f.Name + TupleOf(paramFields(f.Inputs)...).Canonical()
}

func (f *FunctionDef) inputTypes() []Type  { return paramTypes(f.Inputs) }
func (f *FunctionDef) outputTypes() []Type { return paramTypes(f.Outputs) }

// EventDef describes one emitted contract event: its ordered inputs
// (each possibly indexed) and its topic hash, cached at registration.
type EventDef struct {
	Name      string
	Inputs    []Param
	Anonymous bool
	topic     [32]byte
}

// Topic returns the 32-byte event topic cached at registration.
func (e *EventDef) Topic() [32]byte { return e.topic }

// Signature renders the canonical event signature, identical rule to
// FunctionDef.Signature.
func (e *EventDef) Signature() string {
	return e.Name + TupleOf(paramFields(e.Inputs)...).Canonical()
}

func (e *EventDef) indexedParams() []Param {
	var out []Param
	for _, p := range e.Inputs {
		if p.Indexed {
			out = append(out, p)
		}
	}
	return out
}

func (e *EventDef) nonIndexedParams() []Param {
	var out []Param
	for _, p := range e.Inputs {
		if !p.Indexed {
			out = append(out, p)
		}
	}
	return out
}

func paramTypes(params []Param) []Type {
	types := make([]Type, len(params))
	for i, p := range params {
		types[i] = p.Type
	}
	return types
}

func paramFields(params []Param) []TupleField {
	fields := make([]TupleField, len(params))
	for i, p := range params {
		fields[i] = TupleField{Name: p.Name, Type: p.Type}
	}
	return fields
}
