package abi

import (
	"encoding/json"
	"fmt"
)

// ABIEntry is one item of a contract interface document: a
// function, an event, or another kind the registry ignores
// (constructor, fallback, receive).
type ABIEntry struct {
	Type      string     `json:"type"`
	Name      string     `json:"name"`
	Inputs    []ABIParam `json:"inputs"`
	Outputs   []ABIParam `json:"outputs"`
	Anonymous bool       `json:"anonymous"`
}

// ABIParam is one parameter descriptor. Components recursively
// describes a tuple's fields; Indexed is meaningful for event inputs
// only.
type ABIParam struct {
	Name       string     `json:"name"`
	Type       string     `json:"type"`
	Indexed    bool       `json:"indexed"`
	Components []ABIParam `json:"components"`
}

// ParseInterfaceJSON unmarshals a contract interface document into
// the entry list NewRegistry consumes.
func ParseInterfaceJSON(doc []byte) ([]ABIEntry, error) {
	var entries []ABIEntry
	if err := json.Unmarshal(doc, &entries); err != nil {
		return nil, fmt.Errorf("parsing interface document: %w", err)
	}
	return entries, nil
}

// paramToType converts one ABIParam's textual type (and, for tuples,
// its Components) into a Type. Tuple array suffixes ("tuple[]",
// "tuple[3]") are parsed the same left-to-right way ParseType handles
// any other array suffix. depth tracks Components nesting the same
// way parseTypeDepth/parseTupleDepth track bracket/paren depth, so a
// crafted interface document can't recurse past MaxTypeDepth.
func paramToType(p ABIParam) (Type, error) {
	return paramToTypeDepth(p, 0)
}

func paramToTypeDepth(p ABIParam, depth int) (Type, error) {
	if depth > MaxTypeDepth {
		return Type{}, fmt.Errorf("%w: type nesting exceeds %d levels", ErrInvalidType, MaxTypeDepth)
	}
	base, suffixes, err := splitArraySuffixes(p.Type)
	if err != nil {
		return Type{}, err
	}
	if base != "tuple" {
		t, err := parseAtomic(base)
		if err != nil {
			return Type{}, err
		}
		return applyArraySuffixes(t, suffixes)
	}

	fields := make([]TupleField, len(p.Components))
	for i, c := range p.Components {
		ft, err := paramToTypeDepth(c, depth+1)
		if err != nil {
			return Type{}, err
		}
		fields[i] = TupleField{Name: c.Name, Type: ft}
	}
	return applyArraySuffixes(TupleOf(fields...), suffixes)
}

func paramsToParams(in []ABIParam, withIndexed bool) ([]Param, error) {
	out := make([]Param, len(in))
	for i, p := range in {
		t, err := paramToType(p)
		if err != nil {
			return nil, fmt.Errorf("parameter %q: %w", p.Name, err)
		}
		out[i] = Param{Name: p.Name, Type: t}
		if withIndexed {
			out[i].Indexed = p.Indexed
		}
	}
	return out, nil
}

// Registry indexes a parsed contract interface by name and by
// selector/topic. It is read-only after NewRegistry
// returns and may be shared across concurrent encode/decode calls
// without synchronization.
type Registry struct {
	functionsByName     map[string][]*FunctionDef
	functionsBySelector map[[4]byte]*FunctionDef
	eventsByName        map[string][]*EventDef
	eventsByTopic       map[[32]byte]*EventDef
}

// NewRegistry parses entries (functions and events; other kinds are
// ignored) and computes + caches each definition's
// selector or topic.
func NewRegistry(entries []ABIEntry) (*Registry, error) {
	r := &Registry{
		functionsByName:     make(map[string][]*FunctionDef),
		functionsBySelector: make(map[[4]byte]*FunctionDef),
		eventsByName:        make(map[string][]*EventDef),
		eventsByTopic:       make(map[[32]byte]*EventDef),
	}
	for _, e := range entries {
		switch e.Type {
		case "function":
			if err := r.addFunction(e); err != nil {
				return nil, err
			}
		case "event":
			if err := r.addEvent(e); err != nil {
				return nil, err
			}
		default:
			// constructor, fallback, receive, or anything else: ignored.
		}
	}
	return r, nil
}

func (r *Registry) addFunction(e ABIEntry) error {
	inputs, err := paramsToParams(e.Inputs, false)
	if err != nil {
		return fmt.Errorf("function %s: %w", e.Name, err)
	}
	outputs, err := paramsToParams(e.Outputs, false)
	if err != nil {
		return fmt.Errorf("function %s: %w", e.Name, err)
	}
	def := &FunctionDef{Name: e.Name, Inputs: inputs, Outputs: outputs}
	def.selector = FunctionSelector(def)

	r.functionsByName[def.Name] = append(r.functionsByName[def.Name], def)
	r.functionsBySelector[def.selector] = def
	return nil
}

func (r *Registry) addEvent(e ABIEntry) error {
	inputs, err := paramsToParams(e.Inputs, true)
	if err != nil {
		return fmt.Errorf("event %s: %w", e.Name, err)
	}
	def := &EventDef{Name: e.Name, Inputs: inputs, Anonymous: e.Anonymous}
	def.topic = EventTopic(def)

	r.eventsByName[def.Name] = append(r.eventsByName[def.Name], def)
	if !def.Anonymous {
		r.eventsByTopic[def.topic] = def
	}
	return nil
}

// FunctionByName returns the unique function registered under name.
// If more than one definition shares the name, callers must
// disambiguate with FunctionBySelector. NewRegistry does not reject an
// entry whose signature repeats an earlier one; it counts as one more
// definition under the name.
func (r *Registry) FunctionByName(name string) (*FunctionDef, error) {
	defs := r.functionsByName[name]
	switch len(defs) {
	case 0:
		return nil, fmt.Errorf("%w: %q", ErrUnknownFunction, name)
	case 1:
		return defs[0], nil
	default:
		return nil, fmt.Errorf("%w: %q has %d overloads", ErrAmbiguousFunction, name, len(defs))
	}
}

// FunctionBySelector looks up a function by its cached 4-byte selector.
func (r *Registry) FunctionBySelector(sel [4]byte) (*FunctionDef, error) {
	def, ok := r.functionsBySelector[sel]
	if !ok {
		return nil, fmt.Errorf("%w: selector %x", ErrUnknownFunction, sel)
	}
	return def, nil
}

// EventByName mirrors FunctionByName for events.
func (r *Registry) EventByName(name string) (*EventDef, error) {
	defs := r.eventsByName[name]
	switch len(defs) {
	case 0:
		return nil, fmt.Errorf("%w: %q", ErrUnknownEvent, name)
	case 1:
		return defs[0], nil
	default:
		return nil, fmt.Errorf("%w: %q has %d overloads", ErrAmbiguousFunction, name, len(defs))
	}
}

// EventByTopic looks up a non-anonymous event by its cached topic hash.
func (r *Registry) EventByTopic(topic [32]byte) (*EventDef, error) {
	def, ok := r.eventsByTopic[topic]
	if !ok {
		return nil, fmt.Errorf("%w: topic %x", ErrUnknownEvent, topic)
	}
	return def, nil
}

// Functions returns every registered function definition, for
// introspection by the CLI or receipt-log tooling.
func (r *Registry) Functions() []*FunctionDef {
	var out []*FunctionDef
	for _, defs := range r.functionsByName {
		out = append(out, defs...)
	}
	return out
}

// Events returns every registered event definition.
func (r *Registry) Events() []*EventDef {
	var out []*EventDef
	for _, defs := range r.eventsByName {
		out = append(out, defs...)
	}
	return out
}
