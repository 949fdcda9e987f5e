package abi

import "errors"

// Sentinel error kinds, one per failure category. Callers use errors.Is
// against these; call sites wrap them with fmt.Errorf("...: %w", ...)
// to attach the offending type or byte position.
var (
	// ErrUnknownFunction is returned when a function name or selector is not registered.
	ErrUnknownFunction = errors.New("unknown function")

	// ErrUnknownEvent is returned when an event name or topic is not registered.
	ErrUnknownEvent = errors.New("unknown event")

	// ErrAmbiguousFunction is returned when a name matches more than one
	// registered signature and the caller must disambiguate by selector.
	ErrAmbiguousFunction = errors.New("ambiguous function name, disambiguate by selector")

	// ErrSelectorMismatch is returned when call-data's leading 4 bytes
	// don't match the function being decoded against.
	ErrSelectorMismatch = errors.New("selector mismatch")

	// ErrArityMismatch is returned when a type list and a value list have different lengths.
	ErrArityMismatch = errors.New("arity mismatch between types and values")

	// ErrTypeMismatch is returned when a value does not match its declared type.
	ErrTypeMismatch = errors.New("value does not match declared type")

	// ErrRangeError is returned when an integer does not fit its declared width.
	ErrRangeError = errors.New("integer out of range for declared width")

	// ErrInvalidType is returned when a canonical type string fails to parse.
	ErrInvalidType = errors.New("invalid type string")

	// ErrTruncated is returned when a buffer is too short for the declared layout.
	ErrTruncated = errors.New("buffer truncated")

	// ErrInvalidOffset is returned when a head offset points outside the
	// buffer, or a length word is not a usable size. Tail ordering is
	// not checked.
	ErrInvalidOffset = errors.New("invalid offset")

	// ErrInvalidUTF8 is returned when a string payload is not valid UTF-8.
	ErrInvalidUTF8 = errors.New("invalid utf-8 payload")

	// ErrTopicCount is returned when a log has fewer topics than its event's
	// indexed parameters require.
	ErrTopicCount = errors.New("insufficient topic count")
)
