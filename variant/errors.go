package variant

import "fmt"

// DeserializationError reports malformed interchange input. Fragment holds a
// short description of the offending fragment so the producer can locate the
// fault; decoding never substitutes a silent default.
type DeserializationError struct {
	// Fragment describes the offending input fragment.
	Fragment string
	// Err is the underlying decode error, if any.
	Err error
}

func (e *DeserializationError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("cannot deserialize %s: %v", e.Fragment, e.Err)
	}
	return fmt.Sprintf("cannot deserialize %s", e.Fragment)
}

// Unwrap returns the underlying error for errors.Is/As chain traversal.
func (e *DeserializationError) Unwrap() error {
	return e.Err
}

// EncodingError reports a producer-supplied value that has no wire
// representation.
type EncodingError struct {
	// Detail describes the value that could not be represented.
	Detail string
}

func (e *EncodingError) Error() string {
	return "cannot encode value: " + e.Detail
}
