package segment

import "fmt"

// FieldLengthMismatchError is returned when a value written to a field does
// not match the field's fixed bit width. The stored value is left untouched.
type FieldLengthMismatchError struct {
	Field    string
	Expected int
	Actual   int
}

func (e *FieldLengthMismatchError) Error() string {
	return fmt.Sprintf("value length %d not match %d (%s)", e.Actual, e.Expected, e.Field)
}

// FieldNotFoundError is returned when a segment has no field with the
// requested name.
type FieldNotFoundError struct {
	Field string
}

func (e *FieldNotFoundError) Error() string {
	return fmt.Sprintf("field %q not found in segment", e.Field)
}
