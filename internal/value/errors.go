package value

import (
	"errors"
	"fmt"
)

// ErrUninitialized is returned when converting a zero Value.
var ErrUninitialized = errors.New("value is uninitialized and cannot be converted")

// ParseNumberError reports a string that does not spell a number.
type ParseNumberError struct {
	Text string
	Err  error
}

func (e *ParseNumberError) Error() string {
	return fmt.Sprintf("cannot parse %q as a number", e.Text)
}

func (e *ParseNumberError) Unwrap() error { return e.Err }

// ParseBoolError reports a string that is neither "true" nor "false".
type ParseBoolError struct {
	Text string
}

func (e *ParseBoolError) Error() string {
	return fmt.Sprintf("cannot parse %q as a boolean, expected \"true\" or \"false\"", e.Text)
}

// InvalidTypeError reports a Go value outside the convertible set.
type InvalidTypeError struct {
	GoType string
}

func (e *InvalidTypeError) Error() string {
	return fmt.Sprintf("no dialogue value representation for Go type %s", e.GoType)
}
