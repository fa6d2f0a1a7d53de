package errors

import (
	"bytes"
	"fmt"
)

// Errors is a non-empty list of non-nil errors. A nil Errors means no error,
// so callers can compare the result of Combine with nil directly.
type Errors []error

func (m Errors) Error() string {
	var b bytes.Buffer
	for i, err := range m {
		if i > 0 {
			fmt.Fprint(&b, "\n")
		}
		fmt.Fprint(&b, err)
	}
	return b.String()
}

// Combine combines errors e & f into a single error, flattening nested Errors values.
func Combine(e, f error) error {
	var out Errors
	for _, err := range []error{e, f} {
		switch err := err.(type) {
		case nil:
		case Errors:
			out = append(out, err...)
		default:
			out = append(out, err)
		}
	}
	if len(out) == 0 {
		return nil
	}
	if len(out) == 1 {
		return out[0]
	}
	return out
}

// Defer is a helper for deferring error-returning cleanup functions
func Defer(err *error, f func() error) {
	*err = Combine(*err, f())
}
