package param

import (
	"fmt"

	"github.com/pkg/errors"
)

var (
	// ErrMalformedPayload means the payload is shorter than its schema
	// requires.
	ErrMalformedPayload = errors.New("param: malformed payload")

	// ErrSchema means the schema itself cannot be applied, e.g. a length
	// reference to a value that does not exist or is not numeric.
	ErrSchema = errors.New("param: invalid schema")
)

// MalformedError carries the position of a bounds failure.
type MalformedError struct {
	Label  string
	Offset int
	Want   int
	Have   int
}

func (e *MalformedError) Error() string {
	return fmt.Sprintf("param: malformed payload: %s needs %d bytes at offset %d, %d available",
		e.Label, e.Want, e.Offset, e.Have)
}

func (e *MalformedError) Is(target error) bool { return target == ErrMalformedPayload }

func schemaErr(format string, args ...interface{}) error {
	return errors.Wrapf(ErrSchema, format, args...)
}
