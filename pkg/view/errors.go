package view

import (
	"errors"
	"fmt"
	"reflect"
)

// ErrInvalidArgument matches every InvalidArgumentError via errors.Is.
var ErrInvalidArgument = errors.New("view: invalid argument")

// InvalidArgumentError reports path input that is neither a string nor a
// mapping. Type holds the Go type of the offending value.
type InvalidArgumentError struct {
	Type string
}

func (e *InvalidArgumentError) Error() string {
	return fmt.Sprintf("view: path must be a string or a mapping; %s given", e.Type)
}

// Is lets errors.Is(err, ErrInvalidArgument) match.
func (e *InvalidArgumentError) Is(target error) bool {
	return target == ErrInvalidArgument
}

func newInvalidArgument(value any) error {
	return &InvalidArgumentError{Type: typeName(value)}
}

func typeName(value any) string {
	if value == nil {
		return "nil"
	}
	return reflect.TypeOf(value).String()
}
