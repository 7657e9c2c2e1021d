package errors

import (
	"fmt"

	"github.com/pkg/errors"
)

// Field attaches a field name to err, or returns nil for a nil err. Nested
// fields use a dotted path such as Item.Price.
func Field(field string, err error, description string, args ...interface{}) error {
	if isNilErr(err) {
		return nil
	}
	if !hasStack(err) {
		err = errors.WithStack(err)
	}
	if len(args) > 0 {
		description = fmt.Sprintf(description, args...)
	}
	return &fieldError{field: field, desc: description, cause: err}
}

// AppendField adds the error of a single field to errs. Both may be nil.
func AppendField(errs error, field string, err error) error {
	return Append(errs, Field(field, err, ""))
}

type fieldError struct {
	field string
	desc  string
	cause error
}

func (e *fieldError) Error() string {
	if e.desc == "" {
		return fmt.Sprintf("field %q: %s", e.field, e.cause)
	}
	return fmt.Sprintf("field %q: %s: %s", e.field, e.desc, e.cause)
}

func (e *fieldError) Cause() error     { return e.cause }
func (e *fieldError) Field() string    { return e.field }
func (e *fieldError) ABCICode() uint32 { return abciCode(e.cause) }

type fielder interface {
	Field() string
}

// FieldErrors returns every error in err reported for field.
func FieldErrors(err error, field string) []error {
	if isNilErr(err) {
		return nil
	}
	if f, ok := err.(fielder); ok && f.Field() == field {
		return []error{err}
	}
	switch e := err.(type) {
	case unpacker:
		var found []error
		for _, member := range e.Unpack() {
			found = append(found, FieldErrors(member, field)...)
		}
		return found
	case causer:
		return FieldErrors(e.Cause(), field)
	}
	return nil
}
