package errors

import (
	"fmt"
	"reflect"

	"github.com/pkg/errors"
)

// Root categories. Codes are part of the client protocol and must never be
// reassigned.
var (
	ErrUnauthorized = Register(2, "unauthorized")
	ErrNotFound     = Register(3, "not found")

	// ErrMsg rejects a message before any state is read.
	ErrMsg = Register(4, "invalid message")
	// ErrModel is a model that cannot be stored or decoded.
	ErrModel = Register(5, "invalid model")

	// ErrConflict is an operation that contradicts the stored state, for
	// example listing a token twice.
	ErrConflict  = Register(6, "conflict")
	ErrDuplicate = ErrConflict.Register(7, "duplicate")

	// ErrHuman is a code path that correct code never reaches.
	ErrHuman     = Register(8, "coding error")
	ErrImmutable = Register(9, "cannot be modified")
	ErrEmpty     = Register(10, "value is empty")
	ErrState     = Register(11, "invalid state")
	ErrType      = Register(12, "invalid type")

	ErrInsufficientAmount = Register(13, "insufficient amount")
	ErrAmount             = Register(14, "invalid amount")
	ErrInput              = Register(15, "invalid input")
	ErrOverflow           = Register(16, "an operation cannot be completed due to value overflow")
	ErrDatabase           = Register(17, "database error")

	// ErrIteratorDone ends every iteration over a store.
	ErrIteratorDone = Register(18, "iterator done")

	// ErrPanic marks a recovered panic. Its message is never shown to
	// clients.
	ErrPanic = Register(111222, "panic")
)

// codes holds every registered error. Code 1 is kept for errors that carry no
// code at all.
var codes = map[uint32]*Error{internalABCICode: nil}

// Register declares a root error. It panics if code is taken, so call it
// from package level variables only.
func Register(code uint32, description string) *Error {
	return register(nil, code, description)
}

// Register declares an error in the category of e. Is reports the new error
// as both itself and e.
func (e *Error) Register(code uint32, description string) *Error {
	if e == nil {
		panic("nil parent error")
	}
	return register(e, code, description)
}

func register(parent *Error, code uint32, description string) *Error {
	if prev, ok := codes[code]; ok {
		name := "reserved"
		if prev != nil {
			name = prev.desc
		}
		panic(fmt.Sprintf("error code %d already registered as %q", code, name))
	}
	e := &Error{code: code, desc: description, parent: parent}
	codes[code] = e
	return e
}

// Error is a registered error. Failures at runtime wrap one of them so that
// a client can tell them apart by code.
type Error struct {
	code   uint32
	desc   string
	parent *Error
}

func (e *Error) Error() string    { return e.desc }
func (e *Error) ABCICode() uint32 { return e.code }
func (e *Error) Parent() *Error   { return e.parent }

// New is a shortcut for Wrap(e, description).
func (e *Error) New(description string) error {
	return Wrap(e, description)
}

func (e *Error) Newf(format string, args ...interface{}) error {
	return Wrapf(e, format, args...)
}

// Is reports whether err is e, a child of e, or anything wrapping or
// holding one of those. A nil e matches only a nil err, typed or not.
func (e *Error) Is(err error) bool {
	if e == nil {
		return isNilErr(err)
	}
	return walk(err, func(cur error) bool {
		for c, _ := cur.(*Error); c != nil; c = c.parent {
			if c == e {
				return true
			}
		}
		return false
	})
}

// isNilErr is true for a nil interface and for a nil pointer behind it.
func isNilErr(err error) bool {
	if err == nil {
		return true
	}
	v := reflect.ValueOf(err)
	return v.Kind() == reflect.Ptr && v.IsNil()
}

// walk calls visit for err and for everything it wraps or holds, depth first,
// until visit returns true.
func walk(err error, visit func(error) bool) bool {
	for !isNilErr(err) {
		if visit(err) {
			return true
		}
		switch e := err.(type) {
		case unpacker:
			for _, member := range e.Unpack() {
				if walk(member, visit) {
					return true
				}
			}
			return false
		case causer:
			err = e.Cause()
		default:
			return false
		}
	}
	return false
}

// Wrap adds description in front of the message of err and records a stack
// trace unless err already carries one. Wrapping nil returns nil, so the
// result of a call can be wrapped without checking it.
func Wrap(err error, description string) error {
	if err == nil {
		return nil
	}
	if !hasStack(err) {
		err = errors.WithStack(err)
	}
	return &wrappedError{msg: description, cause: err}
}

func Wrapf(err error, format string, args ...interface{}) error {
	return Wrap(err, fmt.Sprintf(format, args...))
}

type wrappedError struct {
	msg   string
	cause error
}

func (e *wrappedError) Error() string { return e.msg + ": " + e.cause.Error() }
func (e *wrappedError) Cause() error  { return e.cause }

// Format prints the stack trace for %+v.
func (e *wrappedError) Format(s fmt.State, verb rune) {
	if verb == 'v' && s.Flag('+') {
		fmt.Fprintf(s, "%s\n%+v", e.msg, e.cause)
		return
	}
	fmt.Fprint(s, e.Error())
}

// Recover turns a panic into an ErrPanic assigned to err. It must be called
// with defer.
func Recover(err *error) {
	if r := recover(); r != nil {
		*err = Wrapf(ErrPanic, "%v", r)
	}
}

type causer interface {
	Cause() error
}

type stackTracer interface {
	StackTrace() errors.StackTrace
}

func hasStack(err error) bool {
	return walk(err, func(cur error) bool {
		_, ok := cur.(stackTracer)
		return ok
	})
}
