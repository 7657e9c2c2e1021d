package errors

import (
	"fmt"
	"strings"

	"github.com/pkg/errors"
)

const (
	// SuccessABCICode is the code of a response without an error.
	SuccessABCICode = 0

	// Errors without a code of their own are reported under this code and
	// message.
	internalABCICode uint32 = 1
	internalABCILog         = "internal error"
)

type coder interface {
	ABCICode() uint32
}

// ABCIInfo returns the code and log of the ABCI response for err. Outside of
// debug mode the message of an error without a code is replaced by a generic
// one, and in debug mode every log carries the stack trace.
func ABCIInfo(err error, debug bool) (uint32, string) {
	if isNilErr(err) {
		return SuccessABCICode, ""
	}
	code := abciCode(err)
	switch {
	case debug:
		return code, fmt.Sprintf("%+v", err)
	case code == internalABCICode:
		return code, internalABCILog
	default:
		return code, err.Error()
	}
}

// abciCode returns the code of the outermost error in err that has one.
func abciCode(err error) uint32 {
	if isNilErr(err) {
		return SuccessABCICode
	}
	code := internalABCICode
	walk(err, func(cur error) bool {
		c, ok := cur.(coder)
		if ok {
			code = c.ABCICode()
		}
		return ok
	})
	return code
}

// Redact replaces an error without a code, or a recovered panic, by a
// generic internal error. In debug mode err is returned unchanged.
func Redact(err error, debug bool) error {
	if debug || isNilErr(err) {
		return err
	}
	if ErrPanic.Is(err) || abciCode(err) == internalABCICode {
		return errors.New(internalABCILog)
	}
	return err
}

// ABCIError rebuilds an error from the code and log of an ABCI response, so
// that a client can test it with Is. Only clients need it.
func ABCIError(code uint32, log string) error {
	e, ok := codes[code]
	if !ok || e == nil {
		// Never matches Is.
		return Wrap(&Error{code: code, desc: "unknown error"}, log)
	}
	msg := strings.TrimSuffix(log, ": "+e.desc)
	if msg == "" || msg == e.desc {
		return e
	}
	return Wrap(e, msg)
}
