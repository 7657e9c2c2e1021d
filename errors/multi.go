package errors

import (
	"fmt"
	"strings"
)

// Append joins errs, skipping nil values. It returns nil when nothing is
// left and the error itself when one is left. A joined error has the ABCI
// code of its first member and matches Is for any of them.
func Append(errs ...error) error {
	var joined multiErr
	for _, err := range errs {
		switch m := err.(type) {
		case multiErr:
			joined = append(joined, m...)
		default:
			if !isNilErr(err) {
				joined = append(joined, err)
			}
		}
	}
	switch len(joined) {
	case 0:
		return nil
	case 1:
		return joined[0]
	}
	return joined
}

type multiErr []error

var (
	_ coder    = multiErr(nil)
	_ unpacker = multiErr(nil)
)

func (m multiErr) Error() string {
	lines := make([]string, len(m))
	for i, err := range m {
		lines[i] = "* " + err.Error()
	}
	return fmt.Sprintf("%d errors occurred:\n\t%s", len(m), strings.Join(lines, "\n\t"))
}

func (m multiErr) ABCICode() uint32 {
	if len(m) == 0 {
		return SuccessABCICode
	}
	return abciCode(m[0])
}

func (m multiErr) Unpack() []error { return m }

type unpacker interface {
	Unpack() []error
}
