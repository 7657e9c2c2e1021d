// Package assert holds the short, fatal assertions used by the extension
// tests. Generic checks come from testify, the error helpers understand the
// errors package.
package assert

import (
	"testing"

	"github.com/iov-one/artmarket/errors"
	"github.com/stretchr/testify/require"
)

// Nil stops the test unless value is nil or a typed nil. Errors are printed
// with their stack.
func Nil(t testing.TB, value interface{}) {
	t.Helper()
	require.Nil(t, value, "%+v", value)
}

// Equal stops the test unless got deep equals want.
func Equal(t testing.TB, want, got interface{}) {
	t.Helper()
	require.Equal(t, want, got)
}

func Panics(t testing.TB, fn func()) {
	t.Helper()
	require.Panics(t, fn)
}

// IsErr stops the test unless got is want or matches it through Is.
func IsErr(t testing.TB, want, got error) {
	t.Helper()
	if want == got {
		return
	}
	if e, ok := want.(interface{ Is(error) bool }); ok && e.Is(got) {
		return
	}
	t.Fatalf("want %q error, got %+v", want, got)
}

// FieldError checks the errors reported for a single field of a validation
// error. A nil want expects the field to be valid.
func FieldError(t testing.TB, err error, field string, want *errors.Error) {
	t.Helper()
	found := errors.FieldErrors(err, field)
	if want == nil {
		if len(found) != 0 {
			t.Fatalf("field %q: unexpected errors %q", field, found)
		}
		return
	}
	for _, e := range found {
		if want.Is(e) {
			if len(found) > 1 {
				t.Errorf("field %q: want one error, got %q", field, found)
			}
			return
		}
	}
	t.Fatalf("field %q: want %q error, got %q", field, want, found)
}
