package errors

import (
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestABCIInfo(t *testing.T) {
	cases := map[string]struct {
		err      error
		debug    bool
		wantCode uint32
		wantLog  string
	}{
		"registered":       {err: ErrNotFound, wantCode: 3, wantLog: "not found"},
		"wrapped":          {err: Wrap(Wrap(ErrNotFound, "token 7"), "buy"), wantCode: 3, wantLog: "buy: token 7: not found"},
		"child":            {err: Wrap(errTestRoyalty, "41"), wantCode: 9001, wantLog: "41: test royalty"},
		"nil":              {err: nil, wantCode: 0},
		"typed nil":        {err: (*Error)(nil), wantCode: 0},
		"stdlib":           {err: io.EOF, wantCode: 1, wantLog: "internal error"},
		"wrapped stdlib":   {err: Wrap(io.EOF, "read"), wantCode: 1, wantLog: "internal error"},
		"stdlib in debug":  {err: io.EOF, debug: true, wantCode: 1, wantLog: "EOF"},
		"joined":           {err: Append(ErrEmpty, ErrState), wantCode: 10},
		"field keeps code": {err: Field("Royalty", errTestRoyalty, "41"), wantCode: 9001, wantLog: `field "Royalty": 41: test royalty`},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			code, log := ABCIInfo(tc.err, tc.debug)
			assert.Equal(t, tc.wantCode, code)
			if tc.wantLog != "" || tc.err == nil {
				assert.Equal(t, tc.wantLog, log)
			}
		})
	}
}

func TestABCIInfoDebugHasStack(t *testing.T) {
	_, log := ABCIInfo(Wrap(ErrNotFound, "token 7"), true)
	assert.True(t, strings.HasPrefix(log, "token 7\n"), log)
	assert.Contains(t, log, "TestABCIInfoDebugHasStack")
}

func TestRedact(t *testing.T) {
	assert.False(t, ErrPanic.Is(Redact(Wrap(ErrPanic, "boom"), false)))
	assert.True(t, ErrPanic.Is(Redact(ErrPanic, true)))
	assert.Equal(t, "internal error", Redact(io.EOF, false).Error())
	assert.True(t, ErrNotFound.Is(Redact(ErrNotFound, false)))
	assert.Nil(t, Redact(nil, false))
}

func TestABCIError(t *testing.T) {
	err := ABCIError(ErrNotFound.code, "token 7: not found")
	assert.True(t, ErrNotFound.Is(err))
	assert.Equal(t, "token 7: not found", err.Error())

	assert.Equal(t, ErrNotFound, ABCIError(ErrNotFound.code, "not found"))
	assert.True(t, ErrInput.Is(ABCIError(errTestRoyalty.code, "test royalty")))

	unknown := ABCIError(777777, "something bad")
	assert.False(t, ErrNotFound.Is(unknown))
	assert.False(t, ErrInput.Is(unknown))
	assert.Equal(t, "something bad: unknown error", unknown.Error())
}
