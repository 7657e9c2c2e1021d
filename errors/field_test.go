package errors

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFieldErrors(t *testing.T) {
	var (
		nameA = Field("Name", ErrUnauthorized, "a")
		nameB = Field("Name", ErrHuman, "b")
		ref   = Field("MetadataRef", ErrEmpty, "required")
		token = Field("Token", Append(nameB, Append(ref, ErrState)), "invalid")
	)

	cases := map[string]struct {
		err   error
		field string
		want  []error
	}{
		"single":          {err: nameA, field: "Name", want: []error{nameA}},
		"joined":          {err: Append(nameA, nameB), field: "Name", want: []error{nameA, nameB}},
		"outer field":     {err: token, field: "Token", want: []error{token}},
		"nested field":    {err: token, field: "MetadataRef", want: []error{ref}},
		"wrapped field":   {err: Wrap(ref, "mint"), field: "MetadataRef", want: []error{ref}},
		"nil":             {err: nil, field: "Name"},
		"other field":     {err: nameA, field: "Price"},
		"no field at all": {err: ErrEmpty, field: "Name"},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, tc.want, FieldErrors(tc.err, tc.field))
		})
	}
}

func TestField(t *testing.T) {
	err := Field("Royalty", errTestRoyalty, "must be at most %d", 40)
	assert.True(t, ErrInput.Is(err))
	assert.Equal(t, `field "Royalty": must be at most 40: test royalty`, err.Error())
	assert.Nil(t, Field("Royalty", nil, "ignored"))

	assert.Nil(t, AppendField(nil, "Royalty", nil))
	joined := AppendField(ErrState, "Royalty", ErrInput)
	assert.True(t, ErrInput.Is(joined))
	assert.Len(t, FieldErrors(joined, "Royalty"), 1)
}
