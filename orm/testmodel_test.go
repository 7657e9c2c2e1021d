package orm

import (
	"github.com/iov-one/artmarket"
	"github.com/iov-one/artmarket/errors"
)

// Counter is a minimal model used by the tests of this package.
type Counter struct {
	Count int64
	Tags  []string
}

var _ Model = (*Counter)(nil)

func NewCounter(count int64, tags ...string) *Counter {
	return &Counter{Count: count, Tags: tags}
}

func (c *Counter) Validate() error {
	if c.Count < 0 {
		return errors.Wrap(errors.ErrInput, "negative count")
	}
	return nil
}

func (c *Counter) Copy() Model {
	cpy := *c
	cpy.Tags = append([]string(nil), c.Tags...)
	return &cpy
}

func (c *Counter) Marshal() ([]byte, error) {
	return artmarket.MarshalModel(c)
}

func (c *Counter) Unmarshal(raw []byte) error {
	return artmarket.UnmarshalModel(raw, c)
}

// otherModel is a Model of a different concrete type than Counter, used to
// check type mismatches.
type otherModel struct {
	Counter
}

var _ Model = (*otherModel)(nil)

func (o *otherModel) Copy() Model {
	cpy := *o
	return &cpy
}
