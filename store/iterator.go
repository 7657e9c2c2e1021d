package store

import (
	"bytes"

	"github.com/iov-one/artmarket/errors"
)

// mergedIterator walks the entries of a cache and the iterator of its parent
// at the same time. On equal keys the cache entry wins and a deleted entry
// hides the parent value.
type mergedIterator struct {
	own       []entry
	parent    Iterator
	ascending bool

	// next pair of the parent, valid when peeked is set
	peeked     bool
	parentDone bool
	pKey       []byte
	pValue     []byte
}

var _ Iterator = (*mergedIterator)(nil)

func (m *mergedIterator) Next() ([]byte, []byte, error) {
	for {
		if err := m.peek(); err != nil {
			return nil, nil, err
		}
		if len(m.own) == 0 {
			if m.parentDone {
				return nil, nil, errors.Wrap(errors.ErrIteratorDone, "cache iterator")
			}
			m.peeked = false
			return m.pKey, m.pValue, nil
		}

		e := m.own[0]
		if !m.parentDone {
			order := bytes.Compare(e.key, m.pKey)
			if !m.ascending {
				order = -order
			}
			if order > 0 {
				m.peeked = false
				return m.pKey, m.pValue, nil
			}
			if order == 0 {
				m.peeked = false
			}
		}
		m.own = m.own[1:]
		if !e.deleted {
			return e.key, e.value, nil
		}
	}
}

func (m *mergedIterator) peek() error {
	if m.peeked || m.parentDone {
		return nil
	}
	key, value, err := m.parent.Next()
	switch {
	case errors.ErrIteratorDone.Is(err):
		m.parentDone = true
	case err != nil:
		return err
	default:
		m.pKey, m.pValue, m.peeked = key, value, true
	}
	return nil
}

func (m *mergedIterator) Release() {
	m.own = nil
	m.parent.Release()
}

// SliceIterator iterates over models that are already loaded.
type SliceIterator struct {
	models []Model
}

var _ Iterator = (*SliceIterator)(nil)

func NewSliceIterator(models []Model) *SliceIterator {
	return &SliceIterator{models: models}
}

func (s *SliceIterator) Next() ([]byte, []byte, error) {
	if len(s.models) == 0 {
		return nil, nil, errors.Wrap(errors.ErrIteratorDone, "slice iterator")
	}
	m := s.models[0]
	s.models = s.models[1:]
	return m.Key, m.Value, nil
}

func (s *SliceIterator) Release() {
	s.models = nil
}
