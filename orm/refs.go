package orm

import (
	"bytes"
	"sort"

	"github.com/iov-one/artmarket"
)

// refSet is the value of a non unique index entry: primary keys kept in
// ascending order without duplicates.
type refSet struct {
	Refs [][]byte
}

func (s *refSet) search(ref []byte) (int, bool) {
	i := sort.Search(len(s.Refs), func(i int) bool {
		return bytes.Compare(s.Refs[i], ref) >= 0
	})
	return i, i < len(s.Refs) && bytes.Equal(s.Refs[i], ref)
}

// add returns false if ref is already in the set.
func (s *refSet) add(ref []byte) bool {
	i, found := s.search(ref)
	if found {
		return false
	}
	s.Refs = append(s.Refs, nil)
	copy(s.Refs[i+1:], s.Refs[i:])
	s.Refs[i] = ref
	return true
}

// remove returns false if ref is not in the set.
func (s *refSet) remove(ref []byte) bool {
	i, found := s.search(ref)
	if !found {
		return false
	}
	s.Refs = append(s.Refs[:i], s.Refs[i+1:]...)
	return true
}

func (s *refSet) Marshal() ([]byte, error) {
	return artmarket.MarshalModel(s)
}

func (s *refSet) Unmarshal(raw []byte) error {
	return artmarket.UnmarshalModel(raw, s)
}
