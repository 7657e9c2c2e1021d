package orm

import (
	"encoding/binary"

	"github.com/iov-one/artmarket"
	"github.com/iov-one/artmarket/errors"
)

// Sequence is a persisted counter. Every value it hands out is greater than
// the previous one, both as an integer and, once encoded, byte wise.
//
// The counter of a sequence is stored under
//
//	_s.<bucket>:<name>
type Sequence struct {
	id []byte
}

func NewSequence(bucket, name string) Sequence {
	return Sequence{id: []byte("_s." + bucket + ":" + name)}
}

// NextVal increments the counter and returns it encoded.
func (s *Sequence) NextVal(db artmarket.KVStore) ([]byte, error) {
	n, err := s.NextInt(db)
	if err != nil {
		return nil, err
	}
	return EncodeSequence(n), nil
}

// NextInt increments the counter and returns it.
func (s *Sequence) NextInt(db artmarket.KVStore) (uint64, error) {
	n, err := s.Latest(db)
	if err != nil {
		return 0, err
	}
	n++
	if err := db.Set(s.id, EncodeSequence(n)); err != nil {
		return 0, errors.Wrap(err, "cannot save sequence")
	}
	return n, nil
}

// Latest returns the last value handed out, or zero. The counter is left
// unchanged.
func (s *Sequence) Latest(db artmarket.ReadOnlyKVStore) (uint64, error) {
	raw, err := db.Get(s.id)
	if err != nil {
		return 0, errors.Wrap(err, "cannot read sequence")
	}
	return DecodeSequence(raw), nil
}

// EncodeSequence returns n as 8 big endian bytes.
func EncodeSequence(n uint64) []byte {
	raw := make([]byte, 8)
	binary.BigEndian.PutUint64(raw, n)
	return raw
}

// DecodeSequence reverses EncodeSequence. Any input that is not 8 bytes long
// decodes to zero.
func DecodeSequence(raw []byte) uint64 {
	if len(raw) != 8 {
		return 0
	}
	return binary.BigEndian.Uint64(raw)
}
