package store

// EmptyKVStore holds nothing and ignores writes. Tests use it where a store
// is required but never read.
type EmptyKVStore struct{}

var _ KVStore = EmptyKVStore{}

func (EmptyKVStore) Get([]byte) ([]byte, error) { return nil, nil }
func (EmptyKVStore) Has([]byte) (bool, error)   { return false, nil }
func (EmptyKVStore) Set([]byte, []byte) error   { return nil }
func (EmptyKVStore) Delete([]byte) error        { return nil }

func (EmptyKVStore) Iterator([]byte, []byte) (Iterator, error) {
	return NewSliceIterator(nil), nil
}

func (EmptyKVStore) ReverseIterator([]byte, []byte) (Iterator, error) {
	return NewSliceIterator(nil), nil
}
