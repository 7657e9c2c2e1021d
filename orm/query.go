package orm

import (
	"github.com/iov-one/artmarket"
	"github.com/iov-one/artmarket/errors"
)

// ConsumeIterator reads all remaining pairs and releases the iterator.
func ConsumeIterator(itr artmarket.Iterator) ([]artmarket.Model, error) {
	defer itr.Release()

	var res []artmarket.Model
	for {
		key, value, err := itr.Next()
		if errors.ErrIteratorDone.Is(err) {
			return res, nil
		}
		if err != nil {
			return nil, err
		}
		res = append(res, artmarket.Pair(key, value))
	}
}

// prefixRange returns the iterator bounds covering all keys that start with
// prefix. The end is nil when no key greater than the whole range exists.
func prefixRange(prefix []byte) ([]byte, []byte) {
	if len(prefix) == 0 {
		return nil, nil
	}
	end := append([]byte(nil), prefix...)
	for i := len(end) - 1; i >= 0; i-- {
		if end[i] != 0xFF {
			end[i]++
			return prefix, end[:i+1]
		}
	}
	return prefix, nil
}
