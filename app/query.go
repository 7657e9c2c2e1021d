package app

import (
	"strings"

	"github.com/iov-one/artmarket"
	"github.com/iov-one/artmarket/errors"
	abci "github.com/tendermint/tendermint/abci/types"
)

// Query serves the committed state. The path selects a registered handler and
// may end with "?<mod>", for example "/tokens?prefix". Only the latest height
// can be queried.
//
// The response Key and Value are both a serialized ResultSet of the same
// length, so that any number of models can be returned.
func (s *StoreApp) Query(req abci.RequestQuery) abci.ResponseQuery {
	path, mod := req.Path, ""
	if i := strings.IndexByte(path, '?'); i >= 0 {
		path, mod = path[:i], path[i+1:]
	}
	h := s.queryRouter.Handler(path)
	if h == nil {
		return artmarket.QueryError(errors.Wrapf(errors.ErrNotFound, "path %q", req.Path), false)
	}

	last, err := s.state.latest()
	if err != nil {
		return artmarket.QueryError(err, false)
	}
	if req.Height != 0 && req.Height != last.Version {
		return artmarket.QueryError(errors.Wrapf(errors.ErrInput, "only height %d can be queried", last.Version), false)
	}

	// A handler cannot modify the committed state.
	db := s.state.committed.CacheWrap()
	defer db.Discard()
	models, err := h.Query(db, mod, req.Data)
	if err != nil {
		return artmarket.QueryError(err, false)
	}

	res := abci.ResponseQuery{Height: last.Version}
	if res.Key, res.Value, err = encodeResults(models); err != nil {
		return artmarket.QueryError(err, false)
	}
	return res
}

// RegisterQuery exposes the raw store under "/". The data is a full key, or
// a key prefix with the "prefix" modifier.
func RegisterQuery(qr artmarket.QueryRouter) {
	qr.Register("/", artmarket.QueryHandlerFunc(rawQuery))
}

func rawQuery(db artmarket.ReadOnlyKVStore, mod string, data []byte) ([]artmarket.Model, error) {
	switch mod {
	case artmarket.KeyQueryMod:
		value, err := db.Get(data)
		if err != nil || value == nil {
			return nil, err
		}
		return []artmarket.Model{artmarket.Pair(data, value)}, nil
	case artmarket.PrefixQueryMod:
		var start, end []byte
		if len(data) > 0 {
			start, end = data, prefixEnd(data)
		}
		itr, err := db.Iterator(start, end)
		if err != nil {
			return nil, err
		}
		defer itr.Release()
		var models []artmarket.Model
		for {
			key, value, err := itr.Next()
			if errors.ErrIteratorDone.Is(err) {
				return models, nil
			} else if err != nil {
				return nil, err
			}
			models = append(models, artmarket.Pair(key, value))
		}
	default:
		return nil, errors.Wrapf(errors.ErrInput, "unknown mod %q", mod)
	}
}

// prefixEnd returns the smallest key greater than every key starting with
// prefix, or nil if there is none.
func prefixEnd(prefix []byte) []byte {
	end := append([]byte(nil), prefix...)
	for i := len(end) - 1; i >= 0; i-- {
		if end[i]++; end[i] != 0 {
			return end[:i+1]
		}
	}
	return nil
}
