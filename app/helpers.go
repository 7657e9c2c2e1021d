package app

import (
	"github.com/iov-one/artmarket"
	"github.com/iov-one/artmarket/errors"
	"github.com/iov-one/artmarket/store"
	abci "github.com/tendermint/tendermint/abci/types"
)

// ABCIStore reads the committed state of an application through its raw
// query path "/". Wrapped in a bucket it gives clients the same typed access
// the handlers have.
type ABCIStore struct {
	app abci.Application
}

var _ artmarket.ReadOnlyKVStore = (*ABCIStore)(nil)

func NewABCIStore(app abci.Application) *ABCIStore {
	return &ABCIStore{app: app}
}

func (a *ABCIStore) Get(key []byte) ([]byte, error) {
	models, err := a.query("/", key)
	switch {
	case err != nil:
		return nil, err
	case len(models) > 1:
		return nil, errors.Wrapf(errors.ErrState, "%d results for a single key", len(models))
	case len(models) == 1:
		return models[0].Value, nil
	}
	return nil, nil
}

func (a *ABCIStore) Has(key []byte) (bool, error) {
	value, err := a.Get(key)
	return value != nil, err
}

// Iterator lists the whole store. Ranges are not supported by the query
// path.
func (a *ABCIStore) Iterator(start, end []byte) (artmarket.Iterator, error) {
	models, err := a.all(start, end)
	if err != nil {
		return nil, err
	}
	return store.NewSliceIterator(models), nil
}

func (a *ABCIStore) ReverseIterator(start, end []byte) (artmarket.Iterator, error) {
	models, err := a.all(start, end)
	if err != nil {
		return nil, err
	}
	for i, j := 0, len(models)-1; i < j; i, j = i+1, j-1 {
		models[i], models[j] = models[j], models[i]
	}
	return store.NewSliceIterator(models), nil
}

func (a *ABCIStore) all(start, end []byte) ([]artmarket.Model, error) {
	if start != nil || end != nil {
		return nil, errors.Wrap(errors.ErrHuman, "only the full range can be iterated")
	}
	return a.query("/?prefix", nil)
}

func (a *ABCIStore) query(path string, data []byte) ([]artmarket.Model, error) {
	res := a.app.Query(abci.RequestQuery{Path: path, Data: data})
	if res.Code != 0 {
		return nil, errors.Wrapf(errors.ErrDatabase, "query %q failed with %d: %s", path, res.Code, res.Log)
	}
	return decodeResults(res.Key, res.Value)
}
