package app

import (
	"github.com/iov-one/artmarket"
	"github.com/iov-one/artmarket/errors"
)

// ResultSet is the serialized column of a query response. Key and Value of a
// response each hold one, with an entry per returned model.
type ResultSet struct {
	Results [][]byte
}

func (r *ResultSet) Marshal() ([]byte, error)   { return artmarket.MarshalModel(r) }
func (r *ResultSet) Unmarshal(raw []byte) error { return artmarket.UnmarshalModel(raw, r) }

// encodeResults splits models into the serialized key and value columns.
func encodeResults(models []artmarket.Model) (keys, values []byte, err error) {
	var k, v ResultSet
	for _, m := range models {
		k.Results = append(k.Results, m.Key)
		v.Results = append(v.Results, m.Value)
	}
	if keys, err = k.Marshal(); err != nil {
		return nil, nil, errors.Wrap(err, "keys")
	}
	if values, err = v.Marshal(); err != nil {
		return nil, nil, errors.Wrap(err, "values")
	}
	return keys, values, nil
}

// decodeResults joins the key and value columns of a response.
func decodeResults(keys, values []byte) ([]artmarket.Model, error) {
	var k, v ResultSet
	if err := k.Unmarshal(keys); err != nil {
		return nil, errors.Wrap(err, "cannot unmarshal keys")
	}
	if err := v.Unmarshal(values); err != nil {
		return nil, errors.Wrap(err, "cannot unmarshal values")
	}
	if len(k.Results) != len(v.Results) {
		return nil, errors.Wrapf(errors.ErrInput, "%d keys and %d values", len(k.Results), len(v.Results))
	}
	models := make([]artmarket.Model, len(k.Results))
	for i := range models {
		models[i] = artmarket.Pair(k.Results[i], v.Results[i])
	}
	return models, nil
}

// UnmarshalOneResult decodes the first entry of a value column into dst. An
// empty column leaves dst untouched.
func UnmarshalOneResult(values []byte, dst artmarket.Persistent) error {
	var set ResultSet
	if err := set.Unmarshal(values); err != nil {
		return err
	}
	if len(set.Results) == 0 {
		return nil
	}
	return dst.Unmarshal(set.Results[0])
}
