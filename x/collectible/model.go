package collectible

import (
	"github.com/iov-one/artmarket"
	"github.com/iov-one/artmarket/errors"
	"github.com/iov-one/artmarket/orm"
)

const (
	// BucketName is where the token records are stored.
	BucketName = "tokens"

	// MaxRoyalty is the highest royalty a token can be minted with, in
	// basis points.
	MaxRoyalty = 40
)

// Token is a collectible record. It is never removed from the store, a burned
// token has Exists set to false.
type Token struct {
	ID          uint64
	Creator     artmarket.Address
	Owner       artmarket.Address
	Royalty     uint32
	MetadataRef string
	Exists      bool
}

var _ orm.Model = (*Token)(nil)

func (t *Token) Validate() error {
	var errs error
	if t.ID == 0 {
		errs = errors.Append(errs, errors.Field("ID", errors.ErrEmpty, "required"))
	}
	errs = errors.AppendField(errs, "Creator", t.Creator.Validate())
	errs = errors.AppendField(errs, "Owner", t.Owner.Validate())
	if t.Royalty > MaxRoyalty {
		errs = errors.Append(errs, errors.Field("Royalty", ErrInvalidRoyalty, "%d not in [0, %d]", t.Royalty, MaxRoyalty))
	}
	errs = errors.AppendField(errs, "MetadataRef", validateMetadataRef(t.MetadataRef))
	return errs
}

func (t *Token) Copy() orm.Model {
	return &Token{
		ID:          t.ID,
		Creator:     t.Creator.Clone(),
		Owner:       t.Owner.Clone(),
		Royalty:     t.Royalty,
		MetadataRef: t.MetadataRef,
		Exists:      t.Exists,
	}
}

func (t *Token) Marshal() ([]byte, error) {
	return artmarket.MarshalModel(t)
}

func (t *Token) Unmarshal(raw []byte) error {
	return artmarket.UnmarshalModel(raw, t)
}

// NewTokenBucket returns a bucket storing tokens under their encoded id.
// Burned tokens are dropped from all indexes.
func NewTokenBucket() orm.ModelBucket {
	return orm.NewModelBucket(BucketName, &Token{},
		orm.WithIndex("owner", liveIndexer(func(t *Token) []byte { return t.Owner }), false),
		orm.WithIndex("creator", liveIndexer(func(t *Token) []byte { return t.Creator }), false),
		orm.WithIndex("metadata", liveIndexer(func(t *Token) []byte { return []byte(t.MetadataRef) }), true),
	)
}

func liveIndexer(key func(*Token) []byte) orm.Indexer {
	return func(m orm.Model) ([]byte, error) {
		t, ok := m.(*Token)
		if !ok {
			return nil, errors.Wrapf(errors.ErrType, "%T", m)
		}
		if !t.Exists {
			return nil, nil
		}
		return key(t), nil
	}
}
