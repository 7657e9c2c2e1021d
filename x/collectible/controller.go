package collectible

import (
	"github.com/iov-one/artmarket"
	"github.com/iov-one/artmarket/errors"
	"github.com/iov-one/artmarket/gconf"
	"github.com/iov-one/artmarket/orm"
	"github.com/iov-one/artmarket/x/policy"
	"github.com/iov-one/artmarket/x/utils"
	"github.com/tendermint/tendermint/libs/log"
)

// Name is the name of the collection kept by the registry.
const Name = "ArtCollectible"

// registryAddress identifies the registry when it is referenced by other
// extensions, for example in the marketplace configuration.
var registryAddress = artmarket.NewCondition("collectible", "registry", []byte(Name)).Address()

// Controller implements all token registry operations. Mutating operations
// are all or nothing: they either apply every change or leave the store
// untouched.
type Controller struct {
	tokens orm.ModelBucket
	ids    orm.Sequence
	pauser policy.Pauser
	logger log.Logger
}

// NewController returns a registry controller operating on the tokens bucket.
func NewController() Controller {
	return Controller{
		tokens: NewTokenBucket(),
		ids:    orm.NewSequence(BucketName, orm.SeqID),
		pauser: policy.NewPauser(configPkg),
		logger: log.NewNopLogger(),
	}
}

// WithLogger returns a copy of the controller that logs state transitions at
// debug level.
func (c Controller) WithLogger(logger log.Logger) Controller {
	c.logger = logger.With("module", configPkg)
	return c
}

// Name returns the name of the collection.
func (Controller) Name() string {
	return Name
}

// Address returns the address identifying this registry.
func (Controller) Address() artmarket.Address {
	return registryAddress
}

// Mint creates a new token owned by the caller. Royalty is given in basis
// points and must not exceed MaxRoyalty. The metadata reference must not be
// used by another live token. Minting is not possible while the registry is
// paused.
func (c Controller) Mint(db artmarket.KVStore, caller artmarket.Address, metadataRef string, royalty uint32) (uint64, error) {
	var id uint64
	err := utils.Atomic(db, func(db artmarket.KVStore) error {
		if err := c.pauser.RequireNotPaused(db); err != nil {
			return err
		}
		if err := caller.Validate(); err != nil {
			return errors.Wrap(err, "caller")
		}
		if royalty > MaxRoyalty {
			return errors.Wrapf(ErrInvalidRoyalty, "%d not in [0, %d]", royalty, MaxRoyalty)
		}
		if err := validateMetadataRef(metadataRef); err != nil {
			return err
		}
		ref := CanonicalMetadataRef(metadataRef)
		switch _, err := c.GetByMetadata(db, ref); {
		case err == nil:
			return errors.Wrapf(ErrDuplicateMetadata, "%q", ref)
		case !ErrTokenNotFound.Is(err):
			return err
		}

		next, err := c.ids.NextInt(db)
		if err != nil {
			return errors.Wrap(err, "token id")
		}
		token := Token{
			ID:          next,
			Creator:     caller,
			Owner:       caller,
			Royalty:     royalty,
			MetadataRef: ref,
			Exists:      true,
		}
		if _, err := c.tokens.Put(db, orm.EncodeSequence(next), &token); err != nil {
			return errors.Wrap(err, "save token")
		}
		id = next
		return nil
	})
	if err != nil {
		return 0, err
	}
	c.logger.Debug("token minted", "id", id, "creator", caller)
	return id, nil
}

// TransferCustody moves the token to a new owner. The caller must be the
// current owner or the configured marketplace operator. Only the operator
// may move a token to itself, which it does when the token is listed.
func (c Controller) TransferCustody(db artmarket.KVStore, caller artmarket.Address, tokenID uint64, to artmarket.Address) error {
	var from artmarket.Address
	err := utils.Atomic(db, func(db artmarket.KVStore) error {
		if err := to.Validate(); err != nil {
			return errors.Wrap(err, "recipient")
		}
		token, err := c.Get(db, tokenID)
		if err != nil {
			return err
		}
		operator := c.isOperator(db, caller)
		if !caller.Equals(token.Owner) && !operator {
			return errors.Wrapf(ErrNotOwner, "token %d", tokenID)
		}
		if !operator && c.isOperator(db, to) {
			return errors.Wrapf(ErrNotOwner, "token %d cannot be given to the marketplace", tokenID)
		}
		from = token.Owner
		token.Owner = to
		if _, err := c.tokens.Put(db, orm.EncodeSequence(tokenID), token); err != nil {
			return errors.Wrap(err, "save token")
		}
		return nil
	})
	if err != nil {
		return err
	}
	c.logger.Debug("token custody transferred", "id", tokenID, "from", from, "to", to)
	return nil
}

// isOperator returns true if addr is the configured marketplace operator.
func (c Controller) isOperator(db artmarket.ReadOnlyKVStore, addr artmarket.Address) bool {
	conf, err := loadConfig(db)
	if err != nil {
		return false
	}
	return len(conf.Marketplace) != 0 && conf.Marketplace.Equals(addr)
}

// Burn destroys the token. Only the current owner can burn a token. The
// record is kept so that its id is never reused, while its metadata
// reference becomes available again.
func (c Controller) Burn(db artmarket.KVStore, caller artmarket.Address, tokenID uint64) error {
	err := utils.Atomic(db, func(db artmarket.KVStore) error {
		token, err := c.Get(db, tokenID)
		if err != nil {
			return err
		}
		if !caller.Equals(token.Owner) {
			return errors.Wrapf(ErrNotOwner, "token %d", tokenID)
		}
		token.Exists = false
		if _, err := c.tokens.Put(db, orm.EncodeSequence(tokenID), token); err != nil {
			return errors.Wrap(err, "save token")
		}
		return nil
	})
	if err != nil {
		return err
	}
	c.logger.Debug("token burned", "id", tokenID)
	return nil
}

// Get returns the live token with given id.
func (c Controller) Get(db artmarket.ReadOnlyKVStore, tokenID uint64) (*Token, error) {
	var token Token
	switch err := c.tokens.One(db, orm.EncodeSequence(tokenID), &token); {
	case errors.ErrNotFound.Is(err):
		return nil, errors.Wrapf(ErrTokenNotFound, "token %d", tokenID)
	case err != nil:
		return nil, err
	}
	if !token.Exists {
		return nil, errors.Wrapf(ErrTokenNotFound, "token %d burned", tokenID)
	}
	return &token, nil
}

// GetByMetadata returns the live token minted with given metadata reference.
func (c Controller) GetByMetadata(db artmarket.ReadOnlyKVStore, metadataRef string) (*Token, error) {
	ref := CanonicalMetadataRef(metadataRef)
	var tokens []Token
	if _, err := c.tokens.ByIndex(db, "metadata", []byte(ref), &tokens); err != nil {
		return nil, err
	}
	if len(tokens) == 0 {
		return nil, errors.Wrapf(ErrTokenNotFound, "metadata %q", ref)
	}
	return &tokens[0], nil
}

// GetMany returns the tokens in the order of given ids. It fails on the first
// id that does not refer to a live token.
func (c Controller) GetMany(db artmarket.ReadOnlyKVStore, tokenIDs []uint64) ([]Token, error) {
	res := make([]Token, 0, len(tokenIDs))
	for _, id := range tokenIDs {
		t, err := c.Get(db, id)
		if err != nil {
			return nil, err
		}
		res = append(res, *t)
	}
	return res, nil
}

// OwnerOf returns the current owner of a live token.
func (c Controller) OwnerOf(db artmarket.ReadOnlyKVStore, tokenID uint64) (artmarket.Address, error) {
	t, err := c.Get(db, tokenID)
	if err != nil {
		return nil, err
	}
	return t.Owner, nil
}

// BalanceOf returns the number of live tokens owned by who.
func (c Controller) BalanceOf(db artmarket.ReadOnlyKVStore, who artmarket.Address) (uint64, error) {
	var tokens []Token
	keys, err := c.tokens.ByIndex(db, "owner", who, &tokens)
	if err != nil {
		return 0, err
	}
	return uint64(len(keys)), nil
}

// OwnedBy returns up to count live tokens owned by who with an id greater
// than after, in ascending id order. Pass the id of the last returned token
// as after to read the next page.
func (c Controller) OwnedBy(db artmarket.ReadOnlyKVStore, who artmarket.Address, after uint64, count int) ([]Token, error) {
	return c.page(db, "owner", who, after, count)
}

// CreatedBy returns up to count live tokens created by who with an id
// greater than after, in ascending id order.
func (c Controller) CreatedBy(db artmarket.ReadOnlyKVStore, who artmarket.Address, after uint64, count int) ([]Token, error) {
	return c.page(db, "creator", who, after, count)
}

func (c Controller) page(db artmarket.ReadOnlyKVStore, index string, who artmarket.Address, after uint64, count int) ([]Token, error) {
	if count < 1 {
		return nil, errors.Wrapf(errors.ErrInput, "count %d", count)
	}
	if err := who.Validate(); err != nil {
		return nil, errors.Wrap(err, "address")
	}
	var tokens []Token
	if _, err := c.tokens.ByIndex(db, index, who, &tokens); err != nil {
		return nil, err
	}
	res := make([]Token, 0, count)
	for _, t := range tokens {
		if t.ID <= after {
			continue
		}
		res = append(res, t)
		if len(res) == count {
			break
		}
	}
	return res, nil
}

// Pause stops minting until Unpause is called. Only the configuration owner
// can pause the registry.
func (c Controller) Pause(db artmarket.KVStore, caller artmarket.Address) error {
	err := utils.Atomic(db, func(db artmarket.KVStore) error {
		if err := c.requireOwner(db, caller); err != nil {
			return err
		}
		return c.pauser.Pause(db)
	})
	if err == nil {
		c.logger.Debug("registry paused")
	}
	return err
}

// Unpause allows minting again.
func (c Controller) Unpause(db artmarket.KVStore, caller artmarket.Address) error {
	err := utils.Atomic(db, func(db artmarket.KVStore) error {
		if err := c.requireOwner(db, caller); err != nil {
			return err
		}
		return c.pauser.Unpause(db)
	})
	if err == nil {
		c.logger.Debug("registry unpaused")
	}
	return err
}

// IsPaused returns true while minting is paused.
func (c Controller) IsPaused(db artmarket.ReadOnlyKVStore) (bool, error) {
	return c.pauser.IsPaused(db)
}

// SetMarketplace configures the operator allowed to move custody of any
// token. Only the configuration owner can change it.
func (c Controller) SetMarketplace(db artmarket.KVStore, caller artmarket.Address, operator artmarket.Address) error {
	return utils.Atomic(db, func(db artmarket.KVStore) error {
		conf, err := loadConfig(db)
		if err != nil {
			return err
		}
		if err := policy.IsOwner(caller, conf.Owner); err != nil {
			return err
		}
		if err := operator.Validate(); err != nil {
			return errors.Wrap(err, "operator")
		}
		conf.Marketplace = operator
		return gconf.Save(db, configPkg, conf)
	})
}

// Marketplace returns the configured marketplace operator, if any.
func (c Controller) Marketplace(db artmarket.ReadOnlyKVStore) (artmarket.Address, error) {
	conf, err := loadConfig(db)
	if err != nil {
		return nil, err
	}
	return conf.Marketplace, nil
}

func (c Controller) requireOwner(db artmarket.ReadOnlyKVStore, caller artmarket.Address) error {
	conf, err := loadConfig(db)
	if err != nil {
		return err
	}
	return policy.IsOwner(caller, conf.Owner)
}
