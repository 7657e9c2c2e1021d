package policy

import (
	"github.com/iov-one/artmarket"
	"github.com/iov-one/artmarket/errors"
)

var flagSet = []byte{1}

// Pauser keeps an administrative pause flag of a package under the
// "_p:<package>" key.
type Pauser struct {
	key []byte
}

// NewPauser returns a pause flag for given package.
func NewPauser(pkg string) Pauser {
	return Pauser{key: []byte("_p:" + pkg)}
}

// IsPaused returns true if the flag is set.
func (p Pauser) IsPaused(db artmarket.ReadOnlyKVStore) (bool, error) {
	ok, err := db.Has(p.key)
	if err != nil {
		return false, errors.Wrap(err, "cannot read pause flag")
	}
	return ok, nil
}

// RequireNotPaused returns ErrPaused if the flag is set.
func (p Pauser) RequireNotPaused(db artmarket.ReadOnlyKVStore) error {
	paused, err := p.IsPaused(db)
	if err != nil {
		return err
	}
	if paused {
		return errors.Wrap(ErrPaused, string(p.key[3:]))
	}
	return nil
}

// Pause sets the flag. Pausing twice is an error.
func (p Pauser) Pause(db artmarket.KVStore) error {
	if err := p.RequireNotPaused(db); err != nil {
		return err
	}
	return db.Set(p.key, flagSet)
}

// Unpause clears the flag. Unpausing when not paused is an error.
func (p Pauser) Unpause(db artmarket.KVStore) error {
	paused, err := p.IsPaused(db)
	if err != nil {
		return err
	}
	if !paused {
		return errors.Wrap(ErrNotPaused, string(p.key[3:]))
	}
	return db.Delete(p.key)
}
