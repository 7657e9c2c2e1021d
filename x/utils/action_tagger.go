package utils

import (
	"github.com/iov-one/artmarket"
	"github.com/iov-one/artmarket/errors"
)

// ActionKey is the tag under which ActionTagger records the message path.
// Clients search it to follow a single kind of operation, for example every
// market/buy.
const ActionKey = "action"

// ActionTagger adds the ActionKey tag to every successful deliver result.
// Check calls are passed through untouched.
type ActionTagger struct{}

var _ artmarket.Decorator = ActionTagger{}

func NewActionTagger() ActionTagger {
	return ActionTagger{}
}

func (ActionTagger) Check(ctx artmarket.Context, db artmarket.KVStore, tx artmarket.Tx, next artmarket.Checker) (*artmarket.CheckResult, error) {
	return next.Check(ctx, db, tx)
}

func (ActionTagger) Deliver(ctx artmarket.Context, db artmarket.KVStore, tx artmarket.Tx, next artmarket.Deliverer) (*artmarket.DeliverResult, error) {
	// Fail before any state is touched if the path cannot be read.
	msg, err := tx.GetMsg()
	if err != nil {
		return nil, errors.Wrap(err, "action tag")
	}
	res, err := next.Deliver(ctx, db, tx)
	if err != nil {
		return nil, err
	}
	res.Tags = append(res.Tags, artmarket.Tag(ActionKey, []byte(msg.Path())))
	return res, nil
}
