package app

import (
	"fmt"
	"regexp"

	"github.com/iov-one/artmarket"
	"github.com/iov-one/artmarket/errors"
)

var validPath = regexp.MustCompile(`^[a-zA-Z0-9_/]+$`).MatchString

// Router dispatches every transaction to the handler registered for the path
// of its message.
type Router struct {
	routes map[string]artmarket.Handler
}

var (
	_ artmarket.Registry = (*Router)(nil)
	_ artmarket.Handler  = (*Router)(nil)
)

func NewRouter() *Router {
	return &Router{routes: make(map[string]artmarket.Handler)}
}

// Handle binds h to msg.Path. It panics on an invalid or already bound path.
func (r *Router) Handle(msg artmarket.Msg, h artmarket.Handler) {
	path := msg.Path()
	if !validPath(path) {
		panic(fmt.Sprintf("invalid message path %q", path))
	}
	if _, ok := r.routes[path]; ok {
		panic(fmt.Sprintf("message path %q registered twice", path))
	}
	r.routes[path] = h
}

func (r *Router) Check(ctx artmarket.Context, db artmarket.KVStore, tx artmarket.Tx) (*artmarket.CheckResult, error) {
	h, err := r.route(tx)
	if err != nil {
		return nil, err
	}
	return h.Check(ctx, db, tx)
}

func (r *Router) Deliver(ctx artmarket.Context, db artmarket.KVStore, tx artmarket.Tx) (*artmarket.DeliverResult, error) {
	h, err := r.route(tx)
	if err != nil {
		return nil, err
	}
	return h.Deliver(ctx, db, tx)
}

func (r *Router) route(tx artmarket.Tx) (artmarket.Handler, error) {
	msg, err := tx.GetMsg()
	if err != nil {
		return nil, errors.Wrap(err, "cannot load msg")
	}
	h, ok := r.routes[msg.Path()]
	if !ok {
		return nil, errors.Wrapf(errors.ErrNotFound, "no handler for message path %q", msg.Path())
	}
	return h, nil
}
