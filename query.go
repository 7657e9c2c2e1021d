package artmarket

import (
	"fmt"
)

// Query modifiers. A key query returns at most one model, a prefix query all
// models whose key starts with the data.
const (
	KeyQueryMod    = ""
	PrefixQueryMod = "prefix"
)

// Model is a single key value pair of a query result.
type Model struct {
	Key   []byte
	Value []byte
}

func Pair(key, value []byte) Model {
	return Model{Key: key, Value: value}
}

// QueryHandler answers the queries sent to one path.
type QueryHandler interface {
	Query(db ReadOnlyKVStore, mod string, data []byte) ([]Model, error)
}

// QueryHandlerFunc turns a function into a QueryHandler.
type QueryHandlerFunc func(db ReadOnlyKVStore, mod string, data []byte) ([]Model, error)

func (fn QueryHandlerFunc) Query(db ReadOnlyKVStore, mod string, data []byte) ([]Model, error) {
	return fn(db, mod, data)
}

// QueryRouter maps query paths like "/tokens" to their handlers.
type QueryRouter struct {
	routes map[string]QueryHandler
}

func NewQueryRouter() QueryRouter {
	return QueryRouter{routes: make(map[string]QueryHandler)}
}

// RegisterAll calls every register function with this router. Extensions
// expose such a function to publish their buckets.
func (r QueryRouter) RegisterAll(registers ...func(QueryRouter)) {
	for _, register := range registers {
		register(r)
	}
}

// Register binds h to path. A path can only be bound once.
func (r QueryRouter) Register(path string, h QueryHandler) {
	if _, ok := r.routes[path]; ok {
		panic(fmt.Sprintf("query path %q registered twice", path))
	}
	r.routes[path] = h
}

// Handler returns the handler bound to path or nil.
func (r QueryRouter) Handler(path string) QueryHandler {
	return r.routes[path]
}
