package schema

import (
	"context"

	"github.com/mlukashov/usergraph/internal/api/graphql/dataloader"
	"github.com/mlukashov/usergraph/internal/core/model"
	"github.com/mlukashov/usergraph/internal/core/store"
)

// storeFor returns the request-scoped store handle when the transport
// middleware installed one, and the handle the schema was composed with
// otherwise.
func (b *builder) storeFor(ctx context.Context) store.Store {
	if s, ok := dataloader.FromContext(ctx); ok {
		return s
	}
	return b.store
}

// deferred runs fn concurrently and returns a resolution thunk. The executor
// collects the thunks of a selection set before unwinding them, so the store
// fetches of sibling fields (and of sibling list items) overlap in time and
// coalesce inside the loaders' batching window.
func deferred(fn func() (interface{}, error)) (interface{}, error) {
	type outcome struct {
		value interface{}
		err   error
	}
	ch := make(chan outcome, 1)
	go func() {
		value, err := fn()
		ch <- outcome{value: value, err: err}
	}()
	return func() (interface{}, error) {
		o := <-ch
		return o.value, o.err
	}, nil
}

// Argument decoding helpers for partial input objects. A key that the client
// did not supply stays nil so the store leaves the column untouched.

func stringArg(args map[string]interface{}, key string) *string {
	if v, ok := args[key].(string); ok {
		return &v
	}
	return nil
}

func floatArg(args map[string]interface{}, key string) *float64 {
	if v, ok := args[key].(float64); ok {
		return &v
	}
	return nil
}

func intArg(args map[string]interface{}, key string) *int {
	if v, ok := args[key].(int); ok {
		return &v
	}
	return nil
}

func boolArg(args map[string]interface{}, key string) *bool {
	if v, ok := args[key].(bool); ok {
		return &v
	}
	return nil
}

func memberTypeIDArg(args map[string]interface{}, key string) *model.MemberTypeID {
	if v, ok := args[key].(string); ok {
		id := model.MemberTypeID(v)
		return &id
	}
	return nil
}
