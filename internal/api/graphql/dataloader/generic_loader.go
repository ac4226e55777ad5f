package dataloader

import (
	"context"
	"time"

	"github.com/vikstrous/dataloadgen"
)

// Loader tuning shared by every entity loader. The wait window is what turns
// the per-parent fetches issued while one selection set resolves into a
// single batched store query.
func loaderOptions() []dataloadgen.Option {
	return []dataloadgen.Option{
		dataloadgen.WithBatchCapacity(100),
		dataloadgen.WithWait(250 * time.Microsecond),
	}
}

// newKeyedLoader builds a loader over a batch fetch that returns at most one
// record per key. Keys with no matching record resolve to the zero value
// (nil for pointer types) without an error, matching the store's fetch-one
// contract.
func newKeyedLoader[K comparable, V any](
	batch func(ctx context.Context, keys []K) ([]V, error),
	keyOf func(V) K,
) *dataloadgen.Loader[K, V] {
	fetch := func(ctx context.Context, keys []K) ([]V, []error) {
		values, err := batch(ctx, keys)
		if err != nil {
			errs := make([]error, len(keys))
			for i := range errs {
				errs[i] = err
			}
			return make([]V, len(keys)), errs
		}

		// Build a map for O(1) lookup.
		valueMap := make(map[K]V, len(values))
		for _, v := range values {
			valueMap[keyOf(v)] = v
		}

		// Return results in the same order as requested keys.
		result := make([]V, len(keys))
		for i, key := range keys {
			if v, ok := valueMap[key]; ok {
				result[i] = v
			}
		}

		return result, make([]error, len(keys))
	}

	return dataloadgen.NewLoader(fetch, loaderOptions()...)
}

// newGroupedLoader builds a loader over a batch fetch that returns zero or
// more records per key. Keys with no matching records resolve to an empty,
// non-nil slice.
func newGroupedLoader[K comparable, V any](
	batch func(ctx context.Context, keys []K) (map[K][]V, error),
) *dataloadgen.Loader[K, []V] {
	fetch := func(ctx context.Context, keys []K) ([][]V, []error) {
		grouped, err := batch(ctx, keys)
		if err != nil {
			errs := make([]error, len(keys))
			for i := range errs {
				errs[i] = err
			}
			return make([][]V, len(keys)), errs
		}

		result := make([][]V, len(keys))
		for i, key := range keys {
			if vs, ok := grouped[key]; ok {
				result[i] = vs
			} else {
				result[i] = []V{}
			}
		}

		return result, make([]error, len(keys))
	}

	return dataloadgen.NewLoader(fetch, loaderOptions()...)
}
