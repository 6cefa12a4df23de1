// Package accessor serves the storefront and dashboard reads. Every accessor
// queries a repository, runs the transformers and returns a result.Result; no
// error or panic crosses this boundary.
package accessor

import (
	"context"
	"fmt"
	"sort"

	"golang.org/x/sync/singleflight"

	"rugstore/internal/domain/result"
	"rugstore/internal/infrastructure/cache"
	"rugstore/pkg/errors"
	"rugstore/pkg/logger"
)

// reader is the plumbing shared by the accessors: cache-aside lookups with
// one in-flight fetch per key.
type reader struct {
	cache cache.Cache
	group singleflight.Group
	log   logger.Logger
}

type query[T any] struct {
	key      string
	tags     []cache.Tag
	resource string
	fetch    func(ctx context.Context) (T, error)
}

func load[T any](ctx context.Context, r *reader, q query[T]) (res result.Result[T]) {
	defer func() {
		if p := recover(); p != nil {
			r.log.Error("accessor panic", "key", q.key, "panic", fmt.Sprint(p))
			res = result.ErrorWithCode[T]("UNAVAILABLE", unavailable(q.resource))
		}
	}()

	cacheable := q.key != "" && cache.TTL(q.tags...) > 0
	if cacheable {
		var cached T
		found, err := r.cache.Get(ctx, q.key, &cached)
		if err != nil {
			r.log.Warn("cache read failed", "key", q.key, "error", err)
		}
		if found {
			return result.Data(cached)
		}
	}

	fetch := func() (any, error) { return q.fetch(ctx) }
	var (
		v   any
		err error
	)
	if q.key != "" {
		v, err, _ = r.group.Do(q.key, fetch)
	} else {
		v, err = fetch()
	}
	if err != nil {
		return failure[T](r, q, err)
	}

	value := v.(T)
	if cacheable {
		if err := r.cache.Set(ctx, q.key, value, cache.TTL(q.tags...), q.tags...); err != nil {
			r.log.Warn("cache write failed", "key", q.key, "error", err)
		}
	}
	return result.Data(value)
}

func failure[T any](r *reader, q query[T], err error) result.Result[T] {
	if errors.Is(err, "NOT_FOUND") {
		r.log.Debug("not found", "resource", q.resource, "key", q.key)
		return result.ErrorWithCode[T]("NOT_FOUND", fmt.Sprintf("%s not found", q.resource))
	}
	r.log.Error("accessor query failed", "resource", q.resource, "key", q.key, "error", err)
	return result.ErrorWithCode[T]("UNAVAILABLE", unavailable(q.resource))
}

func unavailable(resource string) string {
	return fmt.Sprintf("Unable to load %s right now", resource)
}

func notFound(resource string) error {
	return errors.NotFound(resource, nil)
}

// bySortOrder orders by sortOrder, then name, so listings need no composite
// index in the store.
func bySortOrder[T any](xs []T, order func(T) int, name func(T) string) {
	sort.SliceStable(xs, func(i, j int) bool {
		if order(xs[i]) != order(xs[j]) {
			return order(xs[i]) < order(xs[j])
		}
		return name(xs[i]) < name(xs[j])
	})
}
