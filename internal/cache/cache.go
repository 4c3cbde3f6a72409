// Package cache is the read-through cache in front of the service reads.
//
// Entries are grouped by entity namespace. A write evicts its whole namespace
// instead of individual keys. Each key embeds the namespace generation read
// when the lookup started, so a slow read that overlaps an eviction stores its
// result under a generation nobody reads anymore.
package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"time"

	apierrors "github.com/yukikurage/task-tracker-api/internal/errors"
	"golang.org/x/sync/singleflight"
)

// Key identifies one cached read: namespace, operation and ordered arguments.
type Key struct {
	Namespace Namespace
	Operation string
	Args      []any
}

// NewKey builds a Key.
func NewKey(ns Namespace, operation string, args ...any) Key {
	return Key{Namespace: ns, Operation: operation, Args: args}
}

func (k Key) String(generation uint64) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s:g%d:%s", k.Namespace, generation, k.Operation)
	for _, arg := range k.Args {
		fmt.Fprintf(&b, ":%v", arg)
	}
	return b.String()
}

// Cache fronts a Store. A nil *Cache is valid and caches nothing.
type Cache struct {
	store   Store
	ttl     time.Duration
	metrics *Metrics
	logger  *slog.Logger
	group   singleflight.Group
}

type Option func(*Cache)

// WithTTL expires entries after ttl. Zero keeps them until evicted.
func WithTTL(ttl time.Duration) Option {
	return func(c *Cache) { c.ttl = ttl }
}

func WithMetrics(m *Metrics) Option {
	return func(c *Cache) { c.metrics = m }
}

func WithLogger(l *slog.Logger) Option {
	return func(c *Cache) { c.logger = l }
}

// New returns a Cache backed by store.
func New(store Store, opts ...Option) *Cache {
	c := &Cache{store: store, logger: slog.Default()}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Fetch returns the cached value for key or calls load and caches its result.
// Errors from load are returned as is and never cached. Store failures are
// reported as Internal.
func Fetch[T any](ctx context.Context, c *Cache, key Key, load func(context.Context) (T, error)) (T, error) {
	var zero T
	if c == nil {
		return load(ctx)
	}

	gen, err := c.store.Generation(ctx, key.Namespace)
	if err != nil {
		return zero, apierrors.Internal(err, "cache generation lookup failed")
	}
	k := key.String(gen)

	raw, ok, err := c.store.Get(ctx, k)
	if err != nil {
		return zero, apierrors.Internal(err, "cache read failed")
	}
	if ok {
		var v T
		if err := json.Unmarshal(raw, &v); err == nil {
			c.metrics.hit(key.Namespace)
			return v, nil
		}
		c.logger.Warn("discarding undecodable cache entry", "key", k)
	}
	c.metrics.miss(key.Namespace)

	// Callers collapsed onto k share one load; one caller cancelling must not fail the others.
	loadCtx := context.WithoutCancel(ctx)
	v, err, _ := c.group.Do(k, func() (interface{}, error) {
		val, err := load(loadCtx)
		if err != nil {
			return nil, err
		}
		b, err := json.Marshal(val)
		if err != nil {
			return nil, apierrors.Internal(err, "cache encode failed")
		}
		if err := c.store.Set(loadCtx, k, b, c.ttl); err != nil {
			return nil, apierrors.Internal(err, "cache write failed")
		}
		return val, nil
	})
	if err != nil {
		return zero, err
	}
	return v.(T), nil
}

// Invalidate evicts every entry of the given namespaces.
func (c *Cache) Invalidate(ctx context.Context, namespaces ...Namespace) error {
	if c == nil {
		return nil
	}
	for _, ns := range namespaces {
		if err := c.store.EvictNamespace(ctx, ns); err != nil {
			return apierrors.Internal(err, fmt.Sprintf("cache eviction of %s failed", ns))
		}
		c.metrics.eviction(ns)
	}
	return nil
}
