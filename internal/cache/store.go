package cache

import (
	"context"
	"time"
)

// Namespace groups every cached entry of one entity kind.
type Namespace string

const (
	NamespaceUser    Namespace = "user"
	NamespaceTask    Namespace = "task"
	NamespaceComment Namespace = "comment"
)

// Store is the key-value backend behind Cache.
//
// Every namespace carries a generation counter. EvictNamespace must bump the
// generation before it returns; dropping the entries of older generations is
// best-effort cleanup.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Generation(ctx context.Context, ns Namespace) (uint64, error)
	EvictNamespace(ctx context.Context, ns Namespace) error
}
