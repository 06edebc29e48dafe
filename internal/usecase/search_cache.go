package usecase

import (
	"context"
	"time"
)

// SearchCache stores serialized search results. Implementations treat an
// unreachable backend as a miss.
type SearchCache interface {
	GetJSON(ctx context.Context, key string, out any) (bool, error)
	SetJSON(ctx context.Context, key string, value any, ttl time.Duration) error
	DeleteByPattern(ctx context.Context, pattern string) error
}

// Locker is a best-effort distributed mutex keyed by name. Release only
// removes the lock while it still holds token.
type Locker interface {
	SetIfNotExists(ctx context.Context, key string, token string, ttl time.Duration) (bool, error)
	Release(ctx context.Context, key string, token string) error
}
