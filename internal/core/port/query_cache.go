package port

import (
	"context"

	"listing-console-service/internal/core/domain"
)

// QueryCachePort memoizes listing responses by their canonical request key.
// Consulted only for new-search fetches; pagination continuations always go
// to the network. Implementations log their own failures and degrade to a
// miss, they never surface errors to the orchestrator.
type QueryCachePort interface {
	Get(ctx context.Context, key string) (domain.CacheEntry, bool)
	Put(ctx context.Context, key string, entry domain.CacheEntry)
}
