package port

import "context"

// FavoritesPort is the external favorites collaborator, keyed by property id.
// Listing data itself is never mutated; favoriting is fully delegated.
type FavoritesPort interface {
	Add(ctx context.Context, propertyID string) error
	Remove(ctx context.Context, propertyID string) error
	List(ctx context.Context) ([]string, error)
}
