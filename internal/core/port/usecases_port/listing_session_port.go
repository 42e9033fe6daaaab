package usecases_port

import (
	"context"

	"listing-console-service/internal/core/domain"
)

// ListingSessionUseCase is the per-client listing controller consumed by the
// transport layer.
type ListingSessionUseCase interface {
	// Search replaces the visible list with page 1 of the given query.
	Search(ctx context.Context, criteria domain.FilterCriteria, category domain.Category, sort domain.SortMode) (domain.ListingView, error)

	// SyncFromURL hydrates state from a decoded address-bar query and
	// searches only when the effective query actually changed.
	SyncFromURL(ctx context.Context, criteria domain.FilterCriteria, category domain.Category, sort domain.SortMode) (domain.ListingView, error)

	// LoadMore appends the next page when one exists and nothing is in
	// flight; otherwise it returns the current view unchanged.
	LoadMore(ctx context.Context) (domain.ListingView, error)

	// ClearFilters resets every criterion, keeping category and sort.
	ClearFilters(ctx context.Context) (domain.ListingView, error)

	// Featured returns the newest listings for the landing strip.
	Featured(ctx context.Context, limit int) ([]domain.PropertySummary, error)

	// FilterOptions returns the Active-only dropdown choices with zones and
	// blocks derived from the current selection.
	FilterOptions(ctx context.Context) (domain.FilterOptions, error)

	Favorite(ctx context.Context, propertyID string) error
	Unfavorite(ctx context.Context, propertyID string) error
}
