package port

import (
	"context"

	"listing-console-service/internal/core/domain"
)

// ListingProviderPort is the external listing endpoint. The backend decides
// matching and ordering; this service only composes requests and merges the
// returned pages.
type ListingProviderPort interface {
	SearchListings(ctx context.Context, req domain.ListingRequest) (domain.ListingResult, error)
}
