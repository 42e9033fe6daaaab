package usecase

import (
	"context"

	"listing-console-service/internal/constants"
	"listing-console-service/internal/contextkeys"
	"listing-console-service/internal/core/domain"
	"listing-console-service/internal/core/port"
)

// Featured returns the newest listings for the landing strip. It is a
// one-shot fetch with empty filters; it shares the query-cache contract of a
// new search but leaves the session's visible list and page state alone.
func (s *ListingSession) Featured(ctx context.Context, limit int) ([]domain.PropertySummary, error) {
	logger := contextkeys.LoggerFromContext(ctx).WithFields(port.Fields{"use_case": "ListingSession.Featured"})
	if limit <= 0 {
		limit = constants.DefaultFeaturedLimit
	}

	s.loadFavoriteIDs(ctx)

	req := domain.ListingRequest{
		SortBy: string(domain.SortNewest),
		Page:   1,
		Limit:  limit,
	}
	key := req.CacheKey()

	if entry, ok := s.cache.Get(ctx, key); ok {
		logger.Debug("Query cache hit for featured listings", nil)
		return s.decorate(entry.Properties), nil
	}

	res, err := s.listing.SearchListings(ctx, req)
	if err != nil {
		// Same policy as the listing page: log and render an empty strip.
		logger.Error("Featured fetch failed", err, nil)
		return nil, nil
	}

	s.cache.Put(ctx, key, domain.CacheEntry{Properties: res.Properties, TotalPages: res.TotalPages})
	return s.decorate(res.Properties), nil
}

// decorate resolves display strings and favorite flags on copies.
func (s *ListingSession) decorate(properties []domain.PropertySummary) []domain.PropertySummary {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]domain.PropertySummary, len(properties))
	copy(out, properties)
	for i := range out {
		out[i].DisplayTitle = out[i].Title.Resolve(s.language)
		if out[i].DisplayTitle == "" {
			out[i].DisplayTitle = "Unnamed"
		}
		out[i].DisplayNearby = out[i].Nearby.Resolve(s.language)
		_, out[i].Favorite = s.favoriteIDs[out[i].ID]
	}
	return out
}
