package usecase

import (
	"context"
	"fmt"
	"sync"

	"listing-console-service/internal/constants"
	"listing-console-service/internal/contextkeys"
	"listing-console-service/internal/core/domain"
	"listing-console-service/internal/core/port"
)

// fetchPhase is the pagination state machine of one session.
type fetchPhase int

const (
	phaseIdle fetchPhase = iota
	phaseLoadingInitial
	phaseLoadingMore
	phaseExhausted
)

// ListingSession is the per-client listing controller: it owns the filter
// state, the pagination state machine, the accumulated result list and the
// query cache consults. One instance serves one listing-page client; state is
// never shared between sessions.
//
// Concurrency: overlapping requests are serialized by the mutex, which is
// released around every network call. A new search bumps the generation
// counter so a stale in-flight fetch can never append to a list that has
// since been reset.
type ListingSession struct {
	mu sync.Mutex

	listing   port.ListingProviderPort
	catalog   port.CatalogProviderPort
	favorites port.FavoritesPort
	cache     port.QueryCachePort

	language  domain.Language
	pageLimit int

	criteria domain.FilterCriteria
	category domain.Category
	sort     domain.SortMode

	page       domain.PageState
	phase      fetchPhase
	generation uint64

	// hydrated flips after the first successfully applied search; until then
	// every URL sync triggers a fetch even for an all-empty query.
	hydrated bool

	properties []domain.PropertySummary

	catalogLoaded bool
	catalogData   domain.Catalog

	favoritesLoaded bool
	favoriteIDs     map[string]struct{}
}

func NewListingSession(listing port.ListingProviderPort,
	catalog port.CatalogProviderPort,
	favorites port.FavoritesPort,
	cache port.QueryCachePort,
	language domain.Language,
	pageLimit int) *ListingSession {
	if pageLimit <= 0 {
		pageLimit = constants.DefaultPageLimit
	}
	return &ListingSession{
		listing:     listing,
		catalog:     catalog,
		favorites:   favorites,
		cache:       cache,
		language:    language,
		pageLimit:   pageLimit,
		category:    domain.CategoryAll,
		sort:        domain.SortDefault,
		phase:       phaseIdle,
		favoriteIDs: make(map[string]struct{}),
	}
}

// Search starts a new search: pagination resets to page 1 and the visible
// list is replaced by the response. The criteria are sanitized so a zone
// outside the selected project or a block outside the selected zone can never
// become effective.
//
// Fetch failures are absorbed here: they are logged, the prior results stay
// visible and the returned view is the last known-good state (the error
// return stays nil). There are no automatic retries.
func (s *ListingSession) Search(ctx context.Context, criteria domain.FilterCriteria, category domain.Category, sort domain.SortMode) (domain.ListingView, error) {
	logger := contextkeys.LoggerFromContext(ctx).WithFields(port.Fields{"use_case": "ListingSession.Search"})

	s.loadFavoriteIDs(ctx)

	s.mu.Lock()
	s.criteria = criteria.Sanitize()
	s.category = category
	s.sort = sort
	s.generation++
	gen := s.generation
	s.phase = phaseLoadingInitial
	req := s.buildRequestLocked(1)
	s.mu.Unlock()

	logger.Debug("Starting new search", port.Fields{"category": string(category), "sort": string(sort)})
	return s.runFetch(ctx, logger, gen, req, true), nil
}

// SyncFromURL hydrates state from a decoded address-bar query. Equality is a
// field-wise comparison of the normalized criteria, so back/forward
// navigation to an equivalent URL does not re-trigger the search loop.
func (s *ListingSession) SyncFromURL(ctx context.Context, criteria domain.FilterCriteria, category domain.Category, sort domain.SortMode) (domain.ListingView, error) {
	s.mu.Lock()
	incoming := criteria.Sanitize()
	unchanged := s.hydrated && s.criteria.Equal(incoming) && s.category == category && s.sort == sort
	if unchanged {
		view := s.snapshotLocked()
		s.mu.Unlock()
		return view, nil
	}
	s.mu.Unlock()

	return s.Search(ctx, incoming, category, sort)
}

// LoadMore appends the next page. It is a no-op returning the current view
// when the list is exhausted or a fetch is already in flight; continuations
// never consult the query cache because they extend an already-resolved
// result stream.
func (s *ListingSession) LoadMore(ctx context.Context) (domain.ListingView, error) {
	logger := contextkeys.LoggerFromContext(ctx).WithFields(port.Fields{"use_case": "ListingSession.LoadMore"})

	s.mu.Lock()
	if s.phase != phaseIdle || !s.page.HasMore {
		view := s.snapshotLocked()
		s.mu.Unlock()
		return view, nil
	}
	s.phase = phaseLoadingMore
	gen := s.generation
	req := s.buildRequestLocked(s.page.CurrentPage + 1)
	s.mu.Unlock()

	logger.Debug("Loading next page", port.Fields{"page": req.Page})

	res, err := s.listing.SearchListings(ctx, req)
	if err != nil {
		logger.Error("Listing fetch failed, keeping current results", err, port.Fields{"page": req.Page})
		return s.abandonFetch(gen), nil
	}
	return s.applyResult(gen, req.Page, false, res), nil
}

// ClearFilters resets every criterion and re-searches. Category and sort mode
// are left untouched.
func (s *ListingSession) ClearFilters(ctx context.Context) (domain.ListingView, error) {
	s.mu.Lock()
	s.criteria.Clear()
	category, sort := s.category, s.sort
	s.mu.Unlock()

	return s.Search(ctx, domain.FilterCriteria{}, category, sort)
}

// SetFilter assigns one criterion with the dependent-filter cascade applied.
// It does not fetch; an explicit Search (or category/sort change) does.
func (s *ListingSession) SetFilter(key domain.FilterKey, value string) domain.FilterCriteria {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.criteria.Set(key, value)
	return s.criteria
}

// Criteria returns a copy of the current filter state.
func (s *ListingSession) Criteria() domain.FilterCriteria {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.criteria
}

// View returns the current snapshot without triggering any fetch.
func (s *ListingSession) View() domain.ListingView {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

// runFetch executes one new-search fetch for the given generation: cache
// consult, network on miss, cache store, apply.
func (s *ListingSession) runFetch(ctx context.Context, logger port.LoggerPort, gen uint64, req domain.ListingRequest, isNewSearch bool) domain.ListingView {
	key := req.CacheKey()

	if entry, ok := s.cache.Get(ctx, key); ok {
		logger.Debug("Query cache hit, skipping network call", port.Fields{"page": req.Page})
		res := domain.ListingResult{Properties: entry.Properties, TotalPages: entry.TotalPages}
		return s.applyResult(gen, req.Page, isNewSearch, res)
	}

	res, err := s.listing.SearchListings(ctx, req)
	if err != nil {
		logger.Error("Listing fetch failed, keeping current results", err, port.Fields{"page": req.Page})
		return s.abandonFetch(gen)
	}

	s.cache.Put(ctx, key, domain.CacheEntry{Properties: res.Properties, TotalPages: res.TotalPages})
	return s.applyResult(gen, req.Page, isNewSearch, res)
}

// applyResult folds a fetch response into session state. Responses belonging
// to a superseded generation are discarded silently.
func (s *ListingSession) applyResult(gen uint64, page int, replace bool, res domain.ListingResult) domain.ListingView {
	s.mu.Lock()
	defer s.mu.Unlock()

	if gen != s.generation {
		return s.snapshotLocked()
	}

	if replace {
		s.properties = append([]domain.PropertySummary(nil), res.Properties...)
	} else {
		s.properties = append(s.properties, res.Properties...)
	}
	s.page = domain.NewPageState(page, res.TotalPages)
	if s.page.HasMore {
		s.phase = phaseIdle
	} else {
		s.phase = phaseExhausted
	}
	s.hydrated = true
	return s.snapshotLocked()
}

// abandonFetch settles the state machine after a failed fetch of the given
// generation: Idle when results are already on screen, Exhausted when nothing
// was ever loaded. The visible list is left untouched.
func (s *ListingSession) abandonFetch(gen uint64) domain.ListingView {
	s.mu.Lock()
	defer s.mu.Unlock()

	if gen == s.generation {
		if len(s.properties) == 0 {
			s.phase = phaseExhausted
		} else {
			s.phase = phaseIdle
		}
	}
	return s.snapshotLocked()
}

func (s *ListingSession) buildRequestLocked(page int) domain.ListingRequest {
	c := s.criteria
	return domain.ListingRequest{
		Type:         s.category.RequestType(),
		PropertyID:   c.PropertyID,
		Keyword:      c.Keyword,
		ProjectID:    c.ProjectID,
		ZoneID:       c.ZoneID,
		BlockID:      c.BlockID,
		PropertyType: c.PropertyType,
		Bedrooms:     c.Bedrooms,
		Bathrooms:    c.Bathrooms,
		Currency:     c.Currency,
		MinPrice:     c.MinPrice,
		MaxPrice:     c.MaxPrice,
		SortBy:       string(s.sort),
		Page:         page,
		Limit:        s.pageLimit,
	}
}

// snapshotLocked copies the visible list and resolves display strings and
// favorite flags on the copies; session-held summaries stay unmutated.
func (s *ListingSession) snapshotLocked() domain.ListingView {
	props := make([]domain.PropertySummary, len(s.properties))
	copy(props, s.properties)
	for i := range props {
		props[i].DisplayTitle = props[i].Title.Resolve(s.language)
		if props[i].DisplayTitle == "" {
			props[i].DisplayTitle = "Unnamed"
		}
		props[i].DisplayNearby = props[i].Nearby.Resolve(s.language)
		_, props[i].Favorite = s.favoriteIDs[props[i].ID]
	}
	return domain.ListingView{
		Properties: props,
		Page:       s.page,
		Criteria:   s.criteria,
		Category:   s.category,
		Sort:       s.sort,
	}
}

// Favorite delegates to the external favorites collaborator and mirrors the
// id locally so snapshots can annotate without a round-trip.
func (s *ListingSession) Favorite(ctx context.Context, propertyID string) error {
	if propertyID == "" {
		return fmt.Errorf("property id is required")
	}
	if err := s.favorites.Add(ctx, propertyID); err != nil {
		return fmt.Errorf("could not add favorite: %w", err)
	}
	s.mu.Lock()
	s.favoriteIDs[propertyID] = struct{}{}
	s.mu.Unlock()
	return nil
}

func (s *ListingSession) Unfavorite(ctx context.Context, propertyID string) error {
	if propertyID == "" {
		return fmt.Errorf("property id is required")
	}
	if err := s.favorites.Remove(ctx, propertyID); err != nil {
		return fmt.Errorf("could not remove favorite: %w", err)
	}
	s.mu.Lock()
	delete(s.favoriteIDs, propertyID)
	s.mu.Unlock()
	return nil
}

// IsFavorite reports whether the property is in the session's favorite set.
func (s *ListingSession) IsFavorite(propertyID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.favoriteIDs[propertyID]
	return ok
}

// loadFavoriteIDs pulls the favorite set once; on failure the annotation
// degrades silently and the next call retries.
func (s *ListingSession) loadFavoriteIDs(ctx context.Context) {
	s.mu.Lock()
	loaded := s.favoritesLoaded
	s.mu.Unlock()
	if loaded {
		return
	}

	logger := contextkeys.LoggerFromContext(ctx)
	ids, err := s.favorites.List(ctx)
	if err != nil {
		logger.Warn("Could not load favorites, rendering without annotation", port.Fields{"error": err.Error()})
		return
	}

	s.mu.Lock()
	for _, id := range ids {
		s.favoriteIDs[id] = struct{}{}
	}
	s.favoritesLoaded = true
	s.mu.Unlock()
}
