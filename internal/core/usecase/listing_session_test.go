package usecase

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"listing-console-service/internal/adapters/memcache"
	"listing-console-service/internal/core/domain"
)

type fakeListing struct {
	mu      sync.Mutex
	calls   []domain.ListingRequest
	handler func(req domain.ListingRequest) (domain.ListingResult, error)
}

func (f *fakeListing) SearchListings(_ context.Context, req domain.ListingRequest) (domain.ListingResult, error) {
	f.mu.Lock()
	f.calls = append(f.calls, req)
	f.mu.Unlock()
	return f.handler(req)
}

func (f *fakeListing) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.calls)
}

func (f *fakeListing) call(i int) domain.ListingRequest {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls[i]
}

type fakeCatalog struct {
	mu            sync.Mutex
	calls         int
	projects      []domain.Project
	zones         []domain.Zone
	blocks        []domain.Block
	propertyTypes []domain.PropertyType
	currencies    []domain.Currency
	err           error
}

func (f *fakeCatalog) bump() {
	f.mu.Lock()
	f.calls++
	f.mu.Unlock()
}

func (f *fakeCatalog) GetProjects(context.Context) ([]domain.Project, error) {
	f.bump()
	return f.projects, f.err
}
func (f *fakeCatalog) GetZones(context.Context) ([]domain.Zone, error) {
	f.bump()
	return f.zones, f.err
}
func (f *fakeCatalog) GetBlocks(context.Context) ([]domain.Block, error) {
	f.bump()
	return f.blocks, f.err
}
func (f *fakeCatalog) GetPropertyTypes(context.Context) ([]domain.PropertyType, error) {
	f.bump()
	return f.propertyTypes, f.err
}
func (f *fakeCatalog) GetCurrencies(context.Context) ([]domain.Currency, error) {
	f.bump()
	return f.currencies, f.err
}

type fakeFavorites struct {
	mu  sync.Mutex
	ids []string
	err error
}

func (f *fakeFavorites) Add(_ context.Context, id string) error {
	if f.err != nil {
		return f.err
	}
	f.mu.Lock()
	f.ids = append(f.ids, id)
	f.mu.Unlock()
	return nil
}

func (f *fakeFavorites) Remove(_ context.Context, id string) error {
	if f.err != nil {
		return f.err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	out := f.ids[:0]
	for _, have := range f.ids {
		if have != id {
			out = append(out, have)
		}
	}
	f.ids = out
	return nil
}

func (f *fakeFavorites) List(context.Context) ([]string, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.ids...), nil
}

// makeProps builds n summaries with ids prefix-1..prefix-n.
func makeProps(prefix string, n int) []domain.PropertySummary {
	out := make([]domain.PropertySummary, n)
	for i := range out {
		out[i] = domain.PropertySummary{
			ID:    fmt.Sprintf("%s-%d", prefix, i+1),
			Title: domain.LocalizedText{EN: fmt.Sprintf("Property %s-%d", prefix, i+1)},
		}
	}
	return out
}

// pagedHandler serves totalPages pages of perPage items with unique ids.
func pagedHandler(totalPages, perPage int) func(req domain.ListingRequest) (domain.ListingResult, error) {
	return func(req domain.ListingRequest) (domain.ListingResult, error) {
		if req.Page > totalPages {
			return domain.ListingResult{TotalPages: totalPages}, nil
		}
		return domain.ListingResult{
			Properties: makeProps(fmt.Sprintf("page%d", req.Page), perPage),
			TotalPages: totalPages,
		}, nil
	}
}

func newTestSession(listing *fakeListing) *ListingSession {
	return NewListingSession(listing, &fakeCatalog{}, &fakeFavorites{}, memcache.NewQueryCache(), domain.LangEN, 10)
}

func TestSearch_BuildsDefaultRequest(t *testing.T) {
	listing := &fakeListing{handler: pagedHandler(3, 10)}
	session := newTestSession(listing)

	view, err := session.Search(context.Background(), domain.FilterCriteria{}, domain.CategoryAll, domain.SortDefault)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := domain.ListingRequest{SortBy: "default", Page: 1, Limit: 10}
	if got := listing.call(0); got != want {
		t.Fatalf("unexpected request: got %+v, want %+v", got, want)
	}
	if len(view.Properties) != 10 {
		t.Fatalf("expected 10 properties, got %d", len(view.Properties))
	}
	if !view.Page.HasMore || view.Page.TotalPages != 3 {
		t.Fatalf("expected hasMore with 3 total pages, got %+v", view.Page)
	}
}

func TestSearch_SanitizesCascadeBeforeFetching(t *testing.T) {
	listing := &fakeListing{handler: pagedHandler(1, 1)}
	session := newTestSession(listing)

	criteria := domain.FilterCriteria{ZoneID: "z1", BlockID: "b1", Keyword: "villa"}
	if _, err := session.Search(context.Background(), criteria, domain.CategorySale, domain.SortDefault); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	req := listing.call(0)
	if req.ZoneID != "" || req.BlockID != "" {
		t.Fatalf("orphaned zone/block must not reach the request: %+v", req)
	}
	if req.Type != "Sale" || req.Keyword != "villa" {
		t.Fatalf("unexpected request: %+v", req)
	}
}

func TestSearch_CacheRoundTrip(t *testing.T) {
	listing := &fakeListing{handler: pagedHandler(3, 10)}
	session := newTestSession(listing)

	criteria := domain.FilterCriteria{Keyword: "villa"}
	first, err := session.Search(context.Background(), criteria, domain.CategorySale, domain.SortDefault)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// An intermediate search moves state away so the second identical search
	// is a genuine new search, not a no-op.
	if _, err := session.Search(context.Background(), domain.FilterCriteria{}, domain.CategoryAll, domain.SortDefault); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	second, err := session.Search(context.Background(), criteria, domain.CategorySale, domain.SortDefault)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if listing.callCount() != 2 {
		t.Fatalf("expected cache hit to skip the network, got %d calls", listing.callCount())
	}
	if len(second.Properties) != len(first.Properties) {
		t.Fatalf("cached result differs: %d vs %d properties", len(second.Properties), len(first.Properties))
	}
	for i := range second.Properties {
		if second.Properties[i].ID != first.Properties[i].ID {
			t.Fatalf("cached result differs at index %d", i)
		}
	}
	if second.Page.TotalPages != first.Page.TotalPages || !second.Page.HasMore {
		t.Fatalf("cache hit must update page state like a response: %+v", second.Page)
	}
}

func TestLoadMore_AppendsPagesInOrder(t *testing.T) {
	listing := &fakeListing{handler: pagedHandler(3, 10)}
	session := newTestSession(listing)
	ctx := context.Background()

	if _, err := session.Search(ctx, domain.FilterCriteria{}, domain.CategoryAll, domain.SortDefault); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	view, err := session.LoadMore(ctx)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if view.Page.CurrentPage != 2 || !view.Page.HasMore {
		t.Fatalf("expected page 2 with more available, got %+v", view.Page)
	}

	view, err = session.LoadMore(ctx)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if view.Page.CurrentPage != 3 || view.Page.HasMore {
		t.Fatalf("expected exhausted page 3, got %+v", view.Page)
	}

	if len(view.Properties) != 30 {
		t.Fatalf("expected accumulated list of 30, got %d", len(view.Properties))
	}
	seen := make(map[string]bool, len(view.Properties))
	for i, p := range view.Properties {
		if seen[p.ID] {
			t.Fatalf("duplicate property %q in accumulated list", p.ID)
		}
		seen[p.ID] = true
		wantPage := i/10 + 1
		wantID := fmt.Sprintf("page%d-%d", wantPage, i%10+1)
		if p.ID != wantID {
			t.Fatalf("out-of-order item at %d: got %q, want %q", i, p.ID, wantID)
		}
	}
}

func TestLoadMore_NoFetchWhenExhausted(t *testing.T) {
	listing := &fakeListing{handler: pagedHandler(1, 10)}
	session := newTestSession(listing)
	ctx := context.Background()

	if _, err := session.Search(ctx, domain.FilterCriteria{}, domain.CategoryAll, domain.SortDefault); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	calls := listing.callCount()

	view, err := session.LoadMore(ctx)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if listing.callCount() != calls {
		t.Fatalf("exhausted list must not fetch, got %d extra calls", listing.callCount()-calls)
	}
	if len(view.Properties) != 10 {
		t.Fatalf("view changed unexpectedly: %d properties", len(view.Properties))
	}
}

func TestLoadMore_ContinuationSkipsCache(t *testing.T) {
	listing := &fakeListing{handler: pagedHandler(2, 5)}
	cache := memcache.NewQueryCache()
	session := NewListingSession(listing, &fakeCatalog{}, &fakeFavorites{}, cache, domain.LangEN, 10)
	ctx := context.Background()

	if _, err := session.Search(ctx, domain.FilterCriteria{}, domain.CategoryAll, domain.SortDefault); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// Pre-warm the cache with a poisoned entry for the page-2 request; a
	// continuation must ignore it and hit the network.
	pageTwo := domain.ListingRequest{SortBy: "default", Page: 2, Limit: 10}
	cache.Put(ctx, pageTwo.CacheKey(), domain.CacheEntry{Properties: makeProps("poison", 5), TotalPages: 2})

	view, err := session.LoadMore(ctx)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if listing.callCount() != 2 {
		t.Fatalf("continuation must reach the network, got %d calls", listing.callCount())
	}
	for _, p := range view.Properties {
		if p.ID[:4] == "pois" {
			t.Fatalf("continuation served from cache: %q", p.ID)
		}
	}
}

func TestSearch_FailureKeepsPreviousResults(t *testing.T) {
	fail := false
	listing := &fakeListing{handler: func(req domain.ListingRequest) (domain.ListingResult, error) {
		if fail {
			return domain.ListingResult{}, fmt.Errorf("boom")
		}
		return pagedHandler(2, 10)(req)
	}}
	session := newTestSession(listing)
	ctx := context.Background()

	if _, err := session.Search(ctx, domain.FilterCriteria{}, domain.CategoryAll, domain.SortDefault); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	fail = true
	view, err := session.Search(ctx, domain.FilterCriteria{Keyword: "villa"}, domain.CategoryAll, domain.SortDefault)
	if err != nil {
		t.Fatalf("fetch failures must be absorbed: %v", err)
	}
	if len(view.Properties) != 10 {
		t.Fatalf("previous results must stay visible, got %d", len(view.Properties))
	}

	// A later search is a fresh attempt; there is no terminal error state.
	fail = false
	view, err = session.Search(ctx, domain.FilterCriteria{}, domain.CategoryAll, domain.SortDefault)
	if err != nil || len(view.Properties) != 10 {
		t.Fatalf("recovery search failed: err=%v properties=%d", err, len(view.Properties))
	}
}

func TestLoadMore_FailureKeepsResultsAndAllowsRetry(t *testing.T) {
	fail := false
	listing := &fakeListing{handler: func(req domain.ListingRequest) (domain.ListingResult, error) {
		if fail {
			return domain.ListingResult{}, fmt.Errorf("boom")
		}
		return pagedHandler(3, 10)(req)
	}}
	session := newTestSession(listing)
	ctx := context.Background()

	if _, err := session.Search(ctx, domain.FilterCriteria{}, domain.CategoryAll, domain.SortDefault); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	fail = true
	view, err := session.LoadMore(ctx)
	if err != nil {
		t.Fatalf("fetch failures must be absorbed: %v", err)
	}
	if len(view.Properties) != 10 || view.Page.CurrentPage != 1 {
		t.Fatalf("failed continuation must leave state untouched: %+v", view.Page)
	}

	// Next sentinel event retries the same page.
	fail = false
	view, err = session.LoadMore(ctx)
	if err != nil || view.Page.CurrentPage != 2 {
		t.Fatalf("retry failed: err=%v page=%+v", err, view.Page)
	}
}

func TestStaleLoadMoreResponseIsDiscarded(t *testing.T) {
	release := make(chan struct{})
	started := make(chan struct{})
	listing := &fakeListing{}
	listing.handler = func(req domain.ListingRequest) (domain.ListingResult, error) {
		if req.Page == 2 && req.Keyword == "" {
			close(started)
			<-release
			return domain.ListingResult{Properties: makeProps("stale", 10), TotalPages: 3}, nil
		}
		if req.Keyword == "villa" {
			return domain.ListingResult{Properties: makeProps("fresh", 4), TotalPages: 1}, nil
		}
		return pagedHandler(3, 10)(req)
	}
	session := newTestSession(listing)
	ctx := context.Background()

	if _, err := session.Search(ctx, domain.FilterCriteria{}, domain.CategoryAll, domain.SortDefault); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	done := make(chan struct{})
	go func() {
		defer close(done)
		session.LoadMore(ctx)
	}()
	<-started

	// A new search supersedes the in-flight continuation.
	view, err := session.Search(ctx, domain.FilterCriteria{Keyword: "villa"}, domain.CategoryAll, domain.SortDefault)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(view.Properties) != 4 {
		t.Fatalf("expected fresh result list, got %d items", len(view.Properties))
	}

	close(release)
	<-done

	view = session.View()
	if len(view.Properties) != 4 {
		t.Fatalf("stale continuation leaked into the list: %d items", len(view.Properties))
	}
	for _, p := range view.Properties {
		if p.ID[:5] != "fresh" {
			t.Fatalf("unexpected item %q after stale response", p.ID)
		}
	}
}

func TestSyncFromURL_SkipsRefetchForEquivalentQuery(t *testing.T) {
	listing := &fakeListing{handler: pagedHandler(1, 3)}
	session := newTestSession(listing)
	ctx := context.Background()

	criteria := domain.FilterCriteria{Keyword: "villa"}
	if _, err := session.SyncFromURL(ctx, criteria, domain.CategorySale, domain.SortDefault); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if listing.callCount() != 1 {
		t.Fatalf("first hydration must fetch, got %d calls", listing.callCount())
	}

	// Back/forward navigation to an equivalent URL: no refetch loop.
	equivalent := domain.FilterCriteria{Keyword: " villa "}
	if _, err := session.SyncFromURL(ctx, equivalent, domain.CategorySale, domain.SortDefault); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if listing.callCount() != 1 {
		t.Fatalf("equivalent URL must not refetch, got %d calls", listing.callCount())
	}

	if _, err := session.SyncFromURL(ctx, domain.FilterCriteria{Keyword: "house"}, domain.CategorySale, domain.SortDefault); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if listing.callCount() != 2 {
		t.Fatalf("changed URL must trigger a new search, got %d calls", listing.callCount())
	}
}

func TestSyncFromURL_FirstContactFetchesEmptyQuery(t *testing.T) {
	listing := &fakeListing{handler: pagedHandler(1, 3)}
	session := newTestSession(listing)

	if _, err := session.SyncFromURL(context.Background(), domain.FilterCriteria{}, domain.CategoryAll, domain.SortDefault); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if listing.callCount() != 1 {
		t.Fatalf("first contact must fetch even for an all-empty query, got %d calls", listing.callCount())
	}
}

func TestClearFilters_KeepsCategoryAndSort(t *testing.T) {
	listing := &fakeListing{handler: pagedHandler(1, 3)}
	session := newTestSession(listing)
	ctx := context.Background()

	criteria := domain.FilterCriteria{Keyword: "villa", Bedrooms: "2"}
	if _, err := session.Search(ctx, criteria, domain.CategoryLease, domain.SortPriceLow); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	view, err := session.ClearFilters(ctx)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !view.Criteria.IsZero() {
		t.Fatalf("expected empty criteria, got %+v", view.Criteria)
	}
	if view.Category != domain.CategoryLease || view.Sort != domain.SortPriceLow {
		t.Fatalf("category and sort must survive a clear: %+v", view)
	}

	req := listing.call(listing.callCount() - 1)
	if req.Type != "Lease" || req.SortBy != "price-low" || req.Keyword != "" {
		t.Fatalf("unexpected request after clear: %+v", req)
	}
}

func TestView_AnnotatesFavoritesAndResolvesTitles(t *testing.T) {
	listing := &fakeListing{handler: func(req domain.ListingRequest) (domain.ListingResult, error) {
		return domain.ListingResult{
			Properties: []domain.PropertySummary{
				{ID: "p-1", Title: domain.LocalizedText{VI: "Căn hộ 1"}},
				{ID: "p-2"},
			},
			TotalPages: 1,
		}, nil
	}}
	favorites := &fakeFavorites{ids: []string{"p-1"}}
	session := NewListingSession(listing, &fakeCatalog{}, favorites, memcache.NewQueryCache(), domain.LangEN, 10)

	view, err := session.Search(context.Background(), domain.FilterCriteria{}, domain.CategoryAll, domain.SortDefault)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !view.Properties[0].Favorite || view.Properties[1].Favorite {
		t.Fatalf("favorite annotation wrong: %+v", view.Properties)
	}
	if view.Properties[0].DisplayTitle != "Căn hộ 1" {
		t.Fatalf("expected cross-language fallback title, got %q", view.Properties[0].DisplayTitle)
	}
	if view.Properties[1].DisplayTitle != "Unnamed" {
		t.Fatalf("expected placeholder title, got %q", view.Properties[1].DisplayTitle)
	}

	if !session.IsFavorite("p-1") || session.IsFavorite("p-2") {
		t.Fatalf("favorite membership wrong")
	}

	if err := session.Unfavorite(context.Background(), "p-1"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if session.IsFavorite("p-1") {
		t.Fatalf("expected favorite membership cleared")
	}
	if view := session.View(); view.Properties[0].Favorite {
		t.Fatalf("expected favorite flag cleared")
	}
}

// waitFor polls until the condition holds or the deadline passes.
func waitFor(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatalf("condition not met before deadline")
}
