package domain

import (
	"encoding/json"
	"time"
)

// Category is the transaction-type tab of the listing page. Exactly one is
// active at a time; All places no transaction-type constraint on the search.
type Category string

const (
	CategoryAll      Category = "All"
	CategoryLease    Category = "Lease"
	CategorySale     Category = "Sale"
	CategoryHomeStay Category = "Home Stay"
)

// ParseCategory maps a raw URL value to a category. Absent or unknown values
// default to All, per the shareable-URL contract.
func ParseCategory(raw string) Category {
	switch Category(raw) {
	case CategoryLease, CategorySale, CategoryHomeStay:
		return Category(raw)
	default:
		return CategoryAll
	}
}

// RequestType is the value sent to the listing endpoint: All maps to the
// empty string, every other category is passed through.
func (c Category) RequestType() string {
	if c == CategoryAll {
		return ""
	}
	return string(c)
}

// SortMode orders listing results server-side.
type SortMode string

const (
	SortDefault   SortMode = "default"
	SortPriceLow  SortMode = "price-low"
	SortPriceHigh SortMode = "price-high"
	SortNewest    SortMode = "newest"
	SortOldest    SortMode = "oldest"
)

func ParseSortMode(raw string) SortMode {
	switch SortMode(raw) {
	case SortPriceLow, SortPriceHigh, SortNewest, SortOldest:
		return SortMode(raw)
	default:
		return SortDefault
	}
}

// PageState tracks pagination progress of the visible result list.
// Invariant: HasMore == CurrentPage < TotalPages.
type PageState struct {
	CurrentPage int
	TotalPages  int
	HasMore     bool
}

// NewPageState derives a consistent page state from a page number and the
// total reported by the listing endpoint.
func NewPageState(currentPage, totalPages int) PageState {
	return PageState{
		CurrentPage: currentPage,
		TotalPages:  totalPages,
		HasMore:     currentPage < totalPages,
	}
}

// PropertySummary is one row of a listing response. It is read-only to this
// service: fetched, held for the session, never mutated. DisplayTitle and
// DisplayNearby are filled from the bilingual fields for the session's
// language when a view is snapshotted.
type PropertySummary struct {
	ID              string
	Title           LocalizedText
	DisplayTitle    string
	TransactionType string
	PropertyType    string
	Bedrooms        int
	Bathrooms       int
	UnitSize        float64
	SalePrice       float64
	LeasePrice      float64
	HomeStayPrice   float64
	Currency        string
	ImageURL        string
	Nearby          LocalizedText
	DisplayNearby   string
	Favorite        bool
	CreatedAt       time.Time
}

// ListingRequest is the effective request sent to the listing endpoint.
// Field order is fixed so the JSON serialization doubles as the canonical
// cache key for the query cache.
type ListingRequest struct {
	Type         string `json:"type"`
	PropertyID   string `json:"propertyId"`
	Keyword      string `json:"keyword"`
	ProjectID    string `json:"projectId"`
	ZoneID       string `json:"zoneId"`
	BlockID      string `json:"blockId"`
	PropertyType string `json:"propertyType"`
	Bedrooms     string `json:"bedrooms"`
	Bathrooms    string `json:"bathrooms"`
	Currency     string `json:"currency"`
	MinPrice     string `json:"minPrice"`
	MaxPrice     string `json:"maxPrice"`
	SortBy       string `json:"sortBy"`
	Page         int    `json:"page"`
	Limit        int    `json:"limit"`
}

// CacheKey returns the deterministic serialization of the request. Two
// requests with the same effective parameters always produce the same key.
func (r ListingRequest) CacheKey() string {
	b, _ := json.Marshal(r)
	return string(b)
}

// ListingResult is a decoded page of the listing endpoint.
type ListingResult struct {
	Properties []PropertySummary
	TotalPages int
}

// CacheEntry is a memoized listing response for one exact request.
type CacheEntry struct {
	Properties []PropertySummary `json:"properties"`
	TotalPages int               `json:"totalPages"`
}

// ListingView is the snapshot handed to the presentation layer: the visible
// list plus everything needed to render tabs, filters and the address bar.
type ListingView struct {
	Properties []PropertySummary
	Page       PageState
	Criteria   FilterCriteria
	Category   Category
	Sort       SortMode
}
