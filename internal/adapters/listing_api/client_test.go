package listing_api

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"listing-console-service/internal/core/domain"
)

func TestSearchListings_SendsOnlyPresentFilters(t *testing.T) {
	var gotPath string
	var gotQuery url.Values
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotQuery = r.URL.Query()
		w.Write([]byte(`{"success":true,"data":[],"totalPages":0}`))
	}))
	defer server.Close()

	client := NewClient(server.URL)
	req := domain.ListingRequest{
		Type:    "Sale",
		Keyword: "villa",
		SortBy:  "default",
		Page:    2,
		Limit:   10,
	}
	if _, err := client.SearchListings(context.Background(), req); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if gotPath != "/create-property/listing" {
		t.Fatalf("unexpected path %q", gotPath)
	}
	if gotQuery.Get("page") != "2" || gotQuery.Get("limit") != "10" {
		t.Fatalf("page and limit must always be sent: %v", gotQuery)
	}
	if gotQuery.Get("type") != "Sale" || gotQuery.Get("keyword") != "villa" {
		t.Fatalf("unexpected filter params: %v", gotQuery)
	}
	if gotQuery.Has("projectId") || gotQuery.Has("minPrice") {
		t.Fatalf("empty filters must be omitted: %v", gotQuery)
	}
}

func TestSearchListings_MapsResponseIntoDomain(t *testing.T) {
	body := `{
		"success": true,
		"totalPages": 3,
		"data": [
			{
				"_id": "p-1",
				"title": {"en": "Tower A", "vi": "Tòa A"},
				"transactionType": "Sale",
				"propertyType": "apartment",
				"bedrooms": 2,
				"bathrooms": 1,
				"unitSize": 75.5,
				"salePrice": 120000,
				"currency": "USD",
				"images": ["https://cdn.example/1.jpg", "https://cdn.example/2.jpg"],
				"nearBy": "Riverside school"
			},
			{
				"_id": "p-2",
				"title": "Legacy Villa",
				"images": []
			}
		]
	}`
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(body))
	}))
	defer server.Close()

	client := NewClient(server.URL)
	result, err := client.SearchListings(context.Background(), domain.ListingRequest{Page: 1, Limit: 10})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if result.TotalPages != 3 || len(result.Properties) != 2 {
		t.Fatalf("unexpected result shape: totalPages=%d properties=%d", result.TotalPages, len(result.Properties))
	}

	first := result.Properties[0]
	if first.ID != "p-1" || first.Title.EN != "Tower A" || first.Title.VI != "Tòa A" {
		t.Fatalf("unexpected first property: %+v", first)
	}
	if first.ImageURL != "https://cdn.example/1.jpg" {
		t.Fatalf("expected first image as card image, got %q", first.ImageURL)
	}
	if first.Nearby.Resolve(domain.LangVI) != "Riverside school" {
		t.Fatalf("plain-string localized field must fill both languages: %+v", first.Nearby)
	}

	second := result.Properties[1]
	if second.Title.Resolve(domain.LangEN) != "Legacy Villa" {
		t.Fatalf("legacy string title must decode, got %+v", second.Title)
	}
	if second.ImageURL != "" {
		t.Fatalf("no images means no card image, got %q", second.ImageURL)
	}
}

func TestSearchListings_ErrorOnFailureEnvelope(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"success":false}`))
	}))
	defer server.Close()

	client := NewClient(server.URL)
	if _, err := client.SearchListings(context.Background(), domain.ListingRequest{Page: 1, Limit: 10}); err == nil {
		t.Fatalf("expected error for success=false envelope")
	}
}

func TestSearchListings_ErrorOnNonSuccessStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "upstream down", http.StatusBadGateway)
	}))
	defer server.Close()

	client := NewClient(server.URL)
	if _, err := client.SearchListings(context.Background(), domain.ListingRequest{Page: 1, Limit: 10}); err == nil {
		t.Fatalf("expected error for 502 response")
	}
}
