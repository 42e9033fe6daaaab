package rest

import (
	"time"

	"listing-console-service/internal/adapters/urlquery"
	"listing-console-service/internal/core/domain"
)

// SearchRequestDTO is the body of POST /listing/search: the explicit Search
// action of the listing page.
type SearchRequestDTO struct {
	Type         string `json:"type"`
	SortBy       string `json:"sortBy"`
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
}

func (dto SearchRequestDTO) criteria() domain.FilterCriteria {
	return domain.FilterCriteria{
		PropertyID:   dto.PropertyID,
		Keyword:      dto.Keyword,
		ProjectID:    dto.ProjectID,
		ZoneID:       dto.ZoneID,
		BlockID:      dto.BlockID,
		PropertyType: dto.PropertyType,
		Bedrooms:     dto.Bedrooms,
		Bathrooms:    dto.Bathrooms,
		Currency:     dto.Currency,
		MinPrice:     dto.MinPrice,
		MaxPrice:     dto.MaxPrice,
	}
}

type PropertySummaryDTO struct {
	ID              string               `json:"id"`
	Title           domain.LocalizedText `json:"title"`
	DisplayTitle    string               `json:"displayTitle"`
	TransactionType string               `json:"transactionType"`
	PropertyType    string               `json:"propertyType"`
	Bedrooms        int                  `json:"bedrooms"`
	Bathrooms       int                  `json:"bathrooms"`
	UnitSize        float64              `json:"unitSize"`
	SalePrice       float64              `json:"salePrice,omitempty"`
	LeasePrice      float64              `json:"leasePrice,omitempty"`
	HomeStayPrice   float64              `json:"homeStayPrice,omitempty"`
	Currency        string               `json:"currency"`
	ImageURL        string               `json:"imageUrl"`
	Nearby          string               `json:"nearby"`
	Favorite        bool                 `json:"favorite"`
	CreatedAt       time.Time            `json:"createdAt"`
}

type PageStateDTO struct {
	CurrentPage int  `json:"currentPage"`
	TotalPages  int  `json:"totalPages"`
	HasMore     bool `json:"hasMore"`
}

// ListingViewDTO is the rendered state of the listing page. Query is the
// canonical address-bar query string for the current search.
type ListingViewDTO struct {
	Properties []PropertySummaryDTO `json:"properties"`
	Page       PageStateDTO         `json:"page"`
	Type       string               `json:"type"`
	SortBy     string               `json:"sortBy"`
	Query      string               `json:"query"`
}

type OptionDTO struct {
	ID   string               `json:"id"`
	Name domain.LocalizedText `json:"name"`
	Code string               `json:"code,omitempty"`
}

type FilterOptionsDTO struct {
	Projects      []OptionDTO `json:"projects"`
	Zones         []OptionDTO `json:"zones"`
	Blocks        []OptionDTO `json:"blocks"`
	PropertyTypes []OptionDTO `json:"propertyTypes"`
	Currencies    []OptionDTO `json:"currencies"`
}

func toPropertyDTO(p domain.PropertySummary) PropertySummaryDTO {
	return PropertySummaryDTO{
		ID:              p.ID,
		Title:           p.Title,
		DisplayTitle:    p.DisplayTitle,
		TransactionType: p.TransactionType,
		PropertyType:    p.PropertyType,
		Bedrooms:        p.Bedrooms,
		Bathrooms:       p.Bathrooms,
		UnitSize:        p.UnitSize,
		SalePrice:       p.SalePrice,
		LeasePrice:      p.LeasePrice,
		HomeStayPrice:   p.HomeStayPrice,
		Currency:        p.Currency,
		ImageURL:        p.ImageURL,
		Nearby:          p.DisplayNearby,
		Favorite:        p.Favorite,
		CreatedAt:       p.CreatedAt,
	}
}

func toViewDTO(view domain.ListingView) ListingViewDTO {
	dto := ListingViewDTO{
		Properties: make([]PropertySummaryDTO, len(view.Properties)),
		Page: PageStateDTO{
			CurrentPage: view.Page.CurrentPage,
			TotalPages:  view.Page.TotalPages,
			HasMore:     view.Page.HasMore,
		},
		Type:   string(view.Category),
		SortBy: string(view.Sort),
		Query:  urlquery.Encode(view.Criteria, view.Category, view.Sort),
	}
	for i, p := range view.Properties {
		dto.Properties[i] = toPropertyDTO(p)
	}
	return dto
}

func toOptionsDTO(opts domain.FilterOptions) FilterOptionsDTO {
	dto := FilterOptionsDTO{
		Projects:      make([]OptionDTO, 0, len(opts.Projects)),
		Zones:         make([]OptionDTO, 0, len(opts.Zones)),
		Blocks:        make([]OptionDTO, 0, len(opts.Blocks)),
		PropertyTypes: make([]OptionDTO, 0, len(opts.PropertyTypes)),
		Currencies:    make([]OptionDTO, 0, len(opts.Currencies)),
	}
	for _, p := range opts.Projects {
		dto.Projects = append(dto.Projects, OptionDTO{ID: p.ID, Name: p.Name})
	}
	for _, z := range opts.Zones {
		dto.Zones = append(dto.Zones, OptionDTO{ID: z.ID, Name: z.Name})
	}
	for _, b := range opts.Blocks {
		dto.Blocks = append(dto.Blocks, OptionDTO{ID: b.ID, Name: b.Name})
	}
	for _, t := range opts.PropertyTypes {
		dto.PropertyTypes = append(dto.PropertyTypes, OptionDTO{ID: t.ID, Name: t.Name})
	}
	for _, c := range opts.Currencies {
		dto.Currencies = append(dto.Currencies, OptionDTO{ID: c.ID, Name: c.Name, Code: c.Code})
	}
	return dto
}
