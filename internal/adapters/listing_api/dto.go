package listing_api

import (
	"time"

	"listing-console-service/internal/core/domain"
)

// listingResponseDTO mirrors the envelope of GET /create-property/listing.
type listingResponseDTO struct {
	Success    bool                 `json:"success"`
	Data       []propertySummaryDTO `json:"data"`
	TotalPages int                  `json:"totalPages"`
}

type propertySummaryDTO struct {
	ID              string               `json:"_id"`
	Title           domain.LocalizedText `json:"title"`
	TransactionType string               `json:"transactionType"`
	PropertyType    string               `json:"propertyType"`
	Bedrooms        int                  `json:"bedrooms"`
	Bathrooms       int                  `json:"bathrooms"`
	UnitSize        float64              `json:"unitSize"`
	SalePrice       float64              `json:"salePrice"`
	LeasePrice      float64              `json:"leasePrice"`
	HomeStayPrice   float64              `json:"homeStayPrice"`
	Currency        string               `json:"currency"`
	Images          []string             `json:"images"`
	NearBy          domain.LocalizedText `json:"nearBy"`
	CreatedAt       time.Time            `json:"createdAt"`
}

func (dto propertySummaryDTO) toDomain() domain.PropertySummary {
	imageURL := ""
	if len(dto.Images) > 0 {
		imageURL = dto.Images[0]
	}
	return domain.PropertySummary{
		ID:              dto.ID,
		Title:           dto.Title,
		TransactionType: dto.TransactionType,
		PropertyType:    dto.PropertyType,
		Bedrooms:        dto.Bedrooms,
		Bathrooms:       dto.Bathrooms,
		UnitSize:        dto.UnitSize,
		SalePrice:       dto.SalePrice,
		LeasePrice:      dto.LeasePrice,
		HomeStayPrice:   dto.HomeStayPrice,
		Currency:        dto.Currency,
		ImageURL:        imageURL,
		Nearby:          dto.NearBy,
		CreatedAt:       dto.CreatedAt,
	}
}
