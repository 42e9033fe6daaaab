// Package urlquery translates between the controller's search state and the
// shareable query-string representation of the listing page. The query string
// is the canonical bookmarkable form of a search: encoding is deterministic
// (fixed parameter order, empty filters omitted) so two equivalent states
// always produce the same URL.
package urlquery

import (
	"net/url"
	"strings"

	"listing-console-service/internal/core/domain"
)

// Parameter order of the canonical query string.
var paramOrder = []string{
	"type",
	"propertyId",
	"keyword",
	"projectId",
	"zoneId",
	"blockId",
	"propertyType",
	"bedrooms",
	"bathrooms",
	"currency",
	"minPrice",
	"maxPrice",
	"sortBy",
}

// Encode serializes category plus the non-empty filters into the canonical
// query string. The type parameter is always present; sortBy is omitted for
// the default mode so plain URLs stay short.
func Encode(criteria domain.FilterCriteria, category domain.Category, sort domain.SortMode) string {
	criteria = criteria.Sanitize()

	values := map[string]string{
		"type":         string(category),
		"propertyId":   criteria.PropertyID,
		"keyword":      criteria.Keyword,
		"projectId":    criteria.ProjectID,
		"zoneId":       criteria.ZoneID,
		"blockId":      criteria.BlockID,
		"propertyType": criteria.PropertyType,
		"bedrooms":     criteria.Bedrooms,
		"bathrooms":    criteria.Bathrooms,
		"currency":     criteria.Currency,
		"minPrice":     criteria.MinPrice,
		"maxPrice":     criteria.MaxPrice,
	}
	if sort != domain.SortDefault {
		values["sortBy"] = string(sort)
	}

	var b strings.Builder
	for _, key := range paramOrder {
		value := values[key]
		if value == "" {
			continue
		}
		if b.Len() > 0 {
			b.WriteByte('&')
		}
		b.WriteString(key)
		b.WriteByte('=')
		b.WriteString(url.QueryEscape(value))
	}
	return b.String()
}

// Decode hydrates search state from a query string. Absent or invalid type
// defaults to All, absent or invalid sortBy to default; the criteria come
// back sanitized so the dependent-filter invariant holds even for hand-edited
// URLs.
func Decode(values url.Values) (domain.FilterCriteria, domain.Category, domain.SortMode) {
	criteria := domain.FilterCriteria{
		PropertyID:   values.Get("propertyId"),
		Keyword:      values.Get("keyword"),
		ProjectID:    values.Get("projectId"),
		ZoneID:       values.Get("zoneId"),
		BlockID:      values.Get("blockId"),
		PropertyType: values.Get("propertyType"),
		Bedrooms:     values.Get("bedrooms"),
		Bathrooms:    values.Get("bathrooms"),
		Currency:     values.Get("currency"),
		MinPrice:     values.Get("minPrice"),
		MaxPrice:     values.Get("maxPrice"),
	}.Sanitize()

	category := domain.ParseCategory(values.Get("type"))
	sort := domain.ParseSortMode(values.Get("sortBy"))
	return criteria, category, sort
}
