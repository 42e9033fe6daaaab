package domain

import "strings"

// FilterKey names one criterion of the search form.
type FilterKey string

const (
	FilterPropertyID   FilterKey = "propertyId"
	FilterKeyword      FilterKey = "keyword"
	FilterProjectID    FilterKey = "projectId"
	FilterZoneID       FilterKey = "zoneId"
	FilterBlockID      FilterKey = "blockId"
	FilterPropertyType FilterKey = "propertyType"
	FilterBedrooms     FilterKey = "bedrooms"
	FilterBathrooms    FilterKey = "bathrooms"
	FilterCurrency     FilterKey = "currency"
	FilterMinPrice     FilterKey = "minPrice"
	FilterMaxPrice     FilterKey = "maxPrice"
)

// FilterCriteria holds the current search criteria. Every field is an
// optional string; empty means "no constraint".
//
// Invariant: ZoneID is only meaningful when ProjectID is set, BlockID only
// when ZoneID is set. Set enforces the cascade; Sanitize repairs criteria
// that arrive whole (request bodies, URLs).
type FilterCriteria struct {
	PropertyID   string
	Keyword      string
	ProjectID    string
	ZoneID       string
	BlockID      string
	PropertyType string
	Bedrooms     string
	Bathrooms    string
	Currency     string
	MinPrice     string
	MaxPrice     string
}

// Set assigns one criterion. Changing the project clears zone and block,
// changing the zone clears the block. Unknown keys are ignored.
func (c *FilterCriteria) Set(key FilterKey, value string) {
	value = strings.TrimSpace(value)
	switch key {
	case FilterPropertyID:
		c.PropertyID = value
	case FilterKeyword:
		c.Keyword = value
	case FilterProjectID:
		c.ProjectID = value
		c.ZoneID = ""
		c.BlockID = ""
	case FilterZoneID:
		c.ZoneID = value
		c.BlockID = ""
	case FilterBlockID:
		c.BlockID = value
	case FilterPropertyType:
		c.PropertyType = value
	case FilterBedrooms:
		c.Bedrooms = value
	case FilterBathrooms:
		c.Bathrooms = value
	case FilterCurrency:
		c.Currency = value
	case FilterMinPrice:
		c.MinPrice = value
	case FilterMaxPrice:
		c.MaxPrice = value
	}
}

// Clear resets every criterion. Category and sort mode live outside the
// criteria and are left untouched by design.
func (c *FilterCriteria) Clear() {
	*c = FilterCriteria{}
}

// Normalize trims whitespace from every field and returns the result.
func (c FilterCriteria) Normalize() FilterCriteria {
	return FilterCriteria{
		PropertyID:   strings.TrimSpace(c.PropertyID),
		Keyword:      strings.TrimSpace(c.Keyword),
		ProjectID:    strings.TrimSpace(c.ProjectID),
		ZoneID:       strings.TrimSpace(c.ZoneID),
		BlockID:      strings.TrimSpace(c.BlockID),
		PropertyType: strings.TrimSpace(c.PropertyType),
		Bedrooms:     strings.TrimSpace(c.Bedrooms),
		Bathrooms:    strings.TrimSpace(c.Bathrooms),
		Currency:     strings.TrimSpace(c.Currency),
		MinPrice:     strings.TrimSpace(c.MinPrice),
		MaxPrice:     strings.TrimSpace(c.MaxPrice),
	}
}

// Sanitize normalizes and repairs the dependent-filter cascade on criteria
// that were assembled outside Set (decoded URLs, request bodies): a zone
// without a project and a block without a zone are dropped.
func (c FilterCriteria) Sanitize() FilterCriteria {
	out := c.Normalize()
	if out.ProjectID == "" {
		out.ZoneID = ""
	}
	if out.ZoneID == "" {
		out.BlockID = ""
	}
	return out
}

// Equal compares two criteria field-wise after normalization. Used by the
// URL listener to avoid re-triggering a search for an equivalent query.
func (c FilterCriteria) Equal(other FilterCriteria) bool {
	return c.Normalize() == other.Normalize()
}

// IsZero reports whether no criterion is set.
func (c FilterCriteria) IsZero() bool {
	return c.Normalize() == FilterCriteria{}
}

// EntityStatus gates which catalog entries may be offered as filter options.
type EntityStatus string

const (
	StatusActive   EntityStatus = "Active"
	StatusInactive EntityStatus = "Inactive"
)

// Project is a top-level development a property belongs to.
type Project struct {
	ID     string
	Name   LocalizedText
	Status EntityStatus
}

// Zone is a sub-area of a project. ProjectID is a back-reference used only
// for cascading option derivation, never ownership.
type Zone struct {
	ID        string
	Name      LocalizedText
	ProjectID string
	Status    EntityStatus
}

// Block is a sub-area of a zone.
type Block struct {
	ID     string
	Name   LocalizedText
	ZoneID string
	Status EntityStatus
}

type PropertyType struct {
	ID     string
	Name   LocalizedText
	Status EntityStatus
}

type Currency struct {
	ID     string
	Code   string
	Name   LocalizedText
	Status EntityStatus
}

// Catalog is the full dropdown dataset, fetched once per session and filtered
// client-side afterwards.
type Catalog struct {
	Projects      []Project
	Zones         []Zone
	Blocks        []Block
	PropertyTypes []PropertyType
	Currencies    []Currency
}

// FilterOptions are the Active-only dropdown choices derived from a catalog
// and the current project/zone selection.
type FilterOptions struct {
	Projects      []Project
	Zones         []Zone
	Blocks        []Block
	PropertyTypes []PropertyType
	Currencies    []Currency
}
