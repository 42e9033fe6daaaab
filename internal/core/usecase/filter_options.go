package usecase

import (
	"context"

	"listing-console-service/internal/contextkeys"
	"listing-console-service/internal/core/domain"
	"listing-console-service/internal/core/port"
)

// ResolveProjectRef maps a stored project reference to a project id. The
// reference is normally an id; legacy shareable URLs carry the localized
// display name instead, so name matching remains as a compatibility shim.
// Name collisions resolve to the first Active match in catalog order.
// Returns "" when the reference matches nothing.
func ResolveProjectRef(projects []domain.Project, ref string, lang domain.Language) string {
	if ref == "" {
		return ""
	}
	for _, p := range projects {
		if p.ID == ref {
			return p.ID
		}
	}
	for _, p := range projects {
		if p.Status == domain.StatusActive && p.Name.Resolve(lang) == ref {
			return p.ID
		}
	}
	return ""
}

// ResolveZoneRef is ResolveProjectRef one level down.
func ResolveZoneRef(zones []domain.Zone, ref string, lang domain.Language) string {
	if ref == "" {
		return ""
	}
	for _, z := range zones {
		if z.ID == ref {
			return z.ID
		}
	}
	for _, z := range zones {
		if z.Status == domain.StatusActive && z.Name.Resolve(lang) == ref {
			return z.ID
		}
	}
	return ""
}

// DeriveZoneOptions returns the Active zones whose project back-reference
// resolves to the selected project. Pure: identical inputs yield identical
// output. Empty selection yields an empty list.
func DeriveZoneOptions(zones []domain.Zone, projects []domain.Project, projectRef string, lang domain.Language) []domain.Zone {
	projectID := ResolveProjectRef(projects, projectRef, lang)
	if projectID == "" {
		return nil
	}
	var out []domain.Zone
	for _, z := range zones {
		if z.Status == domain.StatusActive && z.ProjectID == projectID {
			out = append(out, z)
		}
	}
	return out
}

// DeriveBlockOptions is DeriveZoneOptions one level down.
func DeriveBlockOptions(blocks []domain.Block, zones []domain.Zone, zoneRef string, lang domain.Language) []domain.Block {
	zoneID := ResolveZoneRef(zones, zoneRef, lang)
	if zoneID == "" {
		return nil
	}
	var out []domain.Block
	for _, b := range blocks {
		if b.Status == domain.StatusActive && b.ZoneID == zoneID {
			out = append(out, b)
		}
	}
	return out
}

// FilterOptions returns the dropdown choices for the current selection. Only
// Active catalog entries are offered; zone and block lists cascade from the
// selected project and zone.
func (s *ListingSession) FilterOptions(ctx context.Context) (domain.FilterOptions, error) {
	cat := s.loadCatalog(ctx)

	s.mu.Lock()
	projectRef := s.criteria.ProjectID
	zoneRef := s.criteria.ZoneID
	lang := s.language
	s.mu.Unlock()

	opts := domain.FilterOptions{
		Zones:  DeriveZoneOptions(cat.Zones, cat.Projects, projectRef, lang),
		Blocks: DeriveBlockOptions(cat.Blocks, cat.Zones, zoneRef, lang),
	}
	for _, p := range cat.Projects {
		if p.Status == domain.StatusActive {
			opts.Projects = append(opts.Projects, p)
		}
	}
	for _, t := range cat.PropertyTypes {
		if t.Status == domain.StatusActive {
			opts.PropertyTypes = append(opts.PropertyTypes, t)
		}
	}
	for _, c := range cat.Currencies {
		if c.Status == domain.StatusActive {
			opts.Currencies = append(opts.Currencies, c)
		}
	}
	return opts, nil
}

// loadCatalog fetches the five dropdown datasets once per session. A failed
// list is logged and stays empty, degrading that filter without failing the
// page; there is no refetch on later filter changes, only client-side
// derivation.
func (s *ListingSession) loadCatalog(ctx context.Context) domain.Catalog {
	s.mu.Lock()
	if s.catalogLoaded {
		cat := s.catalogData
		s.mu.Unlock()
		return cat
	}
	s.mu.Unlock()

	logger := contextkeys.LoggerFromContext(ctx).WithFields(port.Fields{"use_case": "ListingSession.loadCatalog"})

	var cat domain.Catalog
	var err error
	if cat.Projects, err = s.catalog.GetProjects(ctx); err != nil {
		logger.Error("Failed to load projects", err, nil)
	}
	if cat.Zones, err = s.catalog.GetZones(ctx); err != nil {
		logger.Error("Failed to load zones", err, nil)
	}
	if cat.Blocks, err = s.catalog.GetBlocks(ctx); err != nil {
		logger.Error("Failed to load blocks", err, nil)
	}
	if cat.PropertyTypes, err = s.catalog.GetPropertyTypes(ctx); err != nil {
		logger.Error("Failed to load property types", err, nil)
	}
	if cat.Currencies, err = s.catalog.GetCurrencies(ctx); err != nil {
		logger.Error("Failed to load currencies", err, nil)
	}

	s.mu.Lock()
	s.catalogData = cat
	s.catalogLoaded = true
	s.mu.Unlock()
	return cat
}
