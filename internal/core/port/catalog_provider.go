package port

import (
	"context"

	"listing-console-service/internal/core/domain"
)

// CatalogProviderPort serves the dropdown datasets. Each list is fetched once
// per session; cascading is done client-side on the fetched data.
type CatalogProviderPort interface {
	GetProjects(ctx context.Context) ([]domain.Project, error)
	GetZones(ctx context.Context) ([]domain.Zone, error)
	GetBlocks(ctx context.Context) ([]domain.Block, error)
	GetPropertyTypes(ctx context.Context) ([]domain.PropertyType, error)
	GetCurrencies(ctx context.Context) ([]domain.Currency, error)
}
