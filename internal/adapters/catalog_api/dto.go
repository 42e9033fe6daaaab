package catalog_api

import (
	"listing-console-service/internal/core/domain"
)

// Every dropdown endpoint wraps its list in the same envelope.
type entityListDTO struct {
	Data []entityDTO `json:"data"`
}

type entityDTO struct {
	ID        string               `json:"_id"`
	Name      domain.LocalizedText `json:"name"`
	Code      string               `json:"code"`
	ProjectID string               `json:"projectId"`
	ZoneID    string               `json:"zoneId"`
	Status    string               `json:"status"`
}

func (dto entityDTO) status() domain.EntityStatus {
	if dto.Status == string(domain.StatusActive) {
		return domain.StatusActive
	}
	return domain.StatusInactive
}
