package rest

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"listing-console-service/internal/adapters/urlquery"
	"listing-console-service/internal/contextkeys"
	"listing-console-service/internal/core/domain"
	"listing-console-service/internal/core/port"
	"listing-console-service/internal/core/port/usecases_port"
)

const sessionHeader = "X-Session-ID"

type ListingHandlers struct {
	sessions *SessionManager
}

func NewListingHandlers(sessions *SessionManager) *ListingHandlers {
	return &ListingHandlers{sessions: sessions}
}

// session resolves the caller's controller and echoes the session id so the
// client can keep it.
func (h *ListingHandlers) session(w http.ResponseWriter, r *http.Request) usecases_port.ListingSessionUseCase {
	session, sessionID := h.sessions.Acquire(r.Header.Get(sessionHeader))
	w.Header().Set(sessionHeader, sessionID)
	return session
}

func decodeURLQuery(r *http.Request) (domain.FilterCriteria, domain.Category, domain.SortMode) {
	return urlquery.Decode(r.URL.Query())
}

// HandleListingPage is GET /api/v1/listing: the inbound half of URL
// synchronization. The query string is decoded and only an actually changed
// effective query triggers a new search, so back/forward navigation to an
// equivalent URL cannot loop.
func (h *ListingHandlers) HandleListingPage(w http.ResponseWriter, r *http.Request) {
	logger := contextkeys.LoggerFromContext(r.Context()).WithFields(port.Fields{"handler": "HandleListingPage"})
	session := h.session(w, r)

	criteria, category, sort := decodeURLQuery(r)
	view, err := session.SyncFromURL(r.Context(), criteria, category, sort)
	if err != nil {
		logger.Error("Use case execution failed", err, nil)
		WriteJSONError(w, http.StatusInternalServerError, "Failed to load listing")
		return
	}

	RespondWithJSON(w, http.StatusOK, toViewDTO(view))
}

// HandleSearch is POST /api/v1/listing/search: the explicit Search action.
// The response carries the canonical query string to push to the address bar
// (the outbound half of URL synchronization).
func (h *ListingHandlers) HandleSearch(w http.ResponseWriter, r *http.Request) {
	logger := contextkeys.LoggerFromContext(r.Context()).WithFields(port.Fields{"handler": "HandleSearch"})
	session := h.session(w, r)

	var reqDTO SearchRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&reqDTO); err != nil {
		if err == io.EOF {
			logger.Error("Failed to decode request body", err, nil)
			WriteJSONError(w, http.StatusBadRequest, "Request body is empty")
			return
		}
		WriteJSONError(w, http.StatusBadRequest, fmt.Sprintf("Invalid request body: %v", err))
		return
	}

	category := domain.ParseCategory(reqDTO.Type)
	sort := domain.ParseSortMode(reqDTO.SortBy)

	view, err := session.Search(r.Context(), reqDTO.criteria(), category, sort)
	if err != nil {
		logger.Error("Use case execution failed", err, nil)
		WriteJSONError(w, http.StatusInternalServerError, "Failed to search listings")
		return
	}

	RespondWithJSON(w, http.StatusOK, toViewDTO(view))
}

// HandleLoadMore is POST /api/v1/listing/more: the sentinel intersection
// event, delivered over HTTP. When the list is exhausted or a fetch is in
// flight the current view comes back unchanged.
func (h *ListingHandlers) HandleLoadMore(w http.ResponseWriter, r *http.Request) {
	logger := contextkeys.LoggerFromContext(r.Context()).WithFields(port.Fields{"handler": "HandleLoadMore"})
	session := h.session(w, r)

	view, err := session.LoadMore(r.Context())
	if err != nil {
		logger.Error("Use case execution failed", err, nil)
		WriteJSONError(w, http.StatusInternalServerError, "Failed to load more listings")
		return
	}

	RespondWithJSON(w, http.StatusOK, toViewDTO(view))
}

// HandleClearFilters is POST /api/v1/listing/clear: resets every criterion,
// keeping category and sort mode, and re-searches.
func (h *ListingHandlers) HandleClearFilters(w http.ResponseWriter, r *http.Request) {
	logger := contextkeys.LoggerFromContext(r.Context()).WithFields(port.Fields{"handler": "HandleClearFilters"})
	session := h.session(w, r)

	view, err := session.ClearFilters(r.Context())
	if err != nil {
		logger.Error("Use case execution failed", err, nil)
		WriteJSONError(w, http.StatusInternalServerError, "Failed to clear filters")
		return
	}

	RespondWithJSON(w, http.StatusOK, toViewDTO(view))
}

// HandleFeatured is GET /api/v1/listing/featured?limit=N.
func (h *ListingHandlers) HandleFeatured(w http.ResponseWriter, r *http.Request) {
	logger := contextkeys.LoggerFromContext(r.Context()).WithFields(port.Fields{"handler": "HandleFeatured"})
	session := h.session(w, r)

	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			WriteJSONError(w, http.StatusBadRequest, "Parameter 'limit' must be a positive number")
			return
		}
		limit = parsed
	}

	properties, err := session.Featured(r.Context(), limit)
	if err != nil {
		logger.Error("Use case execution failed", err, nil)
		WriteJSONError(w, http.StatusInternalServerError, "Failed to load featured listings")
		return
	}

	dtos := make([]PropertySummaryDTO, len(properties))
	for i, p := range properties {
		dtos[i] = toPropertyDTO(p)
	}
	RespondWithJSON(w, http.StatusOK, map[string]interface{}{"properties": dtos})
}

// HandleFilterOptions is GET /api/v1/filter-options: Active-only dropdown
// choices with zones and blocks derived from the session's current selection.
func (h *ListingHandlers) HandleFilterOptions(w http.ResponseWriter, r *http.Request) {
	logger := contextkeys.LoggerFromContext(r.Context()).WithFields(port.Fields{"handler": "HandleFilterOptions"})
	session := h.session(w, r)

	opts, err := session.FilterOptions(r.Context())
	if err != nil {
		logger.Error("Use case execution failed", err, nil)
		WriteJSONError(w, http.StatusInternalServerError, "Failed to load filter options")
		return
	}

	RespondWithJSON(w, http.StatusOK, toOptionsDTO(opts))
}

func (h *ListingHandlers) HandleAddFavorite(w http.ResponseWriter, r *http.Request) {
	logger := contextkeys.LoggerFromContext(r.Context()).WithFields(port.Fields{"handler": "HandleAddFavorite"})
	session := h.session(w, r)

	propertyID := chi.URLParam(r, "propertyID")
	if propertyID == "" {
		WriteJSONError(w, http.StatusBadRequest, "Property id is required")
		return
	}

	if err := session.Favorite(r.Context(), propertyID); err != nil {
		logger.Error("Use case execution failed", err, port.Fields{"property_id": propertyID})
		WriteJSONError(w, http.StatusBadGateway, "Failed to add favorite")
		return
	}
	RespondWithJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *ListingHandlers) HandleRemoveFavorite(w http.ResponseWriter, r *http.Request) {
	logger := contextkeys.LoggerFromContext(r.Context()).WithFields(port.Fields{"handler": "HandleRemoveFavorite"})
	session := h.session(w, r)

	propertyID := chi.URLParam(r, "propertyID")
	if propertyID == "" {
		WriteJSONError(w, http.StatusBadRequest, "Property id is required")
		return
	}

	if err := session.Unfavorite(r.Context(), propertyID); err != nil {
		logger.Error("Use case execution failed", err, port.Fields{"property_id": propertyID})
		WriteJSONError(w, http.StatusBadGateway, "Failed to remove favorite")
		return
	}
	RespondWithJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
