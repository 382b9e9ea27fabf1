package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/jedyapps/dealdesk/internal/domain"
	"github.com/jedyapps/dealdesk/internal/hubspot"
	"github.com/jedyapps/dealdesk/internal/service"
	"github.com/jedyapps/dealdesk/internal/view"
	"go.uber.org/zap"
)

// DealHandler exposes the deal dashboard operations
type DealHandler struct {
	service *service.DealService
	logger  *zap.Logger
}

// NewDealHandler creates a new deal handler
func NewDealHandler(service *service.DealService, logger *zap.Logger) *DealHandler {
	return &DealHandler{
		service: service,
		logger:  logger,
	}
}

// List returns every deal tagged for the next meeting
func (h *DealHandler) List(w http.ResponseWriter, r *http.Request) {
	resp, err := h.service.ListDeals(r.Context())
	if err != nil {
		h.respondServiceError(w, err, "Failed to fetch deals from HubSpot")
		return
	}
	respondJSON(w, http.StatusOK, resp)
}

// Board returns the deal list grouped by pipeline stage. An optional index
// query parameter positions the navigation cursor; it defaults to the first
// deal and is clamped to the list bounds.
func (h *DealHandler) Board(w http.ResponseWriter, r *http.Request) {
	resp, err := h.service.ListDeals(r.Context())
	if err != nil {
		h.respondServiceError(w, err, "Failed to fetch deals from HubSpot")
		return
	}

	board := view.BuildBoard(resp.Deals)
	if raw := r.URL.Query().Get("index"); raw != "" {
		if index, err := strconv.Atoi(raw); err == nil {
			board.Cursor = view.NewCursor(index, board.Total)
		}
	}
	respondJSON(w, http.StatusOK, board)
}

// RemoveTag strips the next-meeting tag from one deal
func (h *DealHandler) RemoveTag(w http.ResponseWriter, r *http.Request) {
	dealID := chi.URLParam(r, "dealID")
	if dealID == "" {
		respondWithError(w, http.StatusBadRequest, "deal ID is required")
		return
	}

	resp, err := h.service.RemoveTag(r.Context(), dealID)
	if err != nil {
		h.respondServiceError(w, err, "Failed to remove tag")
		return
	}
	respondJSON(w, http.StatusOK, resp)
}

// UpdateSummary overwrites the transfer summary text of one deal
func (h *DealHandler) UpdateSummary(w http.ResponseWriter, r *http.Request) {
	dealID := chi.URLParam(r, "dealID")
	if dealID == "" {
		respondWithError(w, http.StatusBadRequest, "deal ID is required")
		return
	}

	var req domain.UpdateSummaryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := validate.Struct(&req); err != nil {
		respondValidationError(w, err)
		return
	}

	resp, err := h.service.UpdateTransferSummary(r.Context(), dealID, req.TransferSummary)
	if err != nil {
		h.respondServiceError(w, err, "Failed to update summary")
		return
	}
	respondJSON(w, http.StatusOK, resp)
}

// respondServiceError maps service failures onto HTTP responses. Upstream CRM
// failures relay the CRM's own status code and message.
func (h *DealHandler) respondServiceError(w http.ResponseWriter, err error, title string) {
	if errors.Is(err, service.ErrNotFound) {
		respondWithError(w, http.StatusNotFound, err.Error())
		return
	}
	if errors.Is(err, service.ErrInvalidInput) {
		respondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	status := http.StatusInternalServerError
	detail := title
	var apiErr *hubspot.APIError
	if errors.As(err, &apiErr) && apiErr.StatusCode >= http.StatusBadRequest {
		status = apiErr.StatusCode
		detail = apiErr.Message
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(domain.APIError{
		Type:   domain.ErrorTypeUpstream,
		Title:  title,
		Status: status,
		Detail: detail,
	})
}
