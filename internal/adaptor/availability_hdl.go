package adaptor

import (
	"net/http"

	"club-booking/internal/usecase"
	"club-booking/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

const defaultNightsLimit = 5

type AvailabilityHandler struct {
	service usecase.AvailabilityService
	log     *zap.Logger
}

func NewAvailabilityHandler(service usecase.AvailabilityService, log *zap.Logger) *AvailabilityHandler {
	return &AvailabilityHandler{
		service: service,
		log:     log.With(zap.String("handler", "availability")),
	}
}

// GetOpenNights handles GET /api/clubs/{id}/nights
func (h *AvailabilityHandler) GetOpenNights(w http.ResponseWriter, r *http.Request) {
	clubID := utils.ParseInt64(chi.URLParam(r, "id"))
	if clubID <= 0 {
		utils.ResponseBadRequest(w, "Invalid club ID", nil)
		return
	}

	limit := utils.ParseInt(r.URL.Query().Get("limit"), defaultNightsLimit)

	nights, err := h.service.ListOpenNights(r.Context(), clubID, limit)
	if err != nil {
		handleServiceError(w, h.log, err, "list open nights")
		return
	}

	utils.ResponseSuccess(w, "success", nights)
}

// GetFreeTables handles GET /api/clubs/{id}/tables
func (h *AvailabilityHandler) GetFreeTables(w http.ResponseWriter, r *http.Request) {
	clubID := utils.ParseInt64(chi.URLParam(r, "id"))
	if clubID <= 0 {
		utils.ResponseBadRequest(w, "Invalid club ID", nil)
		return
	}

	eventStart, err := utils.ParseTimeRFC3339(r.URL.Query().Get("event_start"))
	if err != nil {
		utils.ResponseBadRequest(w, "Invalid event_start, expected RFC3339 timestamp", nil)
		return
	}

	tables, err := h.service.ListFreeTables(r.Context(), clubID, eventStart)
	if err != nil {
		handleServiceError(w, h.log, err, "list free tables")
		return
	}

	utils.ResponseSuccess(w, "success", tables)
}

// CountFreeTables handles GET /api/clubs/{id}/tables/count
func (h *AvailabilityHandler) CountFreeTables(w http.ResponseWriter, r *http.Request) {
	clubID := utils.ParseInt64(chi.URLParam(r, "id"))
	if clubID <= 0 {
		utils.ResponseBadRequest(w, "Invalid club ID", nil)
		return
	}

	eventStart, err := utils.ParseTimeRFC3339(r.URL.Query().Get("event_start"))
	if err != nil {
		utils.ResponseBadRequest(w, "Invalid event_start, expected RFC3339 timestamp", nil)
		return
	}

	count, err := h.service.CountFreeTables(r.Context(), clubID, eventStart)
	if err != nil {
		handleServiceError(w, h.log, err, "count free tables")
		return
	}

	utils.ResponseSuccess(w, "success", map[string]int{"free_tables": count})
}
