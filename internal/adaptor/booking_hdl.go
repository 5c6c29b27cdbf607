package adaptor

import (
	"encoding/json"
	"net/http"

	"club-booking/internal/dto/request"
	"club-booking/internal/usecase"
	"club-booking/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

const idempotencyKeyHeader = "Idempotency-Key"

type BookingHandler struct {
	service usecase.BookingService
	log     *zap.Logger
}

func NewBookingHandler(service usecase.BookingService, log *zap.Logger) *BookingHandler {
	return &BookingHandler{
		service: service,
		log:     log.With(zap.String("handler", "booking")),
	}
}

// Hold handles POST /api/bookings/hold
func (h *BookingHandler) Hold(w http.ResponseWriter, r *http.Request) {
	var req request.HoldRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	if validationErrors := utils.ValidateStruct(req); len(validationErrors) > 0 {
		utils.ResponseBadRequest(w, "Validation failed", validationErrors)
		return
	}

	hold, err := h.service.Hold(r.Context(), &req, r.Header.Get(idempotencyKeyHeader))
	if err != nil {
		handleServiceError(w, h.log, err, "hold table")
		return
	}

	utils.ResponseCreated(w, "success", hold)
}

// Confirm handles POST /api/bookings/confirm
func (h *BookingHandler) Confirm(w http.ResponseWriter, r *http.Request) {
	var req request.ConfirmRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	if validationErrors := utils.ValidateStruct(req); len(validationErrors) > 0 {
		utils.ResponseBadRequest(w, "Validation failed", validationErrors)
		return
	}

	booking, err := h.service.Confirm(r.Context(), &req, r.Header.Get(idempotencyKeyHeader))
	if err != nil {
		handleServiceError(w, h.log, err, "confirm booking")
		return
	}

	utils.ResponseCreated(w, "success", booking)
}

// Cancel handles PUT /api/bookings/{id}/cancel
func (h *BookingHandler) Cancel(w http.ResponseWriter, r *http.Request) {
	bookingID := chi.URLParam(r, "id")
	if bookingID == "" {
		utils.ResponseBadRequest(w, "Booking ID is required", nil)
		return
	}

	var req request.CancelRequest
	if r.Body != nil && r.ContentLength > 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			utils.ResponseBadRequest(w, "Invalid request body", nil)
			return
		}
	}

	booking, err := h.service.Cancel(r.Context(), bookingID, req.ActorID, req.Reason, r.Header.Get(idempotencyKeyHeader))
	if err != nil {
		handleServiceError(w, h.log, err, "cancel booking")
		return
	}

	utils.ResponseSuccess(w, "success", booking)
}

// Seat handles POST /api/bookings/seat
func (h *BookingHandler) Seat(w http.ResponseWriter, r *http.Request) {
	var req request.SeatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	if validationErrors := utils.ValidateStruct(req); len(validationErrors) > 0 {
		utils.ResponseBadRequest(w, "Validation failed", validationErrors)
		return
	}

	booking, err := h.service.SeatByQR(r.Context(), req.QRSecret, req.ActorID, r.Header.Get(idempotencyKeyHeader))
	if err != nil {
		handleServiceError(w, h.log, err, "seat booking")
		return
	}

	utils.ResponseSuccess(w, "success", booking)
}
