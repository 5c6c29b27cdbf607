package adaptor

import (
	"club-booking/internal/usecase"

	"go.uber.org/zap"
)

type Handler struct {
	Availability *AvailabilityHandler
	Booking      *BookingHandler
}

func NewHandler(service *usecase.Service, log *zap.Logger) *Handler {
	return &Handler{
		Availability: NewAvailabilityHandler(service.Availability, log),
		Booking:      NewBookingHandler(service.Booking, log),
	}
}
