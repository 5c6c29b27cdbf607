package wire

import (
	"club-booking/internal/adaptor"

	"github.com/go-chi/chi/v5"
)

func wireAvailability(r chi.Router, handler *adaptor.AvailabilityHandler) {
	r.Route("/api/clubs/{id}", func(r chi.Router) {
		// GET /api/clubs/{id}/nights - upcoming nights open for booking
		r.Get("/nights", handler.GetOpenNights)

		// GET /api/clubs/{id}/tables?event_start=... - free tables for a night
		r.Get("/tables", handler.GetFreeTables)

		// GET /api/clubs/{id}/tables/count?event_start=... - free table count
		r.Get("/tables/count", handler.CountFreeTables)
	})
}
