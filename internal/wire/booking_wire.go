package wire

import (
	"club-booking/internal/adaptor"

	"github.com/go-chi/chi/v5"
)

func wireBooking(r chi.Router, handler *adaptor.BookingHandler) {
	r.Route("/api/bookings", func(r chi.Router) {
		// POST /api/bookings/hold - place a short-lived hold on a table
		r.Post("/hold", handler.Hold)

		// POST /api/bookings/confirm - confirm a booking, with or without a hold
		r.Post("/confirm", handler.Confirm)

		// PUT /api/bookings/{id}/cancel - cancel a booked reservation
		r.Put("/{id}/cancel", handler.Cancel)

		// POST /api/bookings/seat - seat a guest by QR secret at the door
		r.Post("/seat", handler.Seat)
	})
}
