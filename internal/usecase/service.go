package usecase

import (
	"club-booking/internal/data/repository"
	"club-booking/pkg/utils"

	"go.uber.org/zap"
)

type Service struct {
	Availability AvailabilityService
	Booking      BookingService
}

func NewService(repo *repository.Repository, config *utils.Config, log *zap.Logger) *Service {
	clock := SystemClock()
	cutoff := CutoffPolicy{
		CutoffBefore:       config.Booking.CutoffBefore,
		ArrivalBeforeClose: config.Booking.ArrivalBeforeClose,
	}

	resolver := NewOperatingRulesResolver(repo.Club, repo.Event, clock, log)
	availability := NewAvailabilityService(
		repo,
		resolver,
		cutoff,
		clock,
		config.Booking.NightsCacheTTL,
		config.Booking.TablesCacheTTL,
		log,
	)
	booking := NewBookingService(
		repo,
		availability,
		NewSecretGenerator(),
		clock,
		config.Booking.HoldTTL,
		cutoff,
		log,
	)

	return &Service{
		Availability: availability,
		Booking:      booking,
	}
}
