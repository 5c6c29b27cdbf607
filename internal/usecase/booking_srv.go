package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"club-booking/internal/data/entity"
	"club-booking/internal/data/repository"
	"club-booking/internal/dto/request"
	"club-booking/internal/dto/response"
	"club-booking/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	EventBookingCreated   = "booking.created"
	EventBookingCancelled = "booking.cancelled"
	EventBookingSeated    = "booking.seated"
)

// BookingService drives the reservation lifecycle:
// hold -> confirm (BOOKED) -> seat/cancel/no-show.
//
// The uniqueness constraints at the storage layer are the only arbiter for
// concurrent writes; this service never pre-checks before inserting.
type BookingService interface {
	Hold(ctx context.Context, req *request.HoldRequest, idemKey string) (*response.Hold, error)
	Confirm(ctx context.Context, req *request.ConfirmRequest, idemKey string) (*response.Booking, error)
	Cancel(ctx context.Context, bookingID string, actorID int64, reason, idemKey string) (*response.Booking, error)
	SeatByQR(ctx context.Context, qrSecret string, actorID int64, idemKey string) (*response.Booking, error)

	// MarkNoShowOverdue flips BOOKED bookings whose arrival deadline has
	// passed to NO_SHOW and returns how many were affected.
	MarkNoShowOverdue(ctx context.Context, now time.Time) (int64, error)
}

type bookingService struct {
	repo         *repository.Repository
	availability AvailabilityService
	secrets      SecretGenerator
	clock        Clock
	holdTTL      time.Duration
	cutoff       CutoffPolicy
	log          *zap.Logger
}

func NewBookingService(
	repo *repository.Repository,
	availability AvailabilityService,
	secrets SecretGenerator,
	clock Clock,
	holdTTL time.Duration,
	cutoff CutoffPolicy,
	log *zap.Logger,
) BookingService {
	return &bookingService{
		repo:         repo,
		availability: availability,
		secrets:      secrets,
		clock:        clock,
		holdTTL:      holdTTL,
		cutoff:       cutoff,
		log:          log.With(zap.String("service", "booking")),
	}
}

func (s *bookingService) Hold(ctx context.Context, req *request.HoldRequest, idemKey string) (*response.Hold, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return nil, ErrValidation("validation failed: " + utils.FormatValidationErrors(errs))
	}
	if idemKey == "" {
		return nil, ErrValidation("idempotency key required")
	}

	event, table, err := s.loadEventAndTable(ctx, req.ClubID, req.EventStartUTC, req.TableID, req.GuestsCount)
	if err != nil {
		return nil, err
	}

	expiresAt := s.clock.Now().Add(s.holdTTL)
	hold, err := s.repo.Hold.Insert(ctx, entity.NewHold(table.ID, event.ID, req.GuestsCount, expiresAt, idemKey))
	if err != nil && !errors.Is(err, repository.ErrIdempotentReplay) {
		if errors.Is(err, repository.ErrConflict) {
			return nil, ErrConflict("table already held or booked for this event")
		}
		return nil, wrapUnexpected("hold failed", err)
	}

	s.availability.InvalidateTables(req.ClubID, req.EventStartUTC)

	s.log.Info("Hold placed",
		zap.String("hold_id", hold.ID.String()),
		zap.Int64("table_id", table.ID),
		zap.Int64("event_id", event.ID),
		zap.Time("expires_at", hold.ExpiresAt),
	)

	return &response.Hold{
		HoldID:       hold.ID.String(),
		TableID:      hold.TableID,
		EventID:      hold.EventID,
		ExpiresAt:    hold.ExpiresAt,
		TotalDeposit: table.MinDeposit * float64(hold.GuestsCount),
	}, nil
}

func (s *bookingService) Confirm(ctx context.Context, req *request.ConfirmRequest, idemKey string) (*response.Booking, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return nil, ErrValidation("validation failed: " + utils.FormatValidationErrors(errs))
	}
	if idemKey == "" {
		return nil, ErrValidation("idempotency key required")
	}

	event, table, err := s.loadEventAndTable(ctx, req.ClubID, req.EventStartUTC, req.TableID, req.GuestsCount)
	if err != nil {
		return nil, err
	}

	// Best effort; a confirm without a prior hold is legal.
	if req.HoldID != "" {
		if holdID, parseErr := uuid.Parse(req.HoldID); parseErr == nil {
			if delErr := s.repo.Hold.Delete(ctx, holdID); delErr != nil {
				s.log.Warn("Failed to release hold before confirm",
					zap.Error(delErr),
					zap.String("hold_id", req.HoldID),
				)
			}
		}
	}

	secret, err := s.secrets.GenerateSecret()
	if err != nil {
		return nil, ErrInternal("confirm failed", err)
	}

	now := s.clock.Now()
	slot := entity.NightSlot{ClubID: req.ClubID, EventStartUTC: event.StartUTC, EventEndUTC: event.EndUTC}
	booking := &entity.Booking{
		Base: entity.Base{
			ID:        uuid.New(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		TableID:        table.ID,
		EventID:        event.ID,
		TableNumber:    table.Number,
		GuestsCount:    req.GuestsCount,
		TotalDeposit:   table.MinDeposit * float64(req.GuestsCount),
		Status:         entity.BookingStatusBooked,
		ArrivalBy:      s.cutoff.ArrivalBy(slot),
		QRSecret:       secret,
		IdempotencyKey: idemKey,
	}

	inserted, err := s.repo.Booking.Insert(ctx, booking)
	if err != nil {
		if errors.Is(err, repository.ErrIdempotentReplay) {
			// Same idempotency key, same intent: return the booking the
			// first call created, without a second outbox record.
			return s.toBookingResponse(inserted, req.ClubID), nil
		}
		if errors.Is(err, repository.ErrConflict) {
			return nil, ErrConflict("table already booked for this event")
		}
		return nil, wrapUnexpected("confirm failed", err)
	}

	s.enqueueOutbox(ctx, EventBookingCreated, req.ClubID, inserted)
	s.availability.InvalidateTables(req.ClubID, req.EventStartUTC)

	s.log.Info("Booking confirmed",
		zap.String("booking_id", inserted.ID.String()),
		zap.Int64("table_id", table.ID),
		zap.Int64("event_id", event.ID),
		zap.Int("guests", req.GuestsCount),
		zap.Float64("total_deposit", inserted.TotalDeposit),
	)

	return s.toBookingResponse(inserted, req.ClubID), nil
}

func (s *bookingService) Cancel(ctx context.Context, bookingID string, actorID int64, reason, idemKey string) (*response.Booking, error) {
	id, err := uuid.Parse(bookingID)
	if err != nil {
		return nil, ErrValidation(fmt.Sprintf("invalid booking ID %q", bookingID))
	}

	booking, err := s.repo.Booking.FindByID(ctx, id)
	if err != nil {
		return nil, wrapUnexpected("cancel failed", err)
	}
	if booking == nil {
		return nil, ErrNotFound("booking not found")
	}
	if booking.Status != entity.BookingStatusBooked {
		return nil, ErrValidation(fmt.Sprintf("cannot cancel in status %s", booking.Status))
	}

	if err := s.repo.Booking.UpdateStatus(ctx, booking.ID, entity.BookingStatusCancelled); err != nil {
		return nil, wrapUnexpected("cancel failed", err)
	}
	booking.Status = entity.BookingStatusCancelled

	clubID := s.enqueueForEvent(ctx, EventBookingCancelled, booking)
	s.invalidateForEvent(ctx, booking)

	s.log.Info("Booking cancelled",
		zap.String("booking_id", bookingID),
		zap.Int64("actor_id", actorID),
		zap.String("reason", reason),
	)

	return s.toBookingResponse(booking, clubID), nil
}

func (s *bookingService) SeatByQR(ctx context.Context, qrSecret string, actorID int64, idemKey string) (*response.Booking, error) {
	if qrSecret == "" {
		return nil, ErrValidation("qr secret required")
	}

	booking, err := s.repo.Booking.FindByQRSecret(ctx, qrSecret)
	if err != nil {
		return nil, wrapUnexpected("seat failed", err)
	}
	if booking == nil {
		return nil, ErrNotFound("booking not found")
	}
	if booking.Status != entity.BookingStatusBooked {
		return nil, ErrValidation(fmt.Sprintf("cannot seat in status %s", booking.Status))
	}

	if err := s.repo.Booking.UpdateStatus(ctx, booking.ID, entity.BookingStatusSeated); err != nil {
		return nil, wrapUnexpected("seat failed", err)
	}
	booking.Status = entity.BookingStatusSeated

	clubID := s.enqueueForEvent(ctx, EventBookingSeated, booking)

	s.log.Info("Booking seated",
		zap.String("booking_id", booking.ID.String()),
		zap.Int64("actor_id", actorID),
	)

	return s.toBookingResponse(booking, clubID), nil
}

func (s *bookingService) MarkNoShowOverdue(ctx context.Context, now time.Time) (int64, error) {
	count, err := s.repo.Booking.MarkNoShowOverdue(ctx, now)
	if err != nil {
		return 0, wrapUnexpected("no-show sweep failed", err)
	}
	if count > 0 {
		s.log.Info("Overdue bookings marked as no-show", zap.Int64("count", count))
	}
	return count, nil
}

// loadEventAndTable runs the lookup and validation shared by hold and
// confirm: both the event night and the table must exist, the table must be
// active and the party must fit.
func (s *bookingService) loadEventAndTable(ctx context.Context, clubID int64, eventStartUTC time.Time, tableID int64, guests int) (*entity.Event, *entity.Table, error) {
	event, err := s.repo.Event.FindByStart(ctx, clubID, eventStartUTC)
	if err != nil {
		return nil, nil, wrapUnexpected("load event", err)
	}
	if event == nil {
		return nil, nil, ErrNotFound("event not found")
	}

	table, err := s.repo.Table.FindByID(ctx, tableID)
	if err != nil {
		return nil, nil, wrapUnexpected("load table", err)
	}
	if table == nil {
		return nil, nil, ErrNotFound("table not found")
	}
	if table.ClubID != clubID {
		return nil, nil, ErrValidation("table does not belong to club")
	}
	if !table.Active {
		return nil, nil, ErrValidation("table inactive")
	}
	if guests > table.Capacity {
		return nil, nil, ErrValidation("capacity exceeded")
	}

	return event, table, nil
}

// enqueueOutbox records the domain event next to the state change. Delivery
// is asynchronous and best-effort; a failed enqueue is logged, not bubbled.
func (s *bookingService) enqueueOutbox(ctx context.Context, eventType string, clubID int64, booking *entity.Booking) {
	msg, err := entity.NewOutboxMessage(eventType, clubID, booking.ID.String(), map[string]any{
		"booking_id":   booking.ID.String(),
		"table_id":     booking.TableID,
		"event_id":     booking.EventID,
		"table_number": booking.TableNumber,
		"guests_count": booking.GuestsCount,
		"status":       string(booking.Status),
	})
	if err != nil {
		s.log.Error("Failed to build outbox message", zap.Error(err), zap.String("event_type", eventType))
		return
	}
	if err := s.repo.Outbox.Enqueue(ctx, msg); err != nil {
		s.log.Error("Failed to enqueue outbox message", zap.Error(err), zap.String("event_type", eventType))
	}
}

// enqueueForEvent resolves the owning club through the booking's event and
// enqueues the outbox record. Returns the club ID for the response, zero if
// the event could not be resolved.
func (s *bookingService) enqueueForEvent(ctx context.Context, eventType string, booking *entity.Booking) int64 {
	var clubID int64
	if event, err := s.repo.Event.FindByID(ctx, booking.EventID); err == nil && event != nil {
		clubID = event.ClubID
	}
	s.enqueueOutbox(ctx, eventType, clubID, booking)
	return clubID
}

func (s *bookingService) invalidateForEvent(ctx context.Context, booking *entity.Booking) {
	event, err := s.repo.Event.FindByID(ctx, booking.EventID)
	if err != nil || event == nil {
		return
	}
	s.availability.InvalidateTables(event.ClubID, event.StartUTC)
}

func (s *bookingService) toBookingResponse(b *entity.Booking, clubID int64) *response.Booking {
	return &response.Booking{
		ID:           b.ID.String(),
		ClubID:       clubID,
		EventID:      b.EventID,
		TableID:      b.TableID,
		TableNumber:  b.TableNumber,
		GuestsCount:  b.GuestsCount,
		TotalDeposit: b.TotalDeposit,
		Status:       string(b.Status),
		ArrivalBy:    b.ArrivalBy,
		QRSecret:     b.QRSecret,
		CreatedAt:    b.CreatedAt,
	}
}
