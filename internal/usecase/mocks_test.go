package usecase

import (
	"context"
	"time"

	"club-booking/internal/data/entity"
	"club-booking/internal/data/repository"

	"github.com/google/uuid"
)

// MockClubRepository is a mock implementation of repository.ClubRepository
type MockClubRepository struct {
	FindByIDFunc        func(ctx context.Context, clubID int64) (*entity.Club, error)
	ListWeeklyHoursFunc func(ctx context.Context, clubID int64) ([]entity.WeeklyHour, error)
	ListHolidaysFunc    func(ctx context.Context, clubID int64, from, to entity.CivilDate) ([]entity.Holiday, error)
	ListExceptionsFunc  func(ctx context.Context, clubID int64, from, to entity.CivilDate) ([]entity.DateException, error)
}

func (m *MockClubRepository) FindByID(ctx context.Context, clubID int64) (*entity.Club, error) {
	if m.FindByIDFunc != nil {
		return m.FindByIDFunc(ctx, clubID)
	}
	return nil, nil
}

func (m *MockClubRepository) ListWeeklyHours(ctx context.Context, clubID int64) ([]entity.WeeklyHour, error) {
	if m.ListWeeklyHoursFunc != nil {
		return m.ListWeeklyHoursFunc(ctx, clubID)
	}
	return nil, nil
}

func (m *MockClubRepository) ListHolidays(ctx context.Context, clubID int64, from, to entity.CivilDate) ([]entity.Holiday, error) {
	if m.ListHolidaysFunc != nil {
		return m.ListHolidaysFunc(ctx, clubID, from, to)
	}
	return nil, nil
}

func (m *MockClubRepository) ListExceptions(ctx context.Context, clubID int64, from, to entity.CivilDate) ([]entity.DateException, error) {
	if m.ListExceptionsFunc != nil {
		return m.ListExceptionsFunc(ctx, clubID, from, to)
	}
	return nil, nil
}

// MockEventRepository is a mock implementation of repository.EventRepository
type MockEventRepository struct {
	FindByIDFunc    func(ctx context.Context, id int64) (*entity.Event, error)
	FindByStartFunc func(ctx context.Context, clubID int64, startUTC time.Time) (*entity.Event, error)
	ListBetweenFunc func(ctx context.Context, clubID int64, fromUTC, toUTC time.Time) ([]entity.Event, error)
}

func (m *MockEventRepository) FindByID(ctx context.Context, id int64) (*entity.Event, error) {
	if m.FindByIDFunc != nil {
		return m.FindByIDFunc(ctx, id)
	}
	return nil, nil
}

func (m *MockEventRepository) FindByStart(ctx context.Context, clubID int64, startUTC time.Time) (*entity.Event, error) {
	if m.FindByStartFunc != nil {
		return m.FindByStartFunc(ctx, clubID, startUTC)
	}
	return nil, nil
}

func (m *MockEventRepository) ListBetween(ctx context.Context, clubID int64, fromUTC, toUTC time.Time) ([]entity.Event, error) {
	if m.ListBetweenFunc != nil {
		return m.ListBetweenFunc(ctx, clubID, fromUTC, toUTC)
	}
	return nil, nil
}

// MockTableRepository is a mock implementation of repository.TableRepository
type MockTableRepository struct {
	FindByIDFunc         func(ctx context.Context, tableID int64) (*entity.Table, error)
	ListActiveByClubFunc func(ctx context.Context, clubID int64) ([]entity.Table, error)
}

func (m *MockTableRepository) FindByID(ctx context.Context, tableID int64) (*entity.Table, error) {
	if m.FindByIDFunc != nil {
		return m.FindByIDFunc(ctx, tableID)
	}
	return nil, nil
}

func (m *MockTableRepository) ListActiveByClub(ctx context.Context, clubID int64) ([]entity.Table, error) {
	if m.ListActiveByClubFunc != nil {
		return m.ListActiveByClubFunc(ctx, clubID)
	}
	return nil, nil
}

// MockHoldRepository is a mock implementation of repository.HoldRepository
type MockHoldRepository struct {
	InsertFunc             func(ctx context.Context, hold *entity.Hold) (*entity.Hold, error)
	DeleteFunc             func(ctx context.Context, id uuid.UUID) error
	ListActiveTableIDsFunc func(ctx context.Context, eventID int64, now time.Time) (map[int64]struct{}, error)
	DeleteExpiredFunc      func(ctx context.Context, now time.Time) (int64, error)
}

func (m *MockHoldRepository) Insert(ctx context.Context, hold *entity.Hold) (*entity.Hold, error) {
	if m.InsertFunc != nil {
		return m.InsertFunc(ctx, hold)
	}
	return hold, nil
}

func (m *MockHoldRepository) Delete(ctx context.Context, id uuid.UUID) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, id)
	}
	return nil
}

func (m *MockHoldRepository) ListActiveTableIDs(ctx context.Context, eventID int64, now time.Time) (map[int64]struct{}, error) {
	if m.ListActiveTableIDsFunc != nil {
		return m.ListActiveTableIDsFunc(ctx, eventID, now)
	}
	return map[int64]struct{}{}, nil
}

func (m *MockHoldRepository) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	if m.DeleteExpiredFunc != nil {
		return m.DeleteExpiredFunc(ctx, now)
	}
	return 0, nil
}

// MockBookingRepository is a mock implementation of repository.BookingRepository
type MockBookingRepository struct {
	InsertFunc               func(ctx context.Context, booking *entity.Booking) (*entity.Booking, error)
	FindByIDFunc             func(ctx context.Context, id uuid.UUID) (*entity.Booking, error)
	FindByQRSecretFunc       func(ctx context.Context, secret string) (*entity.Booking, error)
	FindByIdempotencyKeyFunc func(ctx context.Context, key string) (*entity.Booking, error)
	UpdateStatusFunc         func(ctx context.Context, id uuid.UUID, status entity.BookingStatus) error
	ListActiveTableIDsFunc   func(ctx context.Context, eventID int64) (map[int64]struct{}, error)
	MarkNoShowOverdueFunc    func(ctx context.Context, now time.Time) (int64, error)
}

func (m *MockBookingRepository) Insert(ctx context.Context, booking *entity.Booking) (*entity.Booking, error) {
	if m.InsertFunc != nil {
		return m.InsertFunc(ctx, booking)
	}
	return booking, nil
}

func (m *MockBookingRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Booking, error) {
	if m.FindByIDFunc != nil {
		return m.FindByIDFunc(ctx, id)
	}
	return nil, nil
}

func (m *MockBookingRepository) FindByQRSecret(ctx context.Context, secret string) (*entity.Booking, error) {
	if m.FindByQRSecretFunc != nil {
		return m.FindByQRSecretFunc(ctx, secret)
	}
	return nil, nil
}

func (m *MockBookingRepository) FindByIdempotencyKey(ctx context.Context, key string) (*entity.Booking, error) {
	if m.FindByIdempotencyKeyFunc != nil {
		return m.FindByIdempotencyKeyFunc(ctx, key)
	}
	return nil, nil
}

func (m *MockBookingRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status entity.BookingStatus) error {
	if m.UpdateStatusFunc != nil {
		return m.UpdateStatusFunc(ctx, id, status)
	}
	return nil
}

func (m *MockBookingRepository) ListActiveTableIDs(ctx context.Context, eventID int64) (map[int64]struct{}, error) {
	if m.ListActiveTableIDsFunc != nil {
		return m.ListActiveTableIDsFunc(ctx, eventID)
	}
	return map[int64]struct{}{}, nil
}

func (m *MockBookingRepository) MarkNoShowOverdue(ctx context.Context, now time.Time) (int64, error) {
	if m.MarkNoShowOverdueFunc != nil {
		return m.MarkNoShowOverdueFunc(ctx, now)
	}
	return 0, nil
}

// MockOutboxRepository is a mock implementation of repository.OutboxRepository
type MockOutboxRepository struct {
	EnqueueFunc    func(ctx context.Context, msg *entity.OutboxMessage) error
	PickBatchFunc  func(ctx context.Context, now time.Time, limit int) ([]entity.OutboxMessage, error)
	MarkSentFunc   func(ctx context.Context, id uuid.UUID) error
	MarkFailedFunc func(ctx context.Context, id uuid.UUID, lastError string, nextAttempt time.Time) error
}

func (m *MockOutboxRepository) Enqueue(ctx context.Context, msg *entity.OutboxMessage) error {
	if m.EnqueueFunc != nil {
		return m.EnqueueFunc(ctx, msg)
	}
	return nil
}

func (m *MockOutboxRepository) PickBatch(ctx context.Context, now time.Time, limit int) ([]entity.OutboxMessage, error) {
	if m.PickBatchFunc != nil {
		return m.PickBatchFunc(ctx, now, limit)
	}
	return nil, nil
}

func (m *MockOutboxRepository) MarkSent(ctx context.Context, id uuid.UUID) error {
	if m.MarkSentFunc != nil {
		return m.MarkSentFunc(ctx, id)
	}
	return nil
}

func (m *MockOutboxRepository) MarkFailed(ctx context.Context, id uuid.UUID, lastError string, nextAttempt time.Time) error {
	if m.MarkFailedFunc != nil {
		return m.MarkFailedFunc(ctx, id, lastError, nextAttempt)
	}
	return nil
}

// newTestRepo assembles a Repository over the given mocks, substituting
// empty mocks for any nil entry.
func newTestRepo(clubs *MockClubRepository, events *MockEventRepository, tables *MockTableRepository, holds *MockHoldRepository, bookings *MockBookingRepository, outbox *MockOutboxRepository) *repository.Repository {
	if clubs == nil {
		clubs = &MockClubRepository{}
	}
	if events == nil {
		events = &MockEventRepository{}
	}
	if tables == nil {
		tables = &MockTableRepository{}
	}
	if holds == nil {
		holds = &MockHoldRepository{}
	}
	if bookings == nil {
		bookings = &MockBookingRepository{}
	}
	if outbox == nil {
		outbox = &MockOutboxRepository{}
	}
	return &repository.Repository{
		Club:    clubs,
		Event:   events,
		Table:   tables,
		Hold:    holds,
		Booking: bookings,
		Outbox:  outbox,
	}
}
