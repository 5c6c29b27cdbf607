package usecase

import (
	"context"
	"sort"
	"time"

	"club-booking/internal/data/entity"
	"club-booking/internal/data/repository"
	"club-booking/internal/dto/response"

	"go.uber.org/zap"
)

const openNightsLookahead = 30 * 24 * time.Hour

type AvailabilityService interface {
	// ListOpenNights returns the upcoming nights still open for online
	// booking, at most limit of them.
	ListOpenNights(ctx context.Context, clubID int64, limit int) ([]response.Night, error)

	// ListFreeTables returns the tables free for the night starting at
	// eventStartUTC, sorted by table number. Absence of a club, event or
	// slot is a normal outcome and yields an empty list.
	ListFreeTables(ctx context.Context, clubID int64, eventStartUTC time.Time) ([]response.TableAvailability, error)

	CountFreeTables(ctx context.Context, clubID int64, eventStartUTC time.Time) (int, error)

	// InvalidateNights and InvalidateTables must be called after any write
	// that changes hold or booking state for the key. The caches are never
	// consistent with writes on their own, only TTL-bounded.
	InvalidateNights(clubID int64)
	InvalidateTables(clubID int64, eventStartUTC time.Time)
}

type tablesCacheKey struct {
	clubID    int64
	startUnix int64
}

type availabilityService struct {
	repo     *repository.Repository
	resolver *OperatingRulesResolver
	cutoff   CutoffPolicy
	clock    Clock
	log      *zap.Logger

	nightsCache *timedCache[int64, []response.Night]
	tablesCache *timedCache[tablesCacheKey, []response.TableAvailability]
}

func NewAvailabilityService(
	repo *repository.Repository,
	resolver *OperatingRulesResolver,
	cutoff CutoffPolicy,
	clock Clock,
	nightsTTL, tablesTTL time.Duration,
	log *zap.Logger,
) AvailabilityService {
	return &availabilityService{
		repo:        repo,
		resolver:    resolver,
		cutoff:      cutoff,
		clock:       clock,
		log:         log.With(zap.String("service", "availability")),
		nightsCache: newTimedCache[int64, []response.Night](nightsTTL),
		tablesCache: newTimedCache[tablesCacheKey, []response.TableAvailability](tablesTTL),
	}
}

func (s *availabilityService) ListOpenNights(ctx context.Context, clubID int64, limit int) ([]response.Night, error) {
	now := s.clock.Now()
	if cached, ok := s.nightsCache.get(clubID, now); ok {
		return truncateNights(cached, limit), nil
	}

	slots, err := s.resolver.Resolve(ctx, clubID, now, now.Add(openNightsLookahead))
	if err != nil {
		s.log.Error("Failed to resolve open nights",
			zap.Error(err),
			zap.Int64("club_id", clubID),
		)
		return nil, wrapUnexpected("list open nights", err)
	}

	nights := make([]response.Night, 0, len(slots))
	for _, slot := range slots {
		if !s.cutoff.IsOnlineBookingOpen(slot, now) {
			continue
		}
		nights = append(nights, s.toNight(slot))
	}

	s.nightsCache.put(clubID, nights, now)

	s.log.Info("Open nights resolved",
		zap.Int64("club_id", clubID),
		zap.Int("count", len(nights)),
	)

	return truncateNights(nights, limit), nil
}

func (s *availabilityService) ListFreeTables(ctx context.Context, clubID int64, eventStartUTC time.Time) ([]response.TableAvailability, error) {
	now := s.clock.Now()
	key := tablesCacheKey{clubID: clubID, startUnix: eventStartUTC.UnixNano()}
	if cached, ok := s.tablesCache.get(key, now); ok {
		return cached, nil
	}

	result, err := s.computeFreeTables(ctx, clubID, eventStartUTC, now)
	if err != nil {
		return nil, wrapUnexpected("list free tables", err)
	}

	s.tablesCache.put(key, result, now)
	return result, nil
}

func (s *availabilityService) computeFreeTables(ctx context.Context, clubID int64, eventStartUTC, now time.Time) ([]response.TableAvailability, error) {
	club, err := s.repo.Club.FindByID(ctx, clubID)
	if err != nil {
		return nil, err
	}
	if club == nil {
		return []response.TableAvailability{}, nil
	}

	event, err := s.repo.Event.FindByStart(ctx, clubID, eventStartUTC)
	if err != nil {
		return nil, err
	}
	if event == nil {
		// No materialized event; the night must at least resolve from the
		// operating rules for tables to be offered.
		slots, err := s.resolver.Resolve(ctx, clubID, eventStartUTC.Add(-24*time.Hour), eventStartUTC.Add(24*time.Hour))
		if err != nil {
			return nil, err
		}
		found := false
		for _, slot := range slots {
			if slot.EventStartUTC.Equal(eventStartUTC) {
				found = true
				break
			}
		}
		if !found {
			return []response.TableAvailability{}, nil
		}
	}

	tables, err := s.repo.Table.ListActiveByClub(ctx, clubID)
	if err != nil {
		return nil, err
	}

	held := map[int64]struct{}{}
	booked := map[int64]struct{}{}
	if event != nil {
		held, err = s.repo.Hold.ListActiveTableIDs(ctx, event.ID, now)
		if err != nil {
			return nil, err
		}
		booked, err = s.repo.Booking.ListActiveTableIDs(ctx, event.ID)
		if err != nil {
			return nil, err
		}
	}

	free := make([]response.TableAvailability, 0, len(tables))
	for _, t := range tables {
		if _, ok := held[t.ID]; ok {
			continue
		}
		if _, ok := booked[t.ID]; ok {
			continue
		}
		free = append(free, response.TableAvailability{
			TableID:     t.ID,
			TableNumber: t.Number,
			Zone:        t.Zone,
			Capacity:    t.Capacity,
			MinDeposit:  t.MinDeposit,
			Status:      response.TableStatusFree,
		})
	}

	sort.Slice(free, func(i, j int) bool {
		return free[i].TableNumber < free[j].TableNumber
	})

	return free, nil
}

func (s *availabilityService) CountFreeTables(ctx context.Context, clubID int64, eventStartUTC time.Time) (int, error) {
	tables, err := s.ListFreeTables(ctx, clubID, eventStartUTC)
	if err != nil {
		return 0, err
	}
	return len(tables), nil
}

func (s *availabilityService) InvalidateNights(clubID int64) {
	s.nightsCache.remove(clubID)
}

func (s *availabilityService) InvalidateTables(clubID int64, eventStartUTC time.Time) {
	s.tablesCache.remove(tablesCacheKey{clubID: clubID, startUnix: eventStartUTC.UnixNano()})
}

func (s *availabilityService) toNight(slot entity.NightSlot) response.Night {
	return response.Night{
		EventStartUTC: slot.EventStartUTC,
		EventEndUTC:   slot.EventEndUTC,
		IsSpecial:     slot.IsSpecial,
		ArrivalByUTC:  s.cutoff.ArrivalBy(slot),
		OpenLocal:     slot.OpenLocal.Format("2006-01-02 15:04"),
		CloseLocal:    slot.CloseLocal.Format("2006-01-02 15:04"),
		Source:        string(slot.Source),
	}
}

func truncateNights(nights []response.Night, limit int) []response.Night {
	if limit > 0 && len(nights) > limit {
		return nights[:limit]
	}
	return nights
}
