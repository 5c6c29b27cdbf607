package usecase

import (
	"context"
	"fmt"
	"sort"
	"time"

	"club-booking/internal/data/entity"
	"club-booking/internal/data/repository"

	"go.uber.org/zap"
)

// OperatingRulesResolver turns weekly hours, holiday overrides and
// date-specific exceptions into concrete night slots.
//
// Precedence per date: holiday overrides exception overrides weekly hours.
// When an override omits a boundary it inherits the value currently in
// effect from the previous source in the chain. Windows where open equals
// close are invalid and skipped. Overnight windows get their close shifted
// to the next calendar day.
type OperatingRulesResolver struct {
	clubs  repository.ClubRepository
	events repository.EventRepository
	clock  Clock
	log    *zap.Logger
}

func NewOperatingRulesResolver(
	clubs repository.ClubRepository,
	events repository.EventRepository,
	clock Clock,
	log *zap.Logger,
) *OperatingRulesResolver {
	return &OperatingRulesResolver{
		clubs:  clubs,
		events: events,
		clock:  clock,
		log:    log.With(zap.String("service", "rules_resolver")),
	}
}

// Resolve returns the night slots for clubID whose local nights could
// overlap [fromUTC, toUTC]. An unknown club yields an empty list.
func (r *OperatingRulesResolver) Resolve(ctx context.Context, clubID int64, fromUTC, toUTC time.Time) ([]entity.NightSlot, error) {
	club, err := r.clubs.FindByID(ctx, clubID)
	if err != nil {
		return nil, fmt.Errorf("resolve slots: %w", err)
	}
	if club == nil {
		return nil, nil
	}

	loc, err := time.LoadLocation(club.Timezone)
	if err != nil {
		return nil, fmt.Errorf("load timezone %q for club %d: %w", club.Timezone, clubID, err)
	}

	fromDate := entity.DateOf(fromUTC.In(loc))
	toDate := entity.DateOf(toUTC.In(loc))

	hours, err := r.clubs.ListWeeklyHours(ctx, clubID)
	if err != nil {
		return nil, fmt.Errorf("resolve slots: %w", err)
	}
	holidayList, err := r.clubs.ListHolidays(ctx, clubID, fromDate, toDate)
	if err != nil {
		return nil, fmt.Errorf("resolve slots: %w", err)
	}
	exceptionList, err := r.clubs.ListExceptions(ctx, clubID, fromDate, toDate)
	if err != nil {
		return nil, fmt.Errorf("resolve slots: %w", err)
	}
	events, err := r.events.ListBetween(ctx, clubID, fromUTC, toUTC)
	if err != nil {
		return nil, fmt.Errorf("resolve slots: %w", err)
	}

	weekly := make(map[time.Weekday]entity.WeeklyHour, len(hours))
	for _, h := range hours {
		weekly[h.DayOfWeek] = h
	}
	holidays := make(map[entity.CivilDate]entity.Holiday, len(holidayList))
	for _, h := range holidayList {
		holidays[h.Date] = h
	}
	exceptions := make(map[entity.CivilDate]entity.DateException, len(exceptionList))
	for _, e := range exceptionList {
		exceptions[e.Date] = e
	}

	var slots []entity.NightSlot

	for date := fromDate; !date.After(toDate); date = date.AddDays(1) {
		var base *dayHours
		if h, ok := weekly[date.Weekday()]; ok {
			base = &dayHours{open: h.Open, close: h.Close}
		}

		var exception *entity.DateException
		if e, ok := exceptions[date]; ok {
			exception = &e
		}
		var holiday *entity.Holiday
		if h, ok := holidays[date]; ok {
			holiday = &h
		}

		merged, open := mergeDayHours(base, exception, holiday)
		if !open {
			r.log.Debug("Night closed",
				zap.Int64("club_id", clubID),
				zap.String("date", date.String()),
			)
			continue
		}
		if merged.open == merged.close {
			r.log.Warn("Invalid operating window, open equals close",
				zap.Int64("club_id", clubID),
				zap.String("date", date.String()),
				zap.String("open", merged.open.String()),
			)
			continue
		}

		source := entity.NightSourceWeekly
		switch {
		case holiday != nil && holiday.IsOpen:
			source = entity.NightSourceHoliday
		case exception != nil && exception.IsOpen:
			source = entity.NightSourceException
		}

		startUTC, endUTC := toUTCWindow(date, merged, loc)
		if !endUTC.After(startUTC) {
			continue
		}

		slots = append(slots, entity.NightSlot{
			ClubID:        clubID,
			EventStartUTC: startUTC,
			EventEndUTC:   endUTC,
			IsSpecial:     source != entity.NightSourceWeekly,
			Source:        source,
			OpenLocal:     startUTC.In(loc),
			CloseLocal:    endUTC.In(loc),
			Zone:          loc,
		})
	}

	for _, event := range events {
		slots = append(slots, entity.NightSlot{
			ClubID:        clubID,
			EventStartUTC: event.StartUTC,
			EventEndUTC:   event.EndUTC,
			IsSpecial:     event.IsSpecial,
			Source:        entity.NightSourceEvent,
			OpenLocal:     event.StartUTC.In(loc),
			CloseLocal:    event.EndUTC.In(loc),
			Zone:          loc,
		})
	}

	now := r.clock.Now()
	upcoming := slots[:0]
	for _, slot := range slots {
		if slot.EventEndUTC.After(now) {
			upcoming = append(upcoming, slot)
		}
	}

	sort.Slice(upcoming, func(i, j int) bool {
		return upcoming[i].EventStartUTC.Before(upcoming[j].EventStartUTC)
	})

	return mergeAdjacent(upcoming), nil
}

type dayHours struct {
	open  entity.MinuteOfDay
	close entity.MinuteOfDay
}

// mergeDayHours applies the exception and holiday cascade over the weekly
// base hours. The second return value is false when the date yields no slot.
func mergeDayHours(base *dayHours, exception *entity.DateException, holiday *entity.Holiday) (dayHours, bool) {
	current := base

	if exception != nil {
		if !exception.IsOpen {
			return dayHours{}, false
		}
		// An exception cannot open a date that has no weekly hours to
		// inherit its missing boundaries from.
		if current == nil {
			return dayHours{}, false
		}
		next := *current
		if exception.OverrideOpen != nil {
			next.open = *exception.OverrideOpen
		}
		if exception.OverrideClose != nil {
			next.close = *exception.OverrideClose
		}
		current = &next
	}

	if holiday != nil {
		if !holiday.IsOpen {
			return dayHours{}, false
		}
		// A holiday boundary without an override inherits from the
		// exception-or-weekly value in effect. If either boundary stays
		// unresolved the date yields no slot; a holiday with only a
		// partial override and no base hours keeps the night closed.
		if holiday.OverrideOpen == nil && holiday.OverrideClose == nil && current == nil {
			return dayHours{}, false
		}
		var next dayHours
		switch {
		case holiday.OverrideOpen != nil:
			next.open = *holiday.OverrideOpen
		case current != nil:
			next.open = current.open
		default:
			return dayHours{}, false
		}
		switch {
		case holiday.OverrideClose != nil:
			next.close = *holiday.OverrideClose
		case current != nil:
			next.close = current.close
		default:
			return dayHours{}, false
		}
		return next, true
	}

	if current == nil {
		return dayHours{}, false
	}
	return *current, true
}

// toUTCWindow anchors the merged hours on the date; a close at or before the
// open rolls over to the next calendar day.
func toUTCWindow(date entity.CivilDate, hours dayHours, loc *time.Location) (time.Time, time.Time) {
	open := hours.open.At(date, loc)
	close := hours.close.At(date, loc)
	if !close.After(open) {
		close = hours.close.At(date.AddDays(1), loc)
	}
	return open.UTC(), close.UTC()
}

// mergeAdjacent collapses consecutive slots of the same source whose windows
// touch exactly, which happens when an event night straddles midnight across
// two resolved dates.
func mergeAdjacent(slots []entity.NightSlot) []entity.NightSlot {
	if len(slots) == 0 {
		return slots
	}

	merged := slots[:1]
	for _, slot := range slots[1:] {
		last := &merged[len(merged)-1]
		if last.Source == slot.Source && last.IsSpecial == slot.IsSpecial && last.EventEndUTC.Equal(slot.EventStartUTC) {
			last.EventEndUTC = slot.EventEndUTC
			last.CloseLocal = slot.CloseLocal
			continue
		}
		merged = append(merged, slot)
	}
	return merged
}
