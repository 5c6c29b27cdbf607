package repository

import (
	"context"
	"fmt"
	"time"

	"club-booking/internal/data/entity"
	"club-booking/pkg/database"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type ClubRepository interface {
	FindByID(ctx context.Context, clubID int64) (*entity.Club, error)
	ListWeeklyHours(ctx context.Context, clubID int64) ([]entity.WeeklyHour, error)
	ListHolidays(ctx context.Context, clubID int64, from, to entity.CivilDate) ([]entity.Holiday, error)
	ListExceptions(ctx context.Context, clubID int64, from, to entity.CivilDate) ([]entity.DateException, error)
}

type clubRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewClubRepository(db database.PgxIface, log *zap.Logger) ClubRepository {
	return &clubRepository{
		db:  db,
		log: log.With(zap.String("repository", "club")),
	}
}

func (r *clubRepository) FindByID(ctx context.Context, clubID int64) (*entity.Club, error) {
	query := `SELECT id, name, timezone FROM clubs WHERE id = $1`

	var club entity.Club
	err := r.db.QueryRow(ctx, query, clubID).Scan(&club.ID, &club.Name, &club.Timezone)
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find club by ID",
			zap.Error(err),
			zap.Int64("club_id", clubID),
		)
		return nil, fmt.Errorf("find club by ID %d: %w", clubID, err)
	}

	return &club, nil
}

func (r *clubRepository) ListWeeklyHours(ctx context.Context, clubID int64) ([]entity.WeeklyHour, error) {
	query := `
		SELECT club_id, day_of_week, open_minutes, close_minutes
		FROM club_weekly_hours
		WHERE club_id = $1
		ORDER BY day_of_week
	`

	rows, err := r.db.Query(ctx, query, clubID)
	if err != nil {
		r.log.Error("Failed to list weekly hours",
			zap.Error(err),
			zap.Int64("club_id", clubID),
		)
		return nil, fmt.Errorf("list weekly hours for club %d: %w", clubID, err)
	}
	defer rows.Close()

	var hours []entity.WeeklyHour
	for rows.Next() {
		var (
			h        entity.WeeklyHour
			dow      int
			openMin  int
			closeMin int
		)
		if err := rows.Scan(&h.ClubID, &dow, &openMin, &closeMin); err != nil {
			r.log.Error("Failed to scan weekly hour row", zap.Error(err))
			return nil, fmt.Errorf("scan weekly hour row: %w", err)
		}
		h.DayOfWeek = time.Weekday(dow)
		h.Open = entity.MinuteOfDay(openMin)
		h.Close = entity.MinuteOfDay(closeMin)
		hours = append(hours, h)
	}

	return hours, rows.Err()
}

func (r *clubRepository) ListHolidays(ctx context.Context, clubID int64, from, to entity.CivilDate) ([]entity.Holiday, error) {
	query := `
		SELECT club_id, holiday_date, is_open, override_open_minutes, override_close_minutes
		FROM club_holidays
		WHERE club_id = $1 AND holiday_date BETWEEN $2 AND $3
		ORDER BY holiday_date
	`

	rows, err := r.db.Query(ctx, query, clubID, from.String(), to.String())
	if err != nil {
		r.log.Error("Failed to list holidays",
			zap.Error(err),
			zap.Int64("club_id", clubID),
		)
		return nil, fmt.Errorf("list holidays for club %d: %w", clubID, err)
	}
	defer rows.Close()

	var holidays []entity.Holiday
	for rows.Next() {
		var (
			h        entity.Holiday
			date     time.Time
			openMin  *int
			closeMin *int
		)
		if err := rows.Scan(&h.ClubID, &date, &h.IsOpen, &openMin, &closeMin); err != nil {
			r.log.Error("Failed to scan holiday row", zap.Error(err))
			return nil, fmt.Errorf("scan holiday row: %w", err)
		}
		h.Date = entity.DateOf(date)
		h.OverrideOpen = toMinuteOfDay(openMin)
		h.OverrideClose = toMinuteOfDay(closeMin)
		holidays = append(holidays, h)
	}

	return holidays, rows.Err()
}

func (r *clubRepository) ListExceptions(ctx context.Context, clubID int64, from, to entity.CivilDate) ([]entity.DateException, error) {
	query := `
		SELECT club_id, exception_date, is_open, override_open_minutes, override_close_minutes
		FROM club_date_exceptions
		WHERE club_id = $1 AND exception_date BETWEEN $2 AND $3
		ORDER BY exception_date
	`

	rows, err := r.db.Query(ctx, query, clubID, from.String(), to.String())
	if err != nil {
		r.log.Error("Failed to list date exceptions",
			zap.Error(err),
			zap.Int64("club_id", clubID),
		)
		return nil, fmt.Errorf("list date exceptions for club %d: %w", clubID, err)
	}
	defer rows.Close()

	var exceptions []entity.DateException
	for rows.Next() {
		var (
			e        entity.DateException
			date     time.Time
			openMin  *int
			closeMin *int
		)
		if err := rows.Scan(&e.ClubID, &date, &e.IsOpen, &openMin, &closeMin); err != nil {
			r.log.Error("Failed to scan date exception row", zap.Error(err))
			return nil, fmt.Errorf("scan date exception row: %w", err)
		}
		e.Date = entity.DateOf(date)
		e.OverrideOpen = toMinuteOfDay(openMin)
		e.OverrideClose = toMinuteOfDay(closeMin)
		exceptions = append(exceptions, e)
	}

	return exceptions, rows.Err()
}

func toMinuteOfDay(minutes *int) *entity.MinuteOfDay {
	if minutes == nil {
		return nil
	}
	m := entity.MinuteOfDay(*minutes)
	return &m
}
