package repository

import (
	"context"
	"fmt"

	"club-booking/internal/data/entity"
	"club-booking/pkg/database"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type TableRepository interface {
	FindByID(ctx context.Context, tableID int64) (*entity.Table, error)
	ListActiveByClub(ctx context.Context, clubID int64) ([]entity.Table, error)
}

type tableRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewTableRepository(db database.PgxIface, log *zap.Logger) TableRepository {
	return &tableRepository{
		db:  db,
		log: log.With(zap.String("repository", "table")),
	}
}

func (r *tableRepository) FindByID(ctx context.Context, tableID int64) (*entity.Table, error) {
	query := `
		SELECT id, club_id, zone, table_number, capacity, min_deposit, active
		FROM tables
		WHERE id = $1
	`

	var t entity.Table
	err := r.db.QueryRow(ctx, query, tableID).Scan(
		&t.ID,
		&t.ClubID,
		&t.Zone,
		&t.Number,
		&t.Capacity,
		&t.MinDeposit,
		&t.Active,
	)
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find table by ID",
			zap.Error(err),
			zap.Int64("table_id", tableID),
		)
		return nil, fmt.Errorf("find table by ID %d: %w", tableID, err)
	}

	return &t, nil
}

func (r *tableRepository) ListActiveByClub(ctx context.Context, clubID int64) ([]entity.Table, error) {
	query := `
		SELECT id, club_id, zone, table_number, capacity, min_deposit, active
		FROM tables
		WHERE club_id = $1 AND active
		ORDER BY table_number
	`

	rows, err := r.db.Query(ctx, query, clubID)
	if err != nil {
		r.log.Error("Failed to list active tables",
			zap.Error(err),
			zap.Int64("club_id", clubID),
		)
		return nil, fmt.Errorf("list active tables for club %d: %w", clubID, err)
	}
	defer rows.Close()

	var tables []entity.Table
	for rows.Next() {
		var t entity.Table
		err := rows.Scan(&t.ID, &t.ClubID, &t.Zone, &t.Number, &t.Capacity, &t.MinDeposit, &t.Active)
		if err != nil {
			r.log.Error("Failed to scan table row", zap.Error(err))
			return nil, fmt.Errorf("scan table row: %w", err)
		}
		tables = append(tables, t)
	}

	return tables, rows.Err()
}
