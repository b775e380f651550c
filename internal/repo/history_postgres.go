package repo

import (
	"context"
	"errors"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rogerio-castellano/stock-manager/internal/db"
	"github.com/rogerio-castellano/stock-manager/internal/models"
)

type PostgresHistoryRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresHistoryRepository returns error if pool is nil.
func NewPostgresHistoryRepository(pool *pgxpool.Pool) (*PostgresHistoryRepository, error) {
	if pool == nil {
		return nil, errors.New("database pool is required")
	}
	return &PostgresHistoryRepository{pool: pool}, nil
}

func (r *PostgresHistoryRepository) Record(ctx context.Context, point models.StockValuePoint) (bool, error) {
	recordedAt := point.RecordedAt
	if recordedAt.IsZero() {
		recordedAt = time.Now().UTC()
	}

	query, args, err := db.QB.
		Insert("stock_value_history").
		Columns("day", "total_value", "recorded_at").
		Values(truncateDay(point.Day), point.TotalValue, recordedAt).
		Suffix("ON CONFLICT (day) DO NOTHING").
		ToSql()
	if err != nil {
		return false, fmt.Errorf("build insert history query: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	tag, err := r.pool.Exec(ctx, query, args...)
	if err != nil {
		return false, storeError("insert history", err, nil)
	}
	return tag.RowsAffected() == 1, nil
}

func (r *PostgresHistoryRepository) Since(ctx context.Context, from time.Time) ([]models.StockValuePoint, error) {
	query, args, err := db.QB.
		Select("day", "total_value", "recorded_at").
		From("stock_value_history").
		Where(sq.GtOrEq{"day": truncateDay(from)}).
		OrderBy("day").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build history query: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, storeError("query history", err, nil)
	}
	defer rows.Close()

	points := []models.StockValuePoint{}
	for rows.Next() {
		var p models.StockValuePoint
		if err := rows.Scan(&p.Day, &p.TotalValue, &p.RecordedAt); err != nil {
			return nil, fmt.Errorf("scan history point: %w", err)
		}
		p.Day = truncateDay(p.Day)
		points = append(points, p)
	}
	if err := rows.Err(); err != nil {
		return nil, storeError("iterate history rows", err, nil)
	}
	return points, nil
}
