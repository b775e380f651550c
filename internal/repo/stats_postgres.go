package repo

import (
	"context"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rogerio-castellano/stock-manager/internal/db"
	"github.com/rogerio-castellano/stock-manager/internal/models"
)

type PostgresStatsRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresStatsRepository returns error if pool is nil.
func NewPostgresStatsRepository(pool *pgxpool.Pool) (*PostgresStatsRepository, error) {
	if pool == nil {
		return nil, errors.New("database pool is required")
	}
	return &PostgresStatsRepository{pool: pool}, nil
}

// ReadConsistent runs fn inside a read-only REPEATABLE READ transaction, so
// every query fn issues sees the same snapshot of the tables.
func (r *PostgresStatsRepository) ReadConsistent(ctx context.Context, fn func(StatsReader) error) error {
	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{
		IsoLevel:   pgx.RepeatableRead,
		AccessMode: pgx.ReadOnly,
	})
	if err != nil {
		return storeError("begin stats transaction", err, nil)
	}
	defer func() {
		_ = tx.Rollback(context.WithoutCancel(ctx))
	}()

	if err := fn(postgresStatsView{q: tx}); err != nil {
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return storeError("commit stats transaction", err, nil)
	}
	return nil
}

type postgresStatsView struct {
	q querier
}

func (v postgresStatsView) Totals(ctx context.Context) (InventoryTotals, error) {
	query, args, err := db.QB.
		Select("COUNT(*)", "COALESCE(SUM(price * quantity), 0)").
		Column(sq.Expr("COUNT(*) FILTER (WHERE quantity < ?)", models.LowStockThreshold)).
		Column("COUNT(*) FILTER (WHERE quantity = 0)").
		From("products").
		ToSql()
	if err != nil {
		return InventoryTotals{}, fmt.Errorf("build totals query: %w", err)
	}

	var t InventoryTotals
	err = v.q.QueryRow(ctx, query, args...).Scan(&t.ProductCount, &t.StockValue, &t.LowStockCount, &t.OutOfStockCount)
	if err != nil {
		return InventoryTotals{}, storeError("query totals", err, nil)
	}
	return t, nil
}

func (v postgresStatsView) CategoryDistribution(ctx context.Context, limit int) ([]CategoryBucket, error) {
	query, args, err := db.QB.
		Select("c.id").
		Column(sq.Expr("COALESCE(c.name, ?)", models.UncategorizedLabel)).
		Column("COUNT(p.id)").
		Column("COALESCE(SUM(p.price * p.quantity), 0) AS stock_value").
		From("products p").
		LeftJoin("categories c ON c.id = p.category_id").
		GroupBy("c.id", "c.name").
		OrderBy("stock_value DESC", "c.id ASC NULLS LAST").
		Limit(uint64(limit)).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build category distribution query: %w", err)
	}

	rows, err := v.q.Query(ctx, query, args...)
	if err != nil {
		return nil, storeError("query category distribution", err, nil)
	}
	defer rows.Close()

	buckets := []CategoryBucket{}
	for rows.Next() {
		var b CategoryBucket
		if err := rows.Scan(&b.CategoryID, &b.Label, &b.ProductCount, &b.StockValue); err != nil {
			return nil, fmt.Errorf("scan category bucket: %w", err)
		}
		buckets = append(buckets, b)
	}
	if err := rows.Err(); err != nil {
		return nil, storeError("iterate category distribution rows", err, nil)
	}
	return buckets, nil
}

func (v postgresStatsView) TopSellers(ctx context.Context, limit int) ([]models.Product, error) {
	query, args, err := db.QB.
		Select(productColumns...).
		From("products").
		OrderBy("sold_quantity DESC", "id ASC").
		Limit(uint64(limit)).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build top sellers query: %w", err)
	}

	rows, err := v.q.Query(ctx, query, args...)
	if err != nil {
		return nil, storeError("query top sellers", err, nil)
	}
	products, err := scanProducts(rows)
	if err != nil {
		return nil, storeError("query top sellers", err, nil)
	}
	return products, nil
}
