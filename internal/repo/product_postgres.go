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

var productColumns = []string{"id", "name", "price", "quantity", "sold_quantity", "category_id"}

type PostgresProductRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresProductRepository returns error if pool is nil.
func NewPostgresProductRepository(pool *pgxpool.Pool) (*PostgresProductRepository, error) {
	if pool == nil {
		return nil, errors.New("database pool is required")
	}
	return &PostgresProductRepository{pool: pool}, nil
}

func scanProduct(row pgx.Row) (models.Product, error) {
	var p models.Product
	err := row.Scan(&p.ID, &p.Name, &p.Price, &p.Quantity, &p.SoldQuantity, &p.CategoryID)
	return p, err
}

func scanProducts(rows pgx.Rows) ([]models.Product, error) {
	defer rows.Close()

	products := []models.Product{}
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("scan product: %w", err)
		}
		products = append(products, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate product rows: %w", err)
	}
	return products, nil
}

func (r *PostgresProductRepository) Create(ctx context.Context, p models.Product) (models.Product, error) {
	query, args, err := db.QB.
		Insert("products").
		Columns("name", "price", "quantity", "sold_quantity", "category_id").
		Values(p.Name, p.Price, p.Quantity, p.SoldQuantity, p.CategoryID).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return models.Product{}, fmt.Errorf("build insert product query: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	if err := r.pool.QueryRow(ctx, query, args...).Scan(&p.ID); err != nil {
		return models.Product{}, storeError("insert product", err, ErrCategoryNotFound)
	}
	return p, nil
}

func (r *PostgresProductRepository) GetByID(ctx context.Context, id int) (models.Product, error) {
	query, args, err := db.QB.Select(productColumns...).From("products").Where(sq.Eq{"id": id}).ToSql()
	if err != nil {
		return models.Product{}, fmt.Errorf("build product query: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	p, err := scanProduct(r.pool.QueryRow(ctx, query, args...))
	if errors.Is(err, pgx.ErrNoRows) {
		return models.Product{}, ErrProductNotFound
	}
	if err != nil {
		return models.Product{}, storeError("query product", err, nil)
	}
	return p, nil
}

func (r *PostgresProductRepository) Update(ctx context.Context, p models.Product) (models.Product, error) {
	query, args, err := db.QB.
		Update("products").
		SetMap(map[string]any{
			"name":          p.Name,
			"price":         p.Price,
			"quantity":      p.Quantity,
			"sold_quantity": p.SoldQuantity,
			"category_id":   p.CategoryID,
		}).
		Where(sq.Eq{"id": p.ID}).
		ToSql()
	if err != nil {
		return models.Product{}, fmt.Errorf("build update product query: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	tag, err := r.pool.Exec(ctx, query, args...)
	if err != nil {
		return models.Product{}, storeError("update product", err, ErrCategoryNotFound)
	}
	if tag.RowsAffected() == 0 {
		return models.Product{}, ErrProductNotFound
	}
	return p, nil
}

func (r *PostgresProductRepository) Delete(ctx context.Context, id int) error {
	query, args, err := db.QB.Delete("products").Where(sq.Eq{"id": id}).ToSql()
	if err != nil {
		return fmt.Errorf("build delete product query: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	tag, err := r.pool.Exec(ctx, query, args...)
	if err != nil {
		return storeError("delete product", err, nil)
	}
	if tag.RowsAffected() == 0 {
		return ErrProductNotFound
	}
	return nil
}

func filterConditions(pf ProductFilter) sq.And {
	conditions := sq.And{}
	if pf.Name != "" {
		conditions = append(conditions, sq.ILike{"name": "%" + pf.Name + "%"})
	}
	if pf.CategoryID != nil {
		conditions = append(conditions, sq.Eq{"category_id": *pf.CategoryID})
	}
	return conditions
}

func (r *PostgresProductRepository) Filter(ctx context.Context, pf ProductFilter) ([]models.Product, int, error) {
	conditions := filterConditions(pf)

	countQuery, countArgs, err := db.QB.Select("COUNT(*)").From("products").Where(conditions).ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("build count products query: %w", err)
	}

	sel := db.QB.Select(productColumns...).From("products").Where(conditions).OrderBy("id")
	if pf.Limit != nil && *pf.Limit > 0 {
		sel = sel.Limit(uint64(*pf.Limit))
	}
	if pf.Offset != nil && *pf.Offset > 0 {
		sel = sel.Offset(uint64(*pf.Offset))
	}
	query, args, err := sel.ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("build filter products query: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	var total int
	if err := r.pool.QueryRow(ctx, countQuery, countArgs...).Scan(&total); err != nil {
		return nil, 0, storeError("count products", err, nil)
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, storeError("query products", err, nil)
	}
	products, err := scanProducts(rows)
	if err != nil {
		return nil, 0, storeError("query products", err, nil)
	}
	return products, total, nil
}
