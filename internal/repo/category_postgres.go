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

type PostgresCategoryRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresCategoryRepository returns error if pool is nil.
func NewPostgresCategoryRepository(pool *pgxpool.Pool) (*PostgresCategoryRepository, error) {
	if pool == nil {
		return nil, errors.New("database pool is required")
	}
	return &PostgresCategoryRepository{pool: pool}, nil
}

func (r *PostgresCategoryRepository) Create(ctx context.Context, c models.Category) (models.Category, error) {
	query, args, err := db.QB.
		Insert("categories").
		Columns("name", "description", "icon").
		Values(c.Name, c.Description, c.Icon).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return models.Category{}, fmt.Errorf("build insert category query: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	if err := r.pool.QueryRow(ctx, query, args...).Scan(&c.ID); err != nil {
		return models.Category{}, storeError("insert category", err, nil)
	}
	return c, nil
}

func (r *PostgresCategoryRepository) GetAll(ctx context.Context) ([]models.Category, error) {
	query, args, err := db.QB.Select("id", "name", "description", "icon").From("categories").OrderBy("id").ToSql()
	if err != nil {
		return nil, fmt.Errorf("build categories query: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, storeError("query categories", err, nil)
	}
	defer rows.Close()

	categories := []models.Category{}
	for rows.Next() {
		var c models.Category
		if err := rows.Scan(&c.ID, &c.Name, &c.Description, &c.Icon); err != nil {
			return nil, fmt.Errorf("scan category: %w", err)
		}
		categories = append(categories, c)
	}
	if err := rows.Err(); err != nil {
		return nil, storeError("iterate category rows", err, nil)
	}
	return categories, nil
}

func (r *PostgresCategoryRepository) GetByID(ctx context.Context, id int) (models.Category, error) {
	query, args, err := db.QB.Select("id", "name", "description", "icon").From("categories").Where(sq.Eq{"id": id}).ToSql()
	if err != nil {
		return models.Category{}, fmt.Errorf("build category query: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	var c models.Category
	err = r.pool.QueryRow(ctx, query, args...).Scan(&c.ID, &c.Name, &c.Description, &c.Icon)
	if errors.Is(err, pgx.ErrNoRows) {
		return models.Category{}, ErrCategoryNotFound
	}
	if err != nil {
		return models.Category{}, storeError("query category", err, nil)
	}
	return c, nil
}

func (r *PostgresCategoryRepository) Update(ctx context.Context, c models.Category) (models.Category, error) {
	query, args, err := db.QB.
		Update("categories").
		Set("name", c.Name).
		Set("description", c.Description).
		Set("icon", c.Icon).
		Where(sq.Eq{"id": c.ID}).
		ToSql()
	if err != nil {
		return models.Category{}, fmt.Errorf("build update category query: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	tag, err := r.pool.Exec(ctx, query, args...)
	if err != nil {
		return models.Category{}, storeError("update category", err, nil)
	}
	if tag.RowsAffected() == 0 {
		return models.Category{}, ErrCategoryNotFound
	}
	return c, nil
}

// Delete relies on the ON DELETE SET NULL foreign key to detach products.
func (r *PostgresCategoryRepository) Delete(ctx context.Context, id int) error {
	query, args, err := db.QB.Delete("categories").Where(sq.Eq{"id": id}).ToSql()
	if err != nil {
		return fmt.Errorf("build delete category query: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	tag, err := r.pool.Exec(ctx, query, args...)
	if err != nil {
		return storeError("delete category", err, nil)
	}
	if tag.RowsAffected() == 0 {
		return ErrCategoryNotFound
	}
	return nil
}
