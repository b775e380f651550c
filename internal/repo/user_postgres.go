package repo

import (
	"context"
	"errors"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rogerio-castellano/stock-manager/internal/db"
	"github.com/rogerio-castellano/stock-manager/internal/models"
)

var userColumns = []string{
	"id", "username", "email", "first_name", "last_name", "password_hash", "roles", "created_at", "updated_at",
}

type PostgresUserRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresUserRepository returns error if pool is nil.
func NewPostgresUserRepository(pool *pgxpool.Pool) (*PostgresUserRepository, error) {
	if pool == nil {
		return nil, errors.New("database pool is required")
	}
	return &PostgresUserRepository{pool: pool}, nil
}

func (r *PostgresUserRepository) getBy(ctx context.Context, where sq.Eq) (models.User, error) {
	query, args, err := db.QB.Select(userColumns...).From("users").Where(where).ToSql()
	if err != nil {
		return models.User{}, fmt.Errorf("build user query: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	var u models.User
	err = r.pool.QueryRow(ctx, query, args...).Scan(
		&u.ID, &u.Username, &u.Email, &u.FirstName, &u.LastName, &u.PasswordHash, &u.Roles, &u.CreatedAt, &u.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return models.User{}, ErrUserNotFound
	}
	if err != nil {
		return models.User{}, storeError("query user", err, nil)
	}
	return u, nil
}

func (r *PostgresUserRepository) GetByUsername(ctx context.Context, username string) (models.User, error) {
	return r.getBy(ctx, sq.Eq{"username": username})
}

func (r *PostgresUserRepository) GetByID(ctx context.Context, id int) (models.User, error) {
	return r.getBy(ctx, sq.Eq{"id": id})
}

func (r *PostgresUserRepository) CreateUser(ctx context.Context, u models.User) (models.User, error) {
	now := time.Now().UTC()
	if u.Roles == nil {
		u.Roles = []string{}
	}

	query, args, err := db.QB.
		Insert("users").
		Columns("username", "email", "first_name", "last_name", "password_hash", "roles", "created_at", "updated_at").
		Values(u.Username, u.Email, u.FirstName, u.LastName, u.PasswordHash, u.Roles, now, now).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return models.User{}, fmt.Errorf("build insert user query: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	if err := r.pool.QueryRow(ctx, query, args...).Scan(&u.ID); err != nil {
		return models.User{}, storeError("insert user", err, nil)
	}
	u.CreatedAt, u.UpdatedAt = now, now
	return u, nil
}

func (r *PostgresUserRepository) UpdateUser(ctx context.Context, u models.User) (models.User, error) {
	u.UpdatedAt = time.Now().UTC()

	query, args, err := db.QB.
		Update("users").
		SetMap(map[string]any{
			"username":      u.Username,
			"email":         u.Email,
			"first_name":    u.FirstName,
			"last_name":     u.LastName,
			"password_hash": u.PasswordHash,
			"roles":         u.Roles,
			"updated_at":    u.UpdatedAt,
		}).
		Where(sq.Eq{"id": u.ID}).
		ToSql()
	if err != nil {
		return models.User{}, fmt.Errorf("build update user query: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	tag, err := r.pool.Exec(ctx, query, args...)
	if err != nil {
		return models.User{}, storeError("update user", err, nil)
	}
	if tag.RowsAffected() == 0 {
		return models.User{}, ErrUserNotFound
	}
	return u, nil
}
