package repo

import (
	"context"
	"errors"
	"fmt"
	"net"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
)

var (
	// ErrProductNotFound is returned when a product is not found in the repository.
	ErrProductNotFound = errors.New("product not found")
	// ErrCategoryNotFound is returned when a category is not found or a product references a missing one.
	ErrCategoryNotFound = errors.New("category not found")
	ErrUserNotFound     = errors.New("user not found")

	ErrDuplicatedValueUnique = errors.New("duplicated value violates unique constraint")

	// ErrStoreUnavailable marks transient store failures; callers may retry with backoff.
	ErrStoreUnavailable = errors.New("store unavailable")
)

const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
	pgTooManyConnections  = "53300"
)

// storeError wraps err with op and maps driver failures onto the repository sentinels.
// notFound is used for foreign key violations.
func storeError(op string, err error, notFound error) error {
	if err == nil {
		return nil
	}
	if isTransient(err) {
		return fmt.Errorf("%s: %w: %w", op, ErrStoreUnavailable, err)
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgUniqueViolation:
			return fmt.Errorf("%s: %w", op, ErrDuplicatedValueUnique)
		case pgForeignKeyViolation:
			if notFound != nil {
				return fmt.Errorf("%s: %w", op, notFound)
			}
		}
	}
	return fmt.Errorf("%s: %w", op, err)
}

func isTransient(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) || pgconn.Timeout(err) || pgconn.SafeToRetry(err) {
		return true
	}

	var connErr *pgconn.ConnectError
	if errors.As(err, &connErr) {
		return true
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		// class 08 is connection exception, 57P0x is operator intervention
		return strings.HasPrefix(pgErr.Code, "08") ||
			strings.HasPrefix(pgErr.Code, "57P0") ||
			pgErr.Code == pgTooManyConnections
	}

	var netErr net.Error
	return errors.As(err, &netErr)
}
