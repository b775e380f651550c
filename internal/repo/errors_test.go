package repo

import (
	"context"
	"errors"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
)

func TestStoreError(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want error
	}{
		{name: "connection failure", err: &pgconn.PgError{Code: "08006"}, want: ErrStoreUnavailable},
		{name: "admin shutdown", err: &pgconn.PgError{Code: "57P01"}, want: ErrStoreUnavailable},
		{name: "too many connections", err: &pgconn.PgError{Code: "53300"}, want: ErrStoreUnavailable},
		{name: "deadline", err: context.DeadlineExceeded, want: ErrStoreUnavailable},
		{name: "unique violation", err: &pgconn.PgError{Code: "23505"}, want: ErrDuplicatedValueUnique},
		{name: "foreign key violation", err: &pgconn.PgError{Code: "23503"}, want: ErrCategoryNotFound},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := storeError("op", tc.err, ErrCategoryNotFound)
			assert.ErrorIs(t, err, tc.want)
		})
	}
}

func TestStoreError_Passthrough(t *testing.T) {
	assert.NoError(t, storeError("op", nil, nil))

	plain := errors.New("syntax error")
	err := storeError("select products", plain, nil)
	assert.ErrorIs(t, err, plain)
	assert.NotErrorIs(t, err, ErrStoreUnavailable)
	assert.EqualError(t, err, "select products: syntax error")

	fk := storeError("insert product", &pgconn.PgError{Code: "23503"}, nil)
	assert.NotErrorIs(t, fk, ErrCategoryNotFound)
}
