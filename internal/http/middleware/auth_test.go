package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/rogerio-castellano/stock-manager/internal/auth"
	mw "github.com/rogerio-castellano/stock-manager/internal/http/middleware"
	"github.com/rogerio-castellano/stock-manager/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func tokenFor(t *testing.T, issuer *auth.Issuer, roles ...string) string {
	t.Helper()
	token, err := issuer.GenerateAccessToken(models.User{ID: 3, Username: "someone", Roles: roles})
	require.NoError(t, err)
	return token
}

func serve(h http.Handler, method, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, "/", nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

func TestAuthMiddleware(t *testing.T) {
	issuer, err := auth.NewIssuer("secret", time.Minute, time.Hour, auth.NewInMemoryRefreshStore())
	require.NoError(t, err)
	mw.SetTokenParser(issuer)

	var seen auth.Identity
	h := mw.AuthMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen, _ = mw.IdentityFromContext(r.Context())
	}))

	assert.Equal(t, http.StatusUnauthorized, serve(h, http.MethodGet, "").Code)
	assert.Equal(t, http.StatusUnauthorized, serve(h, http.MethodGet, "garbage").Code)

	w := serve(h, http.MethodGet, tokenFor(t, issuer, models.RoleReader))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 3, seen.UserID)
	assert.Equal(t, "someone", seen.Username)
}

func TestRequireManagerForWrites(t *testing.T) {
	issuer, err := auth.NewIssuer("secret", time.Minute, time.Hour, auth.NewInMemoryRefreshStore())
	require.NoError(t, err)
	mw.SetTokenParser(issuer)

	h := mw.AuthMiddleware(mw.RequireManagerForWrites(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})))

	reader := tokenFor(t, issuer, models.RoleReader)
	manager := tokenFor(t, issuer, models.RoleManager)
	admin := tokenFor(t, issuer, models.RoleAdmin)

	cases := []struct {
		method string
		token  string
		want   int
	}{
		{http.MethodGet, reader, http.StatusNoContent},
		{http.MethodHead, reader, http.StatusNoContent},
		{http.MethodPost, reader, http.StatusForbidden},
		{http.MethodDelete, reader, http.StatusForbidden},
		{http.MethodPost, manager, http.StatusNoContent},
		{http.MethodPut, admin, http.StatusNoContent},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, serve(h, tc.method, tc.token).Code, tc.method)
	}
}
