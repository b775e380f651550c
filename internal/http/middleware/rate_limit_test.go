package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	mw "github.com/rogerio-castellano/stock-manager/internal/http/middleware"
	rl "github.com/rogerio-castellano/stock-manager/internal/http/rate_limiter"
	"github.com/stretchr/testify/assert"
)

func TestRateLimit(t *testing.T) {
	h := mw.RateLimit(rl.NewVisitors(0.001, 1))(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))

	call := func() *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodPost, "/", nil)
		req.RemoteAddr = "192.0.2.1:1234"
		w := httptest.NewRecorder()
		h.ServeHTTP(w, req)
		return w
	}

	assert.Equal(t, http.StatusOK, call().Code)
	w := call()
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.Equal(t, "1", w.Header().Get("Retry-After"))
}
