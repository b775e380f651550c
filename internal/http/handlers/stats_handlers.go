package handlers

import (
	"errors"
	"net/http"

	repo "github.com/rogerio-castellano/stock-manager/internal/repo"
	"github.com/sirupsen/logrus"
)

const statsRetryAfterSeconds = "5"

// GetStatsHandler godoc
// @Summary Dashboard statistics
// @Description Summary metrics and chart series computed from the live catalog.
// @Tags stats
// @Produce json
// @Security BearerAuth
// @Success 200 {object} stats.Snapshot
// @Failure 401 {string} string "Unauthorized"
// @Failure 500 {string} string "Internal error"
// @Failure 503 {string} string "Store unavailable"
// @Router /api/v1/stats/ [get]
func GetStatsHandler(w http.ResponseWriter, r *http.Request) {
	snapshot, err := statsService.ComputeStats(r.Context())
	if err != nil {
		if errors.Is(err, repo.ErrStoreUnavailable) {
			logrus.WithError(err).Warn("stats store unavailable")
			w.Header().Set("Retry-After", statsRetryAfterSeconds)
			http.Error(w, "statistics temporarily unavailable", http.StatusServiceUnavailable)
			return
		}
		logrus.WithError(err).Error("compute stats")
		http.Error(w, "could not compute statistics", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, snapshot)
}
