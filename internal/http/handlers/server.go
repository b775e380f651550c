package handlers

import (
	"context"

	"github.com/rogerio-castellano/stock-manager/internal/auth"
	"github.com/rogerio-castellano/stock-manager/internal/models"
	repo "github.com/rogerio-castellano/stock-manager/internal/repo"
	"github.com/rogerio-castellano/stock-manager/internal/stats"
)

// StatsComputer produces the dashboard snapshot.
type StatsComputer interface {
	ComputeStats(ctx context.Context) (stats.Snapshot, error)
}

type TokenIssuer interface {
	IssuePair(ctx context.Context, user models.User) (auth.TokenPair, error)
	Refresh(ctx context.Context, refreshToken string) (string, error)
}

var (
	productRepo  repo.ProductRepository
	categoryRepo repo.CategoryRepository
	userRepo     repo.UserRepository
	statsService StatsComputer
	tokenIssuer  TokenIssuer
)

func SetProductRepo(r repo.ProductRepository) {
	productRepo = r
}

func SetCategoryRepo(r repo.CategoryRepository) {
	categoryRepo = r
}

func SetUserRepo(r repo.UserRepository) {
	userRepo = r
}

func SetStatsService(s StatsComputer) {
	statsService = s
}

func SetTokenIssuer(i TokenIssuer) {
	tokenIssuer = i
}
