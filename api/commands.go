package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"slices"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rogerio-castellano/stock-manager/internal/auth"
	"github.com/rogerio-castellano/stock-manager/internal/db"
	"github.com/rogerio-castellano/stock-manager/internal/http/handlers"
	mw "github.com/rogerio-castellano/stock-manager/internal/http/middleware"
	rl "github.com/rogerio-castellano/stock-manager/internal/http/rate_limiter"
	"github.com/rogerio-castellano/stock-manager/internal/http/router"
	"github.com/rogerio-castellano/stock-manager/internal/models"
	"github.com/rogerio-castellano/stock-manager/internal/redissvc"
	"github.com/rogerio-castellano/stock-manager/internal/repo"
	"github.com/rogerio-castellano/stock-manager/internal/stats"
	"github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"
	"golang.org/x/crypto/bcrypt"
	"golang.org/x/sync/errgroup"
)

type stores struct {
	pool       *pgxpool.Pool
	products   *repo.PostgresProductRepository
	categories *repo.PostgresCategoryRepository
	users      *repo.PostgresUserRepository
	stats      *repo.PostgresStatsRepository
	history    *repo.PostgresHistoryRepository
}

func openStores(ctx context.Context) (*stores, error) {
	pool, err := db.Connect(ctx, cfg.Database.URL)
	if err != nil {
		return nil, err
	}

	s := &stores{pool: pool}
	var errs [5]error
	s.products, errs[0] = repo.NewPostgresProductRepository(pool)
	s.categories, errs[1] = repo.NewPostgresCategoryRepository(pool)
	s.users, errs[2] = repo.NewPostgresUserRepository(pool)
	s.stats, errs[3] = repo.NewPostgresStatsRepository(pool)
	s.history, errs[4] = repo.NewPostgresHistoryRepository(pool)
	if err := errors.Join(errs[:]...); err != nil {
		pool.Close()
		return nil, err
	}
	return s, nil
}

// connectRedis returns nil when no address is configured.
func connectRedis(ctx context.Context) (*redissvc.RedisService, error) {
	if cfg.Redis.Addr == "" {
		return nil, nil
	}
	return redissvc.Connect(ctx, cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
}

func newRecorder(s *stores, rs *redissvc.RedisService) (*stats.Recorder, error) {
	var locker stats.DayLocker
	if rs != nil {
		locker = rs
	}
	return stats.NewRecorder(s.stats, s.history, locker)
}

func serve(c *cli.Context) error {
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	ctx, stop := signal.NotifyContext(c.Context, os.Interrupt, syscall.SIGTERM)
	defer stop()

	s, err := openStores(ctx)
	if err != nil {
		return err
	}
	defer s.pool.Close()

	rs, err := connectRedis(ctx)
	if err != nil {
		return err
	}

	var refreshStore auth.RefreshStore
	if rs != nil {
		defer rs.Close()
		refreshStore = auth.NewRedisRefreshStore(rs.Rdb())
	} else {
		logrus.Warn("redis not configured; refresh tokens are kept in memory")
		mem := auth.NewInMemoryRefreshStore()
		go mem.StartCleaner(ctx, 30*time.Minute)
		refreshStore = mem
	}

	issuer, err := auth.NewIssuer(cfg.Auth.JWTSecret, cfg.Auth.AccessTTL, cfg.Auth.RefreshTTL, refreshStore)
	if err != nil {
		return err
	}
	statsService, err := stats.NewService(s.stats, s.history)
	if err != nil {
		return err
	}
	recorder, err := newRecorder(s, rs)
	if err != nil {
		return err
	}

	handlers.SetProductRepo(s.products)
	handlers.SetCategoryRepo(s.categories)
	handlers.SetUserRepo(s.users)
	handlers.SetStatsService(statsService)
	handlers.SetTokenIssuer(issuer)
	mw.SetTokenParser(issuer)

	visitors := rl.NewVisitors(cfg.Auth.RateLimit, cfg.Auth.RateBurst)
	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      router.NewRouter(router.WithAuthRateLimit(visitors), router.WithRequestLogging()),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logrus.WithField("addr", server.Addr).Info("starting server")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		return recorder.Run(gctx, cfg.Stats.SnapshotInterval)
	})
	g.Go(func() error {
		visitors.StartCleanupLoop(gctx)
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		logrus.Info("shutting down server")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("server shutdown failed: %w", err)
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		return err
	}
	logrus.Info("server stopped")
	return nil
}

func migrate(c *cli.Context) error {
	pool, err := db.Connect(c.Context, cfg.Database.URL)
	if err != nil {
		return err
	}
	defer pool.Close()

	return db.Migrate(c.Context, pool, c.Args().First())
}

func snapshot(c *cli.Context) error {
	s, err := openStores(c.Context)
	if err != nil {
		return err
	}
	defer s.pool.Close()

	rs, err := connectRedis(c.Context)
	if err != nil {
		return err
	}
	if rs != nil {
		defer rs.Close()
	}

	recorder, err := newRecorder(s, rs)
	if err != nil {
		return err
	}
	recorded, err := recorder.RecordOnce(c.Context)
	if err != nil {
		return err
	}
	logrus.WithField("recorded", recorded).Info("stock value snapshot done")
	return nil
}

func createUser(c *cli.Context) error {
	role := c.String("role")
	if !slices.Contains([]string{models.RoleAdmin, models.RoleManager, models.RoleReader}, role) {
		return fmt.Errorf("unknown role %q", role)
	}

	s, err := openStores(c.Context)
	if err != nil {
		return err
	}
	defer s.pool.Close()

	hashed, err := bcrypt.GenerateFromPassword([]byte(c.String("password")), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}

	user, err := s.users.CreateUser(c.Context, models.User{
		Username:     c.String("username"),
		Email:        c.String("email"),
		PasswordHash: string(hashed),
		Roles:        []string{role},
	})
	if err != nil {
		return err
	}
	logrus.WithFields(logrus.Fields{"id": user.ID, "username": user.Username, "role": role}).Info("user created")
	return nil
}
