package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"fittrack/internal/adapter/memory"
	"fittrack/internal/adapter/postgres"
	"fittrack/internal/adapter/redis"
	"fittrack/internal/adapter/sqlite"
	"fittrack/internal/app"
	"fittrack/internal/config"
	"fittrack/internal/domain"
	"fittrack/internal/repository"
	"fittrack/internal/store"
	"fittrack/internal/workout"
)

type loader func() config.Config

// env is the wired application for one command invocation.
type env struct {
	cfg          config.Config
	logger       *log.Logger
	store        *store.Store
	db           *repository.DB
	progress     *app.ProgressService
	measurements *app.MeasurementService
	profiles     *app.ProfileService
}

func (e *env) engine(opts ...workout.Option) *workout.Engine {
	base := []workout.Option{
		workout.WithExerciseTypes(e.db),
		workout.WithEvaluator(e.progress),
		workout.WithLogger(e.logger),
		workout.WithDefaults(e.cfg.PrepSeconds, e.cfg.RestSeconds),
		workout.WithCaloriesPerMinute(e.cfg.CaloriesPerMinute),
	}
	return workout.NewEngine(e.db, e.db, append(base, opts...)...)
}

func withEnv(ctx context.Context, load loader, run func(*env) error) error {
	cfg := load()
	logger := log.New(os.Stderr, "", log.LstdFlags)

	sub, closeFn, err := openSubstrate(ctx, cfg)
	if err != nil {
		return err
	}
	defer func() {
		if err := closeFn(); err != nil {
			logger.Printf("close store: %v", err)
		}
	}()

	st := store.New(sub,
		store.WithNamespace(cfg.StoreNamespace),
		store.WithCapacity(cfg.StoreQuotaBytes),
		store.WithLogger(logger),
	)
	db := repository.New(st)
	defaults := domain.Preferences{PreparationSeconds: cfg.PrepSeconds, RestSeconds: cfg.RestSeconds}
	return run(&env{
		cfg:          cfg,
		logger:       logger,
		store:        st,
		db:           db,
		progress:     app.NewProgressService(db, db, db).WithLogger(logger),
		measurements: app.NewMeasurementService(db),
		profiles:     app.NewProfileService(db, defaults),
	})
}

func openSubstrate(ctx context.Context, cfg config.Config) (store.Substrate, func() error, error) {
	switch cfg.StoreDriver {
	case config.DriverSQLite:
		db, err := sqlite.Open(cfg.SQLitePath)
		if err != nil {
			return nil, nil, fmt.Errorf("open sqlite: %w", err)
		}
		return db, db.Close, nil
	case config.DriverMemory:
		return memory.New(), func() error { return nil }, nil
	case config.DriverPostgres:
		if cfg.DatabaseURL == "" {
			return nil, nil, errors.New("DATABASE_URL is required for the postgres driver")
		}
		db, err := postgres.Open(cfg.DatabaseURL)
		if err != nil {
			return nil, nil, fmt.Errorf("open postgres: %w", err)
		}
		return db, db.Close, nil
	case config.DriverRedis:
		db, err := redis.Open(ctx, redis.Options{Addr: cfg.RedisAddr, Password: cfg.RedisPassword, DB: cfg.RedisDB})
		if err != nil {
			return nil, nil, fmt.Errorf("open redis: %w", err)
		}
		return db, db.Close, nil
	}
	return nil, nil, fmt.Errorf("unknown store driver %q", cfg.StoreDriver)
}

func parseDateOrToday(date string) (time.Time, error) {
	date = strings.TrimSpace(date)
	if date == "" {
		return time.Now(), nil
	}
	t, err := time.ParseInLocation(domain.DayLayout, date, time.Local)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid --date %q (expected YYYY-MM-DD)", date)
	}
	return t.Add(12 * time.Hour), nil
}

func requireFlag(name, value string) error {
	if strings.TrimSpace(value) == "" {
		return fmt.Errorf("--%s is required", name)
	}
	return nil
}
