package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/kegworks/taproom-backend/internal/drinks"
	"github.com/kegworks/taproom-backend/internal/kegs"
	"github.com/kegworks/taproom-backend/internal/sweep"
	"github.com/kegworks/taproom-backend/pkg/config"
	"github.com/kegworks/taproom-backend/pkg/db"
	"github.com/kegworks/taproom-backend/pkg/logger"
	"github.com/kegworks/taproom-backend/pkg/metrics"
	"github.com/kegworks/taproom-backend/pkg/migrate"
	"github.com/kegworks/taproom-backend/pkg/redis"
)

const lockKeyFormat = "taproom:sweep-worker:lock:%s"

func main() {
	logg := logger.New(logger.Options{ServiceName: "sweep-worker"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "sweep-worker",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	dbClient, err := db.New(context.Background(), cfg.DB, cfg.FeatureFlags.UseSQLite, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap database", err)
		os.Exit(1)
	}
	defer func() {
		if err := dbClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing database", err)
		}
	}()

	if err := migrate.MaybeRunDev(context.Background(), cfg, logg, dbClient); err != nil {
		logg.Error(context.Background(), "failed to run dev migrations", err)
		os.Exit(1)
	}

	var lock sweep.Lock
	if cfg.FeatureFlags.UseSQLite {
		lock = sweep.NewLocalLock()
	} else {
		redisClient, err := redis.New(context.Background(), cfg.Redis, logg)
		if err != nil {
			logg.Error(context.Background(), "failed to bootstrap redis", err)
			os.Exit(1)
		}
		defer func() {
			if err := redisClient.Close(); err != nil {
				logg.Error(context.Background(), "error closing redis", err)
			}
		}()
		redisLock, err := sweep.NewRedisLock(redisClient, lockKey(cfg.App.Env), cfg.Sweep.LockTTL)
		if err != nil {
			logg.Error(context.Background(), "failed to create sweep lock", err)
			os.Exit(1)
		}
		lock = redisLock
	}

	kegsRepo := kegs.NewRepository(dbClient.DB())
	kegsService, err := kegs.NewService(kegsRepo)
	if err != nil {
		logg.Error(context.Background(), "failed to create kegs service", err)
		os.Exit(1)
	}

	grantExpiry, err := sweep.NewGrantExpiryJob(sweep.GrantExpiryJobParams{
		Logger: logg,
		DB:     dbClient,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create grant expiry job", err)
		os.Exit(1)
	}
	kegDepletion, err := sweep.NewKegDepletionJob(sweep.KegDepletionJobParams{
		Logger:  logg,
		Kegs:    kegsRepo,
		Volumes: drinks.NewRepository(dbClient.DB()),
		Status:  kegsService,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create keg depletion job", err)
		os.Exit(1)
	}

	service, err := sweep.NewService(sweep.ServiceParams{
		Logger:   logg,
		Registry: sweep.NewRegistry(grantExpiry, kegDepletion),
		Lock:     lock,
		Metrics:  metrics.NewSweepJobMetrics(prometheus.DefaultRegisterer),
		Interval: cfg.Sweep.Interval,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create sweep service", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	ctx = logg.WithFields(ctx, map[string]any{"env": cfg.App.Env})
	logg.Info(ctx, "starting sweep worker")

	if err := service.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		logg.Error(ctx, "sweep worker stopped unexpectedly", err)
		os.Exit(1)
	}

	logg.Info(ctx, "sweep worker shutting down gracefully")
}

func lockKey(env string) string {
	if env == "" {
		env = "local"
	}
	return fmt.Sprintf(lockKeyFormat, env)
}
