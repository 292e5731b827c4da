package main

import (
	"context"
	"net/http"
	"os"

	"github.com/joho/godotenv"
	"github.com/kegworks/taproom-backend/api/controllers"
	"github.com/kegworks/taproom-backend/api/routes"
	"github.com/kegworks/taproom-backend/internal/bac"
	"github.com/kegworks/taproom-backend/internal/binge"
	"github.com/kegworks/taproom-backend/internal/drinks"
	"github.com/kegworks/taproom-backend/internal/grants"
	"github.com/kegworks/taproom-backend/internal/kegs"
	"github.com/kegworks/taproom-backend/internal/policy"
	"github.com/kegworks/taproom-backend/internal/pour"
	"github.com/kegworks/taproom-backend/internal/users"
	"github.com/kegworks/taproom-backend/pkg/config"
	"github.com/kegworks/taproom-backend/pkg/db"
	"github.com/kegworks/taproom-backend/pkg/enums"
	"github.com/kegworks/taproom-backend/pkg/locks"
	"github.com/kegworks/taproom-backend/pkg/logger"
	"github.com/kegworks/taproom-backend/pkg/metrics"
	"github.com/kegworks/taproom-backend/pkg/migrate"
	"github.com/kegworks/taproom-backend/pkg/redis"
	"github.com/prometheus/client_golang/prometheus"
)

func main() {
	logg := logger.New(logger.Options{ServiceName: "api"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "api",
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

	// SQLite mode is single-process, so an in-memory locker is enough there.
	// Everything else serializes pours through Redis.
	var (
		locker      locks.Locker
		redisPinger controllers.Pinger
	)
	if cfg.FeatureFlags.UseSQLite {
		locker = locks.NewMutexLocker()
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
		redisLocker, err := locks.NewRedisLocker(redisClient, "taproom:pour", cfg.Pour.LockTTL)
		if err != nil {
			logg.Error(context.Background(), "failed to create redis locker", err)
			os.Exit(1)
		}
		locker = redisLocker
		redisPinger = redisClient
	}

	usersRepo := users.NewRepository(dbClient.DB())
	kegsRepo := kegs.NewRepository(dbClient.DB())
	drinksRepo := drinks.NewRepository(dbClient.DB())
	grantsRepo := grants.NewRepository(dbClient.DB())
	policiesRepo := policy.NewRepository(dbClient.DB())

	shortfall, err := enums.ParseShortfallPolicy(cfg.Pour.ShortfallPolicy)
	if err != nil {
		logg.Error(context.Background(), "invalid shortfall policy", err)
		os.Exit(1)
	}
	allocator, err := grants.NewAllocator(grantsRepo, shortfall)
	if err != nil {
		logg.Error(context.Background(), "failed to create allocator", err)
		os.Exit(1)
	}

	usersService, err := users.NewService(usersRepo)
	if err != nil {
		logg.Error(context.Background(), "failed to create users service", err)
		os.Exit(1)
	}
	kegsService, err := kegs.NewService(kegsRepo)
	if err != nil {
		logg.Error(context.Background(), "failed to create kegs service", err)
		os.Exit(1)
	}
	grantsService, err := grants.NewService(grantsRepo)
	if err != nil {
		logg.Error(context.Background(), "failed to create grants service", err)
		os.Exit(1)
	}
	policyService, err := policy.NewService(policiesRepo)
	if err != nil {
		logg.Error(context.Background(), "failed to create policy service", err)
		os.Exit(1)
	}
	bacService, err := bac.NewService(bac.NewRepository(dbClient.DB()), cfg.Pour.BACDecayPerHour)
	if err != nil {
		logg.Error(context.Background(), "failed to create bac service", err)
		os.Exit(1)
	}
	bingeService, err := binge.NewService(binge.NewRepository(dbClient.DB()), cfg.Pour.SessionGap)
	if err != nil {
		logg.Error(context.Background(), "failed to create session service", err)
		os.Exit(1)
	}

	processor, err := pour.NewProcessor(pour.Deps{
		DB:       dbClient,
		Locker:   locker,
		Users:    usersRepo,
		Kegs:     kegsRepo,
		Drinks:   drinksRepo,
		Grants:   grantsRepo,
		Policies: policiesRepo,

		Allocator: allocator,
		BAC:       bacService,
		Binges:    bingeService,
		Pricing:   policyService,

		Metrics: metrics.NewPourMetrics(prometheus.DefaultRegisterer),
		Logger:  logg,

		TicksPerLiter: cfg.Pour.TicksPerLiter,
		LockWait:      cfg.Pour.LockWait,
		StoreTimeout:  cfg.Pour.StoreTimeout,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create pour processor", err)
		os.Exit(1)
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.App.Port
	}
	addr := ":" + port
	ctx := logg.WithFields(context.Background(), map[string]any{
		"env":  cfg.App.Env,
		"addr": addr,
	})
	logg.Info(ctx, "starting api server")

	server := &http.Server{
		Addr: addr,
		Handler: routes.NewRouter(routes.Deps{
			Config: cfg,
			Logger: logg,

			DBPinger:    dbClient,
			RedisPinger: redisPinger,

			Processor:  processor,
			DrinksRepo: drinksRepo,

			Users:    usersService,
			Kegs:     kegsService,
			Grants:   grantsService,
			Policies: policyService,
			BAC:      bacService,
			Sessions: bingeService,
		}),
	}

	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logg.Error(ctx, "api server stopped unexpectedly", err)
		os.Exit(1)
	}
}
