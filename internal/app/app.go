package app

import (
	"context"
	"fmt"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/go-redis/redis/v8"
	"github.com/sirupsen/logrus"

	"github.com/innergy-app/innergy-core/internal/config"
	"github.com/innergy-app/innergy-core/internal/server"
	"github.com/innergy-app/innergy-core/pkg/calendar"
	"github.com/innergy-app/innergy-core/pkg/common"
	"github.com/innergy-app/innergy-core/pkg/handler"
	"github.com/innergy-app/innergy-core/pkg/service"
	"github.com/innergy-app/innergy-core/pkg/streak"
	"github.com/innergy-app/innergy-core/pkg/trend"
)

// App holds all application dependencies and manages the application
// lifecycle.
type App struct {
	cfg               *config.Config
	httpServer        *server.HTTPServer
	metricsServer     *server.MetricsServer
	redisClient       *redis.Client
	shutdownTelemetry func(context.Context) error
}

// New creates and initializes a new application instance. Components are
// initialized in dependency order: Redis, category config, stores, the
// tracking engines, servers, telemetry.
func New(ctx context.Context, cfg *config.Config) (*App, error) {
	logrus.Info("initializing application...")

	app := &App{cfg: cfg}

	if err := app.initRedis(ctx); err != nil {
		return nil, fmt.Errorf("failed to init Redis: %w", err)
	}

	categories, err := streak.LoadConfig(cfg.ConfigPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load category config from %s: %w", cfg.ConfigPath, err)
	}
	logrus.Infof("loaded category configuration from %s", cfg.ConfigPath)

	streakStore := service.NewRedisStreakStore(app.redisClient, service.RedisStreakStoreConfig{})
	recoveryStore := service.NewRedisRecoveryStore(app.redisClient, service.RedisRecoveryStoreConfig{})
	energyStore := service.NewRedisEnergyHistoryStore(app.redisClient, service.RedisEnergyHistoryStoreConfig{})

	clock := calendar.SystemClock{}
	locks := common.NewKeyedMutex()

	freezes := streak.NewFreezeManager(recoveryStore, clock, locks, streak.FreezeManagerConfig{})
	engine := streak.NewEngine(streakStore, freezes, categories, clock, locks)
	energy := trend.NewAggregator(energyStore, trend.NewClassifier(trend.ClassifierConfig{}), locks)

	h := handler.New(engine, freezes, energy, clock, service.NewHealthChecker(app.redisClient))

	app.httpServer = server.NewHTTPServer(cfg.HTTPPort, h)
	if err := app.httpServer.Setup(cfg.Environment); err != nil {
		return nil, fmt.Errorf("failed to setup http server: %w", err)
	}

	app.metricsServer = server.NewMetricsServer(cfg.MetricsPort, "/metrics")
	if err := app.metricsServer.Setup(); err != nil {
		return nil, fmt.Errorf("failed to setup metrics server: %w", err)
	}

	if cfg.OtelEnabled {
		shutdownTelemetry, err := server.SetupTelemetry(ctx, cfg.OtelServiceName, cfg.Environment, 0)
		if err != nil {
			return nil, fmt.Errorf("failed to setup telemetry: %w", err)
		}
		app.shutdownTelemetry = shutdownTelemetry
	}

	logrus.Info("application initialized successfully")

	return app, nil
}

// initRedis initializes the Redis client, retrying the initial ping with
// exponential backoff.
func (a *App) initRedis(ctx context.Context) error {
	client := redis.NewClient(&redis.Options{
		Addr:         a.cfg.RedisHost + ":" + a.cfg.RedisPort,
		Password:     a.cfg.RedisPassword,
		DB:           0, // use default DB
		MaxRetries:   3,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
	})

	b := backoff.NewExponentialBackOff()
	maxRetries := backoff.WithMaxRetries(b, uint64(a.cfg.RedisMaxRetries))

	err := backoff.Retry(
		func() error {
			_, err := client.Ping(ctx).Result()
			if err != nil {
				logrus.Warnf("Redis connection failed: %v, retrying...", err)
				return err
			}
			return nil
		},
		maxRetries,
	)

	if err != nil {
		return err
	}

	a.redisClient = client
	logrus.Info("Redis client initialized")
	return nil
}
