package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/vuelachile/schedgen/config"
	"github.com/vuelachile/schedgen/internal/bootstrap"
	"github.com/vuelachile/schedgen/internal/cache"
	"github.com/vuelachile/schedgen/internal/catalog"
	"github.com/vuelachile/schedgen/internal/generator"
	"github.com/vuelachile/schedgen/internal/kafka"
	"github.com/vuelachile/schedgen/internal/logging"
	"github.com/vuelachile/schedgen/internal/metrics"
	"github.com/vuelachile/schedgen/internal/repository"
	"github.com/vuelachile/schedgen/internal/service/flights"
	"github.com/vuelachile/schedgen/internal/service/schedule"
)

func main() {
	appEnv := os.Getenv("APP_ENV")
	if appEnv == "" {
		appEnv = "development"
	}
	if err := logging.Init(appEnv); err != nil {
		os.Exit(1)
	}
	defer logging.Close()

	cfgPath := os.Getenv("CONFIG_PATH")
	if cfgPath == "" {
		cfgPath = "config.yaml"
	}
	cfg, err := config.LoadConfig(cfgPath)
	if err != nil {
		logging.L().Fatalw("load config", "error", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	pool, err := pgxpool.New(ctx, cfg.Database.DSN())
	if err != nil {
		logging.L().Fatalw("connect postgres", "error", err)
	}
	defer pool.Close()

	redisCache := cache.NewRedisCache(cfg.Redis, time.Duration(cfg.Generator.FlightsCacheTTL)*time.Second)
	producer := kafka.NewProducer(cfg.Kafka.Brokers)
	defer producer.Close()
	registry := metrics.NewRegistry()

	flightRepo := repository.NewFlightRepository(pool)
	flightService := flights.NewFlightService(flightRepo, redisCache)

	scheduleService := schedule.NewScheduleService(
		catalog.NewPGLoader(pool),
		generator.New(generatorConfig(cfg.Generator)),
		repository.NewScheduleSink(pool),
		schedule.WithCache(redisCache),
		schedule.WithProducer(producer, cfg.Kafka.ScheduleTopic),
		schedule.WithMetrics(registry),
	)

	logging.L().Infow("server starting", "address", cfg.HTTP.Address, "environment", appEnv)
	if err := bootstrap.Run(ctx, cfg, flightService, scheduleService); err != nil {
		logging.L().Fatalw("server error", "error", err)
	}
}

func generatorConfig(cfg config.GeneratorConfig) generator.Config {
	gen := generator.DefaultConfig()
	if cfg.FirstDepartureHour > 0 {
		gen.FirstDepartureHour = cfg.FirstDepartureHour
	}
	if cfg.SlotSpacingMinutes > 0 {
		gen.SlotSpacing = time.Duration(cfg.SlotSpacingMinutes) * time.Minute
	}
	if cfg.DepartureJitterMin > 0 {
		gen.DepartureJitter = time.Duration(cfg.DepartureJitterMin) * time.Minute
	}
	if cfg.ShortHaulMaxMinutes > 0 {
		gen.ShortHaulMax = time.Duration(cfg.ShortHaulMaxMinutes) * time.Minute
	}
	return gen
}
