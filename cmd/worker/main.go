package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/vuelachile/schedgen/config"
	"github.com/vuelachile/schedgen/internal/cache"
	"github.com/vuelachile/schedgen/internal/catalog"
	"github.com/vuelachile/schedgen/internal/generator"
	"github.com/vuelachile/schedgen/internal/kafka"
	"github.com/vuelachile/schedgen/internal/logging"
	"github.com/vuelachile/schedgen/internal/metrics"
	"github.com/vuelachile/schedgen/internal/notify"
	"github.com/vuelachile/schedgen/internal/repository"
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

	scheduleService := schedule.NewScheduleService(
		catalog.NewPGLoader(pool),
		generator.New(generatorConfig(cfg.Generator)),
		repository.NewScheduleSink(pool),
		schedule.WithCache(redisCache),
		schedule.WithProducer(producer, cfg.Kafka.ScheduleTopic),
		schedule.WithMetrics(registry),
	)

	// Regeneration requests arrive over the bus as well as on the timer.
	requests := kafka.NewConsumer(cfg.Kafka.Brokers, cfg.Kafka.GroupID, cfg.Kafka.RequestsTopic)
	defer requests.Close()
	go func() {
		if err := requests.Consume(ctx, func(ctx context.Context, event kafka.ScheduleEvent) error {
			runOnce(ctx, scheduleService, cfg.Generator, event.HorizonDays, event.Seed)
			return nil
		}); err != nil {
			logging.L().Infow("requests consumer stopped", "error", err)
		}
	}()

	// Completed-run events fan out to the operator notifier.
	events := kafka.NewConsumer(cfg.Kafka.Brokers, cfg.Kafka.GroupID, cfg.Kafka.ScheduleTopic)
	defer events.Close()
	sender := notify.NewSender()
	go func() {
		if err := events.Consume(ctx, func(ctx context.Context, event kafka.ScheduleEvent) error {
			return sender.Send(ctx, event)
		}); err != nil {
			logging.L().Infow("events consumer stopped", "error", err)
		}
	}()

	regenerateEvery := 24 * time.Hour
	if cfg.Worker.RegenerateHours > 0 {
		regenerateEvery = time.Duration(cfg.Worker.RegenerateHours) * time.Hour
	}
	ticker := time.NewTicker(regenerateEvery)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			runOnce(ctx, scheduleService, cfg.Generator, cfg.Generator.HorizonDays, cfg.Generator.Seed)
		case <-ctx.Done():
			logging.L().Infow("worker shutting down")
			return
		}
	}
}

func runOnce(ctx context.Context, svc schedule.ScheduleUseCase, cfg config.GeneratorConfig, horizonDays int, seed int64) {
	if horizonDays <= 0 {
		horizonDays = 7
	}
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	params := generator.RunParams{
		HorizonDays:    horizonDays,
		Seed:           seed,
		Currency:       cfg.Currency,
		LoadFactorMax:  cfg.LoadFactorMax,
		PriceVariation: cfg.PriceVariation,
	}
	// Config zero means "use the default rate"; an explicit zero rate is
	// only expressible through the API.
	if cfg.TaxRate > 0 {
		params.TaxRate = &cfg.TaxRate
	}
	manifest, err := svc.Generate(ctx, params)
	if err != nil {
		logging.L().Errorw("generation run failed", "horizon_days", horizonDays, "seed", seed, "error", err)
		return
	}
	logging.L().Infow("generation run finished", "run_id", manifest.RunID, "flights", manifest.FlightCount)
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
