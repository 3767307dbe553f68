package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"parcels/cmd"
	httpadapter "parcels/internal/adapters/in/http"
	kafkaadapter "parcels/internal/adapters/out/kafka"
	"parcels/internal/adapters/out/postgres"
	"parcels/internal/adapters/out/redis/geolookup"
	"parcels/internal/jobs"
	"parcels/internal/metrics"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm/logger"
)

const shutdownTimeout = 15 * time.Second

func main() {
	if err := run(); err != nil {
		slog.Error("parcels service stopped", "error", err)
		os.Exit(1)
	}
}

func run() error {
	config, err := cmd.LoadConfig()
	if err != nil {
		return err
	}

	log := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: config.SlogLevel()}))
	slog.SetDefault(log)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	gormLogLevel := logger.Warn
	if config.SlogLevel() == slog.LevelDebug {
		gormLogLevel = logger.Info
	}
	db, err := postgres.Open(config.DSN(), gormLogLevel)
	if err != nil {
		return fmt.Errorf("connect to postgres: %w", err)
	}
	if err = postgres.Migrate(db); err != nil {
		return fmt.Errorf("migrate: %w", err)
	}

	redisOptions, err := redis.ParseURL(config.RedisURL)
	if err != nil {
		return fmt.Errorf("parse redis url: %w", err)
	}
	rdb := redis.NewClient(redisOptions)
	defer rdb.Close()
	geo, err := geolookup.NewRedisGeoLookup(rdb, config.LocationTTL)
	if err != nil {
		return err
	}

	writer, err := kafkaadapter.NewWriter(config.KafkaHost, config.KafkaParcelEventsTopic)
	if err != nil {
		return err
	}
	publisher, err := kafkaadapter.NewPublisher(writer, log)
	if err != nil {
		return err
	}
	defer publisher.Close()

	registry := metrics.NewRegistry()

	app, err := cmd.NewCompositionRoot(config, cmd.Infrastructure{
		DB:        db,
		Geo:       geo,
		Locations: geo,
		Publisher: publisher,
		Observer:  registry,
		Logger:    log,
	})
	if err != nil {
		return err
	}

	jobManager := jobs.NewJobManager(app.CreatePublishOutboxCommandHandler(), jobs.OutboxConfig{
		Schedule:  config.OutboxSchedule,
		BatchSize: config.OutboxBatchSize,
		Timeout:   config.OutboxTimeout,
	}, log)
	if err = jobManager.StartAll(); err != nil {
		return err
	}
	defer jobManager.StopAll()

	return serve(ctx, app, config, registry, log)
}

func serve(
	ctx context.Context, app *cmd.CompositionRoot, config cmd.Config, registry *metrics.Registry, log *slog.Logger,
) error {
	server := httpadapter.NewServer(httpadapter.Handlers{
		CreateParcel:          app.CreateCreateParcelCommandHandler(),
		UpdateParcel:          app.CreateUpdateParcelCommandHandler(),
		ChangeParcelStatus:    app.CreateChangeParcelStatusCommandHandler(),
		RecordPayment:         app.CreateRecordPaymentCommandHandler(),
		DeleteParcel:          app.CreateDeleteParcelCommandHandler(),
		RegisterPartyLocation: app.CreateRegisterPartyLocationCommandHandler(),
		GetParcel:             app.CreateGetParcelQueryHandler(),
		ListParcels:           app.CreateListParcelsQueryHandler(),
		QuoteParcelPrice:      app.CreateQuoteParcelPriceQueryHandler(),
	}, log)

	e, err := httpadapter.NewRouter(ctx, httpadapter.RouterConfig{
		Server:       server,
		Metrics:      registry,
		RateLimitRPS: config.RateLimitRPS,
		Debug:        config.SlogLevel() == slog.LevelDebug,
	})
	if err != nil {
		return err
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("http server listening", "port", config.HTTPPort)
		errCh <- e.Start(fmt.Sprintf("0.0.0.0:%s", config.HTTPPort))
	}()

	select {
	case err = <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return e.Shutdown(shutdownCtx)
}
