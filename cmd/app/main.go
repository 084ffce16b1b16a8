package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/Domenick1991/spacetravel/api"
	"github.com/Domenick1991/spacetravel/config"
	"github.com/Domenick1991/spacetravel/internal/bootstrap"
	"github.com/Domenick1991/spacetravel/internal/cache"
	"github.com/Domenick1991/spacetravel/internal/catalog"
	"github.com/Domenick1991/spacetravel/internal/kafka"
	"github.com/Domenick1991/spacetravel/internal/logging"
	"github.com/Domenick1991/spacetravel/internal/repository"
	"github.com/Domenick1991/spacetravel/internal/service/booking"
	"github.com/Domenick1991/spacetravel/internal/service/fare"
	"github.com/Domenick1991/spacetravel/internal/service/tripwindow"
	"github.com/Domenick1991/spacetravel/internal/tips"
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

func main() {
	cfgPath := os.Getenv("CONFIG_PATH")
	if cfgPath == "" {
		cfgPath = "config.yaml"
	}

	cfg, err := config.LoadConfig(cfgPath)
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	logger, err := logging.New(cfg.Logging)
	if err != nil {
		log.Fatalf("init logger: %v", err)
	}
	defer logger.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, logger); err != nil {
		logger.Error("Server error", zap.Error(err))
		return
	}
}

func run(ctx context.Context, cfg *config.Config, logger *zap.Logger) error {
	cat, err := catalog.Load(cfg.Catalog.Path)
	if err != nil {
		return fmt.Errorf("load catalog: %w", err)
	}

	kv, closeKV, err := newBlobKV(ctx, cfg)
	if err != nil {
		return err
	}
	defer closeKV()

	store := repository.NewBlobBookingStore(kv,
		repository.WithKey(cfg.Store.Key),
		repository.WithLogger(logger),
		repository.WithCancelConfirmed(cfg.Booking.AllowCancelConfirmed),
	)

	fares := fare.NewResolver(cat)
	opts := []booking.BookingServiceOption{booking.WithLogger(logger)}
	if cfg.Kafka.Enabled() {
		producer := kafka.NewProducer(cfg.Kafka.Brokers, logger)
		defer producer.Close()
		if err := producer.CheckConnection(ctx); err != nil {
			logger.Warn("Kafka is unreachable, booking events will be retried per publish", zap.Error(err))
		}
		opts = append(opts,
			booking.WithProducer(producer, cfg.Kafka.BookingTopic),
			booking.WithNotificationsTopic(cfg.Kafka.NotificationsTopic),
		)
	}
	bookingService := booking.NewBookingService(store, cat, fares, opts...)

	rotator := tips.NewRotator(cat.Tips(), cfg.Tips.Interval(), logger)
	go rotator.Run(ctx)

	gin.SetMode(gin.ReleaseMode)
	router := api.NewRouter(logger, api.Handlers{
		Destinations: api.NewDestinationHandler(cat, tripwindow.NewCalculator(cat), fares),
		Bookings:     api.NewBookingHandler(bookingService),
		Tips:         api.NewTipsHandler(rotator),
	})

	logger.Info("Starting space travel booking service",
		zap.String("store", cfg.Store.Driver),
		zap.Bool("kafka", cfg.Kafka.Enabled()))
	return bootstrap.Run(ctx, cfg, router, bookingService, logger)
}

func newBlobKV(ctx context.Context, cfg *config.Config) (repository.BlobKV, func(), error) {
	switch cfg.Store.Driver {
	case config.StoreDriverRedis:
		kv := cache.NewRedisKV(cfg.Redis)
		if err := kv.Ping(ctx); err != nil {
			kv.Close()
			return nil, nil, fmt.Errorf("connect redis: %w", err)
		}
		return kv, func() { _ = kv.Close() }, nil
	case config.StoreDriverPostgres:
		pool, err := pgxpool.New(ctx, cfg.Database.DSN())
		if err != nil {
			return nil, nil, fmt.Errorf("connect postgres: %w", err)
		}
		kv := repository.NewPGBlobKV(pool)
		if err := kv.EnsureSchema(ctx); err != nil {
			pool.Close()
			return nil, nil, fmt.Errorf("ensure schema: %w", err)
		}
		return kv, pool.Close, nil
	default:
		return repository.NewMemoryKV(), func() {}, nil
	}
}
