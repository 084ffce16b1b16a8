package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/Domenick1991/spacetravel/config"
	"github.com/Domenick1991/spacetravel/internal/email"
	"github.com/Domenick1991/spacetravel/internal/kafka"
	"github.com/Domenick1991/spacetravel/internal/logging"
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

	topic := cfg.Kafka.NotificationsTopic
	if topic == "" {
		topic = cfg.Kafka.BookingTopic
	}
	if len(cfg.Kafka.Brokers) == 0 || topic == "" {
		logger.Fatal("Kafka brokers and a notifications or booking topic are required")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	consumer := kafka.NewConsumer(cfg.Kafka.Brokers, cfg.Kafka.GroupID, topic, logger)
	defer consumer.Close()

	sender := email.NewSender(logger)

	logger.Info("Notification worker started", zap.String("topic", topic), zap.String("group_id", cfg.Kafka.GroupID))
	if err := consumer.ConsumeBookingEvents(ctx, sender.Send); err != nil {
		logger.Error("Consumer stopped", zap.Error(err))
		return
	}
	logger.Info("Notification worker stopped")
}
