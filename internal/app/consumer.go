package app

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"go-exitflow/internal/employee"
	"go-exitflow/internal/events"
	"go-exitflow/internal/exitform"
	"go-exitflow/internal/messaging/kafka"
	"go-exitflow/internal/messaging/kafka/consumer"
	"go-exitflow/internal/shared/connection"
	"go-exitflow/internal/shared/counter"

	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

// RunConsumer starts the legacy ingestion loop: batches of old-HRMS exit-form
// records arrive on kafka and are upserted through the exit-form service.
func RunConsumer() error {
	logger := zap.L().Named("app.consumer")

	gormDB, err := connection.ConnectGORMWithRetry(
		os.Getenv("DB_HOST"),
		os.Getenv("DB_USER"),
		os.Getenv("DB_PASSWORD"),
		os.Getenv("DB_NAME"),
		os.Getenv("DB_PORT"),
		os.Getenv("DB_SSLMODE"),
		5,
	)
	if err != nil {
		return err
	}

	sqlDB, err := gormDB.DB()
	if err != nil {
		return err
	}
	defer sqlDB.Close()

	kafkaBroker := os.Getenv("KAFKA_BROKER")
	if kafkaBroker == "" {
		return fmt.Errorf("KAFKA_BROKER is required")
	}

	redisClient, err := connection.ConnectRedisWithRetry(os.Getenv("REDIS_ADDR"), 5)
	if err != nil {
		return err
	}

	employeeRepo := employee.NewRepository(gormDB)
	counterRepo := counter.NewRepository(gormDB)
	outboxRepo := kafka.NewOutboxRepository(sqlDB)
	exitFormRepo := exitform.NewRepository(sqlDB)
	exitFormService := exitform.NewService(sqlDB, exitFormRepo, employeeRepo, counterRepo, outboxRepo, redisClient)

	reader := kafkago.NewReader(kafkago.ReaderConfig{
		Brokers:        []string{kafkaBroker},
		Topic:          events.LegacyExitFormTopic,
		GroupID:        "go-exitflow-legacy-import",
		CommitInterval: 0,
		StartOffset:    kafkago.FirstOffset,
	})
	defer reader.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go consumer.ConsumeLegacyExitForms(ctx, reader, exitFormService, logger)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("consumer shutting down")
	cancel()

	return nil
}
