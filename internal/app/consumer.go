package app

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"go-crm/internal/events"
	"go-crm/internal/lead"
	"go-crm/internal/messaging/kafka/consumer"
	"go-crm/internal/shared/connection"
	"go-crm/internal/shared/counter"

	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

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

	leadRepo := lead.NewRepository(gormDB)
	scoringRepo := lead.NewScoringRepository(gormDB)
	counterRepo := counter.NewRepository(gormDB)
	// Outbox nil: recalculate tidak menerbitkan event lagi.
	leadService := lead.NewService(sqlDB, leadRepo, scoringRepo, counterRepo, nil)

	reader := kafkago.NewReader(kafkago.ReaderConfig{
		Brokers:        []string{kafkaBroker},
		Topic:          events.LeadCapturedTopic,
		GroupID:        "go-crm-lead-scoring",
		CommitInterval: 0,
		StartOffset:    kafkago.FirstOffset,
	})
	defer reader.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go consumer.ConsumeLeadCaptured(ctx, reader, leadService, logger)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("consumer shutting down")
	cancel()

	return nil
}
