package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/raosiddharth510-rao/store/internal/api"
	"github.com/raosiddharth510-rao/store/internal/api/handler"
	"github.com/raosiddharth510-rao/store/internal/api/router"
	"github.com/raosiddharth510-rao/store/internal/config"
	"github.com/raosiddharth510-rao/store/internal/infra/event"
	"github.com/raosiddharth510-rao/store/internal/infra/repository/cartstore"
	"github.com/raosiddharth510-rao/store/internal/infra/repository/catalog"
	"github.com/raosiddharth510-rao/store/internal/infra/repository/feedback"
	"github.com/raosiddharth510-rao/store/internal/infra/repository/ledger"
	"github.com/raosiddharth510-rao/store/internal/infra/repository/snapshot"
	"github.com/raosiddharth510-rao/store/internal/service"
)

func main() {
	logger := zerolog.New(os.Stdout).With().Timestamp().Str("service", "store").Logger()

	cf := config.GetConfig()

	if err := os.MkdirAll(cf.DataDir, 0o755); err != nil {
		logger.Fatal().Err(err).Str("dir", cf.DataDir).Msg("failed to create data dir")
	}

	catalogStore, err := catalog.NewStore(
		snapshot.NewTable(filepath.Join(cf.DataDir, "products.csv"), catalog.Header()), logger)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to load catalog")
	}
	orderLedger, err := ledger.NewLedger(
		snapshot.NewTable(filepath.Join(cf.DataDir, "orders.csv"), ledger.Header()), logger)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to load order ledger")
	}
	feedbackRepo, err := feedback.NewRepository(
		snapshot.NewTable(filepath.Join(cf.DataDir, "product_feedback.csv"), feedback.Header()), logger)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to load feedback")
	}

	var carts cartstore.IStore = cartstore.NewMemoryStore()
	if cf.RedisAddr != "" {
		client := redis.NewClient(&redis.Options{
			Addr:     cf.RedisAddr,
			Password: cf.RedisPassword,
		})
		carts = cartstore.NewRedisStore(client, "store")
		logger.Info().Str("addr", cf.RedisAddr).Msg("using redis cart store")
	}

	var publisher event.Publisher = event.NopPublisher{}
	if cf.KafkaBrokers != "" {
		publisher = event.NewKafkaPublisher(strings.Split(cf.KafkaBrokers, ","), cf.KafkaOrderTopic)
		logger.Info().Str("brokers", cf.KafkaBrokers).Str("topic", cf.KafkaOrderTopic).
			Msg("publishing order events to kafka")
	}

	checkoutService := service.NewCheckoutService(catalogStore, orderLedger, publisher, logger)
	alertService := service.NewAlertService(catalogStore, cf.LowStockThreshold,
		time.Duration(cf.ExpiryAlertDays)*24*time.Hour)
	reportService := service.NewReportService(catalogStore, orderLedger, feedbackRepo)
	scanService := service.NewScanService(catalogStore)
	feedbackService := service.NewFeedbackService(feedbackRepo, catalogStore)

	server := api.NewServer(
		handler.NewCatalogHandler(catalogStore, scanService),
		handler.NewCartHandler(carts, catalogStore, checkoutService),
		handler.NewOrderHandler(orderLedger),
		handler.NewReportHandler(reportService, alertService),
		handler.NewFeedbackHandler(feedbackService),
	)

	r := router.SetupRouter(server, &logger)

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%s", cf.ServerPort),
		Handler: r,
	}

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	shutdownCompleted := make(chan struct{}, 1)
	go func() {
		<-sigChan
		logger.Info().Msg("received shutdown signal")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Error().Err(err).Msg("server shutdown error")
		}
		if err := publisher.Close(); err != nil {
			logger.Error().Err(err).Msg("publisher close error")
		}

		shutdownCompleted <- struct{}{}
	}()

	logger.Info().Str("addr", srv.Addr).Msg("server starting")
	if err := srv.ListenAndServe(); err != http.ErrServerClosed {
		logger.Fatal().Err(err).Msg("server stopped")
	}
	<-shutdownCompleted
	logger.Info().Msg("shutdown completed")
}
