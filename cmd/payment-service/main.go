package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"os"
	"time"

	"github.com/cryptolink/cryptolink-payment-service/internal/config"
	"github.com/cryptolink/cryptolink-payment-service/internal/delivery/http/handlers"
	"github.com/cryptolink/cryptolink-payment-service/internal/delivery/http/routes"
	publisher "github.com/cryptolink/cryptolink-payment-service/internal/infrastructure/kafka"
	"github.com/cryptolink/cryptolink-payment-service/internal/infrastructure/metrics"
	"github.com/cryptolink/cryptolink-payment-service/internal/infrastructure/migrate"
	"github.com/cryptolink/cryptolink-payment-service/internal/infrastructure/oracle"
	"github.com/cryptolink/cryptolink-payment-service/internal/infrastructure/postgres"
	"github.com/cryptolink/cryptolink-payment-service/internal/infrastructure/postgres/repository"
	"github.com/cryptolink/cryptolink-payment-service/internal/infrastructure/rates"
	usecase "github.com/cryptolink/cryptolink-payment-service/internal/usecase/payment"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("failed to load .env")
	}
	// Reading config
	cfg := config.MustLoad()
	setupLogger(cfg)

	// Init database
	db := postgres.MustInitDB(cfg)
	if cfg.PaymentDB.MigrationsPath != "" {
		if err := migrate.RunMigrations(db, cfg.PaymentDB.MigrationsPath); err != nil {
			log.Fatalf("failed to run migrations: %v", err)
		}
	}

	// Init redis for the rate cache
	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})

	// Init kafka publisher
	brokers := []string{fmt.Sprintf("%s:%s", cfg.KafkaService.Host, cfg.KafkaService.Port)}
	pub := publisher.NewDefaultKafkaPublisher(brokers, cfg.KafkaService.Topic)
	defer pub.Close()

	// Init repos
	paymentRepo := repository.NewDefaultPaymentRepository(db)
	merchantRepo := repository.NewDefaultMerchantRepository(db)

	// Init external clients
	chainOracle := oracle.NewHTTPChainOracle(&cfg.OracleAPI)
	rateSource := rates.NewCachedRateSource(&cfg.RatesAPI, rdb)

	// Init payment usecase
	paymentMetrics := metrics.NewPaymentMetrics()
	uc := usecase.NewDefaultPaymentUsecase(
		paymentRepo,
		merchantRepo,
		chainOracle,
		rateSource,
		pub,
		paymentMetrics,
		usecase.VerificationRules{
			MinConfirmations: cfg.Verification.MinConfirmations,
			AmountTolerance:  cfg.Verification.AmountTolerance,
			RecordTimeout:    cfg.Verification.RecordTimeout,
		},
	)

	// Verification worker: expires and completes pending payments
	go uc.StartVerificationWorker(context.Background(), cfg.Verification.Interval)

	// Warming crypto-rates cache
	go func() {
		ticker := time.NewTicker(cfg.RatesAPI.CacheTTL)
		defer ticker.Stop()
		for {
			rateSource.Refresh(context.Background(), cfg.RatesAPI.WarmCoins)
			<-ticker.C
		}
	}()

	// HTTP server
	r := gin.Default()
	routes.RegisterAPIRoutes(r, handlers.NewPaymentHandler(uc), handlers.NewAdminHandler(uc))

	addr := fmt.Sprintf("%s:%s", cfg.HTTPServer.Host, cfg.HTTPServer.Port)
	slog.Info("payment service started", "addr", addr, "env", cfg.Env)
	if err := r.Run(addr); err != nil {
		log.Fatalf("failed to serve: %v\n", err)
	}
}

func setupLogger(cfg *config.PaymentConfig) {
	level := slog.LevelInfo
	switch cfg.LogConfig.LogLevel {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	}

	var handler slog.Handler
	if cfg.LogConfig.LogFormat == "text" {
		handler = slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: level})
	} else {
		handler = slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level})
	}
	slog.SetDefault(slog.New(handler))
}
