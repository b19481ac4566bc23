package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"storefront/internal/broker"
	"storefront/internal/config"
	"storefront/internal/db"
	"storefront/internal/helio"
	"storefront/internal/httpserver"
	"storefront/internal/logging"
	"storefront/internal/pricing"
	"storefront/internal/quote"
	basketrepo "storefront/internal/repository/basket"
	basketsvc "storefront/internal/service/basket"
	checkoutsvc "storefront/internal/service/checkout"
	"storefront/internal/tracing"
)

func main() {
	cfg := config.FromEnv()

	logger, err := logging.New(cfg.Env, cfg.LogFile)
	if err != nil {
		log.Fatalf("init logger: %v", err)
	}
	defer logger.Sync()

	ctx := context.Background()

	if cfg.JaegerEndpoint != "" {
		tp, err := tracing.Init(cfg.JaegerEndpoint)
		if err != nil {
			logger.Fatal("init tracer", zap.Error(err))
		}
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := tp.Shutdown(shutdownCtx); err != nil {
				logger.Warn("tracer shutdown", zap.Error(err))
			}
		}()
	}

	repo, cleanup, err := buildRepository(ctx, cfg, logger)
	if err != nil {
		logger.Fatal("init basket store", zap.Error(err))
	}
	defer cleanup()

	policy := pricing.Policy{
		ShippingFeeUSD:          cfg.ShippingFeeUSD,
		FreeShippingDeviceCount: cfg.FreeShippingDeviceCount,
	}
	baskets := basketsvc.New(repo, policy, logger)

	var publisher checkoutsvc.EventPublisher
	if len(cfg.KafkaBrokers) > 0 {
		producer := broker.NewProducer(cfg.KafkaBrokers, cfg.KafkaTopic)
		defer producer.Close()
		publisher = broker.NewEventPublisher(producer)
		logger.Info("kafka producer initialized",
			zap.Strings("brokers", cfg.KafkaBrokers),
			zap.String("topic", cfg.KafkaTopic))
	}

	helioCfg := helio.DefaultConfig()
	helioCfg.PaylinkID = cfg.HelioPaylinkID
	checkout := checkoutsvc.New(baskets, helioCfg, publisher, logger)

	quotes := quote.New(cfg.QuoteURL, cfg.QuoteInterval, logger)
	if err := quotes.Start(); err != nil {
		logger.Fatal("start quote poller", zap.Error(err))
	}
	defer quotes.Stop()

	srv := httpserver.New(cfg.HTTPAddr, logger, cfg.CORSOrigins, httpserver.Deps{
		Baskets:   baskets,
		Checkout:  checkout,
		Quote:     quotes,
		StorePing: repo.Ping,
	})

	serverErr := make(chan error, 1)
	go func() {
		logger.Info("starting http server", zap.String("addr", cfg.HTTPAddr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	stopCh := make(chan os.Signal, 1)
	signal.Notify(stopCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-stopCh:
		logger.Info("received signal, shutting down", zap.String("signal", sig.String()))
	case err := <-serverErr:
		logger.Error("server error", zap.Error(err))
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Warn("graceful shutdown failed", zap.Error(err))
	} else {
		logger.Info("server stopped")
	}
}

// buildRepository selects the basket persistence backend.
func buildRepository(ctx context.Context, cfg config.Config, logger *zap.Logger) (basketrepo.Repository, func(), error) {
	switch cfg.StorageBackend {
	case "redis":
		repo, err := basketrepo.NewRedis(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
		if err != nil {
			return nil, nil, err
		}
		logger.Info("basket store: redis", zap.String("addr", cfg.RedisAddr))
		return repo, func() {}, nil
	case "postgres":
		pool, err := db.Connect(ctx, cfg.DBConnString)
		if err != nil {
			return nil, nil, err
		}
		logger.Info("basket store: postgres")
		return basketrepo.NewPostgres(pool), pool.Close, nil
	case "memory":
		logger.Warn("basket store: in-memory, baskets will not survive a restart")
		return basketrepo.NewMemory(), func() {}, nil
	}
	return nil, nil, errors.New("unknown STORAGE_BACKEND " + cfg.StorageBackend)
}
