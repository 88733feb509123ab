package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/vitos/crypto_indicator_api/internal/config"
	"github.com/vitos/crypto_indicator_api/internal/domain"
	"github.com/vitos/crypto_indicator_api/internal/infrastructure/cache"
	"github.com/vitos/crypto_indicator_api/internal/infrastructure/exchange"
	"github.com/vitos/crypto_indicator_api/internal/infrastructure/logger"
	"github.com/vitos/crypto_indicator_api/internal/infrastructure/storage"
	"github.com/vitos/crypto_indicator_api/internal/usecase"
	"github.com/vitos/crypto_indicator_api/internal/web"
	"go.uber.org/zap"
)

func main() {
	// 1. Load Config
	cfgPath := os.Getenv("CONFIG_PATH")
	if cfgPath == "" {
		cfgPath = "config/config.yaml"
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	// 2. Init Logger
	log, err := logger.NewLogger(cfg.Logging.Level)
	if err != nil {
		fmt.Printf("Failed to init logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	// 3. Init Cache (Redis, in-memory fallback when unreachable)
	ctx := context.Background()
	var store domain.Cache
	redisCache, err := cache.NewRedisCache(ctx, cfg.Cache.Addr, cfg.Cache.Password, cfg.Cache.DB)
	if err != nil {
		log.Warn("Redis unavailable, using in-memory cache", zap.Error(err))
		store = cache.NewMemoryCache()
	} else {
		store = redisCache
	}
	defer store.Close()

	// 4. Init User Storage
	users, err := storage.NewSQLiteStore(cfg.Auth.DBPath)
	if err != nil {
		log.Fatal("Failed to init sqlite", zap.Error(err))
	}
	defer users.Close()

	// 5. Init Exchange (Binance)
	binance := exchange.NewBinanceAdapter(cfg.Exchange.RESTEndpoint, cfg.ExchangeTimeout())

	// 6. Init Services
	ranking := usecase.NewRankingService(binance, cfg.Indicators.Exclude)
	indicators := usecase.NewIndicatorService(
		binance, ranking, store, cfg.CacheTTL(), cfg.Indicators.TopCount, log)
	auth := usecase.NewAuthService(users, cfg.Auth.Secret, cfg.TokenTTL())

	// 7. Start Web Server
	server := web.NewServer(cfg.Server.Port, indicators, auth, log)
	go func() {
		if err := server.Start(); err != nil {
			log.Fatal("Web server failed", zap.Error(err))
		}
	}()

	// 8. Wait for Shutdown
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop

	log.Info("Shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error("Shutdown error", zap.Error(err))
	}
}
