package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/redis/go-redis/v9"

	"github.com/Mr-randomize/ecommerce-go/internal/address"
	"github.com/Mr-randomize/ecommerce-go/internal/cart"
	"github.com/Mr-randomize/ecommerce-go/internal/checkout"
	"github.com/Mr-randomize/ecommerce-go/internal/config"
	"github.com/Mr-randomize/ecommerce-go/internal/events"
	"github.com/Mr-randomize/ecommerce-go/internal/httpx"
	"github.com/Mr-randomize/ecommerce-go/internal/orderapi"
	"github.com/Mr-randomize/ecommerce-go/internal/payment"
	"github.com/Mr-randomize/ecommerce-go/internal/telemetry"
)

func main() {
	_ = godotenv.Load()

	cfg := config.Load()
	telemetry.InitLogger(cfg.ServiceName)

	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
	})
	defer redisClient.Close()

	pingCtx, cancelPing := context.WithTimeout(context.Background(), 5*time.Second)
	if err := redisClient.Ping(pingCtx).Err(); err != nil {
		slog.Error("redis unreachable", slog.String("addr", cfg.RedisAddr), slog.Any("error", err))
		cancelPing()
		os.Exit(1)
	}
	cancelPing()

	carts := cart.NewManager(cart.NewRedisStorage(redisClient, cfg.SessionTTL))
	resolver := address.NewResolver(address.NewHTTPDirectory(cfg.DirectoryURL, nil))
	gateway := payment.NewHTTPGateway(cfg.PaymentBaseURL, nil)
	backend := orderapi.NewHTTPBackend(cfg.OrderBaseURL, nil)

	var publisher checkout.CompletionPublisher
	if len(cfg.KafkaBrokers) > 0 {
		kafkaPublisher := events.NewPublisher(cfg.KafkaBrokers...)
		defer kafkaPublisher.Close()
		publisher = kafkaPublisher
	}

	registry := prometheus.NewRegistry()
	metrics := telemetry.NewCheckoutMetrics(registry, cfg.ServiceName)

	sessions := checkout.NewSessions(carts, resolver, gateway, backend, publisher, metrics)

	router := httpx.NewRouter(
		httpx.NewCartHandler(carts),
		httpx.NewCheckoutHandler(sessions),
		httpx.NewAddressHandler(resolver),
		telemetry.MetricsHandler(registry),
		cfg.RequestTimeout,
		cfg.ServiceName,
	)

	srv := &http.Server{
		Addr:         ":" + cfg.HTTPPort,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		slog.Info("http server starting", slog.String("port", cfg.HTTPPort))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("server error", slog.Any("error", err))
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.Info("shutting down server")
	ctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		slog.Error("server forced to shutdown", slog.Any("error", err))
		os.Exit(1)
	}
	slog.Info("server exited")
}
