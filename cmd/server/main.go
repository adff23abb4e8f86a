package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"
	"hookdesk/internal/api"
	"hookdesk/internal/api/handlers"
	"hookdesk/internal/engine/keys"
	"hookdesk/internal/engine/navigation"
	"hookdesk/internal/engine/subscriptions"
	"hookdesk/internal/engine/toasts"
	"hookdesk/internal/platform/clipboard"
	"hookdesk/internal/platform/config"
	"hookdesk/internal/pkg/logger"
)

func main() {
	configPath := flag.String("config", "configs/config.yaml", "path to the config file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load config")
	}

	logger.Init(cfg.Logging)

	// Store
	var storeOpts []subscriptions.StoreOption
	if cfg.Store.SeedSample {
		storeOpts = append(storeOpts, subscriptions.WithSeed(subscriptions.SampleSubscription()))
	}
	store := subscriptions.NewStore(keys.NewGenerator(), storeOpts...)
	svc := subscriptions.NewService(store, cfg.Store.InitialLoadDelay)

	// Toasts
	queue := toasts.NewQueue(cfg.Toasts.DefaultDuration)
	defer queue.Close()
	board := toasts.NewBoard()
	detach := board.Attach(queue)
	defer detach()

	copier := keys.NewCopier(clipboard.NewSystem(), queue)
	navigator := navigation.NewNavigator(svc, queue)

	// Router
	deps := &api.Dependencies{
		SubscriptionHandler: handlers.NewSubscriptionHandler(svc, queue, copier),
		FormHandler:         handlers.NewFormHandler(),
		ViewHandler:         handlers.NewViewHandler(navigator),
		ToastHandler:        handlers.NewToastHandler(queue, board),
		StreamHandler:       handlers.NewStreamHandler(store, queue, cfg.Stream.WriteTimeout, cfg.Stream.BufferSize),
		HealthHandler:       handlers.NewHealthHandler(svc, board),
		MetricsHandler:      handlers.NewMetricsHandler(svc, queue, board),
		Readiness:           svc,
		RequestsPerMinute:   cfg.RateLimit.RequestsPerMinute,
	}

	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      api.NewRouter(deps),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	go func() {
		log.Info().Str("addr", addr).Bool("seeded", cfg.Store.SeedSample).Msg("Server starting")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("Server failed")
		}
	}()

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	<-sig

	log.Info().Msg("Shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("Graceful shutdown failed")
	}
}
