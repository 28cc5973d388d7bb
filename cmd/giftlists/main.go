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

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/Kerhoff/giftlists/internal/api"
	"github.com/Kerhoff/giftlists/internal/config"
	"github.com/Kerhoff/giftlists/internal/handlers"
	"github.com/Kerhoff/giftlists/internal/metrics"
	"github.com/Kerhoff/giftlists/internal/repository/remote"
	"github.com/Kerhoff/giftlists/internal/service"
	"github.com/Kerhoff/giftlists/internal/telegram"
	"github.com/Kerhoff/giftlists/internal/transform"
	"github.com/Kerhoff/giftlists/internal/view"
	"github.com/Kerhoff/giftlists/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	l := logger.New(cfg.LogLevel)
	l.Info("Starting giftlists...")

	// Metrics
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	m := metrics.New(reg)

	// Source
	adapter, err := remote.AdapterFor(cfg.PayloadShape)
	if err != nil {
		l.Fatalf("Failed to select payload adapter: %v", err)
	}
	listRepo := remote.NewListRepository(remote.Options{
		Endpoint:  cfg.ListsEndpoint,
		UserAgent: cfg.UserAgent,
		Timeout:   cfg.FetchTimeout,
	}, adapter, l)

	normalizer, err := transform.NewNormalizer(cfg.CollationLocale)
	if err != nil {
		l.Fatalf("Failed to create normalizer: %v", err)
	}

	renderer, err := view.NewRenderer(cfg.Currency)
	if err != nil {
		l.Fatalf("Failed to parse templates: %v", err)
	}

	// Service layer
	svc := service.New(l, listRepo, normalizer, view.NewRegion(), m, cfg.FetchTimeout)

	// Context for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-sigChan
		l.Info("Received shutdown signal...")
		cancel()
	}()

	if cfg.RefreshInterval > 0 {
		go svc.StartRefreshScheduler(ctx, cfg.RefreshInterval)
	}

	// Telegram bot, optional
	if cfg.TelegramToken != "" {
		bot, err := telegram.NewBot(cfg.TelegramToken, l)
		if err != nil {
			l.Fatalf("Failed to create Telegram bot: %v", err)
		}

		bot.RegisterCommand("start", handlers.NewStartHandler(l))
		bot.RegisterCommand("help", handlers.NewHelpHandler(l))
		bot.RegisterCommand("lists", handlers.NewListsHandler(svc, l))
		bot.RegisterCommand("list", handlers.NewListHandler(svc, renderer, l))
		bot.RegisterCommand("reload", handlers.NewReloadHandler(svc, l))

		go func() {
			if err := bot.Start(ctx); err != nil {
				l.Errorf("Bot error: %v", err)
			}
		}()
	} else {
		l.Info("TELEGRAM_TOKEN not set, chat surface disabled")
	}

	// HTTP server for the web view
	apiServer := api.NewServer(svc, renderer, l)
	httpServer := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           apiServer.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
		// The index page may wait for a full load.
		WriteTimeout: cfg.FetchTimeout + 10*time.Second,
	}

	metricsServer := &http.Server{
		Addr:              ":" + cfg.PrometheusPort,
		Handler:           metrics.Handler(reg),
		ReadHeaderTimeout: 10 * time.Second,
	}

	for _, srv := range []*http.Server{httpServer, metricsServer} {
		srv := srv
		go func() {
			l.Infof("HTTP server listening on %s", srv.Addr)
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				l.Errorf("HTTP server error: %v", err)
				cancel()
			}
		}()
	}

	l.Info("giftlists started successfully")

	<-ctx.Done()

	l.Info("Shutting down HTTP servers...")
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	for _, srv := range []*http.Server{httpServer, metricsServer} {
		if err := srv.Shutdown(shutdownCtx); err != nil {
			l.Errorf("HTTP server shutdown error: %v", err)
		}
	}

	svc.Wait()
	l.Info("giftlists stopped")
}
