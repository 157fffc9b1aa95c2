package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"notigate/internal/config"
	"notigate/internal/domain/bulk"
	"notigate/internal/domain/notification"
	"notigate/internal/domain/sender"
	"notigate/internal/domain/template"
	"notigate/internal/infra/render"
	"notigate/internal/infra/store"
	"notigate/internal/infra/transport"
	"notigate/internal/metrics"
	"notigate/internal/router"

	"github.com/redis/go-redis/v9"
)

func main() {
	// Initialize structured logger
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	slog.Info("configuration loaded", "port", cfg.Server.Port, "mode", cfg.Server.Mode)

	// ==========================================
	// Dependency Injection (Manual Wiring)
	// ==========================================

	// Stores (volatile by default; Redis when configured)
	var templateStore template.Store
	var senderStore sender.Store
	switch cfg.Store.Backend {
	case "memory":
		templateStore = store.NewMemory[template.Template]()
		senderStore = store.NewMemory[sender.Sender]()
	case "redis":
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Address,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		defer client.Close()
		templateStore = store.NewRedis[template.Template](client, "notigate:templates")
		senderStore = store.NewRedis[sender.Sender](client, "notigate:senders")
	default:
		slog.Error("unknown store backend", "backend", cfg.Store.Backend)
		os.Exit(1)
	}
	slog.Info("store initialized", "backend", cfg.Store.Backend)

	// Transports — resolved eagerly so unknown names fail at boot
	emailTransport, err := transport.NewEmailTransport(cfg)
	if err != nil {
		slog.Error("failed to initialize email transport", "error", err)
		os.Exit(1)
	}
	smsTransport, err := transport.NewSMSTransport(cfg)
	if err != nil {
		slog.Error("failed to initialize sms transport", "error", err)
		os.Exit(1)
	}
	slog.Info("transports initialized", "email", emailTransport.Name(), "sms", smsTransport.Name())

	// Metrics
	m := metrics.New()

	// Services
	templateService := template.NewService(templateStore)
	senderService := sender.NewService(senderStore)
	bulkService := bulk.NewService()
	notificationService := notification.NewService(
		template.NewStoreResolver(templateStore),
		render.NewEngine(),
		emailTransport,
		smsTransport,
		senderStore,
		notification.Defaults{
			FromEmail:  cfg.Email.FromAddress,
			FromNumber: cfg.SMS.FromNumber,
		},
	)

	// Handlers
	notificationHandler := notification.NewHandler(notificationService, m)
	bulkHandler := bulk.NewHandler(bulkService, m)
	templateHandler := template.NewHandler(templateService)
	senderHandler := sender.NewHandler(senderService)

	// Router
	r := router.New(cfg, m, notificationHandler, bulkHandler, templateHandler, senderHandler)

	// ==========================================
	// HTTP Server with Graceful Shutdown
	// ==========================================

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in a goroutine
	go func() {
		slog.Info("server starting", "address", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("server failed to start", "error", err)
			os.Exit(1)
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.Info("shutting down server...")

	// Give outstanding requests 10 seconds to complete
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		slog.Error("server forced to shutdown", "error", err)
		os.Exit(1)
	}

	slog.Info("server exited gracefully")
}
