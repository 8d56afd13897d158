package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"logistics/cmd"
	"logistics/internal/adapters/out/cache"
	"logistics/internal/adapters/out/notify"
	"logistics/internal/adapters/out/postgres/tenancy"
	"logistics/internal/core/ports"

	"github.com/labstack/gommon/log"
)

func main() {
	config, err := cmd.LoadConfig()
	if err != nil {
		log.Fatalf("Error loading config: %v", err)
	}
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	registry, err := tenancy.NewRegistry(config.TenantTable(), tenancy.OpenPostgres)
	if err != nil {
		log.Fatalf("Error configuring tenants: %v", err)
	}
	defer registry.Close()

	rdb, err := cache.NewRedisClient(ctx, cache.RedisConfig{
		Host:     config.RedisHost,
		Port:     config.RedisPort,
		Password: config.RedisPassword,
		DB:       config.RedisDB,
	})
	if err != nil {
		log.Fatalf("Error connecting to redis: %v", err)
	}
	defer rdb.Close()

	notifier, err := newNotifier(ctx, config, logger)
	if err != nil {
		log.Fatalf("Error configuring push notifications: %v", err)
	}
	ops, err := newOpsChannel(config)
	if err != nil {
		log.Fatalf("Error configuring telegram: %v", err)
	}

	app := cmd.NewCompositionRoot(config, registry, cache.NewRedisCache(rdb), notifier, ops, logger)

	jobManager := app.CreateJobManager()
	if err = jobManager.StartAll(); err != nil {
		log.Fatalf("Error starting jobs: %v", err)
	}

	e, err := app.CreateRouter(ctx)
	if err != nil {
		log.Fatalf("Error building router: %v", err)
	}

	go func() {
		logger.Info("http server started", "port", config.HTTPPort)
		if err := e.Start(fmt.Sprintf("0.0.0.0:%s", config.HTTPPort)); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http server stopped", "error", err)
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), config.ShutdownTimeout)
	defer cancel()
	if err = e.Shutdown(shutdownCtx); err != nil {
		logger.Error("http shutdown failed", "error", err)
	}
	jobManager.StopAll()
	app.Dispatcher().Wait()
}

func newNotifier(ctx context.Context, config cmd.Config, logger *slog.Logger) (ports.Notifier, error) {
	if !config.PushEnabled() {
		logger.Warn("FCM is not configured, notifications are only logged")
		return notify.NewLogNotifier(logger), nil
	}
	return notify.NewFCMNotifier(ctx, notify.FCMConfig{
		ProjectID:       config.FCMProjectID,
		CredentialsFile: config.FCMCredentialsFile,
		BaseURL:         config.FrontendBaseURL,
		IconURL:         config.NotificationIcon,
	}, logger)
}

func newOpsChannel(config cmd.Config) (notify.OpsChannel, error) {
	if !config.OpsChatEnabled() {
		return nil, nil
	}
	return notify.NewTelegramChannel(notify.TelegramConfig{
		Token:  config.TelegramToken,
		ChatID: config.TelegramChatID,
	}, config.FrontendBaseURL)
}
