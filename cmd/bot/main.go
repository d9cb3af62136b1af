package main

import (
	"context"
	"io/fs"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	vaultbot "github.com/set-night/vaultbot"
	"github.com/set-night/vaultbot/internal/activitylog"
	"github.com/set-night/vaultbot/internal/auth"
	"github.com/set-night/vaultbot/internal/config"
	"github.com/set-night/vaultbot/internal/handler"
	"github.com/set-night/vaultbot/internal/middleware"
	"github.com/set-night/vaultbot/internal/repository"
	"github.com/set-night/vaultbot/internal/session"
	"github.com/set-night/vaultbot/internal/storage"
	"github.com/set-night/vaultbot/internal/telegram"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	// Setup structured logging
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: cfg.SlogLevel(),
	}))
	slog.SetDefault(logger)

	// Setup context with graceful shutdown
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Connect to storage
	gateway, err := storage.New(ctx, cfg)
	if err != nil {
		slog.Error("failed to init storage", "backend", cfg.StorageBackend, "error", err)
		os.Exit(1)
	}
	slog.Info("storage ready", "backend", gateway.Type(), "folder", cfg.StorageFolder)

	// Activity log: Postgres when configured, text file otherwise
	var activity activitylog.Log
	if cfg.DatabaseURL != "" {
		pool, err := repository.NewPool(ctx, cfg.DatabaseURL, cfg.Workers)
		if err != nil {
			slog.Error("failed to connect to database", "error", err)
			os.Exit(1)
		}
		defer pool.Close()

		migrationsFS, err := fs.Sub(vaultbot.MigrationsFS, "migrations")
		if err != nil {
			slog.Error("failed to load embedded migrations", "error", err)
			os.Exit(1)
		}
		if err := repository.RunMigrations(cfg.DatabaseURL, migrationsFS); err != nil {
			slog.Error("failed to run migrations", "error", err)
			os.Exit(1)
		}
		activity = repository.NewActivityStore(pool)
	} else {
		fileLog, err := activitylog.NewFile(cfg.ActivityLogPath)
		if err != nil {
			slog.Error("failed to open activity log", "error", err)
			os.Exit(1)
		}
		activity = fileLog
	}

	sessions := session.NewStore()
	dispatcher := middleware.NewDispatcher(cfg.Workers)

	// Handler pointer for use in default handler closure
	var h *handler.Handler

	// Create bot. One synchronous update worker keeps arrival order up to
	// Serialize, which fans updates out to per-user queues.
	opts := []bot.Option{
		bot.WithMiddlewares(
			middleware.Serialize(dispatcher),
			middleware.Recover(),
			middleware.Logging(),
		),
		bot.WithDefaultHandler(func(ctx context.Context, b *bot.Bot, update *models.Update) {
			if h == nil {
				return
			}
			h.HandleMessage(ctx, b, update)
		}),
		bot.WithWorkers(1),
		bot.WithNotAsyncHandlers(),
	}

	b, err := bot.New(cfg.BotToken, opts...)
	if err != nil {
		slog.Error("failed to create bot", "error", err)
		os.Exit(1)
	}

	// Get bot info
	me, err := b.GetMe(ctx)
	if err != nil {
		slog.Error("failed to get bot info", "error", err)
		os.Exit(1)
	}

	if cfg.LogTelegramChatID != 0 {
		activity = activitylog.Tee(activity, telegram.NewTelegramLogger(b, cfg))
	}

	machine := auth.NewMachine(auth.Config{
		Password:   cfg.InitialPassword,
		UnlockCode: cfg.UnlockCode,
		Timeout:    cfg.AutoLockTimeout(),
	}, auth.Deps{
		Sessions:   sessions,
		Gateway:    gateway,
		Log:        activity,
		Downloader: telegram.NewDownloader(b),
	})

	// Initialize handler
	h = handler.New(handler.Deps{
		Bot:     b,
		Machine: machine,
	})

	// Register all handlers
	h.Register()

	if cfg.DropPendingUpdates {
		if _, err := b.DeleteWebhook(ctx, &bot.DeleteWebhookParams{DropPendingUpdates: true}); err != nil {
			slog.Warn("failed to drop pending updates", "error", err)
		}
	}

	// Start bot
	slog.Info("starting bot", "username", me.Username, "id", me.ID, "workers", cfg.Workers)
	b.Start(ctx)

	// Graceful shutdown: let queued updates finish
	dispatcher.Wait()
	slog.Info("bot stopped gracefully")
}
