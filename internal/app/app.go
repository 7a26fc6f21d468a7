package app

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"

	"guardian-bot/internal/config"
	"guardian-bot/internal/handler"
	"guardian-bot/internal/metrics"
	"guardian-bot/internal/repository"
	"guardian-bot/internal/service"
	"guardian-bot/internal/settings"
	"guardian-bot/internal/transport/polling"
	"guardian-bot/internal/transport/telegram"
	"guardian-bot/internal/transport/webhook"
)

type App struct {
	cfg    *config.Config
	logger *slog.Logger
}

func NewApp(cfg *config.Config, logger *slog.Logger) *App {
	return &App{
		cfg:    cfg,
		logger: logger,
	}
}

func (a *App) Run(ctx context.Context) error {
	ctx, cancel := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer cancel()

	a.logger.Info("Starting guardian bot")

	// the handler is wired after the bot client exists, the closure breaks
	// the construction cycle
	var h *handler.Handler
	b, err := bot.New(a.cfg.BotToken,
		bot.WithDefaultHandler(func(ctx context.Context, b *bot.Bot, update *models.Update) {
			h.HandleUpdate(ctx, b, update)
		}),
		bot.WithSkipGetMe(),
	)
	if err != nil {
		return fmt.Errorf("failed to create bot client: %w", err)
	}

	me, err := b.GetMe(ctx)
	if err != nil {
		return fmt.Errorf("failed to get bot info: %w", err)
	}
	a.logger.Info("Bot connected", "username", me.Username, "id", me.ID)

	db, err := repository.NewPostgresDB(a.cfg.GetDSN())
	if err != nil {
		return fmt.Errorf("failed to init db: %w", err)
	}

	settingsRepo := repository.NewSettingsRepository(db, a.cfg.EnableCache)
	registryRepo := repository.NewRegistryRepository(db)
	warningRepo := repository.NewWarningRepository(db)
	auditRepo := repository.NewAdminActionRepository(db)
	chatLogRepo := repository.NewChatLogRepository(db)

	store := settings.NewStore(settingsRepo)
	effects := telegram.NewClient(a.logger, b)

	svc := service.NewModerationService(a.logger, store, registryRepo, warningRepo, auditRepo, chatLogRepo, effects)
	svc.StartLimiterSweep(ctx)

	h = handler.NewHandler(a.logger, svc, effects, a.cfg.AdminUserIDs, me.ID)

	metricsSrv := metrics.NewServer(a.logger, a.cfg.MetricsAddr)
	go func() {
		if err := metricsSrv.Listen(); err != nil && err != http.ErrServerClosed {
			a.logger.Error("Metrics server failed", "error", err)
		}
	}()

	if a.cfg.WebhookHost != "" {
		a.logger.Info("Starting in webhook mode", "host", a.cfg.WebhookHost)
		srv := webhook.NewServer(a.logger, b, a.cfg.WebhookHost, a.cfg.Port)

		cleanup, err := srv.Start(ctx)
		if err != nil {
			return fmt.Errorf("failed to start webhook server: %w", err)
		}
		defer func() {
			if err := cleanup(); err != nil {
				a.logger.Error("Cleanup failed", "error", err)
			}
		}()

		<-ctx.Done()
	} else {
		a.logger.Info("Starting in long polling mode")
		poller := polling.NewPoller(a.logger, b)
		poller.Start(ctx)
	}

	a.logger.Info("Shutting down...")
	return nil
}
