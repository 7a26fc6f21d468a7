package handler

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"guardian-bot/internal/messages"
	"guardian-bot/internal/metrics"
	"guardian-bot/internal/service"
)

type Handler struct {
	logger   *slog.Logger
	svc      service.Service
	effects  service.Effects
	adminIDs map[int64]struct{}
	selfID   int64
	tracer   trace.Tracer
}

func NewHandler(logger *slog.Logger, svc service.Service, effects service.Effects, adminIDs []int64, selfID int64) *Handler {
	admins := make(map[int64]struct{}, len(adminIDs))
	for _, id := range adminIDs {
		admins[id] = struct{}{}
	}
	return &Handler{
		logger:   logger,
		svc:      svc,
		effects:  effects,
		adminIDs: admins,
		selfID:   selfID,
		tracer:   otel.Tracer("handler"),
	}
}

// HandleUpdate is the bot's default update handler.
func (h *Handler) HandleUpdate(ctx context.Context, _ *bot.Bot, update *models.Update) {
	if update.Message == nil || update.Message.From == nil {
		return
	}

	start := time.Now()
	defer func() {
		metrics.ObserveUpdateProcessing("message", time.Since(start).Seconds(), nil)
	}()

	ctx, span := h.tracer.Start(ctx, "HandleUpdate")
	defer span.End()

	msg := update.Message
	span.SetAttributes(
		attribute.Int64("chat_id", msg.Chat.ID),
		attribute.Int64("user_id", msg.From.ID),
	)

	if strings.HasPrefix(msg.Text, "/") {
		h.handleCommand(ctx, msg)
		return
	}

	h.handleMessage(ctx, msg)
}

func (h *Handler) isAdmin(userID int64) bool {
	_, ok := h.adminIDs[userID]
	return ok
}

func isGroupChat(chat models.Chat) bool {
	return chat.Type == "group" || chat.Type == "supergroup"
}

func (h *Handler) reply(ctx context.Context, chatID int64, text string) {
	if err := h.effects.Notify(ctx, chatID, text); err != nil {
		h.logger.Error("Failed to send reply", "chat_id", chatID, "error", err)
	}
}

func (h *Handler) denyNonAdmin(ctx context.Context, msg *models.Message) {
	// in a group the command is just ignored; replying would let anyone
	// probe the bot
	if msg.Chat.Type == "private" {
		h.reply(ctx, msg.Chat.ID, messages.MsgNotAdmin)
		return
	}
	h.logger.Warn("Non-admin tried an admin command",
		"user_id", msg.From.ID, "chat_id", msg.Chat.ID, "text", msg.Text)
}
