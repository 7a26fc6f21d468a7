package handler

import (
	"context"
	"time"

	"github.com/go-telegram/bot/models"

	"guardian-bot/internal/pipeline"
)

func (h *Handler) handleMessage(ctx context.Context, msg *models.Message) {
	payload := payloadFrom(msg)

	// the filter chain only sees group traffic from regular members; admin
	// and private-chat events bypass it but are still logged
	if !isGroupChat(msg.Chat) || h.isAdmin(msg.From.ID) || msg.From.ID == h.selfID {
		h.svc.LogChatMessage(ctx, payload)
		return
	}

	h.svc.LogChatMessage(ctx, payload)

	res, err := h.svc.ModerateMessage(ctx, payload)
	if err != nil {
		h.logger.Error("Failed to moderate message", "chat_id", msg.Chat.ID, "error", err)
		return
	}
	if res.IsAllowed {
		h.logger.Debug("Message allowed", "chat_id", msg.Chat.ID, "user_id", msg.From.ID)
	}
}

func payloadFrom(msg *models.Message) pipeline.Payload {
	return pipeline.Payload{
		ChatID:     msg.Chat.ID,
		MessageID:  msg.ID,
		SenderID:   msg.From.ID,
		SenderName: senderName(msg.From),
		Text:       msg.Text,
		Caption:    msg.Caption,
		HasMedia:   len(msg.Photo) > 0 || msg.Video != nil || msg.Sticker != nil || msg.Animation != nil,
		SentAt:     time.Unix(int64(msg.Date), 0),
	}
}

func senderName(user *models.User) string {
	if user.Username != "" {
		return "@" + user.Username
	}
	name := user.FirstName
	if user.LastName != "" {
		name += " " + user.LastName
	}
	return name
}
