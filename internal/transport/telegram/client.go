// Package telegram adapts the bot API to the effect surface the moderation
// core invokes.
package telegram

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
)

type Client struct {
	logger *slog.Logger
	bot    *bot.Bot
}

func NewClient(logger *slog.Logger, b *bot.Bot) *Client {
	return &Client{
		logger: logger,
		bot:    b,
	}
}

func (c *Client) DeleteMessage(ctx context.Context, chatID int64, messageID int) error {
	ok, err := c.bot.DeleteMessage(ctx, &bot.DeleteMessageParams{
		ChatID:    chatID,
		MessageID: messageID,
	})
	if err != nil {
		return fmt.Errorf("failed to delete message %d in chat %d: %w", messageID, chatID, err)
	}
	if !ok {
		return fmt.Errorf("delete of message %d in chat %d was rejected", messageID, chatID)
	}
	c.logger.Debug("Deleted message", "chat_id", chatID, "message_id", messageID)
	return nil
}

func (c *Client) Notify(ctx context.Context, chatID int64, text string) error {
	_, err := c.bot.SendMessage(ctx, &bot.SendMessageParams{
		ChatID:    chatID,
		Text:      text,
		ParseMode: models.ParseModeMarkdown,
	})
	if err != nil {
		return fmt.Errorf("failed to send message to chat %d: %w", chatID, err)
	}
	return nil
}
