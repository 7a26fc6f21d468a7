package polling

import (
	"context"
	"log/slog"

	"github.com/go-telegram/bot"
)

type Poller struct {
	logger *slog.Logger
	bot    *bot.Bot
}

func NewPoller(logger *slog.Logger, b *bot.Bot) *Poller {
	return &Poller{
		logger: logger,
		bot:    b,
	}
}

// Start runs long polling until ctx is done.
func (p *Poller) Start(ctx context.Context) {
	p.logger.Info("Starting long polling")
	p.bot.Start(ctx)
}
