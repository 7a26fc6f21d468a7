package filters

import (
	"context"
	"fmt"

	"guardian-bot/internal/messages"
	"guardian-bot/internal/pipeline"
	"guardian-bot/internal/ratelimit"
	"guardian-bot/internal/settings"
)

// FloodFilter runs last: it is the only stateful filter, and must not record
// an event the earlier filters already removed for another reason. When
// flood protection is off the limiter is never consulted.
type FloodFilter struct {
	settings *settings.Store
	limiter  *ratelimit.Limiter
}

func NewFloodFilter(settings *settings.Store, limiter *ratelimit.Limiter) *FloodFilter {
	return &FloodFilter{
		settings: settings,
		limiter:  limiter,
	}
}

func (f *FloodFilter) Name() string {
	return "flood_filter"
}

func (f *FloodFilter) Process(_ context.Context, payload pipeline.Payload) (*pipeline.Result, error) {
	enabled, err := f.settings.FloodProtection()
	if err != nil {
		return nil, err
	}
	if !enabled {
		return pipeline.Allowed(), nil
	}

	limit, window, err := f.settings.FloodLimits()
	if err != nil {
		return nil, err
	}

	if !f.limiter.RegisterAndCheck(payload.SenderID, payload.SentAt, limit, window) {
		return pipeline.Allowed(), nil
	}

	return &pipeline.Result{
		IsAllowed:    false,
		Reason:       messages.MsgReasonFlood,
		FilterName:   f.Name(),
		ShouldDelete: true,
		ShouldNotify: true,
		Notification: fmt.Sprintf(messages.MsgFloodDeleted, payload.Mention()),
	}, nil
}
