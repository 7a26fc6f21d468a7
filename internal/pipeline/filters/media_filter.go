package filters

import (
	"context"
	"fmt"

	"guardian-bot/internal/messages"
	"guardian-bot/internal/pipeline"
	"guardian-bot/internal/settings"
)

// MediaFilter removes photo/video/sticker/animation payloads that carry no
// caption.
type MediaFilter struct {
	settings *settings.Store
}

func NewMediaFilter(settings *settings.Store) *MediaFilter {
	return &MediaFilter{settings: settings}
}

func (f *MediaFilter) Name() string {
	return "media_filter"
}

func (f *MediaFilter) Process(_ context.Context, payload pipeline.Payload) (*pipeline.Result, error) {
	if !payload.HasMedia || payload.Caption != "" {
		return pipeline.Allowed(), nil
	}
	enabled, err := f.settings.MediaSpamProtection()
	if err != nil {
		return nil, err
	}
	if !enabled {
		return pipeline.Allowed(), nil
	}

	return &pipeline.Result{
		IsAllowed:    false,
		Reason:       messages.MsgReasonMediaSpam,
		FilterName:   f.Name(),
		ShouldDelete: true,
		ShouldNotify: true,
		Notification: fmt.Sprintf(messages.MsgMediaSpamDeleted, payload.Mention()),
	}, nil
}
