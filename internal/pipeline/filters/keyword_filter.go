package filters

import (
	"context"
	"fmt"
	"strings"

	"guardian-bot/internal/messages"
	"guardian-bot/internal/pipeline"
	"guardian-bot/internal/repository"
	"guardian-bot/internal/settings"
)

type KeywordFilter struct {
	settings *settings.Store
	registry repository.RegistryRepository
}

func NewKeywordFilter(settings *settings.Store, registry repository.RegistryRepository) *KeywordFilter {
	return &KeywordFilter{
		settings: settings,
		registry: registry,
	}
}

func (f *KeywordFilter) Name() string {
	return "keyword_filter"
}

func (f *KeywordFilter) Process(_ context.Context, payload pipeline.Payload) (*pipeline.Result, error) {
	enabled, err := f.settings.KeywordProtection()
	if err != nil {
		return nil, err
	}
	if !enabled || payload.Text == "" {
		return pipeline.Allowed(), nil
	}

	keywords, err := f.registry.ListKeywords()
	if err != nil {
		return nil, err
	}

	lowerText := strings.ToLower(payload.Text)
	for _, keyword := range keywords {
		// keywords are lower-cased at insertion
		if keyword != "" && strings.Contains(lowerText, keyword) {
			return &pipeline.Result{
				IsAllowed:    false,
				Reason:       messages.MsgReasonKeyword,
				FilterName:   f.Name(),
				ShouldDelete: true,
				ShouldNotify: true,
				Notification: fmt.Sprintf(messages.MsgKeywordDeleted, payload.Mention()),
			}, nil
		}
	}
	return pipeline.Allowed(), nil
}
