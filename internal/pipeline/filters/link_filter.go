package filters

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"guardian-bot/internal/messages"
	"guardian-bot/internal/pipeline"
	"guardian-bot/internal/repository"
	"guardian-bot/internal/settings"
)

type LinkFilter struct {
	settings *settings.Store
	registry repository.RegistryRepository
}

func NewLinkFilter(settings *settings.Store, registry repository.RegistryRepository) *LinkFilter {
	return &LinkFilter{
		settings: settings,
		registry: registry,
	}
}

func (f *LinkFilter) Name() string {
	return "link_filter"
}

var urlRegex = regexp.MustCompile(`(?i)https?://[^\s/$.?#].[^\s]*`)

func (f *LinkFilter) Process(_ context.Context, payload pipeline.Payload) (*pipeline.Result, error) {
	enabled, err := f.settings.LinkProtection()
	if err != nil {
		return nil, err
	}
	if !enabled || payload.Text == "" {
		return pipeline.Allowed(), nil
	}
	if !urlRegex.MatchString(payload.Text) {
		return pipeline.Allowed(), nil
	}

	links, err := f.registry.ListLinks()
	if err != nil {
		return nil, err
	}
	// whitelisting is a substring test against the whole message, a single
	// whitelisted fragment exempts the message
	for _, link := range links {
		if link != "" && strings.Contains(payload.Text, link) {
			return pipeline.Allowed(), nil
		}
	}

	return &pipeline.Result{
		IsAllowed:    false,
		Reason:       messages.MsgReasonLink,
		FilterName:   f.Name(),
		ShouldDelete: true,
		ShouldNotify: true,
		Notification: fmt.Sprintf(messages.MsgLinkDeleted, payload.Mention()),
	}, nil
}
