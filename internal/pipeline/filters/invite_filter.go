package filters

import (
	"context"
	"fmt"
	"regexp"

	"guardian-bot/internal/messages"
	"guardian-bot/internal/pipeline"
	"guardian-bot/internal/settings"
)

// InviteFilter blocks Telegram group invite links. It is deliberately
// separate from LinkFilter: invites are removed even in chats that allow
// general links, and the whitelist never applies to them.
type InviteFilter struct {
	settings *settings.Store
}

func NewInviteFilter(settings *settings.Store) *InviteFilter {
	return &InviteFilter{settings: settings}
}

func (f *InviteFilter) Name() string {
	return "invite_filter"
}

var inviteRegex = regexp.MustCompile(`(?i)(t\.me|telegram\.me)/joinchat/[a-zA-Z0-9_-]+`)

func (f *InviteFilter) Process(_ context.Context, payload pipeline.Payload) (*pipeline.Result, error) {
	enabled, err := f.settings.InviteProtection()
	if err != nil {
		return nil, err
	}
	if !enabled || payload.Text == "" {
		return pipeline.Allowed(), nil
	}
	if !inviteRegex.MatchString(payload.Text) {
		return pipeline.Allowed(), nil
	}

	return &pipeline.Result{
		IsAllowed:    false,
		Reason:       messages.MsgReasonInviteLink,
		FilterName:   f.Name(),
		ShouldDelete: true,
		ShouldNotify: true,
		Notification: fmt.Sprintf(messages.MsgInviteDeleted, payload.Mention()),
	}, nil
}
