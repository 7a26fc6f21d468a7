package filters

import (
	"context"

	"guardian-bot/internal/messages"
	"guardian-bot/internal/pipeline"
	"guardian-bot/internal/settings"
)

// LockFilter removes every message while the chat is in read-only mode. It
// runs first: the coarsest, cheapest check in the chain. Unlike the other
// filters it deletes without notifying, anything else would flood a locked
// chat with bot replies.
type LockFilter struct {
	settings *settings.Store
}

func NewLockFilter(settings *settings.Store) *LockFilter {
	return &LockFilter{settings: settings}
}

func (f *LockFilter) Name() string {
	return "lock_filter"
}

func (f *LockFilter) Process(_ context.Context, payload pipeline.Payload) (*pipeline.Result, error) {
	locked, err := f.settings.GroupLocked(payload.ChatID)
	if err != nil {
		return nil, err
	}
	if !locked {
		return pipeline.Allowed(), nil
	}
	return &pipeline.Result{
		IsAllowed:    false,
		Reason:       messages.MsgReasonGroupLocked,
		FilterName:   f.Name(),
		ShouldDelete: true,
	}, nil
}
