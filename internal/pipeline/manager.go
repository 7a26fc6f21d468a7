package pipeline

import (
	"context"
	"log/slog"
)

// Manager runs filters in their declared order and stops at the first one
// that blocks. A filter that errors before determining a match is skipped
// and the event stays eligible for the remaining filters: the engine fails
// open per filter, never closed.
type Manager struct {
	logger  *slog.Logger
	filters []Filter
}

func NewManager(logger *slog.Logger, filters ...Filter) *Manager {
	return &Manager{logger: logger, filters: filters}
}

func (m *Manager) Process(ctx context.Context, payload Payload) *Result {
	for _, f := range m.filters {
		res, err := f.Process(ctx, payload)
		if err != nil {
			m.logger.Error("Filter failed, protection silently disabled for this event",
				"filter", f.Name(), "chat_id", payload.ChatID, "error", err)
			continue
		}
		if !res.IsAllowed {
			return res
		}
	}
	return Allowed()
}
