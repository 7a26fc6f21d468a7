package handler

import (
	"context"

	"guardian-bot/internal/pipeline"
	"guardian-bot/internal/repository"
	"guardian-bot/internal/service"
)

// mockService records which operations were invoked; per-method Func fields
// override the default allow-everything behavior.
type mockService struct {
	moderated []pipeline.Payload
	logged    []pipeline.Payload
	toggles   []string

	ModerateMessageFunc func(ctx context.Context, payload pipeline.Payload) (*pipeline.Result, error)
	IssueWarningFunc    func(ctx context.Context, userID, groupID, adminID int64, reason string) (int, bool, error)
}

var _ service.Service = (*mockService)(nil)

func (m *mockService) ModerateMessage(ctx context.Context, payload pipeline.Payload) (*pipeline.Result, error) {
	m.moderated = append(m.moderated, payload)
	if m.ModerateMessageFunc != nil {
		return m.ModerateMessageFunc(ctx, payload)
	}
	return pipeline.Allowed(), nil
}

func (m *mockService) LogChatMessage(_ context.Context, payload pipeline.Payload) {
	m.logged = append(m.logged, payload)
}

func (m *mockService) IssueWarning(ctx context.Context, userID, groupID, adminID int64, reason string) (int, bool, error) {
	if m.IssueWarningFunc != nil {
		return m.IssueWarningFunc(ctx, userID, groupID, adminID, reason)
	}
	return 1, false, nil
}

func (m *mockService) ListWarnings(_ context.Context, _ int64) ([]repository.Warning, error) {
	return nil, nil
}

func (m *mockService) ToggleProtection(_ context.Context, _ int64, feature string, enabled bool) error {
	state := "off"
	if enabled {
		state = "on"
	}
	m.toggles = append(m.toggles, feature+"="+state)
	return nil
}

func (m *mockService) SetFloodLimit(_ context.Context, _ int64, _, _ int) error { return nil }
func (m *mockService) SetWarningLimit(_ context.Context, _ int64, _ int) error  { return nil }
func (m *mockService) LockGroup(_ context.Context, _, _ int64) error            { return nil }
func (m *mockService) UnlockGroup(_ context.Context, _, _ int64) error          { return nil }

func (m *mockService) ProtectionOverview(_ context.Context, _ int64) (service.Overview, error) {
	return service.Overview{}, nil
}

func (m *mockService) AddWhitelistLink(_ context.Context, _ int64, _ string) (bool, error) {
	return true, nil
}

func (m *mockService) RemoveWhitelistLink(_ context.Context, _ int64, _ string) (bool, error) {
	return true, nil
}

func (m *mockService) ListWhitelistLinks(_ context.Context) ([]string, error) { return nil, nil }

func (m *mockService) AddKeyword(_ context.Context, _ int64, _ string) (bool, error) {
	return true, nil
}

func (m *mockService) RemoveKeyword(_ context.Context, _ int64, _ string) (bool, error) {
	return true, nil
}

func (m *mockService) ListKeywords(_ context.Context) ([]string, error) { return nil, nil }

func (m *mockService) StartLimiterSweep(_ context.Context) {}

type mockEffects struct {
	notifies []string
	deletes  int
}

func (m *mockEffects) DeleteMessage(_ context.Context, _ int64, _ int) error {
	m.deletes++
	return nil
}

func (m *mockEffects) Notify(_ context.Context, _ int64, text string) error {
	m.notifies = append(m.notifies, text)
	return nil
}
