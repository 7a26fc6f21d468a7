package service

import (
	"context"
	"time"

	"guardian-bot/internal/repository"
	"guardian-bot/internal/settings"
)

type mockSettingsRepo struct {
	values map[string]string
	err    error
}

func newMockSettingsRepo(values map[string]string) *mockSettingsRepo {
	if values == nil {
		values = make(map[string]string)
	}
	return &mockSettingsRepo{values: values}
}

func (m *mockSettingsRepo) Get(key, defaultValue string) (string, error) {
	if m.err != nil {
		return defaultValue, m.err
	}
	if v, ok := m.values[key]; ok {
		return v, nil
	}
	return defaultValue, nil
}

func (m *mockSettingsRepo) Set(key, value string) error {
	if m.err != nil {
		return m.err
	}
	m.values[key] = value
	return nil
}

func newTestStore(values map[string]string) *settings.Store {
	return settings.NewStore(newMockSettingsRepo(values))
}

type mockRegistry struct {
	links    []string
	keywords []string
	err      error
}

func (m *mockRegistry) AddLink(link string) (bool, error) {
	if m.err != nil {
		return false, m.err
	}
	for _, l := range m.links {
		if l == link {
			return false, nil
		}
	}
	m.links = append(m.links, link)
	return true, nil
}

func (m *mockRegistry) RemoveLink(link string) (bool, error) {
	for i, l := range m.links {
		if l == link {
			m.links = append(m.links[:i], m.links[i+1:]...)
			return true, nil
		}
	}
	return false, m.err
}

func (m *mockRegistry) ListLinks() ([]string, error) { return m.links, m.err }

func (m *mockRegistry) AddKeyword(keyword string) (bool, error) {
	if m.err != nil {
		return false, m.err
	}
	for _, k := range m.keywords {
		if k == keyword {
			return false, nil
		}
	}
	m.keywords = append(m.keywords, keyword)
	return true, nil
}

func (m *mockRegistry) RemoveKeyword(keyword string) (bool, error) {
	for i, k := range m.keywords {
		if k == keyword {
			m.keywords = append(m.keywords[:i], m.keywords[i+1:]...)
			return true, nil
		}
	}
	return false, m.err
}

func (m *mockRegistry) ListKeywords() ([]string, error) { return m.keywords, m.err }

type mockWarningRepo struct {
	warnings []repository.Warning
	err      error
}

func (m *mockWarningRepo) Add(_ context.Context, userID, groupID, adminID int64, reason string) (int, error) {
	if m.err != nil {
		return 0, m.err
	}
	m.warnings = append(m.warnings, repository.Warning{
		UserID:    userID,
		GroupID:   groupID,
		AdminID:   adminID,
		Reason:    reason,
		CreatedAt: time.Now(),
	})
	count := 0
	for _, w := range m.warnings {
		if w.UserID == userID {
			count++
		}
	}
	return count, nil
}

func (m *mockWarningRepo) ListByUser(_ context.Context, userID int64) ([]repository.Warning, error) {
	if m.err != nil {
		return nil, m.err
	}
	var out []repository.Warning
	for i := len(m.warnings) - 1; i >= 0; i-- {
		if m.warnings[i].UserID == userID {
			out = append(out, m.warnings[i])
		}
	}
	return out, nil
}

func (m *mockWarningRepo) CountByUser(_ context.Context, userID int64) (int, error) {
	count := 0
	for _, w := range m.warnings {
		if w.UserID == userID {
			count++
		}
	}
	return count, m.err
}

type mockAuditRepo struct {
	actions []repository.AdminAction
	err     error
}

func (m *mockAuditRepo) Add(_ context.Context, adminID int64, action string, targetID int64) error {
	if m.err != nil {
		return m.err
	}
	m.actions = append(m.actions, repository.AdminAction{AdminID: adminID, Action: action, TargetID: targetID})
	return nil
}

func (m *mockAuditRepo) ListRecent(_ context.Context, limit int) ([]repository.AdminAction, error) {
	return m.actions, m.err
}

type mockChatLogRepo struct {
	entries int
	err     error
}

func (m *mockChatLogRepo) Add(_ context.Context, _ int, _, _ int64, _, _ string, _ time.Time) error {
	if m.err != nil {
		return m.err
	}
	m.entries++
	return nil
}

type deleteCall struct {
	chatID    int64
	messageID int
}

type notifyCall struct {
	chatID int64
	text   string
}

type mockEffects struct {
	deletes   []deleteCall
	notifies  []notifyCall
	deleteErr error
	notifyErr error
}

func (m *mockEffects) DeleteMessage(_ context.Context, chatID int64, messageID int) error {
	m.deletes = append(m.deletes, deleteCall{chatID: chatID, messageID: messageID})
	return m.deleteErr
}

func (m *mockEffects) Notify(_ context.Context, chatID int64, text string) error {
	m.notifies = append(m.notifies, notifyCall{chatID: chatID, text: text})
	return m.notifyErr
}
