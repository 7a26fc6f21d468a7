package filters

import (
	"guardian-bot/internal/settings"
)

type mockSettingsRepo struct {
	values map[string]string
	err    error
	GetFunc func(key, defaultValue string) (string, error)
}

func (m *mockSettingsRepo) Get(key, defaultValue string) (string, error) {
	if m.GetFunc != nil {
		return m.GetFunc(key, defaultValue)
	}
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
	if m.values == nil {
		m.values = make(map[string]string)
	}
	m.values[key] = value
	return nil
}

func newStore(values map[string]string) *settings.Store {
	return settings.NewStore(&mockSettingsRepo{values: values})
}

type mockRegistry struct {
	links    []string
	keywords []string
	err      error
	ListLinksFunc    func() ([]string, error)
	ListKeywordsFunc func() ([]string, error)
}

func (m *mockRegistry) AddLink(link string) (bool, error)       { return true, m.err }
func (m *mockRegistry) RemoveLink(link string) (bool, error)    { return true, m.err }
func (m *mockRegistry) AddKeyword(keyword string) (bool, error) { return true, m.err }
func (m *mockRegistry) RemoveKeyword(keyword string) (bool, error) {
	return true, m.err
}

func (m *mockRegistry) ListLinks() ([]string, error) {
	if m.ListLinksFunc != nil {
		return m.ListLinksFunc()
	}
	return m.links, m.err
}

func (m *mockRegistry) ListKeywords() ([]string, error) {
	if m.ListKeywordsFunc != nil {
		return m.ListKeywordsFunc()
	}
	return m.keywords, m.err
}
