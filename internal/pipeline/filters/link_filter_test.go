package filters

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"guardian-bot/internal/pipeline"
	"guardian-bot/internal/settings"
)

func TestLinkFilter_Process(t *testing.T) {
	ctx := context.Background()
	enabled := map[string]string{settings.KeyLinkProtection: "on"}

	tests := []struct {
		name        string
		values      map[string]string
		links       []string
		text        string
		wantAllowed bool
	}{
		{
			name:        "Protection off allows links",
			values:      nil,
			text:        "check https://spam.example.com now",
			wantAllowed: true,
		},
		{
			name:        "Plain text allowed",
			values:      enabled,
			text:        "no links here",
			wantAllowed: true,
		},
		{
			name:        "URL blocked",
			values:      enabled,
			text:        "check https://spam.example.com now",
			wantAllowed: false,
		},
		{
			name:        "Whitelisted substring exempts the message",
			values:      enabled,
			links:       []string{"example.com"},
			text:        "check https://spam.example.com now",
			wantAllowed: true,
		},
		{
			name:        "Whitelist for another host does not apply",
			values:      enabled,
			links:       []string{"github.com"},
			text:        "check https://spam.example.com now",
			wantAllowed: false,
		},
		{
			name:        "Bare domain without scheme is not a URL",
			values:      enabled,
			text:        "visit example.com sometime",
			wantAllowed: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := NewLinkFilter(newStore(tt.values), &mockRegistry{links: tt.links})
			res, err := f.Process(ctx, pipeline.Payload{ChatID: -100, SenderID: 1, Text: tt.text})
			assert.NoError(t, err)
			assert.Equal(t, tt.wantAllowed, res.IsAllowed)
			if !tt.wantAllowed {
				assert.True(t, res.ShouldDelete)
				assert.True(t, res.ShouldNotify)
				assert.NotEmpty(t, res.Notification)
			}
		})
	}
}

func TestLinkFilter_RegistryErrorPropagates(t *testing.T) {
	f := NewLinkFilter(
		newStore(map[string]string{settings.KeyLinkProtection: "on"}),
		&mockRegistry{err: context.DeadlineExceeded},
	)
	_, err := f.Process(context.Background(), pipeline.Payload{Text: "https://example.com"})
	assert.Error(t, err)
}
