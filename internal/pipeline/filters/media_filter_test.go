package filters

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"guardian-bot/internal/pipeline"
	"guardian-bot/internal/settings"
)

func TestMediaFilter_Process(t *testing.T) {
	ctx := context.Background()
	enabled := map[string]string{settings.KeyMediaSpamProtection: "on"}

	tests := []struct {
		name        string
		values      map[string]string
		payload     pipeline.Payload
		wantAllowed bool
	}{
		{
			name:        "Protection off allows bare media",
			values:      nil,
			payload:     pipeline.Payload{HasMedia: true},
			wantAllowed: true,
		},
		{
			name:        "Bare media blocked",
			values:      enabled,
			payload:     pipeline.Payload{HasMedia: true},
			wantAllowed: false,
		},
		{
			name:        "Captioned media allowed",
			values:      enabled,
			payload:     pipeline.Payload{HasMedia: true, Caption: "my cat"},
			wantAllowed: true,
		},
		{
			name:        "Text message allowed",
			values:      enabled,
			payload:     pipeline.Payload{Text: "hello"},
			wantAllowed: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := NewMediaFilter(newStore(tt.values))
			res, err := f.Process(ctx, tt.payload)
			assert.NoError(t, err)
			assert.Equal(t, tt.wantAllowed, res.IsAllowed)
		})
	}
}
