package pipeline

import (
	"context"
	"log/slog"
	"testing"
)

type mockFilter struct {
	name      string
	shouldErr bool
	allow     bool
	reason    string
}

func (f *mockFilter) Name() string { return f.name }
func (f *mockFilter) Process(_ context.Context, _ Payload) (*Result, error) {
	if f.shouldErr {
		return nil, context.DeadlineExceeded
	}
	if !f.allow {
		return &Result{
			IsAllowed:  false,
			Reason:     f.reason,
			FilterName: f.name,
		}, nil
	}
	return Allowed(), nil
}

func TestManager_Process(t *testing.T) {
	tests := []struct {
		name        string
		filters     []Filter
		wantAllowed bool
		wantFilter  string
	}{
		{
			name:        "No filters",
			filters:     []Filter{},
			wantAllowed: true,
		},
		{
			name: "All pass",
			filters: []Filter{
				&mockFilter{name: "f1", allow: true},
				&mockFilter{name: "f2", allow: true},
			},
			wantAllowed: true,
		},
		{
			name: "First blocks",
			filters: []Filter{
				&mockFilter{name: "f1", allow: false, reason: "fail1"},
				&mockFilter{name: "f2", allow: true},
			},
			wantAllowed: false,
			wantFilter:  "f1",
		},
		{
			name: "Second blocks",
			filters: []Filter{
				&mockFilter{name: "f1", allow: true},
				&mockFilter{name: "f2", allow: false, reason: "fail2"},
			},
			wantAllowed: false,
			wantFilter:  "f2",
		},
		{
			name: "Erroring filter fails open, chain continues",
			filters: []Filter{
				&mockFilter{name: "f1", shouldErr: true},
				&mockFilter{name: "f2", allow: false, reason: "fail2"},
			},
			wantAllowed: false,
			wantFilter:  "f2",
		},
		{
			name: "Erroring filter alone allows",
			filters: []Filter{
				&mockFilter{name: "f1", shouldErr: true},
			},
			wantAllowed: true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := NewManager(slog.Default(), tt.filters...)
			res := m.Process(context.Background(), Payload{ChatID: 123, Text: "hello"})
			if res.IsAllowed != tt.wantAllowed {
				t.Errorf("Process() allowed = %v, want %v", res.IsAllowed, tt.wantAllowed)
			}
			if !tt.wantAllowed && res.FilterName != tt.wantFilter {
				t.Errorf("Process() filter = %v, want %v", res.FilterName, tt.wantFilter)
			}
		})
	}
}
