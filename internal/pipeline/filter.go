package pipeline

import (
	"context"
)

type Result struct {
	IsAllowed    bool
	Reason       string
	FilterName   string
	ShouldDelete bool
	// ShouldNotify pairs the deletion with exactly one notification to the
	// chat. The lock filter deletes silently.
	ShouldNotify bool
	Notification string
}

type Filter interface {
	Name() string
	Process(ctx context.Context, payload Payload) (*Result, error)
}

func Allowed() *Result {
	return &Result{IsAllowed: true}
}
