package pipeline

import (
	"fmt"
	"time"
)

type Payload struct {
	ChatID     int64
	MessageID  int
	SenderID   int64
	SenderName string
	Text       string
	Caption    string
	HasMedia   bool
	SentAt     time.Time
}

// Mention renders the sender reference used in deletion notifications.
func (p Payload) Mention() string {
	if p.SenderName != "" {
		return fmt.Sprintf("[%s](tg://user?id=%d)", p.SenderName, p.SenderID)
	}
	return fmt.Sprintf("[user](tg://user?id=%d)", p.SenderID)
}
