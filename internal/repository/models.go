package repository

import (
	"time"

	"github.com/lib/pq"
)

// Setting is one row of the durable key->string map. Boolean settings hold
// the literal strings "on"/"off"; absence of a row means the default.
type Setting struct {
	Key       string `gorm:"primaryKey;size:255"`
	Value     string `gorm:"not null"`
	UpdatedAt time.Time
}

// Registry is a single global row carrying the link whitelist and the
// forbidden keyword list.
type Registry struct {
	ID                int64          `gorm:"primaryKey;autoIncrement:false"`
	WhitelistLinks    pq.StringArray `gorm:"type:text[]"`
	ForbiddenKeywords pq.StringArray `gorm:"type:text[]"`
	UpdatedAt         time.Time
}

// Warning is append-only and immutable once written.
type Warning struct {
	ID        int64     `gorm:"primaryKey"`
	UserID    int64     `gorm:"not null;index:idx_warnings_user_created,priority:1"`
	GroupID   int64     `gorm:"not null"`
	AdminID   int64     `gorm:"not null"`
	Reason    string    `gorm:"size:500"`
	CreatedAt time.Time `gorm:"not null;index:idx_warnings_user_created,priority:2"`
}

type AdminAction struct {
	ID        int64  `gorm:"primaryKey"`
	AdminID   int64  `gorm:"not null;index"`
	Action    string `gorm:"size:255;not null"`
	TargetID  int64
	CreatedAt time.Time `gorm:"not null"`
}

type ChatLog struct {
	ID        int64 `gorm:"primaryKey"`
	MessageID int   `gorm:"not null"`
	ChatID    int64 `gorm:"not null;index"`
	UserID    int64 `gorm:"not null"`
	UserName  string `gorm:"size:255"`
	Text      string
	CreatedAt time.Time `gorm:"not null"`
}
