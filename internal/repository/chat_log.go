package repository

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"
)

type ChatLogRepository interface {
	Add(ctx context.Context, messageID int, chatID, userID int64, userName, text string, sentAt time.Time) error
}

type PostgresChatLogRepository struct {
	db *gorm.DB
}

func NewChatLogRepository(db *gorm.DB) ChatLogRepository {
	return &PostgresChatLogRepository{db: db}
}

func (r *PostgresChatLogRepository) Add(ctx context.Context, messageID int, chatID, userID int64, userName, text string, sentAt time.Time) error {
	entry := ChatLog{
		MessageID: messageID,
		ChatID:    chatID,
		UserID:    userID,
		UserName:  userName,
		Text:      text,
		CreatedAt: sentAt,
	}
	if err := r.db.WithContext(ctx).Create(&entry).Error; err != nil {
		return fmt.Errorf("failed to log chat message: %w", err)
	}
	return nil
}
