package repository

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"
)

type AdminActionRepository interface {
	Add(ctx context.Context, adminID int64, action string, targetID int64) error
	ListRecent(ctx context.Context, limit int) ([]AdminAction, error)
}

type PostgresAdminActionRepository struct {
	db *gorm.DB
}

func NewAdminActionRepository(db *gorm.DB) AdminActionRepository {
	return &PostgresAdminActionRepository{db: db}
}

func (r *PostgresAdminActionRepository) Add(ctx context.Context, adminID int64, action string, targetID int64) error {
	entry := AdminAction{
		AdminID:   adminID,
		Action:    action,
		TargetID:  targetID,
		CreatedAt: time.Now(),
	}
	if err := r.db.WithContext(ctx).Create(&entry).Error; err != nil {
		return fmt.Errorf("failed to log admin action: %w", err)
	}
	return nil
}

func (r *PostgresAdminActionRepository) ListRecent(ctx context.Context, limit int) ([]AdminAction, error) {
	var actions []AdminAction
	err := r.db.WithContext(ctx).
		Order("created_at DESC").
		Limit(limit).
		Find(&actions).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list admin actions: %w", err)
	}
	return actions, nil
}
