package repository

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"
)

type WarningRepository interface {
	// Add appends a warning and returns the user's updated total count
	// across all groups.
	Add(ctx context.Context, userID, groupID, adminID int64, reason string) (int, error)
	ListByUser(ctx context.Context, userID int64) ([]Warning, error)
	CountByUser(ctx context.Context, userID int64) (int, error)
}

type PostgresWarningRepository struct {
	db *gorm.DB
}

func NewWarningRepository(db *gorm.DB) WarningRepository {
	return &PostgresWarningRepository{db: db}
}

func (r *PostgresWarningRepository) Add(ctx context.Context, userID, groupID, adminID int64, reason string) (int, error) {
	warning := Warning{
		UserID:    userID,
		GroupID:   groupID,
		AdminID:   adminID,
		Reason:    reason,
		CreatedAt: time.Now(),
	}
	if err := r.db.WithContext(ctx).Create(&warning).Error; err != nil {
		return 0, fmt.Errorf("failed to add warning: %w", err)
	}
	return r.CountByUser(ctx, userID)
}

func (r *PostgresWarningRepository) ListByUser(ctx context.Context, userID int64) ([]Warning, error) {
	var warnings []Warning
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&warnings).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list warnings: %w", err)
	}
	return warnings, nil
}

func (r *PostgresWarningRepository) CountByUser(ctx context.Context, userID int64) (int, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&Warning{}).
		Where("user_id = ?", userID).
		Count(&count).Error
	if err != nil {
		return 0, fmt.Errorf("failed to count warnings: %w", err)
	}
	return int(count), nil
}
