package postgres

import (
	"context"
	"errors"
	"fmt"

	"dealflow/domain"

	"gorm.io/gorm"
)

type RetentionRepository struct {
	DB *gorm.DB
}

func NewRetentionRepository(db *gorm.DB) *RetentionRepository {
	return &RetentionRepository{
		DB: db,
	}
}

func (r *RetentionRepository) FindByUserID(ctx context.Context, userID uint) (domain.RetentionState, error) {
	var state domain.RetentionState

	err := r.DB.WithContext(ctx).Where("user_id = ?", userID).First(&state).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.RetentionState{}, fmt.Errorf("retention state %w", domain.ErrNotFound)
		}
		return domain.RetentionState{}, err
	}

	return state, nil
}

func (r *RetentionRepository) FindAll(ctx context.Context) ([]domain.RetentionState, error) {
	var states []domain.RetentionState

	if err := r.DB.WithContext(ctx).Find(&states).Error; err != nil {
		return nil, err
	}

	return states, nil
}

func (r *RetentionRepository) Create(ctx context.Context, state *domain.RetentionState) error {
	return r.DB.WithContext(ctx).Create(state).Error
}

// Update performs a compare-and-swap on lock_version.
func (r *RetentionRepository) Update(ctx context.Context, state *domain.RetentionState) error {
	currentVersion := state.LockVersion
	state.LockVersion++

	result := r.DB.WithContext(ctx).Model(&domain.RetentionState{}).
		Where("id = ? AND lock_version = ?", state.ID, currentVersion).
		Select("engagement_metrics", "re_engagement", "lock_version").
		Updates(state)

	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return ErrConflict
	}

	return nil
}
