package postgres

import (
	"context"
	"errors"
	"fmt"

	"dealflow/domain"

	"gorm.io/gorm"
)

type ActivationRepository struct {
	DB *gorm.DB
}

func NewActivationRepository(db *gorm.DB) *ActivationRepository {
	return &ActivationRepository{
		DB: db,
	}
}

func (r *ActivationRepository) FindByUserID(ctx context.Context, userID uint) (domain.ActivationState, error) {
	var state domain.ActivationState

	err := r.DB.WithContext(ctx).Where("user_id = ?", userID).First(&state).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.ActivationState{}, fmt.Errorf("activation state %w", domain.ErrNotFound)
		}
		return domain.ActivationState{}, err
	}

	return state, nil
}

func (r *ActivationRepository) Create(ctx context.Context, state *domain.ActivationState) error {
	return r.DB.WithContext(ctx).Create(state).Error
}

// Update performs a compare-and-swap on lock_version. Zero rows affected
// means another writer got there first.
func (r *ActivationRepository) Update(ctx context.Context, state *domain.ActivationState) error {
	currentVersion := state.LockVersion
	state.LockVersion++

	result := r.DB.WithContext(ctx).Model(&domain.ActivationState{}).
		Where("id = ? AND lock_version = ?", state.ID, currentVersion).
		Select("activation_path", "milestones", "activated", "shown_nudges", "dismissed_nudges", "lock_version").
		Updates(state)

	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return ErrConflict
	}

	return nil
}
