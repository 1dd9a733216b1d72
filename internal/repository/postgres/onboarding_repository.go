package postgres

import (
	"context"
	"errors"
	"fmt"

	"dealflow/domain"

	"gorm.io/gorm"
)

type OnboardingRepository struct {
	DB *gorm.DB
}

func NewOnboardingRepository(db *gorm.DB) *OnboardingRepository {
	return &OnboardingRepository{
		DB: db,
	}
}

func (r *OnboardingRepository) FindByUserID(ctx context.Context, userID uint) (domain.OnboardingProfile, error) {
	var profile domain.OnboardingProfile

	err := r.DB.WithContext(ctx).Where("user_id = ?", userID).First(&profile).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.OnboardingProfile{}, fmt.Errorf("onboarding profile %w", domain.ErrNotFound)
		}
		return domain.OnboardingProfile{}, err
	}

	return profile, nil
}

func (r *OnboardingRepository) Create(ctx context.Context, profile *domain.OnboardingProfile) error {
	return r.DB.WithContext(ctx).Create(profile).Error
}

// Update performs a compare-and-swap on lock_version.
func (r *OnboardingRepository) Update(ctx context.Context, profile *domain.OnboardingProfile) error {
	currentVersion := profile.LockVersion
	profile.LockVersion++

	result := r.DB.WithContext(ctx).Model(&domain.OnboardingProfile{}).
		Where("id = ? AND lock_version = ?", profile.ID, currentVersion).
		Select("preferences", "skipped_steps", "lock_version").
		Updates(profile)

	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return ErrConflict
	}

	return nil
}
