package engagement

import (
	"context"
	"errors"
	"fmt"

	"dealflow/domain"

	"gorm.io/datatypes"
)

// StartOnboarding creates the onboarding profile. Starting twice returns
// the existing profile untouched: the profile is created once and only
// mutated afterwards.
func (s *EngagementService) StartOnboarding(ctx context.Context, userID uint, prefs domain.OnboardingPreferences) (domain.OnboardingProfile, error) {
	existing, err := s.onboardingRepo.FindByUserID(ctx, userID)
	if err == nil {
		return existing, nil
	}
	if !errors.Is(err, domain.ErrNotFound) {
		return domain.OnboardingProfile{}, err
	}

	profile := domain.OnboardingProfile{
		UserID:      userID,
		Preferences: datatypes.NewJSONType(prefs),
		StartedAt:   s.now(),
	}

	if err := s.onboardingRepo.Create(ctx, &profile); err != nil {
		return domain.OnboardingProfile{}, fmt.Errorf("create onboarding profile: %w", err)
	}

	return profile, nil
}

// GetOnboardingProfile returns the user's profile.
func (s *EngagementService) GetOnboardingProfile(ctx context.Context, userID uint) (domain.OnboardingProfile, error) {
	return s.onboardingRepo.FindByUserID(ctx, userID)
}

// UpdatePreferences replaces the preference document as wizard steps
// complete.
func (s *EngagementService) UpdatePreferences(ctx context.Context, userID uint, prefs domain.OnboardingPreferences) (domain.OnboardingProfile, error) {
	profile, err := s.onboardingRepo.FindByUserID(ctx, userID)
	if err != nil {
		return domain.OnboardingProfile{}, err
	}

	profile.Preferences = datatypes.NewJSONType(prefs)
	if err := s.onboardingRepo.Update(ctx, &profile); err != nil {
		return domain.OnboardingProfile{}, fmt.Errorf("update onboarding preferences: %w", err)
	}

	return profile, nil
}

// SkipStep records a skipped wizard step. Skipping the same step twice is
// a no-op.
func (s *EngagementService) SkipStep(ctx context.Context, userID uint, step int) (domain.OnboardingProfile, error) {
	if step < domain.StepDealSourcing || step > domain.StepCommunity {
		return domain.OnboardingProfile{}, errors.New("invalid onboarding step")
	}

	profile, err := s.onboardingRepo.FindByUserID(ctx, userID)
	if err != nil {
		return domain.OnboardingProfile{}, err
	}

	if profile.SkippedStep(step) {
		return profile, nil
	}

	profile.SkippedSteps = append(profile.SkippedSteps, step)
	if err := s.onboardingRepo.Update(ctx, &profile); err != nil {
		return domain.OnboardingProfile{}, fmt.Errorf("record skipped step: %w", err)
	}

	return profile, nil
}
