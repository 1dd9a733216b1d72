package engagement

import (
	"context"
	"testing"

	"dealflow/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStartOnboarding_SecondStartReturnsExisting(t *testing.T) {
	f := newFixture(t)

	first, err := f.svc.StartOnboarding(context.Background(), 1, domain.OnboardingPreferences{
		DealSourcing: domain.DealSourcingPrefs{RiskTolerance: "moderate"},
	})
	require.NoError(t, err)
	assert.Equal(t, f.now, first.StartedAt)

	// A second start with different preferences does not overwrite.
	again, err := f.svc.StartOnboarding(context.Background(), 1, domain.OnboardingPreferences{
		DealSourcing: domain.DealSourcingPrefs{RiskTolerance: "aggressive"},
	})
	require.NoError(t, err)
	assert.Equal(t, "moderate", again.Preferences.Data().DealSourcing.RiskTolerance)
}

func TestUpdatePreferences_ReplacesDocument(t *testing.T) {
	f := newFixture(t)
	f.seedProfile(1, domain.OnboardingPreferences{
		DealSourcing: domain.DealSourcingPrefs{RiskTolerance: "moderate"},
	})

	updated, err := f.svc.UpdatePreferences(context.Background(), 1, domain.OnboardingPreferences{
		PortfolioGoals: domain.PortfolioGoals{TargetPassiveIncome: 2500},
	})
	require.NoError(t, err)

	prefs := updated.Preferences.Data()
	assert.Equal(t, 2500.0, prefs.PortfolioGoals.TargetPassiveIncome)
	assert.Empty(t, prefs.DealSourcing.RiskTolerance)
}

func TestSkipStep(t *testing.T) {
	f := newFixture(t)
	f.seedProfile(1, domain.OnboardingPreferences{})

	_, err := f.svc.SkipStep(context.Background(), 1, 0)
	assert.ErrorContains(t, err, "invalid onboarding step")

	_, err = f.svc.SkipStep(context.Background(), 1, 4)
	assert.ErrorContains(t, err, "invalid onboarding step")

	profile, err := f.svc.SkipStep(context.Background(), 1, domain.StepCommunity)
	require.NoError(t, err)
	assert.True(t, profile.SkippedStep(domain.StepCommunity))

	// Skipping again keeps the list deduplicated.
	profile, err = f.svc.SkipStep(context.Background(), 1, domain.StepCommunity)
	require.NoError(t, err)
	assert.Equal(t, []int{domain.StepCommunity}, []int(profile.SkippedSteps))
}
