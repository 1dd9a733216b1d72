package engagement

import (
	"testing"
	"time"

	"dealflow/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
)

func nudgeProfile(prefs domain.OnboardingPreferences, startedAt time.Time, skipped ...int) domain.OnboardingProfile {
	return domain.OnboardingProfile{
		UserID:       1,
		Preferences:  datatypes.NewJSONType(prefs),
		SkippedSteps: datatypes.NewJSONSlice(skipped),
		StartedAt:    startedAt,
	}
}

func TestGenerateNudges_TopTwoByPriority(t *testing.T) {
	now := time.Date(2026, 3, 20, 10, 0, 0, 0, time.UTC)
	start := now.AddDate(0, 0, -10)

	// Conservative profile, skipped both later steps, quiet for over a week:
	// all four rules fire.
	done := start.Add(time.Hour)
	profile := nudgeProfile(domain.OnboardingPreferences{
		DealSourcing: domain.DealSourcingPrefs{RiskTolerance: "conservative"},
	}, start, domain.StepPortfolioGoals, domain.StepCommunity)
	state := activationState(domain.PathDealFirst, map[string]domain.Milestone{
		domain.MilestoneFirstDealViewed: {Completed: true, CompletedAt: &done},
	})

	nudges := GenerateNudges(profile, state, done, now)

	require.Len(t, nudges, 2)
	assert.Equal(t, "comeback_week_recap", nudges[0].ID)
	assert.Equal(t, "finish_portfolio_goals", nudges[1].ID)
}

func TestGenerateNudges_ShownAreSkipped(t *testing.T) {
	now := time.Date(2026, 3, 20, 10, 0, 0, 0, time.UTC)
	start := now.AddDate(0, 0, -10)

	profile := nudgeProfile(domain.OnboardingPreferences{}, start, domain.StepCommunity)
	state := activationState(domain.PathDealFirst, nil)

	first := GenerateNudges(profile, state, start, now)
	require.Len(t, first, 2)

	for _, n := range first {
		state.ShownNudges = append(state.ShownNudges, n.ID)
	}

	second := GenerateNudges(profile, state, start, now)
	assert.Empty(t, second)
}

func TestGenerateNudges_NoRulesMatch(t *testing.T) {
	now := time.Date(2026, 3, 20, 10, 0, 0, 0, time.UTC)

	// Aggressive investor, nothing skipped, active today.
	profile := nudgeProfile(domain.OnboardingPreferences{
		DealSourcing: domain.DealSourcingPrefs{RiskTolerance: "aggressive"},
	}, now.Add(-time.Hour))
	state := activationState(domain.PathDealFirst, nil)

	assert.Empty(t, GenerateNudges(profile, state, now.Add(-time.Hour), now))
}

func TestGenerateNudges_DiversifyWaitsThreeDays(t *testing.T) {
	now := time.Date(2026, 3, 20, 10, 0, 0, 0, time.UTC)

	profile := nudgeProfile(domain.OnboardingPreferences{
		DealSourcing: domain.DealSourcingPrefs{RiskTolerance: "moderate"},
	}, now.AddDate(0, 0, -2))
	state := activationState(domain.PathDealFirst, nil)

	assert.Empty(t, GenerateNudges(profile, state, now, now))

	profile.StartedAt = now.AddDate(0, 0, -3)
	nudges := GenerateNudges(profile, state, now, now)
	require.Len(t, nudges, 1)
	assert.Equal(t, "diversify_income_streams", nudges[0].ID)
	assert.Equal(t, "/Deal-Discovery", nudges[0].TargetPage)
}
