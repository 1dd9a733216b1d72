package engagement

import (
	"testing"
	"time"

	"dealflow/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
)

func activationState(path string, milestones map[string]domain.Milestone) domain.ActivationState {
	return domain.ActivationState{
		UserID:         1,
		ActivationPath: path,
		Milestones:     datatypes.NewJSONType(milestones),
	}
}

func TestEvaluateProgress_FreshUser(t *testing.T) {
	start := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	state := activationState(domain.PathDealFirst, nil)

	report := evaluateProgress(state, start, start.Add(24*time.Hour))

	assert.False(t, report.Activated)
	assert.False(t, report.IsInactive)
	assert.False(t, report.WindowClosing)
	assert.Equal(t, 1, report.DaysSinceOnboarding)

	// Path rules only, no urgency override yet.
	require.Len(t, report.Recommendations, 3)
	assert.Equal(t, "view_personalized_deals", report.Recommendations[0].Action)
}

func TestEvaluateProgress_CompletedMilestoneDropsItsRecommendation(t *testing.T) {
	start := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	done := start.Add(time.Hour)
	state := activationState(domain.PathDealFirst, map[string]domain.Milestone{
		domain.MilestoneFirstDealViewed: {Completed: true, CompletedAt: &done},
	})

	report := evaluateProgress(state, start, start.Add(48*time.Hour))

	assert.True(t, report.Activated)
	assert.Equal(t, 1, report.MilestonesCompleted)
	for _, rec := range report.Recommendations {
		assert.NotEqual(t, "view_personalized_deals", rec.Action)
	}
}

func TestEvaluateProgress_InactiveAfterThreeDays(t *testing.T) {
	start := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	done := start.Add(time.Hour)
	state := activationState(domain.PathPortfolioFirst, map[string]domain.Milestone{
		domain.MilestonePortfolioGoalSet: {Completed: true, CompletedAt: &done},
	})

	// 3 days exactly is still fine, strictly more is inactive.
	onEdge := evaluateProgress(state, start, done.Add(72*time.Hour))
	assert.False(t, onEdge.IsInactive)

	past := evaluateProgress(state, start, done.Add(96*time.Hour))
	assert.True(t, past.IsInactive)
}

func TestEvaluateProgress_GentleNudgeOverride(t *testing.T) {
	start := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	state := activationState(domain.PathDealFirst, nil)

	report := evaluateProgress(state, start, start.AddDate(0, 0, 5))

	require.NotEmpty(t, report.Recommendations)
	assert.Equal(t, "gentle_nudge", report.Recommendations[0].Action)
	assert.False(t, report.WindowClosing)
}

func TestEvaluateProgress_WindowClosing(t *testing.T) {
	start := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	state := activationState(domain.PathCommunityFirst, nil)

	report := evaluateProgress(state, start, start.AddDate(0, 0, 12))

	assert.True(t, report.WindowClosing)
	require.NotEmpty(t, report.Recommendations)
	assert.Equal(t, "urgent_re_engagement", report.Recommendations[0].Action)
}

// The activated flag never reverts, even when the milestone map says zero.
func TestEvaluateProgress_ActivatedIsSticky(t *testing.T) {
	start := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	state := activationState(domain.PathDealFirst, nil)
	state.Activated = true

	report := evaluateProgress(state, start, start.AddDate(0, 0, 12))

	assert.True(t, report.Activated)
	assert.False(t, report.WindowClosing)
}

func TestDaysBetween_ClampsNegative(t *testing.T) {
	now := time.Now()
	assert.Equal(t, 0, daysBetween(now, now.Add(-time.Hour)))
}
