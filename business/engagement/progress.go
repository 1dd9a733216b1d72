package engagement

import (
	"time"

	"dealflow/domain"
)

func daysBetween(from, to time.Time) int {
	if to.Before(from) {
		return 0
	}
	return int(to.Sub(from).Hours() / 24)
}

// lastMilestoneAt returns the latest completion timestamp, falling back to
// the onboarding start when nothing completed yet.
func lastMilestoneAt(state domain.ActivationState, onboardingStart time.Time) time.Time {
	last := onboardingStart
	for _, m := range state.Milestones.Data() {
		if m.Completed && m.CompletedAt != nil && m.CompletedAt.After(last) {
			last = *m.CompletedAt
		}
	}
	return last
}

// evaluateProgress builds the progress report for a user. Pure except for
// the clock; persistence (the one-way activated flip) happens in the service.
func evaluateProgress(state domain.ActivationState, onboardingStart, now time.Time) domain.ProgressReport {
	completed := state.CompletedMilestones()

	daysSinceOnboarding := daysBetween(onboardingStart, now)
	daysSinceLastMilestone := daysBetween(lastMilestoneAt(state, onboardingStart), now)

	report := domain.ProgressReport{
		ActivationPath:         state.ActivationPath,
		Activated:              state.Activated || completed > 0,
		MilestonesCompleted:    completed,
		DaysSinceOnboarding:    daysSinceOnboarding,
		DaysSinceLastMilestone: daysSinceLastMilestone,
		IsInactive:             daysSinceLastMilestone > inactiveAfterDays,
		WindowClosing:          daysSinceOnboarding > activationWindowDays && completed == 0 && !state.Activated,
	}

	for _, rule := range progressRules[state.ActivationPath] {
		if state.HasMilestone(rule.Milestone) {
			continue
		}
		report.Recommendations = append(report.Recommendations, domain.Recommendation{
			Action:   rule.Action,
			Priority: rule.Priority,
			Reason:   rule.Reason,
		})
	}

	// Urgency overrides go to the front of the list.
	switch {
	case daysSinceOnboarding > activationWindowDays && completed == 0:
		report.Recommendations = append([]domain.Recommendation{
			{Action: "urgent_re_engagement", Priority: 0, Reason: "activation window closing with no milestones"},
		}, report.Recommendations...)
	case daysSinceOnboarding > inactiveAfterDays && completed == 0:
		report.Recommendations = append([]domain.Recommendation{
			{Action: "gentle_nudge", Priority: 0, Reason: "no milestones since onboarding"},
		}, report.Recommendations...)
	}

	return report
}
