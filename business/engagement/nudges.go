package engagement

import (
	"sort"
	"time"

	"dealflow/domain"
	"dealflow/pkg/utils"
)

// buildNudgeCandidates evaluates the independent nudge rules against the
// profile and current activation/retention context. Each rule appends at
// most one candidate.
func buildNudgeCandidates(
	profile domain.OnboardingProfile,
	state domain.ActivationState,
	lastActivityAt time.Time,
	now time.Time,
) []domain.Nudge {

	prefs := profile.Preferences.Data()
	var candidates []domain.Nudge

	// Rule 1: cautious investors get the diversification prompt once the
	// onboarding is a few days old.
	rt := prefs.DealSourcing.RiskTolerance
	if (rt == "conservative" || rt == "moderate") && daysBetween(profile.StartedAt, now) >= inactiveAfterDays {
		candidates = append(candidates, domain.Nudge{
			ID:          "diversify_income_streams",
			Message:     "Investors with your risk profile usually hold 2-3 income streams. See categories that balance yours.",
			ActionLabel: "Explore categories",
			TargetPage:  utils.PageURL("Deal Discovery"),
			Priority:    3,
		})
	}

	// Rule 2: skipped portfolio goals but has engaged with something else.
	if profile.SkippedStep(domain.StepPortfolioGoals) && state.CompletedMilestones() > 0 {
		candidates = append(candidates, domain.Nudge{
			ID:          "finish_portfolio_goals",
			Message:     "You skipped portfolio goals during setup. A target income makes your dashboard meaningful.",
			ActionLabel: "Set goals",
			TargetPage:  utils.PageURL("Portfolio Goals"),
			Priority:    4,
		})
	}

	// Rule 3: skipped the community step.
	if profile.SkippedStep(domain.StepCommunity) {
		candidates = append(candidates, domain.Nudge{
			ID:          "discover_community",
			Message:     "Investors in your categories share deal flow in community spaces.",
			ActionLabel: "Browse spaces",
			TargetPage:  utils.PageURL("Community"),
			Priority:    2,
		})
	}

	// Rule 4: gone quiet for over a week.
	if daysBetween(lastActivityAt, now) > nudgeInactivityDays {
		candidates = append(candidates, domain.Nudge{
			ID:          "comeback_week_recap",
			Message:     "New deals matched your profile while you were away.",
			ActionLabel: "See what's new",
			TargetPage:  utils.PageURL("Dashboard"),
			Priority:    5,
		})
	}

	return candidates
}

// GenerateNudges dedupes candidates against already-shown ids, orders by
// descending priority and returns at most maxNudgesPerBatch.
func GenerateNudges(
	profile domain.OnboardingProfile,
	state domain.ActivationState,
	lastActivityAt time.Time,
	now time.Time,
) []domain.Nudge {

	shown := make(map[string]struct{}, len(state.ShownNudges))
	for _, id := range state.ShownNudges {
		shown[id] = struct{}{}
	}

	var fresh []domain.Nudge
	for _, n := range buildNudgeCandidates(profile, state, lastActivityAt, now) {
		if _, seen := shown[n.ID]; seen {
			continue
		}
		fresh = append(fresh, n)
	}

	sort.SliceStable(fresh, func(i, j int) bool {
		return fresh[i].Priority > fresh[j].Priority
	})

	if len(fresh) > maxNudgesPerBatch {
		fresh = fresh[:maxNudgesPerBatch]
	}

	return fresh
}
