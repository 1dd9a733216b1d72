package engagement

import "dealflow/domain"

type pathScore struct {
	Path  string
	Score int
}

// scorePaths computes the three path scores from the onboarding profile.
// The returned slice order is the tie-break order: the first entry wins
// when scores are equal.
func scorePaths(profile domain.OnboardingProfile) []pathScore {
	prefs := profile.Preferences.Data()

	deal := 0
	if len(prefs.DealSourcing.TargetIndustries) >= 2 {
		deal += weightIndustriesChosen
	}
	if prefs.DealSourcing.DealSizeRange != "" {
		deal += weightDealSizeSet
	}
	if prefs.DealSourcing.RiskTolerance != "" {
		deal += weightRiskToleranceSet
	}
	if !profile.SkippedStep(domain.StepDealSourcing) {
		deal += weightStepNotSkipped
	}

	portfolio := 0
	if prefs.PortfolioGoals.TargetPassiveIncome > 0 {
		portfolio += weightIncomeTargetSet
	}
	if prefs.PortfolioGoals.TimeHorizon != "" {
		portfolio += weightTimeHorizonSet
	}
	if prefs.PortfolioGoals.InitialCapital > 0 {
		portfolio += weightInitialCapitalSet
	}
	if !profile.SkippedStep(domain.StepPortfolioGoals) {
		portfolio += weightStepNotSkipped
	}

	community := 0
	if prefs.Community.WantsMentorship {
		community += weightWantsMentorship
	}
	if len(prefs.Community.Interests) >= 1 {
		community += weightCommunityInterests
	}
	if !profile.SkippedStep(domain.StepCommunity) {
		community += weightStepNotSkipped
	}

	return []pathScore{
		{domain.PathDealFirst, deal},
		{domain.PathPortfolioFirst, portfolio},
		{domain.PathCommunityFirst, community},
	}
}

// DeterminePath picks the activation path with the highest score.
// Ties go to the earliest entry in the score table (deal_first first).
func DeterminePath(profile domain.OnboardingProfile) string {
	scores := scorePaths(profile)

	best := scores[0]
	for _, s := range scores[1:] {
		if s.Score > best.Score {
			best = s
		}
	}

	return best.Path
}
