package engagement

import (
	"testing"

	"dealflow/domain"

	"github.com/stretchr/testify/assert"
	"gorm.io/datatypes"
)

func profileWith(prefs domain.OnboardingPreferences, skipped ...int) domain.OnboardingProfile {
	return domain.OnboardingProfile{
		UserID:       1,
		Preferences:  datatypes.NewJSONType(prefs),
		SkippedSteps: datatypes.NewJSONSlice(skipped),
	}
}

func TestDeterminePath_DealHeavyProfile(t *testing.T) {
	profile := profileWith(domain.OnboardingPreferences{
		DealSourcing: domain.DealSourcingPrefs{
			TargetIndustries: []string{"real_estate", "saas"},
			DealSizeRange:    "10k-50k",
			RiskTolerance:    "moderate",
		},
	})

	assert.Equal(t, domain.PathDealFirst, DeterminePath(profile))
}

func TestDeterminePath_PortfolioHeavyProfile(t *testing.T) {
	profile := profileWith(domain.OnboardingPreferences{
		PortfolioGoals: domain.PortfolioGoals{
			TargetPassiveIncome: 5000,
			TimeHorizon:         "5y",
			InitialCapital:      100000,
		},
	}, domain.StepDealSourcing)

	assert.Equal(t, domain.PathPortfolioFirst, DeterminePath(profile))
}

func TestDeterminePath_MentorshipPullsCommunity(t *testing.T) {
	profile := profileWith(domain.OnboardingPreferences{
		Community: domain.CommunityPrefs{
			Interests:       []string{"dividend investing"},
			WantsMentorship: true,
		},
	}, domain.StepDealSourcing, domain.StepPortfolioGoals)

	assert.Equal(t, domain.PathCommunityFirst, DeterminePath(profile))
}

// An empty profile scores every path the same (just the not-skipped point);
// the tie must resolve to deal_first every time, not whatever map iteration
// happens to yield.
func TestDeterminePath_TieGoesToDealFirst(t *testing.T) {
	profile := profileWith(domain.OnboardingPreferences{})

	for i := 0; i < 50; i++ {
		assert.Equal(t, domain.PathDealFirst, DeterminePath(profile))
	}
}

func TestScorePaths_Weights(t *testing.T) {
	profile := profileWith(domain.OnboardingPreferences{
		DealSourcing: domain.DealSourcingPrefs{
			TargetIndustries: []string{"real_estate", "saas"},
			DealSizeRange:    "10k-50k",
			RiskTolerance:    "conservative",
		},
		PortfolioGoals: domain.PortfolioGoals{
			TargetPassiveIncome: 2000,
		},
		Community: domain.CommunityPrefs{
			WantsMentorship: true,
		},
	})

	scores := scorePaths(profile)

	// 2 (industries) + 1 (deal size) + 1 (risk tolerance) + 1 (not skipped)
	assert.Equal(t, 5, scores[0].Score)
	// 2 (income target) + 1 (not skipped)
	assert.Equal(t, 3, scores[1].Score)
	// 2 (mentorship) + 1 (not skipped)
	assert.Equal(t, 3, scores[2].Score)
}

func TestScorePaths_SingleIndustryDoesNotScore(t *testing.T) {
	profile := profileWith(domain.OnboardingPreferences{
		DealSourcing: domain.DealSourcingPrefs{
			TargetIndustries: []string{"real_estate"},
		},
	})

	scores := scorePaths(profile)
	assert.Equal(t, 1, scores[0].Score) // only the not-skipped point
}
