package domain

import (
	"time"

	"gorm.io/datatypes"
)

// Onboarding wizard step indices, recorded in SkippedSteps when a user
// clicks past a step without filling it in.
const (
	StepDealSourcing   = 1
	StepPortfolioGoals = 2
	StepCommunity      = 3
)

type DealSourcingPrefs struct {
	TargetIndustries []string `json:"target_industries"`
	DealSizeRange    string   `json:"deal_size_range"`
	RiskTolerance    string   `json:"risk_tolerance"`
}

type PortfolioGoals struct {
	TargetPassiveIncome float64 `json:"target_passive_income"`
	TimeHorizon         string  `json:"time_horizon"`
	InitialCapital      float64 `json:"initial_capital"`
}

type CommunityPrefs struct {
	Interests       []string `json:"interests"`
	WantsMentorship bool     `json:"wants_mentorship"`
}

type OnboardingPreferences struct {
	DealSourcing   DealSourcingPrefs `json:"deal_sourcing"`
	PortfolioGoals PortfolioGoals    `json:"portfolio_goals"`
	Community      CommunityPrefs    `json:"community"`
}

// OnboardingProfile is created once when the wizard starts and mutated as
// steps complete. Never deleted.
type OnboardingProfile struct {
	ID           uint                                        `gorm:"primaryKey" json:"id"`
	UserID       uint                                        `gorm:"column:user_id;uniqueIndex;not null" json:"user_id"`
	Preferences  datatypes.JSONType[OnboardingPreferences]   `gorm:"column:preferences;type:jsonb" json:"preferences"`
	SkippedSteps datatypes.JSONSlice[int]                    `gorm:"column:skipped_steps;type:jsonb" json:"skipped_steps"`
	StartedAt    time.Time                                   `gorm:"column:started_at;not null" json:"started_at"`
	LockVersion  int                                         `gorm:"column:lock_version;default:0" json:"-"`
	CreatedAt    time.Time                                   `json:"created_at"`
	UpdatedAt    time.Time                                   `json:"updated_at"`
}

func (OnboardingProfile) TableName() string {
	return "onboarding_profiles"
}

// SkippedStep reports whether the given wizard step was skipped.
func (p OnboardingProfile) SkippedStep(step int) bool {
	for _, s := range p.SkippedSteps {
		if s == step {
			return true
		}
	}
	return false
}
