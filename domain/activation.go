package domain

import (
	"time"

	"gorm.io/datatypes"
)

const (
	PathDealFirst      = "deal_first"
	PathPortfolioFirst = "portfolio_first"
	PathCommunityFirst = "community_first"
)

// Milestone names tracked per user.
const (
	MilestoneFirstDealViewed      = "first_deal_viewed"
	MilestoneFirstDealSaved       = "first_deal_saved"
	MilestoneFirstInvestmentAdded = "first_investment_added"
	MilestonePortfolioGoalSet     = "portfolio_goal_set"
	MilestoneFirstForecastRun     = "first_forecast_run"
	MilestoneCommunityJoined      = "community_joined"
	MilestoneFirstPost            = "first_post"
)

type Milestone struct {
	Completed   bool       `json:"completed"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`
}

// ActivationState is one-per-user. Activated flips to true exactly when the
// first milestone completes and never reverts.
type ActivationState struct {
	ID              uint                                     `gorm:"primaryKey" json:"id"`
	UserID          uint                                     `gorm:"column:user_id;uniqueIndex;not null" json:"user_id"`
	ActivationPath  string                                   `gorm:"column:activation_path;not null" json:"activation_path"`
	Milestones      datatypes.JSONType[map[string]Milestone] `gorm:"column:milestones;type:jsonb" json:"milestones"`
	Activated       bool                                     `gorm:"column:activated;default:false" json:"activated"`
	ShownNudges     datatypes.JSONSlice[string]              `gorm:"column:shown_nudges;type:jsonb" json:"shown_nudges"`
	DismissedNudges datatypes.JSONSlice[string]              `gorm:"column:dismissed_nudges;type:jsonb" json:"dismissed_nudges"`
	LockVersion     int                                      `gorm:"column:lock_version;default:0" json:"-"`
	CreatedAt       time.Time                                `json:"created_at"`
	UpdatedAt       time.Time                                `json:"updated_at"`
}

func (ActivationState) TableName() string {
	return "activation_states"
}

// CompletedMilestones counts milestones with Completed set.
func (s ActivationState) CompletedMilestones() int {
	n := 0
	for _, m := range s.Milestones.Data() {
		if m.Completed {
			n++
		}
	}
	return n
}

// HasMilestone reports whether the named milestone is completed.
func (s ActivationState) HasMilestone(name string) bool {
	m, ok := s.Milestones.Data()[name]
	return ok && m.Completed
}

type Recommendation struct {
	Action   string `json:"action"`
	Priority int    `json:"priority"`
	Reason   string `json:"reason,omitempty"`
}

// ProgressReport is the response shape of the progress evaluation endpoint.
type ProgressReport struct {
	ActivationPath         string           `json:"activation_path"`
	Activated              bool             `json:"activated"`
	MilestonesCompleted    int              `json:"milestones_completed"`
	DaysSinceOnboarding    int              `json:"days_since_onboarding"`
	DaysSinceLastMilestone int              `json:"days_since_last_milestone"`
	IsInactive             bool             `json:"is_inactive"`
	WindowClosing          bool             `json:"window_closing"`
	Recommendations        []Recommendation `json:"recommendations"`
}

type Nudge struct {
	ID          string `json:"id"`
	Message     string `json:"message"`
	ActionLabel string `json:"action_label"`
	TargetPage  string `json:"target_page"`
	Priority    int    `json:"priority"`
}
