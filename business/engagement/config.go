package engagement

import (
	"time"

	"dealflow/domain"
)

// Scoring weights for activation path determination. Kept as named
// constants so the point values are a visible policy.
const (
	weightIndustriesChosen   = 2 // >= 2 target industries
	weightDealSizeSet        = 1
	weightRiskToleranceSet   = 1
	weightStepNotSkipped     = 1
	weightIncomeTargetSet    = 2
	weightTimeHorizonSet     = 1
	weightInitialCapitalSet  = 1
	weightWantsMentorship    = 2
	weightCommunityInterests = 1 // >= 1 interest
)

// Inactivity / window thresholds for progress evaluation.
const (
	inactiveAfterDays       = 3
	activationWindowDays    = 10
	nudgeInactivityDays     = 7
	maxNudgesPerBatch       = 2
	maxReEngagementAttempts = 4
)

// ReEngagementTrigger is one row of the retention schedule. A trigger fires
// only when days-inactive equals Day exactly and the attempt counter equals
// the trigger's position in the table. Missing the exact day permanently
// skips that trigger.
type ReEngagementTrigger struct {
	ID       string
	Day      int
	Cooldown time.Duration
	Subject  string
	Preview  string
	Body     string
}

// reEngagementSchedule is ordered; index == required attempt count.
var reEngagementSchedule = []ReEngagementTrigger{
	{
		ID:       "day3_silent",
		Day:      3,
		Cooldown: 72 * time.Hour,
		Subject:  "Your personalized deals are waiting",
		Preview:  "Three new passive-income opportunities matched your profile",
		Body:     "You set up your investor profile a few days ago but haven't seen what it found. We matched new passive-income deals to your preferences - take two minutes to review them.",
	},
	{
		ID:       "day7_missed_deals",
		Day:      7,
		Cooldown: 168 * time.Hour,
		Subject:  "Deals you may have missed this week",
		Preview:  "A week of opportunities, summarized",
		Body:     "It's been a week since your last visit. Here's a summary of the deals sourced for you while you were away, ranked by fit with your goals.",
	},
	{
		ID:       "day14_insight",
		Day:      14,
		Cooldown: 336 * time.Hour,
		Subject:  "One insight about your target market",
		Preview:  "What changed in your categories over two weeks",
		Body:     "Markets in your target categories moved over the past two weeks. We pulled one insight worth your attention - no dashboard digging required.",
	},
	{
		ID:       "day21_community",
		Day:      21,
		Cooldown: 504 * time.Hour,
		Subject:  "Investors like you are comparing notes",
		Preview:  "Join the conversation in your interest areas",
		Body:     "Other investors with similar goals are sharing what's working. Your community spaces are live - drop in and see what they're building.",
	},
}

// progressRule recommends an action when the named milestone is still open.
type progressRule struct {
	Milestone string
	Action    string
	Priority  int
	Reason    string
}

// Per-path recommendation tables, evaluated in order.
var progressRules = map[string][]progressRule{
	domain.PathDealFirst: {
		{domain.MilestoneFirstDealViewed, "view_personalized_deals", 1, "deals matched to your profile are unseen"},
		{domain.MilestoneFirstDealSaved, "save_a_deal", 2, "saving a deal builds your pipeline"},
		{domain.MilestoneFirstInvestmentAdded, "track_first_investment", 3, "tracking unlocks income forecasting"},
	},
	domain.PathPortfolioFirst: {
		{domain.MilestonePortfolioGoalSet, "set_income_target", 1, "a target makes progress measurable"},
		{domain.MilestoneFirstInvestmentAdded, "add_first_investment", 2, "your portfolio is empty"},
		{domain.MilestoneFirstForecastRun, "run_income_forecast", 3, "see your 12-month projection"},
	},
	domain.PathCommunityFirst: {
		{domain.MilestoneCommunityJoined, "join_community_spaces", 1, "spaces for your interests are live"},
		{domain.MilestoneFirstPost, "introduce_yourself", 2, "members respond fastest to intros"},
		{domain.MilestoneFirstDealViewed, "browse_deals", 3, "see what the community is investing in"},
	},
}
