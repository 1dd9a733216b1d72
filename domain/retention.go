package domain

import (
	"time"

	"gorm.io/datatypes"
)

type EngagementMetrics struct {
	LastSessionAt *time.Time `json:"last_session_at,omitempty"`
	SessionCount  int        `json:"session_count"`
	StreakDays    int        `json:"streak_days"`
}

type ReEngagement struct {
	Attempts      int        `json:"attempts"`
	CooldownUntil *time.Time `json:"cooldown_until,omitempty"`
	LastTriggerID string     `json:"last_trigger_id,omitempty"`
}

// RetentionState is one-per-user, updated by the retention sweep.
// ReEngagement.Attempts is monotonically non-decreasing and capped; once
// it reaches the cap no further trigger fires.
type RetentionState struct {
	ID           uint                                  `gorm:"primaryKey" json:"id"`
	UserID       uint                                  `gorm:"column:user_id;uniqueIndex;not null" json:"user_id"`
	Metrics      datatypes.JSONType[EngagementMetrics] `gorm:"column:engagement_metrics;type:jsonb" json:"engagement_metrics"`
	ReEngagement datatypes.JSONType[ReEngagement]      `gorm:"column:re_engagement;type:jsonb" json:"re_engagement"`
	LockVersion  int                                   `gorm:"column:lock_version;default:0" json:"-"`
	CreatedAt    time.Time                             `json:"created_at"`
	UpdatedAt    time.Time                             `json:"updated_at"`
}

func (RetentionState) TableName() string {
	return "retention_states"
}

// ReEngagementMessage is the canned message sent when a trigger fires.
type ReEngagementMessage struct {
	TriggerID string `json:"trigger_id"`
	Subject   string `json:"subject"`
	Preview   string `json:"preview"`
	Body      string `json:"body"`
}
