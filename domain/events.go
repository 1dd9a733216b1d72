package domain

import "time"

// Engagement event types streamed to the analytics topic.
const (
	EventMilestoneCompleted = "milestone_completed"
	EventUserActivated      = "user_activated"
	EventReEngagementSent   = "re_engagement_sent"
	EventSessionRecorded    = "session_recorded"
)

type EngagementEvent struct {
	Type       string    `json:"type"`
	UserID     uint      `json:"user_id"`
	Subject    string    `json:"subject,omitempty"`
	OccurredAt time.Time `json:"occurred_at"`
}
