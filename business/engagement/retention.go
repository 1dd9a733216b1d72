package engagement

import (
	"time"

	"dealflow/domain"
)

// SelectTrigger walks the re-engagement schedule and returns the trigger
// that should fire for the given inactivity span, or nil.
//
// The semantics are strict sequence, no catch-up: the trigger at index i
// fires only when daysInactive equals its Day exactly AND the attempt
// counter equals i AND the attempt cap is not reached AND no cooldown is
// active. A user who is seen at day 5 never receives day3_silent.
func SelectTrigger(re domain.ReEngagement, daysInactive int, now time.Time) *ReEngagementTrigger {
	if re.Attempts >= maxReEngagementAttempts {
		return nil
	}
	if re.CooldownUntil != nil && now.Before(*re.CooldownUntil) {
		return nil
	}

	for i, trig := range reEngagementSchedule {
		if daysInactive == trig.Day && re.Attempts == i {
			t := trig
			return &t
		}
	}

	return nil
}

// Message builds the canned outbound message for the trigger.
func (t ReEngagementTrigger) Message() domain.ReEngagementMessage {
	return domain.ReEngagementMessage{
		TriggerID: t.ID,
		Subject:   t.Subject,
		Preview:   t.Preview,
		Body:      t.Body,
	}
}

// applyTrigger advances the retention record after a trigger fires:
// attempts is incremented (monotonic, never reset) and the cooldown window
// is stamped from now.
func applyTrigger(re domain.ReEngagement, trig ReEngagementTrigger, now time.Time) domain.ReEngagement {
	until := now.Add(trig.Cooldown)
	re.Attempts++
	re.CooldownUntil = &until
	re.LastTriggerID = trig.ID
	return re
}
