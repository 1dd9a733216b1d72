package engagement

import (
	"testing"
	"time"

	"dealflow/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var sweepNow = time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)

func TestSelectTrigger_FirstTriggerAtDayThree(t *testing.T) {
	trig := SelectTrigger(domain.ReEngagement{}, 3, sweepNow)

	require.NotNil(t, trig)
	assert.Equal(t, "day3_silent", trig.ID)
	assert.Equal(t, 72*time.Hour, trig.Cooldown)
}

// A user first seen inactive at day 5 gets nothing: triggers fire on their
// exact day only, there is no catch-up.
func TestSelectTrigger_NoCatchUp(t *testing.T) {
	assert.Nil(t, SelectTrigger(domain.ReEngagement{}, 4, sweepNow))
	assert.Nil(t, SelectTrigger(domain.ReEngagement{}, 5, sweepNow))
	assert.Nil(t, SelectTrigger(domain.ReEngagement{}, 10, sweepNow))
}

func TestSelectTrigger_SequencePosition(t *testing.T) {
	// Day 7 trigger requires one prior attempt.
	assert.Nil(t, SelectTrigger(domain.ReEngagement{Attempts: 0}, 7, sweepNow))

	trig := SelectTrigger(domain.ReEngagement{Attempts: 1}, 7, sweepNow)
	require.NotNil(t, trig)
	assert.Equal(t, "day7_missed_deals", trig.ID)

	trig = SelectTrigger(domain.ReEngagement{Attempts: 2}, 14, sweepNow)
	require.NotNil(t, trig)
	assert.Equal(t, "day14_insight", trig.ID)

	trig = SelectTrigger(domain.ReEngagement{Attempts: 3}, 21, sweepNow)
	require.NotNil(t, trig)
	assert.Equal(t, "day21_community", trig.ID)
}

func TestSelectTrigger_AttemptCap(t *testing.T) {
	re := domain.ReEngagement{Attempts: 4}
	for day := 0; day <= 30; day++ {
		assert.Nil(t, SelectTrigger(re, day, sweepNow))
	}
}

func TestSelectTrigger_CooldownBlocks(t *testing.T) {
	until := sweepNow.Add(time.Hour)
	re := domain.ReEngagement{Attempts: 0, CooldownUntil: &until}

	assert.Nil(t, SelectTrigger(re, 3, sweepNow))

	// Once the cooldown has elapsed the same state fires again.
	assert.NotNil(t, SelectTrigger(re, 3, sweepNow.Add(2*time.Hour)))
}

func TestApplyTrigger_AdvancesState(t *testing.T) {
	trig := reEngagementSchedule[0]

	re := applyTrigger(domain.ReEngagement{}, trig, sweepNow)

	assert.Equal(t, 1, re.Attempts)
	assert.Equal(t, trig.ID, re.LastTriggerID)
	require.NotNil(t, re.CooldownUntil)
	assert.Equal(t, sweepNow.Add(trig.Cooldown), *re.CooldownUntil)
}

// Attempts only ever go up. Running the whole schedule end to end lands at
// the cap with each trigger fired exactly once, in order.
func TestReEngagement_FullSequence(t *testing.T) {
	re := domain.ReEngagement{}
	now := sweepNow

	days := []int{3, 7, 14, 21}
	wantIDs := []string{"day3_silent", "day7_missed_deals", "day14_insight", "day21_community"}

	for i, day := range days {
		now = now.AddDate(0, 0, day)
		trig := SelectTrigger(re, day, now)
		require.NotNil(t, trig, "expected trigger at day %d", day)
		assert.Equal(t, wantIDs[i], trig.ID)
		re = applyTrigger(re, *trig, now)
		assert.Equal(t, i+1, re.Attempts)
	}

	assert.Nil(t, SelectTrigger(re, 28, now.AddDate(0, 0, 28)))
}

func TestTriggerMessage(t *testing.T) {
	msg := reEngagementSchedule[1].Message()

	assert.Equal(t, "day7_missed_deals", msg.TriggerID)
	assert.NotEmpty(t, msg.Subject)
	assert.NotEmpty(t, msg.Body)
}
