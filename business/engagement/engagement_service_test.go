package engagement

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"dealflow/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
)

// ---- in-memory fakes ----

type fakeOnboardingRepo struct {
	profiles map[uint]domain.OnboardingProfile
}

func (f *fakeOnboardingRepo) FindByUserID(_ context.Context, userID uint) (domain.OnboardingProfile, error) {
	p, ok := f.profiles[userID]
	if !ok {
		return domain.OnboardingProfile{}, fmt.Errorf("onboarding profile %w", domain.ErrNotFound)
	}
	return p, nil
}

func (f *fakeOnboardingRepo) Create(_ context.Context, p *domain.OnboardingProfile) error {
	f.profiles[p.UserID] = *p
	return nil
}

func (f *fakeOnboardingRepo) Update(_ context.Context, p *domain.OnboardingProfile) error {
	f.profiles[p.UserID] = *p
	return nil
}

type fakeActivationRepo struct {
	states  map[uint]domain.ActivationState
	updates int
	findErr error
}

func (f *fakeActivationRepo) FindByUserID(_ context.Context, userID uint) (domain.ActivationState, error) {
	if f.findErr != nil {
		return domain.ActivationState{}, f.findErr
	}
	s, ok := f.states[userID]
	if !ok {
		return domain.ActivationState{}, fmt.Errorf("activation state %w", domain.ErrNotFound)
	}
	return s, nil
}

func (f *fakeActivationRepo) Create(_ context.Context, s *domain.ActivationState) error {
	f.states[s.UserID] = *s
	return nil
}

func (f *fakeActivationRepo) Update(_ context.Context, s *domain.ActivationState) error {
	f.updates++
	f.states[s.UserID] = *s
	return nil
}

type fakeRetentionRepo struct {
	states map[uint]domain.RetentionState
}

func (f *fakeRetentionRepo) FindByUserID(_ context.Context, userID uint) (domain.RetentionState, error) {
	s, ok := f.states[userID]
	if !ok {
		return domain.RetentionState{}, fmt.Errorf("retention state %w", domain.ErrNotFound)
	}
	return s, nil
}

func (f *fakeRetentionRepo) FindAll(_ context.Context) ([]domain.RetentionState, error) {
	var all []domain.RetentionState
	for _, s := range f.states {
		all = append(all, s)
	}
	return all, nil
}

func (f *fakeRetentionRepo) Create(_ context.Context, s *domain.RetentionState) error {
	f.states[s.UserID] = *s
	return nil
}

func (f *fakeRetentionRepo) Update(_ context.Context, s *domain.RetentionState) error {
	f.states[s.UserID] = *s
	return nil
}

type fakeUserRepo struct{}

func (fakeUserRepo) FindByID(_ context.Context, id uint) (domain.User, error) {
	return domain.User{ID: id, FullName: "Ari", Email: "ari@example.com"}, nil
}

type fakeNotifier struct {
	sent    []string
	failing bool
}

func (f *fakeNotifier) SendEmail(_, _, subject, _ string) error {
	if f.failing {
		return errors.New("smtp unavailable")
	}
	f.sent = append(f.sent, subject)
	return nil
}

type capturedEvents struct {
	events []domain.EngagementEvent
}

func (c *capturedEvents) Publish(_ context.Context, e domain.EngagementEvent) error {
	c.events = append(c.events, e)
	return nil
}

type fixture struct {
	svc        *EngagementService
	onboarding *fakeOnboardingRepo
	activation *fakeActivationRepo
	retention  *fakeRetentionRepo
	notifier   *fakeNotifier
	events     *capturedEvents
	now        time.Time
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	f := &fixture{
		onboarding: &fakeOnboardingRepo{profiles: make(map[uint]domain.OnboardingProfile)},
		activation: &fakeActivationRepo{states: make(map[uint]domain.ActivationState)},
		retention:  &fakeRetentionRepo{states: make(map[uint]domain.RetentionState)},
		notifier:   &fakeNotifier{},
		events:     &capturedEvents{},
		now:        time.Date(2026, 4, 1, 9, 0, 0, 0, time.UTC),
	}
	f.svc = NewEngagementService(f.onboarding, f.activation, f.retention, fakeUserRepo{}, f.notifier, f.events)
	f.svc.now = func() time.Time { return f.now }
	return f
}

func (f *fixture) seedProfile(userID uint, prefs domain.OnboardingPreferences) {
	f.onboarding.profiles[userID] = domain.OnboardingProfile{
		UserID:      userID,
		Preferences: datatypes.NewJSONType(prefs),
		StartedAt:   f.now.AddDate(0, 0, -1),
	}
}

// ---- tests ----

func TestDetermineActivationPath_CreatesThenUpdates(t *testing.T) {
	f := newFixture(t)
	f.seedProfile(1, domain.OnboardingPreferences{
		DealSourcing: domain.DealSourcingPrefs{
			TargetIndustries: []string{"real_estate", "saas"},
			RiskTolerance:    "moderate",
		},
	})

	state, err := f.svc.DetermineActivationPath(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, domain.PathDealFirst, state.ActivationPath)

	// Preferences change, the path is re-derived on the existing state.
	f.seedProfile(1, domain.OnboardingPreferences{
		PortfolioGoals: domain.PortfolioGoals{TargetPassiveIncome: 3000, InitialCapital: 50000, TimeHorizon: "3y"},
	})

	state, err = f.svc.DetermineActivationPath(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, domain.PathPortfolioFirst, state.ActivationPath)
	assert.Equal(t, 1, f.activation.updates)
}

func TestDetermineActivationPath_StorageErrorPropagates(t *testing.T) {
	f := newFixture(t)
	f.seedProfile(1, domain.OnboardingPreferences{
		DealSourcing: domain.DealSourcingPrefs{TargetIndustries: []string{"saas"}},
	})
	f.activation.findErr = errors.New("connection reset by peer")

	_, err := f.svc.DetermineActivationPath(context.Background(), 1)
	require.Error(t, err)
	assert.ErrorContains(t, err, "connection reset")
	// A transient lookup failure must not be mistaken for a missing state.
	assert.Empty(t, f.activation.states)
}

func TestCompleteMilestone_FlipsActivatedOnce(t *testing.T) {
	f := newFixture(t)
	f.activation.states[1] = domain.ActivationState{UserID: 1, ActivationPath: domain.PathDealFirst}

	state, err := f.svc.CompleteMilestone(context.Background(), 1, domain.MilestoneFirstDealViewed)
	require.NoError(t, err)
	assert.True(t, state.Activated)

	require.Len(t, f.events.events, 2)
	assert.Equal(t, domain.EventMilestoneCompleted, f.events.events[0].Type)
	assert.Equal(t, domain.EventUserActivated, f.events.events[1].Type)

	// A second milestone completes without re-emitting the activated event.
	_, err = f.svc.CompleteMilestone(context.Background(), 1, domain.MilestoneFirstDealSaved)
	require.NoError(t, err)
	require.Len(t, f.events.events, 3)
	assert.Equal(t, domain.EventMilestoneCompleted, f.events.events[2].Type)
}

func TestCompleteMilestone_Idempotent(t *testing.T) {
	f := newFixture(t)
	f.activation.states[1] = domain.ActivationState{UserID: 1, ActivationPath: domain.PathDealFirst}

	_, err := f.svc.CompleteMilestone(context.Background(), 1, domain.MilestoneFirstDealViewed)
	require.NoError(t, err)
	firstCompletedAt := f.activation.states[1].Milestones.Data()[domain.MilestoneFirstDealViewed].CompletedAt

	f.now = f.now.Add(time.Hour)
	_, err = f.svc.CompleteMilestone(context.Background(), 1, domain.MilestoneFirstDealViewed)
	require.NoError(t, err)

	again := f.activation.states[1].Milestones.Data()[domain.MilestoneFirstDealViewed].CompletedAt
	assert.Equal(t, firstCompletedAt, again)
	assert.Equal(t, 1, f.activation.updates)
}

func TestCompleteMilestone_RejectsUnknownName(t *testing.T) {
	f := newFixture(t)

	_, err := f.svc.CompleteMilestone(context.Background(), 1, "made_up")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid milestone")
}

func TestCheckReEngagement_EmailFailureDoesNotAdvance(t *testing.T) {
	f := newFixture(t)
	f.notifier.failing = true

	lastSeen := f.now.AddDate(0, 0, -3)
	f.retention.states[1] = domain.RetentionState{
		UserID:  1,
		Metrics: datatypes.NewJSONType(domain.EngagementMetrics{LastSessionAt: &lastSeen}),
	}

	msg, err := f.svc.CheckReEngagement(context.Background(), 1)
	require.Error(t, err)
	assert.Nil(t, msg)
	assert.Equal(t, 0, f.retention.states[1].ReEngagement.Data().Attempts)

	// Same check succeeds once email delivery recovers.
	f.notifier.failing = false
	msg, err = f.svc.CheckReEngagement(context.Background(), 1)
	require.NoError(t, err)
	require.NotNil(t, msg)
	assert.Equal(t, "day3_silent", msg.TriggerID)
	assert.Equal(t, 1, f.retention.states[1].ReEngagement.Data().Attempts)
	assert.Equal(t, []string{msg.Subject}, f.notifier.sent)
}

func TestCheckReEngagement_NothingDue(t *testing.T) {
	f := newFixture(t)

	lastSeen := f.now.AddDate(0, 0, -1)
	f.retention.states[1] = domain.RetentionState{
		UserID:  1,
		Metrics: datatypes.NewJSONType(domain.EngagementMetrics{LastSessionAt: &lastSeen}),
	}

	msg, err := f.svc.CheckReEngagement(context.Background(), 1)
	require.NoError(t, err)
	assert.Nil(t, msg)
	assert.Empty(t, f.notifier.sent)
}

func TestRecordSession_StreakRules(t *testing.T) {
	f := newFixture(t)

	require.NoError(t, f.svc.RecordSession(context.Background(), 1))
	m := f.retention.states[1].Metrics.Data()
	assert.Equal(t, 1, m.SessionCount)
	assert.Equal(t, 1, m.StreakDays)

	// Second session the same day: count up, streak unchanged.
	f.now = f.now.Add(2 * time.Hour)
	require.NoError(t, f.svc.RecordSession(context.Background(), 1))
	m = f.retention.states[1].Metrics.Data()
	assert.Equal(t, 2, m.SessionCount)
	assert.Equal(t, 1, m.StreakDays)

	// Next calendar day extends the streak.
	f.now = f.now.AddDate(0, 0, 1)
	require.NoError(t, f.svc.RecordSession(context.Background(), 1))
	assert.Equal(t, 2, f.retention.states[1].Metrics.Data().StreakDays)

	// A gap resets it.
	f.now = f.now.AddDate(0, 0, 5)
	require.NoError(t, f.svc.RecordSession(context.Background(), 1))
	assert.Equal(t, 1, f.retention.states[1].Metrics.Data().StreakDays)
}

func TestGenerateNudges_PersistsShownUnion(t *testing.T) {
	f := newFixture(t)
	f.onboarding.profiles[1] = domain.OnboardingProfile{
		UserID:       1,
		Preferences:  datatypes.NewJSONType(domain.OnboardingPreferences{}),
		SkippedSteps: datatypes.NewJSONSlice([]int{domain.StepCommunity}),
		StartedAt:    f.now.AddDate(0, 0, -10),
	}
	f.activation.states[1] = domain.ActivationState{UserID: 1, ActivationPath: domain.PathDealFirst}

	nudges, err := f.svc.GenerateNudges(context.Background(), 1)
	require.NoError(t, err)
	require.Len(t, nudges, 2)

	// The persisted shown set covers both served nudges, so a retry is empty.
	second, err := f.svc.GenerateNudges(context.Background(), 1)
	require.NoError(t, err)
	assert.Empty(t, second)
}

func TestDismissNudge_Idempotent(t *testing.T) {
	f := newFixture(t)
	f.activation.states[1] = domain.ActivationState{UserID: 1}

	require.NoError(t, f.svc.DismissNudge(context.Background(), 1, "discover_community"))
	require.NoError(t, f.svc.DismissNudge(context.Background(), 1, "discover_community"))

	assert.Equal(t, []string{"discover_community"}, []string(f.activation.states[1].DismissedNudges))
}

func TestRunRetentionSweep_FiresOnlyDueUsers(t *testing.T) {
	f := newFixture(t)

	due := f.now.AddDate(0, 0, -3)
	recent := f.now.AddDate(0, 0, -1)
	f.retention.states[1] = domain.RetentionState{
		UserID:  1,
		Metrics: datatypes.NewJSONType(domain.EngagementMetrics{LastSessionAt: &due}),
	}
	f.retention.states[2] = domain.RetentionState{
		UserID:  2,
		Metrics: datatypes.NewJSONType(domain.EngagementMetrics{LastSessionAt: &recent}),
	}

	fired, err := f.svc.RunRetentionSweep(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, fired)
	assert.Equal(t, 1, f.retention.states[1].ReEngagement.Data().Attempts)
	assert.Equal(t, 0, f.retention.states[2].ReEngagement.Data().Attempts)
}
