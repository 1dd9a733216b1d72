package engagement

import (
	"context"
	"errors"
	"fmt"
	"time"

	"dealflow/domain"
	"dealflow/pkg/logger"

	"gorm.io/datatypes"
)

// ---- Repository interfaces ----

type OnboardingRepository interface {
	FindByUserID(ctx context.Context, userID uint) (domain.OnboardingProfile, error)
	Create(ctx context.Context, profile *domain.OnboardingProfile) error
	Update(ctx context.Context, profile *domain.OnboardingProfile) error
}

type ActivationRepository interface {
	FindByUserID(ctx context.Context, userID uint) (domain.ActivationState, error)
	Create(ctx context.Context, state *domain.ActivationState) error
	Update(ctx context.Context, state *domain.ActivationState) error
}

type RetentionRepository interface {
	FindByUserID(ctx context.Context, userID uint) (domain.RetentionState, error)
	FindAll(ctx context.Context) ([]domain.RetentionState, error)
	Create(ctx context.Context, state *domain.RetentionState) error
	Update(ctx context.Context, state *domain.RetentionState) error
}

type UserRepository interface {
	FindByID(ctx context.Context, id uint) (domain.User, error)
}

type NotificationRepository interface {
	SendEmail(toName, toEmail, subject, message string) error
}

// EventPublisher streams engagement events; nil publisher disables the stream.
type EventPublisher interface {
	Publish(ctx context.Context, event domain.EngagementEvent) error
}

// ---- Service ----

type EngagementService struct {
	onboardingRepo OnboardingRepository
	activationRepo ActivationRepository
	retentionRepo  RetentionRepository
	userRepo       UserRepository
	notifRepo      NotificationRepository
	publisher      EventPublisher
	now            func() time.Time
}

func NewEngagementService(
	onboardingRepo OnboardingRepository,
	activationRepo ActivationRepository,
	retentionRepo RetentionRepository,
	userRepo UserRepository,
	notifRepo NotificationRepository,
	publisher EventPublisher,
) *EngagementService {
	return &EngagementService{
		onboardingRepo: onboardingRepo,
		activationRepo: activationRepo,
		retentionRepo:  retentionRepo,
		userRepo:       userRepo,
		notifRepo:      notifRepo,
		publisher:      publisher,
		now:            time.Now,
	}
}

var validMilestones = map[string]bool{
	domain.MilestoneFirstDealViewed:      true,
	domain.MilestoneFirstDealSaved:       true,
	domain.MilestoneFirstInvestmentAdded: true,
	domain.MilestonePortfolioGoalSet:     true,
	domain.MilestoneFirstForecastRun:     true,
	domain.MilestoneCommunityJoined:      true,
	domain.MilestoneFirstPost:            true,
}

func (s *EngagementService) publish(ctx context.Context, event domain.EngagementEvent) {
	if s.publisher == nil {
		return
	}
	if err := s.publisher.Publish(ctx, event); err != nil {
		logger.Warn("Failed to publish engagement event", "type", event.Type, "user_id", event.UserID, "error", err.Error())
	}
}

// DetermineActivationPath scores the user's onboarding profile and persists
// the winning path, updating the existing state when one exists.
func (s *EngagementService) DetermineActivationPath(ctx context.Context, userID uint) (domain.ActivationState, error) {
	profile, err := s.onboardingRepo.FindByUserID(ctx, userID)
	if err != nil {
		return domain.ActivationState{}, err
	}

	path := DeterminePath(profile)

	state, err := s.activationRepo.FindByUserID(ctx, userID)
	if errors.Is(err, domain.ErrNotFound) {
		state = domain.ActivationState{UserID: userID, ActivationPath: path}
		if createErr := s.activationRepo.Create(ctx, &state); createErr != nil {
			return domain.ActivationState{}, fmt.Errorf("create activation state: %w", createErr)
		}
	} else if err != nil {
		return domain.ActivationState{}, err
	} else {
		state.ActivationPath = path
		if updateErr := s.activationRepo.Update(ctx, &state); updateErr != nil {
			return domain.ActivationState{}, fmt.Errorf("update activation state: %w", updateErr)
		}
	}

	ActivationPathAssignedTotal.WithLabelValues(path).Inc()

	return state, nil
}

// EvaluateProgress builds the progress report and applies the one-way
// activated flip when a milestone exists but the flag was never set.
func (s *EngagementService) EvaluateProgress(ctx context.Context, userID uint) (domain.ProgressReport, error) {
	state, err := s.activationRepo.FindByUserID(ctx, userID)
	if err != nil {
		return domain.ProgressReport{}, err
	}

	profile, err := s.onboardingRepo.FindByUserID(ctx, userID)
	if err != nil {
		return domain.ProgressReport{}, err
	}

	report := evaluateProgress(state, profile.StartedAt, s.now())

	if report.Activated && !state.Activated {
		state.Activated = true
		if err := s.activationRepo.Update(ctx, &state); err != nil {
			return domain.ProgressReport{}, fmt.Errorf("persist activated flag: %w", err)
		}
		s.publish(ctx, domain.EngagementEvent{
			Type:       domain.EventUserActivated,
			UserID:     userID,
			OccurredAt: s.now(),
		})
	}

	return report, nil
}

// CompleteMilestone records a milestone completion. Completing an already
// completed milestone is a no-op. The activated flag flips one way.
func (s *EngagementService) CompleteMilestone(ctx context.Context, userID uint, name string) (domain.ActivationState, error) {
	if !validMilestones[name] {
		return domain.ActivationState{}, fmt.Errorf("invalid milestone: %s", name)
	}

	state, err := s.activationRepo.FindByUserID(ctx, userID)
	if err != nil {
		return domain.ActivationState{}, err
	}

	milestones := state.Milestones.Data()
	if milestones == nil {
		milestones = make(map[string]domain.Milestone)
	}

	if m, ok := milestones[name]; ok && m.Completed {
		return state, nil
	}

	now := s.now()
	milestones[name] = domain.Milestone{Completed: true, CompletedAt: &now}
	state.Milestones = datatypes.NewJSONType(milestones)

	wasActivated := state.Activated
	state.Activated = true

	if err := s.activationRepo.Update(ctx, &state); err != nil {
		return domain.ActivationState{}, fmt.Errorf("update activation state: %w", err)
	}

	MilestonesCompletedTotal.WithLabelValues(name).Inc()

	s.publish(ctx, domain.EngagementEvent{
		Type:       domain.EventMilestoneCompleted,
		UserID:     userID,
		Subject:    name,
		OccurredAt: now,
	})
	if !wasActivated {
		s.publish(ctx, domain.EngagementEvent{
			Type:       domain.EventUserActivated,
			UserID:     userID,
			OccurredAt: now,
		})
	}

	return state, nil
}

// GenerateNudges produces up to two fresh nudges and records them as shown
// (union with the existing set, never replace).
func (s *EngagementService) GenerateNudges(ctx context.Context, userID uint) ([]domain.Nudge, error) {
	profile, err := s.onboardingRepo.FindByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	state, err := s.activationRepo.FindByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	lastActivity := s.lastActivityAt(ctx, userID, profile)

	nudges := GenerateNudges(profile, state, lastActivity, s.now())
	if len(nudges) == 0 {
		return []domain.Nudge{}, nil
	}

	for _, n := range nudges {
		state.ShownNudges = append(state.ShownNudges, n.ID)
		NudgesServedTotal.WithLabelValues(n.ID).Inc()
	}

	if err := s.activationRepo.Update(ctx, &state); err != nil {
		return nil, fmt.Errorf("persist shown nudges: %w", err)
	}

	return nudges, nil
}

// DismissNudge adds the nudge id to the dismissed set.
func (s *EngagementService) DismissNudge(ctx context.Context, userID uint, nudgeID string) error {
	if nudgeID == "" {
		return errors.New("nudge id is required")
	}

	state, err := s.activationRepo.FindByUserID(ctx, userID)
	if err != nil {
		return err
	}

	for _, id := range state.DismissedNudges {
		if id == nudgeID {
			return nil
		}
	}

	state.DismissedNudges = append(state.DismissedNudges, nudgeID)
	return s.activationRepo.Update(ctx, &state)
}

// lastActivityAt prefers the retention record's last session, falling back
// to the onboarding start for users with no recorded session yet.
func (s *EngagementService) lastActivityAt(ctx context.Context, userID uint, profile domain.OnboardingProfile) time.Time {
	retention, err := s.retentionRepo.FindByUserID(ctx, userID)
	if err == nil {
		if last := retention.Metrics.Data().LastSessionAt; last != nil {
			return *last
		}
	}
	return profile.StartedAt
}

// RecordSession updates engagement metrics on login/app open. The streak
// extends only when the previous session was on the previous calendar day.
func (s *EngagementService) RecordSession(ctx context.Context, userID uint) error {
	now := s.now()

	state, err := s.retentionRepo.FindByUserID(ctx, userID)
	if errors.Is(err, domain.ErrNotFound) {
		metrics := domain.EngagementMetrics{LastSessionAt: &now, SessionCount: 1, StreakDays: 1}
		state = domain.RetentionState{UserID: userID}
		state.Metrics = datatypes.NewJSONType(metrics)
		if err := s.retentionRepo.Create(ctx, &state); err != nil {
			return err
		}
		s.publish(ctx, domain.EngagementEvent{Type: domain.EventSessionRecorded, UserID: userID, OccurredAt: now})
		return nil
	}
	if err != nil {
		return err
	}

	metrics := state.Metrics.Data()
	if metrics.LastSessionAt != nil {
		lastDay := metrics.LastSessionAt.Truncate(24 * time.Hour)
		today := now.Truncate(24 * time.Hour)
		switch int(today.Sub(lastDay).Hours() / 24) {
		case 0:
			// same day, streak unchanged
		case 1:
			metrics.StreakDays++
		default:
			metrics.StreakDays = 1
		}
	} else {
		metrics.StreakDays = 1
	}

	metrics.SessionCount++
	metrics.LastSessionAt = &now
	state.Metrics = datatypes.NewJSONType(metrics)

	if err := s.retentionRepo.Update(ctx, &state); err != nil {
		return err
	}
	s.publish(ctx, domain.EngagementEvent{Type: domain.EventSessionRecorded, UserID: userID, OccurredAt: now})
	return nil
}

// CheckReEngagement runs trigger selection for one user, sending the canned
// message and advancing the retention record when a trigger fires. Returns
// nil when nothing fired.
func (s *EngagementService) CheckReEngagement(ctx context.Context, userID uint) (*domain.ReEngagementMessage, error) {
	state, err := s.retentionRepo.FindByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	now := s.now()

	lastSeen := state.CreatedAt
	if last := state.Metrics.Data().LastSessionAt; last != nil {
		lastSeen = *last
	}
	daysInactive := daysBetween(lastSeen, now)

	re := state.ReEngagement.Data()
	trig := SelectTrigger(re, daysInactive, now)
	if trig == nil {
		return nil, nil
	}

	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	msg := trig.Message()
	if err := s.notifRepo.SendEmail(user.FullName, user.Email, msg.Subject, msg.Body); err != nil {
		// do not advance attempts when the send itself failed
		return nil, fmt.Errorf("send re-engagement email: %w", err)
	}

	state.ReEngagement = datatypes.NewJSONType(applyTrigger(re, *trig, now))
	if err := s.retentionRepo.Update(ctx, &state); err != nil {
		return nil, fmt.Errorf("update retention state: %w", err)
	}

	ReEngagementFiredTotal.WithLabelValues(trig.ID).Inc()

	s.publish(ctx, domain.EngagementEvent{
		Type:       domain.EventReEngagementSent,
		UserID:     userID,
		Subject:    trig.ID,
		OccurredAt: now,
	})

	return &msg, nil
}

// RunRetentionSweep checks every retention record. Per-user failures are
// logged and skipped so one conflict cannot stall the sweep.
func (s *EngagementService) RunRetentionSweep(ctx context.Context) (int, error) {
	states, err := s.retentionRepo.FindAll(ctx)
	if err != nil {
		return 0, fmt.Errorf("load retention states: %w", err)
	}

	fired := 0
	for _, st := range states {
		if err := ctx.Err(); err != nil {
			return fired, err
		}

		msg, err := s.CheckReEngagement(ctx, st.UserID)
		if err != nil {
			logger.Warn("Retention sweep skipped user", "user_id", st.UserID, "error", err.Error())
			continue
		}
		if msg != nil {
			fired++
		}
	}

	return fired, nil
}
