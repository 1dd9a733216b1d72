package rest

import (
	"context"
	"net/http"
	"time"

	"dealflow/domain"
	"dealflow/pkg/logger"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

type EngagementService interface {
	DetermineActivationPath(ctx context.Context, userID uint) (domain.ActivationState, error)
	EvaluateProgress(ctx context.Context, userID uint) (domain.ProgressReport, error)
	CompleteMilestone(ctx context.Context, userID uint, name string) (domain.ActivationState, error)
	GenerateNudges(ctx context.Context, userID uint) ([]domain.Nudge, error)
	DismissNudge(ctx context.Context, userID uint, nudgeID string) error
	CheckReEngagement(ctx context.Context, userID uint) (*domain.ReEngagementMessage, error)
	RunRetentionSweep(ctx context.Context) (int, error)
}

type EngagementHandler struct {
	engagementService EngagementService
	validator         *validator.Validate
	timeout           time.Duration
}

func NewEngagementHandler(engagementService EngagementService) *EngagementHandler {
	return &EngagementHandler{
		engagementService: engagementService,
		validator:         validator.New(),
		timeout:           10 * time.Second,
	}
}

type CompleteMilestoneRequest struct {
	Milestone string `json:"milestone" validate:"required"`
}

type DismissNudgeRequest struct {
	NudgeID string `json:"nudge_id" validate:"required"`
}

// DetermineActivationPath scores the caller's onboarding preferences and
// assigns the activation path with the highest score.
func (h *EngagementHandler) DetermineActivationPath(c echo.Context) error {
	userID, ok := currentUserID(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ResponseError{Message: "unauthorized"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	state, err := h.engagementService.DetermineActivationPath(ctx, userID)
	if err != nil {
		logger.Error("Failed to determine activation path", err)
		return c.JSON(errorStatus(err), ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"path":  state.ActivationPath,
		"state": state,
	})
}

func (h *EngagementHandler) EvaluateProgress(c echo.Context) error {
	userID, ok := currentUserID(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ResponseError{Message: "unauthorized"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	report, err := h.engagementService.EvaluateProgress(ctx, userID)
	if err != nil {
		return c.JSON(errorStatus(err), ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"progress": report,
	})
}

func (h *EngagementHandler) CompleteMilestone(c echo.Context) error {
	userID, ok := currentUserID(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ResponseError{Message: "unauthorized"})
	}

	var req CompleteMilestoneRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	if err := h.validator.Struct(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	state, err := h.engagementService.CompleteMilestone(ctx, userID, req.Milestone)
	if err != nil {
		logger.Error("Failed to complete milestone", err)
		return c.JSON(errorStatus(err), ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"message": "Milestone recorded",
		"state":   state,
	})
}

func (h *EngagementHandler) GenerateNudges(c echo.Context) error {
	userID, ok := currentUserID(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ResponseError{Message: "unauthorized"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	nudges, err := h.engagementService.GenerateNudges(ctx, userID)
	if err != nil {
		return c.JSON(errorStatus(err), ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"nudges": nudges,
	})
}

func (h *EngagementHandler) DismissNudge(c echo.Context) error {
	userID, ok := currentUserID(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ResponseError{Message: "unauthorized"})
	}

	var req DismissNudgeRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	if err := h.validator.Struct(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	if err := h.engagementService.DismissNudge(ctx, userID, req.NudgeID); err != nil {
		return c.JSON(errorStatus(err), ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"message": "Nudge dismissed",
	})
}

// CheckReEngagement evaluates the caller against the re-engagement schedule
// and fires the matching trigger, if any. Returns the message that was sent
// or a null payload when no trigger matched.
func (h *EngagementHandler) CheckReEngagement(c echo.Context) error {
	userID, ok := currentUserID(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ResponseError{Message: "unauthorized"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	message, err := h.engagementService.CheckReEngagement(ctx, userID)
	if err != nil {
		logger.Error("Failed to check re-engagement", err)
		return c.JSON(errorStatus(err), ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"triggered": message != nil,
		"message":   message,
	})
}

// RunRetentionSweep walks every retention state and fires due triggers.
// Admin only; the same sweep also runs on a background ticker.
func (h *EngagementHandler) RunRetentionSweep(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 60*time.Second)
	defer cancel()

	fired, err := h.engagementService.RunRetentionSweep(ctx)
	if err != nil {
		logger.Error("Retention sweep failed", err)
		return c.JSON(http.StatusInternalServerError, ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"message": "Sweep complete",
		"fired":   fired,
	})
}
