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

type OnboardingService interface {
	StartOnboarding(ctx context.Context, userID uint, prefs domain.OnboardingPreferences) (domain.OnboardingProfile, error)
	GetOnboardingProfile(ctx context.Context, userID uint) (domain.OnboardingProfile, error)
	UpdatePreferences(ctx context.Context, userID uint, prefs domain.OnboardingPreferences) (domain.OnboardingProfile, error)
	SkipStep(ctx context.Context, userID uint, step int) (domain.OnboardingProfile, error)
}

type OnboardingHandler struct {
	onboardingService OnboardingService
	validator         *validator.Validate
	timeout           time.Duration
}

func NewOnboardingHandler(onboardingService OnboardingService) *OnboardingHandler {
	return &OnboardingHandler{
		onboardingService: onboardingService,
		validator:         validator.New(),
		timeout:           10 * time.Second,
	}
}

type SkipStepRequest struct {
	Step int `json:"step" validate:"required,min=1,max=3"`
}

// Start creates an onboarding profile for the caller. Calling it again
// returns the existing profile unchanged.
func (h *OnboardingHandler) Start(c echo.Context) error {
	userID, ok := currentUserID(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ResponseError{Message: "unauthorized"})
	}

	var prefs domain.OnboardingPreferences
	if err := c.Bind(&prefs); err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	profile, err := h.onboardingService.StartOnboarding(ctx, userID, prefs)
	if err != nil {
		logger.Error("Failed to start onboarding", err)
		return c.JSON(errorStatus(err), ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusCreated, map[string]interface{}{
		"profile": profile,
	})
}

func (h *OnboardingHandler) Get(c echo.Context) error {
	userID, ok := currentUserID(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ResponseError{Message: "unauthorized"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	profile, err := h.onboardingService.GetOnboardingProfile(ctx, userID)
	if err != nil {
		return c.JSON(errorStatus(err), ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"profile": profile,
	})
}

func (h *OnboardingHandler) UpdatePreferences(c echo.Context) error {
	userID, ok := currentUserID(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ResponseError{Message: "unauthorized"})
	}

	var prefs domain.OnboardingPreferences
	if err := c.Bind(&prefs); err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	profile, err := h.onboardingService.UpdatePreferences(ctx, userID, prefs)
	if err != nil {
		logger.Error("Failed to update onboarding preferences", err)
		return c.JSON(errorStatus(err), ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"message": "Preferences updated",
		"profile": profile,
	})
}

func (h *OnboardingHandler) SkipStep(c echo.Context) error {
	userID, ok := currentUserID(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ResponseError{Message: "unauthorized"})
	}

	var req SkipStepRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	if err := h.validator.Struct(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	profile, err := h.onboardingService.SkipStep(ctx, userID, req.Step)
	if err != nil {
		return c.JSON(errorStatus(err), ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"message": "Step skipped",
		"profile": profile,
	})
}
