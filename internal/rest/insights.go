package rest

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"dealflow/business/insights"
	"dealflow/domain"
	"dealflow/pkg/logger"
	"dealflow/pkg/metrics"

	"github.com/AMFarhan21/fres"
	"github.com/labstack/echo/v4"
)

type InsightsService interface {
	SourceDeals(ctx context.Context, userID uint, limit int) ([]domain.SourcedDealOpportunity, error)
	ListDeals(ctx context.Context, userID uint, limit int) ([]domain.SourcedDealOpportunity, error)
	AssessRisk(ctx context.Context, userID, investmentID uint) (domain.RiskAssessment, error)
	AnalyzeMarketTrends(ctx context.Context, userID uint) ([]domain.MarketTrend, error)
	ForecastIncome(ctx context.Context, userID uint, months int) ([]domain.ForecastRow, error)
}

type InsightsHandler struct {
	insightsService InsightsService
	timeout         time.Duration
}

func NewInsightsHandler(insightsService InsightsService) *InsightsHandler {
	return &InsightsHandler{
		insightsService: insightsService,
		// LLM round trips with web search can run long
		timeout: 90 * time.Second,
	}
}

func queryInt(c echo.Context, name string, fallback int) int {
	raw := c.QueryParam(name)
	if raw == "" {
		return fallback
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return v
}

// SourceDeals asks the LLM for fresh opportunities matching the caller's
// onboarding preferences, ranks them by fit, and persists the batch.
func (h *InsightsHandler) SourceDeals(c echo.Context) error {
	userID, ok := currentUserID(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ResponseError{Message: "unauthorized"})
	}

	limit := queryInt(c, "limit", 10)

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	start := time.Now()
	deals, err := h.insightsService.SourceDeals(ctx, userID, limit)
	metrics.InsightLatency.WithLabelValues("source_deals").Observe(time.Since(start).Seconds())
	if err != nil {
		logger.Error("Failed to source deals", err)
		return c.JSON(errorStatus(err), ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK(deals))
}

func (h *InsightsHandler) ListDeals(c echo.Context) error {
	userID, ok := currentUserID(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ResponseError{Message: "unauthorized"})
	}

	limit := queryInt(c, "limit", 20)

	ctx, cancel := context.WithTimeout(c.Request().Context(), 10*time.Second)
	defer cancel()

	deals, err := h.insightsService.ListDeals(ctx, userID, limit)
	if err != nil {
		return c.JSON(errorStatus(err), ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK(deals))
}

// AssessRisk scores a single investment. When the model returns output we
// cannot decode, the caller still gets a usable response: a neutral score
// flagged as degraded.
func (h *InsightsHandler) AssessRisk(c echo.Context) error {
	userID, ok := currentUserID(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ResponseError{Message: "unauthorized"})
	}

	investmentID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: "invalid investment id"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	start := time.Now()
	assessment, err := h.insightsService.AssessRisk(ctx, userID, uint(investmentID))
	metrics.InsightLatency.WithLabelValues("assess_risk").Observe(time.Since(start).Seconds())
	if err != nil {
		var decodeErr *insights.DecodeError
		if errors.As(err, &decodeErr) {
			logger.Warn("Risk assessment degraded, model output undecodable", "provider", decodeErr.Provider)
			return c.JSON(http.StatusOK, fres.Response.StatusOK(domain.RiskAssessment{
				RiskScore:  5,
				Factors:    []string{"Automatic assessment unavailable, manual review recommended"},
				Mitigation: []string{"Re-run the assessment later or review the investment manually"},
				Degraded:   true,
			}))
		}
		logger.Error("Failed to assess risk", err)
		return c.JSON(errorStatus(err), ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK(assessment))
}

func (h *InsightsHandler) AnalyzeMarketTrends(c echo.Context) error {
	userID, ok := currentUserID(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ResponseError{Message: "unauthorized"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	start := time.Now()
	trends, err := h.insightsService.AnalyzeMarketTrends(ctx, userID)
	metrics.InsightLatency.WithLabelValues("market_trends").Observe(time.Since(start).Seconds())
	if err != nil {
		logger.Error("Failed to analyze market trends", err)
		return c.JSON(errorStatus(err), ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK(trends))
}

func (h *InsightsHandler) ForecastIncome(c echo.Context) error {
	userID, ok := currentUserID(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ResponseError{Message: "unauthorized"})
	}

	months := queryInt(c, "months", 12)

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	start := time.Now()
	rows, err := h.insightsService.ForecastIncome(ctx, userID, months)
	metrics.InsightLatency.WithLabelValues("forecast_income").Observe(time.Since(start).Seconds())
	if err != nil {
		logger.Error("Failed to forecast income", err)
		return c.JSON(errorStatus(err), ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK(rows))
}
