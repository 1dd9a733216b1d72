package rest

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"dealflow/domain"
	"dealflow/pkg/logger"

	"github.com/AMFarhan21/fres"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

type PortfolioService interface {
	AddInvestment(ctx context.Context, investment *domain.Investment) (domain.Investment, error)
	GetInvestment(ctx context.Context, userID, id uint) (domain.Investment, error)
	ListInvestments(ctx context.Context, userID uint) ([]domain.Investment, error)
	UpdateInvestment(ctx context.Context, userID, id uint, updateData *domain.Investment) (domain.Investment, error)
	DeleteInvestment(ctx context.Context, userID, id uint) error
	Summary(ctx context.Context, userID uint) (domain.PortfolioSummary, error)
}

type PortfolioHandler struct {
	portfolioService PortfolioService
	validator        *validator.Validate
	timeout          time.Duration
}

func NewPortfolioHandler(portfolioService PortfolioService) *PortfolioHandler {
	return &PortfolioHandler{
		portfolioService: portfolioService,
		validator:        validator.New(),
		timeout:          10 * time.Second,
	}
}

type InvestmentRequest struct {
	Name           string  `json:"name" validate:"required"`
	Category       string  `json:"category" validate:"required"`
	AmountInvested float64 `json:"amount_invested" validate:"required,gt=0"`
	MonthlyIncome  float64 `json:"monthly_income" validate:"gte=0"`
	Status         string  `json:"status,omitempty"`
}

func pathID(c echo.Context) (uint, error) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	return uint(id), err
}

func (h *PortfolioHandler) AddInvestment(c echo.Context) error {
	userID, ok := currentUserID(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ResponseError{Message: "unauthorized"})
	}

	var req InvestmentRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	if err := h.validator.Struct(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	investment, err := h.portfolioService.AddInvestment(ctx, &domain.Investment{
		UserID:         userID,
		Name:           req.Name,
		Category:       req.Category,
		AmountInvested: req.AmountInvested,
		MonthlyIncome:  req.MonthlyIncome,
		Status:         req.Status,
	})
	if err != nil {
		logger.Error("Failed to add investment", err)
		return c.JSON(errorStatus(err), ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusCreated, fres.Response.StatusCreated(investment))
}

func (h *PortfolioHandler) GetInvestment(c echo.Context) error {
	userID, ok := currentUserID(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ResponseError{Message: "unauthorized"})
	}

	id, err := pathID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: "invalid investment id"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	investment, err := h.portfolioService.GetInvestment(ctx, userID, id)
	if err != nil {
		return c.JSON(errorStatus(err), ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK(investment))
}

func (h *PortfolioHandler) ListInvestments(c echo.Context) error {
	userID, ok := currentUserID(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ResponseError{Message: "unauthorized"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	investments, err := h.portfolioService.ListInvestments(ctx, userID)
	if err != nil {
		return c.JSON(errorStatus(err), ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK(investments))
}

func (h *PortfolioHandler) UpdateInvestment(c echo.Context) error {
	userID, ok := currentUserID(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ResponseError{Message: "unauthorized"})
	}

	id, err := pathID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: "invalid investment id"})
	}

	var req InvestmentRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	investment, err := h.portfolioService.UpdateInvestment(ctx, userID, id, &domain.Investment{
		Name:           req.Name,
		Category:       req.Category,
		AmountInvested: req.AmountInvested,
		MonthlyIncome:  req.MonthlyIncome,
		Status:         req.Status,
	})
	if err != nil {
		logger.Error("Failed to update investment", err)
		return c.JSON(errorStatus(err), ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK(investment))
}

func (h *PortfolioHandler) DeleteInvestment(c echo.Context) error {
	userID, ok := currentUserID(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ResponseError{Message: "unauthorized"})
	}

	id, err := pathID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: "invalid investment id"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	if err := h.portfolioService.DeleteInvestment(ctx, userID, id); err != nil {
		return c.JSON(errorStatus(err), ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK("Investment deleted successfully"))
}

func (h *PortfolioHandler) Summary(c echo.Context) error {
	userID, ok := currentUserID(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ResponseError{Message: "unauthorized"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	summary, err := h.portfolioService.Summary(ctx, userID)
	if err != nil {
		return c.JSON(errorStatus(err), ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK(summary))
}
