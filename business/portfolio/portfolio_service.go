package portfolio

import (
	"context"
	"errors"

	"dealflow/domain"
	"dealflow/pkg/logger"

	"github.com/go-playground/validator/v10"
)

type InvestmentRepository interface {
	Create(ctx context.Context, investment *domain.Investment) error
	FindByID(ctx context.Context, id uint) (domain.Investment, error)
	FindAllByUser(ctx context.Context, userID uint) ([]domain.Investment, error)
	Update(ctx context.Context, investment *domain.Investment) error
	Delete(ctx context.Context, id uint) error
}

var validStatuses = map[string]bool{
	domain.InvestmentStatusActive:   true,
	domain.InvestmentStatusPaused:   true,
	domain.InvestmentStatusExited:   true,
	domain.InvestmentStatusResearch: true,
}

type PortfolioService struct {
	investmentRepo InvestmentRepository
	validate       *validator.Validate
}

func NewPortfolioService(investmentRepo InvestmentRepository, validate *validator.Validate) *PortfolioService {
	return &PortfolioService{
		investmentRepo: investmentRepo,
		validate:       validate,
	}
}

func (s *PortfolioService) AddInvestment(ctx context.Context, investment *domain.Investment) (domain.Investment, error) {
	if err := s.validate.Var(investment.Name, "required"); err != nil {
		return domain.Investment{}, errors.New("investment name is required")
	}
	if investment.AmountInvested < 0 {
		return domain.Investment{}, errors.New("invalid amount: cannot be negative")
	}
	if investment.MonthlyIncome < 0 {
		return domain.Investment{}, errors.New("invalid monthly income: cannot be negative")
	}

	if investment.Status == "" {
		investment.Status = domain.InvestmentStatusActive
	}
	if !validStatuses[investment.Status] {
		return domain.Investment{}, errors.New("invalid status")
	}

	if err := s.investmentRepo.Create(ctx, investment); err != nil {
		logger.Error("Failed to create investment", err)
		return domain.Investment{}, err
	}

	return *investment, nil
}

func (s *PortfolioService) GetInvestment(ctx context.Context, userID, id uint) (domain.Investment, error) {
	investment, err := s.investmentRepo.FindByID(ctx, id)
	if err != nil {
		return domain.Investment{}, err
	}

	if investment.UserID != userID {
		return domain.Investment{}, errors.New("investment not found")
	}

	return investment, nil
}

func (s *PortfolioService) ListInvestments(ctx context.Context, userID uint) ([]domain.Investment, error) {
	return s.investmentRepo.FindAllByUser(ctx, userID)
}

func (s *PortfolioService) UpdateInvestment(ctx context.Context, userID, id uint, updateData *domain.Investment) (domain.Investment, error) {
	existing, err := s.GetInvestment(ctx, userID, id)
	if err != nil {
		return domain.Investment{}, err
	}

	if updateData.Name != "" {
		existing.Name = updateData.Name
	}
	if updateData.Category != "" {
		existing.Category = updateData.Category
	}
	if updateData.AmountInvested > 0 {
		existing.AmountInvested = updateData.AmountInvested
	}
	if updateData.MonthlyIncome >= 0 && updateData.MonthlyIncome != existing.MonthlyIncome {
		existing.MonthlyIncome = updateData.MonthlyIncome
	}
	if updateData.Status != "" {
		if !validStatuses[updateData.Status] {
			return domain.Investment{}, errors.New("invalid status")
		}
		existing.Status = updateData.Status
	}

	if err := s.investmentRepo.Update(ctx, &existing); err != nil {
		logger.Error("Failed to update investment", err)
		return domain.Investment{}, err
	}

	return existing, nil
}

func (s *PortfolioService) DeleteInvestment(ctx context.Context, userID, id uint) error {
	if _, err := s.GetInvestment(ctx, userID, id); err != nil {
		return err
	}

	return s.investmentRepo.Delete(ctx, id)
}

// Summary aggregates the user's holdings. Exited investments are excluded
// from monthly income but kept in the invested total.
func (s *PortfolioService) Summary(ctx context.Context, userID uint) (domain.PortfolioSummary, error) {
	investments, err := s.investmentRepo.FindAllByUser(ctx, userID)
	if err != nil {
		return domain.PortfolioSummary{}, err
	}

	summary := domain.PortfolioSummary{
		ByCategory: make(map[string]float64),
	}

	for _, inv := range investments {
		summary.TotalInvested += inv.AmountInvested
		summary.InvestmentCount++
		if inv.Status == domain.InvestmentStatusActive {
			summary.MonthlyPassiveIncome += inv.MonthlyIncome
		}
		if inv.Category != "" {
			summary.ByCategory[inv.Category] += inv.AmountInvested
		}
	}

	return summary, nil
}
