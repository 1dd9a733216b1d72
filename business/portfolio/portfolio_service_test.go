package portfolio

import (
	"context"
	"errors"
	"testing"

	"dealflow/domain"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeInvestmentRepo struct {
	nextID      uint
	investments map[uint]domain.Investment
}

func newFakeInvestmentRepo() *fakeInvestmentRepo {
	return &fakeInvestmentRepo{nextID: 1, investments: make(map[uint]domain.Investment)}
}

func (f *fakeInvestmentRepo) Create(_ context.Context, inv *domain.Investment) error {
	inv.ID = f.nextID
	f.nextID++
	f.investments[inv.ID] = *inv
	return nil
}

func (f *fakeInvestmentRepo) FindByID(_ context.Context, id uint) (domain.Investment, error) {
	inv, ok := f.investments[id]
	if !ok {
		return domain.Investment{}, errors.New("investment not found")
	}
	return inv, nil
}

func (f *fakeInvestmentRepo) FindAllByUser(_ context.Context, userID uint) ([]domain.Investment, error) {
	var out []domain.Investment
	for _, inv := range f.investments {
		if inv.UserID == userID {
			out = append(out, inv)
		}
	}
	return out, nil
}

func (f *fakeInvestmentRepo) Update(_ context.Context, inv *domain.Investment) error {
	f.investments[inv.ID] = *inv
	return nil
}

func (f *fakeInvestmentRepo) Delete(_ context.Context, id uint) error {
	delete(f.investments, id)
	return nil
}

func newTestService() (*PortfolioService, *fakeInvestmentRepo) {
	repo := newFakeInvestmentRepo()
	return NewPortfolioService(repo, validator.New()), repo
}

func TestAddInvestment_DefaultsStatusToActive(t *testing.T) {
	svc, _ := newTestService()

	inv, err := svc.AddInvestment(context.Background(), &domain.Investment{
		UserID:         1,
		Name:           "Dividend ETF",
		Category:       "stocks",
		AmountInvested: 10000,
		MonthlyIncome:  35,
	})
	require.NoError(t, err)
	assert.Equal(t, domain.InvestmentStatusActive, inv.Status)
	assert.NotZero(t, inv.ID)
}

func TestAddInvestment_Validation(t *testing.T) {
	svc, _ := newTestService()

	_, err := svc.AddInvestment(context.Background(), &domain.Investment{UserID: 1})
	assert.ErrorContains(t, err, "name is required")

	_, err = svc.AddInvestment(context.Background(), &domain.Investment{UserID: 1, Name: "x", AmountInvested: -5})
	assert.ErrorContains(t, err, "invalid amount")

	_, err = svc.AddInvestment(context.Background(), &domain.Investment{UserID: 1, Name: "x", Status: "vaporized"})
	assert.ErrorContains(t, err, "invalid status")
}

func TestGetInvestment_OtherUsersLookLikeMissing(t *testing.T) {
	svc, repo := newTestService()
	repo.investments[1] = domain.Investment{ID: 1, UserID: 2, Name: "Rental"}

	_, err := svc.GetInvestment(context.Background(), 1, 1)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}

func TestUpdateInvestment_PartialUpdate(t *testing.T) {
	svc, repo := newTestService()
	repo.investments[1] = domain.Investment{
		ID: 1, UserID: 1, Name: "Rental", Category: "real_estate",
		AmountInvested: 50000, MonthlyIncome: 400, Status: domain.InvestmentStatusActive,
	}

	updated, err := svc.UpdateInvestment(context.Background(), 1, 1, &domain.Investment{
		MonthlyIncome: 450,
		Status:        domain.InvestmentStatusPaused,
	})
	require.NoError(t, err)

	assert.Equal(t, "Rental", updated.Name)
	assert.Equal(t, 450.0, updated.MonthlyIncome)
	assert.Equal(t, domain.InvestmentStatusPaused, updated.Status)
	assert.Equal(t, 50000.0, updated.AmountInvested)
}

func TestDeleteInvestment_ChecksOwnership(t *testing.T) {
	svc, repo := newTestService()
	repo.investments[1] = domain.Investment{ID: 1, UserID: 2, Name: "Rental"}

	err := svc.DeleteInvestment(context.Background(), 1, 1)
	require.Error(t, err)
	assert.Len(t, repo.investments, 1)
}

func TestSummary_ExitedExcludedFromIncome(t *testing.T) {
	svc, repo := newTestService()
	repo.investments[1] = domain.Investment{ID: 1, UserID: 1, Name: "Rental", Category: "real_estate", AmountInvested: 50000, MonthlyIncome: 400, Status: domain.InvestmentStatusActive}
	repo.investments[2] = domain.Investment{ID: 2, UserID: 1, Name: "Old course", Category: "digital", AmountInvested: 2000, MonthlyIncome: 150, Status: domain.InvestmentStatusExited}
	repo.investments[3] = domain.Investment{ID: 3, UserID: 2, Name: "Other user", AmountInvested: 999, MonthlyIncome: 99, Status: domain.InvestmentStatusActive}

	summary, err := svc.Summary(context.Background(), 1)
	require.NoError(t, err)

	assert.Equal(t, 52000.0, summary.TotalInvested)
	assert.Equal(t, 400.0, summary.MonthlyPassiveIncome)
	assert.Equal(t, 2, summary.InvestmentCount)
	assert.Equal(t, 50000.0, summary.ByCategory["real_estate"])
	assert.Equal(t, 2000.0, summary.ByCategory["digital"])
}
