package postgres

import (
	"context"
	"errors"
	"fmt"

	"dealflow/domain"

	"gorm.io/gorm"
)

type InvestmentRepository struct {
	DB *gorm.DB
}

func NewInvestmentRepository(db *gorm.DB) *InvestmentRepository {
	return &InvestmentRepository{
		DB: db,
	}
}

func (r *InvestmentRepository) Create(ctx context.Context, investment *domain.Investment) error {
	return r.DB.WithContext(ctx).Create(investment).Error
}

func (r *InvestmentRepository) FindByID(ctx context.Context, id uint) (domain.Investment, error) {
	var investment domain.Investment

	err := r.DB.WithContext(ctx).First(&investment, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.Investment{}, fmt.Errorf("investment %w", domain.ErrNotFound)
		}
		return domain.Investment{}, err
	}

	return investment, nil
}

func (r *InvestmentRepository) FindAllByUser(ctx context.Context, userID uint) ([]domain.Investment, error) {
	var investments []domain.Investment

	if err := r.DB.WithContext(ctx).Where("user_id = ?", userID).Find(&investments).Error; err != nil {
		return nil, err
	}

	return investments, nil
}

func (r *InvestmentRepository) Update(ctx context.Context, investment *domain.Investment) error {
	return r.DB.WithContext(ctx).Model(&domain.Investment{}).
		Where("id = ?", investment.ID).
		Select("name", "category", "amount_invested", "monthly_income", "status").
		Updates(investment).Error
}

func (r *InvestmentRepository) Delete(ctx context.Context, id uint) error {
	result := r.DB.WithContext(ctx).Delete(&domain.Investment{}, id)
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return fmt.Errorf("investment %w or already deleted", domain.ErrNotFound)
	}

	return nil
}
