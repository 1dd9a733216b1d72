package postgres

import (
	"context"

	"dealflow/domain"

	"gorm.io/gorm"
)

type TrendRepository struct {
	DB *gorm.DB
}

func NewTrendRepository(db *gorm.DB) *TrendRepository {
	return &TrendRepository{
		DB: db,
	}
}

func (r *TrendRepository) CreateBatch(ctx context.Context, trends []domain.MarketTrend) error {
	if len(trends) == 0 {
		return nil
	}
	return r.DB.WithContext(ctx).Create(&trends).Error
}

func (r *TrendRepository) FindByUserID(ctx context.Context, userID uint, limit int) ([]domain.MarketTrend, error) {
	var trends []domain.MarketTrend

	err := r.DB.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Limit(limit).
		Find(&trends).Error
	if err != nil {
		return nil, err
	}

	return trends, nil
}
