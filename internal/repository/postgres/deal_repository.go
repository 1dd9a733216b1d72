package postgres

import (
	"context"

	"dealflow/domain"

	"gorm.io/gorm"
)

type DealRepository struct {
	DB *gorm.DB
}

func NewDealRepository(db *gorm.DB) *DealRepository {
	return &DealRepository{
		DB: db,
	}
}

func (r *DealRepository) CreateBatch(ctx context.Context, deals []domain.SourcedDealOpportunity) error {
	if len(deals) == 0 {
		return nil
	}
	return r.DB.WithContext(ctx).Create(&deals).Error
}

func (r *DealRepository) FindByUserID(ctx context.Context, userID uint, limit int) ([]domain.SourcedDealOpportunity, error) {
	var deals []domain.SourcedDealOpportunity

	err := r.DB.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("fit_score DESC, created_at DESC").
		Limit(limit).
		Find(&deals).Error
	if err != nil {
		return nil, err
	}

	return deals, nil
}
