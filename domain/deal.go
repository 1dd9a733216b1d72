package domain

import "time"

// SourcedDealOpportunity is a passive-income deal surfaced by the sourcing
// pipeline for a specific user.
type SourcedDealOpportunity struct {
	ID                    uint      `gorm:"primaryKey" json:"id"`
	ExternalID            string    `gorm:"column:external_id;uniqueIndex;not null" json:"external_id"`
	UserID                uint      `gorm:"column:user_id;index;not null" json:"user_id"`
	Title                 string    `gorm:"column:title;not null" json:"title"`
	Platform              string    `gorm:"column:platform" json:"platform"`
	Category              string    `gorm:"column:category" json:"category"`
	UpfrontCost           float64   `gorm:"column:upfront_cost" json:"upfront_cost"`
	MonthlyIncomeEstimate float64   `gorm:"column:monthly_income_estimate" json:"monthly_income_estimate"`
	RiskScore             int       `gorm:"column:risk_score" json:"risk_score"`
	FitScore              float64   `gorm:"column:fit_score" json:"fit_score"`
	Description           string    `gorm:"column:description;type:text" json:"description"`
	SourceURL             string    `gorm:"column:source_url" json:"source_url"`
	CreatedAt             time.Time `json:"created_at"`
}

func (SourcedDealOpportunity) TableName() string {
	return "sourced_deal_opportunities"
}

type MarketTrend struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	UserID     uint      `gorm:"column:user_id;index;not null" json:"user_id"`
	Category   string    `gorm:"column:category;not null" json:"category"`
	Trend      string    `gorm:"column:trend;not null" json:"trend"`
	Direction  string    `gorm:"column:direction" json:"direction"`
	Summary    string    `gorm:"column:summary;type:text" json:"summary"`
	Confidence float64   `gorm:"column:confidence" json:"confidence"`
	CreatedAt  time.Time `json:"created_at"`
}

func (MarketTrend) TableName() string {
	return "market_trends"
}
