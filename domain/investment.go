package domain

import (
	"time"

	"gorm.io/gorm"
)

const (
	InvestmentStatusActive   = "active"
	InvestmentStatusPaused   = "paused"
	InvestmentStatusExited   = "exited"
	InvestmentStatusResearch = "researching"
)

type Investment struct {
	ID             uint    `gorm:"primaryKey" json:"id"`
	UserID         uint    `gorm:"column:user_id;index;not null" json:"user_id"`
	Name           string  `gorm:"column:name;not null" json:"name"`
	Category       string  `gorm:"column:category" json:"category"`
	AmountInvested float64 `gorm:"column:amount_invested" json:"amount_invested"`
	MonthlyIncome  float64 `gorm:"column:monthly_income" json:"monthly_income"`
	Status         string  `gorm:"column:status;default:active" json:"status"`
	CreatedAt      time.Time
	UpdatedAt      time.Time
	DeletedAt      gorm.DeletedAt `gorm:"index" json:"-"`
}

func (Investment) TableName() string {
	return "investments"
}

type PortfolioSummary struct {
	TotalInvested        float64            `json:"total_invested"`
	MonthlyPassiveIncome float64            `json:"monthly_passive_income"`
	InvestmentCount      int                `json:"investment_count"`
	ByCategory           map[string]float64 `json:"by_category"`
}

// ForecastRow is one month of the projected-income forecast.
type ForecastRow struct {
	Month            string  `json:"month"`
	ProjectedIncome  float64 `json:"projected_income"`
	CumulativeIncome float64 `json:"cumulative_income"`
	Notes            string  `json:"notes,omitempty"`
}

type RiskAssessment struct {
	RiskScore  int      `json:"risk_score"`
	Factors    []string `json:"factors"`
	Mitigation []string `json:"mitigation"`
	Degraded   bool     `json:"degraded,omitempty"`
}
