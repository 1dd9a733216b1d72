package insights

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"time"

	"dealflow/domain"
	"dealflow/pkg/logger"

	"github.com/google/uuid"
)

// ---- LLM gateway contract ----

// Provider is a single LLM backend. Implementations append their own
// JSON-formatting instructions from the schema hint; UseWebSearch asks for
// a search-grounded completion and is only honored by providers that
// support it.
type Provider interface {
	Name() string
	Invoke(ctx context.Context, prompt string, schema map[string]any, useWebSearch bool) (string, error)
}

// DecodeError reports that the provider answered but the answer did not
// decode into the expected shape. Raw carries the degraded response text.
type DecodeError struct {
	Provider string
	Raw      string
	Err      error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("llm response from %s did not match expected schema: %v", e.Provider, e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }

// ---- Repository interfaces ----

type DealRepository interface {
	CreateBatch(ctx context.Context, deals []domain.SourcedDealOpportunity) error
	FindByUserID(ctx context.Context, userID uint, limit int) ([]domain.SourcedDealOpportunity, error)
}

type TrendRepository interface {
	CreateBatch(ctx context.Context, trends []domain.MarketTrend) error
	FindByUserID(ctx context.Context, userID uint, limit int) ([]domain.MarketTrend, error)
}

type OnboardingRepository interface {
	FindByUserID(ctx context.Context, userID uint) (domain.OnboardingProfile, error)
}

type InvestmentRepository interface {
	FindAllByUser(ctx context.Context, userID uint) ([]domain.Investment, error)
	FindByID(ctx context.Context, id uint) (domain.Investment, error)
}

// ---- Service ----

type InsightsService struct {
	provider       Provider
	searchProvider Provider
	dealRepo       DealRepository
	trendRepo      TrendRepository
	onboardingRepo OnboardingRepository
	investmentRepo InvestmentRepository
}

func NewInsightsService(
	provider Provider,
	searchProvider Provider,
	dealRepo DealRepository,
	trendRepo TrendRepository,
	onboardingRepo OnboardingRepository,
	investmentRepo InvestmentRepository,
) *InsightsService {
	return &InsightsService{
		provider:       provider,
		searchProvider: searchProvider,
		dealRepo:       dealRepo,
		trendRepo:      trendRepo,
		onboardingRepo: onboardingRepo,
		investmentRepo: investmentRepo,
	}
}

// extractJSON trims any prose surrounding the first JSON value in the
// response. Providers are asked for bare JSON but do not always comply.
func extractJSON(raw string) string {
	objStart := strings.Index(raw, "{")
	arrStart := strings.Index(raw, "[")

	start := objStart
	end := strings.LastIndex(raw, "}")
	if arrStart >= 0 && (objStart < 0 || arrStart < objStart) {
		start = arrStart
		end = strings.LastIndex(raw, "]")
	}

	if start < 0 || end < start {
		return raw
	}
	return raw[start : end+1]
}

// runStructured is the single prompt -> schema -> typed-decode pipeline all
// insight operations go through. Decode failures surface as *DecodeError.
func (s *InsightsService) runStructured(ctx context.Context, provider Provider, prompt string, schema map[string]any, useWebSearch bool, out any) error {
	raw, err := provider.Invoke(ctx, prompt, schema, useWebSearch)
	if err != nil {
		return fmt.Errorf("llm invoke (%s): %w", provider.Name(), err)
	}

	payload := extractJSON(raw)
	dec := json.NewDecoder(strings.NewReader(payload))
	dec.DisallowUnknownFields()

	if err := dec.Decode(out); err != nil {
		return &DecodeError{Provider: provider.Name(), Raw: raw, Err: err}
	}

	return nil
}

type sourcedDealResult struct {
	Title                 string  `json:"title"`
	Platform              string  `json:"platform"`
	Category              string  `json:"category"`
	UpfrontCost           float64 `json:"upfront_cost"`
	MonthlyIncomeEstimate float64 `json:"monthly_income_estimate"`
	RiskScore             int     `json:"risk_score"`
	Description           string  `json:"description"`
	SourceURL             string  `json:"source_url"`
}

// fitScore ranks a sourced deal against the user's stated preferences.
func fitScore(deal sourcedDealResult, prefs domain.OnboardingPreferences) float64 {
	score := 0.0

	for _, industry := range prefs.DealSourcing.TargetIndustries {
		if strings.EqualFold(deal.Category, industry) {
			score += 2.0
			break
		}
	}

	if deal.UpfrontCost > 0 {
		// annualized yield on upfront cost, capped so a single outlier
		// cannot dominate the ranking
		yield := deal.MonthlyIncomeEstimate * 12 / deal.UpfrontCost
		if yield > 1.0 {
			yield = 1.0
		}
		score += yield
	}

	switch prefs.DealSourcing.RiskTolerance {
	case "conservative":
		score -= float64(deal.RiskScore) * 0.2
	case "aggressive":
		score += float64(deal.RiskScore) * 0.1
	}

	return score
}

// SourceDeals asks the search-grounded provider for passive-income deals
// matched to the user's preferences, ranks them by fit and persists the
// top results.
func (s *InsightsService) SourceDeals(ctx context.Context, userID uint, limit int) ([]domain.SourcedDealOpportunity, error) {
	if limit <= 0 || limit > 20 {
		limit = 5
	}

	profile, err := s.onboardingRepo.FindByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	prefs := profile.Preferences.Data()

	var results []sourcedDealResult
	prompt := dealSourcingPrompt(prefs, limit)
	if err := s.runStructured(ctx, s.searchProvider, prompt, dealListSchema, true, &results); err != nil {
		return nil, err
	}
	if len(results) == 0 {
		return []domain.SourcedDealOpportunity{}, nil
	}

	sort.SliceStable(results, func(i, j int) bool {
		return fitScore(results[i], prefs) > fitScore(results[j], prefs)
	})
	if len(results) > limit {
		results = results[:limit]
	}

	now := time.Now()
	deals := make([]domain.SourcedDealOpportunity, 0, len(results))
	for _, r := range results {
		if r.RiskScore < 1 || r.RiskScore > 10 {
			r.RiskScore = 5
		}
		deals = append(deals, domain.SourcedDealOpportunity{
			ExternalID:            uuid.NewString(),
			UserID:                userID,
			Title:                 r.Title,
			Platform:              r.Platform,
			Category:              r.Category,
			UpfrontCost:           r.UpfrontCost,
			MonthlyIncomeEstimate: r.MonthlyIncomeEstimate,
			RiskScore:             r.RiskScore,
			FitScore:              fitScore(r, prefs),
			Description:           r.Description,
			SourceURL:             r.SourceURL,
			CreatedAt:             now,
		})
	}

	if err := s.dealRepo.CreateBatch(ctx, deals); err != nil {
		return nil, fmt.Errorf("persist sourced deals: %w", err)
	}

	return deals, nil
}

// ListDeals returns previously sourced deals for the user.
func (s *InsightsService) ListDeals(ctx context.Context, userID uint, limit int) ([]domain.SourcedDealOpportunity, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	return s.dealRepo.FindByUserID(ctx, userID, limit)
}

// AssessRisk scores a single investment against the user's profile.
// A *DecodeError is returned as-is so the handler can choose the explicit
// degraded response.
func (s *InsightsService) AssessRisk(ctx context.Context, userID, investmentID uint) (domain.RiskAssessment, error) {
	investment, err := s.investmentRepo.FindByID(ctx, investmentID)
	if err != nil {
		return domain.RiskAssessment{}, err
	}
	if investment.UserID != userID {
		return domain.RiskAssessment{}, fmt.Errorf("investment not found")
	}

	profile, err := s.onboardingRepo.FindByUserID(ctx, userID)
	if err != nil {
		return domain.RiskAssessment{}, err
	}

	var result domain.RiskAssessment
	prompt := riskAssessmentPrompt(investment, profile.Preferences.Data())
	if err := s.runStructured(ctx, s.provider, prompt, riskSchema, false, &result); err != nil {
		return domain.RiskAssessment{}, err
	}

	if result.RiskScore < 1 || result.RiskScore > 10 {
		logger.Warn("Risk score out of range, clamping", "score", result.RiskScore, "investment_id", investmentID)
		result.RiskScore = 5
	}

	return result, nil
}

// AnalyzeMarketTrends pulls current trend signals for the user's target
// categories via the search-grounded provider and persists them.
func (s *InsightsService) AnalyzeMarketTrends(ctx context.Context, userID uint) ([]domain.MarketTrend, error) {
	profile, err := s.onboardingRepo.FindByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	categories := profile.Preferences.Data().DealSourcing.TargetIndustries
	if len(categories) == 0 {
		categories = []string{"digital products", "rental assets", "dividend portfolios"}
	}

	var results []struct {
		Category   string  `json:"category"`
		Trend      string  `json:"trend"`
		Direction  string  `json:"direction"`
		Summary    string  `json:"summary"`
		Confidence float64 `json:"confidence"`
	}
	prompt := marketTrendPrompt(categories)
	if err := s.runStructured(ctx, s.searchProvider, prompt, trendListSchema, true, &results); err != nil {
		return nil, err
	}

	now := time.Now()
	trends := make([]domain.MarketTrend, 0, len(results))
	for _, r := range results {
		trends = append(trends, domain.MarketTrend{
			UserID:     userID,
			Category:   r.Category,
			Trend:      r.Trend,
			Direction:  r.Direction,
			Summary:    r.Summary,
			Confidence: r.Confidence,
			CreatedAt:  now,
		})
	}

	if len(trends) > 0 {
		if err := s.trendRepo.CreateBatch(ctx, trends); err != nil {
			return nil, fmt.Errorf("persist market trends: %w", err)
		}
	}

	return trends, nil
}

// ForecastIncome projects monthly passive income over the horizon from the
// user's current holdings.
func (s *InsightsService) ForecastIncome(ctx context.Context, userID uint, months int) ([]domain.ForecastRow, error) {
	if months <= 0 || months > 36 {
		months = 12
	}

	investments, err := s.investmentRepo.FindAllByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if len(investments) == 0 {
		return nil, fmt.Errorf("no investments to forecast")
	}

	var rows []domain.ForecastRow
	prompt := forecastPrompt(investments, months)
	if err := s.runStructured(ctx, s.provider, prompt, forecastSchema, false, &rows); err != nil {
		return nil, err
	}

	if len(rows) > months {
		rows = rows[:months]
	}

	return rows, nil
}
