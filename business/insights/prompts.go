package insights

import (
	"fmt"
	"strings"

	"dealflow/domain"
)

func dealSourcingPrompt(prefs domain.OnboardingPreferences, limit int) string {
	industries := "any passive-income category"
	if len(prefs.DealSourcing.TargetIndustries) > 0 {
		industries = strings.Join(prefs.DealSourcing.TargetIndustries, ", ")
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Find %d currently available passive-income investment opportunities.\n", limit)
	fmt.Fprintf(&b, "Target categories: %s.\n", industries)
	if prefs.DealSourcing.DealSizeRange != "" {
		fmt.Fprintf(&b, "Deal size range: %s.\n", prefs.DealSourcing.DealSizeRange)
	}
	if prefs.DealSourcing.RiskTolerance != "" {
		fmt.Fprintf(&b, "Investor risk tolerance: %s.\n", prefs.DealSourcing.RiskTolerance)
	}
	b.WriteString("For each opportunity report the listing platform, upfront cost in USD, a realistic monthly income estimate in USD, a risk score from 1 (safest) to 10, a short description and the source URL.")

	return b.String()
}

func riskAssessmentPrompt(inv domain.Investment, prefs domain.OnboardingPreferences) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Assess the risk of this passive-income investment.\n")
	fmt.Fprintf(&b, "Investment: %s (category: %s), %0.2f USD invested, %0.2f USD reported monthly income, status %s.\n",
		inv.Name, inv.Category, inv.AmountInvested, inv.MonthlyIncome, inv.Status)
	if prefs.DealSourcing.RiskTolerance != "" {
		fmt.Fprintf(&b, "The investor's stated risk tolerance is %s.\n", prefs.DealSourcing.RiskTolerance)
	}
	b.WriteString("Give a risk score from 1 (safest) to 10, the main risk factors, and concrete mitigation steps.")

	return b.String()
}

func marketTrendPrompt(categories []string) string {
	return fmt.Sprintf(
		"Summarize the current market trends for these passive-income categories: %s. "+
			"For each category give one named trend, its direction (rising, stable or declining), "+
			"a two-sentence summary grounded in recent sources, and your confidence between 0 and 1.",
		strings.Join(categories, ", "),
	)
}

func forecastPrompt(investments []domain.Investment, months int) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Project monthly passive income for the next %d months for this portfolio:\n", months)
	for _, inv := range investments {
		fmt.Fprintf(&b, "- %s (%s): %0.2f USD invested, %0.2f USD/month, status %s\n",
			inv.Name, inv.Category, inv.AmountInvested, inv.MonthlyIncome, inv.Status)
	}
	fmt.Fprintf(&b, "Return exactly %d rows, one per month starting next month, with the month label (YYYY-MM), projected income, cumulative income and a short note when a number deviates from the simple run rate.", months)

	return b.String()
}
