package insights

// JSON schema hints passed to the LLM gateway alongside each prompt.

var dealListSchema = map[string]any{
	"type": "array",
	"items": map[string]any{
		"type": "object",
		"properties": map[string]any{
			"title":                   map[string]any{"type": "string"},
			"platform":                map[string]any{"type": "string"},
			"category":                map[string]any{"type": "string"},
			"upfront_cost":            map[string]any{"type": "number"},
			"monthly_income_estimate": map[string]any{"type": "number"},
			"risk_score":              map[string]any{"type": "integer", "minimum": 1, "maximum": 10},
			"description":             map[string]any{"type": "string"},
			"source_url":              map[string]any{"type": "string"},
		},
		"required": []string{"title", "category", "upfront_cost", "monthly_income_estimate", "risk_score"},
	},
}

var riskSchema = map[string]any{
	"type": "object",
	"properties": map[string]any{
		"risk_score": map[string]any{"type": "integer", "minimum": 1, "maximum": 10},
		"factors":    map[string]any{"type": "array", "items": map[string]any{"type": "string"}},
		"mitigation": map[string]any{"type": "array", "items": map[string]any{"type": "string"}},
	},
	"required": []string{"risk_score", "factors", "mitigation"},
}

var trendListSchema = map[string]any{
	"type": "array",
	"items": map[string]any{
		"type": "object",
		"properties": map[string]any{
			"category":   map[string]any{"type": "string"},
			"trend":      map[string]any{"type": "string"},
			"direction":  map[string]any{"type": "string", "enum": []string{"rising", "stable", "declining"}},
			"summary":    map[string]any{"type": "string"},
			"confidence": map[string]any{"type": "number", "minimum": 0, "maximum": 1},
		},
		"required": []string{"category", "trend", "direction", "summary"},
	},
}

var forecastSchema = map[string]any{
	"type": "array",
	"items": map[string]any{
		"type": "object",
		"properties": map[string]any{
			"month":             map[string]any{"type": "string"},
			"projected_income":  map[string]any{"type": "number"},
			"cumulative_income": map[string]any{"type": "number"},
			"notes":             map[string]any{"type": "string"},
		},
		"required": []string{"month", "projected_income", "cumulative_income"},
	},
}
