package pipeline

import (
	"context"
	"encoding/json"
	"fmt"

	"financial_trends/pkg/core/llm"
	"financial_trends/pkg/core/utils"
	"financial_trends/pkg/models"
)

// TrendService is the language-model trend-narration collaborator boundary.
type TrendService interface {
	GenerateTrends(ctx context.Context, metrics []models.CriticalMetric, credential string) ([]models.Trend, error)
}

// System prompt for the trend narration role.
const trendSystemPrompt = `You are a senior financial analyst writing a multi-year trend review.
For each metric you receive, compute the compound annual growth rate from the earliest to the latest year, classify the trend direction, and write a precise interpretation and a 2-3 sentence indication of what the movement means for the business.

You must strictly adhere to the following JSON schema for your output:
[
  {
    "category": "string (echo the category id you were given)",
    "metric": "string (display name)",
    "growth_rate": number or null,
    "trend_direction": "strongly increasing | increasing | stable | decreasing | strongly decreasing | volatile",
    "interpretation": "string",
    "indication": "string"
  }
]

Rules:
1. Return exactly one entry per metric provided, in any order.
2. growth_rate is null when an endpoint value is zero or negative; direction is then "volatile".
3. Never pad the indication with generic filler; be specific to the metric.`

// trendPayload is the loosely-typed shape the model returns, validated
// before anything enters the typed Trend pipeline.
type trendPayload struct {
	Category       string   `json:"category"`
	Metric         string   `json:"metric"`
	GrowthRate     *float64 `json:"growth_rate"`
	TrendDirection string   `json:"trend_direction"`
	Interpretation string   `json:"interpretation"`
	Indication     string   `json:"indication"`
}

// LLMTrendService implements TrendService on top of an llm.Provider.
type LLMTrendService struct {
	provider llm.Provider
}

var _ TrendService = (*LLMTrendService)(nil)

// NewLLMTrendService creates a trend service bound to the given provider.
func NewLLMTrendService(provider llm.Provider) *LLMTrendService {
	return &LLMTrendService{provider: provider}
}

// GenerateTrends sends the 10 critical metrics for narration and parses the
// structured response tolerantly. Any provider or parse failure surfaces as
// an error so the orchestrator can fall back.
func (s *LLMTrendService) GenerateTrends(ctx context.Context, metrics []models.CriticalMetric, credential string) ([]models.Trend, error) {
	if s.provider == nil {
		return nil, fmt.Errorf("no LLM provider configured")
	}

	input, err := json.MarshalIndent(metrics, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to encode metrics: %w", err)
	}
	prompt := fmt.Sprintf("Analyze the multi-year trend of each of these financial metrics:\n\n%s", string(input))

	raw, err := s.provider.GenerateResponse(ctx, prompt, trendSystemPrompt, llm.JSONOptions(credential))
	if err != nil {
		return nil, fmt.Errorf("trend narration call failed: %w", err)
	}

	var payloads []trendPayload
	if err := utils.SmartParse(raw, &payloads); err != nil {
		return nil, fmt.Errorf("unparseable trend narration output: %w", err)
	}

	trends := make([]models.Trend, 0, len(payloads))
	for _, p := range payloads {
		trends = append(trends, models.Trend{
			Metric:         p.Metric,
			Category:       models.Category(p.Category),
			GrowthRate:     p.GrowthRate,
			Direction:      models.TrendDirection(p.TrendDirection),
			Interpretation: p.Interpretation,
			Indication:     p.Indication,
		})
	}
	return trends, nil
}
