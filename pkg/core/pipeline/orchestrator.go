package pipeline

import (
	"context"
	"fmt"
	"strings"

	"financial_trends/pkg/core/trend"
	"financial_trends/pkg/models"
)

// TrendOrchestrator runs the ATTEMPT_LLM -> VALIDATE -> {ACCEPT, FALLBACK}
// state machine. The fallback path is terminal and always succeeds, so the
// caller receives exactly one trend per critical metric regardless of
// external-service availability.
type TrendOrchestrator struct {
	service TrendService // nil disables the LLM path entirely
}

// NewTrendOrchestrator creates an orchestrator. Passing a nil service pins
// the engine to the deterministic analyzer.
func NewTrendOrchestrator(service TrendService) *TrendOrchestrator {
	return &TrendOrchestrator{service: service}
}

// GenerateAnalysis produces the analysis result for the critical metrics,
// preferring the LLM narration and falling back to the deterministic
// analyzer on any irregularity.
func (o *TrendOrchestrator) GenerateAnalysis(ctx context.Context, metrics []models.CriticalMetric, credential string) models.AnalysisResult {
	// The deterministic analysis doubles as the fallback result and as the
	// donor for self-healing LLM output, so compute it up front.
	manual := trend.AnalyzeAll(metrics)

	if o.service == nil {
		return manual
	}

	llmTrends, err := o.service.GenerateTrends(ctx, metrics, credential)
	if err != nil {
		fmt.Printf("Warning: LLM trend narration failed: %v. Using deterministic analysis.\n", err)
		return manual
	}
	if len(llmTrends) == 0 {
		fmt.Printf("Warning: LLM trend narration returned no trends. Using deterministic analysis.\n")
		return manual
	}

	validated := o.validate(llmTrends, manual.FinancialTrends)
	return models.AnalysisResult{
		FinancialTrends: validated,
		Success:         true,
		Source:          models.SourceLLM,
	}
}

// validate reconciles the LLM trends against the deterministic set. Every
// critical metric keeps exactly one record: the narrated one where the
// model produced it, healed with deterministic values where the narration
// is missing or degenerate, and the deterministic record where the model
// skipped the metric entirely.
func (o *TrendOrchestrator) validate(llmTrends, manual []models.Trend) []models.Trend {
	narrated := make(map[models.Category]models.Trend, len(llmTrends))
	for _, t := range llmTrends {
		if _, dup := narrated[t.Category]; !dup {
			narrated[t.Category] = t
		}
	}

	out := make([]models.Trend, 0, len(manual))
	for _, base := range manual {
		t, ok := narrated[base.Category]
		if !ok {
			out = append(out, base)
			continue
		}

		// Numeric fields, quality tags and importance always come from
		// the deterministic pipeline; the model contributes prose only.
		t.Metric = base.Metric
		t.YearlyValues = base.YearlyValues
		t.ImportanceScore = base.ImportanceScore
		t.DataQuality = base.DataQuality
		if t.GrowthRate == nil {
			t.GrowthRate = base.GrowthRate
		}
		if !validDirection(t.Direction) {
			t.Direction = base.Direction
		}
		if strings.TrimSpace(t.Interpretation) == "" {
			t.Interpretation = base.Interpretation
		}
		if needsRegeneration(t.Indication) {
			t.Indication = trend.IndicationFor(t.Category, t.Metric, t.Direction)
		}
		out = append(out, t)
	}
	return out
}

// needsRegeneration flags indications that are missing or carry the
// reserved generic sentinel phrase.
func needsRegeneration(indication string) bool {
	trimmed := strings.TrimSpace(indication)
	if trimmed == "" {
		return true
	}
	return strings.Contains(strings.ToLower(trimmed), trend.GenericIndicationSentinel)
}

func validDirection(d models.TrendDirection) bool {
	switch d {
	case models.DirectionStronglyIncreasing, models.DirectionIncreasing,
		models.DirectionStable, models.DirectionDecreasing,
		models.DirectionStronglyDecreasing, models.DirectionVolatile:
		return true
	}
	return false
}
