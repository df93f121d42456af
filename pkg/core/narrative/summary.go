// Package narrative aggregates analyzed trends into an overall prose
// summary, a structured executive summary, and a renderable report.
package narrative

import (
	"fmt"
	"strings"

	"financial_trends/pkg/models"
)

// Categorization thresholds mirror the trend analyzer's direction
// thresholds, tightened for narrative significance.
const (
	strongPositiveStrongCAGR = 15.0
	strongPositiveMildCAGR   = 5.0
	concernCAGR              = -5.0
	criticalCAGR             = -20.0
	criticalImportance       = 80
	stableBandCAGR           = 5.0

	// Weak-data trends are excluded from narrative buckets below this
	// importance; high-importance metrics surface even with weak data.
	weakDataImportanceFloor = 80
)

// Buckets holds the narrative categorization of the trend set.
type Buckets struct {
	StrongPositive []models.Trend
	Stable         []models.Trend
	Concerns       []models.Trend
	Critical       []models.Trend
}

// Categorize sorts trends into narrative buckets, excluding poor/estimated
// data unless the metric is high-importance.
func Categorize(trends []models.Trend) Buckets {
	var b Buckets
	for _, t := range trends {
		weak := t.DataQuality == models.QualityPoor || t.DataQuality == models.QualityEstimated
		if weak && t.ImportanceScore < weakDataImportanceFloor {
			continue
		}
		if t.GrowthRate == nil {
			continue // volatile with undefined growth tells no directional story
		}
		cagr := *t.GrowthRate

		switch {
		case t.Direction == models.DirectionStronglyDecreasing && cagr < criticalCAGR && t.ImportanceScore >= criticalImportance:
			b.Critical = append(b.Critical, t)
		case t.Direction == models.DirectionStronglyIncreasing && cagr > strongPositiveStrongCAGR,
			t.Direction == models.DirectionIncreasing && cagr > strongPositiveMildCAGR:
			b.StrongPositive = append(b.StrongPositive, t)
		case t.Direction == models.DirectionDecreasing && cagr < concernCAGR,
			t.Direction == models.DirectionStronglyDecreasing:
			b.Concerns = append(b.Concerns, t)
		case t.Direction == models.DirectionStable && cagr <= stableBandCAGR && cagr >= -stableBandCAGR:
			b.Stable = append(b.Stable, t)
		}
	}
	return b
}

// OverallSummary composes the single-paragraph summary in fixed clause
// order: headline, positives (max 2), stable aspects (max 2), concerns
// (max 2, critical first), and an optional data-quality caveat.
func OverallSummary(result models.AnalysisResult) string {
	trends := result.FinancialTrends
	if len(trends) == 0 {
		return "Insufficient data is available to summarize the company's financial trends."
	}

	b := Categorize(trends)
	var parts []string

	parts = append(parts, headline(b))

	if names := metricNames(b.StrongPositive, 2); len(names) > 0 {
		parts = append(parts, fmt.Sprintf("Positive developments include %s.", joinNames(names)))
	}
	if names := metricNames(b.Stable, 2); len(names) > 0 {
		parts = append(parts, fmt.Sprintf("%s remained stable over the period.", joinNames(names)))
	}
	negatives := append(append([]models.Trend{}, b.Critical...), b.Concerns...)
	if names := metricNames(negatives, 2); len(names) > 0 {
		parts = append(parts, fmt.Sprintf("Areas of concern include %s.", joinNames(names)))
	}

	if weakDataCaveatApplies(trends) {
		parts = append(parts, "Several metrics rely on limited or estimated data, so these conclusions should be read with caution.")
	}

	return strings.Join(parts, " ")
}

func headline(b Buckets) string {
	positives := len(b.StrongPositive)
	negatives := len(b.Concerns) + len(b.Critical)

	switch {
	case len(b.Critical) > 0:
		return "The company shows critical deterioration in high-importance financial metrics and requires immediate corrective attention."
	case positives > negatives:
		return "The company demonstrates a broadly positive financial trajectory across its key metrics."
	case negatives > positives:
		return "The company faces notable financial headwinds across several key metrics."
	default:
		return "The company's financial position is broadly stable with mixed movements across metrics."
	}
}

// weakDataCaveatApplies: at least 4 weak-data trends and at most 2
// excellent ones.
func weakDataCaveatApplies(trends []models.Trend) bool {
	weak, excellent := 0, 0
	for _, t := range trends {
		switch t.DataQuality {
		case models.QualityPoor, models.QualityEstimated:
			weak++
		case models.QualityExcellent:
			excellent++
		}
	}
	return weak >= 4 && excellent <= 2
}

// metricNames returns up to max deduplicated metric names.
func metricNames(trends []models.Trend, max int) []string {
	seen := make(map[string]bool)
	var names []string
	for _, t := range trends {
		if seen[t.Metric] {
			continue
		}
		seen[t.Metric] = true
		names = append(names, t.Metric)
		if len(names) == max {
			break
		}
	}
	return names
}

func joinNames(names []string) string {
	switch len(names) {
	case 0:
		return ""
	case 1:
		return names[0]
	default:
		return strings.Join(names[:len(names)-1], ", ") + " and " + names[len(names)-1]
	}
}
