// Package trend computes multi-year growth statistics for critical metrics
// and renders deterministic interpretation and indication narratives.
package trend

import (
	"fmt"
	"math"
	"sort"

	"financial_trends/pkg/models"
)

// Direction thresholds on CAGR percentage. Exactly 20 is "increasing", not
// "strongly increasing"; exactly 8 is already "increasing".
const (
	StronglyIncreasingAbove = 20.0
	IncreasingFrom          = 8.0
	StronglyDecreasingBelow = -20.0
	DecreasingFrom          = -8.0
)

// CAGR returns the compound annual growth rate in percent, rounded to 2
// decimals. It is defined only when both endpoints are strictly positive;
// ok is false otherwise, including for fewer than 2 periods.
func CAGR(first, last float64, periods int) (float64, bool) {
	if periods < 1 || first <= 0 || last <= 0 {
		return 0, false
	}
	rate := (math.Pow(last/first, 1/float64(periods)) - 1) * 100
	return math.Round(rate*100) / 100, true
}

// Classify maps a CAGR value onto a trend direction. A nil growth rate
// forces volatile regardless of the raw values.
func Classify(growthRate *float64) models.TrendDirection {
	if growthRate == nil {
		return models.DirectionVolatile
	}
	switch {
	case *growthRate > StronglyIncreasingAbove:
		return models.DirectionStronglyIncreasing
	case *growthRate >= IncreasingFrom:
		return models.DirectionIncreasing
	case *growthRate < StronglyDecreasingBelow:
		return models.DirectionStronglyDecreasing
	case *growthRate <= DecreasingFrom:
		return models.DirectionDecreasing
	default:
		return models.DirectionStable
	}
}

// Analyze derives the full trend record for one critical metric.
func Analyze(metric models.CriticalMetric) models.Trend {
	years := metric.YearlyValues.SortedYears()

	t := models.Trend{
		Metric:          metric.DisplayName,
		Category:        metric.Category,
		YearlyValues:    metric.YearlyValues,
		ImportanceScore: metric.ImportanceScore,
		DataQuality:     metric.DataQuality,
	}

	if len(years) >= 2 {
		first := metric.YearlyValues[years[0]]
		last := metric.YearlyValues[years[len(years)-1]]
		if rate, ok := CAGR(first, last, len(years)-1); ok {
			t.GrowthRate = &rate
		}
	}

	t.Direction = Classify(t.GrowthRate)
	t.Interpretation = interpret(metric, years, t.GrowthRate)
	t.Indication = IndicationFor(metric.Category, metric.DisplayName, t.Direction)
	return t
}

// AnalyzeAll analyzes every critical metric and assembles the deterministic
// analysis result, sorted by importance descending.
func AnalyzeAll(metrics []models.CriticalMetric) models.AnalysisResult {
	trends := make([]models.Trend, 0, len(metrics))
	for _, metric := range metrics {
		trends = append(trends, Analyze(metric))
	}
	sort.SliceStable(trends, func(i, j int) bool {
		return trends[i].ImportanceScore > trends[j].ImportanceScore
	})
	return models.AnalysisResult{
		FinancialTrends: trends,
		Success:         true,
		Source:          models.SourceManual,
	}
}

// interpret renders the templated interpretation sentence. With a defined
// CAGR it states the endpoint values and the rate; otherwise it falls back
// to a range description.
func interpret(metric models.CriticalMetric, years []string, growthRate *float64) string {
	if len(years) == 0 {
		return fmt.Sprintf("%s has no reported values.", metric.DisplayName)
	}
	if len(years) == 1 {
		return fmt.Sprintf("%s has a single reported value of %s in %s.",
			metric.DisplayName, FormatValue(metric.Category, metric.YearlyValues[years[0]]), years[0])
	}

	first := metric.YearlyValues[years[0]]
	last := metric.YearlyValues[years[len(years)-1]]

	if growthRate != nil {
		return fmt.Sprintf("%s moved from %s in %s to %s in %s, a compound annual growth rate of %.2f%%.",
			metric.DisplayName,
			FormatValue(metric.Category, first), years[0],
			FormatValue(metric.Category, last), years[len(years)-1],
			*growthRate)
	}

	lo, hi := first, first
	for _, year := range years {
		v := metric.YearlyValues[year]
		if v < lo {
			lo = v
		}
		if v > hi {
			hi = v
		}
	}
	return fmt.Sprintf("%s fluctuated between %s and %s from %s to %s; a growth rate is undefined for non-positive endpoint values.",
		metric.DisplayName,
		FormatValue(metric.Category, lo), FormatValue(metric.Category, hi),
		years[0], years[len(years)-1])
}
