package metrics

import (
	"fmt"
	"math"
	"sort"
	"strings"
	"time"

	"financial_trends/pkg/models"
)

// Growth clamps for the industry-pattern projection. Observed medians
// outside this band are treated as extraction noise, not a usable pattern.
const (
	MinProjectionGrowth = 0.02
	MaxProjectionGrowth = 0.15

	// ConservativeGrowth is the fixed rate of the final fallback.
	ConservativeGrowth = 0.05
)

// Estimate derives a value series for a category that matched no real data.
// Strategies are tried in strict order, stopping at the first success:
//
//  1. component aggregation (sum of keyword-related series)
//  2. industry growth-pattern projection (median CAGR of real series)
//  3. conservative 5%-growth default (always succeeds)
//
// The result is always tagged estimated, or poor for the final fallback, so
// downstream consumers never mistake it for extracted data.
func Estimate(spec CategorySpec, reconciled map[string]models.YearlySeries) models.CriticalMetric {
	if metric, ok := estimateFromComponents(spec, reconciled); ok {
		return metric
	}
	if metric, ok := estimateFromGrowthPattern(spec, reconciled); ok {
		return metric
	}
	return estimateConservative(spec, reconciled)
}

// =============================================================================
// STRATEGY 1: COMPONENT AGGREGATION
// =============================================================================

func estimateFromComponents(spec CategorySpec, reconciled map[string]models.YearlySeries) (models.CriticalMetric, bool) {
	if spec.Category == models.CategoryCurrentRatio {
		return estimateCurrentRatio(spec, reconciled)
	}

	contributors := seriesMatchingAny(reconciled, spec.ComponentKeywords)
	if len(contributors) < 2 {
		return models.CriticalMetric{}, false
	}

	totals := make(models.YearlySeries)
	for _, name := range contributors {
		for year, val := range reconciled[name] {
			totals[year] += val
		}
	}
	for year, total := range totals {
		if total == 0 {
			delete(totals, year)
		}
	}
	if len(totals) < 2 {
		return models.CriticalMetric{}, false
	}

	return models.CriticalMetric{
		Category:        spec.Category,
		DisplayName:     spec.DisplayName,
		YearlyValues:    totals,
		ImportanceScore: spec.Importance,
		SourceNote:      fmt.Sprintf("Estimated by aggregating %d component line items", len(contributors)),
		DataQuality:     models.QualityEstimated,
	}, true
}

// estimateCurrentRatio divides summed current assets by summed current
// liabilities per year instead of aggregating into a single total.
func estimateCurrentRatio(spec CategorySpec, reconciled map[string]models.YearlySeries) (models.CriticalMetric, bool) {
	assets := seriesMatchingAny(reconciled, []string{"current asset"})
	liabilities := seriesMatchingAny(reconciled, []string{"current liabilit"})
	if len(assets) == 0 || len(liabilities) == 0 {
		return models.CriticalMetric{}, false
	}

	assetTotals := sumByYear(reconciled, assets)
	liabilityTotals := sumByYear(reconciled, liabilities)

	ratios := make(models.YearlySeries)
	for year, a := range assetTotals {
		l, ok := liabilityTotals[year]
		if !ok || l == 0 {
			continue
		}
		ratios[year] = round2(a / l)
	}
	if len(ratios) < 2 {
		return models.CriticalMetric{}, false
	}

	return models.CriticalMetric{
		Category:        spec.Category,
		DisplayName:     spec.DisplayName,
		YearlyValues:    ratios,
		ImportanceScore: spec.Importance,
		SourceNote:      "Estimated as current assets / current liabilities per year",
		DataQuality:     models.QualityEstimated,
	}, true
}

// =============================================================================
// STRATEGY 2: INDUSTRY GROWTH-PATTERN PROJECTION
// =============================================================================

func estimateFromGrowthPattern(spec CategorySpec, reconciled map[string]models.YearlySeries) (models.CriticalMetric, bool) {
	growth, ok := medianRealGrowth(reconciled)
	if !ok {
		return models.CriticalMetric{}, false
	}

	base := representativeBase(spec, reconciled)
	projected := projectSeries(base, growth, requiredYears(reconciled))
	if len(projected) < 2 {
		return models.CriticalMetric{}, false
	}

	return models.CriticalMetric{
		Category:        spec.Category,
		DisplayName:     spec.DisplayName,
		YearlyValues:    projected,
		ImportanceScore: spec.Importance,
		SourceNote:      fmt.Sprintf("Projected from observed growth pattern (%.1f%% annually)", growth*100),
		DataQuality:     models.QualityEstimated,
	}, true
}

// medianRealGrowth derives a clamped median CAGR from every real series
// with usable endpoints.
func medianRealGrowth(reconciled map[string]models.YearlySeries) (float64, bool) {
	var rates []float64
	for _, series := range reconciled {
		years := series.SortedYears()
		if len(years) < 2 {
			continue
		}
		first, last := series[years[0]], series[years[len(years)-1]]
		if first <= 0 || last <= 0 {
			continue
		}
		periods := float64(len(years) - 1)
		rates = append(rates, math.Pow(last/first, 1/periods)-1)
	}
	if len(rates) == 0 {
		return 0, false
	}

	sort.Float64s(rates)
	median := rates[len(rates)/2]
	if len(rates)%2 == 0 {
		median = (rates[len(rates)/2-1] + rates[len(rates)/2]) / 2
	}

	if median < MinProjectionGrowth {
		median = MinProjectionGrowth
	}
	if median > MaxProjectionGrowth {
		median = MaxProjectionGrowth
	}
	return median, true
}

// representativeBase averages the per-series means of any series related to
// the category, falling back to the fixed default when nothing matches.
func representativeBase(spec CategorySpec, reconciled map[string]models.YearlySeries) float64 {
	related := seriesMatchingAny(reconciled, spec.BaseKeywords)
	if len(related) == 0 {
		return spec.DefaultBase
	}

	var total float64
	for _, name := range related {
		series := reconciled[name]
		var sum float64
		for _, v := range series {
			sum += v
		}
		total += sum / float64(len(series))
	}
	base := total / float64(len(related))
	if base == 0 {
		return spec.DefaultBase
	}
	return math.Abs(base)
}

// =============================================================================
// STRATEGY 3: CONSERVATIVE FALLBACK
// =============================================================================

// estimateConservative always succeeds, guaranteeing the 10-category
// invariant: a fixed default base compounded at 5% annually.
func estimateConservative(spec CategorySpec, reconciled map[string]models.YearlySeries) models.CriticalMetric {
	projected := projectSeries(spec.DefaultBase, ConservativeGrowth, requiredYears(reconciled))
	return models.CriticalMetric{
		Category:        spec.Category,
		DisplayName:     spec.DisplayName,
		YearlyValues:    projected,
		ImportanceScore: spec.Importance,
		SourceNote:      "Conservative default estimate (5% annual growth, no source data)",
		DataQuality:     models.QualityPoor,
	}
}

// =============================================================================
// HELPERS
// =============================================================================

func seriesMatchingAny(reconciled map[string]models.YearlySeries, keywords []string) []string {
	var names []string
	for name := range reconciled {
		lower := strings.ToLower(name)
		for _, kw := range keywords {
			if strings.Contains(lower, kw) {
				names = append(names, name)
				break
			}
		}
	}
	sort.Strings(names)
	return names
}

func sumByYear(reconciled map[string]models.YearlySeries, names []string) models.YearlySeries {
	totals := make(models.YearlySeries)
	for _, name := range names {
		for year, val := range reconciled[name] {
			totals[year] += val
		}
	}
	return totals
}

// requiredYears is the union of years across all real series, so estimates
// line up with extracted data. With no real data at all, the last 3
// calendar years stand in.
func requiredYears(reconciled map[string]models.YearlySeries) []string {
	seen := make(map[string]bool)
	for _, series := range reconciled {
		for year := range series {
			seen[year] = true
		}
	}

	var years []string
	for year := range seen {
		years = append(years, year)
	}
	if len(years) == 0 {
		current := time.Now().Year()
		for y := current - 2; y <= current; y++ {
			years = append(years, fmt.Sprintf("%d", y))
		}
	}
	sort.Strings(years)
	return years
}

func projectSeries(base, growth float64, years []string) models.YearlySeries {
	out := make(models.YearlySeries, len(years))
	value := base
	for i, year := range years {
		if i > 0 {
			value *= 1 + growth
		}
		out[year] = round2(value)
	}
	return out
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
