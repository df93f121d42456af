package metrics

import (
	"math"
	"sort"
	"strings"

	"financial_trends/pkg/models"
)

// MeaningfulScaleFloor rejects stray small numbers (share counts, page
// numbers, per-share figures) from being matched as statement totals.
const MeaningfulScaleFloor = 100.0

// IsMeaningful reports whether a series carries enough signal to represent
// a critical metric: at least 2 years, not all zero, and a mean absolute
// value at or above the scale floor.
func IsMeaningful(series models.YearlySeries) bool {
	if len(series) < 2 {
		return false
	}

	var sum float64
	allZero := true
	for _, v := range series {
		if v != 0 {
			allZero = false
		}
		sum += math.Abs(v)
	}
	if allZero {
		return false
	}
	return sum/float64(len(series)) >= MeaningfulScaleFloor
}

// MatchCategories classifies reconciled metrics into the fixed taxonomy.
// When several source metrics match one category, the highest-quality series
// wins; ties resolve to the first in sorted-name encounter order. Categories
// with no qualifying match are absent from the result and left for the
// estimator.
func MatchCategories(reconciled map[string]models.YearlySeries) map[models.Category]models.CriticalMetric {
	names := make([]string, 0, len(reconciled))
	for name := range reconciled {
		names = append(names, name)
	}
	sort.Strings(names)

	matched := make(map[models.Category]models.CriticalMetric)
	for _, spec := range Specs {
		var best *models.CriticalMetric
		for _, name := range names {
			series := reconciled[name]
			if !nameMatches(name, spec.MatchPatterns) || !IsMeaningful(series) {
				continue
			}
			quality := AssessQuality(series)
			if best != nil && quality.Rank() <= best.DataQuality.Rank() {
				continue
			}
			best = &models.CriticalMetric{
				Category:        spec.Category,
				DisplayName:     spec.DisplayName,
				YearlyValues:    series.Clone(),
				ImportanceScore: spec.Importance,
				SourceNote:      name,
				DataQuality:     quality,
			}
		}
		if best != nil {
			matched[spec.Category] = *best
		}
	}
	return matched
}

func nameMatches(name string, patterns []string) bool {
	lower := strings.ToLower(name)
	for _, p := range patterns {
		if strings.Contains(lower, p) {
			return true
		}
	}
	return false
}
