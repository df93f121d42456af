package metrics

import (
	"fmt"

	"financial_trends/pkg/models"
)

// BuildCriticalMetrics runs matching then gap-filling estimation over the
// reconciled data and returns exactly one CriticalMetric per category, in
// taxonomy order. This is the hard invariant every downstream consumer
// relies on.
func BuildCriticalMetrics(reconciled map[string]models.YearlySeries) []models.CriticalMetric {
	matched := MatchCategories(reconciled)

	out := make([]models.CriticalMetric, 0, len(Specs))
	for _, spec := range Specs {
		if metric, ok := matched[spec.Category]; ok {
			out = append(out, metric)
			continue
		}
		estimated := Estimate(spec, reconciled)
		fmt.Printf("No direct match for %s; %s\n", spec.DisplayName, estimated.SourceNote)
		out = append(out, estimated)
	}
	return out
}
