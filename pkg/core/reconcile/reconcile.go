// Package reconcile merges per-file extraction results into one unified
// multi-year series per metric name.
//
// The merge is deterministic regardless of worker completion order: files
// are processed in sorted-filename order and, for a colliding
// (metric, year) pair, the value from the higher-quality source series
// wins. Genuine value conflicts are reported as warnings instead of being
// silently overwritten.
package reconcile

import (
	"fmt"
	"sort"

	"financial_trends/pkg/core/metrics"
	"financial_trends/pkg/models"
)

// mergedCell tracks the current winner for one (metric, year) pair.
type mergedCell struct {
	value       float64
	qualityRank int
	source      string
}

// Merge unions the yearly data of all file results. Metric names are merged
// by exact string equality; no fuzzy matching happens at this stage.
func Merge(results []models.FileResult) (map[string]models.YearlySeries, []string) {
	ordered := make([]models.FileResult, len(results))
	copy(ordered, results)
	sort.Slice(ordered, func(i, j int) bool {
		return ordered[i].Filename < ordered[j].Filename
	})

	cells := make(map[string]map[string]mergedCell) // metric -> year -> cell
	var warnings []string

	for _, file := range ordered {
		for metric, series := range file.YearlyData {
			rank := metrics.AssessQuality(series).Rank()
			if cells[metric] == nil {
				cells[metric] = make(map[string]mergedCell)
			}
			for year, value := range series {
				existing, present := cells[metric][year]
				if !present {
					cells[metric][year] = mergedCell{value: value, qualityRank: rank, source: file.Filename}
					continue
				}
				if existing.value == value {
					// Identical re-report; merging is a no-op.
					continue
				}
				warnings = append(warnings, fmt.Sprintf(
					"conflicting values for %q in %s: %v (%s) vs %v (%s)",
					metric, year, existing.value, existing.source, value, file.Filename))
				if rank > existing.qualityRank {
					cells[metric][year] = mergedCell{value: value, qualityRank: rank, source: file.Filename}
				}
			}
		}
	}

	merged := make(map[string]models.YearlySeries, len(cells))
	for metric, byYear := range cells {
		series := make(models.YearlySeries, len(byYear))
		for year, cell := range byYear {
			series[year] = cell.value
		}
		merged[metric] = series
	}
	return merged, warnings
}
