package metrics

import (
	"math"

	"financial_trends/pkg/models"
)

// ConsistencyRatioLimit is the maximum allowed ratio between consecutive
// values. Jumps beyond it almost always mean an extraction defect such as a
// misplaced decimal or a unit mismatch between statements.
const ConsistencyRatioLimit = 1000.0

// AssessQuality grades a value series by year coverage and internal
// consistency:
//
//	excellent  >= 4 years
//	good       3 years
//	fair       2 years
//	poor       < 2 years, or any consecutive pair whose magnitudes differ
//	           by more than ConsistencyRatioLimit
func AssessQuality(series models.YearlySeries) models.DataQuality {
	years := series.SortedYears()
	if len(years) < 2 {
		return models.QualityPoor
	}

	for i := 1; i < len(years); i++ {
		a := math.Abs(series[years[i-1]])
		b := math.Abs(series[years[i]])
		hi, lo := a, b
		if lo > hi {
			hi, lo = lo, hi
		}
		if lo == 0 {
			if hi != 0 {
				return models.QualityPoor
			}
			continue
		}
		if hi/lo > ConsistencyRatioLimit {
			return models.QualityPoor
		}
	}

	switch {
	case len(years) >= 4:
		return models.QualityExcellent
	case len(years) == 3:
		return models.QualityGood
	default:
		return models.QualityFair
	}
}
