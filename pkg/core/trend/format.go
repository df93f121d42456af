package trend

import (
	"fmt"
	"math"

	"financial_trends/pkg/models"
)

// FormatValue renders a metric value for narrative text. Currency metrics
// get thousand/million/billion suffixing; the Current Ratio is a plain
// 2-decimal ratio and is never currency-suffixed.
func FormatValue(category models.Category, value float64) string {
	if category == models.CategoryCurrentRatio {
		return fmt.Sprintf("%.2f", value)
	}

	abs := math.Abs(value)
	switch {
	case abs >= 1e9:
		return fmt.Sprintf("%.2f billion", value/1e9)
	case abs >= 1e6:
		return fmt.Sprintf("%.2f million", value/1e6)
	case abs >= 1e3:
		return fmt.Sprintf("%.2f thousand", value/1e3)
	default:
		return fmt.Sprintf("%.2f", value)
	}
}
