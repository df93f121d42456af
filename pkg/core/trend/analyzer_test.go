package trend

import (
	"math"
	"strings"
	"testing"

	"financial_trends/pkg/models"
)

// =============================================================================
// HELPERS
// =============================================================================

func makeMetric(category models.Category, name string, values map[string]float64) models.CriticalMetric {
	series := make(models.YearlySeries, len(values))
	for y, v := range values {
		series[y] = v
	}
	return models.CriticalMetric{
		Category:        category,
		DisplayName:     name,
		YearlyValues:    series,
		ImportanceScore: 90,
		DataQuality:     models.QualityGood,
	}
}

// =============================================================================
// CAGR
// =============================================================================

func TestCAGRKnownValue(t *testing.T) {
	// (1.77156)^(1/3) - 1 ~= 0.21
	rate, ok := CAGR(100, 177.156, 3)
	if !ok {
		t.Fatal("expected CAGR to be defined for positive endpoints")
	}
	if math.Abs(rate-21.0) > 0.05 {
		t.Errorf("CAGR = %.4f, want ~21.0", rate)
	}
}

func TestCAGRUndefinedForNonPositiveEndpoints(t *testing.T) {
	cases := []struct {
		name        string
		first, last float64
	}{
		{"negative first", -50, 10},
		{"negative last", 50, -10},
		{"both negative", -50, -10},
		{"zero first", 0, 100},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, ok := CAGR(tc.first, tc.last, 2); ok {
				t.Errorf("CAGR(%v, %v) should be undefined", tc.first, tc.last)
			}
		})
	}
}

func TestCAGRRounding(t *testing.T) {
	rate, ok := CAGR(100, 150, 2)
	if !ok {
		t.Fatal("expected defined CAGR")
	}
	// sqrt(1.5)-1 = 0.224744..., rounded to 22.47
	if rate != 22.47 {
		t.Errorf("CAGR = %v, want 22.47", rate)
	}
}

// =============================================================================
// DIRECTION CLASSIFICATION
// =============================================================================

func TestClassifyBoundaries(t *testing.T) {
	cases := []struct {
		cagr float64
		want models.TrendDirection
	}{
		{25.0, models.DirectionStronglyIncreasing},
		{20.01, models.DirectionStronglyIncreasing},
		{20.0, models.DirectionIncreasing}, // boundary is strictly > 20
		{8.0, models.DirectionIncreasing},  // exactly 8 is already increasing
		{7.99, models.DirectionStable},
		{0.0, models.DirectionStable},
		{-7.99, models.DirectionStable},
		{-8.0, models.DirectionDecreasing},
		{-20.0, models.DirectionDecreasing},
		{-20.01, models.DirectionStronglyDecreasing},
	}
	for _, tc := range cases {
		rate := tc.cagr
		if got := Classify(&rate); got != tc.want {
			t.Errorf("Classify(%v) = %s, want %s", tc.cagr, got, tc.want)
		}
	}
}

func TestClassifyNilForcesVolatile(t *testing.T) {
	if got := Classify(nil); got != models.DirectionVolatile {
		t.Errorf("Classify(nil) = %s, want volatile", got)
	}
}

// =============================================================================
// FULL ANALYSIS
// =============================================================================

func TestAnalyzeRevenueScenario(t *testing.T) {
	metric := makeMetric(models.CategoryTotalRevenue, "Total Revenue",
		map[string]float64{"2021": 100, "2022": 120, "2023": 150})

	tr := Analyze(metric)
	if tr.GrowthRate == nil {
		t.Fatal("expected defined growth rate")
	}
	if *tr.GrowthRate != 22.47 {
		t.Errorf("growth rate = %v, want 22.47", *tr.GrowthRate)
	}
	if tr.Direction != models.DirectionStronglyIncreasing {
		t.Errorf("direction = %s, want strongly increasing", tr.Direction)
	}
	if !strings.Contains(tr.Interpretation, "22.47%") {
		t.Errorf("interpretation should state the CAGR, got: %s", tr.Interpretation)
	}
	if tr.Indication == "" {
		t.Error("indication must not be empty")
	}
}

func TestAnalyzeNegativeEndpointsVolatile(t *testing.T) {
	metric := makeMetric(models.CategoryNetProfit, "Net Profit",
		map[string]float64{"2021": -50, "2022": -30, "2023": -10})

	tr := Analyze(metric)
	if tr.GrowthRate != nil {
		t.Errorf("growth rate should be nil for negative endpoints, got %v", *tr.GrowthRate)
	}
	if tr.Direction != models.DirectionVolatile {
		t.Errorf("direction = %s, want volatile", tr.Direction)
	}
	if !strings.Contains(tr.Interpretation, "undefined") {
		t.Errorf("interpretation should mention undefined growth, got: %s", tr.Interpretation)
	}
}

func TestAnalyzeAllSortsByImportance(t *testing.T) {
	metrics := []models.CriticalMetric{
		{Category: models.CategoryCurrentRatio, DisplayName: "Current Ratio", ImportanceScore: 60,
			YearlyValues: models.YearlySeries{"2021": 1.2, "2022": 1.3}},
		{Category: models.CategoryTotalRevenue, DisplayName: "Total Revenue", ImportanceScore: 100,
			YearlyValues: models.YearlySeries{"2021": 100, "2022": 120}},
	}

	result := AnalyzeAll(metrics)
	if result.Source != models.SourceManual {
		t.Errorf("source = %s, want %s", result.Source, models.SourceManual)
	}
	if len(result.FinancialTrends) != 2 {
		t.Fatalf("expected 2 trends, got %d", len(result.FinancialTrends))
	}
	if result.FinancialTrends[0].Metric != "Total Revenue" {
		t.Errorf("trends should be importance-sorted, first = %s", result.FinancialTrends[0].Metric)
	}
}

// =============================================================================
// VALUE FORMATTING
// =============================================================================

func TestFormatValue(t *testing.T) {
	cases := []struct {
		category models.Category
		value    float64
		want     string
	}{
		{models.CategoryTotalRevenue, 2500, "2.50 thousand"},
		{models.CategoryTotalAssets, 3500000, "3.50 million"},
		{models.CategoryTotalAssets, 1200000000, "1.20 billion"},
		{models.CategoryNetProfit, 42, "42.00"},
		{models.CategoryCurrentRatio, 1.456, "1.46"}, // never currency-suffixed
		{models.CategoryCurrentRatio, 1200, "1200.00"},
	}
	for _, tc := range cases {
		if got := FormatValue(tc.category, tc.value); got != tc.want {
			t.Errorf("FormatValue(%s, %v) = %q, want %q", tc.category, tc.value, got, tc.want)
		}
	}
}

// =============================================================================
// INDICATION TEMPLATES
// =============================================================================

func TestIndicationTableComplete(t *testing.T) {
	buckets := []DirectionBucket{BucketIncreasing, BucketDecreasing, BucketSteady}
	for _, category := range models.AllCategories {
		byBucket, ok := indicationTable[category]
		if !ok {
			t.Errorf("category %s missing from indication table", category)
			continue
		}
		for _, bucket := range buckets {
			text, ok := byBucket[bucket]
			if !ok || text == "" {
				t.Errorf("missing indication for (%s, %s)", category, bucket)
				continue
			}
			if strings.Contains(strings.ToLower(text), GenericIndicationSentinel) {
				t.Errorf("indication (%s, %s) contains the reserved sentinel phrase", category, bucket)
			}
		}
	}
}

func TestIndicationFallbackEchoesMetric(t *testing.T) {
	text := IndicationFor(models.Category("unknown_metric"), "Custom Metric", models.DirectionIncreasing)
	if !strings.Contains(text, "Custom Metric") {
		t.Errorf("fallback should echo the metric name, got: %s", text)
	}
	if strings.Contains(strings.ToLower(text), GenericIndicationSentinel) {
		t.Error("fallback must not contain the reserved sentinel phrase")
	}
}
