// Package models defines the shared data model for the financial trend
// analysis engine: extracted line items, multi-year value series, the fixed
// taxonomy of critical metrics, and the trend/analysis records returned to
// the calling layer.
package models

import (
	"encoding/json"
	"regexp"
	"sort"
)

// =============================================================================
// EXTRACTED INPUT
// =============================================================================

// LineItem is a single row extracted from a financial statement document.
// It is produced by the extraction collaborator and immutable once received.
//
// Besides the canonical current/previous year pair, extraction output often
// carries additional explicit year columns ("2021": 4500.0). Those land in
// ExtraYears keyed by the 4-digit year string.
type LineItem struct {
	Particulars  string             `json:"particulars"`
	CurrentYear  *float64           `json:"current_year"`
	PreviousYear *float64           `json:"previous_year"`
	ExtraYears   map[string]float64 `json:"-"`
}

var yearKeyPattern = regexp.MustCompile(`^(19|20)\d{2}$`)

// UnmarshalJSON captures the fixed fields plus any 4-digit-year keys the
// extractor emitted alongside them.
func (li *LineItem) UnmarshalJSON(data []byte) error {
	type fixed struct {
		Particulars  string   `json:"particulars"`
		CurrentYear  *float64 `json:"current_year"`
		PreviousYear *float64 `json:"previous_year"`
	}
	var f fixed
	if err := json.Unmarshal(data, &f); err != nil {
		return err
	}
	li.Particulars = f.Particulars
	li.CurrentYear = f.CurrentYear
	li.PreviousYear = f.PreviousYear

	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	for key, val := range raw {
		if !yearKeyPattern.MatchString(key) {
			continue
		}
		var num float64
		if err := json.Unmarshal(val, &num); err != nil {
			continue // non-numeric year column, skip
		}
		if li.ExtraYears == nil {
			li.ExtraYears = make(map[string]float64)
		}
		li.ExtraYears[key] = num
	}
	return nil
}

// IsYearKey reports whether key looks like a 4-digit calendar year.
func IsYearKey(key string) bool {
	return yearKeyPattern.MatchString(key)
}

// =============================================================================
// YEARLY SERIES
// =============================================================================

// YearlySeries maps a 4-digit year string to a numeric value for one metric.
// Insertion order is irrelevant; consumers sort keys before use.
type YearlySeries map[string]float64

// SortedYears returns the series' year keys in ascending order.
func (s YearlySeries) SortedYears() []string {
	years := make([]string, 0, len(s))
	for y := range s {
		years = append(years, y)
	}
	sort.Strings(years)
	return years
}

// Clone returns an independent copy of the series.
func (s YearlySeries) Clone() YearlySeries {
	out := make(YearlySeries, len(s))
	for y, v := range s {
		out[y] = v
	}
	return out
}

// FirstLast returns the earliest and latest values in year order.
// ok is false for series with fewer than 2 years.
func (s YearlySeries) FirstLast() (first, last float64, ok bool) {
	years := s.SortedYears()
	if len(years) < 2 {
		return 0, 0, false
	}
	return s[years[0]], s[years[len(years)-1]], true
}

// =============================================================================
// PER-FILE RESULT
// =============================================================================

// FileResult is the outcome of one successfully processed upload.
// Failed uploads produce no FileResult at all.
type FileResult struct {
	Filename       string                  `json:"filename"`
	Year           string                  `json:"year"`
	CompanyName    string                  `json:"company_name,omitempty"`
	TickerSymbol   string                  `json:"ticker_symbol,omitempty"`
	ItemsExtracted int                     `json:"items_extracted"`
	YearlyData     map[string]YearlySeries `json:"yearly_data"`
}

// FileSummary is the per-file metadata echoed back to the calling layer.
type FileSummary struct {
	Filename       string `json:"filename"`
	Year           string `json:"year"`
	CompanyName    string `json:"company_name,omitempty"`
	ItemsExtracted int    `json:"items_extracted"`
	YearsFound     int    `json:"years_found"`
}

// =============================================================================
// DATA QUALITY
// =============================================================================

// DataQuality is the confidence label attached to every reported series.
type DataQuality string

const (
	QualityExcellent DataQuality = "excellent"
	QualityGood      DataQuality = "good"
	QualityFair      DataQuality = "fair"
	QualityPoor      DataQuality = "poor"
	QualityEstimated DataQuality = "estimated"
)

// Rank orders qualities from weakest (0) to strongest. Estimated ranks below
// every real-data grade because it never reflects extracted values.
func (q DataQuality) Rank() int {
	switch q {
	case QualityExcellent:
		return 4
	case QualityGood:
		return 3
	case QualityFair:
		return 2
	case QualityPoor:
		return 1
	default: // estimated or unknown
		return 0
	}
}

// =============================================================================
// CRITICAL METRIC TAXONOMY
// =============================================================================

// Category identifies one of the 10 fixed critical-metric categories the
// engine always reports on.
type Category string

const (
	CategoryTotalAssets        Category = "total_assets"
	CategoryTotalLiabilities   Category = "total_liabilities"
	CategoryTotalRevenue       Category = "total_revenue"
	CategoryNetProfit          Category = "net_profit"
	CategoryShareholdersEquity Category = "shareholders_equity"
	CategoryCashEquivalents    Category = "cash_equivalents"
	CategoryTotalInvestments   Category = "total_investments"
	CategoryLoansPortfolio     Category = "loans_portfolio"
	CategoryReservesSurplus    Category = "reserves_surplus"
	CategoryCurrentRatio       Category = "current_ratio"
)

// AllCategories lists the taxonomy in reporting order.
// The engine's hard invariant is exactly one CriticalMetric per entry.
var AllCategories = []Category{
	CategoryTotalAssets,
	CategoryTotalLiabilities,
	CategoryTotalRevenue,
	CategoryNetProfit,
	CategoryShareholdersEquity,
	CategoryCashEquivalents,
	CategoryTotalInvestments,
	CategoryLoansPortfolio,
	CategoryReservesSurplus,
	CategoryCurrentRatio,
}

// CriticalMetric is one canonical metric after matching and gap-filling.
// Exactly 10 exist after the matching+estimation phase.
type CriticalMetric struct {
	Category        Category     `json:"category"`
	DisplayName     string       `json:"display_name"`
	YearlyValues    YearlySeries `json:"yearly_values"`
	ImportanceScore int          `json:"importance_score"`
	SourceNote      string       `json:"source_note"` // original metric name, or estimation note
	DataQuality     DataQuality  `json:"data_quality"`
}

// =============================================================================
// TREND RECORDS
// =============================================================================

// TrendDirection classifies the shape of a metric's multi-year movement.
type TrendDirection string

const (
	DirectionStronglyIncreasing TrendDirection = "strongly increasing"
	DirectionIncreasing         TrendDirection = "increasing"
	DirectionStable             TrendDirection = "stable"
	DirectionDecreasing         TrendDirection = "decreasing"
	DirectionStronglyDecreasing TrendDirection = "strongly decreasing"
	DirectionVolatile           TrendDirection = "volatile"
)

// Trend is the analyzed record for one critical metric.
// GrowthRate is nil when either endpoint value is non-positive, in which
// case Direction is always volatile.
type Trend struct {
	Metric          string         `json:"metric"`
	Category        Category       `json:"category"`
	YearlyValues    YearlySeries   `json:"yearly_values"`
	GrowthRate      *float64       `json:"growth_rate"`
	Direction       TrendDirection `json:"trend_direction"`
	Interpretation  string         `json:"interpretation"`
	Indication      string         `json:"indication"`
	ImportanceScore int            `json:"importance_score"`
	DataQuality     DataQuality    `json:"data_quality"`
}

// AnalysisSource tags which path produced the trend set.
type AnalysisSource string

const (
	SourceLLM    AnalysisSource = "llm_analysis"
	SourceManual AnalysisSource = "enhanced_manual_analysis"
)

// AnalysisResult is the core analysis output: up to 10 trends sorted by
// importance descending, plus the source tag.
type AnalysisResult struct {
	FinancialTrends []Trend        `json:"financial_trends"`
	Success         bool           `json:"success"`
	Source          AnalysisSource `json:"source"`
}

// ExecutiveSummary is the fixed-shape structured summary.
type ExecutiveSummary struct {
	OverallAssessment        string   `json:"overall_assessment"`
	KeyStrengths             []string `json:"key_strengths"`
	MajorConcerns            []string `json:"major_concerns"`
	StrategicRecommendations []string `json:"strategic_recommendations"`
	Outlook                  string   `json:"outlook"`
}

// AnalysisReport is the complete contract returned to the calling layer.
type AnalysisReport struct {
	Result             AnalysisResult   `json:"result"`
	OverallSummary     string           `json:"overall_summary"`
	Executive          ExecutiveSummary `json:"executive_summary"`
	FileSummaries      []FileSummary    `json:"file_summaries"`
	DataQualitySummary map[string]int   `json:"data_quality_summary"`
	Warnings           []string         `json:"warnings,omitempty"`
}
