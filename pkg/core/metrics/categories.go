// Package metrics maps reconciled statement line items onto the fixed
// 10-category critical-metric taxonomy, scores series quality, and fills
// unmatched categories with tiered estimates.
package metrics

import (
	"financial_trends/pkg/models"
)

// CategorySpec is the static definition of one critical-metric category.
type CategorySpec struct {
	Category    models.Category
	DisplayName string
	Importance  int // fixed 1-100 importance score

	// MatchPatterns classify extracted line-item names (lower-cased
	// substring match).
	MatchPatterns []string

	// ComponentKeywords select series that can be summed into an estimate
	// when no direct match exists. The sets deliberately overlap across
	// categories (e.g. "loan" serves both assets and liabilities); see the
	// estimation notes in DESIGN.md.
	ComponentKeywords []string

	// BaseKeywords select series whose average seeds a growth projection.
	BaseKeywords []string

	// DefaultBase seeds a projection when no related series exists at all.
	DefaultBase float64
}

// Specs holds the taxonomy in reporting order.
var Specs = []CategorySpec{
	{
		Category:          models.CategoryTotalAssets,
		DisplayName:       "Total Assets",
		Importance:        95,
		MatchPatterns:     []string{"total assets", "total asset"},
		ComponentKeywords: []string{"investment", "loan", "cash", "asset", "advance", "receivable"},
		BaseKeywords:      []string{"asset", "investment", "loan"},
		DefaultBase:       1000000,
	},
	{
		Category:          models.CategoryTotalLiabilities,
		DisplayName:       "Total Liabilities",
		Importance:        90,
		MatchPatterns:     []string{"total liabilities", "total liability"},
		ComponentKeywords: []string{"deposit", "borrowing", "liability", "payable", "loan"},
		BaseKeywords:      []string{"liabilit", "deposit", "borrowing"},
		DefaultBase:       800000,
	},
	{
		Category:          models.CategoryTotalRevenue,
		DisplayName:       "Total Revenue",
		Importance:        100,
		MatchPatterns:     []string{"total revenue", "total income", "revenue from operations", "net sales", "turnover"},
		ComponentKeywords: []string{"income", "revenue", "interest earned", "premium", "fee", "commission"},
		BaseKeywords:      []string{"revenue", "income", "sales"},
		DefaultBase:       500000,
	},
	{
		Category:          models.CategoryNetProfit,
		DisplayName:       "Net Profit",
		Importance:        98,
		MatchPatterns:     []string{"net profit", "net income", "profit after tax", "profit for the year"},
		ComponentKeywords: []string{"profit", "earnings"},
		BaseKeywords:      []string{"profit", "earnings"},
		DefaultBase:       50000,
	},
	{
		Category:          models.CategoryShareholdersEquity,
		DisplayName:       "Shareholders Equity",
		Importance:        85,
		MatchPatterns:     []string{"shareholders equity", "shareholders' equity", "shareholder's equity", "total equity", "net worth"},
		ComponentKeywords: []string{"capital", "reserve", "surplus", "equity"},
		BaseKeywords:      []string{"equity", "capital"},
		DefaultBase:       200000,
	},
	{
		Category:          models.CategoryCashEquivalents,
		DisplayName:       "Cash & Equivalents",
		Importance:        80,
		MatchPatterns:     []string{"cash and cash equivalents", "cash & cash equivalents", "cash and bank", "cash equivalents"},
		ComponentKeywords: []string{"cash", "bank balance"},
		BaseKeywords:      []string{"cash", "bank"},
		DefaultBase:       100000,
	},
	{
		Category:          models.CategoryTotalInvestments,
		DisplayName:       "Total Investments",
		Importance:        70,
		MatchPatterns:     []string{"total investments", "total investment", "investments"},
		ComponentKeywords: []string{"investment", "securities", "bond"},
		BaseKeywords:      []string{"investment", "securities"},
		DefaultBase:       300000,
	},
	{
		Category:          models.CategoryLoansPortfolio,
		DisplayName:       "Loans Portfolio",
		Importance:        75,
		MatchPatterns:     []string{"loans portfolio", "loan portfolio", "loans and advances", "loans & advances", "total loans"},
		ComponentKeywords: []string{"loan", "advance", "credit"},
		BaseKeywords:      []string{"loan", "advance"},
		DefaultBase:       600000,
	},
	{
		Category:          models.CategoryReservesSurplus,
		DisplayName:       "Reserves & Surplus",
		Importance:        65,
		MatchPatterns:     []string{"reserves and surplus", "reserves & surplus", "other reserves", "retained earnings"},
		ComponentKeywords: []string{"reserve", "surplus", "retained"},
		BaseKeywords:      []string{"reserve", "surplus"},
		DefaultBase:       150000,
	},
	{
		Category:          models.CategoryCurrentRatio,
		DisplayName:       "Current Ratio",
		Importance:        60,
		MatchPatterns:     []string{"current ratio"},
		ComponentKeywords: []string{"current asset", "current liabilit"},
		BaseKeywords:      []string{"current ratio"},
		DefaultBase:       1.2,
	},
}

// SpecFor returns the static definition for a category.
func SpecFor(category models.Category) CategorySpec {
	for _, spec := range Specs {
		if spec.Category == category {
			return spec
		}
	}
	return CategorySpec{Category: category, DisplayName: string(category), Importance: 50, DefaultBase: 100000}
}
