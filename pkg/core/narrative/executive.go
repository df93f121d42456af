package narrative

import (
	"fmt"

	"financial_trends/pkg/models"
)

// strengthTemplates describe what a positive movement in each category
// means for the business.
var strengthTemplates = map[models.Category]string{
	models.CategoryTotalAssets:        "Expanding asset base provides capacity for future growth",
	models.CategoryTotalLiabilities:   "Reducing liabilities strengthens the balance sheet and lowers financing risk",
	models.CategoryTotalRevenue:       "Strong revenue growth demonstrates healthy market demand",
	models.CategoryNetProfit:          "Improving profitability funds reinvestment without external capital",
	models.CategoryShareholdersEquity: "Growing equity cushion improves solvency and sustainable growth capacity",
	models.CategoryCashEquivalents:    "Building cash reserves provide liquidity resilience and strategic optionality",
	models.CategoryTotalInvestments:   "Expanding investment portfolio diversifies income beyond core operations",
	models.CategoryLoansPortfolio:     "Growing loan book drives interest income",
	models.CategoryReservesSurplus:    "Accumulating reserves evidence retained profitability and prudent distribution",
	models.CategoryCurrentRatio:       "Improving working capital coverage reduces near-term payment risk",
}

// concernTemplates describe what a negative movement in each category
// signals.
var concernTemplates = map[models.Category]string{
	models.CategoryTotalAssets:        "Shrinking asset base may constrain future revenue generation",
	models.CategoryTotalLiabilities:   "Rising liabilities increase leverage and refinancing exposure",
	models.CategoryTotalRevenue:       "Contracting revenue is the most direct threat to long-term viability",
	models.CategoryNetProfit:          "Deteriorating profitability squeezes internal funding capacity",
	models.CategoryShareholdersEquity: "Eroding equity weakens loss-absorption capacity",
	models.CategoryCashEquivalents:    "Declining cash reserves tighten liquidity headroom",
	models.CategoryTotalInvestments:   "Liquidating investments reduces future non-operating income",
	models.CategoryLoansPortfolio:     "Contracting loan portfolio reduces interest-earning assets",
	models.CategoryReservesSurplus:    "Drawdown of reserves signals earnings not covering distributions or losses",
	models.CategoryCurrentRatio:       "Weakening current ratio raises short-term payment risk",
}

// recommendationTemplates map concern categories to strategic actions.
var recommendationTemplates = map[models.Category]string{
	models.CategoryTotalAssets:        "Review capital allocation to rebuild productive asset capacity",
	models.CategoryTotalLiabilities:   "Develop a deleveraging plan and refinance maturing obligations early",
	models.CategoryTotalRevenue:       "Prioritize revenue recovery through pricing, product, or market expansion initiatives",
	models.CategoryNetProfit:          "Undertake a cost and margin review to restore profitability",
	models.CategoryShareholdersEquity: "Rebuild the equity base by retaining earnings and moderating distributions",
	models.CategoryCashEquivalents:    "Tighten cash management and establish contingency liquidity lines",
	models.CategoryTotalInvestments:   "Reassess portfolio strategy before further divestment",
	models.CategoryLoansPortfolio:     "Revisit credit origination strategy and monitor portfolio quality",
	models.CategoryReservesSurplus:    "Align distribution policy with actual earnings to preserve reserves",
	models.CategoryCurrentRatio:       "Restructure working capital to restore short-term coverage",
}

// BuildExecutiveSummary produces the fixed-shape structured summary keyed
// to which named metrics land in the strength and concern buckets.
func BuildExecutiveSummary(result models.AnalysisResult) models.ExecutiveSummary {
	trends := result.FinancialTrends
	if len(trends) == 0 {
		return models.ExecutiveSummary{
			OverallAssessment:        "Insufficient data to assess the company's financial position.",
			KeyStrengths:             []string{},
			MajorConcerns:            []string{},
			StrategicRecommendations: []string{},
			Outlook:                  "No outlook can be formed without usable financial data.",
		}
	}

	b := Categorize(trends)

	summary := models.ExecutiveSummary{
		OverallAssessment:        assessment(b),
		KeyStrengths:             []string{},
		MajorConcerns:            []string{},
		StrategicRecommendations: []string{},
		Outlook:                  outlook(b),
	}

	for _, t := range b.StrongPositive {
		summary.KeyStrengths = append(summary.KeyStrengths, templateOr(strengthTemplates, t, "%s shows favorable momentum"))
	}
	negatives := append(append([]models.Trend{}, b.Critical...), b.Concerns...)
	seen := make(map[models.Category]bool)
	for _, t := range negatives {
		if seen[t.Category] {
			continue
		}
		seen[t.Category] = true
		summary.MajorConcerns = append(summary.MajorConcerns, templateOr(concernTemplates, t, "%s is moving unfavorably"))
		if rec, ok := recommendationTemplates[t.Category]; ok {
			summary.StrategicRecommendations = append(summary.StrategicRecommendations, rec)
		}
	}

	if len(summary.StrategicRecommendations) == 0 {
		summary.StrategicRecommendations = append(summary.StrategicRecommendations,
			"Maintain current financial discipline while pursuing growth opportunities")
	}
	return summary
}

func templateOr(table map[models.Category]string, t models.Trend, fallback string) string {
	if text, ok := table[t.Category]; ok {
		return text
	}
	return fmt.Sprintf(fallback, t.Metric)
}

func assessment(b Buckets) string {
	switch {
	case len(b.Critical) > 0:
		return "Critical weaknesses in high-importance metrics dominate the financial picture; corrective action is urgent."
	case len(b.StrongPositive) > len(b.Concerns):
		return "The financial profile is fundamentally healthy, with growth outweighing the identified concerns."
	case len(b.Concerns) > len(b.StrongPositive):
		return "The financial profile shows more deterioration than progress; remedial focus is warranted."
	default:
		return "The financial profile is balanced, with stability outweighing both growth and deterioration."
	}
}

func outlook(b Buckets) string {
	switch {
	case len(b.Critical) > 0:
		return "Challenging: without intervention, the critical declines are likely to compound."
	case len(b.StrongPositive) > len(b.Concerns):
		return "Positive: current momentum supports continued improvement over the medium term."
	case len(b.Concerns) > len(b.StrongPositive):
		return "Cautious: the negative trends need to be arrested before the outlook can improve."
	default:
		return "Neutral: the company is positioned to hold its current trajectory."
	}
}
