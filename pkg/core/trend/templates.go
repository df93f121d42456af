package trend

import (
	"fmt"

	"financial_trends/pkg/models"
)

// GenericIndicationSentinel is the reserved phrase a language-model
// narration must never contain. Its presence marks an indication as
// needing deterministic regeneration.
const GenericIndicationSentinel = "important insights"

// DirectionBucket collapses the six trend directions into the three
// narrative buckets the indication table is keyed by.
type DirectionBucket string

const (
	BucketIncreasing DirectionBucket = "increasing"
	BucketDecreasing DirectionBucket = "decreasing"
	BucketSteady     DirectionBucket = "steady"
)

// BucketFor maps a trend direction to its narrative bucket. Stable and
// volatile share one bucket: neither supports a directional story.
func BucketFor(direction models.TrendDirection) DirectionBucket {
	switch direction {
	case models.DirectionStronglyIncreasing, models.DirectionIncreasing:
		return BucketIncreasing
	case models.DirectionStronglyDecreasing, models.DirectionDecreasing:
		return BucketDecreasing
	default:
		return BucketSteady
	}
}

// indicationTable is the fixed 10x3 matrix of hand-authored indication
// narratives, keyed by category and direction bucket. Keeping it as one
// immutable table keeps the matrix auditable in isolation from the numeric
// pipeline.
var indicationTable = map[models.Category]map[DirectionBucket]string{
	models.CategoryTotalAssets: {
		BucketIncreasing: "The asset base is expanding, indicating active business growth and capacity building. Sustained asset growth typically supports higher future earnings if the new assets are deployed productively.",
		BucketDecreasing: "The asset base is shrinking, which may reflect divestments, write-downs, or balance sheet contraction. Management's rationale for the reduction deserves scrutiny, as a shrinking base can constrain future revenue.",
		BucketSteady:     "Total assets are holding steady without meaningful expansion or contraction. This suggests a consolidation phase; watch whether returns on the existing base are improving.",
	},
	models.CategoryTotalLiabilities: {
		BucketIncreasing: "Liabilities are rising, which increases leverage and fixed obligations. This is acceptable while asset and revenue growth keep pace, but it raises sensitivity to interest-rate and refinancing risk.",
		BucketDecreasing: "Liabilities are being paid down, strengthening the balance sheet and reducing financing risk. Lower leverage also frees future borrowing capacity for growth opportunities.",
		BucketSteady:     "The liability position is stable, indicating disciplined balance sheet management. The company is neither deleveraging nor adding meaningful new obligations.",
	},
	models.CategoryTotalRevenue: {
		BucketIncreasing: "Top-line growth signals healthy demand and effective market execution. If margins hold, this growth should flow through to profits and reinforce the company's competitive position.",
		BucketDecreasing: "Revenue is contracting, pointing to demand weakness, competitive pressure, or lost business lines. Persistent top-line decline is the most direct threat to long-term viability and warrants close attention.",
		BucketSteady:     "Revenue is flat, suggesting a mature or saturated market position. Growth initiatives or pricing actions would be needed to re-accelerate the top line.",
	},
	models.CategoryNetProfit: {
		BucketIncreasing: "Profitability is improving, reflecting operating leverage, cost discipline, or favorable pricing. Rising net profit builds retained earnings and funds future investment without external financing.",
		BucketDecreasing: "Net profit is deteriorating even as the company operates, squeezing internal funding capacity. Margin compression or cost inflation should be identified and addressed before it compounds.",
		BucketSteady:     "Net profit is stable, indicating consistent but unimproving earnings power. The company is defending its margins without finding new profit drivers.",
	},
	models.CategoryShareholdersEquity: {
		BucketIncreasing: "Shareholders' equity is building, driven by retained profits or fresh capital. A growing equity cushion improves solvency and supports a higher sustainable growth rate.",
		BucketDecreasing: "Equity is eroding, whether through losses, distributions exceeding earnings, or write-offs. A thinning equity base weakens loss-absorption capacity and can pressure credit standing.",
		BucketSteady:     "The equity base is stable, with earnings and distributions roughly in balance. Solvency is unchanged, though the company is not compounding its capital.",
	},
	models.CategoryCashEquivalents: {
		BucketIncreasing: "Cash reserves are growing, improving liquidity and resilience against shocks. Excess cash also creates optionality for investment, debt reduction, or shareholder returns.",
		BucketDecreasing: "Cash is being consumed, which tightens liquidity headroom. Whether this reflects deliberate investment or operating cash burn is the key question for solvency monitoring.",
		BucketSteady:     "Cash holdings are steady, indicating balanced cash generation and deployment. Liquidity risk is unchanged at current levels.",
	},
	models.CategoryTotalInvestments: {
		BucketIncreasing: "The investment portfolio is expanding, diversifying income sources beyond core operations. Portfolio quality and yield should be tracked to confirm the capital is working effectively.",
		BucketDecreasing: "Investments are being liquidated, possibly to fund operations or redeploy capital. A sustained drawdown reduces future non-operating income.",
		BucketSteady:     "The investment book is stable, contributing a steady stream of non-operating income. No material reallocation of capital is visible.",
	},
	models.CategoryLoansPortfolio: {
		BucketIncreasing: "The loan book is growing, which drives interest income if underwriting quality holds. Rapid credit growth warrants monitoring of delinquency and provisioning trends.",
		BucketDecreasing: "The loan portfolio is contracting, reducing interest-earning assets. This may reflect tighter credit standards or weakening demand for credit.",
		BucketSteady:     "Loan balances are stable, suggesting a steady-state lending operation. Income from the book should remain predictable absent credit-quality shifts.",
	},
	models.CategoryReservesSurplus: {
		BucketIncreasing: "Reserves and surplus are accumulating, evidence of retained profitability and prudent distribution policy. This strengthens the buffer available for expansion or adverse periods.",
		BucketDecreasing: "Reserves are being drawn down, which weakens internal buffers. Repeated drawdowns signal that earnings are not covering distributions or losses.",
		BucketSteady:     "Reserves and surplus are flat, with accumulation matching utilization. The internal buffer is preserved but not growing.",
	},
	models.CategoryCurrentRatio: {
		BucketIncreasing: "Short-term liquidity coverage is improving, giving the company more headroom to meet obligations as they fall due. Very high ratios, though, can indicate idle working capital.",
		BucketDecreasing: "The current ratio is declining, tightening the margin between short-term assets and obligations. If the slide continues below 1.0, near-term payment capacity becomes a genuine risk.",
		BucketSteady:     "Working capital coverage is stable, indicating consistent short-term financial management. No change in near-term payment risk is evident.",
	},
}

// IndicationFor returns the hand-authored indication for the category and
// direction, or a generic echo of the metric and direction when the
// combination is unknown. The generic text never contains the sentinel
// phrase.
func IndicationFor(category models.Category, displayName string, direction models.TrendDirection) string {
	if byBucket, ok := indicationTable[category]; ok {
		if text, ok := byBucket[BucketFor(direction)]; ok {
			return text
		}
	}
	return fmt.Sprintf("%s shows a %s pattern over the reported period. Review the underlying statement items to judge whether this movement is structural or incidental.",
		displayName, direction)
}
