package narrative

import (
	"fmt"
	"strings"

	"financial_trends/pkg/core/utils"
	"financial_trends/pkg/models"
)

// RenderMarkdown composes the full analysis report as Markdown: overall
// summary, trend table, and executive summary sections.
func RenderMarkdown(report *models.AnalysisReport) string {
	var sb strings.Builder

	sb.WriteString("# Financial Trend Analysis\n\n")
	sb.WriteString(report.OverallSummary)
	sb.WriteString("\n\n")

	sb.WriteString("## Trends\n\n")
	sb.WriteString("| Metric | Growth (CAGR %) | Direction | Data Quality |\n")
	sb.WriteString("|--------|-----------------|-----------|--------------|\n")
	for _, t := range report.Result.FinancialTrends {
		growth := "n/a"
		if t.GrowthRate != nil {
			growth = fmt.Sprintf("%.2f", *t.GrowthRate)
		}
		sb.WriteString(fmt.Sprintf("| %s | %s | %s | %s |\n", t.Metric, growth, t.Direction, t.DataQuality))
	}
	sb.WriteString("\n")

	for _, t := range report.Result.FinancialTrends {
		sb.WriteString(fmt.Sprintf("### %s\n\n%s\n\n%s\n\n", t.Metric, t.Interpretation, t.Indication))
	}

	sb.WriteString("## Executive Summary\n\n")
	sb.WriteString(report.Executive.OverallAssessment)
	sb.WriteString("\n\n")
	writeList(&sb, "Key Strengths", report.Executive.KeyStrengths)
	writeList(&sb, "Major Concerns", report.Executive.MajorConcerns)
	writeList(&sb, "Strategic Recommendations", report.Executive.StrategicRecommendations)
	sb.WriteString(fmt.Sprintf("**Outlook:** %s\n", report.Executive.Outlook))

	return sb.String()
}

// RenderHTML renders the report Markdown to HTML for transport layers that
// serve rich content.
func RenderHTML(report *models.AnalysisReport) (string, error) {
	return utils.RenderHTML(RenderMarkdown(report))
}

func writeList(sb *strings.Builder, title string, items []string) {
	if len(items) == 0 {
		return
	}
	sb.WriteString(fmt.Sprintf("**%s**\n\n", title))
	for _, item := range items {
		sb.WriteString("- ")
		sb.WriteString(item)
		sb.WriteString("\n")
	}
	sb.WriteString("\n")
}
