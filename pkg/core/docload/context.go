package docload

import (
	"strings"
)

// MaxContextChars is the hard cap on extraction context size. Anything past
// it would blow the extraction model's token budget without adding signal.
const MaxContextChars = 50000

// financialKeywords mark lines that most likely carry statement line items.
// Keyword lines are packed into the context first so truncation drops
// boilerplate (directors' reports, notes prose) before numbers.
var financialKeywords = []string{
	"total", "assets", "liabilities", "revenue", "income", "profit", "loss",
	"equity", "capital", "cash", "investment", "loan", "advance", "deposit",
	"reserve", "surplus", "expense", "interest", "dividend", "ratio",
	"balance sheet", "statement",
}

func isFinancialLine(line string) bool {
	lower := strings.ToLower(line)
	for _, kw := range financialKeywords {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	return false
}

// PrepareContext flattens loaded documents into a single extraction context,
// prioritizing financial-keyword lines and hard-capping the result at
// MaxContextChars.
func PrepareContext(docs []Document) string {
	var priority, rest []string
	for _, doc := range docs {
		for _, line := range strings.Split(doc.PageContent, "\n") {
			trimmed := strings.TrimSpace(line)
			if trimmed == "" {
				continue
			}
			if isFinancialLine(trimmed) {
				priority = append(priority, trimmed)
			} else {
				rest = append(rest, trimmed)
			}
		}
	}

	var sb strings.Builder
	appendLine := func(line string) bool {
		if sb.Len()+len(line)+1 > MaxContextChars {
			return false
		}
		sb.WriteString(line)
		sb.WriteString("\n")
		return true
	}

	for _, line := range priority {
		if !appendLine(line) {
			return sb.String()
		}
	}
	for _, line := range rest {
		if !appendLine(line) {
			break
		}
	}
	return sb.String()
}
