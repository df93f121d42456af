// Package extract turns prepared document context into structured financial
// line items using a language-model provider.
package extract

import (
	"context"
	"fmt"

	"financial_trends/pkg/core/llm"
	"financial_trends/pkg/core/utils"
	"financial_trends/pkg/models"
)

// Response is the tagged result of one extraction call. The ingestion
// pipeline checks Success before trusting any of the payload fields.
type Response struct {
	Success        bool              `json:"success"`
	CompanyName    string            `json:"company_name,omitempty"`
	TickerSymbol   string            `json:"ticker_symbol,omitempty"`
	FinancialItems []models.LineItem `json:"financial_items"`
	Error          string            `json:"error,omitempty"`
}

// Extractor is the line-item extraction collaborator boundary.
type Extractor interface {
	Extract(ctx context.Context, contextText string, credential string) (*Response, error)
}

// System prompt for the extraction analyst role.
const extractionSystemPrompt = `You are an expert Financial Analyst and Auditor (CPA).
Your task is to read text extracted from a company's annual financial statements and pull out every balance-sheet and income-statement line item with its numeric values.

You must strictly adhere to the following JSON schema for your output:
{
  "company_name": "string",
  "ticker_symbol": "string or empty",
  "financial_items": [
    {
      "particulars": "string (line item name exactly as printed)",
      "current_year": number or null,
      "previous_year": number or null
    }
  ]
}

Rules:
1. Only extract figures that are explicitly stated in the text.
2. Keep values in the units printed in the statement; do not rescale.
3. Additional explicit year columns may be added as "2021": number keys on an item.
4. If no financial data is found, return {"financial_items": []}.`

// LLMExtractor implements Extractor on top of an llm.Provider.
type LLMExtractor struct {
	provider llm.Provider
}

var _ Extractor = (*LLMExtractor)(nil)

// NewLLMExtractor creates an extractor bound to the given provider.
func NewLLMExtractor(provider llm.Provider) *LLMExtractor {
	return &LLMExtractor{provider: provider}
}

// Extract runs one extraction call and parses the structured response
// tolerantly. A provider error is returned as an error; a parseable but
// empty extraction comes back as Success=false.
func (e *LLMExtractor) Extract(ctx context.Context, contextText string, credential string) (*Response, error) {
	if e.provider == nil {
		return nil, fmt.Errorf("no LLM provider configured")
	}

	prompt := fmt.Sprintf("Extract all financial line items from the following statement text:\n\n%s", contextText)

	raw, err := e.provider.GenerateResponse(ctx, prompt, extractionSystemPrompt, llm.JSONOptions(credential))
	if err != nil {
		return nil, fmt.Errorf("extraction call failed: %w", err)
	}

	var payload struct {
		CompanyName    string            `json:"company_name"`
		TickerSymbol   string            `json:"ticker_symbol"`
		FinancialItems []models.LineItem `json:"financial_items"`
	}
	if err := utils.SmartParse(raw, &payload); err != nil {
		return &Response{Success: false, Error: fmt.Sprintf("unparseable extraction output: %v", err)}, nil
	}

	if len(payload.FinancialItems) == 0 {
		return &Response{Success: false, Error: "no financial items extracted"}, nil
	}

	return &Response{
		Success:        true,
		CompanyName:    payload.CompanyName,
		TickerSymbol:   payload.TickerSymbol,
		FinancialItems: payload.FinancialItems,
	}, nil
}
