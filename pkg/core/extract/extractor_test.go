package extract

import (
	"context"
	"fmt"
	"testing"
)

// scriptedProvider returns a fixed response and records the options of the
// last call.
type scriptedProvider struct {
	response    string
	err         error
	lastOptions map[string]interface{}
}

func (p *scriptedProvider) GenerateResponse(ctx context.Context, prompt, systemPrompt string, options map[string]interface{}) (string, error) {
	p.lastOptions = options
	return p.response, p.err
}

func TestExtractParsesCleanJSON(t *testing.T) {
	provider := &scriptedProvider{response: `{
		"company_name": "Acme Finance Ltd",
		"ticker_symbol": "ACME",
		"financial_items": [
			{"particulars": "Total Revenue", "current_year": 150000, "previous_year": 120000}
		]
	}`}

	resp, err := NewLLMExtractor(provider).Extract(context.Background(), "statement text", "key-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !resp.Success {
		t.Fatalf("expected success, got error %q", resp.Error)
	}
	if resp.CompanyName != "Acme Finance Ltd" {
		t.Errorf("company name = %s", resp.CompanyName)
	}
	if len(resp.FinancialItems) != 1 {
		t.Fatalf("items = %d, want 1", len(resp.FinancialItems))
	}
	item := resp.FinancialItems[0]
	if item.Particulars != "Total Revenue" || item.CurrentYear == nil || *item.CurrentYear != 150000 {
		t.Errorf("item not parsed: %+v", item)
	}
}

func TestExtractRecoversFencedAndSloppyJSON(t *testing.T) {
	// Markdown fence plus a trailing comma: both defects the tolerant parser
	// must absorb.
	provider := &scriptedProvider{response: "```json\n" + `{
		"company_name": "Acme Finance Ltd",
		"financial_items": [
			{"particulars": "Net Profit", "current_year": 45000,},
		]
	}` + "\n```"}

	resp, err := NewLLMExtractor(provider).Extract(context.Background(), "statement text", "key-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !resp.Success || len(resp.FinancialItems) != 1 {
		t.Fatalf("tolerant parse failed: %+v", resp)
	}
}

func TestExtractCapturesExtraYearColumns(t *testing.T) {
	provider := &scriptedProvider{response: `{
		"financial_items": [
			{"particulars": "Total Assets", "current_year": 990000, "2021": 900000, "2020": 850000}
		]
	}`}

	resp, err := NewLLMExtractor(provider).Extract(context.Background(), "statement text", "key-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	item := resp.FinancialItems[0]
	if item.ExtraYears["2021"] != 900000 || item.ExtraYears["2020"] != 850000 {
		t.Errorf("extra year columns not captured: %+v", item.ExtraYears)
	}
}

func TestExtractUnparseableOutputIsSoftFailure(t *testing.T) {
	provider := &scriptedProvider{response: "I could not find any structured data in the document."}

	resp, err := NewLLMExtractor(provider).Extract(context.Background(), "statement text", "key-1")
	if err != nil {
		t.Fatalf("garbage output must be a soft failure, got error: %v", err)
	}
	if resp.Success {
		t.Error("unparseable output must not be marked successful")
	}
	if resp.Error == "" {
		t.Error("soft failure must carry a reason")
	}
}

func TestExtractEmptyItemListIsSoftFailure(t *testing.T) {
	provider := &scriptedProvider{response: `{"financial_items": []}`}

	resp, err := NewLLMExtractor(provider).Extract(context.Background(), "statement text", "key-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.Success {
		t.Error("empty extraction must not be marked successful")
	}
}

func TestExtractProviderErrorPropagates(t *testing.T) {
	provider := &scriptedProvider{err: fmt.Errorf("quota exceeded")}

	_, err := NewLLMExtractor(provider).Extract(context.Background(), "statement text", "key-1")
	if err == nil {
		t.Fatal("provider error must propagate as an error")
	}
}

func TestExtractPassesCredentialInOptions(t *testing.T) {
	provider := &scriptedProvider{response: `{"financial_items": [{"particulars": "Cash", "current_year": 1}]}`}

	_, err := NewLLMExtractor(provider).Extract(context.Background(), "statement text", "rotated-key")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if provider.lastOptions["api_key"] != "rotated-key" {
		t.Errorf("credential not forwarded, options = %v", provider.lastOptions)
	}
	if provider.lastOptions["response_format"] != "json_object" {
		t.Error("extraction must request structured JSON output")
	}
}
