// Package llm wraps the language-model services used for line-item
// extraction and trend narration. Every provider accepts its API key through
// the options map so the ingestion layer can rotate credentials per call.
package llm

import (
	"context"
)

// Provider is the interface for all LLM providers.
//
// Recognized options:
//   - "api_key":         per-call credential (overrides the provider env var)
//   - "model":           model name override
//   - "response_format": "json_object" to request strict JSON output
type Provider interface {
	GenerateResponse(ctx context.Context, prompt string, systemPrompt string, options map[string]interface{}) (string, error)
}

// JSONOptions builds the options map for a structured-output call using the
// given credential.
func JSONOptions(credential string) map[string]interface{} {
	return map[string]interface{}{
		"api_key":         credential,
		"response_format": "json_object",
	}
}
