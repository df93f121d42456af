// Package pipeline wires the full analysis flow: parallel ingestion,
// reconciliation, critical-metric construction, trend generation with LLM
// fallback, and narrative summarization.
package pipeline

import (
	"context"
	"fmt"
	"time"

	"financial_trends/pkg/core/agent"
	"financial_trends/pkg/core/extract"
	"financial_trends/pkg/core/ingest"
	"financial_trends/pkg/core/metrics"
	"financial_trends/pkg/core/narrative"
	"financial_trends/pkg/core/reconcile"
	"financial_trends/pkg/models"
)

// MinUploads is the precondition on the number of documents: trend analysis
// over fewer than 3 statements has no multi-year signal to work with.
const MinUploads = 3

// Engine is the entry point the request-handling layer calls.
type Engine struct {
	coordinator  *ingest.Coordinator
	orchestrator *TrendOrchestrator
	credentials  []string
}

// NewEngine builds a fully wired engine from the configured manager.
func NewEngine(mgr *agent.Manager) (*Engine, error) {
	credentials := mgr.Credentials()
	if len(credentials) == 0 {
		return nil, fmt.Errorf("no credentials configured: set the credential pool environment variable")
	}

	provider := mgr.ActiveProvider()
	extractor := extract.NewLLMExtractor(provider)
	coordinator := ingest.NewCoordinator(extractor, credentials, mgr.ScratchDir())
	if cap := mgr.MaxWorkers(); cap > 0 {
		coordinator.SetWorkerCap(cap)
	}

	return &Engine{
		coordinator:  coordinator,
		orchestrator: NewTrendOrchestrator(NewLLMTrendService(provider)),
		credentials:  credentials,
	}, nil
}

// NewEngineWith assembles an engine from explicit collaborators (used in
// tests and by callers that bring their own extraction stack).
func NewEngineWith(coordinator *ingest.Coordinator, orchestrator *TrendOrchestrator, credentials []string) *Engine {
	return &Engine{
		coordinator:  coordinator,
		orchestrator: orchestrator,
		credentials:  credentials,
	}
}

// Analyze runs the complete flow over the uploaded documents and returns
// the full report, or a single aggregate error when no usable data exists.
func (e *Engine) Analyze(ctx context.Context, uploads []ingest.Upload) (*models.AnalysisReport, error) {
	if len(uploads) < MinUploads {
		return nil, fmt.Errorf("at least %d financial statement files are required, got %d", MinUploads, len(uploads))
	}
	if len(e.credentials) == 0 {
		return nil, fmt.Errorf("credential pool is empty")
	}

	start := time.Now()
	fmt.Printf("Starting trend analysis over %d files...\n", len(uploads))

	fileResults := e.coordinator.ProcessAll(ctx, uploads)
	fmt.Printf("Ingestion complete: %d/%d files yielded data\n", len(fileResults), len(uploads))
	if len(fileResults) == 0 {
		return nil, fmt.Errorf("no usable financial data could be extracted from the uploaded files")
	}

	reconciled, warnings := reconcile.Merge(fileResults)
	fmt.Printf("Reconciled %d distinct metrics across files\n", len(reconciled))

	criticalMetrics := metrics.BuildCriticalMetrics(reconciled)

	credential := e.credentials[len(fileResults)%len(e.credentials)]
	result := e.orchestrator.GenerateAnalysis(ctx, criticalMetrics, credential)

	report := &models.AnalysisReport{
		Result:             result,
		OverallSummary:     narrative.OverallSummary(result),
		Executive:          narrative.BuildExecutiveSummary(result),
		FileSummaries:      fileSummaries(fileResults),
		DataQualitySummary: qualityHistogram(result.FinancialTrends),
		Warnings:           warnings,
	}

	fmt.Printf("Trend analysis completed in %v (source: %s)\n", time.Since(start), result.Source)
	return report, nil
}

func fileSummaries(results []models.FileResult) []models.FileSummary {
	summaries := make([]models.FileSummary, 0, len(results))
	for _, r := range results {
		yearSet := make(map[string]bool)
		for _, series := range r.YearlyData {
			for year := range series {
				yearSet[year] = true
			}
		}
		summaries = append(summaries, models.FileSummary{
			Filename:       r.Filename,
			Year:           r.Year,
			CompanyName:    r.CompanyName,
			ItemsExtracted: r.ItemsExtracted,
			YearsFound:     len(yearSet),
		})
	}
	return summaries
}

func qualityHistogram(trends []models.Trend) map[string]int {
	hist := make(map[string]int)
	for _, t := range trends {
		hist[string(t.DataQuality)]++
	}
	return hist
}
