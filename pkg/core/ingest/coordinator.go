// Package ingest implements the parallel ingestion coordinator: one
// extraction pipeline per uploaded document, run concurrently under a
// bounded worker pool with per-file failure isolation and round-robin
// credential rotation.
package ingest

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"runtime"
	"strconv"
	"strings"

	"github.com/google/uuid"

	"financial_trends/pkg/core/docload"
	"financial_trends/pkg/core/extract"
	"financial_trends/pkg/models"
)

// MinContextChars is the minimum prepared-context length for an extraction
// attempt. Shorter contexts are almost always scans without a text layer.
const MinContextChars = 100

// MaxWorkers caps concurrency to bound external-service load regardless of
// upload volume.
const MaxWorkers = 8

var filenameYearPattern = regexp.MustCompile(`20\d{2}`)

// Upload is one caller-supplied document.
type Upload struct {
	Filename string
	Content  []byte
}

// Coordinator fans uploads out to per-file pipelines.
type Coordinator struct {
	extractor   extract.Extractor
	credentials []string
	scratchDir  string
	workerCap   int

	// loaderFor is swappable in tests; defaults to docload.ForExtension.
	loaderFor func(ext string) docload.Loader
}

// NewCoordinator creates a coordinator. credentials must be non-empty; the
// engine enforces that before dispatch.
func NewCoordinator(extractor extract.Extractor, credentials []string, scratchDir string) *Coordinator {
	if scratchDir == "" {
		scratchDir = os.TempDir()
	}
	return &Coordinator{
		extractor:   extractor,
		credentials: credentials,
		scratchDir:  scratchDir,
		loaderFor:   docload.ForExtension,
	}
}

// SetLoaderFactory overrides document loader selection (used in tests).
func (c *Coordinator) SetLoaderFactory(f func(ext string) docload.Loader) {
	c.loaderFor = f
}

// SetWorkerCap lowers the concurrency cap below the default.
func (c *Coordinator) SetWorkerCap(n int) {
	c.workerCap = n
}

func (c *Coordinator) workerCount(jobs int) int {
	n := jobs
	if cpus := runtime.NumCPU(); cpus < n {
		n = cpus
	}
	if n > MaxWorkers {
		n = MaxWorkers
	}
	if c.workerCap > 0 && c.workerCap < n {
		n = c.workerCap
	}
	if n < 1 {
		n = 1
	}
	return n
}

// ProcessAll runs every upload through its own pipeline concurrently and
// returns the results of the uploads that succeeded, in dispatch order.
// Failures are logged and dropped; they never abort sibling pipelines.
func (c *Coordinator) ProcessAll(ctx context.Context, uploads []Upload) []models.FileResult {
	type job struct {
		index      int
		upload     Upload
		credential string
	}

	jobs := make(chan job)
	slots := make([]*models.FileResult, len(uploads))
	done := make(chan struct{})

	workers := c.workerCount(len(uploads))
	for w := 0; w < workers; w++ {
		go func() {
			for j := range jobs {
				slots[j.index] = c.runPipeline(ctx, j.index, j.upload, j.credential)
				done <- struct{}{}
			}
		}()
	}

	go func() {
		for i, upload := range uploads {
			// Credential assigned once per file before dispatch,
			// not re-balanced on failure.
			jobs <- job{index: i, upload: upload, credential: c.credentials[i%len(c.credentials)]}
		}
		close(jobs)
	}()

	for range uploads {
		<-done
	}

	var results []models.FileResult
	for _, slot := range slots {
		if slot != nil {
			results = append(results, *slot)
		}
	}
	return results
}

// runPipeline executes one file's pipeline end to end, recovering from any
// panic so a malformed document can never take down the request.
func (c *Coordinator) runPipeline(ctx context.Context, index int, upload Upload, credential string) (result *models.FileResult) {
	defer func() {
		if r := recover(); r != nil {
			fmt.Printf("Warning: pipeline panic for %s: %v. Skipping.\n", upload.Filename, r)
			result = nil
		}
	}()

	ext := strings.ToLower(filepath.Ext(upload.Filename))
	loader := c.loaderFor(ext)
	if loader == nil {
		// Unsupported extension, excluded silently.
		return nil
	}

	yearLabel := deriveYearLabel(upload.Filename, index)

	scratchPath := filepath.Join(c.scratchDir, uuid.New().String()+ext)
	if err := os.WriteFile(scratchPath, upload.Content, 0o600); err != nil {
		fmt.Printf("Warning: failed to stage %s: %v. Skipping.\n", upload.Filename, err)
		return nil
	}
	// Best-effort cleanup on every exit path; a leftover scratch file must
	// never fail the request.
	defer os.Remove(scratchPath)

	docs, err := loader.Load(ctx, scratchPath)
	if err != nil {
		fmt.Printf("Warning: failed to load %s: %v. Skipping.\n", upload.Filename, err)
		return nil
	}

	contextText := docload.PrepareContext(docs)
	if len(contextText) < MinContextChars {
		fmt.Printf("Warning: insufficient context in %s (%d chars). Skipping.\n", upload.Filename, len(contextText))
		return nil
	}

	resp, err := c.extractor.Extract(ctx, contextText, credential)
	if err != nil {
		fmt.Printf("Warning: extraction failed for %s: %v. Skipping.\n", upload.Filename, err)
		return nil
	}
	if !resp.Success {
		fmt.Printf("Warning: extraction unsuccessful for %s: %s. Skipping.\n", upload.Filename, resp.Error)
		return nil
	}

	yearlyData := DeriveYearlyData(resp.FinancialItems, yearLabel)

	return &models.FileResult{
		Filename:       upload.Filename,
		Year:           yearLabel,
		CompanyName:    resp.CompanyName,
		TickerSymbol:   resp.TickerSymbol,
		ItemsExtracted: len(resp.FinancialItems),
		YearlyData:     yearlyData,
	}
}

// deriveYearLabel pulls a 4-digit 20xx year out of the filename, or
// synthesizes a unique placeholder when none is present.
func deriveYearLabel(filename string, index int) string {
	if match := filenameYearPattern.FindString(filename); match != "" {
		return match
	}
	return fmt.Sprintf("unknown-%d", index+1)
}

// DeriveYearlyData builds per-metric series from extracted line items.
// The filename-derived year anchors the current_year value; previous_year
// lands one year earlier; explicit year columns are taken as-is.
func DeriveYearlyData(items []models.LineItem, yearLabel string) map[string]models.YearlySeries {
	yearNum, yearIsNumeric := parseYear(yearLabel)

	out := make(map[string]models.YearlySeries)
	for _, item := range items {
		name := strings.TrimSpace(item.Particulars)
		if name == "" {
			continue
		}

		series := out[name]
		if series == nil {
			series = make(models.YearlySeries)
		}

		if yearIsNumeric {
			if item.CurrentYear != nil {
				series[strconv.Itoa(yearNum)] = *item.CurrentYear
			}
			if item.PreviousYear != nil {
				series[strconv.Itoa(yearNum-1)] = *item.PreviousYear
			}
		}
		for year, val := range item.ExtraYears {
			series[year] = val
		}

		if len(series) > 0 {
			out[name] = series
		}
	}
	return out
}

func parseYear(label string) (int, bool) {
	if !models.IsYearKey(label) {
		return 0, false
	}
	n, err := strconv.Atoi(label)
	if err != nil {
		return 0, false
	}
	return n, true
}
