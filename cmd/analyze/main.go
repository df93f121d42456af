package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"

	"financial_trends/pkg/core/agent"
	"financial_trends/pkg/core/docload"
	"financial_trends/pkg/core/ingest"
	"financial_trends/pkg/core/narrative"
	"financial_trends/pkg/core/pipeline"
)

func main() {
	dir := flag.String("dir", ".", "directory containing the financial statement files (.pdf, .xlsx, .xls)")
	configPath := flag.String("config", "config.yaml", "engine configuration file")
	asHTML := flag.Bool("html", false, "render the report as HTML instead of Markdown")
	flag.Parse()

	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found, assuming environment variables are set.")
	}

	cfg, err := agent.LoadConfig(*configPath)
	if err != nil {
		log.Printf("Warning: %v. Using defaults.", err)
		cfg = agent.Config{ActiveProvider: "gemini"}
	}

	mgr := agent.NewManager(cfg)
	engine, err := pipeline.NewEngine(mgr)
	if err != nil {
		log.Fatalf("Error: %v", err)
	}

	uploads, err := collectUploads(*dir)
	if err != nil {
		log.Fatalf("Error: %v", err)
	}

	fmt.Printf("🚀 Financial trend analysis starting over %d files...\n", len(uploads))

	report, err := engine.Analyze(context.Background(), uploads)
	if err != nil {
		log.Fatalf("Analysis failed: %v", err)
	}

	if *asHTML {
		html, err := narrative.RenderHTML(report)
		if err != nil {
			log.Fatalf("Failed to render report: %v", err)
		}
		fmt.Println(html)
		return
	}
	fmt.Println(narrative.RenderMarkdown(report))
}

// collectUploads reads every supported statement file in dir into memory.
func collectUploads(dir string) ([]ingest.Upload, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", dir, err)
	}

	var uploads []ingest.Upload
	for _, entry := range entries {
		if entry.IsDir() || !docload.SupportedExtension(entry.Name()) {
			continue
		}
		content, err := os.ReadFile(filepath.Join(dir, entry.Name()))
		if err != nil {
			fmt.Printf("Warning: failed to read %s: %v. Skipping.\n", entry.Name(), err)
			continue
		}
		uploads = append(uploads, ingest.Upload{Filename: entry.Name(), Content: content})
	}

	if len(uploads) == 0 {
		return nil, fmt.Errorf("no supported statement files found in %s", dir)
	}
	return uploads, nil
}
