// Package docload provides the document-loading collaborators for the
// ingestion pipeline: a PDF loader, an Excel loader, and the context
// preparer that turns loaded pages into a bounded extraction context.
package docload

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/ledongthuc/pdf"
	"github.com/xuri/excelize/v2"
)

// Document is one unit of loaded text, typically a page or a worksheet.
type Document struct {
	PageContent string
}

// Loader turns a file on disk into a list of Documents.
type Loader interface {
	Load(ctx context.Context, path string) ([]Document, error)
}

// ForExtension returns the loader responsible for the given file extension
// (lower-cased, with leading dot), or nil when the extension is unsupported.
func ForExtension(ext string) Loader {
	switch ext {
	case ".pdf":
		return &PDFLoader{}
	case ".xlsx", ".xls":
		return &ExcelLoader{}
	default:
		return nil
	}
}

// SupportedExtension reports whether the filename carries a processable
// extension. Anything else is excluded from ingestion silently.
func SupportedExtension(filename string) bool {
	return ForExtension(strings.ToLower(filepath.Ext(filename))) != nil
}

// =============================================================================
// PDF LOADER
// =============================================================================

// PDFLoader extracts plain text page by page.
type PDFLoader struct{}

var _ Loader = (*PDFLoader)(nil)

func (l *PDFLoader) Load(ctx context.Context, path string) ([]Document, error) {
	f, reader, err := pdf.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open pdf: %w", err)
	}
	defer f.Close()

	var docs []Document
	numPages := reader.NumPage()
	for i := 1; i <= numPages; i++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}
		text, err := page.GetPlainText(nil)
		if err != nil {
			// Unreadable page, continue with the rest
			continue
		}
		if strings.TrimSpace(text) == "" {
			continue
		}
		docs = append(docs, Document{PageContent: text})
	}

	if len(docs) == 0 {
		return nil, fmt.Errorf("no text could be extracted from %s", filepath.Base(path))
	}
	return docs, nil
}

// =============================================================================
// EXCEL LOADER
// =============================================================================

// ExcelLoader renders each worksheet as pipe-delimited rows, one Document
// per sheet, so the extractor sees tabular structure as text.
type ExcelLoader struct{}

var _ Loader = (*ExcelLoader)(nil)

func (l *ExcelLoader) Load(ctx context.Context, path string) ([]Document, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open workbook: %w", err)
	}
	defer f.Close()

	wb, err := excelize.OpenReader(f)
	if err != nil {
		return nil, fmt.Errorf("failed to read workbook: %w", err)
	}
	defer wb.Close()

	var docs []Document
	for _, sheet := range wb.GetSheetList() {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		rows, err := wb.GetRows(sheet)
		if err != nil {
			continue
		}

		var sb strings.Builder
		sb.WriteString(sheet)
		sb.WriteString("\n")
		for _, row := range rows {
			line := strings.TrimSpace(strings.Join(row, " | "))
			if line == "" {
				continue
			}
			sb.WriteString(line)
			sb.WriteString("\n")
		}
		if sb.Len() > len(sheet)+1 {
			docs = append(docs, Document{PageContent: sb.String()})
		}
	}

	if len(docs) == 0 {
		return nil, fmt.Errorf("no data rows found in %s", filepath.Base(path))
	}
	return docs, nil
}
