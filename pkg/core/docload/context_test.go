package docload

import (
	"strings"
	"testing"
)

func TestPrepareContextPrioritizesFinancialLines(t *testing.T) {
	docs := []Document{
		{PageContent: "Directors walked the factory floor.\nTotal Revenue 150,000\n"},
		{PageContent: "The annual general meeting was held in May.\nNet Profit after tax 45,000"},
	}

	ctx := PrepareContext(docs)
	lines := strings.Split(strings.TrimRight(ctx, "\n"), "\n")
	if len(lines) != 4 {
		t.Fatalf("expected 4 lines, got %d: %q", len(lines), ctx)
	}
	if !strings.Contains(lines[0], "Total Revenue") || !strings.Contains(lines[1], "Net Profit") {
		t.Errorf("keyword lines must come first, got: %q", ctx)
	}
}

func TestPrepareContextHonorsCap(t *testing.T) {
	long := strings.Repeat("total assets 1,000,000\n", 5000) // far beyond the cap
	ctx := PrepareContext([]Document{{PageContent: long}})
	if len(ctx) > MaxContextChars {
		t.Errorf("context length %d exceeds the %d cap", len(ctx), MaxContextChars)
	}
	if len(ctx) < MaxContextChars/2 {
		t.Errorf("context should be packed close to the cap, got %d", len(ctx))
	}
}

func TestPrepareContextTruncationDropsBoilerplateFirst(t *testing.T) {
	// Enough keyword lines to fill the cap on their own: boilerplate must
	// not appear at all.
	keyword := strings.Repeat("total liabilities 800,000\n", 3000)
	boiler := "Chairman's statement on community engagement.\n"
	ctx := PrepareContext([]Document{{PageContent: boiler + keyword}})
	if strings.Contains(ctx, "Chairman") {
		t.Error("boilerplate survived while keyword lines were truncated")
	}
}

func TestPrepareContextSkipsBlankLines(t *testing.T) {
	ctx := PrepareContext([]Document{{PageContent: "\n\n  \nrevenue 100\n\n"}})
	if strings.Contains(ctx, "\n\n") {
		t.Errorf("blank lines must be dropped, got %q", ctx)
	}
}

func TestSupportedExtension(t *testing.T) {
	cases := []struct {
		filename string
		want     bool
	}{
		{"report.pdf", true},
		{"REPORT.PDF", true},
		{"data.xlsx", true},
		{"legacy.xls", true},
		{"notes.txt", false},
		{"page.html", false},
		{"archive", false},
	}
	for _, tc := range cases {
		if got := SupportedExtension(tc.filename); got != tc.want {
			t.Errorf("SupportedExtension(%q) = %v, want %v", tc.filename, got, tc.want)
		}
	}
}
