package reconcile

import (
	"strings"
	"testing"

	"financial_trends/pkg/models"
)

func makeFileResult(filename string, yearlyData map[string]models.YearlySeries) models.FileResult {
	return models.FileResult{
		Filename:       filename,
		Year:           "2023",
		ItemsExtracted: len(yearlyData),
		YearlyData:     yearlyData,
	}
}

func TestMergeUnionsAcrossFiles(t *testing.T) {
	// Three annual filings each carrying a current/previous pair.
	results := []models.FileResult{
		makeFileResult("co_2021.pdf", map[string]models.YearlySeries{
			"Total Revenue": {"2021": 100},
		}),
		makeFileResult("co_2022.pdf", map[string]models.YearlySeries{
			"Total Revenue": {"2022": 120, "2021": 100},
		}),
		makeFileResult("co_2023.pdf", map[string]models.YearlySeries{
			"Total Revenue": {"2023": 150, "2022": 120},
		}),
	}

	merged, warnings := Merge(results)
	if len(warnings) != 0 {
		t.Errorf("identical overlapping values should produce no warnings, got %v", warnings)
	}

	series, ok := merged["Total Revenue"]
	if !ok {
		t.Fatal("Total Revenue missing from merge")
	}
	want := models.YearlySeries{"2021": 100, "2022": 120, "2023": 150}
	if len(series) != len(want) {
		t.Fatalf("merged series = %v, want %v", series, want)
	}
	for year, value := range want {
		if series[year] != value {
			t.Errorf("series[%s] = %v, want %v", year, series[year], value)
		}
	}
}

func TestMergeIdempotent(t *testing.T) {
	file := makeFileResult("a.pdf", map[string]models.YearlySeries{
		"Total Assets": {"2021": 900, "2022": 950},
	})

	once, _ := Merge([]models.FileResult{file})
	twice, warnings := Merge([]models.FileResult{file, file})

	if len(warnings) != 0 {
		t.Errorf("re-merging identical values should warn about nothing, got %v", warnings)
	}
	if len(once) != len(twice) {
		t.Fatalf("metric count changed: %d vs %d", len(once), len(twice))
	}
	for metric, series := range once {
		for year, value := range series {
			if twice[metric][year] != value {
				t.Errorf("value changed for (%s, %s): %v vs %v", metric, year, value, twice[metric][year])
			}
		}
	}
}

func TestMergeConflictPrefersHigherQuality(t *testing.T) {
	// b.pdf has only 2 years (fair); a.pdf has 4 (excellent). The value
	// for the colliding year must come from the higher-quality series even
	// though a.pdf sorts first.
	results := []models.FileResult{
		makeFileResult("b.pdf", map[string]models.YearlySeries{
			"Net Profit": {"2022": 999, "2023": 1100},
		}),
		makeFileResult("a.pdf", map[string]models.YearlySeries{
			"Net Profit": {"2020": 800, "2021": 900, "2022": 1000, "2023": 1100},
		}),
	}

	merged, warnings := Merge(results)
	if merged["Net Profit"]["2022"] != 1000 {
		t.Errorf("2022 value = %v, want 1000 from the higher-quality source", merged["Net Profit"]["2022"])
	}
	if len(warnings) != 1 {
		t.Fatalf("expected 1 conflict warning, got %d", len(warnings))
	}
	if !strings.Contains(warnings[0], "Net Profit") {
		t.Errorf("warning should name the metric, got %s", warnings[0])
	}
}

func TestMergeExactNameEquality(t *testing.T) {
	results := []models.FileResult{
		makeFileResult("a.pdf", map[string]models.YearlySeries{
			"Total Revenue":  {"2021": 100},
			"Total Revenues": {"2021": 200},
		}),
	}
	merged, _ := Merge(results)
	if len(merged) != 2 {
		t.Errorf("no fuzzy merging may occur at this stage, got %d metrics", len(merged))
	}
}
