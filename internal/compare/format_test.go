package compare

import (
	"encoding/csv"
	"strings"
	"testing"

	"github.com/goccy/go-json"
	"github.com/rgehrsitz/runway/internal/domain"
	"github.com/shopspring/decimal"
)

func sampleSet() *ComparisonSet {
	return &ComparisonSet{
		BaseScenarioName: "base",
		ConfigPath:       "/path/to/plan.yaml",
		BaseResult: &ComparisonResult{
			ScenarioName: "base",
			Description:  "Configuration as entered",
			TotalCorpus:  decimal.NewFromInt(6000000),
			RealReturn:   decimal.RequireFromString("4.5"),
			YearsLeft:    decimal.RequireFromString("11.97"),
			SurvivalAge:  decimal.RequireFromString("41.97"),
		},
		AlternativeResults: []ComparisonResult{
			{
				ScenarioName:       "custom",
				Description:        "Remove investment bucket 1",
				TotalCorpus:        decimal.NewFromInt(5000000),
				RealReturn:         decimal.RequireFromString("5.1"),
				YearsLeft:          decimal.NewFromInt(100),
				SurvivalAge:        decimal.NewFromInt(130),
				Saturated:          true,
				CorpusDiffFromBase: decimal.NewFromInt(-1000000),
				YearsLeftDiff:      decimal.RequireFromString("88.03"),
				RealReturnDiff:     decimal.RequireFromString("0.6"),
			},
		},
		Recommendations: []string{"Longest Runway: custom extends the corpus by 88.0 years (to age 130)"},
	}
}

func TestTableFormatter_Format(t *testing.T) {
	result := (&TableFormatter{}).Format(sampleSet())

	for _, want := range []string{
		"RETIREMENT RUNWAY COMPARISON",
		"Base Scenario: base",
		"Configuration: /path/to/plan.yaml",
		"base (base)",
		"₹60.0 L",
		"12.0 years",
		"100+ years",
		"130+",
		"custom: Remove investment bucket 1",
		"Runway:           +88.0 years",
		"Real Return:      +0.6 points",
		"Corpus:           -₹10.0 L",
		"RECOMMENDATIONS",
		"• Longest Runway",
	} {
		if !strings.Contains(result, want) {
			t.Errorf("Expected %q in output:\n%s", want, result)
		}
	}
}

func TestTableFormatter_Currency(t *testing.T) {
	result := (&TableFormatter{Currency: "USD"}).Format(sampleSet())
	if !strings.Contains(result, "$6.0M") {
		t.Errorf("Expected USD compact amounts, got:\n%s", result)
	}
}

func TestTableFormatter_Format_EmptyAlternatives(t *testing.T) {
	set := sampleSet()
	set.AlternativeResults = nil
	set.Recommendations = nil
	set.ConfigPath = ""

	result := (&TableFormatter{}).Format(set)
	if strings.Contains(result, "COMPARISON TO BASE") {
		t.Error("Did not expect comparison section without alternatives")
	}
	if strings.Contains(result, "Configuration:") {
		t.Error("Did not expect configuration line without a path")
	}
}

func TestTableFormatter_FormatCompact(t *testing.T) {
	set := sampleSet()
	set.AlternativeResults = append(set.AlternativeResults, ComparisonResult{ScenarioName: "same"})

	got := (&TableFormatter{}).FormatCompact(set)
	want := "Base: base (12.0 years) | custom: +88.0y | same: ="
	if got != want {
		t.Errorf("Expected %q, got %q", want, got)
	}
}

func TestCSVFormatter_Format(t *testing.T) {
	out, err := (&CSVFormatter{}).Format(sampleSet())
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	records, err := csv.NewReader(strings.NewReader(out)).ReadAll()
	if err != nil {
		t.Fatalf("Output is not valid CSV: %v", err)
	}
	if len(records) != 3 {
		t.Fatalf("Expected header plus 2 rows, got %d", len(records))
	}
	if records[0][0] != "Scenario" || len(records[0]) != 16 {
		t.Errorf("Unexpected header: %v", records[0])
	}
	if records[1][1] != "base" || records[2][1] != "alternative" {
		t.Errorf("Unexpected row types: %s, %s", records[1][1], records[2][1])
	}
	if records[2][3] != "5000000.00" {
		t.Errorf("Expected corpus 5000000.00, got %s", records[2][3])
	}
	if records[2][9] != "true" {
		t.Errorf("Expected saturated true, got %s", records[2][9])
	}
	if records[2][12] != "-1000000.00" {
		t.Errorf("Expected corpus diff -1000000.00, got %s", records[2][12])
	}
}

func TestJSONFormatter_Format(t *testing.T) {
	for _, pretty := range []bool{false, true} {
		out, err := (&JSONFormatter{Pretty: pretty}).Format(sampleSet())
		if err != nil {
			t.Fatalf("Unexpected error: %v", err)
		}

		var decoded map[string]any
		if err := json.Unmarshal([]byte(out), &decoded); err != nil {
			t.Fatalf("Output is not valid JSON: %v", err)
		}
		if decoded["baseScenarioName"] != "base" {
			t.Errorf("Unexpected base name: %v", decoded["baseScenarioName"])
		}
		alts := decoded["alternativeResults"].([]any)
		custom := alts[0].(map[string]any)
		if custom["totalCorpus"] != "5000000" {
			t.Errorf("Expected decimal as string, got %v", custom["totalCorpus"])
		}
		if _, ok := custom["Config"]; ok {
			t.Error("Config should not be serialized")
		}
		if pretty != strings.Contains(out, "\n  ") {
			t.Errorf("Pretty=%v but indentation mismatch", pretty)
		}
	}
}

func TestJSONFormatter_LongestAndYearly(t *testing.T) {
	set := sampleSet()
	set.BaseResult.Result.YearlyData = []domain.YearlyProjection{{Year: 1, Corpus: decimal.NewFromInt(5800000)}}

	out, err := (&JSONFormatter{}).Format(set)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if !strings.Contains(out, `"longestRunway":"custom"`) {
		t.Errorf("Expected custom to have the longest runway, got %s", out)
	}
	if strings.Contains(out, "yearlyData") {
		t.Error("Yearly data should be omitted unless requested")
	}

	out, err = (&JSONFormatter{IncludeYearly: true}).Format(set)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	var decoded struct {
		YearlyData map[string][]domain.YearlyProjection `json:"yearlyData"`
	}
	if err := json.Unmarshal([]byte(out), &decoded); err != nil {
		t.Fatalf("Output is not valid JSON: %v", err)
	}
	if len(decoded.YearlyData["base"]) != 1 || !decoded.YearlyData["base"][0].Corpus.Equal(decimal.NewFromInt(5800000)) {
		t.Errorf("Unexpected base rows: %+v", decoded.YearlyData["base"])
	}
	if _, ok := decoded.YearlyData["custom"]; !ok {
		t.Error("Expected rows for the custom alternative")
	}
}
