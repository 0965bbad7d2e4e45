package compare

import (
	"encoding/csv"
	"strconv"
	"strings"
)

// CSVFormatter formats comparison results as CSV
type CSVFormatter struct{}

// Format generates CSV output for comparison results
func (cf *CSVFormatter) Format(compSet *ComparisonSet) (string, error) {
	var sb strings.Builder
	writer := csv.NewWriter(&sb)

	header := []string{
		"Scenario",
		"Type",
		"Description",
		"Total Corpus",
		"Annual Expenses",
		"Weighted Return",
		"Real Return",
		"Years Left",
		"Survival Age",
		"Saturated",
		"One-Time Total",
		"Corpus After 10 Years",
		"Corpus Diff from Base",
		"Years Left Diff",
		"Survival Age Diff",
		"Real Return Diff",
	}
	if err := writer.Write(header); err != nil {
		return "", err
	}

	if compSet.BaseResult != nil {
		if err := writer.Write(cf.formatRow(compSet.BaseResult, "base")); err != nil {
			return "", err
		}
	}

	for i := range compSet.AlternativeResults {
		if err := writer.Write(cf.formatRow(&compSet.AlternativeResults[i], "alternative")); err != nil {
			return "", err
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return "", err
	}

	return sb.String(), nil
}

func (cf *CSVFormatter) formatRow(result *ComparisonResult, scenarioType string) []string {
	return []string{
		result.ScenarioName,
		scenarioType,
		result.Description,
		result.TotalCorpus.StringFixed(2),
		result.AnnualExpenses.StringFixed(2),
		result.WeightedReturn.StringFixed(2),
		result.RealReturn.StringFixed(2),
		result.YearsLeft.StringFixed(2),
		result.SurvivalAge.StringFixed(2),
		strconv.FormatBool(result.Saturated),
		result.OneTimeTotal.StringFixed(2),
		result.CorpusAfter10.StringFixed(2),
		result.CorpusDiffFromBase.StringFixed(2),
		result.YearsLeftDiff.StringFixed(2),
		result.SurvivalAgeDiff.StringFixed(2),
		result.RealReturnDiff.StringFixed(2),
	}
}
