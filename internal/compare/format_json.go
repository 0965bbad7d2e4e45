package compare

import (
	"github.com/goccy/go-json"
	"github.com/rgehrsitz/runway/internal/domain"
)

// JSONFormatter formats comparison results as JSON
type JSONFormatter struct {
	Pretty        bool // If true, format with indentation
	IncludeYearly bool // Attach every scenario's yearly projection rows
}

type jsonDocument struct {
	*ComparisonSet
	LongestRunway string                               `json:"longestRunway"`
	YearlyData    map[string][]domain.YearlyProjection `json:"yearlyData,omitempty"`
}

// Format generates JSON output for comparison results
func (jf *JSONFormatter) Format(compSet *ComparisonSet) (string, error) {
	doc := jsonDocument{ComparisonSet: compSet}

	if compSet.BaseResult != nil {
		longest := compSet.BaseResult
		for i := range compSet.AlternativeResults {
			if compSet.AlternativeResults[i].YearsLeft.GreaterThan(longest.YearsLeft) {
				longest = &compSet.AlternativeResults[i]
			}
		}
		doc.LongestRunway = longest.ScenarioName
	}

	if jf.IncludeYearly {
		doc.YearlyData = make(map[string][]domain.YearlyProjection)
		if compSet.BaseResult != nil {
			doc.YearlyData[compSet.BaseResult.ScenarioName] = compSet.BaseResult.Result.YearlyData
		}
		for _, alt := range compSet.AlternativeResults {
			doc.YearlyData[alt.ScenarioName] = alt.Result.YearlyData
		}
	}

	var data []byte
	var err error
	if jf.Pretty {
		data, err = json.MarshalIndent(doc, "", "  ")
	} else {
		data, err = json.Marshal(doc)
	}
	if err != nil {
		return "", err
	}

	return string(data), nil
}
