package output

import (
	"bytes"
	"encoding/csv"
	"strconv"
)

// CSVFormatter exports the displayed yearly projection, one row per year.
// Amounts are plain decimals so spreadsheets can read them.
type CSVFormatter struct{}

func (c CSVFormatter) Name() string { return "csv" }

func (c CSVFormatter) Format(r *Report) ([]byte, error) {
	buf := &bytes.Buffer{}
	w := csv.NewWriter(buf)
	header := []string{"Year", "Age", "Corpus", "RegularExpenses", "OneTimeExpenses", "OneTimeItems"}
	if err := w.Write(header); err != nil {
		return nil, err
	}
	for _, y := range r.Result.YearlyData {
		row := []string{
			strconv.Itoa(y.Year),
			y.Age.String(),
			y.Corpus.StringFixed(2),
			y.RegularExpenses.StringFixed(2),
			y.OneTimeExpenses.StringFixed(2),
			itemNames(y.OneTimeItems),
		}
		if err := w.Write(row); err != nil {
			return nil, err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
