package output

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/go-pdf/fpdf"
)

// PDFFormatter produces a printable A4 report.
type PDFFormatter struct{}

func (p PDFFormatter) Name() string { return "pdf" }

const (
	pageWidth    = 210.0
	marginLeft   = 15.0
	marginRight  = 15.0
	marginTop    = 15.0
	marginBottom = 20.0
	contentWidth = pageWidth - marginLeft - marginRight
)

// pdfText maps text onto what the core Latin-1 fonts can draw. There is no
// rupee glyph, so the sign is spelled out.
func pdfText(s string) string {
	s = strings.ReplaceAll(s, "₹", "Rs.")
	s = strings.ReplaceAll(s, "€", "EUR ")
	s = strings.ReplaceAll(s, "£", "\xa3")
	return s
}

type pdfReport struct {
	pdf    *fpdf.Fpdf
	report *Report
}

func (p PDFFormatter) Format(r *Report) ([]byte, error) {
	pr := &pdfReport{pdf: fpdf.New("P", "mm", "A4", ""), report: r}
	pr.pdf.SetMargins(marginLeft, marginTop, marginRight)
	pr.pdf.SetAutoPageBreak(true, marginBottom)
	pr.pdf.SetTitle("Retirement Runway", true)

	pr.pdf.AddPage()
	pr.addTitle()
	pr.addMetrics()
	pr.addAlerts()
	pr.addOneTimeExpenses()
	pr.addAllocation()
	pr.addProjection()

	var buf bytes.Buffer
	if err := pr.pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("failed to render PDF: %w", err)
	}
	return buf.Bytes(), nil
}

func (pr *pdfReport) addTitle() {
	pr.pdf.SetFont("Arial", "B", 22)
	pr.pdf.SetTextColor(0, 51, 102)
	pr.pdf.CellFormat(contentWidth, 12, "Retirement Runway", "", 1, "C", false, 0, "")
	pr.pdf.SetFont("Arial", "I", 10)
	pr.pdf.SetTextColor(80, 80, 80)
	pr.pdf.CellFormat(contentWidth, 6, fmt.Sprintf("Generated: %s", pr.report.GeneratedAt.Format("2 January 2006")), "", 1, "C", false, 0, "")
	pr.pdf.Ln(6)
}

func (pr *pdfReport) addMetrics() {
	r := pr.report
	res := r.Result
	pr.drawSectionHeader("Key Metrics")

	rows := [][]string{
		{"Total Corpus", r.Money(res.TotalCorpus)},
		{"Weighted Return", FormatPercent(res.WeightedReturn)},
		{"Annual Expenses", r.Money(res.AnnualExpenses)},
		{"Real Return (after inflation)", FormatPercent(res.RealReturn)},
		{"Money Lasts", FormatYears(res)},
		{"Until Age", FormatSurvivalAge(res)},
	}
	if res.ContributionsValue.IsPositive() {
		rows = append(rows, []string{"Contributions at Retirement", r.Money(res.ContributionsValue)})
	}
	widths := []float64{contentWidth * 0.6, contentWidth * 0.4}
	for _, row := range rows {
		pr.drawTableRow(row, widths, false)
	}
	pr.pdf.Ln(6)
}

func (pr *pdfReport) addAlerts() {
	if len(pr.report.Alerts) == 0 {
		return
	}
	for _, a := range pr.report.Alerts {
		pr.pdf.SetFillColor(254, 242, 242)
		pr.pdf.SetTextColor(153, 27, 27)
		pr.pdf.SetFont("Arial", "B", 10)
		pr.pdf.CellFormat(contentWidth, 7, pdfText(a.Title), "", 1, "L", true, 0, "")
		pr.pdf.SetFont("Arial", "", 9)
		pr.pdf.MultiCell(contentWidth, 5, pdfText(a.Message), "", "L", true)
		pr.pdf.Ln(3)
	}
	pr.pdf.Ln(3)
}

func (pr *pdfReport) addOneTimeExpenses() {
	r := pr.report
	if len(r.Result.FutureOneTimeExpenses) == 0 {
		return
	}
	pr.drawSectionHeader("Future One-Time Expenses")
	widths := []float64{contentWidth * 0.5, contentWidth * 0.2, contentWidth * 0.3}
	pr.drawTableHeader([]string{"Expense", "Age", "Future Value"}, widths)
	for _, e := range r.Result.FutureOneTimeExpenses {
		pr.drawTableRow([]string{e.Name, e.AgeWhenDue.String(), r.Money(e.FutureValue)}, widths, false)
	}
	pr.pdf.Ln(6)
}

func (pr *pdfReport) addAllocation() {
	r := pr.report
	rows := r.Allocation()
	if len(rows) == 0 {
		return
	}
	pr.drawSectionHeader("Portfolio Allocation")
	widths := []float64{contentWidth * 0.4, contentWidth * 0.2, contentWidth * 0.2, contentWidth * 0.2}
	pr.drawTableHeader([]string{"Bucket", "Return", "Share", "Amount"}, widths)
	for _, a := range rows {
		pr.drawTableRow([]string{a.Name, FormatPercent(a.Return), FormatPercent(a.Percent), r.Money(a.Amount)}, widths, false)
	}
	pr.pdf.Ln(6)
}

func (pr *pdfReport) addProjection() {
	r := pr.report
	pr.drawSectionHeader("Projection")
	if r.DrawDown() {
		pr.pdf.SetFont("Arial", "I", 10)
		pr.pdf.SetTextColor(80, 80, 80)
		pr.pdf.MultiCell(contentWidth, 5, "No growth is modelled for a non-positive weighted return; there is no yearly projection.", "", "L", false)
		return
	}
	widths := []float64{contentWidth * 0.1, contentWidth * 0.1, contentWidth * 0.25, contentWidth * 0.25, contentWidth * 0.3}
	pr.drawTableHeader([]string{"Year", "Age", "Corpus", "Regular", "One-time"}, widths)
	for _, y := range r.Result.YearlyData {
		oneTime := ""
		if y.OneTimeExpenses.IsPositive() {
			oneTime = r.Money(y.OneTimeExpenses)
		}
		pr.drawTableRow([]string{
			fmt.Sprintf("%d", y.Year), y.Age.String(), r.Money(y.Corpus), r.Money(y.RegularExpenses), oneTime,
		}, widths, y.Corpus.IsZero())
	}
}

func (pr *pdfReport) drawSectionHeader(title string) {
	pr.pdf.SetFont("Arial", "B", 14)
	pr.pdf.SetTextColor(0, 51, 102)
	pr.pdf.CellFormat(contentWidth, 9, title, "", 1, "L", false, 0, "")
	pr.pdf.SetDrawColor(0, 51, 102)
	pr.pdf.Line(marginLeft, pr.pdf.GetY(), marginLeft+contentWidth, pr.pdf.GetY())
	pr.pdf.Ln(3)
}

func (pr *pdfReport) drawTableHeader(headers []string, widths []float64) {
	pr.pdf.SetFillColor(0, 51, 102)
	pr.pdf.SetTextColor(255, 255, 255)
	pr.pdf.SetFont("Arial", "B", 9)

	for i, header := range headers {
		align := "L"
		if i > 0 {
			align = "R"
		}
		pr.pdf.CellFormat(widths[i], 6, header, "1", 0, align, true, 0, "")
	}
	pr.pdf.Ln(-1)
}

func (pr *pdfReport) drawTableRow(cells []string, widths []float64, isBold bool) {
	pr.pdf.SetFillColor(250, 250, 250)
	pr.pdf.SetTextColor(50, 50, 50)

	if isBold {
		pr.pdf.SetFont("Arial", "B", 9)
		pr.pdf.SetFillColor(240, 240, 240)
	} else {
		pr.pdf.SetFont("Arial", "", 9)
	}

	for i, c := range cells {
		align := "L"
		if i > 0 {
			align = "R"
		}
		pr.pdf.CellFormat(widths[i], 5, pdfText(c), "1", 0, align, true, 0, "")
	}
	pr.pdf.Ln(-1)
}
