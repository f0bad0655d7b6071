package report

import (
	"fmt"
	"io"
	"sort"
	"time"

	"github.com/jung-kurt/gofpdf"

	"prodtrack/internal/usecase/stats"
)

const recentWeeks = 8

// Render writes a one-page summary of the dashboard as PDF. Core fonts are
// Latin-1 only, so badge icons are left out.
func Render(w io.Writer, name string, d stats.Dashboard, now time.Time) error {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle("Productivity report", false)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 18)
	pdf.Cell(0, 10, "Productivity report")
	pdf.Ln(10)
	pdf.SetFont("Helvetica", "", 11)
	pdf.Cell(0, 6, fmt.Sprintf("%s - %s", name, stats.FormatDay(now)))
	pdf.Ln(12)

	section(pdf, "Streak")
	pdf.Cell(0, 6, fmt.Sprintf("%d day(s) in a row", d.Streak))
	pdf.Ln(10)

	section(pdf, "Badges")
	if len(d.Badges) == 0 {
		pdf.Cell(0, 6, "None yet")
		pdf.Ln(6)
	}
	for _, b := range d.Badges {
		pdf.MultiCell(0, 6, fmt.Sprintf("%s: %s", b.Title, b.Description), "", "L", false)
	}
	pdf.Ln(4)

	section(pdf, "Weekly task hours")
	weeks := make([]string, 0, len(d.WeeklyTotals))
	for week := range d.WeeklyTotals {
		weeks = append(weeks, week)
	}
	sort.Sort(sort.Reverse(sort.StringSlice(weeks)))
	if len(weeks) > recentWeeks {
		weeks = weeks[:recentWeeks]
	}
	for _, week := range weeks {
		row(pdf, week, fmt.Sprintf("%d h", d.WeeklyTotals[week]))
	}
	pdf.Ln(4)

	section(pdf, "Goals this week")
	if len(d.GoalsVsActuals) == 0 {
		pdf.Cell(0, 6, "No goals set")
		pdf.Ln(6)
	}
	for _, g := range d.GoalsVsActuals {
		row(pdf, g.Activity, fmt.Sprintf("%d / %d h", g.Actual, g.Goal))
	}

	return pdf.Output(w)
}

func section(pdf *gofpdf.Fpdf, title string) {
	pdf.SetFont("Helvetica", "B", 13)
	pdf.Cell(0, 8, title)
	pdf.Ln(8)
	pdf.SetFont("Helvetica", "", 11)
}

func row(pdf *gofpdf.Fpdf, label, value string) {
	pdf.CellFormat(60, 6, label, "", 0, "L", false, 0, "")
	pdf.CellFormat(40, 6, value, "", 1, "R", false, 0, "")
}
