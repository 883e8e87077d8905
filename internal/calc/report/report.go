package report

import (
	"bytes"
	"fmt"
	"io"
	"time"

	mises "Mises/internal/calc/mises"
	section "Mises/internal/calc/section"
	"github.com/phpdave11/gofpdf"
)

type Input struct {
	Project string `json:"project"`
	Author  string `json:"author"`
	Title   string `json:"title"`
	Notes   string `json:"notes"`
}

// Write renders a one-page A4 report for a calculated surface.
func Write(w io.Writer, input Input, res mises.Result, now time.Time) error {
	if input.Title == "" {
		input.Title = "Von Mises Yield Surface"
	}
	var chart bytes.Buffer
	if err := section.Render(&chart, res.SigmaY); err != nil {
		return fmt.Errorf("section chart: %w", err)
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle(input.Title, true)
	pdf.SetAuthor(input.Author, true)
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	text := func(s string) string { return tr(latin(s)) }

	pdf.AddPage()
	pdf.SetFont("Helvetica", "B", 16)
	pdf.Cell(0, 10, text(input.Title))
	pdf.Ln(12)
	pdf.SetFont("Helvetica", "", 11)
	pdf.Cell(0, 6, text("Project: " + input.Project))
	pdf.Ln(6)
	pdf.Cell(0, 6, text("Author: " + input.Author))
	pdf.Ln(6)
	pdf.Cell(0, 6, fmt.Sprintf("Date: %s", now.Format("2006-01-02")))
	pdf.Ln(10)

	rows := [][2]string{
		{"Yield stress sigma_y", fmt.Sprintf("%.3f", res.SigmaY)},
		{"Cylinder radius sqrt(2/3)*sigma_y", fmt.Sprintf("%.4f", res.RadiusMPa)},
		{"Hydrostatic range Z", fmt.Sprintf("0 .. %.1f", res.ZRange)},
		{"Grid", fmt.Sprintf("%d x %d (%d points)", res.Resolution, res.Resolution, res.Points)},
		{"Max |(s1+s2+s3)/sqrt(3) - Z|", fmt.Sprintf("%.3e", res.MaxHydrostaticError)},
		{"Max |sigma_eq - sigma_y|", fmt.Sprintf("%.3e", res.MaxEquivalentError)},
		{"Invariants preserved", yesNo(res.OK)},
	}
	pdf.SetFont("Helvetica", "B", 11)
	pdf.CellFormat(100, 7, "Parameter", "1", 0, "L", false, 0, "")
	pdf.CellFormat(80, 7, "Value", "1", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 11)
	for _, row := range rows {
		pdf.CellFormat(100, 7, row[0], "1", 0, "L", false, 0, "")
		pdf.CellFormat(80, 7, row[1], "1", 1, "L", false, 0, "")
	}
	pdf.Ln(6)

	opt := gofpdf.ImageOptions{ImageType: "PNG"}
	pdf.RegisterImageOptionsReader("section", opt, &chart)
	pdf.ImageOptions("section", 45, pdf.GetY(), 120, 120, true, opt, 0, "")

	if input.Notes != "" {
		pdf.SetFont("Helvetica", "", 11)
		pdf.MultiCell(0, 6, text(input.Notes), "", "L", false)
	}
	if err := pdf.Error(); err != nil {
		return err
	}
	return pdf.Output(w)
}

func yesNo(ok bool) string {
	if ok {
		return "yes"
	}
	return "no"
}
