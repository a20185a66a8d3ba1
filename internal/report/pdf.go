package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/go-pdf/fpdf"
)

// Page geometry in millimetres
const (
	margin         = 15.0
	topY           = 20.0
	sectionBreakY  = 240.0
	bulletBreakY   = 270.0
	bulletIndent   = 3.0
	bulletLineStep = 4.0
)

// RenderPDF writes doc as an A4 PDF. A new page starts when a section or bullet would run past the page threshold.
func RenderPDF(w io.Writer, doc Document) error {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(margin, topY, margin)
	pdf.SetAutoPageBreak(false, 0)
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pageWidth, _ := pdf.GetPageSize()
	textWidth := pageWidth - 2*margin

	pdf.AddPage()
	y := topY

	pdf.SetFont("Helvetica", "B", 24)
	pdf.SetTextColor(33, 33, 33)
	pdf.Text(margin, y, tr(doc.Title))
	y += 15

	pdf.SetFont("Helvetica", "", 14)
	pdf.SetTextColor(100, 100, 100)
	pdf.Text(margin, y, fmt.Sprintf("Overall Score: %d%%", doc.Overall))
	y += 8

	pdf.SetFont("Helvetica", "B", 16)
	pdf.SetTextColor(33, 33, 33)
	pdf.Text(margin, y, tr(doc.LevelLine))
	y += 10

	pdf.SetFont("Helvetica", "", 10)
	pdf.SetTextColor(80, 80, 80)
	for _, line := range wrap(pdf, tr, doc.Description, textWidth) {
		pdf.Text(margin, y, line)
		y += 5
	}
	y += 10

	for _, s := range doc.Sections {
		if y > sectionBreakY {
			pdf.AddPage()
			y = topY
		}

		pdf.SetFont("Helvetica", "B", 12)
		pdf.SetTextColor(33, 33, 33)
		pdf.Text(margin, y, tr(fmt.Sprintf("%s - %d%%", s.Name, s.Percentage)))
		y += 6

		pdf.SetFont("Helvetica", "", 10)
		pdf.SetTextColor(100, 100, 100)
		pdf.Text(margin, y, tr(s.TierLabel))
		y += 8

		if s.Heading != "" {
			pdf.SetFont("Helvetica", "", 9)
			pdf.SetTextColor(60, 60, 60)
			pdf.Text(margin, y, s.Heading)
			y += 5

			for _, line := range s.Lines {
				if y > bulletBreakY {
					pdf.AddPage()
					y = topY
				}
				for _, wl := range wrap(pdf, tr, "• "+line, textWidth-5) {
					pdf.Text(margin+bulletIndent, y, wl)
					y += bulletLineStep
				}
				y += 2
			}
		}
		y += 6
	}

	if err := pdf.Error(); err != nil {
		return &RenderError{Message: "failed to lay out document", Cause: err}
	}
	if err := pdf.Output(w); err != nil {
		return &RenderError{Message: "failed to write PDF", Cause: err}
	}
	return nil
}

// wrap breaks UTF-8 text into lines no wider than width in the current font and returns them
// translated to the core font encoding. Widths are measured on the translated bytes, which always
// index the single-byte width table. A word longer than width gets a line of its own.
func wrap(pdf *fpdf.Fpdf, tr func(string) string, text string, width float64) []string {
	var lines []string
	for _, paragraph := range strings.Split(text, "\n") {
		line := ""
		for _, word := range strings.Fields(paragraph) {
			if line == "" {
				line = word
				continue
			}
			if candidate := line + " " + word; pdf.GetStringWidth(tr(candidate)) <= width {
				line = candidate
				continue
			}
			lines = append(lines, tr(line))
			line = word
		}
		if line != "" {
			lines = append(lines, tr(line))
		}
	}
	return lines
}
