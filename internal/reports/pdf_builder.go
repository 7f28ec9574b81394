package reports

import (
	"bytes"
	"fmt"
	"os"
	"strings"

	"github.com/go-pdf/fpdf"
	"github.com/gomarkdown/markdown/ast"
	"github.com/gomarkdown/markdown/parser"

	"cropcast/internal/models"
)

// PDFBuilder renders the print artifact stored alongside each report
type PDFBuilder struct{}

// NewPDFBuilder creates a PDF builder
func NewPDFBuilder() *PDFBuilder {
	return &PDFBuilder{}
}

// BuildPDF renders the analysis into a PDF document. chartPNGPath may be
// empty or missing when chart rendering failed; the PDF notes the absence
// instead of failing.
func (p *PDFBuilder) BuildPDF(analysis *models.SeasonAnalysis, chartPNGPath string) ([]byte, error) {
	pdf := fpdf.New("P", "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.SetAutoPageBreak(true, 25)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 16)
	pdf.CellFormat(0, 10, "GDD Crop Phenology Report", "", 1, "C", false, 0, "")
	pdf.SetFont("Helvetica", "", 10)
	pdf.CellFormat(0, 6, "Generated: "+analysis.GeneratedAt.Format("2006-01-02"), "", 1, "C", false, 0, "")
	pdf.Ln(4)

	p.writeSection(pdf, "Location")
	p.writeLine(pdf, tr, fmt.Sprintf("Name: %s", analysis.Location.DisplayName()))
	p.writeLine(pdf, tr, fmt.Sprintf("Coordinates: %.4f, %.4f", analysis.Location.Latitude, analysis.Location.Longitude))
	pdf.Ln(3)

	p.writeSection(pdf, "Crop Information")
	p.writeLine(pdf, tr, fmt.Sprintf("Crop: %s", analysis.CropLabel))
	p.writeLine(pdf, tr, fmt.Sprintf("Tbase: %.1f C  |  Tupper: %.1f C", analysis.Profile.BaseTemp, analysis.Profile.UpperTemp))
	p.writeLine(pdf, tr, fmt.Sprintf("Planting Date: %s", analysis.PlantingDate.Format("2006-01-02")))
	pdf.Ln(3)

	if analysis.Mode == models.ModePlan {
		p.writeProjectedStages(pdf, tr, analysis)
	} else {
		p.writeResults(pdf, tr, analysis)
	}
	pdf.Ln(4)

	p.writeChart(pdf, chartPNGPath)

	if analysis.Advisory != "" {
		pdf.Ln(4)
		p.writeSection(pdf, "Agronomist Advisory")
		for _, line := range markdownToLines(analysis.Advisory) {
			pdf.MultiCell(0, 5, tr(line), "", "L", false)
			pdf.Ln(1)
		}
	}

	// Footer
	pdf.SetY(-20)
	pdf.SetFont("Helvetica", "I", 8)
	pdf.CellFormat(0, 5, "Data source: Open-Meteo (open-meteo.com) | Based on FAO56rev GDD framework", "", 0, "C", false, 0, "")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("failed to render PDF: %w", err)
	}
	return buf.Bytes(), nil
}

func (p *PDFBuilder) writeResults(pdf *fpdf.Fpdf, tr func(string) string, analysis *models.SeasonAnalysis) {
	p.writeSection(pdf, "Results")
	p.writeLine(pdf, tr, fmt.Sprintf("Date: %s", analysis.AsOfDate.Format("2006-01-02")))
	p.writeLine(pdf, tr, fmt.Sprintf("Cumulative GDD: %.2f", analysis.Status.CumulativeGDD))
	p.writeLine(pdf, tr, fmt.Sprintf("Current Stage: %s", StageLabel(analysis.Status.StageName)))
	p.writeLine(pdf, tr, fmt.Sprintf("Stage Progress: %.1f%%", analysis.Status.StageProgress*100))
	p.writeLine(pdf, tr, fmt.Sprintf("Overall Progress: %.1f%%", analysis.Status.OverallProgress*100))

	if !analysis.Status.IsFinalStage {
		if days, ok := EstimateRemainingDays(analysis.Records, analysis.Profile, TrailingWindowDays); ok {
			p.writeLine(pdf, tr, fmt.Sprintf("Estimated Days to Harvest: %d", days))
		}
	}
}

func (p *PDFBuilder) writeProjectedStages(pdf *fpdf.Fpdf, tr func(string) string, analysis *models.SeasonAnalysis) {
	p.writeSection(pdf, "Projected Growth Stages")
	for _, ms := range analysis.Milestones {
		label := StageLabel(ms.StageName)
		if ms.Reached {
			days := ms.DaysFrom(analysis.PlantingDate)
			p.writeLine(pdf, tr, fmt.Sprintf("%s: %s (%d days)", label, ms.Date.Format("2006-01-02"), days))
		} else {
			p.writeLine(pdf, tr, fmt.Sprintf("%s: beyond projection range", label))
		}
	}
}

func (p *PDFBuilder) writeChart(pdf *fpdf.Fpdf, chartPNGPath string) {
	if chartPNGPath != "" {
		if _, err := os.Stat(chartPNGPath); err == nil {
			pdf.ImageOptions(chartPNGPath, 10, pdf.GetY(), 190, 0, true,
				fpdf.ImageOptions{ImageType: "PNG"}, 0, "")
			return
		}
	}

	pdf.SetFont("Helvetica", "I", 10)
	pdf.CellFormat(0, 6, "(Chart image could not be generated)", "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 10)
}

func (p *PDFBuilder) writeSection(pdf *fpdf.Fpdf, title string) {
	pdf.SetFont("Helvetica", "B", 12)
	pdf.CellFormat(0, 7, title, "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 10)
}

func (p *PDFBuilder) writeLine(pdf *fpdf.Fpdf, tr func(string) string, line string) {
	pdf.CellFormat(0, 6, tr(line), "", 1, "L", false, 0, "")
}

// markdownToLines flattens advisory markdown into plain text lines the core
// PDF fonts can render. One line per block element.
func markdownToLines(md string) []string {
	p := parser.NewWithExtensions(parser.CommonExtensions)
	doc := p.Parse([]byte(md))

	var lines []string
	var cur strings.Builder
	flush := func() {
		// Collapse soft line breaks inside a block to single spaces.
		if s := strings.Join(strings.Fields(cur.String()), " "); s != "" {
			lines = append(lines, s)
		}
		cur.Reset()
	}

	ast.WalkFunc(doc, func(node ast.Node, entering bool) ast.WalkStatus {
		switch n := node.(type) {
		case *ast.Text:
			if entering {
				cur.WriteString(string(n.Literal))
			}
		case *ast.Code:
			if entering {
				cur.WriteString(string(n.Literal))
			}
		case *ast.Softbreak, *ast.Hardbreak:
			if entering {
				cur.WriteString(" ")
			}
		case *ast.Paragraph, *ast.Heading, *ast.ListItem:
			if !entering {
				flush()
			}
		}
		return ast.GoToNext
	})
	flush()

	return lines
}
