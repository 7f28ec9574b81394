package reports

import (
	"encoding/json"
	"fmt"
	"path/filepath"

	"cropcast/internal/charts"
	"cropcast/internal/logger"
	"cropcast/internal/models"
	"cropcast/internal/phenology"
	"cropcast/internal/storage"
)

// FileGenerator produces every artifact of one report
type FileGenerator struct {
	htmlBuilder *HTMLBuilder
	pdfBuilder  *PDFBuilder
}

// GeneratedFiles contains all files generated for a report
type GeneratedFiles struct {
	HTMLContent     string
	MarkdownContent string
	PDFContent      []byte
	ChartFiles      []string // PNG paths inside the work directory
	JSONFiles       map[string][]byte
	AssetFiles      map[string][]byte // CSS
	FolderPath      string            // storage folder for this report
}

// NewFileGenerator creates a new file generator
func NewFileGenerator() *FileGenerator {
	return &FileGenerator{
		htmlBuilder: NewHTMLBuilder(),
		pdfBuilder:  NewPDFBuilder(),
	}
}

// GenerateAllFiles creates all report artifacts. Chart PNGs are written to
// workDir; everything else stays in memory until the orchestrator stores it.
func (fg *FileGenerator) GenerateAllFiles(analysis *models.SeasonAnalysis, markdownContent, workDir string) (*GeneratedFiles, error) {
	files := &GeneratedFiles{
		MarkdownContent: markdownContent,
		JSONFiles:       make(map[string][]byte),
		AssetFiles:      make(map[string][]byte),
	}

	files.FolderPath = storage.GenerateReportFolderPath(analysis.GeneratedAt)

	// 1. JSON artifacts
	fg.generateJSONFiles(analysis, files)

	// 2. Charts: interactive snippets for the HTML, PNGs for the PDF
	chartGen := charts.NewChartGenerator(workDir)
	snippets := chartGen.GenerateSnippets(analysis)
	files.ChartFiles = chartGen.GeneratePNGs(analysis)

	// 3. HTML report
	if err := fg.generateHTML(analysis, markdownContent, snippets, files); err != nil {
		return nil, fmt.Errorf("failed to generate HTML: %w", err)
	}

	// 4. PDF report, skipped on failure so the report still ships
	if err := fg.generatePDF(analysis, files); err != nil {
		logger.Warnw("Failed to generate PDF", "error", err)
	}

	// 5. Stylesheet stored alongside the report
	if css, err := fg.htmlBuilder.LoadStaticCSS(); err == nil {
		files.AssetFiles["styles.css"] = []byte(css)
	} else {
		logger.Warnw("Failed to load CSS styles", "error", err)
	}

	return files, nil
}

// generateJSONFiles emits the machine-readable artifacts
func (fg *FileGenerator) generateJSONFiles(analysis *models.SeasonAnalysis, files *GeneratedFiles) {
	data, _ := json.MarshalIndent(analysis, "", "  ")
	files.JSONFiles["analysis.json"] = data
	logger.Debugw("Generated analysis JSON", "bytes", len(data))

	points := make([]phenology.CumulativePoint, len(analysis.Records))
	for i, rec := range analysis.Records {
		points[i] = phenology.CumulativePoint{Date: rec.Date, CumulativeGDD: rec.CumulativeGDD}
	}
	data, _ = json.MarshalIndent(points, "", "  ")
	files.JSONFiles["cumulative_series.json"] = data

	data, _ = json.MarshalIndent(analysis.Milestones, "", "  ")
	files.JSONFiles["milestones.json"] = data
}

// generateHTML runs the markdown through placeholder substitution and the
// full page template
func (fg *FileGenerator) generateHTML(analysis *models.SeasonAnalysis, markdownContent string, snippets []charts.ChartSnippet, files *GeneratedFiles) error {
	chartData := fg.htmlBuilder.GenerateChartData(snippets)

	processedContent, err := fg.htmlBuilder.ProcessMarkdownWithPlaceholders(markdownContent, chartData)
	if err != nil {
		return fmt.Errorf("failed to process markdown: %w", err)
	}

	html, err := fg.htmlBuilder.BuildCompleteHTML(processedContent, analysis, files.FolderPath)
	if err != nil {
		return err
	}

	files.HTMLContent = html
	logger.Debugw("Generated HTML report", "bytes", len(files.HTMLContent))
	return nil
}

// generatePDF renders the print artifact, reusing the progress PNG when the
// chart generator managed to produce one
func (fg *FileGenerator) generatePDF(analysis *models.SeasonAnalysis, files *GeneratedFiles) error {
	chartPath := ""
	for _, p := range files.ChartFiles {
		base := filepath.Base(p)
		if base == "gdd_progress.png" || base == "gdd_projection.png" {
			chartPath = p
			break
		}
	}

	pdfData, err := fg.pdfBuilder.BuildPDF(analysis, chartPath)
	if err != nil {
		return err
	}

	files.PDFContent = pdfData
	logger.Debugw("Generated PDF report", "bytes", len(pdfData))
	return nil
}
