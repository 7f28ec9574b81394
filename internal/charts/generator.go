package charts

import (
	"cropcast/internal/logger"
	"cropcast/internal/models"
)

// ChartGenerator handles creation of report chart snippets and static chart
// images.
type ChartGenerator struct {
	outputDir string
}

// NewChartGenerator creates a new chart generator writing PNG files into
// outputDir.
func NewChartGenerator(outputDir string) *ChartGenerator {
	return &ChartGenerator{
		outputDir: outputDir,
	}
}

// GenerateSnippets builds the interactive chart fragments for the HTML
// report. A chart that fails to render is logged and skipped so the report
// still ships.
func (cg *ChartGenerator) GenerateSnippets(analysis *models.SeasonAnalysis) []ChartSnippet {
	var snippets []ChartSnippet

	if analysis.Mode == models.ModePlan {
		if snippet, err := cg.generateProjectionSnippet(analysis); err == nil {
			snippets = append(snippets, snippet)
		} else {
			logger.Warnw("Failed to generate projection chart snippet", "error", err)
		}
	} else {
		if snippet, err := cg.generateProgressSnippet(analysis); err == nil {
			snippets = append(snippets, snippet)
		} else {
			logger.Warnw("Failed to generate progress chart snippet", "error", err)
		}
	}

	if snippet, err := cg.generateTemperatureSnippet(analysis); err == nil {
		snippets = append(snippets, snippet)
	} else {
		logger.Warnw("Failed to generate temperature chart snippet", "error", err)
	}

	if analysis.Mode == models.ModeCheck {
		if snippet, err := cg.generateProgressGaugeSnippet(analysis); err == nil {
			snippets = append(snippets, snippet)
		} else {
			logger.Warnw("Failed to generate progress gauge snippet", "error", err)
		}
	}

	return snippets
}

// GeneratePNGs renders the static chart images for storage and the PDF.
// Returns the paths of the files actually written.
func (cg *ChartGenerator) GeneratePNGs(analysis *models.SeasonAnalysis) []string {
	var chartFiles []string

	if file, err := cg.generateProgressPNG(analysis); err == nil {
		chartFiles = append(chartFiles, file)
	} else {
		logger.Warnw("Failed to render progress chart PNG", "error", err)
	}

	if file, err := cg.generateTemperaturePNG(analysis); err == nil {
		chartFiles = append(chartFiles, file)
	} else {
		logger.Warnw("Failed to render temperature chart PNG", "error", err)
	}

	return chartFiles
}
