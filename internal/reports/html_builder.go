package reports

import (
	"bytes"
	"fmt"
	"html/template"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer/html"

	"cropcast/internal/charts"
	"cropcast/internal/config"
	"cropcast/internal/logger"
	"cropcast/internal/models"
)

// HTMLBuilder handles HTML generation with goldmark
type HTMLBuilder struct {
	templateLoader *TemplateLoader
	goldmark       goldmark.Markdown
}

// NewHTMLBuilder creates an HTML builder
func NewHTMLBuilder() *HTMLBuilder {
	md := goldmark.New(
		goldmark.WithExtensions(extension.GFM),
		goldmark.WithParserOptions(
			parser.WithAutoHeadingID(),
		),
		goldmark.WithRendererOptions(
			html.WithHardWraps(),
			html.WithUnsafe(), // Allow raw HTML in markdown
		),
	)

	return &HTMLBuilder{
		templateLoader: NewTemplateLoader(),
		goldmark:       md,
	}
}

// TemplateData represents the data structure for the HTML template
type TemplateData struct {
	Title        string
	Date         string
	GeneratedAt  string
	Content      template.HTML
	CSSFilePath  string
	Version      string
	CropLabel    string
	LocationName string
	ModeLabel    string
	SummaryCards []SummaryCard
}

// SummaryCard is one headline figure shown above the report body
type SummaryCard struct {
	Label string
	Value string
}

// ChartTemplateData represents chart data for template substitution
type ChartTemplateData struct {
	ProgressChart    template.HTML
	TemperatureChart template.HTML
	ProgressGauge    template.HTML
}

// ConvertMarkdownToHTML converts markdown to HTML using goldmark
func (h *HTMLBuilder) ConvertMarkdownToHTML(markdownContent string) (string, error) {
	var buf bytes.Buffer
	if err := h.goldmark.Convert([]byte(markdownContent), &buf); err != nil {
		return "", fmt.Errorf("failed to convert markdown: %w", err)
	}
	return buf.String(), nil
}

// LoadStaticCSS returns the CSS content stored alongside each report
func (h *HTMLBuilder) LoadStaticCSS() (string, error) {
	cssContent, err := h.templateLoader.LoadCSSStyles()
	if err != nil {
		return "", fmt.Errorf("failed to load CSS: %w", err)
	}
	return cssContent, nil
}

// getCSSFilePath returns the stylesheet path for the deployment mode
func (h *HTMLBuilder) getCSSFilePath(folderPath string) string {
	if folderPath == "" {
		// Local preview, relative path
		return "styles.css"
	}
	// Stored report, served through the files endpoint
	return "/files/" + folderPath + "/styles.css"
}

// GenerateChartData maps rendered chart snippets into template slots. The
// progress and projection charts share one slot since a report carries one
// of the two depending on mode.
func (h *HTMLBuilder) GenerateChartData(snippets []charts.ChartSnippet) *ChartTemplateData {
	chartData := &ChartTemplateData{
		ProgressChart:    template.HTML(""),
		TemperatureChart: template.HTML(""),
		ProgressGauge:    template.HTML(""),
	}

	for _, snippet := range snippets {
		wrapped := template.HTML(fmt.Sprintf(`<div class="chart-container">%s</div>`, snippet.HTML))
		switch snippet.ID {
		case "chart-gdd-progress", "chart-gdd-projection":
			chartData.ProgressChart = wrapped
		case "chart-temperature":
			chartData.TemperatureChart = wrapped
		case "chart-progress-gauge":
			chartData.ProgressGauge = wrapped
		}
	}

	return chartData
}

// ProcessMarkdownWithPlaceholders converts markdown to HTML and substitutes
// the chart placeholders carried through from the markdown builder.
func (h *HTMLBuilder) ProcessMarkdownWithPlaceholders(markdownContent string, chartData *ChartTemplateData) (string, error) {
	htmlContent, err := h.ConvertMarkdownToHTML(markdownContent)
	if err != nil {
		return "", err
	}

	tmpl, err := template.New("content").Parse(htmlContent)
	if err != nil {
		return "", fmt.Errorf("failed to parse content template: %w", err)
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, chartData); err != nil {
		return "", fmt.Errorf("failed to execute content template: %w", err)
	}

	return buf.String(), nil
}

// BuildCompleteHTML creates a complete HTML document with template substitution
func (h *HTMLBuilder) BuildCompleteHTML(processedHTMLContent string, analysis *models.SeasonAnalysis, folderPath string) (string, error) {
	logger.Debugw("Building complete HTML", "content_bytes", len(processedHTMLContent))

	templateData := TemplateData{
		Title:        fmt.Sprintf("GDD Season Report - %s", analysis.CropLabel),
		Date:         analysis.GeneratedAt.Format("2006-01-02"),
		GeneratedAt:  analysis.GeneratedAt.Format("2006-01-02 15:04:05 UTC"),
		Content:      template.HTML(processedHTMLContent),
		CSSFilePath:  h.getCSSFilePath(folderPath),
		Version:      config.GetVersion(),
		CropLabel:    analysis.CropLabel,
		LocationName: analysis.Location.DisplayName(),
		ModeLabel:    modeLabel(analysis.Mode),
		SummaryCards: buildSummaryCards(analysis),
	}

	finalHTML, err := h.executeTemplate(templateData)
	if err != nil {
		return "", fmt.Errorf("failed to execute template: %w", err)
	}

	logger.Debugw("Complete HTML built", "bytes", len(finalHTML))
	return finalHTML, nil
}

// executeTemplate executes the HTML template with the provided data
func (h *HTMLBuilder) executeTemplate(data TemplateData) (string, error) {
	htmlTemplate, err := h.templateLoader.LoadHTMLTemplate()
	if err != nil {
		return "", fmt.Errorf("failed to load HTML template: %w", err)
	}

	tmpl, err := template.New("report").Parse(htmlTemplate)
	if err != nil {
		return "", fmt.Errorf("failed to parse template: %w", err)
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("failed to execute template: %w", err)
	}

	return buf.String(), nil
}

func modeLabel(mode models.AnalysisMode) string {
	if mode == models.ModePlan {
		return "Season Plan"
	}
	return "Season Check"
}

// buildSummaryCards picks the headline figures for the report top
func buildSummaryCards(analysis *models.SeasonAnalysis) []SummaryCard {
	if analysis.Mode == models.ModePlan {
		cards := []SummaryCard{
			{Label: "Planting Date", Value: analysis.PlantingDate.Format("2006-01-02")},
			{Label: "Projection Horizon", Value: fmt.Sprintf("%d days", analysis.HorizonDays)},
			{Label: "Projected GDD", Value: fmt.Sprintf("%.0f", analysis.CumulativeGDD())},
		}
		if harvest, ok := analysis.HarvestMilestone(); ok && harvest.Reached {
			cards = append(cards, SummaryCard{Label: "Projected Harvest", Value: harvest.Date.Format("2006-01-02")})
		} else {
			cards = append(cards, SummaryCard{Label: "Projected Harvest", Value: "beyond horizon"})
		}
		return cards
	}

	return []SummaryCard{
		{Label: "Current Stage", Value: StageLabel(analysis.Status.StageName)},
		{Label: "Cumulative GDD", Value: fmt.Sprintf("%.1f", analysis.Status.CumulativeGDD)},
		{Label: "Overall Progress", Value: fmt.Sprintf("%.1f%%", analysis.Status.OverallProgress*100)},
		{Label: "Days Analyzed", Value: fmt.Sprintf("%d", analysis.Stats.TotalDays)},
	}
}
