package reports

import (
	"fmt"
	"strings"

	"cropcast/internal/models"
	"cropcast/internal/phenology"
)

// Chart placeholders the markdown carries until the HTML pass substitutes
// the rendered snippets.
const (
	progressChartPlaceholder    = "{{.ProgressChart}}"
	temperatureChartPlaceholder = "{{.TemperatureChart}}"
	progressGaugePlaceholder    = "{{.ProgressGauge}}"
)

// MarkdownBuilder renders a season analysis into the report markdown
type MarkdownBuilder struct{}

// NewMarkdownBuilder creates a markdown builder
func NewMarkdownBuilder() *MarkdownBuilder {
	return &MarkdownBuilder{}
}

// BuildReport renders the complete report markdown for one analysis
func (m *MarkdownBuilder) BuildReport(analysis *models.SeasonAnalysis) string {
	var b strings.Builder

	b.WriteString("# GDD Crop Phenology Report\n\n")
	fmt.Fprintf(&b, "Generated: %s\n\n", analysis.GeneratedAt.Format("2006-01-02 15:04 UTC"))

	m.writeLocation(&b, analysis)
	m.writeCropInfo(&b, analysis)

	if analysis.Mode == models.ModePlan {
		m.writeProjectedStages(&b, analysis)
	} else {
		m.writeResults(&b, analysis)
	}

	b.WriteString(progressChartPlaceholder + "\n\n")
	if analysis.Mode == models.ModeCheck {
		b.WriteString(progressGaugePlaceholder + "\n\n")
	}
	b.WriteString(temperatureChartPlaceholder + "\n\n")

	m.writeMilestoneTable(&b, analysis)
	m.writeSeriesStats(&b, analysis)

	if analysis.Advisory != "" {
		b.WriteString("## Agronomist Advisory\n\n")
		b.WriteString(strings.TrimSpace(analysis.Advisory))
		b.WriteString("\n\n")
	}

	if len(analysis.Advisories) > 0 {
		m.writeAdvisoryFeed(&b, analysis.Advisories)
	}

	b.WriteString("---\n\n")
	b.WriteString("*Data source: Open-Meteo (open-meteo.com) | Based on FAO56rev GDD framework*\n")

	return b.String()
}

func (m *MarkdownBuilder) writeLocation(b *strings.Builder, analysis *models.SeasonAnalysis) {
	b.WriteString("## Location\n\n")
	fmt.Fprintf(b, "- Name: %s\n", analysis.Location.DisplayName())
	fmt.Fprintf(b, "- Coordinates: %.4f, %.4f\n\n", analysis.Location.Latitude, analysis.Location.Longitude)
}

func (m *MarkdownBuilder) writeCropInfo(b *strings.Builder, analysis *models.SeasonAnalysis) {
	b.WriteString("## Crop Information\n\n")
	fmt.Fprintf(b, "- Crop: %s\n", analysis.CropLabel)
	fmt.Fprintf(b, "- Tbase: %.1f C | Tupper: %.1f C\n", analysis.Profile.BaseTemp, analysis.Profile.UpperTemp)
	fmt.Fprintf(b, "- Planting Date: %s\n\n", analysis.PlantingDate.Format("2006-01-02"))
}

// writeResults renders the check-mode status block
func (m *MarkdownBuilder) writeResults(b *strings.Builder, analysis *models.SeasonAnalysis) {
	b.WriteString("## Results\n\n")
	fmt.Fprintf(b, "- Date: %s\n", analysis.AsOfDate.Format("2006-01-02"))
	fmt.Fprintf(b, "- Cumulative GDD: %.2f\n", analysis.Status.CumulativeGDD)
	fmt.Fprintf(b, "- Current Stage: %s\n", StageLabel(analysis.Status.StageName))
	fmt.Fprintf(b, "- Stage Progress: %.1f%%\n", analysis.Status.StageProgress*100)
	fmt.Fprintf(b, "- Overall Progress: %.1f%%\n", analysis.Status.OverallProgress*100)

	if !analysis.Status.IsFinalStage {
		if days, ok := EstimateRemainingDays(analysis.Records, analysis.Profile, TrailingWindowDays); ok {
			fmt.Fprintf(b, "- Estimated Days to Harvest: %d (at the recent %d-day pace)\n",
				days, TrailingWindowDays)
		}
	}
	b.WriteString("\n")
}

// writeProjectedStages renders the plan-mode stage schedule
func (m *MarkdownBuilder) writeProjectedStages(b *strings.Builder, analysis *models.SeasonAnalysis) {
	b.WriteString("## Projected Growth Stages\n\n")
	for _, ms := range analysis.Milestones {
		label := StageLabel(ms.StageName)
		if ms.Reached {
			days := ms.DaysFrom(analysis.PlantingDate)
			fmt.Fprintf(b, "- %s: %s (%d days)\n", label, ms.Date.Format("2006-01-02"), days)
		} else {
			fmt.Fprintf(b, "- %s: beyond projection range\n", label)
		}
	}
	b.WriteString("\n")
}

func (m *MarkdownBuilder) writeMilestoneTable(b *strings.Builder, analysis *models.SeasonAnalysis) {
	b.WriteString("## Growth Stage Milestones\n\n")
	b.WriteString("| Stage | Threshold (GDD) | Date | Status |\n")
	b.WriteString("|-------|-----------------|------|--------|\n")

	for _, ms := range analysis.Milestones {
		fmt.Fprintf(b, "| %s | %.0f | %s | %s |\n",
			StageLabel(ms.StageName), ms.Threshold, milestoneDate(ms), milestoneStatus(ms))
	}
	b.WriteString("\n")
}

func milestoneDate(ms phenology.Milestone) string {
	if !ms.Reached {
		return "-"
	}
	return ms.Date.Format("2006-01-02")
}

func milestoneStatus(ms phenology.Milestone) string {
	switch {
	case ms.ReachedBeforeStart:
		return "Reached before window"
	case ms.Reached && ms.Provenance == phenology.ProvenanceProjected:
		return "Projected"
	case ms.Reached:
		return "Reached"
	default:
		return "Not reached"
	}
}

func (m *MarkdownBuilder) writeSeriesStats(b *strings.Builder, analysis *models.SeasonAnalysis) {
	stats := analysis.Stats
	if stats.TotalDays == 0 {
		return
	}

	b.WriteString("## Temperature Series Statistics\n\n")
	b.WriteString("| Metric | Value |\n")
	b.WriteString("|--------|-------|\n")
	fmt.Fprintf(b, "| Days analyzed | %d |\n", stats.TotalDays)
	fmt.Fprintf(b, "| Mean daily GDD | %.2f |\n", stats.MeanDailyGDD)
	fmt.Fprintf(b, "| Std dev daily GDD | %.2f |\n", stats.StdDevDailyGDD)
	fmt.Fprintf(b, "| Mean Tmax | %.1f C |\n", stats.MeanTMax)
	fmt.Fprintf(b, "| Mean Tmin | %.1f C |\n", stats.MeanTMin)
	fmt.Fprintf(b, "| Hottest day | %s (%.1f C) |\n", stats.HottestDay.Format("2006-01-02"), stats.HottestTMax)
	fmt.Fprintf(b, "| Coldest day | %s (%.1f C) |\n", stats.ColdestDay.Format("2006-01-02"), stats.ColdestTMin)
	fmt.Fprintf(b, "| Zero-GDD days | %d |\n", stats.ZeroGDDDays)
	b.WriteString("\n")
}

func (m *MarkdownBuilder) writeAdvisoryFeed(b *strings.Builder, advisories []models.Advisory) {
	b.WriteString("## Recent Agromet Bulletins\n\n")
	for _, a := range advisories {
		if a.Link != "" {
			fmt.Fprintf(b, "- [%s](%s) - %s\n", a.Title, a.Link, a.Published.Format("2006-01-02"))
		} else {
			fmt.Fprintf(b, "- %s - %s\n", a.Title, a.Published.Format("2006-01-02"))
		}
	}
	b.WriteString("\n")
}
