package charts

import (
	"bytes"
	"fmt"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"
	"github.com/go-echarts/go-echarts/v2/types"

	"cropcast/internal/models"
	"cropcast/internal/phenology"
)

// generateProjectionSnippet builds the plan-mode chart: climate-model GDD
// accumulation over the projection horizon. Threshold lines carry the
// estimated crossing date, or the horizon length when the threshold stays
// out of reach.
func (cg *ChartGenerator) generateProjectionSnippet(analysis *models.SeasonAnalysis) (ChartSnippet, error) {
	if analysis == nil || len(analysis.Records) == 0 {
		return ChartSnippet{}, fmt.Errorf("no thermal records to chart")
	}

	id := "chart-gdd-projection"
	title := fmt.Sprintf("Projected GDD – %s (%s)", analysis.CropLabel, analysis.Location.DisplayName())
	days := len(analysis.Records)

	projected := make([]float64, days)
	for i, r := range analysis.Records {
		projected[i] = r.CumulativeGDD
	}

	upperDaily := analysis.Profile.MaxDailyGDD()
	ideal := make([]float64, days)
	for i := range ideal {
		ideal[i] = upperDaily * float64(i+1)
	}

	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{
			ChartID: id,
			Theme:   types.ThemeWesteros,
			Width:   "800px",
			Height:  "400px",
		}),
		charts.WithTitleOpts(opts.Title{
			Title: title,
		}),
		charts.WithXAxisOpts(opts.XAxis{
			Name: "Days since planting",
		}),
		charts.WithYAxisOpts(opts.YAxis{
			Name: "Cumulative GDD",
		}),
		charts.WithTooltipOpts(opts.Tooltip{
			Show:    true,
			Trigger: "axis",
		}),
		charts.WithLegendOpts(opts.Legend{
			Show: true,
		}),
	)

	line.SetXAxis(dayLabels(days)).
		AddSeries("Ideal GDD", lineData(ideal),
			charts.WithLineStyleOpts(opts.LineStyle{Color: idealLineColor, Type: "dashed", Width: 1.5})).
		AddSeries("Projected GDD (Climate Model)", lineData(projected),
			charts.WithLineStyleOpts(opts.LineStyle{Color: projectedLineColor, Width: 2}))

	for _, stage := range analysis.Profile.Stages {
		line.AddSeries(milestoneLabel(stage, analysis.Milestones, days), constantLine(stage.Threshold, days),
			charts.WithLineStyleOpts(opts.LineStyle{Color: stageColor(stage.Name), Type: "dotted", Width: 1}))
	}

	var buf bytes.Buffer
	if err := line.Render(&buf); err != nil {
		return ChartSnippet{}, fmt.Errorf("failed to render projection chart: %w", err)
	}

	return ChartSnippet{ID: id, Title: title, HTML: buf.String()}, nil
}

// milestoneLabel annotates a stage with its estimated crossing date, or with
// the horizon length when the projection never reaches the threshold.
func milestoneLabel(stage phenology.Stage, milestones []phenology.Milestone, horizonDays int) string {
	label := stageLabel(stage.Name)
	for _, m := range milestones {
		if m.StageName != stage.Name {
			continue
		}
		if m.Reached {
			return fmt.Sprintf("%s (%s)", label, m.Date.Format("2006-01-02"))
		}
		break
	}
	return fmt.Sprintf("%s (> %dd)", label, horizonDays)
}
