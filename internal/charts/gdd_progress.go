package charts

import (
	"bytes"
	"fmt"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"
	"github.com/go-echarts/go-echarts/v2/types"

	"cropcast/internal/models"
)

// generateProgressSnippet builds the cumulative-GDD line chart for a season
// in the ground: the measured accumulation against the ideal accumulation,
// with one dotted threshold line per growth stage.
func (cg *ChartGenerator) generateProgressSnippet(analysis *models.SeasonAnalysis) (ChartSnippet, error) {
	if analysis == nil || len(analysis.Records) == 0 {
		return ChartSnippet{}, fmt.Errorf("no thermal records to chart")
	}

	id := "chart-gdd-progress"
	title := fmt.Sprintf("Cumulative GDD Progress – %s (%s)", analysis.CropLabel, analysis.Location.DisplayName())
	days := len(analysis.Records)

	actual := make([]float64, days)
	for i, r := range analysis.Records {
		actual[i] = r.CumulativeGDD
	}

	// The ideal line assumes every day delivers the profile maximum.
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
		AddSeries("Actual GDD", lineData(actual),
			charts.WithLineStyleOpts(opts.LineStyle{Color: actualLineColor, Width: 2}))

	for _, stage := range analysis.Profile.Stages {
		line.AddSeries(stageLabel(stage.Name), constantLine(stage.Threshold, days),
			charts.WithLineStyleOpts(opts.LineStyle{Color: stageColor(stage.Name), Type: "dotted", Width: 1}))
	}

	var buf bytes.Buffer
	if err := line.Render(&buf); err != nil {
		return ChartSnippet{}, fmt.Errorf("failed to render progress chart: %w", err)
	}

	return ChartSnippet{ID: id, Title: title, HTML: buf.String()}, nil
}
