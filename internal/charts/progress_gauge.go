package charts

import (
	"bytes"
	"fmt"
	"math"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"
	"github.com/go-echarts/go-echarts/v2/types"

	"cropcast/internal/models"
)

// generateProgressGaugeSnippet builds the overall-progress gauge, cumulative
// GDD over the harvest threshold as a percentage.
func (cg *ChartGenerator) generateProgressGaugeSnippet(analysis *models.SeasonAnalysis) (ChartSnippet, error) {
	if analysis == nil {
		return ChartSnippet{}, fmt.Errorf("no analysis to chart")
	}

	id := "chart-progress-gauge"
	title := "Overall Season Progress"
	percent := math.Round(analysis.Status.OverallProgress*1000) / 10

	gauge := charts.NewGauge()
	gauge.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{
			ChartID: id,
			Theme:   types.ThemeWesteros,
			Width:   "400px",
			Height:  "300px",
		}),
		charts.WithTitleOpts(opts.Title{
			Title: title,
		}),
	)

	gauge.AddSeries("Season", []opts.GaugeData{
		{Name: "Progress %", Value: percent},
	})

	var buf bytes.Buffer
	if err := gauge.Render(&buf); err != nil {
		return ChartSnippet{}, fmt.Errorf("failed to render progress gauge: %w", err)
	}

	return ChartSnippet{ID: id, Title: title, HTML: buf.String()}, nil
}
