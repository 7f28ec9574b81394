package charts

import (
	"bytes"
	"fmt"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"
	"github.com/go-echarts/go-echarts/v2/types"

	"cropcast/internal/models"
)

// generateTemperatureSnippet builds the daily Tmax/Tmin line chart over the
// analyzed window.
func (cg *ChartGenerator) generateTemperatureSnippet(analysis *models.SeasonAnalysis) (ChartSnippet, error) {
	if analysis == nil || len(analysis.Series) == 0 {
		return ChartSnippet{}, fmt.Errorf("no temperature series to chart")
	}

	id := "chart-temperature"
	title := fmt.Sprintf("Daily Temperature – %s", analysis.Location.DisplayName())

	dates := make([]string, len(analysis.Series))
	tMax := make([]float64, len(analysis.Series))
	tMin := make([]float64, len(analysis.Series))
	for i, day := range analysis.Series {
		dates[i] = day.Date.Format("2006-01-02")
		tMax[i] = day.TMax
		tMin[i] = day.TMin
	}

	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{
			ChartID: id,
			Theme:   types.ThemeWesteros,
			Width:   "800px",
			Height:  "300px",
		}),
		charts.WithTitleOpts(opts.Title{
			Title: title,
		}),
		charts.WithXAxisOpts(opts.XAxis{
			Name: "Date",
		}),
		charts.WithYAxisOpts(opts.YAxis{
			Name: "Temperature (°C)",
		}),
		charts.WithTooltipOpts(opts.Tooltip{
			Show:    true,
			Trigger: "axis",
		}),
		charts.WithLegendOpts(opts.Legend{
			Show: true,
		}),
	)

	line.SetXAxis(dates).
		AddSeries("Tmax", lineData(tMax),
			charts.WithLineStyleOpts(opts.LineStyle{Color: tMaxLineColor, Width: 1.5})).
		AddSeries("Tmin", lineData(tMin),
			charts.WithLineStyleOpts(opts.LineStyle{Color: tMinLineColor, Width: 1.5}))

	var buf bytes.Buffer
	if err := line.Render(&buf); err != nil {
		return ChartSnippet{}, fmt.Errorf("failed to render temperature chart: %w", err)
	}

	return ChartSnippet{ID: id, Title: title, HTML: buf.String()}, nil
}
