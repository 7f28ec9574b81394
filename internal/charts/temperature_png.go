package charts

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"cropcast/internal/models"
)

// generateTemperaturePNG renders the daily Tmax/Tmin chart to a PNG file.
func (cg *ChartGenerator) generateTemperaturePNG(analysis *models.SeasonAnalysis) (string, error) {
	if analysis == nil || len(analysis.Series) == 0 {
		return "", fmt.Errorf("no temperature series to chart")
	}

	filename := filepath.Join(cg.outputDir, "temperature.png")

	dates := make([]time.Time, len(analysis.Series))
	tMax := make([]float64, len(analysis.Series))
	tMin := make([]float64, len(analysis.Series))
	for i, day := range analysis.Series {
		dates[i] = day.Date
		tMax[i] = day.TMax
		tMin[i] = day.TMin
	}

	graph := chart.Chart{
		Title: fmt.Sprintf("Daily Temperature – %s", analysis.Location.DisplayName()),
		TitleStyle: chart.Style{
			FontSize:  14,
			FontColor: drawing.ColorBlack,
		},
		Background: chart.Style{
			Padding: chart.Box{
				Top:    40,
				Left:   70,
				Right:  20,
				Bottom: 50,
			},
		},
		Height: 300,
		Width:  800,
		XAxis: chart.XAxis{
			Name: "Date",
			NameStyle: chart.Style{
				FontSize: 12,
			},
			Style: chart.Style{
				FontSize: 9,
			},
			ValueFormatter: func(v interface{}) string {
				if t, ok := v.(time.Time); ok {
					return t.Format("Jan 02")
				}
				return ""
			},
			Ticks: dateTicks(dates),
		},
		YAxis: chart.YAxis{
			Name: "Temperature (°C)",
			NameStyle: chart.Style{
				FontSize: 12,
			},
			Style: chart.Style{
				FontSize: 10,
			},
		},
		Series: []chart.Series{
			chart.TimeSeries{
				Name: "Tmax",
				Style: chart.Style{
					StrokeColor: tMaxPNGColor,
					StrokeWidth: 1.5,
				},
				XValues: dates,
				YValues: tMax,
			},
			chart.TimeSeries{
				Name: "Tmin",
				Style: chart.Style{
					StrokeColor: tMinPNGColor,
					StrokeWidth: 1.5,
				},
				XValues: dates,
				YValues: tMin,
			},
		},
	}

	f, err := os.Create(filename)
	if err != nil {
		return "", fmt.Errorf("failed to create temperature chart file: %w", err)
	}
	defer f.Close()

	if err := graph.Render(chart.PNG, f); err != nil {
		return "", fmt.Errorf("failed to render temperature chart: %w", err)
	}

	return filename, nil
}

// dateTicks samples the series down to a handful of x-axis labels so long
// seasons stay readable.
func dateTicks(dates []time.Time) []chart.Tick {
	if len(dates) == 0 {
		return nil
	}

	step := len(dates) / 8
	if step < 1 {
		step = 1
	}

	var ticks []chart.Tick
	for i := 0; i < len(dates); i += step {
		ticks = append(ticks, chart.Tick{
			Value: chart.TimeToFloat64(dates[i]),
			Label: dates[i].Format("Jan 02"),
		})
	}

	last := dates[len(dates)-1]
	if ticks[len(ticks)-1].Value != chart.TimeToFloat64(last) {
		ticks = append(ticks, chart.Tick{
			Value: chart.TimeToFloat64(last),
			Label: last.Format("Jan 02"),
		})
	}

	return ticks
}
