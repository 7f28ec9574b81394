package charts

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"cropcast/internal/models"
)

// stagePNGColors is the snippet palette expressed for the go-chart renderer.
var stagePNGColors = map[string]drawing.Color{
	"initial":     {R: 44, G: 160, B: 44, A: 255},
	"development": {R: 255, G: 127, B: 14, A: 255},
	"mid_season":  {R: 214, G: 39, B: 40, A: 255},
	"harvest":     {R: 148, G: 103, B: 189, A: 255},
}

var (
	actualPNGColor    = drawing.Color{R: 31, G: 119, B: 180, A: 255}
	projectedPNGColor = drawing.Color{R: 255, G: 127, B: 14, A: 255}
	idealPNGColor     = drawing.Color{R: 128, G: 128, B: 128, A: 255}
	tMaxPNGColor      = drawing.Color{R: 214, G: 39, B: 40, A: 255}
	tMinPNGColor      = drawing.Color{R: 31, G: 119, B: 180, A: 255}
)

func stagePNGColor(name string) drawing.Color {
	if c, ok := stagePNGColors[name]; ok {
		return c
	}
	return idealPNGColor
}

// generateProgressPNG renders the cumulative-GDD chart to a PNG file for
// storage and PDF embedding. Plan mode swaps the measured line for the
// climate-model projection.
func (cg *ChartGenerator) generateProgressPNG(analysis *models.SeasonAnalysis) (string, error) {
	if analysis == nil || len(analysis.Records) == 0 {
		return "", fmt.Errorf("no thermal records to chart")
	}

	name := "gdd_progress.png"
	seriesName := "Actual GDD"
	seriesColor := actualPNGColor
	title := fmt.Sprintf("Cumulative GDD Progress – %s (%s)", analysis.CropLabel, analysis.Location.DisplayName())
	if analysis.Mode == models.ModePlan {
		name = "gdd_projection.png"
		seriesName = "Projected GDD"
		seriesColor = projectedPNGColor
		title = fmt.Sprintf("Projected GDD – %s (%s)", analysis.CropLabel, analysis.Location.DisplayName())
	}
	filename := filepath.Join(cg.outputDir, name)

	days := len(analysis.Records)
	xValues := make([]float64, days)
	cumulative := make([]float64, days)
	ideal := make([]float64, days)
	upperDaily := analysis.Profile.MaxDailyGDD()
	for i, r := range analysis.Records {
		xValues[i] = float64(i + 1)
		cumulative[i] = r.CumulativeGDD
		ideal[i] = upperDaily * float64(i+1)
	}

	series := []chart.Series{
		chart.ContinuousSeries{
			Name: "Ideal GDD",
			Style: chart.Style{
				StrokeColor:     idealPNGColor,
				StrokeWidth:     1.5,
				StrokeDashArray: []float64{5, 5},
			},
			XValues: xValues,
			YValues: ideal,
		},
		chart.ContinuousSeries{
			Name: seriesName,
			Style: chart.Style{
				StrokeColor: seriesColor,
				StrokeWidth: 2,
			},
			XValues: xValues,
			YValues: cumulative,
		},
	}

	for _, stage := range analysis.Profile.Stages {
		series = append(series, chart.ContinuousSeries{
			Name: stageLabel(stage.Name),
			Style: chart.Style{
				StrokeColor:     stagePNGColor(stage.Name),
				StrokeWidth:     1,
				StrokeDashArray: []float64{3, 3},
			},
			XValues: []float64{xValues[0], xValues[days-1]},
			YValues: []float64{stage.Threshold, stage.Threshold},
		})
	}

	graph := chart.Chart{
		Title: title,
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
		Height: 400,
		Width:  800,
		XAxis: chart.XAxis{
			Name: "Days since planting",
			NameStyle: chart.Style{
				FontSize: 12,
			},
			Style: chart.Style{
				FontSize: 10,
			},
		},
		YAxis: chart.YAxis{
			Name: "Cumulative GDD",
			NameStyle: chart.Style{
				FontSize: 12,
			},
			Style: chart.Style{
				FontSize: 10,
			},
		},
		Series: series,
	}

	f, err := os.Create(filename)
	if err != nil {
		return "", fmt.Errorf("failed to create progress chart file: %w", err)
	}
	defer f.Close()

	if err := graph.Render(chart.PNG, f); err != nil {
		return "", fmt.Errorf("failed to render progress chart: %w", err)
	}

	return filename, nil
}
