package charts

import (
	"strconv"
	"strings"

	"github.com/go-echarts/go-echarts/v2/opts"
)

// ChartSnippet is an embeddable go-echarts fragment. HTML carries the
// rendered chart (container div plus init script) ready for substitution
// into the report template; ID matches the element id inside it.
type ChartSnippet struct {
	ID    string
	Title string
	HTML  string
}

// stageColors maps stage names to the palette the original dashboards used.
// Unknown stage names fall back to gray.
var stageColors = map[string]string{
	"initial":     "#2ca02c",
	"development": "#ff7f0e",
	"mid_season":  "#d62728",
	"harvest":     "#9467bd",
}

const (
	actualLineColor    = "#1f77b4"
	projectedLineColor = "#ff7f0e"
	tMaxLineColor      = "#d62728"
	tMinLineColor      = "#1f77b4"
	idealLineColor     = "gray"
)

func stageColor(name string) string {
	if c, ok := stageColors[name]; ok {
		return c
	}
	return "gray"
}

// stageLabel turns "mid_season" into "Mid Season" for legends and
// annotations.
func stageLabel(name string) string {
	words := strings.Split(name, "_")
	for i, w := range words {
		if w == "" {
			continue
		}
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}

// lineData wraps plain values for a go-echarts line series.
func lineData(values []float64) []opts.LineData {
	data := make([]opts.LineData, len(values))
	for i, v := range values {
		data[i] = opts.LineData{Value: v}
	}
	return data
}

// constantLine builds a flat series at the given level, one point per day,
// so a threshold renders as a horizontal line across the category axis.
func constantLine(level float64, days int) []opts.LineData {
	data := make([]opts.LineData, days)
	for i := range data {
		data[i] = opts.LineData{Value: level}
	}
	return data
}

// dayLabels numbers the category axis 1..days since planting.
func dayLabels(days int) []string {
	labels := make([]string, days)
	for i := range labels {
		labels[i] = strconv.Itoa(i + 1)
	}
	return labels
}
