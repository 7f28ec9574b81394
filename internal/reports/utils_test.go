package reports

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestToTitleCase(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"hello world", "Hello World"},
		{"maize dent", "Maize Dent"},
		{"UPPER CASE", "Upper Case"},
		{"", ""},
		{"single", "Single"},
		{"  padded  words  ", "Padded Words"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, ToTitleCase(tt.input), "input %q", tt.input)
	}
}

func TestStageLabel(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"initial", "Initial"},
		{"mid_season", "Mid Season"},
		{"development", "Development"},
		{"late_season_stress", "Late Season Stress"},
		{"", ""},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, StageLabel(tt.input), "input %q", tt.input)
	}
}
