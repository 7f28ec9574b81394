package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/sashabaranov/go-openai"

	"cropcast/internal/logger"
	"cropcast/internal/models"
)

const systemPrompt = "You are an experienced agronomist advising growers on crop development. " +
	"You are given the results of a growing degree day (GDD) analysis for one field and crop. " +
	"Write a short advisory in markdown: summarize where the crop stands, point out thermal " +
	"risks visible in the data, and give practical next steps for the coming weeks. " +
	"Base every statement on the numbers provided. Do not invent weather that is not in the data."

// OpenAIClient generates the optional agronomist advisory for a report
type OpenAIClient struct {
	client *openai.Client
	model  string
}

// NewOpenAIClient creates a new OpenAI client
func NewOpenAIClient(apiKey, model string) *OpenAIClient {
	return &OpenAIClient{
		client: openai.NewClient(apiKey),
		model:  model,
	}
}

// GenerateAdvisory produces an advisory note from a completed season analysis
func (c *OpenAIClient) GenerateAdvisory(ctx context.Context, analysis *models.SeasonAnalysis) (string, error) {
	if c.client == nil {
		return "", fmt.Errorf("OpenAI client not initialized")
	}
	if analysis == nil {
		return "", fmt.Errorf("analysis is required for advisory generation")
	}

	logger.Debugw("Generating advisory", "crop", analysis.CropID, "mode", analysis.Mode)

	prompt, err := buildAdvisoryPrompt(analysis)
	if err != nil {
		return "", fmt.Errorf("failed to build advisory prompt: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, 60*time.Second)
	defer cancel()

	resp, err := c.client.CreateChatCompletion(
		ctx,
		openai.ChatCompletionRequest{
			Model: c.model,
			Messages: []openai.ChatCompletionMessage{
				{
					Role:    openai.ChatMessageRoleSystem,
					Content: systemPrompt,
				},
				{
					Role:    openai.ChatMessageRoleUser,
					Content: prompt,
				},
			},
			MaxTokens:   1500,
			Temperature: 0.3,
		},
	)

	if err != nil {
		return "", fmt.Errorf("OpenAI API error: %w", err)
	}

	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("no response from OpenAI")
	}

	advisory := resp.Choices[0].Message.Content
	logger.Debugw("Generated advisory", "chars", len(advisory))

	return advisory, nil
}

// advisorySummary is the trimmed analysis view handed to the model. The full
// daily records stay out of the prompt, only the recent tail goes in.
type advisorySummary struct {
	Mode         models.AnalysisMode          `json:"mode"`
	Crop         string                       `json:"crop"`
	Location     string                       `json:"location"`
	PlantingDate string                       `json:"planting_date"`
	BaseTemp     float64                      `json:"base_temp_c"`
	UpperTemp    float64                      `json:"upper_temp_c"`
	Status       phenologyStatus              `json:"status"`
	Milestones   []advisoryMilestone          `json:"milestones"`
	Stats        models.SeriesStats           `json:"stats"`
	RecentDays   []phenologyDay               `json:"recent_days"`
}

type phenologyStatus struct {
	Stage           string  `json:"stage"`
	CumulativeGDD   float64 `json:"cumulative_gdd"`
	StageProgress   float64 `json:"stage_progress"`
	OverallProgress float64 `json:"overall_progress"`
	IsFinalStage    bool    `json:"is_final_stage"`
}

type advisoryMilestone struct {
	Stage     string  `json:"stage"`
	Threshold float64 `json:"threshold"`
	Date      string  `json:"date,omitempty"`
	Reached   bool    `json:"reached"`
}

type phenologyDay struct {
	Date string  `json:"date"`
	TMax float64 `json:"tmax"`
	TMin float64 `json:"tmin"`
	GDD  float64 `json:"gdd"`
}

func buildAdvisoryPrompt(analysis *models.SeasonAnalysis) (string, error) {
	summary := advisorySummary{
		Mode:         analysis.Mode,
		Crop:         analysis.CropLabel,
		Location:     analysis.Location.DisplayName(),
		PlantingDate: analysis.PlantingDate.Format("2006-01-02"),
		BaseTemp:     analysis.Profile.BaseTemp,
		UpperTemp:    analysis.Profile.UpperTemp,
		Status: phenologyStatus{
			Stage:           analysis.Status.StageName,
			CumulativeGDD:   analysis.Status.CumulativeGDD,
			StageProgress:   analysis.Status.StageProgress,
			OverallProgress: analysis.Status.OverallProgress,
			IsFinalStage:    analysis.Status.IsFinalStage,
		},
		Stats: analysis.Stats,
	}

	for _, m := range analysis.Milestones {
		am := advisoryMilestone{
			Stage:     m.StageName,
			Threshold: m.Threshold,
			Reached:   m.Reached,
		}
		if m.Reached {
			am.Date = m.Date.Format("2006-01-02")
		}
		summary.Milestones = append(summary.Milestones, am)
	}

	// Last two weeks of the series, enough for trend talk without
	// blowing up the prompt.
	records := analysis.Records
	if len(records) > 14 {
		records = records[len(records)-14:]
	}
	for _, r := range records {
		day := phenologyDay{
			Date: r.Date.Format("2006-01-02"),
			GDD:  r.GDD,
		}
		for _, d := range analysis.Series {
			if d.Date.Equal(r.Date) {
				day.TMax = d.TMax
				day.TMin = d.TMin
				break
			}
		}
		summary.RecentDays = append(summary.RecentDays, day)
	}

	jsonData, err := json.MarshalIndent(summary, "", "  ")
	if err != nil {
		return "", err
	}

	prompt := fmt.Sprintf(`## GDD Analysis Results (as of %s)

`+"```json\n%s\n```"+`

### Instructions:
Write the advisory with these sections:
1. Where the crop stands now (stage, progress, accumulated GDD)
2. Thermal conditions worth attention (heat near the upper cutoff, cold days contributing nothing)
3. What to expect next (upcoming milestone and a rough timeframe from the recent daily GDD pace)
4. Practical recommendations for the grower

Keep it under 300 words. Plain markdown, no top-level heading.`,
		analysis.GeneratedAt.Format("2006-01-02"), string(jsonData))

	return prompt, nil
}
