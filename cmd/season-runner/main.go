package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"cropcast/internal/config"
	"cropcast/internal/crops"
	"cropcast/internal/fetchers"
	"cropcast/internal/llm"
	"cropcast/internal/logger"
	"cropcast/internal/mocks"
	"cropcast/internal/models"
	"cropcast/internal/observability"
	"cropcast/internal/reports"
)

// SeasonRunner runs one analysis and writes every artifact to a local
// directory, without cloud storage or the HTTP server.
type SeasonRunner struct {
	cfg      *config.Config
	service  *reports.Service
	markdown *reports.MarkdownBuilder
	files    *reports.FileGenerator
	outDir   string
}

func NewSeasonRunner(ctx context.Context, cfg *config.Config, outDir string) (*SeasonRunner, error) {
	catalog, err := crops.Open(ctx, cfg.CropsDBPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open crop catalog: %w", err)
	}

	var weather reports.WeatherSource = fetchers.NewWeatherFetcher()
	if cfg.MockupMode {
		weather = mocks.NewMockWeatherSource()
	}

	var advisor reports.AdvisoryClient
	if cfg.AdvisoryEnabled() {
		advisor = llm.NewOpenAIClient(cfg.OpenAIAPIKey, cfg.OpenAIModel)
	}

	return &SeasonRunner{
		cfg:      cfg,
		service:  reports.NewService(cfg, weather, catalog, advisor, nil, observability.NewMetrics(prometheus.NewRegistry())),
		markdown: reports.NewMarkdownBuilder(),
		files:    reports.NewFileGenerator(),
		outDir:   outDir,
	}, nil
}

// Run executes one analysis and writes the numbered artifacts.
func (sr *SeasonRunner) Run(ctx context.Context, req models.AnalysisRequest) error {
	startTime := time.Now()

	logger.Infof("Running %s analysis: %s at %q, planted %s",
		req.Mode, req.CropID, req.Location, req.PlantingDate)

	analysis, err := sr.service.Analyze(ctx, req)
	if err != nil {
		return fmt.Errorf("analysis failed: %w", err)
	}

	logger.Infof("Analysis complete: stage %q, cumulative GDD %.1f over %d days",
		analysis.Status.StageName, analysis.CumulativeGDD(), len(analysis.Records))

	markdownContent := sr.markdown.BuildReport(analysis)

	runDir := filepath.Join(sr.outDir, time.Now().Format("2006-01-02_15-04-05"))
	if err := os.MkdirAll(runDir, 0755); err != nil {
		return fmt.Errorf("failed to create run directory: %w", err)
	}

	generated, err := sr.files.GenerateAllFiles(analysis, markdownContent, runDir)
	if err != nil {
		return fmt.Errorf("report generation failed: %w", err)
	}

	artifacts := map[string][]byte{
		"01_analysis.json": generated.JSONFiles["analysis.json"],
		"02_report.md":     []byte(generated.MarkdownContent),
		"03_report.html":   []byte(generated.HTMLContent),
	}
	if len(generated.PDFContent) > 0 {
		artifacts["04_report.pdf"] = generated.PDFContent
	}

	for name, data := range artifacts {
		path := filepath.Join(runDir, name)
		if err := os.WriteFile(path, data, 0644); err != nil {
			return fmt.Errorf("failed to write %s: %w", name, err)
		}
		logger.Infof("Wrote %s (%d bytes)", path, len(data))
	}

	duration := time.Since(startTime)
	summary := map[string]interface{}{
		"status":         "success",
		"run_dir":        runDir,
		"duration_ms":    duration.Milliseconds(),
		"mode":           analysis.Mode,
		"crop":           analysis.CropID,
		"location":       analysis.Location.DisplayName(),
		"stage":          analysis.Status.StageName,
		"cumulative_gdd": analysis.CumulativeGDD(),
		"milestones":     len(analysis.Milestones),
	}
	summaryJSON, _ := json.MarshalIndent(summary, "", "  ")
	logger.Infof("Run summary:\n%s", summaryJSON)
	logger.Infof("Open in browser: file://%s", filepath.Join(mustGetWD(), runDir, "03_report.html"))

	return nil
}

func mustGetWD() string {
	wd, err := os.Getwd()
	if err != nil {
		return "/tmp"
	}
	return wd
}

func main() {
	mode := flag.String("mode", "check", "analysis mode: check or plan")
	crop := flag.String("crop", "maize_dent", "crop profile id ({crop}_{variant})")
	location := flag.String("location", "Ames, Iowa", "place to analyze")
	planting := flag.String("planting", "", "planting date YYYY-MM-DD (required)")
	asOf := flag.String("asof", "", "check-mode evaluation date YYYY-MM-DD (default: today)")
	outDir := flag.String("out", "reports", "output directory")
	flag.Parse()

	if *planting == "" {
		fmt.Fprintln(os.Stderr, "usage: season-runner -planting YYYY-MM-DD [-mode check|plan] [-crop id] [-location place]")
		os.Exit(2)
	}

	ctx := context.Background()

	cfg, err := config.Load(ctx)
	if err != nil {
		logger.Fatalf("Failed to load configuration: %v", err)
	}
	if err := logger.Init(cfg.LogLevel, cfg.LogFormat); err != nil {
		logger.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Sync()

	runner, err := NewSeasonRunner(ctx, cfg, *outDir)
	if err != nil {
		logger.Fatalf("Failed to set up runner: %v", err)
	}

	req := models.AnalysisRequest{
		Mode:         models.AnalysisMode(*mode),
		CropID:       *crop,
		Location:     *location,
		PlantingDate: *planting,
		AsOfDate:     *asOf,
	}
	if err := runner.Run(ctx, req); err != nil {
		logger.Fatalf("Run failed: %v", err)
	}
}
