package reports

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/jonboulle/clockwork"

	"cropcast/internal/config"
	"cropcast/internal/crops"
	"cropcast/internal/logger"
	"cropcast/internal/models"
	"cropcast/internal/observability"
	"cropcast/internal/phenology"
	"cropcast/internal/storage"
)

// climateModelEnd is the last day the Open-Meteo climate API serves data for.
var climateModelEnd = phenology.Date(2050, time.December, 31)

// clock supplies "today" so tests can freeze it.
var clock clockwork.Clock = clockwork.NewRealClock()

// SetClock replaces the service clock and returns a restore function.
// Tests only.
func SetClock(c clockwork.Clock) func() {
	prev := clock
	clock = c
	return func() { clock = prev }
}

// WeatherSource is the slice of the weather fetcher the service consumes.
type WeatherSource interface {
	Geocode(ctx context.Context, baseURL, query string) (models.Location, error)
	FetchArchive(ctx context.Context, baseURL string, lat, lon float64, startDate, endDate time.Time) (phenology.TemperatureSeries, error)
	FetchClimate(ctx context.Context, baseURL string, lat, lon float64, startDate, endDate time.Time) (phenology.TemperatureSeries, error)
	FetchAdvisories(ctx context.Context, feedURL string) ([]models.Advisory, error)
}

// AdvisoryClient produces the optional agronomist commentary.
type AdvisoryClient interface {
	GenerateAdvisory(ctx context.Context, analysis *models.SeasonAnalysis) (string, error)
}

// ReportResult points at one stored report.
type ReportResult struct {
	Analysis   *models.SeasonAnalysis `json:"analysis"`
	FolderPath string                 `json:"folder_path"`
	ReportURL  string                 `json:"report_url"`
}

// Service runs the full analyze-render-store pipeline.
type Service struct {
	cfg          *config.Config
	weather      WeatherSource
	catalog      *crops.Catalog
	advisor      AdvisoryClient // nil disables the advisory section
	metrics      *observability.Metrics
	markdown     *MarkdownBuilder
	files        *FileGenerator
	orchestrator *StorageOrchestrator
}

// NewService wires the analysis pipeline together.
func NewService(cfg *config.Config, weather WeatherSource, catalog *crops.Catalog, advisor AdvisoryClient, storageClient storage.StorageClient, metrics *observability.Metrics) *Service {
	return &Service{
		cfg:          cfg,
		weather:      weather,
		catalog:      catalog,
		advisor:      advisor,
		metrics:      metrics,
		markdown:     NewMarkdownBuilder(),
		files:        NewFileGenerator(),
		orchestrator: NewStorageOrchestrator(storageClient),
	}
}

// Analyze resolves the request into a season analysis: geocode the location,
// fetch the matching temperature series, and run the thermal accumulation.
func (s *Service) Analyze(ctx context.Context, req models.AnalysisRequest) (*models.SeasonAnalysis, error) {
	if !req.Mode.Valid() {
		return nil, fmt.Errorf("invalid mode %q: must be %q or %q", req.Mode, models.ModeCheck, models.ModePlan)
	}

	profile, err := s.catalog.Get(req.CropID)
	if err != nil {
		return nil, err
	}

	planting, err := time.Parse("2006-01-02", req.PlantingDate)
	if err != nil {
		return nil, fmt.Errorf("invalid planting date %q: expected YYYY-MM-DD", req.PlantingDate)
	}

	location, err := s.geocode(ctx, req.Location)
	if err != nil {
		return nil, err
	}

	today := phenology.Date(clock.Now().UTC().Date())

	analysis := &models.SeasonAnalysis{
		Mode:         req.Mode,
		GeneratedAt:  clock.Now().UTC(),
		Location:     location,
		CropID:       req.CropID,
		CropLabel:    crops.DisplayName(req.CropID),
		Profile:      profile,
		PlantingDate: planting,
	}

	switch req.Mode {
	case models.ModeCheck:
		err = s.analyzeCheck(ctx, req, profile, planting, today, analysis)
	case models.ModePlan:
		err = s.analyzePlan(ctx, profile, planting, today, analysis)
	}
	if err != nil {
		return nil, err
	}

	analysis.Stats = ComputeSeriesStats(analysis.Series, analysis.Records)

	s.attachAdvisories(ctx, analysis)
	if req.Advisory && s.advisor != nil {
		s.attachAdvisory(ctx, analysis)
	}

	return analysis, nil
}

// analyzeCheck reviews a season already in the ground against observed
// weather from planting to the as-of date.
func (s *Service) analyzeCheck(ctx context.Context, req models.AnalysisRequest, profile phenology.Profile, planting, today time.Time, analysis *models.SeasonAnalysis) error {
	asOf := today
	if req.AsOfDate != "" {
		parsed, err := time.Parse("2006-01-02", req.AsOfDate)
		if err != nil {
			return fmt.Errorf("invalid as-of date %q: expected YYYY-MM-DD", req.AsOfDate)
		}
		asOf = parsed
	}

	if planting.After(today) {
		return fmt.Errorf("planting date %s is in the future; use plan mode to project a new season", planting.Format("2006-01-02"))
	}
	if asOf.After(today) {
		return fmt.Errorf("%w: as-of date %s is in the future", phenology.ErrDateOutOfRange, asOf.Format("2006-01-02"))
	}
	if asOf.Before(planting) {
		return fmt.Errorf("%w: as-of date %s precedes planting", phenology.ErrDateOutOfRange, asOf.Format("2006-01-02"))
	}

	series, err := s.fetchSeries(ctx, "archive", analysis.Location, planting, asOf)
	if err != nil {
		return err
	}

	season, err := phenology.NewSeason(profile, analysis.Location.DisplayName(), planting, series)
	if err != nil {
		return fmt.Errorf("failed to build season: %w", err)
	}

	// The archive API lags a few days behind real time. When the caller did
	// not pin an as-of date, fall back to the newest day it returned.
	if req.AsOfDate == "" && asOf.After(season.LastDate()) {
		logger.Infow("Archive data lags behind today, evaluating at last available day",
			"requested", asOf.Format("2006-01-02"),
			"available", season.LastDate().Format("2006-01-02"))
		asOf = season.LastDate()
	}

	status, err := season.CurrentStatus(asOf)
	if err != nil {
		return err
	}

	analysis.AsOfDate = asOf
	analysis.Series = season.Series()
	analysis.Records = season.Records()
	analysis.Status = status
	analysis.Milestones = season.Milestones()
	return nil
}

// analyzePlan projects a future season over climate-model weather.
func (s *Service) analyzePlan(ctx context.Context, profile phenology.Profile, planting, today time.Time, analysis *models.SeasonAnalysis) error {
	if !planting.After(today) {
		return fmt.Errorf("planting date %s is not in the future; use check mode to review a season already in the ground", planting.Format("2006-01-02"))
	}

	horizon := estimateHorizonDays(profile, planting)
	if horizon < 1 {
		return fmt.Errorf("planting date %s is beyond the climate model range (ends %s)",
			planting.Format("2006-01-02"), climateModelEnd.Format("2006-01-02"))
	}
	endDate := planting.AddDate(0, 0, horizon-1)

	series, err := s.fetchSeries(ctx, "climate", analysis.Location, planting, endDate)
	if err != nil {
		return err
	}

	records, err := phenology.Accumulate(series, profile)
	if err != nil {
		return fmt.Errorf("failed to accumulate projection: %w", err)
	}

	milestones, err := phenology.Project(series, profile, 0, planting)
	if err != nil {
		return err
	}

	status, err := phenology.ResolveStage(records[len(records)-1].CumulativeGDD, profile.Stages)
	if err != nil {
		return err
	}

	analysis.HorizonDays = horizon
	analysis.Series = series
	analysis.Records = records
	analysis.Status = status
	analysis.Milestones = milestones
	return nil
}

// GenerateReport runs the full pipeline: analyze, render markdown, build all
// artifacts in a scratch directory, and persist them through storage.
func (s *Service) GenerateReport(ctx context.Context, req models.AnalysisRequest) (*ReportResult, error) {
	start := clock.Now()

	analysis, err := s.Analyze(ctx, req)
	if err != nil {
		return nil, err
	}

	markdownContent := s.markdown.BuildReport(analysis)

	workDir := filepath.Join(os.TempDir(), fmt.Sprintf("cropcast_report_%d", start.UnixNano()))
	if err := os.MkdirAll(workDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create work directory: %w", err)
	}
	defer os.RemoveAll(workDir)

	files, err := s.files.GenerateAllFiles(analysis, markdownContent, workDir)
	if err != nil {
		return nil, fmt.Errorf("failed to generate report files: %w", err)
	}

	if err := s.orchestrator.StoreAllFiles(ctx, files); err != nil {
		return nil, fmt.Errorf("failed to store report files: %w", err)
	}

	s.metrics.ReportsGenerated.WithLabelValues(string(analysis.Mode)).Inc()
	s.metrics.ReportDuration.Observe(clock.Since(start).Seconds())
	logger.Infow("Report generated",
		"mode", analysis.Mode,
		"crop", analysis.CropID,
		"location", analysis.Location.DisplayName(),
		"folder", files.FolderPath,
		"duration", clock.Since(start).String())

	return &ReportResult{
		Analysis:   analysis,
		FolderPath: files.FolderPath,
		ReportURL:  "/files/" + files.FolderPath + "/index.html",
	}, nil
}

func (s *Service) geocode(ctx context.Context, query string) (models.Location, error) {
	start := clock.Now()
	location, err := s.weather.Geocode(ctx, s.cfg.GeocodingAPIURL, query)
	s.metrics.FetchDuration.WithLabelValues("geocoding").Observe(clock.Since(start).Seconds())
	if err != nil {
		s.metrics.GeocodeLookups.WithLabelValues("error").Inc()
		return models.Location{}, fmt.Errorf("failed to geocode %q: %w", query, err)
	}
	s.metrics.GeocodeLookups.WithLabelValues("resolved").Inc()
	return location, nil
}

// fetchSeries pulls a daily temperature series from the archive or climate
// API, recording fetch metrics either way.
func (s *Service) fetchSeries(ctx context.Context, source string, location models.Location, startDate, endDate time.Time) (phenology.TemperatureSeries, error) {
	baseURL := s.cfg.ArchiveAPIURL
	fetch := s.weather.FetchArchive
	if source == "climate" {
		baseURL = s.cfg.ClimateAPIURL
		fetch = s.weather.FetchClimate
	}

	start := clock.Now()
	series, err := fetch(ctx, baseURL, location.Latitude, location.Longitude, startDate, endDate)
	s.metrics.FetchDuration.WithLabelValues(source).Observe(clock.Since(start).Seconds())
	if err != nil {
		s.metrics.WeatherFetches.WithLabelValues(source, "error").Inc()
		return nil, fmt.Errorf("failed to fetch %s data: %w", source, err)
	}
	s.metrics.WeatherFetches.WithLabelValues(source, "success").Inc()
	return series, nil
}

// attachAdvisories adds recent agromet bulletins when a feed is configured.
// Feed trouble never fails the analysis.
func (s *Service) attachAdvisories(ctx context.Context, analysis *models.SeasonAnalysis) {
	if s.cfg.AdvisoryFeedURL == "" {
		return
	}
	advisories, err := s.weather.FetchAdvisories(ctx, s.cfg.AdvisoryFeedURL)
	if err != nil {
		s.metrics.WeatherFetches.WithLabelValues("advisory", "error").Inc()
		logger.Warnw("Failed to fetch advisory feed", "error", err)
		return
	}
	s.metrics.WeatherFetches.WithLabelValues("advisory", "success").Inc()
	analysis.Advisories = advisories
}

// attachAdvisory asks the LLM for the agronomist note. Failures degrade to a
// report without the section.
func (s *Service) attachAdvisory(ctx context.Context, analysis *models.SeasonAnalysis) {
	advisory, err := s.advisor.GenerateAdvisory(ctx, analysis)
	if err != nil {
		logger.Warnw("Failed to generate advisory", "error", err)
		return
	}
	analysis.Advisory = advisory
}

// estimateHorizonDays sizes the projection window from the crop's thermal
// ceiling: the fastest possible run to harvest plus 60 days of slack, at
// most one year, clipped to the climate model's last day.
func estimateHorizonDays(p phenology.Profile, planting time.Time) int {
	horizon := 365
	if maxDaily := p.MaxDailyGDD(); maxDaily > 0 {
		horizon = int(p.HarvestThreshold()/maxDaily) + 60
		if horizon > 365 {
			horizon = 365
		}
	}
	if endDate := planting.AddDate(0, 0, horizon-1); endDate.After(climateModelEnd) {
		horizon = int(climateModelEnd.Sub(phenology.Date(planting.UTC().Date()))/(24*time.Hour)) + 1
	}
	return horizon
}
