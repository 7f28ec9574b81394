package server

import (
	"context"
	"fmt"
	"net/http"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"cropcast/internal/config"
	"cropcast/internal/crops"
	"cropcast/internal/fetchers"
	"cropcast/internal/llm"
	"cropcast/internal/logger"
	"cropcast/internal/mocks"
	"cropcast/internal/observability"
	"cropcast/internal/reports"
	"cropcast/internal/storage"
)

// Server wires the catalog, weather source, report service, and storage
// behind the HTTP surface.
type Server struct {
	Config  *config.Config
	Catalog *crops.Catalog
	Weather reports.WeatherSource
	Service *reports.Service
	Storage storage.StorageClient
	Metrics *observability.Metrics

	registry      *prometheus.Registry
	generateMutex sync.Mutex
}

// NewServer creates a new server instance
func NewServer(ctx context.Context, cfg *config.Config) (*Server, error) {
	mode := storage.DeploymentLocal
	if cfg.Environment == "gcp" {
		mode = storage.DeploymentGCS
	}

	storageClient, err := storage.NewStorageClient(ctx, mode, cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize storage: %w", err)
	}

	catalog, err := crops.Open(ctx, cfg.CropsDBPath)
	if err != nil {
		storageClient.Close()
		return nil, fmt.Errorf("failed to open crop catalog: %w", err)
	}
	logger.Infof("Crop catalog loaded: %d profiles from %s", len(catalog.All()), catalog.Path())

	var weather reports.WeatherSource = fetchers.NewWeatherFetcher()
	if cfg.MockupMode {
		logger.Info("Mockup mode enabled - serving synthetic weather data")
		weather = mocks.NewMockWeatherSource()
	}

	var advisor reports.AdvisoryClient
	if cfg.AdvisoryEnabled() {
		advisor = llm.NewOpenAIClient(cfg.OpenAIAPIKey, cfg.OpenAIModel)
	}

	registry := prometheus.NewRegistry()
	metrics := observability.NewMetrics(registry)
	metrics.CropProfilesLoaded.Set(float64(len(catalog.All())))

	return &Server{
		Config:   cfg,
		Catalog:  catalog,
		Weather:  weather,
		Service:  reports.NewService(cfg, weather, catalog, advisor, storageClient, metrics),
		Storage:  storageClient,
		Metrics:  metrics,
		registry: registry,
	}, nil
}

// SetupRoutes configures HTTP routes for the server
func (s *Server) SetupRoutes() *http.ServeMux {
	mux := http.NewServeMux()

	// Handle specific API routes first
	mux.HandleFunc("/health", s.HandleHealth)
	mux.HandleFunc("/api/v1/crops", s.HandleCrops)
	mux.HandleFunc("/api/v1/geocode", s.HandleGeocode)
	mux.HandleFunc("/api/v1/analyze", s.HandleAnalyze)
	mux.HandleFunc("/generate", s.HandleGenerate)
	mux.HandleFunc("/reports", s.HandleListReports)
	mux.HandleFunc("/files/", s.HandleFileProxy)
	mux.Handle("/metrics", promhttp.HandlerFor(s.registry, promhttp.HandlerOpts{}))

	// Handle root path last (catch-all)
	mux.HandleFunc("/", s.HandleRoot)

	return mux
}

// Close cleans up server resources
func (s *Server) Close() error {
	if s.Storage != nil {
		return s.Storage.Close()
	}
	return nil
}
