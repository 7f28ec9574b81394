package server

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"cropcast/internal/config"
	"cropcast/internal/crops"
	"cropcast/internal/logger"
	"cropcast/internal/models"
	"cropcast/internal/phenology"
	"cropcast/internal/storage"
)

// HandleRoot redirects to the latest stored report, or serves a landing page
// when none exist yet.
func (s *Server) HandleRoot(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}

	latestReportURL, err := s.findLatestReportURL(r.Context())
	if err != nil {
		logger.Debugw("No reports available yet", "error", err)
		s.serveLandingPage(w)
		return
	}

	logger.Debugw("Redirecting to latest report", "url", latestReportURL)
	http.Redirect(w, r, latestReportURL, http.StatusFound)
}

func (s *Server) serveLandingPage(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "text/html")
	fmt.Fprint(w, landingPage)
}

const landingPage = `<!DOCTYPE html>
<html>
<head><title>Cropcast</title></head>
<body>
<h1>Cropcast</h1>
<p>No season reports have been generated yet.</p>
<p>POST a request to <code>/generate</code> to create one, for example:</p>
<pre>curl -X POST localhost:8981/generate -d '{"mode":"check","crop_id":"maize_dent","location":"Ames, Iowa","planting_date":"2026-05-01"}'</pre>
<p>Available crops: <a href="/api/v1/crops">/api/v1/crops</a></p>
</body>
</html>
`

// HandleHealth provides health check endpoint
func (s *Server) HandleHealth(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"status":      "healthy",
		"service":     "cropcast",
		"version":     config.GetVersion(),
		"environment": s.Config.Environment,
		"timestamp":   time.Now().UTC().Format(time.RFC3339),
		"checks": map[string]string{
			"catalog": fmt.Sprintf("%d profiles", len(s.Catalog.All())),
			"config":  "ok",
		},
	})
}

// cropEntry is one catalog row in the /api/v1/crops response.
type cropEntry struct {
	CropID    string            `json:"crop_id"`
	Label     string            `json:"label"`
	BaseTemp  float64           `json:"t_base"`
	UpperTemp float64           `json:"t_upper"`
	Stages    []phenology.Stage `json:"stages"`
}

// HandleCrops lists every crop profile the catalog serves.
func (s *Server) HandleCrops(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	profiles := s.Catalog.All()
	entries := make([]cropEntry, 0, len(profiles))
	for _, p := range profiles {
		entries = append(entries, cropEntry{
			CropID:    p.CropID,
			Label:     crops.DisplayName(p.CropID),
			BaseTemp:  p.BaseTemp,
			UpperTemp: p.UpperTemp,
			Stages:    p.Stages,
		})
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"crops": entries,
		"count": len(entries),
	})
}

// HandleGeocode resolves ?q= to coordinates through the geocoding API.
func (s *Server) HandleGeocode(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	query := strings.TrimSpace(r.URL.Query().Get("q"))
	if query == "" {
		writeError(w, http.StatusBadRequest, "query parameter q is required")
		return
	}

	location, err := s.Weather.Geocode(r.Context(), s.Config.GeocodingAPIURL, query)
	if err != nil {
		logger.Warnw("Geocode lookup failed", "query", query, "error", err)
		writeError(w, statusForError(err), err.Error())
		return
	}

	writeJSON(w, http.StatusOK, location)
}

// HandleAnalyze runs one analysis and returns the SeasonAnalysis JSON
// without rendering or storing a report.
func (s *Server) HandleAnalyze(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req models.AnalysisRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body: "+err.Error())
		return
	}

	analysis, err := s.Service.Analyze(r.Context(), req)
	if err != nil {
		logger.Warnw("Analysis failed",
			"crop", req.CropID, "mode", req.Mode, "error", err)
		writeError(w, statusForError(err), err.Error())
		return
	}

	writeJSON(w, http.StatusOK, analysis)
}

// HandleGenerate runs the full analyze-render-store pipeline. Only one
// generation runs at a time; concurrent requests are answered 409.
func (s *Server) HandleGenerate(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	if !s.generateMutex.TryLock() {
		logger.Warn("Report generation already in progress, rejecting new request")
		writeJSON(w, http.StatusConflict, map[string]string{
			"error":  "report generation already in progress",
			"status": "conflict",
		})
		return
	}
	defer s.generateMutex.Unlock()

	var req models.AnalysisRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body: "+err.Error())
		return
	}

	start := time.Now()
	logger.Infow("Starting report generation",
		"crop", req.CropID, "mode", req.Mode, "location", req.Location)

	result, err := s.Service.GenerateReport(r.Context(), req)
	if err != nil {
		logger.Errorw("Report generation failed", "error", err)
		writeError(w, statusForError(err), err.Error())
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"status":      "success",
		"report_url":  result.ReportURL,
		"folder_path": result.FolderPath,
		"duration_ms": time.Since(start).Milliseconds(),
		"analysis":    result.Analysis,
	})
}

// HandleListReports lists stored reports, newest first.
func (s *Server) HandleListReports(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	limit := 10
	if limitStr := r.URL.Query().Get("limit"); limitStr != "" {
		if parsed, err := strconv.Atoi(limitStr); err == nil && parsed > 0 {
			limit = parsed
		}
		if limit > 100 {
			limit = 100
		}
	}

	folders, err := s.listReportFolders(r.Context(), limit)
	if err != nil {
		logger.Errorw("Failed to list reports", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to list reports")
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"reports":   folders,
		"count":     len(folders),
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}

// HandleFileProxy serves stored report files through the storage client, so
// the same URLs work for local disk and GCS deployments.
func (s *Server) HandleFileProxy(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	filePath := strings.TrimPrefix(r.URL.Path, "/files/")
	if filePath == "" {
		writeError(w, http.StatusBadRequest, "file path required")
		return
	}

	// Prevent directory traversal
	if strings.Contains(filePath, "..") {
		writeError(w, http.StatusBadRequest, "invalid file path")
		return
	}

	fileData, err := s.Storage.GetFile(r.Context(), filePath)
	if err != nil {
		logger.Debugw("File not found in storage", "path", filePath, "error", err)
		writeError(w, http.StatusNotFound, "file not found")
		return
	}

	w.Header().Set("Content-Type", storage.GetContentType(filePath))
	w.Write(fileData)
}
