package server

import (
	"context"
	"fmt"
	"sort"
	"strings"
)

// listReportFolders returns the storage folders of stored reports, newest
// first. Folder names sort chronologically by construction
// (YYYY/MM/DD/SeasonReport-YYYY-MM-DD-HH-MM-SS), so a reverse lexical sort
// is a reverse date sort.
func (s *Server) listReportFolders(ctx context.Context, limit int) ([]string, error) {
	entries, err := s.Storage.ListDir(ctx, "", true)
	if err != nil {
		// A storage root that does not exist yet means no reports.
		return []string{}, nil
	}

	seen := make(map[string]bool)
	var folders []string
	for _, entry := range entries {
		folder, ok := reportFolderOf(entry)
		if !ok || seen[folder] {
			continue
		}
		seen[folder] = true
		folders = append(folders, folder)
	}

	sort.Sort(sort.Reverse(sort.StringSlice(folders)))
	if limit > 0 && len(folders) > limit {
		folders = folders[:limit]
	}
	return folders, nil
}

// reportFolderOf extracts the report folder from a stored file path like
// 2026/08/30/SeasonReport-2026-08-30-10-15-00/index.html.
func reportFolderOf(path string) (string, bool) {
	parts := strings.Split(strings.Trim(path, "/"), "/")
	for i, part := range parts {
		if strings.HasPrefix(part, "SeasonReport-") {
			return strings.Join(parts[:i+1], "/"), true
		}
	}
	return "", false
}

// findLatestReportURL resolves the /files/ URL of the newest report.
func (s *Server) findLatestReportURL(ctx context.Context) (string, error) {
	folders, err := s.listReportFolders(ctx, 1)
	if err != nil || len(folders) == 0 {
		return "", fmt.Errorf("no reports available")
	}
	return "/files/" + folders[0] + "/index.html", nil
}
