// Package crops persists the crop thermal profiles in a small SQLite
// catalog. The database provisions itself on first open (schema creation
// plus the reference seed), then the whole table is loaded into an
// immutable in-memory catalog; runtime lookups never touch the database.
// Custom rows added to the database out-of-band are picked up on the next
// start.
package crops

import (
	"context"
	"database/sql"
	_ "embed"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	_ "modernc.org/sqlite"

	"cropcast/internal/logger"
	"cropcast/internal/phenology"
)

//go:embed schema.sql
var schemaSQL string

// Catalog is the in-memory crop profile table. Immutable after Open, safe
// for concurrent use.
type Catalog struct {
	path     string
	profiles map[string]phenology.Profile
	ids      []string // sorted
}

// Open provisions the catalog database at dbPath if needed and loads every
// profile into memory.
func Open(ctx context.Context, dbPath string) (*Catalog, error) {
	if dir := filepath.Dir(dbPath); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("creating catalog directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("opening crop catalog: %w", err)
	}
	defer db.Close()

	for _, pragma := range []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA synchronous=NORMAL",
		"PRAGMA foreign_keys=ON",
	} {
		if _, err := db.ExecContext(ctx, pragma); err != nil {
			return nil, fmt.Errorf("setting pragma: %w", err)
		}
	}

	if _, err := db.ExecContext(ctx, schemaSQL); err != nil {
		return nil, fmt.Errorf("creating catalog schema: %w", err)
	}
	if err := seedIfEmpty(ctx, db, dbPath); err != nil {
		return nil, err
	}

	profiles, err := loadProfiles(ctx, db)
	if err != nil {
		return nil, err
	}

	c := &Catalog{path: dbPath, profiles: profiles}
	for id := range profiles {
		c.ids = append(c.ids, id)
	}
	sort.Strings(c.ids)
	return c, nil
}

// Path returns the filesystem location of the backing database.
func (c *Catalog) Path() string {
	return c.path
}

// Get looks up one crop profile by its {crop}_{variant} ID.
func (c *Catalog) Get(cropID string) (phenology.Profile, error) {
	p, ok := c.profiles[cropID]
	if !ok {
		return phenology.Profile{}, fmt.Errorf("%w: %q", phenology.ErrUnknownCrop, cropID)
	}
	return p, nil
}

// All returns every profile ordered by ID.
func (c *Catalog) All() []phenology.Profile {
	out := make([]phenology.Profile, 0, len(c.ids))
	for _, id := range c.ids {
		out = append(out, c.profiles[id])
	}
	return out
}

// CropNames returns the distinct crop names (the part before the variant),
// sorted.
func (c *Catalog) CropNames() []string {
	seen := make(map[string]bool)
	var names []string
	for _, id := range c.ids {
		name, _ := splitID(id)
		if !seen[name] {
			seen[name] = true
			names = append(names, name)
		}
	}
	return names
}

// Variants returns the variants available for a crop name, sorted. Empty
// when the crop is unknown.
func (c *Catalog) Variants(cropName string) []string {
	var variants []string
	for _, id := range c.ids {
		name, variant := splitID(id)
		if name == cropName && variant != "" {
			variants = append(variants, variant)
		}
	}
	return variants
}

// splitID divides a catalog ID into crop name and variant at the first
// underscore.
func splitID(id string) (name, variant string) {
	if i := strings.Index(id, "_"); i >= 0 {
		return id[:i], id[i+1:]
	}
	return id, ""
}

// seedIfEmpty installs the reference profiles on a fresh catalog.
func seedIfEmpty(ctx context.Context, db *sql.DB, dbPath string) error {
	var count int
	if err := db.QueryRowContext(ctx, "SELECT COUNT(*) FROM crop_profiles").Scan(&count); err != nil {
		return fmt.Errorf("counting profiles: %w", err)
	}
	if count > 0 {
		return nil
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("starting seed: %w", err)
	}
	defer tx.Rollback()

	seed := referenceProfiles()
	for _, p := range seed {
		if _, err := tx.ExecContext(ctx,
			"INSERT INTO crop_profiles (id, t_base, t_upper) VALUES (?, ?, ?)",
			p.CropID, p.BaseTemp, p.UpperTemp); err != nil {
			return fmt.Errorf("seeding profile %q: %w", p.CropID, err)
		}
		for i, st := range p.Stages {
			if _, err := tx.ExecContext(ctx,
				"INSERT INTO crop_stages (crop_id, position, name, threshold) VALUES (?, ?, ?, ?)",
				p.CropID, i, st.Name, st.Threshold); err != nil {
				return fmt.Errorf("seeding stage %q of %q: %w", st.Name, p.CropID, err)
			}
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing seed: %w", err)
	}

	logger.Infow("Provisioned crop catalog", "path", dbPath, "profiles", len(seed))
	return nil
}

// loadProfiles reads the whole catalog into memory, skipping rows that fail
// validation so one bad custom row cannot block startup.
func loadProfiles(ctx context.Context, db *sql.DB) (map[string]phenology.Profile, error) {
	rows, err := db.QueryContext(ctx,
		"SELECT id, t_base, t_upper FROM crop_profiles ORDER BY id")
	if err != nil {
		return nil, fmt.Errorf("loading profiles: %w", err)
	}
	defer rows.Close()

	profiles := make(map[string]phenology.Profile)
	for rows.Next() {
		var p phenology.Profile
		if err := rows.Scan(&p.CropID, &p.BaseTemp, &p.UpperTemp); err != nil {
			return nil, fmt.Errorf("scanning profile row: %w", err)
		}
		profiles[p.CropID] = p
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("reading profile rows: %w", err)
	}

	for id, p := range profiles {
		stages, err := loadStages(ctx, db, id)
		if err != nil {
			return nil, err
		}
		p.Stages = stages

		if err := p.Validate(); err != nil {
			logger.Warnw("Skipping invalid crop profile", "crop", id, "error", err)
			delete(profiles, id)
			continue
		}
		profiles[id] = p
	}
	return profiles, nil
}

func loadStages(ctx context.Context, db *sql.DB, cropID string) ([]phenology.Stage, error) {
	rows, err := db.QueryContext(ctx,
		"SELECT name, threshold FROM crop_stages WHERE crop_id = ? ORDER BY position", cropID)
	if err != nil {
		return nil, fmt.Errorf("loading stages for %q: %w", cropID, err)
	}
	defer rows.Close()

	var stages []phenology.Stage
	for rows.Next() {
		var st phenology.Stage
		if err := rows.Scan(&st.Name, &st.Threshold); err != nil {
			return nil, fmt.Errorf("scanning stage row: %w", err)
		}
		stages = append(stages, st)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("reading stage rows: %w", err)
	}
	return stages, nil
}

// DisplayName renders a catalog ID for humans: "maize_dent" becomes
// "Maize Dent".
func DisplayName(cropID string) string {
	words := strings.Split(cropID, "_")
	for i, w := range words {
		if w == "" {
			continue
		}
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}
