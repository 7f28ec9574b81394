package crops

import (
	"context"
	"database/sql"
	"path/filepath"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	_ "modernc.org/sqlite"

	"cropcast/internal/phenology"
)

func openTestCatalog(t *testing.T) *Catalog {
	t.Helper()
	c, err := Open(context.Background(), filepath.Join(t.TempDir(), "crops.db"))
	require.NoError(t, err)
	return c
}

func TestOpenSeedsCatalog(t *testing.T) {
	c := openTestCatalog(t)

	profiles := c.All()
	require.NotEmpty(t, profiles)

	t.Run("every seeded profile is valid", func(t *testing.T) {
		for _, p := range profiles {
			assert.NoError(t, p.Validate(), "profile %s", p.CropID)
		}
	})

	t.Run("all is ordered by id", func(t *testing.T) {
		ids := make([]string, len(profiles))
		for i, p := range profiles {
			ids[i] = p.CropID
		}
		assert.True(t, sort.StringsAreSorted(ids), "got order %v", ids)
	})

	t.Run("dent maize reference row", func(t *testing.T) {
		p, err := c.Get("maize_dent")
		require.NoError(t, err)

		assert.Equal(t, 10.0, p.BaseTemp)
		assert.Equal(t, 30.0, p.UpperTemp)
		require.Len(t, p.Stages, 4)
		assert.Equal(t, phenology.Stage{Name: "initial", Threshold: 200}, p.Stages[0])
		assert.Equal(t, phenology.Stage{Name: "development", Threshold: 500}, p.Stages[1])
		assert.Equal(t, phenology.Stage{Name: "mid_season", Threshold: 1200}, p.Stages[2])
		assert.Equal(t, phenology.Stage{Name: "harvest", Threshold: 1800}, p.Stages[3])
	})
}

func TestOpenTwiceDoesNotReseed(t *testing.T) {
	ctx := context.Background()
	dbPath := filepath.Join(t.TempDir(), "crops.db")

	first, err := Open(ctx, dbPath)
	require.NoError(t, err)

	second, err := Open(ctx, dbPath)
	require.NoError(t, err)
	assert.Equal(t, len(first.All()), len(second.All()))
}

func TestGetUnknownCrop(t *testing.T) {
	c := openTestCatalog(t)

	_, err := c.Get("kudzu_feral")
	assert.ErrorIs(t, err, phenology.ErrUnknownCrop)
}

func TestCropNamesAndVariants(t *testing.T) {
	c := openTestCatalog(t)

	names := c.CropNames()
	assert.True(t, sort.StringsAreSorted(names))
	assert.Contains(t, names, "maize")
	assert.Contains(t, names, "wheat")
	assert.NotContains(t, names, "maize_dent", "names must not include variants")

	variants := c.Variants("maize")
	assert.ElementsMatch(t, []string{"dent", "sweet"}, variants)

	assert.Empty(t, c.Variants("kudzu"))
}

func TestOutOfBandRowsPickedUpOnNextOpen(t *testing.T) {
	ctx := context.Background()
	dbPath := filepath.Join(t.TempDir(), "crops.db")

	first, err := Open(ctx, dbPath)
	require.NoError(t, err)
	_, err = first.Get("quinoa_highland")
	require.ErrorIs(t, err, phenology.ErrUnknownCrop)

	// Simulate an operator adding a custom row with the sqlite CLI.
	db, err := sql.Open("sqlite", dbPath)
	require.NoError(t, err)
	_, err = db.Exec(`INSERT INTO crop_profiles (id, t_base, t_upper) VALUES ('quinoa_highland', 3, 25)`)
	require.NoError(t, err)
	_, err = db.Exec(`
		INSERT INTO crop_stages (crop_id, position, name, threshold) VALUES
		('quinoa_highland', 0, 'initial', 120),
		('quinoa_highland', 1, 'development', 350),
		('quinoa_highland', 2, 'mid_season', 800),
		('quinoa_highland', 3, 'harvest', 1200)
	`)
	require.NoError(t, err)
	require.NoError(t, db.Close())

	second, err := Open(ctx, dbPath)
	require.NoError(t, err)

	p, err := second.Get("quinoa_highland")
	require.NoError(t, err)
	assert.Equal(t, 3.0, p.BaseTemp)
	require.Len(t, p.Stages, 4)
	assert.Equal(t, 1200.0, p.Stages[3].Threshold)
}

func TestInvalidRowSkippedAtLoad(t *testing.T) {
	ctx := context.Background()
	dbPath := filepath.Join(t.TempDir(), "crops.db")

	_, err := Open(ctx, dbPath)
	require.NoError(t, err)

	// A profile with no stages cannot validate and must not block startup.
	db, err := sql.Open("sqlite", dbPath)
	require.NoError(t, err)
	_, err = db.Exec(`INSERT INTO crop_profiles (id, t_base, t_upper) VALUES ('broken_crop', 10, 30)`)
	require.NoError(t, err)
	require.NoError(t, db.Close())

	c, err := Open(ctx, dbPath)
	require.NoError(t, err)

	_, err = c.Get("broken_crop")
	assert.ErrorIs(t, err, phenology.ErrUnknownCrop)
	_, err = c.Get("maize_dent")
	assert.NoError(t, err)
}

func TestDisplayName(t *testing.T) {
	tests := []struct {
		id       string
		expected string
	}{
		{"maize_dent", "Maize Dent"},
		{"wheat_spring", "Wheat Spring"},
		{"sunflower_oilseed", "Sunflower Oilseed"},
		{"single", "Single"},
		{"", ""},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, DisplayName(tt.id))
	}
}
