package etl

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"benchlens/config"
	"benchlens/normalize"
	"benchlens/store"
)

const metadataCSV = `Ticker,Name,Sector,Country,Notes
MC.PA,LVMH,Luxury,France,skip me
OR.PA,L'Oreal,Consumer,France,
AIR.PA,Airbus,Aerospace,France,skip me too
`

func testConfig(t *testing.T) *config.Config {
	t.Helper()

	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "metadata.csv"), []byte(metadataCSV), 0644))

	cfg := config.Default()
	cfg.Main.LogDir = "" // stderr only in tests
	cfg.Main.ToExcel = false
	cfg.Metadata.Dir = dir
	cfg.Metadata.File = "metadata.csv"
	cfg.Database.Dir = dir
	cfg.Excel.Dir = dir
	return cfg
}

func TestMetadataSequencing(t *testing.T) {
	t.Parallel()

	p := NewMetadata(testConfig(t))

	assert.ErrorIs(t, p.Transform(), ErrNotExtracted)
	assert.ErrorIs(t, p.Load(), ErrNotTransformed)
}

func TestMetadataExtractMissingFile(t *testing.T) {
	t.Parallel()

	cfg := testConfig(t)
	cfg.Metadata.File = "nope.csv"

	p := NewMetadata(cfg)
	assert.Error(t, p.Extract())
}

func TestMetadataTransform(t *testing.T) {
	t.Parallel()

	p := NewMetadata(testConfig(t))
	require.NoError(t, p.Extract())
	require.NoError(t, p.Transform())

	out := p.Transformed()
	assert.Equal(t, []string{"ticker", "name", "sector", "country"}, out.Cols)
	assert.Len(t, out.Rows, 3)
	assert.Equal(t, "MC.PA", out.Rows[0][0].Str)
}

func TestMetadataLoadWritesStore(t *testing.T) {
	t.Parallel()

	cfg := testConfig(t)
	p := NewMetadata(cfg)
	require.NoError(t, p.Extract())
	require.NoError(t, p.Transform())
	require.NoError(t, p.Load())

	dbPath := cfg.Database.Path(cfg.Main.OutputVersion)
	names, err := store.TableNames(dbPath)
	require.NoError(t, err)
	assert.Contains(t, names, cfg.Database.MetadataTable)
	assert.Contains(t, names, "etl_runs")

	s, err := store.Open(dbPath)
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })

	runs, err := s.ListRuns()
	require.NoError(t, err)
	require.Len(t, runs, 1)
	assert.Equal(t, cfg.Database.MetadataTable, runs[0].Dataset)
	assert.Equal(t, 3, runs[0].Rows)
}

func TestDuplicateKeys(t *testing.T) {
	t.Parallel()

	f := normalize.New("ticker")
	require.NoError(t, f.Append(normalize.TextCell("A")))
	require.NoError(t, f.Append(normalize.TextCell("B")))
	require.NoError(t, f.Append(normalize.TextCell("A")))
	require.NoError(t, f.Append(normalize.TextCell("A")))

	assert.Equal(t, []string{"A"}, duplicateKeys(f, "ticker"))
	assert.Nil(t, duplicateKeys(f, "nope"))
}
