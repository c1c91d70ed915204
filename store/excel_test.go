package store

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"benchlens/normalize"
)

func metaFrame(t *testing.T, names ...string) *normalize.Frame {
	t.Helper()

	f := normalize.New("ticker", "name")
	for _, n := range names {
		require.NoError(t, f.Append(normalize.TextCell(n), normalize.TextCell("name of "+n)))
	}
	return f
}

func TestFramesToExcelCreates(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "out.xlsx")
	frames := map[string]*normalize.Frame{
		"metadata":  metaFrame(t, "MC.PA"),
		"benchmark": metaFrame(t, "OR.PA"),
	}
	require.NoError(t, FramesToExcel(frames, path))

	sheets, err := SheetNames(path)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"metadata", "benchmark"}, sheets)
}

func TestFramesToExcelReplacesOnlyMatchingSheet(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "out.xlsx")

	require.NoError(t, FramesToExcel(map[string]*normalize.Frame{
		"metadata":  metaFrame(t, "MC.PA"),
		"benchmark": metaFrame(t, "OR.PA"),
	}, path))

	// second export rewrites metadata only
	require.NoError(t, FramesToExcel(map[string]*normalize.Frame{
		"metadata": metaFrame(t, "AIR.PA", "SAN.PA"),
	}, path))

	sheets, err := SheetNames(path)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"metadata", "benchmark"}, sheets)

	wb, err := excelize.OpenFile(path)
	require.NoError(t, err)
	t.Cleanup(func() { _ = wb.Close() })

	rows, err := wb.GetRows("metadata")
	require.NoError(t, err)
	require.Len(t, rows, 3) // header + 2 rows
	assert.Equal(t, []string{"ticker", "name"}, rows[0])
	assert.Equal(t, "AIR.PA", rows[1][0])

	// untouched sheet keeps its content
	rows, err = wb.GetRows("benchmark")
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "OR.PA", rows[1][0])
}

func TestFramesToExcelWritesCellKinds(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "out.xlsx")
	require.NoError(t, FramesToExcel(map[string]*normalize.Frame{
		"benchmark": priceFrame(t),
	}, path))

	wb, err := excelize.OpenFile(path)
	require.NoError(t, err)
	t.Cleanup(func() { _ = wb.Close() })

	rows, err := wb.GetRows("benchmark")
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, "2024-01-02", rows[1][0])
	assert.Equal(t, "MC.PA", rows[1][1])
}
