package normalize

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFrameAppendShapeMismatch(t *testing.T) {
	t.Parallel()

	f := New("a", "b")
	err := f.Append(TextCell("only-one"))
	assert.Error(t, err)
}

func TestFrameDropAndRename(t *testing.T) {
	t.Parallel()

	f := New("a", "b", "c")
	require.NoError(t, f.Append(TextCell("1"), TextCell("2"), TextCell("3")))

	f.DropColumn("b")
	assert.Equal(t, []string{"a", "c"}, f.Cols)
	assert.Equal(t, "3", f.Rows[0][1].Str)

	f.RenameColumn("c", "z")
	assert.Equal(t, []string{"a", "z"}, f.Cols)

	// absent columns are no-ops
	f.DropColumn("nope")
	f.RenameColumn("nope", "x")
	assert.Equal(t, []string{"a", "z"}, f.Cols)
}

func TestCellFormat(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "", Cell{}.Format())
	assert.Equal(t, "hi", TextCell("hi").Format())
	assert.Equal(t, "1.5", NumberCell(1.5).Format())
	assert.Equal(t, "142", NumberCell(142).Format())
}

func TestReadCSV(t *testing.T) {
	t.Parallel()

	in := "Ticker,Name,Close\nMC.PA,LVMH,710.5\nOR.PA,,387\n"
	f, err := ReadCSV(strings.NewReader(in))
	require.NoError(t, err)

	rows, cols := f.Shape()
	assert.Equal(t, 2, rows)
	assert.Equal(t, 3, cols)
	assert.Equal(t, "LVMH", f.Rows[0][1].Str)
	assert.True(t, f.Rows[1][1].IsEmpty())
}

func TestReadCSVEmptyInput(t *testing.T) {
	t.Parallel()

	_, err := ReadCSV(strings.NewReader(""))
	assert.Error(t, err)
}
