package normalize

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleFrame(t *testing.T) *Frame {
	t.Helper()

	f := New("Date", "Ticker", "Close", "Notes")
	require.NoError(t, f.Append(TextCell("2024-01-02"), TextCell("MC.PA"), TextCell("710.5"), TextCell("x")))
	require.NoError(t, f.Append(TextCell("not-a-date"), TextCell("OR.PA"), TextCell("abc"), Cell{}))
	require.NoError(t, f.Append(Cell{}, TextCell("AIR.PA"), TextCell("142"), TextCell("y")))
	return f
}

func TestColumnGroupsApply(t *testing.T) {
	t.Parallel()

	groups := ColumnGroups{
		Date:    []string{"Date"},
		Numeric: []string{"Close"},
		String:  []string{"Ticker"},
		Drop:    []string{"Notes"},
		Rename: map[string]string{
			"Date":   "date",
			"Ticker": "ticker",
			"Close":  "close",
		},
	}

	out := groups.Apply(sampleFrame(t))

	assert.Equal(t, []string{"date", "ticker", "close"}, out.Cols)

	// valid date parsed, invalid and missing stay missing
	assert.Equal(t, Timestamp, out.Rows[0][0].Kind)
	assert.Equal(t, time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC), out.Rows[0][0].When)
	assert.True(t, out.Rows[1][0].IsEmpty())
	assert.True(t, out.Rows[2][0].IsEmpty())

	// numeric coercion, non-numeric becomes missing
	assert.Equal(t, 710.5, out.Rows[0][2].Num)
	assert.True(t, out.Rows[1][2].IsEmpty())
	assert.Equal(t, 142.0, out.Rows[2][2].Num)
}

func TestApplyDoesNotMutateInput(t *testing.T) {
	t.Parallel()

	f := sampleFrame(t)
	groups := ColumnGroups{Numeric: []string{"Close"}, Drop: []string{"Notes"}}
	_ = groups.Apply(f)

	assert.Equal(t, []string{"Date", "Ticker", "Close", "Notes"}, f.Cols)
	assert.Equal(t, Text, f.Rows[0][2].Kind)
}

func TestDroppedColumnNeverAppears(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		cols []string
	}{
		{name: "present", cols: []string{"Notes"}},
		{name: "absent", cols: []string{"NoSuchColumn"}},
		{name: "both", cols: []string{"Notes", "NoSuchColumn"}},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			out := ColumnGroups{Drop: tt.cols}.Apply(sampleFrame(t))
			for _, c := range tt.cols {
				assert.Equal(t, -1, out.Col(c))
			}
		})
	}
}

func TestNumericCoercionIdempotent(t *testing.T) {
	t.Parallel()

	groups := ColumnGroups{Numeric: []string{"Close"}}

	once := groups.Apply(sampleFrame(t))
	twice := groups.Apply(once)

	assert.Equal(t, once, twice)
}

func TestStepsSkipAbsentColumns(t *testing.T) {
	t.Parallel()

	groups := ColumnGroups{
		Date:    []string{"Missing1"},
		Numeric: []string{"Missing2"},
		String:  []string{"Missing3"},
		Drop:    []string{"Missing4"},
		Rename:  map[string]string{"Missing5": "whatever"},
	}

	f := sampleFrame(t)
	out := groups.Apply(f)
	assert.Equal(t, f, out)
}

func TestCoerceTextTargetsOriginalName(t *testing.T) {
	t.Parallel()

	// string coercion runs before rename, so the group references the
	// original column name even when a rename is configured for it
	f := New("Code")
	require.NoError(t, f.Append(NumberCell(1234)))

	groups := ColumnGroups{
		String: []string{"Code"},
		Rename: map[string]string{"Code": "code"},
	}
	out := groups.Apply(f)

	assert.Equal(t, []string{"code"}, out.Cols)
	assert.Equal(t, Text, out.Rows[0][0].Kind)
	assert.Equal(t, "1234", out.Rows[0][0].Str)
}

func TestCoerceTextKeepsMissing(t *testing.T) {
	t.Parallel()

	f := New("Sector")
	require.NoError(t, f.Append(Cell{}))

	out := ColumnGroups{String: []string{"Sector"}}.Apply(f)
	assert.True(t, out.Rows[0][0].IsEmpty())
}

func TestParseDatesLayouts(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   string
		want time.Time
	}{
		{"2024-03-15", time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC)},
		{"2024-03-15T10:30:00Z", time.Date(2024, 3, 15, 10, 30, 0, 0, time.UTC)},
		{"03/15/2024", time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC)},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.in, func(t *testing.T) {
			t.Parallel()

			f := New("Date")
			require.NoError(t, f.Append(TextCell(tt.in)))
			out := ColumnGroups{Date: []string{"Date"}}.Apply(f)
			assert.True(t, tt.want.Equal(out.Rows[0][0].When))
		})
	}
}
