// Package normalize provides a small column-oriented frame and the
// declarative column-group normalizer both ETL pipelines run their
// tabular data through.
package normalize

import (
	"fmt"
	"strconv"
	"time"
)

// Kind tags the value a Cell carries.
type Kind uint8

const (
	Empty Kind = iota
	Text
	Number
	Timestamp
)

// Cell is one frame value. The zero Cell is the missing value.
type Cell struct {
	Kind Kind
	Str  string
	Num  float64
	When time.Time
}

func TextCell(s string) Cell    { return Cell{Kind: Text, Str: s} }
func NumberCell(f float64) Cell { return Cell{Kind: Number, Num: f} }
func TimeCell(t time.Time) Cell { return Cell{Kind: Timestamp, When: t} }

// IsEmpty reports whether the cell holds no value.
func (c Cell) IsEmpty() bool { return c.Kind == Empty }

// Format renders the cell as text. Empty cells render as "".
func (c Cell) Format() string {
	switch c.Kind {
	case Text:
		return c.Str
	case Number:
		return strconv.FormatFloat(c.Num, 'g', -1, 64)
	case Timestamp:
		return c.When.Format("2006-01-02")
	}
	return ""
}

// Frame is a named-column table of cells. Rows are positional; there is
// no index concept, so exports always write bare columns.
type Frame struct {
	Cols []string
	Rows [][]Cell
}

// New returns an empty frame with the given column names.
func New(cols ...string) *Frame {
	return &Frame{Cols: append([]string(nil), cols...)}
}

// Shape returns (rows, cols).
func (f *Frame) Shape() (int, int) { return len(f.Rows), len(f.Cols) }

// Col returns the position of a named column, or -1 if absent.
func (f *Frame) Col(name string) int {
	for i, c := range f.Cols {
		if c == name {
			return i
		}
	}
	return -1
}

// Append adds one row. The cell count must match the column count.
func (f *Frame) Append(cells ...Cell) error {
	if len(cells) != len(f.Cols) {
		return fmt.Errorf("frame: row has %d cells, want %d", len(cells), len(f.Cols))
	}
	f.Rows = append(f.Rows, cells)
	return nil
}

// Copy returns a deep copy of the frame.
func (f *Frame) Copy() *Frame {
	out := &Frame{
		Cols: append([]string(nil), f.Cols...),
		Rows: make([][]Cell, len(f.Rows)),
	}
	for i, row := range f.Rows {
		out.Rows[i] = append([]Cell(nil), row...)
	}
	return out
}

// DropColumn removes a column if present. Absent columns are ignored.
func (f *Frame) DropColumn(name string) {
	i := f.Col(name)
	if i < 0 {
		return
	}
	f.Cols = append(f.Cols[:i], f.Cols[i+1:]...)
	for r, row := range f.Rows {
		f.Rows[r] = append(row[:i], row[i+1:]...)
	}
}

// RenameColumn renames a column if present.
func (f *Frame) RenameColumn(from, to string) {
	if i := f.Col(from); i >= 0 {
		f.Cols[i] = to
	}
}
