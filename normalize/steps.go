package normalize

import (
	"strconv"
	"strings"
	"time"
)

// Step is one typed transformation applied to a frame in place.
// Every step skips columns absent from the frame.
type Step interface {
	Apply(f *Frame)
}

// ColumnGroups is the declarative, per-dataset column configuration as
// it appears in the settings file. Steps compiles it into the fixed
// pipeline order: drop, parse-date, coerce-numeric, coerce-string,
// rename. Type rules reference original column names; the rename
// mapping runs strictly last.
type ColumnGroups struct {
	Date    []string          `json:"date" yaml:"date"`
	Numeric []string          `json:"numeric" yaml:"numeric"`
	String  []string          `json:"string" yaml:"string"`
	Drop    []string          `json:"drop" yaml:"drop"`
	Rename  map[string]string `json:"rename" yaml:"rename"`
}

// Steps compiles the groups into the ordered step list.
func (g ColumnGroups) Steps() []Step {
	return []Step{
		DropColumns{Columns: g.Drop},
		ParseDates{Columns: g.Date},
		CoerceNumbers{Columns: g.Numeric},
		CoerceText{Columns: g.String},
		RenameColumns{Mapping: g.Rename},
	}
}

// Apply runs the compiled steps on a copy of the frame and returns it.
func (g ColumnGroups) Apply(f *Frame) *Frame {
	out := f.Copy()
	for _, s := range g.Steps() {
		s.Apply(out)
	}
	return out
}

// DropColumns removes the listed columns.
type DropColumns struct {
	Columns []string
}

func (s DropColumns) Apply(f *Frame) {
	for _, c := range s.Columns {
		f.DropColumn(c)
	}
}

// dateLayouts are tried in order when parsing date text.
var dateLayouts = []string{
	"2006-01-02",
	time.RFC3339,
	"2006-01-02 15:04:05",
	"01/02/2006",
}

// ParseDates converts text cells in the listed columns to timestamps.
// Unparseable values become missing, not an error.
type ParseDates struct {
	Columns []string
}

func (s ParseDates) Apply(f *Frame) {
	for _, c := range s.Columns {
		i := f.Col(c)
		if i < 0 {
			continue
		}
		for _, row := range f.Rows {
			switch row[i].Kind {
			case Timestamp, Empty:
				// already parsed or missing
			case Text:
				row[i] = parseDate(row[i].Str)
			default:
				row[i] = Cell{}
			}
		}
	}
}

func parseDate(s string) Cell {
	s = strings.TrimSpace(s)
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return TimeCell(t)
		}
	}
	return Cell{}
}

// CoerceNumbers converts text cells in the listed columns to numbers.
// Non-numeric tokens become missing. Re-applying the step is a no-op.
type CoerceNumbers struct {
	Columns []string
}

func (s CoerceNumbers) Apply(f *Frame) {
	for _, c := range s.Columns {
		i := f.Col(c)
		if i < 0 {
			continue
		}
		for _, row := range f.Rows {
			if row[i].Kind != Text {
				continue
			}
			v, err := strconv.ParseFloat(strings.TrimSpace(row[i].Str), 64)
			if err != nil {
				row[i] = Cell{}
				continue
			}
			row[i] = NumberCell(v)
		}
	}
}

// CoerceText renders cells in the listed columns as text. Missing cells
// stay missing. Columns are addressed by their original names; the
// rename step has not run yet when this step executes.
type CoerceText struct {
	Columns []string
}

func (s CoerceText) Apply(f *Frame) {
	for _, c := range s.Columns {
		i := f.Col(c)
		if i < 0 {
			continue
		}
		for _, row := range f.Rows {
			if row[i].IsEmpty() || row[i].Kind == Text {
				continue
			}
			row[i] = TextCell(row[i].Format())
		}
	}
}

// RenameColumns applies the old-name to new-name mapping.
type RenameColumns struct {
	Mapping map[string]string
}

func (s RenameColumns) Apply(f *Frame) {
	for from, to := range s.Mapping {
		f.RenameColumn(from, to)
	}
}
