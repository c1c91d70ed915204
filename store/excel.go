package store

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/xuri/excelize/v2"

	"benchlens/normalize"
)

// FramesToExcel writes each named frame to its own sheet of the
// workbook at path. An existing workbook keeps its other sheets; only
// matching sheets are replaced. A missing workbook is created.
func FramesToExcel(frames map[string]*normalize.Frame, path string) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("store: create dir: %w", err)
		}
	}

	var (
		wb      *excelize.File
		scratch string
		err     error
	)
	if _, statErr := os.Stat(path); statErr == nil {
		wb, err = excelize.OpenFile(path)
		if err != nil {
			return fmt.Errorf("store: open workbook %s: %w", path, err)
		}
		// DeleteSheet refuses to drop the last sheet of a workbook, so
		// park a scratch sheet while the real ones are rebuilt.
		scratch = "__rebuild__"
		if _, err := wb.NewSheet(scratch); err != nil {
			return fmt.Errorf("store: prepare workbook: %w", err)
		}
	} else {
		wb = excelize.NewFile()
		scratch = "Sheet1"
	}
	defer wb.Close()

	for _, name := range sortedKeys(frames) {
		if err := writeSheet(wb, name, frames[name]); err != nil {
			return err
		}
	}

	if _, ok := frames[scratch]; !ok {
		if err := wb.DeleteSheet(scratch); err != nil {
			return fmt.Errorf("store: finalize workbook: %w", err)
		}
	}

	return wb.SaveAs(path)
}

func writeSheet(wb *excelize.File, name string, f *normalize.Frame) error {
	if idx, _ := wb.GetSheetIndex(name); idx >= 0 {
		if err := wb.DeleteSheet(name); err != nil {
			return fmt.Errorf("store: replace sheet %s: %w", name, err)
		}
	}
	if _, err := wb.NewSheet(name); err != nil {
		return fmt.Errorf("store: create sheet %s: %w", name, err)
	}

	header := make([]any, len(f.Cols))
	for i, c := range f.Cols {
		header[i] = c
	}
	if err := wb.SetSheetRow(name, "A1", &header); err != nil {
		return err
	}

	for r, row := range f.Rows {
		vals := make([]any, len(row))
		for i, c := range row {
			vals[i] = excelValue(c)
		}
		cell, err := excelize.CoordinatesToCellName(1, r+2)
		if err != nil {
			return err
		}
		if err := wb.SetSheetRow(name, cell, &vals); err != nil {
			return err
		}
	}
	return nil
}

func excelValue(c normalize.Cell) any {
	switch c.Kind {
	case normalize.Number:
		return c.Num
	case normalize.Timestamp:
		return c.When.Format("2006-01-02")
	case normalize.Text:
		return c.Str
	}
	return nil
}

// SheetNames lists the sheets of the workbook at path.
func SheetNames(path string) ([]string, error) {
	wb, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("store: open workbook %s: %w", path, err)
	}
	defer wb.Close()
	return wb.GetSheetList(), nil
}
