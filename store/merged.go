package store

import (
	"fmt"

	"benchlens/normalize"
)

// LoadMerged reads the price and metadata tables from the store at
// path and left-joins them on the key column. Price rows without a
// matching metadata row keep missing descriptive cells; a duplicated
// key on the metadata side fans rows out, as a relational join would.
func LoadMerged(path, priceTable, metaTable, key string) (*normalize.Frame, error) {
	s, err := Open(path)
	if err != nil {
		return nil, err
	}
	defer s.Close()

	price, err := s.ReadFrame(priceTable)
	if err != nil {
		return nil, err
	}
	meta, err := s.ReadFrame(metaTable)
	if err != nil {
		return nil, err
	}

	return LeftJoin(price, meta, key)
}

// LeftJoin joins right onto left by the key column, keeping every left
// row. The key column must exist on both sides.
func LeftJoin(left, right *normalize.Frame, key string) (*normalize.Frame, error) {
	lk := left.Col(key)
	if lk < 0 {
		return nil, fmt.Errorf("store: join key %q missing from left frame", key)
	}
	rk := right.Col(key)
	if rk < 0 {
		return nil, fmt.Errorf("store: join key %q missing from right frame", key)
	}

	// Right-side columns minus the key.
	var rightCols []int
	cols := append([]string(nil), left.Cols...)
	for i, c := range right.Cols {
		if i == rk {
			continue
		}
		rightCols = append(rightCols, i)
		cols = append(cols, c)
	}

	byKey := map[string][]int{}
	for i, row := range right.Rows {
		k := row[rk].Format()
		byKey[k] = append(byKey[k], i)
	}

	out := normalize.New(cols...)
	for _, lrow := range left.Rows {
		matches := byKey[lrow[lk].Format()]
		if len(matches) == 0 {
			cells := append([]normalize.Cell(nil), lrow...)
			for range rightCols {
				cells = append(cells, normalize.Cell{})
			}
			if err := out.Append(cells...); err != nil {
				return nil, err
			}
			continue
		}
		for _, m := range matches {
			cells := append([]normalize.Cell(nil), lrow...)
			for _, rc := range rightCols {
				cells = append(cells, right.Rows[m][rc])
			}
			if err := out.Append(cells...); err != nil {
				return nil, err
			}
		}
	}
	return out, nil
}
