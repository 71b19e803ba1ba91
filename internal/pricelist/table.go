// internal/pricelist/table.go
package pricelist

import (
	"strings"
)

// Table is one worksheet of a price list as rows of cell text. Rows may be ragged;
// missing trailing cells read as blank.
type Table struct {
	Rows [][]string
}

// Cell returns the trimmed text at row, col or "" when out of range.
func (t Table) Cell(row, col int) string {
	if row < 0 || row >= len(t.Rows) {
		return ""
	}
	cells := t.Rows[row]
	if col < 0 || col >= len(cells) {
		return ""
	}
	return strings.TrimSpace(cells[col])
}

// Blank reports whether a cell holds no value. Spreadsheet exports write missing
// values as "nan" or "None".
func Blank(cell string) bool {
	switch strings.ToLower(strings.TrimSpace(cell)) {
	case "", "nan", "none":
		return true
	}
	return false
}

// Value returns the cell text, or "" when the cell is blank.
func (t Table) Value(row, col int) string {
	v := t.Cell(row, col)
	if Blank(v) {
		return ""
	}
	return v
}

// Len is the number of physical rows.
func (t Table) Len() int {
	return len(t.Rows)
}

// width is one past the rightmost column holding a value within the first n rows.
// Blank columns between populated ones still count.
func (t Table) width(n int) int {
	w := 0
	for r := 0; r < n && r < len(t.Rows); r++ {
		for c := len(t.Rows[r]) - 1; c >= w; c-- {
			if !Blank(t.Rows[r][c]) {
				w = c + 1
				break
			}
		}
	}
	return w
}
