package nimsforestgallery

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"

	"github.com/xuri/excelize/v2"
)

// Table is a dataset of string cells addressed by row index and column
// name. Numbers are parsed on demand by the consumer. A nil *Table reads
// as an empty table.
type Table struct {
	columns []string
	index   map[string]int
	rows    [][]string
}

// NewTable returns a table with the given header and rows. Rows shorter
// than the header are padded with blank cells.
func NewTable(columns []string, rows [][]string) *Table {
	t := &Table{
		columns: append([]string(nil), columns...),
		index:   make(map[string]int, len(columns)),
	}
	for i, c := range t.columns {
		if _, ok := t.index[c]; !ok {
			t.index[c] = i
		}
	}
	t.rows = make([][]string, len(rows))
	for i, r := range rows {
		row := make([]string, len(columns))
		copy(row, r)
		t.rows[i] = row
	}
	return t
}

// ParseCSV reads a CSV document whose first record is the header.
func ParseCSV(r io.Reader) (*Table, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true
	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("parse csv: %w", err)
	}
	if len(records) == 0 {
		return nil, errors.New("parse csv: missing header row")
	}
	return NewTable(records[0], records[1:]), nil
}

// ParseXLSX reads the first sheet of an XLSX workbook whose first row is
// the header.
func ParseXLSX(r io.Reader) (*Table, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("open xlsx: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, errors.New("parse xlsx: workbook has no sheets")
	}
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("parse xlsx sheet %s: %w", sheets[0], err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("parse xlsx sheet %s: missing header row", sheets[0])
	}
	return NewTable(rows[0], rows[1:]), nil
}

// Columns returns the header names in order.
func (t *Table) Columns() []string {
	if t == nil {
		return nil
	}
	return t.columns
}

// RowCount returns the number of data rows.
func (t *Table) RowCount() int {
	if t == nil {
		return 0
	}
	return len(t.rows)
}

// HasColumn reports whether the table has a column called name.
func (t *Table) HasColumn(name string) bool {
	if t == nil {
		return false
	}
	_, ok := t.index[name]
	return ok
}

// Column returns the cells of the named column, or nil if there is no
// such column.
func (t *Table) Column(name string) []string {
	if t == nil {
		return nil
	}
	i, ok := t.index[name]
	if !ok {
		return nil
	}
	return t.ColumnAt(i)
}

// ColumnAt returns the cells of column i, or nil if i is out of range.
func (t *Table) ColumnAt(i int) []string {
	if t == nil || i < 0 || i >= len(t.columns) {
		return nil
	}
	col := make([]string, len(t.rows))
	for r, row := range t.rows {
		col[r] = row[i]
	}
	return col
}

// NumColumn returns the named column parsed as numbers.
func (t *Table) NumColumn(name string) []float64 {
	return StringsToNumbers(t.Column(name))
}

// String returns the cell at row in the named column, or "" if either
// does not exist.
func (t *Table) String(row int, column string) string {
	if t == nil {
		return ""
	}
	i, ok := t.index[column]
	if !ok || row < 0 || row >= len(t.rows) {
		return ""
	}
	return t.rows[row][i]
}

// Num returns the cell at row in the named column as a number, or NaN if
// either does not exist.
func (t *Table) Num(row int, column string) float64 {
	if t == nil {
		return math.NaN()
	}
	i, ok := t.index[column]
	if !ok || row < 0 || row >= len(t.rows) {
		return math.NaN()
	}
	return ParseNumber(t.rows[row][i])
}
