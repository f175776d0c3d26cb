package tabular

// Table is an in-memory slice of tabular data: one header row plus zero or
// more data rows. Row slices are shared, not copied, when tables are sliced.
type Table struct {
	Header []string
	Rows   [][]string
}

// NewTable creates a table from a header and data rows.
func NewTable(header []string, rows [][]string) *Table {
	return &Table{Header: header, Rows: rows}
}

// RowCount returns the number of data rows (the header is not counted).
func (t *Table) RowCount() int {
	return len(t.Rows)
}

// ColumnCount returns the number of columns in the header.
func (t *Table) ColumnCount() int {
	return len(t.Header)
}

// Slice returns a table over rows [start, end) keeping the same header.
// Bounds are clamped to the available rows.
func (t *Table) Slice(start, end int) *Table {
	if start < 0 {
		start = 0
	}
	if end > len(t.Rows) {
		end = len(t.Rows)
	}
	if start > end {
		start = end
	}
	return &Table{Header: t.Header, Rows: t.Rows[start:end]}
}
