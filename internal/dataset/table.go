package dataset

// Table is an in-memory tabular dataset with named columns, as delivered by
// any of the sources (CSV file, HTTP, FTP, relational query). Cells are kept
// as raw text until coercion.
type Table struct {
	Columns []string
	Rows    [][]string
}

// ColumnIndex returns the position of a column by exact name, or -1.
func (t *Table) ColumnIndex(name string) int {
	for i, c := range t.Columns {
		if c == name {
			return i
		}
	}
	return -1
}

// Empty reports whether the table has no header or no rows.
func (t *Table) Empty() bool {
	return t == nil || len(t.Columns) == 0 || len(t.Rows) == 0
}

// cell returns the raw text at (row, col), tolerating short rows.
func cell(row []string, col int) string {
	if col < 0 || col >= len(row) {
		return ""
	}
	return row[col]
}
