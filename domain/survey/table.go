package survey

import "sort"

// Row represents one respondent's answers keyed by column header
type Row map[string]string

// Table is an in-memory survey table: rows are respondents, columns are
// question/metadata fields. Every row carries a value (possibly empty) for
// every declared header, and headers are unique.
type Table struct {
	Headers []string
	Rows    []Row
}

// NewTable creates an empty table with the given headers
func NewTable(headers []string) *Table {
	h := make([]string, len(headers))
	copy(h, headers)
	return &Table{Headers: h, Rows: []Row{}}
}

// RowCount returns the number of data rows
func (t *Table) RowCount() int {
	return len(t.Rows)
}

// ColumnCount returns the number of declared columns
func (t *Table) ColumnCount() int {
	return len(t.Headers)
}

// IsEmpty reports whether the table has no data rows
func (t *Table) IsEmpty() bool {
	return t == nil || len(t.Rows) == 0
}

// HasColumn reports whether the header is declared
func (t *Table) HasColumn(name string) bool {
	for _, h := range t.Headers {
		if h == name {
			return true
		}
	}
	return false
}

// AppendRow adds a row, padding missing headers with the empty string so
// the every-row-has-every-column invariant holds
func (t *Table) AppendRow(row Row) {
	padded := make(Row, len(t.Headers))
	for _, h := range t.Headers {
		padded[h] = row[h]
	}
	t.Rows = append(t.Rows, padded)
}

// Column returns the values of one column in row order
func (t *Table) Column(name string) []string {
	values := make([]string, len(t.Rows))
	for i, row := range t.Rows {
		values[i] = row[name]
	}
	return values
}

// DistinctValues returns the sorted distinct non-empty values of a column
func (t *Table) DistinctValues(column string) []string {
	seen := make(map[string]bool)
	for _, row := range t.Rows {
		if v := row[column]; v != "" {
			seen[v] = true
		}
	}
	values := make([]string, 0, len(seen))
	for v := range seen {
		values = append(values, v)
	}
	sort.Strings(values)
	return values
}

// CountBy returns the number of rows per non-empty value of a column
func (t *Table) CountBy(column string) map[string]int {
	counts := make(map[string]int)
	for _, row := range t.Rows {
		if v := row[column]; v != "" {
			counts[v]++
		}
	}
	return counts
}

// Filter returns a new table containing the rows for which keep returns
// true. Rows are shared, not copied; callers must not mutate them.
func (t *Table) Filter(keep func(Row) bool) *Table {
	out := NewTable(t.Headers)
	for _, row := range t.Rows {
		if keep(row) {
			out.Rows = append(out.Rows, row)
		}
	}
	return out
}

// Clone returns a deep copy, so cleaning passes can rewrite cells without
// touching the source table
func (t *Table) Clone() *Table {
	out := NewTable(t.Headers)
	out.Rows = make([]Row, len(t.Rows))
	for i, row := range t.Rows {
		dup := make(Row, len(row))
		for k, v := range row {
			dup[k] = v
		}
		out.Rows[i] = dup
	}
	return out
}

// MissingCount returns the number of empty cells in a column
func (t *Table) MissingCount(column string) int {
	count := 0
	for _, row := range t.Rows {
		if row[column] == "" {
			count++
		}
	}
	return count
}
