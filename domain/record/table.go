package record

import (
	"mandiprices/domain/core"
)

// Table is the flattened form of a record sequence: a fixed column order and
// one row of string cells per record.
type Table struct {
	Columns []string   `json:"columns"`
	Rows    [][]string `json:"rows"`
}

// FromRecords builds a table whose columns are the union of all field names
// in first-seen order. Rows keep the input order; a record without a given
// column gets an empty cell there.
func FromRecords(records []Record) *Table {
	index := make(map[string]int)
	var columns []string
	for _, rec := range records {
		for _, f := range rec.Fields {
			if _, seen := index[f.Name]; !seen {
				index[f.Name] = len(columns)
				columns = append(columns, f.Name)
			}
		}
	}

	rows := make([][]string, len(records))
	for i, rec := range records {
		row := make([]string, len(columns))
		for _, f := range rec.Fields {
			row[index[f.Name]] = f.Value
		}
		rows[i] = row
	}

	return &Table{Columns: columns, Rows: rows}
}

// Len returns the number of data rows.
func (t *Table) Len() int {
	return len(t.Rows)
}

// ColumnIndex returns the position of a column, or -1.
func (t *Table) ColumnIndex(name string) int {
	for i, c := range t.Columns {
		if c == name {
			return i
		}
	}
	return -1
}

// Column returns all cells of the named column, or nil if the column does
// not exist.
func (t *Table) Column(name string) []string {
	idx := t.ColumnIndex(name)
	if idx < 0 {
		return nil
	}
	out := make([]string, len(t.Rows))
	for i, row := range t.Rows {
		if idx < len(row) {
			out[i] = row[idx]
		}
	}
	return out
}

// Records converts the table back into records. Every record carries every
// column, so sparse input comes back with explicit empty values.
func (t *Table) Records() []Record {
	out := make([]Record, len(t.Rows))
	for i, row := range t.Rows {
		rec := Record{Fields: make([]Field, len(t.Columns))}
		for j, col := range t.Columns {
			var v string
			if j < len(row) {
				v = row[j]
			}
			rec.Fields[j] = Field{Name: col, Value: v}
		}
		out[i] = rec
	}
	return out
}

// Maps returns one map per row, as served over JSON.
func (t *Table) Maps() []map[string]string {
	records := t.Records()
	out := make([]map[string]string, len(records))
	for i, rec := range records {
		out[i] = rec.Map()
	}
	return out
}

// Fingerprint hashes the header and all cells. Equal tables have equal
// fingerprints.
func (t *Table) Fingerprint() core.Hash {
	return core.ComputeGridHash(t.Columns, t.Rows)
}
