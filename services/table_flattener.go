package services

import "ifcdash/models"

// ObjectColumns returns the scalar columns followed by the discovered paths.
func ObjectColumns(paths []string) []string {
	cols := make([]string, 0, len(ObjectScalarColumns)+len(paths))
	cols = append(cols, ObjectScalarColumns...)
	return append(cols, paths...)
}

// FlattenObjects builds a table with one row per record, in record order, and
// one cell per column.
func FlattenObjects(records []models.ObjectRecord, columns []string) models.Table {
	table := models.Table{
		Columns: append([]string(nil), columns...),
		Rows:    make([][]models.Value, len(records)),
	}
	for i, rec := range records {
		row := make([]models.Value, len(columns))
		for j, col := range columns {
			row[j] = ResolveAttribute(rec, col)
		}
		table.Rows[i] = row
	}
	return table
}

// FilterRows keeps the rows whose cell in column equals v. An absent column
// yields no rows.
func FilterRows(table models.Table, column string, v models.Value) models.Table {
	out := models.Table{Columns: table.Columns, Rows: [][]models.Value{}}
	idx := table.ColumnIndex(column)
	if idx < 0 {
		return out
	}
	for _, row := range table.Rows {
		if row[idx].Equal(v) {
			out.Rows = append(out.Rows, row)
		}
	}
	return out
}
