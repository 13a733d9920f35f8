package datastore

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/lepinkainen/manga-autofill/internal/dataset"
)

// RowColumn holds the zero-based spreadsheet row index in exported tables.
const RowColumn = "row"

// ExportColumns maps dataset columns to SQL column names in the same order.
// SQLite compares identifiers case-insensitively, so a name that clashes with
// RowColumn or an earlier column in any casing gets a ".<n>" suffix.
func ExportColumns(columns []string) []string {
	names := make([]string, len(columns))
	seen := map[string]bool{strings.ToLower(RowColumn): true}

	for i, col := range columns {
		name := col
		for n := 1; seen[strings.ToLower(name)]; n++ {
			name = fmt.Sprintf("%s.%d", col, n)
		}
		seen[strings.ToLower(name)] = true
		names[i] = name
	}

	return names
}

// TableSchema builds statements that recreate table with one TEXT column per
// dataset column, keyed by RowColumn.
func TableSchema(table string, columns []string) string {
	defs := make([]string, 0, len(columns)+1)
	defs = append(defs, QuoteIdent(RowColumn)+" INTEGER PRIMARY KEY")
	for _, name := range ExportColumns(columns) {
		defs = append(defs, QuoteIdent(name)+" TEXT")
	}

	return fmt.Sprintf("DROP TABLE IF EXISTS %s;\nCREATE TABLE %s (\n\t%s\n);",
		QuoteIdent(table), QuoteIdent(table), strings.Join(defs, ",\n\t"))
}

// RowToMap converts one dataset row to a record keyed by ExportColumns.
// Missing values become NULL.
func RowToMap(index int, columns []string, row dataset.Row) map[string]any {
	names := ExportColumns(columns)
	record := make(map[string]any, len(columns)+1)
	for i, col := range columns {
		if v, ok := row.Get(col); ok {
			record[names[i]] = v.String()
		} else {
			record[names[i]] = nil
		}
	}
	record[RowColumn] = index
	return record
}

// WriteDataset replaces table in store with the rows of ds.
func WriteDataset(store Store, table string, ds *dataset.Dataset) error {
	if err := store.CreateTable(TableSchema(table, ds.Columns)); err != nil {
		return err
	}

	records := make([]map[string]any, 0, ds.Len())
	for i, row := range ds.Rows {
		records = append(records, RowToMap(i, ds.Columns, row))
	}

	if err := store.BatchInsert(table, records); err != nil {
		return err
	}

	slog.Info("Wrote rows to datastore", "table", table, "rows", len(records))
	return nil
}

// ExportToSQLite writes ds into table of the SQLite database at dbPath.
func ExportToSQLite(dbPath, table string, ds *dataset.Dataset) error {
	store := NewSQLiteStore(dbPath)
	if err := store.Connect(); err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	return WriteDataset(store, table, ds)
}
