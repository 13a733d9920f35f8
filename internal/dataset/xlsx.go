// Package dataset loads and saves the spreadsheet the enrichment runs over.
package dataset

import (
	stdErrors "errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/lepinkainen/manga-autofill/internal/errors"
	"github.com/xuri/excelize/v2"
)

const (
	// OutputSuffix is inserted before the extension of the input file name.
	OutputSuffix = "_anreichert"
	// OutputExt is the extension of every written file.
	OutputExt = ".xlsx"
	// DefaultSheet is the sheet name used when saving.
	DefaultSheet = "Sheet1"
)

// Load reads the first sheet of the workbook at path. The first row is the
// header; every following row becomes a Row keyed by header name.
func Load(path string) (*Dataset, error) {
	if _, err := os.Stat(path); err != nil {
		if stdErrors.Is(err, fs.ErrNotExist) {
			return nil, errors.NewInputNotFoundError(path, err)
		}
		return nil, fmt.Errorf("failed to stat input file: %w", err)
	}

	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open workbook %s: %w", path, err)
	}
	defer func() { _ = f.Close() }()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("workbook %s has no sheets", path)
	}
	sheet := sheets[0]

	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %q: %w", sheet, err)
	}

	ds := &Dataset{Sheet: sheet}
	if len(rows) == 0 {
		return ds, nil
	}

	// cells right of the last header still belong to a column
	width := len(rows[0])
	for _, cells := range rows[1:] {
		width = max(width, len(cells))
	}
	header := make([]string, width)
	copy(header, rows[0])

	ds.Columns = headerNames(header)
	ds.Rows = make([]Row, 0, len(rows)-1)

	for r, cells := range rows[1:] {
		row := make(Row, len(ds.Columns))
		for c, column := range ds.Columns {
			if c >= len(cells) || cells[c] == "" {
				row[column] = Null()
				continue
			}
			// header is sheet row 1, data starts at sheet row 2
			row[column] = cellValue(f, sheet, c+1, r+2, cells[c])
		}
		ds.Rows = append(ds.Rows, row)
	}

	slog.Debug("Loaded dataset", "path", path, "sheet", sheet, "rows", len(ds.Rows), "columns", len(ds.Columns))
	return ds, nil
}

// cellValue classifies a non-empty cell as Number, Bool or Text.
func cellValue(f *excelize.File, sheet string, col, row int, formatted string) Value {
	cell, err := excelize.CoordinatesToCellName(col, row)
	if err != nil {
		return Text(formatted)
	}

	typ, err := f.GetCellType(sheet, cell)
	if err != nil {
		return Text(formatted)
	}

	switch typ {
	case excelize.CellTypeBool:
		raw, err := f.GetCellValue(sheet, cell, excelize.Options{RawCellValue: true})
		if err != nil {
			return Text(formatted)
		}
		return Bool(raw == "1" || strings.EqualFold(raw, "TRUE"))
	case excelize.CellTypeNumber, excelize.CellTypeUnset:
		raw, err := f.GetCellValue(sheet, cell, excelize.Options{RawCellValue: true})
		if err != nil {
			return Text(formatted)
		}
		if _, err := strconv.ParseFloat(raw, 64); err == nil {
			return Number(raw)
		}
	}

	return Text(formatted)
}

// headerNames names empty header cells "Unnamed: <index>" and suffixes
// duplicates with ".<n>" so every column key is unique.
func headerNames(header []string) []string {
	names := make([]string, len(header))
	seen := make(map[string]int, len(header))

	for i, h := range header {
		name := strings.TrimSpace(h)
		if name == "" {
			name = fmt.Sprintf("Unnamed: %d", i)
		}

		if n, dup := seen[name]; dup {
			seen[name] = n + 1
			name = fmt.Sprintf("%s.%d", name, n+1)
		} else {
			seen[name] = 0
		}
		names[i] = name
	}

	return names
}

// Save writes ds as a new workbook at path: one header row, then one row per
// dataset row in order. No index column is written.
func Save(ds *Dataset, path string) error {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	sheet := DefaultSheet

	for c, column := range ds.Columns {
		cell, err := excelize.CoordinatesToCellName(c+1, 1)
		if err != nil {
			return fmt.Errorf("failed to address header cell: %w", err)
		}
		if err := f.SetCellStr(sheet, cell, column); err != nil {
			return fmt.Errorf("failed to write header %q: %w", column, err)
		}
	}

	for r, row := range ds.Rows {
		for c, column := range ds.Columns {
			v, ok := row.Get(column)
			if !ok {
				continue
			}

			cell, err := excelize.CoordinatesToCellName(c+1, r+2)
			if err != nil {
				return fmt.Errorf("failed to address cell: %w", err)
			}

			switch v.Kind() {
			case KindNumber:
				err = f.SetCellDefault(sheet, cell, v.String())
			case KindBool:
				err = f.SetCellBool(sheet, cell, v.Truth())
			default:
				err = f.SetCellStr(sheet, cell, v.String())
			}
			if err != nil {
				return fmt.Errorf("failed to write %s: %w", cell, err)
			}
		}
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("failed to save workbook %s: %w", path, err)
	}

	slog.Debug("Saved dataset", "path", path, "rows", len(ds.Rows))
	return nil
}

// OutputPath derives the output file from the input file by replacing its
// extension with OutputSuffix + OutputExt, e.g. data/manga.xlsx becomes
// data/manga_anreichert.xlsx.
func OutputPath(input string) string {
	ext := filepath.Ext(input)
	if ext == filepath.Base(input) {
		// dotfile such as ".xlsx" has no extension of its own
		ext = ""
	}
	return strings.TrimSuffix(input, ext) + OutputSuffix + OutputExt
}
