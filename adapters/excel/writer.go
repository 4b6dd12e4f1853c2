package excel

import (
	"fmt"
	"io"
	"unicode/utf8"

	"mandiprices/domain/record"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"
)

// Writer serialises tables to xlsx: one sheet, a header row with the column
// names, then one row per record. There is no index column and every cell
// is written as a string.
type Writer struct {
	config ExcelConfig
	logger *zap.Logger
}

// NewWriter creates a spreadsheet writer
func NewWriter(config ExcelConfig, logger *zap.Logger) *Writer {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Writer{config: config, logger: logger}
}

// WriteTable writes the table to path, replacing any existing file
func (w *Writer) WriteTable(table *record.Table, path string) error {
	f, err := w.build(table)
	if err != nil {
		return err
	}
	defer f.Close()

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("failed to save %s: %w", path, err)
	}

	w.logger.Debug("spreadsheet written",
		zap.String("path", path),
		zap.Int("columns", len(table.Columns)),
		zap.Int("rows", table.Len()))
	return nil
}

// WriteTo streams the workbook to dst, for HTTP downloads
func (w *Writer) WriteTo(table *record.Table, dst io.Writer) error {
	f, err := w.build(table)
	if err != nil {
		return err
	}
	defer f.Close()

	if err := f.Write(dst); err != nil {
		return fmt.Errorf("failed to write workbook: %w", err)
	}
	return nil
}

func (w *Writer) build(table *record.Table) (*excelize.File, error) {
	f := excelize.NewFile()
	sheet := w.config.sheet()

	if sheet != DefaultSheet {
		if err := f.SetSheetName(DefaultSheet, sheet); err != nil {
			f.Close()
			return nil, fmt.Errorf("failed to name sheet %q: %w", sheet, err)
		}
	}

	// Header row
	for i, h := range table.Columns {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		if err := f.SetCellStr(sheet, cell, h); err != nil {
			f.Close()
			return nil, err
		}
	}

	// Data rows
	for r, row := range table.Rows {
		rowIdx := r + 2
		for c, v := range row {
			cell, _ := excelize.CoordinatesToCellName(c+1, rowIdx)
			if n := utf8.RuneCountInString(v); n > excelize.TotalCellChars {
				f.Close()
				return nil, fmt.Errorf("cell %s holds %d characters, the limit is %d",
					cell, n, excelize.TotalCellChars)
			}
			if err := f.SetCellStr(sheet, cell, v); err != nil {
				f.Close()
				return nil, err
			}
		}
	}

	// The dimension records the full grid so readers keep all-empty
	// trailing rows.
	if len(table.Columns) > 0 {
		last, _ := excelize.CoordinatesToCellName(len(table.Columns), table.Len()+1)
		if err := f.SetSheetDimension(sheet, "A1:"+last); err != nil {
			f.Close()
			return nil, err
		}
	}

	return f, nil
}
