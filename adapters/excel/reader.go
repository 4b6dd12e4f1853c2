package excel

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"mandiprices/domain/core"
	"mandiprices/domain/record"
	"mandiprices/internal/errors"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"
)

// DataReader reads an exported xlsx (or a CSV of the same layout) back into
// a table. The first row is the header.
type DataReader struct {
	filePath string
	fileType string // "xlsx" or "csv"
	config   ExcelConfig
	logger   *zap.Logger
}

// NewDataReader creates a new data reader that handles both Excel and CSV files
func NewDataReader(filePath string, config ExcelConfig, logger *zap.Logger) *DataReader {
	ext := strings.ToLower(filepath.Ext(filePath))
	fileType := "xlsx"
	if ext == ".csv" {
		fileType = "csv"
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &DataReader{filePath: filePath, fileType: fileType, config: config, logger: logger}
}

// ReadTable reads the configured file into a table
func (r *DataReader) ReadTable() (*record.Table, error) {
	if _, err := os.Stat(r.filePath); os.IsNotExist(err) {
		return nil, errors.NotFound(fmt.Sprintf("%s file %s", strings.ToUpper(r.fileType), r.filePath))
	}

	switch r.fileType {
	case "csv":
		return r.readCSV()
	case "xlsx":
		return r.readExcel()
	default:
		return nil, fmt.Errorf("unsupported file type: %s", r.fileType)
	}
}

func (r *DataReader) readExcel() (*record.Table, error) {
	startTime := time.Now()
	f, err := excelize.OpenFile(r.filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open Excel file: %w", err)
	}
	defer f.Close()

	table, err := tableFromWorkbook(f, r.config.sheet())
	if err != nil {
		return nil, err
	}

	r.logger.Debug("spreadsheet read",
		zap.String("path", r.filePath),
		zap.Int("columns", len(table.Columns)),
		zap.Int("rows", table.Len()),
		zap.Duration("elapsed", time.Since(startTime)))
	return table, nil
}

func (r *DataReader) readCSV() (*record.Table, error) {
	file, err := os.Open(r.filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open CSV file: %w", err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1
	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV file: %w", err)
	}
	return tableFromRows(rows)
}

// ReadTableFrom reads an xlsx workbook from an arbitrary stream
func ReadTableFrom(src io.Reader, config ExcelConfig) (*record.Table, error) {
	f, err := excelize.OpenReader(src)
	if err != nil {
		return nil, fmt.Errorf("failed to open workbook: %w", err)
	}
	defer f.Close()
	return tableFromWorkbook(f, config.sheet())
}

func tableFromWorkbook(f *excelize.File, sheet string) (*record.Table, error) {
	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", sheet, err)
	}
	// GetRows stops at the last row holding a value.
	if len(rows) > 0 {
		for last := lastRow(f, sheet); len(rows) < last; {
			rows = append(rows, nil)
		}
	}
	return tableFromRows(rows)
}

// lastRow returns the bottom row of the sheet's declared dimension, or 0
// when the sheet has none.
func lastRow(f *excelize.File, sheet string) int {
	ref, err := f.GetSheetDimension(sheet)
	if err != nil || ref == "" {
		return 0
	}
	bounds := strings.Split(ref, ":")
	_, row, err := excelize.CellNameToCoordinates(bounds[len(bounds)-1])
	if err != nil {
		return 0
	}
	return row
}

// tableFromRows treats the first row as the header. excelize drops trailing
// empty cells, so short rows are padded back to the header width.
func tableFromRows(rows [][]string) (*record.Table, error) {
	if len(rows) == 0 || len(rows[0]) == 0 {
		return nil, core.ErrEmptyTable
	}

	header := append([]string(nil), rows[0]...)
	data := make([][]string, 0, len(rows)-1)
	for _, row := range rows[1:] {
		cells := make([]string, len(header))
		copy(cells, row)
		data = append(data, cells)
	}

	return &record.Table{Columns: header, Rows: data}, nil
}
