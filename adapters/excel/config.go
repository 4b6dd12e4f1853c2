package excel

// DefaultSheet is the sheet every export writes to and every read uses.
const DefaultSheet = "Sheet1"

// ExcelConfig holds configuration for spreadsheet input and output
type ExcelConfig struct {
	SheetName string `json:"sheet_name"`
}

// DefaultExcelConfig returns the defaults used by the exporter
func DefaultExcelConfig() ExcelConfig {
	return ExcelConfig{
		SheetName: DefaultSheet,
	}
}

func (c ExcelConfig) sheet() string {
	if c.SheetName == "" {
		return DefaultSheet
	}
	return c.SheetName
}
