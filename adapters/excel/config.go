package excel

// ExcelConfig holds configuration for spreadsheet uploads
type ExcelConfig struct {
	SheetName string `json:"sheet_name"` // empty means the first sheet
}

// DefaultExcelConfig returns sensible defaults for Excel processing
func DefaultExcelConfig() ExcelConfig {
	return ExcelConfig{}
}
