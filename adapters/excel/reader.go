package excel

import (
	"bytes"
	"fmt"
	"log"
	"time"

	"github.com/xuri/excelize/v2"
)

// SheetReader reads the cell grid of an in-memory .xlsx workbook
type SheetReader struct {
	config ExcelConfig
}

// NewSheetReader creates a reader with the given config
func NewSheetReader(config ExcelConfig) *SheetReader {
	return &SheetReader{config: config}
}

// ReadRows returns the formatted cell values of the configured sheet, or of
// the first sheet when none is configured.
func (r *SheetReader) ReadRows(body []byte) (*SheetData, error) {
	startTime := time.Now()
	f, err := excelize.OpenReader(bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to open workbook: %w", err)
	}
	defer f.Close()

	sheetName := r.config.SheetName
	if sheetName == "" {
		sheets := f.GetSheetList()
		if len(sheets) == 0 {
			return nil, fmt.Errorf("workbook has no sheets")
		}
		sheetName = sheets[0]
	}

	rows, err := f.GetRows(sheetName)
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %q: %w", sheetName, err)
	}
	log.Printf("[SheetReader] %s read in %.2fms (%d rows)", sheetName, float64(time.Since(startTime).Nanoseconds())/1e6, len(rows))

	if len(rows) == 0 {
		return nil, fmt.Errorf("sheet %q is empty", sheetName)
	}

	return &SheetData{SheetName: sheetName, Rows: rows}, nil
}
