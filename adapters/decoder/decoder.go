package decoder

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"csvplot/adapters/datareadiness/coercer"
	"csvplot/adapters/excel"
	"csvplot/domain/core"
	"csvplot/domain/table"
	"csvplot/internal"
	"csvplot/internal/errors"
)

// XLSXMediaType is the media type browsers report for .xlsx uploads
const XLSXMediaType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// Decoder turns upload payloads into tables
type Decoder struct {
	coercer *coercer.TypeCoercer
	sheets  *excel.SheetReader
	logger  *internal.Logger
}

// NewDecoder creates a decoder using the given coercer
func NewDecoder(c *coercer.TypeCoercer, sheets *excel.SheetReader) *Decoder {
	if c == nil {
		c = coercer.NewDefaultTypeCoercer()
	}
	if sheets == nil {
		sheets = excel.NewSheetReader(excel.DefaultExcelConfig())
	}
	return &Decoder{
		coercer: c,
		sheets:  sheets,
		logger:  internal.DefaultLogger.With("Decoder"),
	}
}

// Decode parses a "metadata,base64body" upload. Any failure is a
// DECODE_ERROR wrapping core.ErrDecode.
func (d *Decoder) Decode(contents, filename string) (*table.Table, error) {
	payload, err := ParsePayload(contents)
	if err != nil {
		return nil, decodeFailure(filename, err.Error())
	}
	return d.DecodeBytes(payload.Body, filename, payload.MediaType)
}

// DecodeBytes parses an already decoded upload body.
func (d *Decoder) DecodeBytes(body []byte, filename, mediaType string) (*table.Table, error) {
	var rows [][]string
	if isSpreadsheet(filename, mediaType) {
		sheet, err := d.sheets.ReadRows(body)
		if err != nil {
			return nil, decodeFailure(filename, err.Error())
		}
		rows = sheet.Rows
	} else {
		var err error
		rows, err = d.readCSV(body)
		if err != nil {
			return nil, decodeFailure(filename, err.Error())
		}
	}

	tbl := d.buildTable(rows)
	d.logger.Debug("%s decoded (%d columns, %d rows)", filename, tbl.ColumnCount(), tbl.RowCount())
	return tbl, nil
}

func (d *Decoder) readCSV(body []byte) ([][]string, error) {
	body = bytes.TrimPrefix(body, utf8BOM)
	if !utf8.Valid(body) {
		return nil, fmt.Errorf("file is not valid UTF-8")
	}
	if len(bytes.TrimSpace(body)) == 0 {
		return nil, fmt.Errorf("file is empty")
	}

	reader := csv.NewReader(bytes.NewReader(body))
	reader.FieldsPerRecord = -1

	var rows [][]string
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("malformed CSV: %w", err)
		}
		rows = append(rows, record)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("file has no header row")
	}
	return rows, nil
}

// buildTable uses row 0 as the header. Short rows are padded with missing
// cells; cells beyond the header width are dropped.
func (d *Decoder) buildTable(rows [][]string) *table.Table {
	headers := normalizeHeaders(rows[0])
	data := rows[1:]

	columns := make([]table.Column, len(headers))
	for c, name := range headers {
		raw := make([]string, len(data))
		for r, row := range data {
			if c < len(row) {
				raw[r] = row[c]
			}
		}
		columns[c] = d.coercer.CoerceColumn(name, raw)
	}

	return table.New(columns)
}

// normalizeHeaders trims names, names blank headers "Unnamed: i" and
// suffixes repeats with ".1", ".2", ...
func normalizeHeaders(raw []string) []string {
	headers := make([]string, len(raw))
	seen := make(map[string]int, len(raw))
	for i, h := range raw {
		name := strings.TrimSpace(h)
		if name == "" {
			name = fmt.Sprintf("Unnamed: %d", i)
		}
		base := name
		for seen[name] > 0 {
			name = fmt.Sprintf("%s.%d", base, seen[base])
			seen[base]++
		}
		seen[name]++
		headers[i] = name
	}
	return headers
}

func isSpreadsheet(filename, mediaType string) bool {
	if mediaType == XLSXMediaType {
		return true
	}
	return strings.EqualFold(filepath.Ext(filename), ".xlsx")
}

func decodeFailure(filename, reason string) error {
	return errors.DecodeError("could not parse file", core.NewDecodeError(filename, reason))
}
