package decoder

import (
	"bytes"
	"testing"

	"csvplot/domain/core"
	"csvplot/domain/table"
	"csvplot/internal/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func csvPayload(body string) string {
	return EncodePayload("text/csv", []byte(body))
}

func TestDecodeCSV(t *testing.T) {
	d := NewDecoder(nil, nil)

	tbl, err := d.Decode(csvPayload("date,value,label\n2024-01-01,1,a\n2024-01-02,2.5,b\n2024-01-03,,c\n"), "series.csv")
	require.NoError(t, err)

	assert.Equal(t, 3, tbl.RowCount())
	assert.Equal(t, 3, tbl.ColumnCount())
	assert.Equal(t, []string{"date", "value", "label"}, tbl.ColumnNames())
	assert.Equal(t, []string{"value"}, tbl.NumericColumns())

	value, ok := tbl.Column("value")
	require.True(t, ok)
	assert.Equal(t, []any{1.0, 2.5, nil}, value.Values)

	date, ok := tbl.Column("date")
	require.True(t, ok)
	assert.Equal(t, table.KindText, date.Kind)
}

func TestDecodeRaggedRowsAndHeaders(t *testing.T) {
	d := NewDecoder(nil, nil)

	tbl, err := d.Decode(csvPayload("a, a ,\n1,2\n3,4,5,6\n"), "ragged.csv")
	require.NoError(t, err)

	assert.Equal(t, []string{"a", "a.1", "Unnamed: 2"}, tbl.ColumnNames())
	assert.Equal(t, 2, tbl.RowCount())
	third, _ := tbl.Column("Unnamed: 2")
	assert.Equal(t, []any{nil, 5.0}, third.Values)
}

func TestDecodeHeaderOnly(t *testing.T) {
	tbl, err := NewDecoder(nil, nil).Decode(csvPayload("x,y\n"), "empty.csv")
	require.NoError(t, err)
	assert.Equal(t, 0, tbl.RowCount())
	assert.Equal(t, 2, tbl.ColumnCount())
}

func TestDecodeStripsBOM(t *testing.T) {
	body := append([]byte{0xEF, 0xBB, 0xBF}, []byte("x,y\n1,2\n")...)
	tbl, err := NewDecoder(nil, nil).Decode(EncodePayload("text/csv", body), "bom.csv")
	require.NoError(t, err)
	assert.Equal(t, []string{"x", "y"}, tbl.ColumnNames())
}

func TestDecodeErrors(t *testing.T) {
	tests := []struct {
		name     string
		contents string
	}{
		{"no separator", "data:text/csv;base64"},
		{"not base64 flagged", "data:text/csv,x,y"},
		{"bad base64", "data:text/csv;base64,@@@"},
		{"not utf8", EncodePayload("text/csv", []byte{0xff, 0xfe, 0x00})},
		{"empty body", EncodePayload("text/csv", []byte("  \n"))},
		{"bare quote", csvPayload("a,b\n1\"x,2\n")},
	}

	d := NewDecoder(nil, nil)
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			_, err := d.Decode(test.contents, "bad.csv")
			require.Error(t, err)
			assert.Equal(t, errors.CodeDecodeError, errors.GetCode(err))
			assert.True(t, core.IsDecodeError(err))
		})
	}
}

func TestParsePayloadToleratesMissingPadding(t *testing.T) {
	payload, err := ParsePayload("data:text/csv;base64,YSxi")
	require.NoError(t, err)
	assert.Equal(t, "a,b", string(payload.Body))

	payload, err = ParsePayload("data:text/csv;base64,YSxiCg")
	require.NoError(t, err)
	assert.Equal(t, "a,b\n", string(payload.Body))
	assert.Equal(t, "text/csv", payload.MediaType)
}

func TestDecodeSpreadsheet(t *testing.T) {
	f := excelize.NewFile()
	require.NoError(t, f.SetSheetRow("Sheet1", "A1", &[]any{"date", "value"}))
	require.NoError(t, f.SetSheetRow("Sheet1", "A2", &[]any{"2024-01-01", 3}))
	var buf bytes.Buffer
	require.NoError(t, f.Write(&buf))
	require.NoError(t, f.Close())

	tbl, err := NewDecoder(nil, nil).Decode(EncodePayload(XLSXMediaType, buf.Bytes()), "book.xlsx")
	require.NoError(t, err)
	assert.Equal(t, []string{"date", "value"}, tbl.ColumnNames())
	assert.Equal(t, []string{"value"}, tbl.NumericColumns())
}
