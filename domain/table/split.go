package table

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"time"
)

// ISOLayout is the timestamp layout used in the split encoding.
const ISOLayout = "2006-01-02T15:04:05.000Z07:00"

// splitTable is the column-oriented wire shape: column names, a row index
// and row-major data.
type splitTable struct {
	Columns []string `json:"columns"`
	Index   []int    `json:"index"`
	Data    [][]any  `json:"data"`
}

// Marshal encodes a table as {"columns":[...],"index":[...],"data":[[...]]}.
// Missing cells and non-finite numbers become null, times become ISO-8601.
func Marshal(t *Table) ([]byte, error) {
	wire := splitTable{
		Columns: t.ColumnNames(),
		Index:   t.Index,
		Data:    make([][]any, t.RowCount()),
	}
	if wire.Index == nil {
		wire.Index = []int{}
	}

	for r := range wire.Data {
		row := make([]any, len(t.Columns))
		for c, col := range t.Columns {
			if r >= len(col.Values) {
				return nil, fmt.Errorf("column %q has %d values, table has %d rows", col.Name, len(col.Values), t.RowCount())
			}
			row[c] = encodeCell(col.Values[r])
		}
		wire.Data[r] = row
	}

	return json.Marshal(wire)
}

func encodeCell(v any) any {
	switch val := v.(type) {
	case float64:
		if math.IsNaN(val) || math.IsInf(val, 0) {
			return nil
		}
		return val
	case time.Time:
		return val.Format(ISOLayout)
	default:
		return val
	}
}

// Unmarshal reconstitutes a table from its split encoding. Column kinds are
// re-inferred from the decoded values.
func Unmarshal(data []byte) (*Table, error) {
	var wire splitTable
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	if err := dec.Decode(&wire); err != nil {
		return nil, fmt.Errorf("failed to decode split table: %w", err)
	}

	if len(wire.Index) != len(wire.Data) {
		return nil, fmt.Errorf("split table index has %d entries but data has %d rows", len(wire.Index), len(wire.Data))
	}

	columns := make([]Column, len(wire.Columns))
	for c, name := range wire.Columns {
		columns[c] = Column{Name: name, Values: make([]any, len(wire.Data))}
	}

	for r, row := range wire.Data {
		if len(row) != len(wire.Columns) {
			return nil, fmt.Errorf("split table row %d has %d cells, expected %d", r, len(row), len(wire.Columns))
		}
		for c, cell := range row {
			value, err := decodeCell(cell)
			if err != nil {
				return nil, fmt.Errorf("row %d column %q: %w", r, wire.Columns[c], err)
			}
			columns[c].Values[r] = value
		}
	}

	for c := range columns {
		columns[c].Kind = InferKind(columns[c].Values)
	}

	index := wire.Index
	if index == nil {
		index = []int{}
	}
	return &Table{Columns: columns, Index: index}, nil
}

func decodeCell(cell any) (any, error) {
	switch v := cell.(type) {
	case nil:
		return nil, nil
	case json.Number:
		f, err := v.Float64()
		if err != nil {
			return nil, err
		}
		return f, nil
	case string:
		return v, nil
	case bool:
		return fmt.Sprintf("%t", v), nil
	default:
		return nil, fmt.Errorf("unsupported cell type %T", cell)
	}
}
