package coercer

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"csvplot/domain/core"
	"csvplot/domain/table"
)

// TypeCoercer turns raw CSV cells into typed column values
type TypeCoercer struct {
	config CoercionConfig
}

// CoercionConfig defines the coercion rules
type CoercionConfig struct {
	MissingMarkers   []string `json:"missing_markers"`   // cells read as missing
	TimestampLayouts []string `json:"timestamp_layouts"` // tried in order for date coercion
	TrimSpace        bool     `json:"trim_space"`        // whether cells are trimmed before parsing
}

// DefaultCoercionConfig returns sensible defaults
func DefaultCoercionConfig() CoercionConfig {
	return CoercionConfig{
		MissingMarkers: []string{
			"", "NA", "N/A", "n/a", "NaN", "nan", "-NaN", "-nan", "NULL", "null", "None", "<NA>", "#N/A",
		},
		TimestampLayouts: []string{
			time.RFC3339Nano,
			time.RFC3339,
			"2006-01-02T15:04:05.000",
			"2006-01-02T15:04:05",
			"2006-01-02T15:04",
			"2006-01-02 15:04:05Z07:00",
			"2006-01-02 15:04:05.000",
			"2006-01-02 15:04:05",
			"2006-01-02 15:04",
			"2006-01-02",
			"2006/01/02 15:04:05",
			"2006/01/02",
			"01/02/2006 15:04:05",
			"01/02/2006 15:04",
			"01/02/2006",
			"1/2/2006",
			"02-Jan-2006",
			"2 Jan 2006",
			"Jan 2, 2006",
			"January 2, 2006",
			"2006-01",
			"20060102",
		},
		TrimSpace: true,
	}
}

// NewTypeCoercer creates a coercer with the given config
func NewTypeCoercer(config CoercionConfig) *TypeCoercer {
	return &TypeCoercer{config: config}
}

// NewDefaultTypeCoercer creates a coercer with DefaultCoercionConfig
func NewDefaultTypeCoercer() *TypeCoercer {
	return NewTypeCoercer(DefaultCoercionConfig())
}

// IsMissing reports whether a raw cell counts as a missing value
func (c *TypeCoercer) IsMissing(raw string) bool {
	if c.config.TrimSpace {
		raw = strings.TrimSpace(raw)
	}
	for _, marker := range c.config.MissingMarkers {
		if raw == marker {
			return true
		}
	}
	return false
}

// ParseNumeric parses a plain decimal or scientific number. Thousands
// separators and currency symbols are not accepted.
func (c *TypeCoercer) ParseNumeric(raw string) (float64, bool) {
	if c.config.TrimSpace {
		raw = strings.TrimSpace(raw)
	}
	if raw == "" {
		return 0, false
	}
	val, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(val) {
		return 0, false
	}
	// ParseFloat accepts "inf"/"infinity"; keep them out of numeric columns
	// unless written as a number overflow.
	if math.IsInf(val, 0) && !strings.ContainsAny(raw, "0123456789") {
		return 0, false
	}
	return val, true
}

// ParseTimestamp attempts each configured layout in order
func (c *TypeCoercer) ParseTimestamp(raw string) (time.Time, bool) {
	if c.config.TrimSpace {
		raw = strings.TrimSpace(raw)
	}
	if raw == "" {
		return time.Time{}, false
	}
	for _, layout := range c.config.TimestampLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// CoerceColumn types one column of raw cells. Every non-missing cell must
// parse as a number for the column to be numeric; otherwise cells stay text.
// Missing cells become nil either way.
func (c *TypeCoercer) CoerceColumn(name string, raw []string) table.Column {
	values := make([]any, len(raw))
	numeric := true
	for i, cell := range raw {
		if c.IsMissing(cell) {
			continue
		}
		f, ok := c.ParseNumeric(cell)
		if !ok {
			numeric = false
			break
		}
		values[i] = f
	}

	if !numeric {
		for i, cell := range raw {
			if c.IsMissing(cell) {
				values[i] = nil
				continue
			}
			if c.config.TrimSpace {
				cell = strings.TrimSpace(cell)
			}
			values[i] = cell
		}
		return table.Column{Name: name, Kind: table.KindText, Values: values}
	}

	return table.Column{Name: name, Kind: table.InferKind(values), Values: values}
}

// ToDatetime coerces a column to time values. It fails with ErrTypeCoercion
// when the column is numeric, has no values, or any present value does not
// parse; callers are expected to keep the original column on failure.
func (c *TypeCoercer) ToDatetime(col *table.Column) (table.Column, error) {
	switch col.Kind {
	case table.KindDatetime:
		return *col, nil
	case table.KindNumeric:
		return table.Column{}, fmt.Errorf("%w: column %q is numeric", core.ErrTypeCoercion, col.Name)
	}

	values := make([]any, len(col.Values))
	present := 0
	for i, v := range col.Values {
		switch val := v.(type) {
		case nil:
			continue
		case time.Time:
			values[i] = val
		case string:
			t, ok := c.ParseTimestamp(val)
			if !ok {
				return table.Column{}, fmt.Errorf("%w: column %q value %q is not a date", core.ErrTypeCoercion, col.Name, val)
			}
			values[i] = t
		default:
			return table.Column{}, fmt.Errorf("%w: column %q holds %T", core.ErrTypeCoercion, col.Name, v)
		}
		present++
	}
	if present == 0 {
		return table.Column{}, fmt.Errorf("%w: column %q has no values", core.ErrTypeCoercion, col.Name)
	}

	return table.Column{Name: col.Name, Kind: table.KindDatetime, Values: values}, nil
}
