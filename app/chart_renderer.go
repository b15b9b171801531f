package app

import (
	"fmt"
	"math"
	"time"

	"csvplot/domain/chart"
	"csvplot/domain/core"
	"csvplot/domain/session"
	"csvplot/domain/table"
)

// RenderChart builds the line chart for one panel. A missing table, an unset
// axis or unknown columns all give an empty chart rather than an error.
func (s *DashboardService) RenderChart(sel session.AxisSelection, state session.State) chart.Spec {
	if !sel.Complete() {
		return chart.Empty(sel.Filename)
	}

	entry, ok := state.Find(sel.Filename)
	if !ok {
		s.logger.Debug("%v", core.NewLookupMiss(sel.Filename))
		return chart.Empty(sel.Filename)
	}

	tbl, err := table.Unmarshal(entry.Data)
	if err != nil {
		s.logger.Warn("stored table %s could not be read: %v", sel.Filename, err)
		return chart.Empty(sel.Filename)
	}

	return s.plot(sel.Filename, tbl, sel)
}

func (s *DashboardService) plot(title string, tbl *table.Table, sel session.AxisSelection) chart.Spec {
	xCol, ok := tbl.Column(sel.X)
	if !ok {
		s.logger.Debug("%s: %v", title, fmt.Errorf("%w: x column %q", core.ErrUnknownColumn, sel.X))
		return chart.Empty(title)
	}

	yCols := numericColumns(tbl, sel.Y)
	if len(yCols) == 0 {
		return chart.Empty(title)
	}

	xValues, axisType := s.xAxisValues(xCol)

	spec := chart.Spec{
		Title:  title,
		XAxis:  chart.Axis{Title: xCol.Name, Type: axisType},
		YAxis:  chart.Axis{Title: "value"},
		Series: make([]chart.Series, 0, len(yCols)),
	}
	if len(yCols) == 1 {
		spec.YAxis.Title = yCols[0].Name
	}

	for _, col := range yCols {
		spec.Series = append(spec.Series, chart.Series{
			Name: col.Name,
			X:    xValues,
			Y:    yValues(col),
		})
	}
	return spec
}

// xAxisValues tries to coerce the column to dates first and keeps the
// original values when that fails.
func (s *DashboardService) xAxisValues(col *table.Column) ([]any, chart.AxisType) {
	coerced, err := s.coercer.ToDatetime(col)
	if err == nil {
		out := make([]any, len(coerced.Values))
		for i, v := range coerced.Values {
			if t, ok := v.(time.Time); ok {
				out[i] = t.Format(table.ISOLayout)
			}
		}
		return out, chart.AxisDate
	}
	s.logger.Trace("x column %q kept as %s: %v", col.Name, col.Kind, err)

	out := make([]any, len(col.Values))
	copy(out, col.Values)
	if col.Kind == table.KindNumeric {
		return out, chart.AxisLinear
	}
	return out, chart.AxisCategory
}

// numericColumns resolves names to numeric columns, dropping unknown,
// non-numeric and repeated names.
func numericColumns(tbl *table.Table, names []string) []*table.Column {
	seen := make(map[string]bool, len(names))
	var cols []*table.Column
	for _, name := range names {
		if seen[name] {
			continue
		}
		seen[name] = true
		col, ok := tbl.Column(name)
		if !ok || col.Kind != table.KindNumeric {
			continue
		}
		cols = append(cols, col)
	}
	return cols
}

func yValues(col *table.Column) []*float64 {
	floats := col.Floats()
	out := make([]*float64, len(floats))
	for i := range floats {
		if math.IsNaN(floats[i]) {
			continue
		}
		out[i] = &floats[i]
	}
	return out
}
