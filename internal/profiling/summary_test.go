package profiling

import (
	"testing"

	"csvplot/domain/table"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSummarizeTableNumericOnly(t *testing.T) {
	tbl := table.New([]table.Column{
		{Name: "label", Kind: table.KindText, Values: []any{"a", "b", "c", "d"}},
		{Name: "value", Kind: table.KindNumeric, Values: []any{2.0, 4.0, nil, 6.0}},
	})

	summaries := SummarizeTable(tbl)
	require.Len(t, summaries, 1)

	s := summaries[0]
	assert.Equal(t, "value", s.Name)
	assert.Equal(t, 3, s.Count)
	assert.Equal(t, 1, s.Missing)
	assert.Equal(t, 2.0, s.Min)
	assert.Equal(t, 6.0, s.Max)
	assert.InDelta(t, 4.0, s.Mean, 1e-9)
	assert.InDelta(t, 4.0, s.Median, 1e-9)
	assert.InDelta(t, 2.0, s.StdDev, 1e-9)
}

func TestSummarizeColumnEdgeCases(t *testing.T) {
	empty := SummarizeColumn(&table.Column{Name: "e", Kind: table.KindNumeric, Values: []any{nil, nil}})
	assert.Equal(t, ColumnSummary{Name: "e", Missing: 2}, empty)

	single := SummarizeColumn(&table.Column{Name: "s", Kind: table.KindNumeric, Values: []any{7.0}})
	assert.Equal(t, 7.0, single.Mean)
	assert.Equal(t, 0.0, single.StdDev)
	assert.Equal(t, 7.0, single.Median)
}
