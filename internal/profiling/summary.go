package profiling

import (
	"github.com/montanaflynn/stats"
	"gonum.org/v1/gonum/stat"

	"csvplot/domain/table"
)

// ColumnSummary describes the numeric values of one column
type ColumnSummary struct {
	Name    string  `json:"name"`
	Count   int     `json:"count"`
	Missing int     `json:"missing"`
	Min     float64 `json:"min"`
	Max     float64 `json:"max"`
	Mean    float64 `json:"mean"`
	Median  float64 `json:"median"`
	StdDev  float64 `json:"std_dev"`
}

// SummarizeTable returns one summary per numeric column, in table order.
func SummarizeTable(t *table.Table) []ColumnSummary {
	summaries := make([]ColumnSummary, 0, len(t.Columns))
	for i := range t.Columns {
		col := &t.Columns[i]
		if col.Kind != table.KindNumeric {
			continue
		}
		summaries = append(summaries, SummarizeColumn(col))
	}
	return summaries
}

// SummarizeColumn computes summary statistics over the present values of a
// column. Columns with no values report zeros; StdDev is the sample standard
// deviation and zero for fewer than two values.
func SummarizeColumn(col *table.Column) ColumnSummary {
	data := col.Present()
	summary := ColumnSummary{
		Name:    col.Name,
		Count:   len(data),
		Missing: len(col.Values) - len(data),
	}
	if len(data) == 0 {
		return summary
	}

	summary.Min, _ = stats.Min(data)
	summary.Max, _ = stats.Max(data)
	summary.Median, _ = stats.Median(data)

	if len(data) < 2 {
		summary.Mean = data[0]
		return summary
	}
	summary.Mean, summary.StdDev = stat.MeanStdDev(data, nil)
	return summary
}
