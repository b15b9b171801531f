package chart

// AxisType decides how the X axis is scaled
type AxisType string

const (
	AxisDate     AxisType = "date"
	AxisLinear   AxisType = "linear"
	AxisCategory AxisType = "category"
)

// Axis describes one chart axis
type Axis struct {
	Title string   `json:"title,omitempty"`
	Type  AxisType `json:"type,omitempty"`
}

// Series is one line. X holds ISO-8601 strings on a date axis, numbers on a
// linear axis and strings on a category axis; nil entries are gaps.
type Series struct {
	Name string     `json:"name"`
	X    []any      `json:"x"`
	Y    []*float64 `json:"y"`
}

// Spec is a line-chart specification for one panel.
type Spec struct {
	Title  string   `json:"title,omitempty"`
	XAxis  Axis     `json:"x_axis"`
	YAxis  Axis     `json:"y_axis"`
	Series []Series `json:"series"`
}

// Empty returns a chart with no series
func Empty(title string) Spec {
	return Spec{Title: title, Series: []Series{}}
}

// IsEmpty reports whether the chart has nothing to draw
func (s Spec) IsEmpty() bool {
	return len(s.Series) == 0
}
