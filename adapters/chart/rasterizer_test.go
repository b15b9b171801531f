package chart

import (
	"bytes"
	"image/png"
	"testing"

	"csvplot/domain/chart"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ptr(f float64) *float64 { return &f }

func decodeSize(t *testing.T, buf *bytes.Buffer) (int, int) {
	t.Helper()
	img, err := png.Decode(buf)
	require.NoError(t, err)
	b := img.Bounds()
	return b.Dx(), b.Dy()
}

func TestRenderEmptyChartIsBlank(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewPNGRasterizer(320, 200).RenderPNG(chart.Empty("none"), &buf))

	w, h := decodeSize(t, &buf)
	assert.Equal(t, 320, w)
	assert.Equal(t, 200, h)
}

func TestRenderDateChart(t *testing.T) {
	spec := chart.Spec{
		Title: "series.csv",
		XAxis: chart.Axis{Title: "date", Type: chart.AxisDate},
		YAxis: chart.Axis{Title: "value"},
		Series: []chart.Series{{
			Name: "value",
			X:    []any{"2024-01-01T00:00:00.000Z", "2024-01-02T00:00:00.000Z", "2024-01-03T00:00:00.000Z"},
			Y:    []*float64{ptr(1), nil, ptr(3)},
		}},
	}

	var buf bytes.Buffer
	require.NoError(t, NewPNGRasterizer(640, 360).RenderPNG(spec, &buf))
	w, h := decodeSize(t, &buf)
	assert.Equal(t, 640, w)
	assert.Equal(t, 360, h)
}

func TestRenderCategoryAndLinearCharts(t *testing.T) {
	for _, axis := range []chart.AxisType{chart.AxisCategory, chart.AxisLinear} {
		xs := []any{"a", "b", "c"}
		if axis == chart.AxisLinear {
			xs = []any{1.0, 2.0, 3.0}
		}
		spec := chart.Spec{
			XAxis: chart.Axis{Type: axis},
			Series: []chart.Series{
				{Name: "one", X: xs, Y: []*float64{ptr(1), ptr(2), ptr(4)}},
				{Name: "two", X: xs, Y: []*float64{ptr(3), ptr(2), ptr(1)}},
			},
		}

		var buf bytes.Buffer
		require.NoError(t, NewPNGRasterizer(400, 300).RenderPNG(spec, &buf), "axis %s", axis)
		assert.Greater(t, buf.Len(), 0)
	}
}

func TestRenderRejectsBadDates(t *testing.T) {
	spec := chart.Spec{
		XAxis:  chart.Axis{Type: chart.AxisDate},
		Series: []chart.Series{{Name: "v", X: []any{"yesterday"}, Y: []*float64{ptr(1)}}},
	}
	var buf bytes.Buffer
	assert.Error(t, NewPNGRasterizer(100, 100).RenderPNG(spec, &buf))
}

func TestCategoryTicksAreThinned(t *testing.T) {
	labels := make([]string, 30)
	for i := range labels {
		labels[i] = string(rune('a' + i%26))
	}
	ticks := categoryTicks(labels)
	assert.LessOrEqual(t, len(ticks), maxCategoryTicks)
	assert.Equal(t, "a", ticks[0].Label)
}
