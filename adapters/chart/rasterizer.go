package chart

import (
	"fmt"
	"image"
	"image/color"
	"image/png"
	"io"
	"log"
	"time"

	gochart "github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"csvplot/domain/chart"
	"csvplot/domain/table"
)

const maxCategoryTicks = 12

var palette = []drawing.Color{
	{R: 0x63, G: 0x6e, B: 0xfa, A: 0xff},
	{R: 0xef, G: 0x55, B: 0x3b, A: 0xff},
	{R: 0x00, G: 0xcc, B: 0x96, A: 0xff},
	{R: 0xab, G: 0x63, B: 0xfa, A: 0xff},
	{R: 0xff, G: 0xa1, B: 0x5a, A: 0xff},
	{R: 0x19, G: 0xd3, B: 0xf3, A: 0xff},
}

// PNGRasterizer draws chart specs with go-chart
type PNGRasterizer struct {
	width  int
	height int
}

// NewPNGRasterizer creates a rasterizer producing width × height images
func NewPNGRasterizer(width, height int) *PNGRasterizer {
	return &PNGRasterizer{width: width, height: height}
}

// RenderPNG writes spec as a PNG. Empty charts and charts go-chart cannot
// lay out (for example a single point) are written as a blank image.
func (r *PNGRasterizer) RenderPNG(spec chart.Spec, w io.Writer) error {
	if spec.IsEmpty() {
		return r.blank(w)
	}

	series, ticks, err := r.buildSeries(spec)
	if err != nil {
		return err
	}
	if len(series) == 0 {
		return r.blank(w)
	}

	ch := gochart.Chart{
		Title:      spec.Title,
		Width:      r.width,
		Height:     r.height,
		Background: gochart.Style{Padding: gochart.Box{Top: 40, Left: 16, Right: 16, Bottom: 16}},
		XAxis:      gochart.XAxis{Name: spec.XAxis.Title, Ticks: ticks},
		YAxis:      gochart.YAxis{Name: spec.YAxis.Title},
		Series:     series,
	}
	if spec.XAxis.Type == chart.AxisDate {
		ch.XAxis.ValueFormatter = gochart.TimeValueFormatterWithFormat("2006-01-02")
	}
	ch.Elements = []gochart.Renderable{gochart.Legend(&ch)}

	if err := ch.Render(gochart.PNG, w); err != nil {
		log.Printf("[PNGRasterizer] render error for %q: %v; writing blank image", spec.Title, err)
		return r.blank(w)
	}
	return nil
}

func (r *PNGRasterizer) buildSeries(spec chart.Spec) ([]gochart.Series, []gochart.Tick, error) {
	var out []gochart.Series
	var ticks []gochart.Tick

	for i, s := range spec.Series {
		style := gochart.Style{StrokeColor: palette[i%len(palette)], StrokeWidth: 2}

		switch spec.XAxis.Type {
		case chart.AxisDate:
			xs, ys, err := timePoints(s)
			if err != nil {
				return nil, nil, err
			}
			if len(xs) == 0 {
				continue
			}
			out = append(out, gochart.TimeSeries{Name: s.Name, XValues: xs, YValues: ys, Style: style})
		case chart.AxisLinear:
			xs, ys := numericPoints(s)
			if len(xs) == 0 {
				continue
			}
			out = append(out, gochart.ContinuousSeries{Name: s.Name, XValues: xs, YValues: ys, Style: style})
		default:
			xs, ys, labels := categoryPoints(s)
			if len(xs) == 0 {
				continue
			}
			if ticks == nil {
				ticks = categoryTicks(labels)
			}
			out = append(out, gochart.ContinuousSeries{Name: s.Name, XValues: xs, YValues: ys, Style: style})
		}
	}
	return out, ticks, nil
}

func timePoints(s chart.Series) ([]time.Time, []float64, error) {
	var xs []time.Time
	var ys []float64
	for i, x := range s.X {
		str, ok := x.(string)
		if !ok || i >= len(s.Y) || s.Y[i] == nil {
			continue
		}
		t, err := time.Parse(table.ISOLayout, str)
		if err != nil {
			return nil, nil, fmt.Errorf("series %q has bad date %q: %w", s.Name, str, err)
		}
		xs = append(xs, t)
		ys = append(ys, *s.Y[i])
	}
	return xs, ys, nil
}

func numericPoints(s chart.Series) ([]float64, []float64) {
	var xs, ys []float64
	for i, x := range s.X {
		f, ok := x.(float64)
		if !ok || i >= len(s.Y) || s.Y[i] == nil {
			continue
		}
		xs = append(xs, f)
		ys = append(ys, *s.Y[i])
	}
	return xs, ys
}

// categoryPoints places categories at their row position.
func categoryPoints(s chart.Series) ([]float64, []float64, []string) {
	var xs, ys []float64
	labels := make([]string, len(s.X))
	for i, x := range s.X {
		if x != nil {
			labels[i] = fmt.Sprint(x)
		}
		if i >= len(s.Y) || s.Y[i] == nil {
			continue
		}
		xs = append(xs, float64(i))
		ys = append(ys, *s.Y[i])
	}
	return xs, ys, labels
}

func categoryTicks(labels []string) []gochart.Tick {
	step := 1
	if len(labels) > maxCategoryTicks {
		step = (len(labels) + maxCategoryTicks - 1) / maxCategoryTicks
	}
	var ticks []gochart.Tick
	for i := 0; i < len(labels); i += step {
		ticks = append(ticks, gochart.Tick{Value: float64(i), Label: labels[i]})
	}
	return ticks
}

func (r *PNGRasterizer) blank(w io.Writer) error {
	img := image.NewRGBA(image.Rect(0, 0, r.width, r.height))
	for y := 0; y < r.height; y++ {
		for x := 0; x < r.width; x++ {
			img.Set(x, y, color.White)
		}
	}
	return png.Encode(w, img)
}
