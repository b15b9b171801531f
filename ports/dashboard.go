package ports

import (
	"io"

	"csvplot/domain/chart"
	"csvplot/domain/table"
)

// TableDecoder turns an upload payload into a table
type TableDecoder interface {
	Decode(contents, filename string) (*table.Table, error)
}

// ChartRasterizer draws a chart specification as an image
type ChartRasterizer interface {
	RenderPNG(spec chart.Spec, w io.Writer) error
}
