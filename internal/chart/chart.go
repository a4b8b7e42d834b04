// Package chart turns crash recordings into line charts.
package chart

import (
	gochart "github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"github.com/skobkin/crashboard/internal/domain"
)

const (
	Title      = "Last Recorded Crash Data"
	XAxisTitle = "Sample Number"
	YAxisTitle = "Acceleration (m/s²)"

	SeriesNameX = "Accel X (m/s²)"
	SeriesNameY = "Accel Y (m/s²)"
	SeriesNameZ = "Accel Z (m/s²)"

	titleFontSize = 18
	lineWidth     = 2
)

var (
	ColorX = drawing.Color{R: 255, G: 99, B: 132, A: 255}
	ColorY = drawing.Color{R: 54, G: 162, B: 235, A: 255}
	ColorZ = drawing.Color{R: 75, G: 192, B: 192, A: 255}

	colorBackground = drawing.ColorFromHex("1e1e1e")
	colorTitle      = drawing.ColorFromHex("ffffff")
	colorLabel      = drawing.ColorFromHex("e0e0e0")
	colorTick       = drawing.ColorFromHex("b0b0b0")
	colorGrid       = drawing.ColorFromHex("444444")
)

// Size is the pixel size of a rendered chart.
type Size struct {
	Width  int
	Height int
}

var DefaultSize = Size{Width: 900, Height: 400}

func (s Size) normalized() Size {
	if s.Width <= 0 {
		s.Width = DefaultSize.Width
	}
	if s.Height <= 0 {
		s.Height = DefaultSize.Height
	}

	return s
}

// BuildCrashChart describes the chart for rec: x is the sample index 0..n-1, one line per axis.
func BuildCrashChart(rec domain.CrashRecording, size Size) gochart.Chart {
	size = size.normalized()
	indices := rec.SampleIndices()

	c := gochart.Chart{
		Title:      Title,
		TitleStyle: gochart.Style{FontColor: colorTitle, FontSize: titleFontSize},
		Width:      size.Width,
		Height:     size.Height,
		Background: gochart.Style{
			FillColor: colorBackground,
			Padding:   gochart.Box{Top: 48, Left: 16, Right: 16, Bottom: 16},
		},
		Canvas: gochart.Style{FillColor: colorBackground},
		XAxis: gochart.XAxis{
			Name:           XAxisTitle,
			NameStyle:      gochart.Style{FontColor: colorLabel},
			Style:          gochart.Style{FontColor: colorTick, StrokeColor: colorGrid},
			Range:          xRange(len(indices)),
			ValueFormatter: sampleIndexFormatter,
			GridMajorStyle: gochart.Style{StrokeColor: colorGrid, StrokeWidth: 1},
			GridMinorStyle: gochart.Style{Hidden: true},
		},
		YAxis: gochart.YAxis{
			Name:           YAxisTitle,
			NameStyle:      gochart.Style{FontColor: colorLabel},
			Style:          gochart.Style{FontColor: colorTick, StrokeColor: colorGrid},
			Range:          yRange(rec),
			GridMajorStyle: gochart.Style{StrokeColor: colorGrid, StrokeWidth: 1},
			GridMinorStyle: gochart.Style{Hidden: true},
		},
		Series: []gochart.Series{
			lineSeries(SeriesNameX, ColorX, indices, rec.AX),
			lineSeries(SeriesNameY, ColorY, indices, rec.AY),
			lineSeries(SeriesNameZ, ColorZ, indices, rec.AZ),
		},
	}
	c.Elements = []gochart.Renderable{gochart.Legend(&c, gochart.Style{
		FillColor:   colorBackground,
		FontColor:   colorLabel,
		StrokeColor: colorGrid,
	})}

	return c
}

func lineSeries(name string, color drawing.Color, xs, ys []float64) gochart.ContinuousSeries {
	return gochart.ContinuousSeries{
		Name: name,
		Style: gochart.Style{
			StrokeColor: color,
			StrokeWidth: lineWidth,
		},
		XValues: xs,
		YValues: ys,
	}
}

func sampleIndexFormatter(v any) string {
	return gochart.FloatValueFormatterWithFormat(v, "%.0f")
}

// xRange pads a single-sample recording so the axis never collapses to zero width.
func xRange(samples int) gochart.Range {
	if samples >= 2 {
		return &gochart.ContinuousRange{Min: 0, Max: float64(samples - 1)}
	}

	return &gochart.ContinuousRange{Min: 0, Max: 1}
}

func yRange(rec domain.CrashRecording) gochart.Range {
	lo, hi, ok := valueBounds(rec.AX, rec.AY, rec.AZ)
	if !ok {
		return &gochart.ContinuousRange{Min: -1, Max: 1}
	}
	if lo == hi {
		return &gochart.ContinuousRange{Min: lo - 1, Max: hi + 1}
	}
	pad := (hi - lo) * 0.05

	return &gochart.ContinuousRange{Min: lo - pad, Max: hi + pad}
}

func valueBounds(series ...[]float64) (float64, float64, bool) {
	var (
		lo, hi float64
		seen   bool
	)
	for _, values := range series {
		for _, v := range values {
			if !seen {
				lo, hi, seen = v, v, true

				continue
			}
			lo = min(lo, v)
			hi = max(hi, v)
		}
	}

	return lo, hi, seen
}
