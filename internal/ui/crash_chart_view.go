package ui

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"

	"github.com/skobkin/crashboard/internal/chart"
	"github.com/skobkin/crashboard/internal/domain"
)

type plotRenderer func(rec domain.CrashRecording, size chart.Size) (*chart.Plot, error)

// crashChartView owns at most one live plot. Show disposes the current plot before rendering the next one.
// Must be used from the UI goroutine.
type crashChartView struct {
	image  *canvas.Image
	size   chart.Size
	render plotRenderer
	plot   *chart.Plot
}

func newCrashChartView(size chart.Size, render plotRenderer) *crashChartView {
	if render == nil {
		render = chart.Render
	}
	img := canvas.NewImageFromImage(chart.Blank(size))
	img.FillMode = canvas.ImageFillContain
	img.ScaleMode = canvas.ImageScaleSmooth
	img.SetMinSize(fyne.NewSize(float32(size.Width)/2, float32(size.Height)/2))

	return &crashChartView{
		image:  img,
		size:   size,
		render: render,
	}
}

func (v *crashChartView) CanvasObject() fyne.CanvasObject {
	return v.image
}

func (v *crashChartView) Show(rec domain.CrashRecording) error {
	if v.plot != nil {
		v.plot.Dispose()
		v.plot = nil
	}

	plot, err := v.render(rec, v.size)
	if err != nil {
		v.image.Image = chart.Blank(v.size)
		v.image.Refresh()

		return err
	}
	v.plot = plot
	v.image.Image = plot.Image()
	v.image.Refresh()

	return nil
}

// Plot returns the live plot, or nil before the first recording.
func (v *crashChartView) Plot() *chart.Plot {
	return v.plot
}
