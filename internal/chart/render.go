package chart

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"io"
	"sync"

	gochart "github.com/wcharczuk/go-chart/v2"

	"github.com/skobkin/crashboard/internal/domain"
)

// Plot is one rendered chart instance. A disposed plot no longer holds its image.
type Plot struct {
	mu       sync.RWMutex
	img      image.Image
	samples  int
	series   int
	disposed bool
}

func (p *Plot) Image() image.Image {
	p.mu.RLock()
	defer p.mu.RUnlock()

	return p.img
}

func (p *Plot) Samples() int {
	return p.samples
}

func (p *Plot) SeriesCount() int {
	return p.series
}

func (p *Plot) Dispose() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.img = nil
	p.disposed = true
}

func (p *Plot) Disposed() bool {
	p.mu.RLock()
	defer p.mu.RUnlock()

	return p.disposed
}

// Render draws rec into a new Plot. An empty recording yields a blank plot.
func Render(rec domain.CrashRecording, size Size) (*Plot, error) {
	size = size.normalized()
	if rec.Len() == 0 {
		return &Plot{img: Blank(size)}, nil
	}

	var buf bytes.Buffer
	if err := WritePNG(&buf, rec, size); err != nil {
		return nil, err
	}
	img, err := png.Decode(&buf)
	if err != nil {
		return nil, fmt.Errorf("decode crash chart png: %w", err)
	}

	return &Plot{img: img, samples: rec.Len(), series: 3}, nil
}

func WritePNG(w io.Writer, rec domain.CrashRecording, size Size) error {
	c := BuildCrashChart(rec, size)
	if err := c.Render(gochart.PNG, w); err != nil {
		return fmt.Errorf("render crash chart: %w", err)
	}

	return nil
}

// Blank is the placeholder shown before the first recording arrives.
func Blank(size Size) image.Image {
	size = size.normalized()
	img := image.NewRGBA(image.Rect(0, 0, size.Width, size.Height))
	bg := color.RGBA{R: colorBackground.R, G: colorBackground.G, B: colorBackground.B, A: 255}
	draw.Draw(img, img.Bounds(), &image.Uniform{C: bg}, image.Point{}, draw.Src)

	return img
}
