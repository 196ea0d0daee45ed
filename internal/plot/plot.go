// ABOUTME: PNG chart rendering: histogram, boxplot, scatter, and heatmap
// ABOUTME: Implements the core's Renderer contract with fogleman/gg
package plot

import (
	"bytes"
	"fmt"
	"image/color"
	"math"
	"sort"

	"github.com/fogleman/gg"
	"golang.org/x/image/font/basicfont"

	"github.com/edalab/eda-agent/internal/models"
)

// histogramBins matches the original chart configuration.
const histogramBins = 30

// clusterPalette colors scatter points by cluster label.
var clusterPalette = []color.NRGBA{
	{R: 31, G: 119, B: 180, A: 255},
	{R: 255, G: 127, B: 14, A: 255},
	{R: 44, G: 160, B: 44, A: 255},
	{R: 214, G: 39, B: 40, A: 255},
	{R: 148, G: 103, B: 189, A: 255},
	{R: 140, G: 86, B: 75, A: 255},
}

// Renderer draws analysis charts to PNG bytes.
type Renderer struct{}

// New creates a Renderer.
func New() *Renderer {
	return &Renderer{}
}

// Histogram renders a 30-bin histogram of the values.
func (r *Renderer) Histogram(values []float64, title string) ([]byte, error) {
	if len(values) == 0 {
		return nil, fmt.Errorf("histogram: no values")
	}

	const w, h = 600, 400
	dc := newCanvas(w, h, title)

	minV, maxV := minMax(values)
	span := maxV - minV
	if span == 0 {
		span = 1
	}

	counts := make([]int, histogramBins)
	for _, v := range values {
		bin := int((v - minV) / span * float64(histogramBins))
		if bin >= histogramBins {
			bin = histogramBins - 1
		}
		counts[bin]++
	}
	maxCount := 0
	for _, c := range counts {
		if c > maxCount {
			maxCount = c
		}
	}

	const margin = 40.0
	plotW := float64(w) - 2*margin
	plotH := float64(h) - 2*margin
	barW := plotW / histogramBins

	dc.SetColor(clusterPalette[0])
	for i, c := range counts {
		if c == 0 {
			continue
		}
		barH := plotH * float64(c) / float64(maxCount)
		dc.DrawRectangle(margin+float64(i)*barW, margin+plotH-barH, barW-1, barH)
		dc.Fill()
	}

	drawAxes(dc, w, h, margin)
	return encodePNG(dc)
}

// Boxplot renders a vertical box-and-whisker plot of the values.
func (r *Renderer) Boxplot(values []float64, title string) ([]byte, error) {
	if len(values) == 0 {
		return nil, fmt.Errorf("boxplot: no values")
	}

	const w, h = 400, 300
	dc := newCanvas(w, h, title)

	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)

	q1 := interpQuantile(sorted, 0.25)
	q2 := interpQuantile(sorted, 0.5)
	q3 := interpQuantile(sorted, 0.75)
	minV, maxV := sorted[0], sorted[len(sorted)-1]

	const margin = 40.0
	plotH := float64(h) - 2*margin
	span := maxV - minV
	if span == 0 {
		span = 1
	}
	// y maps a data value to canvas coordinates, inverted.
	y := func(v float64) float64 {
		return margin + plotH*(1-(v-minV)/span)
	}
	cx := float64(w) / 2
	boxW := float64(w) / 4

	dc.SetColor(color.NRGBA{R: 60, G: 60, B: 60, A: 255})
	dc.SetLineWidth(1.5)

	// Whiskers
	dc.DrawLine(cx, y(minV), cx, y(q1))
	dc.DrawLine(cx, y(q3), cx, y(maxV))
	dc.DrawLine(cx-boxW/4, y(minV), cx+boxW/4, y(minV))
	dc.DrawLine(cx-boxW/4, y(maxV), cx+boxW/4, y(maxV))
	dc.Stroke()

	// Box
	dc.SetColor(clusterPalette[0])
	dc.DrawRectangle(cx-boxW/2, y(q3), boxW, y(q1)-y(q3))
	dc.Fill()

	// Median line
	dc.SetColor(color.NRGBA{R: 255, G: 255, B: 255, A: 255})
	dc.SetLineWidth(2)
	dc.DrawLine(cx-boxW/2, y(q2), cx+boxW/2, y(q2))
	dc.Stroke()

	drawAxes(dc, w, h, margin)
	return encodePNG(dc)
}

// Scatter renders an (x, y) scatter plot. When labels is non-nil it must
// be aligned with the points and colors them by cluster.
func (r *Renderer) Scatter(xs, ys []float64, labels []int, title string) ([]byte, error) {
	if len(xs) == 0 || len(xs) != len(ys) {
		return nil, fmt.Errorf("scatter: need equal non-empty coordinate slices, got %d/%d", len(xs), len(ys))
	}
	if labels != nil && len(labels) != len(xs) {
		return nil, fmt.Errorf("scatter: %d labels for %d points", len(labels), len(xs))
	}

	const w, h = 500, 400
	dc := newCanvas(w, h, title)

	minX, maxX := minMax(xs)
	minY, maxY := minMax(ys)
	spanX := maxX - minX
	if spanX == 0 {
		spanX = 1
	}
	spanY := maxY - minY
	if spanY == 0 {
		spanY = 1
	}

	const margin = 40.0
	plotW := float64(w) - 2*margin
	plotH := float64(h) - 2*margin

	for i := range xs {
		px := margin + plotW*(xs[i]-minX)/spanX
		py := margin + plotH*(1-(ys[i]-minY)/spanY)
		c := clusterPalette[0]
		if labels != nil {
			c = clusterPalette[labels[i]%len(clusterPalette)]
		}
		dc.SetColor(color.NRGBA{R: c.R, G: c.G, B: c.B, A: 153})
		dc.DrawCircle(px, py, 3)
		dc.Fill()
	}

	drawAxes(dc, w, h, margin)
	return encodePNG(dc)
}

// Heatmap renders the correlation matrix with blue-to-red cells. NaN
// cells are drawn grey.
func (r *Renderer) Heatmap(m models.CorrelationMatrix) ([]byte, error) {
	n := len(m.Columns)
	if n == 0 {
		return nil, fmt.Errorf("heatmap: empty matrix")
	}

	const w, h = 600, 500
	dc := newCanvas(w, h, "Matriz de Correlação")

	const margin = 60.0
	cellW := (float64(w) - 2*margin) / float64(n)
	cellH := (float64(h) - 2*margin) / float64(n)

	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			v := m.Values[i][j]
			if math.IsNaN(v) {
				dc.SetColor(color.NRGBA{R: 180, G: 180, B: 180, A: 255})
			} else {
				dc.SetColor(divergingColor(v))
			}
			dc.DrawRectangle(margin+float64(j)*cellW, margin+float64(i)*cellH, cellW, cellH)
			dc.Fill()
		}
	}

	// Column labels along the left edge.
	dc.SetColor(color.Black)
	for i, name := range m.Columns {
		dc.DrawStringAnchored(truncateLabel(name, 10), margin-4,
			margin+float64(i)*cellH+cellH/2, 1, 0.5)
	}

	return encodePNG(dc)
}

// divergingColor maps r in [-1, 1] to blue (negative) through white to
// red (positive).
func divergingColor(v float64) color.NRGBA {
	if v < -1 {
		v = -1
	}
	if v > 1 {
		v = 1
	}
	if v >= 0 {
		scale := uint8(255 * (1 - v))
		return color.NRGBA{R: 255, G: scale, B: scale, A: 255}
	}
	scale := uint8(255 * (1 + v))
	return color.NRGBA{R: scale, G: scale, B: 255, A: 255}
}

func newCanvas(w, h int, title string) *gg.Context {
	dc := gg.NewContext(w, h)
	dc.SetColor(color.White)
	dc.Clear()
	dc.SetFontFace(basicfont.Face7x13)
	dc.SetColor(color.Black)
	dc.DrawStringAnchored(title, float64(w)/2, 14, 0.5, 0.5)
	return dc
}

func drawAxes(dc *gg.Context, w, h int, margin float64) {
	dc.SetColor(color.NRGBA{R: 40, G: 40, B: 40, A: 255})
	dc.SetLineWidth(1)
	dc.DrawLine(margin, margin, margin, float64(h)-margin)
	dc.DrawLine(margin, float64(h)-margin, float64(w)-margin, float64(h)-margin)
	dc.Stroke()
}

func encodePNG(dc *gg.Context) ([]byte, error) {
	var buf bytes.Buffer
	if err := dc.EncodePNG(&buf); err != nil {
		return nil, fmt.Errorf("encoding png: %w", err)
	}
	return buf.Bytes(), nil
}

func minMax(vals []float64) (float64, float64) {
	minV, maxV := vals[0], vals[0]
	for _, v := range vals[1:] {
		if v < minV {
			minV = v
		}
		if v > maxV {
			maxV = v
		}
	}
	return minV, maxV
}

// interpQuantile interpolates linearly between closest ranks of a sorted
// slice.
func interpQuantile(sorted []float64, q float64) float64 {
	n := len(sorted)
	if n == 1 {
		return sorted[0]
	}
	pos := q * float64(n-1)
	lo := int(math.Floor(pos))
	if lo >= n-1 {
		return sorted[n-1]
	}
	frac := pos - float64(lo)
	return sorted[lo] + frac*(sorted[lo+1]-sorted[lo])
}

func truncateLabel(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n-1]) + "…"
}
