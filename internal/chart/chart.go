// Package chart renders body-mass history plots as PNG files: a scatter
// of measurements, an optional regression trend line, and an optional
// dashed goal line for an active challenge.
package chart

import (
	"fmt"
	"log/slog"
	"math"
	"os"
	"time"

	"github.com/fogleman/gg"
	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"

	"github.com/masskeeper/masskeeper/internal/progress"
	"github.com/masskeeper/masskeeper/internal/util"
)

const (
	imageWidth  = 900
	imageHeight = 600

	marginLeft   = 70.0
	marginRight  = 30.0
	marginTop    = 40.0
	marginBottom = 60.0
)

// GoalLine is the straight line from a challenge's starting point to
// its target point.
type GoalLine struct {
	Start progress.Point
	End   progress.Point
}

// Renderer draws a plot for a set of measurements and returns the PNG
// path together with the regression line fitted over the in-window
// points (nil when fewer than two points fall inside the window). The
// caller removes the file after sending it.
type Renderer interface {
	Render(points []progress.Point, label string, goal *GoalLine, window *progress.Window) (string, *progress.Line, error)
}

// GGRenderer renders plots with the gg canvas. Fonts are embedded so
// the renderer needs no filesystem assets beyond its output directory.
type GGRenderer struct {
	dir       string
	axisFace  font.Face
	labelFace font.Face
}

var _ Renderer = (*GGRenderer)(nil)

// NewRenderer creates a GGRenderer writing PNGs under dir.
func NewRenderer(dir string) (*GGRenderer, error) {
	parsed, err := truetype.Parse(goregular.TTF)
	if err != nil {
		return nil, fmt.Errorf("parse embedded font: %w", err)
	}
	axisFace := truetype.NewFace(parsed, &truetype.Options{Size: 14, DPI: 72, Hinting: font.HintingNone})
	labelFace := truetype.NewFace(parsed, &truetype.Options{Size: 18, DPI: 72, Hinting: font.HintingNone})
	return &GGRenderer{dir: dir, axisFace: axisFace, labelFace: labelFace}, nil
}

func (r *GGRenderer) Render(points []progress.Point, label string, goal *GoalLine, window *progress.Window) (string, *progress.Line, error) {
	if err := os.MkdirAll(r.dir, 0755); err != nil {
		return "", nil, fmt.Errorf("create chart directory: %w", err)
	}

	visible := progress.FilterWindow(points, window)
	line := progress.Fit(visible)

	xMin, xMax := r.xBounds(visible, goal, window)
	yMin, yMax := r.yBounds(visible, goal)
	if xMax <= xMin || yMax <= yMin {
		return "", nil, fmt.Errorf("nothing to plot: empty axis range")
	}

	dc := gg.NewContext(imageWidth, imageHeight)
	dc.SetRGB(1, 1, 1)
	dc.Clear()

	plotW := imageWidth - marginLeft - marginRight
	plotH := imageHeight - marginTop - marginBottom
	toX := func(x float64) float64 { return marginLeft + (x-xMin)/(xMax-xMin)*plotW }
	toY := func(y float64) float64 { return marginTop + (yMax-y)/(yMax-yMin)*plotH }

	r.drawGrid(dc, xMin, xMax, yMin, yMax, toX, toY)
	r.drawAxes(dc)

	if goal != nil {
		r.drawGoal(dc, goal, toX, toY)
	}
	if line != nil {
		r.drawTrend(dc, line, visible, toX, toY)
	}
	r.drawScatter(dc, visible, toX, toY)

	dc.SetFontFace(r.labelFace)
	dc.SetRGB(0.1, 0.1, 0.1)
	dc.DrawStringAnchored(label, imageWidth/2, marginTop/2, 0.5, 0.5)

	path := util.TempArtifactPath(r.dir, "plot", ".png")
	if err := dc.SavePNG(path); err != nil {
		return "", nil, fmt.Errorf("save plot: %w", err)
	}
	slog.Debug("chart rendered", "path", path, "points", len(visible), "fitted", line != nil)
	return path, line, nil
}

// xBounds maps progress.XRange onto concrete plot bounds, widening
// degenerate ranges so a single measurement still renders.
func (r *GGRenderer) xBounds(points []progress.Point, goal *GoalLine, window *progress.Window) (float64, float64) {
	xs := make([]float64, 0, len(points)+2)
	for _, p := range points {
		xs = append(xs, progress.DayOrdinal(p.Date))
	}
	if goal != nil {
		xs = append(xs, progress.DayOrdinal(goal.Start.Date), progress.DayOrdinal(goal.End.Date))
	}
	if rng := progress.XRange(window, xs); rng != nil {
		return rng.Min, rng.Max
	}
	if len(xs) == 0 {
		return 0, 0
	}
	lo, hi := xs[0], xs[0]
	for _, x := range xs[1:] {
		lo = math.Min(lo, x)
		hi = math.Max(hi, x)
	}
	return lo - 1, hi + 1
}

func (r *GGRenderer) yBounds(points []progress.Point, goal *GoalLine) (float64, float64) {
	values := make([]float64, 0, len(points))
	for _, p := range points {
		values = append(values, p.Value)
	}
	if rng := progress.YRange(values, goal != nil); rng != nil {
		return rng.Min, rng.Max
	}
	// Autoscale over measurements and goal endpoints.
	if goal != nil {
		values = append(values, goal.Start.Value, goal.End.Value)
	}
	if len(values) == 0 {
		return 0, 0
	}
	lo, hi := values[0], values[0]
	for _, v := range values[1:] {
		lo = math.Min(lo, v)
		hi = math.Max(hi, v)
	}
	if hi-lo < 2 {
		mid := (hi + lo) / 2
		lo, hi = mid-1, mid+1
	}
	return math.Floor(lo) - 2, math.Ceil(hi) + 2
}

func (r *GGRenderer) drawGrid(dc *gg.Context, xMin, xMax, yMin, yMax float64, toX, toY func(float64) float64) {
	dc.SetFontFace(r.axisFace)

	dc.SetRGB(0.85, 0.85, 0.85)
	dc.SetLineWidth(1)
	for _, y := range yTicks(yMin, yMax) {
		dc.DrawLine(marginLeft, toY(y), imageWidth-marginRight, toY(y))
		dc.Stroke()
		dc.SetRGB(0.3, 0.3, 0.3)
		dc.DrawStringAnchored(fmt.Sprintf("%g", y), marginLeft-8, toY(y), 1, 0.4)
		dc.SetRGB(0.85, 0.85, 0.85)
	}
	for _, x := range xTicks(xMin, xMax) {
		dc.DrawLine(toX(x), marginTop, toX(x), imageHeight-marginBottom)
		dc.Stroke()
		day := time.Unix(int64(x*86400), 0).UTC()
		dc.SetRGB(0.3, 0.3, 0.3)
		dc.DrawStringAnchored(day.Format("02 Jan"), toX(x), imageHeight-marginBottom+16, 0.5, 0.5)
		dc.SetRGB(0.85, 0.85, 0.85)
	}
}

func (r *GGRenderer) drawAxes(dc *gg.Context) {
	dc.SetRGB(0.2, 0.2, 0.2)
	dc.SetLineWidth(1.5)
	dc.DrawLine(marginLeft, marginTop, marginLeft, imageHeight-marginBottom)
	dc.DrawLine(marginLeft, imageHeight-marginBottom, imageWidth-marginRight, imageHeight-marginBottom)
	dc.Stroke()
}

func (r *GGRenderer) drawScatter(dc *gg.Context, points []progress.Point, toX, toY func(float64) float64) {
	dc.SetRGB(0.12, 0.36, 0.66)
	for _, p := range points {
		dc.DrawCircle(toX(progress.DayOrdinal(p.Date)), toY(p.Value), 4)
		dc.Fill()
	}
}

func (r *GGRenderer) drawTrend(dc *gg.Context, line *progress.Line, points []progress.Point, toX, toY func(float64) float64) {
	lo := progress.DayOrdinal(points[0].Date)
	hi := lo
	for _, p := range points[1:] {
		x := progress.DayOrdinal(p.Date)
		lo = math.Min(lo, x)
		hi = math.Max(hi, x)
	}
	dc.SetRGB(0.12, 0.36, 0.66)
	dc.SetLineWidth(2)
	dc.DrawLine(toX(lo), toY(line.ValueAt(lo)), toX(hi), toY(line.ValueAt(hi)))
	dc.Stroke()
}

func (r *GGRenderer) drawGoal(dc *gg.Context, goal *GoalLine, toX, toY func(float64) float64) {
	x0, y0 := toX(progress.DayOrdinal(goal.Start.Date)), toY(goal.Start.Value)
	x1, y1 := toX(progress.DayOrdinal(goal.End.Date)), toY(goal.End.Value)

	dc.SetRGB(0.8, 0.15, 0.15)
	dc.SetLineWidth(2)
	dc.SetDash(8, 6)
	dc.DrawLine(x0, y0, x1, y1)
	dc.Stroke()
	dc.SetDash()

	dc.SetFontFace(r.axisFace)
	dc.DrawStringAnchored("Start", x0, y0-12, 0.5, 0.5)
	dc.DrawStringAnchored("Goal", x1, y1-12, 0.5, 0.5)
}

// yTicks steps in whole units over small spans and multiples of five
// over wide ones.
func yTicks(lo, hi float64) []float64 {
	step := 1.0
	if hi-lo > 25 {
		step = 5.0
	}
	var ticks []float64
	for y := math.Ceil(lo/step) * step; y <= hi; y += step {
		ticks = append(ticks, y)
	}
	return ticks
}

// xTicks aims for roughly eight labels regardless of span.
func xTicks(lo, hi float64) []float64 {
	span := hi - lo
	step := math.Max(1, math.Ceil(span/8))
	var ticks []float64
	for x := math.Ceil(lo/step) * step; x <= hi; x += step {
		ticks = append(ticks, x)
	}
	return ticks
}
