package chart

import (
	"math"
	"os"
	"testing"
	"time"

	"github.com/masskeeper/masskeeper/internal/progress"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func samplePoints() []progress.Point {
	days := []int{1, 3, 4, 6, 7, 9}
	values := []float64{100.5, 100.2, 101.1, 98.8, 98.6, 99.5}
	points := make([]progress.Point, len(days))
	for i := range days {
		points[i] = progress.Point{Date: day(2021, time.May, days[i]), Value: values[i]}
	}
	return points
}

func TestRenderProducesPNGAndFit(t *testing.T) {
	r, err := NewRenderer(t.TempDir())
	if err != nil {
		t.Fatalf("NewRenderer() error = %v", err)
	}

	path, line, err := r.Render(samplePoints(), "body mass, kg", nil, nil)
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	if line == nil {
		t.Fatal("Render() line = nil, want a fit over six points")
	}
	if speed := math.Round(line.Slope*7*100) / 100; speed != -1.58 {
		t.Errorf("weekly speed from fit = %v, want -1.58", speed)
	}

	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("stat PNG: %v", err)
	}
	if info.Size() == 0 {
		t.Error("rendered PNG is empty")
	}
}

func TestRenderWithGoalLine(t *testing.T) {
	r, err := NewRenderer(t.TempDir())
	if err != nil {
		t.Fatalf("NewRenderer() error = %v", err)
	}

	goal := &GoalLine{
		Start: progress.Point{Date: day(2021, time.May, 1), Value: 100.5},
		End:   progress.Point{Date: day(2021, time.June, 1), Value: 95.0},
	}
	window := &progress.Window{Start: day(2021, time.May, 1), End: day(2021, time.June, 1)}

	path, _, err := r.Render(samplePoints(), "body mass, kg", goal, window)
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	if _, err := os.Stat(path); err != nil {
		t.Errorf("stat PNG: %v", err)
	}
}

func TestRenderSinglePointNoFit(t *testing.T) {
	r, err := NewRenderer(t.TempDir())
	if err != nil {
		t.Fatalf("NewRenderer() error = %v", err)
	}

	points := []progress.Point{{Date: day(2021, time.May, 1), Value: 70.0}}
	path, line, err := r.Render(points, "body mass, kg", nil, nil)
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	if line != nil {
		t.Errorf("Render() line = %+v, want nil for a single point", line)
	}
	if _, err := os.Stat(path); err != nil {
		t.Errorf("stat PNG: %v", err)
	}
}

func TestRenderNoPointsNoGoalFails(t *testing.T) {
	r, err := NewRenderer(t.TempDir())
	if err != nil {
		t.Fatalf("NewRenderer() error = %v", err)
	}
	if _, _, err := r.Render(nil, "body mass, kg", nil, nil); err == nil {
		t.Error("Render() expected error with nothing to plot")
	}
}
