package progress

import (
	"fmt"
	"math"
	"time"

	"github.com/masskeeper/masskeeper/internal/models"
)

const secondsPerWeek = 7 * 86400

// MinPointsForSpeed is the total (unfiltered) measurement count below
// which the current speed is reported as unavailable, even when a
// window-local fit exists. Sparse histories give over-confident trends.
const MinPointsForSpeed = 4

// Point is one (date, value) measurement sample.
type Point struct {
	Date  time.Time
	Value float64
}

// Line is a fitted degree-1 least-squares line over day ordinals.
type Line struct {
	Slope     float64 // units per day
	Intercept float64
}

// ValueAt evaluates the line at the given day ordinal.
func (l *Line) ValueAt(x float64) float64 {
	return l.Slope*x + l.Intercept
}

// DayOrdinal maps a time to fractional days since the Unix epoch, the
// x-axis unit for fitting and chart ranges.
func DayOrdinal(t time.Time) float64 {
	return float64(t.Unix()) / 86400.0
}

// PointsFromMeasurements converts store records to fit samples.
func PointsFromMeasurements(ms []models.Measurement) []Point {
	points := make([]Point, 0, len(ms))
	for _, m := range ms {
		points = append(points, Point{Date: m.Date, Value: m.Value})
	}
	return points
}

// FilterWindow keeps the points inside w. A nil window keeps everything.
func FilterWindow(points []Point, w *Window) []Point {
	if w == nil {
		return points
	}
	filtered := make([]Point, 0, len(points))
	for _, p := range points {
		if w.Contains(p.Date) {
			filtered = append(filtered, p)
		}
	}
	return filtered
}

// Fit computes an ordinary linear regression of value over day ordinal.
// It returns nil with fewer than 2 points: no line can be drawn.
func Fit(points []Point) *Line {
	n := float64(len(points))
	if len(points) < 2 {
		return nil
	}

	var sumX, sumY, sumXY, sumXX float64
	for _, p := range points {
		x := DayOrdinal(p.Date)
		sumX += x
		sumY += p.Value
		sumXY += x * p.Value
		sumXX += x * x
	}

	denom := n*sumXX - sumX*sumX
	if denom == 0 {
		// All samples on the same day; the vertical fit has no slope.
		return nil
	}
	slope := (n*sumXY - sumX*sumY) / denom
	intercept := (sumY - slope*sumX) / n
	return &Line{Slope: slope, Intercept: intercept}
}

// WeeklySpeed derives the current kg/week rate from a windowed fit of the
// measurement history. It returns nil when the windowed points cannot
// produce a line, or when the total history holds fewer than
// MinPointsForSpeed records.
func WeeklySpeed(points []Point, w *Window, totalCount int) *float64 {
	line := Fit(FilterWindow(points, w))
	if line == nil {
		return nil
	}
	if totalCount < MinPointsForSpeed {
		return nil
	}
	speed := roundTo2(line.Slope * 7)
	return &speed
}

// DesiredSpeedPerWeek is the weekly rate required to meet the challenge
// exactly on schedule. It fails on unparsable stored dates and on a
// zero-length challenge duration.
func DesiredSpeedPerWeek(c *models.Challenge) (float64, error) {
	start, err := c.StartTime()
	if err != nil {
		return 0, err
	}
	end, err := c.EndTime()
	if err != nil {
		return 0, err
	}
	weeks := end.Sub(start).Seconds() / secondsPerWeek
	if weeks == 0 {
		return 0, fmt.Errorf("%w: %s", models.ErrZeroChallengeLength, c.StartDate)
	}
	return (c.TargetValue - c.StartValue) / weeks, nil
}

// Category classifies a weekly speed against a maintenance threshold.
type Category string

const (
	CategoryMaintaining Category = "maintaining"
	CategorySurplus     Category = "surplus"
	CategoryDeficit     Category = "deficit"
)

// Classify interprets a weekly speed. Speeds smaller in magnitude than
// meanValue×thresholdFraction count as maintaining; otherwise the sign
// decides between surplus (gaining) and deficit (losing).
func Classify(speedPerWeek, meanValue, thresholdFraction float64) Category {
	threshold := meanValue * thresholdFraction
	if math.Abs(speedPerWeek) < threshold {
		return CategoryMaintaining
	}
	if speedPerWeek > 0 {
		return CategorySurplus
	}
	return CategoryDeficit
}

// Mean averages the measurement values; 0 for an empty history.
func Mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	var sum float64
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}

func roundTo2(x float64) float64 {
	return math.Round(x*100) / 100
}
