package progress

import "math"

// Range is a pair of chart axis bounds. A nil *Range means the axis
// autoscales to its data.
type Range struct {
	Min float64
	Max float64
}

// Fallback vertical band used when there are too few points to derive
// bounds and no goal line pins the scale: a plausible human-weight band.
const (
	fallbackYMin = 64
	fallbackYMax = 76
)

// YRange picks the vertical chart bounds: the value span snapped to the
// nearest 5 and padded by 6 when at least two points exist; the fixed
// fallback band with fewer points and no active goal; autoscale
// otherwise (the goal line alone determines the view).
func YRange(values []float64, hasChallenge bool) *Range {
	if len(values) > 1 {
		lo, hi := values[0], values[0]
		for _, v := range values[1:] {
			lo = math.Min(lo, v)
			hi = math.Max(hi, v)
		}
		return &Range{
			Min: math.Floor(lo/5)*5 - 6,
			Max: math.Ceil(hi/5)*5 + 6,
		}
	}
	if !hasChallenge {
		return &Range{Min: fallbackYMin, Max: fallbackYMax}
	}
	return nil
}

// XRange picks the horizontal bounds in day ordinals: the resolved
// window intersected with the actual data span, each bound padded by one
// day. Without a window the axis is unbounded; without data the window
// bounds are used as-is.
func XRange(w *Window, xs []float64) *Range {
	if w == nil {
		return nil
	}
	minX := DayOrdinal(w.Start)
	maxX := DayOrdinal(w.End)
	if len(xs) > 0 {
		lo, hi := xs[0], xs[0]
		for _, x := range xs[1:] {
			lo = math.Min(lo, x)
			hi = math.Max(hi, x)
		}
		minX = math.Max(minX, lo) - 1
		maxX = math.Min(maxX, hi) + 1
	}
	return &Range{Min: minX, Max: maxX}
}
