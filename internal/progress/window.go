// Package progress implements the date-window resolution, goal
// arithmetic and trend classification for body-mass histories. All
// functions here are pure: the clock is always an argument.
package progress

import (
	"time"

	"github.com/masskeeper/masskeeper/internal/models"
)

// TwoWeeks is the span of the recent-history window.
const TwoWeeks = 14 * 24 * time.Hour

// Window is an inclusive (start, end) date pair used to filter
// measurements before fitting or display.
type Window struct {
	Start time.Time
	End   time.Time
}

// Contains reports whether t falls inside the window, bounds included.
func (w *Window) Contains(t time.Time) bool {
	return !t.Before(w.Start) && !t.After(w.End)
}

// ResolveWindow chooses the analysis window. Precedence, in order:
//
//  1. onlyChallengeRange with a challenge present wins unconditionally,
//     even when onlyTwoWeeks is also set and regardless of where now
//     falls relative to the range.
//  2. onlyTwoWeeks yields (now − 14 days, now).
//  3. Otherwise nil: no windowing, use all available data.
//
// Any flag combination is legal; only a missing challenge demotes rule 1.
// The returned error is non-nil only when the supplied challenge carries
// an unparsable stored date.
func ResolveWindow(challenge *models.Challenge, onlyChallengeRange, onlyTwoWeeks bool, now time.Time) (*Window, error) {
	if onlyChallengeRange && challenge != nil {
		start, err := challenge.StartTime()
		if err != nil {
			return nil, err
		}
		end, err := challenge.EndTime()
		if err != nil {
			return nil, err
		}
		return &Window{Start: start, End: end}, nil
	}
	if onlyTwoWeeks {
		return &Window{Start: now.Add(-TwoWeeks), End: now}, nil
	}
	return nil, nil
}
