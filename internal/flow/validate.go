package flow

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/masskeeper/masskeeper/internal/glossary"
	"github.com/masskeeper/masskeeper/internal/models"
)

// parseWeight validates a free-text body weight: a real number with
// 0 < value < max.
func parseWeight(text string, max float64) (float64, error) {
	value, err := strconv.ParseFloat(strings.TrimSpace(text), 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", models.ErrInvalidNumber, text)
	}
	if value <= 0 || value >= max {
		return 0, fmt.Errorf("%w: %v out of bounds", models.ErrInvalidNumber, value)
	}
	return value, nil
}

// parseUserDate validates a free-text date: the localized "today" token
// maps to the current date, anything else goes through the canonical
// date codec.
func parseUserDate(text string, now time.Time) (time.Time, error) {
	if glossary.IsToday(text) {
		return models.TruncateToDay(now), nil
	}
	return models.ParseDate(strings.TrimSpace(text))
}
