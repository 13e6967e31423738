package utils

import (
	"fmt"
	"time"

	"github.com/klsociety/governance-records-api/internal/constants"
)

// ParseDate parses a YYYY-MM-DD meeting date and normalizes it to midnight
// UTC so that same-day comparisons hold across drivers.
func ParseDate(value string) (time.Time, error) {
	t, err := time.Parse(constants.DateLayout, value)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q, expected YYYY-MM-DD", value)
	}
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC), nil
}

// FormatDate renders a meeting date as YYYY-MM-DD.
func FormatDate(t time.Time) string {
	return t.Format(constants.DateLayout)
}
