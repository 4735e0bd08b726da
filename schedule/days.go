package schedule

import (
	"time"

	"github.com/Dosada05/mcr-results/models"
)

// ActiveDay returns the tournament day key whose date is today in loc, or "".
func ActiveDay(now time.Time, dayDates map[string]string, loc *time.Location) string {
	if loc != nil {
		now = now.In(loc)
	}
	today := now.Format(time.DateOnly)
	for _, day := range models.Days {
		if dayDates[day] == today {
			return day
		}
	}
	return ""
}
