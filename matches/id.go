package matches

import (
	"strings"
)

// IDParts are the schedule fields a fallback match id is derived from.
type IDParts struct {
	Date   string
	DayKey string
	Time   string
	Hall   string
	Phase  string
}

// MatchID derives the fallback key "<date>_<HH-MM>_<hall>_<phase>" used when a row
// has no explicit id. dayDates maps day keys (patek, sobota, nedele) to ISO dates.
// Two rows sharing date, time, hall and phase get the same key.
func MatchID(p IDParts, dayDates map[string]string) string {
	d := strings.TrimSpace(p.Date)
	if d == "" {
		d = dayDates[p.DayKey]
	}
	if d == "" {
		d = "0000-00-00"
	}
	t := strings.Replace(strings.TrimSpace(p.Time), ":", "-", 1)
	if t == "" {
		t = "xx-xx"
	}
	h := compact(p.Hall)
	if h == "" {
		h = "hala"
	}
	ph := compact(p.Phase)
	if ph == "" {
		ph = "x"
	}
	return strings.Join([]string{d, t, h, ph}, "_")
}

func compact(s string) string {
	return strings.Join(strings.Fields(strings.ToLower(s)), "")
}
