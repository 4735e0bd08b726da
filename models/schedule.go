package models

import "encoding/json"

// Tournament day keys, in playing order.
const (
	DayFriday   = "patek"
	DaySaturday = "sobota"
	DaySunday   = "nedele"
)

var Days = []string{DayFriday, DaySaturday, DaySunday}

// Schedule is the decoded rozpis.json document.
type Schedule struct {
	Updated string                      `json:"updated,omitempty"`
	Days    map[string][]ScheduledMatch `json:"days"`
	Playoff []ScheduledMatch            `json:"playoff,omitempty"`
}

// UnmarshalJSON reads the day-keyed arrays and stamps each row with its day key.
func (s *Schedule) UnmarshalJSON(b []byte) error {
	var raw struct {
		Updated json.RawMessage `json:"updated"`
		Patek   json.RawMessage `json:"patek"`
		Sobota  json.RawMessage `json:"sobota"`
		Nedele  json.RawMessage `json:"nedele"`
		Playoff json.RawMessage `json:"playoff"`
	}
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}
	updated, _ := flexibleString(raw.Updated)
	s.Updated = updated
	s.Days = map[string][]ScheduledMatch{
		DayFriday:   stampDay(decodeRows(raw.Patek), DayFriday),
		DaySaturday: stampDay(decodeRows(raw.Sobota), DaySaturday),
		DaySunday:   stampDay(decodeRows(raw.Nedele), DaySunday),
	}
	s.Playoff = stampDay(decodeRows(raw.Playoff), DaySunday)
	return nil
}

// All returns every scheduled match in day order.
func (s *Schedule) All() []ScheduledMatch {
	if s == nil {
		return nil
	}
	out := make([]ScheduledMatch, 0)
	for _, d := range Days {
		out = append(out, s.Days[d]...)
	}
	return out
}

// decodeRows decodes a day array entry by entry. Entries that are not match
// objects (notes, nulls) are dropped; a value that is not an array yields no rows.
func decodeRows(data json.RawMessage) []ScheduledMatch {
	var items []json.RawMessage
	if err := json.Unmarshal(data, &items); err != nil {
		return nil
	}
	rows := make([]ScheduledMatch, 0, len(items))
	for _, item := range items {
		if !isObject(item) {
			continue
		}
		var m ScheduledMatch
		if err := json.Unmarshal(item, &m); err != nil {
			continue
		}
		rows = append(rows, m)
	}
	return rows
}

func isObject(data json.RawMessage) bool {
	for _, c := range data {
		switch c {
		case ' ', '\t', '\n', '\r':
			continue
		case '{':
			return true
		}
		return false
	}
	return false
}

func stampDay(rows []ScheduledMatch, day string) []ScheduledMatch {
	if rows == nil {
		return []ScheduledMatch{}
	}
	for i := range rows {
		rows[i].Day = day
	}
	return rows
}
