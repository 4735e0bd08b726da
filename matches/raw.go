package matches

import (
	"encoding/json"
	"strconv"
	"strings"
)

// RawMatch is a match record as it appears in one of the results feeds. Only the
// fields every feed agrees on are lifted out; score-bearing fields stay raw in
// Fields and are read by the score strategies.
type RawMatch struct {
	ID       string
	Label    string
	Group    string
	Phase    string
	Status   string
	Quarters json.RawMessage
	Fields   map[string]json.RawMessage
}

func (r *RawMatch) UnmarshalJSON(b []byte) error {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(b, &fields); err != nil {
		return err
	}
	r.Fields = fields
	r.ID = firstString(fields, "id")
	r.Label = firstString(fields, "zapas", "match", "title")
	r.Group = firstString(fields, "skupina", "group")
	r.Phase = firstString(fields, "faze", "phase")
	r.Status = firstString(fields, "stav", "status")
	r.Quarters = fields["quarters"]
	return nil
}

// MarshalJSON writes the record back in the Czech field layout of vysledky.json.
func (r RawMatch) MarshalJSON() ([]byte, error) {
	out := make(map[string]json.RawMessage, len(r.Fields)+6)
	for k, v := range r.Fields {
		out[k] = v
	}
	put := func(key, val string) {
		if val == "" {
			return
		}
		b, _ := json.Marshal(val)
		out[key] = b
	}
	put("id", r.ID)
	put("zapas", r.Label)
	put("skupina", r.Group)
	put("faze", r.Phase)
	put("stav", r.Status)
	if len(r.Quarters) > 0 {
		out["quarters"] = r.Quarters
	}
	return json.Marshal(out)
}

// WithLabel returns a copy carrying label when the record has none of its own.
// Results keyed by match id usually leave the team pair to the schedule row.
func (r RawMatch) WithLabel(label string) RawMatch {
	if strings.TrimSpace(r.Label) == "" {
		r.Label = label
	}
	return r
}

func firstString(fields map[string]json.RawMessage, keys ...string) string {
	for _, k := range keys {
		if s, ok := jsonText(fields[k]); ok && s != "" {
			return s
		}
	}
	return ""
}

// jsonText returns a JSON string or number as trimmed text.
func jsonText(raw json.RawMessage) (string, bool) {
	if len(raw) == 0 || string(raw) == "null" {
		return "", false
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return strings.TrimSpace(s), true
	}
	var n json.Number
	if err := json.Unmarshal(raw, &n); err == nil {
		if i, err := strconv.ParseInt(n.String(), 10, 64); err == nil {
			return strconv.FormatInt(i, 10), true
		}
		return n.String(), true
	}
	return "", false
}
