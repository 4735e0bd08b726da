package matches

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"
)

// PlayoffGroup is the skupina value that marks play-off matches in the results feed.
const PlayoffGroup = "Play-off"

// Results is a decoded vysledky.json. Feeds come either as a map of match id to
// result (games) or as a list of match objects with free-text team pairs (zapasy);
// both are kept.
type Results struct {
	Updated string
	Games   map[string]RawMatch
	Matches []RawMatch
}

// ParseResults decodes a results document. Collections of the wrong type and
// entries that are not match objects are ignored.
func ParseResults(data []byte) (*Results, error) {
	var doc map[string]json.RawMessage
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("decode results: %w", err)
	}
	var games map[string]json.RawMessage
	_ = json.Unmarshal(doc["games"], &games)
	var zapasy, listed []json.RawMessage
	_ = json.Unmarshal(doc["zapasy"], &zapasy)
	_ = json.Unmarshal(doc["matches"], &listed)

	res := &Results{Games: make(map[string]RawMatch, len(games))}
	res.Updated, _ = jsonText(doc["updated"])
	for id, raw := range games {
		g, ok := decodeRecord(raw)
		if !ok {
			continue
		}
		if g.ID == "" {
			g.ID = id
		}
		res.Games[id] = g
	}
	res.Matches = make([]RawMatch, 0, len(zapasy)+len(listed))
	for _, raw := range append(zapasy, listed...) {
		if m, ok := decodeRecord(raw); ok {
			res.Matches = append(res.Matches, m)
		}
	}
	return res, nil
}

// decodeRecord decodes one match object. Anything else (a note string, null,
// a number) is not a record and is skipped.
func decodeRecord(raw json.RawMessage) (RawMatch, bool) {
	var m RawMatch
	if err := json.Unmarshal(raw, &m); err != nil || m.Fields == nil {
		return RawMatch{}, false
	}
	return m, true
}

// Lookup finds the result for a match id, keyed results first.
func (r *Results) Lookup(id string) (RawMatch, bool) {
	if r == nil || strings.TrimSpace(id) == "" {
		return RawMatch{}, false
	}
	if g, ok := r.Games[id]; ok {
		return g, true
	}
	for _, m := range r.Matches {
		if m.ID == id {
			return m, true
		}
	}
	return RawMatch{}, false
}

// All returns keyed results in id order followed by the listed matches.
func (r *Results) All() []RawMatch {
	if r == nil {
		return nil
	}
	ids := make([]string, 0, len(r.Games))
	for id := range r.Games {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	out := make([]RawMatch, 0, len(ids)+len(r.Matches))
	for _, id := range ids {
		out = append(out, r.Games[id])
	}
	return append(out, r.Matches...)
}

// PlayoffRecords walks the whole document and collects every object whose skupina
// is "Play-off", wherever it is nested.
func PlayoffRecords(data []byte) ([]RawMatch, error) {
	var root any
	if err := json.Unmarshal(data, &root); err != nil {
		return nil, fmt.Errorf("decode results: %w", err)
	}
	out := make([]RawMatch, 0)
	var walk func(x any) error
	walk = func(x any) error {
		switch v := x.(type) {
		case []any:
			for _, e := range v {
				if err := walk(e); err != nil {
					return err
				}
			}
		case map[string]any:
			if g, _ := v["skupina"].(string); g == PlayoffGroup {
				b, err := json.Marshal(v)
				if err != nil {
					return err
				}
				if rm, ok := decodeRecord(b); ok {
					out = append(out, rm)
				}
			}
			keys := make([]string, 0, len(v))
			for k := range v {
				keys = append(keys, k)
			}
			sort.Strings(keys)
			for _, k := range keys {
				if err := walk(v[k]); err != nil {
					return err
				}
			}
		}
		return nil
	}
	if err := walk(root); err != nil {
		return nil, err
	}
	return out, nil
}
