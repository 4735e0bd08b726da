package models

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// Player — один игрок из ростера команды.
type Player struct {
	Number   *int   `json:"number,omitempty"`
	Name     string `json:"name"`
	Position string `json:"position,omitempty"`
}

// Team is one entry of the canonical team list (tymy.json). Read-only after load.
type Team struct {
	ID     string   `json:"id"`
	Name   string   `json:"name"`
	Seed   string   `json:"seed"`
	Group  string   `json:"group"`
	Club   *string  `json:"club,omitempty"`
	City   *string  `json:"city,omitempty"`
	Coach  *string  `json:"coach,omitempty"`
	Roster []Player `json:"roster,omitempty"`
}

// UnmarshalJSON accepts the id either as a JSON string or as a number.
func (t *Team) UnmarshalJSON(b []byte) error {
	type alias Team
	aux := struct {
		ID json.RawMessage `json:"id"`
		*alias
	}{alias: (*alias)(t)}
	if err := json.Unmarshal(b, &aux); err != nil {
		return err
	}
	id, err := flexibleString(aux.ID)
	if err != nil {
		return fmt.Errorf("team id: %w", err)
	}
	t.ID = id
	return nil
}

// flexibleString decodes a JSON string or number into its trimmed textual form.
// null or an absent value yields "".
func flexibleString(raw json.RawMessage) (string, error) {
	if len(raw) == 0 || string(raw) == "null" {
		return "", nil
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return strings.TrimSpace(s), nil
	}
	var n json.Number
	if err := json.Unmarshal(raw, &n); err == nil {
		if i, err := strconv.ParseInt(n.String(), 10, 64); err == nil {
			return strconv.FormatInt(i, 10), nil
		}
		return n.String(), nil
	}
	return "", fmt.Errorf("expected string or number, got %s", string(raw))
}
