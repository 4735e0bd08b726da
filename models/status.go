package models

import (
	"encoding/json"
	"time"
)

type Severity string

const (
	SeverityOK    Severity = "ok"
	SeverityInfo  Severity = "info"
	SeverityWarn  Severity = "warn"
	SeverityError Severity = "error"
)

// StatusBanner is the user-visible data status shown above every view.
type StatusBanner struct {
	Severity Severity `json:"severity"`
	Message  string   `json:"message"`
}

// CacheEntry is the {timestamp, data} envelope kept in durable storage.
type CacheEntry struct {
	Key     string          `json:"key"`
	SavedAt time.Time       `json:"saved_at"`
	Data    json.RawMessage `json:"data"`
}

// TimeChange is one match whose scheduled time moved between two schedule snapshots.
type TimeChange struct {
	MatchKey     string `json:"match_key"`
	Label        string `json:"label,omitempty"`
	PreviousTime string `json:"previous_time"`
	NewTime      string `json:"new_time"`
}
