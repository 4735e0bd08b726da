package feed

import (
	"encoding/json"
	"fmt"
)

// Validator is a structural shape check, not a schema.
type Validator func(data []byte) error

// ValidJSON accepts any well-formed JSON document.
func ValidJSON(data []byte) error {
	if !json.Valid(data) {
		return fmt.Errorf("%w: not valid JSON", ErrValidation)
	}
	return nil
}

// ValidSchedule requires the three day-keyed arrays.
func ValidSchedule(data []byte) error {
	var doc map[string]json.RawMessage
	if err := json.Unmarshal(data, &doc); err != nil {
		return fmt.Errorf("%w: schedule is not a JSON object: %w", ErrValidation, err)
	}
	for _, day := range []string{"patek", "sobota", "nedele"} {
		if !isArray(doc[day]) {
			return fmt.Errorf("%w: schedule day %q is not an array", ErrValidation, day)
		}
	}
	return nil
}

// ValidResults requires a games object or a zapasy/matches array.
func ValidResults(data []byte) error {
	var doc map[string]json.RawMessage
	if err := json.Unmarshal(data, &doc); err != nil {
		return fmt.Errorf("%w: results is not a JSON object: %w", ErrValidation, err)
	}
	if isObject(doc["games"]) || isArray(doc["zapasy"]) || isArray(doc["matches"]) {
		return nil
	}
	return fmt.Errorf("%w: results has no games or matches collection", ErrValidation)
}

func isArray(raw json.RawMessage) bool {
	var v []json.RawMessage
	return raw != nil && json.Unmarshal(raw, &v) == nil && v != nil
}

func isObject(raw json.RawMessage) bool {
	var v map[string]json.RawMessage
	return raw != nil && json.Unmarshal(raw, &v) == nil && v != nil
}
