package utils

import (
	"encoding/json"
	"strings"
)

// ParseQRUserID extracts the user id from scanned QR text. A JSON object
// with a non-empty userId wins; anything else falls back to the trimmed
// text itself. ok is false only for empty or whitespace input.
func ParseQRUserID(text string) (string, bool) {
	raw := strings.TrimSpace(text)
	if raw == "" {
		return "", false
	}

	var payload struct {
		UserID any `json:"userId"`
	}
	dec := json.NewDecoder(strings.NewReader(raw))
	dec.UseNumber()
	if err := dec.Decode(&payload); err == nil && !dec.More() {
		switch v := payload.UserID.(type) {
		case string:
			if id := strings.TrimSpace(v); id != "" {
				return id, true
			}
		case json.Number:
			// numeric ids keep their literal digits
			return v.String(), true
		}
	}
	return raw, true
}
