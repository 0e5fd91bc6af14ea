package attendees

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// SessionID is the canonical numeric form of a session identifier. Session
// values arrive as query-string text on the check path and as JSON values that
// may be a number or a quoted string on the mark/remove paths; every entry
// point normalizes through ParseSessionID before any set operation.
type SessionID int

// ParseSessionID normalizes loosely-typed session input to its canonical
// integer form, rejecting anything non-numeric.
func ParseSessionID(value string) (SessionID, error) {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return 0, fmt.Errorf("session is required")
	}
	n, err := strconv.Atoi(trimmed)
	if err != nil {
		return 0, fmt.Errorf("invalid session %q: must be numeric", value)
	}
	return SessionID(n), nil
}

func (s *SessionID) UnmarshalJSON(data []byte) error {
	raw := strings.TrimSpace(string(data))
	if raw == "null" {
		return fmt.Errorf("session is required")
	}
	if strings.HasPrefix(raw, `"`) {
		var str string
		if err := json.Unmarshal(data, &str); err != nil {
			return err
		}
		parsed, err := ParseSessionID(str)
		if err != nil {
			return err
		}
		*s = parsed
		return nil
	}
	var n int
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("invalid session %s: must be numeric", raw)
	}
	*s = SessionID(n)
	return nil
}
