package attendees

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseSessionID(t *testing.T) {
	tests := []struct {
		input   string
		want    SessionID
		wantErr bool
	}{
		{"3", 3, false},
		{" 3 ", 3, false},
		{"42", 42, false},
		{"0", 0, false},
		{"", 0, true},
		{"  ", 0, true},
		{"three", 0, true},
		{"3.5", 0, true},
		{"3a", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseSessionID(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			require.Equal(t, tt.want, got)
		})
	}
}

func TestSessionIDUnmarshalJSON(t *testing.T) {
	tests := []struct {
		name    string
		payload string
		want    SessionID
		wantErr bool
	}{
		{"number", `{"session": 3}`, 3, false},
		{"quoted number", `{"session": "3"}`, 3, false},
		{"quoted with spaces", `{"session": " 7 "}`, 7, false},
		{"non-numeric string", `{"session": "abc"}`, 0, true},
		{"float", `{"session": 3.5}`, 0, true},
		{"null", `{"session": null}`, 0, true},
		{"bool", `{"session": true}`, 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var body struct {
				Session SessionID `json:"session"`
			}
			err := json.Unmarshal([]byte(tt.payload), &body)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			require.Equal(t, tt.want, body.Session)
		})
	}
}

func TestAttendeeAttended(t *testing.T) {
	a := Attendee{Attendance: []int{1, 3, 5}}
	require.True(t, a.Attended(3))
	require.False(t, a.Attended(2))

	empty := Attendee{}
	require.False(t, empty.Attended(1))
}
