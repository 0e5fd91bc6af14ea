package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/Philip-Ajayi/SHC/internal/domain/attendees"
	"github.com/Philip-Ajayi/SHC/internal/email"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

type stubBroadcastSender struct {
	recipients []email.BroadcastRecipient
	subject    string
	content    string
	fail       error
}

func (s *stubBroadcastSender) SendBroadcast(_ context.Context, recipients []email.BroadcastRecipient, subject, content string) (int, error) {
	s.recipients = recipients
	s.subject = subject
	s.content = content
	if s.fail != nil {
		return 0, s.fail
	}
	return len(recipients), nil
}

func newBroadcastHandler(repo stubAttendeesRepo, sender *stubBroadcastSender) *BroadcastHandler {
	service := attendees.NewService(repo, zerolog.Nop())
	return NewBroadcastHandler(service, sender, "production")
}

func TestBroadcastFansOutToSubscribed(t *testing.T) {
	repo := stubAttendeesRepo{
		findSubscribedFn: func() ([]attendees.Attendee, error) {
			return []attendees.Attendee{
				{ID: "a1", Email: "ada@example.com"},
				{ID: "a2", Email: "grace@example.com"},
			}, nil
		},
	}
	sender := &stubBroadcastSender{}
	handler := newBroadcastHandler(repo, sender)

	req := httptest.NewRequest(http.MethodPost, "/api/send-user-broadcast", strings.NewReader(
		`{"subject":"Service moved","content":"<p>See you at 10am</p>"}`))
	rec := httptest.NewRecorder()
	handler.Send(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var body map[string]int
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Equal(t, 2, body["count"])
	require.Len(t, sender.recipients, 2)
	require.Equal(t, "a1", sender.recipients[0].ID)
	require.Equal(t, "Service moved", sender.subject)
	require.Equal(t, "<p>See you at 10am</p>", sender.content)
}

func TestBroadcastNoSubscribedUsers(t *testing.T) {
	repo := stubAttendeesRepo{
		findSubscribedFn: func() ([]attendees.Attendee, error) { return nil, nil },
	}
	sender := &stubBroadcastSender{}
	handler := newBroadcastHandler(repo, sender)

	req := httptest.NewRequest(http.MethodPost, "/api/send-user-broadcast", strings.NewReader(
		`{"subject":"s","content":"c"}`))
	rec := httptest.NewRecorder()
	handler.Send(rec, req)

	require.Equal(t, http.StatusNotFound, rec.Code)
	require.Equal(t, "No subscribed users found", decodeMessage(t, rec))
	require.Nil(t, sender.recipients)
}

func TestBroadcastDeliveryFailure(t *testing.T) {
	repo := stubAttendeesRepo{
		findSubscribedFn: func() ([]attendees.Attendee, error) {
			return []attendees.Attendee{{ID: "a1", Email: "ada@example.com"}}, nil
		},
	}
	sender := &stubBroadcastSender{fail: errors.New("relay unavailable")}
	handler := newBroadcastHandler(repo, sender)

	req := httptest.NewRequest(http.MethodPost, "/api/send-user-broadcast", strings.NewReader(
		`{"subject":"s","content":"c"}`))
	rec := httptest.NewRecorder()
	handler.Send(rec, req)

	require.Equal(t, http.StatusInternalServerError, rec.Code)
	require.Equal(t, "Broadcast failed", decodeMessage(t, rec))
}
