package controllers

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http/httptest"
	"testing"

	"eventmanager/internal/delivery/http/helpers"
	"eventmanager/internal/domain"

	"github.com/stretchr/testify/require"
)

// testLogger is a no-op logger for controller tests so we don't assert on log output.
var testLogger = slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.LevelError}))

// decodeEnvelope decodes the response envelope and, when out is non-nil, its data into out.
func decodeEnvelope(t *testing.T, rr *httptest.ResponseRecorder, out any) helpers.APIResponse {
	t.Helper()
	var envelope helpers.APIResponse
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&envelope), "response must be valid JSON envelope")
	if out != nil {
		require.Nil(t, envelope.Error, "success response must have error nil")
		dataBytes, err := json.Marshal(envelope.Data)
		require.NoError(t, err)
		require.NoError(t, json.Unmarshal(dataBytes, out))
	}
	return envelope
}

// fakeEventService implements domain.EventService for handler tests.
type fakeEventService struct {
	err        error
	event      *domain.Event
	events     []*domain.Event
	deleted    bool
	lastCreate *domain.Event
	lastID     int64
	lastPatch  domain.EventPatch
}

func (f *fakeEventService) CreateEvent(ctx context.Context, e *domain.Event) error {
	f.lastCreate = e
	if f.err != nil {
		return f.err
	}
	e.ID = 1
	return nil
}

func (f *fakeEventService) ListEvents(ctx context.Context) ([]*domain.Event, error) {
	return f.events, f.err
}

func (f *fakeEventService) GetEventByID(ctx context.Context, id int64) (*domain.Event, error) {
	f.lastID = id
	return f.event, f.err
}

func (f *fakeEventService) UpdateEvent(ctx context.Context, id int64, patch domain.EventPatch) (*domain.Event, error) {
	f.lastID = id
	f.lastPatch = patch
	return f.event, f.err
}

func (f *fakeEventService) DeleteEvent(ctx context.Context, id int64) (bool, error) {
	f.lastID = id
	return f.deleted, f.err
}

// fakeAttendeeService implements domain.AttendeeService for handler tests.
type fakeAttendeeService struct {
	err          error
	attendee     *domain.Attendee
	attendees    []*domain.Attendee
	deleted      bool
	lastRegister *domain.Attendee
	lastID       int64
	lastPatch    domain.AttendeePatch
}

func (f *fakeAttendeeService) RegisterAttendee(ctx context.Context, a *domain.Attendee) error {
	f.lastRegister = a
	if f.err != nil {
		return f.err
	}
	a.ID = 10
	return nil
}

func (f *fakeAttendeeService) ListAttendeesByEvent(ctx context.Context, eventID int64) ([]*domain.Attendee, error) {
	f.lastID = eventID
	return f.attendees, f.err
}

func (f *fakeAttendeeService) ListAttendees(ctx context.Context) ([]*domain.Attendee, error) {
	return f.attendees, f.err
}

func (f *fakeAttendeeService) UpdateAttendee(ctx context.Context, id int64, patch domain.AttendeePatch) (*domain.Attendee, error) {
	f.lastID = id
	f.lastPatch = patch
	return f.attendee, f.err
}

func (f *fakeAttendeeService) DeleteAttendee(ctx context.Context, id int64) (bool, error) {
	f.lastID = id
	return f.deleted, f.err
}

// fakeInvitationService implements domain.InvitationService for handler tests.
type fakeInvitationService struct {
	lastAttendeeID int64
	lastMessage    *string
}

func (f *fakeInvitationService) SendInvitation(ctx context.Context, attendeeID int64, message *string) (*domain.InvitationResult, error) {
	f.lastAttendeeID = attendeeID
	f.lastMessage = message
	return &domain.InvitationResult{Success: true, Message: "ok"}, nil
}

// fakeSpeakerService implements domain.SpeakerService for handler tests.
type fakeSpeakerService struct {
	err           error
	speaker       *domain.Speaker
	speakers      []*domain.Speaker
	assignment    *domain.EventSpeaker
	deleted       bool
	lastCreate    *domain.Speaker
	lastID        int64
	lastEventID   int64
	lastSpeakerID int64
	lastPatch     domain.SpeakerPatch
}

func (f *fakeSpeakerService) CreateSpeaker(ctx context.Context, s *domain.Speaker) error {
	f.lastCreate = s
	if f.err != nil {
		return f.err
	}
	s.ID = 5
	return nil
}

func (f *fakeSpeakerService) ListSpeakers(ctx context.Context) ([]*domain.Speaker, error) {
	return f.speakers, f.err
}

func (f *fakeSpeakerService) GetSpeakerByID(ctx context.Context, id int64) (*domain.Speaker, error) {
	f.lastID = id
	return f.speaker, f.err
}

func (f *fakeSpeakerService) ListSpeakersByEvent(ctx context.Context, eventID int64) ([]*domain.Speaker, error) {
	f.lastEventID = eventID
	return f.speakers, f.err
}

func (f *fakeSpeakerService) UpdateSpeaker(ctx context.Context, id int64, patch domain.SpeakerPatch) (*domain.Speaker, error) {
	f.lastID = id
	f.lastPatch = patch
	return f.speaker, f.err
}

func (f *fakeSpeakerService) DeleteSpeaker(ctx context.Context, id int64) (bool, error) {
	f.lastID = id
	return f.deleted, f.err
}

func (f *fakeSpeakerService) AssignSpeaker(ctx context.Context, eventID, speakerID int64) (*domain.EventSpeaker, error) {
	f.lastEventID, f.lastSpeakerID = eventID, speakerID
	return f.assignment, f.err
}

func (f *fakeSpeakerService) UnassignSpeaker(ctx context.Context, eventID, speakerID int64) (bool, error) {
	f.lastEventID, f.lastSpeakerID = eventID, speakerID
	return f.deleted, f.err
}
