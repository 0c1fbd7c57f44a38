package services

import (
	"context"
	"testing"
	"time"

	"eventmanager/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestSpeakerService(store *fakeStore) *speakerService {
	svc := NewSpeakerService(store.repos(), &fakeTransactor{s: store}, 5*time.Second).(*speakerService)
	svc.now = func() time.Time { return testNow }
	return svc
}

func TestSpeakerService_CreateAndUpdate(t *testing.T) {
	store := newFakeStore()
	svc := newTestSpeakerService(store)
	ctx := context.Background()

	bio := "Gopher"
	sp := domain.NewSpeaker("Rob", &bio, "rob@example.com", nil, nil, time.Time{}, time.Time{})
	require.NoError(t, svc.CreateSpeaker(ctx, sp))
	assert.NotZero(t, sp.ID)
	assert.Equal(t, testNow, sp.CreatedAt)

	err := svc.CreateSpeaker(ctx, &domain.Speaker{Name: "", Email: "x@example.com"})
	require.ErrorIs(t, err, domain.ErrInvalidInput)

	got, err := svc.UpdateSpeaker(ctx, sp.ID, domain.SpeakerPatch{Bio: domain.Optional[*string]{Set: true, Null: true}})
	require.NoError(t, err)
	assert.Nil(t, got.Bio)
	assert.Equal(t, "Rob", got.Name)

	_, err = svc.UpdateSpeaker(ctx, 999, domain.SpeakerPatch{Name: domain.Some("x")})
	require.ErrorIs(t, err, domain.ErrNotFound)

	_, err = svc.GetSpeakerByID(ctx, 999)
	require.ErrorIs(t, err, domain.ErrNotFound)

	list, err := svc.ListSpeakers(ctx)
	require.NoError(t, err)
	assert.Len(t, list, 1)
}

func TestSpeakerService_AssignSpeaker(t *testing.T) {
	store := newFakeStore()
	svc := newTestSpeakerService(store)
	ctx := context.Background()
	ev := store.addEvent(openEvent(10, 0))
	sp := &domain.Speaker{Name: "Rob", Email: "rob@example.com"}
	require.NoError(t, svc.CreateSpeaker(ctx, sp))

	tests := []struct {
		name      string
		eventID   int64
		speakerID int64
		wantErr   error
	}{
		{name: "first assignment", eventID: ev.ID, speakerID: sp.ID},
		{name: "duplicate pair", eventID: ev.ID, speakerID: sp.ID, wantErr: domain.ErrDuplicateAssignment},
		{name: "unknown event", eventID: 9999, speakerID: sp.ID, wantErr: domain.ErrNotFound},
		{name: "unknown speaker", eventID: ev.ID, speakerID: 9999, wantErr: domain.ErrNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := svc.AssignSpeaker(ctx, tt.eventID, tt.speakerID)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, got)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.eventID, got.EventID)
			assert.Equal(t, testNow, got.AssignedAt)
		})
	}

	assert.Len(t, store.assignments, 1)
	speakers, err := svc.ListSpeakersByEvent(ctx, ev.ID)
	require.NoError(t, err)
	require.Len(t, speakers, 1)
	assert.Equal(t, "Rob", speakers[0].Name)
}

func TestSpeakerService_AssignSpeaker_LocksEvent(t *testing.T) {
	store := newFakeStore()
	svc := newTestSpeakerService(store)
	ctx := context.Background()
	ev := store.addEvent(openEvent(10, 0))
	sp := &domain.Speaker{Name: "Rob", Email: "rob@example.com"}
	require.NoError(t, svc.CreateSpeaker(ctx, sp))
	store.locks = nil

	_, err := svc.AssignSpeaker(ctx, ev.ID, sp.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{"event"}, store.locks)
}

func TestSpeakerService_UnassignAndDelete(t *testing.T) {
	store := newFakeStore()
	svc := newTestSpeakerService(store)
	ctx := context.Background()
	ev := store.addEvent(openEvent(10, 0))
	sp := &domain.Speaker{Name: "Rob", Email: "rob@example.com"}
	require.NoError(t, svc.CreateSpeaker(ctx, sp))
	_, err := svc.AssignSpeaker(ctx, ev.ID, sp.ID)
	require.NoError(t, err)

	ok, err := svc.UnassignSpeaker(ctx, ev.ID, sp.ID)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = svc.UnassignSpeaker(ctx, ev.ID, sp.ID)
	require.NoError(t, err)
	assert.False(t, ok)

	_, err = svc.AssignSpeaker(ctx, ev.ID, sp.ID)
	require.NoError(t, err)

	ok, err = svc.DeleteSpeaker(ctx, sp.ID)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Empty(t, store.assignments)

	ok, err = svc.DeleteSpeaker(ctx, sp.ID)
	require.NoError(t, err)
	assert.False(t, ok)
}
