package postgres

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"eventmanager/internal/domain"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/require"
)

var eventRowColumns = []string{"id", "title", "description", "location", "start_date", "end_date", "max_capacity", "current_bookings", "is_active", "created_at", "updated_at"}

var (
	evStart = time.Date(2025, 9, 1, 9, 0, 0, 0, time.UTC)
	evEnd   = time.Date(2025, 9, 1, 17, 0, 0, 0, time.UTC)
	evTS    = time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
)

func eventRow(id int64, desc any, bookings int) *sqlmock.Rows {
	return sqlmock.NewRows(eventRowColumns).
		AddRow(id, "Go Meetup", desc, "Berlin", evStart, evEnd, 50, bookings, true, evTS, evTS)
}

func TestEventRepository_Create(t *testing.T) {
	ctx := context.Background()
	desc := "Monthly meetup"

	tests := []struct {
		name    string
		event   *domain.Event
		mock    func(mock sqlmock.Sqlmock)
		wantID  int64
		wantErr bool
	}{
		{
			name:  "success",
			event: domain.NewEvent("Go Meetup", &desc, "Berlin", evStart, evEnd, 50, evTS, evTS),
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`INSERT INTO events \(title, description, location, start_date, end_date, max_capacity, current_bookings, is_active, created_at, updated_at\)`).
					WithArgs("Go Meetup", "Monthly meetup", "Berlin", evStart, evEnd, 50, 0, true, evTS, evTS).
					WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(int64(7)))
			},
			wantID: 7,
		},
		{
			name:  "null description",
			event: domain.NewEvent("Go Meetup", nil, "Berlin", evStart, evEnd, 50, evTS, evTS),
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`INSERT INTO events`).
					WithArgs("Go Meetup", nil, "Berlin", evStart, evEnd, 50, 0, true, evTS, evTS).
					WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(int64(8)))
			},
			wantID: 8,
		},
		{
			name:  "db error",
			event: domain.NewEvent("Go Meetup", nil, "Berlin", evStart, evEnd, 50, evTS, evTS),
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`INSERT INTO events`).
					WillReturnError(sql.ErrConnDone)
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock, err := sqlmock.New()
			require.NoError(t, err)
			defer db.Close()

			tt.mock(mock)
			repo := newEventRepository(db)
			err = repo.Create(ctx, tt.event)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			require.Equal(t, tt.wantID, tt.event.ID)
			require.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestEventRepository_GetByID(t *testing.T) {
	ctx := context.Background()
	desc := "Monthly meetup"

	tests := []struct {
		name    string
		id      int64
		mock    func(mock sqlmock.Sqlmock)
		want    *domain.Event
		wantErr error
	}{
		{
			name: "success",
			id:   1,
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`SELECT id, title, description, location, start_date, end_date, max_capacity, current_bookings, is_active, created_at, updated_at FROM events WHERE id = \$1`).
					WithArgs(int64(1)).
					WillReturnRows(eventRow(1, desc, 3))
			},
			want: &domain.Event{
				ID: 1, Title: "Go Meetup", Description: &desc, Location: "Berlin",
				StartDate: evStart, EndDate: evEnd, MaxCapacity: 50, CurrentBookings: 3,
				IsActive: true, CreatedAt: evTS, UpdatedAt: evTS,
			},
		},
		{
			name: "null description",
			id:   2,
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`SELECT id, title`).
					WithArgs(int64(2)).
					WillReturnRows(eventRow(2, nil, 0))
			},
			want: &domain.Event{
				ID: 2, Title: "Go Meetup", Location: "Berlin",
				StartDate: evStart, EndDate: evEnd, MaxCapacity: 50,
				IsActive: true, CreatedAt: evTS, UpdatedAt: evTS,
			},
		},
		{
			name: "not found",
			id:   99,
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`SELECT id, title`).
					WithArgs(int64(99)).
					WillReturnError(sql.ErrNoRows)
			},
			wantErr: domain.ErrNotFound,
		},
		{
			name: "db error",
			id:   1,
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`SELECT id, title`).
					WithArgs(int64(1)).
					WillReturnError(sql.ErrConnDone)
			},
			wantErr: sql.ErrConnDone,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock, err := sqlmock.New()
			require.NoError(t, err)
			defer db.Close()

			tt.mock(mock)
			repo := newEventRepository(db)
			got, err := repo.GetByID(ctx, tt.id)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				require.Nil(t, got)
				require.NoError(t, mock.ExpectationsWereMet())
				return
			}
			require.NoError(t, err)
			require.Equal(t, tt.want, got)
			require.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestEventRepository_GetByIDForUpdate(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(`SELECT id, title, .* FROM events WHERE id = \$1 FOR UPDATE`).
		WithArgs(int64(4)).
		WillReturnRows(eventRow(4, nil, 10))

	repo := newEventRepository(db)
	got, err := repo.GetByIDForUpdate(context.Background(), 4)
	require.NoError(t, err)
	require.Equal(t, 10, got.CurrentBookings)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestEventRepository_List(t *testing.T) {
	tests := []struct {
		name      string
		mock      func(mock sqlmock.Sqlmock)
		wantCount int
		wantErr   bool
	}{
		{
			name: "success multiple",
			mock: func(mock sqlmock.Sqlmock) {
				rows := sqlmock.NewRows(eventRowColumns).
					AddRow(int64(1), "A", nil, "Berlin", evStart, evEnd, 10, 0, true, evTS, evTS).
					AddRow(int64(2), "B", "desc", "Paris", evStart, evEnd, 20, 5, false, evTS, evTS)
				mock.ExpectQuery(`SELECT id, title, .* FROM events ORDER BY start_date ASC`).WillReturnRows(rows)
			},
			wantCount: 2,
		},
		{
			name: "success empty",
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`FROM events ORDER BY`).WillReturnRows(sqlmock.NewRows(eventRowColumns))
			},
			wantCount: 0,
		},
		{
			name: "db error",
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`FROM events ORDER BY`).WillReturnError(sql.ErrConnDone)
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock, err := sqlmock.New()
			require.NoError(t, err)
			defer db.Close()

			tt.mock(mock)
			got, err := newEventRepository(db).List(context.Background())
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			require.NotNil(t, got)
			require.Len(t, got, tt.wantCount)
			require.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestEventRepository_Update(t *testing.T) {
	ctx := context.Background()
	newStart := evStart.Add(24 * time.Hour)
	newEnd := evEnd.Add(24 * time.Hour)

	tests := []struct {
		name    string
		patch   domain.EventPatch
		mock    func(mock sqlmock.Sqlmock)
		wantErr error
	}{
		{
			name:  "single field",
			patch: domain.EventPatch{Title: domain.Some("Go Meetup")},
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`UPDATE events SET updated_at = NOW\(\), title = \$1\s+WHERE id = \$2`).
					WithArgs("Go Meetup", int64(3)).
					WillReturnRows(eventRow(3, nil, 0))
			},
		},
		{
			name: "dates capacity and active flag",
			patch: domain.EventPatch{
				StartDate:   domain.Some(newStart),
				EndDate:     domain.Some(newEnd),
				MaxCapacity: domain.Some(80),
				IsActive:    domain.Some(false),
			},
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`UPDATE events SET updated_at = NOW\(\), start_date = \$1, end_date = \$2, max_capacity = \$3, is_active = \$4\s+WHERE id = \$5`).
					WithArgs(newStart, newEnd, 80, false, int64(3)).
					WillReturnRows(eventRow(3, nil, 0))
			},
		},
		{
			name:  "explicit null description",
			patch: domain.EventPatch{Description: domain.Optional[*string]{Set: true, Null: true}},
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`UPDATE events SET updated_at = NOW\(\), description = \$1`).
					WithArgs(nil, int64(3)).
					WillReturnRows(eventRow(3, nil, 0))
			},
		},
		{
			name:  "empty patch reads current row",
			patch: domain.EventPatch{},
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`SELECT id, title, .* FROM events WHERE id = \$1`).
					WithArgs(int64(3)).
					WillReturnRows(eventRow(3, nil, 0))
			},
		},
		{
			name:  "not found",
			patch: domain.EventPatch{Location: domain.Some("Paris")},
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`UPDATE events SET`).
					WithArgs("Paris", int64(3)).
					WillReturnError(sql.ErrNoRows)
			},
			wantErr: domain.ErrNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock, err := sqlmock.New()
			require.NoError(t, err)
			defer db.Close()

			tt.mock(mock)
			got, err := newEventRepository(db).Update(ctx, 3, tt.patch)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			require.Equal(t, int64(3), got.ID)
			require.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestEventRepository_AdjustBookings(t *testing.T) {
	tests := []struct {
		name     string
		delta    int
		returned int
		mockErr  error
		wantErr  error
	}{
		{name: "increment", delta: 1, returned: 4},
		{name: "decrement", delta: -1, returned: 2},
		{name: "floored decrement", delta: -1, returned: 0},
		{name: "missing event", delta: 1, mockErr: sql.ErrNoRows, wantErr: domain.ErrNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock, err := sqlmock.New()
			require.NoError(t, err)
			defer db.Close()

			exp := mock.ExpectQuery(`UPDATE events\s+SET current_bookings = GREATEST\(current_bookings \+ \$1, 0\), updated_at = NOW\(\)\s+WHERE id = \$2`).
				WithArgs(tt.delta, int64(5))
			if tt.mockErr != nil {
				exp.WillReturnError(tt.mockErr)
			} else {
				exp.WillReturnRows(eventRow(5, nil, tt.returned))
			}

			got, err := newEventRepository(db).AdjustBookings(context.Background(), 5, tt.delta)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			require.Equal(t, tt.returned, got.CurrentBookings)
			require.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestEventRepository_Delete(t *testing.T) {
	tests := []struct {
		name    string
		mock    func(mock sqlmock.Sqlmock)
		want    bool
		wantErr bool
	}{
		{
			name: "cascades to speakers and attendees",
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec(`DELETE FROM event_speakers WHERE event_id = \$1`).WithArgs(int64(9)).WillReturnResult(sqlmock.NewResult(0, 2))
				mock.ExpectExec(`DELETE FROM attendees WHERE event_id = \$1`).WithArgs(int64(9)).WillReturnResult(sqlmock.NewResult(0, 3))
				mock.ExpectExec(`DELETE FROM events WHERE id = \$1`).WithArgs(int64(9)).WillReturnResult(sqlmock.NewResult(0, 1))
			},
			want: true,
		},
		{
			name: "no such event",
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec(`DELETE FROM event_speakers`).WithArgs(int64(9)).WillReturnResult(sqlmock.NewResult(0, 0))
				mock.ExpectExec(`DELETE FROM attendees`).WithArgs(int64(9)).WillReturnResult(sqlmock.NewResult(0, 0))
				mock.ExpectExec(`DELETE FROM events`).WithArgs(int64(9)).WillReturnResult(sqlmock.NewResult(0, 0))
			},
			want: false,
		},
		{
			name: "attendee delete fails",
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec(`DELETE FROM event_speakers`).WithArgs(int64(9)).WillReturnResult(sqlmock.NewResult(0, 0))
				mock.ExpectExec(`DELETE FROM attendees`).WithArgs(int64(9)).WillReturnError(sql.ErrConnDone)
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock, err := sqlmock.New()
			require.NoError(t, err)
			defer db.Close()

			tt.mock(mock)
			got, err := newEventRepository(db).Delete(context.Background(), 9)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			require.Equal(t, tt.want, got)
			require.NoError(t, mock.ExpectationsWereMet())
		})
	}
}
