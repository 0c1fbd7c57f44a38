package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"eventmanager/internal/domain"
)

// eventColumns is the column list used for SELECT and RETURNING on the events table.
const eventColumns = `id, title, description, location, start_date, end_date, max_capacity, current_bookings, is_active, created_at, updated_at`

type eventRepository struct {
	DB executor
}

func newEventRepository(ex executor) domain.EventRepository {
	return &eventRepository{
		DB: ex,
	}
}

func scanEvent(row scannable) (*domain.Event, error) {
	e := &domain.Event{}
	var descNull sql.NullString
	err := row.Scan(
		&e.ID, &e.Title, &descNull, &e.Location, &e.StartDate, &e.EndDate,
		&e.MaxCapacity, &e.CurrentBookings, &e.IsActive, &e.CreatedAt, &e.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	e.Description = stringPtr(descNull)
	return e, nil
}

func (r *eventRepository) getOne(ctx context.Context, query string, args ...any) (*domain.Event, error) {
	e, err := scanEvent(r.DB.QueryRowContext(ctx, query, args...))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return e, nil
}

func (r *eventRepository) Create(ctx context.Context, e *domain.Event) error {
	query := `
		INSERT INTO events (title, description, location, start_date, end_date, max_capacity, current_bookings, is_active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING id
	`
	return r.DB.QueryRowContext(ctx, query,
		e.Title, nullableString(e.Description), e.Location, e.StartDate, e.EndDate,
		e.MaxCapacity, e.CurrentBookings, e.IsActive, e.CreatedAt, e.UpdatedAt,
	).Scan(&e.ID)
}

func (r *eventRepository) GetByID(ctx context.Context, id int64) (*domain.Event, error) {
	return r.getOne(ctx, `SELECT `+eventColumns+` FROM events WHERE id = $1`, id)
}

func (r *eventRepository) GetByIDForUpdate(ctx context.Context, id int64) (*domain.Event, error) {
	return r.getOne(ctx, `SELECT `+eventColumns+` FROM events WHERE id = $1 FOR UPDATE`, id)
}

func (r *eventRepository) List(ctx context.Context) ([]*domain.Event, error) {
	rows, err := r.DB.QueryContext(ctx, `SELECT `+eventColumns+` FROM events ORDER BY start_date ASC, id ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	events := make([]*domain.Event, 0)
	for rows.Next() {
		e, err := scanEvent(rows)
		if err != nil {
			return nil, err
		}
		events = append(events, e)
	}
	return events, rows.Err()
}

func (r *eventRepository) Update(ctx context.Context, id int64, patch domain.EventPatch) (*domain.Event, error) {
	if patch.Empty() {
		// No fields to update; just fetch current row
		return r.GetByID(ctx, id)
	}
	b := newSetBuilder()
	if v, ok := patch.Title.Get(); ok {
		b.add("title", v)
	}
	if v, ok := patch.Description.Get(); ok {
		b.add("description", nullableString(v))
	}
	if v, ok := patch.Location.Get(); ok {
		b.add("location", v)
	}
	if v, ok := patch.StartDate.Get(); ok {
		b.add("start_date", v)
	}
	if v, ok := patch.EndDate.Get(); ok {
		b.add("end_date", v)
	}
	if v, ok := patch.MaxCapacity.Get(); ok {
		b.add("max_capacity", v)
	}
	if v, ok := patch.IsActive.Get(); ok {
		b.add("is_active", v)
	}
	set, args, n := b.build(id)
	query := fmt.Sprintf(`
		UPDATE events SET %s
		WHERE id = $%d
		RETURNING %s
	`, set, n, eventColumns)
	return r.getOne(ctx, query, args...)
}

func (r *eventRepository) AdjustBookings(ctx context.Context, id int64, delta int) (*domain.Event, error) {
	query := `
		UPDATE events
		SET current_bookings = GREATEST(current_bookings + $1, 0), updated_at = NOW()
		WHERE id = $2
		RETURNING ` + eventColumns
	return r.getOne(ctx, query, delta, id)
}

func (r *eventRepository) Delete(ctx context.Context, id int64) (bool, error) {
	if _, err := r.DB.ExecContext(ctx, `DELETE FROM event_speakers WHERE event_id = $1`, id); err != nil {
		return false, fmt.Errorf("delete event speakers: %w", err)
	}
	if _, err := r.DB.ExecContext(ctx, `DELETE FROM attendees WHERE event_id = $1`, id); err != nil {
		return false, fmt.Errorf("delete event attendees: %w", err)
	}
	result, err := r.DB.ExecContext(ctx, `DELETE FROM events WHERE id = $1`, id)
	if err != nil {
		return false, err
	}
	rows, _ := result.RowsAffected()
	return rows > 0, nil
}
