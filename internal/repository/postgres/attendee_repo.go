package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"eventmanager/internal/domain"
)

const attendeeColumns = `id, event_id, name, email, registration_status, registered_at, updated_at`

type attendeeRepository struct {
	DB executor
}

func newAttendeeRepository(ex executor) domain.AttendeeRepository {
	return &attendeeRepository{
		DB: ex,
	}
}

func scanAttendee(row scannable) (*domain.Attendee, error) {
	a := &domain.Attendee{}
	var status string
	if err := row.Scan(&a.ID, &a.EventID, &a.Name, &a.Email, &status, &a.RegisteredAt, &a.UpdatedAt); err != nil {
		return nil, err
	}
	a.RegistrationStatus = domain.RegistrationStatus(status)
	return a, nil
}

func (r *attendeeRepository) getOne(ctx context.Context, query string, args ...any) (*domain.Attendee, error) {
	a, err := scanAttendee(r.DB.QueryRowContext(ctx, query, args...))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return a, nil
}

func (r *attendeeRepository) list(ctx context.Context, query string, args ...any) ([]*domain.Attendee, error) {
	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	attendees := make([]*domain.Attendee, 0)
	for rows.Next() {
		a, err := scanAttendee(rows)
		if err != nil {
			return nil, err
		}
		attendees = append(attendees, a)
	}
	return attendees, rows.Err()
}

func (r *attendeeRepository) Create(ctx context.Context, a *domain.Attendee) error {
	query := `
		INSERT INTO attendees (event_id, name, email, registration_status, registered_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id
	`
	return r.DB.QueryRowContext(ctx, query, a.EventID, a.Name, a.Email, string(a.RegistrationStatus), a.RegisteredAt, a.UpdatedAt).
		Scan(&a.ID)
}

func (r *attendeeRepository) GetByID(ctx context.Context, id int64) (*domain.Attendee, error) {
	return r.getOne(ctx, `SELECT `+attendeeColumns+` FROM attendees WHERE id = $1`, id)
}

func (r *attendeeRepository) GetByIDForUpdate(ctx context.Context, id int64) (*domain.Attendee, error) {
	return r.getOne(ctx, `SELECT `+attendeeColumns+` FROM attendees WHERE id = $1 FOR UPDATE`, id)
}

func (r *attendeeRepository) ListByEventID(ctx context.Context, eventID int64) ([]*domain.Attendee, error) {
	return r.list(ctx, `SELECT `+attendeeColumns+` FROM attendees WHERE event_id = $1 ORDER BY registered_at ASC, id ASC`, eventID)
}

func (r *attendeeRepository) List(ctx context.Context) ([]*domain.Attendee, error) {
	return r.list(ctx, `SELECT `+attendeeColumns+` FROM attendees ORDER BY registered_at ASC, id ASC`)
}

func (r *attendeeRepository) Update(ctx context.Context, id int64, patch domain.AttendeePatch) (*domain.Attendee, error) {
	if patch.Empty() {
		return r.GetByID(ctx, id)
	}
	b := newSetBuilder()
	if v, ok := patch.Name.Get(); ok {
		b.add("name", v)
	}
	if v, ok := patch.Email.Get(); ok {
		b.add("email", v)
	}
	if v, ok := patch.RegistrationStatus.Get(); ok {
		b.add("registration_status", string(v))
	}
	set, args, n := b.build(id)
	query := fmt.Sprintf(`
		UPDATE attendees SET %s
		WHERE id = $%d
		RETURNING %s
	`, set, n, attendeeColumns)
	return r.getOne(ctx, query, args...)
}

func (r *attendeeRepository) Delete(ctx context.Context, id int64) (bool, error) {
	result, err := r.DB.ExecContext(ctx, `DELETE FROM attendees WHERE id = $1`, id)
	if err != nil {
		return false, err
	}
	rows, _ := result.RowsAffected()
	return rows > 0, nil
}
