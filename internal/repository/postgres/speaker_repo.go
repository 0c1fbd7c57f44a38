package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"eventmanager/internal/domain"
)

const speakerColumns = `id, name, bio, email, phone, expertise, created_at, updated_at`

type speakerRepository struct {
	DB executor
}

func newSpeakerRepository(ex executor) domain.SpeakerRepository {
	return &speakerRepository{DB: ex}
}

func scanSpeaker(row scannable) (*domain.Speaker, error) {
	s := &domain.Speaker{}
	var bio, phone, expertise sql.NullString
	if err := row.Scan(&s.ID, &s.Name, &bio, &s.Email, &phone, &expertise, &s.CreatedAt, &s.UpdatedAt); err != nil {
		return nil, err
	}
	s.Bio = stringPtr(bio)
	s.Phone = stringPtr(phone)
	s.Expertise = stringPtr(expertise)
	return s, nil
}

func (r *speakerRepository) getOne(ctx context.Context, query string, args ...any) (*domain.Speaker, error) {
	s, err := scanSpeaker(r.DB.QueryRowContext(ctx, query, args...))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return s, nil
}

func (r *speakerRepository) list(ctx context.Context, query string, args ...any) ([]*domain.Speaker, error) {
	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	speakers := make([]*domain.Speaker, 0)
	for rows.Next() {
		s, err := scanSpeaker(rows)
		if err != nil {
			return nil, err
		}
		speakers = append(speakers, s)
	}
	return speakers, rows.Err()
}

func (r *speakerRepository) Create(ctx context.Context, s *domain.Speaker) error {
	query := `
		INSERT INTO speakers (name, bio, email, phone, expertise, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id
	`
	return r.DB.QueryRowContext(ctx, query,
		s.Name, nullableString(s.Bio), s.Email, nullableString(s.Phone), nullableString(s.Expertise), s.CreatedAt, s.UpdatedAt,
	).Scan(&s.ID)
}

func (r *speakerRepository) GetByID(ctx context.Context, id int64) (*domain.Speaker, error) {
	return r.getOne(ctx, `SELECT `+speakerColumns+` FROM speakers WHERE id = $1`, id)
}

func (r *speakerRepository) List(ctx context.Context) ([]*domain.Speaker, error) {
	return r.list(ctx, `SELECT `+speakerColumns+` FROM speakers ORDER BY name ASC, id ASC`)
}

func (r *speakerRepository) ListByEventID(ctx context.Context, eventID int64) ([]*domain.Speaker, error) {
	query := `
		SELECT s.id, s.name, s.bio, s.email, s.phone, s.expertise, s.created_at, s.updated_at
		FROM speakers s
		INNER JOIN event_speakers es ON es.speaker_id = s.id
		WHERE es.event_id = $1
		ORDER BY es.assigned_at ASC, s.id ASC
	`
	return r.list(ctx, query, eventID)
}

func (r *speakerRepository) Update(ctx context.Context, id int64, patch domain.SpeakerPatch) (*domain.Speaker, error) {
	if patch.Empty() {
		return r.GetByID(ctx, id)
	}
	b := newSetBuilder()
	if v, ok := patch.Name.Get(); ok {
		b.add("name", v)
	}
	if v, ok := patch.Bio.Get(); ok {
		b.add("bio", nullableString(v))
	}
	if v, ok := patch.Email.Get(); ok {
		b.add("email", v)
	}
	if v, ok := patch.Phone.Get(); ok {
		b.add("phone", nullableString(v))
	}
	if v, ok := patch.Expertise.Get(); ok {
		b.add("expertise", nullableString(v))
	}
	set, args, n := b.build(id)
	query := fmt.Sprintf(`
		UPDATE speakers SET %s
		WHERE id = $%d
		RETURNING %s
	`, set, n, speakerColumns)
	return r.getOne(ctx, query, args...)
}

func (r *speakerRepository) Delete(ctx context.Context, id int64) (bool, error) {
	if _, err := r.DB.ExecContext(ctx, `DELETE FROM event_speakers WHERE speaker_id = $1`, id); err != nil {
		return false, fmt.Errorf("delete speaker assignments: %w", err)
	}
	result, err := r.DB.ExecContext(ctx, `DELETE FROM speakers WHERE id = $1`, id)
	if err != nil {
		return false, err
	}
	rows, _ := result.RowsAffected()
	return rows > 0, nil
}
