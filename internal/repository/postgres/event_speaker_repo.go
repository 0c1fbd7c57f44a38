package postgres

import (
	"context"
	"errors"

	"github.com/lib/pq"

	"eventmanager/internal/domain"
)

// Postgres SQLSTATE codes mapped to domain errors.
const (
	uniqueViolation     = "23505"
	foreignKeyViolation = "23503"
)

type eventSpeakerRepository struct {
	DB executor
}

func newEventSpeakerRepository(ex executor) domain.EventSpeakerRepository {
	return &eventSpeakerRepository{DB: ex}
}

func (r *eventSpeakerRepository) Create(ctx context.Context, es *domain.EventSpeaker) error {
	query := `
		INSERT INTO event_speakers (event_id, speaker_id, assigned_at)
		VALUES ($1, $2, $3)
		RETURNING id
	`
	err := r.DB.QueryRowContext(ctx, query, es.EventID, es.SpeakerID, es.AssignedAt).Scan(&es.ID)
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		switch pqErr.Code {
		case uniqueViolation:
			return domain.ErrDuplicateAssignment
		case foreignKeyViolation:
			return domain.ErrNotFound
		}
	}
	return err
}

func (r *eventSpeakerRepository) Exists(ctx context.Context, eventID, speakerID int64) (bool, error) {
	var exists bool
	err := r.DB.QueryRowContext(ctx,
		`SELECT EXISTS (SELECT 1 FROM event_speakers WHERE event_id = $1 AND speaker_id = $2)`,
		eventID, speakerID,
	).Scan(&exists)
	return exists, err
}

func (r *eventSpeakerRepository) Delete(ctx context.Context, eventID, speakerID int64) (bool, error) {
	result, err := r.DB.ExecContext(ctx, `DELETE FROM event_speakers WHERE event_id = $1 AND speaker_id = $2`, eventID, speakerID)
	if err != nil {
		return false, err
	}
	rows, _ := result.RowsAffected()
	return rows > 0, nil
}
