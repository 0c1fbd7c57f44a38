package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"eventmanager/internal/domain"
)

type speakerService struct {
	repos          domain.Repositories
	tx             domain.Transactor
	contextTimeout time.Duration
	now            func() time.Time
}

// NewSpeakerService returns a SpeakerService for the speaker roster and event assignments.
func NewSpeakerService(repos domain.Repositories, tx domain.Transactor, timeout time.Duration) domain.SpeakerService {
	return &speakerService{
		repos:          repos,
		tx:             tx,
		contextTimeout: timeout,
		now:            time.Now,
	}
}

func (s *speakerService) CreateSpeaker(ctx context.Context, speaker *domain.Speaker) error {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if strings.TrimSpace(speaker.Name) == "" || strings.TrimSpace(speaker.Email) == "" {
		return domain.ErrInvalidInput
	}

	now := s.now()
	speaker.CreatedAt = now
	speaker.UpdatedAt = now
	if err := s.repos.Speakers.Create(ctx, speaker); err != nil {
		return fmt.Errorf("create speaker: %w", err)
	}
	return nil
}

func (s *speakerService) ListSpeakers(ctx context.Context) ([]*domain.Speaker, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	speakers, err := s.repos.Speakers.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list speakers: %w", err)
	}
	if speakers == nil {
		speakers = []*domain.Speaker{}
	}
	return speakers, nil
}

func (s *speakerService) GetSpeakerByID(ctx context.Context, id int64) (*domain.Speaker, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	speaker, err := s.repos.Speakers.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get speaker: %w", err)
	}
	return speaker, nil
}

func (s *speakerService) ListSpeakersByEvent(ctx context.Context, eventID int64) ([]*domain.Speaker, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	speakers, err := s.repos.Speakers.ListByEventID(ctx, eventID)
	if err != nil {
		return nil, fmt.Errorf("list speakers by event: %w", err)
	}
	if speakers == nil {
		speakers = []*domain.Speaker{}
	}
	return speakers, nil
}

func (s *speakerService) UpdateSpeaker(ctx context.Context, id int64, patch domain.SpeakerPatch) (*domain.Speaker, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if v, ok := patch.Name.Get(); ok && (patch.Name.Null || strings.TrimSpace(v) == "") {
		return nil, domain.ErrInvalidInput
	}
	if v, ok := patch.Email.Get(); ok && (patch.Email.Null || strings.TrimSpace(v) == "") {
		return nil, domain.ErrInvalidInput
	}

	speaker, err := s.repos.Speakers.Update(ctx, id, patch)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("update speaker: %w", err)
	}
	return speaker, nil
}

// DeleteSpeaker removes the speaker and all of its event assignments.
func (s *speakerService) DeleteSpeaker(ctx context.Context, id int64) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	var deleted bool
	err := s.tx.RunInTransaction(ctx, func(repos domain.Repositories) error {
		ok, err := repos.Speakers.Delete(ctx, id)
		if err != nil {
			return fmt.Errorf("delete speaker: %w", err)
		}
		deleted = ok
		return nil
	})
	if err != nil {
		return false, err
	}
	return deleted, nil
}

// AssignSpeaker links a speaker to an event. Both must exist and the pair must not be linked yet.
func (s *speakerService) AssignSpeaker(ctx context.Context, eventID, speakerID int64) (*domain.EventSpeaker, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	assignment := &domain.EventSpeaker{EventID: eventID, SpeakerID: speakerID}
	err := s.tx.RunInTransaction(ctx, func(repos domain.Repositories) error {
		if _, err := repos.Events.GetByIDForUpdate(ctx, eventID); err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				return domain.ErrNotFound
			}
			return fmt.Errorf("get event: %w", err)
		}
		if _, err := repos.Speakers.GetByID(ctx, speakerID); err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				return domain.ErrNotFound
			}
			return fmt.Errorf("get speaker: %w", err)
		}

		exists, err := repos.Assignments.Exists(ctx, eventID, speakerID)
		if err != nil {
			return fmt.Errorf("check assignment: %w", err)
		}
		if exists {
			return domain.ErrDuplicateAssignment
		}

		assignment.AssignedAt = s.now()
		if err := repos.Assignments.Create(ctx, assignment); err != nil {
			if errors.Is(err, domain.ErrDuplicateAssignment) || errors.Is(err, domain.ErrNotFound) {
				return err
			}
			return fmt.Errorf("create assignment: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return assignment, nil
}

func (s *speakerService) UnassignSpeaker(ctx context.Context, eventID, speakerID int64) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	ok, err := s.repos.Assignments.Delete(ctx, eventID, speakerID)
	if err != nil {
		return false, fmt.Errorf("delete assignment: %w", err)
	}
	return ok, nil
}
