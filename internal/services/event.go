package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"eventmanager/internal/domain"
)

type eventService struct {
	repos          domain.Repositories
	tx             domain.Transactor
	contextTimeout time.Duration
	now            func() time.Time
}

// NewEventService returns an EventService. Reads go through repos; mutations that must observe a
// consistent event row run through tx.
func NewEventService(repos domain.Repositories, tx domain.Transactor, timeout time.Duration) domain.EventService {
	return &eventService{
		repos:          repos,
		tx:             tx,
		contextTimeout: timeout,
		now:            time.Now,
	}
}

func (s *eventService) CreateEvent(ctx context.Context, event *domain.Event) error {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if strings.TrimSpace(event.Title) == "" || strings.TrimSpace(event.Location) == "" || event.MaxCapacity <= 0 {
		return domain.ErrInvalidInput
	}
	if !event.EndDate.After(event.StartDate) {
		return domain.ErrInvalidDateRange
	}

	now := s.now()
	event.CurrentBookings = 0
	event.IsActive = true
	event.CreatedAt = now
	event.UpdatedAt = now

	if err := s.repos.Events.Create(ctx, event); err != nil {
		return fmt.Errorf("create event: %w", err)
	}
	return nil
}

func (s *eventService) ListEvents(ctx context.Context) ([]*domain.Event, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	events, err := s.repos.Events.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list events: %w", err)
	}
	if events == nil {
		events = []*domain.Event{}
	}
	return events, nil
}

func (s *eventService) GetEventByID(ctx context.Context, id int64) (*domain.Event, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	event, err := s.repos.Events.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get event: %w", err)
	}
	return event, nil
}

// UpdateEvent applies patch to the event. When the patch touches either date, the merged date range
// is checked against the locked row and nothing is written if it is invalid.
func (s *eventService) UpdateEvent(ctx context.Context, id int64, patch domain.EventPatch) (*domain.Event, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if err := validateEventPatch(patch); err != nil {
		return nil, err
	}

	var updated *domain.Event
	err := s.tx.RunInTransaction(ctx, func(repos domain.Repositories) error {
		current, err := repos.Events.GetByIDForUpdate(ctx, id)
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				return domain.ErrNotFound
			}
			return fmt.Errorf("lock event: %w", err)
		}
		if err := patch.CheckDateRange(current); err != nil {
			return err
		}
		if patch.Empty() {
			updated = current
			return nil
		}
		updated, err = repos.Events.Update(ctx, id, patch)
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				return domain.ErrNotFound
			}
			return fmt.Errorf("update event: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

func validateEventPatch(patch domain.EventPatch) error {
	if v, ok := patch.Title.Get(); ok && (patch.Title.Null || strings.TrimSpace(v) == "") {
		return domain.ErrInvalidInput
	}
	if v, ok := patch.Location.Get(); ok && (patch.Location.Null || strings.TrimSpace(v) == "") {
		return domain.ErrInvalidInput
	}
	if v, ok := patch.MaxCapacity.Get(); ok && (patch.MaxCapacity.Null || v <= 0) {
		return domain.ErrInvalidInput
	}
	if patch.StartDate.Null || patch.EndDate.Null || patch.IsActive.Null {
		return domain.ErrInvalidInput
	}
	return nil
}

// DeleteEvent removes the event together with its attendees and speaker assignments.
// It reports false when the event does not exist.
func (s *eventService) DeleteEvent(ctx context.Context, id int64) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	var deleted bool
	err := s.tx.RunInTransaction(ctx, func(repos domain.Repositories) error {
		if _, err := repos.Events.GetByIDForUpdate(ctx, id); err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				return nil
			}
			return fmt.Errorf("lock event: %w", err)
		}
		ok, err := repos.Events.Delete(ctx, id)
		if err != nil {
			return fmt.Errorf("delete event: %w", err)
		}
		deleted = ok
		return nil
	})
	if err != nil {
		return false, err
	}
	return deleted, nil
}
