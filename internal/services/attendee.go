package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"eventmanager/internal/domain"
)

type attendeeService struct {
	repos          domain.Repositories
	tx             domain.Transactor
	logger         *slog.Logger
	contextTimeout time.Duration
	now            func() time.Time
}

// NewAttendeeService returns an AttendeeService that keeps each event's booking counter in step
// with its attendees. Every counter change runs in the same transaction as the attendee write,
// with the event row locked first and the attendee row second.
func NewAttendeeService(repos domain.Repositories, tx domain.Transactor, logger *slog.Logger, timeout time.Duration) domain.AttendeeService {
	return &attendeeService{
		repos:          repos,
		tx:             tx,
		logger:         logger,
		contextTimeout: timeout,
		now:            time.Now,
	}
}

func (s *attendeeService) RegisterAttendee(ctx context.Context, attendee *domain.Attendee) error {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if attendee.RegistrationStatus == "" {
		attendee.RegistrationStatus = domain.StatusPending
	}
	if !attendee.RegistrationStatus.Valid() || strings.TrimSpace(attendee.Name) == "" || strings.TrimSpace(attendee.Email) == "" {
		return domain.ErrInvalidInput
	}

	return s.tx.RunInTransaction(ctx, func(repos domain.Repositories) error {
		event, err := repos.Events.GetByIDForUpdate(ctx, attendee.EventID)
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				return domain.ErrNotFound
			}
			return fmt.Errorf("lock event: %w", err)
		}

		now := s.now()
		if err := domain.CheckAdmission(event, now); err != nil {
			return err
		}

		attendee.RegisteredAt = now
		attendee.UpdatedAt = now
		if err := repos.Attendees.Create(ctx, attendee); err != nil {
			return fmt.Errorf("create attendee: %w", err)
		}
		return s.adjustBookings(ctx, repos, event, domain.AdmissionDelta)
	})
}

func (s *attendeeService) ListAttendeesByEvent(ctx context.Context, eventID int64) ([]*domain.Attendee, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	attendees, err := s.repos.Attendees.ListByEventID(ctx, eventID)
	if err != nil {
		return nil, fmt.Errorf("list attendees by event: %w", err)
	}
	if attendees == nil {
		attendees = []*domain.Attendee{}
	}
	return attendees, nil
}

func (s *attendeeService) ListAttendees(ctx context.Context) ([]*domain.Attendee, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	attendees, err := s.repos.Attendees.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list attendees: %w", err)
	}
	if attendees == nil {
		attendees = []*domain.Attendee{}
	}
	return attendees, nil
}

// UpdateAttendee applies patch and, when the registration status changes, moves the event's
// booking counter by the transition delta.
func (s *attendeeService) UpdateAttendee(ctx context.Context, id int64, patch domain.AttendeePatch) (*domain.Attendee, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if err := validateAttendeePatch(patch); err != nil {
		return nil, err
	}

	var updated *domain.Attendee
	err := s.tx.RunInTransaction(ctx, func(repos domain.Repositories) error {
		event, current, err := s.lockAttendee(ctx, repos, id)
		if err != nil {
			return err
		}
		if patch.Empty() {
			updated = current
			return nil
		}

		updated, err = repos.Attendees.Update(ctx, id, patch)
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				return domain.ErrNotFound
			}
			return fmt.Errorf("update attendee: %w", err)
		}

		if next, ok := patch.RegistrationStatus.Get(); ok {
			if delta := domain.StatusDelta(current.RegistrationStatus, next); delta != 0 {
				return s.adjustBookings(ctx, repos, event, delta)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

func validateAttendeePatch(patch domain.AttendeePatch) error {
	if v, ok := patch.Name.Get(); ok && (patch.Name.Null || strings.TrimSpace(v) == "") {
		return domain.ErrInvalidInput
	}
	if v, ok := patch.Email.Get(); ok && (patch.Email.Null || strings.TrimSpace(v) == "") {
		return domain.ErrInvalidInput
	}
	if v, ok := patch.RegistrationStatus.Get(); ok && (patch.RegistrationStatus.Null || !v.Valid()) {
		return domain.ErrInvalidInput
	}
	return nil
}

// DeleteAttendee removes the attendee and releases one booking on its event. It reports false,
// leaving every counter untouched, when the attendee does not exist.
func (s *attendeeService) DeleteAttendee(ctx context.Context, id int64) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	var deleted bool
	err := s.tx.RunInTransaction(ctx, func(repos domain.Repositories) error {
		event, _, err := s.lockAttendee(ctx, repos, id)
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				return nil
			}
			return err
		}

		ok, err := repos.Attendees.Delete(ctx, id)
		if err != nil {
			return fmt.Errorf("delete attendee: %w", err)
		}
		if !ok {
			return nil
		}
		deleted = true
		return s.adjustBookings(ctx, repos, event, domain.DeletionDelta)
	})
	if err != nil {
		return false, err
	}
	return deleted, nil
}

// lockAttendee locks the attendee's event and then the attendee itself, returning both as read
// under lock.
func (s *attendeeService) lockAttendee(ctx context.Context, repos domain.Repositories, id int64) (*domain.Event, *domain.Attendee, error) {
	attendee, err := repos.Attendees.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, nil, domain.ErrNotFound
		}
		return nil, nil, fmt.Errorf("get attendee: %w", err)
	}

	event, err := repos.Events.GetByIDForUpdate(ctx, attendee.EventID)
	if err != nil {
		return nil, nil, fmt.Errorf("lock event %d: %w", attendee.EventID, err)
	}

	attendee, err = repos.Attendees.GetByIDForUpdate(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, nil, domain.ErrNotFound
		}
		return nil, nil, fmt.Errorf("lock attendee: %w", err)
	}
	return event, attendee, nil
}

// adjustBookings moves the locked event's counter by delta. A decrement below zero is floored and
// logged; the surrounding operation still succeeds.
func (s *attendeeService) adjustBookings(ctx context.Context, repos domain.Repositories, event *domain.Event, delta int) error {
	if _, clamped := domain.ApplyDelta(event.CurrentBookings, delta); clamped {
		s.logger.WarnContext(ctx, "booking counter clamped at zero",
			"event_id", event.ID,
			"current_bookings", event.CurrentBookings,
			"delta", delta,
		)
	}
	if _, err := repos.Events.AdjustBookings(ctx, event.ID, delta); err != nil {
		return fmt.Errorf("adjust bookings: %w", err)
	}
	return nil
}
