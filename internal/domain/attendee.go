package domain

import (
	"context"
	"time"
)

// RegistrationStatus is the lifecycle state of an attendee's registration.
type RegistrationStatus string

const (
	StatusPending   RegistrationStatus = "pending"
	StatusConfirmed RegistrationStatus = "confirmed"
	StatusCancelled RegistrationStatus = "cancelled"
)

// Valid reports whether s is one of the known statuses.
func (s RegistrationStatus) Valid() bool {
	switch s {
	case StatusPending, StatusConfirmed, StatusCancelled:
		return true
	}
	return false
}

// Attendee represents a person registered for an event.
// swagger:model Attendee
type Attendee struct {
	ID                 int64              `json:"id"`
	EventID            int64              `json:"event_id"`
	Name               string             `json:"name"`
	Email              string             `json:"email"`
	RegistrationStatus RegistrationStatus `json:"registration_status"`
	RegisteredAt       time.Time          `json:"registered_at"`
	UpdatedAt          time.Time          `json:"updated_at"`
}

// NewAttendee creates a new Attendee. An empty status defaults to pending.
func NewAttendee(eventID int64, name, email string, status RegistrationStatus, registeredAt, updatedAt time.Time) *Attendee {
	if status == "" {
		status = StatusPending
	}
	return &Attendee{
		EventID:            eventID,
		Name:               name,
		Email:              email,
		RegistrationStatus: status,
		RegisteredAt:       registeredAt,
		UpdatedAt:          updatedAt,
	}
}

// AttendeePatch lists the attendee fields an update may change. The owning event never changes.
type AttendeePatch struct {
	Name               Optional[string]
	Email              Optional[string]
	RegistrationStatus Optional[RegistrationStatus]
}

// Empty reports whether the patch changes nothing.
func (p AttendeePatch) Empty() bool {
	return !p.Name.Set && !p.Email.Set && !p.RegistrationStatus.Set
}

// AttendeeRepository defines storage operations for attendees.
type AttendeeRepository interface {
	Create(ctx context.Context, attendee *Attendee) error
	GetByID(ctx context.Context, id int64) (*Attendee, error)
	// GetByIDForUpdate reads the attendee and locks its row until the surrounding transaction ends.
	GetByIDForUpdate(ctx context.Context, id int64) (*Attendee, error)
	ListByEventID(ctx context.Context, eventID int64) ([]*Attendee, error)
	List(ctx context.Context) ([]*Attendee, error)
	Update(ctx context.Context, id int64, patch AttendeePatch) (*Attendee, error)
	Delete(ctx context.Context, id int64) (bool, error)
}

// AttendeeService defines registration and attendee management. Every operation that changes an
// attendee's confirmation state also adjusts the owning event's booking counter.
type AttendeeService interface {
	// RegisterAttendee admits a new attendee and consumes one booking on the event.
	RegisterAttendee(ctx context.Context, attendee *Attendee) error
	ListAttendeesByEvent(ctx context.Context, eventID int64) ([]*Attendee, error)
	ListAttendees(ctx context.Context) ([]*Attendee, error)
	UpdateAttendee(ctx context.Context, id int64, patch AttendeePatch) (*Attendee, error)
	// DeleteAttendee returns false when the attendee does not exist.
	DeleteAttendee(ctx context.Context, id int64) (bool, error)
}
