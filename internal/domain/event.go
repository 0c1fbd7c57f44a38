package domain

import (
	"context"
	"time"
)

// Event represents an event attendees can register for.
// swagger:model Event
type Event struct {
	ID              int64     `json:"id"`
	Title           string    `json:"title"`
	Description     *string   `json:"description"`
	Location        string    `json:"location"`
	StartDate       time.Time `json:"start_date"`
	EndDate         time.Time `json:"end_date"`
	MaxCapacity     int       `json:"max_capacity"`
	CurrentBookings int       `json:"current_bookings"`
	IsActive        bool      `json:"is_active"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// NewEvent returns a new active Event with no bookings. ID is typically set by the repository on create.
func NewEvent(title string, description *string, location string, startDate, endDate time.Time, maxCapacity int, createdAt, updatedAt time.Time) *Event {
	return &Event{
		Title:           title,
		Description:     description,
		Location:        location,
		StartDate:       startDate,
		EndDate:         endDate,
		MaxCapacity:     maxCapacity,
		CurrentBookings: 0,
		IsActive:        true,
		CreatedAt:       createdAt,
		UpdatedAt:       updatedAt,
	}
}

// EventPatch lists the event fields an update may change. current_bookings is not patchable.
type EventPatch struct {
	Title       Optional[string]
	Description Optional[*string]
	Location    Optional[string]
	StartDate   Optional[time.Time]
	EndDate     Optional[time.Time]
	MaxCapacity Optional[int]
	IsActive    Optional[bool]
}

// Empty reports whether the patch changes nothing.
func (p EventPatch) Empty() bool {
	return !p.Title.Set && !p.Description.Set && !p.Location.Set && !p.StartDate.Set &&
		!p.EndDate.Set && !p.MaxCapacity.Set && !p.IsActive.Set
}

// CheckDateRange validates end > start on the merged view of current and patched dates.
func (p EventPatch) CheckDateRange(current *Event) error {
	if !p.StartDate.Set && !p.EndDate.Set {
		return nil
	}
	start, end := current.StartDate, current.EndDate
	if p.StartDate.Set {
		start = p.StartDate.Value
	}
	if p.EndDate.Set {
		end = p.EndDate.Value
	}
	if !end.After(start) {
		return ErrInvalidDateRange
	}
	return nil
}

// EventRepository defines the interface for event storage.
type EventRepository interface {
	Create(ctx context.Context, event *Event) error
	GetByID(ctx context.Context, id int64) (*Event, error)
	// GetByIDForUpdate reads the event and locks its row until the surrounding transaction ends.
	GetByIDForUpdate(ctx context.Context, id int64) (*Event, error)
	List(ctx context.Context) ([]*Event, error)
	Update(ctx context.Context, id int64, patch EventPatch) (*Event, error)
	// AdjustBookings applies delta to current_bookings in one statement, flooring the result at zero.
	AdjustBookings(ctx context.Context, id int64, delta int) (*Event, error)
	// Delete removes the event with its attendees and speaker assignments. Returns false when no event matched.
	Delete(ctx context.Context, id int64) (bool, error)
}

// EventService defines event management operations.
type EventService interface {
	CreateEvent(ctx context.Context, event *Event) error
	ListEvents(ctx context.Context) ([]*Event, error)
	GetEventByID(ctx context.Context, id int64) (*Event, error)
	UpdateEvent(ctx context.Context, id int64, patch EventPatch) (*Event, error)
	DeleteEvent(ctx context.Context, id int64) (bool, error)
}
