package domain

import (
	"context"
	"time"
)

// Speaker represents a speaker on the roster. Speakers are linked to events through EventSpeaker.
// swagger:model Speaker
type Speaker struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Bio       *string   `json:"bio"`
	Email     string    `json:"email"`
	Phone     *string   `json:"phone"`
	Expertise *string   `json:"expertise"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// NewSpeaker returns a new Speaker with the given fields. ID is typically set by the repository on create.
func NewSpeaker(name string, bio *string, email string, phone, expertise *string, createdAt, updatedAt time.Time) *Speaker {
	return &Speaker{
		Name:      name,
		Bio:       bio,
		Email:     email,
		Phone:     phone,
		Expertise: expertise,
		CreatedAt: createdAt,
		UpdatedAt: updatedAt,
	}
}

// SpeakerPatch lists the speaker fields an update may change.
type SpeakerPatch struct {
	Name      Optional[string]
	Bio       Optional[*string]
	Email     Optional[string]
	Phone     Optional[*string]
	Expertise Optional[*string]
}

// Empty reports whether the patch changes nothing.
func (p SpeakerPatch) Empty() bool {
	return !p.Name.Set && !p.Bio.Set && !p.Email.Set && !p.Phone.Set && !p.Expertise.Set
}

// EventSpeaker links a speaker to an event. (EventID, SpeakerID) is unique.
// swagger:model EventSpeaker
type EventSpeaker struct {
	ID         int64     `json:"id"`
	EventID    int64     `json:"event_id"`
	SpeakerID  int64     `json:"speaker_id"`
	AssignedAt time.Time `json:"assigned_at"`
}

// SpeakerRepository defines storage operations for speakers.
type SpeakerRepository interface {
	Create(ctx context.Context, speaker *Speaker) error
	GetByID(ctx context.Context, id int64) (*Speaker, error)
	List(ctx context.Context) ([]*Speaker, error)
	ListByEventID(ctx context.Context, eventID int64) ([]*Speaker, error)
	Update(ctx context.Context, id int64, patch SpeakerPatch) (*Speaker, error)
	// Delete removes the speaker and its event assignments. Returns false when no speaker matched.
	Delete(ctx context.Context, id int64) (bool, error)
}

// EventSpeakerRepository defines storage operations for event-speaker assignments.
type EventSpeakerRepository interface {
	// Create inserts the assignment, returning ErrDuplicateAssignment when the pair already exists.
	Create(ctx context.Context, assignment *EventSpeaker) error
	Exists(ctx context.Context, eventID, speakerID int64) (bool, error)
	Delete(ctx context.Context, eventID, speakerID int64) (bool, error)
}

// SpeakerService defines speaker roster and assignment operations.
type SpeakerService interface {
	CreateSpeaker(ctx context.Context, speaker *Speaker) error
	ListSpeakers(ctx context.Context) ([]*Speaker, error)
	GetSpeakerByID(ctx context.Context, id int64) (*Speaker, error)
	ListSpeakersByEvent(ctx context.Context, eventID int64) ([]*Speaker, error)
	UpdateSpeaker(ctx context.Context, id int64, patch SpeakerPatch) (*Speaker, error)
	DeleteSpeaker(ctx context.Context, id int64) (bool, error)
	AssignSpeaker(ctx context.Context, eventID, speakerID int64) (*EventSpeaker, error)
	UnassignSpeaker(ctx context.Context, eventID, speakerID int64) (bool, error)
}
