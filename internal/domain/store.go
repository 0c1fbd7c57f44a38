package domain

import "context"

// Repositories bundles the repositories bound to one database handle or transaction.
type Repositories struct {
	Events      EventRepository
	Attendees   AttendeeRepository
	Speakers    SpeakerRepository
	Assignments EventSpeakerRepository
}

// Transactor runs fn against repositories bound to a single transaction. The transaction commits
// when fn returns nil and rolls back otherwise.
type Transactor interface {
	RunInTransaction(ctx context.Context, fn func(repos Repositories) error) error
}
