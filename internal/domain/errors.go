package domain

import "errors"

// Sentinel errors returned by services and repositories. Controllers map them to HTTP statuses.
var (
	ErrNotFound            = errors.New("not found")
	ErrEventInactive       = errors.New("cannot register for an inactive event")
	ErrEventFull           = errors.New("event is at maximum capacity")
	ErrEventAlreadyStarted = errors.New("cannot register for an event that has already started")
	ErrInvalidDateRange    = errors.New("end date must be after start date")
	ErrDuplicateAssignment = errors.New("speaker is already assigned to this event")
	ErrInvalidInput        = errors.New("invalid input")
)
