package http

import (
	"net/http"

	"eventmanager/internal/delivery/http/controllers"

	httpSwagger "github.com/swaggo/http-swagger"
)

// NewRouter initializes the HTTP router with all application routes. protect wraps the organizer
// routes that create, change or remove events and speakers; pass a pass-through when auth is off.
func NewRouter(
	eventController *controllers.EventController,
	attendeeController *controllers.AttendeeController,
	speakerController *controllers.SpeakerController,
	protect func(http.HandlerFunc) http.HandlerFunc,
) *http.ServeMux {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /healthcheck", controllers.HealthCheck)

	// Events
	mux.HandleFunc("POST /events", protect(eventController.CreateEvent))
	mux.HandleFunc("GET /events", eventController.ListEvents)
	mux.HandleFunc("GET /events/{eventID}", eventController.GetEventByID)
	mux.HandleFunc("PATCH /events/{eventID}", protect(eventController.UpdateEvent))
	mux.HandleFunc("DELETE /events/{eventID}", protect(eventController.DeleteEvent))

	// Attendees
	mux.HandleFunc("POST /events/{eventID}/attendees", attendeeController.RegisterAttendee)
	mux.HandleFunc("GET /events/{eventID}/attendees", attendeeController.ListEventAttendees)
	mux.HandleFunc("GET /attendees", attendeeController.ListAttendees)
	mux.HandleFunc("PATCH /attendees/{attendeeID}", attendeeController.UpdateAttendee)
	mux.HandleFunc("DELETE /attendees/{attendeeID}", attendeeController.DeleteAttendee)
	mux.HandleFunc("POST /attendees/{attendeeID}/invitations", attendeeController.SendInvitation)

	// Speakers
	mux.HandleFunc("POST /speakers", protect(speakerController.CreateSpeaker))
	mux.HandleFunc("GET /speakers", speakerController.ListSpeakers)
	mux.HandleFunc("GET /speakers/{speakerID}", speakerController.GetSpeakerByID)
	mux.HandleFunc("PATCH /speakers/{speakerID}", protect(speakerController.UpdateSpeaker))
	mux.HandleFunc("DELETE /speakers/{speakerID}", protect(speakerController.DeleteSpeaker))
	mux.HandleFunc("GET /events/{eventID}/speakers", speakerController.ListEventSpeakers)
	mux.HandleFunc("POST /events/{eventID}/speakers/{speakerID}", protect(speakerController.AssignSpeaker))
	mux.HandleFunc("DELETE /events/{eventID}/speakers/{speakerID}", protect(speakerController.UnassignSpeaker))

	// Swagger
	mux.Handle("/swagger/", httpSwagger.WrapHandler)

	return mux
}
