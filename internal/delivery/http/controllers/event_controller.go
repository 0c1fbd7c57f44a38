package controllers

import (
	"log/slog"
	"net/http"
	"time"

	"eventmanager/internal/delivery/http/helpers"
	"eventmanager/internal/domain"
)

// CreateEventRequest is the request body for POST /events.
type CreateEventRequest struct {
	Title       string    `json:"title" validate:"required"`
	Description *string   `json:"description"`
	Location    string    `json:"location" validate:"required"`
	StartDate   time.Time `json:"start_date" validate:"required"`
	EndDate     time.Time `json:"end_date" validate:"required"`
	MaxCapacity int       `json:"max_capacity" validate:"gt=0"`
}

// Validate implements Validator.
func (c CreateEventRequest) Validate() []string {
	return helpers.ValidateStruct(c)
}

// UpdateEventRequest is the request body for PATCH /events/{eventID}. Omitted fields are unchanged;
// description may be cleared with null.
type UpdateEventRequest struct {
	Title       domain.Optional[string]    `json:"title" swaggertype:"string"`
	Description domain.Optional[*string]   `json:"description" swaggertype:"string"`
	Location    domain.Optional[string]    `json:"location" swaggertype:"string"`
	StartDate   domain.Optional[time.Time] `json:"start_date" swaggertype:"string" format:"date-time"`
	EndDate     domain.Optional[time.Time] `json:"end_date" swaggertype:"string" format:"date-time"`
	MaxCapacity domain.Optional[int]       `json:"max_capacity" swaggertype:"integer"`
	IsActive    domain.Optional[bool]      `json:"is_active" swaggertype:"boolean"`
}

// Validate implements Validator. Only description accepts null.
func (u UpdateEventRequest) Validate() []string {
	errs := notNull(
		field{"title", u.Title.Null},
		field{"location", u.Location.Null},
		field{"start_date", u.StartDate.Null},
		field{"end_date", u.EndDate.Null},
		field{"max_capacity", u.MaxCapacity.Null},
		field{"is_active", u.IsActive.Null},
	)
	if v, ok := u.Title.Get(); ok && !u.Title.Null {
		errs = append(errs, helpers.ValidateField("title", v, "min=1")...)
	}
	if v, ok := u.Location.Get(); ok && !u.Location.Null {
		errs = append(errs, helpers.ValidateField("location", v, "min=1")...)
	}
	if v, ok := u.MaxCapacity.Get(); ok && !u.MaxCapacity.Null {
		errs = append(errs, helpers.ValidateField("max_capacity", v, "gt=0")...)
	}
	return errs
}

func (u UpdateEventRequest) patch() domain.EventPatch {
	return domain.EventPatch{
		Title:       u.Title,
		Description: u.Description,
		Location:    u.Location,
		StartDate:   u.StartDate,
		EndDate:     u.EndDate,
		MaxCapacity: u.MaxCapacity,
		IsActive:    u.IsActive,
	}
}

// EventSuccessResponse is the success response envelope for a single event.
type EventSuccessResponse struct {
	Data  *domain.Event     `json:"data"`
	Error *helpers.APIError `json:"error"`
}

// EventListSuccessResponse is the success response envelope for GET /events.
type EventListSuccessResponse struct {
	Data  []*domain.Event   `json:"data"`
	Error *helpers.APIError `json:"error"`
}

// DeleteSuccessResponse is the success response envelope for delete and unassign operations.
type DeleteSuccessResponse struct {
	Data  helpers.SuccessResult `json:"data"`
	Error *helpers.APIError     `json:"error"`
}

type EventController struct {
	Logger  *slog.Logger
	Service domain.EventService
}

func NewEventController(logger *slog.Logger, svc domain.EventService) *EventController {
	return &EventController{
		Logger:  logger,
		Service: svc,
	}
}

// CreateEvent godoc
// @Summary Create an event
// @Description Creates an active event with no bookings. end_date must be after start_date.
// @Tags events
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param event body CreateEventRequest true "Event data"
// @Success 201 {object} controllers.EventSuccessResponse
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /events [post]
func (c *EventController) CreateEvent(w http.ResponseWriter, r *http.Request) {
	var req CreateEventRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	event := domain.NewEvent(req.Title, req.Description, req.Location, req.StartDate, req.EndDate, req.MaxCapacity, time.Time{}, time.Time{})
	if err := c.Service.CreateEvent(r.Context(), event); err != nil {
		helpers.WriteServiceError(w, r, c.Logger, "event", err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusCreated, event)
}

// ListEvents godoc
// @Summary List events
// @Description Returns every event ordered by start date.
// @Tags events
// @Produce json
// @Success 200 {object} controllers.EventListSuccessResponse
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /events [get]
func (c *EventController) ListEvents(w http.ResponseWriter, r *http.Request) {
	events, err := c.Service.ListEvents(r.Context())
	if err != nil {
		helpers.WriteServiceError(w, r, c.Logger, "event", err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, events)
}

// GetEventByID godoc
// @Summary Get an event by ID
// @Tags events
// @Produce json
// @Param eventID path int true "Event ID"
// @Success 200 {object} controllers.EventSuccessResponse
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /events/{eventID} [get]
func (c *EventController) GetEventByID(w http.ResponseWriter, r *http.Request) {
	eventID, ok := helpers.PathID(w, r, "eventID")
	if !ok {
		return
	}
	event, err := c.Service.GetEventByID(r.Context(), eventID)
	if err != nil {
		helpers.WriteServiceError(w, r, c.Logger, "event", err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, event)
}

// UpdateEvent godoc
// @Summary Update an event
// @Description Partially updates an event. When start_date or end_date is supplied the merged range must keep end_date after start_date, otherwise nothing is written. current_bookings cannot be changed here.
// @Tags events
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param eventID path int true "Event ID"
// @Param event body UpdateEventRequest true "Fields to change"
// @Success 200 {object} controllers.EventSuccessResponse
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /events/{eventID} [patch]
func (c *EventController) UpdateEvent(w http.ResponseWriter, r *http.Request) {
	eventID, ok := helpers.PathID(w, r, "eventID")
	if !ok {
		return
	}
	var req UpdateEventRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	event, err := c.Service.UpdateEvent(r.Context(), eventID, req.patch())
	if err != nil {
		helpers.WriteServiceError(w, r, c.Logger, "event", err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, event)
}

// DeleteEvent godoc
// @Summary Delete an event
// @Description Deletes the event together with its attendees and speaker assignments. success is false when the event does not exist.
// @Tags events
// @Produce json
// @Security BearerAuth
// @Param eventID path int true "Event ID"
// @Success 200 {object} controllers.DeleteSuccessResponse
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /events/{eventID} [delete]
func (c *EventController) DeleteEvent(w http.ResponseWriter, r *http.Request) {
	eventID, ok := helpers.PathID(w, r, "eventID")
	if !ok {
		return
	}
	deleted, err := c.Service.DeleteEvent(r.Context(), eventID)
	if err != nil {
		helpers.WriteServiceError(w, r, c.Logger, "event", err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, helpers.SuccessResult{Success: deleted})
}
