package controllers

import (
	"log/slog"
	"net/http"
	"time"

	"eventmanager/internal/delivery/http/helpers"
	"eventmanager/internal/domain"
)

// CreateAttendeeRequest is the request body for POST /events/{eventID}/attendees.
// registration_status defaults to pending.
type CreateAttendeeRequest struct {
	Name               string                    `json:"name" validate:"required"`
	Email              string                    `json:"email" validate:"required,email"`
	RegistrationStatus domain.RegistrationStatus `json:"registration_status,omitempty" validate:"omitempty,oneof=pending confirmed cancelled"`
}

// Validate implements Validator.
func (c CreateAttendeeRequest) Validate() []string {
	return helpers.ValidateStruct(c)
}

// UpdateAttendeeRequest is the request body for PATCH /attendees/{attendeeID}. The owning event
// cannot be changed.
type UpdateAttendeeRequest struct {
	Name               domain.Optional[string]                    `json:"name" swaggertype:"string"`
	Email              domain.Optional[string]                    `json:"email" swaggertype:"string"`
	RegistrationStatus domain.Optional[domain.RegistrationStatus] `json:"registration_status" swaggertype:"string" enums:"pending,confirmed,cancelled"`
}

// Validate implements Validator.
func (u UpdateAttendeeRequest) Validate() []string {
	errs := notNull(
		field{"name", u.Name.Null},
		field{"email", u.Email.Null},
		field{"registration_status", u.RegistrationStatus.Null},
	)
	if v, ok := u.Name.Get(); ok && !u.Name.Null {
		errs = append(errs, helpers.ValidateField("name", v, "min=1")...)
	}
	if v, ok := u.Email.Get(); ok && !u.Email.Null {
		errs = append(errs, helpers.ValidateField("email", v, "email")...)
	}
	if v, ok := u.RegistrationStatus.Get(); ok && !u.RegistrationStatus.Null {
		errs = append(errs, helpers.ValidateField("registration_status", string(v), "oneof=pending confirmed cancelled")...)
	}
	return errs
}

// SendInvitationRequest is the request body for POST /attendees/{attendeeID}/invitations.
type SendInvitationRequest struct {
	Message *string `json:"message"`
}

// AttendeeSuccessResponse is the success response envelope for a single attendee.
type AttendeeSuccessResponse struct {
	Data  *domain.Attendee  `json:"data"`
	Error *helpers.APIError `json:"error"`
}

// AttendeeListSuccessResponse is the success response envelope for attendee lists.
type AttendeeListSuccessResponse struct {
	Data  []*domain.Attendee `json:"data"`
	Error *helpers.APIError  `json:"error"`
}

// InvitationSuccessResponse is the success response envelope for POST /attendees/{attendeeID}/invitations.
type InvitationSuccessResponse struct {
	Data  *domain.InvitationResult `json:"data"`
	Error *helpers.APIError        `json:"error"`
}

type AttendeeController struct {
	Logger      *slog.Logger
	Service     domain.AttendeeService
	Invitations domain.InvitationService
}

func NewAttendeeController(logger *slog.Logger, svc domain.AttendeeService, invitations domain.InvitationService) *AttendeeController {
	return &AttendeeController{
		Logger:      logger,
		Service:     svc,
		Invitations: invitations,
	}
}

// RegisterAttendee godoc
// @Summary Register an attendee for an event
// @Description Admits a new attendee when the event is active, not full and not yet started. Admission consumes one booking whatever the initial status.
// @Tags attendees
// @Accept json
// @Produce json
// @Param eventID path int true "Event ID"
// @Param attendee body CreateAttendeeRequest true "Attendee data"
// @Success 201 {object} controllers.AttendeeSuccessResponse
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 409 {object} helpers.APIResponse "error.code: conflict (inactive, full or already started)"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /events/{eventID}/attendees [post]
func (c *AttendeeController) RegisterAttendee(w http.ResponseWriter, r *http.Request) {
	eventID, ok := helpers.PathID(w, r, "eventID")
	if !ok {
		return
	}
	var req CreateAttendeeRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	attendee := domain.NewAttendee(eventID, req.Name, req.Email, req.RegistrationStatus, time.Time{}, time.Time{})
	if err := c.Service.RegisterAttendee(r.Context(), attendee); err != nil {
		helpers.WriteServiceError(w, r, c.Logger, "event", err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusCreated, attendee)
}

// ListEventAttendees godoc
// @Summary List the attendees of an event
// @Tags attendees
// @Produce json
// @Param eventID path int true "Event ID"
// @Success 200 {object} controllers.AttendeeListSuccessResponse
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /events/{eventID}/attendees [get]
func (c *AttendeeController) ListEventAttendees(w http.ResponseWriter, r *http.Request) {
	eventID, ok := helpers.PathID(w, r, "eventID")
	if !ok {
		return
	}
	attendees, err := c.Service.ListAttendeesByEvent(r.Context(), eventID)
	if err != nil {
		helpers.WriteServiceError(w, r, c.Logger, "event", err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, attendees)
}

// ListAttendees godoc
// @Summary List all attendees
// @Tags attendees
// @Produce json
// @Success 200 {object} controllers.AttendeeListSuccessResponse
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /attendees [get]
func (c *AttendeeController) ListAttendees(w http.ResponseWriter, r *http.Request) {
	attendees, err := c.Service.ListAttendees(r.Context())
	if err != nil {
		helpers.WriteServiceError(w, r, c.Logger, "attendee", err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, attendees)
}

// UpdateAttendee godoc
// @Summary Update an attendee
// @Description Partially updates an attendee. Moving into confirmed adds one booking to the event, moving out of confirmed releases one.
// @Tags attendees
// @Accept json
// @Produce json
// @Param attendeeID path int true "Attendee ID"
// @Param attendee body UpdateAttendeeRequest true "Fields to change"
// @Success 200 {object} controllers.AttendeeSuccessResponse
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /attendees/{attendeeID} [patch]
func (c *AttendeeController) UpdateAttendee(w http.ResponseWriter, r *http.Request) {
	attendeeID, ok := helpers.PathID(w, r, "attendeeID")
	if !ok {
		return
	}
	var req UpdateAttendeeRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	patch := domain.AttendeePatch{
		Name:               req.Name,
		Email:              req.Email,
		RegistrationStatus: req.RegistrationStatus,
	}
	attendee, err := c.Service.UpdateAttendee(r.Context(), attendeeID, patch)
	if err != nil {
		helpers.WriteServiceError(w, r, c.Logger, "attendee", err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, attendee)
}

// DeleteAttendee godoc
// @Summary Delete an attendee
// @Description Deletes the attendee and releases one booking on its event. success is false when the attendee does not exist.
// @Tags attendees
// @Produce json
// @Param attendeeID path int true "Attendee ID"
// @Success 200 {object} controllers.DeleteSuccessResponse
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /attendees/{attendeeID} [delete]
func (c *AttendeeController) DeleteAttendee(w http.ResponseWriter, r *http.Request) {
	attendeeID, ok := helpers.PathID(w, r, "attendeeID")
	if !ok {
		return
	}
	deleted, err := c.Service.DeleteAttendee(r.Context(), attendeeID)
	if err != nil {
		helpers.WriteServiceError(w, r, c.Logger, "attendee", err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, helpers.SuccessResult{Success: deleted})
}

// SendInvitation godoc
// @Summary Preview an invitation for an attendee
// @Description Renders an invitation and reports what would be sent. Nothing is delivered.
// @Tags attendees
// @Accept json
// @Produce json
// @Param attendeeID path int true "Attendee ID"
// @Param invitation body SendInvitationRequest false "Optional personal message"
// @Success 200 {object} controllers.InvitationSuccessResponse
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Router /attendees/{attendeeID}/invitations [post]
func (c *AttendeeController) SendInvitation(w http.ResponseWriter, r *http.Request) {
	attendeeID, ok := helpers.PathID(w, r, "attendeeID")
	if !ok {
		return
	}
	var req SendInvitationRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	result, err := c.Invitations.SendInvitation(r.Context(), attendeeID, req.Message)
	if err != nil {
		helpers.WriteServiceError(w, r, c.Logger, "attendee", err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, result)
}
