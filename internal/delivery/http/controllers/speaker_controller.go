package controllers

import (
	"log/slog"
	"net/http"
	"time"

	"eventmanager/internal/delivery/http/helpers"
	"eventmanager/internal/domain"
)

// CreateSpeakerRequest is the request body for POST /speakers.
type CreateSpeakerRequest struct {
	Name      string  `json:"name" validate:"required"`
	Bio       *string `json:"bio"`
	Email     string  `json:"email" validate:"required,email"`
	Phone     *string `json:"phone"`
	Expertise *string `json:"expertise"`
}

// Validate implements Validator.
func (c CreateSpeakerRequest) Validate() []string {
	return helpers.ValidateStruct(c)
}

// UpdateSpeakerRequest is the request body for PATCH /speakers/{speakerID}. bio, phone and
// expertise may be cleared with null.
type UpdateSpeakerRequest struct {
	Name      domain.Optional[string]  `json:"name" swaggertype:"string"`
	Bio       domain.Optional[*string] `json:"bio" swaggertype:"string"`
	Email     domain.Optional[string]  `json:"email" swaggertype:"string"`
	Phone     domain.Optional[*string] `json:"phone" swaggertype:"string"`
	Expertise domain.Optional[*string] `json:"expertise" swaggertype:"string"`
}

// Validate implements Validator.
func (u UpdateSpeakerRequest) Validate() []string {
	errs := notNull(
		field{"name", u.Name.Null},
		field{"email", u.Email.Null},
	)
	if v, ok := u.Name.Get(); ok && !u.Name.Null {
		errs = append(errs, helpers.ValidateField("name", v, "min=1")...)
	}
	if v, ok := u.Email.Get(); ok && !u.Email.Null {
		errs = append(errs, helpers.ValidateField("email", v, "email")...)
	}
	return errs
}

// SpeakerSuccessResponse is the success response envelope for a single speaker.
type SpeakerSuccessResponse struct {
	Data  *domain.Speaker   `json:"data"`
	Error *helpers.APIError `json:"error"`
}

// SpeakerListSuccessResponse is the success response envelope for speaker lists.
type SpeakerListSuccessResponse struct {
	Data  []*domain.Speaker `json:"data"`
	Error *helpers.APIError `json:"error"`
}

// AssignmentSuccessResponse is the success response envelope for POST /events/{eventID}/speakers/{speakerID}.
type AssignmentSuccessResponse struct {
	Data  *domain.EventSpeaker `json:"data"`
	Error *helpers.APIError    `json:"error"`
}

type SpeakerController struct {
	Logger  *slog.Logger
	Service domain.SpeakerService
}

func NewSpeakerController(logger *slog.Logger, svc domain.SpeakerService) *SpeakerController {
	return &SpeakerController{
		Logger:  logger,
		Service: svc,
	}
}

// CreateSpeaker godoc
// @Summary Add a speaker to the roster
// @Tags speakers
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param speaker body CreateSpeakerRequest true "Speaker data"
// @Success 201 {object} controllers.SpeakerSuccessResponse
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /speakers [post]
func (c *SpeakerController) CreateSpeaker(w http.ResponseWriter, r *http.Request) {
	var req CreateSpeakerRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	speaker := domain.NewSpeaker(req.Name, req.Bio, req.Email, req.Phone, req.Expertise, time.Time{}, time.Time{})
	if err := c.Service.CreateSpeaker(r.Context(), speaker); err != nil {
		helpers.WriteServiceError(w, r, c.Logger, "speaker", err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusCreated, speaker)
}

// ListSpeakers godoc
// @Summary List speakers
// @Tags speakers
// @Produce json
// @Success 200 {object} controllers.SpeakerListSuccessResponse
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /speakers [get]
func (c *SpeakerController) ListSpeakers(w http.ResponseWriter, r *http.Request) {
	speakers, err := c.Service.ListSpeakers(r.Context())
	if err != nil {
		helpers.WriteServiceError(w, r, c.Logger, "speaker", err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, speakers)
}

// GetSpeakerByID godoc
// @Summary Get a speaker by ID
// @Tags speakers
// @Produce json
// @Param speakerID path int true "Speaker ID"
// @Success 200 {object} controllers.SpeakerSuccessResponse
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /speakers/{speakerID} [get]
func (c *SpeakerController) GetSpeakerByID(w http.ResponseWriter, r *http.Request) {
	speakerID, ok := helpers.PathID(w, r, "speakerID")
	if !ok {
		return
	}
	speaker, err := c.Service.GetSpeakerByID(r.Context(), speakerID)
	if err != nil {
		helpers.WriteServiceError(w, r, c.Logger, "speaker", err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, speaker)
}

// UpdateSpeaker godoc
// @Summary Update a speaker
// @Tags speakers
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param speakerID path int true "Speaker ID"
// @Param speaker body UpdateSpeakerRequest true "Fields to change"
// @Success 200 {object} controllers.SpeakerSuccessResponse
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /speakers/{speakerID} [patch]
func (c *SpeakerController) UpdateSpeaker(w http.ResponseWriter, r *http.Request) {
	speakerID, ok := helpers.PathID(w, r, "speakerID")
	if !ok {
		return
	}
	var req UpdateSpeakerRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	patch := domain.SpeakerPatch{
		Name:      req.Name,
		Bio:       req.Bio,
		Email:     req.Email,
		Phone:     req.Phone,
		Expertise: req.Expertise,
	}
	speaker, err := c.Service.UpdateSpeaker(r.Context(), speakerID, patch)
	if err != nil {
		helpers.WriteServiceError(w, r, c.Logger, "speaker", err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, speaker)
}

// DeleteSpeaker godoc
// @Summary Delete a speaker
// @Description Deletes the speaker and all of its event assignments. success is false when the speaker does not exist.
// @Tags speakers
// @Produce json
// @Security BearerAuth
// @Param speakerID path int true "Speaker ID"
// @Success 200 {object} controllers.DeleteSuccessResponse
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /speakers/{speakerID} [delete]
func (c *SpeakerController) DeleteSpeaker(w http.ResponseWriter, r *http.Request) {
	speakerID, ok := helpers.PathID(w, r, "speakerID")
	if !ok {
		return
	}
	deleted, err := c.Service.DeleteSpeaker(r.Context(), speakerID)
	if err != nil {
		helpers.WriteServiceError(w, r, c.Logger, "speaker", err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, helpers.SuccessResult{Success: deleted})
}

// ListEventSpeakers godoc
// @Summary List the speakers assigned to an event
// @Tags speakers
// @Produce json
// @Param eventID path int true "Event ID"
// @Success 200 {object} controllers.SpeakerListSuccessResponse
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /events/{eventID}/speakers [get]
func (c *SpeakerController) ListEventSpeakers(w http.ResponseWriter, r *http.Request) {
	eventID, ok := helpers.PathID(w, r, "eventID")
	if !ok {
		return
	}
	speakers, err := c.Service.ListSpeakersByEvent(r.Context(), eventID)
	if err != nil {
		helpers.WriteServiceError(w, r, c.Logger, "event", err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, speakers)
}

// AssignSpeaker godoc
// @Summary Assign a speaker to an event
// @Tags speakers
// @Produce json
// @Security BearerAuth
// @Param eventID path int true "Event ID"
// @Param speakerID path int true "Speaker ID"
// @Success 201 {object} controllers.AssignmentSuccessResponse
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 409 {object} helpers.APIResponse "error.code: conflict (already assigned)"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /events/{eventID}/speakers/{speakerID} [post]
func (c *SpeakerController) AssignSpeaker(w http.ResponseWriter, r *http.Request) {
	eventID, ok := helpers.PathID(w, r, "eventID")
	if !ok {
		return
	}
	speakerID, ok := helpers.PathID(w, r, "speakerID")
	if !ok {
		return
	}
	assignment, err := c.Service.AssignSpeaker(r.Context(), eventID, speakerID)
	if err != nil {
		helpers.WriteServiceError(w, r, c.Logger, "event or speaker", err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusCreated, assignment)
}

// UnassignSpeaker godoc
// @Summary Remove a speaker from an event
// @Description success is false when the speaker was not assigned to the event.
// @Tags speakers
// @Produce json
// @Security BearerAuth
// @Param eventID path int true "Event ID"
// @Param speakerID path int true "Speaker ID"
// @Success 200 {object} controllers.DeleteSuccessResponse
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /events/{eventID}/speakers/{speakerID} [delete]
func (c *SpeakerController) UnassignSpeaker(w http.ResponseWriter, r *http.Request) {
	eventID, ok := helpers.PathID(w, r, "eventID")
	if !ok {
		return
	}
	speakerID, ok := helpers.PathID(w, r, "speakerID")
	if !ok {
		return
	}
	removed, err := c.Service.UnassignSpeaker(r.Context(), eventID, speakerID)
	if err != nil {
		helpers.WriteServiceError(w, r, c.Logger, "assignment", err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, helpers.SuccessResult{Success: removed})
}
