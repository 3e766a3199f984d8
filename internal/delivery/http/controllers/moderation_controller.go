package controllers

import (
	"errors"
	"log/slog"
	"net/http"

	"investorbooking/internal/delivery/http/helpers"
	"investorbooking/internal/domain"
)

type ModerationController struct {
	Logger  *slog.Logger
	Service domain.ModerationService
}

func NewModerationController(logger *slog.Logger, svc domain.ModerationService) *ModerationController {
	return &ModerationController{
		Logger:  logger,
		Service: svc,
	}
}

// MeetingResult is the payload returned by approve and complete operations.
type MeetingResult struct {
	Meeting  *domain.Meeting `json:"meeting"`
	Warnings []string        `json:"warnings,omitempty"`
}

// MeetingSuccessResponse is the success envelope for meeting moderation operations.
type MeetingSuccessResponse struct {
	Data  *MeetingResult    `json:"data"`
	Error *helpers.APIError `json:"error"`
}

// ListMeetingsResponse is the success envelope for meeting list endpoints.
type ListMeetingsResponse struct {
	Data  []*domain.MeetingWithSlot `json:"data"`
	Error *helpers.APIError         `json:"error"`
}

// ApproveMeeting godoc
// @Summary Approve a meeting
// @Description Approves the pending meeting and emails the requester. Idempotent: approving an already-approved meeting succeeds without effect. Email delivery failures appear in data.warnings.
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param meetingID path string true "Meeting ID"
// @Success 200 {object} controllers.MeetingSuccessResponse
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /admin/meetings/{meetingID}/approve [post]
func (c *ModerationController) ApproveMeeting(w http.ResponseWriter, r *http.Request) {
	meetingID := r.PathValue("meetingID")
	if meetingID == "" {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "missing meetingID")
		return
	}

	meeting, warnings, err := c.Service.ApproveMeeting(r.Context(), meetingID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			helpers.WriteJSONError(w, http.StatusNotFound, helpers.ErrCodeNotFound, "meeting not found")
			return
		}
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, err.Error())
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, &MeetingResult{Meeting: meeting, Warnings: warnings})
}

// MarkComplete godoc
// @Summary Mark a meeting as completed
// @Description Marks an approved meeting as completed. Completing an unapproved meeting is rejected; the lifecycle only moves forward.
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param meetingID path string true "Meeting ID"
// @Success 200 {object} controllers.MeetingSuccessResponse
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 409 {object} helpers.APIResponse "error.code: conflict (meeting not approved)"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /admin/meetings/{meetingID}/complete [post]
func (c *ModerationController) MarkComplete(w http.ResponseWriter, r *http.Request) {
	meetingID := r.PathValue("meetingID")
	if meetingID == "" {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "missing meetingID")
		return
	}

	meeting, err := c.Service.MarkComplete(r.Context(), meetingID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			helpers.WriteJSONError(w, http.StatusNotFound, helpers.ErrCodeNotFound, "meeting not found")
			return
		}
		if errors.Is(err, domain.ErrMeetingNotApproved) {
			helpers.WriteJSONError(w, http.StatusConflict, helpers.ErrCodeConflict, "meeting must be approved before completion")
			return
		}
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, err.Error())
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, &MeetingResult{Meeting: meeting})
}

// ListPendingMeetings godoc
// @Summary List pending meetings
// @Description Returns unapproved meetings joined with their slot datetime, ascending by that datetime. Meetings whose slot was deleted sort first with a null datetime.
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Success 200 {object} controllers.ListMeetingsResponse
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /admin/meetings/pending [get]
func (c *ModerationController) ListPendingMeetings(w http.ResponseWriter, r *http.Request) {
	meetings, err := c.Service.ListPendingMeetings(r.Context())
	if err != nil {
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, err.Error())
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, meetings)
}

// ListAllMeetings godoc
// @Summary List all meetings
// @Description Returns every meeting joined with its slot datetime.
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Success 200 {object} controllers.ListMeetingsResponse
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /admin/meetings [get]
func (c *ModerationController) ListAllMeetings(w http.ResponseWriter, r *http.Request) {
	meetings, err := c.Service.ListAllMeetings(r.Context())
	if err != nil {
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, err.Error())
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, meetings)
}
