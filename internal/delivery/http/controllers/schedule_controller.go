package controllers

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"investorbooking/internal/delivery/http/helpers"
	"investorbooking/internal/domain"
)

type ScheduleController struct {
	Logger  *slog.Logger
	Service domain.ScheduleService
}

func NewScheduleController(logger *slog.Logger, svc domain.ScheduleService) *ScheduleController {
	return &ScheduleController{
		Logger:  logger,
		Service: svc,
	}
}

// CreateSlotRequest is the request body for POST /admin/slots.
type CreateSlotRequest struct {
	Datetime string `json:"datetime"`
}

// Validate implements helpers.Validator.
func (r *CreateSlotRequest) Validate() []string {
	if strings.TrimSpace(r.Datetime) == "" {
		return []string{"datetime is required"}
	}
	return nil
}

// CreateSlotSuccessResponse is the success envelope for POST /admin/slots.
type CreateSlotSuccessResponse struct {
	Data  *domain.Slot      `json:"data"`
	Error *helpers.APIError `json:"error"`
}

// CreateSlot godoc
// @Summary Create a consultation slot
// @Description Creates an unbooked slot at the given RFC 3339 datetime. Duplicate datetimes are allowed.
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body controllers.CreateSlotRequest true "Slot datetime (RFC 3339)"
// @Success 201 {object} controllers.CreateSlotSuccessResponse
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /admin/slots [post]
func (c *ScheduleController) CreateSlot(w http.ResponseWriter, r *http.Request) {
	var req CreateSlotRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}

	slot, err := c.Service.CreateSlot(r.Context(), req.Datetime)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, err.Error())
			return
		}
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, err.Error())
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusCreated, slot)
}

// DeleteSlot godoc
// @Summary Delete a consultation slot
// @Description Removes the slot. Deleting an absent slot succeeds; meetings referencing the slot are kept and readers treat their datetime as unknown.
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param slotID path string true "Slot ID"
// @Success 204 "No Content"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /admin/slots/{slotID} [delete]
func (c *ScheduleController) DeleteSlot(w http.ResponseWriter, r *http.Request) {
	slotID := r.PathValue("slotID")
	if slotID == "" {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "missing slotID")
		return
	}

	if err := c.Service.DeleteSlot(r.Context(), slotID); err != nil {
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, err.Error())
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ListSlotsResponse is the success envelope for GET /admin/slots.
type ListSlotsResponse struct {
	Data  []*domain.Slot    `json:"data"`
	Error *helpers.APIError `json:"error"`
}

// ListSlots godoc
// @Summary List all consultation slots
// @Description Returns every slot, booked or not, in creation order.
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Success 200 {object} controllers.ListSlotsResponse
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /admin/slots [get]
func (c *ScheduleController) ListSlots(w http.ResponseWriter, r *http.Request) {
	slots, err := c.Service.ListSlots(r.Context())
	if err != nil {
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, err.Error())
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, slots)
}
