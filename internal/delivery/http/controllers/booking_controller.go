package controllers

import (
	"errors"
	"log/slog"
	"net/http"
	"regexp"
	"strings"

	"investorbooking/internal/delivery/http/helpers"
	"investorbooking/internal/domain"
)

var emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)

type BookingController struct {
	Logger  *slog.Logger
	Service domain.BookingService
}

func NewBookingController(logger *slog.Logger, svc domain.BookingService) *BookingController {
	return &BookingController{
		Logger:  logger,
		Service: svc,
	}
}

// ListAvailableSlotsResponse is the success envelope for GET /slots.
type ListAvailableSlotsResponse struct {
	Data  []*domain.Slot    `json:"data"`
	Error *helpers.APIError `json:"error"`
}

// ListAvailableSlots godoc
// @Summary List available consultation slots
// @Description Returns all unbooked slots in creation order. This is the only slot view the requester form needs; booked slots are never shown.
// @Tags booking
// @Produce json
// @Success 200 {object} controllers.ListAvailableSlotsResponse
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /slots [get]
func (c *BookingController) ListAvailableSlots(w http.ResponseWriter, r *http.Request) {
	slots, err := c.Service.ListAvailableSlots(r.Context())
	if err != nil {
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, err.Error())
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, slots)
}

// BookSlotRequest is the request body for POST /bookings. SelectedSlot is the
// RFC 3339 datetime of an available slot; InvestmentAmount is a decimal string.
type BookSlotRequest struct {
	Name             string `json:"name"`
	Email            string `json:"email"`
	Phone            string `json:"phone"`
	InvestmentAmount string `json:"investment_amount"`
	Message          string `json:"message"`
	SelectedSlot     string `json:"selected_slot"`
}

// Validate implements helpers.Validator.
func (r *BookSlotRequest) Validate() []string {
	var errs []string
	if strings.TrimSpace(r.Name) == "" {
		errs = append(errs, "name is required")
	}
	if strings.TrimSpace(r.Email) == "" {
		errs = append(errs, "email is required")
	} else if !emailRegex.MatchString(strings.TrimSpace(r.Email)) {
		errs = append(errs, "email is not valid")
	}
	if strings.TrimSpace(r.Phone) == "" {
		errs = append(errs, "phone is required")
	}
	if strings.TrimSpace(r.InvestmentAmount) == "" {
		errs = append(errs, "investment_amount is required")
	}
	if strings.TrimSpace(r.SelectedSlot) == "" {
		errs = append(errs, "selected_slot is required")
	}
	return errs
}

// BookingResult is the payload returned for a successful booking. Warnings
// carry notification delivery failures; the booking itself has succeeded.
type BookingResult struct {
	MeetingID string   `json:"meeting_id"`
	Warnings  []string `json:"warnings,omitempty"`
}

// BookSlotSuccessResponse is the success envelope for POST /bookings.
type BookSlotSuccessResponse struct {
	Data  *BookingResult    `json:"data"`
	Error *helpers.APIError `json:"error"`
}

// BookSlot godoc
// @Summary Request a consultation
// @Description Books the available slot whose datetime equals selected_slot and creates a pending meeting. Confirmation and admin-alert emails are sent best effort; delivery failures appear in data.warnings without failing the booking.
// @Tags booking
// @Accept json
// @Produce json
// @Param body body controllers.BookSlotRequest true "Booking request"
// @Success 201 {object} controllers.BookSlotSuccessResponse
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 409 {object} helpers.APIResponse "error.code: slot_unavailable"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /bookings [post]
func (c *BookingController) BookSlot(w http.ResponseWriter, r *http.Request) {
	var req BookSlotRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}

	meeting, warnings, err := c.Service.BookSlot(r.Context(), domain.BookingRequest{
		Name:             req.Name,
		Email:            req.Email,
		Phone:            req.Phone,
		InvestmentAmount: req.InvestmentAmount,
		Message:          req.Message,
		SelectedSlot:     req.SelectedSlot,
	})
	if err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, err.Error())
			return
		}
		if errors.Is(err, domain.ErrSlotUnavailable) {
			helpers.WriteJSONError(w, http.StatusConflict, helpers.ErrCodeSlotUnavailable, "the selected slot is no longer available")
			return
		}
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, err.Error())
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusCreated, &BookingResult{
		MeetingID: meeting.ID,
		Warnings:  warnings,
	})
}
