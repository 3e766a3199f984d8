package http

import (
	"net/http"

	httpSwagger "github.com/swaggo/http-swagger"

	"investorbooking/internal/delivery/http/controllers"
	"investorbooking/internal/delivery/http/middleware"
	"investorbooking/internal/domain"
)

// NewRouter initializes the HTTP router with all application routes.
// Booking routes are public; everything under /admin requires the
// administrator bearer token.
func NewRouter(
	bookingController *controllers.BookingController,
	scheduleController *controllers.ScheduleController,
	moderationController *controllers.ModerationController,
	authController *controllers.AuthController,
	verifier domain.TokenVerifier,
) *http.ServeMux {
	mux := http.NewServeMux()
	admin := middleware.RequireAdmin(verifier)

	// Requester form
	mux.HandleFunc("GET /slots", bookingController.ListAvailableSlots)
	mux.HandleFunc("POST /bookings", bookingController.BookSlot)

	// Auth
	mux.HandleFunc("POST /auth/login", authController.Login)

	// Admin console
	mux.HandleFunc("POST /admin/slots", admin(scheduleController.CreateSlot))
	mux.HandleFunc("GET /admin/slots", admin(scheduleController.ListSlots))
	mux.HandleFunc("DELETE /admin/slots/{slotID}", admin(scheduleController.DeleteSlot))
	mux.HandleFunc("GET /admin/meetings", admin(moderationController.ListAllMeetings))
	mux.HandleFunc("GET /admin/meetings/pending", admin(moderationController.ListPendingMeetings))
	mux.HandleFunc("POST /admin/meetings/{meetingID}/approve", admin(moderationController.ApproveMeeting))
	mux.HandleFunc("POST /admin/meetings/{meetingID}/complete", admin(moderationController.MarkComplete))

	// Health
	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	// Swagger
	mux.Handle("/swagger/", httpSwagger.WrapHandler)

	return mux
}
