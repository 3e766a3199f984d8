package main

import (
	"context"
	"database/sql"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/lib/pq"

	"investorbooking/config"
	_ "investorbooking/docs"
	authadapter "investorbooking/internal/adapters/auth"
	emailadapter "investorbooking/internal/adapters/email"
	delivery "investorbooking/internal/delivery/http"
	"investorbooking/internal/delivery/http/controllers"
	"investorbooking/internal/delivery/http/middleware"
	"investorbooking/internal/domain"
	"investorbooking/internal/repository/docstore"
	"investorbooking/internal/repository/postgres"
	"investorbooking/internal/services"
)

// @title Investor Consultation Booking API
// @version 1.0
// @description Slot inventory, consultation bookings, and the administrator approval workflow.
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	logger := config.NewLogger()

	var (
		slotRepo    domain.SlotRepository
		meetingRepo domain.MeetingRepository
	)
	switch cfg.StoreBackend {
	case "file":
		store := docstore.NewStore(cfg.StoreFile)
		slotRepo = store.Slots()
		meetingRepo = store.Meetings()
		logger.Info("using file store", "path", cfg.StoreFile)
	default:
		db, err := sql.Open("postgres", cfg.DBUrl)
		if err != nil {
			log.Fatalf("db: %v", err)
		}
		defer db.Close()
		if err := db.Ping(); err != nil {
			log.Fatalf("db ping: %v", err)
		}
		logger.Info("connected to postgres")

		if migration, err := os.ReadFile("db/migrations/001_init.sql"); err != nil {
			logger.Warn("migration file not found, skipping", "err", err)
		} else if _, err := db.Exec(string(migration)); err != nil {
			logger.Warn("migration warning", "err", err)
		} else {
			logger.Info("migration applied")
		}

		slotRepo = postgres.NewSlotRepository(db)
		meetingRepo = postgres.NewMeetingRepository(db)
	}

	mailer, err := emailadapter.NewMailer(cfg.Email)
	if err != nil {
		log.Fatalf("mailer: %v", err)
	}
	emailService := services.NewEmailService(mailer, emailadapter.NewTemplateRenderer())

	adminEmail, adminPassword := cfg.AdminEmail, cfg.AdminPassword
	if adminEmail == "" || adminPassword == "" {
		// Only reachable outside production; config.Load rejects this there.
		adminEmail, adminPassword = "admin@localhost", "admin"
		logger.Warn("ADMIN_EMAIL/ADMIN_PASSWORD not set, using development credentials")
	}
	authService, err := services.NewAuthService(
		adminEmail, adminPassword,
		authadapter.NewBcryptHasher(0),
		authadapter.NewJWTIssuer(cfg.JWTSecret),
		cfg.TokenExpiry,
	)
	if err != nil {
		log.Fatalf("auth: %v", err)
	}

	bookingService := services.NewBookingService(
		slotRepo, meetingRepo, emailService,
		cfg.AdminNotifyEmail, cfg.RequestTimeout, cfg.NotifyTimeout, logger,
	)
	scheduleService := services.NewScheduleService(slotRepo, cfg.RequestTimeout)
	moderationService := services.NewModerationService(
		slotRepo, meetingRepo, emailService,
		cfg.RequestTimeout, cfg.NotifyTimeout, logger,
	)

	verifier := authadapter.NewJWTVerifier(cfg.JWTSecret)
	mux := delivery.NewRouter(
		controllers.NewBookingController(logger, bookingService),
		controllers.NewScheduleController(logger, scheduleService),
		controllers.NewModerationController(logger, moderationService),
		controllers.NewAuthController(logger, authService),
		verifier,
	)

	var handler http.Handler = middleware.Logging(logger, mux)
	if len(cfg.CORSAllowedOrigins) > 0 {
		handler = middleware.CORS(cfg.CORSAllowedOrigins, handler)
	}

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}
	go func() {
		logger.Info("http server listening", "port", cfg.Port, "env", cfg.Environment)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("http: %v", err)
		}
	}()

	// graceful shutdown
	ch := make(chan os.Signal, 1)
	signal.Notify(ch, syscall.SIGINT, syscall.SIGTERM)
	<-ch
	logger.Info("shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("shutdown", "err", err)
	}
}
