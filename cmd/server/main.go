// Package main wires the conference portal API server.
//
// @title Conference Portal API
// @version 1.0
// @description JSON API for conference events, schedules, attendees, and reviews.
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
package main

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"os"
	"time"

	_ "github.com/lib/pq"

	"confportal/config"
	"confportal/internal/adapters/auth"
	"confportal/internal/adapters/email"
	delivery "confportal/internal/delivery/http"
	"confportal/internal/delivery/http/controllers"
	"confportal/internal/delivery/http/middleware"
	"confportal/internal/repository/postgres"
	"confportal/internal/services"
)

const serviceTimeout = 5 * time.Second

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "load config: %v\n", err)
		os.Exit(1)
	}
	logger := config.NewLogger()

	db, err := openDB(cfg.DBUrl)
	if err != nil {
		logger.Error("database connection failed", "err", err)
		os.Exit(1)
	}
	defer db.Close()
	logger.Info("database connection established")

	// Repositories
	eventRepo := postgres.NewEventRepository(db)
	trackRepo := postgres.NewTrackRepository(db)
	slotRepo := postgres.NewSlotRepository(db)
	organizerRepo := postgres.NewOrganizerRepository(db)
	attendeeRepo := postgres.NewAttendeeRepository(db)
	userRepo := postgres.NewUserRepository(db)
	reviewRepo := postgres.NewReviewRepository(db)

	// Services
	policy := services.NewVisibilityPolicy(organizerRepo, attendeeRepo)
	eventService := services.NewEventService(eventRepo, trackRepo, slotRepo, organizerRepo, userRepo, policy, serviceTimeout)
	queryService := services.NewEventQueryService(eventRepo, serviceTimeout)
	scheduleService := services.NewScheduleService(eventRepo, trackRepo, slotRepo, policy, serviceTimeout)
	attendeeService := services.NewAttendeeService(eventRepo, attendeeRepo, queryService, policy, serviceTimeout)
	reviewService := services.NewReviewService(eventRepo, reviewRepo, serviceTimeout)

	// Email + event-ended notifier
	mailer, err := email.NewMailer(email.MailerConfig{
		Provider:    cfg.Email.Provider,
		FromAddress: cfg.Email.FromAddress,
		FromName:    cfg.Email.FromName,
		SES: email.SESConfig{
			Region:          cfg.Email.SESRegion,
			AccessKeyID:     cfg.Email.SESAccessKeyID,
			SecretAccessKey: cfg.Email.SESSecretAccessKey,
		},
	})
	if err != nil {
		logger.Error("mailer setup failed", "err", err)
		os.Exit(1)
	}
	emailService := services.NewEmailService(mailer, email.NewTemplateRenderer())
	notifier := services.NewEventEndedNotifier(eventRepo, organizerRepo, emailService, logger)

	notifierCtx, stopNotifier := context.WithCancel(context.Background())
	defer stopNotifier()
	go notifier.Run(notifierCtx, cfg.NotifierInterval)

	// HTTP delivery
	verifier := auth.NewJWTCodec(cfg.JWTSecret)
	eventController := controllers.NewEventController(logger, eventService, queryService)
	scheduleController := controllers.NewScheduleController(logger, scheduleService, eventService)
	attendeeController := controllers.NewAttendeeController(logger, attendeeService)
	reviewController := controllers.NewReviewController(logger, reviewService)

	mux := delivery.NewRouter(logger, verifier, eventController, scheduleController, attendeeController, reviewController)
	handler := middleware.LoggingMiddleware(logger, middleware.CORS(cfg.CORSAllowedOrigins, mux))

	addr := ":" + cfg.Port
	logger.Info("server listening", "addr", addr, "env", cfg.Environment)
	if err := http.ListenAndServe(addr, handler); err != nil {
		logger.Error("server stopped", "err", err)
		os.Exit(1)
	}
}

func openDB(dsn string) (*sql.DB, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("ping database: %w", err)
	}
	return db, nil
}
