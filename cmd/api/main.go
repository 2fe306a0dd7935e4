package main

import (
	"log"
	"net/http"
	"os"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/summitview/outreach/internal/infra/config"
	"github.com/summitview/outreach/internal/infra/database"
	"github.com/summitview/outreach/internal/infra/http/handlers"
	"github.com/summitview/outreach/internal/infra/http/middleware"
	"github.com/summitview/outreach/internal/infra/integration/twilio"
	"github.com/summitview/outreach/internal/infra/logger"
	"github.com/summitview/outreach/internal/infra/mail"
	"github.com/summitview/outreach/internal/infra/queue"
	"github.com/summitview/outreach/internal/templates"
	"github.com/summitview/outreach/internal/usecase"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	zlog, err := logger.New(os.Getenv("APP_ENV"))
	if err != nil {
		log.Fatal(err)
	}
	defer zlog.Sync()

	db, err := database.NewDBConnection(cfg.DatabaseURL)
	if err != nil {
		zlog.Fatalw("database connection failed", "error", err)
	}
	defer db.Close()

	// Optional message-event publishing. The service runs fine without it.
	var events usecase.EventPublisherInterface
	var amqpConn *amqp.Connection
	if cfg.AMQPURL != "" {
		rabbit, err := queue.NewRabbitMQ(cfg.AMQPURL)
		if err != nil {
			zlog.Warnw("rabbitmq unavailable, message events disabled", "error", err)
		} else {
			defer rabbit.Close()
			amqpConn = rabbit.Conn
			events = queue.NewProducer(rabbit.Conn, rabbit.Ch)
		}
	}

	// Repositories
	leadRepo := database.NewLeadRepository(db)
	campaignRepo := database.NewCampaignRepository(db)
	stateRepo := database.NewDripStateRepository(db)
	logRepo := database.NewMessageLogRepository(db)

	// Senders and renderer
	smsSender := twilio.NewClient(cfg.Twilio.AccountSID, cfg.Twilio.AuthToken, cfg.Twilio.FromNumber)
	emailSender := mail.NewEmailSender(cfg.SMTP)
	renderer := templates.NewRenderer(cfg.CompanyName, cfg.BaseURL)

	// Use cases
	dripEngine := usecase.NewDripEngine(campaignRepo, stateRepo, leadRepo, logRepo,
		smsSender, emailSender, renderer, events, zlog)
	captureUC := usecase.NewCaptureLeadUseCase(leadRepo, logRepo, dripEngine,
		smsSender, emailSender, renderer, events, zlog)

	// Handlers
	leadHandler := handlers.NewLeadHandler(captureUC, leadRepo, logRepo, zlog)
	campaignHandler := handlers.NewCampaignHandler(campaignRepo, zlog)
	dripHandler := handlers.NewDripHandler(dripEngine, zlog)
	unsubscribeHandler := handlers.NewUnsubscribeHandler(leadRepo, dripEngine, cfg.CompanyName, zlog)
	webhookHandler := handlers.NewWebhookHandler(leadRepo, dripEngine, zlog)
	healthHandler := handlers.NewHealthHandler(db, amqpConn, cfg)

	// Router
	r := chi.NewRouter()
	r.Use(chimiddleware.Logger)
	r.Use(chimiddleware.Recoverer)
	r.Use(middleware.Metrics)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Content-Type", "X-Admin-Secret", "Authorization"},
	}))

	// Public
	r.Post("/leads", leadHandler.HandleCapture)
	r.Get("/unsubscribe", unsubscribeHandler.HandleUnsubscribe)
	r.Post("/webhooks/sms", webhookHandler.HandleSMS)
	r.Post("/webhooks/email", webhookHandler.HandleEmail)
	r.Get("/health", healthHandler.Handle)
	r.Handle("/metrics", promhttp.Handler())

	// Back office
	r.Group(func(r chi.Router) {
		r.Use(middleware.AdminAuth(cfg.AdminSecret))
		r.Get("/leads", leadHandler.HandleList)
		r.Put("/leads", leadHandler.HandleUpdate)
		r.Delete("/leads", leadHandler.HandleDelete)
		r.Patch("/leads/status", leadHandler.HandleUpdateStatus)
		r.Get("/leads/{id}/messages", leadHandler.HandleMessages)
		r.Get("/campaigns", campaignHandler.HandleList)
		r.Post("/campaigns", campaignHandler.HandleCreate)
		r.Put("/campaigns", campaignHandler.HandleUpdate)
		r.Delete("/campaigns", campaignHandler.HandleDelete)
	})

	// Scheduler
	r.Group(func(r chi.Router) {
		r.Use(middleware.CronAuth(cfg.CronSecret))
		r.Post("/drip/process", dripHandler.HandleProcess)
	})

	addr := ":" + cfg.Port
	zlog.Infow("server listening", "addr", addr)
	if err := http.ListenAndServe(addr, r); err != nil {
		zlog.Fatalw("server stopped", "error", err)
	}
}
