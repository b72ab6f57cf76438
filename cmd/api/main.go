package main

import (
	"context"
	"log"
	"net/http"
	"os"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/xavierca1/pzk-backend/internal/config"
	"github.com/xavierca1/pzk-backend/internal/infra/database"
	"github.com/xavierca1/pzk-backend/internal/infra/http/handlers"
	"github.com/xavierca1/pzk-backend/internal/infra/http/middleware"
	"github.com/xavierca1/pzk-backend/internal/infra/integration/bitrix"
	"github.com/xavierca1/pzk-backend/internal/infra/integration/genapi"
	"github.com/xavierca1/pzk-backend/internal/infra/mail"
	"github.com/xavierca1/pzk-backend/internal/infra/queue"
	"github.com/xavierca1/pzk-backend/internal/usecase"
)

func main() {
	godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	db, err := database.NewConnection(cfg.Database.URL)
	if err != nil {
		log.Fatal(err)
	}
	defer db.Close()

	// 1. Repository + schema bootstrap (the only startup crash path)
	leadRepo := database.NewLeadRepository(db)
	if err := leadRepo.EnsureSchema(context.Background()); err != nil {
		log.Fatalf("schema bootstrap failed: %v", err)
	}

	// 2. Integrations
	crm := bitrix.NewClient(cfg.Bitrix.WebhookURL)
	genClient := genapi.NewClient(cfg.Generation.APIToken, cfg.Generation.APIURL)

	// 3. UseCases
	createLeadUC := usecase.NewCreateLeadUseCase(leadRepo, crm)

	if cfg.Queue.URL != "" {
		rabbitMQ, err := queue.NewRabbitMQ(cfg.Queue.URL)
		if err != nil {
			log.Printf("RabbitMQ unavailable, lead events disabled: %v", err)
		} else {
			defer rabbitMQ.Close()
			createLeadUC.Events = queue.NewProducer(rabbitMQ.Conn, rabbitMQ.Ch)
		}
	}

	if cfg.Mail.Host != "" && cfg.Mail.NotifyTo != "" {
		createLeadUC.Notifier = mail.NewEmailSender(
			cfg.Mail.Host, cfg.Mail.Port, cfg.Mail.User, cfg.Mail.Password, cfg.Mail.NotifyTo,
		)
	}

	generateUC := usecase.NewGenerateImageUseCase(
		genClient,
		cfg.Generation.PublicBaseURL,
		cfg.Generation.CallbackURL,
		cfg.Generation.PollInterval,
		cfg.Generation.PollTimeout,
		cfg.Generation.CleanupDelay,
	)

	if err := os.MkdirAll(cfg.Generation.UploadDir, 0o755); err != nil {
		log.Fatalf("failed to create upload dir: %v", err)
	}

	// 4. Handlers
	leadHandler := handlers.NewLeadHandler(createLeadUC)
	generateHandler := handlers.NewGenerateHandler(generateUC, cfg.Generation.UploadDir)
	callbackHandler := handlers.NewCallbackHandler()
	healthHandler := handlers.NewHealthHandler()

	// 5. Router
	r := chi.NewRouter()
	r.Use(chimiddleware.Logger)
	r.Use(middleware.Metrics)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
	}))

	r.Post("/createlead", leadHandler.Handle)
	r.Post("/generate", generateHandler.Handle)
	r.Post("/callbackimage", callbackHandler.Handle)
	r.Get("/health", healthHandler.Handle)
	r.Handle("/metrics", promhttp.Handler())
	r.Handle("/uploads/*", http.StripPrefix("/uploads/", http.FileServer(http.Dir(cfg.Generation.UploadDir))))

	addr := ":" + cfg.Server.Port
	log.Printf("server listening on %s", addr)
	if err := http.ListenAndServe(addr, r); err != nil {
		log.Fatal(err)
	}
}
