// @title           Valida AI Backend API
// @version         1.0.0
// @description     Backend API for AI-assisted product listing copy and image processing. Handles listing generation, background removal, studio renditions, workflow hand-offs, Hotmart provisioning and realtime generation updates.

// @contact.name   API Support
// @contact.email  suporte@valida.ai

// @license.name  MIT
// @license.url   https://opensource.org/licenses/MIT

// @host      localhost:8080
// @BasePath  /api/v1

// @securityDefinitions.apikey Bearer
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

package main

import (
	"context"
	"log"
	"net/http"
	"net/url"
	"os/signal"
	"syscall"

	"valida-backend/docs"
	"valida-backend/internal/config"
	"valida-backend/internal/database"
	"valida-backend/internal/gemini"
	"valida-backend/internal/handlers"
	"valida-backend/internal/middleware"
	"valida-backend/internal/n8n"
	"valida-backend/internal/openai"
	"valida-backend/internal/removebg"
	"valida-backend/internal/resend"
	"valida-backend/internal/services"
	"valida-backend/internal/supabase"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Point the Swagger UI at the deployed host.
	if cfg.BaseURL != "" {
		if baseURL, err := url.Parse(cfg.BaseURL); err == nil {
			docs.SwaggerInfo.Host = baseURL.Host
			if baseURL.Scheme == "https" {
				docs.SwaggerInfo.Schemes = []string{"https", "http"}
			} else {
				docs.SwaggerInfo.Schemes = []string{"http", "https"}
			}
		}
	}

	// External API clients.
	geminiClient := gemini.NewClient(cfg.GeminiBaseURL, cfg.GeminiAPIKey, cfg.GeminiModels)
	openaiClient := openai.NewClient(cfg.OpenAIBaseURL, cfg.OpenAIAPIKey)
	removeBgClient := removebg.NewClient(cfg.RemoveBgBaseURL, cfg.RemoveBgAPIKey)
	n8nClient := n8n.NewClient(cfg.N8NWebhookURL, cfg.N8NTimeout)
	mailer := resend.NewClient(cfg.ResendAPIKey)

	// Supabase clients.
	supabaseClient, err := supabase.NewClient(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize Supabase client: %v", err)
	}

	storageClient, err := supabase.NewStorageClient(cfg.SupabaseURL, cfg.SupabaseServiceRoleKey, cfg.SupabaseStorageBucket)
	if err != nil {
		log.Fatalf("Failed to initialize storage client: %v", err)
	}

	realtimeClient := supabase.NewRealtimeClient(supabaseClient.Supabase)
	authAdmin := supabase.NewAuthAdminClient(cfg.SupabaseURL, cfg.SupabaseServiceRoleKey)

	if cfg.DatabaseURL == "" {
		log.Fatal("DATABASE_URL not set. Provide the Supabase PostgreSQL connection string.")
	}

	dbClient, err := supabase.NewDatabaseClient(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Failed to initialize database client: %v", err)
	}
	defer dbClient.Close()

	migrator, err := database.NewMigrator(cfg.DatabaseURL)
	if err != nil {
		log.Printf("Warning: Failed to initialize migrator: %v", err)
	} else {
		if err := migrator.Run(); err != nil {
			log.Printf("Warning: Migration failed: %v", err)
		} else {
			log.Println("Migrations completed successfully")
		}
		migrator.Close()
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Background sweep of generations stuck in processando.
	janitor := services.NewJanitor(dbClient, cfg.StaleProcessingAfter)
	go janitor.Run(ctx)

	provisioning := services.NewProvisioningService(authAdmin, mailer, dbClient, cfg.SiteURL)

	// Handlers.
	copyHandler := handlers.NewCopyHandler(geminiClient)
	generationsHandler := handlers.NewGenerationsHandler(dbClient)
	imagesHandler := handlers.NewImagesHandler(removeBgClient, openaiClient, n8nClient, dbClient, storageClient, realtimeClient)
	watchHandler := handlers.NewWatchHandler(dbClient, realtimeClient)
	webhookHandler := handlers.NewWebhookHandler(cfg.HotmartSecret, provisioning)
	adminHandler := handlers.NewAdminHandler(dbClient)

	router := gin.Default()
	router.Use(middleware.CORS(cfg.AllowedOrigins))

	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	router.GET("/health", handlers.HealthHandler)

	// Webhook route authenticates with the Hotmart hottok, not a JWT.
	router.POST("/api/v1/webhooks/hotmart", webhookHandler.HotmartWebhook)

	api := router.Group("/api/v1")
	api.Use(middleware.AuthMiddleware(cfg))
	api.Use(middleware.RequireActiveProfile(dbClient))

	api.POST("/copy/generate", copyHandler.GenerateCopy)

	api.POST("/generations", generationsHandler.SaveGeneration)
	api.GET("/generations", generationsHandler.ListGenerations)
	api.GET("/generations/:generation_id", generationsHandler.GetGeneration)
	api.DELETE("/generations/:generation_id", generationsHandler.DeleteGeneration)
	api.GET("/generations/:generation_id/watch", watchHandler.WatchGeneration)

	api.POST("/images/remove-background", imagesHandler.RemoveBackground)
	api.POST("/images/studio", imagesHandler.StudioImage)
	api.POST("/images/workflow", imagesHandler.WorkflowImage)

	admin := api.Group("/admin")
	admin.Use(middleware.RequireAdmin(dbClient))
	admin.GET("/profiles", adminHandler.ListProfiles)
	admin.POST("/profiles/:profile_id/ban", adminHandler.ToggleBan)

	port := cfg.Port
	if port == "" {
		port = "8080"
	}

	log.Printf("Server starting on port %s", port)
	if err := http.ListenAndServe(":"+port, router); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
