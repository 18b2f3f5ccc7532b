package main

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"eklerchik/database"
	"eklerchik/docs"
	"eklerchik/internal/cache"
	"eklerchik/internal/config"
	"eklerchik/internal/controllers"
	"eklerchik/internal/genai"
	"eklerchik/internal/localstore"
	"eklerchik/internal/middleware"
	"eklerchik/internal/repository"
	"eklerchik/internal/seed"
	"eklerchik/internal/services"
	"eklerchik/internal/storage"
	"eklerchik/internal/utils"
	"eklerchik/routes"

	"github.com/gin-gonic/gin"
)

func main() {
	cfg := config.Load()

	// Swagger Documentation
	docs.SwaggerInfo.Title = "Miss Eklerchik API"
	docs.SwaggerInfo.Version = "1.0"
	docs.SwaggerInfo.Schemes = []string{"http", "https"}

	var redisClient *cache.RedisClient
	if cfg.RedisURL != "" {
		rc, err := cache.NewRedisClient(cfg.RedisURL)
		if err != nil {
			log.Printf("Warning: Redis unavailable, running without cache: %v", err)
		} else {
			redisClient = rc
			defer redisClient.Close()
		}
	}

	var (
		articleRepo    repository.ArticleRepository
		subscriberRepo repository.SubscriberRepository
		commentRepo    repository.CommentRepository
		settingRepo    repository.SiteSettingRepository
	)

	dbReady := false
	if cfg.Database.Configured() {
		if err := database.ConnectDatabase(cfg.Database); err != nil {
			log.Printf("Warning: %v; falling back to the local store", err)
		} else if err := database.MigrateDatabase(); err != nil {
			log.Fatalf("Failed to run database migrations: %v", err)
		} else {
			dbReady = true
			defer database.Close()
		}
	}

	if dbReady {
		if redisClient != nil {
			articleRepo = repository.NewCachedArticleRepository(database.DB, redisClient.Client())
		} else {
			articleRepo = repository.NewArticleRepository(database.DB)
		}
		subscriberRepo = repository.NewSubscriberRepository(database.DB)
		commentRepo = repository.NewCommentRepository(database.DB)
		settingRepo = repository.NewSiteSettingRepository(database.DB)
		log.Println("Initialized Postgres repositories")
	} else {
		store, err := localstore.Open(cfg.LocalStorePath)
		if err != nil {
			log.Fatalf("Failed to open local store %s: %v", cfg.LocalStorePath, err)
		}
		defer store.Close()

		articleRepo = localstore.NewSeedArticleRepository(seed.Articles())
		subscriberRepo = store.Subscribers()
		commentRepo = store.Comments()
		settingRepo = store.Settings()
		log.Printf("Initialized local store at %s (articles are read-only)", cfg.LocalStorePath)
	}

	aiClient, err := genai.NewClient(context.Background(), cfg.GeminiAPIKey)
	if err != nil {
		log.Fatalf("Failed to initialize AI client: %v", err)
	}
	if !aiClient.Configured() {
		log.Println("Warning: GEMINI_API_KEY is not set; AI tools and chat will answer with a configuration notice")
	}
	var history genai.HistoryStore
	if redisClient != nil {
		history = redisClient
	}
	chatService := genai.NewChatService(aiClient, history)

	var images storage.ImageStore
	if cfg.Storage.Configured() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		bucket, err := storage.NewClient(ctx, cfg.Storage)
		cancel()
		if err != nil {
			log.Printf("Warning: image storage unavailable: %v", err)
		} else {
			images = bucket
		}
	}

	var mailer utils.Mailer
	var mailQueue controllers.StatusReporter
	if cfg.Mail.Configured() {
		mailWorker := services.NewMailWorker(utils.NewSMTPMailer(cfg.Mail), 2, 100)
		mailWorker.Start()
		defer mailWorker.Stop()
		mailer = mailWorker
		mailQueue = mailWorker
	}

	secret := []byte(cfg.JWTSecret)
	if len(secret) == 0 {
		secret = randomSecret()
		log.Println("Warning: JWT_SECRET_KEY is not set; admin tokens will not survive a restart")
	}
	adminAuth := middleware.AdminAuthMiddleware(secret)
	if cfg.AdminPIN == "" {
		log.Println("Warning: ADMIN_PIN is not set; admin login is disabled")
	}

	backends := controllers.Backends{
		Database:  dbReady,
		AI:        aiClient.Configured(),
		Storage:   images != nil,
		Mail:      mailer != nil,
		MailQueue: mailQueue,
	}
	if redisClient != nil {
		backends.Cache = redisClient
	}

	// Initialize controllers
	articleController := controllers.NewArticleController(articleRepo, seed.Articles(), cfg.ItemsPerPage)
	editorController := controllers.NewEditorController()
	commentController := controllers.NewCommentController(commentRepo, articleController)
	subscriberController := controllers.NewSubscriberController(subscriberRepo, mailer, cfg.SiteBaseURL)
	settingsController := controllers.NewSettingsController(settingRepo)
	chatController := controllers.NewChatController(chatService)
	sitemapController := controllers.NewSitemapController(articleController, cfg.SiteBaseURL)
	aiController := controllers.NewAIController(aiClient, images)
	uploadController := controllers.NewUploadController(images)
	adminController := controllers.NewAdminController(cfg.AdminPIN, secret, backends)

	gin.SetMode(gin.ReleaseMode)
	router := gin.Default()

	router.GET("/", func(c *gin.Context) {
		response := gin.H{
			"message": "Miss Eklerchik API is running",
			"version": "1.0.0",
			"status":  "healthy",
		}
		if dbReady {
			response["database"] = "PostgreSQL"
			if err := database.Ping(); err != nil {
				response["status"] = "degraded"
				response["database_error"] = err.Error()
			}
		} else {
			response["database"] = "Local store"
		}
		c.JSON(http.StatusOK, response)
	})

	routes.RegisterArticleRoutes(router, adminAuth, articleController, editorController)
	routes.RegisterCommentRoutes(router, commentController)
	routes.RegisterSubscriberRoutes(router, adminAuth, subscriberController)
	routes.RegisterSettingsRoutes(router, adminAuth, settingsController)
	routes.RegisterChatRoutes(router, chatController)
	routes.RegisterSitemapRoutes(router, adminAuth, sitemapController)
	routes.RegisterAdminRoutes(router, adminAuth, adminController, aiController, uploadController, editorController)
	routes.RegisterSwaggerRoutes(router)

	log.Printf("Server starting on port %s", cfg.Port)
	log.Printf("API Documentation: http://localhost:%s/swagger/index.html", cfg.Port)

	server := &http.Server{
		Addr:           ":" + cfg.Port,
		Handler:        router,
		ReadTimeout:    30 * time.Second,
		WriteTimeout:   120 * time.Second,
		IdleTimeout:    60 * time.Second,
		MaxHeaderBytes: 1 << 20,
	}

	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("Failed to start server:", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		log.Printf("Server forced to shut down: %v", err)
	}
}

func randomSecret() []byte {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		log.Fatalf("Failed to generate JWT secret: %v", err)
	}
	return []byte(hex.EncodeToString(b))
}
