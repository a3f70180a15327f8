package main

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/spf13/viper"
	httpSwagger "github.com/swaggo/http-swagger"

	"github.com/elamirpay/backend/docs"
	"github.com/elamirpay/backend/internal/config"
	"github.com/elamirpay/backend/internal/database"
	"github.com/elamirpay/backend/internal/handlers"
	mW "github.com/elamirpay/backend/internal/middleware"
	"github.com/elamirpay/backend/internal/repository"
	"github.com/elamirpay/backend/internal/services"
	"github.com/elamirpay/backend/internal/session"
	"github.com/elamirpay/backend/internal/store"
)

// @title El Amir Agency API
// @version 1.0
// @description API for the El Amir mobile top-up agency
// @host localhost:8080
// @BasePath /api/v1
// @schemes http https

func main() {
	// Initialize config
	viper.SetConfigFile(".env") // explicitly point to .env file
	viper.AutomaticEnv()        // allow environment variables to override .env

	viper.SetEnvPrefix("")

	viper.BindEnv("redis.host", "REDIS_HOST")
	viper.BindEnv("redis.port", "REDIS_PORT")
	viper.BindEnv("redis.password", "REDIS_PASSWORD")
	viper.BindEnv("redis.db", "REDIS_DB")

	viper.BindEnv("jwt.secret_key", "JWT_SECRET_KEY")
	viper.BindEnv("jwt.expiry_hours", "JWT_EXPIRY_HOURS")

	if err := viper.ReadInConfig(); err != nil {
		log.Printf("Config file not found, using defaults: %v", err)
	}

	// Initialize Swagger docs
	docs.SwaggerInfo.Title = "El Amir Agency API"
	docs.SwaggerInfo.Description = "API for the El Amir mobile top-up agency"
	docs.SwaggerInfo.Version = "1.0"
	docs.SwaggerInfo.Host = "localhost:8080"
	docs.SwaggerInfo.BasePath = "/api/v1"
	docs.SwaggerInfo.Schemes = []string{"http", "https"}

	ledgerCfg := config.LoadLedgerConfig()
	reviewCfg := config.LoadReviewConfig()

	redisClient := database.InitRedis()
	if redisClient != nil {
		defer redisClient.Close()
	}

	// Pick the document store: Redis when reachable, in-memory otherwise.
	// The in-memory store loses state on restart; it exists for local
	// development and tests.
	var docStore store.Store
	if redisClient != nil {
		docStore = store.NewRedisStore(redisClient)
	} else {
		log.Println("[STORE] Using in-memory store; data will not survive restarts")
		docStore = store.NewMemoryStore()
	}

	repos := repository.New(docStore)
	sessions := session.NewManager(docStore)

	// Initialize services
	directoryService := services.NewDirectoryService(repos, sessions)
	ledgerService := services.NewLedgerService(repos, directoryService, ledgerCfg)
	receiptService := services.NewReceiptService(repos, ledgerService, directoryService, reviewCfg)
	defer receiptService.Close()
	statsService := services.NewStatsService(repos)
	notificationService := services.NewNotificationService(repos)
	supportService := services.NewSupportService(repos)
	operatorService := services.NewOperatorService()
	qrService := services.NewQRService(redisClient)
	authService := services.NewAuthService(directoryService, redisClient)

	// Initialize handlers
	receiptHandler := handlers.NewReceiptHandler(receiptService, directoryService)
	rechargeHandler := handlers.NewRechargeHandler(ledgerService)
	adminHandler := handlers.NewAdminHandler(directoryService, ledgerService, statsService, repos)
	notificationHandler := handlers.NewNotificationHandler(notificationService)
	preferencesHandler := handlers.NewPreferencesHandler(repos)
	supportHandler := handlers.NewSupportHandler(supportService)
	qrHandler := handlers.NewQRHandler(qrService)

	// Initialize auth middleware with Redis
	mW.InitAuthMiddleware(redisClient)

	// Setup router
	r := chi.NewRouter()

	// Middleware
	r.Use(mW.SecurityHeaders)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.RealIP)
	r.Use(middleware.Timeout(60 * time.Second))

	// CORS
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"https://*", "http://*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "Access-Control-Allow-Origin"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: true,
		MaxAge:           86400,
	}))

	// Health check
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]string{"status": "healthy"})
	})

	// Swagger documentation
	r.Get("/swagger/*", httpSwagger.Handler(
		httpSwagger.URL("http://localhost:8080/swagger/doc.json"),
	))

	// Static file server for operator logos
	r.Handle("/static/operator-logos/*", http.StripPrefix("/static/operator-logos/",
		mW.StaticFileServer("./static/operator-logos")))

	// API routes
	r.Route("/api/v1", func(r chi.Router) {
		// Public endpoints (no auth required)
		r.Post("/auth/register", authService.Register)
		r.Post("/auth/login", authService.Login)
		r.Post("/auth/logout", authService.Logout)
		r.Get("/operators", operatorService.GetAllOperators)
		r.Post("/support/messages", supportHandler.SubmitMessage)

		// Protected endpoints (auth required)
		r.Group(func(r chi.Router) {
			r.Use(mW.AuthMiddleware)

			r.Get("/auth/account", authService.GetUserAccount)

			// Receipt submission
			r.Post("/receipts", receiptHandler.SubmitReceipt)

			// Recharge purchases
			r.Post("/recharges", rechargeHandler.PurchaseRecharge)
			r.Get("/recharges/summary", rechargeHandler.GetSummary)

			// Notifications
			r.Get("/notifications", notificationHandler.ListNotifications)
			r.Put("/notifications/{id}/read", notificationHandler.MarkNotificationRead)

			// Deposit QR codes
			r.Post("/qr/deposit", qrHandler.GenerateDepositQR)

			// Preferences
			r.Get("/preferences", preferencesHandler.GetPreferences)
			r.Put("/preferences", preferencesHandler.SetPreferences)

			// Admin endpoints
			r.Group(func(r chi.Router) {
				r.Use(mW.AdminOnly(reviewCfg.AdminEmail))

				r.Get("/admin/receipts/pending", receiptHandler.ListPending)
				r.Put("/admin/receipts/{id}/approve", receiptHandler.ApproveReceipt)
				r.Put("/admin/receipts/{id}/reject", receiptHandler.RejectReceipt)
				r.Get("/admin/receipts/{id}/file", receiptHandler.GetReceiptFile)

				r.Get("/admin/users", adminHandler.ListUsers)
				r.Put("/admin/users/{id}/balance", adminHandler.SetUserBalance)

				r.Get("/admin/orders", adminHandler.ListOrders)
				r.Get("/admin/stats", adminHandler.GetStats)

				r.Get("/admin/support/messages", supportHandler.ListMessages)
				r.Put("/admin/support/messages/{id}/read", supportHandler.MarkMessageRead)

				r.Post("/admin/qr/validate", qrHandler.ValidateDepositQR)
			})
		})
	})

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	// Start server
	server := &http.Server{
		Addr:         ":" + port,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown
	go func() {
		log.Printf("Server starting on :%s", port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server failed: %v", err)
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Server shutting down...")
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown:", err)
	}

	log.Println("Server stopped")
}
