package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"time"

	"github.com/gorilla/mux"
	"github.com/joho/godotenv"
	"github.com/rs/cors"

	"mock-platform/internal/attempt"
	"mock-platform/internal/auth"
	"mock-platform/internal/catalog"
	"mock-platform/internal/models"
	"mock-platform/internal/moderation"
	"mock-platform/internal/subscription"
	"mock-platform/pkg/cache"
	"mock-platform/pkg/database"
)

func main() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Printf("Warning: .env file not found")
	}

	// Initialize database
	dbConfig := &database.Config{
		Host:     os.Getenv("DB_HOST"),
		Port:     os.Getenv("DB_PORT"),
		User:     os.Getenv("DB_USER"),
		Password: os.Getenv("DB_PASSWORD"),
		DBName:   os.Getenv("DB_NAME"),
	}

	db, err := database.NewPostgresDB(dbConfig)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	err = db.AutoMigrate(
		&models.User{},
		&models.Category{},
		&models.Subject{},
		&models.Question{},
		&models.Choice{},
		&models.Quiz{},
		&models.QuizAttempt{},
		&models.UserAnswer{},
		&models.SubscriptionPlan{},
		&models.UserSubscription{},
	)
	if err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}

	// Initialize Redis cache for question set snapshots
	redisCache := cache.NewRedisCache(os.Getenv("REDIS_ADDR"))

	// Marking defaults; quizzes may override per quiz
	markingDefaults := models.MarkingScheme{
		Positive: envFloat("QUIZ_POSITIVE_MARKS", 1.0),
		Negative: envFloat("QUIZ_NEGATIVE_MARKS", 0.33),
	}

	// Initialize repositories
	authRepo := auth.NewRepository(db)
	catalogRepo := catalog.NewRepository(db)
	subscriptionRepo := subscription.NewRepository(db)
	attemptRepo := attempt.NewRepository(db)
	moderationRepo := moderation.NewRepository(db)

	// Initialize services
	jwtSecret := os.Getenv("JWT_SECRET")
	authService := auth.NewService(authRepo, jwtSecret)
	catalogService := catalog.NewService(catalogRepo)
	subscriptionService := subscription.NewService(subscriptionRepo)
	attemptService := attempt.NewService(attemptRepo, catalogRepo, redisCache, markingDefaults)
	moderationService := moderation.NewService(moderationRepo, redisCache)

	// Initialize handlers
	authHandler := auth.NewHandler(authService)
	catalogHandler := catalog.NewHandler(catalogService)
	subscriptionHandler := subscription.NewHandler(subscriptionService)
	attemptHandler := attempt.NewHandler(attemptService, catalogService, subscriptionService)
	moderationHandler := moderation.NewHandler(moderationService)

	// Setup router
	router := mux.NewRouter()

	// CORS middleware configuration
	corsMiddleware := cors.New(cors.Options{
		AllowedOrigins:   []string{"http://localhost:3000"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Content-Type", "Authorization", "X-Requested-With"},
		ExposedHeaders:   []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           300,
	})

	handler := corsMiddleware.Handler(router)

	// Auth routes - no JWT required
	router.HandleFunc("/api/auth/register", authHandler.Register).Methods("POST", "OPTIONS")
	router.HandleFunc("/api/auth/login", authHandler.Login).Methods("POST", "OPTIONS")

	// Application routes - JWT required
	apiRouter := router.PathPrefix("/api").Subrouter()
	apiRouter.Use(auth.JWTMiddleware(jwtSecret))

	apiRouter.HandleFunc("/dashboard", catalogHandler.GetDashboard).Methods("GET")
	apiRouter.HandleFunc("/quizzes", catalogHandler.ListQuizzes).Methods("GET")
	apiRouter.HandleFunc("/categories", catalogHandler.ListCategories).Methods("GET")
	apiRouter.HandleFunc("/quiz/{quizID}/start", attemptHandler.StartQuiz).Methods("POST", "OPTIONS")
	apiRouter.HandleFunc("/quiz/{quizID}/submit", attemptHandler.SubmitQuiz).Methods("POST", "OPTIONS")
	apiRouter.HandleFunc("/result/{attemptID}", attemptHandler.GetResult).Methods("GET", "OPTIONS")
	apiRouter.HandleFunc("/questions", moderationHandler.SubmitQuestion).Methods("POST", "OPTIONS")
	apiRouter.HandleFunc("/questions/pending", moderationHandler.ListPending).Methods("GET")
	apiRouter.HandleFunc("/questions/moderate", moderationHandler.Moderate).Methods("POST", "OPTIONS")
	apiRouter.HandleFunc("/plans", subscriptionHandler.ListPlans).Methods("GET")
	apiRouter.HandleFunc("/subscribe", subscriptionHandler.Subscribe).Methods("POST", "OPTIONS")

	// Setup server with CORS handler
	srv := &http.Server{
		Addr:         ":8080",
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
	}

	// Start server in a goroutine
	go func() {
		log.Printf("Server starting on port 8080")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	// Graceful shutdown setup
	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt)
	<-c

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Printf("Server forced to shutdown: %v", err)
	}

	log.Println("Server shutdown gracefully")
}

func envFloat(key string, fallback float64) float64 {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback
	}
	value, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		log.Printf("Warning: invalid %s=%q, using default %v", key, raw, fallback)
		return fallback
	}
	return value
}
