// @title           LiveSolve Backend API
// @version         1.0.0
// @description     Backend API for the LiveSolve handwriting analysis and feedback tool. Accepts photos of handwritten math solutions, stores them in Google Cloud Storage, runs two-stage error-region detection with Gemini and persists each submission.

// @host      localhost:8080
// @BasePath  /api/v1

// @securityDefinitions.apikey Bearer
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and a Firebase ID token.

package main

import (
	"context"
	"log"
	"net/http"

	"cloud.google.com/go/storage"
	vision "cloud.google.com/go/vision/v2/apiv1"
	"github.com/gin-gonic/gin"
	"github.com/google/generative-ai-go/genai"
	"go.uber.org/zap"
	"google.golang.org/api/option"

	"livesolve-backend/internal/config"
	"livesolve-backend/internal/database"
	"livesolve-backend/internal/detect"
	"livesolve-backend/internal/gcs"
	"livesolve-backend/internal/handlers"
	"livesolve-backend/internal/logger"
	"livesolve-backend/internal/middleware"
	"livesolve-backend/internal/services"
	visionclient "livesolve-backend/internal/vision"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	zlog, err := logger.New(cfg.Environment)
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer zlog.Sync()

	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx := context.Background()

	// Process-wide external clients, constructed once and injected into
	// the adapters.
	gcsClient, err := storage.NewClient(ctx)
	if err != nil {
		zlog.Fatal("failed to initialize storage client", zap.Error(err))
	}
	defer gcsClient.Close()

	annotator, err := vision.NewImageAnnotatorClient(ctx)
	if err != nil {
		zlog.Fatal("failed to initialize vision client", zap.Error(err))
	}
	defer annotator.Close()

	genaiClient, err := genai.NewClient(ctx, option.WithAPIKey(cfg.GeminiAPIKey))
	if err != nil {
		zlog.Fatal("failed to initialize gemini client", zap.Error(err))
	}
	defer genaiClient.Close()

	dbClient, err := database.NewClient(cfg.DatabaseURL)
	if err != nil {
		zlog.Fatal("failed to initialize database client", zap.Error(err))
	}
	defer dbClient.Close()

	migrator, err := database.NewMigrator(cfg.DatabaseURL, zlog)
	if err != nil {
		zlog.Fatal("failed to initialize migrator", zap.Error(err))
	}
	if err := migrator.Run(); err != nil {
		migrator.Close()
		zlog.Fatal("migration failed", zap.Error(err))
	}
	migrator.Close()
	zlog.Info("migrations completed")

	// Adapters and orchestrator.
	storageClient := gcs.NewStorageClient(gcsClient, cfg.GCSBucketName)
	ocrClient := visionclient.NewClient(annotator)
	pipeline := detect.NewPipeline(detect.NewGeminiGenerator(genaiClient, cfg.GeminiModel), zlog)
	submissionService := services.NewSubmissionService(
		storageClient, ocrClient, pipeline, dbClient, cfg.ProblemID, zlog,
	)
	submissionHandler := handlers.NewSubmissionHandler(submissionService, zlog)

	var verifier middleware.TokenVerifier
	if cfg.FirebaseProjectID != "" {
		verifier, err = middleware.NewFirebaseVerifier(ctx, cfg.FirebaseProjectID)
		if err != nil {
			zlog.Fatal("failed to initialize token verifier", zap.Error(err))
		}
	} else {
		zlog.Warn("FIREBASE_PROJECT_ID not set; using static dev token verification")
		verifier = middleware.NewStaticVerifier(cfg.AuthDevSecret)
	}

	router := gin.Default()

	// Health check (no auth)
	router.GET("/health", handlers.HealthHandler)

	// API routes
	api := router.Group("/api/v1")
	api.Use(middleware.AuthMiddleware(verifier, zlog))

	api.POST("/submission/submit/solution", submissionHandler.SubmitSolution)
	api.POST("/submission/upload-image", submissionHandler.UploadImage)
	api.POST("/submission/ocr", submissionHandler.ExtractText)
	api.POST("/submission/analyze", submissionHandler.Analyze)
	api.GET("/submission/history", submissionHandler.History)
	api.GET("/me", submissionHandler.Me)

	zlog.Info("server starting", zap.String("port", cfg.Port))
	if err := http.ListenAndServe(":"+cfg.Port, router); err != nil {
		zlog.Fatal("server stopped", zap.Error(err))
	}
}
