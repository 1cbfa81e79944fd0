package main

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	api "github.com/pathlight/pathlight-api/internal/api/http"
	"github.com/pathlight/pathlight-api/internal/assessment"
	"github.com/pathlight/pathlight-api/internal/auth"
	"github.com/pathlight/pathlight-api/internal/config"
	"github.com/pathlight/pathlight-api/internal/db"
	"github.com/pathlight/pathlight-api/internal/rbac"
	"github.com/pathlight/pathlight-api/internal/scoring"
	"github.com/pathlight/pathlight-api/internal/storage"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	logger, err := zap.NewProduction()
	if err != nil {
		log.Fatalf("logger: %v", err)
	}
	defer logger.Sync()

	// --- DB ---
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	dbh, err := db.Open(ctx, db.Driver(cfg.DBDriver), cfg.DBDSN)
	if err != nil {
		logger.Fatal("db open", zap.Error(err))
	}
	store := assessment.NewSQLStore(dbh)
	users := auth.NewUserStore(dbh)

	// --- Services ---
	engine := scoring.NewEngine()
	svc := assessment.NewService(store, engine, logger)
	authSvc := auth.NewService(cfg.JWTSecret, time.Duration(cfg.JWTTTLHours)*time.Hour)

	var limiter auth.RateLimiter = auth.NopLimiter{}
	if cfg.RedisAddr != "" {
		rdb := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		limiter = auth.NewRedisRateLimiter(rdb,
			time.Duration(cfg.LoginRateWindow)*time.Second, cfg.LoginRateMax)
		logger.Info("login rate limiting via redis", zap.String("addr", cfg.RedisAddr))
	}

	blobs, err := storage.NewFSStore(cfg.BlobBasePath)
	if err != nil {
		logger.Fatal("blob store", zap.Error(err))
	}

	// --- Router ---
	r := chi.NewRouter()
	r.Use(middleware.RequestID, middleware.RealIP, middleware.Logger, middleware.Recoverer)
	r.Use(middleware.Timeout(30 * time.Second))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.CORSOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Authorization", "Content-Type"},
		ExposedHeaders:   []string{"Content-Length", "Content-Disposition"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	// Public surface
	r.Post("/auth/register", api.RegisterHandler(users))
	r.Post("/auth/login", api.LoginHandler(users, authSvc, limiter, logger))
	r.Get("/public/instruments", api.ListInstrumentsHandler(svc))
	r.Get("/public/questions", api.PublicQuestionsHandler(store))

	// Protected API (JWT → role in context → RBAC)
	r.Group(func(pr chi.Router) {
		pr.Use(auth.Middleware(authSvc))

		pr.With(rbac.Require("instruments:view")).
			Get("/instruments", api.ListInstrumentsHandler(svc))
		pr.With(rbac.Require("questions:view")).
			Get("/questions", api.ListQuestionsHandler(store))
		pr.With(rbac.Require("questions:view")).
			Get("/questions/{questionID}", api.GetQuestionHandler(store))

		// Student flow
		pr.With(rbac.Require("submission:create")).
			Post("/submissions", api.SubmitHandler(svc, users, logger))
		pr.With(rbac.Require("results:view-own")).
			Get("/me", api.MeHandler(users, svc))
		pr.With(rbac.Require("user:change_password")).
			Post("/auth/change-password", api.ChangePasswordHandler(users))

		// Admin: question bank
		pr.With(rbac.Require("questions:manage")).
			Post("/questions", api.CreateQuestionHandler(store))
		pr.With(rbac.Require("questions:manage")).
			Put("/questions/{questionID}", api.UpdateQuestionHandler(store))
		pr.With(rbac.Require("questions:manage")).
			Delete("/questions/{questionID}", api.DeleteQuestionHandler(store))
		pr.With(rbac.Require("questions:bulk_upsert")).
			Post("/admin/questions/bulk", api.BulkUpsertQuestionsHandler(store, blobs, logger))

		// Admin: students and reporting
		pr.With(rbac.Require("students:list")).
			Get("/admin/students", api.ListStudentsHandler(users))
		pr.With(rbac.Require("students:manage")).
			Post("/admin/students", api.CreateStudentHandler(users, logger))
		pr.With(rbac.Require("students:view")).
			Get("/admin/students/{studentID}", api.GetStudentHandler(users, svc))
		pr.With(rbac.Require("students:manage")).
			Delete("/admin/students/{studentID}", api.DeleteStudentHandler(users, logger))
		pr.With(rbac.Require("students:manage")).
			Post("/admin/students/{studentID}/reset", api.ResetAssessmentHandler(users, svc, logger))
		pr.With(rbac.Require("students:bulk_upsert")).
			Post("/admin/students/bulk", api.BulkUpsertStudentsHandler(users, blobs, logger))
		pr.With(rbac.Require("uploads:view")).
			Get("/admin/uploads/*", api.DownloadUploadHandler(blobs))
		pr.With(rbac.Require("results:export")).
			Get("/admin/export/results", api.DownloadResultsHandler(users, svc, logger))
	})

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(200) })
	r.Get("/readyz", func(w http.ResponseWriter, r *http.Request) {
		if err := dbh.PingContext(r.Context()); err != nil {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		w.WriteHeader(200)
	})

	logger.Info("listening",
		zap.String("addr", cfg.HTTPAddr),
		zap.String("db", cfg.DBDriver))
	if err := http.ListenAndServe(cfg.HTTPAddr, r); err != nil {
		logger.Fatal("serve", zap.Error(err))
	}
}
