package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog/log"

	"github.com/campuslink/campuslink-api/internal/config"
	"github.com/campuslink/campuslink-api/internal/domain/moderation"
	"github.com/campuslink/campuslink-api/internal/domain/notification"
	"github.com/campuslink/campuslink-api/internal/domain/post"
	"github.com/campuslink/campuslink-api/internal/domain/profile"
	"github.com/campuslink/campuslink-api/internal/middleware"
	"github.com/campuslink/campuslink-api/internal/pkg/database"
	"github.com/campuslink/campuslink-api/internal/pkg/jwt"
	"github.com/campuslink/campuslink-api/internal/pkg/logger"
	pkgresponse "github.com/campuslink/campuslink-api/internal/pkg/response"
)

func main() {
	cfg := config.Load()
	logger.Init(logger.Config{
		Level:       cfg.LogLevel,
		Environment: cfg.Env,
	})

	log.Info().
		Str("env", cfg.Env).
		Str("port", cfg.Port).
		Msg("Starting CampusLink moderation API")

	db, err := database.NewPostgres(cfg.DatabaseURL)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to PostgreSQL")
	}
	defer database.ClosePostgres(db)

	redis, err := database.NewRedis(cfg.RedisURL)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to Redis")
	}
	defer database.CloseRedis(redis)

	jwtService := jwt.NewService(cfg.JWTSecret, cfg.JWTAccessTTL)

	// ---------- Repositories ----------
	profileRepo := profile.NewRepository(db)
	postRepo := post.NewRepository(db)
	notificationRepo := notification.NewRepository(db)
	moderationRepo := moderation.NewRepository(db)
	wordRepo := moderation.NewWordRepository(db)

	// ---------- Report feed hub ----------
	hub := moderation.NewHub(redis)
	go hub.Run()
	defer hub.Stop()

	// ---------- Services ----------
	notificationService := notification.NewService(notificationRepo)
	wordStore := moderation.NewWordStore(wordRepo)
	notifier := moderation.NewNotifier(notificationRepo)
	moderationService := moderation.NewService(
		moderationRepo,
		wordStore,
		postRepo,
		profileRepo,
		notifier,
		notificationService,
		hub,
	)

	// Warm the banned-word snapshot
	wordStore.Load(context.Background())

	// ---------- Background jobs ----------
	jobCtx, jobCancel := context.WithCancel(context.Background())
	defer jobCancel()

	cleanupJob := notification.NewCleanupJob(notificationRepo, cfg.NotificationTTL)
	go cleanupJob.Start(jobCtx, 6*time.Hour)

	// ---------- Handlers ----------
	moderationHandler := moderation.NewHandler(moderationService, wordStore, hub, cfg.AllowedOrigins)
	notificationHandler := notification.NewHandler(notificationService)

	authMiddleware := middleware.Auth(jwtService)

	// ---------- Router ----------
	r := chi.NewRouter()

	r.Use(chimw.RealIP)
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger)
	r.Use(middleware.Recover)
	r.Use(middleware.CORSHandler(cfg.AllowedOrigins))

	// Moderator feed WebSocket (before Compress)
	r.Get("/ws/moderation", func(w http.ResponseWriter, r *http.Request) {
		token := r.URL.Query().Get("token")
		if token != "" {
			r.Header.Set("Authorization", "Bearer "+token)
		}
		authMiddleware(middleware.RequireModerator(http.HandlerFunc(moderationHandler.WebSocket))).ServeHTTP(w, r)
	})

	r.Group(func(r chi.Router) {
		r.Use(chimw.Compress(5))

		r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
			pkgresponse.OK(w, map[string]string{
				"status":  "ok",
				"version": "1.0.0",
			})
		})

		r.Route("/api/v1", func(r chi.Router) {
			r.Mount("/moderation", moderationHandler.Routes(authMiddleware))
			r.Mount("/notifications", notificationHandler.Routes(authMiddleware))
		})

		r.Route("/api/admin", func(r chi.Router) {
			r.Mount("/moderation", moderationHandler.AdminRoutes(authMiddleware, middleware.RequireModerator))
		})
	})

	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Info().Str("addr", server.Addr).Msg("HTTP server listening")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("HTTP server error")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Fatal().Err(err).Msg("Server forced to shutdown")
	}

	log.Info().Msg("Server exited properly")
}
