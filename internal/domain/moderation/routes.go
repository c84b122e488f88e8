package moderation

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// Routes returns user-facing moderation routes
func (h *Handler) Routes(authMiddleware func(http.Handler) http.Handler) chi.Router {
	r := chi.NewRouter()

	// All routes require authentication
	r.Use(authMiddleware)

	r.Post("/reports", h.CreateReport)
	r.Get("/reports/mine", h.ListMyReports)

	return r
}

// AdminRoutes returns moderator-only routes
func (h *Handler) AdminRoutes(authMiddleware, moderatorMiddleware func(http.Handler) http.Handler) chi.Router {
	r := chi.NewRouter()

	// Require auth + moderator role
	r.Use(authMiddleware)
	r.Use(moderatorMiddleware)

	r.Get("/reports", h.ListReports)
	r.Get("/reports/{id}/actions", h.ListActions)
	r.Post("/reports/{id}/dismiss", h.Dismiss)
	r.Post("/reports/{id}/delete-post", h.DeletePost)
	r.Post("/reports/{id}/warn", h.Warn)

	r.Get("/posts/recent", h.ListRecentPosts)
	r.Post("/posts/{id}/scan", h.ScanPost)

	r.Get("/banned-words", h.ListBannedWords)
	r.Post("/banned-words", h.AddBannedWord)

	return r
}
