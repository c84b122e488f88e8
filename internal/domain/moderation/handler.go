package moderation

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"

	"github.com/campuslink/campuslink-api/internal/middleware"
	"github.com/campuslink/campuslink-api/internal/pkg/response"
	"github.com/campuslink/campuslink-api/internal/pkg/validator"
)

// WebSocket timing constants
const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 512
)

// Handler handles moderation HTTP requests
type Handler struct {
	service  *Service
	words    *WordStore
	hub      *Hub
	upgrader websocket.Upgrader
}

// NewHandler creates moderation handler
func NewHandler(service *Service, words *WordStore, hub *Hub, allowedOrigins []string) *Handler {
	return &Handler{
		service: service,
		words:   words,
		hub:     hub,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				origin := r.Header.Get("Origin")
				if origin == "" {
					return true
				}
				for _, allowed := range allowedOrigins {
					if origin == allowed || allowed == "*" {
						return true
					}
				}
				log.Warn().Str("origin", origin).Msg("WebSocket origin rejected")
				return false
			},
		},
	}
}

// CreateReport creates a new report
// POST /moderation/reports
func (h *Handler) CreateReport(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())

	var req CreateReportRequest
	if err := response.DecodeJSON(r.Body, &req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}

	if errs := validator.Validate(&req); errs != nil {
		response.ValidationError(w, errs)
		return
	}

	report, err := h.service.CreateReport(r.Context(), userID, &req)
	if err != nil {
		switch {
		case errors.Is(err, ErrPostNotFound):
			response.NotFound(w, "Post not found")
		case errors.Is(err, ErrCannotReportOwnPost):
			response.BadRequest(w, "Cannot report your own post")
		default:
			response.InternalError(w)
		}
		return
	}

	response.Created(w, report)
}

// ListMyReports lists reports created by current user
// GET /moderation/reports/mine
func (h *Handler) ListMyReports(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())

	reports, err := h.service.ListMyReports(r.Context(), userID)
	if err != nil {
		response.InternalError(w)
		return
	}

	response.OK(w, reports)
}

// ListReports lists all reports, enriched (moderator only)
// GET /admin/moderation/reports
func (h *Handler) ListReports(w http.ResponseWriter, r *http.Request) {
	reports := h.service.ListReports(r.Context())

	meta := response.Meta{Total: len(reports)}
	response.WithMeta(w, reports, meta)
}

// ListActions lists the audit trail of a report (moderator only)
// GET /admin/moderation/reports/{id}/actions
func (h *Handler) ListActions(w http.ResponseWriter, r *http.Request) {
	reportID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		response.BadRequest(w, "Invalid report ID")
		return
	}

	actions, err := h.service.ListActions(r.Context(), reportID)
	if err != nil {
		response.InternalError(w)
		return
	}

	response.OK(w, actions)
}

// Dismiss dismisses a report (moderator only)
// POST /admin/moderation/reports/{id}/dismiss
func (h *Handler) Dismiss(w http.ResponseWriter, r *http.Request) {
	h.action(w, r, func(moderatorID, reportID uuid.UUID, notes string) (*Report, error) {
		return h.service.Dismiss(r.Context(), moderatorID, reportID, notes)
	})
}

// Warn warns the post author (moderator only)
// POST /admin/moderation/reports/{id}/warn
func (h *Handler) Warn(w http.ResponseWriter, r *http.Request) {
	h.action(w, r, func(moderatorID, reportID uuid.UUID, notes string) (*Report, error) {
		return h.service.Warn(r.Context(), moderatorID, reportID, notes)
	})
}

// action handles the shared shape of dismiss and warn
func (h *Handler) action(w http.ResponseWriter, r *http.Request, fn func(moderatorID, reportID uuid.UUID, notes string) (*Report, error)) {
	moderatorID := middleware.GetUserID(r.Context())

	reportID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		response.BadRequest(w, "Invalid report ID")
		return
	}

	var req ActionRequest
	if err := response.DecodeJSON(r.Body, &req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}

	if errs := validator.Validate(&req); errs != nil {
		response.ValidationError(w, errs)
		return
	}

	report, err := fn(moderatorID, reportID, req.Notes)
	if err != nil {
		h.writeActionError(w, err)
		return
	}

	response.OK(w, report)
}

// DeletePost deletes the reported post (moderator only)
// POST /admin/moderation/reports/{id}/delete-post
func (h *Handler) DeletePost(w http.ResponseWriter, r *http.Request) {
	moderatorID := middleware.GetUserID(r.Context())

	reportID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		response.BadRequest(w, "Invalid report ID")
		return
	}

	var req DeletePostRequest
	if err := response.DecodeJSON(r.Body, &req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}

	if errs := validator.Validate(&req); errs != nil {
		response.ValidationError(w, errs)
		return
	}

	report, err := h.service.DeletePost(r.Context(), moderatorID, reportID, req.PostID, req.Notes)
	if err != nil {
		h.writeActionError(w, err)
		return
	}

	response.OK(w, report)
}

func (h *Handler) writeActionError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrReportNotFound):
		response.NotFound(w, "Report not found")
	case errors.Is(err, ErrReportAlreadyResolved):
		response.Conflict(w, "Report already resolved")
	default:
		response.InternalError(w)
	}
}

// ListRecentPosts lists the newest posts for dashboard context (moderator only)
// GET /admin/moderation/posts/recent
func (h *Handler) ListRecentPosts(w http.ResponseWriter, r *http.Request) {
	limit := 20
	if l := r.URL.Query().Get("limit"); l != "" {
		if v, err := strconv.Atoi(l); err == nil && v > 0 && v <= 100 {
			limit = v
		}
	}

	posts, err := h.service.ListRecentPosts(r.Context(), limit)
	if err != nil {
		response.InternalError(w)
		return
	}

	response.OK(w, posts)
}

// ScanPost scans a post against the banned-word list (moderator only)
// POST /admin/moderation/posts/{id}/scan
func (h *Handler) ScanPost(w http.ResponseWriter, r *http.Request) {
	postID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		response.BadRequest(w, "Invalid post ID")
		return
	}

	matches, err := h.service.ScanPost(r.Context(), postID)
	if err != nil {
		if errors.Is(err, ErrPostNotFound) {
			response.NotFound(w, "Post not found")
		} else {
			response.InternalError(w)
		}
		return
	}

	if matches == nil {
		matches = []BannedWord{}
	}

	response.OK(w, ScanResponse{
		PostID:  postID,
		Flagged: len(matches) > 0,
		Matches: matches,
	})
}

// ListBannedWords lists the curated banned words (moderator only)
// GET /admin/moderation/banned-words
func (h *Handler) ListBannedWords(w http.ResponseWriter, r *http.Request) {
	words := h.words.Load(r.Context())
	response.OK(w, words)
}

// AddBannedWord adds a banned word and reloads the snapshot (moderator only)
// POST /admin/moderation/banned-words
func (h *Handler) AddBannedWord(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())

	var req AddBannedWordRequest
	if err := response.DecodeJSON(r.Body, &req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}

	if errs := validator.Validate(&req); errs != nil {
		response.ValidationError(w, errs)
		return
	}

	if err := h.words.Add(r.Context(), req.Word, req.Category, userID); err != nil {
		response.InternalError(w)
		return
	}

	// Pull-based snapshot: reload so the next scan sees the new word
	h.words.Reload(r.Context())

	response.Created(w, map[string]string{"message": "Banned word added"})
}

// WebSocket streams newly created reports to a moderator dashboard
// GET /ws/moderation
func (h *Handler) WebSocket(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	if userID == uuid.Nil {
		response.Unauthorized(w, "Authentication required")
		return
	}

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Error().Err(err).Msg("WebSocket upgrade failed")
		return
	}

	client := &Client{
		UserID: userID,
		Conn:   conn,
		Send:   make(chan []byte, 64),
	}

	h.hub.Register(client)

	go h.wsReader(client)
	go h.wsWriter(client)
}

// wsReader drains the connection; the feed is push-only, incoming
// frames are only pongs and close
func (h *Handler) wsReader(client *Client) {
	defer func() {
		h.hub.Unregister(client)
		client.Conn.Close()
	}()

	client.Conn.SetReadLimit(maxMessageSize)
	client.Conn.SetReadDeadline(time.Now().Add(pongWait))
	client.Conn.SetPongHandler(func(string) error {
		client.Conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		if _, _, err := client.Conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				log.Error().Err(err).Str("user_id", client.UserID.String()).Msg("WebSocket read error")
			}
			return
		}
	}
}

func (h *Handler) wsWriter(client *Client) {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		client.Conn.Close()
	}()

	for {
		select {
		case message, ok := <-client.Send:
			client.Conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				// Hub closed the channel
				client.Conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}

			if err := client.Conn.WriteMessage(websocket.TextMessage, message); err != nil {
				return
			}

		case <-ticker.C:
			client.Conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := client.Conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
