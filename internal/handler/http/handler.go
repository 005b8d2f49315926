package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"shortlink/internal/domain"
	"shortlink/pkg/logger"
)

// LinkService interface defines the link store methods needed by the handler
// Using an interface instead of concrete type allows for easy mocking in tests
type LinkService interface {
	Create(ctx context.Context, target string) (*domain.ShortLink, error)
	Lookup(ctx context.Context, identifier string) (string, error)
	Count(ctx context.Context) (int, error)
}

// Handler holds dependencies for HTTP handlers
type Handler struct {
	links   LinkService
	logger  *logger.Logger
	baseURL string // Prefix for short links (e.g., "http://localhost:8080")
}

// NewHandler creates a new HTTP handler
func NewHandler(links LinkService, log *logger.Logger, baseURL string) *Handler {
	return &Handler{
		links:   links,
		logger:  log,
		baseURL: strings.TrimRight(baseURL, "/"),
	}
}

// Request/Response DTOs

// ShortenRequest is the body of a shorten call.
// URL is a pointer so a missing field can be told apart from an empty string.
type ShortenRequest struct {
	URL *string `json:"url"`
}

type ShortenResponse struct {
	ShortCode   string    `json:"short_code"`
	ShortURL    string    `json:"short_url"`
	OriginalURL string    `json:"original_url"`
	CreatedAt   time.Time `json:"created_at"`
}

// Shorten handles POST /shorten and POST /api/v1/urls
func (h *Handler) Shorten(w http.ResponseWriter, r *http.Request) {
	log := h.logger.WithContext(r.Context())

	if r.Method != http.MethodPost {
		respondError(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}
	defer r.Body.Close()

	var req ShortenRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if req.URL == nil {
		respondError(w, http.StatusBadRequest, "URL is required")
		return
	}

	link, err := h.links.Create(r.Context(), *req.URL)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			log.Info("Rejected target", "error", err)
			respondError(w, http.StatusBadRequest, err.Error())
			return
		}
		log.Error("Failed to create short link", "error", err)
		respondError(w, http.StatusInternalServerError, "Failed to create short link")
		return
	}

	log.Debug("Short link created", "short_code", link.Identifier)

	respondSuccess(w, http.StatusCreated, ShortenResponse{
		ShortCode:   link.Identifier,
		ShortURL:    h.baseURL + "/" + link.Identifier,
		OriginalURL: link.Target,
		CreatedAt:   link.CreatedAt,
	}, "Short link created successfully")
}

// Redirect handles GET /{id}
func (h *Handler) Redirect(w http.ResponseWriter, r *http.Request) {
	identifier := r.PathValue("id")
	if identifier == "" {
		identifier = strings.TrimPrefix(r.URL.Path, "/")
	}

	target, err := h.links.Lookup(r.Context(), identifier)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			h.logger.WithContext(r.Context()).Info("Short link not found", "short_code", identifier)
			http.Error(w, "URL not found", http.StatusNotFound)
			return
		}
		h.logger.WithContext(r.Context()).Error("Failed to resolve short link", "short_code", identifier, "error", err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	// The target is stored unvalidated, so it goes out as-is rather than
	// through http.Redirect, which would rewrite relative values
	w.Header().Set("Location", target)
	w.WriteHeader(http.StatusTemporaryRedirect)
}

// HealthCheck handles GET /health/live
func (h *Handler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	count, err := h.links.Count(r.Context())
	if err != nil {
		respondError(w, http.StatusServiceUnavailable, "link store unavailable")
		return
	}

	respondJSON(w, http.StatusOK, map[string]any{
		"status": "ok",
		"time":   time.Now().Format(time.RFC3339),
		"links":  count,
	})
}

// Routes registers every endpoint on a new mux
func (h *Handler) Routes(metricsHandler http.Handler) *http.ServeMux {
	mux := http.NewServeMux()

	mux.HandleFunc("POST /shorten", h.Shorten)
	mux.HandleFunc("POST /api/v1/urls", h.Shorten)
	mux.HandleFunc("GET /health/live", h.HealthCheck)
	if metricsHandler != nil {
		mux.Handle("GET /metrics", metricsHandler)
	}

	// Single-segment catch-all for identifiers; more specific patterns above win
	mux.HandleFunc("GET /{id}", h.Redirect)

	return mux
}
