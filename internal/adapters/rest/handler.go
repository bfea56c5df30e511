package rest

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/vibelist-labs/vibelist/internal/auth"
	"github.com/vibelist-labs/vibelist/internal/core/domain"
	"github.com/vibelist-labs/vibelist/internal/core/ports"
	"github.com/vibelist-labs/vibelist/internal/core/services"
)

// Deps bundles everything the HTTP adapter calls into.
type Deps struct {
	Flow      *auth.Flow
	Parser    *services.RuleParser
	Orch      *services.Orchestrator
	Writer    *services.Writer
	Catalog   ports.Catalog
	Creds     ports.CredentialStore
	Taste     ports.TasteStore
	WebOrigin string
	Logger    *log.Logger
}

// Handler is the HTTP interface of the application.
type Handler struct {
	deps   Deps
	router chi.Router
}

// NewHandler initializes the HTTP adapter and sets up routes.
func NewHandler(deps Deps) *Handler {
	if deps.Logger == nil {
		deps.Logger = log.Default()
	}
	h := &Handler{deps: deps, router: chi.NewRouter()}
	h.routes()
	return h
}

// ServeHTTP satisfies http.Handler, passing the request to the router.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.router.ServeHTTP(w, r)
}

func (h *Handler) routes() {
	h.router.Use(middleware.RequestID)
	h.router.Use(middleware.RealIP)
	h.router.Use(middleware.Recoverer)

	h.router.Get("/healthz", h.HealthCheck)

	h.router.Get("/auth/login", h.AuthLogin)
	h.router.Get("/auth/callback", h.AuthCallback)

	h.router.Post("/taste/accept", h.TasteAccept)
	h.router.Get("/me/top_artists", h.TopArtists)

	h.router.Post("/vibe/parse", h.VibeParse)
	h.router.Post("/vibe/parse_ai", h.VibeParseAI)
	h.router.Post("/vibe/generate", h.VibeGenerate)
	h.router.Post("/vibe/one_click", h.VibeOneClick)

	h.router.Post("/playlist/create_from_tracks", h.PlaylistCreate)
}

// HealthCheck verifies the API is running.
func (h *Handler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// writeError maps the domain error taxonomy to a status code and a safe
// client message. Upstream details stay in the server log.
func (h *Handler) writeError(w http.ResponseWriter, err error) {
	status, msg := classify(err)
	if status >= http.StatusInternalServerError {
		h.deps.Logger.Error("request failed", "status", status, "err", err)
	} else {
		h.deps.Logger.Warn("request rejected", "status", status, "err", err)
	}
	writeJSON(w, status, map[string]string{"error": msg})
}

func classify(err error) (int, string) {
	switch {
	case errors.Is(err, domain.ErrInvalidState):
		return http.StatusBadRequest, "invalid or expired login state, restart the login flow"
	case errors.Is(err, domain.ErrNotAuthenticated), errors.Is(err, domain.ErrReauthRequired):
		return http.StatusUnauthorized, "not authenticated with Spotify, please log in again"
	case errors.Is(err, domain.ErrNoCandidates):
		return http.StatusBadGateway, "could not resolve any tracks for this vibe, try different wording"
	default:
		return http.StatusBadGateway, "upstream service failure"
	}
}

func badRequest(w http.ResponseWriter, msg string) {
	writeJSON(w, http.StatusBadRequest, map[string]string{"error": msg})
}

func decodeBody(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		badRequest(w, "invalid request body")
		return false
	}
	return true
}

// userKey resolves the request's user identifier to a credential key.
// An empty identifier is a client error, reported as 400 by the caller.
func userKey(user string) string {
	return domain.UserKey(domain.ProviderSpotify, user)
}
