package rest

import (
	"net/http"
	"strconv"

	"github.com/vibelist-labs/vibelist/internal/core/domain"
)

type tasteAcceptRequest struct {
	User        string   `json:"user"`
	ArtistNames []string `json:"artistNames"`
	Genres      []string `json:"genres"`
}

type tasteAcceptResponse struct {
	LikedArtists int `json:"likedArtists"`
	LikedGenres  int `json:"likedGenres"`
}

// TasteAccept handles POST /taste/accept: record endorsed artists/genres and
// report the cumulative set sizes.
func (h *Handler) TasteAccept(w http.ResponseWriter, r *http.Request) {
	var req tasteAcceptRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if req.User == "" {
		badRequest(w, "user is required")
		return
	}

	artists, genres := h.deps.Taste.Merge(userKey(req.User), req.ArtistNames, req.Genres)
	writeJSON(w, http.StatusOK, tasteAcceptResponse{LikedArtists: artists, LikedGenres: genres})
}

const defaultTopArtistLimit = 10

// TopArtists handles GET /me/top_artists?user=&limit=.
func (h *Handler) TopArtists(w http.ResponseWriter, r *http.Request) {
	user := r.URL.Query().Get("user")
	if user == "" {
		badRequest(w, "user is required")
		return
	}

	limit := defaultTopArtistLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			badRequest(w, "limit must be a positive integer")
			return
		}
		limit = n
	}

	rec, ok := h.deps.Creds.Get(userKey(user))
	if !ok {
		h.writeError(w, domain.ErrNotAuthenticated)
		return
	}

	artists, err := h.deps.Catalog.TopArtists(r.Context(), rec.AccessToken, limit)
	if err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"items": artists})
}
