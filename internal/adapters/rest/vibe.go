package rest

import (
	"net/http"

	"github.com/vibelist-labs/vibelist/internal/core/domain"
)

type vibeParseRequest struct {
	Vibe            string `json:"vibeText"`
	ExplicitAllowed *bool  `json:"explicitAllowed"`
}

func (req vibeParseRequest) explicit() bool {
	if req.ExplicitAllowed == nil {
		return true
	}
	return *req.ExplicitAllowed
}

// VibeParse handles POST /vibe/parse with the deterministic keyword rules.
func (h *Handler) VibeParse(w http.ResponseWriter, r *http.Request) {
	var req vibeParseRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if req.Vibe == "" {
		badRequest(w, "vibeText is required")
		return
	}

	rules := h.deps.Parser.ParseHeuristic(req.Vibe, req.explicit())
	writeJSON(w, http.StatusOK, rules)
}

// VibeParseAI handles POST /vibe/parse_ai. A model call or decode failure is
// an upstream error here; only a missing API key degrades to the keyword rules.
func (h *Handler) VibeParseAI(w http.ResponseWriter, r *http.Request) {
	var req vibeParseRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if req.Vibe == "" {
		badRequest(w, "vibeText is required")
		return
	}

	rules, err := h.deps.Parser.ParseStrict(r.Context(), req.Vibe, req.explicit())
	if err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, rules)
}

type vibeGenerateRequest struct {
	User  string `json:"user"`
	Vibe  string `json:"vibeText"`
	Count int    `json:"count"`
}

type vibeGenerateResponse struct {
	Tracks []domain.CandidateTrack `json:"tracks"`
	Count  int                     `json:"count"`
}

// VibeGenerate handles POST /vibe/generate: the ranked pipeline without the
// playlist write. Zero tracks is a 200 with an empty list.
func (h *Handler) VibeGenerate(w http.ResponseWriter, r *http.Request) {
	var req vibeGenerateRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if req.User == "" {
		badRequest(w, "user is required")
		return
	}
	if req.Vibe == "" {
		badRequest(w, "vibeText is required")
		return
	}

	tracks, err := h.deps.Orch.GenerateRanked(r.Context(), userKey(req.User), req.Vibe, req.Count)
	if err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, vibeGenerateResponse{Tracks: tracks, Count: len(tracks)})
}

type oneClickRequest struct {
	User        string `json:"user"`
	Vibe        string `json:"vibeText"`
	Count       int    `json:"count"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Public      *bool  `json:"public"`
}

func (req oneClickRequest) isPublic() bool {
	if req.Public == nil {
		return true
	}
	return *req.Public
}

type oneClickResponse struct {
	PlaylistID  string `json:"playlistId"`
	PlaylistURL string `json:"url"`
	Added       int    `json:"added"`
	Name        string `json:"name"`
}

// VibeOneClick handles POST /vibe/one_click: the full pipeline ending in a
// created playlist.
func (h *Handler) VibeOneClick(w http.ResponseWriter, r *http.Request) {
	var req oneClickRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if req.User == "" {
		badRequest(w, "user is required")
		return
	}
	if req.Vibe == "" {
		badRequest(w, "vibeText is required")
		return
	}

	result, err := h.deps.Orch.OneClick(r.Context(), userKey(req.User), req.Vibe, req.Name, req.Description, req.isPublic(), req.Count)
	if err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, oneClickResponse{
		PlaylistID:  result.Playlist.PlaylistID,
		PlaylistURL: result.Playlist.PlaylistURL,
		Added:       result.Playlist.Added,
		Name:        result.Name,
	})
}
