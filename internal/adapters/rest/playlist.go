package rest

import "net/http"

type createFromTracksRequest struct {
	User        string   `json:"user"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Public      *bool    `json:"public"`
	TrackURIs   []string `json:"trackUris"`
}

// Playlists are public unless the request says otherwise.
func (req createFromTracksRequest) isPublic() bool {
	if req.Public == nil {
		return true
	}
	return *req.Public
}

// PlaylistCreate handles POST /playlist/create_from_tracks.
func (h *Handler) PlaylistCreate(w http.ResponseWriter, r *http.Request) {
	var req createFromTracksRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if req.User == "" {
		badRequest(w, "user is required")
		return
	}
	if req.Name == "" {
		badRequest(w, "name is required")
		return
	}

	result, err := h.deps.Writer.Create(r.Context(), userKey(req.User), req.Name, req.Description, req.isPublic(), req.TrackURIs)
	if err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}
