package rest

import (
	"net/http"
	"net/url"
)

// AuthLogin handles GET /auth/login: redirect to the provider's consent page.
func (h *Handler) AuthLogin(w http.ResponseWriter, r *http.Request) {
	redirectURL, _ := h.deps.Flow.BeginLogin()
	http.Redirect(w, r, redirectURL, http.StatusFound)
}

// AuthCallback handles GET /auth/callback: complete the code exchange and
// hand the browser back to the web frontend with the user id attached.
func (h *Handler) AuthCallback(w http.ResponseWriter, r *http.Request) {
	code := r.URL.Query().Get("code")
	state := r.URL.Query().Get("state")

	rec, err := h.deps.Flow.CompleteLogin(r.Context(), code, state)
	if err != nil {
		h.writeError(w, err)
		return
	}

	if h.deps.WebOrigin != "" {
		target := h.deps.WebOrigin + "/?user=" + url.QueryEscape(rec.UserID)
		http.Redirect(w, r, target, http.StatusFound)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{
		"user":        rec.UserID,
		"displayName": rec.DisplayName,
	})
}
