package domain

import (
	"strings"
	"time"
)

// Provider namespaces user identities; only Spotify is wired today.
const ProviderSpotify = "spotify"

// UserKey builds the namespaced identity key, e.g. "spotify:abc123".
func UserKey(provider, externalID string) string {
	return provider + ":" + externalID
}

// CredentialRecord holds a user's tokens. One record per identity key,
// overwritten on re-login, never deleted during process lifetime.
type CredentialRecord struct {
	AccessToken  string
	RefreshToken string
	ExpiresAt    time.Time
	UserID       string
	DisplayName  string
}

// UserProfile is the authenticated catalog profile fetched right after login.
type UserProfile struct {
	ID          string `json:"id"`
	DisplayName string `json:"display_name"`
}

// TasteProfile accumulates a user's endorsed artists and genres.
// Grows monotonically by set union, keyed case-insensitively.
type TasteProfile struct {
	LikedArtists map[string]struct{}
	LikedGenres  map[string]struct{}
}

// NewTasteProfile returns an empty profile ready for merging.
func NewTasteProfile() TasteProfile {
	return TasteProfile{
		LikedArtists: make(map[string]struct{}),
		LikedGenres:  make(map[string]struct{}),
	}
}

// Merge unions the given names into the profile, lowercased and trimmed.
func (p TasteProfile) Merge(artists, genres []string) {
	for _, a := range artists {
		if name := strings.ToLower(strings.TrimSpace(a)); name != "" {
			p.LikedArtists[name] = struct{}{}
		}
	}
	for _, g := range genres {
		if name := strings.ToLower(strings.TrimSpace(g)); name != "" {
			p.LikedGenres[name] = struct{}{}
		}
	}
}
