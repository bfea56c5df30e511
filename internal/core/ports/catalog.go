package ports

import (
	"context"
	"errors"

	"github.com/vibelist-labs/vibelist/internal/core/domain"
)

// ErrFeatureAccessDenied indicates the catalog refused audio-feature access
// (a permissions denial, not an expired token). Callers forfeit enrichment
// and keep going.
var ErrFeatureAccessDenied = errors.New("catalog: audio feature access denied")

// Catalog is the third-party music catalog boundary. Every call carries the
// user's bearer token; implementations map a 401 to domain.ErrReauthRequired.
type Catalog interface {
	// Me fetches the authenticated user's profile.
	Me(ctx context.Context, token string) (domain.UserProfile, error)

	// TopArtists fetches the user's top artists, capped at limit.
	TopArtists(ctx context.Context, token string, limit int) ([]domain.Artist, error)

	// SearchTrack runs a single-result text search. ok is false when the
	// query produced no hits.
	SearchTrack(ctx context.Context, token, query string) (track domain.CandidateTrack, ok bool, err error)

	// AudioFeatures batch-fetches descriptors for up to 100 track ids.
	// Tracks the catalog has no data for are absent from the result.
	AudioFeatures(ctx context.Context, token string, ids []string) (map[string]domain.AudioFeatures, error)

	// CreatePlaylist creates an empty playlist owned by userID.
	CreatePlaylist(ctx context.Context, token, userID, name, description string, public bool) (id, url string, err error)

	// AddPlaylistTracks appends up to 100 track URIs to a playlist.
	AddPlaylistTracks(ctx context.Context, token, playlistID string, uris []string) error
}
