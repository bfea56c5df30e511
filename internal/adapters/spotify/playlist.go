package spotify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
)

// appendBatchCeiling is the API's per-call URI limit.
const appendBatchCeiling = 100

// CreatePlaylist creates an empty playlist owned by userID and returns its id
// and public URL.
func (c *Client) CreatePlaylist(ctx context.Context, token, userID, name, description string, public bool) (string, string, error) {
	payload, err := json.Marshal(createPlaylistRequest{
		Name:        name,
		Description: description,
		Public:      public,
	})
	if err != nil {
		return "", "", fmt.Errorf("spotify adapter: marshal playlist request: %w", err)
	}

	createURL := fmt.Sprintf("%s/users/%s/playlists", c.baseURL, url.PathEscape(userID))

	var pl wirePlaylist
	status, err := c.doJSON(ctx, token, http.MethodPost, createURL, bytes.NewReader(payload), &pl)
	if err != nil {
		return "", "", err
	}
	if status != http.StatusOK && status != http.StatusCreated {
		return "", "", statusError("playlist create", status)
	}
	return pl.ID, pl.ExternalURLs.Spotify, nil
}

// AddPlaylistTracks appends up to 100 track URIs to a playlist.
func (c *Client) AddPlaylistTracks(ctx context.Context, token, playlistID string, uris []string) error {
	if len(uris) == 0 {
		return nil
	}
	if len(uris) > appendBatchCeiling {
		return fmt.Errorf("spotify adapter: at most %d uris per append call, got %d", appendBatchCeiling, len(uris))
	}

	payload, err := json.Marshal(addTracksRequest{URIs: uris})
	if err != nil {
		return fmt.Errorf("spotify adapter: marshal append request: %w", err)
	}

	appendURL := fmt.Sprintf("%s/playlists/%s/tracks", c.baseURL, url.PathEscape(playlistID))

	status, err := c.doJSON(ctx, token, http.MethodPost, appendURL, bytes.NewReader(payload), nil)
	if err != nil {
		return err
	}
	if status != http.StatusOK && status != http.StatusCreated {
		return statusError("playlist append", status)
	}
	return nil
}
