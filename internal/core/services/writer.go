package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/charmbracelet/log"

	"github.com/vibelist-labs/vibelist/internal/core/domain"
	"github.com/vibelist-labs/vibelist/internal/core/ports"
)

const appendChunkSize = 100

// Writer creates playlists on the user's account and fills them in batches.
type Writer struct {
	catalog ports.Catalog
	creds   ports.CredentialStore
	logger  *log.Logger
}

func NewWriter(catalog ports.Catalog, creds ports.CredentialStore, logger *log.Logger) *Writer {
	if logger == nil {
		logger = log.Default()
	}
	return &Writer{catalog: catalog, creds: creds, logger: logger}
}

// Create makes a new playlist and appends the given track URIs in chunks.
// Malformed URIs are dropped before writing. An empty URI list still creates
// the playlist. An auth failure mid-append aborts and reports how many tracks
// made it in before the failure; other chunk failures are skipped.
func (w *Writer) Create(ctx context.Context, userKey, name, description string, public bool, trackURIs []string) (domain.PlaylistResult, error) {
	rec, ok := w.creds.Get(userKey)
	if !ok {
		return domain.PlaylistResult{}, fmt.Errorf("writer: %w", domain.ErrNotAuthenticated)
	}

	uris := domain.FilterTrackURIs(trackURIs)
	if dropped := len(trackURIs) - len(uris); dropped > 0 {
		w.logger.Warn("dropped malformed track uris", "count", dropped)
	}

	playlistID, playlistURL, err := w.catalog.CreatePlaylist(ctx, rec.AccessToken, rec.UserID, name, description, public)
	if err != nil {
		return domain.PlaylistResult{}, fmt.Errorf("writer: create playlist: %w", err)
	}

	added := 0
	for start := 0; start < len(uris); start += appendChunkSize {
		end := start + appendChunkSize
		if end > len(uris) {
			end = len(uris)
		}
		chunk := uris[start:end]
		if err := w.catalog.AddPlaylistTracks(ctx, rec.AccessToken, playlistID, chunk); err != nil {
			if errors.Is(err, domain.ErrReauthRequired) {
				return domain.PlaylistResult{}, fmt.Errorf("writer: appended %d of %d tracks: %w", added, len(uris), err)
			}
			w.logger.Warn("playlist append chunk failed", "playlist", playlistID, "size", len(chunk), "err", err)
			continue
		}
		added += len(chunk)
	}

	return domain.PlaylistResult{PlaylistID: playlistID, PlaylistURL: playlistURL, Added: added}, nil
}
