package services

import (
	"context"
	"errors"
	"io"

	"github.com/charmbracelet/log"

	"github.com/vibelist-labs/vibelist/internal/core/domain"
	"github.com/vibelist-labs/vibelist/internal/core/ports"
)

func discardLogger() *log.Logger {
	return log.New(io.Discard)
}

// mockCatalog implements ports.Catalog with overridable function fields.
// Unset methods fail loudly so tests only exercise what they declare.
type mockCatalog struct {
	meFn         func(ctx context.Context, token string) (domain.UserProfile, error)
	topArtistsFn func(ctx context.Context, token string, limit int) ([]domain.Artist, error)
	searchFn     func(ctx context.Context, token, query string) (domain.CandidateTrack, bool, error)
	featuresFn   func(ctx context.Context, token string, ids []string) (map[string]domain.AudioFeatures, error)
	createFn     func(ctx context.Context, token, userID, name, description string, public bool) (string, string, error)
	addTracksFn  func(ctx context.Context, token, playlistID string, uris []string) error
}

var _ ports.Catalog = (*mockCatalog)(nil)

func (m *mockCatalog) Me(ctx context.Context, token string) (domain.UserProfile, error) {
	if m.meFn == nil {
		return domain.UserProfile{}, errors.New("unexpected Me call")
	}
	return m.meFn(ctx, token)
}

func (m *mockCatalog) TopArtists(ctx context.Context, token string, limit int) ([]domain.Artist, error) {
	if m.topArtistsFn == nil {
		return nil, errors.New("unexpected TopArtists call")
	}
	return m.topArtistsFn(ctx, token, limit)
}

func (m *mockCatalog) SearchTrack(ctx context.Context, token, query string) (domain.CandidateTrack, bool, error) {
	if m.searchFn == nil {
		return domain.CandidateTrack{}, false, errors.New("unexpected SearchTrack call")
	}
	return m.searchFn(ctx, token, query)
}

func (m *mockCatalog) AudioFeatures(ctx context.Context, token string, ids []string) (map[string]domain.AudioFeatures, error) {
	if m.featuresFn == nil {
		return nil, errors.New("unexpected AudioFeatures call")
	}
	return m.featuresFn(ctx, token, ids)
}

func (m *mockCatalog) CreatePlaylist(ctx context.Context, token, userID, name, description string, public bool) (string, string, error) {
	if m.createFn == nil {
		return "", "", errors.New("unexpected CreatePlaylist call")
	}
	return m.createFn(ctx, token, userID, name, description, public)
}

func (m *mockCatalog) AddPlaylistTracks(ctx context.Context, token, playlistID string, uris []string) error {
	if m.addTracksFn == nil {
		return errors.New("unexpected AddPlaylistTracks call")
	}
	return m.addTracksFn(ctx, token, playlistID, uris)
}

// mockLLM implements ports.ChatCompleter.
type mockLLM struct {
	completeFn func(ctx context.Context, system, user string, temperature float64) ([]byte, error)
}

var _ ports.ChatCompleter = (*mockLLM)(nil)

func (m *mockLLM) CompleteJSON(ctx context.Context, system, user string, temperature float64) ([]byte, error) {
	if m.completeFn == nil {
		return nil, errors.New("unexpected CompleteJSON call")
	}
	return m.completeFn(ctx, system, user, temperature)
}

// mockCredStore implements ports.CredentialStore over a plain map.
type mockCredStore struct {
	recs map[string]domain.CredentialRecord
}

var _ ports.CredentialStore = (*mockCredStore)(nil)

func (m *mockCredStore) Put(key string, rec domain.CredentialRecord) {
	if m.recs == nil {
		m.recs = make(map[string]domain.CredentialRecord)
	}
	m.recs[key] = rec
}

func (m *mockCredStore) Get(key string) (domain.CredentialRecord, bool) {
	rec, ok := m.recs[key]
	return rec, ok
}

// mockTasteStore implements ports.TasteStore returning a fixed profile.
type mockTasteStore struct {
	profile domain.TasteProfile
}

var _ ports.TasteStore = (*mockTasteStore)(nil)

func (m *mockTasteStore) Merge(key string, artists, genres []string) (int, int) {
	return len(artists), len(genres)
}

func (m *mockTasteStore) Get(key string) domain.TasteProfile {
	if m.profile.LikedArtists == nil {
		return domain.NewTasteProfile()
	}
	return m.profile
}
