package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vibelist-labs/vibelist/internal/core/domain"
	"github.com/vibelist-labs/vibelist/internal/core/ports"
)

const (
	defaultTrackCount = 20
	topArtistLimit    = 12
)

// Orchestrator runs the full vibe-to-playlist pipeline: suggest candidates,
// resolve them against the catalog, enrich with audio features, rank, and
// optionally write the result out as a playlist.
type Orchestrator struct {
	creds     ports.CredentialStore
	taste     ports.TasteStore
	catalog   ports.Catalog
	suggester *Suggester
	resolver  *Resolver
	features  *FeatureFetcher
	writer    *Writer
	logger    *log.Logger
	now       func() time.Time
}

func NewOrchestrator(
	creds ports.CredentialStore,
	taste ports.TasteStore,
	catalog ports.Catalog,
	suggester *Suggester,
	resolver *Resolver,
	features *FeatureFetcher,
	writer *Writer,
	logger *log.Logger,
) *Orchestrator {
	if logger == nil {
		logger = log.Default()
	}
	return &Orchestrator{
		creds:     creds,
		taste:     taste,
		catalog:   catalog,
		suggester: suggester,
		resolver:  resolver,
		features:  features,
		writer:    writer,
		logger:    logger,
		now:       time.Now,
	}
}

// GenerateRanked produces up to count ranked tracks for the vibe. A result
// with zero tracks is valid; the caller decides whether that is an error.
func (o *Orchestrator) GenerateRanked(ctx context.Context, userKey, vibe string, count int) ([]domain.CandidateTrack, error) {
	if count <= 0 {
		count = defaultTrackCount
	}

	rec, ok := o.creds.Get(userKey)
	if !ok {
		return nil, fmt.Errorf("generate: %w", domain.ErrNotAuthenticated)
	}

	topArtists, err := o.catalog.TopArtists(ctx, rec.AccessToken, topArtistLimit)
	if err != nil {
		return nil, fmt.Errorf("generate: top artists: %w", err)
	}

	suggestions := o.suggester.Suggest(ctx, vibe, count, topArtists)

	tracks, err := o.resolver.Resolve(ctx, rec.AccessToken, suggestions, count)
	if err != nil {
		return nil, fmt.Errorf("generate: %w", err)
	}
	if len(tracks) == 0 {
		return []domain.CandidateTrack{}, nil
	}

	ids := make([]string, len(tracks))
	for i, t := range tracks {
		ids[i] = t.ID
	}
	featureMap, err := o.features.Fetch(ctx, rec.AccessToken, ids)
	if err != nil {
		return nil, fmt.Errorf("generate: %w", err)
	}

	rc := RankContext{
		TopArtists:   artistNameSet(topArtists),
		LikedArtists: o.taste.Get(userKey).LikedArtists,
		Profile:      TargetProfileFor(vibe),
	}
	return Rank(tracks, featureMap, rc, count), nil
}

// OneClickResult is the outcome of the end-to-end pipeline including the
// playlist write.
type OneClickResult struct {
	Playlist domain.PlaylistResult
	Name     string
	Tracks   []domain.CandidateTrack
}

// OneClick runs the full pipeline and writes the ranked tracks to a new
// playlist. An empty name gets a default derived from the vibe and wall
// clock. No resolvable candidates is an error here, unlike GenerateRanked.
func (o *Orchestrator) OneClick(ctx context.Context, userKey, vibe, name, description string, public bool, count int) (OneClickResult, error) {
	tracks, err := o.GenerateRanked(ctx, userKey, vibe, count)
	if err != nil {
		return OneClickResult{}, err
	}
	if len(tracks) == 0 {
		return OneClickResult{}, fmt.Errorf("one click: %w", domain.ErrNoCandidates)
	}

	if strings.TrimSpace(name) == "" {
		name = vibe + " – " + o.now().Format("2006-01-02 15:04")
	}
	if strings.TrimSpace(description) == "" {
		description = fmt.Sprintf("Generated from the vibe %q", vibe)
	}

	uris := make([]string, len(tracks))
	for i, t := range tracks {
		uris[i] = t.URI
	}

	result, err := o.writer.Create(ctx, userKey, name, description, public, uris)
	if err != nil {
		return OneClickResult{}, err
	}

	o.logger.Info("one-click playlist created", "playlist", result.PlaylistID, "added", result.Added)
	return OneClickResult{Playlist: result, Name: name, Tracks: tracks}, nil
}

func artistNameSet(artists []domain.Artist) map[string]struct{} {
	set := make(map[string]struct{}, len(artists))
	for _, a := range artists {
		set[strings.ToLower(a.Name)] = struct{}{}
	}
	return set
}
