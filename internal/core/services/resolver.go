package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/log"
	"golang.org/x/time/rate"

	"github.com/vibelist-labs/vibelist/internal/core/domain"
	"github.com/vibelist-labs/vibelist/internal/core/ports"
)

// resolveFloor keeps headroom above the requested count so the ranking stage
// can discard weak matches.
const resolveFloor = 20

// Resolver executes suggestion queries against catalog search, sequentially.
// Sequential matters: first-seen-order dedupe and the early-stop threshold
// both depend on it.
type Resolver struct {
	catalog ports.Catalog
	limiter *rate.Limiter
	logger  *log.Logger
}

// NewResolver constructs a Resolver. limiter may be nil to run unpaced.
func NewResolver(catalog ports.Catalog, limiter *rate.Limiter, logger *log.Logger) *Resolver {
	if logger == nil {
		logger = log.Default()
	}
	return &Resolver{catalog: catalog, limiter: limiter, logger: logger}
}

// Resolve searches each suggestion in order, keeping the first hit per query
// and deduplicating by track id. An expired token aborts immediately so the
// caller can prompt a re-login; every other per-query failure skips that
// suggestion. Stops early at max(count, 20) results.
func (r *Resolver) Resolve(ctx context.Context, token string, suggestions []domain.Suggestion, count int) ([]domain.CandidateTrack, error) {
	target := count
	if target < resolveFloor {
		target = resolveFloor
	}

	seen := make(map[string]struct{})
	results := make([]domain.CandidateTrack, 0, target)

	for _, s := range suggestions {
		query := strings.TrimSpace(strings.ReplaceAll(s.Query, `"`, ""))
		if query == "" {
			continue
		}

		if r.limiter != nil {
			if err := r.limiter.Wait(ctx); err != nil {
				return nil, fmt.Errorf("resolver: %w", err)
			}
		}

		track, ok, err := r.catalog.SearchTrack(ctx, token, query)
		if err != nil {
			if errors.Is(err, domain.ErrReauthRequired) {
				return nil, fmt.Errorf("resolver: %w", err)
			}
			r.logger.Warn("search failed, skipping suggestion", "query", query, "err", err)
			continue
		}
		if !ok {
			continue
		}

		if _, dup := seen[track.ID]; dup {
			continue
		}
		seen[track.ID] = struct{}{}
		results = append(results, track)

		if len(results) >= target {
			break
		}
	}

	return results, nil
}
