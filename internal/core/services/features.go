package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/charmbracelet/log"

	"github.com/vibelist-labs/vibelist/internal/core/domain"
	"github.com/vibelist-labs/vibelist/internal/core/ports"
)

// featureChunkSize is the catalog API's batch ceiling.
const featureChunkSize = 100

// FeatureFetcher batch-fetches audio descriptors with an all-or-nothing
// policy: any non-auth failure collapses the whole result to an empty map so
// the ranker falls back to overlap signals alone.
type FeatureFetcher struct {
	catalog ports.Catalog
	logger  *log.Logger
}

// NewFeatureFetcher constructs a FeatureFetcher.
func NewFeatureFetcher(catalog ports.Catalog, logger *log.Logger) *FeatureFetcher {
	if logger == nil {
		logger = log.Default()
	}
	return &FeatureFetcher{catalog: catalog, logger: logger}
}

// Fetch returns descriptors keyed by track id. Empty input makes no call.
// An expired token propagates; a permissions denial or any other chunk
// failure yields an empty map and no error.
func (f *FeatureFetcher) Fetch(ctx context.Context, token string, ids []string) (map[string]domain.AudioFeatures, error) {
	features := make(map[string]domain.AudioFeatures, len(ids))
	if len(ids) == 0 {
		return features, nil
	}

	for start := 0; start < len(ids); start += featureChunkSize {
		end := start + featureChunkSize
		if end > len(ids) {
			end = len(ids)
		}

		chunk, err := f.catalog.AudioFeatures(ctx, token, ids[start:end])
		if err != nil {
			if errors.Is(err, domain.ErrReauthRequired) {
				return nil, fmt.Errorf("features: %w", err)
			}
			if errors.Is(err, ports.ErrFeatureAccessDenied) {
				f.logger.Warn("audio feature access denied, ranking without enrichment")
			} else {
				f.logger.Warn("feature fetch degraded to empty", "err", err)
			}
			return map[string]domain.AudioFeatures{}, nil
		}

		for id, af := range chunk {
			features[id] = af
		}
	}

	return features, nil
}
