package spotify

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/vibelist-labs/vibelist/internal/core/domain"
	"github.com/vibelist-labs/vibelist/internal/core/ports"
)

// featureBatchCeiling is the API's per-call id limit.
const featureBatchCeiling = 100

// AudioFeatures batch-fetches descriptors for up to 100 track ids. A 403
// becomes ports.ErrFeatureAccessDenied so the caller can forfeit enrichment;
// null entries (tracks the catalog has no data for) are absent from the map.
func (c *Client) AudioFeatures(ctx context.Context, token string, ids []string) (map[string]domain.AudioFeatures, error) {
	if len(ids) == 0 {
		return map[string]domain.AudioFeatures{}, nil
	}
	if len(ids) > featureBatchCeiling {
		return nil, fmt.Errorf("spotify adapter: at most %d ids per features call, got %d", featureBatchCeiling, len(ids))
	}

	featuresURL, err := url.Parse(c.baseURL + "/audio-features")
	if err != nil {
		return nil, fmt.Errorf("spotify adapter: invalid features url: %w", err)
	}
	params := featuresURL.Query()
	params.Set("ids", strings.Join(ids, ","))
	featuresURL.RawQuery = params.Encode()

	var body wireAudioFeaturesResponse
	status, err := c.doJSON(ctx, token, http.MethodGet, featuresURL.String(), nil, &body)
	if err != nil {
		return nil, err
	}
	switch {
	case status == http.StatusForbidden:
		return nil, fmt.Errorf("spotify adapter: features: %w", ports.ErrFeatureAccessDenied)
	case status != http.StatusOK:
		return nil, statusError("features", status)
	}

	features := make(map[string]domain.AudioFeatures, len(body.AudioFeatures))
	for _, wf := range body.AudioFeatures {
		if wf == nil || wf.ID == "" {
			continue
		}
		features[wf.ID] = mapFeaturesToDomain(*wf)
	}
	return features, nil
}
