package spotify

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/vibelist-labs/vibelist/internal/core/domain"
)

// searchMarket scopes text search to a fixed market.
const searchMarket = "US"

// SearchTrack runs a single-result track search. ok is false when the query
// produced no hits; that is a normal outcome, not an error.
func (c *Client) SearchTrack(ctx context.Context, token, query string) (domain.CandidateTrack, bool, error) {
	searchURL, err := url.Parse(c.baseURL + "/search")
	if err != nil {
		return domain.CandidateTrack{}, false, fmt.Errorf("spotify adapter: invalid search url: %w", err)
	}

	params := searchURL.Query()
	params.Set("q", query)
	params.Set("type", "track")
	params.Set("limit", "1")
	params.Set("market", searchMarket)
	searchURL.RawQuery = params.Encode()

	var body wireSearchResponse
	status, err := c.doJSON(ctx, token, http.MethodGet, searchURL.String(), nil, &body)
	if err != nil {
		return domain.CandidateTrack{}, false, err
	}
	if status != http.StatusOK {
		return domain.CandidateTrack{}, false, statusError("search", status)
	}

	if len(body.Tracks.Items) == 0 {
		return domain.CandidateTrack{}, false, nil
	}
	return mapTrackToDomain(body.Tracks.Items[0]), true, nil
}
