package spotify

import (
	"context"
	"fmt"
	"net/http"

	"github.com/vibelist-labs/vibelist/internal/core/domain"
)

// Me fetches the authenticated user's profile.
func (c *Client) Me(ctx context.Context, token string) (domain.UserProfile, error) {
	var profile wireProfile
	status, err := c.doJSON(ctx, token, http.MethodGet, c.baseURL+"/me", nil, &profile)
	if err != nil {
		return domain.UserProfile{}, err
	}
	if status != http.StatusOK {
		return domain.UserProfile{}, statusError("profile fetch", status)
	}
	return domain.UserProfile{ID: profile.ID, DisplayName: profile.DisplayName}, nil
}

// TopArtists fetches the user's top artists, capped at limit.
func (c *Client) TopArtists(ctx context.Context, token string, limit int) ([]domain.Artist, error) {
	if limit <= 0 {
		limit = 10
	}
	url := fmt.Sprintf("%s/me/top/artists?limit=%d", c.baseURL, limit)

	var body wireTopArtistsResponse
	status, err := c.doJSON(ctx, token, http.MethodGet, url, nil, &body)
	if err != nil {
		return nil, err
	}
	if status != http.StatusOK {
		return nil, statusError("top artists", status)
	}

	artists := make([]domain.Artist, 0, len(body.Items))
	for _, wa := range body.Items {
		artists = append(artists, mapArtistToDomain(wa))
	}
	return artists, nil
}
