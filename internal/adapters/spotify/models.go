package spotify

// Wire structs for the subset of the Web API we touch.

type wireImage struct {
	URL string `json:"url"`
}

type wireArtist struct {
	ID     string   `json:"id"`
	Name   string   `json:"name"`
	Genres []string `json:"genres"`
}

type wireAlbum struct {
	Name   string      `json:"name"`
	Images []wireImage `json:"images"`
}

type wireTrack struct {
	ID         string       `json:"id"`
	URI        string       `json:"uri"`
	Name       string       `json:"name"`
	Artists    []wireArtist `json:"artists"`
	Album      wireAlbum    `json:"album"`
	PreviewURL string       `json:"preview_url"`
}

type wireSearchResponse struct {
	Tracks struct {
		Items []wireTrack `json:"items"`
	} `json:"tracks"`
}

type wireTopArtistsResponse struct {
	Items []wireArtist `json:"items"`
}

type wireProfile struct {
	ID          string `json:"id"`
	DisplayName string `json:"display_name"`
}

// Pointer fields: the API omits axes it has no data for, and the mapper
// substitutes a neutral 0.5 for those.
type wireAudioFeatures struct {
	ID           string   `json:"id"`
	Energy       *float64 `json:"energy"`
	Valence      *float64 `json:"valence"`
	Danceability *float64 `json:"danceability"`
}

type wireAudioFeaturesResponse struct {
	AudioFeatures []*wireAudioFeatures `json:"audio_features"`
}

type createPlaylistRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Public      bool   `json:"public"`
}

type wirePlaylist struct {
	ID           string `json:"id"`
	ExternalURLs struct {
		Spotify string `json:"spotify"`
	} `json:"external_urls"`
}

type addTracksRequest struct {
	URIs []string `json:"uris"`
}
