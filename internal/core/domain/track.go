package domain

// Suggestion is a track hint produced by the suggester, prior to resolution.
// Query is intended for catalog text search.
type Suggestion struct {
	Title  string `json:"title"`
	Artist string `json:"artist"`
	Query  string `json:"query"`
}

// CandidateTrack is a resolved catalog track, prior to ranking.
// Identity is the catalog track ID.
type CandidateTrack struct {
	ID          string `json:"id"`
	URI         string `json:"uri"`
	Name        string `json:"name"`
	ArtistNames string `json:"artist"` // comma-separated display names
	ImageURL    string `json:"image,omitempty"`
	PreviewURL  string `json:"preview_url,omitempty"`
}

// Artist is a catalog artist with its genre tags, used as suggester context.
type Artist struct {
	ID     string   `json:"id"`
	Name   string   `json:"name"`
	Genres []string `json:"genres"`
}

// AudioFeatures holds the per-track descriptors used as ranking signals.
// A track absent from a feature map has no signal at all; a present vector
// always has all three axes populated (missing wire fields default to 0.5).
type AudioFeatures struct {
	Energy       float64 `json:"energy"`
	Valence      float64 `json:"valence"`
	Danceability float64 `json:"danceability"`
}
