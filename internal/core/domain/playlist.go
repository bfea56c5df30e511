package domain

import "strings"

// TrackURIPrefix is the catalog's track-URI scheme. Entries not matching it
// are silently dropped before playlist writes.
const TrackURIPrefix = "spotify:track:"

// IsTrackURI reports whether uri uses the track-URI scheme.
func IsTrackURI(uri string) bool {
	return strings.HasPrefix(uri, TrackURIPrefix)
}

// FilterTrackURIs keeps only valid track URIs, preserving order.
func FilterTrackURIs(uris []string) []string {
	out := make([]string, 0, len(uris))
	for _, u := range uris {
		if IsTrackURI(u) {
			out = append(out, u)
		}
	}
	return out
}

// PlaylistResult is the outcome of a playlist creation. Not retained in
// process state; constructed once per create call.
type PlaylistResult struct {
	PlaylistID  string `json:"playlistId"`
	PlaylistURL string `json:"url"`
	Added       int    `json:"added"`
}
