package spotify_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/vibelist-labs/vibelist/internal/adapters/spotify"
	"github.com/vibelist-labs/vibelist/internal/core/domain"
	"github.com/vibelist-labs/vibelist/internal/core/ports"
)

func newTestClient(ts *httptest.Server) *spotify.Client {
	return spotify.NewClient(http.DefaultClient, ts.URL, nil)
}

func TestSearchTrack(t *testing.T) {
	tests := []struct {
		name       string
		statusCode int
		response   string
		wantTrack  domain.CandidateTrack
		wantOK     bool
		wantErr    error
	}{
		{
			name:       "first hit mapped",
			statusCode: http.StatusOK,
			response: `{
				"tracks": {
					"items": [
						{
							"id": "trk1",
							"uri": "spotify:track:trk1",
							"name": "Night Cruise",
							"preview_url": "http://cdn/p.mp3",
							"artists": [ { "name": "Aera" }, { "name": "Bices" } ],
							"album": { "name": "Roads", "images": [ { "url": "http://img/1.jpg" } ] }
						}
					]
				}
			}`,
			wantTrack: domain.CandidateTrack{
				ID:          "trk1",
				URI:         "spotify:track:trk1",
				Name:        "Night Cruise",
				ArtistNames: "Aera, Bices",
				ImageURL:    "http://img/1.jpg",
				PreviewURL:  "http://cdn/p.mp3",
			},
			wantOK: true,
		},
		{
			name:       "no hits is not an error",
			statusCode: http.StatusOK,
			response:   `{ "tracks": { "items": [] } }`,
			wantOK:     false,
		},
		{
			name:       "expired token surfaces reauth",
			statusCode: http.StatusUnauthorized,
			response:   `{ "error": { "status": 401 } }`,
			wantErr:    domain.ErrReauthRequired,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				if r.URL.Path != "/search" {
					t.Errorf("expected path /search, got %s", r.URL.Path)
				}
				if got := r.URL.Query().Get("limit"); got != "1" {
					t.Errorf("expected limit=1, got %s", got)
				}
				if got := r.URL.Query().Get("market"); got != "US" {
					t.Errorf("expected market=US, got %s", got)
				}
				if got := r.Header.Get("Authorization"); got != "Bearer tok" {
					t.Errorf("expected bearer token, got %q", got)
				}
				w.WriteHeader(tc.statusCode)
				w.Write([]byte(tc.response))
			}))
			defer ts.Close()

			track, ok, err := newTestClient(ts).SearchTrack(context.Background(), "tok", "aera night cruise")
			if tc.wantErr != nil {
				if !errors.Is(err, tc.wantErr) {
					t.Fatalf("got error %v, want %v", err, tc.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if ok != tc.wantOK {
				t.Fatalf("got ok=%v, want %v", ok, tc.wantOK)
			}
			if ok && track != tc.wantTrack {
				t.Fatalf("got %+v, want %+v", track, tc.wantTrack)
			}
		})
	}
}

func TestAudioFeatures(t *testing.T) {
	tests := []struct {
		name       string
		ids        []string
		statusCode int
		response   string
		wantLen    int
		wantErr    error
	}{
		{
			name:       "null entries skipped and missing axes neutral",
			ids:        []string{"a", "b", "c"},
			statusCode: http.StatusOK,
			response: `{ "audio_features": [
				{ "id": "a", "energy": 0.9, "valence": 0.7, "danceability": 0.8 },
				null,
				{ "id": "c", "energy": 0.2 }
			] }`,
			wantLen: 2,
		},
		{
			name:       "permission denial is a typed error",
			ids:        []string{"a"},
			statusCode: http.StatusForbidden,
			response:   `{ "error": { "status": 403 } }`,
			wantErr:    ports.ErrFeatureAccessDenied,
		},
		{
			name:       "expired token surfaces reauth",
			ids:        []string{"a"},
			statusCode: http.StatusUnauthorized,
			response:   `{}`,
			wantErr:    domain.ErrReauthRequired,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				if r.URL.Path != "/audio-features" {
					t.Errorf("expected path /audio-features, got %s", r.URL.Path)
				}
				w.WriteHeader(tc.statusCode)
				w.Write([]byte(tc.response))
			}))
			defer ts.Close()

			features, err := newTestClient(ts).AudioFeatures(context.Background(), "tok", tc.ids)
			if tc.wantErr != nil {
				if !errors.Is(err, tc.wantErr) {
					t.Fatalf("got error %v, want %v", err, tc.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if len(features) != tc.wantLen {
				t.Fatalf("got %d features, want %d", len(features), tc.wantLen)
			}
			if f, ok := features["c"]; ok {
				if f.Valence != 0.5 || f.Danceability != 0.5 {
					t.Fatalf("missing axes must default to 0.5, got %+v", f)
				}
				if f.Energy != 0.2 {
					t.Fatalf("present axis must survive, got %v", f.Energy)
				}
			}
		})
	}
}

func TestAudioFeatures_EmptyInputMakesNoCall(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("no request expected for empty input")
	}))
	defer ts.Close()

	features, err := newTestClient(ts).AudioFeatures(context.Background(), "tok", nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(features) != 0 {
		t.Fatalf("expected empty map, got %d entries", len(features))
	}
}

func TestAudioFeatures_RejectsOversizeBatch(t *testing.T) {
	ids := make([]string, 101)
	for i := range ids {
		ids[i] = "id"
	}
	client := spotify.NewClient(http.DefaultClient, "http://unused", nil)
	if _, err := client.AudioFeatures(context.Background(), "tok", ids); err == nil {
		t.Fatal("expected an error for >100 ids")
	}
}

func TestCreatePlaylistAndAppend(t *testing.T) {
	var gotCreate createBody
	var appendCalls [][]string

	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/users/user1/playlists":
			if err := json.NewDecoder(r.Body).Decode(&gotCreate); err != nil {
				t.Fatalf("decode create body: %v", err)
			}
			w.WriteHeader(http.StatusCreated)
			w.Write([]byte(`{ "id": "pl1", "external_urls": { "spotify": "https://open.spotify.com/playlist/pl1" } }`))
		case "/playlists/pl1/tracks":
			var body struct {
				URIs []string `json:"uris"`
			}
			if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
				t.Fatalf("decode append body: %v", err)
			}
			appendCalls = append(appendCalls, body.URIs)
			w.WriteHeader(http.StatusCreated)
			w.Write([]byte(`{ "snapshot_id": "snap" }`))
		default:
			t.Errorf("unexpected path %s", r.URL.Path)
		}
	}))
	defer ts.Close()

	client := newTestClient(ts)
	id, url, err := client.CreatePlaylist(context.Background(), "tok", "user1", "Party Mix", "for the vibe", true)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if id != "pl1" || url != "https://open.spotify.com/playlist/pl1" {
		t.Fatalf("got (%q, %q)", id, url)
	}
	if gotCreate.Name != "Party Mix" || !gotCreate.Public {
		t.Fatalf("create body mismatch: %+v", gotCreate)
	}

	if err := client.AddPlaylistTracks(context.Background(), "tok", "pl1", []string{"spotify:track:1", "spotify:track:2"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(appendCalls) != 1 || len(appendCalls[0]) != 2 {
		t.Fatalf("append calls: %v", appendCalls)
	}
}

type createBody struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Public      bool   `json:"public"`
}

func TestMe(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/me" {
			t.Errorf("expected path /me, got %s", r.URL.Path)
		}
		w.Write([]byte(`{ "id": "user1", "display_name": "Dana" }`))
	}))
	defer ts.Close()

	profile, err := newTestClient(ts).Me(context.Background(), "tok")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if profile.ID != "user1" || profile.DisplayName != "Dana" {
		t.Fatalf("got %+v", profile)
	}
}

func TestTopArtists_Unauthorized(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer ts.Close()

	if _, err := newTestClient(ts).TopArtists(context.Background(), "tok", 12); !errors.Is(err, domain.ErrReauthRequired) {
		t.Fatalf("got %v, want ErrReauthRequired", err)
	}
}
