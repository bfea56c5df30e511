package auth_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"golang.org/x/oauth2"

	"github.com/vibelist-labs/vibelist/internal/auth"
	"github.com/vibelist-labs/vibelist/internal/config"
	"github.com/vibelist-labs/vibelist/internal/core/domain"
	"github.com/vibelist-labs/vibelist/internal/store"
)

type fakeCatalog struct {
	profile domain.UserProfile
	err     error
}

func (f *fakeCatalog) Me(ctx context.Context, token string) (domain.UserProfile, error) {
	if f.err != nil {
		return domain.UserProfile{}, f.err
	}
	return f.profile, nil
}

func (f *fakeCatalog) TopArtists(ctx context.Context, token string, limit int) ([]domain.Artist, error) {
	return nil, nil
}

func (f *fakeCatalog) SearchTrack(ctx context.Context, token, query string) (domain.CandidateTrack, bool, error) {
	return domain.CandidateTrack{}, false, nil
}

func (f *fakeCatalog) AudioFeatures(ctx context.Context, token string, ids []string) (map[string]domain.AudioFeatures, error) {
	return nil, nil
}

func (f *fakeCatalog) CreatePlaylist(ctx context.Context, token, userID, name, description string, public bool) (string, string, error) {
	return "", "", nil
}

func (f *fakeCatalog) AddPlaylistTracks(ctx context.Context, token, playlistID string, uris []string) error {
	return nil
}

func newFlow(t *testing.T, tokenURL string, catalog *fakeCatalog) (*auth.Flow, *store.Credentials) {
	t.Helper()
	conf := auth.OAuthConfig(config.SpotifyConfig{
		ClientID:     "client-id",
		ClientSecret: "client-secret",
		RedirectURI:  "http://127.0.0.1:3001/auth/callback",
		Scopes:       "user-top-read playlist-modify-public",
	}, oauth2.Endpoint{AuthURL: "http://auth.test/authorize", TokenURL: tokenURL})
	creds := store.NewCredentials()
	return auth.NewFlow(conf, store.NewAuthStates(), creds, catalog, nil), creds
}

func TestBeginLogin_URLShape(t *testing.T) {
	flow, _ := newFlow(t, "http://token.test", &fakeCatalog{})

	redirectURL, state := flow.BeginLogin()
	u, err := url.Parse(redirectURL)
	if err != nil {
		t.Fatalf("parse redirect url: %v", err)
	}

	q := u.Query()
	if q.Get("state") != state {
		t.Fatalf("state param %q != returned state %q", q.Get("state"), state)
	}
	if q.Get("code_challenge_method") != "S256" {
		t.Fatalf("got challenge method %q", q.Get("code_challenge_method"))
	}
	if len(q.Get("code_challenge")) < 43 {
		t.Fatalf("challenge too short: %q", q.Get("code_challenge"))
	}
	if q.Get("client_id") != "client-id" {
		t.Fatalf("got client_id %q", q.Get("client_id"))
	}
	if q.Get("redirect_uri") == "" || q.Get("scope") == "" {
		t.Fatal("missing redirect_uri or scope")
	}
}

func TestCompleteLogin(t *testing.T) {
	var sawVerifier string
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseForm(); err != nil {
			t.Fatalf("parse form: %v", err)
		}
		if got := r.Form.Get("grant_type"); got != "authorization_code" {
			t.Errorf("got grant_type %q", got)
		}
		sawVerifier = r.Form.Get("code_verifier")
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{ "access_token": "at-1", "refresh_token": "rt-1", "expires_in": 3600, "token_type": "Bearer" }`))
	}))
	defer ts.Close()

	catalog := &fakeCatalog{profile: domain.UserProfile{ID: "user1", DisplayName: "Dana"}}
	flow, creds := newFlow(t, ts.URL, catalog)

	_, state := flow.BeginLogin()

	rec, err := flow.CompleteLogin(context.Background(), "code-1", state)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.AccessToken != "at-1" || rec.UserID != "user1" {
		t.Fatalf("got record %+v", rec)
	}
	if len(sawVerifier) < 43 {
		t.Fatalf("exchange must carry the verifier, got %q", sawVerifier)
	}

	stored, ok := creds.Get(domain.UserKey(domain.ProviderSpotify, "user1"))
	if !ok || stored.AccessToken != "at-1" {
		t.Fatalf("credential record not stored: %+v ok=%v", stored, ok)
	}

	// State is single-use: the same callback replayed must fail.
	if _, err := flow.CompleteLogin(context.Background(), "code-1", state); !errors.Is(err, domain.ErrInvalidState) {
		t.Fatalf("replay: got %v, want ErrInvalidState", err)
	}
}

func TestCompleteLogin_InvalidInput(t *testing.T) {
	flow, _ := newFlow(t, "http://token.test", &fakeCatalog{})

	tests := []struct {
		name  string
		code  string
		state string
	}{
		{name: "missing code", code: "", state: "some-state"},
		{name: "missing state", code: "code", state: ""},
		{name: "unknown state", code: "code", state: "never-issued"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := flow.CompleteLogin(context.Background(), tc.code, tc.state); !errors.Is(err, domain.ErrInvalidState) {
				t.Fatalf("got %v, want ErrInvalidState", err)
			}
		})
	}
}

func TestCompleteLogin_UpstreamFailures(t *testing.T) {
	t.Run("exchange rejected", func(t *testing.T) {
		ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadRequest)
			w.Write([]byte(`{ "error": "invalid_grant" }`))
		}))
		defer ts.Close()

		flow, _ := newFlow(t, ts.URL, &fakeCatalog{})
		_, state := flow.BeginLogin()
		if _, err := flow.CompleteLogin(context.Background(), "bad-code", state); !errors.Is(err, domain.ErrUpstreamAuth) {
			t.Fatalf("got %v, want ErrUpstreamAuth", err)
		}
	})

	t.Run("profile fetch fails", func(t *testing.T) {
		ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			w.Write([]byte(`{ "access_token": "at-1", "token_type": "Bearer" }`))
		}))
		defer ts.Close()

		flow, _ := newFlow(t, ts.URL, &fakeCatalog{err: errors.New("boom")})
		_, state := flow.BeginLogin()
		if _, err := flow.CompleteLogin(context.Background(), "code", state); !errors.Is(err, domain.ErrUpstreamAuth) {
			t.Fatalf("got %v, want ErrUpstreamAuth", err)
		}
	})
}
