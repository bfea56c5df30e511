// Package auth implements the PKCE authorization-code flow against the
// catalog's accounts service. Pending verifiers live in a single-use state
// store; completed logins land in the credential store keyed by
// "spotify:<user id>".
package auth

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"golang.org/x/oauth2"

	"github.com/vibelist-labs/vibelist/internal/config"
	"github.com/vibelist-labs/vibelist/internal/core/domain"
	"github.com/vibelist-labs/vibelist/internal/core/ports"
)

// Endpoint is the production accounts service.
var Endpoint = oauth2.Endpoint{
	AuthURL:  "https://accounts.spotify.com/authorize",
	TokenURL: "https://accounts.spotify.com/api/token",
}

// OAuthConfig builds the oauth2 configuration from app settings.
func OAuthConfig(cfg config.SpotifyConfig, endpoint oauth2.Endpoint) *oauth2.Config {
	return &oauth2.Config{
		ClientID:     cfg.ClientID,
		ClientSecret: cfg.ClientSecret,
		RedirectURL:  cfg.RedirectURI,
		Scopes:       strings.Fields(cfg.Scopes),
		Endpoint:     endpoint,
	}
}

// Flow drives login initiation and callback completion.
type Flow struct {
	conf    *oauth2.Config
	states  ports.AuthStateStore
	creds   ports.CredentialStore
	catalog ports.Catalog
	logger  *log.Logger
}

// NewFlow constructs a Flow.
func NewFlow(conf *oauth2.Config, states ports.AuthStateStore, creds ports.CredentialStore, catalog ports.Catalog, logger *log.Logger) *Flow {
	if logger == nil {
		logger = log.Default()
	}
	return &Flow{
		conf:    conf,
		states:  states,
		creds:   creds,
		catalog: catalog,
		logger:  logger,
	}
}

// BeginLogin generates the verifier/challenge pair and an unguessable state
// token, stores the verifier keyed by state, and returns the authorization
// URL to redirect the user to.
func (f *Flow) BeginLogin() (redirectURL, state string) {
	state = uuid.NewString()
	verifier := oauth2.GenerateVerifier()
	f.states.Put(state, verifier)

	redirectURL = f.conf.AuthCodeURL(state, oauth2.S256ChallengeOption(verifier))
	return redirectURL, state
}

// CompleteLogin exchanges the authorization code for tokens using the stored
// verifier, fetches the user's profile with the fresh access token, and
// stores the credential record. The state entry is consumed on lookup, so a
// replayed callback fails with domain.ErrInvalidState.
func (f *Flow) CompleteLogin(ctx context.Context, code, state string) (domain.CredentialRecord, error) {
	if code == "" || state == "" {
		return domain.CredentialRecord{}, domain.ErrInvalidState
	}

	verifier, ok := f.states.Take(state)
	if !ok {
		return domain.CredentialRecord{}, domain.ErrInvalidState
	}

	token, err := f.conf.Exchange(ctx, code, oauth2.VerifierOption(verifier))
	if err != nil {
		f.logger.Warn("token exchange failed", "err", err)
		return domain.CredentialRecord{}, fmt.Errorf("auth: token exchange: %w", domain.ErrUpstreamAuth)
	}

	profile, err := f.catalog.Me(ctx, token.AccessToken)
	if err != nil {
		f.logger.Warn("profile fetch failed after exchange", "err", err)
		return domain.CredentialRecord{}, fmt.Errorf("auth: profile fetch: %w", domain.ErrUpstreamAuth)
	}

	rec := domain.CredentialRecord{
		AccessToken:  token.AccessToken,
		RefreshToken: token.RefreshToken,
		ExpiresAt:    token.Expiry,
		UserID:       profile.ID,
		DisplayName:  profile.DisplayName,
	}
	f.creds.Put(domain.UserKey(domain.ProviderSpotify, profile.ID), rec)

	f.logger.Info("login completed", "user", profile.ID)
	return rec, nil
}
