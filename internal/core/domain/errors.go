package domain

import "errors"

// Error taxonomy shared by every layer. Handlers classify with errors.Is and
// map to a status code; services wrap these with component context.
var (
	// ErrInvalidState marks a missing code or an unknown/replayed OAuth state.
	ErrInvalidState = errors.New("domain: invalid state or code")

	// ErrNotAuthenticated means no credential record exists for the user.
	ErrNotAuthenticated = errors.New("domain: not authenticated")

	// ErrReauthRequired means the bearer token was rejected upstream.
	// Distinct from ErrNotAuthenticated: a record exists but is no longer valid.
	ErrReauthRequired = errors.New("domain: re-authentication required")

	// ErrUpstreamAuth covers token-exchange and profile-fetch failures during login.
	ErrUpstreamAuth = errors.New("domain: upstream authorization failure")

	// ErrUpstreamCall covers third-party call failures not classifiable above.
	ErrUpstreamCall = errors.New("domain: upstream call failure")

	// ErrNoCandidates means the pipeline produced zero usable tracks.
	ErrNoCandidates = errors.New("domain: no candidate tracks")
)
