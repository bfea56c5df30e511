package ports

import "github.com/vibelist-labs/vibelist/internal/core/domain"

// AuthStateStore holds pending PKCE verifiers keyed by state token.
// Entries are single-use: Take removes on lookup.
type AuthStateStore interface {
	Put(state, verifier string)
	Take(state string) (verifier string, ok bool)
}

// CredentialStore maps identity keys to credential records. Last login wins.
type CredentialStore interface {
	Put(key string, rec domain.CredentialRecord)
	Get(key string) (domain.CredentialRecord, bool)
}

// TasteStore accumulates liked artists/genres per identity key.
type TasteStore interface {
	// Merge unions the names into the user's profile and returns the
	// cumulative set sizes.
	Merge(key string, artists, genres []string) (artistCount, genreCount int)
	// Get returns a snapshot of the user's profile. The zero profile is
	// returned for unknown keys.
	Get(key string) domain.TasteProfile
}
