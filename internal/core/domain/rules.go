package domain

// Era bounds a release-year range. Nil ends are unbounded.
type Era struct {
	From *int `json:"frm"`
	To   *int `json:"to"`
}

// VibeRules is the structured form of a free-text vibe request.
// Pure value object, produced fresh per request.
type VibeRules struct {
	IncludeGenres   []string `json:"includeGenres"`
	ExcludeGenres   []string `json:"excludeGenres"`
	MinPopularity   *int     `json:"minPopularity"`
	MaxPopularity   *int     `json:"maxPopularity"`
	Era             Era      `json:"era"`
	ExplicitAllowed bool     `json:"explicitAllowed"`
}

// DefaultVibeRules returns the field defaults substituted for keys the LLM omits.
func DefaultVibeRules() VibeRules {
	return VibeRules{
		IncludeGenres:   []string{},
		ExcludeGenres:   []string{},
		ExplicitAllowed: true,
	}
}

// TargetProfile is the vibe-derived target used for feature-closeness scoring.
// All axes are in [0,1].
type TargetProfile struct {
	Energy       float64 `json:"target_energy"`
	Valence      float64 `json:"target_valence"`
	Danceability float64 `json:"target_danceability"`
}
