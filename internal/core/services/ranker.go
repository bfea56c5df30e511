package services

import (
	"math"
	"sort"
	"strings"

	"github.com/vibelist-labs/vibelist/internal/core/domain"
)

const (
	topArtistBonus   = 2.0
	likedArtistBonus = 1.5
)

// RankContext carries the per-request signals the scorer combines.
type RankContext struct {
	TopArtists   map[string]struct{} // lowercased display names
	LikedArtists map[string]struct{} // lowercased, from taste memory
	Profile      domain.TargetProfile
}

// TargetProfileFor derives the target audio profile from vibe text. Rules
// apply in order; a later match overwrites the fields it sets, so a text
// matching several rules ends with the last rule's values for shared fields.
func TargetProfileFor(vibe string) domain.TargetProfile {
	t := strings.ToLower(vibe)
	p := domain.TargetProfile{Energy: 0.5, Valence: 0.5, Danceability: 0.5}

	if strings.Contains(t, "night drive") || strings.Contains(t, "moody") {
		p = domain.TargetProfile{Energy: 0.55, Valence: 0.35, Danceability: 0.6}
	}
	if strings.Contains(t, "chill") || strings.Contains(t, "lofi") {
		p = domain.TargetProfile{Energy: 0.30, Valence: 0.50, Danceability: 0.5}
	}
	if strings.Contains(t, "party") || strings.Contains(t, "dance") {
		p = domain.TargetProfile{Energy: 0.80, Valence: 0.70, Danceability: 0.8}
	}
	if strings.Contains(t, "happy") {
		p.Valence = 0.80
	}

	return p
}

// Score combines artist overlap, taste memory, and audio-feature closeness.
// A nil feature vector omits the closeness terms entirely; tracks without
// feature data compete on overlap signals only.
func Score(track domain.CandidateTrack, features *domain.AudioFeatures, rc RankContext) float64 {
	s := 0.0
	names := splitArtistNames(track.ArtistNames)

	if anyInSet(names, rc.TopArtists) {
		s += topArtistBonus
	}
	if anyInSet(names, rc.LikedArtists) {
		s += likedArtistBonus
	}

	if features != nil {
		s += 1.0 - math.Abs(features.Energy-rc.Profile.Energy)
		s += 1.0 - math.Abs(features.Valence-rc.Profile.Valence)
		s += 1.0 - math.Abs(features.Danceability-rc.Profile.Danceability)
	}

	return s
}

// Rank orders candidates by descending score and truncates to count. The
// sort is stable: equal scores keep the resolver's original order.
func Rank(tracks []domain.CandidateTrack, features map[string]domain.AudioFeatures, rc RankContext, count int) []domain.CandidateTrack {
	scores := make([]float64, len(tracks))
	for i, t := range tracks {
		var af *domain.AudioFeatures
		if f, ok := features[t.ID]; ok {
			af = &f
		}
		scores[i] = Score(t, af, rc)
	}

	ranked := make([]domain.CandidateTrack, len(tracks))
	order := make([]int, len(tracks))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		return scores[order[a]] > scores[order[b]]
	})
	for i, idx := range order {
		ranked[i] = tracks[idx]
	}

	if count > 0 && len(ranked) > count {
		ranked = ranked[:count]
	}
	return ranked
}

func splitArtistNames(display string) []string {
	parts := strings.Split(display, ",")
	names := make([]string, 0, len(parts))
	for _, p := range parts {
		if name := strings.ToLower(strings.TrimSpace(p)); name != "" {
			names = append(names, name)
		}
	}
	return names
}

func anyInSet(names []string, set map[string]struct{}) bool {
	for _, n := range names {
		if _, ok := set[n]; ok {
			return true
		}
	}
	return false
}
