package spotify

import (
	"strings"

	"github.com/vibelist-labs/vibelist/internal/core/domain"
)

const neutralFeature = 0.5

// mapTrackToDomain flattens a wire track into a candidate: artists joined
// into a display string, first album image kept.
func mapTrackToDomain(wt wireTrack) domain.CandidateTrack {
	names := make([]string, 0, len(wt.Artists))
	for _, a := range wt.Artists {
		names = append(names, a.Name)
	}

	imageURL := ""
	if len(wt.Album.Images) > 0 {
		imageURL = wt.Album.Images[0].URL
	}

	return domain.CandidateTrack{
		ID:          wt.ID,
		URI:         wt.URI,
		Name:        wt.Name,
		ArtistNames: strings.Join(names, ", "),
		ImageURL:    imageURL,
		PreviewURL:  wt.PreviewURL,
	}
}

func mapArtistToDomain(wa wireArtist) domain.Artist {
	return domain.Artist{
		ID:     wa.ID,
		Name:   wa.Name,
		Genres: wa.Genres,
	}
}

// mapFeaturesToDomain fills absent axes with the neutral value so a present
// vector is always fully populated.
func mapFeaturesToDomain(wf wireAudioFeatures) domain.AudioFeatures {
	return domain.AudioFeatures{
		Energy:       orNeutral(wf.Energy),
		Valence:      orNeutral(wf.Valence),
		Danceability: orNeutral(wf.Danceability),
	}
}

func orNeutral(v *float64) float64 {
	if v == nil {
		return neutralFeature
	}
	return *v
}
