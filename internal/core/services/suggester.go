package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/vibelist-labs/vibelist/internal/core/domain"
	"github.com/vibelist-labs/vibelist/internal/core/ports"
)

const suggestSystemPrompt = "You are a music assistant. Return JSON with key 'items' (array).\n" +
	"Each item: {title:string, artist:string, query:string} where 'query' is suitable for Spotify text search.\n" +
	"Focus on the vibe and artists/genres adjacent to the user's top artists. JSON only."

const suggestTemperature = 0.4

// topArtistContext caps how many artists go into the prompt.
const topArtistContext = 12

// Suggester asks the language model for (title, artist, query) hints, with a
// deterministic per-artist template as fallback.
type Suggester struct {
	llm    ports.ChatCompleter
	logger *log.Logger
}

// NewSuggester constructs a Suggester.
func NewSuggester(llm ports.ChatCompleter, logger *log.Logger) *Suggester {
	if logger == nil {
		logger = log.Default()
	}
	return &Suggester{llm: llm, logger: logger}
}

type suggestPrompt struct {
	Vibe       string          `json:"vibe"`
	TopArtists []domain.Artist `json:"top_artists"`
	Count      int             `json:"count"`
}

type suggestItems struct {
	Items []domain.Suggestion `json:"items"`
}

// Suggest produces search suggestions for the vibe. The result is capped to
// max(5, 2*count) and is empty only when the user has no top artists.
func (s *Suggester) Suggest(ctx context.Context, vibe string, count int, topArtists []domain.Artist) []domain.Suggestion {
	if len(topArtists) > topArtistContext {
		topArtists = topArtists[:topArtistContext]
	}

	suggestions := s.fromLLM(ctx, vibe, count, topArtists)

	// Empty output for any reason triggers the template fallback.
	if len(suggestions) == 0 {
		for _, a := range topArtists {
			suggestions = append(suggestions, domain.Suggestion{
				Artist: a.Name,
				Query:  fmt.Sprintf("%s %s -remix -live", a.Name, vibe),
			})
		}
	}

	if limit := suggestionCap(count); len(suggestions) > limit {
		suggestions = suggestions[:limit]
	}
	return suggestions
}

func (s *Suggester) fromLLM(ctx context.Context, vibe string, count int, topArtists []domain.Artist) []domain.Suggestion {
	user, err := json.Marshal(suggestPrompt{Vibe: vibe, TopArtists: topArtists, Count: count})
	if err != nil {
		return nil
	}

	content, err := s.llm.CompleteJSON(ctx, suggestSystemPrompt, string(user), suggestTemperature)
	if err != nil {
		if !errors.Is(err, ports.ErrLLMNotConfigured) {
			s.logger.Warn("llm suggestion call failed", "err", err)
		}
		return nil
	}

	var parsed suggestItems
	if err := json.Unmarshal(content, &parsed); err != nil {
		s.logger.Warn("llm suggestions undecodable", "err", err)
		return nil
	}

	usable := make([]domain.Suggestion, 0, len(parsed.Items))
	for _, item := range parsed.Items {
		query := strings.TrimSpace(item.Query)
		if query == "" {
			continue
		}
		usable = append(usable, domain.Suggestion{
			Title:  item.Title,
			Artist: item.Artist,
			Query:  query,
		})
	}
	return usable
}

func suggestionCap(count int) int {
	if c := 2 * count; c > 5 {
		return c
	}
	return 5
}
