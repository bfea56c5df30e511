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

const parseSystemPrompt = "Convert a music vibe request into STRICT JSON with keys: " +
	"includeGenres (string[]), excludeGenres (string[]), " +
	"minPopularity (int|null), maxPopularity (int|null), " +
	"era {frm:int|null,to:int|null}, explicitAllowed (bool). Only return JSON."

const parseTemperature = 0.2

// RuleParser turns free vibe text into structured rules, either by fixed
// keyword heuristics or by delegating to the language model.
type RuleParser struct {
	llm    ports.ChatCompleter
	logger *log.Logger
}

// NewRuleParser constructs a RuleParser.
func NewRuleParser(llm ports.ChatCompleter, logger *log.Logger) *RuleParser {
	if logger == nil {
		logger = log.Default()
	}
	return &RuleParser{llm: llm, logger: logger}
}

// ParseHeuristic applies the fixed keyword rules. Total: it never fails.
func (p *RuleParser) ParseHeuristic(vibe string, explicitAllowed bool) domain.VibeRules {
	t := strings.ToLower(vibe)

	genres := []string{}
	if containsAny(t, "chill", "lofi", "study", "focus") {
		genres = append(genres, "lofi")
	}
	if containsAny(t, "party", "dance") {
		genres = append(genres, "edm")
	}
	if len(genres) == 0 {
		genres = []string{"pop"}
	}

	var era domain.Era
	if strings.Contains(t, "2010") {
		from, to := 2010, 2019
		era = domain.Era{From: &from, To: &to}
	}

	if strings.Contains(t, "no explicit") {
		explicitAllowed = false
	}

	return domain.VibeRules{
		IncludeGenres:   genres,
		ExcludeGenres:   []string{},
		Era:             era,
		ExplicitAllowed: explicitAllowed,
	}
}

// llmRules mirrors the instructed JSON shape with pointer fields so a missing
// key is distinguishable from a zero value.
type llmRules struct {
	IncludeGenres   []string `json:"includeGenres"`
	ExcludeGenres   []string `json:"excludeGenres"`
	MinPopularity   *int     `json:"minPopularity"`
	MaxPopularity   *int     `json:"maxPopularity"`
	Era             *domain.Era `json:"era"`
	ExplicitAllowed *bool    `json:"explicitAllowed"`
}

// ParseLLM delegates parsing to the language model and decodes the response
// against a strict schema, substituting the declared default for every
// missing key.
func (p *RuleParser) ParseLLM(ctx context.Context, vibe string, explicitAllowed bool) (domain.VibeRules, error) {
	user := fmt.Sprintf("vibeText=%q, explicitAllowed=%t", vibe, explicitAllowed)
	content, err := p.llm.CompleteJSON(ctx, parseSystemPrompt, user, parseTemperature)
	if err != nil {
		return domain.VibeRules{}, fmt.Errorf("parser: llm call: %w", err)
	}

	var raw llmRules
	if err := json.Unmarshal(content, &raw); err != nil {
		return domain.VibeRules{}, fmt.Errorf("parser: decode llm rules: %w", err)
	}

	rules := domain.DefaultVibeRules()
	if raw.IncludeGenres != nil {
		rules.IncludeGenres = raw.IncludeGenres
	}
	if raw.ExcludeGenres != nil {
		rules.ExcludeGenres = raw.ExcludeGenres
	}
	rules.MinPopularity = raw.MinPopularity
	rules.MaxPopularity = raw.MaxPopularity
	if raw.Era != nil {
		rules.Era = *raw.Era
	}
	if raw.ExplicitAllowed != nil {
		rules.ExplicitAllowed = *raw.ExplicitAllowed
	}
	return rules, nil
}

// Parse is the implicit entry point: any delegate failure falls back to the
// heuristic. The trigger is the error itself, logged for visibility.
func (p *RuleParser) Parse(ctx context.Context, vibe string, explicitAllowed bool) domain.VibeRules {
	rules, err := p.ParseLLM(ctx, vibe, explicitAllowed)
	if err != nil {
		if !errors.Is(err, ports.ErrLLMNotConfigured) {
			p.logger.Warn("llm parse failed, using heuristic", "err", err)
		}
		return p.ParseHeuristic(vibe, explicitAllowed)
	}
	return rules
}

// ParseStrict is the explicit entry point: an unconfigured model still falls
// back to the heuristic (a supported runtime mode), but a call or decode
// failure surfaces as an upstream error instead of degrading silently.
func (p *RuleParser) ParseStrict(ctx context.Context, vibe string, explicitAllowed bool) (domain.VibeRules, error) {
	rules, err := p.ParseLLM(ctx, vibe, explicitAllowed)
	if err != nil {
		if errors.Is(err, ports.ErrLLMNotConfigured) {
			return p.ParseHeuristic(vibe, explicitAllowed), nil
		}
		return domain.VibeRules{}, fmt.Errorf("parser: %w: %v", domain.ErrUpstreamCall, err)
	}
	return rules, nil
}

func containsAny(haystack string, needles ...string) bool {
	for _, n := range needles {
		if strings.Contains(haystack, n) {
			return true
		}
	}
	return false
}
