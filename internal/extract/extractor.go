// Package extract pulls skill-like tokens out of free text using lexical
// noun extraction, a curated technical vocabulary, phrase patterns, and an
// optional generative-text enhancement.
package extract

import (
	"context"
	"regexp"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/mateo/matchwork/internal/llm"
)

// Tagger is the part-of-speech capability the extractor relies on for
// lexical extraction. "Nouns" here means content words that are plausible
// skill or tool names.
type Tagger interface {
	Nouns(text string) []string
	ProperNouns(text string) []string
}

// Token length bounds: single words must fall in (2, 20) characters,
// phrase-pattern captures in (2, 30). Results are capped to the first 20
// found, not the best 20; first-found wins.
const (
	maxSkills    = 20
	maxWordLen   = 20
	maxPhraseLen = 30

	enhancementTimeout = 10 * time.Second
)

// phrasePattern captures the clause trailing a skill lead-in expression, up
// to the next comma, period, or newline.
var phrasePattern = regexp.MustCompile(`(?i)(?:experience with|proficient in|skilled in|expert in|knowledge of|familiar with|worked with|used|developed with|built with)\s+([^,.\n]+)`)

// Result is the outcome of one extraction pass. Confidence is "high" when
// the generative enhancement contributed, "medium" for heuristics only; it
// is advisory and the only signal callers get about degraded enhancement.
type Result struct {
	Skills     []string `json:"skills"`
	Confidence string   `json:"confidence"`
	TotalFound int      `json:"total_found"`
}

// Option configures an Extractor.
type Option func(*Extractor)

// WithCompleter injects the optional generative-text capability. Extraction
// works without it; failures are absorbed and never fail the request.
func WithCompleter(c llm.Completer) Option {
	return func(e *Extractor) { e.completer = c }
}

// WithLogger sets the logger used for degraded-enhancement notices.
func WithLogger(log *zap.Logger) Option {
	return func(e *Extractor) { e.log = log }
}

// Extractor extracts skill tokens from free text. Safe for concurrent use.
type Extractor struct {
	tagger    Tagger
	completer llm.Completer
	log       *zap.Logger
}

// New returns an Extractor backed by the given tagger.
func New(tagger Tagger, opts ...Option) *Extractor {
	e := &Extractor{tagger: tagger, log: zap.NewNop()}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// ExtractSkills runs every extraction method cumulatively into one
// case-insensitive, deduplicated result set. It never fails: empty or
// unmatchable input yields an empty skill list.
func (e *Extractor) ExtractSkills(ctx context.Context, text string) Result {
	found := newOrderedSet()

	// Lexical nouns and proper nouns.
	for _, noun := range append(e.tagger.Nouns(text), e.tagger.ProperNouns(text)...) {
		if len(noun) > 2 && len(noun) < maxWordLen {
			found.add(strings.ToLower(noun))
		}
	}

	// Curated vocabulary substring scan.
	for _, term := range VocabularyMatches(text) {
		found.add(term)
	}

	// Optional generative enhancement; degradation is absorbed here and only
	// reflected in the confidence field.
	enhanced := false
	if skills, err := e.enhance(ctx, text); err != nil {
		if e.log != nil && !llm.IsUnavailable(err) {
			e.log.Debug("skill extraction enhancement degraded", zap.Error(err))
		}
	} else {
		enhanced = true
		for _, skill := range skills {
			found.add(skill)
		}
	}

	// Phrase patterns ("experience with X", "proficient in Y", ...).
	for _, m := range phrasePattern.FindAllStringSubmatch(text, -1) {
		phrase := strings.ToLower(strings.TrimSpace(m[1]))
		if len(phrase) > 2 && len(phrase) < maxPhraseLen {
			found.add(phrase)
		}
	}

	totalFound := found.len()

	skills := make([]string, 0, maxSkills)
	for _, skill := range found.values() {
		if stopWords[skill] || len(skill) <= 2 {
			continue
		}
		skills = append(skills, skill)
		if len(skills) == maxSkills {
			break
		}
	}

	confidence := "medium"
	if enhanced {
		confidence = "high"
	}

	return Result{Skills: skills, Confidence: confidence, TotalFound: totalFound}
}

// VocabularyMatches returns the vocabulary entries occurring in the text as
// lowercase substrings, in vocabulary order.
func VocabularyMatches(text string) []string {
	lower := strings.ToLower(text)
	var matches []string
	for _, term := range vocabulary {
		if strings.Contains(lower, term) {
			matches = append(matches, term)
		}
	}
	return matches
}

// enhance asks the generative-text service for a comma-separated skill list.
// Returns llm.ErrUnavailable when no completer is configured.
func (e *Extractor) enhance(ctx context.Context, text string) ([]string, error) {
	if e.completer == nil {
		return nil, llm.ErrUnavailable
	}

	ctx, cancel := context.WithTimeout(ctx, enhancementTimeout)
	defer cancel()

	out, err := e.completer.Complete(ctx, llm.SkillExtractionPrompt, text)
	if err != nil {
		return nil, err
	}

	var skills []string
	for _, part := range strings.Split(out, ",") {
		if skill := strings.ToLower(strings.TrimSpace(part)); skill != "" {
			skills = append(skills, skill)
		}
	}
	return skills, nil
}

// orderedSet deduplicates while preserving first-seen order.
type orderedSet struct {
	seen  map[string]bool
	items []string
}

func newOrderedSet() *orderedSet {
	return &orderedSet{seen: make(map[string]bool)}
}

func (s *orderedSet) add(v string) {
	if v == "" || s.seen[v] {
		return
	}
	s.seen[v] = true
	s.items = append(s.items, v)
}

func (s *orderedSet) len() int         { return len(s.items) }
func (s *orderedSet) values() []string { return s.items }
