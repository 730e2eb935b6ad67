// Package suggest generates draft job-posting suggestions (skills,
// experience level, job type, budget range) from a title and description.
package suggest

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/mateo/matchwork/internal/extract"
	"github.com/mateo/matchwork/internal/llm"
	"github.com/mateo/matchwork/internal/types"
)

const (
	maxSuggestedSkills = 15

	enhancementTimeout = 10 * time.Second
)

// Keyword groups for heuristic classification. Senior keywords take
// precedence over entry keywords when both match; job type groups are
// checked in declaration order and the first match wins.
var (
	seniorKeywords = []string{"senior", "lead", "architect", "principal", "manager", "director", "head of"}
	entryKeywords  = []string{"junior", "entry", "intern", "graduate", "fresh", "new grad"}

	jobTypeGroups = []struct {
		jobType  types.JobType
		keywords []string
	}{
		{types.JobTypePartTime, []string{"part-time", "part time", "parttime"}},
		{types.JobTypeContract, []string{"contract", "freelance", "consulting"}},
		{types.JobTypeFreelance, []string{"freelance", "contract", "consulting"}},
		{types.JobTypeInternship, []string{"internship", "intern", "student"}},
	}

	budgetTiers = map[types.ExperienceLevel]types.Budget{
		types.ExperienceEntry:  {Min: 30000, Max: 60000, Currency: "USD"},
		types.ExperienceMid:    {Min: 50000, Max: 80000, Currency: "USD"},
		types.ExperienceSenior: {Min: 80000, Max: 150000, Currency: "USD"},
	}
)

// Suggestion is the advisory output for a draft posting. Confidence is
// "high" when the generative enhancement contributed, "medium" otherwise.
type Suggestion struct {
	Skills           []string              `json:"suggested_skills"`
	ExperienceLevel  types.ExperienceLevel `json:"suggested_experience"`
	JobType          types.JobType         `json:"suggested_job_type"`
	Budget           types.Budget          `json:"suggested_budget"`
	AdditionalSkills []string              `json:"additional_skills"`
	Confidence       string                `json:"confidence"`
}

// Option configures a Generator.
type Option func(*Generator)

// WithCompleter injects the optional generative-text capability.
func WithCompleter(c llm.Completer) Option {
	return func(g *Generator) { g.completer = c }
}

// WithLogger sets the logger used for degraded-enhancement notices.
func WithLogger(log *zap.Logger) Option {
	return func(g *Generator) { g.log = log }
}

// Generator produces posting suggestions. Safe for concurrent use.
type Generator struct {
	tagger    extract.Tagger
	completer llm.Completer
	log       *zap.Logger
}

// New returns a Generator backed by the given tagger.
func New(tagger extract.Tagger, opts ...Option) *Generator {
	g := &Generator{tagger: tagger, log: zap.NewNop()}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Suggest derives skills, experience level, job type, and a budget range
// from a draft title and description. Heuristics always produce a result;
// when the generative enhancement succeeds its fields are preferred.
func (g *Generator) Suggest(ctx context.Context, title, description string) Suggestion {
	s := Suggestion{
		Skills:           g.suggestSkills(description),
		ExperienceLevel:  suggestExperience(title, description),
		JobType:          suggestJobType(title, description),
		AdditionalSkills: []string{},
		Confidence:       "medium",
	}
	s.Budget = budgetTiers[s.ExperienceLevel]

	// Single fallback site for the optional enhancement.
	if ai, err := g.enhance(ctx, title, description); err != nil {
		if g.log != nil && !llm.IsUnavailable(err) {
			g.log.Debug("job suggestion enhancement degraded", zap.Error(err))
		}
	} else {
		s.Confidence = "high"
		s.merge(ai)
	}

	return s
}

// suggestSkills combines vocabulary matches with lexical nouns from the
// description, capped to the top 15 by first-seen order.
func (g *Generator) suggestSkills(description string) []string {
	seen := make(map[string]bool)
	skills := make([]string, 0, maxSuggestedSkills)

	add := func(skill string) {
		if skill == "" || seen[skill] || len(skills) >= maxSuggestedSkills {
			return
		}
		seen[skill] = true
		skills = append(skills, skill)
	}

	for _, term := range extract.VocabularyMatches(description) {
		add(term)
	}
	for _, noun := range append(g.tagger.Nouns(description), g.tagger.ProperNouns(description)...) {
		if len(noun) > 3 && len(noun) < 20 {
			add(strings.ToLower(noun))
		}
	}
	return skills
}

// suggestExperience defaults to Mid, escalating to Senior or downgrading to
// Entry on keyword hits in the title or description. Senior wins when both
// keyword groups match.
func suggestExperience(title, description string) types.ExperienceLevel {
	lowerTitle, lowerDesc := strings.ToLower(title), strings.ToLower(description)

	contains := func(keywords []string) bool {
		for _, kw := range keywords {
			if strings.Contains(lowerTitle, kw) || strings.Contains(lowerDesc, kw) {
				return true
			}
		}
		return false
	}

	switch {
	case contains(seniorKeywords):
		return types.ExperienceSenior
	case contains(entryKeywords):
		return types.ExperienceEntry
	default:
		return types.ExperienceMid
	}
}

// suggestJobType defaults to Full-time, overridden by the first keyword
// group that matches the title or description.
func suggestJobType(title, description string) types.JobType {
	lowerTitle, lowerDesc := strings.ToLower(title), strings.ToLower(description)

	for _, group := range jobTypeGroups {
		for _, kw := range group.keywords {
			if strings.Contains(lowerTitle, kw) || strings.Contains(lowerDesc, kw) {
				return group.jobType
			}
		}
	}
	return types.JobTypeFullTime
}

// aiSuggestion is the structured payload expected back from the
// generative-text service.
type aiSuggestion struct {
	AdditionalSkills []string      `json:"additionalSkills"`
	ExperienceLevel  string        `json:"experienceLevel"`
	JobType          string        `json:"jobType"`
	BudgetRange      *types.Budget `json:"budgetRange"`
}

// enhance asks the generative-text service for structured suggestions,
// validated against a JSON Schema before use. Returns llm.ErrUnavailable
// when no completer is configured.
func (g *Generator) enhance(ctx context.Context, title, description string) (*aiSuggestion, error) {
	if g.completer == nil {
		return nil, llm.ErrUnavailable
	}

	ctx, cancel := context.WithTimeout(ctx, enhancementTimeout)
	defer cancel()

	out, err := g.completer.CompleteJSON(ctx, llm.JobSuggestionPrompt, "Title: "+title+"\nDescription: "+description)
	if err != nil {
		return nil, err
	}

	if err := validateSuggestionJSON(out); err != nil {
		return nil, err
	}

	var ai aiSuggestion
	if err := json.Unmarshal([]byte(out), &ai); err != nil {
		return nil, err
	}
	return &ai, nil
}

// merge prefers the enhancement's fields over the heuristic ones when they
// are present and valid; anything missing or malformed keeps the heuristic
// value.
func (s *Suggestion) merge(ai *aiSuggestion) {
	if level := types.ExperienceLevel(ai.ExperienceLevel); level.Valid() {
		s.ExperienceLevel = level
	}
	if jt := types.JobType(ai.JobType); validJobType(jt) {
		s.JobType = jt
	}
	if ai.BudgetRange != nil && ai.BudgetRange.Defined() {
		budget := *ai.BudgetRange
		if budget.Currency == "" {
			budget.Currency = "USD"
		}
		s.Budget = budget
	}
	if len(ai.AdditionalSkills) > 0 {
		s.AdditionalSkills = ai.AdditionalSkills
	}
}

func validJobType(jt types.JobType) bool {
	switch jt {
	case types.JobTypeFullTime, types.JobTypePartTime, types.JobTypeContract,
		types.JobTypeFreelance, types.JobTypeInternship:
		return true
	}
	return false
}
