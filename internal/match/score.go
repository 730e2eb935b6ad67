package match

import (
	"math"
	"strings"

	"github.com/mateo/matchwork/internal/types"
)

// skillMatchThreshold is the similarity above which two skill strings are
// considered the same skill (near-exact rather than identical).
const skillMatchThreshold = 0.7

// NounExtractor supplies the lexical noun extraction used to compare a job
// description against a candidate bio. The POS tagger behind it is an
// external capability; the scorer only needs the resulting content words.
type NounExtractor interface {
	Nouns(text string) []string
}

// Weights is a weight profile for combining sub-scores. Each profile's
// weights sum to 1.0.
type Weights struct {
	Skills      float64
	Experience  float64
	Location    float64
	Budget      float64
	Description float64
}

// The three scoring contexts use distinct weight profiles. The direct and
// recommendation profiles differ in the original product (budget is dropped
// entirely from recommendations); both are preserved as documented behaviors.
var (
	directWeights         = Weights{Skills: 0.35, Experience: 0.20, Location: 0.15, Budget: 0.15, Description: 0.15}
	recommendationWeights = Weights{Skills: 0.40, Experience: 0.25, Location: 0.20, Description: 0.15}
	connectionWeights     = Weights{Skills: 0.40, Experience: 0.25, Location: 0.20, Description: 0.15}
)

// Breakdown holds the per-factor sub-scores, each clamped to [0, 100].
// They are independently computed and never required to sum to 100.
type Breakdown struct {
	Skills      int `json:"skills"`
	Experience  int `json:"experience"`
	Location    int `json:"location"`
	Budget      int `json:"budget"`
	Description int `json:"description"`
}

// Score is the result of one job/candidate (or candidate/candidate)
// comparison. It is computed on demand and never persisted.
type Score struct {
	Overall        int       `json:"overall"`
	Breakdown      Breakdown `json:"breakdown"`
	MatchingSkills []string  `json:"matching_skills,omitempty"`
}

// Scorer computes weighted compatibility scores. It is stateless apart from
// the injected noun extractor and safe for concurrent use.
type Scorer struct {
	nouns NounExtractor
}

// NewScorer returns a Scorer backed by the given noun extractor.
func NewScorer(nouns NounExtractor) *Scorer {
	return &Scorer{nouns: nouns}
}

// MatchScore scores a job against a candidate using the direct match profile
// (skills 0.35, experience 0.20, location 0.15, budget 0.15, description 0.15).
func (s *Scorer) MatchScore(job *types.Job, user *types.User) Score {
	return s.score(job, user, directWeights)
}

// RecommendationScore scores a job against a candidate using the
// recommendation profile (skills 0.40, experience 0.25, location 0.20,
// description 0.15; budget is not considered).
func (s *Scorer) RecommendationScore(job *types.Job, user *types.User) Score {
	return s.score(job, user, recommendationWeights)
}

func (s *Scorer) score(job *types.Job, user *types.User, w Weights) Score {
	skills := skillsSubScore(job.Skills, user.Skills)
	experience := experienceSubScore(job.ExperienceLevel, user.Experience)
	location := locationSubScore(job.Location, user.Location)
	description := s.keywordOverlap(job.Description, user.Bio)

	var budget float64
	if w.Budget > 0 {
		budget = budgetSubScore(job.Budget)
	}

	overall := w.Skills*skills +
		w.Experience*experience +
		w.Location*location +
		w.Budget*budget +
		w.Description*description

	return Score{
		Overall: clamp100(overall),
		Breakdown: Breakdown{
			Skills:      clamp100(skills),
			Experience:  clamp100(experience),
			Location:    clamp100(location),
			Budget:      clamp100(budget),
			Description: clamp100(description),
		},
		MatchingSkills: MatchingSkills(job.Skills, user.Skills),
	}
}

// ConnectionScore scores two candidate profiles against each other for peer
// "connection" suggestions. Unlike the job contexts, the experience
// comparison is symmetric: every level of distance in either direction costs
// 25 points.
func (s *Scorer) ConnectionScore(self, peer *types.User) Score {
	common := MatchingSkills(self.Skills, peer.Skills)

	var skills float64
	if own := dedupeSkills(self.Skills); len(own) > 0 {
		skills = float64(len(common)) / float64(len(own)) * 100
	}

	var experience float64
	selfRank, peerRank := self.Experience.Rank(), peer.Experience.Rank()
	if selfRank >= 0 && peerRank >= 0 {
		diff := selfRank - peerRank
		if diff < 0 {
			diff = -diff
		}
		experience = math.Max(0, 100-float64(diff)*25)
	}

	location := locationSubScore(self.Location, peer.Location)
	bio := s.keywordOverlap(self.Bio, peer.Bio)

	w := connectionWeights
	overall := w.Skills*skills + w.Experience*experience + w.Location*location + w.Description*bio

	return Score{
		Overall: clamp100(overall),
		Breakdown: Breakdown{
			Skills:      clamp100(skills),
			Experience:  clamp100(experience),
			Location:    clamp100(location),
			Description: clamp100(bio),
		},
		MatchingSkills: common,
	}
}

// MatchingSkills returns the candidate skills whose best similarity against
// any required skill exceeds the match threshold, preserving the candidate's
// original order. Duplicate skills (case-insensitive) are collapsed.
func MatchingSkills(required, candidate []string) []string {
	required = dedupeSkills(required)
	var matched []string
	for _, skill := range dedupeSkills(candidate) {
		for _, req := range required {
			if Similarity(req, skill) > skillMatchThreshold {
				matched = append(matched, skill)
				break
			}
		}
	}
	return matched
}

// skillsSubScore averages, over every required skill, the best similarity
// any candidate skill achieves against it. A job with no required skills
// scores 0 regardless of the candidate.
func skillsSubScore(required, candidate []string) float64 {
	required = dedupeSkills(required)
	if len(required) == 0 {
		return 0
	}
	candidate = dedupeSkills(candidate)

	var total float64
	for _, req := range required {
		var best float64
		for _, skill := range candidate {
			if sim := Similarity(req, skill); sim > best {
				best = sim
			}
		}
		total += best
	}
	return total / float64(len(required)) * 100
}

// experienceSubScore is directional: a candidate at or above the required
// level scores 100, and each level of deficit costs 20 points.
func experienceSubScore(required, candidate types.ExperienceLevel) float64 {
	jobRank, userRank := required.Rank(), candidate.Rank()
	if jobRank < 0 || userRank < 0 {
		return 0
	}
	if userRank >= jobRank {
		return 100
	}
	return math.Max(0, 100-float64(jobRank-userRank)*20)
}

// locationSubScore treats substring containment as a full match, the word
// "remote" on either side as a near match, and otherwise falls back to
// string similarity.
func locationSubScore(a, b string) float64 {
	if a == "" || b == "" {
		return 0
	}
	la, lb := strings.ToLower(a), strings.ToLower(b)
	switch {
	case strings.Contains(la, lb) || strings.Contains(lb, la):
		return 100
	case strings.Contains(la, "remote") || strings.Contains(lb, "remote"):
		return 80
	default:
		return Similarity(la, lb) * 100
	}
}

// budgetSubScore is a documented simplification: a flat 75 when the posting
// carries a complete range, 0 otherwise. Real range-overlap logic was never
// built in the original product and is deliberately not invented here.
func budgetSubScore(b types.Budget) float64 {
	if b.Defined() {
		return 75
	}
	return 0
}

// keywordOverlap extracts content nouns from both texts and returns the
// percentage of source keywords that find a near match (similarity above the
// threshold) among the target keywords.
func (s *Scorer) keywordOverlap(source, target string) float64 {
	if source == "" || target == "" {
		return 0
	}

	sourceKeywords := lowerAll(s.nouns.Nouns(source))
	if len(sourceKeywords) == 0 {
		return 0
	}
	targetKeywords := lowerAll(s.nouns.Nouns(target))

	matched := 0
	for _, kw := range sourceKeywords {
		for _, t := range targetKeywords {
			if Similarity(kw, t) > skillMatchThreshold {
				matched++
				break
			}
		}
	}
	return float64(matched) / float64(len(sourceKeywords)) * 100
}

// dedupeSkills collapses case-insensitive duplicates, preserving first-seen
// order and the as-typed form of the first occurrence.
func dedupeSkills(skills []string) []string {
	seen := make(map[string]bool, len(skills))
	var out []string
	for _, s := range skills {
		key := strings.ToLower(strings.TrimSpace(s))
		if key == "" || seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, s)
	}
	return out
}

func lowerAll(in []string) []string {
	out := make([]string, 0, len(in))
	for _, s := range in {
		out = append(out, strings.ToLower(s))
	}
	return out
}

func clamp100(v float64) int {
	n := int(math.Round(v))
	if n < 0 {
		return 0
	}
	if n > 100 {
		return 100
	}
	return n
}
