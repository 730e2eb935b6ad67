package types

// ExperienceLevel is an ordered seniority level used for directional comparisons:
// a candidate at or above a job's level is a full match, each level of deficit
// is penalized by the scorer.
type ExperienceLevel string

// Experience levels, ordered from most junior to most senior.
const (
	ExperienceEntry     ExperienceLevel = "Entry"
	ExperienceMid       ExperienceLevel = "Mid"
	ExperienceSenior    ExperienceLevel = "Senior"
	ExperienceLead      ExperienceLevel = "Lead"
	ExperienceExecutive ExperienceLevel = "Executive"
)

var experienceOrder = []ExperienceLevel{
	ExperienceEntry,
	ExperienceMid,
	ExperienceSenior,
	ExperienceLead,
	ExperienceExecutive,
}

// Rank returns the position of the level in the seniority ordering
// (Entry=0 .. Executive=4), or -1 for an empty or unknown level.
func (e ExperienceLevel) Rank() int {
	for i, level := range experienceOrder {
		if level == e {
			return i
		}
	}
	return -1
}

// Valid reports whether the level is one of the known enumeration values.
func (e ExperienceLevel) Valid() bool {
	return e.Rank() >= 0
}
