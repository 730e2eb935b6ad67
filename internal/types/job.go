package types

import (
	"time"

	"github.com/google/uuid"
)

// JobStatus is the lifecycle state of a posting. Only Active postings
// participate in matching.
type JobStatus string

// Job statuses.
const (
	JobStatusActive     JobStatus = "Active"
	JobStatusInProgress JobStatus = "In Progress"
	JobStatusCompleted  JobStatus = "Completed"
	JobStatusCancelled  JobStatus = "Cancelled"
)

// JobType categorizes the engagement model of a posting.
type JobType string

// Job types.
const (
	JobTypeFullTime   JobType = "Full-time"
	JobTypePartTime   JobType = "Part-time"
	JobTypeContract   JobType = "Contract"
	JobTypeFreelance  JobType = "Freelance"
	JobTypeInternship JobType = "Internship"
)

// Budget is a compensation range attached to a job posting.
type Budget struct {
	Min      int    `json:"min"`
	Max      int    `json:"max"`
	Currency string `json:"currency"`
}

// Defined reports whether both ends of the range are present.
func (b Budget) Defined() bool {
	return b.Min > 0 && b.Max > 0
}

// Job is a posting as stored by the CRUD layer. Read-only from the
// matching core's perspective.
type Job struct {
	ID              uuid.UUID       `json:"id"`
	Title           string          `json:"title"`
	Description     string          `json:"description"` // free text, max 2000 chars
	EmployerID      uuid.UUID       `json:"employer_id"`
	Skills          []string        `json:"skills"`
	Location        string          `json:"location,omitempty"`
	Budget          Budget          `json:"budget"`
	JobType         JobType         `json:"job_type"`
	ExperienceLevel ExperienceLevel `json:"experience_level"`
	Status          JobStatus       `json:"status"`
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`
}
