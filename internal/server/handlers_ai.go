package server

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/mateo/matchwork/internal/match"
	"github.com/mateo/matchwork/internal/server/middleware"
	"github.com/mateo/matchwork/internal/types"
)

// ExtractSkillsRequest is the request body for skill extraction.
type ExtractSkillsRequest struct {
	Text string `json:"text" validate:"required,min=10,max=5000"`
}

// ExtractSkillsResponse is the response for skill extraction.
type ExtractSkillsResponse struct {
	Skills        []string `json:"skills"`
	Confidence    string   `json:"confidence"`
	ExtractedFrom int      `json:"extracted_from"`
	TotalFound    int      `json:"total_found"`
}

// handleExtractSkills extracts skills from free-form text.
func (s *Server) handleExtractSkills(w http.ResponseWriter, r *http.Request) {
	var req ExtractSkillsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := s.validate.Struct(req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "text must be between 10 and 5000 characters")
		return
	}

	result := s.extractor.ExtractSkills(r.Context(), req.Text)

	s.jsonResponse(w, http.StatusOK, ExtractSkillsResponse{
		Skills:        result.Skills,
		Confidence:    result.Confidence,
		ExtractedFrom: len(req.Text),
		TotalFound:    result.TotalFound,
	})
}

// MatchScoreRequest is the request body for a single job/candidate score.
// UserID defaults to the authenticated user when omitted.
type MatchScoreRequest struct {
	JobID  string `json:"job_id" validate:"required,uuid"`
	UserID string `json:"user_id" validate:"omitempty,uuid"`
}

// MatchScoreResponse is the response for a single job/candidate score.
type MatchScoreResponse struct {
	MatchScore      int             `json:"match_score"`
	Breakdown       match.Breakdown `json:"breakdown"`
	MatchingSkills  []string        `json:"matching_skills"`
	TotalJobSkills  int             `json:"total_job_skills"`
	TotalUserSkills int             `json:"total_user_skills"`
}

// handleMatchScore computes the compatibility score between a job and a
// candidate.
func (s *Server) handleMatchScore(w http.ResponseWriter, r *http.Request) {
	var req MatchScoreRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := s.validate.Struct(req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "job_id is required and ids must be valid UUIDs")
		return
	}

	jobID, err := uuid.Parse(req.JobID)
	if err != nil {
		s.respondError(w, &ErrValidation{Field: "job_id", Message: "must be a valid UUID"})
		return
	}

	userID, err := middleware.GetUserID(r)
	if err != nil {
		s.errorResponse(w, http.StatusUnauthorized, "authentication required")
		return
	}
	if req.UserID != "" {
		userID, err = uuid.Parse(req.UserID)
		if err != nil {
			s.respondError(w, &ErrValidation{Field: "user_id", Message: "must be a valid UUID"})
			return
		}
	}

	job, user, err := s.loadPair(r.Context(), jobID, userID)
	if err != nil {
		s.respondError(w, err)
		return
	}

	score, hit := s.scoreCache.Get(job, user)
	if !hit {
		score = s.scorer.MatchScore(job, user)
		s.scoreCache.Put(job, user, score)
	}

	s.jsonResponse(w, http.StatusOK, MatchScoreResponse{
		MatchScore:      score.Overall,
		Breakdown:       score.Breakdown,
		MatchingSkills:  score.MatchingSkills,
		TotalJobSkills:  len(job.Skills),
		TotalUserSkills: len(user.Skills),
	})
}

// loadPair fetches a job and a user, mapping missing rows to typed errors.
func (s *Server) loadPair(ctx context.Context, jobID, userID uuid.UUID) (*types.Job, *types.User, error) {
	job, err := s.db.GetJobByID(ctx, jobID)
	if err != nil {
		return nil, nil, err
	}
	if job == nil {
		return nil, nil, &ErrJobNotFound{JobID: jobID}
	}

	user, err := s.db.GetUserByID(ctx, userID)
	if err != nil {
		return nil, nil, err
	}
	if user == nil {
		return nil, nil, &ErrUserNotFound{UserID: userID}
	}
	return job, user, nil
}

// RankedJob is one job recommendation with its score.
type RankedJob struct {
	Job        types.Job       `json:"job"`
	MatchScore int             `json:"match_score"`
	Breakdown  match.Breakdown `json:"breakdown"`
}

// RecommendationsResponse is the response for job recommendations.
type RecommendationsResponse struct {
	Jobs              []RankedJob `json:"jobs"`
	Message           string      `json:"message,omitempty"`
	TotalJobsAnalyzed int         `json:"total_jobs_analyzed"`
	JobsReturned      int         `json:"jobs_returned"`
}

// handleRecommendations returns active jobs ranked against the
// authenticated user's profile.
func (s *Server) handleRecommendations(w http.ResponseWriter, r *http.Request) {
	userID, err := middleware.GetUserID(r)
	if err != nil {
		s.errorResponse(w, http.StatusUnauthorized, "authentication required")
		return
	}

	user, err := s.db.GetUserByID(r.Context(), userID)
	if err != nil {
		s.respondError(w, err)
		return
	}
	if user == nil {
		s.respondError(w, &ErrUserNotFound{UserID: userID})
		return
	}

	limit := parseQueryInt(r, "limit", match.DefaultLimit, 50)
	minScore := parseQueryInt(r, "min_score", match.DefaultMinScore, 100)

	if len(user.Skills) == 0 {
		s.jsonResponse(w, http.StatusOK, RecommendationsResponse{
			Jobs:    []RankedJob{},
			Message: "Add skills to your profile to get personalized recommendations",
		})
		return
	}

	jobs, err := s.db.ListActiveJobs(r.Context(), 2*limit)
	if err != nil {
		s.respondError(w, err)
		return
	}

	ranked, err := match.Rank(r.Context(), jobs, func(_ context.Context, job types.Job) (match.Score, error) {
		return s.scorer.RecommendationScore(&job, user), nil
	}, minScore, limit)
	if err != nil {
		s.respondError(w, err)
		return
	}

	out := make([]RankedJob, 0, len(ranked))
	for _, e := range ranked {
		out = append(out, RankedJob{
			Job:        e.Item,
			MatchScore: e.Score.Overall,
			Breakdown:  e.Score.Breakdown,
		})
	}

	s.jsonResponse(w, http.StatusOK, RecommendationsResponse{
		Jobs:              out,
		TotalJobsAnalyzed: len(jobs),
		JobsReturned:      len(out),
	})
}

// RankedCandidate is one candidate recommendation with its score.
type RankedCandidate struct {
	User           types.User `json:"user"`
	MatchScore     int        `json:"match_score"`
	MatchingSkills []string   `json:"matching_skills"`
}

// CandidatesResponse is the response for per-job candidate recommendations.
type CandidatesResponse struct {
	Candidates         []RankedCandidate `json:"candidates"`
	Message            string            `json:"message,omitempty"`
	TotalUsersAnalyzed int               `json:"total_users_analyzed"`
}

// handleJobRecommendations returns candidates ranked against one job's
// requirements.
func (s *Server) handleJobRecommendations(w http.ResponseWriter, r *http.Request) {
	jobID, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		s.respondError(w, &ErrValidation{Field: "id", Message: "must be a valid job UUID"})
		return
	}

	requester, err := middleware.GetUserID(r)
	if err != nil {
		s.errorResponse(w, http.StatusUnauthorized, "authentication required")
		return
	}

	job, err := s.db.GetJobByID(r.Context(), jobID)
	if err != nil {
		s.respondError(w, err)
		return
	}
	if job == nil {
		s.respondError(w, &ErrJobNotFound{JobID: jobID})
		return
	}

	limit := parseQueryInt(r, "limit", match.DefaultLimit, 50)
	minScore := parseQueryInt(r, "min_score", match.DefaultMinScore, 100)

	if len(job.Skills) == 0 {
		s.jsonResponse(w, http.StatusOK, CandidatesResponse{
			Candidates: []RankedCandidate{},
			Message:    "No skills specified for this job",
		})
		return
	}

	users, err := s.db.ListUsersBySkills(r.Context(), job.Skills, requester, 2*limit)
	if err != nil {
		s.respondError(w, err)
		return
	}

	ranked, err := match.Rank(r.Context(), users, func(_ context.Context, user types.User) (match.Score, error) {
		return s.scorer.RecommendationScore(job, &user), nil
	}, minScore, limit)
	if err != nil {
		s.respondError(w, err)
		return
	}

	out := make([]RankedCandidate, 0, len(ranked))
	for _, e := range ranked {
		out = append(out, RankedCandidate{
			User:           e.Item,
			MatchScore:     e.Score.Overall,
			MatchingSkills: e.Score.MatchingSkills,
		})
	}

	s.jsonResponse(w, http.StatusOK, CandidatesResponse{
		Candidates:         out,
		TotalUsersAnalyzed: len(users),
	})
}

// RankedConnection is one suggested connection with its score.
type RankedConnection struct {
	User         types.User `json:"user"`
	MatchScore   int        `json:"match_score"`
	SharedSkills []string   `json:"shared_skills"`
}

// ConnectionsResponse is the response for connection suggestions.
type ConnectionsResponse struct {
	Connections        []RankedConnection `json:"connections"`
	Message            string             `json:"message,omitempty"`
	TotalUsersAnalyzed int                `json:"total_users_analyzed"`
}

// handleConnections returns peers ranked by profile affinity with the
// authenticated user.
func (s *Server) handleConnections(w http.ResponseWriter, r *http.Request) {
	userID, err := middleware.GetUserID(r)
	if err != nil {
		s.errorResponse(w, http.StatusUnauthorized, "authentication required")
		return
	}

	self, err := s.db.GetUserByID(r.Context(), userID)
	if err != nil {
		s.respondError(w, err)
		return
	}
	if self == nil {
		s.respondError(w, &ErrUserNotFound{UserID: userID})
		return
	}

	limit := parseQueryInt(r, "limit", match.DefaultLimit, 50)
	minScore := parseQueryInt(r, "min_score", match.DefaultMinScore, 100)

	if len(self.Skills) == 0 {
		s.jsonResponse(w, http.StatusOK, ConnectionsResponse{
			Connections: []RankedConnection{},
			Message:     "Add skills to your profile to find connections",
		})
		return
	}

	peers, err := s.db.ListUsersBySkills(r.Context(), self.Skills, self.ID, 2*limit)
	if err != nil {
		s.respondError(w, err)
		return
	}

	ranked, err := match.Rank(r.Context(), peers, func(_ context.Context, peer types.User) (match.Score, error) {
		return s.scorer.ConnectionScore(self, &peer), nil
	}, minScore, limit)
	if err != nil {
		s.respondError(w, err)
		return
	}

	out := make([]RankedConnection, 0, len(ranked))
	for _, e := range ranked {
		out = append(out, RankedConnection{
			User:         e.Item,
			MatchScore:   e.Score.Overall,
			SharedSkills: e.Score.MatchingSkills,
		})
	}

	s.jsonResponse(w, http.StatusOK, ConnectionsResponse{
		Connections:        out,
		TotalUsersAnalyzed: len(peers),
	})
}

// JobSuggestionsRequest is the request body for posting suggestions.
type JobSuggestionsRequest struct {
	Title       string `json:"title" validate:"required,min=5,max=100"`
	Description string `json:"description" validate:"required,min=20,max=2000"`
}

// handleJobSuggestions returns advisory attributes for a draft posting.
func (s *Server) handleJobSuggestions(w http.ResponseWriter, r *http.Request) {
	var req JobSuggestionsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := s.validate.Struct(req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "title must be 5-100 characters and description 20-2000 characters")
		return
	}

	suggestion := s.suggester.Suggest(r.Context(), req.Title, req.Description)
	s.jsonResponse(w, http.StatusOK, suggestion)
}

// respondError maps an error to an HTTP status and logs server faults.
func (s *Server) respondError(w http.ResponseWriter, err error) {
	status := HTTPStatus(err)
	if status >= http.StatusInternalServerError {
		s.log.Error("internal error", zap.Error(err))
		s.errorResponse(w, status, "internal server error")
		return
	}
	s.errorResponse(w, status, err.Error())
}
