package server

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/mateo/matchwork/internal/config"
	"github.com/mateo/matchwork/internal/server/middleware"
	"github.com/mateo/matchwork/internal/types"
)

// fakeStore is an in-memory Persistence for handler tests.
type fakeStore struct {
	jobs  map[uuid.UUID]*types.Job
	users map[uuid.UUID]*types.User
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		jobs:  make(map[uuid.UUID]*types.Job),
		users: make(map[uuid.UUID]*types.User),
	}
}

func (f *fakeStore) GetJobByID(_ context.Context, id uuid.UUID) (*types.Job, error) {
	return f.jobs[id], nil
}

func (f *fakeStore) GetUserByID(_ context.Context, id uuid.UUID) (*types.User, error) {
	return f.users[id], nil
}

func (f *fakeStore) ListActiveJobs(_ context.Context, limit int) ([]types.Job, error) {
	var jobs []types.Job
	for _, job := range f.jobs {
		if job.Status == types.JobStatusActive {
			jobs = append(jobs, *job)
		}
	}
	if len(jobs) > limit {
		jobs = jobs[:limit]
	}
	return jobs, nil
}

func (f *fakeStore) ListUsersBySkills(_ context.Context, skills []string, exclude uuid.UUID, limit int) ([]types.User, error) {
	lowered := make(map[string]bool, len(skills))
	for _, s := range skills {
		lowered[strings.ToLower(s)] = true
	}
	var users []types.User
	for _, user := range f.users {
		if user.ID == exclude {
			continue
		}
		for _, s := range user.Skills {
			if lowered[strings.ToLower(s)] {
				users = append(users, *user)
				break
			}
		}
	}
	if len(users) > limit {
		users = users[:limit]
	}
	return users, nil
}

// fieldTagger splits text into whitespace tokens, standing in for the POS
// tagger.
type fieldTagger struct{}

func (fieldTagger) Nouns(text string) []string       { return strings.Fields(text) }
func (fieldTagger) ProperNouns(text string) []string { return nil }

func newTestServer(db Persistence) *Server {
	jwtService := NewJWTService(config.JWTConfig{Secret: "test-secret", ExpirationHours: 1})
	return newServer(db, nil, fieldTagger{}, jwtService, zap.NewNop())
}

func seedUser(store *fakeStore, skills []string, level types.ExperienceLevel) *types.User {
	user := &types.User{
		ID:         uuid.New(),
		Name:       "Test User",
		Skills:     skills,
		Location:   "Berlin",
		Experience: level,
		UpdatedAt:  time.Now(),
	}
	store.users[user.ID] = user
	return user
}

func seedJob(store *fakeStore, skills []string, level types.ExperienceLevel) *types.Job {
	job := &types.Job{
		ID:              uuid.New(),
		Title:           "Backend Developer",
		Description:     "Build backend services.",
		EmployerID:      uuid.New(),
		Skills:          skills,
		Location:        "Berlin",
		Budget:          types.Budget{Min: 50000, Max: 80000, Currency: "USD"},
		JobType:         types.JobTypeFullTime,
		ExperienceLevel: level,
		Status:          types.JobStatusActive,
		UpdatedAt:       time.Now(),
	}
	store.jobs[job.ID] = job
	return job
}

func authedRequest(t *testing.T, method, target string, body any, userID uuid.UUID) *http.Request {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, target, &buf)
	return req.WithContext(middleware.WithUserID(req.Context(), userID))
}

func decodeBody[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&out))
	return out
}

func TestHandleExtractSkills(t *testing.T) {
	srv := newTestServer(newFakeStore())

	req := authedRequest(t, http.MethodPost, "/api/ai/extract-skills",
		ExtractSkillsRequest{Text: "We build with React and PostgreSQL on Kubernetes."}, uuid.New())
	rec := httptest.NewRecorder()
	srv.handleExtractSkills(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	resp := decodeBody[ExtractSkillsResponse](t, rec)
	assert.Contains(t, resp.Skills, "react")
	assert.Contains(t, resp.Skills, "postgresql")
	assert.Contains(t, resp.Skills, "kubernetes")
	assert.Equal(t, "medium", resp.Confidence)
	assert.Equal(t, len("We build with React and PostgreSQL on Kubernetes."), resp.ExtractedFrom)
	assert.Greater(t, resp.TotalFound, 0)
}

func TestHandleExtractSkills_TextTooShort(t *testing.T) {
	srv := newTestServer(newFakeStore())

	req := authedRequest(t, http.MethodPost, "/api/ai/extract-skills",
		ExtractSkillsRequest{Text: "short"}, uuid.New())
	rec := httptest.NewRecorder()
	srv.handleExtractSkills(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandleExtractSkills_InvalidBody(t *testing.T) {
	srv := newTestServer(newFakeStore())

	req := httptest.NewRequest(http.MethodPost, "/api/ai/extract-skills", strings.NewReader("{not json"))
	rec := httptest.NewRecorder()
	srv.handleExtractSkills(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandleMatchScore(t *testing.T) {
	store := newFakeStore()
	user := seedUser(store, []string{"React", "Node.js"}, types.ExperienceMid)
	job := seedJob(store, []string{"React", "Node.js"}, types.ExperienceMid)
	srv := newTestServer(store)

	req := authedRequest(t, http.MethodPost, "/api/ai/match-score",
		MatchScoreRequest{JobID: job.ID.String()}, user.ID)
	rec := httptest.NewRecorder()
	srv.handleMatchScore(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	resp := decodeBody[MatchScoreResponse](t, rec)
	assert.Equal(t, 100, resp.Breakdown.Skills)
	assert.Equal(t, 100, resp.Breakdown.Experience)
	assert.Equal(t, 100, resp.Breakdown.Location)
	assert.Equal(t, 75, resp.Breakdown.Budget)
	assert.Equal(t, 2, resp.TotalJobSkills)
	assert.Equal(t, 2, resp.TotalUserSkills)
	assert.ElementsMatch(t, []string{"React", "Node.js"}, resp.MatchingSkills)
}

func TestHandleMatchScore_ExplicitUserID(t *testing.T) {
	store := newFakeStore()
	session := seedUser(store, nil, types.ExperienceEntry)
	other := seedUser(store, []string{"Go"}, types.ExperienceSenior)
	job := seedJob(store, []string{"Go"}, types.ExperienceSenior)
	srv := newTestServer(store)

	req := authedRequest(t, http.MethodPost, "/api/ai/match-score",
		MatchScoreRequest{JobID: job.ID.String(), UserID: other.ID.String()}, session.ID)
	rec := httptest.NewRecorder()
	srv.handleMatchScore(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	resp := decodeBody[MatchScoreResponse](t, rec)
	assert.Equal(t, 100, resp.Breakdown.Skills)
}

func TestHandleMatchScore_JobNotFound(t *testing.T) {
	store := newFakeStore()
	user := seedUser(store, []string{"Go"}, types.ExperienceMid)
	srv := newTestServer(store)

	req := authedRequest(t, http.MethodPost, "/api/ai/match-score",
		MatchScoreRequest{JobID: uuid.NewString()}, user.ID)
	rec := httptest.NewRecorder()
	srv.handleMatchScore(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestHandleMatchScore_UserNotFound(t *testing.T) {
	store := newFakeStore()
	job := seedJob(store, []string{"Go"}, types.ExperienceMid)
	srv := newTestServer(store)

	req := authedRequest(t, http.MethodPost, "/api/ai/match-score",
		MatchScoreRequest{JobID: job.ID.String()}, uuid.New())
	rec := httptest.NewRecorder()
	srv.handleMatchScore(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestHandleMatchScore_InvalidJobID(t *testing.T) {
	srv := newTestServer(newFakeStore())

	req := authedRequest(t, http.MethodPost, "/api/ai/match-score",
		MatchScoreRequest{JobID: "not-a-uuid"}, uuid.New())
	rec := httptest.NewRecorder()
	srv.handleMatchScore(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandleRecommendations(t *testing.T) {
	store := newFakeStore()
	user := seedUser(store, []string{"React", "Node.js"}, types.ExperienceMid)
	seedJob(store, []string{"React", "Node.js"}, types.ExperienceMid)
	seedJob(store, []string{"React"}, types.ExperienceMid)
	srv := newTestServer(store)

	req := authedRequest(t, http.MethodGet, "/api/ai/recommendations", nil, user.ID)
	rec := httptest.NewRecorder()
	srv.handleRecommendations(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	resp := decodeBody[RecommendationsResponse](t, rec)
	assert.Equal(t, 2, resp.TotalJobsAnalyzed)
	assert.Equal(t, len(resp.Jobs), resp.JobsReturned)
	require.NotEmpty(t, resp.Jobs)
	for i := 1; i < len(resp.Jobs); i++ {
		assert.GreaterOrEqual(t, resp.Jobs[i-1].MatchScore, resp.Jobs[i].MatchScore)
	}
}

func TestHandleRecommendations_NoSkills(t *testing.T) {
	store := newFakeStore()
	user := seedUser(store, nil, types.ExperienceMid)
	seedJob(store, []string{"Go"}, types.ExperienceMid)
	srv := newTestServer(store)

	req := authedRequest(t, http.MethodGet, "/api/ai/recommendations", nil, user.ID)
	rec := httptest.NewRecorder()
	srv.handleRecommendations(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	resp := decodeBody[RecommendationsResponse](t, rec)
	assert.Empty(t, resp.Jobs)
	assert.Equal(t, "Add skills to your profile to get personalized recommendations", resp.Message)
}

func TestHandleRecommendations_LimitParam(t *testing.T) {
	store := newFakeStore()
	user := seedUser(store, []string{"Go"}, types.ExperienceSenior)
	for i := 0; i < 8; i++ {
		seedJob(store, []string{"Go"}, types.ExperienceEntry)
	}
	srv := newTestServer(store)

	req := authedRequest(t, http.MethodGet, "/api/ai/recommendations?limit=3", nil, user.ID)
	rec := httptest.NewRecorder()
	srv.handleRecommendations(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	resp := decodeBody[RecommendationsResponse](t, rec)
	assert.LessOrEqual(t, len(resp.Jobs), 3)
}

func TestHandleJobRecommendations(t *testing.T) {
	store := newFakeStore()
	requester := seedUser(store, nil, types.ExperienceMid)
	job := seedJob(store, []string{"React"}, types.ExperienceMid)
	seedUser(store, []string{"React"}, types.ExperienceMid)
	seedUser(store, []string{"React", "Node.js"}, types.ExperienceSenior)
	srv := newTestServer(store)

	req := authedRequest(t, http.MethodGet,
		fmt.Sprintf("/api/ai/jobs/%s/recommendations", job.ID), nil, requester.ID)
	req.SetPathValue("id", job.ID.String())
	rec := httptest.NewRecorder()
	srv.handleJobRecommendations(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	resp := decodeBody[CandidatesResponse](t, rec)
	assert.Equal(t, 2, resp.TotalUsersAnalyzed)
	require.NotEmpty(t, resp.Candidates)
	for _, c := range resp.Candidates {
		assert.Contains(t, c.MatchingSkills, "React")
	}
}

func TestHandleJobRecommendations_NoJobSkills(t *testing.T) {
	store := newFakeStore()
	requester := seedUser(store, nil, types.ExperienceMid)
	job := seedJob(store, nil, types.ExperienceMid)
	srv := newTestServer(store)

	req := authedRequest(t, http.MethodGet,
		fmt.Sprintf("/api/ai/jobs/%s/recommendations", job.ID), nil, requester.ID)
	req.SetPathValue("id", job.ID.String())
	rec := httptest.NewRecorder()
	srv.handleJobRecommendations(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	resp := decodeBody[CandidatesResponse](t, rec)
	assert.Empty(t, resp.Candidates)
	assert.Equal(t, "No skills specified for this job", resp.Message)
}

func TestHandleJobRecommendations_JobNotFound(t *testing.T) {
	store := newFakeStore()
	requester := seedUser(store, nil, types.ExperienceMid)
	srv := newTestServer(store)

	req := authedRequest(t, http.MethodGet, "/api/ai/jobs/x/recommendations", nil, requester.ID)
	req.SetPathValue("id", uuid.NewString())
	rec := httptest.NewRecorder()
	srv.handleJobRecommendations(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestHandleConnections(t *testing.T) {
	store := newFakeStore()
	self := seedUser(store, []string{"Go", "Rust"}, types.ExperienceSenior)
	peer := seedUser(store, []string{"Go"}, types.ExperienceMid)
	srv := newTestServer(store)

	req := authedRequest(t, http.MethodGet, "/api/ai/connections", nil, self.ID)
	rec := httptest.NewRecorder()
	srv.handleConnections(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	resp := decodeBody[ConnectionsResponse](t, rec)
	require.Len(t, resp.Connections, 1)
	assert.Equal(t, peer.ID, resp.Connections[0].User.ID)
	assert.Equal(t, []string{"Go"}, resp.Connections[0].SharedSkills)
}

func TestHandleConnections_ExcludesSelf(t *testing.T) {
	store := newFakeStore()
	self := seedUser(store, []string{"Go"}, types.ExperienceMid)
	srv := newTestServer(store)

	req := authedRequest(t, http.MethodGet, "/api/ai/connections", nil, self.ID)
	rec := httptest.NewRecorder()
	srv.handleConnections(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	resp := decodeBody[ConnectionsResponse](t, rec)
	assert.Empty(t, resp.Connections)
}

func TestHandleConnections_NoSkills(t *testing.T) {
	store := newFakeStore()
	self := seedUser(store, nil, types.ExperienceMid)
	srv := newTestServer(store)

	req := authedRequest(t, http.MethodGet, "/api/ai/connections", nil, self.ID)
	rec := httptest.NewRecorder()
	srv.handleConnections(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	resp := decodeBody[ConnectionsResponse](t, rec)
	assert.Empty(t, resp.Connections)
	assert.Equal(t, "Add skills to your profile to find connections", resp.Message)
}

func TestHandleJobSuggestions(t *testing.T) {
	srv := newTestServer(newFakeStore())

	req := authedRequest(t, http.MethodPost, "/api/ai/job-suggestions", JobSuggestionsRequest{
		Title:       "Senior Backend Developer",
		Description: "Own our Go services and the PostgreSQL data layer.",
	}, uuid.New())
	rec := httptest.NewRecorder()
	srv.handleJobSuggestions(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var resp map[string]any
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Equal(t, "Senior", resp["suggested_experience"])
	assert.Equal(t, "medium", resp["confidence"])
}

func TestHandleJobSuggestions_TitleTooShort(t *testing.T) {
	srv := newTestServer(newFakeStore())

	req := authedRequest(t, http.MethodPost, "/api/ai/job-suggestions", JobSuggestionsRequest{
		Title:       "Dev",
		Description: "A description that is long enough to pass validation.",
	}, uuid.New())
	rec := httptest.NewRecorder()
	srv.handleJobSuggestions(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestRoutes_RequireAuth(t *testing.T) {
	srv := newTestServer(newFakeStore())

	targets := []struct {
		method, path string
	}{
		{http.MethodPost, "/api/ai/extract-skills"},
		{http.MethodPost, "/api/ai/match-score"},
		{http.MethodGet, "/api/ai/recommendations"},
		{http.MethodGet, "/api/ai/jobs/" + uuid.NewString() + "/recommendations"},
		{http.MethodGet, "/api/ai/connections"},
		{http.MethodPost, "/api/ai/job-suggestions"},
	}
	for _, tt := range targets {
		req := httptest.NewRequest(tt.method, tt.path, nil)
		rec := httptest.NewRecorder()
		srv.handler.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusUnauthorized, rec.Code, "%s %s", tt.method, tt.path)
	}
}

func TestHealthEndpoint_NoAuth(t *testing.T) {
	srv := newTestServer(newFakeStore())

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()
	srv.handler.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	resp := decodeBody[map[string]string](t, rec)
	assert.Equal(t, "ok", resp["status"])
}
