package server

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/mateo/matchwork/internal/config"
	"github.com/mateo/matchwork/internal/extract"
	"github.com/mateo/matchwork/internal/llm"
	"github.com/mateo/matchwork/internal/match"
	"github.com/mateo/matchwork/internal/server/middleware"
	"github.com/mateo/matchwork/internal/store"
	"github.com/mateo/matchwork/internal/suggest"
	"github.com/mateo/matchwork/internal/types"
)

// Persistence is the read-only data access the matching routes need. The
// CRUD layer owns writes; nothing here mutates.
type Persistence interface {
	GetJobByID(ctx context.Context, id uuid.UUID) (*types.Job, error)
	GetUserByID(ctx context.Context, id uuid.UUID) (*types.User, error)
	ListActiveJobs(ctx context.Context, limit int) ([]types.Job, error)
	ListUsersBySkills(ctx context.Context, skills []string, exclude uuid.UUID, limit int) ([]types.User, error)
}

// Server represents the HTTP server hosting the matching API.
type Server struct {
	httpServer *http.Server
	db         Persistence
	scorer     *match.Scorer
	extractor  *extract.Extractor
	suggester  *suggest.Generator
	scoreCache *match.Cache
	jwtService *JWTService
	completer  llm.Completer
	validate   *validator.Validate
	log        *zap.Logger
	handler    http.Handler
}

// New creates a server wired to Postgres and, when an API key is configured,
// the Gemini enhancement. A failed Gemini setup degrades to heuristics-only
// rather than refusing to start.
func New(ctx context.Context, cfg *config.Config, log *zap.Logger) (*Server, error) {
	db, err := store.Connect(ctx, cfg.DatabaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	var completer llm.Completer
	if cfg.GeminiAPIKey != "" {
		completer, err = llm.NewGemini(ctx, cfg.GeminiAPIKey)
		if err != nil {
			log.Warn("generative enhancement disabled", zap.Error(err))
			completer = nil
		}
	}

	s := newServer(db, completer, extract.ProseTagger{}, NewJWTService(cfg.JWT), log)

	s.httpServer = &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      s.handler,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	return s, nil
}

// newServer wires the matching components and routes. Split from New so
// handler tests can inject fakes for persistence, tagging, and enhancement.
func newServer(db Persistence, completer llm.Completer, tagger extract.Tagger, jwtService *JWTService, log *zap.Logger) *Server {
	s := &Server{
		db:         db,
		scorer:     match.NewScorer(nounAdapter{tagger}),
		extractor:  extract.New(tagger, extract.WithCompleter(completer), extract.WithLogger(log)),
		suggester:  suggest.New(tagger, suggest.WithCompleter(completer), suggest.WithLogger(log)),
		scoreCache: match.NewCache(),
		jwtService: jwtService,
		completer:  completer,
		validate:   validator.New(),
		log:        log,
	}

	auth := middleware.Auth(s.jwtService)

	mux := http.NewServeMux()
	mux.HandleFunc("GET /health", s.handleHealth)

	mux.Handle("POST /api/ai/extract-skills", auth(http.HandlerFunc(s.handleExtractSkills)))
	mux.Handle("POST /api/ai/match-score", auth(http.HandlerFunc(s.handleMatchScore)))
	mux.Handle("GET /api/ai/recommendations", auth(http.HandlerFunc(s.handleRecommendations)))
	mux.Handle("GET /api/ai/jobs/{id}/recommendations", auth(http.HandlerFunc(s.handleJobRecommendations)))
	mux.Handle("GET /api/ai/connections", auth(http.HandlerFunc(s.handleConnections)))
	mux.Handle("POST /api/ai/job-suggestions", auth(http.HandlerFunc(s.handleJobSuggestions)))

	s.handler = s.withLogging(s.withCORS(mux))
	return s
}

// nounAdapter narrows an extract.Tagger to the scorer's NounExtractor.
type nounAdapter struct {
	tagger extract.Tagger
}

func (a nounAdapter) Nouns(text string) []string {
	return a.tagger.Nouns(text)
}

// Start begins listening for requests and blocks until SIGINT/SIGTERM,
// then shuts down gracefully.
func (s *Server) Start() error {
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	go func() {
		s.log.Info("server starting", zap.String("addr", s.httpServer.Addr))
		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			s.log.Fatal("server error", zap.Error(err))
		}
	}()

	<-stop
	s.log.Info("shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := s.httpServer.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}

	if s.completer != nil {
		if err := s.completer.Close(); err != nil {
			s.log.Warn("failed to close llm client", zap.Error(err))
		}
	}
	if closer, ok := s.db.(interface{ Close() }); ok {
		closer.Close()
	}

	s.log.Info("server stopped")
	return nil
}

// withCORS adds CORS headers.
func (s *Server) withCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// withLogging adds request logging.
func (s *Server) withLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		s.log.Info("request",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Duration("duration", time.Since(start)),
		)
	})
}

// handleHealth returns server health status.
func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	s.jsonResponse(w, http.StatusOK, map[string]string{"status": "ok"})
}

// jsonResponse writes a JSON response.
func (s *Server) jsonResponse(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		s.log.Error("failed to encode response", zap.Error(err))
	}
}

// errorResponse writes an error JSON response.
func (s *Server) errorResponse(w http.ResponseWriter, status int, message string) {
	s.jsonResponse(w, status, map[string]string{"error": message})
}

// parseQueryInt parses an integer query parameter with a default and an
// optional upper bound (0 disables the bound).
func parseQueryInt(r *http.Request, name string, def, max int) int {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return def
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 0 {
		return def
	}
	if max > 0 && n > max {
		return max
	}
	return n
}
