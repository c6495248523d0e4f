package chi

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/lernwerk/compass/internal/metrics"
	healthuc "github.com/lernwerk/compass/internal/usecase/health"
	quizuc "github.com/lernwerk/compass/internal/usecase/quiz"
	scoringuc "github.com/lernwerk/compass/internal/usecase/scoring"
)

// Request defaults.
const (
	DefaultBatchSize    = 20
	DefaultMaxBodyBytes = 1 << 20
)

// Server is the HTTP API of the compatibility engine.
type Server struct {
	scoring       *scoringuc.Service
	quiz          *quizuc.Service
	health        *healthuc.Service
	logger        *zap.Logger
	validate      *validator.Validate
	errorHandlers []errorHandler

	minScore     float64
	batchSize    int
	maxBodyBytes int64
}

// NewServer creates an HTTP API server.
func NewServer(
	scoring *scoringuc.Service,
	quiz *quizuc.Service,
	health *healthuc.Service,
	logger *zap.Logger,
) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Server{
		scoring:       scoring,
		quiz:          quiz,
		health:        health,
		logger:        logger,
		validate:      validator.New(),
		errorHandlers: defaultErrorHandlers(),
		batchSize:     DefaultBatchSize,
		maxBodyBytes:  DefaultMaxBodyBytes,
	}
}

// WithScoreDefaults sets the min score and batch size used when a score
// request omits them.
func (s *Server) WithScoreDefaults(minScore float64, batchSize int) *Server {
	if minScore >= 0 && minScore <= 1 {
		s.minScore = minScore
	}
	if batchSize > 0 {
		s.batchSize = batchSize
	}
	return s
}

// WithMaxBodyBytes limits the size of request bodies.
func (s *Server) WithMaxBodyBytes(n int64) *Server {
	if n > 0 {
		s.maxBodyBytes = n
	}
	return s
}

// Register mounts the API routes on r.
func (s *Server) Register(r chi.Router) {
	r.Get("/health", s.HealthCheck)
	r.Get("/metrics", s.Metrics)

	r.Route("/api/v1", func(r chi.Router) {
		r.Post("/score", s.Score)
		r.Route("/quiz/sessions", func(r chi.Router) {
			r.Post("/", s.StartQuiz)
			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", s.GetQuiz)
				r.Delete("/", s.DeleteQuiz)
				r.Post("/tiles/{tile}/toggle", s.ToggleTile)
				r.Post("/advance", s.AdvanceQuiz)
				r.Post("/answers", s.AnswerQuiz)
				r.Get("/result", s.QuizResult)
			})
		})
	})
}

// --- Score ---

// Score handles POST /api/v1/score.
func (s *Server) Score(w http.ResponseWriter, r *http.Request) {
	var req ScoreRequest
	if !s.decode(w, r, &req) {
		return
	}

	params := req.Applicant.params()
	if id := req.Applicant.QuizSessionID; id != "" && len(params.Traits) == 0 && len(params.WorkValues) == 0 {
		res, err := s.quiz.Result(r.Context(), id)
		if err != nil {
			s.handleDomainError(w, r, err)
			return
		}
		params.Traits = res.Traits.Slice()
		params.WorkValues = res.WorkValues.Slice()
	}

	minScore, batchSize := s.minScore, s.batchSize
	if req.MinScore != nil {
		minScore = *req.MinScore
	}
	if req.BatchSize != nil {
		batchSize = *req.BatchSize
	}

	out, err := s.scoring.ScoreBatch(r.Context(), params, candidateParams(req.Candidates), minScore, batchSize)
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, scoreResponse(out))
}

// --- Quiz ---

// StartQuiz handles POST /api/v1/quiz/sessions.
func (s *Server) StartQuiz(w http.ResponseWriter, r *http.Request) {
	sess, err := s.quiz.Start(r.Context())
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}
	w.Header().Set("Location", "/api/v1/quiz/sessions/"+sess.ID())
	writeJSON(w, http.StatusCreated, sessionResponse(sess))
}

// GetQuiz handles GET /api/v1/quiz/sessions/{id}.
func (s *Server) GetQuiz(w http.ResponseWriter, r *http.Request) {
	sess, err := s.quiz.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, sessionResponse(sess))
}

// DeleteQuiz handles DELETE /api/v1/quiz/sessions/{id}.
func (s *Server) DeleteQuiz(w http.ResponseWriter, r *http.Request) {
	if err := s.quiz.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		s.handleDomainError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ToggleTile handles POST /api/v1/quiz/sessions/{id}/tiles/{tile}/toggle.
func (s *Server) ToggleTile(w http.ResponseWriter, r *http.Request) {
	sess, selected, err := s.quiz.ToggleTile(r.Context(), chi.URLParam(r, "id"), chi.URLParam(r, "tile"))
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, ToggleResponse{Selected: selected, Session: sessionResponse(sess)})
}

// AdvanceQuiz handles POST /api/v1/quiz/sessions/{id}/advance.
func (s *Server) AdvanceQuiz(w http.ResponseWriter, r *http.Request) {
	sess, err := s.quiz.Advance(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, sessionResponse(sess))
}

// AnswerQuiz handles POST /api/v1/quiz/sessions/{id}/answers.
func (s *Server) AnswerQuiz(w http.ResponseWriter, r *http.Request) {
	var req AnswerRequest
	if !s.decode(w, r, &req) {
		return
	}
	sess, err := s.quiz.Answer(r.Context(), chi.URLParam(r, "id"), *req.Option)
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, sessionResponse(sess))
}

// QuizResult handles GET /api/v1/quiz/sessions/{id}/result.
func (s *Server) QuizResult(w http.ResponseWriter, r *http.Request) {
	res, err := s.quiz.Result(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, quizResultResponse(res))
}

// --- Health ---

// HealthResponse is the body of GET /health.
type HealthResponse struct {
	Status string            `json:"status"`
	Checks map[string]string `json:"checks"`
}

// HealthCheck handles GET /health.
func (s *Server) HealthCheck(w http.ResponseWriter, r *http.Request) {
	report := s.health.Check(r.Context())

	checks := make(map[string]string, len(report.Checks))
	for k, v := range report.Checks {
		checks[k] = string(v)
	}

	httpStatus := http.StatusOK
	if report.Status != healthuc.Healthy {
		httpStatus = http.StatusServiceUnavailable
	}
	writeJSON(w, httpStatus, HealthResponse{Status: string(report.Status), Checks: checks})
}

// Metrics handles GET /metrics.
func (s *Server) Metrics(w http.ResponseWriter, r *http.Request) {
	metrics.Handler().ServeHTTP(w, r)
}
