// Package service exposes the assessment engine over HTTP. Handlers are
// thin: decode, call the pure engine, encode. All state lives in the
// store; the engine itself is shared read-only.
package service

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"go.uber.org/zap"

	"github.com/bluepointglobal-afk/afaq-esg-navigator-sub000/internal/assessment"
	"github.com/bluepointglobal-afk/afaq-esg-navigator-sub000/internal/config"
	"github.com/bluepointglobal-afk/afaq-esg-navigator-sub000/internal/model"
	"github.com/bluepointglobal-afk/afaq-esg-navigator-sub000/internal/store"
)

// Service bundles the engine with its persistence layer.
type Service struct {
	engine *assessment.Engine
	store  store.Store
}

// New creates the HTTP service. The store may be nil, in which case the
// stateless endpoints still work and assessment persistence is skipped.
func New(engine *assessment.Engine, st store.Store) *Service {
	return &Service{engine: engine, store: st}
}

// Router builds the chi router with CORS and rate limiting applied.
func (s *Service) Router(cfg config.ServerConfig) chi.Router {
	r := chi.NewRouter()

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: cfg.AllowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		MaxAge:         300,
	}))
	r.Use(RateLimit(cfg.RateLimitRPS, cfg.RateLimitBurst))

	r.Get("/health", s.handleHealth)
	r.Route("/v1", func(r chi.Router) {
		r.Get("/template", s.handleTemplate)
		r.Post("/preview", s.handlePreview)
		r.Post("/assessments", s.handleCreateAssessment)
		r.Get("/assessments", s.handleListAssessments)
		r.Get("/assessments/{id}", s.handleGetAssessment)
	})
	return r
}

func (s *Service) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// handleTemplate builds the questionnaire template for the jurisdiction
// and listing status given as query parameters.
func (s *Service) handleTemplate(w http.ResponseWriter, r *http.Request) {
	profile := model.OrgProfile{
		Jurisdiction:  r.URL.Query().Get("jurisdiction"),
		ListingStatus: r.URL.Query().Get("listing_status"),
	}
	if profile.Jurisdiction == "" || profile.ListingStatus == "" {
		writeError(w, http.StatusBadRequest, "jurisdiction and listing_status are required")
		return
	}

	t := s.engine.BuildTemplate(&profile)
	if t.QuestionCount() == 0 {
		writeError(w, http.StatusNotFound, "no applicable questions for this profile")
		return
	}
	writeJSON(w, http.StatusOK, t)
}

// assessRequest is the body for preview and assessment creation.
type assessRequest struct {
	Profile model.OrgProfile                `json:"profile"`
	Answers map[string]model.QuestionAnswer `json:"answers"`
}

func (s *Service) runAssessment(w http.ResponseWriter, r *http.Request) *assessment.Report {
	var req assessRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return nil
	}
	if req.Profile.Jurisdiction == "" || req.Profile.ListingStatus == "" {
		writeError(w, http.StatusBadRequest, "profile.jurisdiction and profile.listing_status are required")
		return nil
	}

	answers := model.AnswerSet{}
	for id, a := range req.Answers {
		a.QuestionID = id
		answers[id] = a
	}

	report, err := s.engine.Run(&req.Profile, answers)
	if err != nil {
		zap.L().Error("service: assessment failed",
			zap.String("org", req.Profile.Name),
			zap.Error(err),
		)
		writeError(w, http.StatusInternalServerError, "assessment failed")
		return nil
	}
	return report
}

// handlePreview runs the pipeline without persisting anything.
func (s *Service) handlePreview(w http.ResponseWriter, r *http.Request) {
	report := s.runAssessment(w, r)
	if report == nil {
		return
	}
	writeJSON(w, http.StatusOK, report)
}

// handleCreateAssessment runs the pipeline and stores the snapshot.
func (s *Service) handleCreateAssessment(w http.ResponseWriter, r *http.Request) {
	report := s.runAssessment(w, r)
	if report == nil {
		return
	}

	if s.store != nil {
		if err := s.store.SaveAssessment(r.Context(), report); err != nil {
			zap.L().Error("service: save assessment failed",
				zap.String("id", report.ID),
				zap.Error(err),
			)
			writeError(w, http.StatusInternalServerError, "failed to persist assessment")
			return
		}
	}
	writeJSON(w, http.StatusCreated, report)
}

func (s *Service) handleGetAssessment(w http.ResponseWriter, r *http.Request) {
	if s.store == nil {
		writeError(w, http.StatusNotFound, "persistence is not configured")
		return
	}
	id := chi.URLParam(r, "id")

	report, err := s.store.GetAssessment(r.Context(), id)
	if err != nil {
		zap.L().Error("service: get assessment failed", zap.String("id", id), zap.Error(err))
		writeError(w, http.StatusInternalServerError, "failed to load assessment")
		return
	}
	if report == nil {
		writeError(w, http.StatusNotFound, "assessment not found")
		return
	}
	writeJSON(w, http.StatusOK, report)
}

func (s *Service) handleListAssessments(w http.ResponseWriter, r *http.Request) {
	if s.store == nil {
		writeJSON(w, http.StatusOK, []store.AssessmentSummary{})
		return
	}

	filter := store.ListFilter{
		OrgName: r.URL.Query().Get("org"),
		Limit:   50,
	}
	summaries, err := s.store.ListAssessments(r.Context(), filter)
	if err != nil {
		zap.L().Error("service: list assessments failed", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "failed to list assessments")
		return
	}
	if summaries == nil {
		summaries = []store.AssessmentSummary{}
	}
	writeJSON(w, http.StatusOK, summaries)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		zap.L().Warn("service: encode response", zap.Error(err))
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
