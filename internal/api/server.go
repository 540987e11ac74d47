package api

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"carelens/domain/core"
	"carelens/domain/dataset"
	"carelens/internal"
	"carelens/internal/checks"
	"carelens/internal/errors"
	"carelens/internal/modelval"
	"carelens/internal/thresholds"
	"carelens/ports"
)

// Server exposes the validation engine over HTTP. It is a thin shell: it
// decodes requests, invokes the engine, optionally persists the report, and
// encodes the result.
type Server struct {
	router    chi.Router
	runner    *checks.Runner
	validator *modelval.Validator
	reports   ports.ReportRepository // optional; nil disables persistence
	cfg       *thresholds.Config
	logger    *internal.Logger
}

// NewServer creates an API server over the given threshold config. The
// report repository may be nil when no database is configured.
func NewServer(cfg *thresholds.Config, reports ports.ReportRepository) *Server {
	s := &Server{
		router: chi.NewRouter(),
		runner: checks.NewRunner(
			checks.NewNullCheck(),
			checks.NewSchemaCheck(dataset.MedicalCostSchema()),
			checks.NewAnomalyCheck(),
		),
		validator: modelval.NewValidator(),
		reports:   reports,
		cfg:       cfg,
		logger:    internal.DefaultLogger.WithComponent("API"),
	}

	s.setupMiddleware()
	s.setupRoutes()
	return s
}

// Handler returns the HTTP handler for this server
func (s *Server) Handler() http.Handler {
	return s.router
}

func (s *Server) setupMiddleware() {
	s.router.Use(middleware.Logger)
	s.router.Use(middleware.Recoverer)
	s.router.Use(middleware.Compress(5))
}

func (s *Server) setupRoutes() {
	s.router.Get("/healthz", s.handleHealth)

	s.router.Route("/api", func(r chi.Router) {
		r.Post("/quality/checks", s.handleRunChecks)
		r.Post("/models/validate", s.handleValidateModel)
		r.Post("/models/compare", s.handleCompareVersions)
		r.Get("/reports/{id}", s.handleGetReport)
		r.Get("/reports", s.handleListReports)
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// handleRunChecks runs the full quality check set over an inline dataset.
// A report full of failed checks is still a 200; "failed" is a data quality
// outcome, not a system failure.
func (s *Server) handleRunChecks(w http.ResponseWriter, r *http.Request) {
	var req runChecksRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, http.StatusBadRequest, errors.InvalidInput("malformed request body"))
		return
	}

	ds, err := req.Dataset.toDataset()
	if err != nil {
		s.writeError(w, http.StatusBadRequest, errors.DataLoad("could not materialize dataset", err))
		return
	}

	report := s.runner.Run(ds, s.cfg)

	if s.reports != nil {
		if err := s.reports.SaveQualityReport(r.Context(), &report); err != nil {
			s.logger.Error("failed to persist quality report %s: %v", report.ID, err)
		}
	}

	s.writeJSON(w, http.StatusOK, report)
}

func (s *Server) handleValidateModel(w http.ResponseWriter, r *http.Request) {
	var req validateModelRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, http.StatusBadRequest, errors.InvalidInput("malformed request body"))
		return
	}

	report, err := s.validator.Validate(modelval.Input{
		ModelName:    req.ModelName,
		ModelVersion: req.ModelVersion,
		Predictions:  req.Predictions,
		Actuals:      req.Actuals,
		OutputType:   req.OutputType,
		Attributes:   req.Attributes,
	}, s.cfg)
	if err != nil {
		// Structural failures (empty or misaligned sequences) are the caller's fault
		s.writeError(w, http.StatusBadRequest, errors.New(errors.CodeDimensionMismatch, err.Error()))
		return
	}

	if s.reports != nil {
		if err := s.reports.SaveValidationReport(r.Context(), report); err != nil {
			s.logger.Error("failed to persist validation report %s: %v", report.ID, err)
		}
	}

	s.writeJSON(w, http.StatusOK, report)
}

func (s *Server) handleCompareVersions(w http.ResponseWriter, r *http.Request) {
	var req compareVersionsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, http.StatusBadRequest, errors.InvalidInput("malformed request body"))
		return
	}

	comparison := modelval.CompareVersions(&req.Base, &req.Compare)
	s.writeJSON(w, http.StatusOK, comparison)
}

func (s *Server) handleGetReport(w http.ResponseWriter, r *http.Request) {
	if s.reports == nil {
		s.writeError(w, http.StatusNotFound, errors.NotFound("report storage"))
		return
	}

	id, err := core.ParseReportID(chi.URLParam(r, "id"))
	if err != nil {
		s.writeError(w, http.StatusBadRequest, errors.InvalidInput(err.Error()))
		return
	}

	stored, err := s.reports.GetReport(r.Context(), id)
	if err != nil {
		if core.IsNotFoundError(err) {
			s.writeError(w, http.StatusNotFound, errors.NotFound("report"))
			return
		}
		s.writeError(w, http.StatusInternalServerError, errors.DatabaseError("failed to load report"))
		return
	}

	s.writeJSON(w, http.StatusOK, stored)
}

func (s *Server) handleListReports(w http.ResponseWriter, r *http.Request) {
	if s.reports == nil {
		s.writeError(w, http.StatusNotFound, errors.NotFound("report storage"))
		return
	}

	kind := ports.ReportKind(r.URL.Query().Get("kind"))
	if kind == "" {
		kind = ports.ReportKindQuality
	}

	stored, err := s.reports.ListReports(r.Context(), kind, 50)
	if err != nil {
		s.writeError(w, http.StatusInternalServerError, errors.DatabaseError("failed to list reports"))
		return
	}

	s.writeJSON(w, http.StatusOK, stored)
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		s.logger.Error("failed to encode response: %v", err)
	}
}

func (s *Server) writeError(w http.ResponseWriter, status int, appErr *errors.AppError) {
	s.writeJSON(w, status, errorResponse{Error: appErr.Message, Code: appErr.Code})
}
