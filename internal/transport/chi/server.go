package chi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/kailas-cloud/labdex/internal/domain"
	domorg "github.com/kailas-cloud/labdex/internal/domain/organisation"
	"github.com/kailas-cloud/labdex/internal/domain/search/params"
	"github.com/kailas-cloud/labdex/internal/domain/search/view"
	"github.com/kailas-cloud/labdex/internal/logger"
	healthuc "github.com/kailas-cloud/labdex/internal/usecase/health"
)

// errorHandler tries to handle a domain error. Returns true if handled.
type errorHandler func(w http.ResponseWriter, err error, msg string) bool

// Searcher runs an organisation-scoped sample search.
type Searcher interface {
	Search(ctx context.Context, organisationID string, p params.Params) (view.Envelope, error)
}

// Organisations lists organisations for the selector.
type Organisations interface {
	List(ctx context.Context) ([]domorg.Organisation, error)
}

// HealthChecker reports component health.
type HealthChecker interface {
	Check(ctx context.Context) healthuc.Report
}

// Server implements ServerInterface.
type Server struct {
	search        Searcher
	organisations Organisations
	health        HealthChecker
	logger        *zap.Logger
	errorHandlers []errorHandler
}

var _ ServerInterface = (*Server)(nil)

// NewServer creates an HTTP API server.
func NewServer(
	search Searcher,
	organisations Organisations,
	health HealthChecker,
	logger *zap.Logger,
) *Server {
	s := &Server{
		search:        search,
		organisations: organisations,
		health:        health,
		logger:        logger,
	}
	s.errorHandlers = []errorHandler{
		paramErrorHandler,
		sentinelHandler(domain.ErrInvalidPage, http.StatusBadRequest, ErrorResponseCodeInvalidPage),
		sentinelHandler(domain.ErrInvalidFilter, http.StatusBadRequest, ErrorResponseCodeInvalidFilter),
		sentinelHandler(domain.ErrNotFound, http.StatusNotFound, ErrorResponseCodeNotFound),
	}
	return s
}

// ListOrganisations handles GET {base}/org.
func (s *Server) ListOrganisations(w http.ResponseWriter, r *http.Request) {
	orgs, err := s.organisations.List(r.Context())
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, view.NewOrganisationList(orgs))
}

// SearchSamples handles GET {base}/org/{orgId}/sample.
func (s *Server) SearchSamples(
	w http.ResponseWriter, r *http.Request, orgID OrganisationID, req SearchSamplesParams,
) {
	p, err := params.Parse(params.Raw{
		Page:           req.Page,
		PatientName:    req.PatientName,
		SampleBarcode:  req.SampleBarcode,
		ActivationDate: req.ActivationDate,
		ResultDate:     req.ResultDate,
		PatientID:      req.PatientID,
	})
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}

	env, err := s.search.Search(r.Context(), orgID, p)
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, env)
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

	writeJSON(w, httpStatus, HealthResponse{
		Status: string(report.Status),
		Checks: checks,
	})
}

// Metrics handles GET /metrics.
func (s *Server) Metrics(w http.ResponseWriter, r *http.Request) {
	promhttp.Handler().ServeHTTP(w, r)
}

// BindErrorHandler answers parameter binding failures.
func (s *Server) BindErrorHandler(w http.ResponseWriter, r *http.Request, err error) {
	logger.FromContextOr(r.Context(), s.logger).Debug("bad request", zap.Error(err))
	writeError(w, http.StatusBadRequest, ErrorResponseCodeBadRequest, err.Error())
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code ErrorResponseCode, message string) {
	writeJSON(w, status, ErrorResponse{
		Code:    code,
		Message: message,
	})
}

// safeDomainMessage returns a sentinel error message for the client without exposing internals.
func safeDomainMessage(err error) string {
	sentinels := []error{
		domain.ErrOrganisationNotFound,
		domain.ErrNotFound,
		domain.ErrInvalidPage,
		domain.ErrInvalidFilter,
	}
	for _, s := range sentinels {
		if errors.Is(err, s) {
			return s.Error()
		}
	}
	return "internal error"
}

// sentinelHandler returns an errorHandler that matches a single sentinel error.
func sentinelHandler(sentinel error, status int, code ErrorResponseCode) errorHandler {
	return func(w http.ResponseWriter, err error, msg string) bool {
		if !errors.Is(err, sentinel) {
			return false
		}
		writeError(w, status, code, msg)
		return true
	}
}

// paramErrorHandler echoes the offending parameter, which came from the client.
func paramErrorHandler(w http.ResponseWriter, err error, _ string) bool {
	var pe *domain.ParamError
	if !errors.As(err, &pe) {
		return false
	}
	code := ErrorResponseCodeInvalidFilter
	if errors.Is(pe.Kind, domain.ErrInvalidPage) {
		code = ErrorResponseCodeInvalidPage
	}
	writeError(w, http.StatusBadRequest, code, pe.Error())
	return true
}

func (s *Server) handleDomainError(w http.ResponseWriter, r *http.Request, err error) {
	log := logger.FromContextOr(r.Context(), s.logger)
	msg := safeDomainMessage(err)
	for _, h := range s.errorHandlers {
		if h(w, err, msg) {
			log.Warn("domain error", zap.Error(err))
			return
		}
	}
	log.Error("internal error", zap.Error(err))
	writeError(w, http.StatusInternalServerError, ErrorResponseCodeInternalError, "internal error")
}
