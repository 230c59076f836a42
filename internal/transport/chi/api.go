package chi

import (
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/oapi-codegen/runtime"
)

// ErrorResponseCode is the machine-readable error code of an ErrorResponse.
type ErrorResponseCode string

// Error codes.
const (
	ErrorResponseCodeBadRequest    ErrorResponseCode = "bad_request"
	ErrorResponseCodeInvalidPage   ErrorResponseCode = "invalid_page"
	ErrorResponseCodeInvalidFilter ErrorResponseCode = "invalid_filter"
	ErrorResponseCodeNotFound      ErrorResponseCode = "not_found"
	ErrorResponseCodeUnauthorized  ErrorResponseCode = "unauthorized"
	ErrorResponseCodeInternalError ErrorResponseCode = "internal_error"
)

// ErrorResponse is the body of every non-2xx response.
type ErrorResponse struct {
	Code    ErrorResponseCode `json:"code"`
	Message string            `json:"message"`
}

// HealthResponse is the body of GET /health.
type HealthResponse struct {
	Status string            `json:"status"`
	Checks map[string]string `json:"checks"`
}

// OrganisationID is the {orgId} path parameter.
type OrganisationID = string

// SearchSamplesParams are the query parameters of the sample search.
type SearchSamplesParams struct {
	Page           *string `form:"page,omitempty" json:"page,omitempty"`
	PatientName    *string `form:"patientName,omitempty" json:"patientName,omitempty"`
	SampleBarcode  *string `form:"sampleBarcode,omitempty" json:"sampleBarcode,omitempty"`
	ActivationDate *string `form:"activationDate,omitempty" json:"activationDate,omitempty"`
	ResultDate     *string `form:"resultDate,omitempty" json:"resultDate,omitempty"`
	PatientID      *string `form:"patientId,omitempty" json:"patientId,omitempty"`
}

// ServerInterface represents all server handlers.
type ServerInterface interface {
	// (GET /org)
	ListOrganisations(w http.ResponseWriter, r *http.Request)
	// (GET /org/{orgId}/sample)
	SearchSamples(w http.ResponseWriter, r *http.Request, orgID OrganisationID, params SearchSamplesParams)
	// (GET /health)
	HealthCheck(w http.ResponseWriter, r *http.Request)
	// (GET /metrics)
	Metrics(w http.ResponseWriter, r *http.Request)
}

// InvalidParamFormatError reports a parameter that could not be bound.
type InvalidParamFormatError struct {
	ParamName string
	Err       error
}

func (e *InvalidParamFormatError) Error() string {
	return fmt.Sprintf("Invalid format for parameter %s: %s", e.ParamName, e.Err.Error())
}

func (e *InvalidParamFormatError) Unwrap() error { return e.Err }

// ChiServerOptions configures HandlerWithOptions.
type ChiServerOptions struct {
	// BaseURL prefixes the API routes. Health and metrics always live at the root.
	BaseURL          string
	BaseRouter       chi.Router
	Middlewares      []func(http.Handler) http.Handler
	ErrorHandlerFunc func(w http.ResponseWriter, r *http.Request, err error)
}

// serverInterfaceWrapper binds path and query parameters before calling the handler.
type serverInterfaceWrapper struct {
	handler            ServerInterface
	handlerMiddlewares []func(http.Handler) http.Handler
	errorHandlerFunc   func(w http.ResponseWriter, r *http.Request, err error)
}

func (siw *serverInterfaceWrapper) wrap(h http.Handler) http.Handler {
	for i := len(siw.handlerMiddlewares) - 1; i >= 0; i-- {
		h = siw.handlerMiddlewares[i](h)
	}
	return h
}

// ListOrganisations operation middleware.
func (siw *serverInterfaceWrapper) ListOrganisations(w http.ResponseWriter, r *http.Request) {
	siw.wrap(http.HandlerFunc(siw.handler.ListOrganisations)).ServeHTTP(w, r)
}

// SearchSamples operation middleware.
func (siw *serverInterfaceWrapper) SearchSamples(w http.ResponseWriter, r *http.Request) {
	var orgID OrganisationID
	err := runtime.BindStyledParameterWithOptions("simple", "orgId", chi.URLParam(r, "orgId"), &orgID,
		runtime.BindStyledParameterOptions{ParamLocation: runtime.ParamLocationPath, Explode: false, Required: true})
	if err != nil {
		siw.errorHandlerFunc(w, r, &InvalidParamFormatError{ParamName: "orgId", Err: err})
		return
	}

	var params SearchSamplesParams
	query := r.URL.Query()
	for name, dest := range map[string]**string{
		"page":           &params.Page,
		"patientName":    &params.PatientName,
		"sampleBarcode":  &params.SampleBarcode,
		"activationDate": &params.ActivationDate,
		"resultDate":     &params.ResultDate,
		"patientId":      &params.PatientID,
	} {
		if err := runtime.BindQueryParameter("form", true, false, name, query, dest); err != nil {
			siw.errorHandlerFunc(w, r, &InvalidParamFormatError{ParamName: name, Err: err})
			return
		}
	}

	siw.wrap(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		siw.handler.SearchSamples(w, r, orgID, params)
	})).ServeHTTP(w, r)
}

// HealthCheck operation middleware.
func (siw *serverInterfaceWrapper) HealthCheck(w http.ResponseWriter, r *http.Request) {
	siw.wrap(http.HandlerFunc(siw.handler.HealthCheck)).ServeHTTP(w, r)
}

// Metrics operation middleware.
func (siw *serverInterfaceWrapper) Metrics(w http.ResponseWriter, r *http.Request) {
	siw.wrap(http.HandlerFunc(siw.handler.Metrics)).ServeHTTP(w, r)
}

// HandlerWithOptions mounts the routes of si on options.BaseRouter.
func HandlerWithOptions(si ServerInterface, options ChiServerOptions) http.Handler {
	r := options.BaseRouter
	if r == nil {
		r = chi.NewRouter()
	}
	if options.ErrorHandlerFunc == nil {
		options.ErrorHandlerFunc = func(w http.ResponseWriter, _ *http.Request, err error) {
			writeError(w, http.StatusBadRequest, ErrorResponseCodeBadRequest, err.Error())
		}
	}
	wrapper := serverInterfaceWrapper{
		handler:            si,
		handlerMiddlewares: options.Middlewares,
		errorHandlerFunc:   options.ErrorHandlerFunc,
	}

	r.Group(func(r chi.Router) {
		r.Get(options.BaseURL+"/org", wrapper.ListOrganisations)
	})
	r.Group(func(r chi.Router) {
		r.Get(options.BaseURL+"/org/{orgId}/sample", wrapper.SearchSamples)
	})
	r.Group(func(r chi.Router) {
		r.Get("/health", wrapper.HealthCheck)
	})
	r.Group(func(r chi.Router) {
		r.Get("/metrics", wrapper.Metrics)
	})
	return r
}
