// Package server exposes the upload and analysis workflow as a local HTTP intent API.
package server

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/jonathan/resume-matcher/internal/fileset"
	"github.com/jonathan/resume-matcher/internal/report"
	"github.com/jonathan/resume-matcher/internal/scoring"
	"github.com/jonathan/resume-matcher/internal/workflow"
)

// ErrValidation indicates a malformed intent request
type ErrValidation struct {
	Field   string
	Message string
}

func (e *ErrValidation) Error() string {
	return fmt.Sprintf("validation error: %s - %s", e.Field, e.Message)
}

// HTTPStatus returns the appropriate HTTP status code for an error
func HTTPStatus(err error) int {
	switch {
	case errors.Is(err, workflow.ErrBusy), errors.Is(err, workflow.ErrStale):
		return http.StatusConflict
	case errors.Is(err, report.ErrNoAnalysis):
		return http.StatusUnprocessableEntity
	case errors.Is(err, workflow.ErrNoExporter):
		return http.StatusNotImplemented
	}

	var (
		badRequest *ErrValidation
		selection  *fileset.ValidationError
		transport  *scoring.TransportError
		service    *scoring.ServiceError
		decode     *scoring.DecodeError
		generation *report.ReportGenerationError
	)
	switch {
	case errors.As(err, &badRequest):
		return http.StatusBadRequest
	case errors.As(err, &selection):
		return http.StatusUnprocessableEntity
	case errors.As(err, &transport):
		if transport.Timeout {
			return http.StatusGatewayTimeout
		}
		return http.StatusBadGateway
	case errors.As(err, &service), errors.As(err, &decode), errors.As(err, &generation):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
