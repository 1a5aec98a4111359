package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/jonathan/resume-matcher/internal/fileset"
	"github.com/jonathan/resume-matcher/internal/report"
	"github.com/jonathan/resume-matcher/internal/scoring"
	"github.com/jonathan/resume-matcher/internal/workflow"
	"github.com/stretchr/testify/assert"
)

func TestErrValidation(t *testing.T) {
	err := &ErrValidation{Field: "index", Message: "must be an integer"}
	assert.Equal(t, "validation error: index - must be an integer", err.Error())
	assert.Equal(t, http.StatusBadRequest, HTTPStatus(err))
}

func TestHTTPStatus(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"busy", workflow.ErrBusy, http.StatusConflict},
		{"stale", workflow.ErrStale, http.StatusConflict},
		{"no analysis", report.ErrNoAnalysis, http.StatusUnprocessableEntity},
		{"no exporter", workflow.ErrNoExporter, http.StatusNotImplemented},
		{"selection", &fileset.ValidationError{Message: "Please select both files to continue"}, http.StatusUnprocessableEntity},
		{"timeout", &scoring.TransportError{Op: "match", Timeout: true, Cause: context.DeadlineExceeded}, http.StatusGatewayTimeout},
		{"transport", &scoring.TransportError{Op: "match", Cause: errors.New("refused")}, http.StatusBadGateway},
		{"service", &scoring.ServiceError{StatusCode: 400, Detail: "bad file"}, http.StatusBadGateway},
		{"decode", &scoring.DecodeError{Op: "match", Cause: errors.New("bad json")}, http.StatusBadGateway},
		{"report", &report.ReportGenerationError{Message: "received empty report"}, http.StatusBadGateway},
		{"wrapped", fmt.Errorf("submit: %w", workflow.ErrBusy), http.StatusConflict},
		{"unknown", errors.New("boom"), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, HTTPStatus(tt.err))
		})
	}
}
