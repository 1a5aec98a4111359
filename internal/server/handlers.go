package server

import (
	"context"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strconv"
	"time"

	"github.com/jonathan/resume-matcher/internal/types"
)

// Multipart field names accepted by the document endpoints.
const (
	fieldFile  = "file"
	fieldFiles = "files"
)

// healthTimeout bounds the upstream probe made by /health.
const healthTimeout = 5 * time.Second

// handleHealth returns server health and, when configured, the Scoring Service's.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if s.service == nil {
		s.jsonResponse(w, http.StatusOK, map[string]string{"status": "ok"})
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), healthTimeout)
	defer cancel()

	upstream, err := s.service.Health(ctx)
	if err != nil {
		s.jsonResponse(w, http.StatusServiceUnavailable, map[string]any{
			"status":          "degraded",
			"scoring_service": map[string]string{"error": err.Error()},
		})
		return
	}
	s.jsonResponse(w, http.StatusOK, map[string]any{
		"status":          "ok",
		"scoring_service": upstream,
	})
}

// handleState returns the current workflow snapshot.
func (s *Server) handleState(w http.ResponseWriter, _ *http.Request) {
	s.jsonResponse(w, http.StatusOK, s.controller.State().Snapshot())
}

// handleEvents streams a snapshot after every transition until the client goes away.
func (s *Server) handleEvents(w http.ResponseWriter, r *http.Request) {
	sse, err := NewSSEWriter(w)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, err.Error())
		return
	}

	states, cancel := s.controller.Subscribe()
	defer cancel()

	ticker := time.NewTicker(s.keepAlive)
	defer ticker.Stop()

	for {
		select {
		case <-r.Context().Done():
			return
		case <-ticker.C:
			if err := sse.WriteComment("keep-alive"); err != nil {
				return
			}
		case state, ok := <-states:
			if !ok {
				return
			}
			if err := sse.WriteEvent("state", state.Snapshot()); err != nil {
				s.logger.Debug("event stream closed", "error", err)
				return
			}
		}
	}
}

func (s *Server) handleToggle(w http.ResponseWriter, _ *http.Request) {
	s.jsonResponse(w, http.StatusOK, s.controller.Toggle().Snapshot())
}

func (s *Server) handleReset(w http.ResponseWriter, _ *http.Request) {
	s.jsonResponse(w, http.StatusOK, s.controller.ResetAll().Snapshot())
}

func (s *Server) handleSelectResume(w http.ResponseWriter, r *http.Request) {
	file, err := s.singleUpload(w, r)
	if err != nil {
		s.failureResponse(w, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, s.controller.SelectResume(file).Snapshot())
}

func (s *Server) handleSelectJobDescription(w http.ResponseWriter, r *http.Request) {
	file, err := s.singleUpload(w, r)
	if err != nil {
		s.failureResponse(w, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, s.controller.SelectJobDescription(file).Snapshot())
}

// handleAddResumes appends every "files" part, in order. A lone "file" part is accepted too.
func (s *Server) handleAddResumes(w http.ResponseWriter, r *http.Request) {
	if err := s.parseUpload(w, r); err != nil {
		s.failureResponse(w, err)
		return
	}
	headers := r.MultipartForm.File[fieldFiles]
	if len(headers) == 0 {
		headers = r.MultipartForm.File[fieldFile]
	}
	if len(headers) == 0 {
		s.failureResponse(w, &ErrValidation{Field: fieldFiles, Message: "at least one file is required"})
		return
	}

	files := make([]types.FileRef, 0, len(headers))
	for _, fh := range headers {
		file, err := readPart(fh)
		if err != nil {
			s.failureResponse(w, err)
			return
		}
		files = append(files, file)
	}
	s.jsonResponse(w, http.StatusOK, s.controller.AddResumes(files...).Snapshot())
}

// handleRemoveResume removes a comparison resume. Out-of-range indexes leave the selection unchanged.
func (s *Server) handleRemoveResume(w http.ResponseWriter, r *http.Request) {
	index, err := strconv.Atoi(r.PathValue("index"))
	if err != nil {
		s.failureResponse(w, &ErrValidation{Field: "index", Message: "must be an integer"})
		return
	}
	s.jsonResponse(w, http.StatusOK, s.controller.RemoveResume(index).Snapshot())
}

func (s *Server) handleDrop(w http.ResponseWriter, r *http.Request) {
	target, err := types.ParseDropTarget(r.PathValue("target"))
	if err != nil {
		s.failureResponse(w, &ErrValidation{Field: "target", Message: err.Error()})
		return
	}
	file, err := s.singleUpload(w, r)
	if err != nil {
		s.failureResponse(w, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, s.controller.AcceptDrop(target, file).Snapshot())
}

// handleSubmit runs one analysis or comparison and returns the resulting state.
// A client disconnect does not abandon the request; only its timeout does.
func (s *Server) handleSubmit(w http.ResponseWriter, r *http.Request) {
	if err := s.controller.Submit(context.WithoutCancel(r.Context())); err != nil {
		s.failureResponse(w, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, s.controller.State().Snapshot())
}

type reportResponse struct {
	Filename string `json:"filename"`
	Path     string `json:"path"`
	Bytes    int    `json:"bytes"`
	State    any    `json:"state"`
}

// handleReport exports the current analysis to the configured download directory.
func (s *Server) handleReport(w http.ResponseWriter, r *http.Request) {
	saved, err := s.controller.ExportReport(context.WithoutCancel(r.Context()))
	if err != nil {
		s.failureResponse(w, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, reportResponse{
		Filename: saved.Filename,
		Path:     saved.Path,
		Bytes:    saved.Bytes,
		State:    s.controller.State().Snapshot(),
	})
}

func (s *Server) parseUpload(w http.ResponseWriter, r *http.Request) error {
	r.Body = http.MaxBytesReader(w, r.Body, s.maxUploadBytes)
	if err := r.ParseMultipartForm(s.maxUploadBytes); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return &ErrValidation{Field: "body", Message: fmt.Sprintf("upload exceeds %d bytes", tooLarge.Limit)}
		}
		return &ErrValidation{Field: "body", Message: "expected a multipart/form-data upload"}
	}
	return nil
}

func (s *Server) singleUpload(w http.ResponseWriter, r *http.Request) (types.FileRef, error) {
	if err := s.parseUpload(w, r); err != nil {
		return types.FileRef{}, err
	}
	headers := r.MultipartForm.File[fieldFile]
	if len(headers) != 1 {
		return types.FileRef{}, &ErrValidation{Field: fieldFile, Message: "exactly one file is required"}
	}
	return readPart(headers[0])
}

func readPart(fh *multipart.FileHeader) (types.FileRef, error) {
	f, err := fh.Open()
	if err != nil {
		return types.FileRef{}, fmt.Errorf("failed to open upload %s: %w", fh.Filename, err)
	}
	defer f.Close() //nolint:errcheck

	data, err := io.ReadAll(f)
	if err != nil {
		return types.FileRef{}, fmt.Errorf("failed to read upload %s: %w", fh.Filename, err)
	}
	return types.NewFileRef(fh.Filename, data), nil
}
