package scoring

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"mime"
	"net"
	"net/http"
	"net/url"
	"strings"

	"github.com/jonathan/resume-matcher/internal/schemas"
	"github.com/jonathan/resume-matcher/internal/types"
)

// DefaultBaseURL is where the Scoring Service listens in local development.
const DefaultBaseURL = "http://127.0.0.1:8000"

// DefaultUserAgent is the user agent string for Scoring Service requests.
const DefaultUserAgent = "ResumeMatcher/1.0"

// maxErrorBody caps how much of an error body is read for a detail message.
const maxErrorBody = 64 << 10

// Endpoint paths of the Scoring Service.
const (
	PathMatch     = "/match/"
	PathCompare   = "/compare-multiple/"
	PathReport    = "/generate-report/"
	PathHighlight = "/highlight-keywords/"
	PathHealth    = "/health"
	PathHistory   = "/history/"
)

// Options configures the client.
type Options struct {
	BaseURL    string
	HTTPClient *http.Client
	UserAgent  string
	Logger     *slog.Logger
}

// Client talks to the Scoring Service. Deadlines come from each call's context.
type Client struct {
	baseURL    string
	httpClient *http.Client
	userAgent  string
	logger     *slog.Logger
}

// Report is a generated binary report.
type Report struct {
	Data              []byte
	ContentType       string
	SuggestedFilename string
}

// NewClient creates a Client. Missing options fall back to defaults.
func NewClient(opts Options) *Client {
	baseURL := strings.TrimRight(strings.TrimSpace(opts.BaseURL), "/")
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	httpClient := opts.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{}
	}
	userAgent := opts.UserAgent
	if userAgent == "" {
		userAgent = DefaultUserAgent
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Client{
		baseURL:    baseURL,
		httpClient: httpClient,
		userAgent:  userAgent,
		logger:     logger,
	}
}

// BaseURL returns the service root the client targets.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// Match submits one resume and one job description for analysis.
func (c *Client) Match(ctx context.Context, resume, jd types.FileRef) (*types.AnalysisResult, error) {
	const op = "match"
	body, contentType, err := encodeParts([]part{
		{field: "resume", file: resume},
		{field: "jd", file: jd},
	})
	if err != nil {
		return nil, fmt.Errorf("%s: encode form: %w", op, err)
	}

	payload, _, err := c.do(ctx, op, http.MethodPost, PathMatch, contentType, body)
	if err != nil {
		return nil, err
	}
	if err := schemas.ValidateMatchResponse(payload); err != nil {
		return nil, &DecodeError{Op: op, Cause: err}
	}

	var result types.AnalysisResult
	if err := json.Unmarshal(payload, &result); err != nil {
		return nil, &DecodeError{Op: op, Cause: err}
	}
	return &result, nil
}

// CompareMultiple ranks several resumes against one job description.
// The service's result order is kept as-is.
func (c *Client) CompareMultiple(ctx context.Context, jd types.FileRef, resumes []types.FileRef) (*types.ComparisonResult, error) {
	const op = "compare"
	parts := make([]part, 0, len(resumes)+1)
	parts = append(parts, part{field: "jd", file: jd})
	for _, r := range resumes {
		parts = append(parts, part{field: "resumes", file: r})
	}
	body, contentType, err := encodeParts(parts)
	if err != nil {
		return nil, fmt.Errorf("%s: encode form: %w", op, err)
	}

	payload, _, err := c.do(ctx, op, http.MethodPost, PathCompare, contentType, body)
	if err != nil {
		return nil, err
	}
	if err := schemas.ValidateCompareResponse(payload); err != nil {
		return nil, &DecodeError{Op: op, Cause: err}
	}

	var result types.ComparisonResult
	if err := json.Unmarshal(payload, &result); err != nil {
		return nil, &DecodeError{Op: op, Cause: err}
	}
	return &result, nil
}

// GenerateReport posts a previously received analysis and returns the binary report.
// An empty body is returned as-is; judging it is the caller's concern.
func (c *Client) GenerateReport(ctx context.Context, result *types.AnalysisResult) (*Report, error) {
	const op = "generate report"
	if result == nil {
		return nil, fmt.Errorf("%s: no analysis provided", op)
	}
	body, err := json.Marshal(result)
	if err != nil {
		return nil, fmt.Errorf("%s: encode analysis: %w", op, err)
	}

	payload, header, err := c.do(ctx, op, http.MethodPost, PathReport, "application/json", body)
	if err != nil {
		return nil, err
	}
	return &Report{
		Data:              payload,
		ContentType:       header.Get("Content-Type"),
		SuggestedFilename: FilenameFromDisposition(header.Get("Content-Disposition")),
	}, nil
}

// HighlightKeywords asks the service to mark matched keywords in both documents.
func (c *Client) HighlightKeywords(ctx context.Context, resume, jd types.FileRef) (*types.Highlight, error) {
	const op = "highlight"
	body, contentType, err := encodeParts([]part{
		{field: "resume", file: resume},
		{field: "jd", file: jd},
	})
	if err != nil {
		return nil, fmt.Errorf("%s: encode form: %w", op, err)
	}

	payload, _, err := c.do(ctx, op, http.MethodPost, PathHighlight, contentType, body)
	if err != nil {
		return nil, err
	}
	var result types.Highlight
	if err := json.Unmarshal(payload, &result); err != nil {
		return nil, &DecodeError{Op: op, Cause: err}
	}
	return &result, nil
}

// SessionHistory fetches the service-side analyses recorded under a session id.
func (c *Client) SessionHistory(ctx context.Context, sessionID string) ([]types.SessionHistoryItem, error) {
	const op = "session history"
	sessionID = strings.TrimSpace(sessionID)
	if sessionID == "" {
		return nil, fmt.Errorf("%s: session id is required", op)
	}

	payload, _, err := c.do(ctx, op, http.MethodGet, PathHistory+url.PathEscape(sessionID), "", nil)
	if err != nil {
		return nil, err
	}
	var parsed struct {
		History []types.SessionHistoryItem `json:"history"`
	}
	if err := json.Unmarshal(payload, &parsed); err != nil {
		return nil, &DecodeError{Op: op, Cause: err}
	}
	return parsed.History, nil
}

// Health checks that the service is reachable.
func (c *Client) Health(ctx context.Context) (*types.HealthStatus, error) {
	const op = "health"
	payload, _, err := c.do(ctx, op, http.MethodGet, PathHealth, "", nil)
	if err != nil {
		return nil, err
	}
	var status types.HealthStatus
	if err := json.Unmarshal(payload, &status); err != nil {
		return nil, &DecodeError{Op: op, Cause: err}
	}
	return &status, nil
}

// do executes one request and returns the body of a 2xx response.
func (c *Client) do(ctx context.Context, op, method, path, contentType string, body []byte) ([]byte, http.Header, error) {
	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return nil, nil, fmt.Errorf("%s: create request: %w", op, err)
	}
	req.Header.Set("User-Agent", c.userAgent)
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}

	c.logger.Debug("scoring request", slog.String("op", op), slog.String("method", method), slog.String("path", path))

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, nil, &TransportError{Op: op, Timeout: isTimeout(ctx, err), Cause: err}
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		errBody, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		c.logger.Debug("scoring request failed", slog.String("op", op), slog.Int("status", resp.StatusCode))
		return nil, resp.Header, &ServiceError{
			Op:         op,
			StatusCode: resp.StatusCode,
			Detail:     errorDetail(errBody),
		}
	}

	payload, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, nil, &TransportError{Op: op, Timeout: isTimeout(ctx, err), Cause: err}
	}
	return payload, resp.Header, nil
}

// errorDetail extracts {"detail": "..."} from an error body, falling back to the raw text.
func errorDetail(body []byte) string {
	var parsed struct {
		Detail json.RawMessage `json:"detail"`
	}
	if err := json.Unmarshal(body, &parsed); err == nil && len(parsed.Detail) > 0 {
		var text string
		if err := json.Unmarshal(parsed.Detail, &text); err == nil {
			return strings.TrimSpace(text)
		}
		return strings.TrimSpace(string(parsed.Detail))
	}
	return strings.TrimSpace(string(body))
}

func isTimeout(ctx context.Context, err error) bool {
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(ctx.Err(), context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr) && netErr.Timeout()
}

// FilenameFromDisposition returns the filename parameter of a Content-Disposition
// header, or "" when the header is absent or unparseable.
func FilenameFromDisposition(header string) string {
	if header == "" {
		return ""
	}
	_, params, err := mime.ParseMediaType(header)
	if err != nil {
		return ""
	}
	return params["filename"]
}
