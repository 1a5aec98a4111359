// Package scoring is the HTTP client for the external Scoring Service.
package scoring

import "fmt"

// TransportError reports a request that never produced an HTTP response:
// network failure, deadline exceeded, or a body that could not be read.
type TransportError struct {
	Op      string
	Timeout bool
	Cause   error
}

func (e *TransportError) Error() string {
	if e.Timeout {
		return fmt.Sprintf("%s: request timed out: %v", e.Op, e.Cause)
	}
	return fmt.Sprintf("%s: %v", e.Op, e.Cause)
}

func (e *TransportError) Unwrap() error {
	return e.Cause
}

// ServiceError reports a non-2xx response. Detail carries the service's own
// message when it sent one and is surfaced verbatim.
type ServiceError struct {
	Op         string
	StatusCode int
	Detail     string
}

func (e *ServiceError) Error() string {
	if e.Detail != "" {
		return e.Detail
	}
	return fmt.Sprintf("HTTP status %d", e.StatusCode)
}

// DecodeError reports a successful response whose body could not be understood.
type DecodeError struct {
	Op    string
	Cause error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("%s: invalid response: %v", e.Op, e.Cause)
}

func (e *DecodeError) Unwrap() error {
	return e.Cause
}
