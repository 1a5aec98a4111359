package types

// StatusKind classifies a Status message explicitly.
type StatusKind string

// Status kinds
const (
	StatusNone    StatusKind = ""
	StatusInfo    StatusKind = "info"
	StatusSuccess StatusKind = "success"
	StatusFailure StatusKind = "failure"
)

// Status is the transient, human-readable outcome of the last operation.
type Status struct {
	Kind    StatusKind `json:"kind,omitempty"`
	Message string     `json:"message,omitempty"`
}

// Info builds a neutral progress status.
func Info(message string) Status { return Status{Kind: StatusInfo, Message: message} }

// Success builds a success status.
func Success(message string) Status { return Status{Kind: StatusSuccess, Message: message} }

// Failure builds a failure status.
func Failure(message string) Status { return Status{Kind: StatusFailure, Message: message} }

// IsZero reports whether no status is set.
func (s Status) IsZero() bool { return s.Kind == StatusNone && s.Message == "" }

// Succeeded reports whether the status records a success.
func (s Status) Succeeded() bool { return s.Kind == StatusSuccess }

// Failed reports whether the status records a failure.
func (s Status) Failed() bool { return s.Kind == StatusFailure }
