// Package types provides type definitions for structured data used throughout the resume-matcher system.
//
//nolint:revive // types is a standard Go package name pattern
package types

import (
	"bytes"
	"io"

	"github.com/h2non/filetype"
)

// DefaultContentType is reported for documents whose magic bytes are not recognized.
const DefaultContentType = "application/octet-stream"

// AcceptedExtensions are the file name extensions the Scoring Service accepts.
// Callers use them to warn; no file is rejected on them.
var AcceptedExtensions = []string{".pdf", ".docx"}

// FileRef is an opaque, immutable handle to a user-supplied document.
type FileRef struct {
	name string
	data []byte
}

// NewFileRef creates a FileRef over a private copy of data.
func NewFileRef(name string, data []byte) FileRef {
	buf := make([]byte, len(data))
	copy(buf, data)
	return FileRef{name: name, data: buf}
}

// Name returns the user-visible file name.
func (f FileRef) Name() string { return f.name }

// Size returns the document size in bytes.
func (f FileRef) Size() int64 { return int64(len(f.data)) }

// Open returns a fresh reader over the document content.
func (f FileRef) Open() io.Reader { return bytes.NewReader(f.data) }

// IsZero reports whether the FileRef is unset.
func (f FileRef) IsZero() bool { return f.name == "" && f.data == nil }

// ContentType sniffs the MIME type from the document's magic bytes.
func (f FileRef) ContentType() string {
	kind, err := filetype.Match(f.data)
	if err != nil || kind == filetype.Unknown {
		return DefaultContentType
	}
	return kind.MIME.Value
}

// IsDocument reports whether the content looks like a PDF or DOCX document.
// It is a hint for callers that want to warn early; nothing is rejected on it.
func (f FileRef) IsDocument() bool {
	kind, err := filetype.Match(f.data)
	if err != nil {
		return false
	}
	return kind.Extension == "pdf" || kind.Extension == "docx"
}
