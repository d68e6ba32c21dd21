package model

// RawAttachment is an artifact as captured by the runner: a name, a
// declared content type, and either a filesystem path or an in-memory
// body (exactly one of the two is expected to be present).
type RawAttachment struct {
	// Attachment name as declared by the test
	Name string `json:"name"`
	// Declared MIME type
	ContentType string `json:"content_type"`
	// Filesystem path to the artifact, if captured on disk
	Path string `json:"path,omitempty"`
	// In-memory body, if captured in memory
	Body []byte `json:"body,omitempty"`
}

// MaterializedAttachment is the presentation-ready form of an
// attachment: either an inline data URI or a stored blob reference.
// The content type may differ from the declared one after image
// re-encoding.
type MaterializedAttachment struct {
	// Attachment name as declared by the test
	Name string `json:"name"`
	// Resolved MIME type
	ContentType string `json:"content_type"`
	// Retry index of the attempt this attachment originated from
	Retry int `json:"retry"`
	// Inline data URI payload (inline mode)
	Body string `json:"body,omitempty"`
	// Blob reference relative to the output directory (stored mode)
	Ref string `json:"ref,omitempty"`
	// True when the source could not be read and the attachment
	// degraded to a placeholder
	Missing bool `json:"missing,omitempty"`
}
