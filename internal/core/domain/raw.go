package domain

// RawDocument represents opaque bytes read from disk before parsing.
// It is the connector's output and the normaliser's input.
type RawDocument struct {
	// URI is the original location (file path).
	URI string

	// MIMEType is the detected content type.
	MIMEType string

	// Content is the raw bytes, either plain XML or a zip archive.
	Content []byte

	// Metadata contains connector-specific key-value pairs.
	Metadata map[string]any
}

// MIME types for the two physical forms of a requirements document.
const (
	MIMETypeReqIF  = "application/xml+reqif"
	MIMETypeReqIFZ = "application/zip+reqif"
)

// ChangeType represents the type of file change.
type ChangeType int

const (
	// ChangeCreated indicates a new file.
	ChangeCreated ChangeType = iota

	// ChangeUpdated indicates a modified file.
	ChangeUpdated

	// ChangeDeleted indicates a removed or renamed file.
	ChangeDeleted
)

// String returns the string representation.
func (c ChangeType) String() string {
	switch c {
	case ChangeCreated:
		return "created"
	case ChangeUpdated:
		return "updated"
	case ChangeDeleted:
		return "deleted"
	default:
		return "unknown"
	}
}

// FileChange is a change event for a document under a watched root.
type FileChange struct {
	Type ChangeType
	Path string
}
