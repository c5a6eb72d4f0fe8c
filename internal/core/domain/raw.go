package domain

// MetadataPublisher is the RawDocument metadata key holding the
// category directory name of an article file.
const MetadataPublisher = "publisher"

// RawDocument represents opaque bytes read from the corpus directory.
// It is the connector's output before parsing.
type RawDocument struct {
	// URI is the original location of the file.
	URI string

	// Content is the raw bytes.
	Content []byte

	// Metadata contains connector-specific key-value pairs.
	Metadata map[string]any
}

// Publisher returns the publisher recorded in metadata, or an empty string.
func (r *RawDocument) Publisher() string {
	if r == nil || r.Metadata == nil {
		return ""
	}
	p, _ := r.Metadata[MetadataPublisher].(string)
	return p
}
