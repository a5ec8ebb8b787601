// Package format defines the interface for source-schema adapters.
package format

import (
	"errors"
	"io"

	"github.com/scholarly-tools/litingest/doc"
)

// ErrMissingMetadata reports a record without the mandatory metadata block.
// It is attributable to one input file and never aborts a batch.
var ErrMissingMetadata = errors.New("missing metadata block")

// Format defines the interface that all schema adapters must implement.
type Format interface {
	// Name returns the format identifier (e.g., "jats", "pubmed")
	Name() string

	// Description returns a human-readable format description
	Description() string

	// Extensions returns file extensions associated with this format
	Extensions() []string

	// CanParse returns true if this format can parse the given input
	CanParse(peek []byte) bool
}

// Parser is a format that can parse input into canonical documents.
// A JATS file yields exactly one document; a citation-database file may
// yield one document per embedded record.
type Parser interface {
	Format

	Parse(r io.Reader, opts *ParseOptions) ([]*doc.Document, error)
}

// Serializer is a format that can write canonical documents to output.
type Serializer interface {
	Format

	Serialize(w io.Writer, documents []*doc.Document, opts *SerializeOptions) error
}

// ParseOptions contains options for parsing.
type ParseOptions struct {
	// SourceName is an identifier for the source (for error messages and
	// warning attribution); usually the input file name.
	SourceName string
}

// SerializeOptions contains options for serialization.
type SerializeOptions struct {
	// Pretty enables indented JSON output
	Pretty bool
}

// NewParseOptions creates ParseOptions with defaults.
func NewParseOptions() *ParseOptions {
	return &ParseOptions{}
}

// NewSerializeOptions creates SerializeOptions with defaults.
func NewSerializeOptions() *SerializeOptions {
	return &SerializeOptions{Pretty: true}
}
