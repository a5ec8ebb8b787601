// Package docjson provides the canonical JSON artifact format: the shape the
// batch driver writes, one file per document, and the shape later tooling
// reads back. Serialization and parsing are exact inverses.
package docjson

import (
	"bytes"

	"github.com/scholarly-tools/litingest/format"
)

// Format implements the canonical JSON document format.
type Format struct{}

// Ensure Format implements the interfaces
var (
	_ format.Format     = (*Format)(nil)
	_ format.Parser     = (*Format)(nil)
	_ format.Serializer = (*Format)(nil)
)

// Name returns the format identifier.
func (f *Format) Name() string {
	return "docjson"
}

// Description returns a human-readable format description.
func (f *Format) Description() string {
	return "canonical document JSON (litingest output artifacts)"
}

// Extensions returns file extensions associated with this format.
func (f *Format) Extensions() []string {
	return []string{"json"}
}

// CanParse returns true if the input looks like a canonical document.
func (f *Format) CanParse(peek []byte) bool {
	peek = bytes.TrimSpace(peek)
	if len(peek) == 0 {
		return false
	}
	if peek[0] != '{' && peek[0] != '[' {
		return false
	}
	return bytes.Contains(peek, []byte(`"synthetic_id"`))
}

func init() {
	format.Register(&Format{})
}
