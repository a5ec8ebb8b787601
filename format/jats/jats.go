// Package jats provides a format adapter for JATS-style article XML, the
// schema used by PMC-like archives (<front>/<body> with nested <sec>).
package jats

import (
	"bytes"

	"github.com/scholarly-tools/litingest/format"
)

// Format implements the JATS article format.
type Format struct{}

// Ensure Format implements the interfaces
var (
	_ format.Format = (*Format)(nil)
	_ format.Parser = (*Format)(nil)
)

// Name returns the format identifier.
func (f *Format) Name() string {
	return "jats"
}

// Description returns a human-readable format description.
func (f *Format) Description() string {
	return "JATS journal article XML (PMC-style, one article per file)"
}

// Extensions returns file extensions associated with this format.
func (f *Format) Extensions() []string {
	return []string{"xml", "nxml"}
}

// CanParse returns true if the input looks like a JATS article.
func (f *Format) CanParse(peek []byte) bool {
	peek = bytes.TrimSpace(peek)
	if len(peek) == 0 || peek[0] != '<' {
		return false
	}

	if !bytes.Contains(peek, []byte("<article")) {
		return false
	}

	jatsPatterns := [][]byte{
		[]byte(`//NLM//DTD JATS`),
		[]byte(`JATS-archivearticle`),
		[]byte(`<front>`),
		[]byte(`article-meta`),
	}
	for _, pattern := range jatsPatterns {
		if bytes.Contains(peek, pattern) {
			return true
		}
	}

	return false
}

func init() {
	format.Register(&Format{})
}
