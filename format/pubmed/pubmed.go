// Package pubmed provides a format adapter for citation-database XML in the
// PubMed/MEDLINE convention, where one file carries many independent article
// records.
package pubmed

import (
	"bytes"

	"github.com/scholarly-tools/litingest/format"
)

// Format implements the PubMed citation-database format.
type Format struct{}

// Ensure Format implements the interfaces
var (
	_ format.Format = (*Format)(nil)
	_ format.Parser = (*Format)(nil)
)

// Name returns the format identifier.
func (f *Format) Name() string {
	return "pubmed"
}

// Description returns a human-readable format description.
func (f *Format) Description() string {
	return "PubMed citation-database XML (many records per file)"
}

// Extensions returns file extensions associated with this format.
func (f *Format) Extensions() []string {
	return []string{"xml"}
}

// CanParse returns true if the input looks like PubMed citation XML.
func (f *Format) CanParse(peek []byte) bool {
	peek = bytes.TrimSpace(peek)
	if len(peek) == 0 || peek[0] != '<' {
		return false
	}

	pubmedPatterns := [][]byte{
		[]byte(`<PubmedArticleSet`),
		[]byte(`<PubmedArticle`),
		[]byte(`<MedlineCitation`),
	}
	for _, pattern := range pubmedPatterns {
		if bytes.Contains(peek, pattern) {
			return true
		}
	}

	return false
}

func init() {
	format.Register(&Format{})
}
