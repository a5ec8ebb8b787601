// Package doc defines the canonical document model produced by the format
// adapters, together with the identifier, date, section, and article-type
// logic shared between them.
package doc

import (
	"sort"
	"time"
)

// Author is a document contributor, normalized to "Surname, GivenNames".
// Affiliations preserve the order in which the author references them.
type Author struct {
	Name            string   `json:"name"`
	Email           string   `json:"email,omitempty"`
	Affiliations    []string `json:"affiliations,omitempty"`
	IsCorresponding bool     `json:"is_corresponding,omitempty"`
}

// JournalMetadata holds the journal block of a record.
type JournalMetadata struct {
	Title        string `json:"title"`
	ISSN         string `json:"issn,omitempty"`
	Publisher    string `json:"publisher,omitempty"`
	Abbreviation string `json:"abbreviation,omitempty"`
}

// Document is the normalized record extracted from one source article.
// It is constructed once by a format adapter and never mutated afterwards.
type Document struct {
	IDs                []DocumentID     `json:"ids"`
	RawType            string           `json:"raw_type,omitempty"`
	Type               ArticleType      `json:"type,omitempty"`
	SyntheticID        string           `json:"synthetic_id"`
	Journal            *JournalMetadata `json:"journal,omitempty"`
	Year               int              `json:"year,omitempty"`
	PublicationDates   PublicationDates `json:"publication_dates"`
	Keywords           []string         `json:"keywords,omitempty"`
	Sections           []*Section       `json:"sections,omitempty"`
	Authors            []Author         `json:"authors,omitempty"`
	SubjectGroups      []string         `json:"subject_groups,omitempty"`
	LicenseType        string           `json:"license_type,omitempty"`
	CopyrightStatement string           `json:"copyright_statement,omitempty"`
	CopyrightYear      string           `json:"copyright_year,omitempty"`
	ParsedAt           time.Time        `json:"parsed_at"`
}

// GetID returns the identifier of the given type, or "" if absent.
func (d *Document) GetID(idType string) string {
	for _, id := range d.IDs {
		if id.Type == idType {
			return id.ID
		}
	}
	return ""
}

// Title returns the text of the synthetic title section, if present.
func (d *Document) Title() string {
	return d.framingText(SectionTitle)
}

// Abstract returns the text of the synthetic abstract section, if present.
func (d *Document) Abstract() string {
	return d.framingText(SectionAbstract)
}

func (d *Document) framingText(name string) string {
	for _, s := range d.Sections {
		if s.Name == name {
			return s.Text
		}
	}
	return ""
}

// CorrespondingAuthors returns the authors flagged as corresponding.
func (d *Document) CorrespondingAuthors() []Author {
	var result []Author
	for _, a := range d.Authors {
		if a.IsCorresponding {
			result = append(result, a)
		}
	}
	return result
}

// SortedKeywords converts a keyword set into the deterministic slice stored on
// a Document. Keyword order carries no meaning, so sorting keeps repeated
// parses byte-identical.
func SortedKeywords(set map[string]struct{}) []string {
	if len(set) == 0 {
		return nil
	}
	result := make([]string, 0, len(set))
	for kw := range set {
		result = append(result, kw)
	}
	sort.Strings(result)
	return result
}
