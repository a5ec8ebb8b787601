package doc

import "strings"

// Names of the synthetic framing sections prepended to every document so that
// title and abstract are addressed uniformly across source schemas.
const (
	SectionTitle    = "title"
	SectionAbstract = "abstract"
)

// UntitledSection is the display name used when a section has no title.
const UntitledSection = "Untitled Section"

// Section is one node of a document's heading/paragraph tree. Text holds only
// the paragraph content owned directly by this node; descendants' content
// lives in Subsections.
type Section struct {
	ID          string     `json:"id,omitempty"`
	Label       string     `json:"label,omitempty"`
	Name        string     `json:"name"`
	Text        string     `json:"text"`
	Subsections []*Section `json:"subsections,omitempty"`
}

// AggregateText joins the section's own text with all descendant text in
// document order.
func (s *Section) AggregateText() string {
	var parts []string
	s.appendText(&parts)
	return strings.Join(parts, " ")
}

func (s *Section) appendText(parts *[]string) {
	if s.Text != "" {
		*parts = append(*parts, s.Text)
	}
	for _, sub := range s.Subsections {
		sub.appendText(parts)
	}
}

// IsEmpty reports whether the section carries no content at all, own or
// descendant.
func (s *Section) IsEmpty() bool {
	if s.Text != "" {
		return false
	}
	for _, sub := range s.Subsections {
		if !sub.IsEmpty() {
			return false
		}
	}
	return true
}

// PruneEmptySections drops sections whose aggregate content is empty. Callers
// run it after recursion so a node survives when any descendant has text even
// if the node itself owns none.
func PruneEmptySections(sections []*Section) []*Section {
	var kept []*Section
	for _, s := range sections {
		if s.IsEmpty() {
			continue
		}
		kept = append(kept, s)
	}
	return kept
}

// FramingSections builds the synthetic title/abstract leaf sections that lead
// the top-level section list. Empty values produce no section.
func FramingSections(title, abstract string) []*Section {
	var sections []*Section
	if title != "" {
		sections = append(sections, &Section{Name: SectionTitle, Text: title})
	}
	if abstract != "" {
		sections = append(sections, &Section{Name: SectionAbstract, Text: abstract})
	}
	return sections
}
