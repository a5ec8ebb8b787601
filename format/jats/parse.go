package jats

import (
	"encoding/xml"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/scholarly-tools/litingest/doc"
	"github.com/scholarly-tools/litingest/format"
	"github.com/scholarly-tools/litingest/helpers"
)

// XML shadow structs for the JATS subset this adapter extracts.

type xmlArticle struct {
	XMLName     xml.Name  `xml:"article"`
	ArticleType string    `xml:"article-type,attr"`
	Front       *xmlFront `xml:"front"`
	Body        *xmlBody  `xml:"body"`
}

type xmlFront struct {
	JournalMeta *xmlJournalMeta `xml:"journal-meta"`
	ArticleMeta *xmlArticleMeta `xml:"article-meta"`
}

type xmlJournalMeta struct {
	JournalIDs   []xmlJournalID `xml:"journal-id"`
	GroupedTitle string         `xml:"journal-title-group>journal-title"`
	DirectTitle  string         `xml:"journal-title"`
	ISSNs        []string       `xml:"issn"`
	Publisher    struct {
		Name string `xml:"publisher-name"`
	} `xml:"publisher"`
}

type xmlJournalID struct {
	Type  string `xml:"journal-id-type,attr"`
	Value string `xml:",chardata"`
}

type xmlArticleMeta struct {
	ArticleIDs    []xmlArticleID   `xml:"article-id"`
	Title         xmlRichText      `xml:"title-group>article-title"`
	Categories    []xmlSubjGroup   `xml:"article-categories>subj-group"`
	PubDates      []xmlDate        `xml:"pub-date"`
	History       []xmlDate        `xml:"history>date"`
	ContribGroups []xmlContribGroup `xml:"contrib-group"`
	Affiliations  []xmlAff         `xml:"aff"`
	Abstract      *xmlAbstract     `xml:"abstract"`
	KeywordGroups []xmlKwdGroup    `xml:"kwd-group"`
	Permissions   *xmlPermissions  `xml:"permissions"`
}

type xmlArticleID struct {
	Type  string `xml:"pub-id-type,attr"`
	Value string `xml:",chardata"`
}

type xmlSubjGroup struct {
	Subjects []string       `xml:"subject"`
	Children []xmlSubjGroup `xml:"subj-group"`
}

type xmlDate struct {
	DateType string `xml:"date-type,attr"`
	PubType  string `xml:"pub-type,attr"`
	Year     string `xml:"year"`
	Month    string `xml:"month"`
	Day      string `xml:"day"`
}

type xmlContribGroup struct {
	Contribs []xmlContrib `xml:"contrib"`
	Affs     []xmlAff     `xml:"aff"`
}

type xmlContrib struct {
	ContribType string `xml:"contrib-type,attr"`
	Name        struct {
		Surname    string `xml:"surname"`
		GivenNames string `xml:"given-names"`
	} `xml:"name"`
	Email        string    `xml:"email"`
	AddressEmail string    `xml:"address>email"`
	Xrefs        []xmlXref `xml:"xref"`
}

type xmlXref struct {
	RefType string `xml:"ref-type,attr"`
	RID     string `xml:"rid,attr"`
}

type xmlAff struct {
	ID    string `xml:"id,attr"`
	Label string `xml:"label"`
	Inner string `xml:",innerxml"`
}

type xmlAbstract struct {
	Paragraphs []xmlRichText `xml:"p"`
	Sections   []struct {
		Paragraphs []xmlRichText `xml:"p"`
	} `xml:"sec"`
}

type xmlKwdGroup struct {
	Keywords []xmlRichText `xml:"kwd"`
}

type xmlPermissions struct {
	CopyrightStatement string `xml:"copyright-statement"`
	CopyrightYear      string `xml:"copyright-year"`
	License            struct {
		Href       string `xml:"href,attr"`
		LicenseRef string `xml:"license_ref"`
	} `xml:"license"`
}

type xmlBody struct {
	Sections   []xmlSec      `xml:"sec"`
	Paragraphs []xmlRichText `xml:"p"`
}

type xmlSec struct {
	ID         string        `xml:"id,attr"`
	Label      string        `xml:"label"`
	Title      xmlRichText   `xml:"title"`
	Paragraphs []xmlRichText `xml:"p"`
	Sections   []xmlSec      `xml:"sec"`
}

// xmlRichText captures an element whose content may carry inline markup;
// Text flattens it to plain text.
type xmlRichText struct {
	Inner string `xml:",innerxml"`
}

func (t xmlRichText) Text() string {
	return helpers.FlattenMarkup(t.Inner)
}

// Parse reads one JATS article and returns exactly one document.
func (f *Format) Parse(r io.Reader, opts *format.ParseOptions) ([]*doc.Document, error) {
	if opts == nil {
		opts = format.NewParseOptions()
	}

	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("reading input: %w", err)
	}

	// Unicode normalization runs before any structural parsing.
	normalized := helpers.NormalizeText(string(data))

	var article xmlArticle
	if err := xml.Unmarshal([]byte(normalized), &article); err != nil {
		return nil, fmt.Errorf("parsing JATS XML: %w", err)
	}

	if article.Front == nil || article.Front.ArticleMeta == nil {
		return nil, fmt.Errorf("%s: %w", opts.SourceName, format.ErrMissingMetadata)
	}
	meta := article.Front.ArticleMeta

	rawType := strings.TrimSpace(article.ArticleType)
	articleType, ok := doc.ClassifyJATS(rawType)
	if !ok {
		slog.Warn("unknown article type", "file", opts.SourceName, "article_type", rawType)
	}

	ids := make([]doc.DocumentID, 0, len(meta.ArticleIDs))
	for _, id := range meta.ArticleIDs {
		ids = append(ids, doc.DocumentID{
			ID:   strings.TrimSpace(id.Value),
			Type: strings.TrimSpace(id.Type),
		})
	}
	canonical := doc.CanonicalIDs(ids)

	title := meta.Title.Text()
	if title == "" && rawType == "correction" && article.Body != nil {
		// Correction articles often carry their title in the first body
		// paragraph instead of a title-group.
		for _, p := range article.Body.Paragraphs {
			if text := p.Text(); text != "" {
				title = text
				break
			}
		}
	}

	dates := extractDates(meta)

	document := &doc.Document{
		IDs:              canonical,
		RawType:          rawType,
		SyntheticID:      doc.SyntheticID(canonical),
		Journal:          extractJournal(article.Front.JournalMeta),
		Year:             doc.PublicationYear(dates, doc.JATSYearPriority),
		PublicationDates: dates,
		Keywords:         extractKeywords(meta),
		Authors:          extractAuthors(meta),
		SubjectGroups:    extractSubjectGroups(meta.Categories),
		ParsedAt:         time.Now().UTC(),
	}
	if ok {
		document.Type = articleType
	}

	if meta.Permissions != nil {
		document.CopyrightStatement = strings.TrimSpace(meta.Permissions.CopyrightStatement)
		document.CopyrightYear = strings.TrimSpace(meta.Permissions.CopyrightYear)
		license := strings.TrimSpace(meta.Permissions.License.LicenseRef)
		if license == "" {
			license = strings.TrimSpace(meta.Permissions.License.Href)
		}
		document.LicenseType = license
	}

	document.Sections = doc.FramingSections(title, extractAbstract(meta.Abstract))
	if article.Body != nil {
		document.Sections = append(document.Sections, buildSections(article.Body.Sections)...)
	}

	return []*doc.Document{document}, nil
}

func extractJournal(jm *xmlJournalMeta) *doc.JournalMetadata {
	if jm == nil {
		return nil
	}

	title := strings.TrimSpace(jm.GroupedTitle)
	if title == "" {
		title = strings.TrimSpace(jm.DirectTitle)
	}

	journal := &doc.JournalMetadata{
		Title:     title,
		Publisher: strings.TrimSpace(jm.Publisher.Name),
	}
	if len(jm.ISSNs) > 0 {
		journal.ISSN = strings.TrimSpace(jm.ISSNs[0])
	}

	// Prefer the NLM abbreviation, fall back to the ISO one.
	for _, idType := range []string{"nlm-ta", "iso-abbrev"} {
		for _, jid := range jm.JournalIDs {
			if jid.Type == idType {
				journal.Abbreviation = strings.TrimSpace(jid.Value)
				break
			}
		}
		if journal.Abbreviation != "" {
			break
		}
	}

	return journal
}

func extractDates(meta *xmlArticleMeta) doc.PublicationDates {
	var dates doc.PublicationDates

	for _, d := range meta.History {
		value := doc.PartialDate(d.Year, d.Month, d.Day)
		if value == "" {
			continue
		}
		switch d.DateType {
		case "received":
			dates.Received = value
		case "accepted":
			dates.Accepted = value
		}
	}

	for _, d := range meta.PubDates {
		value := doc.PartialDate(d.Year, d.Month, d.Day)
		if value == "" {
			continue
		}
		switch d.PubType {
		case "epub":
			dates.EPub = value
		case "collection":
			dates.Collection = value
		}
	}

	return dates
}

func extractAuthors(meta *xmlArticleMeta) []doc.Author {
	affiliations := make(map[string]string)
	collectAffs := func(affs []xmlAff) {
		for _, aff := range affs {
			if aff.ID == "" {
				continue
			}
			affiliations[aff.ID] = affText(aff)
		}
	}
	collectAffs(meta.Affiliations)
	for _, cg := range meta.ContribGroups {
		collectAffs(cg.Affs)
	}

	var authors []doc.Author
	for _, cg := range meta.ContribGroups {
		for _, contrib := range cg.Contribs {
			if contrib.ContribType != "author" {
				continue
			}
			surname := strings.TrimSpace(contrib.Name.Surname)
			given := strings.TrimSpace(contrib.Name.GivenNames)
			if surname == "" && given == "" {
				continue
			}

			author := doc.Author{
				Name:  surname + ", " + given,
				Email: strings.TrimSpace(contrib.Email),
			}
			if author.Email == "" {
				author.Email = strings.TrimSpace(contrib.AddressEmail)
			}

			for _, xref := range contrib.Xrefs {
				switch xref.RefType {
				case "corresp":
					author.IsCorresponding = true
				case "aff":
					if text, ok := affiliations[xref.RID]; ok {
						author.Affiliations = append(author.Affiliations, text)
					}
				}
			}

			authors = append(authors, author)
		}
	}
	return authors
}

// affText flattens an affiliation to plain text, dropping the leading label
// (the footnote marker) when present.
func affText(aff xmlAff) string {
	text := helpers.FlattenMarkup(aff.Inner)
	label := strings.TrimSpace(aff.Label)
	if label != "" && strings.HasPrefix(text, label) {
		text = strings.TrimSpace(strings.TrimPrefix(text, label))
	}
	return text
}

func extractAbstract(abstract *xmlAbstract) string {
	if abstract == nil {
		return ""
	}
	var parts []string
	for _, p := range abstract.Paragraphs {
		if text := p.Text(); text != "" {
			parts = append(parts, text)
		}
	}
	for _, sec := range abstract.Sections {
		for _, p := range sec.Paragraphs {
			if text := p.Text(); text != "" {
				parts = append(parts, text)
			}
		}
	}
	return strings.Join(parts, " ")
}

func extractKeywords(meta *xmlArticleMeta) []string {
	set := make(map[string]struct{})
	for _, group := range meta.KeywordGroups {
		for _, kwd := range group.Keywords {
			if text := kwd.Text(); text != "" {
				set[text] = struct{}{}
			}
		}
	}
	return doc.SortedKeywords(set)
}

func extractSubjectGroups(groups []xmlSubjGroup) []string {
	var subjects []string
	for _, group := range groups {
		for _, s := range group.Subjects {
			if s = strings.TrimSpace(s); s != "" {
				subjects = append(subjects, s)
			}
		}
		subjects = append(subjects, extractSubjectGroups(group.Children)...)
	}
	return subjects
}

// buildSections converts <sec> elements to section nodes in document order,
// dropping any node whose aggregate content is empty. A node owns only the
// text of its direct <p> children.
func buildSections(secs []xmlSec) []*doc.Section {
	var sections []*doc.Section
	for _, sec := range secs {
		name := sec.Title.Text()
		if name == "" {
			name = doc.UntitledSection
		}

		var parts []string
		for _, p := range sec.Paragraphs {
			if text := p.Text(); text != "" {
				parts = append(parts, text)
			}
		}

		sections = append(sections, &doc.Section{
			ID:          sec.ID,
			Label:       strings.TrimSpace(sec.Label),
			Name:        name,
			Text:        strings.Join(parts, " "),
			Subsections: buildSections(sec.Sections),
		})
	}
	return doc.PruneEmptySections(sections)
}
