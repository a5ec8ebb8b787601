package pubmed

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/scholarly-tools/litingest/doc"
	"github.com/scholarly-tools/litingest/format"
	"github.com/scholarly-tools/litingest/helpers"
)

// XML shadow structs for the PubMed citation subset this adapter extracts.

type xmlPubmedArticle struct {
	MedlineCitation *xmlMedlineCitation `xml:"MedlineCitation"`
	PubmedData      *xmlPubmedData      `xml:"PubmedData"`
}

type xmlMedlineCitation struct {
	PMID      string          `xml:"PMID"`
	Article   *xmlCitedArticle `xml:"Article"`
	Chemicals []string        `xml:"ChemicalList>Chemical>NameOfSubstance"`
	MeshTerms []string        `xml:"MeshHeadingList>MeshHeading>DescriptorName"`
}

type xmlCitedArticle struct {
	Journal          *xmlJournal   `xml:"Journal"`
	Title            xmlRichText   `xml:"ArticleTitle"`
	AbstractTexts    []xmlRichText `xml:"Abstract>AbstractText"`
	Authors          []xmlAuthor   `xml:"AuthorList>Author"`
	PublicationTypes []string      `xml:"PublicationTypeList>PublicationType"`
}

type xmlJournal struct {
	ISSN            string `xml:"ISSN"`
	Title           string `xml:"Title"`
	ISOAbbreviation string `xml:"ISOAbbreviation"`
	PubDate         struct {
		Year        string `xml:"Year"`
		Month       string `xml:"Month"`
		Day         string `xml:"Day"`
		MedlineDate string `xml:"MedlineDate"`
	} `xml:"JournalIssue>PubDate"`
}

type xmlAuthor struct {
	LastName string `xml:"LastName"`
	ForeName string `xml:"ForeName"`
}

type xmlPubmedData struct {
	History    []xmlHistoryDate `xml:"History>PubMedPubDate"`
	ArticleIDs []xmlArticleID   `xml:"ArticleIdList>ArticleId"`
}

type xmlHistoryDate struct {
	PubStatus string `xml:"PubStatus,attr"`
	Year      string `xml:"Year"`
	Month     string `xml:"Month"`
	Day       string `xml:"Day"`
}

type xmlArticleID struct {
	IDType string `xml:"IdType,attr"`
	Value  string `xml:",chardata"`
}

// xmlRichText captures an element whose content may carry inline markup.
type xmlRichText struct {
	Inner string `xml:",innerxml"`
}

func (t xmlRichText) Text() string {
	return helpers.FlattenMarkup(t.Inner)
}

// Parse reads a citation-database file and returns one document per embedded
// record, in file order.
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

	decoder := xml.NewDecoder(bytes.NewReader([]byte(normalized)))
	var documents []*doc.Document

	for {
		tok, err := decoder.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("parsing PubMed XML: %w", err)
		}
		start, ok := tok.(xml.StartElement)
		if !ok {
			continue
		}
		if start.Name.Local != "PubmedArticle" {
			continue
		}

		var record xmlPubmedArticle
		if err := decoder.DecodeElement(&record, &start); err != nil {
			return nil, fmt.Errorf("decoding PubmedArticle %d: %w", len(documents), err)
		}
		document, err := recordToDocument(&record, opts.SourceName)
		if err != nil {
			return nil, fmt.Errorf("converting PubmedArticle %d: %w", len(documents), err)
		}
		documents = append(documents, document)
	}

	if len(documents) == 0 {
		return nil, fmt.Errorf("%s: no PubmedArticle elements found: %w",
			opts.SourceName, format.ErrMissingMetadata)
	}

	return documents, nil
}

func recordToDocument(record *xmlPubmedArticle, source string) (*doc.Document, error) {
	citation := record.MedlineCitation
	if citation == nil || citation.Article == nil {
		return nil, format.ErrMissingMetadata
	}
	article := citation.Article

	var ids []doc.DocumentID
	if pmid := strings.TrimSpace(citation.PMID); pmid != "" {
		ids = append(ids, doc.DocumentID{ID: pmid, Type: "pubmed"})
	}
	if record.PubmedData != nil {
		for _, id := range record.PubmedData.ArticleIDs {
			ids = append(ids, doc.DocumentID{
				ID:   strings.TrimSpace(id.Value),
				Type: strings.ToLower(strings.TrimSpace(id.IDType)),
			})
		}
	}
	canonical := doc.CanonicalIDs(ids)

	rawType, candidates := publicationTypes(article)
	articleType, ok := doc.ClassifyPubMed(candidates)
	if !ok {
		slog.Warn("unknown article type", "file", source, "publication_types", rawType)
	}

	dates := extractDates(record)

	document := &doc.Document{
		IDs:              canonical,
		RawType:          rawType,
		SyntheticID:      doc.SyntheticID(canonical),
		Journal:          extractJournal(article.Journal),
		Year:             doc.PublicationYear(dates, doc.PubMedYearPriority),
		PublicationDates: dates,
		Keywords:         extractKeywords(citation),
		Authors:          extractAuthors(article.Authors),
		SubjectGroups:    candidates,
		ParsedAt:         time.Now().UTC(),
	}
	if ok {
		document.Type = articleType
	}

	document.Sections = doc.FramingSections(article.Title.Text(), extractAbstract(article))

	return document, nil
}

// publicationTypes returns the record's publication type strings and the raw
// type preserved on the document (the first entry, matching how the source
// orders its vocabulary).
func publicationTypes(article *xmlCitedArticle) (string, []string) {
	var candidates []string
	for _, pt := range article.PublicationTypes {
		if pt = strings.TrimSpace(pt); pt != "" {
			candidates = append(candidates, pt)
		}
	}
	if len(candidates) == 0 {
		return "", nil
	}
	return candidates[0], candidates
}

func extractJournal(journal *xmlJournal) *doc.JournalMetadata {
	if journal == nil {
		return nil
	}
	return &doc.JournalMetadata{
		Title:        strings.TrimSpace(journal.Title),
		ISSN:         strings.TrimSpace(journal.ISSN),
		Abbreviation: strings.TrimSpace(journal.ISOAbbreviation),
	}
}

func extractDates(record *xmlPubmedArticle) doc.PublicationDates {
	var dates doc.PublicationDates

	if article := record.MedlineCitation.Article; article != nil && article.Journal != nil {
		pd := article.Journal.PubDate
		if pd.Year != "" {
			dates.Collection = doc.PartialDate(pd.Year, pd.Month, pd.Day)
		} else if pd.MedlineDate != "" {
			// MedlineDate covers irregular issues ("1976 Jan-Dec"); only the
			// leading year token is reliable.
			fields := strings.Fields(pd.MedlineDate)
			if len(fields) > 0 {
				if _, err := strconv.Atoi(fields[0]); err == nil {
					dates.Collection = fields[0]
				}
			}
		}
	}

	if record.PubmedData != nil {
		for _, d := range record.PubmedData.History {
			if d.PubStatus != "pubmed" {
				continue
			}
			if value := doc.PartialDate(d.Year, d.Month, d.Day); value != "" {
				dates.EPub = value
			}
		}
	}

	return dates
}

func extractAuthors(authors []xmlAuthor) []doc.Author {
	var result []doc.Author
	for _, a := range authors {
		last := strings.TrimSpace(a.LastName)
		if last == "" {
			continue
		}
		name := last
		if fore := strings.TrimSpace(a.ForeName); fore != "" {
			name = last + ", " + fore
		}
		result = append(result, doc.Author{Name: name})
	}
	return result
}

func extractAbstract(article *xmlCitedArticle) string {
	var parts []string
	for _, t := range article.AbstractTexts {
		if text := t.Text(); text != "" {
			parts = append(parts, text)
		}
	}
	return strings.Join(parts, " ")
}

// extractKeywords unions chemical substance names and MeSH descriptors.
func extractKeywords(citation *xmlMedlineCitation) []string {
	set := make(map[string]struct{})
	for _, c := range citation.Chemicals {
		if c = strings.TrimSpace(c); c != "" {
			set[c] = struct{}{}
		}
	}
	for _, m := range citation.MeshTerms {
		if m = strings.TrimSpace(m); m != "" {
			set[m] = struct{}{}
		}
	}
	return doc.SortedKeywords(set)
}
