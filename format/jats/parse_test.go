package jats

import (
	"errors"
	"strings"
	"testing"

	"github.com/scholarly-tools/litingest/doc"
	"github.com/scholarly-tools/litingest/format"
)

const sampleArticle = `<?xml version="1.0" encoding="UTF-8"?>
<!DOCTYPE article PUBLIC "-//NLM//DTD JATS (Z39.96) Journal Archiving and Interchange DTD v1.2 20190208//EN" "JATS-archivearticle1.dtd">
<article article-type="research-article">
  <front>
    <journal-meta>
      <journal-id journal-id-type="nlm-ta">Int J Cardiol Congenit Heart Dis</journal-id>
      <journal-title-group>
        <journal-title>International Journal of Cardiology Congenital Heart Disease</journal-title>
      </journal-title-group>
      <issn pub-type="epub">2666-6685</issn>
      <publisher>
        <publisher-name>Elsevier</publisher-name>
      </publisher>
    </journal-meta>
    <article-meta>
      <article-id pub-id-type="pmid">37435574</article-id>
      <article-id pub-id-type="pmc">PMC10335194</article-id>
      <article-id pub-id-type="publisher-id">S2666-6685(22)00027-7</article-id>
      <article-id pub-id-type="doi">10.1016/j.ijcchd.2022.100354</article-id>
      <article-categories>
        <subj-group subj-group-type="heading">
          <subject>Original Article</subject>
          <subj-group>
            <subject>Cardiology</subject>
          </subj-group>
        </subj-group>
      </article-categories>
      <title-group>
        <article-title>Heart failure in <italic>pregnant women</italic> with congenital heart disease</article-title>
      </title-group>
      <contrib-group>
        <contrib contrib-type="author">
          <name>
            <surname>Marshall</surname>
            <given-names>William H.</given-names>
          </name>
          <email>wm@example.edu</email>
          <xref ref-type="aff" rid="aff1"/>
          <xref ref-type="aff" rid="aff2"/>
          <xref ref-type="corresp" rid="cor1"/>
        </contrib>
        <contrib contrib-type="author">
          <name>
            <surname>Smith</surname>
            <given-names>Jane</given-names>
          </name>
          <xref ref-type="aff" rid="aff1"/>
        </contrib>
        <contrib contrib-type="editor">
          <name>
            <surname>Jones</surname>
            <given-names>Editor</given-names>
          </name>
        </contrib>
      </contrib-group>
      <aff id="aff1"><label>a</label>The Ohio State University, Columbus, OH</aff>
      <aff id="aff2"><label>b</label>Nationwide Children's Hospital, Columbus, OH</aff>
      <history>
        <date date-type="received">
          <year>2021</year>
          <month>03</month>
          <day>23</day>
        </date>
        <date date-type="accepted">
          <year>2022</year>
          <month>02</month>
          <day>21</day>
        </date>
      </history>
      <pub-date pub-type="epub">
        <year>2022</year>
        <month>2</month>
        <day>24</day>
      </pub-date>
      <pub-date pub-type="collection">
        <year>2022</year>
        <month>6</month>
      </pub-date>
      <abstract>
        <sec>
          <title>Background</title>
          <p>Heart failure is a leading cause of morbidity.</p>
        </sec>
        <sec>
          <title>Results</title>
          <p>We observed improved outcomes.</p>
        </sec>
      </abstract>
      <kwd-group>
        <kwd>Heart failure</kwd>
        <kwd>Pregnancy</kwd>
        <kwd>Heart failure</kwd>
      </kwd-group>
      <permissions>
        <copyright-statement>&#169; 2022 The Authors</copyright-statement>
        <copyright-year>2022</copyright-year>
        <license license-type="open-access" xlink:href="http://creativecommons.org/licenses/by-nc-nd/4.0/">
          <ali:license_ref>http://creativecommons.org/licenses/by-nc-nd/4.0/</ali:license_ref>
          <license-p>This is an open access article.</license-p>
        </license>
      </permissions>
    </article-meta>
  </front>
  <body>
    <sec id="sec1">
      <title>Introduction</title>
      <p>Congenital heart disease is common.</p>
    </sec>
    <sec id="sec2">
      <title>Methods</title>
      <p>We performed a retrospective review.</p>
      <sec id="sec2.1">
        <title>Study population</title>
        <p>Adults over 18 were included.</p>
      </sec>
      <sec id="sec2.2">
        <title>Empty subsection</title>
      </sec>
    </sec>
    <sec id="sec3">
      <title>Hollow section</title>
      <sec>
        <title>Also hollow</title>
      </sec>
    </sec>
  </body>
</article>`

func parseSample(t *testing.T, input string) *doc.Document {
	t.Helper()
	f := &Format{}
	opts := format.NewParseOptions()
	opts.SourceName = "sample.xml"
	documents, err := f.Parse(strings.NewReader(input), opts)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if len(documents) != 1 {
		t.Fatalf("Parse returned %d documents, want 1", len(documents))
	}
	return documents[0]
}

func TestParseIDs(t *testing.T) {
	document := parseSample(t, sampleArticle)

	want := []doc.DocumentID{
		{ID: "10.1016/j.ijcchd.2022.100354", Type: "doi"},
		{ID: "PMC10335194", Type: "pmc"},
		{ID: "37435574", Type: "pmid"},
		{ID: "S2666-6685(22)00027-7", Type: "publisher-id"},
	}
	if len(document.IDs) != len(want) {
		t.Fatalf("got %d ids, want %d: %v", len(document.IDs), len(want), document.IDs)
	}
	for i, id := range want {
		if document.IDs[i] != id {
			t.Errorf("IDs[%d] = %v, want %v", i, document.IDs[i], id)
		}
	}

	wantSynthetic := "type=doi;id=10.1016/j.ijcchd.2022.100354&type=pmc;id=PMC10335194&type=pmid;id=37435574"
	if document.SyntheticID != wantSynthetic {
		t.Errorf("SyntheticID = %q, want %q", document.SyntheticID, wantSynthetic)
	}
}

func TestParseClassification(t *testing.T) {
	document := parseSample(t, sampleArticle)

	if document.RawType != "research-article" {
		t.Errorf("RawType = %q, want %q", document.RawType, "research-article")
	}
	if document.Type != doc.TypeResearchArticle {
		t.Errorf("Type = %q, want %q", document.Type, doc.TypeResearchArticle)
	}
}

func TestParseUnknownArticleType(t *testing.T) {
	input := strings.Replace(sampleArticle, `article-type="research-article"`, `article-type="zzz-unknown"`, 1)
	document := parseSample(t, input)

	if document.RawType != "zzz-unknown" {
		t.Errorf("RawType = %q, want %q", document.RawType, "zzz-unknown")
	}
	if document.Type != "" {
		t.Errorf("Type = %q, want empty for unknown article type", document.Type)
	}
}

func TestParseJournal(t *testing.T) {
	document := parseSample(t, sampleArticle)

	journal := document.Journal
	if journal == nil {
		t.Fatal("Journal is nil")
	}
	if journal.Title != "International Journal of Cardiology Congenital Heart Disease" {
		t.Errorf("Journal.Title = %q", journal.Title)
	}
	if journal.ISSN != "2666-6685" {
		t.Errorf("Journal.ISSN = %q, want %q", journal.ISSN, "2666-6685")
	}
	if journal.Publisher != "Elsevier" {
		t.Errorf("Journal.Publisher = %q, want %q", journal.Publisher, "Elsevier")
	}
	if journal.Abbreviation != "Int J Cardiol Congenit Heart Dis" {
		t.Errorf("Journal.Abbreviation = %q", journal.Abbreviation)
	}
}

func TestParseDates(t *testing.T) {
	document := parseSample(t, sampleArticle)

	dates := document.PublicationDates
	if dates.Received != "2021-3-23" {
		t.Errorf("Received = %q, want %q", dates.Received, "2021-3-23")
	}
	if dates.Accepted != "2022-2-21" {
		t.Errorf("Accepted = %q, want %q", dates.Accepted, "2022-2-21")
	}
	if dates.EPub != "2022-2-24" {
		t.Errorf("EPub = %q, want %q", dates.EPub, "2022-2-24")
	}
	if dates.Collection != "2022-6" {
		t.Errorf("Collection = %q, want %q", dates.Collection, "2022-6")
	}
	if document.Year != 2022 {
		t.Errorf("Year = %d, want 2022", document.Year)
	}
}

func TestParseAuthors(t *testing.T) {
	document := parseSample(t, sampleArticle)

	if len(document.Authors) != 2 {
		t.Fatalf("got %d authors, want 2 (editors excluded): %+v", len(document.Authors), document.Authors)
	}

	first := document.Authors[0]
	if first.Name != "Marshall, William H." {
		t.Errorf("Authors[0].Name = %q", first.Name)
	}
	if first.Email != "wm@example.edu" {
		t.Errorf("Authors[0].Email = %q", first.Email)
	}
	if !first.IsCorresponding {
		t.Error("Authors[0].IsCorresponding = false, want true")
	}
	wantAffs := []string{
		"The Ohio State University, Columbus, OH",
		"Nationwide Children's Hospital, Columbus, OH",
	}
	if len(first.Affiliations) != len(wantAffs) {
		t.Fatalf("Authors[0].Affiliations = %v, want %v", first.Affiliations, wantAffs)
	}
	for i, aff := range wantAffs {
		if first.Affiliations[i] != aff {
			t.Errorf("Authors[0].Affiliations[%d] = %q, want %q", i, first.Affiliations[i], aff)
		}
	}

	second := document.Authors[1]
	if second.Name != "Smith, Jane" {
		t.Errorf("Authors[1].Name = %q", second.Name)
	}
	if second.IsCorresponding {
		t.Error("Authors[1].IsCorresponding = true, want false")
	}
	if len(second.Affiliations) != 1 || second.Affiliations[0] != wantAffs[0] {
		t.Errorf("Authors[1].Affiliations = %v", second.Affiliations)
	}
}

func TestParseSections(t *testing.T) {
	document := parseSample(t, sampleArticle)

	if document.Title() != "Heart failure in pregnant women with congenital heart disease" {
		t.Errorf("Title = %q", document.Title())
	}
	wantAbstract := "Heart failure is a leading cause of morbidity. We observed improved outcomes."
	if document.Abstract() != wantAbstract {
		t.Errorf("Abstract = %q, want %q", document.Abstract(), wantAbstract)
	}

	// Two framing sections plus the surviving body sections; the hollow
	// section tree and the empty subsection are pruned.
	if len(document.Sections) != 4 {
		t.Fatalf("got %d sections: %+v", len(document.Sections), document.Sections)
	}

	intro := document.Sections[2]
	if intro.Name != "Introduction" || intro.Text != "Congenital heart disease is common." {
		t.Errorf("unexpected intro section: %+v", intro)
	}

	methods := document.Sections[3]
	if methods.Name != "Methods" {
		t.Errorf("Sections[3].Name = %q, want Methods", methods.Name)
	}
	if len(methods.Subsections) != 1 {
		t.Fatalf("Methods has %d subsections, want 1 (empty subsection pruned): %+v",
			len(methods.Subsections), methods.Subsections)
	}
	if methods.Subsections[0].Name != "Study population" {
		t.Errorf("Methods.Subsections[0].Name = %q", methods.Subsections[0].Name)
	}
}

func TestParseKeywordsAndSubjects(t *testing.T) {
	document := parseSample(t, sampleArticle)

	wantKeywords := []string{"Heart failure", "Pregnancy"}
	if len(document.Keywords) != len(wantKeywords) {
		t.Fatalf("Keywords = %v, want %v", document.Keywords, wantKeywords)
	}
	for i, kwd := range wantKeywords {
		if document.Keywords[i] != kwd {
			t.Errorf("Keywords[%d] = %q, want %q", i, document.Keywords[i], kwd)
		}
	}

	wantSubjects := []string{"Original Article", "Cardiology"}
	if len(document.SubjectGroups) != len(wantSubjects) {
		t.Fatalf("SubjectGroups = %v, want %v", document.SubjectGroups, wantSubjects)
	}
	for i, s := range wantSubjects {
		if document.SubjectGroups[i] != s {
			t.Errorf("SubjectGroups[%d] = %q, want %q", i, document.SubjectGroups[i], s)
		}
	}
}

func TestParsePermissions(t *testing.T) {
	document := parseSample(t, sampleArticle)

	if document.LicenseType != "http://creativecommons.org/licenses/by-nc-nd/4.0/" {
		t.Errorf("LicenseType = %q", document.LicenseType)
	}
	if document.CopyrightStatement != "© 2022 The Authors" {
		t.Errorf("CopyrightStatement = %q", document.CopyrightStatement)
	}
	if document.CopyrightYear != "2022" {
		t.Errorf("CopyrightYear = %q", document.CopyrightYear)
	}
}

func TestParseCorrectionTitleFallback(t *testing.T) {
	input := `<article article-type="correction">
  <front>
    <article-meta>
      <article-id pub-id-type="doi">10.1000/fix.1</article-id>
      <title-group><article-title></article-title></title-group>
    </article-meta>
  </front>
  <body>
    <p>Correction to: A previously published study</p>
  </body>
</article>`
	document := parseSample(t, input)

	if document.Title() != "Correction to: A previously published study" {
		t.Errorf("Title = %q", document.Title())
	}
	if document.Type != doc.TypeCorrection {
		t.Errorf("Type = %q, want %q", document.Type, doc.TypeCorrection)
	}
}

func TestParseMissingMetadata(t *testing.T) {
	f := &Format{}
	_, err := f.Parse(strings.NewReader(`<article article-type="research-article"><body/></article>`), nil)
	if !errors.Is(err, format.ErrMissingMetadata) {
		t.Errorf("err = %v, want ErrMissingMetadata", err)
	}
}

func TestCanParse(t *testing.T) {
	f := &Format{}
	if !f.CanParse([]byte(sampleArticle)) {
		t.Error("CanParse rejected a JATS article")
	}
	if f.CanParse([]byte(`<PubmedArticleSet><PubmedArticle/></PubmedArticleSet>`)) {
		t.Error("CanParse accepted a PubMed citation set")
	}
	if f.CanParse([]byte(`{"synthetic_id":""}`)) {
		t.Error("CanParse accepted JSON")
	}
}
