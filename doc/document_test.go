package doc

import (
	"reflect"
	"testing"
)

func TestGetID(t *testing.T) {
	d := &Document{IDs: []DocumentID{
		{ID: "10.1/x", Type: "doi"},
		{ID: "PMC1", Type: "pmc"},
	}}
	if got := d.GetID("pmc"); got != "PMC1" {
		t.Errorf("GetID(pmc) = %q, want PMC1", got)
	}
	if got := d.GetID("pmid"); got != "" {
		t.Errorf("GetID(pmid) = %q, want empty", got)
	}
}

func TestTitleAndAbstractAccessors(t *testing.T) {
	d := &Document{Sections: []*Section{
		{Name: SectionTitle, Text: "The Title"},
		{Name: SectionAbstract, Text: "The abstract."},
		{Name: "Introduction", Text: "Body text."},
	}}
	if got := d.Title(); got != "The Title" {
		t.Errorf("Title = %q, want %q", got, "The Title")
	}
	if got := d.Abstract(); got != "The abstract." {
		t.Errorf("Abstract = %q, want %q", got, "The abstract.")
	}

	empty := &Document{}
	if got := empty.Title(); got != "" {
		t.Errorf("Title on empty document = %q, want empty", got)
	}
}

func TestCorrespondingAuthors(t *testing.T) {
	d := &Document{Authors: []Author{
		{Name: "Doe, Jane", IsCorresponding: true},
		{Name: "Roe, Richard"},
	}}
	got := d.CorrespondingAuthors()
	if len(got) != 1 || got[0].Name != "Doe, Jane" {
		t.Errorf("CorrespondingAuthors = %v, want only Doe, Jane", got)
	}
}

func TestSortedKeywords(t *testing.T) {
	set := map[string]struct{}{
		"Methanol":  {},
		"Animals":   {},
		"Formates":  {},
	}
	want := []string{"Animals", "Formates", "Methanol"}
	if got := SortedKeywords(set); !reflect.DeepEqual(got, want) {
		t.Errorf("SortedKeywords = %v, want %v", got, want)
	}
	if got := SortedKeywords(nil); got != nil {
		t.Errorf("SortedKeywords(nil) = %v, want nil", got)
	}
}
