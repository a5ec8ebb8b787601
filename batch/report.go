package batch

import (
	"fmt"
	"sort"
	"strings"
)

// TypeDistribution is a histogram of the raw article-type strings seen during
// a run, before mapping onto the internal taxonomy. Records without a source
// type count under the empty string.
type TypeDistribution struct {
	Total  int
	Counts map[string]int
}

// NewTypeDistribution creates an empty histogram.
func NewTypeDistribution() *TypeDistribution {
	return &TypeDistribution{Counts: make(map[string]int)}
}

// Add records one document's raw type.
func (d *TypeDistribution) Add(rawType string) {
	d.Total++
	d.Counts[rawType]++
}

// Merge folds another histogram into this one.
func (d *TypeDistribution) Merge(other *TypeDistribution) {
	if other == nil {
		return
	}
	d.Total += other.Total
	for rawType, count := range other.Counts {
		d.Counts[rawType] += count
	}
}

// TypeCount is one histogram row.
type TypeCount struct {
	RawType    string
	Count      int
	Percentage float64
}

// Entries returns the histogram rows sorted by count descending, ties broken
// alphabetically.
func (d *TypeDistribution) Entries() []TypeCount {
	entries := make([]TypeCount, 0, len(d.Counts))
	for rawType, count := range d.Counts {
		entry := TypeCount{RawType: rawType, Count: count}
		if d.Total > 0 {
			entry.Percentage = float64(count) / float64(d.Total) * 100
		}
		entries = append(entries, entry)
	}
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].Count != entries[j].Count {
			return entries[i].Count > entries[j].Count
		}
		return entries[i].RawType < entries[j].RawType
	})
	return entries
}

// String renders the classification report.
func (d *TypeDistribution) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%d documents\n", d.Total)
	for _, entry := range d.Entries() {
		label := entry.RawType
		if label == "" {
			label = "(none)"
		}
		fmt.Fprintf(&b, "  %-40s %8d  %5.1f%%\n", label, entry.Count, entry.Percentage)
	}
	return b.String()
}
