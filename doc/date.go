package doc

import (
	"strconv"
	"strings"
)

// PublicationDates holds the date events attached to a record as partial-date
// strings: "YYYY", "YYYY-M", or "YYYY-M-D" with no zero padding. Absent
// components are omitted, never zero-filled.
type PublicationDates struct {
	Received   string `json:"received,omitempty"`
	Accepted   string `json:"accepted,omitempty"`
	EPub       string `json:"epub,omitempty"`
	Collection string `json:"collection,omitempty"`
}

// monthNumbers resolves English month names (matched on their first three
// letters) to the numeric month.
var monthNumbers = map[string]int{
	"jan": 1, "feb": 2, "mar": 3, "apr": 4,
	"may": 5, "jun": 6, "jul": 7, "aug": 8,
	"sep": 9, "oct": 10, "nov": 11, "dec": 12,
}

// MonthNumber converts a month token to its unpadded numeric form. Accepts
// numeric strings ("02" -> "2") and month names ("Feb" -> "2", "February" ->
// "2"). Tokens it cannot resolve come back unchanged.
func MonthNumber(month string) string {
	month = strings.TrimSpace(month)
	if month == "" {
		return ""
	}
	if n, err := strconv.Atoi(month); err == nil {
		return strconv.Itoa(n)
	}
	key := strings.ToLower(month)
	if len(key) > 3 {
		key = key[:3]
	}
	if n, ok := monthNumbers[key]; ok {
		return strconv.Itoa(n)
	}
	return month
}

// PartialDate assembles a partial-date string from raw year/month/day tokens.
// Components are included only as far as they are present; numeric tokens are
// unpadded. An empty year yields an empty date.
func PartialDate(year, month, day string) string {
	year = unpad(strings.TrimSpace(year))
	if year == "" {
		return ""
	}
	month = MonthNumber(month)
	if month == "" {
		return year
	}
	date := year + "-" + month
	day = unpad(strings.TrimSpace(day))
	if day == "" {
		return date
	}
	return date + "-" + day
}

func unpad(s string) string {
	if n, err := strconv.Atoi(s); err == nil {
		return strconv.Itoa(n)
	}
	return s
}

// Year fallback chains per source schema. The first non-empty date in the
// chain supplies the publication year.
var (
	JATSYearPriority   = []string{"collection", "epub", "accepted", "received"}
	PubMedYearPriority = []string{"collection", "epub"}
)

func (d PublicationDates) byName(name string) string {
	switch name {
	case "received":
		return d.Received
	case "accepted":
		return d.Accepted
	case "epub":
		return d.EPub
	case "collection":
		return d.Collection
	}
	return ""
}

// PublicationYear derives the year from a date set by trying each field in
// priority order and taking the leading year token of the first non-empty
// candidate. Returns 0 when no date carries a year.
func PublicationYear(dates PublicationDates, priority []string) int {
	for _, name := range priority {
		value := dates.byName(name)
		if value == "" {
			continue
		}
		head, _, _ := strings.Cut(value, "-")
		year, err := strconv.Atoi(head)
		if err != nil {
			continue
		}
		return year
	}
	return 0
}
