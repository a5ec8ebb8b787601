package doc

import "testing"

func TestMonthNumber(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"Jan", "1"},
		{"Dec", "12"},
		{"February", "2"},
		{"sep", "9"},
		{"02", "2"},
		{"11", "11"},
		{"", ""},
		{"Winter", "Winter"},
	}

	for _, tt := range tests {
		if got := MonthNumber(tt.input); got != tt.want {
			t.Errorf("MonthNumber(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestPartialDate(t *testing.T) {
	tests := []struct {
		name             string
		year, month, day string
		want             string
	}{
		{"full date", "2022", "02", "21", "2022-2-21"},
		{"year and month", "2022", "6", "", "2022-6"},
		{"year only", "1975", "", "", "1975"},
		{"month name", "1975", "Jun", "", "1975-6"},
		{"day without month dropped", "2022", "", "15", "2022"},
		{"no year", "", "3", "4", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := PartialDate(tt.year, tt.month, tt.day); got != tt.want {
				t.Errorf("PartialDate(%q, %q, %q) = %q, want %q",
					tt.year, tt.month, tt.day, got, tt.want)
			}
		})
	}
}

func TestPublicationYearFallback(t *testing.T) {
	tests := []struct {
		name     string
		dates    PublicationDates
		priority []string
		want     int
	}{
		{
			name:     "collection wins over all",
			dates:    PublicationDates{Received: "2021-3-23", Accepted: "2022-2-21", EPub: "2022-2-24", Collection: "2022-6"},
			priority: JATSYearPriority,
			want:     2022,
		},
		{
			name:     "accepted when no epub or collection",
			dates:    PublicationDates{Received: "2020-12-1", Accepted: "2021-5-2"},
			priority: JATSYearPriority,
			want:     2021,
		},
		{
			name:     "received as last resort",
			dates:    PublicationDates{Received: "2019"},
			priority: JATSYearPriority,
			want:     2019,
		},
		{
			name:     "pubmed chain ignores history-only dates",
			dates:    PublicationDates{Received: "1974", Accepted: "1974-12"},
			priority: PubMedYearPriority,
			want:     0,
		},
		{
			name:     "pubmed epub fallback",
			dates:    PublicationDates{EPub: "1975-6-1"},
			priority: PubMedYearPriority,
			want:     1975,
		},
		{
			name:     "empty",
			dates:    PublicationDates{},
			priority: JATSYearPriority,
			want:     0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := PublicationYear(tt.dates, tt.priority); got != tt.want {
				t.Errorf("PublicationYear = %d, want %d", got, tt.want)
			}
		})
	}
}
