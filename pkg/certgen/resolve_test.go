package certgen

import (
	"regexp"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/refuge-tools/certgen/pkg/certgen/models"
)

var fixedNow = time.Date(2026, time.October, 9, 15, 4, 5, 0, time.UTC)

func configWith(fields []string, mappings map[string]string, order ...string) *models.Config {
	cfg := models.DefaultConfig()
	for _, f := range fields {
		cfg.Fields.Set(f, models.DefaultFieldLayout())
	}
	for _, f := range order {
		cfg.FieldMappings.Set(f, mappings[f])
	}
	return &cfg
}

func rowOf(cells map[string]models.Cell) models.Row {
	return models.Row{Index: 0, Cells: cells}
}

func TestResolveFields(t *testing.T) {
	issued := time.Date(2024, time.March, 5, 0, 0, 0, 0, time.UTC)
	cfg := configWith(
		[]string{"full_name", "email", "date"},
		map[string]string{"full_name": "Name", "email": "Email", "date": "Issued", "hours": "Hours", "unmapped": ""},
		"full_name", "email", "date", "hours", "unmapped",
	)

	tests := []struct {
		name     string
		cells    map[string]models.Cell
		expected models.FieldValues
	}{
		{
			name: "typed date",
			cells: map[string]models.Cell{
				"Name":   {Text: "Ada Lovelace"},
				"Email":  {Text: "ada@example.org"},
				"Issued": {Text: "3/5/24", Date: &issued},
				"Hours":  {Text: "12"},
			},
			expected: models.FieldValues{
				"full_name": "Ada Lovelace",
				"email":     "ada@example.org",
				"date":      "March 05, 2024.",
				"hours":     "12",
			},
		},
		{
			name: "text date",
			cells: map[string]models.Cell{
				"Name":   {Text: "Alan Turing"},
				"Email":  {Text: "alan@example.org"},
				"Issued": {Text: "2024-03-07"},
				"Hours":  {},
			},
			expected: models.FieldValues{
				"full_name": "Alan Turing",
				"email":     "alan@example.org",
				"date":      "March 7, 2024.",
				"hours":     "",
			},
		},
		{
			name: "unparseable date is kept",
			cells: map[string]models.Cell{
				"Email":  {Text: "x@example.org"},
				"Issued": {Text: "sometime soon"},
			},
			expected: models.FieldValues{
				"email": "x@example.org",
				"date":  "sometime soon",
			},
		},
		{
			name: "empty date falls back to today",
			cells: map[string]models.Cell{
				"Email":  {Text: "x@example.org"},
				"Issued": {},
			},
			expected: models.FieldValues{
				"email": "x@example.org",
				"date":  "October 09 2026",
			},
		},
		{
			name:  "missing date column falls back to today",
			cells: map[string]models.Cell{"Name": {Text: "Grace"}},
			expected: models.FieldValues{
				"full_name": "Grace",
				"date":      "October 09 2026",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ResolveFields(cfg, rowOf(tt.cells), fixedNow)
			if diff := cmp.Diff(tt.expected, got); diff != "" {
				t.Errorf("ResolveFields mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestResolveFieldsDateNotConfigured(t *testing.T) {
	cfg := configWith(
		[]string{"full_name"},
		map[string]string{"full_name": "Name", "date": "Issued"},
		"full_name", "date",
	)

	got := ResolveFields(cfg, rowOf(map[string]models.Cell{"Name": {Text: "Grace"}}), fixedNow)
	if _, ok := got["date"]; ok {
		t.Errorf("Expected no date when date is not configured, got %q", got["date"])
	}
}

func TestResolvedDatePaths(t *testing.T) {
	cfg := configWith([]string{"date"}, map[string]string{"date": "Issued"}, "date")
	present := regexp.MustCompile(`^(January|February|March|April|May|June|July|August|September|October|November|December) \d{1,2}, \d{4}\.$`)

	issued := time.Date(1999, time.December, 31, 0, 0, 0, 0, time.UTC)
	for _, cell := range []models.Cell{
		{Text: "12/31/99", Date: &issued},
		{Text: "1999-12-31"},
		{Text: "December 31, 1999"},
	} {
		got := ResolveFields(cfg, rowOf(map[string]models.Cell{"Issued": cell}), fixedNow)["date"]
		if !present.MatchString(got) {
			t.Errorf("Date from %+v = %q, expected month day, year with a period", cell, got)
		}
	}

	missing := ResolveFields(cfg, rowOf(map[string]models.Cell{}), fixedNow)["date"]
	if missing != fixedNow.Format("January 02 2006") {
		t.Errorf("Expected today's date %q, got %q", fixedNow.Format("January 02 2006"), missing)
	}
	if present.MatchString(missing) {
		t.Errorf("Expected fallback date %q without comma or period", missing)
	}
}

func TestTestFields(t *testing.T) {
	cfg := configWith([]string{"full_name", "email", "date"}, nil)

	got := TestFields(cfg, fixedNow)
	want := models.FieldValues{
		"full_name": "Test full_name",
		"email":     "Test email",
		"date":      "October 09, 2026",
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("TestFields mismatch (-want +got):\n%s", diff)
	}
}
