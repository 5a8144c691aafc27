package certgen

import (
	"errors"
	"regexp"
	"strings"
	"testing"

	"github.com/refuge-tools/certgen/pkg/certgen/models"
)

func TestSanitizeName(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"Ada Lovelace", "Ada_Lovelace"},
		{"O'Brien-Smith, Jr.", "O_Brien_Smith__Jr_"},
		{"Zoë Ñúñez", "Zoë_Ñúñez"},
		{"../../etc", "______etc"},
		{"", ""},
	}

	for _, tt := range tests {
		result := SanitizeName(tt.input)
		if result != tt.expected {
			t.Errorf("SanitizeName(%q) = %q, expected %q", tt.input, result, tt.expected)
		}
	}
}

func TestPersonName(t *testing.T) {
	values := models.FieldValues{"full_name": "Ada", "blank": ""}

	tests := []struct {
		field    string
		index    int
		expected string
	}{
		{"full_name", 3, "Ada"},
		{"blank", 4, "person_4"},
		{"missing", 0, "person_0"},
	}

	for _, tt := range tests {
		result := PersonName(values, tt.field, tt.index)
		if result != tt.expected {
			t.Errorf("PersonName(%q, %d) = %q, expected %q", tt.field, tt.index, result, tt.expected)
		}
	}
}

func TestOutputFilename(t *testing.T) {
	namePart := regexp.MustCompile(`^[\p{L}\p{N}_]*$`)

	names := []string{"Ada Lovelace", "Dr. Grace M. Hopper (ret.)", "José/Luis", "person_7"}
	for _, name := range names {
		email := "someone@example.org"
		got, err := OutputFilename(name, models.FieldValues{"email": email})
		if err != nil {
			t.Fatalf("OutputFilename(%q) failed: %v", name, err)
		}

		suffix := "_" + email + ".pdf"
		if !strings.HasSuffix(got, suffix) {
			t.Errorf("OutputFilename(%q) = %q, expected suffix %q", name, got, suffix)
			continue
		}
		if prefix := strings.TrimSuffix(got, suffix); !namePart.MatchString(prefix) {
			t.Errorf("OutputFilename(%q) name part %q has characters other than letters, digits and '_'", name, prefix)
		}
	}
}

func TestOutputFilenameMissingEmail(t *testing.T) {
	if _, err := OutputFilename("Ada", models.FieldValues{"full_name": "Ada"}); !errors.Is(err, ErrMissingEmail) {
		t.Errorf("Expected ErrMissingEmail, got %v", err)
	}

	got, err := OutputFilename("Ada", models.FieldValues{"email": ""})
	if err != nil {
		t.Fatalf("Expected an empty email to be accepted, got %v", err)
	}
	if got != "Ada_.pdf" {
		t.Errorf("Expected Ada_.pdf, got %q", got)
	}
}
