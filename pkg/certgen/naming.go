package certgen

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/refuge-tools/certgen/pkg/certgen/models"
)

// TestCertificateName is the file written in test mode.
const TestCertificateName = "test_certificate.pdf"

// SanitizeName replaces every rune that is not a letter or digit with '_'.
func SanitizeName(name string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			return r
		}
		return '_'
	}, name)
}

// PersonName returns the value of the name field, or a positional
// placeholder when the row has none.
func PersonName(values models.FieldValues, nameField string, index int) string {
	if name := values[nameField]; name != "" {
		return name
	}
	return fmt.Sprintf("person_%d", index)
}

// OutputFilename derives the certificate file name for a recipient. The email
// is used verbatim; a row without an email field yields ErrMissingEmail.
func OutputFilename(personName string, values models.FieldValues) (string, error) {
	email, ok := values[models.EmailField]
	if !ok {
		return "", ErrMissingEmail
	}
	return SanitizeName(personName) + "_" + email + ".pdf", nil
}
