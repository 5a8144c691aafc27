package certgen

import (
	"time"

	"github.com/araddon/dateparse"

	"github.com/refuge-tools/certgen/pkg/certgen/models"
)

// Date layouts. The spreadsheet paths end with a period; the fallbacks do not.
const (
	// TypedDateLayout formats cells the spreadsheet stores as dates.
	TypedDateLayout = "January 02, 2006."
	// ParsedDateLayout formats text cells that parse as dates.
	ParsedDateLayout = "January 2, 2006."
	// TodayLayout formats the current date when a row has no date.
	TodayLayout = "January 02 2006"
	// TestDateLayout formats the current date in test mode.
	TestDateLayout = "January 02, 2006"
)

// ResolveFields computes the display string of every mapped field for one row.
// Fields whose column is missing are left out, except the date field, which
// falls back to now when it is configured for layout.
func ResolveFields(cfg *models.Config, row models.Row, now time.Time) models.FieldValues {
	values := make(models.FieldValues, cfg.FieldMappings.Len())

	for _, field := range cfg.FieldMappings.Keys() {
		column, _ := cfg.FieldMappings.Get(field)

		cell, ok := models.Cell{}, false
		if column != "" {
			cell, ok = row.Lookup(column)
		}

		switch {
		case ok && field == models.DateField && !cell.Empty():
			values[field] = FormatDateCell(cell)
		case ok && field != models.DateField:
			values[field] = cell.Text
		case field == models.DateField && cfg.Fields.Has(models.DateField):
			values[field] = now.Format(TodayLayout)
		}
	}

	return values
}

// TestFields builds the placeholder values rendered in test mode.
func TestFields(cfg *models.Config, now time.Time) models.FieldValues {
	values := make(models.FieldValues, cfg.Fields.Len())
	for _, field := range cfg.Fields.Keys() {
		values[field] = "Test " + field
	}
	if cfg.Fields.Has(models.DateField) {
		values[models.DateField] = now.Format(TestDateLayout)
	}
	return values
}

// FormatDateCell formats a non-empty date cell. Text that does not parse as a
// date is returned unchanged.
func FormatDateCell(cell models.Cell) string {
	if cell.Date != nil {
		return cell.Date.Format(TypedDateLayout)
	}
	t, err := dateparse.ParseAny(cell.Text)
	if err != nil {
		return cell.Text
	}
	return t.Format(ParsedDateLayout)
}
