// Package models defines data structures shared by the certificate pipeline.
package models

// Alignment is the horizontal anchoring of a field.
type Alignment string

const (
	// AlignLeft starts the text at the computed x position.
	AlignLeft Alignment = "left"
	// AlignCenter centers the text horizontally on the page.
	AlignCenter Alignment = "center"
)

// Config is the configuration document for a run.
type Config struct {
	// ExcelPath is the spreadsheet holding one row per recipient.
	ExcelPath string `yaml:"excel_path"`
	// SheetName selects a sheet; empty means the first sheet.
	SheetName string `yaml:"sheet_name"`
	// TemplatePDFPath is the blank certificate.
	TemplatePDFPath string `yaml:"template_pdf_path"`
	// OutputFolder receives the generated certificates.
	OutputFolder string `yaml:"output_folder"`
	// TestMode renders a single certificate with placeholder values.
	TestMode bool `yaml:"test_mode"`
	// NameField is the resolved field used to build output file names.
	NameField string `yaml:"name_field"`
	// Fields maps field name to its layout, in document order.
	Fields Ordered[FieldLayout] `yaml:"fields"`
	// FieldMappings maps field name to spreadsheet column, in document order.
	FieldMappings Ordered[string] `yaml:"field_mappings"`
}

// FieldLayout describes where and how a field is drawn.
type FieldLayout struct {
	// XPercent is the horizontal position relative to page width.
	XPercent float64 `yaml:"x_percent"`
	// YPercent is the baseline position relative to page height, from the top.
	YPercent float64 `yaml:"y_percent"`
	// FontSize is in points.
	FontSize float64 `yaml:"font_size"`
	// Alignment is left or center.
	Alignment Alignment `yaml:"alignment"`
	// Font is an optional path to a TrueType font file.
	Font string `yaml:"font"`
}

// DefaultConfig returns the configuration used for keys the document omits.
func DefaultConfig() Config {
	return Config{
		ExcelPath:       "refuge_names.xlsx",
		TemplatePDFPath: "certificate_template.pdf",
		OutputFolder:    "completed_certificates",
		NameField:       "full_name",
	}
}

// DefaultFieldLayout returns the layout used for keys a field omits.
func DefaultFieldLayout() FieldLayout {
	return FieldLayout{
		XPercent:  50,
		YPercent:  50,
		FontSize:  12,
		Alignment: AlignLeft,
	}
}

func (l *FieldLayout) applyDefaults() {
	*l = DefaultFieldLayout()
}

// Centered reports whether the field is centered. Unknown alignments fall back to left.
func (l FieldLayout) Centered() bool {
	return l.Alignment == AlignCenter
}

// HasFont reports whether a custom font file is configured.
func (l FieldLayout) HasFont() bool {
	return l.Font != ""
}
