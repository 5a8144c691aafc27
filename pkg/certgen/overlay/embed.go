package overlay

import (
	"bytes"
	"io"

	"codeberg.org/go-pdf/fpdf"
	"codeberg.org/go-pdf/fpdf/contrib/gofpdi"
)

// EmbedStrategy imports the document pages as templates and writes the text
// directly with the custom font. Centered text uses the width estimate.
type EmbedStrategy struct {
	fonts *FontCache
}

// NewEmbedStrategy returns an EmbedStrategy loading fonts through fonts.
func NewEmbedStrategy(fonts *FontCache) *EmbedStrategy {
	return &EmbedStrategy{fonts: fonts}
}

// Name implements Strategy.
func (s *EmbedStrategy) Name() string {
	return StrategyEmbed
}

// Apply implements Strategy.
func (s *EmbedStrategy) Apply(doc []byte, geo *Geometry, p Placement) ([]byte, error) {
	if !p.Layout.HasFont() || !s.fonts.Available(p.Layout.Font) {
		return nil, ErrNotApplicable
	}

	font, err := s.fonts.Load(p.Layout.Font)
	if err != nil {
		return nil, err
	}

	pdf := newDocument(geo.Width(), geo.Height())
	if err := setFont(pdf, font, p.Layout.FontSize); err != nil {
		return nil, err
	}

	importer := gofpdi.NewImporter()
	rs := io.ReadSeeker(bytes.NewReader(doc))

	for i, dim := range geo.Pages {
		pdf.AddPageFormat("P", fpdf.SizeType{Wd: dim.Width, Ht: dim.Height})

		tpl := importer.ImportPageFromStream(pdf, &rs, i+1, "/MediaBox")
		importer.UseImportedTemplate(pdf, tpl, 0, 0, dim.Width, dim.Height)

		if i == 0 {
			pdf.Text(p.EstimatedStart(), p.Y, p.Text)
		}
	}

	if err := pdf.Error(); err != nil {
		return nil, err
	}
	return outputDocument(pdf)
}
