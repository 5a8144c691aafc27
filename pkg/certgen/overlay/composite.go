package overlay

import "fmt"

// CompositeStrategy renders the text with the custom font on a separate page
// of the template's size and stamps that page over the first page.
type CompositeStrategy struct {
	fonts *FontCache
}

// NewCompositeStrategy returns a CompositeStrategy loading fonts through fonts.
func NewCompositeStrategy(fonts *FontCache) *CompositeStrategy {
	return &CompositeStrategy{fonts: fonts}
}

// Name implements Strategy.
func (s *CompositeStrategy) Name() string {
	return StrategyComposite
}

// Apply implements Strategy.
func (s *CompositeStrategy) Apply(doc []byte, geo *Geometry, p Placement) ([]byte, error) {
	if !p.Layout.HasFont() || !s.fonts.Available(p.Layout.Font) {
		return nil, ErrNotApplicable
	}

	page, err := s.renderPage(geo, p)
	if err != nil {
		return nil, fmt.Errorf("render overlay page: %w", err)
	}
	return stampOverlay(doc, page)
}

// renderPage draws the text alone on a blank page sized like the first page.
func (s *CompositeStrategy) renderPage(geo *Geometry, p Placement) ([]byte, error) {
	font, err := s.fonts.Load(p.Layout.Font)
	if err != nil {
		return nil, err
	}

	w, h := geo.Width(), geo.Height()
	pdf := newDocument(w, h)
	pdf.AddPage()
	if err := setFont(pdf, font, p.Layout.FontSize); err != nil {
		return nil, err
	}

	x := p.X
	if p.Layout.Centered() {
		x = (w - pdf.GetStringWidth(p.Text)) / 2
	}
	pdf.Text(x, p.Y, p.Text)

	return outputDocument(pdf)
}
