package overlay

import (
	"bytes"
	"fmt"
	"os"
	"sync"
	"unicode/utf8"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/types"

	"github.com/refuge-tools/certgen/pkg/certgen/models"
)

// CharWidthFactor estimates the advance of one character as a fraction of the font size.
const CharWidthFactor = 0.6

var disableConfigDir sync.Once

// newConfiguration returns the pdfcpu configuration used for every operation.
// pdfcpu only ever draws core fonts here, so its user config dir is never needed.
func newConfiguration() *model.Configuration {
	disableConfigDir.Do(api.DisableConfigDir)

	conf := model.NewDefaultConfiguration()
	conf.ValidationMode = model.ValidationRelaxed
	// gofpdi re-reads our output; keep classic xref tables.
	conf.WriteObjectStream = false
	conf.WriteXRefStream = false
	return conf
}

// Geometry holds the page dimensions of a document, in points.
type Geometry struct {
	Pages []types.Dim
}

// PageCount returns the number of pages.
func (g *Geometry) PageCount() int {
	return len(g.Pages)
}

// Width returns the width of the first page.
func (g *Geometry) Width() float64 {
	return g.Pages[0].Width
}

// Height returns the height of the first page.
func (g *Geometry) Height() float64 {
	return g.Pages[0].Height
}

// Inspect reads the page geometry of the PDF at path.
func Inspect(path string) (*Geometry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return InspectBytes(data)
}

// InspectBytes reads the page geometry of a PDF held in memory.
func InspectBytes(data []byte) (*Geometry, error) {
	dims, err := api.PageDims(bytes.NewReader(data), newConfiguration())
	if err != nil {
		return nil, err
	}
	if len(dims) == 0 {
		return nil, fmt.Errorf("document has no pages")
	}
	return &Geometry{Pages: dims}, nil
}

// Placement is one field positioned on the first page. X and Y use a top-left
// origin; Y is the text baseline.
type Placement struct {
	Field  string
	Text   string
	Layout models.FieldLayout
	X, Y   float64
	Width  float64
	Height float64
}

// NewPlacement converts the percentage layout of a field to page coordinates.
func NewPlacement(field, text string, layout models.FieldLayout, geo *Geometry) Placement {
	w, h := geo.Width(), geo.Height()
	return Placement{
		Field:  field,
		Text:   text,
		Layout: layout,
		X:      w * layout.XPercent / 100,
		Y:      h * layout.YPercent / 100,
		Width:  w,
		Height: h,
	}
}

// EstimatedStart returns the left edge of the text when its real width is
// unknown. Centered text uses EstimateTextWidth.
func (p Placement) EstimatedStart() float64 {
	if p.Layout.Centered() {
		return CenteredStart(p.Width, p.Text, p.Layout.FontSize)
	}
	return p.X
}

// EstimateTextWidth approximates the rendered width of text.
func EstimateTextWidth(text string, fontSize float64) float64 {
	return float64(utf8.RuneCountInString(text)) * fontSize * CharWidthFactor
}

// CenteredStart returns the x position that centers text on a page of the given width.
func CenteredStart(pageWidth float64, text string, fontSize float64) float64 {
	return (pageWidth - EstimateTextWidth(text, fontSize)) / 2
}
