package overlay

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"time"

	"codeberg.org/go-pdf/fpdf"
	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/types"
	"go.uber.org/zap"
)

// ErrNotApplicable is returned by a strategy that cannot handle a placement,
// such as a custom font strategy for a field without a font.
var ErrNotApplicable = errors.New("strategy not applicable")

// Strategy draws one placement onto a document and returns the new document.
type Strategy interface {
	Name() string
	Apply(doc []byte, geo *Geometry, p Placement) ([]byte, error)
}

// Strategy names.
const (
	StrategyComposite = "composite"
	StrategyEmbed     = "embed"
	StrategyBuiltin   = "builtin"
)

// DefaultStrategies returns the strategies tried for every field, in order.
func DefaultStrategies(fonts *FontCache, logger *zap.Logger) []Strategy {
	return []Strategy{
		NewCompositeStrategy(fonts),
		NewEmbedStrategy(fonts),
		NewBuiltinStrategy(logger),
	}
}

// applyStrategy runs s and turns a panic into an error.
func applyStrategy(s Strategy, doc []byte, geo *Geometry, p Placement) (out []byte, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			out, err = nil, fmt.Errorf("%s: panic: %v", s.Name(), rec)
		}
	}()
	return s.Apply(doc, geo, p)
}

// documentDate is stamped into fpdf documents so equal inputs give equal output.
var documentDate = time.Date(2000, time.January, 1, 0, 0, 0, 0, time.UTC)

// newDocument starts an fpdf document measured in points with no margins.
func newDocument(w, h float64) *fpdf.Fpdf {
	pdf := fpdf.NewCustom(&fpdf.InitType{
		OrientationStr: "P",
		UnitStr:        "pt",
		Size:           fpdf.SizeType{Wd: w, Ht: h},
	})
	pdf.SetMargins(0, 0, 0)
	pdf.SetAutoPageBreak(false, 0)
	pdf.SetCreationDate(documentDate)
	pdf.SetModificationDate(documentDate)
	pdf.SetCatalogSort(true)
	return pdf
}

// setFont registers font in pdf and selects it at size points.
func setFont(pdf *fpdf.Fpdf, font *Font, size float64) error {
	pdf.AddUTF8FontFromBytes(font.Family, "", font.Data)
	pdf.SetFont(font.Family, "", size)
	return pdf.Error()
}

func outputDocument(pdf *fpdf.Fpdf) ([]byte, error) {
	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// overlayDesc lays an overlay page over the whole target page at its own size.
const overlayDesc = "scalefactor:1 abs, rotation:0, opacity:1"

// stampOverlay lays the single page PDF page over the first page of doc.
func stampOverlay(doc, page []byte) ([]byte, error) {
	path, cleanup, err := writeTemp(page)
	if err != nil {
		return nil, err
	}
	defer cleanup()

	wm, err := api.PDFWatermark(path, overlayDesc, true, false, types.POINTS)
	if err != nil {
		return nil, fmt.Errorf("prepare overlay: %w", err)
	}
	return stampFirstPage(doc, wm)
}

// stampFirstPage applies wm on top of the first page of doc.
func stampFirstPage(doc []byte, wm *model.Watermark) ([]byte, error) {
	var out bytes.Buffer
	if err := api.AddWatermarks(bytes.NewReader(doc), &out, []string{"1"}, wm, newConfiguration()); err != nil {
		return nil, err
	}
	return out.Bytes(), nil
}

// writeTemp stores data in a temporary PDF file and returns a cleanup func.
func writeTemp(data []byte) (string, func(), error) {
	f, err := os.CreateTemp("", "certgen-overlay-*.pdf")
	if err != nil {
		return "", nil, err
	}
	name := f.Name()
	cleanup := func() { os.Remove(name) }

	if _, err := f.Write(data); err != nil {
		f.Close()
		cleanup()
		return "", nil, err
	}
	if err := f.Close(); err != nil {
		cleanup()
		return "", nil, err
	}
	return name, cleanup, nil
}
