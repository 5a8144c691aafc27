package overlay

import (
	"fmt"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/text/encoding/charmap"
)

// BuiltinFont is the core font used when no custom font renders.
const BuiltinFont = "Helvetica"

// BuiltinStrategy draws the text with a core PDF font on an overlay page and
// stamps it over the first page. It always applies.
//
// Core fonts are WinAnsi encoded. Runes outside that encoding are drawn as '?'
// and reported as a warning.
type BuiltinStrategy struct {
	logger *zap.Logger
}

// NewBuiltinStrategy returns a BuiltinStrategy. A nil logger discards warnings.
func NewBuiltinStrategy(logger *zap.Logger) *BuiltinStrategy {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &BuiltinStrategy{logger: logger}
}

// Name implements Strategy.
func (s *BuiltinStrategy) Name() string {
	return StrategyBuiltin
}

// Apply implements Strategy.
func (s *BuiltinStrategy) Apply(doc []byte, geo *Geometry, p Placement) ([]byte, error) {
	text, missing := encodeWinAnsi(p.Text)
	if len(missing) > 0 {
		s.logger.Warn("Characters not in the builtin font were replaced",
			zap.String("field", p.Field),
			zap.String("characters", string(missing)))
	}

	page, err := builtinPage(geo, p, text)
	if err != nil {
		return nil, fmt.Errorf("render overlay page: %w", err)
	}
	return stampOverlay(doc, page)
}

// builtinPage draws text with its baseline at the placement's estimated start.
func builtinPage(geo *Geometry, p Placement, text string) ([]byte, error) {
	pdf := newDocument(geo.Width(), geo.Height())
	pdf.AddPage()
	pdf.SetFont(BuiltinFont, "", p.Layout.FontSize)
	pdf.SetTextColor(0, 0, 0)
	pdf.Text(p.EstimatedStart(), p.Y, text)

	if err := pdf.Error(); err != nil {
		return nil, err
	}
	return outputDocument(pdf)
}

// encodeWinAnsi converts s to the single byte encoding of the core fonts.
// It returns the runes that had no code point.
func encodeWinAnsi(s string) (string, []rune) {
	var b strings.Builder
	var missing []rune
	for _, r := range s {
		c, ok := charmap.Windows1252.EncodeRune(r)
		if !ok {
			missing = append(missing, r)
			c = '?'
		}
		b.WriteByte(c)
	}
	return b.String(), missing
}
