// Package overlay stamps text fields onto the first page of a PDF template.
//
// Each field is drawn by the first Strategy that succeeds. The default order
// is composite, embed, then builtin; the custom font strategies only apply to
// fields whose font file exists. A field no strategy can draw is skipped.
package overlay

import (
	"errors"
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/refuge-tools/certgen/pkg/certgen/models"
)

// Renderer stamps fields onto a template.
type Renderer struct {
	logger     *zap.Logger
	fonts      *FontCache
	strategies []Strategy
}

// Option configures a Renderer.
type Option func(*Renderer)

// WithLogger sets the logger.
func WithLogger(logger *zap.Logger) Option {
	return func(r *Renderer) {
		r.logger = logger
	}
}

// WithFontCache shares a font cache between renderers.
func WithFontCache(fonts *FontCache) Option {
	return func(r *Renderer) {
		r.fonts = fonts
	}
}

// WithStrategies replaces the strategy list.
func WithStrategies(strategies ...Strategy) Option {
	return func(r *Renderer) {
		r.strategies = strategies
	}
}

// NewRenderer returns a Renderer using DefaultStrategies unless overridden.
func NewRenderer(opts ...Option) *Renderer {
	r := &Renderer{}
	for _, opt := range opts {
		opt(r)
	}
	if r.logger == nil {
		r.logger = zap.NewNop()
	}
	if r.fonts == nil {
		r.fonts = NewFontCache()
	}
	if r.strategies == nil {
		r.strategies = DefaultStrategies(r.fonts, r.logger)
	}
	return r
}

// FieldResult records the strategy that drew a field.
type FieldResult struct {
	Field    string
	Text     string
	Strategy string
}

// Report describes one render.
type Report struct {
	Geometry *Geometry
	Placed   []FieldResult
	// Skipped lists configured fields that were not drawn, either because no
	// value was provided or because every strategy failed.
	Skipped []string
}

// StrategyFor returns the strategy that drew field.
func (r *Report) StrategyFor(field string) (string, bool) {
	for _, res := range r.Placed {
		if res.Field == field {
			return res.Strategy, true
		}
	}
	return "", false
}

// Render stamps values onto the template at templatePath according to layouts
// and writes the document to destPath, replacing any existing file. Only an
// unreadable template or an unwritable destination is returned as an error.
func (r *Renderer) Render(templatePath, destPath string, values models.FieldValues, layouts *models.Ordered[models.FieldLayout]) (*Report, error) {
	doc, err := os.ReadFile(templatePath)
	if err != nil {
		return nil, fmt.Errorf("read template: %w", err)
	}
	geo, err := InspectBytes(doc)
	if err != nil {
		return nil, fmt.Errorf("read template %s: %w", templatePath, err)
	}

	r.logger.Debug("Adding text to PDF",
		zap.Float64("width", geo.Width()),
		zap.Float64("height", geo.Height()))

	report := &Report{Geometry: geo}
	for _, field := range layouts.Keys() {
		text, ok := values[field]
		if !ok {
			r.logger.Warn("No value provided for field, skipping", zap.String("field", field))
			report.Skipped = append(report.Skipped, field)
			continue
		}
		if text == "" {
			continue
		}

		layout, _ := layouts.Get(field)
		p := NewPlacement(field, text, layout, geo)

		next, strategy, ok := r.place(doc, geo, p)
		if !ok {
			r.logger.Warn("Every rendering strategy failed, skipping field", zap.String("field", field))
			report.Skipped = append(report.Skipped, field)
			continue
		}
		doc = next
		report.Placed = append(report.Placed, FieldResult{Field: field, Text: text, Strategy: strategy})
	}

	if err := os.WriteFile(destPath, doc, 0644); err != nil {
		return nil, fmt.Errorf("write certificate: %w", err)
	}
	r.logger.Debug("Saved modified PDF", zap.String("path", destPath))

	return report, nil
}

// place tries each strategy in order and returns the first result.
func (r *Renderer) place(doc []byte, geo *Geometry, p Placement) ([]byte, string, bool) {
	for _, s := range r.strategies {
		out, err := applyStrategy(s, doc, geo, p)
		if err == nil && len(out) == 0 {
			err = errors.New("empty document")
		}
		if errors.Is(err, ErrNotApplicable) {
			continue
		}
		if err != nil {
			r.logger.Warn("Rendering strategy failed",
				zap.String("field", p.Field),
				zap.String("strategy", s.Name()),
				zap.Error(err))
			continue
		}

		r.logger.Info("Added text for field",
			zap.String("field", p.Field),
			zap.String("strategy", s.Name()))
		return out, s.Name(), true
	}
	return nil, "", false
}
