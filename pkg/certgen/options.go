// Package certgen generates certificates by stamping spreadsheet rows onto a PDF template.
package certgen

import (
	"time"

	"go.uber.org/zap"

	"github.com/refuge-tools/certgen/pkg/certgen/models"
	"github.com/refuge-tools/certgen/pkg/certgen/overlay"
)

// Mode represents the run mode.
type Mode string

const (
	// ModeBatch renders one certificate per spreadsheet row.
	ModeBatch Mode = "batch"
	// ModeTest renders a single certificate with placeholder values.
	ModeTest Mode = "test"
)

// Options configures a run.
type Options struct {
	// Logger receives progress messages. Nil discards them.
	Logger *zap.Logger
	// Now returns the current time for date fallbacks. Nil means time.Now.
	Now func() time.Time
	// Renderer stamps fields onto the template. Nil builds overlay.NewRenderer.
	Renderer Renderer
}

// Renderer stamps resolved values onto a template and writes the result.
type Renderer interface {
	Render(templatePath, destPath string, values models.FieldValues, layouts *models.Ordered[models.FieldLayout]) (*overlay.Report, error)
}

// DefaultOptions returns run options that log to logger and use the wall clock.
// The renderer is built on first use.
func DefaultOptions(logger *zap.Logger) Options {
	return Options{
		Logger: logger,
		Now:    time.Now,
	}
}

func (o Options) logger() *zap.Logger {
	if o.Logger != nil {
		return o.Logger
	}
	return zap.NewNop()
}

func (o Options) now() time.Time {
	if o.Now != nil {
		return o.Now()
	}
	return time.Now()
}

func (o Options) renderer() Renderer {
	if o.Renderer != nil {
		return o.Renderer
	}
	return overlay.NewRenderer(overlay.WithLogger(o.logger()))
}

// ModeFor returns the mode a configuration selects.
func ModeFor(testMode bool) Mode {
	if testMode {
		return ModeTest
	}
	return ModeBatch
}
