package certgen

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"github.com/refuge-tools/certgen/pkg/certgen/models"
	"github.com/refuge-tools/certgen/pkg/certgen/overlay"
	"github.com/refuge-tools/certgen/pkg/certgen/parser"
)

// Summary reports the outcome of a run.
type Summary struct {
	Mode      Mode
	Processed int
	Outputs   []string
	Failures  []*RowError
}

// Failed returns the number of rows that produced no certificate.
func (s *Summary) Failed() int {
	return len(s.Failures)
}

// Run generates certificates in the mode the configuration selects.
func Run(cfg *models.Config, opts Options) (*Summary, error) {
	if cfg.TestMode {
		return RunTest(cfg, opts)
	}
	return RunBatch(cfg, opts)
}

// RunBatch renders one certificate per spreadsheet row. A row that fails is
// recorded in the summary and the batch continues.
func RunBatch(cfg *models.Config, opts Options) (*Summary, error) {
	logger := opts.logger()

	if err := inspectTemplate(cfg.TemplatePDFPath, logger); err != nil {
		return nil, err
	}

	table, err := parser.ReadRows(cfg.ExcelPath, cfg.SheetName)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrSpreadsheet, cfg.ExcelPath, err)
	}
	logger.Info("Read spreadsheet",
		zap.String("path", cfg.ExcelPath),
		zap.String("sheet", table.SheetName),
		zap.String("columns", strings.Join(table.Columns, ", ")),
		zap.Int("rows", len(table.Rows)))

	if err := os.MkdirAll(cfg.OutputFolder, 0755); err != nil {
		return nil, err
	}

	renderer := opts.renderer()
	summary := &Summary{Mode: ModeBatch}

	for _, row := range table.Rows {
		path, err := renderRow(cfg, row, renderer, opts)
		if err != nil {
			logger.Error("Certificate failed", zap.Int("row", err.Index), zap.String("name", err.Name), zap.Error(err.Err))
			summary.Failures = append(summary.Failures, err)
			continue
		}
		summary.Processed++
		summary.Outputs = append(summary.Outputs, path)
	}

	logger.Info("Completed processing certificates",
		zap.Int("rows", len(table.Rows)),
		zap.Int("processed", summary.Processed),
		zap.Int("failed", summary.Failed()))

	return summary, nil
}

// renderRow resolves and renders the certificate of one row.
func renderRow(cfg *models.Config, row models.Row, renderer Renderer, opts Options) (string, *RowError) {
	logger := opts.logger()

	values := ResolveFields(cfg, row, opts.now())
	name := PersonName(values, cfg.NameField, row.Index)

	filename, err := OutputFilename(name, values)
	if err != nil {
		return "", NewRowError(row.Index, name, err)
	}
	path := filepath.Join(cfg.OutputFolder, filename)

	logger.Info("Processing certificate", zap.String("name", name))

	report, err := renderer.Render(cfg.TemplatePDFPath, path, values, &cfg.Fields)
	if err != nil {
		return "", NewRowError(row.Index, name, err)
	}
	logReport(logger, report)
	logger.Info("Certificate created", zap.String("name", name), zap.String("path", path))

	return path, nil
}

// RunTest renders a single certificate with placeholder values so the layout
// can be checked before a real batch.
func RunTest(cfg *models.Config, opts Options) (*Summary, error) {
	logger := opts.logger()

	if err := os.MkdirAll(cfg.OutputFolder, 0755); err != nil {
		return nil, err
	}
	if err := inspectTemplate(cfg.TemplatePDFPath, logger); err != nil {
		return nil, err
	}

	values := TestFields(cfg, opts.now())
	path := filepath.Join(cfg.OutputFolder, TestCertificateName)

	report, err := opts.renderer().Render(cfg.TemplatePDFPath, path, values, &cfg.Fields)
	if err != nil {
		return nil, err
	}
	logReport(logger, report)
	logger.Info("Test certificate created", zap.String("path", path))

	return &Summary{Mode: ModeTest, Processed: 1, Outputs: []string{path}}, nil
}

// inspectTemplate logs the template geometry and fails when it cannot be read.
func inspectTemplate(path string, logger *zap.Logger) error {
	geo, err := overlay.Inspect(path)
	if err != nil {
		return fmt.Errorf("%w: %s: %v", ErrTemplate, path, err)
	}
	logger.Info("Analyzed template",
		zap.String("path", path),
		zap.Int("pages", geo.PageCount()),
		zap.Float64("width", geo.Width()),
		zap.Float64("height", geo.Height()))
	return nil
}

func logReport(logger *zap.Logger, report *overlay.Report) {
	if report == nil {
		return
	}
	for _, res := range report.Placed {
		logger.Debug("Placed field", zap.String("field", res.Field), zap.String("strategy", res.Strategy))
	}
	if len(report.Skipped) > 0 {
		logger.Warn("Fields skipped", zap.Strings("fields", report.Skipped))
	}
}
