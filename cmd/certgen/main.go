// Package main provides the CLI entry point for certgen.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/refuge-tools/certgen/pkg/certgen"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "certgen [config.yaml]",
		Short: "Generate certificates from a spreadsheet and a PDF template",
		Long: `certgen stamps one certificate per spreadsheet row onto a PDF template.
Field positions, fonts and column mappings come from a YAML configuration
(default: ` + certgen.DefaultConfigPath + `).`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          run,
	}

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func run(cmd *cobra.Command, args []string) error {
	logger, err := newLogger()
	if err != nil {
		return err
	}
	defer logger.Sync()

	configPath := certgen.DefaultConfigPath
	if len(args) > 0 {
		configPath = args[0]
	}

	cfg, err := certgen.LoadConfig(configPath)
	if err != nil {
		return fmt.Errorf("loading configuration from %s: %w", configPath, err)
	}
	logger.Info("Loaded configuration", zap.String("path", configPath))

	mode := certgen.ModeFor(cfg.TestMode)
	switch mode {
	case certgen.ModeTest:
		logger.Info("Running in test mode with placeholder data")
	default:
		logger.Info("Processing certificates from spreadsheet data")
	}

	summary, err := certgen.Run(cfg, certgen.DefaultOptions(logger))
	if err != nil {
		return err
	}

	if mode == certgen.ModeTest {
		fmt.Println("Review this file and adjust your YAML configuration as needed.")
	}
	fmt.Println("If the text positioning needs adjustment, modify the x_percent and y_percent values in your YAML configuration.")

	if summary.Failed() > 0 {
		return fmt.Errorf("%d of %d certificates failed", summary.Failed(), summary.Failed()+summary.Processed)
	}
	return nil
}

// newLogger builds a console logger on stdout for progress messages.
func newLogger() (*zap.Logger, error) {
	cfg := zap.NewDevelopmentConfig()
	cfg.OutputPaths = []string{"stdout"}
	cfg.DisableCaller = true
	cfg.DisableStacktrace = true
	cfg.Level = zap.NewAtomicLevelAt(zapcore.InfoLevel)
	cfg.EncoderConfig.TimeKey = ""
	return cfg.Build()
}
