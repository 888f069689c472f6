package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"amazon-reviews-scraper/config"
	"amazon-reviews-scraper/exporter"
	"amazon-reviews-scraper/extractor"
	"amazon-reviews-scraper/runner"
)

// exitError carries the process exit code for a failed run
type exitError struct {
	code int
	err  error
}

func (e *exitError) Error() string { return e.err.Error() }
func (e *exitError) Unwrap() error { return e.err }

type options struct {
	input    string
	settings string
	outDir   string
	format   string
	mock     bool
	maxPages int
	sort     string
	verbose  bool
}

func newRootCmd() *cobra.Command {
	opts := &options{}

	cmd := &cobra.Command{
		Use:           "amazon-reviews-scraper",
		Short:         "Extracts Amazon product reviews by ASIN and exports them as JSON, CSV or Excel.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PreRunE: func(cmd *cobra.Command, args []string) error {
			if _, err := exporter.ParseFormat(opts.format); err != nil {
				return &exitError{code: 2, err: err}
			}
			if opts.sort != "" && opts.sort != "recent" && opts.sort != "helpful" {
				return &exitError{code: 2, err: fmt.Errorf("unknown sort strategy %q (want recent or helpful)", opts.sort)}
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			var overrides config.Overrides
			if cmd.Flags().Changed("max-pages") {
				overrides.MaxPages = &opts.maxPages
			}
			overrides.SortBy = opts.sort
			overrides.Mock = opts.mock
			return run(cmd, opts, overrides)
		},
	}

	flags := cmd.Flags()
	flags.StringVarP(&opts.input, "input", "i", "data/sample_input.json", "Path to input JSON containing ASINs, domainCode, and options")
	flags.StringVarP(&opts.settings, "settings", "s", "config/settings.json", "Path to settings JSON with defaults, domains and network options")
	flags.StringVarP(&opts.outDir, "outdir", "o", "out", "Directory to write exported files")
	flags.StringVarP(&opts.format, "format", "f", string(exporter.FormatJSON), "Export format (json, csv, excel)")
	flags.BoolVar(&opts.mock, "mock", false, "Generate synthetic data instead of making network requests")
	flags.IntVar(&opts.maxPages, "max-pages", 0, "Override max pages per ASIN")
	flags.StringVar(&opts.sort, "sort", "", "Sort strategy for reviews (recent, helpful)")
	flags.BoolVar(&opts.verbose, "verbose", false, "Enable verbose logging")

	return cmd
}

func run(cmd *cobra.Command, opts *options, overrides config.Overrides) error {
	env, err := config.LoadEnv()
	if err != nil {
		return &exitError{code: 1, err: err}
	}
	logger := config.NewLogger(env.LogLevel, opts.verbose)
	logger.SetOutput(cmd.ErrOrStderr())

	format, _ := exporter.ParseFormat(opts.format)

	if err := os.MkdirAll(opts.outDir, 0o755); err != nil {
		return &exitError{code: 1, err: fmt.Errorf("failed to create output directory: %w", err)}
	}

	settings, found, err := config.LoadSettings(opts.settings)
	if err != nil {
		logger.Errorf("Failed to read settings file %s: %v", opts.settings, err)
		return &exitError{code: 1, err: err}
	}
	if !found {
		logger.Warnf("Settings file not found, using defaults.")
	}

	specs, err := config.LoadInput(opts.input)
	if err != nil {
		logger.Errorf("%v", err)
		return &exitError{code: 1, err: err}
	}

	ext := extractor.NewReviewExtractor(settings.ScraperConfig(), logger, settings.DomainResolver())
	r := runner.NewRunner(ext, settings, overrides, logger)

	startTime := time.Now()
	records, results := r.Run(cmd.Context(), specs)
	logger.Infof("Extraction completed in %v", time.Since(startTime))

	outPath := exporter.OutputPath(opts.outDir, format, time.Now())
	if err := exporter.NewExporter(logger).Export(format, records, outPath); err != nil {
		logger.Errorf("Export failed: %v", err)
		return &exitError{code: 1, err: err}
	}
	logger.Infof("Exported %d records to %s", len(records), outPath)

	fmt.Fprintln(cmd.OutOrStdout(), outPath)
	runner.PrintSummary(cmd.ErrOrStderr(), results)
	return nil
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		code := 1
		var exitErr *exitError
		if errors.As(err, &exitErr) {
			code = exitErr.code
		}
		logrus.Error(err)
		stop()
		os.Exit(code)
	}
}
