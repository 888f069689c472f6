package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"amazon-reviews-scraper/adapters"
	"amazon-reviews-scraper/config"
	"amazon-reviews-scraper/internal/types"
)

// SelectorCount is how many elements one selector matched
type SelectorCount struct {
	Field    string
	Selector string
	Matches  int
}

// countSelectors matches every extraction selector against the whole document
func countSelectors(doc *goquery.Document) []SelectorCount {
	selectors := adapters.Selectors()
	counts := make([]SelectorCount, 0, len(selectors))
	for _, s := range selectors {
		counts = append(counts, SelectorCount{
			Field:    s.Field,
			Selector: s.Selector,
			Matches:  doc.Find(s.Selector).Length(),
		})
	}
	return counts
}

func printCounts(w io.Writer, source string, counts []SelectorCount) {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetTitle(source)
	t.AppendHeader(table.Row{"Field", "Matches", "Selector"})
	for _, c := range counts {
		t.AppendRow(table.Row{c.Field, c.Matches, c.Selector})
	}
	t.SetStyle(table.StyleRounded)
	t.Render()
}

func newRootCmd() *cobra.Command {
	var (
		file       string
		asin       string
		domainCode string
		page       int
		settings   string
	)

	cmd := &cobra.Command{
		Use:          "probe [url]",
		Short:        "Prints how many elements each review selector matches on a page.",
		Args:         cobra.MaximumNArgs(1),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := config.LoadEnv()
			if err != nil {
				return err
			}
			logger := config.NewLogger(env.LogLevel, false)
			logger.SetOutput(cmd.ErrOrStderr())

			s, _, err := config.LoadSettings(settings)
			if err != nil {
				return fmt.Errorf("failed to read settings file %s: %w", settings, err)
			}
			adapter := adapters.NewAmazonAdapter(s.ScraperConfig(), logger, s.DomainResolver())

			var content, source string
			switch {
			case file != "":
				data, err := os.ReadFile(file)
				if err != nil {
					return fmt.Errorf("failed to read %s: %w", file, err)
				}
				content, source = string(data), file
			case len(args) == 1 || asin != "":
				source = adapter.BuildReviewsURL(asin, domainCode, page, "recent", types.Filters{})
				if len(args) == 1 {
					source = args[0]
				}
				ctx, cancel := context.WithTimeout(cmd.Context(), time.Minute)
				defer cancel()
				content, err = adapter.GetPageContent(ctx, source)
				if err != nil {
					return err
				}
			default:
				return fmt.Errorf("one of [url], --file or --asin is required")
			}

			doc, err := adapter.ParseHTML(content)
			if err != nil {
				return err
			}
			printCounts(cmd.OutOrStdout(), source, countSelectors(doc))
			if title := adapter.ExtractProductInfo(doc).Title; title != nil {
				fmt.Fprintf(cmd.OutOrStdout(), "Product: %s\n", strings.TrimSpace(*title))
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&file, "file", "", "Saved HTML page to probe instead of fetching")
	cmd.Flags().StringVar(&asin, "asin", "", "Build the reviews URL for this ASIN")
	cmd.Flags().StringVar(&domainCode, "domain", "", "Domain code used with --asin")
	cmd.Flags().IntVar(&page, "page", 1, "Page number used with --asin")
	cmd.Flags().StringVar(&settings, "settings", "config/settings.json", "Settings file for network options and domain aliases")
	return cmd
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
