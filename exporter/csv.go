package exporter

import (
	"encoding/csv"
	"fmt"
	"os"
	"sort"

	"amazon-reviews-scraper/internal/types"
)

// ExportCSV writes one row per record under a header of the sorted union of
// field names. No records means an empty file without a header.
func (e *Exporter) ExportCSV(records []types.ReviewRecord, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create CSV file %s: %w", path, err)
	}
	defer f.Close()

	if len(records) == 0 {
		e.logger.Infof("No records; wrote empty CSV: %s", path)
		return f.Close()
	}

	rows, err := recordMaps(records)
	if err != nil {
		return err
	}

	seen := make(map[string]bool)
	var header []string
	for _, row := range rows {
		for key := range row {
			if !seen[key] {
				seen[key] = true
				header = append(header, key)
			}
		}
	}
	sort.Strings(header)

	w := csv.NewWriter(f)
	if err := w.Write(header); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}
	for _, row := range rows {
		line := make([]string, len(header))
		for i, key := range header {
			line[i] = cellText(row[key])
		}
		if err := w.Write(line); err != nil {
			return fmt.Errorf("failed to write CSV row: %w", err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("failed to write CSV to file %s: %w", path, err)
	}

	e.logger.Infof("Wrote CSV: %s", path)
	return f.Close()
}
