package exporter

import (
	"encoding/json"
	"fmt"
	"os"

	"amazon-reviews-scraper/internal/types"
)

// ExportJSON writes all records as one indented JSON array
func (e *Exporter) ExportJSON(records []types.ReviewRecord, path string) error {
	if records == nil {
		records = []types.ReviewRecord{}
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create JSON file %s: %w", path, err)
	}
	defer f.Close()

	enc := json.NewEncoder(f)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(records); err != nil {
		return fmt.Errorf("failed to write JSON to file %s: %w", path, err)
	}

	e.logger.Infof("Wrote JSON: %s", path)
	return f.Close()
}
