package exporter

import (
	"encoding/json"
	"fmt"

	"github.com/xuri/excelize/v2"

	"amazon-reviews-scraper/internal/types"
)

// SheetName is the worksheet holding the review records
const SheetName = "reviews"

// ExportExcel writes records to a single-sheet workbook with the record
// field names as header
func (e *Exporter) ExportExcel(records []types.ReviewRecord, path string) error {
	rows, err := recordMaps(records)
	if err != nil {
		return err
	}

	f := excelize.NewFile()
	defer f.Close()
	if err := f.SetSheetName("Sheet1", SheetName); err != nil {
		return fmt.Errorf("failed to name sheet: %w", err)
	}

	sw, err := f.NewStreamWriter(SheetName)
	if err != nil {
		return fmt.Errorf("failed to open sheet writer: %w", err)
	}

	fields := FieldNames()
	header := make([]interface{}, len(fields))
	for i, name := range fields {
		header[i] = name
	}
	if err := sw.SetRow("A1", header); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}

	for i, row := range rows {
		values := make([]interface{}, len(fields))
		for j, name := range fields {
			values[j] = cellValue(row[name])
		}
		cell, _ := excelize.CoordinatesToCellName(1, i+2)
		if err := sw.SetRow(cell, values); err != nil {
			return fmt.Errorf("failed to write row %d: %w", i+1, err)
		}
	}
	if err := sw.Flush(); err != nil {
		return fmt.Errorf("failed to flush sheet: %w", err)
	}
	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("failed to save workbook %s: %w", path, err)
	}

	e.logger.Infof("Wrote Excel: %s", path)
	return nil
}

// cellValue keeps numbers and booleans typed in the sheet
func cellValue(v interface{}) interface{} {
	switch val := v.(type) {
	case nil, bool, string:
		return val
	case json.Number:
		if n, err := val.Int64(); err == nil {
			return n
		}
		return val.String()
	default:
		return cellText(val)
	}
}
