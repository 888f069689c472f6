package exporter

import (
	"bytes"
	"encoding/json"
	"fmt"
	"path/filepath"
	"reflect"
	"strings"
	"time"

	"amazon-reviews-scraper/internal/types"
)

// Format names an output serialization
type Format string

const (
	FormatJSON  Format = "json"
	FormatCSV   Format = "csv"
	FormatExcel Format = "excel"
)

// Formats lists the supported formats in flag order
var Formats = []Format{FormatJSON, FormatCSV, FormatExcel}

// ParseFormat validates a format name
func ParseFormat(name string) (Format, error) {
	for _, f := range Formats {
		if string(f) == name {
			return f, nil
		}
	}
	return "", fmt.Errorf("unknown export format: %s", name)
}

// Extension returns the file extension written for the format
func (f Format) Extension() string {
	if f == FormatExcel {
		return "xlsx"
	}
	return string(f)
}

// OutputPath names the export file for a run started at now
func OutputPath(outDir string, format Format, now time.Time) string {
	name := fmt.Sprintf("amazon_reviews_%s.%s", now.UTC().Format("20060102T150405Z"), format.Extension())
	return filepath.Join(outDir, name)
}

// Exporter writes review records to files
type Exporter struct {
	logger types.Logger
}

// NewExporter creates a new exporter
func NewExporter(logger types.Logger) *Exporter {
	return &Exporter{logger: logger}
}

// Export writes records to path in the given format
func (e *Exporter) Export(format Format, records []types.ReviewRecord, path string) error {
	switch format {
	case FormatJSON:
		return e.ExportJSON(records, path)
	case FormatCSV:
		return e.ExportCSV(records, path)
	case FormatExcel:
		return e.ExportExcel(records, path)
	default:
		return fmt.Errorf("unknown export format: %s", format)
	}
}

// FieldNames returns the record's serialized field names in schema order
func FieldNames() []string {
	t := reflect.TypeOf(types.ReviewRecord{})
	names := make([]string, 0, t.NumField())
	for i := 0; i < t.NumField(); i++ {
		tag := t.Field(i).Tag.Get("json")
		names = append(names, strings.Split(tag, ",")[0])
	}
	return names
}

// recordMaps flattens records into their serialized key/value form.
// Numbers decode as json.Number so integers keep their formatting.
func recordMaps(records []types.ReviewRecord) ([]map[string]interface{}, error) {
	rows := make([]map[string]interface{}, 0, len(records))
	for _, r := range records {
		data, err := json.Marshal(r)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal record: %w", err)
		}
		dec := json.NewDecoder(bytes.NewReader(data))
		dec.UseNumber()
		row := make(map[string]interface{})
		if err := dec.Decode(&row); err != nil {
			return nil, fmt.Errorf("failed to decode record: %w", err)
		}
		rows = append(rows, row)
	}
	return rows, nil
}

// cellText renders a value for a flat cell; nested values are written as JSON
func cellText(v interface{}) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return val
	case json.Number:
		return val.String()
	case bool:
		if val {
			return "true"
		}
		return "false"
	default:
		data, err := json.Marshal(val)
		if err != nil {
			return fmt.Sprint(val)
		}
		return string(data)
	}
}
