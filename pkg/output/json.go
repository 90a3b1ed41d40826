package output

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
)

// JSONFormatter writes reports as indented JSON documents.
type JSONFormatter struct {
	opts FormatOptions
}

// NewJSONFormatter creates a new JSON formatter with the given options.
func NewJSONFormatter(opts FormatOptions) *JSONFormatter {
	return &JSONFormatter{opts: opts}
}

// Name returns the format name.
func (f *JSONFormatter) Name() string {
	return "json"
}

// headline is the document written in quiet mode.
type headline struct {
	Summary
	Source       string `json:"source,omitempty"`
	SkippedLines int    `json:"skipped_lines"`
}

// Format writes the report. Author names and media markers are written
// as-is, without HTML escaping.
func (f *JSONFormatter) Format(ctx context.Context, report *Report, w io.Writer) error {
	var doc any = report
	if f.opts.Quiet {
		doc = headline{
			Summary:      report.Summary,
			Source:       report.Metadata.Source,
			SkippedLines: report.SkippedLines(),
		}
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("encoding report: %w", err)
	}
	return nil
}
