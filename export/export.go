// Package export turns tabular projections of catalog or favorites
// data into CSV, Excel, or PDF files on disk.
package export

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Format selects the target document type for an export.
type Format string

const (
	FormatCSV         Format = "csv"
	FormatExcel       Format = "excel"
	FormatPDFSimple   Format = "pdf_simple"
	FormatPDFDetailed Format = "pdf_detailed"
)

// ParseFormat maps a request-level format tag onto a Format.
func ParseFormat(s string) (Format, error) {
	switch Format(strings.ToLower(strings.TrimSpace(s))) {
	case FormatCSV:
		return FormatCSV, nil
	case FormatExcel:
		return FormatExcel, nil
	case FormatPDFSimple:
		return FormatPDFSimple, nil
	case FormatPDFDetailed:
		return FormatPDFDetailed, nil
	}
	return "", fmt.Errorf("unknown export format %q", s)
}

// Table is an ordered tabular projection: named columns and one string
// slice per row. ImagePaths optionally carries one file path per row
// for formats that embed images; an empty string means no image.
type Table struct {
	Columns    []string
	Rows       [][]string
	ImagePaths []string
}

// Result describes a finished export. SkippedImages counts rows whose
// image file was missing or unreadable at export time; those are
// per-row conditions, never export failures.
type Result struct {
	Path          string
	SkippedImages int
}

// Exporter writes export documents into a single output directory.
type Exporter struct {
	OutputDir string
}

// NewExporter ensures the output directory exists and returns an Exporter.
func NewExporter(outputDir string) (*Exporter, error) {
	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create export directory %s: %w", outputDir, err)
	}
	return &Exporter{OutputDir: outputDir}, nil
}

// Export renders the table in the requested format and returns the
// path of the produced file. includeImages only affects FormatPDFDetailed.
func (e *Exporter) Export(t Table, baseName string, format Format, includeImages bool) (Result, error) {
	if len(t.Columns) == 0 {
		return Result{}, fmt.Errorf("cannot export a table with no columns")
	}

	switch format {
	case FormatCSV:
		path := e.outputPath(baseName, "csv")
		return writeCSV(t, path)
	case FormatExcel:
		path := e.outputPath(baseName, "xlsx")
		return writeExcel(t, path)
	case FormatPDFSimple:
		path := e.outputPath(baseName, "pdf")
		return writePDFSimple(t, path)
	case FormatPDFDetailed:
		path := e.outputPath(baseName, "pdf")
		return writePDFDetailed(t, path, includeImages)
	}
	return Result{}, fmt.Errorf("unknown export format %q", format)
}

var unsafeNameChars = regexp.MustCompile(`[^a-zA-Z0-9_-]+`)

// outputPath builds a collision-free file name inside the output
// directory from the sanitized base name, a timestamp, and a short
// random suffix.
func (e *Exporter) outputPath(baseName, ext string) string {
	base := unsafeNameChars.ReplaceAllString(strings.TrimSpace(baseName), "_")
	base = strings.Trim(base, "_")
	if base == "" {
		base = "export"
	}
	name := fmt.Sprintf("%s_%s_%s.%s",
		base,
		time.Now().Format("20060102_150405"),
		uuid.NewString()[:8],
		ext,
	)
	return filepath.Join(e.OutputDir, name)
}

// imagePathFor returns the image path attached to row i, if any.
func (t Table) imagePathFor(i int) string {
	if i < len(t.ImagePaths) {
		return t.ImagePaths[i]
	}
	return ""
}
