package export

import (
	"bytes"
	"fmt"

	"github.com/disintegration/imaging"
	"github.com/go-pdf/fpdf"

	"github.com/camden-git/visionboard/utils"
)

const (
	pdfCellTruncateLen = 48
	embedMaxWidth      = 1200
	embedMaxHeight     = 900
	embedJpegQuality   = 85
	embedDisplayWidth  = 120.0 // mm on the page
)

// writePDFSimple renders the table as a compact landscape grid, one
// line per row.
func writePDFSimple(t Table, path string) (Result, error) {
	pdf := fpdf.New("L", "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.SetAutoPageBreak(true, 15)
	pdf.AddPage()

	pageWidth, _ := pdf.GetPageSize()
	left, _, right, _ := pdf.GetMargins()
	colWidth := (pageWidth - left - right) / float64(len(t.Columns))

	pdf.SetFont("Helvetica", "B", 9)
	pdf.SetFillColor(230, 230, 230)
	for _, name := range t.Columns {
		pdf.CellFormat(colWidth, 8, tr(truncate(name, pdfCellTruncateLen)), "1", 0, "L", true, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Helvetica", "", 8)
	for _, row := range t.Rows {
		for col := 0; col < len(t.Columns); col++ {
			value := ""
			if col < len(row) {
				value = row[col]
			}
			pdf.CellFormat(colWidth, 7, tr(truncate(value, pdfCellTruncateLen)), "1", 0, "L", false, 0, "")
		}
		pdf.Ln(-1)
	}

	if err := pdf.OutputFileAndClose(path); err != nil {
		return Result{}, fmt.Errorf("failed to write PDF %s: %w", path, err)
	}
	return Result{Path: path}, nil
}

// writePDFDetailed renders one page per row with the full field list
// and, when requested, an embedded downscaled copy of the row's image.
// Rows whose image file is missing or unreadable are rendered without
// the image and counted in Result.SkippedImages.
func writePDFDetailed(t Table, path string, includeImages bool) (Result, error) {
	pdf := fpdf.New("P", "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.SetAutoPageBreak(true, 15)

	skipped := 0
	for i, row := range t.Rows {
		pdf.AddPage()

		title := fmt.Sprintf("Record %d", i+1)
		if len(row) > 0 && row[0] != "" {
			title = row[0]
		}
		pdf.SetFont("Helvetica", "B", 14)
		pdf.MultiCell(0, 8, tr(title), "", "L", false)
		pdf.Ln(2)

		pdf.SetFont("Helvetica", "", 10)
		for col, name := range t.Columns {
			value := ""
			if col < len(row) {
				value = row[col]
			}
			pdf.SetFont("Helvetica", "B", 10)
			pdf.CellFormat(45, 6, tr(name), "", 0, "L", false, 0, "")
			pdf.SetFont("Helvetica", "", 10)
			pdf.MultiCell(0, 6, tr(value), "", "L", false)
		}

		if !includeImages {
			continue
		}
		imgPath := t.imagePathFor(i)
		if imgPath == "" {
			continue
		}
		if !utils.FileExists(imgPath) {
			skipped++
			continue
		}
		if err := embedImage(pdf, imgPath, i); err != nil {
			// unreadable file is a per-row condition, not an export failure
			skipped++
		}
	}

	if err := pdf.OutputFileAndClose(path); err != nil {
		return Result{}, fmt.Errorf("failed to write PDF %s: %w", path, err)
	}
	return Result{Path: path, SkippedImages: skipped}, nil
}

// embedImage downscales the file and places it below the current
// position as a JPEG.
func embedImage(pdf *fpdf.Fpdf, imgPath string, rowIdx int) error {
	img, err := imaging.Open(imgPath)
	if err != nil {
		return fmt.Errorf("failed to open image %s for embedding: %w", imgPath, err)
	}
	resized := imaging.Fit(img, embedMaxWidth, embedMaxHeight, imaging.Lanczos)

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, resized, imaging.JPEG, imaging.JPEGQuality(embedJpegQuality)); err != nil {
		return fmt.Errorf("failed to re-encode image %s: %w", imgPath, err)
	}

	name := fmt.Sprintf("row_%d", rowIdx)
	opts := fpdf.ImageOptions{ImageType: "JPEG"}
	pdf.RegisterImageOptionsReader(name, opts, &buf)
	pdf.Ln(4)
	pdf.ImageOptions(name, pdf.GetX(), pdf.GetY(), embedDisplayWidth, 0, true, opts, 0, "")
	return pdf.Error()
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max-3] + "..."
}
