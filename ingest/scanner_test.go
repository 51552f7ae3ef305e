package ingest_test

import (
	"image"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/camden-git/visionboard/database"
	"github.com/camden-git/visionboard/ingest"
	"github.com/camden-git/visionboard/repository"
)

type stubAnalyzer struct {
	calls []string
}

func (s *stubAnalyzer) Analyze(filePath string) (ingest.Analysis, error) {
	s.calls = append(s.calls, filepath.Base(filePath))
	return ingest.Analysis{ObjectName: "Thing", Description: "stubbed", Confidence: 0.9}, nil
}

func newTestScanner(t *testing.T) (*ingest.Scanner, *stubAnalyzer, *repository.ImageRepository) {
	t.Helper()
	db, err := database.InitGormDB(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("InitGormDB failed: %v", err)
	}
	if err := database.AutoMigrateModels(db); err != nil {
		t.Fatalf("AutoMigrateModels failed: %v", err)
	}
	analyzer := &stubAnalyzer{}
	images := repository.NewImageRepository(db)
	scanner := ingest.NewScanner(repository.NewFolderRepository(db), images, analyzer)
	return scanner, analyzer, images
}

func writePNG(t *testing.T, path string, w, h int) {
	t.Helper()
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("create %s failed: %v", path, err)
	}
	defer f.Close()
	if err := png.Encode(f, image.NewRGBA(image.Rect(0, 0, w, h))); err != nil {
		t.Fatalf("png encode failed: %v", err)
	}
}

func TestScanDirectoryIngestsImagesInNaturalOrder(t *testing.T) {
	scanner, analyzer, images := newTestScanner(t)

	dir := t.TempDir()
	writePNG(t, filepath.Join(dir, "img10.png"), 4, 4)
	writePNG(t, filepath.Join(dir, "img2.png"), 6, 3)
	if err := os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("not an image"), 0644); err != nil {
		t.Fatalf("write failed: %v", err)
	}

	summary, err := scanner.ScanDirectory(dir)
	if err != nil {
		t.Fatalf("ScanDirectory failed: %v", err)
	}
	if summary.Processed != 2 || summary.Skipped != 0 {
		t.Fatalf("expected 2 processed / 0 skipped, got %d / %d", summary.Processed, summary.Skipped)
	}
	if summary.Folder == nil || summary.Folder.Name != filepath.Base(dir) {
		t.Fatal("expected folder record named after the directory")
	}

	// natural order: img2 before img10 despite lexicographic order
	if len(analyzer.calls) != 2 || analyzer.calls[0] != "img2.png" || analyzer.calls[1] != "img10.png" {
		t.Fatalf("expected natural processing order [img2.png img10.png], got %v", analyzer.calls)
	}

	img, err := images.GetByPath(filepath.Join(dir, "img2.png"))
	if err != nil {
		t.Fatalf("GetByPath failed: %v", err)
	}
	if img.ObjectName != "Thing" || img.Confidence != 0.9 {
		t.Fatalf("expected analyzer result to be stored, got %q %.2f", img.ObjectName, img.Confidence)
	}
	if img.Width == nil || *img.Width != 6 || img.Height == nil || *img.Height != 3 {
		t.Fatalf("expected 6x3 dimensions from metadata, got %v x %v", img.Width, img.Height)
	}
	if img.FileType == nil || *img.FileType != "png" {
		t.Fatalf("expected file type png, got %v", img.FileType)
	}
}

func TestScanDirectoryIsIdempotent(t *testing.T) {
	scanner, _, images := newTestScanner(t)

	dir := t.TempDir()
	writePNG(t, filepath.Join(dir, "a.png"), 4, 4)

	first, err := scanner.ScanDirectory(dir)
	if err != nil {
		t.Fatalf("first scan failed: %v", err)
	}
	second, err := scanner.ScanDirectory(dir)
	if err != nil {
		t.Fatalf("second scan failed: %v", err)
	}
	if first.Folder.ID != second.Folder.ID {
		t.Fatalf("expected the same folder record, got %d and %d", first.Folder.ID, second.Folder.ID)
	}

	all, err := images.ListAll()
	if err != nil {
		t.Fatalf("ListAll failed: %v", err)
	}
	if len(all) != 1 {
		t.Fatalf("expected one image row after re-scan, got %d", len(all))
	}
}
