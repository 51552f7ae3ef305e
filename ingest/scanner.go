// Package ingest feeds the image catalog: it scans a directory of
// images, extracts metadata, runs an external analyzer, and upserts
// the results. Everything is synchronous; re-scanning a directory
// updates the existing rows in place.
package ingest

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/facette/natsort"

	"github.com/camden-git/visionboard/models"
	"github.com/camden-git/visionboard/repository"
	"github.com/camden-git/visionboard/utils"
)

var imageExtensions = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".gif":  true,
	".bmp":  true,
	".webp": true,
}

// Analysis is the recognition result for one image, produced by an
// external pipeline.
type Analysis struct {
	ObjectName  string
	Description string
	Confidence  float64
}

// Analyzer is the object-recognition step. The implementation lives
// outside this repository; the scanner only consumes its output.
type Analyzer interface {
	Analyze(filePath string) (Analysis, error)
}

// NoopAnalyzer records images without recognition results, so a
// catalog can be populated before an analyzer is wired up.
type NoopAnalyzer struct{}

func (NoopAnalyzer) Analyze(filePath string) (Analysis, error) {
	name := strings.TrimSuffix(filepath.Base(filePath), filepath.Ext(filePath))
	return Analysis{ObjectName: name, Description: "", Confidence: 0}, nil
}

// Summary reports what a directory scan did.
type Summary struct {
	Folder    *models.Folder
	Processed int
	Skipped   int
}

// Scanner ingests directories into the catalog store.
type Scanner struct {
	Folders  repository.FolderRepositoryInterface
	Images   repository.ImageRepositoryInterface
	Analyzer Analyzer
}

// NewScanner creates a Scanner over the given repositories.
func NewScanner(folders repository.FolderRepositoryInterface, images repository.ImageRepositoryInterface, analyzer Analyzer) *Scanner {
	return &Scanner{Folders: folders, Images: images, Analyzer: analyzer}
}

// ScanDirectory upserts a folder record for dirPath and processes every
// image file directly inside it, in natural name order. Files the
// analyzer rejects are skipped and counted, not fatal.
func (s *Scanner) ScanDirectory(dirPath string) (*Summary, error) {
	absPath, err := filepath.Abs(dirPath)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve directory %s: %w", dirPath, err)
	}

	entries, err := os.ReadDir(absPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read directory %s: %w", absPath, err)
	}

	var fileNames []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if imageExtensions[strings.ToLower(filepath.Ext(entry.Name()))] {
			fileNames = append(fileNames, entry.Name())
		}
	}
	natsort.Sort(fileNames)

	folder, err := s.Folders.Upsert(filepath.Base(absPath), absPath)
	if err != nil {
		return nil, err
	}

	summary := &Summary{Folder: folder}
	for _, fileName := range fileNames {
		filePath := filepath.Join(absPath, fileName)

		analysis, err := s.Analyzer.Analyze(filePath)
		if err != nil {
			log.Printf("ingest: analyzer failed for %s, skipping: %v", filePath, err)
			summary.Skipped++
			continue
		}

		meta, err := utils.GetImageMetadata(filePath)
		if err != nil {
			// record the analysis even when the file can't be read for metadata
			log.Printf("ingest: metadata extraction failed for %s: %v", filePath, err)
			meta = nil
		}

		_, err = s.Images.UpsertResult(folder.ID, fileName, filePath,
			analysis.ObjectName, analysis.Description, analysis.Confidence, meta)
		if err != nil {
			log.Printf("ingest: failed to store result for %s, skipping: %v", filePath, err)
			summary.Skipped++
			continue
		}
		summary.Processed++
	}

	return summary, nil
}
