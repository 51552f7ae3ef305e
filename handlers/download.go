package handlers

import (
	"log"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-chi/chi/v5"
)

// ExportDownloadServer creates a handler that offers previously
// generated export documents for download. Only plain file names are
// accepted; everything resolves inside the exports directory.
func ExportDownloadServer(exportsDir string) http.HandlerFunc {
	cleanDir := filepath.Clean(exportsDir)
	log.Printf("Serving export downloads from directory: %s", cleanDir)

	return func(w http.ResponseWriter, r *http.Request) {
		fileName := chi.URLParam(r, "file_name")
		if fileName == "" || fileName != filepath.Base(fileName) || strings.Contains(fileName, "..") {
			WriteAPIError(w, http.StatusBadRequest, "invalid_request", "Invalid export file name")
			return
		}

		fullPath := filepath.Clean(filepath.Join(cleanDir, fileName))
		if !strings.HasPrefix(fullPath, cleanDir) {
			WriteAPIError(w, http.StatusForbidden, "forbidden", "Export path outside download directory")
			log.Printf("SECURITY: Attempted export access outside directory: Request='%s', Resolved='%s'", fileName, fullPath)
			return
		}

		if _, err := os.Stat(fullPath); os.IsNotExist(err) {
			WriteNotFound(w, "export file")
			return
		} else if err != nil {
			log.Printf("Error stating export file %s: %v", fullPath, err)
			WriteAPIError(w, http.StatusInternalServerError, "internal_error", "Could not read export file")
			return
		}

		w.Header().Set("Content-Disposition", "attachment; filename=\""+fileName+"\"")
		http.ServeFile(w, r, fullPath)
	}
}
