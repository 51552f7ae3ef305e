package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"path/filepath"
	"strings"

	"gorm.io/gorm"

	"github.com/camden-git/visionboard/export"
	"github.com/camden-git/visionboard/repository"
)

// ExportHandler turns favorites, folder contents, or search results
// into downloadable documents through the export adapter.
type ExportHandler struct {
	Folders   repository.FolderRepositoryInterface
	Images    repository.ImageRepositoryInterface
	Favorites repository.FavoriteRepositoryInterface
	Exporter  *export.Exporter
}

// ExportResponse reports the produced file and any images skipped
// while embedding.
type ExportResponse struct {
	Path          string `json:"path"`
	FileName      string `json:"file_name"`
	SkippedImages int    `json:"skipped_images"`
}

// Export builds the requested projection and renders it. Scope is one
// of "favorites", "folder" (with folder_id), or "search" (with q).
func (eh *ExportHandler) Export(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Scope         string `json:"scope"`
		FolderID      uint   `json:"folder_id,omitempty"`
		Query         string `json:"q,omitempty"`
		Format        string `json:"format"`
		IncludeImages bool   `json:"include_images"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteAPIError(w, http.StatusBadRequest, "invalid_request", "Invalid request body: "+err.Error())
		return
	}

	format, err := export.ParseFormat(req.Format)
	if err != nil {
		WriteAPIError(w, http.StatusBadRequest, "invalid_request", err.Error())
		return
	}

	var table export.Table
	var baseName string

	switch strings.ToLower(req.Scope) {
	case "favorites":
		favs, err := eh.Favorites.ListAll()
		if err != nil {
			log.Printf("Error listing favorites for export: %v", err)
			WriteAPIError(w, http.StatusInternalServerError, "internal_error", "Failed to read favorites")
			return
		}
		table = export.FavoritesTable(favs)
		baseName = "dashboard_export"

	case "folder":
		if req.FolderID == 0 {
			WriteAPIError(w, http.StatusBadRequest, "invalid_request", "folder scope requires folder_id")
			return
		}
		folder, err := eh.Folders.GetByID(req.FolderID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				WriteNotFound(w, "folder")
				return
			}
			log.Printf("Error fetching folder %d for export: %v", req.FolderID, err)
			WriteAPIError(w, http.StatusInternalServerError, "internal_error", "Failed to read folder")
			return
		}
		images, err := eh.Images.ListByFolderID(folder.ID)
		if err != nil {
			log.Printf("Error listing images for folder export %d: %v", folder.ID, err)
			WriteAPIError(w, http.StatusInternalServerError, "internal_error", "Failed to read folder images")
			return
		}
		table = export.ImagesTable(images)
		baseName = folder.Name

	case "search":
		if strings.TrimSpace(req.Query) == "" {
			WriteAPIError(w, http.StatusBadRequest, "invalid_request", "search scope requires q")
			return
		}
		results, err := eh.Images.Search(req.Query)
		if err != nil {
			log.Printf("Error searching for export %q: %v", req.Query, err)
			WriteAPIError(w, http.StatusInternalServerError, "internal_error", "Search failed")
			return
		}
		table = export.ImagesTable(results)
		baseName = "search_results_" + req.Query

	default:
		WriteAPIError(w, http.StatusBadRequest, "invalid_request", "scope must be favorites, folder, or search")
		return
	}

	result, err := eh.Exporter.Export(table, baseName, format, req.IncludeImages)
	if err != nil {
		log.Printf("Export failed (scope=%s format=%s): %v", req.Scope, format, err)
		WriteAPIError(w, http.StatusInternalServerError, "export_failed", "Export failed: "+err.Error())
		return
	}

	writeJSON(w, http.StatusOK, ExportResponse{
		Path:          result.Path,
		FileName:      filepath.Base(result.Path),
		SkippedImages: result.SkippedImages,
	})
}
