package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"sort"
	"strings"

	"github.com/facette/natsort"
	"github.com/go-chi/chi/v5"
	"gorm.io/gorm"

	"github.com/camden-git/visionboard/models"
	"github.com/camden-git/visionboard/repository"
	"github.com/camden-git/visionboard/utils"
)

// CatalogHandler serves the folder/image browsing surface and accepts
// upserts from the external ingestion pipeline.
type CatalogHandler struct {
	Folders repository.FolderRepositoryInterface
	Images  repository.ImageRepositoryInterface
}

// FolderSummary is a folder plus its image count for listing views.
type FolderSummary struct {
	models.Folder
	ImageCount int64 `json:"image_count"`
}

// ListFolders returns all folders, newest processed first, with image counts.
func (ch *CatalogHandler) ListFolders(w http.ResponseWriter, r *http.Request) {
	folders, err := ch.Folders.ListAllByRecency()
	if err != nil {
		log.Printf("Error listing folders: %v", err)
		WriteAPIError(w, http.StatusInternalServerError, "internal_error", "Failed to list folders")
		return
	}

	summaries := make([]FolderSummary, 0, len(folders))
	for _, folder := range folders {
		count, err := ch.Images.CountByFolderID(folder.ID)
		if err != nil {
			log.Printf("Error counting images for folder %d: %v", folder.ID, err)
			WriteAPIError(w, http.StatusInternalServerError, "internal_error", "Failed to list folders")
			return
		}
		summaries = append(summaries, FolderSummary{Folder: folder, ImageCount: count})
	}
	writeJSON(w, http.StatusOK, summaries)
}

// UpsertFolder creates a folder record, or returns the existing one
// when the path is already known.
func (ch *CatalogHandler) UpsertFolder(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name string `json:"name"`
		Path string `json:"path"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteAPIError(w, http.StatusBadRequest, "invalid_request", "Invalid request body: "+err.Error())
		return
	}
	if strings.TrimSpace(req.Name) == "" || strings.TrimSpace(req.Path) == "" {
		WriteAPIError(w, http.StatusBadRequest, "invalid_request", "Missing required fields: name and path")
		return
	}

	folder, err := ch.Folders.Upsert(req.Name, req.Path)
	if err != nil {
		log.Printf("Error upserting folder %s: %v", req.Path, err)
		WriteAPIError(w, http.StatusInternalServerError, "internal_error", "Failed to upsert folder")
		return
	}
	writeJSON(w, http.StatusOK, folder)
}

// ListFolderImages returns a folder's images sorted naturally by file
// name for display. The store itself guarantees no order.
func (ch *CatalogHandler) ListFolderImages(w http.ResponseWriter, r *http.Request) {
	folderID, err := parseUintParam(chi.URLParam(r, "folder_id"))
	if err != nil {
		WriteAPIError(w, http.StatusBadRequest, "invalid_request", "Invalid folder id")
		return
	}

	if _, err := ch.Folders.GetByID(folderID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			WriteNotFound(w, "folder")
			return
		}
		log.Printf("Error fetching folder %d: %v", folderID, err)
		WriteAPIError(w, http.StatusInternalServerError, "internal_error", "Failed to fetch folder")
		return
	}

	images, err := ch.Images.ListByFolderID(folderID)
	if err != nil {
		log.Printf("Error listing images for folder %d: %v", folderID, err)
		WriteAPIError(w, http.StatusInternalServerError, "internal_error", "Failed to list images")
		return
	}

	sort.SliceStable(images, func(i, j int) bool {
		return natsort.Compare(images[i].FileName, images[j].FileName)
	})
	writeJSON(w, http.StatusOK, images)
}

// UpsertImage records an analysis result from the ingestion pipeline.
func (ch *CatalogHandler) UpsertImage(w http.ResponseWriter, r *http.Request) {
	var req struct {
		FolderID    uint            `json:"folder_id"`
		FileName    string          `json:"file_name"`
		FilePath    string          `json:"file_path"`
		ObjectName  string          `json:"object_name"`
		Description string          `json:"description"`
		Confidence  float64         `json:"confidence"`
		Metadata    *utils.Metadata `json:"metadata,omitempty"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteAPIError(w, http.StatusBadRequest, "invalid_request", "Invalid request body: "+err.Error())
		return
	}
	if req.FolderID == 0 || req.FileName == "" || req.FilePath == "" {
		WriteAPIError(w, http.StatusBadRequest, "invalid_request", "Missing required fields: folder_id, file_name, and file_path")
		return
	}

	if _, err := ch.Folders.GetByID(req.FolderID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			WriteNotFound(w, "folder")
			return
		}
		log.Printf("Error fetching folder %d: %v", req.FolderID, err)
		WriteAPIError(w, http.StatusInternalServerError, "internal_error", "Failed to fetch folder")
		return
	}

	img, err := ch.Images.UpsertResult(req.FolderID, req.FileName, req.FilePath,
		req.ObjectName, req.Description, req.Confidence, req.Metadata)
	if err != nil {
		log.Printf("Error upserting image %s: %v", req.FilePath, err)
		WriteAPIError(w, http.StatusInternalServerError, "internal_error", "Failed to upsert image")
		return
	}
	writeJSON(w, http.StatusOK, img)
}

// ImageDetail is an image plus a flag telling the presentation layer
// the file has gone missing on disk. A missing file degrades display
// to a warning; it never blocks metadata.
type ImageDetail struct {
	models.Image
	FileMissing bool `json:"file_missing"`
}

// GetImage returns one image with its folder and a file-missing flag.
func (ch *CatalogHandler) GetImage(w http.ResponseWriter, r *http.Request) {
	imageID, err := parseUintParam(chi.URLParam(r, "image_id"))
	if err != nil {
		WriteAPIError(w, http.StatusBadRequest, "invalid_request", "Invalid image id")
		return
	}

	img, err := ch.Images.GetByID(imageID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			WriteNotFound(w, "image")
			return
		}
		log.Printf("Error fetching image %d: %v", imageID, err)
		WriteAPIError(w, http.StatusInternalServerError, "internal_error", "Failed to fetch image")
		return
	}

	writeJSON(w, http.StatusOK, ImageDetail{Image: *img, FileMissing: !utils.FileExists(img.FilePath)})
}

// ServeImageFile streams the original image bytes for display.
func (ch *CatalogHandler) ServeImageFile(w http.ResponseWriter, r *http.Request) {
	imageID, err := parseUintParam(chi.URLParam(r, "image_id"))
	if err != nil {
		WriteAPIError(w, http.StatusBadRequest, "invalid_request", "Invalid image id")
		return
	}

	img, err := ch.Images.GetByID(imageID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			WriteNotFound(w, "image")
			return
		}
		log.Printf("Error fetching image %d: %v", imageID, err)
		WriteAPIError(w, http.StatusInternalServerError, "internal_error", "Failed to fetch image")
		return
	}

	if !utils.FileExists(img.FilePath) {
		WriteAPIError(w, http.StatusNotFound, "file_missing", "Image file not found on disk: "+img.FilePath)
		return
	}
	http.ServeFile(w, r, img.FilePath)
}
