package repository

import (
	"fmt"
	"log"
	"path/filepath"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/camden-git/visionboard/database"
	"github.com/camden-git/visionboard/models"
	"github.com/camden-git/visionboard/utils"
)

// ImageRepository handles database operations for Image entities
type ImageRepository struct {
	DB *gorm.DB
}

// NewImageRepository creates a new instance of ImageRepository
func NewImageRepository(db *gorm.DB) *ImageRepository {
	return &ImageRepository{DB: db}
}

// applyMetadata copies a metadata bundle onto the flattened image
// columns and refreshes the raw JSON copy.
func applyMetadata(img *models.Image, meta *utils.Metadata) {
	if meta == nil {
		return
	}
	if jsonStr, err := meta.ToJSON(); err == nil {
		img.MetadataJSON = &jsonStr
	} else {
		log.Printf("warning: could not serialize metadata for %s: %v", img.FilePath, err)
	}
	img.Width = meta.Width
	img.Height = meta.Height
	img.CameraMake = meta.CameraMake
	img.CameraModel = meta.CameraModel
	img.DateTaken = meta.DateTaken
	img.FocalLength = meta.FocalLength
	img.ExposureTime = meta.ExposureTime
	img.Aperture = meta.Aperture
	img.ISOSpeed = meta.ISOSpeed
	img.GPSLatitude = meta.GPSLatitude
	img.GPSLongitude = meta.GPSLongitude
	img.FileSize = meta.FileSize
	img.FileType = meta.FileType
}

// UpsertResult records an analysis result keyed by file path. An
// existing record has its analysis fields and metadata overwritten in
// place with processed_at refreshed; otherwise a new row is inserted.
// Duplicate-path conflicts never surface from this path.
func (r *ImageRepository) UpsertResult(folderID uint, fileName, filePath, objectName, description string, confidence float64, meta *utils.Metadata) (*models.Image, error) {
	cleanPath := filepath.ToSlash(filePath)
	now := time.Now().Unix()

	var existing models.Image
	err := r.DB.Where("file_path = ?", cleanPath).First(&existing).Error
	if err == nil {
		existing.ObjectName = objectName
		existing.Description = description
		existing.Confidence = confidence
		existing.ProcessedAt = now
		applyMetadata(&existing, meta)
		if err := r.DB.Save(&existing).Error; err != nil {
			return nil, fmt.Errorf("failed to update image result for %s: %w", cleanPath, err)
		}
		return &existing, nil
	}
	if err != gorm.ErrRecordNotFound {
		return nil, fmt.Errorf("failed to look up image by path %s: %w", cleanPath, err)
	}

	img := models.Image{
		FolderID:    folderID,
		FileName:    fileName,
		FilePath:    cleanPath,
		ObjectName:  objectName,
		Description: description,
		Confidence:  confidence,
		ProcessedAt: now,
	}
	applyMetadata(&img, meta)
	if err := r.DB.Create(&img).Error; err != nil {
		return nil, fmt.Errorf("failed to create image result for %s: %w", cleanPath, err)
	}
	return &img, nil
}

// GetByID retrieves an image by its ID with its folder populated
func (r *ImageRepository) GetByID(id uint) (*models.Image, error) {
	var img models.Image
	err := r.DB.Preload("Folder").First(&img, id).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, err
		}
		return nil, fmt.Errorf("failed to get image by ID %d: %w", id, err)
	}
	return &img, nil
}

// GetByPath retrieves an image by its file path
func (r *ImageRepository) GetByPath(filePath string) (*models.Image, error) {
	var img models.Image
	err := r.DB.Preload("Folder").Where("file_path = ?", filepath.ToSlash(filePath)).First(&img).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, err
		}
		return nil, fmt.Errorf("failed to get image by path %s: %w", filePath, err)
	}
	return &img, nil
}

// ListByFolderID retrieves all images belonging to a folder. No order
// is guaranteed; callers sort for display.
func (r *ImageRepository) ListByFolderID(folderID uint) ([]models.Image, error) {
	var images []models.Image
	err := r.DB.Where("folder_id = ?", folderID).Find(&images).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list images for folder %d: %w", folderID, err)
	}
	return images, nil
}

// CountByFolderID returns how many images belong to a folder
func (r *ImageRepository) CountByFolderID(folderID uint) (int64, error) {
	var count int64
	err := r.DB.Model(&models.Image{}).Where("folder_id = ?", folderID).Count(&count).Error
	if err != nil {
		return 0, fmt.Errorf("failed to count images for folder %d: %w", folderID, err)
	}
	return count, nil
}

// ListAll retrieves every image in the catalog with folders populated
func (r *ImageRepository) ListAll() ([]models.Image, error) {
	var images []models.Image
	err := r.DB.Preload("Folder").Find(&images).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list images: %w", err)
	}
	return images, nil
}

// ListNotFavorited retrieves images that have no favorites registry entry
func (r *ImageRepository) ListNotFavorited() ([]models.Image, error) {
	var images []models.Image
	err := r.DB.Preload("Folder").
		Where("id NOT IN (?)", r.DB.Model(&models.FavoriteImage{}).Select("image_id")).
		Find(&images).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list non-favorited images: %w", err)
	}
	return images, nil
}

// Search runs a case-insensitive substring search over object name,
// description, camera make, camera model, and file type. A blank term
// means no search was performed and yields no results.
func (r *ImageRepository) Search(term string) ([]models.Image, error) {
	if strings.TrimSpace(term) == "" {
		return nil, nil
	}
	sqlDB, err := r.DB.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get underlying sql.DB for search: %w", err)
	}
	return database.SearchImages(sqlDB, term)
}
