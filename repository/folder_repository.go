package repository

import (
	"fmt"
	"path/filepath"
	"time"

	"gorm.io/gorm"

	"github.com/camden-git/visionboard/models"
)

// FolderRepository handles database operations for Folder entities
type FolderRepository struct {
	DB *gorm.DB
}

// NewFolderRepository creates a new instance of FolderRepository
func NewFolderRepository(db *gorm.DB) *FolderRepository {
	return &FolderRepository{DB: db}
}

// Upsert returns the existing folder for path if one exists, otherwise
// creates a new record. Name is not unique; only path is the natural
// key, so a second call with a different name still returns the
// original record unchanged.
func (r *FolderRepository) Upsert(name, path string) (*models.Folder, error) {
	cleanPath := filepath.ToSlash(path)

	var folder models.Folder
	err := r.DB.Where("path = ?", cleanPath).First(&folder).Error
	if err == nil {
		return &folder, nil
	}
	if err != gorm.ErrRecordNotFound {
		return nil, fmt.Errorf("failed to look up folder by path %s: %w", cleanPath, err)
	}

	folder = models.Folder{
		Name:        name,
		Path:        cleanPath,
		ProcessedAt: time.Now().Unix(),
	}
	if err := r.DB.Create(&folder).Error; err != nil {
		return nil, fmt.Errorf("failed to create folder %s: %w", cleanPath, err)
	}
	return &folder, nil
}

// GetByID retrieves a folder by its ID
func (r *FolderRepository) GetByID(id uint) (*models.Folder, error) {
	var folder models.Folder
	err := r.DB.First(&folder, id).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, err
		}
		return nil, fmt.Errorf("failed to get folder by ID %d: %w", id, err)
	}
	return &folder, nil
}

// GetByPath retrieves a folder by its filesystem path
func (r *FolderRepository) GetByPath(path string) (*models.Folder, error) {
	var folder models.Folder
	err := r.DB.Where("path = ?", filepath.ToSlash(path)).First(&folder).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, err
		}
		return nil, fmt.Errorf("failed to get folder by path %s: %w", path, err)
	}
	return &folder, nil
}

// ListAllByRecency retrieves all folders, newest processed first
func (r *FolderRepository) ListAllByRecency() ([]models.Folder, error) {
	var folders []models.Folder
	err := r.DB.Order("processed_at DESC").Find(&folders).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list folders: %w", err)
	}
	return folders, nil
}
