package repository

import (
	"errors"

	"github.com/camden-git/visionboard/models"
	"github.com/camden-git/visionboard/utils"
)

// ErrAlreadyFavorited is returned when a favorite is created for an
// image that already has a registry entry. Uniqueness is enforced at
// the store layer: an existence check plus a unique index on image_id.
var ErrAlreadyFavorited = errors.New("image is already favorited")

// FolderRepositoryInterface defines the methods for folder data operations
type FolderRepositoryInterface interface {
	Upsert(name, path string) (*models.Folder, error)
	GetByID(id uint) (*models.Folder, error)
	GetByPath(path string) (*models.Folder, error)
	ListAllByRecency() ([]models.Folder, error)
}

// ImageRepositoryInterface defines the methods for image data operations
type ImageRepositoryInterface interface {
	UpsertResult(folderID uint, fileName, filePath, objectName, description string, confidence float64, meta *utils.Metadata) (*models.Image, error)
	GetByID(id uint) (*models.Image, error)
	GetByPath(filePath string) (*models.Image, error)
	ListByFolderID(folderID uint) ([]models.Image, error)
	CountByFolderID(folderID uint) (int64, error)
	ListAll() ([]models.Image, error)
	ListNotFavorited() ([]models.Image, error)
	Search(term string) ([]models.Image, error)
}

// FavoriteRepositoryInterface defines the methods for favorites registry operations
type FavoriteRepositoryInterface interface {
	Create(imageID uint, customLabel, note *string, displayOrder int) (*models.FavoriteImage, error)
	GetByID(id uint) (*models.FavoriteImage, error)
	ListAll() ([]models.FavoriteImage, error)
	UpdateDetails(id uint, customLabel, note *string) error
	UpdateOrder(id uint, newOrder int) error
	Delete(id uint) error
	ResetOrdersSequential() error
}
