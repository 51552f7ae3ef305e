package repository

import (
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/camden-git/visionboard/models"
)

// FavoriteRepository handles database operations for the favorites registry
type FavoriteRepository struct {
	DB *gorm.DB
}

// NewFavoriteRepository creates a new instance of FavoriteRepository
func NewFavoriteRepository(db *gorm.DB) *FavoriteRepository {
	return &FavoriteRepository{DB: db}
}

// Create adds an image to the favorites registry. The referenced image
// must exist, and at most one entry per image is allowed; a second
// create for the same image returns ErrAlreadyFavorited.
func (r *FavoriteRepository) Create(imageID uint, customLabel, note *string, displayOrder int) (*models.FavoriteImage, error) {
	var img models.Image
	if err := r.DB.First(&img, imageID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, err
		}
		return nil, fmt.Errorf("failed to look up image %d for favoriting: %w", imageID, err)
	}

	var count int64
	if err := r.DB.Model(&models.FavoriteImage{}).Where("image_id = ?", imageID).Count(&count).Error; err != nil {
		return nil, fmt.Errorf("failed to check existing favorite for image %d: %w", imageID, err)
	}
	if count > 0 {
		return nil, ErrAlreadyFavorited
	}

	if displayOrder < 0 {
		displayOrder = 0
	}

	fav := models.FavoriteImage{
		ImageID:      imageID,
		CustomLabel:  customLabel,
		Note:         note,
		DisplayOrder: displayOrder,
		AddedAt:      time.Now().Unix(),
	}
	if err := r.DB.Create(&fav).Error; err != nil {
		return nil, fmt.Errorf("failed to create favorite for image %d: %w", imageID, err)
	}
	return &fav, nil
}

// GetByID retrieves a favorite with its image and that image's folder populated
func (r *FavoriteRepository) GetByID(id uint) (*models.FavoriteImage, error) {
	var fav models.FavoriteImage
	err := r.DB.Preload("Image.Folder").Preload("Image").First(&fav, id).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, err
		}
		return nil, fmt.Errorf("failed to get favorite by ID %d: %w", id, err)
	}
	return &fav, nil
}

// ListAll retrieves the whole registry eagerly joined with images and
// folders. The registry-level contract is display_order ascending with
// id ascending as the tie-break, so equal orders keep insertion order.
func (r *FavoriteRepository) ListAll() ([]models.FavoriteImage, error) {
	var favs []models.FavoriteImage
	err := r.DB.Preload("Image.Folder").Preload("Image").
		Order("display_order ASC, id ASC").
		Find(&favs).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list favorites: %w", err)
	}
	return favs, nil
}

// UpdateDetails overwrites the custom label and note of a favorite.
// DisplayOrder is left untouched; ordering has its own update path.
func (r *FavoriteRepository) UpdateDetails(id uint, customLabel, note *string) error {
	result := r.DB.Model(&models.FavoriteImage{}).Where("id = ?", id).Updates(map[string]interface{}{
		"custom_label": customLabel,
		"note":         note,
	})
	if result.Error != nil {
		return fmt.Errorf("failed to update favorite details for ID %d: %w", id, result.Error)
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// UpdateOrder overwrites only the display order of a favorite. No
// renumbering of other entries happens; shared order values are
// permitted and resolved by the ListAll tie-break.
func (r *FavoriteRepository) UpdateOrder(id uint, newOrder int) error {
	if newOrder < 0 {
		return fmt.Errorf("display order must be non-negative, got %d", newOrder)
	}
	result := r.DB.Model(&models.FavoriteImage{}).Where("id = ?", id).Update("display_order", newOrder)
	if result.Error != nil {
		return fmt.Errorf("failed to update favorite order for ID %d: %w", id, result.Error)
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// Delete removes a favorite from the registry. The referenced image is
// untouched: the registry references but does not own image lifecycles.
func (r *FavoriteRepository) Delete(id uint) error {
	result := r.DB.Delete(&models.FavoriteImage{}, id)
	if result.Error != nil {
		return fmt.Errorf("failed to delete favorite ID %d: %w", id, result.Error)
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// ResetOrdersSequential reassigns display orders 0, 1, 2, ... following
// the current canonical listing order, one update per entry.
//
// This is best-effort, not transactional: a failure partway aborts the
// remaining updates and leaves the already-applied ones in place.
func (r *FavoriteRepository) ResetOrdersSequential() error {
	favs, err := r.ListAll()
	if err != nil {
		return err
	}
	for i, fav := range favs {
		if err := r.UpdateOrder(fav.ID, i); err != nil {
			return fmt.Errorf("sequential reorder stopped at entry %d of %d: %w", i+1, len(favs), err)
		}
	}
	return nil
}
