package models

// FavoriteImage pins one Image to the user-curated dashboard with an
// optional label, note, and display order. It corresponds to the
// 'favorite_images' table.
//
// ImageID carries a unique index: an image can appear on the dashboard
// at most once. Removing a favorite never touches the Image row.
type FavoriteImage struct {
	ID           uint    `gorm:"primaryKey;autoIncrement" json:"id"`
	ImageID      uint    `gorm:"not null;uniqueIndex" json:"image_id"`
	CustomLabel  *string `gorm:"" json:"custom_label,omitempty"` // Nullable, overrides the image's object name for display
	Note         *string `gorm:"" json:"note,omitempty"`         // Nullable
	DisplayOrder int     `gorm:"not null;default:0" json:"display_order"`
	AddedAt      int64   `gorm:"not null" json:"added_at"` // Unix timestamp

	// Relationships
	Image *Image `gorm:"foreignKey:ImageID" json:"image,omitempty"`
}

// TableName explicitly sets the table name for GORM.
func (FavoriteImage) TableName() string {
	return "favorite_images"
}

// DisplayName returns the custom label when set, otherwise the
// underlying image's object name.
func (f *FavoriteImage) DisplayName() string {
	if f.CustomLabel != nil && *f.CustomLabel != "" {
		return *f.CustomLabel
	}
	if f.Image != nil {
		return f.Image.ObjectName
	}
	return ""
}
