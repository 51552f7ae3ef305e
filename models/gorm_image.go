package models

// Image represents an analyzed image and its recognition result in the
// database using GORM. It corresponds to the 'images' table.
type Image struct {
	ID          uint    `gorm:"primaryKey;autoIncrement" json:"id"`
	FolderID    uint    `gorm:"not null;index" json:"folder_id"`
	FileName    string  `gorm:"not null" json:"file_name"`
	FilePath    string  `gorm:"not null;unique" json:"file_path"`
	ObjectName  string  `gorm:"" json:"object_name"`
	Description string  `gorm:"" json:"description"`
	Confidence  float64 `gorm:"" json:"confidence"`
	ProcessedAt int64   `gorm:"not null" json:"processed_at"` // Unix timestamp

	// raw serialized copy of the metadata bundle, kept alongside the
	// flattened columns below
	MetadataJSON *string `gorm:"column:metadata_json" json:"metadata_json,omitempty"` // Nullable

	Width        *int     `gorm:"" json:"width,omitempty"`                             // Nullable
	Height       *int     `gorm:"" json:"height,omitempty"`                            // Nullable
	CameraMake   *string  `gorm:"" json:"camera_make,omitempty"`                       // Nullable
	CameraModel  *string  `gorm:"" json:"camera_model,omitempty"`                      // Nullable
	DateTaken    *int64   `gorm:"index" json:"date_taken,omitempty"`                   // Nullable, Unix timestamp
	FocalLength  *float64 `gorm:"" json:"focal_length,omitempty"`                      // Nullable, mm
	ExposureTime *string  `gorm:"" json:"exposure_time,omitempty"`                     // Nullable, e.g., "1/125"
	Aperture     *float64 `gorm:"" json:"aperture,omitempty"`                          // Nullable, F-number
	ISOSpeed     *int     `gorm:"column:iso_speed" json:"iso_speed,omitempty"`         // Nullable
	GPSLatitude  *float64 `gorm:"column:gps_latitude" json:"gps_latitude,omitempty"`   // Nullable
	GPSLongitude *float64 `gorm:"column:gps_longitude" json:"gps_longitude,omitempty"` // Nullable
	FileSize     *int64   `gorm:"" json:"file_size,omitempty"`                         // Nullable, bytes
	FileType     *string  `gorm:"" json:"file_type,omitempty"`                         // Nullable, e.g., "jpeg"

	// Relationships
	Folder *Folder `gorm:"foreignKey:FolderID" json:"folder,omitempty"`
}

// TableName explicitly sets the table name for GORM.
func (Image) TableName() string {
	return "images"
}
