package database

import (
	"fmt"
	"strings"

	sq "github.com/Masterminds/squirrel"

	"github.com/camden-git/visionboard/models"
)

// searchableColumns are the image columns a keyword search is matched
// against. Matching is OR across columns: an image matches if the term
// appears in at least one of them.
var searchableColumns = []string{
	"images.object_name",
	"images.description",
	"images.camera_make",
	"images.camera_model",
	"images.file_type",
}

// SearchImages performs a case-insensitive substring search over the
// catalog and returns matching images with their owning folder
// populated. Results come back in natural (id) order; no ranking is
// applied.
func SearchImages(db Querier, term string) ([]models.Image, error) {
	pattern := "%" + strings.ToLower(term) + "%"

	or := sq.Or{}
	for _, col := range searchableColumns {
		or = append(or, sq.Like{fmt.Sprintf("LOWER(%s)", col): pattern})
	}

	queryBuilder := psql.Select(
		"images.id", "images.folder_id", "images.file_name", "images.file_path",
		"images.object_name", "images.description", "images.confidence", "images.processed_at",
		"images.metadata_json", "images.width", "images.height",
		"images.camera_make", "images.camera_model", "images.date_taken",
		"images.focal_length", "images.exposure_time", "images.aperture", "images.iso_speed",
		"images.gps_latitude", "images.gps_longitude", "images.file_size", "images.file_type",
		"folders.id", "folders.name", "folders.path", "folders.processed_at",
	).From("images").
		Join("folders ON folders.id = images.folder_id").
		Where(or).
		OrderBy("images.id ASC")

	sqlStr, args, err := queryBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build SQL query for SearchImages: %w", err)
	}

	rows, err := db.Query(sqlStr, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to execute image search for %q: %w", term, err)
	}
	defer rows.Close()

	var results []models.Image
	for rows.Next() {
		var img models.Image
		var folder models.Folder
		err := rows.Scan(
			&img.ID, &img.FolderID, &img.FileName, &img.FilePath,
			&img.ObjectName, &img.Description, &img.Confidence, &img.ProcessedAt,
			&img.MetadataJSON, &img.Width, &img.Height,
			&img.CameraMake, &img.CameraModel, &img.DateTaken,
			&img.FocalLength, &img.ExposureTime, &img.Aperture, &img.ISOSpeed,
			&img.GPSLatitude, &img.GPSLongitude, &img.FileSize, &img.FileType,
			&folder.ID, &folder.Name, &folder.Path, &folder.ProcessedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan image search row: %w", err)
		}
		img.Folder = &folder
		results = append(results, img)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed reading image search rows: %w", err)
	}

	return results, nil
}
