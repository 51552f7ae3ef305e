package export

import (
	"fmt"
	"time"

	"github.com/camden-git/visionboard/models"
)

const timestampLayout = "2006-01-02 15:04:05"

func formatUnix(ts int64) string {
	return time.Unix(ts, 0).UTC().Format(timestampLayout)
}

func derefOr(s *string, fallback string) string {
	if s != nil {
		return *s
	}
	return fallback
}

func folderName(img *models.Image) string {
	if img != nil && img.Folder != nil {
		return img.Folder.Name
	}
	return "Unknown"
}

// FavoritesTable projects the favorites registry into the dashboard
// export shape, preserving the slice order.
func FavoritesTable(favs []models.FavoriteImage) Table {
	t := Table{
		Columns: []string{
			"custom_label", "object_name", "description", "confidence",
			"file_name", "file_path", "folder", "note", "added_at", "display_order",
		},
	}
	for i := range favs {
		fav := &favs[i]
		var img models.Image
		if fav.Image != nil {
			img = *fav.Image
		}
		t.Rows = append(t.Rows, []string{
			fav.DisplayName(),
			img.ObjectName,
			img.Description,
			fmt.Sprintf("%.2f", img.Confidence),
			img.FileName,
			img.FilePath,
			folderName(fav.Image),
			derefOr(fav.Note, ""),
			formatUnix(fav.AddedAt),
			fmt.Sprintf("%d", fav.DisplayOrder),
		})
		t.ImagePaths = append(t.ImagePaths, img.FilePath)
	}
	return t
}

// ImagesTable projects catalog images into the folder/search export
// shape, preserving the slice order.
func ImagesTable(images []models.Image) Table {
	t := Table{
		Columns: []string{
			"file_name", "file_path", "object_name", "description",
			"confidence", "processed_at",
		},
	}
	for i := range images {
		img := &images[i]
		t.Rows = append(t.Rows, []string{
			img.FileName,
			img.FilePath,
			img.ObjectName,
			img.Description,
			fmt.Sprintf("%.2f", img.Confidence),
			formatUnix(img.ProcessedAt),
		})
		t.ImagePaths = append(t.ImagePaths, img.FilePath)
	}
	return t
}
