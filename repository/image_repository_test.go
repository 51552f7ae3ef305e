package repository_test

import (
	"errors"
	"testing"

	"gorm.io/gorm"

	"github.com/camden-git/visionboard/models"
	"github.com/camden-git/visionboard/utils"
)

func TestImageUpsertResultUpdatesInPlace(t *testing.T) {
	tr := newTestRepos(t)
	folder, err := tr.folders.Upsert("pets", "/photos/pets")
	if err != nil {
		t.Fatalf("folder upsert failed: %v", err)
	}

	first, err := tr.images.UpsertResult(folder.ID, "cat.jpg", "/photos/pets/cat.jpg",
		"Dog", "initial guess", 0.40, nil)
	if err != nil {
		t.Fatalf("first upsert failed: %v", err)
	}

	// age the timestamp so the refresh is observable
	if err := tr.db.Model(&models.Image{}).Where("id = ?", first.ID).Update("processed_at", 1000).Error; err != nil {
		t.Fatalf("update failed: %v", err)
	}

	second, err := tr.images.UpsertResult(folder.ID, "cat.jpg", "/photos/pets/cat.jpg",
		"Cat", "corrected", 0.95, nil)
	if err != nil {
		t.Fatalf("second upsert failed: %v", err)
	}
	if second.ID != first.ID {
		t.Fatalf("expected in-place update, got new id %d (was %d)", second.ID, first.ID)
	}
	if second.ObjectName != "Cat" || second.Confidence != 0.95 {
		t.Fatalf("expected latest values, got %q %.2f", second.ObjectName, second.Confidence)
	}
	if second.ProcessedAt <= 1000 {
		t.Fatalf("expected processed_at to be refreshed, got %d", second.ProcessedAt)
	}

	var count int64
	if err := tr.db.Model(&models.Image{}).Count(&count).Error; err != nil {
		t.Fatalf("count failed: %v", err)
	}
	if count != 1 {
		t.Fatalf("expected exactly one image row, got %d", count)
	}
}

func TestImageUpsertResultStoresMetadata(t *testing.T) {
	tr := newTestRepos(t)
	folder, err := tr.folders.Upsert("trips", "/photos/trips")
	if err != nil {
		t.Fatalf("folder upsert failed: %v", err)
	}

	width, height := 4000, 3000
	iso := 200
	lat, long := 51.5007, -0.1246
	meta := &utils.Metadata{
		Width:        &width,
		Height:       &height,
		CameraMake:   strPtr("Canon"),
		CameraModel:  strPtr("EOS R5"),
		ISOSpeed:     &iso,
		GPSLatitude:  &lat,
		GPSLongitude: &long,
		FileType:     strPtr("jpeg"),
	}

	img, err := tr.images.UpsertResult(folder.ID, "bridge.jpg", "/photos/trips/bridge.jpg",
		"Bridge", "a bridge at dusk", 0.88, meta)
	if err != nil {
		t.Fatalf("upsert failed: %v", err)
	}

	stored, err := tr.images.GetByID(img.ID)
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if stored.CameraMake == nil || *stored.CameraMake != "Canon" {
		t.Fatalf("expected camera make to be stored, got %v", stored.CameraMake)
	}
	if stored.Width == nil || *stored.Width != 4000 {
		t.Fatalf("expected width 4000, got %v", stored.Width)
	}
	if stored.GPSLatitude == nil || *stored.GPSLatitude != lat {
		t.Fatalf("expected gps latitude %.4f, got %v", lat, stored.GPSLatitude)
	}
	if stored.MetadataJSON == nil || *stored.MetadataJSON == "" {
		t.Fatal("expected raw metadata JSON copy to be stored")
	}
	if stored.Folder == nil || stored.Folder.ID != folder.ID {
		t.Fatal("expected owning folder to be populated")
	}
}

func TestImageGetByPath(t *testing.T) {
	tr := newTestRepos(t)
	img := tr.seedImage(t, "/photos/pets", "dog.jpg", "Dog", "a dog")

	found, err := tr.images.GetByPath("/photos/pets/dog.jpg")
	if err != nil {
		t.Fatalf("GetByPath failed: %v", err)
	}
	if found.ID != img.ID {
		t.Fatalf("expected image %d, got %d", img.ID, found.ID)
	}

	_, err = tr.images.GetByPath("/photos/pets/missing.jpg")
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		t.Fatalf("expected gorm.ErrRecordNotFound, got %v", err)
	}
}

func TestImageListAndCountByFolder(t *testing.T) {
	tr := newTestRepos(t)
	tr.seedImage(t, "/photos/pets", "dog.jpg", "Dog", "a dog")
	tr.seedImage(t, "/photos/pets", "cat.jpg", "Cat", "a cat")
	other := tr.seedImage(t, "/photos/other", "tree.jpg", "Tree", "a tree")

	folder, err := tr.folders.GetByPath("/photos/pets")
	if err != nil {
		t.Fatalf("GetByPath failed: %v", err)
	}

	images, err := tr.images.ListByFolderID(folder.ID)
	if err != nil {
		t.Fatalf("ListByFolderID failed: %v", err)
	}
	if len(images) != 2 {
		t.Fatalf("expected 2 images, got %d", len(images))
	}
	for _, img := range images {
		if img.ID == other.ID {
			t.Fatal("image from another folder leaked into the listing")
		}
	}

	count, err := tr.images.CountByFolderID(folder.ID)
	if err != nil {
		t.Fatalf("CountByFolderID failed: %v", err)
	}
	if count != 2 {
		t.Fatalf("expected count 2, got %d", count)
	}
}

func TestImageListNotFavorited(t *testing.T) {
	tr := newTestRepos(t)
	pinned := tr.seedImage(t, "/photos/pets", "dog.jpg", "Dog", "a dog")
	free := tr.seedImage(t, "/photos/pets", "cat.jpg", "Cat", "a cat")

	if _, err := tr.favorites.Create(pinned.ID, nil, nil, 0); err != nil {
		t.Fatalf("favorite create failed: %v", err)
	}

	images, err := tr.images.ListNotFavorited()
	if err != nil {
		t.Fatalf("ListNotFavorited failed: %v", err)
	}
	if len(images) != 1 || images[0].ID != free.ID {
		t.Fatalf("expected only the unpinned image, got %d results", len(images))
	}
}
