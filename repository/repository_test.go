package repository_test

import (
	"path/filepath"
	"testing"

	"gorm.io/gorm"

	"github.com/camden-git/visionboard/database"
	"github.com/camden-git/visionboard/models"
	"github.com/camden-git/visionboard/repository"
)

type testRepos struct {
	db        *gorm.DB
	folders   *repository.FolderRepository
	images    *repository.ImageRepository
	favorites *repository.FavoriteRepository
}

func newTestRepos(t *testing.T) *testRepos {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "test.db")
	db, err := database.InitGormDB(dbPath)
	if err != nil {
		t.Fatalf("InitGormDB failed: %v", err)
	}
	if err := database.AutoMigrateModels(db); err != nil {
		t.Fatalf("AutoMigrateModels failed: %v", err)
	}
	return &testRepos{
		db:        db,
		folders:   repository.NewFolderRepository(db),
		images:    repository.NewImageRepository(db),
		favorites: repository.NewFavoriteRepository(db),
	}
}

// seedImage creates a folder (if needed) and one image inside it.
func (tr *testRepos) seedImage(t *testing.T, folderPath, fileName, objectName, description string) *models.Image {
	t.Helper()
	folder, err := tr.folders.Upsert(filepath.Base(folderPath), folderPath)
	if err != nil {
		t.Fatalf("folder upsert failed: %v", err)
	}
	img, err := tr.images.UpsertResult(folder.ID, fileName, filepath.Join(folderPath, fileName),
		objectName, description, 0.9, nil)
	if err != nil {
		t.Fatalf("image upsert failed: %v", err)
	}
	return img
}

func strPtr(s string) *string { return &s }
