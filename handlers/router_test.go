package handlers_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/go-chi/chi/v5"

	"github.com/camden-git/visionboard/database"
	"github.com/camden-git/visionboard/export"
	"github.com/camden-git/visionboard/handlers"
	"github.com/camden-git/visionboard/models"
	"github.com/camden-git/visionboard/repository"
)

type testAPI struct {
	router    chi.Router
	folders   *repository.FolderRepository
	images    *repository.ImageRepository
	favorites *repository.FavoriteRepository
	exports   string
}

func newTestAPI(t *testing.T) *testAPI {
	t.Helper()
	db, err := database.InitGormDB(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("InitGormDB failed: %v", err)
	}
	if err := database.AutoMigrateModels(db); err != nil {
		t.Fatalf("AutoMigrateModels failed: %v", err)
	}

	exportsDir := t.TempDir()
	exporter, err := export.NewExporter(exportsDir)
	if err != nil {
		t.Fatalf("NewExporter failed: %v", err)
	}

	folders := repository.NewFolderRepository(db)
	images := repository.NewImageRepository(db)
	favorites := repository.NewFavoriteRepository(db)

	return &testAPI{
		router:    handlers.NewRouter("http://localhost:5173", exportsDir, folders, images, favorites, exporter),
		folders:   folders,
		images:    images,
		favorites: favorites,
		exports:   exportsDir,
	}
}

func (api *testAPI) do(t *testing.T, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal request failed: %v", err)
		}
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	api.router.ServeHTTP(rec, req)
	return rec
}

func (api *testAPI) seedImage(t *testing.T, fileName, objectName string) *models.Image {
	t.Helper()
	folder, err := api.folders.Upsert("pets", "/photos/pets")
	if err != nil {
		t.Fatalf("folder upsert failed: %v", err)
	}
	img, err := api.images.UpsertResult(folder.ID, fileName, "/photos/pets/"+fileName, objectName, "", 0.9, nil)
	if err != nil {
		t.Fatalf("image upsert failed: %v", err)
	}
	return img
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder, out interface{}) {
	t.Helper()
	if err := json.Unmarshal(rec.Body.Bytes(), out); err != nil {
		t.Fatalf("decode response failed: %v (body: %s)", err, rec.Body.String())
	}
}

func TestFolderEndpoints(t *testing.T) {
	api := newTestAPI(t)
	img := api.seedImage(t, "cat.jpg", "Cat")

	rec := api.do(t, http.MethodGet, "/api/folders", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("list folders: expected 200, got %d", rec.Code)
	}
	var folders []handlers.FolderSummary
	decodeBody(t, rec, &folders)
	if len(folders) != 1 || folders[0].ImageCount != 1 {
		t.Fatalf("expected one folder with one image, got %+v", folders)
	}

	rec = api.do(t, http.MethodGet, fmt.Sprintf("/api/folders/%d/images", folders[0].ID), nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("folder images: expected 200, got %d", rec.Code)
	}
	var images []models.Image
	decodeBody(t, rec, &images)
	if len(images) != 1 || images[0].ID != img.ID {
		t.Fatalf("expected the seeded image, got %+v", images)
	}

	rec = api.do(t, http.MethodGet, "/api/folders/9999/images", nil)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("missing folder: expected 404, got %d", rec.Code)
	}
}

func TestImageDetailReportsMissingFile(t *testing.T) {
	api := newTestAPI(t)
	img := api.seedImage(t, "cat.jpg", "Cat")

	rec := api.do(t, http.MethodGet, fmt.Sprintf("/api/images/%d", img.ID), nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var detail handlers.ImageDetail
	decodeBody(t, rec, &detail)
	if !detail.FileMissing {
		t.Fatal("expected file_missing to be true for a path that does not exist")
	}

	rec = api.do(t, http.MethodGet, fmt.Sprintf("/api/images/%d/file", img.ID), nil)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404 for missing file, got %d", rec.Code)
	}
}

func TestFavoritesLifecycleOverHTTP(t *testing.T) {
	api := newTestAPI(t)
	img := api.seedImage(t, "cat.jpg", "Cat")

	rec := api.do(t, http.MethodPost, "/api/favorites", map[string]interface{}{
		"image_id": img.ID, "custom_label": "My Label", "note": "note", "display_order": 5,
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("add favorite: expected 201, got %d (%s)", rec.Code, rec.Body.String())
	}
	var fav models.FavoriteImage
	decodeBody(t, rec, &fav)
	if fav.DisplayOrder != 5 {
		t.Fatalf("expected display order 5, got %d", fav.DisplayOrder)
	}

	// duplicate add conflicts
	rec = api.do(t, http.MethodPost, "/api/favorites", map[string]interface{}{"image_id": img.ID})
	if rec.Code != http.StatusConflict {
		t.Fatalf("duplicate favorite: expected 409, got %d", rec.Code)
	}

	rec = api.do(t, http.MethodPut, fmt.Sprintf("/api/favorites/%d/order", fav.ID), map[string]interface{}{
		"display_order": 7,
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("update order: expected 200, got %d", rec.Code)
	}

	rec = api.do(t, http.MethodGet, fmt.Sprintf("/api/favorites/%d", fav.ID), nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("get favorite: expected 200, got %d", rec.Code)
	}
	var updated models.FavoriteImage
	decodeBody(t, rec, &updated)
	if updated.DisplayOrder != 7 {
		t.Fatalf("expected display order 7, got %d", updated.DisplayOrder)
	}
	if updated.CustomLabel == nil || *updated.CustomLabel != "My Label" {
		t.Fatal("order update must not touch the custom label")
	}

	rec = api.do(t, http.MethodDelete, fmt.Sprintf("/api/favorites/%d", fav.ID), nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("remove favorite: expected 200, got %d", rec.Code)
	}
	rec = api.do(t, http.MethodGet, fmt.Sprintf("/api/favorites/%d", fav.ID), nil)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("removed favorite: expected 404, got %d", rec.Code)
	}
}

func TestResetFavoriteOrdersOverHTTP(t *testing.T) {
	api := newTestAPI(t)
	imgA := api.seedImage(t, "a.jpg", "A")
	imgB := api.seedImage(t, "b.jpg", "B")

	if _, err := api.favorites.Create(imgA.ID, nil, nil, 9); err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if _, err := api.favorites.Create(imgB.ID, nil, nil, 3); err != nil {
		t.Fatalf("create failed: %v", err)
	}

	rec := api.do(t, http.MethodPost, "/api/favorites/reorder", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("reorder: expected 200, got %d", rec.Code)
	}
	var favs []models.FavoriteImage
	decodeBody(t, rec, &favs)
	if len(favs) != 2 || favs[0].DisplayOrder != 0 || favs[1].DisplayOrder != 1 {
		t.Fatalf("expected sequential orders 0,1, got %+v", favs)
	}
	if favs[0].ImageID != imgB.ID {
		t.Fatal("expected the lower-ordered favorite to stay first after reset")
	}
}

func TestSearchEndpoint(t *testing.T) {
	api := newTestAPI(t)
	api.seedImage(t, "cat.jpg", "Cat")

	rec := api.do(t, http.MethodGet, "/api/search?q=cat", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("search: expected 200, got %d", rec.Code)
	}
	var resp handlers.SearchResponse
	decodeBody(t, rec, &resp)
	if resp.Count != 1 || len(resp.Results) != 1 {
		t.Fatalf("expected one result, got %+v", resp)
	}

	// blank term means no search was performed
	rec = api.do(t, http.MethodGet, "/api/search?q=++", nil)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("blank search: expected 400, got %d", rec.Code)
	}
}

func TestExportEndpointAndDownload(t *testing.T) {
	api := newTestAPI(t)
	img := api.seedImage(t, "cat.jpg", "Cat")
	if _, err := api.favorites.Create(img.ID, nil, nil, 0); err != nil {
		t.Fatalf("create failed: %v", err)
	}

	rec := api.do(t, http.MethodPost, "/api/export", map[string]interface{}{
		"scope": "favorites", "format": "csv",
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("export: expected 200, got %d (%s)", rec.Code, rec.Body.String())
	}
	var resp handlers.ExportResponse
	decodeBody(t, rec, &resp)
	if _, err := os.Stat(resp.Path); err != nil {
		t.Fatalf("expected export file on disk: %v", err)
	}

	rec = api.do(t, http.MethodGet, "/api/exports/"+resp.FileName, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("download: expected 200, got %d", rec.Code)
	}
	if rec.Body.Len() == 0 {
		t.Fatal("expected download body")
	}

	rec = api.do(t, http.MethodPost, "/api/export", map[string]interface{}{
		"scope": "favorites", "format": "docx",
	})
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("bad format: expected 400, got %d", rec.Code)
	}
}
