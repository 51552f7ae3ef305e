package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"
	"gorm.io/gorm"

	"github.com/camden-git/visionboard/repository"
)

// FavoritesHandler serves the favorites registry: the user-curated,
// orderable dashboard subset of the catalog.
type FavoritesHandler struct {
	Favorites repository.FavoriteRepositoryInterface
}

// ListFavorites returns the registry in canonical order
// (display_order ascending, id ascending).
func (fh *FavoritesHandler) ListFavorites(w http.ResponseWriter, r *http.Request) {
	favs, err := fh.Favorites.ListAll()
	if err != nil {
		log.Printf("Error listing favorites: %v", err)
		WriteAPIError(w, http.StatusInternalServerError, "internal_error", "Failed to list favorites")
		return
	}
	writeJSON(w, http.StatusOK, favs)
}

// AddFavorite pins an image to the dashboard.
func (fh *FavoritesHandler) AddFavorite(w http.ResponseWriter, r *http.Request) {
	var req struct {
		ImageID      uint    `json:"image_id"`
		CustomLabel  *string `json:"custom_label,omitempty"`
		Note         *string `json:"note,omitempty"`
		DisplayOrder int     `json:"display_order"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteAPIError(w, http.StatusBadRequest, "invalid_request", "Invalid request body: "+err.Error())
		return
	}
	if req.ImageID == 0 {
		WriteAPIError(w, http.StatusBadRequest, "invalid_request", "Missing required field: image_id")
		return
	}
	if req.DisplayOrder < 0 {
		WriteAPIError(w, http.StatusBadRequest, "invalid_request", "display_order must be non-negative")
		return
	}

	fav, err := fh.Favorites.Create(req.ImageID, req.CustomLabel, req.Note, req.DisplayOrder)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrAlreadyFavorited):
			WriteAPIError(w, http.StatusConflict, "already_favorited", "Image is already on the dashboard")
		case errors.Is(err, gorm.ErrRecordNotFound):
			WriteNotFound(w, "image")
		default:
			log.Printf("Error adding favorite for image %d: %v", req.ImageID, err)
			WriteAPIError(w, http.StatusInternalServerError, "internal_error", "Failed to add favorite")
		}
		return
	}
	writeJSON(w, http.StatusCreated, fav)
}

// GetFavorite returns one favorite with its image and folder.
func (fh *FavoritesHandler) GetFavorite(w http.ResponseWriter, r *http.Request) {
	id, err := parseUintParam(chi.URLParam(r, "favorite_id"))
	if err != nil {
		WriteAPIError(w, http.StatusBadRequest, "invalid_request", "Invalid favorite id")
		return
	}

	fav, err := fh.Favorites.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			WriteNotFound(w, "favorite")
			return
		}
		log.Printf("Error fetching favorite %d: %v", id, err)
		WriteAPIError(w, http.StatusInternalServerError, "internal_error", "Failed to fetch favorite")
		return
	}
	writeJSON(w, http.StatusOK, fav)
}

// UpdateFavorite overwrites a favorite's label and note. Display order
// is not touched here; it has its own endpoint.
func (fh *FavoritesHandler) UpdateFavorite(w http.ResponseWriter, r *http.Request) {
	id, err := parseUintParam(chi.URLParam(r, "favorite_id"))
	if err != nil {
		WriteAPIError(w, http.StatusBadRequest, "invalid_request", "Invalid favorite id")
		return
	}

	var req struct {
		CustomLabel *string `json:"custom_label"`
		Note        *string `json:"note"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteAPIError(w, http.StatusBadRequest, "invalid_request", "Invalid request body: "+err.Error())
		return
	}

	if err := fh.Favorites.UpdateDetails(id, req.CustomLabel, req.Note); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			WriteNotFound(w, "favorite")
			return
		}
		log.Printf("Error updating favorite %d: %v", id, err)
		WriteAPIError(w, http.StatusInternalServerError, "internal_error", "Failed to update favorite")
		return
	}

	fav, err := fh.Favorites.GetByID(id)
	if err != nil {
		log.Printf("Error re-reading favorite %d after update: %v", id, err)
		writeJSON(w, http.StatusOK, map[string]string{"message": "Favorite updated"})
		return
	}
	writeJSON(w, http.StatusOK, fav)
}

// UpdateFavoriteOrder overwrites only the display order of a favorite.
func (fh *FavoritesHandler) UpdateFavoriteOrder(w http.ResponseWriter, r *http.Request) {
	id, err := parseUintParam(chi.URLParam(r, "favorite_id"))
	if err != nil {
		WriteAPIError(w, http.StatusBadRequest, "invalid_request", "Invalid favorite id")
		return
	}

	var req struct {
		DisplayOrder *int `json:"display_order"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteAPIError(w, http.StatusBadRequest, "invalid_request", "Invalid request body: "+err.Error())
		return
	}
	if req.DisplayOrder == nil || *req.DisplayOrder < 0 {
		WriteAPIError(w, http.StatusBadRequest, "invalid_request", "display_order must be a non-negative integer")
		return
	}

	if err := fh.Favorites.UpdateOrder(id, *req.DisplayOrder); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			WriteNotFound(w, "favorite")
			return
		}
		log.Printf("Error updating order for favorite %d: %v", id, err)
		WriteAPIError(w, http.StatusInternalServerError, "internal_error", "Failed to update favorite order")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "Order updated"})
}

// RemoveFavorite deletes the registry entry. The underlying image
// stays in the catalog.
func (fh *FavoritesHandler) RemoveFavorite(w http.ResponseWriter, r *http.Request) {
	id, err := parseUintParam(chi.URLParam(r, "favorite_id"))
	if err != nil {
		WriteAPIError(w, http.StatusBadRequest, "invalid_request", "Invalid favorite id")
		return
	}

	if err := fh.Favorites.Delete(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			WriteNotFound(w, "favorite")
			return
		}
		log.Printf("Error removing favorite %d: %v", id, err)
		WriteAPIError(w, http.StatusInternalServerError, "internal_error", "Failed to remove favorite")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "Removed from dashboard"})
}

// ResetFavoriteOrders reassigns display orders 0, 1, 2, ... in the
// current canonical listing order. The batch is best-effort: a failure
// partway leaves earlier updates applied.
func (fh *FavoritesHandler) ResetFavoriteOrders(w http.ResponseWriter, r *http.Request) {
	if err := fh.Favorites.ResetOrdersSequential(); err != nil {
		log.Printf("Error during sequential reorder: %v", err)
		WriteAPIError(w, http.StatusInternalServerError, "reorder_incomplete",
			"Reordering failed partway; some entries may have been renumbered")
		return
	}

	favs, err := fh.Favorites.ListAll()
	if err != nil {
		log.Printf("Error re-reading favorites after reorder: %v", err)
		writeJSON(w, http.StatusOK, map[string]string{"message": "All items reordered sequentially"})
		return
	}
	writeJSON(w, http.StatusOK, favs)
}
