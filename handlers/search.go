package handlers

import (
	"log"
	"net/http"
	"strings"

	"github.com/camden-git/visionboard/models"
	"github.com/camden-git/visionboard/repository"
)

// SearchHandler serves keyword search over the image catalog.
type SearchHandler struct {
	Images repository.ImageRepositoryInterface
}

// SearchResponse carries the matched images together with the term
// that produced them.
type SearchResponse struct {
	Term    string         `json:"term"`
	Count   int            `json:"count"`
	Results []models.Image `json:"results"`
}

// Search runs a case-insensitive substring search across object name,
// description, camera make, camera model, and file type. A blank term
// is rejected: callers treat it as "no search performed".
func (sh *SearchHandler) Search(w http.ResponseWriter, r *http.Request) {
	term := strings.TrimSpace(r.URL.Query().Get("q"))
	if term == "" {
		WriteAPIError(w, http.StatusBadRequest, "invalid_request", "Missing search term 'q'")
		return
	}

	results, err := sh.Images.Search(term)
	if err != nil {
		log.Printf("Error searching images for %q: %v", term, err)
		WriteAPIError(w, http.StatusInternalServerError, "internal_error", "Search failed")
		return
	}
	if results == nil {
		results = []models.Image{}
	}

	writeJSON(w, http.StatusOK, SearchResponse{Term: term, Count: len(results), Results: results})
}
