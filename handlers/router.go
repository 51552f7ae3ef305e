package handlers

import (
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/cors"

	"github.com/camden-git/visionboard/export"
	"github.com/camden-git/visionboard/repository"
)

// NewRouter wires the full API surface onto a chi router.
func NewRouter(
	allowedOrigin string,
	exportsDir string,
	folders repository.FolderRepositoryInterface,
	images repository.ImageRepositoryInterface,
	favorites repository.FavoriteRepositoryInterface,
	exporter *export.Exporter,
) chi.Router {
	r := chi.NewRouter()

	corsHandler := cors.New(cors.Options{
		AllowedOrigins:   []string{allowedOrigin},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: true,
		MaxAge:           300,
	})

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))
	r.Use(corsHandler.Handler)

	catalogHandler := &CatalogHandler{Folders: folders, Images: images}
	favoritesHandler := &FavoritesHandler{Favorites: favorites}
	searchHandler := &SearchHandler{Images: images}
	exportHandler := &ExportHandler{Folders: folders, Images: images, Favorites: favorites, Exporter: exporter}

	r.Route("/api", func(r chi.Router) {
		r.Route("/folders", func(r chi.Router) {
			r.Get("/", catalogHandler.ListFolders)
			r.Post("/", catalogHandler.UpsertFolder)
			r.Get("/{folder_id}/images", catalogHandler.ListFolderImages)
		})

		r.Route("/images", func(r chi.Router) {
			r.Post("/", catalogHandler.UpsertImage)
			r.Route("/{image_id}", func(r chi.Router) {
				r.Get("/", catalogHandler.GetImage)
				r.Get("/file", catalogHandler.ServeImageFile)
			})
		})

		r.Get("/search", searchHandler.Search)

		r.Route("/favorites", func(r chi.Router) {
			r.Get("/", favoritesHandler.ListFavorites)
			r.Post("/", favoritesHandler.AddFavorite)
			r.Post("/reorder", favoritesHandler.ResetFavoriteOrders)
			r.Route("/{favorite_id}", func(r chi.Router) {
				r.Get("/", favoritesHandler.GetFavorite)
				r.Put("/", favoritesHandler.UpdateFavorite)
				r.Put("/order", favoritesHandler.UpdateFavoriteOrder)
				r.Delete("/", favoritesHandler.RemoveFavorite)
			})
		})

		r.Post("/export", exportHandler.Export)
		r.Get("/exports/{file_name}", ExportDownloadServer(exportsDir))
	})

	return r
}
