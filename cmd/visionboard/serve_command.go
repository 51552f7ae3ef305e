package main

import (
	"log"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/camden-git/visionboard/export"
	"github.com/camden-git/visionboard/handlers"
)

func newServeCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the dashboard API server",
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := openApp()
			if err != nil {
				return err
			}

			storagePaths := []string{app.cfg.ExportsPath, filepath.Dir(app.cfg.DatabasePath)}
			for _, p := range storagePaths {
				log.Printf("Ensuring storage directory exists: %s", p)
				if err := os.MkdirAll(p, 0755); err != nil {
					return err
				}
			}

			exporter, err := export.NewExporter(app.cfg.ExportsPath)
			if err != nil {
				return err
			}

			log.Printf("Using database: %s", app.cfg.DatabasePath)
			log.Printf("Storing exports in: %s", app.cfg.ExportsPath)

			r := handlers.NewRouter(app.cfg.AllowedOrigin, app.cfg.ExportsPath,
				app.folders, app.images, app.favorites, exporter)

			serverAddr := ":" + app.cfg.Port
			log.Printf("Server listening on %s", serverAddr)
			server := &http.Server{
				Addr:         serverAddr,
				Handler:      r,
				ReadTimeout:  10 * time.Second,
				WriteTimeout: 30 * time.Second,
				IdleTimeout:  120 * time.Second,
			}
			return server.ListenAndServe()
		},
	}
}
