package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/camden-git/visionboard/export"
)

func newExportCommand() *cobra.Command {
	var formatFlag string
	var includeImages bool

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export the favorites dashboard to a document",
		RunE: func(cmd *cobra.Command, args []string) error {
			format, err := export.ParseFormat(formatFlag)
			if err != nil {
				return err
			}

			app, err := openApp()
			if err != nil {
				return err
			}

			favs, err := app.favorites.ListAll()
			if err != nil {
				return err
			}

			exporter, err := export.NewExporter(app.cfg.ExportsPath)
			if err != nil {
				return err
			}

			result, err := exporter.Export(export.FavoritesTable(favs), "dashboard_export", format, includeImages)
			if err != nil {
				return err
			}

			fmt.Printf("Exported %d favorites to %s\n", len(favs), result.Path)
			if result.SkippedImages > 0 {
				fmt.Printf("Warning: %d image files were missing and not embedded\n", result.SkippedImages)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&formatFlag, "format", "f", string(export.FormatCSV),
		"Output format: csv, excel, pdf_simple, or pdf_detailed")
	cmd.Flags().BoolVar(&includeImages, "include-images", false,
		"Embed image previews (pdf_detailed only)")

	return cmd
}
