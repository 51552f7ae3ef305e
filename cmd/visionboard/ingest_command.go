package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/camden-git/visionboard/ingest"
)

func newIngestCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "ingest <directory>",
		Short: "Scan a directory of images into the catalog",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := openApp()
			if err != nil {
				return err
			}

			scanner := ingest.NewScanner(app.folders, app.images, ingest.NoopAnalyzer{})
			summary, err := scanner.ScanDirectory(args[0])
			if err != nil {
				return err
			}

			fmt.Printf("Folder %q (%s): %d images processed, %d skipped\n",
				summary.Folder.Name, summary.Folder.Path, summary.Processed, summary.Skipped)
			return nil
		},
	}
}
