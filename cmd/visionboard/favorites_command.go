package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
)

func newFavoritesCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "favorites",
		Short: "List the favorites dashboard",
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := openApp()
			if err != nil {
				return err
			}

			favs, err := app.favorites.ListAll()
			if err != nil {
				return err
			}
			if len(favs) == 0 {
				fmt.Println("The dashboard is empty.")
				return nil
			}

			rows := make([][]string, 0, len(favs))
			for i := range favs {
				fav := &favs[i]
				fileName := ""
				folder := ""
				if fav.Image != nil {
					fileName = fav.Image.FileName
					if fav.Image.Folder != nil {
						folder = fav.Image.Folder.Name
					}
				}
				note := ""
				if fav.Note != nil {
					note = *fav.Note
				}
				rows = append(rows, []string{
					fmt.Sprintf("%d", fav.ID),
					fav.DisplayName(),
					fileName,
					folder,
					note,
					fmt.Sprintf("%d", fav.DisplayOrder),
					time.Unix(fav.AddedAt, 0).Format("2006-01-02 15:04"),
				})
			}

			fmt.Println(renderTable(
				[]string{"ID", "Label", "File", "Folder", "Note", "Order", "Added"},
				rows,
				[]columnAlignment{alignRight, alignLeft, alignLeft, alignLeft, alignLeft, alignRight, alignLeft},
			))
			return nil
		},
	}
}
