package main

import (
	"log"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"gorm.io/gorm"

	"github.com/camden-git/visionboard/config"
	"github.com/camden-git/visionboard/database"
	"github.com/camden-git/visionboard/repository"
)

func newRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "visionboard",
		Short:         "Dashboard backend for image-analysis results",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	rootCmd.AddCommand(newServeCommand())
	rootCmd.AddCommand(newIngestCommand())
	rootCmd.AddCommand(newExportCommand())
	rootCmd.AddCommand(newFavoritesCommand())

	return rootCmd
}

// appContext bundles the configuration and open repositories shared by
// every subcommand.
type appContext struct {
	cfg       config.Config
	db        *gorm.DB
	folders   *repository.FolderRepository
	images    *repository.ImageRepository
	favorites *repository.FavoriteRepository
}

// openApp loads the environment and configuration, opens the database,
// and migrates the schema.
func openApp() (*appContext, error) {
	if err := godotenv.Load(); err != nil {
		log.Printf("Info: No .env file found or error loading: %v", err)
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, err
	}

	db, err := database.InitGormDB(cfg.DatabasePath)
	if err != nil {
		return nil, err
	}
	if err := database.AutoMigrateModels(db); err != nil {
		return nil, err
	}

	return &appContext{
		cfg:       cfg,
		db:        db,
		folders:   repository.NewFolderRepository(db),
		images:    repository.NewImageRepository(db),
		favorites: repository.NewFavoriteRepository(db),
	}, nil
}
