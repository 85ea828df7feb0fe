package main

import (
	"github.com/Cam-Smith-Games/Card-Game/internal/config"
	"github.com/Cam-Smith-Games/Card-Game/internal/constants"
	"github.com/Cam-Smith-Games/Card-Game/internal/content"
	"github.com/Cam-Smith-Games/Card-Game/internal/logging"
	"github.com/Cam-Smith-Games/Card-Game/internal/storage"
)

func loadConfigOrExit() *config.LoadedConfig {
	cfg, err := config.FromEnv()
	if err != nil {
		logging.Fatal("Missing or invalid battle configuration", err, logging.Fields{"env": constants.EnvConfigPath})
	}
	return cfg
}

func loadCatalogOrExit(path string) *content.Catalog {
	cat, err := content.LoadCatalog(path)
	if err != nil {
		logging.Fatal("Missing or invalid battle content", err, logging.Fields{
			constants.LogFieldPath: path,
			"hint":                 "provide a YAML file with 'cards', 'characters' and 'encounters' lists",
		})
	}
	return cat
}

func createRepositoryOrExit(dbPath string) storage.Repository {
	db, err := storage.OpenAndMigrate(dbPath)
	if err != nil {
		logging.Fatal("Failed to initialize database", err, logging.Fields{constants.LogFieldPath: dbPath})
	}
	return storage.NewSQLiteRepository(db)
}
