package main

import (
	"github.com/zulandar/corkboard/internal/config"
	"github.com/zulandar/corkboard/internal/db"
	"gorm.io/gorm"
)

// connectFromConfig loads the config file and opens the database connection.
func connectFromConfig(configPath string) (*config.Config, *gorm.DB, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, nil, err
	}
	gormDB, err := db.Connect(cfg.MySQL)
	if err != nil {
		return nil, nil, err
	}
	return cfg, gormDB, nil
}
