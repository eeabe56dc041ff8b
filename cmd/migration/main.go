package main

import (
	"github.com/pdcgo/shared/configs"
	"github.com/pdcgo/shared/db_connect"
	"github.com/pdcgo/tms_service"
	"gorm.io/gorm"
)

func NewDatabase(cfg *configs.AppConfig) (*gorm.DB, error) {
	return db_connect.NewProductionDatabase("tms_migration", &cfg.Database)
}

type Migration struct {
	Run func() error
}

func NewMigration(
	migrate tms_service.MigrationHandler,
	seed tms_service.SeedHandler,
) *Migration {
	return &Migration{
		Run: func() error {
			var err error

			err = migrate()
			if err != nil {
				return err
			}

			return seed()
		},
	}
}

func main() {
	mig, err := InitializeMigration()
	if err != nil {
		panic(err)
	}

	err = mig.Run()
	if err != nil {
		panic(err)
	}
}
