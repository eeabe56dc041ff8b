//go:build wireinject
// +build wireinject

package main

import (
	"github.com/google/wire"
	"github.com/pdcgo/shared/configs"
	"github.com/pdcgo/tms_service"
)

func InitializeMigration() (*Migration, error) {
	wire.Build(
		configs.NewProductionConfig,
		NewDatabase,
		tms_service.NewMigrationHandler,
		tms_service.NewSeedHandler,
		NewMigration,
	)

	return &Migration{}, nil
}
