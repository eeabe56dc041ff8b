//go:build wireinject
// +build wireinject

package main

import (
	"github.com/google/wire"
	"github.com/pdcgo/shared/configs"
	"github.com/pdcgo/tms_service"
)

func InitializeApp() (*App, error) {
	wire.Build(
		configs.NewProductionConfig,
		NewRouter,
		NewCache,
		NewDatabase,
		NewAuthorization,
		tms_service.NewRegister,
		NewApp,
	)

	return &App{}, nil
}
