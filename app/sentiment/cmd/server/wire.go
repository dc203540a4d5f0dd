//go:build wireinject
// +build wireinject

// The build tag makes sure the stub is not built in the final binary.

package main

import (
	"github.com/go-kratos/kratos/v2"
	"github.com/go-kratos/kratos/v2/log"
	"github.com/google/wire"

	"github.com/iWorld-y/ipo_radar/app/sentiment/internal/conf"
	"github.com/iWorld-y/ipo_radar/app/sentiment/internal/server"
)

// wireApp init kratos application.
func wireApp(*conf.Server, *conf.Data, *conf.Analysis, *conf.Report, log.Logger) (*kratos.App, func(), error) {
	panic(wire.Build(server.ProviderSet, newApp))
}
