package server

import (
	"github.com/google/wire"

	"github.com/iWorld-y/ipo_radar/app/sentiment/internal/biz"
	"github.com/iWorld-y/ipo_radar/app/sentiment/internal/data"
	"github.com/iWorld-y/ipo_radar/app/sentiment/internal/service"
)

// ProviderSet is the dependency set of the sentiment service.
var ProviderSet = wire.NewSet(
	// Server providers
	NewHTTPServer,
	NewPipeline,

	// Data providers
	data.ProviderSet,

	// UseCase providers
	biz.ProviderSet,

	// Service providers
	service.ProviderSet,
)
