package program

import (
	"github.com/pointraillabs/pointrail/internal/program/repository"
	"github.com/pointraillabs/pointrail/internal/program/service"
	"go.uber.org/fx"
)

var Module = fx.Module("program.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
)
