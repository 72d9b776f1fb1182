package quota

import (
	"github.com/pointraillabs/pointrail/internal/quota/repository"
	"github.com/pointraillabs/pointrail/internal/quota/service"
	"go.uber.org/fx"
)

var Module = fx.Module("quota.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
)
