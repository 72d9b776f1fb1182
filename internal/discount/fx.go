package discount

import (
	"github.com/pointraillabs/pointrail/internal/discount/repository"
	"github.com/pointraillabs/pointrail/internal/discount/service"
	"go.uber.org/fx"
)

var Module = fx.Module("discount.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
)
