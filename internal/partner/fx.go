package partner

import (
	"github.com/pointraillabs/pointrail/internal/partner/repository"
	"github.com/pointraillabs/pointrail/internal/partner/service"
	"go.uber.org/fx"
)

var Module = fx.Module("partner.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
)
