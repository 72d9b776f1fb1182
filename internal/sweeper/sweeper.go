// Package sweeper flips programs and discounts whose window has elapsed to
// inactive. It is the only background worker in the process.
package sweeper

import (
	"context"
	"time"

	"github.com/pointraillabs/pointrail/internal/clock"
	"github.com/pointraillabs/pointrail/internal/config"
	discountdomain "github.com/pointraillabs/pointrail/internal/discount/domain"
	programdomain "github.com/pointraillabs/pointrail/internal/program/domain"
	"github.com/redis/go-redis/v9"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const lockKey = "pointrail:sweep:lock"

type Params struct {
	fx.In

	DB           *gorm.DB
	Log          *zap.Logger
	Clock        clock.Clock
	Redis        *redis.Client `optional:"true"`
	ProgramRepo  programdomain.Repository
	DiscountRepo discountdomain.Repository
	Config       config.Config
}

type Sweeper struct {
	db           *gorm.DB
	log          *zap.Logger
	clock        clock.Clock
	redis        *redis.Client
	programRepo  programdomain.Repository
	discountRepo discountdomain.Repository
	lockTTL      time.Duration
}

func New(p Params) *Sweeper {
	lockTTL := p.Config.Sweep.LockTTL
	if lockTTL <= 0 {
		lockTTL = 5 * time.Minute
	}
	return &Sweeper{
		db:           p.DB,
		log:          p.Log.Named("sweeper"),
		clock:        p.Clock,
		redis:        p.Redis,
		programRepo:  p.ProgramRepo,
		discountRepo: p.DiscountRepo,
		lockTTL:      lockTTL,
	}
}

// RunOnce performs one sweep. With redis configured the sweep runs under a
// best-effort SETNX lock so only one instance sweeps at a time; without redis
// the sweep runs unguarded, which is safe because the expiry UPDATE is
// idempotent.
func (s *Sweeper) RunOnce(ctx context.Context) error {
	if s.redis != nil {
		acquired, err := s.redis.SetNX(ctx, lockKey, "1", s.lockTTL).Result()
		if err != nil {
			s.log.Warn("sweep lock unavailable, proceeding unguarded", zap.Error(err))
		} else if !acquired {
			s.log.Info("sweep skipped, another instance holds the lock")
			return nil
		} else {
			defer s.redis.Del(context.WithoutCancel(ctx), lockKey)
		}
	}

	now := s.clock.Now(ctx)

	expiredPrograms, err := s.programRepo.ExpireElapsed(ctx, s.db, now)
	if err != nil {
		s.log.Error("expire programs failed", zap.Error(err))
		return err
	}

	expiredDiscounts, err := s.discountRepo.ExpireElapsed(ctx, s.db, now)
	if err != nil {
		s.log.Error("expire discounts failed", zap.Error(err))
		return err
	}

	s.log.Info("sweep completed",
		zap.Int64("programs_expired", expiredPrograms),
		zap.Int64("discounts_expired", expiredDiscounts),
	)
	return nil
}

// Run sweeps on the configured interval until ctx is done.
func (s *Sweeper) Run(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		interval = time.Hour
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := s.RunOnce(ctx); err != nil {
				s.log.Error("sweep run failed", zap.Error(err))
			}
		}
	}
}
