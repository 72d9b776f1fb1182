package service

import (
	"context"
	"errors"
	"strings"

	"github.com/bwmarrin/snowflake"
	"github.com/pointraillabs/pointrail/internal/clock"
	"github.com/pointraillabs/pointrail/internal/metrics"
	"github.com/pointraillabs/pointrail/internal/quota/domain"
	"github.com/pointraillabs/pointrail/pkg/db"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Params struct {
	fx.In

	DB      *gorm.DB
	Log     *zap.Logger
	Clock   clock.Clock
	GenID   *snowflake.Node
	Repo    domain.Repository
	Metrics *metrics.Metrics `optional:"true"`
}

type Service struct {
	db      *gorm.DB
	log     *zap.Logger
	clock   clock.Clock
	genID   *snowflake.Node
	repo    domain.Repository
	metrics *metrics.Metrics
}

func New(p Params) domain.Service {
	return &Service{
		db:      p.DB,
		log:     p.Log.Named("quota.service"),
		clock:   p.Clock,
		genID:   p.GenID,
		repo:    p.Repo,
		metrics: p.Metrics,
	}
}

func (s *Service) Upsert(ctx context.Context, req domain.UpsertRequest) (*domain.Response, error) {
	code, err := normalizePartnerCode(req.PartnerCode)
	if err != nil {
		return nil, err
	}
	if err := validatePositive(req.RemainingQuotaPerDay); err != nil {
		return nil, err
	}
	if err := validatePositive(req.RemainingQuotaPerMonth); err != nil {
		return nil, err
	}

	now := s.clock.Now(ctx)
	q := &domain.Quota{
		ID:                              s.genID.Generate().Int64(),
		PartnerCode:                     code,
		RemainingDeductionQuotaPerDay:   req.RemainingQuotaPerDay,
		RemainingDeductionQuotaPerMonth: req.RemainingQuotaPerMonth,
		CreatedAt:                       now,
		UpdatedAt:                       now,
	}

	if err := s.repo.Upsert(ctx, s.db, q); err != nil {
		if errors.Is(db.TranslateError(err), db.ErrForeignKeyViolated) {
			return nil, domain.ErrPartnerNotFound
		}
		s.log.Error("upsert quota failed", zap.String("partner_code", code), zap.Error(err))
		return nil, err
	}

	return s.respond(ctx, code)
}

func (s *Service) Deduct(ctx context.Context, req domain.DeductRequest) (*domain.Response, error) {
	code, err := normalizePartnerCode(req.PartnerCode)
	if err != nil {
		return nil, err
	}
	if req.DailyQuotaDeduction == nil && req.MonthlyQuotaDeduction == nil {
		return nil, domain.ErrNoDeduction
	}
	if err := validatePositive(req.DailyQuotaDeduction); err != nil {
		return nil, err
	}
	if err := validatePositive(req.MonthlyQuotaDeduction); err != nil {
		return nil, err
	}

	now := s.clock.Now(ctx)
	affected, err := s.repo.Deduct(ctx, s.db, code, req.DailyQuotaDeduction, req.MonthlyQuotaDeduction, now)
	if err != nil {
		s.countDeduction("error")
		s.log.Error("deduct quota failed", zap.String("partner_code", code), zap.Error(err))
		return nil, err
	}
	if affected == 0 {
		s.countDeduction("not_found")
		return nil, domain.ErrNotFound
	}

	s.countDeduction("ok")
	return s.respond(ctx, code)
}

func (s *Service) Get(ctx context.Context, partnerCode string) (*domain.Response, error) {
	code, err := normalizePartnerCode(partnerCode)
	if err != nil {
		return nil, err
	}
	return s.respond(ctx, code)
}

func (s *Service) respond(ctx context.Context, code string) (*domain.Response, error) {
	q, err := s.repo.FindByPartnerCode(ctx, s.db, code)
	if err != nil {
		return nil, err
	}
	if q == nil {
		return nil, domain.ErrNotFound
	}
	return &domain.Response{
		PartnerCode:            q.PartnerCode,
		RemainingQuotaPerDay:   q.RemainingDeductionQuotaPerDay,
		RemainingQuotaPerMonth: q.RemainingDeductionQuotaPerMonth,
		CreatedAt:              q.CreatedAt,
		UpdatedAt:              q.UpdatedAt,
	}, nil
}

func (s *Service) countDeduction(result string) {
	if s.metrics != nil {
		s.metrics.QuotaDeductions.WithLabelValues(result).Inc()
	}
}

func normalizePartnerCode(code string) (string, error) {
	code = strings.ToUpper(strings.TrimSpace(code))
	if code == "" || len(code) > 5 {
		return "", domain.ErrInvalidPartnerCode
	}
	return code, nil
}

func validatePositive(value *int64) error {
	if value != nil && *value <= 0 {
		return domain.ErrInvalidQuota
	}
	return nil
}
