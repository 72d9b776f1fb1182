package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/pointraillabs/pointrail/internal/clock"
	"github.com/pointraillabs/pointrail/internal/metrics"
	"github.com/pointraillabs/pointrail/internal/program/domain"
	quotadomain "github.com/pointraillabs/pointrail/internal/quota/domain"
	"github.com/pointraillabs/pointrail/pkg/db"
	"github.com/pointraillabs/pointrail/pkg/db/pagination"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Params struct {
	fx.In

	DB        *gorm.DB
	Log       *zap.Logger
	Clock     clock.Clock
	GenID     *snowflake.Node
	Repo      domain.Repository
	QuotaRepo quotadomain.Repository
	Metrics   *metrics.Metrics `optional:"true"`
}

type Service struct {
	db        *gorm.DB
	log       *zap.Logger
	clock     clock.Clock
	genID     *snowflake.Node
	repo      domain.Repository
	quotaRepo quotadomain.Repository
	metrics   *metrics.Metrics
}

func New(p Params) domain.Service {
	return &Service{
		db:        p.DB,
		log:       p.Log.Named("program.service"),
		clock:     p.Clock,
		genID:     p.GenID,
		repo:      p.Repo,
		quotaRepo: p.QuotaRepo,
		metrics:   p.Metrics,
	}
}

// Create provisions a program for a partner. The exclusivity check runs
// first; the program insert and the quota seed then commit in one
// transaction, so a failed write leaves neither row behind.
func (s *Service) Create(ctx context.Context, req domain.CreateRequest) (*domain.Response, error) {
	code := strings.ToUpper(strings.TrimSpace(req.PartnerCode))
	if code == "" || len(code) > 5 {
		return nil, domain.ErrInvalidPartnerCode
	}
	if req.ExchangeRate <= 0 {
		return nil, domain.ErrInvalidExchangeRate
	}
	for _, amount := range []*int64{
		req.MinAmountPerTransaction,
		req.MaxAmountPerTransaction,
		req.MaxTransactionAmountPerDay,
		req.MaxTransactionAmountPerMonth,
	} {
		if amount != nil && *amount <= 0 {
			return nil, domain.ErrInvalidAmount
		}
	}
	if !req.StartDate.Before(req.EndDate) {
		return nil, domain.ErrInvalidWindow
	}

	existing, err := s.repo.FindActiveOverlap(ctx, s.db, code, req.StartDate, req.EndDate)
	if err != nil {
		s.count("error")
		s.log.Error("overlap check failed", zap.String("partner_code", code), zap.Error(err))
		return nil, err
	}
	if existing != nil {
		s.count("conflict")
		return nil, domain.ErrOverlap
	}

	now := s.clock.Now(ctx)
	p := &domain.Program{
		ID:                           s.genID.Generate().Int64(),
		PartnerCode:                  code,
		ExchangeRate:                 req.ExchangeRate,
		MinAmountPerTransaction:      req.MinAmountPerTransaction,
		MaxAmountPerTransaction:      req.MaxAmountPerTransaction,
		MaxTransactionAmountPerDay:   req.MaxTransactionAmountPerDay,
		MaxTransactionAmountPerMonth: req.MaxTransactionAmountPerMonth,
		IsActive:                     !now.Before(req.StartDate) && now.Before(req.EndDate),
		StartDate:                    req.StartDate,
		EndDate:                      req.EndDate,
		CreatedAt:                    now,
		UpdatedAt:                    now,
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := s.repo.Insert(ctx, tx, p); err != nil {
			return err
		}
		// The quota seed is a full reset to the program's ceilings, not a
		// top-up; a nil ceiling means unlimited.
		return s.quotaRepo.Upsert(ctx, tx, &quotadomain.Quota{
			ID:                              s.genID.Generate().Int64(),
			PartnerCode:                     code,
			RemainingDeductionQuotaPerDay:   req.MaxTransactionAmountPerDay,
			RemainingDeductionQuotaPerMonth: req.MaxTransactionAmountPerMonth,
			CreatedAt:                       now,
			UpdatedAt:                       now,
		})
	})
	if err != nil {
		return nil, s.translateWriteError(code, err)
	}

	s.count("ok")
	resp := s.toResponse(p)
	return &resp, nil
}

func (s *Service) List(ctx context.Context, req domain.ListRequest) (domain.ListResponse, error) {
	pageSize := req.PageSize
	if pageSize < 0 {
		pageSize = 0
	} else if pageSize == 0 {
		pageSize = 50
	}

	filter := domain.ListFilter{
		PartnerCode: strings.ToUpper(strings.TrimSpace(req.PartnerCode)),
	}

	items, err := s.repo.List(ctx, s.db, filter, pagination.Pagination{
		PageToken: req.PageToken,
		PageSize:  int(pageSize),
	})
	if err != nil {
		return domain.ListResponse{}, err
	}

	pageInfo := pagination.BuildCursorPageInfo(items, int(pageSize), func(item *domain.Program) string {
		token, err := pagination.EncodeCursor(pagination.Cursor{
			ID:        snowflake.ID(item.ID).String(),
			CreatedAt: item.CreatedAt.Format(time.RFC3339Nano),
		})
		if err != nil {
			return ""
		}
		return token
	})
	if pageInfo != nil && pageInfo.HasMore && len(items) > int(pageSize) {
		items = items[:pageSize]
	}

	resp := make([]domain.Response, 0, len(items))
	for _, item := range items {
		resp = append(resp, s.toResponse(item))
	}

	out := domain.ListResponse{Programs: resp}
	if pageInfo != nil {
		out.PageInfo = *pageInfo
	}
	return out, nil
}

func (s *Service) Get(ctx context.Context, id string) (*domain.Response, error) {
	programID, err := snowflake.ParseString(strings.TrimSpace(id))
	if err != nil {
		return nil, domain.ErrInvalidID
	}

	item, err := s.repo.FindByID(ctx, s.db, programID.Int64())
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, domain.ErrNotFound
	}

	resp := s.toResponse(item)
	return &resp, nil
}

// Deactivate is the explicit supersede path: it stamps deactivated_at, which
// releases the program's window for reuse.
func (s *Service) Deactivate(ctx context.Context, id string) (*domain.Response, error) {
	programID, err := snowflake.ParseString(strings.TrimSpace(id))
	if err != nil {
		return nil, domain.ErrInvalidID
	}

	now := s.clock.Now(ctx)
	affected, err := s.repo.Deactivate(ctx, s.db, programID.Int64(), now)
	if err != nil {
		return nil, err
	}
	if affected == 0 {
		return nil, domain.ErrNotFound
	}

	item, err := s.repo.FindByID(ctx, s.db, programID.Int64())
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, domain.ErrNotFound
	}

	resp := s.toResponse(item)
	return &resp, nil
}

func (s *Service) translateWriteError(code string, err error) error {
	switch {
	case errors.Is(err, domain.ErrCreateFailed):
		s.count("error")
		return domain.ErrCreateFailed
	case errors.Is(db.TranslateError(err), db.ErrDuplicateKey):
		s.count("conflict")
		return domain.ErrDuplicate
	case errors.Is(db.TranslateError(err), db.ErrForeignKeyViolated):
		s.count("conflict")
		return domain.ErrPartnerNotFound
	default:
		s.count("error")
		s.log.Error("provision program failed", zap.String("partner_code", code), zap.Error(err))
		return err
	}
}

func (s *Service) count(result string) {
	if s.metrics != nil {
		s.metrics.ProgramsProvisioned.WithLabelValues(result).Inc()
	}
}

func (s *Service) toResponse(p *domain.Program) domain.Response {
	return domain.Response{
		ID:                           snowflake.ID(p.ID).String(),
		PartnerCode:                  p.PartnerCode,
		ExchangeRate:                 p.ExchangeRate,
		MinAmountPerTransaction:      p.MinAmountPerTransaction,
		MaxAmountPerTransaction:      p.MaxAmountPerTransaction,
		MaxTransactionAmountPerDay:   p.MaxTransactionAmountPerDay,
		MaxTransactionAmountPerMonth: p.MaxTransactionAmountPerMonth,
		IsActive:                     p.IsActive,
		StartDate:                    p.StartDate,
		EndDate:                      p.EndDate,
		DeactivatedAt:                p.DeactivatedAt,
		CreatedAt:                    p.CreatedAt,
		UpdatedAt:                    p.UpdatedAt,
	}
}
