package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/pointraillabs/pointrail/internal/clock"
	"github.com/pointraillabs/pointrail/internal/discount/domain"
	"github.com/pointraillabs/pointrail/internal/metrics"
	"github.com/pointraillabs/pointrail/pkg/db"
	"github.com/pointraillabs/pointrail/pkg/db/pagination"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const defaultType = "fixed"

// validTypes mirrors the discount_types reference table seeded at migration.
var validTypes = map[string]bool{
	"fixed":      true,
	"percentage": true,
}

type Params struct {
	fx.In

	DB      *gorm.DB
	Log     *zap.Logger
	Clock   clock.Clock
	Repo    domain.Repository
	Metrics *metrics.Metrics `optional:"true"`
}

type Service struct {
	db      *gorm.DB
	log     *zap.Logger
	clock   clock.Clock
	repo    domain.Repository
	metrics *metrics.Metrics
}

func New(p Params) domain.Service {
	return &Service{
		db:      p.DB,
		log:     p.Log.Named("discount.service"),
		clock:   p.Clock,
		repo:    p.Repo,
		metrics: p.Metrics,
	}
}

// Create provisions a discount. At most one discount per partner may be
// running today; windows entirely in the past or future do not block. The
// window bounds themselves are not cross-checked against each other, only
// their parseability is guaranteed by the caller.
func (s *Service) Create(ctx context.Context, req domain.CreateRequest) (*domain.Response, error) {
	code := strings.ToUpper(strings.TrimSpace(req.Code))
	if code == "" || len(code) > 10 {
		return nil, domain.ErrInvalidCode
	}

	partnerCode := strings.ToUpper(strings.TrimSpace(req.PartnerCode))
	if partnerCode == "" || len(partnerCode) > 5 {
		return nil, domain.ErrInvalidPartnerCode
	}

	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, domain.ErrInvalidName
	}

	if req.Amount < 0 {
		return nil, domain.ErrInvalidAmount
	}

	discountType := strings.ToLower(strings.TrimSpace(req.Type))
	if discountType == "" {
		discountType = defaultType
	}
	if !validTypes[discountType] {
		return nil, domain.ErrInvalidType
	}

	now := s.clock.Now(ctx)
	running, err := s.repo.FindCurrentlyRunning(ctx, s.db, partnerCode, now)
	if err != nil {
		s.count("error")
		s.log.Error("running check failed", zap.String("partner_code", partnerCode), zap.Error(err))
		return nil, err
	}
	if running != nil {
		s.count("conflict")
		return nil, domain.ErrAlreadyRunning
	}

	d := &domain.Discount{
		Code:        code,
		PartnerCode: partnerCode,
		Name:        name,
		Amount:      req.Amount,
		Type:        discountType,
		IsActive:    true,
		StartDate:   req.StartDate,
		EndDate:     req.EndDate,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.repo.Insert(ctx, s.db, d); err != nil {
		switch {
		case errors.Is(err, domain.ErrCreateFailed):
			s.count("error")
			return nil, domain.ErrCreateFailed
		case errors.Is(db.TranslateError(err), db.ErrDuplicateKey):
			s.count("conflict")
			return nil, domain.ErrCodeExists
		case errors.Is(db.TranslateError(err), db.ErrForeignKeyViolated):
			s.count("conflict")
			return nil, domain.ErrPartnerNotFound
		default:
			s.count("error")
			s.log.Error("insert discount failed", zap.String("code", code), zap.Error(err))
			return nil, err
		}
	}

	s.count("ok")
	resp := s.toResponse(d)
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

	pageInfo := pagination.BuildCursorPageInfo(items, int(pageSize), func(item *domain.Discount) string {
		token, err := pagination.EncodeCursor(pagination.Cursor{
			ID:        item.Code,
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

	out := domain.ListResponse{Discounts: resp}
	if pageInfo != nil {
		out.PageInfo = *pageInfo
	}
	return out, nil
}

func (s *Service) Get(ctx context.Context, code string) (*domain.Response, error) {
	code = strings.ToUpper(strings.TrimSpace(code))
	if code == "" {
		return nil, domain.ErrInvalidCode
	}

	item, err := s.repo.FindByCode(ctx, s.db, code)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, domain.ErrNotFound
	}

	resp := s.toResponse(item)
	return &resp, nil
}

func (s *Service) Delete(ctx context.Context, code string) (*domain.Response, error) {
	code = strings.ToUpper(strings.TrimSpace(code))
	if code == "" {
		return nil, domain.ErrInvalidCode
	}

	now := s.clock.Now(ctx)
	affected, err := s.repo.SoftDelete(ctx, s.db, code, now)
	if err != nil {
		return nil, err
	}
	if affected == 0 {
		return nil, domain.ErrNotFound
	}

	item, err := s.repo.FindByCode(ctx, s.db, code)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, domain.ErrNotFound
	}

	resp := s.toResponse(item)
	return &resp, nil
}

func (s *Service) count(result string) {
	if s.metrics != nil {
		s.metrics.DiscountsProvisioned.WithLabelValues(result).Inc()
	}
}

func (s *Service) toResponse(d *domain.Discount) domain.Response {
	return domain.Response{
		Code:          d.Code,
		PartnerCode:   d.PartnerCode,
		Name:          d.Name,
		Amount:        d.Amount,
		Type:          d.Type,
		IsActive:      d.IsActive,
		StartDate:     d.StartDate,
		EndDate:       d.EndDate,
		DeactivatedAt: d.DeactivatedAt,
		CreatedAt:     d.CreatedAt,
		UpdatedAt:     d.UpdatedAt,
	}
}
