package service

import (
	"context"
	"errors"
	"strings"

	"github.com/pointraillabs/pointrail/internal/clock"
	"github.com/pointraillabs/pointrail/internal/partner/domain"
	"github.com/pointraillabs/pointrail/pkg/db"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type Params struct {
	fx.In

	DB    *gorm.DB
	Log   *zap.Logger
	Clock clock.Clock
	Repo  domain.Repository
}

type Service struct {
	db    *gorm.DB
	log   *zap.Logger
	clock clock.Clock
	repo  domain.Repository
}

func New(p Params) domain.Service {
	return &Service{
		db:    p.DB,
		log:   p.Log.Named("partner.service"),
		clock: p.Clock,
		repo:  p.Repo,
	}
}

func (s *Service) Create(ctx context.Context, req domain.CreateRequest) (*domain.Response, error) {
	code := strings.ToUpper(strings.TrimSpace(req.Code))
	if code == "" || len(code) > 5 {
		return nil, domain.ErrInvalidCode
	}

	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, domain.ErrInvalidName
	}

	now := s.clock.Now(ctx)
	p := &domain.Partner{
		Code:          code,
		Name:          name,
		SegmentID:     req.SegmentID,
		CostPackageID: req.CostPackageID,
		IsAcquirer:    req.IsAcquirer,
		IsIssuer:      req.IsIssuer,
		LogoURL:       req.LogoURL,
		Unit:          req.Unit,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if req.Metadata != nil {
		p.Metadata = datatypes.JSONMap(req.Metadata)
	}

	if err := s.repo.Insert(ctx, s.db, p); err != nil {
		if errors.Is(db.TranslateError(err), db.ErrDuplicateKey) {
			return nil, domain.ErrCodeExists
		}
		s.log.Error("insert partner failed", zap.String("code", code), zap.Error(err))
		return nil, err
	}

	resp := s.toResponse(p)
	return &resp, nil
}

func (s *Service) List(ctx context.Context) ([]domain.Response, error) {
	items, err := s.repo.FindAll(ctx, s.db)
	if err != nil {
		return nil, err
	}

	resp := make([]domain.Response, 0, len(items))
	for i := range items {
		resp = append(resp, s.toResponse(&items[i]))
	}
	return resp, nil
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

	item, err := s.repo.FindByCode(ctx, s.db, code)
	if err != nil {
		return nil, err
	}
	if item == nil || item.IsDeleted {
		return nil, domain.ErrNotFound
	}

	now := s.clock.Now(ctx)
	item.IsDeleted = true
	item.DeletedAt = &now
	item.UpdatedAt = now
	if err := s.repo.Update(ctx, s.db, item); err != nil {
		return nil, err
	}

	resp := s.toResponse(item)
	return &resp, nil
}

func (s *Service) toResponse(p *domain.Partner) domain.Response {
	resp := domain.Response{
		Code:          p.Code,
		Name:          p.Name,
		SegmentID:     p.SegmentID,
		CostPackageID: p.CostPackageID,
		IsAcquirer:    p.IsAcquirer,
		IsIssuer:      p.IsIssuer,
		LogoURL:       p.LogoURL,
		Unit:          p.Unit,
		IsDeleted:     p.IsDeleted,
		CreatedAt:     p.CreatedAt,
		UpdatedAt:     p.UpdatedAt,
	}
	if len(p.Metadata) > 0 {
		resp.Metadata = map[string]any(p.Metadata)
	}
	return resp
}
