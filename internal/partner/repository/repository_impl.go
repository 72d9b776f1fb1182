package repository

import (
	"context"

	"github.com/pointraillabs/pointrail/internal/partner/domain"
	"gorm.io/gorm"
)

type repo struct{}

func Provide() domain.Repository {
	return &repo{}
}

func (r *repo) Insert(ctx context.Context, db *gorm.DB, partner *domain.Partner) error {
	return db.WithContext(ctx).Exec(
		`INSERT INTO partners (code, name, segment_id, cost_package_id, is_acquirer, is_issuer, logo_url, unit, metadata, is_deleted, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		partner.Code,
		partner.Name,
		partner.SegmentID,
		partner.CostPackageID,
		partner.IsAcquirer,
		partner.IsIssuer,
		partner.LogoURL,
		partner.Unit,
		partner.Metadata,
		partner.IsDeleted,
		partner.CreatedAt,
		partner.UpdatedAt,
	).Error
}

func (r *repo) FindByCode(ctx context.Context, db *gorm.DB, code string) (*domain.Partner, error) {
	var p domain.Partner
	err := db.WithContext(ctx).Raw(
		`SELECT code, name, segment_id, cost_package_id, is_acquirer, is_issuer, logo_url, unit, metadata, is_deleted, deleted_at, created_at, updated_at
		 FROM partners WHERE code = ?`,
		code,
	).Scan(&p).Error
	if err != nil {
		return nil, err
	}
	if p.Code == "" {
		return nil, nil
	}
	return &p, nil
}

func (r *repo) FindAll(ctx context.Context, db *gorm.DB) ([]domain.Partner, error) {
	var items []domain.Partner
	err := db.WithContext(ctx).Raw(
		`SELECT code, name, segment_id, cost_package_id, is_acquirer, is_issuer, logo_url, unit, metadata, is_deleted, deleted_at, created_at, updated_at
		 FROM partners WHERE is_deleted = ? ORDER BY created_at ASC`,
		false,
	).Scan(&items).Error
	if err != nil {
		return nil, err
	}
	return items, nil
}

func (r *repo) Update(ctx context.Context, db *gorm.DB, partner *domain.Partner) error {
	if partner == nil {
		return gorm.ErrInvalidData
	}
	return db.WithContext(ctx).Exec(
		`UPDATE partners
		 SET name = ?, segment_id = ?, cost_package_id = ?, is_acquirer = ?, is_issuer = ?, logo_url = ?, unit = ?, metadata = ?, is_deleted = ?, deleted_at = ?, updated_at = ?
		 WHERE code = ?`,
		partner.Name,
		partner.SegmentID,
		partner.CostPackageID,
		partner.IsAcquirer,
		partner.IsIssuer,
		partner.LogoURL,
		partner.Unit,
		partner.Metadata,
		partner.IsDeleted,
		partner.DeletedAt,
		partner.UpdatedAt,
		partner.Code,
	).Error
}
