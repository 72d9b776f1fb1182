package repository

import (
	"context"
	"time"

	"github.com/pointraillabs/pointrail/internal/discount/domain"
	"github.com/pointraillabs/pointrail/pkg/db/pagination"
	"gorm.io/gorm"
)

type repo struct{}

func Provide() domain.Repository {
	return &repo{}
}

func (r *repo) Insert(ctx context.Context, db *gorm.DB, discount *domain.Discount) error {
	result := db.WithContext(ctx).Exec(
		`INSERT INTO discount_programs (code, partner_code, name, amount, type, is_active, start_date, end_date, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		discount.Code,
		discount.PartnerCode,
		discount.Name,
		discount.Amount,
		discount.Type,
		discount.IsActive,
		discount.StartDate,
		discount.EndDate,
		discount.CreatedAt,
		discount.UpdatedAt,
	)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domain.ErrCreateFailed
	}
	return nil
}

func (r *repo) FindCurrentlyRunning(ctx context.Context, db *gorm.DB, partnerCode string, today time.Time) (*domain.Discount, error) {
	// Discount windows are calendar-day inclusive on both ends; the stored
	// bounds are midnight values, so the probe time must be floored to the
	// day or a discount would stop blocking during its final day.
	today = today.Truncate(24 * time.Hour)

	var d domain.Discount
	err := db.WithContext(ctx).Raw(
		`SELECT code, partner_code, name, amount, type, is_active, start_date, end_date, deactivated_at, created_at, updated_at
		 FROM discount_programs
		 WHERE partner_code = ? AND start_date <= ? AND end_date >= ? AND is_active = ?
		 LIMIT 1`,
		partnerCode,
		today,
		today,
		true,
	).Scan(&d).Error
	if err != nil {
		return nil, err
	}
	if d.Code == "" {
		return nil, nil
	}
	return &d, nil
}

func (r *repo) FindByCode(ctx context.Context, db *gorm.DB, code string) (*domain.Discount, error) {
	var d domain.Discount
	err := db.WithContext(ctx).Raw(
		`SELECT code, partner_code, name, amount, type, is_active, start_date, end_date, deactivated_at, created_at, updated_at
		 FROM discount_programs WHERE code = ?`,
		code,
	).Scan(&d).Error
	if err != nil {
		return nil, err
	}
	if d.Code == "" {
		return nil, nil
	}
	return &d, nil
}

func (r *repo) List(ctx context.Context, db *gorm.DB, filter domain.ListFilter, page pagination.Pagination) ([]*domain.Discount, error) {
	var items []*domain.Discount
	stmt := db.WithContext(ctx).Model(&domain.Discount{})

	if filter.PartnerCode != "" {
		stmt = stmt.Where("partner_code = ?", filter.PartnerCode)
	}

	if page.PageToken != "" {
		cursor, err := pagination.DecodeCursor(page.PageToken)
		if err != nil {
			return nil, err
		}
		createdAt, err := time.Parse(time.RFC3339Nano, cursor.CreatedAt)
		if err != nil {
			return nil, pagination.ErrInvalidCursor
		}
		stmt = stmt.Where("created_at < ? OR (created_at = ? AND code < ?)", createdAt, createdAt, cursor.ID)
	}

	stmt = stmt.Order("created_at desc, code desc")
	if page.PageSize > 0 {
		stmt = stmt.Limit(page.PageSize + 1)
	}

	if err := stmt.Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (r *repo) SoftDelete(ctx context.Context, db *gorm.DB, code string, now time.Time) (int64, error) {
	result := db.WithContext(ctx).Exec(
		`UPDATE discount_programs
		 SET is_active = ?, deactivated_at = ?, updated_at = ?
		 WHERE code = ? AND is_active = ?`,
		false, now, now, code, true,
	)
	if result.Error != nil {
		return 0, result.Error
	}
	return result.RowsAffected, nil
}

func (r *repo) ExpireElapsed(ctx context.Context, db *gorm.DB, today time.Time) (int64, error) {
	// end_date is inclusive: a discount stays active through its final day
	// and expires at the first sweep after it.
	dayStart := today.Truncate(24 * time.Hour)

	result := db.WithContext(ctx).Exec(
		`UPDATE discount_programs
		 SET is_active = ?, updated_at = ?
		 WHERE is_active = ? AND end_date < ?`,
		false, today, true, dayStart,
	)
	if result.Error != nil {
		return 0, result.Error
	}
	return result.RowsAffected, nil
}
