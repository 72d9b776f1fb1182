package repository

import (
	"context"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/pointraillabs/pointrail/internal/program/domain"
	"github.com/pointraillabs/pointrail/pkg/db/pagination"
	"gorm.io/gorm"
)

type repo struct{}

func Provide() domain.Repository {
	return &repo{}
}

func (r *repo) Insert(ctx context.Context, db *gorm.DB, program *domain.Program) error {
	result := db.WithContext(ctx).Exec(
		`INSERT INTO partner_programs (id, partner_code, exchange_rate, min_amount_per_transaction, max_amount_per_transaction, max_transaction_amount_per_day, max_transaction_amount_per_month, is_active, start_date, end_date, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		program.ID,
		program.PartnerCode,
		program.ExchangeRate,
		program.MinAmountPerTransaction,
		program.MaxAmountPerTransaction,
		program.MaxTransactionAmountPerDay,
		program.MaxTransactionAmountPerMonth,
		program.IsActive,
		program.StartDate,
		program.EndDate,
		program.CreatedAt,
		program.UpdatedAt,
	)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domain.ErrCreateFailed
	}
	return nil
}

func (r *repo) FindActiveOverlap(ctx context.Context, db *gorm.DB, partnerCode string, start, end time.Time) (*domain.Program, error) {
	var p domain.Program
	// A window [S,E] conflicts when an existing bound falls inside it, unless
	// the existing row was explicitly deactivated. An inactive row with a
	// NULL deactivated_at keeps blocking.
	err := db.WithContext(ctx).Raw(
		`SELECT id, partner_code, exchange_rate, min_amount_per_transaction, max_amount_per_transaction, max_transaction_amount_per_day, max_transaction_amount_per_month, is_active, start_date, end_date, deactivated_at, created_at, updated_at
		 FROM partner_programs
		 WHERE partner_code = ?
		   AND ((start_date BETWEEN ? AND ?) OR (end_date BETWEEN ? AND ?))
		   AND NOT (is_active = ? AND deactivated_at IS NOT NULL)
		 LIMIT 1`,
		partnerCode,
		start, end,
		start, end,
		false,
	).Scan(&p).Error
	if err != nil {
		return nil, err
	}
	if p.ID == 0 {
		return nil, nil
	}
	return &p, nil
}

func (r *repo) FindByID(ctx context.Context, db *gorm.DB, id int64) (*domain.Program, error) {
	var p domain.Program
	err := db.WithContext(ctx).Raw(
		`SELECT id, partner_code, exchange_rate, min_amount_per_transaction, max_amount_per_transaction, max_transaction_amount_per_day, max_transaction_amount_per_month, is_active, start_date, end_date, deactivated_at, created_at, updated_at
		 FROM partner_programs WHERE id = ?`,
		id,
	).Scan(&p).Error
	if err != nil {
		return nil, err
	}
	if p.ID == 0 {
		return nil, nil
	}
	return &p, nil
}

func (r *repo) List(ctx context.Context, db *gorm.DB, filter domain.ListFilter, page pagination.Pagination) ([]*domain.Program, error) {
	var items []*domain.Program
	stmt := db.WithContext(ctx).Model(&domain.Program{})

	if filter.PartnerCode != "" {
		stmt = stmt.Where("partner_code = ?", filter.PartnerCode)
	}

	if page.PageToken != "" {
		cursor, err := pagination.DecodeCursor(page.PageToken)
		if err != nil {
			return nil, err
		}
		id, err := snowflake.ParseString(cursor.ID)
		if err != nil {
			return nil, pagination.ErrInvalidCursor
		}
		createdAt, err := time.Parse(time.RFC3339Nano, cursor.CreatedAt)
		if err != nil {
			return nil, pagination.ErrInvalidCursor
		}
		stmt = stmt.Where("created_at < ? OR (created_at = ? AND id < ?)", createdAt, createdAt, id.Int64())
	}

	stmt = stmt.Order("created_at desc, id desc")
	if page.PageSize > 0 {
		stmt = stmt.Limit(page.PageSize + 1)
	}

	if err := stmt.Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (r *repo) Deactivate(ctx context.Context, db *gorm.DB, id int64, now time.Time) (int64, error) {
	result := db.WithContext(ctx).Exec(
		`UPDATE partner_programs
		 SET is_active = ?, deactivated_at = ?, updated_at = ?
		 WHERE id = ? AND deactivated_at IS NULL`,
		false, now, now, id,
	)
	if result.Error != nil {
		return 0, result.Error
	}
	return result.RowsAffected, nil
}

func (r *repo) ExpireElapsed(ctx context.Context, db *gorm.DB, today time.Time) (int64, error) {
	// deactivated_at stays NULL here: a date-expired program still blocks its
	// window until someone deactivates it explicitly.
	result := db.WithContext(ctx).Exec(
		`UPDATE partner_programs
		 SET is_active = ?, updated_at = ?
		 WHERE is_active = ? AND end_date < ?`,
		false, today, true, today,
	)
	if result.Error != nil {
		return 0, result.Error
	}
	return result.RowsAffected, nil
}
