package repository

import (
	"context"
	"strings"
	"time"

	"github.com/pointraillabs/pointrail/internal/quota/domain"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type repo struct{}

func Provide() domain.Repository {
	return &repo{}
}

func (r *repo) Upsert(ctx context.Context, db *gorm.DB, quota *domain.Quota) error {
	return db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "partner_code"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"remaining_deduction_quota_per_day",
			"remaining_deduction_quota_per_month",
			"updated_at",
		}),
	}).Create(quota).Error
}

func (r *repo) Deduct(ctx context.Context, db *gorm.DB, partnerCode string, perDay, perMonth *int64, now time.Time) (int64, error) {
	sets := make([]string, 0, 3)
	args := make([]any, 0, 4)

	// A NULL balance means unlimited and stays NULL; only finite balances
	// move. Balances may go negative, enforcement lives with the caller.
	if perDay != nil {
		sets = append(sets, "remaining_deduction_quota_per_day = CASE WHEN remaining_deduction_quota_per_day IS NULL THEN NULL ELSE remaining_deduction_quota_per_day - ? END")
		args = append(args, *perDay)
	}
	if perMonth != nil {
		sets = append(sets, "remaining_deduction_quota_per_month = CASE WHEN remaining_deduction_quota_per_month IS NULL THEN NULL ELSE remaining_deduction_quota_per_month - ? END")
		args = append(args, *perMonth)
	}
	if len(sets) == 0 {
		return 0, nil
	}

	sets = append(sets, "updated_at = ?")
	args = append(args, now, partnerCode)

	result := db.WithContext(ctx).Exec(
		"UPDATE partner_quotas SET "+strings.Join(sets, ", ")+" WHERE partner_code = ?",
		args...,
	)
	if result.Error != nil {
		return 0, result.Error
	}
	return result.RowsAffected, nil
}

func (r *repo) FindByPartnerCode(ctx context.Context, db *gorm.DB, partnerCode string) (*domain.Quota, error) {
	var q domain.Quota
	err := db.WithContext(ctx).Raw(
		`SELECT id, partner_code, remaining_deduction_quota_per_day, remaining_deduction_quota_per_month, is_deleted, deleted_at, created_at, updated_at
		 FROM partner_quotas WHERE partner_code = ?`,
		partnerCode,
	).Scan(&q).Error
	if err != nil {
		return nil, err
	}
	if q.ID == 0 {
		return nil, nil
	}
	return &q, nil
}
