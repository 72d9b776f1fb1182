package domain

import (
	"context"
	"time"

	"gorm.io/gorm"
)

type Repository interface {
	// Upsert inserts the row or overwrites both remaining balances on
	// partner-code conflict. Never duplicates.
	Upsert(ctx context.Context, db *gorm.DB, quota *Quota) error
	// Deduct subtracts the provided deltas in one UPDATE. A NULL balance is
	// left NULL. Returns the number of rows touched.
	Deduct(ctx context.Context, db *gorm.DB, partnerCode string, perDay, perMonth *int64, now time.Time) (int64, error)
	FindByPartnerCode(ctx context.Context, db *gorm.DB, partnerCode string) (*Quota, error)
}
