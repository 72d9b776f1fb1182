package domain

import (
	"context"
	"time"

	"github.com/pointraillabs/pointrail/pkg/db/pagination"
	"gorm.io/gorm"
)

type ListFilter struct {
	PartnerCode string
}

type Repository interface {
	Insert(ctx context.Context, db *gorm.DB, discount *Discount) error
	// FindCurrentlyRunning returns the partner's discount whose window covers
	// today, both bounds inclusive, and that is still active. Historical or
	// future windows are not considered, unlike the program overlap rule.
	FindCurrentlyRunning(ctx context.Context, db *gorm.DB, partnerCode string, today time.Time) (*Discount, error)
	FindByCode(ctx context.Context, db *gorm.DB, code string) (*Discount, error)
	List(ctx context.Context, db *gorm.DB, filter ListFilter, page pagination.Pagination) ([]*Discount, error)
	SoftDelete(ctx context.Context, db *gorm.DB, code string, now time.Time) (int64, error)
	ExpireElapsed(ctx context.Context, db *gorm.DB, today time.Time) (int64, error)
}
