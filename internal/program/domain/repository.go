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
	Insert(ctx context.Context, db *gorm.DB, program *Program) error
	// FindActiveOverlap returns the first row whose window overlaps
	// [start, end] and that has not been explicitly deactivated. Inactive
	// rows with a NULL deactivated_at still count as blocking.
	FindActiveOverlap(ctx context.Context, db *gorm.DB, partnerCode string, start, end time.Time) (*Program, error)
	FindByID(ctx context.Context, db *gorm.DB, id int64) (*Program, error)
	List(ctx context.Context, db *gorm.DB, filter ListFilter, page pagination.Pagination) ([]*Program, error)
	// Deactivate marks the row inactive with an explicit deactivation
	// timestamp, releasing its window for reuse.
	Deactivate(ctx context.Context, db *gorm.DB, id int64, now time.Time) (int64, error)
	// ExpireElapsed flips rows whose window has passed to inactive without
	// touching deactivated_at; expired rows keep blocking their window.
	ExpireElapsed(ctx context.Context, db *gorm.DB, today time.Time) (int64, error)
}
