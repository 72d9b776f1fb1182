package domain

import (
	"context"

	"gorm.io/gorm"
)

type Repository interface {
	Insert(ctx context.Context, db *gorm.DB, partner *Partner) error
	FindByCode(ctx context.Context, db *gorm.DB, code string) (*Partner, error)
	FindAll(ctx context.Context, db *gorm.DB) ([]Partner, error)
	Update(ctx context.Context, db *gorm.DB, partner *Partner) error
}
