package domain

import (
	"context"
	"errors"
	"time"

	"github.com/pointraillabs/pointrail/pkg/db/pagination"
)

type Service interface {
	Create(ctx context.Context, req CreateRequest) (*Response, error)
	List(ctx context.Context, req ListRequest) (ListResponse, error)
	Get(ctx context.Context, id string) (*Response, error)
	Deactivate(ctx context.Context, id string) (*Response, error)
}

type CreateRequest struct {
	PartnerCode                  string    `json:"partner_code"`
	ExchangeRate                 int64     `json:"exchange_rate"`
	MinAmountPerTransaction      *int64    `json:"min_amount_per_transaction"`
	MaxAmountPerTransaction      *int64    `json:"max_amount_per_transaction"`
	MaxTransactionAmountPerDay   *int64    `json:"max_transaction_amount_per_day"`
	MaxTransactionAmountPerMonth *int64    `json:"max_transaction_amount_per_month"`
	StartDate                    time.Time `json:"start_date"`
	EndDate                      time.Time `json:"end_date"`
}

type ListRequest struct {
	PartnerCode string
	PageToken   string
	PageSize    int32
}

type ListResponse struct {
	PageInfo pagination.PageInfo `json:"page_info"`
	Programs []Response          `json:"programs"`
}

type Response struct {
	ID                           string     `json:"id"`
	PartnerCode                  string     `json:"partner_code"`
	ExchangeRate                 int64      `json:"exchange_rate"`
	MinAmountPerTransaction      *int64     `json:"min_amount_per_transaction,omitempty"`
	MaxAmountPerTransaction      *int64     `json:"max_amount_per_transaction,omitempty"`
	MaxTransactionAmountPerDay   *int64     `json:"max_transaction_amount_per_day,omitempty"`
	MaxTransactionAmountPerMonth *int64     `json:"max_transaction_amount_per_month,omitempty"`
	IsActive                     bool       `json:"is_active"`
	StartDate                    time.Time  `json:"start_date"`
	EndDate                      time.Time  `json:"end_date"`
	DeactivatedAt                *time.Time `json:"deactivated_at,omitempty"`
	CreatedAt                    time.Time  `json:"created_at"`
	UpdatedAt                    time.Time  `json:"updated_at"`
}

var (
	ErrInvalidPartnerCode  = errors.New("invalid_partner_code")
	ErrInvalidExchangeRate = errors.New("invalid_exchange_rate")
	ErrInvalidAmount       = errors.New("invalid_amount")
	ErrInvalidWindow       = errors.New("invalid_window")
	ErrInvalidID           = errors.New("invalid_id")
	ErrOverlap             = errors.New("program_overlap")
	ErrDuplicate           = errors.New("duplicate_program")
	ErrPartnerNotFound     = errors.New("partner_not_found")
	ErrCreateFailed        = errors.New("create_failed")
	ErrNotFound            = errors.New("not_found")
)
