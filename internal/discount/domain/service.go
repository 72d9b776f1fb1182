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
	Get(ctx context.Context, code string) (*Response, error)
	Delete(ctx context.Context, code string) (*Response, error)
}

type CreateRequest struct {
	Code        string    `json:"code"`
	PartnerCode string    `json:"partner_code"`
	Name        string    `json:"name"`
	Amount      float64   `json:"amount"`
	Type        string    `json:"type"`
	StartDate   time.Time `json:"start_date"`
	EndDate     time.Time `json:"end_date"`
}

type ListRequest struct {
	PartnerCode string
	PageToken   string
	PageSize    int32
}

type ListResponse struct {
	PageInfo  pagination.PageInfo `json:"page_info"`
	Discounts []Response          `json:"discounts"`
}

type Response struct {
	Code          string     `json:"code"`
	PartnerCode   string     `json:"partner_code"`
	Name          string     `json:"name"`
	Amount        float64    `json:"amount"`
	Type          string     `json:"type"`
	IsActive      bool       `json:"is_active"`
	StartDate     time.Time  `json:"start_date"`
	EndDate       time.Time  `json:"end_date"`
	DeactivatedAt *time.Time `json:"deactivated_at,omitempty"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`
}

var (
	ErrInvalidCode        = errors.New("invalid_code")
	ErrInvalidPartnerCode = errors.New("invalid_partner_code")
	ErrInvalidName        = errors.New("invalid_name")
	ErrInvalidAmount      = errors.New("invalid_amount")
	ErrInvalidType        = errors.New("invalid_type")
	ErrAlreadyRunning     = errors.New("discount_already_running")
	ErrCodeExists         = errors.New("code_exists")
	ErrPartnerNotFound    = errors.New("partner_not_found")
	ErrCreateFailed       = errors.New("create_failed")
	ErrNotFound           = errors.New("not_found")
)
