package domain

import (
	"context"
	"errors"
	"time"
)

type Service interface {
	Upsert(ctx context.Context, req UpsertRequest) (*Response, error)
	Deduct(ctx context.Context, req DeductRequest) (*Response, error)
	Get(ctx context.Context, partnerCode string) (*Response, error)
}

type UpsertRequest struct {
	PartnerCode            string `json:"partner_code"`
	RemainingQuotaPerDay   *int64 `json:"remaining_quota_per_day"`
	RemainingQuotaPerMonth *int64 `json:"remaining_quota_per_month"`
}

type DeductRequest struct {
	PartnerCode           string `json:"partner_code"`
	DailyQuotaDeduction   *int64 `json:"daily_quota_deduction"`
	MonthlyQuotaDeduction *int64 `json:"monthly_quota_deduction"`
}

type Response struct {
	PartnerCode            string    `json:"partner_code"`
	RemainingQuotaPerDay   *int64    `json:"remaining_quota_per_day"`
	RemainingQuotaPerMonth *int64    `json:"remaining_quota_per_month"`
	CreatedAt              time.Time `json:"created_at"`
	UpdatedAt              time.Time `json:"updated_at"`
}

var (
	ErrInvalidPartnerCode = errors.New("invalid_partner_code")
	ErrInvalidQuota       = errors.New("invalid_quota")
	ErrNoDeduction        = errors.New("no_deduction")
	ErrPartnerNotFound    = errors.New("partner_not_found")
	ErrNotFound           = errors.New("not_found")
)
