package domain

import (
	"context"
	"errors"
	"time"
)

type Service interface {
	Create(ctx context.Context, req CreateRequest) (*Response, error)
	List(ctx context.Context) ([]Response, error)
	Get(ctx context.Context, code string) (*Response, error)
	Delete(ctx context.Context, code string) (*Response, error)
}

type CreateRequest struct {
	Code          string         `json:"code"`
	Name          string         `json:"name"`
	SegmentID     *int64         `json:"segment_id"`
	CostPackageID *int64         `json:"cost_package_id"`
	IsAcquirer    bool           `json:"is_acquirer"`
	IsIssuer      bool           `json:"is_issuer"`
	LogoURL       *string        `json:"logo_url"`
	Unit          *string        `json:"unit"`
	Metadata      map[string]any `json:"metadata"`
}

type Response struct {
	Code          string         `json:"code"`
	Name          string         `json:"name"`
	SegmentID     *int64         `json:"segment_id,omitempty"`
	CostPackageID *int64         `json:"cost_package_id,omitempty"`
	IsAcquirer    bool           `json:"is_acquirer"`
	IsIssuer      bool           `json:"is_issuer"`
	LogoURL       *string        `json:"logo_url,omitempty"`
	Unit          *string        `json:"unit,omitempty"`
	Metadata      map[string]any `json:"metadata,omitempty"`
	IsDeleted     bool           `json:"is_deleted"`
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
}

var (
	ErrInvalidCode = errors.New("invalid_code")
	ErrInvalidName = errors.New("invalid_name")
	ErrCodeExists  = errors.New("code_exists")
	ErrNotFound    = errors.New("not_found")
)
