package domain

import (
	"time"

	"gorm.io/datatypes"
)

// Partner is an issuer/acquirer organization in the network. Rows are soft
// deleted only; the code stays reserved forever.
type Partner struct {
	Code          string            `json:"code" gorm:"column:code;primaryKey;size:5"`
	Name          string            `json:"name" gorm:"column:name;not null"`
	SegmentID     *int64            `json:"segment_id,omitempty" gorm:"column:segment_id"`
	CostPackageID *int64            `json:"cost_package_id,omitempty" gorm:"column:cost_package_id"`
	IsAcquirer    bool              `json:"is_acquirer" gorm:"column:is_acquirer;not null"`
	IsIssuer      bool              `json:"is_issuer" gorm:"column:is_issuer;not null"`
	LogoURL       *string           `json:"logo_url,omitempty" gorm:"column:logo_url"`
	Unit          *string           `json:"unit,omitempty" gorm:"column:unit"`
	Metadata      datatypes.JSONMap `json:"metadata,omitempty" gorm:"column:metadata"`
	IsDeleted     bool              `json:"is_deleted" gorm:"column:is_deleted;not null"`
	DeletedAt     *time.Time        `json:"deleted_at,omitempty" gorm:"column:deleted_at"`
	CreatedAt     time.Time         `json:"created_at" gorm:"column:created_at;not null"`
	UpdatedAt     time.Time         `json:"updated_at" gorm:"column:updated_at;not null"`
}

func (Partner) TableName() string { return "partners" }
