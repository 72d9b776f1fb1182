package domain

import "time"

// Quota is the per-partner deduction ledger row. At most one row exists per
// partner code. A NULL remaining balance means unlimited, which is distinct
// from a zero balance.
type Quota struct {
	ID                              int64      `json:"id" gorm:"column:id;primaryKey"`
	PartnerCode                     string     `json:"partner_code" gorm:"column:partner_code;uniqueIndex;size:5;not null"`
	RemainingDeductionQuotaPerDay   *int64     `json:"remaining_deduction_quota_per_day" gorm:"column:remaining_deduction_quota_per_day"`
	RemainingDeductionQuotaPerMonth *int64     `json:"remaining_deduction_quota_per_month" gorm:"column:remaining_deduction_quota_per_month"`
	IsDeleted                       bool       `json:"is_deleted" gorm:"column:is_deleted;not null"`
	DeletedAt                       *time.Time `json:"deleted_at,omitempty" gorm:"column:deleted_at"`
	CreatedAt                       time.Time  `json:"created_at" gorm:"column:created_at;not null"`
	UpdatedAt                       time.Time  `json:"updated_at" gorm:"column:updated_at;not null"`
}

func (Quota) TableName() string { return "partner_quotas" }
