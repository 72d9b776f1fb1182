package domain

import "time"

// Program is one commercial agreement window for a partner. Windows for the
// same partner must not overlap while the older row is still considered live:
// a row only stops blocking once it is inactive AND carries a deactivation
// timestamp. Rows are never hard-deleted.
type Program struct {
	ID                           int64      `json:"id" gorm:"column:id;primaryKey"`
	PartnerCode                  string     `json:"partner_code" gorm:"column:partner_code;size:5;not null;index"`
	ExchangeRate                 int64      `json:"exchange_rate" gorm:"column:exchange_rate;not null"`
	MinAmountPerTransaction      *int64     `json:"min_amount_per_transaction,omitempty" gorm:"column:min_amount_per_transaction"`
	MaxAmountPerTransaction      *int64     `json:"max_amount_per_transaction,omitempty" gorm:"column:max_amount_per_transaction"`
	MaxTransactionAmountPerDay   *int64     `json:"max_transaction_amount_per_day,omitempty" gorm:"column:max_transaction_amount_per_day"`
	MaxTransactionAmountPerMonth *int64     `json:"max_transaction_amount_per_month,omitempty" gorm:"column:max_transaction_amount_per_month"`
	IsActive                     bool       `json:"is_active" gorm:"column:is_active;not null"`
	StartDate                    time.Time  `json:"start_date" gorm:"column:start_date;not null"`
	EndDate                      time.Time  `json:"end_date" gorm:"column:end_date;not null"`
	DeactivatedAt                *time.Time `json:"deactivated_at,omitempty" gorm:"column:deactivated_at"`
	CreatedAt                    time.Time  `json:"created_at" gorm:"column:created_at;not null"`
	UpdatedAt                    time.Time  `json:"updated_at" gorm:"column:updated_at;not null"`
}

func (Program) TableName() string { return "partner_programs" }
