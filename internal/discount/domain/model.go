package domain

import "time"

// Discount is a promotional deduction for a partner, keyed by its own code.
// Only one discount per partner may be running on any given day; rows whose
// window is elsewhere in time do not block each other.
type Discount struct {
	Code          string     `json:"code" gorm:"column:code;primaryKey;size:10"`
	PartnerCode   string     `json:"partner_code" gorm:"column:partner_code;size:5;not null;index"`
	Name          string     `json:"name" gorm:"column:name;not null"`
	Amount        float64    `json:"amount" gorm:"column:amount;not null"`
	Type          string     `json:"type" gorm:"column:type;size:16;not null"`
	IsActive      bool       `json:"is_active" gorm:"column:is_active;not null"`
	StartDate     time.Time  `json:"start_date" gorm:"column:start_date;not null"`
	EndDate       time.Time  `json:"end_date" gorm:"column:end_date;not null"`
	DeactivatedAt *time.Time `json:"deactivated_at,omitempty" gorm:"column:deactivated_at"`
	CreatedAt     time.Time  `json:"created_at" gorm:"column:created_at;not null"`
	UpdatedAt     time.Time  `json:"updated_at" gorm:"column:updated_at;not null"`
}

func (Discount) TableName() string { return "discount_programs" }
