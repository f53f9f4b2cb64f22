package model

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CashClosing is one register reconciliation event ("cierre de caja").
// It snapshots the system-computed totals of every pending sale at closing
// time against the physically counted cash, and becomes the settler of
// those sales. Closings are append-only audit records: never updated,
// never deleted.
type CashClosing struct {
	BaseModel
	UserID uuid.UUID `gorm:"type:uuid;not null" json:"user_id"`
	User   *User     `gorm:"foreignKey:UserID" json:"user,omitempty"`

	SystemTotal  decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0" json:"system_total"`
	CountedTotal decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0" json:"counted_total"`
	// Variance = CountedTotal - SystemTotal. Negative means cash is missing.
	Variance decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0" json:"variance"`

	Notes string `gorm:"type:text" json:"notes"`

	Details []ClosingDetail `gorm:"constraint:OnDelete:CASCADE" json:"details,omitempty"`
	Sales   []Sale          `gorm:"foreignKey:ClosingID" json:"sales,omitempty"`
}

func (CashClosing) TableName() string {
	return "cash_closings"
}

// ClosingDetail breaks a closing down by payment method so a discrepancy
// can be traced to its source (cash drawer vs card terminal vs QR).
// Unique per (closing, payment method).
type ClosingDetail struct {
	BaseModel
	ClosingID       uuid.UUID      `gorm:"type:uuid;not null;index;uniqueIndex:idx_closing_method" json:"closing_id"`
	PaymentMethodID uuid.UUID      `gorm:"type:uuid;not null;uniqueIndex:idx_closing_method" json:"payment_method_id"`
	PaymentMethod   *PaymentMethod `gorm:"foreignKey:PaymentMethodID" json:"payment_method,omitempty"`

	SystemAmount  decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"system_amount"`
	CountedAmount decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"counted_amount"`
	Variance      decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"variance"`
}
