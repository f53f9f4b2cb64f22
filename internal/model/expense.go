package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ExpenseCategory classifies operating expenses (Infraestructura, Personal...).
type ExpenseCategory struct {
	BaseModel
	Name string `gorm:"type:varchar(100);uniqueIndex;not null" json:"name" validate:"required"`
}

// Expense is a single operating outflow not tied to merchandise purchases
// (those enter through batches). AccountingDate is the period the expense
// belongs to, which may differ from when it was recorded: September's power
// bill paid in October still counts against September.
type Expense struct {
	BaseModel
	CategoryID *uuid.UUID       `gorm:"type:uuid;index" json:"category_id,omitempty"`
	Category   *ExpenseCategory `gorm:"foreignKey:CategoryID" json:"category,omitempty"`

	RecordedByID uuid.UUID `gorm:"type:uuid;not null" json:"recorded_by_id"`
	RecordedBy   *User     `gorm:"foreignKey:RecordedByID" json:"recorded_by,omitempty"`

	Amount         decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"amount"`
	Description    string          `gorm:"type:text" json:"description"`
	AccountingDate time.Time       `gorm:"type:date;not null;index" json:"accounting_date"`
}
