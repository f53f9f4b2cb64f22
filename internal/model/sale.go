package model

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// PaymentMethod is configured by the administrator (Efectivo, Debito, QR...)
// so new payment channels can be accepted without code changes.
type PaymentMethod struct {
	BaseModel
	Name     string `gorm:"type:varchar(100);uniqueIndex;not null" json:"name" validate:"required"`
	IsActive bool   `gorm:"default:true" json:"is_active"`
}

// Sale is the header of one completed checkout (a ticket).
//
// A sale is immutable after creation with a single exception: ClosingID is
// backfilled once, when a cash closing settles it. ClosingID == nil means
// the sale is still pending for the next closing.
type Sale struct {
	BaseModel
	Discount decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0" json:"discount"`
	// Total = max(0, sum(line subtotals) - discount), always recomputed
	// server-side.
	Total decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0" json:"total"`

	PaymentMethodID uuid.UUID      `gorm:"type:uuid;not null;index" json:"payment_method_id"`
	PaymentMethod   *PaymentMethod `gorm:"foreignKey:PaymentMethodID" json:"payment_method,omitempty"`

	SellerID uuid.UUID `gorm:"type:uuid;not null" json:"seller_id"`
	Seller   *User     `gorm:"foreignKey:SellerID" json:"seller,omitempty"`

	CustomerID *uuid.UUID `gorm:"type:uuid;index" json:"customer_id,omitempty"`
	Customer   *Customer  `gorm:"foreignKey:CustomerID" json:"customer,omitempty"`

	ClosingID *uuid.UUID   `gorm:"type:uuid;index" json:"closing_id,omitempty"`
	Closing   *CashClosing `gorm:"foreignKey:ClosingID" json:"closing,omitempty"`

	Lines []SaleLine `gorm:"constraint:OnDelete:CASCADE" json:"lines,omitempty"`
}

// IsPending reports whether the sale has not yet been settled by a cash closing.
func (s *Sale) IsPending() bool {
	return s.ClosingID == nil
}

// SaleLine is one product line inside a sale. Price and cost are snapshots
// taken at sale time: the product's list price may change later, and the
// cost is the weighted average across the batches the line consumed. Both
// are needed for honest profitability reporting.
type SaleLine struct {
	BaseModel
	SaleID    uuid.UUID `gorm:"type:uuid;not null;index" json:"sale_id"`
	ProductID uuid.UUID `gorm:"type:uuid;not null" json:"product_id"`
	Product   *Product  `gorm:"foreignKey:ProductID" json:"product,omitempty"`

	Quantity  decimal.Decimal `gorm:"type:decimal(12,3);not null" json:"quantity"`
	UnitPrice decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"unit_price"`
	UnitCost  decimal.Decimal `gorm:"type:decimal(12,4);not null" json:"unit_cost"`
	Subtotal  decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"subtotal"`
}
