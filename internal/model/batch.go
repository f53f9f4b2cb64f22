package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Batch is one receipt of inventory for a product (a "lote"). Each batch
// carries its own purchase cost and optional expiry date, and is drawn down
// as units are sold.
//
// Invariant: Remaining >= 0. Remaining is decremented only by sale
// settlement; it is never increased after creation. A batch may be deleted
// outright to correct a data-entry mistake.
type Batch struct {
	BaseModel
	ProductID uuid.UUID `gorm:"type:uuid;not null;index" json:"product_id" validate:"uuid_required"`
	Product   *Product  `gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE" json:"product,omitempty" validate:"-"`

	// Quantity still available in this batch. 3 decimal places so bulk
	// goods can be sold fractionally (e.g. 1.500 kg).
	Remaining decimal.Decimal `gorm:"type:decimal(12,3);not null" json:"remaining"`

	// Purchase cost per unit for this batch.
	UnitCost decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0" json:"unit_cost"`

	// Nil means the batch never expires; such batches are consumed last.
	ExpiresAt  *time.Time `gorm:"type:date" json:"expires_at,omitempty"`
	ReceivedAt time.Time  `gorm:"type:date;not null" json:"received_at"`
}

func (Batch) TableName() string {
	return "batches"
}

// IsExpired reports whether the batch expiry date is strictly before the given day.
func (b *Batch) IsExpired(today time.Time) bool {
	return b.ExpiresAt != nil && b.ExpiresAt.Before(today)
}
