package model

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Category groups products for catalog navigation (e.g. Bebidas, Lacteos)
type Category struct {
	BaseModel
	Name          string `gorm:"type:varchar(100);uniqueIndex;not null" json:"name" validate:"required"`
	VisibleOnline bool   `gorm:"default:true" json:"visible_online"`
	IsActive      bool   `gorm:"default:true" json:"is_active"`
}

// Brand is the commercial brand of a product (e.g. Coca-Cola, Lays)
type Brand struct {
	BaseModel
	Name     string `gorm:"type:varchar(100);uniqueIndex;not null" json:"name" validate:"required"`
	IsActive bool   `gorm:"default:true" json:"is_active"`
}

// Unit is a standardized unit of measure (Unidad, Kilogramo, Litro)
type Unit struct {
	BaseModel
	Name         string `gorm:"type:varchar(50);uniqueIndex;not null" json:"name" validate:"required"`
	Abbreviation string `gorm:"type:varchar(10);not null" json:"abbreviation" validate:"required"`
}

// Product is a sellable item. It carries NO stock column: available stock
// is always derived from the remaining quantities of its batches.
type Product struct {
	BaseModel
	Name          string          `gorm:"type:varchar(200);not null" json:"name" validate:"required"`
	Description   string          `gorm:"type:text" json:"description"`
	SalePrice     decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"sale_price"`
	MinimumStock  decimal.Decimal `gorm:"type:decimal(12,3);not null;default:5" json:"minimum_stock"`
	VisibleOnline bool            `gorm:"default:true" json:"visible_online"`
	IsActive      bool            `gorm:"default:true" json:"is_active"`
	Barcode       *string         `gorm:"type:varchar(100);uniqueIndex" json:"barcode,omitempty"`

	CategoryID *uuid.UUID `gorm:"type:uuid;index" json:"category_id,omitempty"`
	Category   *Category  `gorm:"foreignKey:CategoryID" json:"category,omitempty"`
	BrandID    *uuid.UUID `gorm:"type:uuid;index" json:"brand_id,omitempty"`
	Brand      *Brand     `gorm:"foreignKey:BrandID" json:"brand,omitempty"`
	UnitID     uuid.UUID  `gorm:"type:uuid;not null" json:"unit_id" validate:"uuid_required"`
	Unit       *Unit      `gorm:"foreignKey:UnitID" json:"unit,omitempty" validate:"-"`

	Batches []Batch `json:"batches,omitempty"`
}

// ProductWithStock is a Product annotated with its derived stock total for listings.
type ProductWithStock struct {
	Product
	StockTotal decimal.Decimal `json:"stock_total"`
}
