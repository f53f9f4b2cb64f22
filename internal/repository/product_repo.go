package repository

import (
	"stockpro-backend/internal/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type ProductRepository interface {
	Create(product *model.Product) error
	FindAll(onlyActive bool) ([]model.Product, error)
	FindByID(id uuid.UUID) (*model.Product, error)
	FindByBarcode(barcode string) (*model.Product, error)
	FindSellable() ([]model.Product, error)
	Update(product *model.Product) error
	ToggleActive(id uuid.UUID, updatedBy string) error
	Delete(id uuid.UUID) error

	// UpdateSalePrice runs inside a transaction so batch receipt can update
	// the price atomically with the new stock.
	UpdateSalePrice(tx *gorm.DB, id uuid.UUID, price decimal.Decimal, updatedBy string) error

	// ApplyPriceFactor multiplies the sale price of every active product of
	// a brand by factor, rounded to 2 decimals. Returns affected rows.
	ApplyPriceFactor(tx *gorm.DB, brandID uuid.UUID, factor decimal.Decimal) (int64, error)
}

type productRepo struct {
	db *gorm.DB
}

func NewProductRepo(db *gorm.DB) ProductRepository {
	return &productRepo{db}
}

func (r *productRepo) Create(product *model.Product) error {
	return r.db.Create(product).Error
}

func (r *productRepo) FindAll(onlyActive bool) ([]model.Product, error) {
	var products []model.Product
	q := r.db.Preload("Category").Preload("Brand").Preload("Unit").Order("name ASC")
	if onlyActive {
		q = q.Where("is_active = ?", true)
	}
	err := q.Find(&products).Error
	return products, err
}

func (r *productRepo) FindByID(id uuid.UUID) (*model.Product, error) {
	var product model.Product
	err := r.db.Preload("Category").Preload("Brand").Preload("Unit").
		First(&product, "id = ?", id).Error
	return &product, err
}

func (r *productRepo) FindByBarcode(barcode string) (*model.Product, error) {
	var product model.Product
	err := r.db.First(&product, "barcode = ?", barcode).Error
	return &product, err
}

// FindSellable returns the POS catalog: active products visible online.
func (r *productRepo) FindSellable() ([]model.Product, error) {
	var products []model.Product
	err := r.db.Preload("Unit").
		Where("is_active = ? AND visible_online = ?", true, true).
		Order("name ASC").
		Find(&products).Error
	return products, err
}

func (r *productRepo) Update(product *model.Product) error {
	return r.db.Save(product).Error
}

func (r *productRepo) ToggleActive(id uuid.UUID, updatedBy string) error {
	return r.db.Model(&model.Product{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"is_active":  gorm.Expr("NOT is_active"),
			"updated_by": updatedBy,
		}).Error
}

// Delete removes the product permanently, batches included (cascade).
// Deactivation via ToggleActive is the normal path; this one loses history.
func (r *productRepo) Delete(id uuid.UUID) error {
	return r.db.Unscoped().Select("Batches").Delete(&model.Product{BaseModel: model.BaseModel{ID: id}}).Error
}

func (r *productRepo) UpdateSalePrice(tx *gorm.DB, id uuid.UUID, price decimal.Decimal, updatedBy string) error {
	return tx.Model(&model.Product{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"sale_price": price,
			"updated_by": updatedBy,
		}).Error
}

func (r *productRepo) ApplyPriceFactor(tx *gorm.DB, brandID uuid.UUID, factor decimal.Decimal) (int64, error) {
	res := tx.Model(&model.Product{}).
		Where("brand_id = ? AND is_active = ?", brandID, true).
		Update("sale_price", gorm.Expr("ROUND(sale_price * ?, 2)", factor))
	return res.RowsAffected, res.Error
}
