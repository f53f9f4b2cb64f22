package repository

import (
	"time"

	"stockpro-backend/internal/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type BatchRepository interface {
	Create(batch *model.Batch) error
	FindByID(id uuid.UUID) (*model.Batch, error)
	FindByProduct(productID uuid.UUID) ([]model.Batch, error)
	Delete(id uuid.UUID) error

	// AvailableQuantity sums the remaining quantity across a product's
	// batches with stock left. Pass a transaction handle to read inside
	// one, or nil to read with the repository's own connection.
	AvailableQuantity(tx *gorm.DB, productID uuid.UUID) (decimal.Decimal, error)

	// FindAvailableForUpdate fetches a product's batches with remaining
	// stock under a FOR UPDATE row lock, ordered for FEFO consumption:
	// soonest expiry first, never-expiring batches last.
	FindAvailableForUpdate(tx *gorm.DB, productID uuid.UUID) ([]model.Batch, error)

	// SetRemaining writes the post-consumption quantity of one batch.
	SetRemaining(tx *gorm.DB, id uuid.UUID, remaining decimal.Decimal) error

	// StockTotals returns derived stock per product for listings and alerts.
	StockTotals() (map[uuid.UUID]decimal.Decimal, error)

	ExpiringBetween(from, to time.Time) ([]model.Batch, error)
	ExpiredBefore(day time.Time) ([]model.Batch, error)
}

type batchRepo struct {
	db *gorm.DB
}

func NewBatchRepo(db *gorm.DB) BatchRepository {
	return &batchRepo{db}
}

func (r *batchRepo) Create(batch *model.Batch) error {
	return r.db.Create(batch).Error
}

func (r *batchRepo) FindByID(id uuid.UUID) (*model.Batch, error) {
	var batch model.Batch
	err := r.db.Preload("Product").First(&batch, "id = ?", id).Error
	return &batch, err
}

func (r *batchRepo) FindByProduct(productID uuid.UUID) ([]model.Batch, error) {
	var batches []model.Batch
	err := r.db.Where("product_id = ?", productID).
		Order("expires_at ASC NULLS LAST").
		Find(&batches).Error
	return batches, err
}

// Delete removes a batch outright. Used to correct data-entry mistakes only;
// sold stock leaves through settlement decrements, never through deletion.
func (r *batchRepo) Delete(id uuid.UUID) error {
	return r.db.Unscoped().Delete(&model.Batch{}, "id = ?", id).Error
}

func (r *batchRepo) AvailableQuantity(tx *gorm.DB, productID uuid.UUID) (decimal.Decimal, error) {
	db := tx
	if db == nil {
		db = r.db
	}
	var total decimal.Decimal
	err := db.Model(&model.Batch{}).
		Where("product_id = ? AND remaining > 0", productID).
		Select("COALESCE(SUM(remaining), 0)").
		Scan(&total).Error
	return total, err
}

func (r *batchRepo) FindAvailableForUpdate(tx *gorm.DB, productID uuid.UUID) ([]model.Batch, error) {
	var batches []model.Batch
	err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("product_id = ? AND remaining > 0", productID).
		Order("expires_at ASC NULLS LAST").
		Find(&batches).Error
	return batches, err
}

func (r *batchRepo) SetRemaining(tx *gorm.DB, id uuid.UUID, remaining decimal.Decimal) error {
	return tx.Model(&model.Batch{}).
		Where("id = ?", id).
		Update("remaining", remaining).Error
}

func (r *batchRepo) StockTotals() (map[uuid.UUID]decimal.Decimal, error) {
	rows, err := r.db.Model(&model.Batch{}).
		Select("product_id, COALESCE(SUM(remaining), 0) as total").
		Where("remaining > 0").
		Group("product_id").
		Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	totals := make(map[uuid.UUID]decimal.Decimal)
	for rows.Next() {
		var productID uuid.UUID
		var total decimal.Decimal
		if err := rows.Scan(&productID, &total); err != nil {
			return nil, err
		}
		totals[productID] = total
	}
	return totals, rows.Err()
}

func (r *batchRepo) ExpiringBetween(from, to time.Time) ([]model.Batch, error) {
	var batches []model.Batch
	err := r.db.Preload("Product").
		Where("expires_at >= ? AND expires_at <= ? AND remaining > 0", from, to).
		Order("expires_at ASC").
		Find(&batches).Error
	return batches, err
}

func (r *batchRepo) ExpiredBefore(day time.Time) ([]model.Batch, error) {
	var batches []model.Batch
	err := r.db.Preload("Product").
		Where("expires_at < ? AND remaining > 0", day).
		Order("expires_at ASC").
		Find(&batches).Error
	return batches, err
}
