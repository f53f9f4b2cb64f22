package repository

import (
	"time"

	"stockpro-backend/internal/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type SaleRepository interface {
	Create(tx *gorm.DB, sale *model.Sale) error
	CreateLine(tx *gorm.DB, line *model.SaleLine) error
	FindByID(id uuid.UUID) (*model.Sale, error)
	FindRecent(limit int) ([]model.Sale, error)

	// PendingByMethod aggregates unsettled sales grouped by payment method.
	// Read-only and advisory: the closing engine never trusts it and
	// recomputes from locked rows instead.
	PendingByMethod() ([]MethodSubtotal, error)

	// LockPending fetches every unsettled sale under FOR UPDATE, blocking
	// concurrent closings and concurrent settlement of the same rows.
	LockPending(tx *gorm.DB) ([]model.Sale, error)

	// AssignClosing bulk-stamps the closing reference on the given sales.
	AssignClosing(tx *gorm.DB, saleIDs []uuid.UUID, closingID uuid.UUID) error

	// Aggregates for the dashboard and the financial summary.
	TotalsBetween(start, end time.Time) (decimal.Decimal, int64, error)
	CostOfGoodsBetween(start, end time.Time) (decimal.Decimal, error)
	RevenueByDay(start, end time.Time) ([]DailyRevenue, error)
	TopProducts(start, end time.Time, limit int) ([]ProductRevenue, error)
}

// MethodSubtotal is one payment method's share of the pending sales.
type MethodSubtotal struct {
	PaymentMethodID uuid.UUID       `json:"payment_method_id"`
	MethodName      string          `json:"method_name"`
	Subtotal        decimal.Decimal `json:"subtotal"`
	Tickets         int64           `json:"tickets"`
}

// DailyRevenue is one point of the revenue-over-time chart.
type DailyRevenue struct {
	Day     string          `json:"day"`
	Revenue decimal.Decimal `json:"revenue"`
	Tickets int64           `json:"tickets"`
}

// ProductRevenue ranks a product by revenue within a period.
type ProductRevenue struct {
	ProductID   uuid.UUID       `json:"product_id"`
	ProductName string          `json:"product_name"`
	Quantity    decimal.Decimal `json:"quantity"`
	Revenue     decimal.Decimal `json:"revenue"`
}

type saleRepo struct {
	db *gorm.DB
}

func NewSaleRepo(db *gorm.DB) SaleRepository {
	return &saleRepo{db}
}

func (r *saleRepo) Create(tx *gorm.DB, sale *model.Sale) error {
	return tx.Create(sale).Error
}

func (r *saleRepo) CreateLine(tx *gorm.DB, line *model.SaleLine) error {
	return tx.Create(line).Error
}

func (r *saleRepo) FindByID(id uuid.UUID) (*model.Sale, error) {
	var sale model.Sale
	err := r.db.Preload("Lines").Preload("Lines.Product").
		Preload("PaymentMethod").Preload("Seller").Preload("Customer").
		First(&sale, "id = ?", id).Error
	return &sale, err
}

func (r *saleRepo) FindRecent(limit int) ([]model.Sale, error) {
	var sales []model.Sale
	err := r.db.Preload("Lines").Preload("PaymentMethod").Preload("Seller").
		Order("created_at DESC").
		Limit(limit).
		Find(&sales).Error
	return sales, err
}

func (r *saleRepo) PendingByMethod() ([]MethodSubtotal, error) {
	var results []MethodSubtotal
	rows, err := r.db.Model(&model.Sale{}).
		Select(`
			sales.payment_method_id,
			payment_methods.name,
			COALESCE(SUM(sales.total), 0) as subtotal,
			COUNT(sales.id) as tickets
		`).
		Joins("JOIN payment_methods ON payment_methods.id = sales.payment_method_id").
		Where("sales.closing_id IS NULL").
		Group("sales.payment_method_id, payment_methods.name").
		Order("payment_methods.name ASC").
		Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var sub MethodSubtotal
		if err := rows.Scan(&sub.PaymentMethodID, &sub.MethodName, &sub.Subtotal, &sub.Tickets); err != nil {
			return nil, err
		}
		results = append(results, sub)
	}
	return results, rows.Err()
}

func (r *saleRepo) LockPending(tx *gorm.DB) ([]model.Sale, error) {
	var sales []model.Sale
	err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("closing_id IS NULL").
		Find(&sales).Error
	return sales, err
}

func (r *saleRepo) AssignClosing(tx *gorm.DB, saleIDs []uuid.UUID, closingID uuid.UUID) error {
	return tx.Model(&model.Sale{}).
		Where("id IN ?", saleIDs).
		Update("closing_id", closingID).Error
}

func (r *saleRepo) TotalsBetween(start, end time.Time) (decimal.Decimal, int64, error) {
	var total decimal.Decimal
	var count int64

	if err := r.db.Model(&model.Sale{}).
		Where("created_at BETWEEN ? AND ?", start, end).
		Count(&count).Error; err != nil {
		return decimal.Zero, 0, err
	}
	if err := r.db.Model(&model.Sale{}).
		Where("created_at BETWEEN ? AND ?", start, end).
		Select("COALESCE(SUM(total), 0)").Scan(&total).Error; err != nil {
		return decimal.Zero, 0, err
	}
	return total, count, nil
}

// CostOfGoodsBetween sums quantity * cost snapshot over the period's sale
// lines. Snapshots, not current batch costs, so later receipts cannot
// rewrite past profitability.
func (r *saleRepo) CostOfGoodsBetween(start, end time.Time) (decimal.Decimal, error) {
	var total decimal.Decimal
	err := r.db.Model(&model.SaleLine{}).
		Joins("JOIN sales ON sales.id = sale_lines.sale_id").
		Where("sales.created_at BETWEEN ? AND ?", start, end).
		Select("COALESCE(SUM(sale_lines.quantity * sale_lines.unit_cost), 0)").
		Scan(&total).Error
	return total, err
}

func (r *saleRepo) RevenueByDay(start, end time.Time) ([]DailyRevenue, error) {
	rows, err := r.db.Model(&model.Sale{}).
		Select(`
			DATE(created_at) as day,
			COALESCE(SUM(total), 0) as revenue,
			COUNT(id) as tickets
		`).
		Where("created_at BETWEEN ? AND ?", start, end).
		Group("DATE(created_at)").
		Order("day ASC").
		Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var results []DailyRevenue
	for rows.Next() {
		var d DailyRevenue
		if err := rows.Scan(&d.Day, &d.Revenue, &d.Tickets); err != nil {
			return nil, err
		}
		results = append(results, d)
	}
	return results, rows.Err()
}

func (r *saleRepo) TopProducts(start, end time.Time, limit int) ([]ProductRevenue, error) {
	rows, err := r.db.Model(&model.SaleLine{}).
		Select(`
			sale_lines.product_id,
			products.name,
			COALESCE(SUM(sale_lines.quantity), 0) as quantity,
			COALESCE(SUM(sale_lines.subtotal), 0) as revenue
		`).
		Joins("JOIN sales ON sales.id = sale_lines.sale_id").
		Joins("JOIN products ON products.id = sale_lines.product_id").
		Where("sales.created_at BETWEEN ? AND ?", start, end).
		Group("sale_lines.product_id, products.name").
		Order("revenue DESC").
		Limit(limit).
		Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var results []ProductRevenue
	for rows.Next() {
		var p ProductRevenue
		if err := rows.Scan(&p.ProductID, &p.ProductName, &p.Quantity, &p.Revenue); err != nil {
			return nil, err
		}
		results = append(results, p)
	}
	return results, rows.Err()
}
