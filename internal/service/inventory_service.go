package service

import (
	"errors"
	"time"

	"stockpro-backend/internal/model"
	"stockpro-backend/internal/repository"
	"stockpro-backend/internal/ws"
	"stockpro-backend/pkg/validator"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// ReceiveBatchRequest records one incoming delivery. The product's list
// price can be refreshed in the same stroke, which is how price rises
// usually arrive: stuck to the supplier invoice.
type ReceiveBatchRequest struct {
	ProductID    uuid.UUID       `json:"product_id" validate:"uuid_required"`
	Quantity     decimal.Decimal `json:"quantity"`
	UnitCost     decimal.Decimal `json:"unit_cost"`
	ExpiresAt    *time.Time      `json:"expires_at,omitempty"`
	NewSalePrice *decimal.Decimal `json:"new_sale_price,omitempty"`
}

type BrandPriceUpdateRequest struct {
	BrandID uuid.UUID       `json:"brand_id" validate:"uuid_required"`
	Percent decimal.Decimal `json:"percent"`
}

type InventoryService interface {
	CreateProduct(req *model.Product, userID string) error
	UpdateProduct(id uuid.UUID, req *model.Product, userID string) (*model.Product, error)
	ToggleProduct(id uuid.UUID, userID string) error
	DeleteProduct(id uuid.UUID) error
	ListProducts(onlyActive bool) ([]model.ProductWithStock, error)
	ListSellable() ([]model.ProductWithStock, error)
	GetProduct(id uuid.UUID) (*model.ProductWithStock, error)

	ReceiveBatch(req *ReceiveBatchRequest, userID string) (*model.Batch, error)
	ListBatches(productID uuid.UUID) ([]model.Batch, error)
	DeleteBatch(id uuid.UUID) error

	UpdateBrandPrices(req *BrandPriceUpdateRequest, userID string) (int64, error)
}

type inventoryService struct {
	productRepo repository.ProductRepository
	batchRepo   repository.BatchRepository
	brandRepo   repository.BrandRepository
	db          *gorm.DB
	wsHub       *ws.Hub
}

func NewInventoryService(
	productRepo repository.ProductRepository,
	batchRepo repository.BatchRepository,
	brandRepo repository.BrandRepository,
	db *gorm.DB,
	hub *ws.Hub,
) InventoryService {
	return &inventoryService{
		productRepo: productRepo,
		batchRepo:   batchRepo,
		brandRepo:   brandRepo,
		db:          db,
		wsHub:       hub,
	}
}

func (s *inventoryService) CreateProduct(req *model.Product, userID string) error {
	if errs := validator.ValidateStruct(req); len(errs) > 0 {
		first := errs[0]
		return &ValidationError{Field: first.FailedField, Reason: "failed on tag '" + first.Tag + "'"}
	}
	if req.SalePrice.IsNegative() {
		return &ValidationError{Field: "sale_price", Reason: "must not be negative"}
	}
	if req.Barcode != nil && *req.Barcode != "" {
		existing, err := s.productRepo.FindByBarcode(*req.Barcode)
		if err == nil && existing.ID != uuid.Nil {
			return ErrBarcodeTaken
		}
	}

	req.CreatedBy = userID
	req.UpdatedBy = userID
	return s.productRepo.Create(req)
}

func (s *inventoryService) UpdateProduct(id uuid.UUID, req *model.Product, userID string) (*model.Product, error) {
	existing, err := s.productRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, err
	}
	if req.Barcode != nil && *req.Barcode != "" {
		other, err := s.productRepo.FindByBarcode(*req.Barcode)
		if err == nil && other.ID != uuid.Nil && other.ID != id {
			return nil, ErrBarcodeTaken
		}
	}

	existing.Name = req.Name
	existing.Description = req.Description
	existing.SalePrice = req.SalePrice
	existing.MinimumStock = req.MinimumStock
	existing.VisibleOnline = req.VisibleOnline
	existing.Barcode = req.Barcode
	existing.CategoryID = req.CategoryID
	existing.BrandID = req.BrandID
	existing.UnitID = req.UnitID
	existing.UpdatedBy = userID

	if err := s.productRepo.Update(existing); err != nil {
		return nil, err
	}
	return existing, nil
}

func (s *inventoryService) ToggleProduct(id uuid.UUID, userID string) error {
	if _, err := s.productRepo.FindByID(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrProductNotFound
		}
		return err
	}
	return s.productRepo.ToggleActive(id, userID)
}

func (s *inventoryService) DeleteProduct(id uuid.UUID) error {
	if _, err := s.productRepo.FindByID(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrProductNotFound
		}
		return err
	}
	return s.productRepo.Delete(id)
}

// withStockTotals annotates products with their derived stock in one extra
// aggregate query instead of a query per product.
func (s *inventoryService) withStockTotals(products []model.Product) ([]model.ProductWithStock, error) {
	totals, err := s.batchRepo.StockTotals()
	if err != nil {
		return nil, err
	}
	annotated := make([]model.ProductWithStock, len(products))
	for i, product := range products {
		total, ok := totals[product.ID]
		if !ok {
			total = decimal.Zero
		}
		annotated[i] = model.ProductWithStock{Product: product, StockTotal: total}
	}
	return annotated, nil
}

func (s *inventoryService) ListProducts(onlyActive bool) ([]model.ProductWithStock, error) {
	products, err := s.productRepo.FindAll(onlyActive)
	if err != nil {
		return nil, err
	}
	return s.withStockTotals(products)
}

func (s *inventoryService) ListSellable() ([]model.ProductWithStock, error) {
	products, err := s.productRepo.FindSellable()
	if err != nil {
		return nil, err
	}
	return s.withStockTotals(products)
}

func (s *inventoryService) GetProduct(id uuid.UUID) (*model.ProductWithStock, error) {
	product, err := s.productRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, err
	}
	total, err := s.batchRepo.AvailableQuantity(nil, id)
	if err != nil {
		return nil, err
	}
	return &model.ProductWithStock{Product: *product, StockTotal: total}, nil
}

// ReceiveBatch creates the batch and, when requested, the product price
// update in one transaction: the new stock and its new price go live
// together or not at all.
func (s *inventoryService) ReceiveBatch(req *ReceiveBatchRequest, userID string) (*model.Batch, error) {
	if errs := validator.ValidateStruct(req); len(errs) > 0 {
		first := errs[0]
		return nil, &ValidationError{Field: first.FailedField, Reason: "failed on tag '" + first.Tag + "'"}
	}
	if !req.Quantity.IsPositive() {
		return nil, &ValidationError{Field: "quantity", Reason: "must be greater than zero"}
	}
	if req.UnitCost.IsNegative() {
		return nil, &ValidationError{Field: "unit_cost", Reason: "must not be negative"}
	}

	product, err := s.productRepo.FindByID(req.ProductID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, err
	}

	batch := &model.Batch{
		ProductID:  req.ProductID,
		Remaining:  req.Quantity,
		UnitCost:   req.UnitCost,
		ExpiresAt:  req.ExpiresAt,
		ReceivedAt: time.Now(),
	}
	batch.CreatedBy = userID
	batch.UpdatedBy = userID

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(batch).Error; err != nil {
			return err
		}
		if req.NewSalePrice != nil {
			if req.NewSalePrice.IsNegative() {
				return &ValidationError{Field: "new_sale_price", Reason: "must not be negative"}
			}
			return s.productRepo.UpdateSalePrice(tx, req.ProductID, *req.NewSalePrice, userID)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	go s.wsHub.Publish(ws.EventStockReceived, map[string]interface{}{
		"product_id":   product.ID,
		"product_name": product.Name,
		"quantity":     req.Quantity,
		"expires_at":   req.ExpiresAt,
	})

	return batch, nil
}

func (s *inventoryService) ListBatches(productID uuid.UUID) ([]model.Batch, error) {
	if _, err := s.productRepo.FindByID(productID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, err
	}
	return s.batchRepo.FindByProduct(productID)
}

// DeleteBatch is the data-entry escape hatch: a mistyped receipt is removed
// outright rather than compensated with a fake sale.
func (s *inventoryService) DeleteBatch(id uuid.UUID) error {
	if _, err := s.batchRepo.FindByID(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrBatchNotFound
		}
		return err
	}
	return s.batchRepo.Delete(id)
}

// UpdateBrandPrices applies a percentage adjustment to every active product
// of a brand. +10 turns into a 1.10 factor, -10 into 0.90.
func (s *inventoryService) UpdateBrandPrices(req *BrandPriceUpdateRequest, userID string) (int64, error) {
	if errs := validator.ValidateStruct(req); len(errs) > 0 {
		first := errs[0]
		return 0, &ValidationError{Field: first.FailedField, Reason: "failed on tag '" + first.Tag + "'"}
	}
	factor := decimal.NewFromInt(1).Add(req.Percent.Div(decimal.NewFromInt(100)))
	if !factor.IsPositive() {
		return 0, &ValidationError{Field: "percent", Reason: "would make prices zero or negative"}
	}
	if _, err := s.brandRepo.FindByID(req.BrandID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, ErrBrandNotFound
		}
		return 0, err
	}

	var affected int64
	err := s.db.Transaction(func(tx *gorm.DB) error {
		n, err := s.productRepo.ApplyPriceFactor(tx, req.BrandID, factor)
		if err != nil {
			return err
		}
		affected = n
		return nil
	})
	return affected, err
}
