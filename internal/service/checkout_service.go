package service

import (
	"errors"
	"log"

	"stockpro-backend/internal/model"
	"stockpro-backend/internal/repository"
	"stockpro-backend/internal/ws"
	"stockpro-backend/pkg/validator"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// CartItem is one typed line of the checkout request. Quantity and price
// arrive as explicit decimals; nothing is read from loose string maps.
type CartItem struct {
	ProductID uuid.UUID       `json:"product_id" validate:"uuid_required"`
	Quantity  decimal.Decimal `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
}

type CheckoutRequest struct {
	Items           []CartItem      `json:"items" validate:"required,min=1"`
	PaymentMethodID uuid.UUID       `json:"payment_method_id" validate:"uuid_required"`
	CustomerID      *uuid.UUID      `json:"customer_id,omitempty"`
	Discount        decimal.Decimal `json:"discount"`
}

type CheckoutService interface {
	Checkout(req *CheckoutRequest, sellerID uuid.UUID) (*model.Sale, error)
	GetSale(id uuid.UUID) (*model.Sale, error)
	RecentSales(limit int) ([]model.Sale, error)
}

type checkoutService struct {
	productRepo repository.ProductRepository
	batchRepo   repository.BatchRepository
	saleRepo    repository.SaleRepository
	methodRepo  repository.PaymentMethodRepository
	customerRepo repository.CustomerRepository
	db          *gorm.DB
	wsHub       *ws.Hub
}

func NewCheckoutService(
	productRepo repository.ProductRepository,
	batchRepo repository.BatchRepository,
	saleRepo repository.SaleRepository,
	methodRepo repository.PaymentMethodRepository,
	customerRepo repository.CustomerRepository,
	db *gorm.DB,
	hub *ws.Hub,
) CheckoutService {
	return &checkoutService{
		productRepo:  productRepo,
		batchRepo:    batchRepo,
		saleRepo:     saleRepo,
		methodRepo:   methodRepo,
		customerRepo: customerRepo,
		db:           db,
		wsHub:        hub,
	}
}

// normalizeCheckout applies the boundary checks that struct tags cannot
// express on decimal fields. A negative discount is treated as zero, the
// same forgiveness the register UI has always had.
func normalizeCheckout(req *CheckoutRequest) error {
	if errs := validator.ValidateStruct(req); len(errs) > 0 {
		first := errs[0]
		return &ValidationError{Field: first.FailedField, Reason: "failed on tag '" + first.Tag + "'"}
	}
	for i := range req.Items {
		if !req.Items[i].Quantity.IsPositive() {
			return &ValidationError{Field: "items.quantity", Reason: "must be greater than zero"}
		}
		if req.Items[i].UnitPrice.IsNegative() {
			return &ValidationError{Field: "items.unit_price", Reason: "must not be negative"}
		}
	}
	if req.Discount.IsNegative() {
		req.Discount = decimal.Zero
	}
	return nil
}

// computeTotal recomputes the ticket total server-side from the line items,
// ignoring whatever total the client may believe in: subtotal minus
// discount, floored at zero.
func computeTotal(items []CartItem, discount decimal.Decimal) decimal.Decimal {
	subtotal := decimal.Zero
	for _, item := range items {
		subtotal = subtotal.Add(item.UnitPrice.Mul(item.Quantity))
	}
	total := subtotal.Sub(discount)
	if total.IsNegative() {
		return decimal.Zero
	}
	return total.Round(2)
}

// Checkout settles a cart: validates availability, consumes batches
// oldest-expiry-first, snapshots prices and weighted-average costs per line,
// and persists the sale, all of it or none of it.
func (s *checkoutService) Checkout(req *CheckoutRequest, sellerID uuid.UUID) (*model.Sale, error) {
	if err := normalizeCheckout(req); err != nil {
		return nil, err
	}

	// Resolve references before touching anything.
	method, err := s.methodRepo.FindByID(req.PaymentMethodID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPaymentMethodNotFound
		}
		return nil, err
	}
	if !method.IsActive {
		return nil, ErrPaymentMethodInactive
	}
	if req.CustomerID != nil {
		if _, err := s.customerRepo.FindByID(*req.CustomerID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrCustomerNotFound
			}
			return nil, err
		}
	}

	// Pre-validation pass: every line must be coverable before any batch is
	// touched, so a late shortfall cannot leave a half-recorded ticket.
	// Runs without locks; the write phase re-checks under FOR UPDATE.
	products := make(map[uuid.UUID]*model.Product, len(req.Items))
	for _, item := range req.Items {
		product, err := s.productRepo.FindByID(item.ProductID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrProductNotFound
			}
			return nil, err
		}
		available, err := s.batchRepo.AvailableQuantity(nil, item.ProductID)
		if err != nil {
			return nil, err
		}
		if item.Quantity.GreaterThan(available) {
			return nil, &InsufficientStockError{
				ProductName: product.Name,
				Requested:   item.Quantity,
				Available:   available,
			}
		}
		products[item.ProductID] = product
	}

	sale := &model.Sale{
		Discount:        req.Discount,
		Total:           computeTotal(req.Items, req.Discount),
		PaymentMethodID: req.PaymentMethodID,
		SellerID:        sellerID,
		CustomerID:      req.CustomerID,
	}
	sale.CreatedBy = sellerID.String()
	sale.UpdatedBy = sellerID.String()

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := s.saleRepo.Create(tx, sale); err != nil {
			return err
		}

		for _, item := range req.Items {
			// Re-read under the row lock; the pre-check snapshot is not
			// trusted once we start writing.
			batches, err := s.batchRepo.FindAvailableForUpdate(tx, item.ProductID)
			if err != nil {
				return err
			}
			plan, err := planFEFO(batches, item.Quantity)
			if err != nil {
				return err
			}
			if !plan.fulfilled() {
				// A concurrent checkout drained the batches between the
				// pre-check and the lock. Abort the whole sale.
				available := item.Quantity.Sub(plan.Shortfall)
				return &InsufficientStockError{
					ProductName: products[item.ProductID].Name,
					Requested:   item.Quantity,
					Available:   available,
				}
			}
			for _, draw := range plan.Draws {
				if err := s.batchRepo.SetRemaining(tx, draw.BatchID, draw.Remaining); err != nil {
					return err
				}
			}
			unitCost, err := weightedUnitCost(plan, item.Quantity)
			if err != nil {
				return err
			}

			line := &model.SaleLine{
				SaleID:    sale.ID,
				ProductID: item.ProductID,
				Quantity:  item.Quantity,
				UnitPrice: item.UnitPrice,
				UnitCost:  unitCost,
				Subtotal:  item.Quantity.Mul(item.UnitPrice).Round(2),
			}
			line.CreatedBy = sellerID.String()
			line.UpdatedBy = sellerID.String()
			if err := s.saleRepo.CreateLine(tx, line); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	completed, err := s.saleRepo.FindByID(sale.ID)
	if err != nil {
		// The sale committed; failing the reload should not fail the checkout.
		log.Printf("checkout: reload of sale %s failed: %v", sale.ID, err)
		completed = sale
	}

	s.broadcastSale(completed, products)
	return completed, nil
}

// broadcastSale pushes the completed ticket and any low-stock alert to the
// websocket hub so open dashboards refresh without polling.
func (s *checkoutService) broadcastSale(sale *model.Sale, products map[uuid.UUID]*model.Product) {
	go func() {
		s.wsHub.Publish(ws.EventSaleCompleted, map[string]interface{}{
			"sale_id": sale.ID,
			"total":   sale.Total,
		})
		for id, product := range products {
			available, err := s.batchRepo.AvailableQuantity(nil, id)
			if err != nil {
				continue
			}
			if available.LessThanOrEqual(product.MinimumStock) {
				s.wsHub.Publish(ws.EventLowStock, map[string]interface{}{
					"product_id":    product.ID,
					"product_name":  product.Name,
					"stock_total":   available,
					"minimum_stock": product.MinimumStock,
				})
			}
		}
	}()
}

func (s *checkoutService) GetSale(id uuid.UUID) (*model.Sale, error) {
	sale, err := s.saleRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New("sale not found")
		}
		return nil, err
	}
	return sale, nil
}

func (s *checkoutService) RecentSales(limit int) ([]model.Sale, error) {
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	return s.saleRepo.FindRecent(limit)
}
