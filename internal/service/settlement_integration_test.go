package service

import (
	"fmt"
	"os"
	"testing"
	"time"

	"stockpro-backend/internal/model"
	"stockpro-backend/internal/repository"
	"stockpro-backend/internal/ws"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Exercises the settlement and closing engines against a real Postgres:
// row locking, batch decrements and the pending-sale lifecycle cannot be
// checked in-memory.
func TestSettlementAndClosingIntegration(t *testing.T) {
	dsn := os.Getenv("STOCKPRO_TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("set STOCKPRO_TEST_DATABASE_URL to run postgres integration test")
	}

	db, err := gorm.Open(postgres.New(postgres.Config{
		DSN:                  dsn,
		PreferSimpleProtocol: true,
	}), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
		&model.User{}, &model.Privilege{}, &model.Role{},
		&model.Category{}, &model.Brand{}, &model.Unit{}, &model.Product{},
		&model.Batch{},
		&model.PaymentMethod{}, &model.Customer{},
		&model.Sale{}, &model.SaleLine{},
		&model.CashClosing{}, &model.ClosingDetail{},
	))

	stamp := time.Now().UnixNano()

	unit := &model.Unit{Name: fmt.Sprintf("Unidad IT %d", stamp), Abbreviation: "und"}
	require.NoError(t, db.Create(unit).Error)

	product := &model.Product{
		Name:         fmt.Sprintf("Gaseosa IT %d", stamp),
		SalePrice:    decimal.RequireFromString("15.00"),
		MinimumStock: decimal.RequireFromString("2"),
		IsActive:     true,
		UnitID:       unit.ID,
	}
	require.NoError(t, db.Create(product).Error)

	sooner := time.Now().AddDate(0, 1, 0)
	later := time.Now().AddDate(0, 6, 0)
	batchSooner := &model.Batch{
		ProductID:  product.ID,
		Remaining:  decimal.RequireFromString("5"),
		UnitCost:   decimal.RequireFromString("10.00"),
		ExpiresAt:  &sooner,
		ReceivedAt: time.Now(),
	}
	batchLater := &model.Batch{
		ProductID:  product.ID,
		Remaining:  decimal.RequireFromString("10"),
		UnitCost:   decimal.RequireFromString("12.00"),
		ExpiresAt:  &later,
		ReceivedAt: time.Now(),
	}
	require.NoError(t, db.Create(batchSooner).Error)
	require.NoError(t, db.Create(batchLater).Error)

	method := &model.PaymentMethod{Name: fmt.Sprintf("Efectivo IT %d", stamp), IsActive: true}
	require.NoError(t, db.Create(method).Error)

	seller := &model.User{
		Email:    fmt.Sprintf("seller-it-%d@example.com", stamp),
		FullName: "Integration Seller",
		IsActive: true,
	}
	require.NoError(t, seller.SetPassword("secret123"))
	require.NoError(t, db.Create(seller).Error)

	t.Cleanup(func() {
		db.Exec(`DELETE FROM sale_lines WHERE product_id = ?`, product.ID)
		db.Exec(`DELETE FROM sales WHERE seller_id = ?`, seller.ID)
		db.Exec(`DELETE FROM closing_details WHERE payment_method_id = ?`, method.ID)
		db.Exec(`DELETE FROM cash_closings WHERE user_id = ?`, seller.ID)
		db.Exec(`DELETE FROM batches WHERE product_id = ?`, product.ID)
		db.Unscoped().Delete(&model.Product{}, "id = ?", product.ID)
		db.Unscoped().Delete(&model.Unit{}, "id = ?", unit.ID)
		db.Unscoped().Delete(&model.PaymentMethod{}, "id = ?", method.ID)
		db.Unscoped().Delete(&model.User{}, "id = ?", seller.ID)
	})

	hub := ws.NewHub()
	go hub.Run()

	productRepo := repository.NewProductRepo(db)
	batchRepo := repository.NewBatchRepo(db)
	saleRepo := repository.NewSaleRepo(db)
	methodRepo := repository.NewPaymentMethodRepo(db)
	customerRepo := repository.NewCustomerRepo(db)
	closingRepo := repository.NewClosingRepo(db)

	checkout := NewCheckoutService(productRepo, batchRepo, saleRepo, methodRepo, customerRepo, db, hub)
	closing := NewClosingService(saleRepo, closingRepo, methodRepo, db)

	t.Run("checkout consumes batches soonest expiry first", func(t *testing.T) {
		sale, err := checkout.Checkout(&CheckoutRequest{
			Items: []CartItem{{
				ProductID: product.ID,
				Quantity:  decimal.RequireFromString("8"),
				UnitPrice: decimal.RequireFromString("15.00"),
			}},
			PaymentMethodID: method.ID,
			Discount:        decimal.RequireFromString("10.00"),
		}, seller.ID)
		require.NoError(t, err)

		// 8 * 15.00 - 10.00
		assert.True(t, sale.Total.Equal(decimal.RequireFromString("110.00")), "total %s", sale.Total)
		require.Len(t, sale.Lines, 1)
		// (5*10 + 3*12) / 8
		assert.True(t, sale.Lines[0].UnitCost.Equal(decimal.RequireFromString("10.75")),
			"unit cost %s", sale.Lines[0].UnitCost)

		var b1, b2 model.Batch
		require.NoError(t, db.First(&b1, "id = ?", batchSooner.ID).Error)
		require.NoError(t, db.First(&b2, "id = ?", batchLater.ID).Error)
		assert.True(t, b1.Remaining.IsZero(), "sooner batch remaining %s", b1.Remaining)
		assert.True(t, b2.Remaining.Equal(decimal.RequireFromString("7")), "later batch remaining %s", b2.Remaining)
	})

	t.Run("insufficient stock aborts without touching batches", func(t *testing.T) {
		_, err := checkout.Checkout(&CheckoutRequest{
			Items: []CartItem{{
				ProductID: product.ID,
				Quantity:  decimal.RequireFromString("100"),
				UnitPrice: decimal.RequireFromString("15.00"),
			}},
			PaymentMethodID: method.ID,
		}, seller.ID)

		var stockErr *InsufficientStockError
		require.ErrorAs(t, err, &stockErr)
		assert.True(t, stockErr.Available.Equal(decimal.RequireFromString("7")))

		available, err := batchRepo.AvailableQuantity(nil, product.ID)
		require.NoError(t, err)
		assert.True(t, available.Equal(decimal.RequireFromString("7")))

		var count int64
		db.Model(&model.Sale{}).Where("seller_id = ?", seller.ID).Count(&count)
		assert.Equal(t, int64(1), count, "failed checkout must not leave a sale behind")
	})

	t.Run("closing settles pending sales and records variance", func(t *testing.T) {
		result, err := closing.CloseRegister(&CloseRegisterRequest{
			Counts: map[string]string{
				method.ID.String(): "105,00",
			},
			Notes: "integration run",
		}, seller.ID)
		require.NoError(t, err)

		assert.True(t, result.SystemTotal.Equal(decimal.RequireFromString("110.00")))
		assert.True(t, result.CountedTotal.Equal(decimal.RequireFromString("105.00")))
		assert.True(t, result.Variance.Equal(decimal.RequireFromString("-5.00")))

		require.Len(t, result.Details, 1)
		assert.Equal(t, method.ID, result.Details[0].PaymentMethodID)

		var pending int64
		db.Model(&model.Sale{}).Where("seller_id = ? AND closing_id IS NULL", seller.ID).Count(&pending)
		assert.Zero(t, pending, "every pending sale must be stamped")
	})

	t.Run("second closing with nothing pending is a recognized no-op", func(t *testing.T) {
		_, err := closing.CloseRegister(&CloseRegisterRequest{}, seller.ID)
		require.ErrorIs(t, err, ErrNothingToClose)

		var closings int64
		db.Model(&model.CashClosing{}).Where("user_id = ?", seller.ID).Count(&closings)
		assert.Equal(t, int64(1), closings)
	})
}
