package service

import (
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestComputeTotal(t *testing.T) {
	items := []CartItem{
		{Quantity: decimal.RequireFromString("2"), UnitPrice: decimal.RequireFromString("3.50")},
		{Quantity: decimal.RequireFromString("1.5"), UnitPrice: decimal.RequireFromString("10.00")},
	}

	t.Run("sums lines minus discount", func(t *testing.T) {
		// 7.00 + 15.00 - 2.00
		total := computeTotal(items, decimal.RequireFromString("2.00"))
		assert.True(t, total.Equal(decimal.RequireFromString("20.00")))
	})

	t.Run("zero discount", func(t *testing.T) {
		total := computeTotal(items, decimal.Zero)
		assert.True(t, total.Equal(decimal.RequireFromString("22.00")))
	})

	t.Run("discount larger than subtotal floors at zero", func(t *testing.T) {
		total := computeTotal(items, decimal.RequireFromString("100.00"))
		assert.True(t, total.IsZero())
	})

	t.Run("no items", func(t *testing.T) {
		total := computeTotal(nil, decimal.Zero)
		assert.True(t, total.IsZero())
	})
}

func TestNormalizeCheckout(t *testing.T) {
	validItem := CartItem{
		ProductID: uuid.New(),
		Quantity:  decimal.RequireFromString("1"),
		UnitPrice: decimal.RequireFromString("5.00"),
	}

	t.Run("valid request passes", func(t *testing.T) {
		req := &CheckoutRequest{
			Items:           []CartItem{validItem},
			PaymentMethodID: uuid.New(),
		}
		require.NoError(t, normalizeCheckout(req))
	})

	t.Run("empty cart rejected", func(t *testing.T) {
		req := &CheckoutRequest{
			Items:           []CartItem{},
			PaymentMethodID: uuid.New(),
		}
		err := normalizeCheckout(req)
		var validation *ValidationError
		require.ErrorAs(t, err, &validation)
	})

	t.Run("missing payment method rejected", func(t *testing.T) {
		req := &CheckoutRequest{
			Items: []CartItem{validItem},
		}
		err := normalizeCheckout(req)
		var validation *ValidationError
		require.ErrorAs(t, err, &validation)
	})

	t.Run("zero quantity rejected", func(t *testing.T) {
		item := validItem
		item.Quantity = decimal.Zero
		req := &CheckoutRequest{
			Items:           []CartItem{item},
			PaymentMethodID: uuid.New(),
		}
		err := normalizeCheckout(req)
		var validation *ValidationError
		require.ErrorAs(t, err, &validation)
		assert.Equal(t, "items.quantity", validation.Field)
	})

	t.Run("negative unit price rejected", func(t *testing.T) {
		item := validItem
		item.UnitPrice = decimal.RequireFromString("-1")
		req := &CheckoutRequest{
			Items:           []CartItem{item},
			PaymentMethodID: uuid.New(),
		}
		err := normalizeCheckout(req)
		var validation *ValidationError
		require.ErrorAs(t, err, &validation)
	})

	t.Run("negative discount clamped to zero", func(t *testing.T) {
		req := &CheckoutRequest{
			Items:           []CartItem{validItem},
			PaymentMethodID: uuid.New(),
			Discount:        decimal.RequireFromString("-5"),
		}
		require.NoError(t, normalizeCheckout(req))
		assert.True(t, req.Discount.IsZero())
	})
}
