package service

import (
	"testing"
	"time"

	"stockpro-backend/internal/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func makeBatch(remaining, unitCost string, expiresAt *time.Time) model.Batch {
	b := model.Batch{
		ProductID: uuid.New(),
		Remaining: decimal.RequireFromString(remaining),
		UnitCost:  decimal.RequireFromString(unitCost),
		ExpiresAt: expiresAt,
	}
	b.ID = uuid.New()
	return b
}

func datePtr(year int, month time.Month, day int) *time.Time {
	d := time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
	return &d
}

func TestPlanFEFO(t *testing.T) {
	t.Run("single batch covers the request", func(t *testing.T) {
		batch := makeBatch("10", "4.00", datePtr(2026, 9, 1))

		plan, err := planFEFO([]model.Batch{batch}, decimal.RequireFromString("3"))
		require.NoError(t, err)

		require.Len(t, plan.Draws, 1)
		assert.Equal(t, batch.ID, plan.Draws[0].BatchID)
		assert.True(t, plan.Draws[0].Taken.Equal(decimal.RequireFromString("3")))
		assert.True(t, plan.Draws[0].Remaining.Equal(decimal.RequireFromString("7")))
		assert.True(t, plan.TotalCost.Equal(decimal.RequireFromString("12.00")))
		assert.True(t, plan.fulfilled())
	})

	t.Run("spans batches soonest expiry first", func(t *testing.T) {
		later := makeBatch("10", "12.00", datePtr(2026, 12, 1))
		sooner := makeBatch("5", "10.00", datePtr(2026, 9, 1))

		// Deliberately out of order on input.
		plan, err := planFEFO([]model.Batch{later, sooner}, decimal.RequireFromString("8"))
		require.NoError(t, err)

		require.Len(t, plan.Draws, 2)
		assert.Equal(t, sooner.ID, plan.Draws[0].BatchID)
		assert.True(t, plan.Draws[0].Taken.Equal(decimal.RequireFromString("5")))
		assert.True(t, plan.Draws[0].Remaining.IsZero())
		assert.Equal(t, later.ID, plan.Draws[1].BatchID)
		assert.True(t, plan.Draws[1].Taken.Equal(decimal.RequireFromString("3")))
		assert.True(t, plan.Draws[1].Remaining.Equal(decimal.RequireFromString("7")))

		// 5*10 + 3*12
		assert.True(t, plan.TotalCost.Equal(decimal.RequireFromString("86.00")))
	})

	t.Run("batches without expiry are drawn last", func(t *testing.T) {
		eternal := makeBatch("10", "1.00", nil)
		dated := makeBatch("4", "2.00", datePtr(2027, 1, 15))

		plan, err := planFEFO([]model.Batch{eternal, dated}, decimal.RequireFromString("6"))
		require.NoError(t, err)

		require.Len(t, plan.Draws, 2)
		assert.Equal(t, dated.ID, plan.Draws[0].BatchID)
		assert.True(t, plan.Draws[0].Taken.Equal(decimal.RequireFromString("4")))
		assert.Equal(t, eternal.ID, plan.Draws[1].BatchID)
		assert.True(t, plan.Draws[1].Taken.Equal(decimal.RequireFromString("2")))
	})

	t.Run("empty batches are skipped", func(t *testing.T) {
		drained := makeBatch("0", "5.00", datePtr(2026, 9, 1))
		full := makeBatch("10", "6.00", datePtr(2026, 10, 1))

		plan, err := planFEFO([]model.Batch{drained, full}, decimal.RequireFromString("2"))
		require.NoError(t, err)

		require.Len(t, plan.Draws, 1)
		assert.Equal(t, full.ID, plan.Draws[0].BatchID)
	})

	t.Run("shortfall when stock runs out", func(t *testing.T) {
		a := makeBatch("10", "3.00", datePtr(2026, 9, 1))
		b := makeBatch("5", "3.50", datePtr(2026, 10, 1))

		plan, err := planFEFO([]model.Batch{a, b}, decimal.RequireFromString("20"))
		require.NoError(t, err)

		assert.False(t, plan.fulfilled())
		assert.True(t, plan.Shortfall.Equal(decimal.RequireFromString("5")))
	})

	t.Run("fractional quantities", func(t *testing.T) {
		batch := makeBatch("2.500", "8.00", nil)

		plan, err := planFEFO([]model.Batch{batch}, decimal.RequireFromString("1.250"))
		require.NoError(t, err)

		require.Len(t, plan.Draws, 1)
		assert.True(t, plan.Draws[0].Remaining.Equal(decimal.RequireFromString("1.250")))
		assert.True(t, plan.TotalCost.Equal(decimal.RequireFromString("10.00")))
	})

	t.Run("rejects non-positive quantity", func(t *testing.T) {
		batch := makeBatch("10", "1.00", nil)

		_, err := planFEFO([]model.Batch{batch}, decimal.Zero)
		assert.Error(t, err)

		_, err = planFEFO([]model.Batch{batch}, decimal.RequireFromString("-1"))
		assert.Error(t, err)
	})

	t.Run("does not mutate the input slice", func(t *testing.T) {
		later := makeBatch("10", "1.00", datePtr(2026, 12, 1))
		sooner := makeBatch("10", "1.00", datePtr(2026, 9, 1))
		input := []model.Batch{later, sooner}

		_, err := planFEFO(input, decimal.RequireFromString("15"))
		require.NoError(t, err)

		assert.Equal(t, later.ID, input[0].ID)
		assert.Equal(t, sooner.ID, input[1].ID)
		assert.True(t, input[0].Remaining.Equal(decimal.RequireFromString("10")))
	})
}

func TestWeightedUnitCost(t *testing.T) {
	t.Run("averages across batches", func(t *testing.T) {
		// 5 units at 10.00 plus 3 units at 12.00 for a request of 8:
		// 86 / 8 = 10.75
		a := makeBatch("5", "10.00", datePtr(2026, 9, 1))
		b := makeBatch("10", "12.00", datePtr(2026, 10, 1))

		requested := decimal.RequireFromString("8")
		plan, err := planFEFO([]model.Batch{a, b}, requested)
		require.NoError(t, err)

		unitCost, err := weightedUnitCost(plan, requested)
		require.NoError(t, err)
		assert.True(t, unitCost.Equal(decimal.RequireFromString("10.75")))
	})

	t.Run("rounds to four decimals", func(t *testing.T) {
		a := makeBatch("1", "10.00", datePtr(2026, 9, 1))
		b := makeBatch("2", "11.00", datePtr(2026, 10, 1))

		requested := decimal.RequireFromString("3")
		plan, err := planFEFO([]model.Batch{a, b}, requested)
		require.NoError(t, err)

		// 32 / 3 = 10.6667 after rounding
		unitCost, err := weightedUnitCost(plan, requested)
		require.NoError(t, err)
		assert.True(t, unitCost.Equal(decimal.RequireFromString("10.6667")))
	})

	t.Run("fails loudly on an unfulfilled plan", func(t *testing.T) {
		a := makeBatch("5", "10.00", nil)

		requested := decimal.RequireFromString("8")
		plan, err := planFEFO([]model.Batch{a}, requested)
		require.NoError(t, err)
		require.False(t, plan.fulfilled())

		_, err = weightedUnitCost(plan, requested)
		assert.Error(t, err)
	})
}
