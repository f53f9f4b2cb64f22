package service

import (
	"fmt"
	"sort"

	"stockpro-backend/internal/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// batchDraw is one planned decrement against a batch during settlement.
type batchDraw struct {
	BatchID   uuid.UUID
	Taken     decimal.Decimal
	Remaining decimal.Decimal // quantity left in the batch after the draw
	UnitCost  decimal.Decimal
}

// fefoPlan is the outcome of planning a line's consumption: which batches to
// decrement, what the drawn units cost in aggregate, and how much of the
// request could not be covered.
type fefoPlan struct {
	Draws     []batchDraw
	TotalCost decimal.Decimal
	Shortfall decimal.Decimal
}

func (p fefoPlan) fulfilled() bool {
	return p.Shortfall.IsZero()
}

// planFEFO greedily allocates qty across the product's batches,
// soonest-expiry-first. Batches without an expiry date are treated as
// never expiring and consumed last. Batches with nothing remaining are
// skipped. The input slice is not mutated.
func planFEFO(batches []model.Batch, qty decimal.Decimal) (fefoPlan, error) {
	if !qty.IsPositive() {
		return fefoPlan{}, fmt.Errorf("quantity must be positive, got %s", qty)
	}

	ordered := make([]model.Batch, len(batches))
	copy(ordered, batches)
	sort.SliceStable(ordered, func(i, j int) bool {
		a, b := ordered[i].ExpiresAt, ordered[j].ExpiresAt
		switch {
		case a == nil:
			return false
		case b == nil:
			return true
		default:
			return a.Before(*b)
		}
	})

	plan := fefoPlan{TotalCost: decimal.Zero}
	left := qty
	for _, batch := range ordered {
		if !left.IsPositive() {
			break
		}
		if !batch.Remaining.IsPositive() {
			continue
		}
		take := decimal.Min(left, batch.Remaining)
		plan.Draws = append(plan.Draws, batchDraw{
			BatchID:   batch.ID,
			Taken:     take,
			Remaining: batch.Remaining.Sub(take),
			UnitCost:  batch.UnitCost,
		})
		plan.TotalCost = plan.TotalCost.Add(take.Mul(batch.UnitCost))
		left = left.Sub(take)
	}
	plan.Shortfall = left
	return plan, nil
}

// weightedUnitCost divides the accumulated draw cost by the requested
// quantity. The consumed quantity must equal the requested quantity; a
// mismatch means batch state changed under us and the average would be a
// lie, so fail loudly instead.
func weightedUnitCost(plan fefoPlan, requested decimal.Decimal) (decimal.Decimal, error) {
	if !plan.fulfilled() {
		return decimal.Zero, fmt.Errorf("consumed quantity %s does not match requested %s",
			requested.Sub(plan.Shortfall), requested)
	}
	return plan.TotalCost.Div(requested).Round(4), nil
}
