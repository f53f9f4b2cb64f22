package service

import (
	"testing"

	"stockpro-backend/internal/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func makeMethod(name string) model.PaymentMethod {
	m := model.PaymentMethod{Name: name, IsActive: true}
	m.ID = uuid.New()
	return m
}

func makeSale(methodID uuid.UUID, total string) model.Sale {
	s := model.Sale{
		PaymentMethodID: methodID,
		Total:           decimal.RequireFromString(total),
	}
	s.ID = uuid.New()
	return s
}

func TestParseCountedAmount(t *testing.T) {
	cases := []struct {
		name    string
		raw     string
		want    string
		wantErr bool
	}{
		{name: "plain decimal", raw: "1234.50", want: "1234.50"},
		{name: "comma separator", raw: "1234,50", want: "1234.50"},
		{name: "integer", raw: "200", want: "200"},
		{name: "surrounding whitespace", raw: "  45.10 ", want: "45.10"},
		{name: "blank means zero", raw: "", want: "0"},
		{name: "whitespace only means zero", raw: "   ", want: "0"},
		{name: "garbage", raw: "abc", wantErr: true},
		{name: "two separators", raw: "1.234,50", wantErr: true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := parseCountedAmount(tc.raw)
			if tc.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.True(t, got.Equal(decimal.RequireFromString(tc.want)),
				"got %s want %s", got, tc.want)
		})
	}
}

func TestSumPendingByMethod(t *testing.T) {
	cash := makeMethod("Efectivo")
	card := makeMethod("Tarjeta")

	sales := []model.Sale{
		makeSale(cash.ID, "100.00"),
		makeSale(cash.ID, "50.50"),
		makeSale(card.ID, "75.00"),
	}

	total, byMethod := sumPendingByMethod(sales)

	assert.True(t, total.Equal(decimal.RequireFromString("225.50")))
	assert.True(t, byMethod[cash.ID].Equal(decimal.RequireFromString("150.50")))
	assert.True(t, byMethod[card.ID].Equal(decimal.RequireFromString("75.00")))
}

func TestStageDetails(t *testing.T) {
	cash := makeMethod("Efectivo")
	card := makeMethod("Tarjeta")
	wallet := makeMethod("Yape")
	methods := []model.PaymentMethod{wallet, cash, card}

	byMethod := map[uuid.UUID]decimal.Decimal{
		cash.ID: decimal.RequireFromString("150.00"),
		card.ID: decimal.RequireFromString("75.00"),
	}

	t.Run("one detail per method with pending sales, name ordered", func(t *testing.T) {
		counts := map[string]string{
			cash.ID.String(): "145.00",
			card.ID.String(): "80,00",
		}

		details, countedTotal, err := stageDetails(byMethod, methods, counts)
		require.NoError(t, err)

		require.Len(t, details, 2)
		// Efectivo before Tarjeta; Yape had no pending sales and is absent.
		assert.Equal(t, cash.ID, details[0].PaymentMethodID)
		assert.Equal(t, card.ID, details[1].PaymentMethodID)

		assert.True(t, details[0].Variance.Equal(decimal.RequireFromString("-5.00")))
		assert.True(t, details[1].Variance.Equal(decimal.RequireFromString("5.00")))
		assert.True(t, countedTotal.Equal(decimal.RequireFromString("225.00")))
	})

	t.Run("opposing variances cancel in the header total", func(t *testing.T) {
		counts := map[string]string{
			cash.ID.String(): "145.00",
			card.ID.String(): "80.00",
		}

		details, countedTotal, err := stageDetails(byMethod, methods, counts)
		require.NoError(t, err)

		systemTotal := decimal.RequireFromString("225.00")
		assert.True(t, countedTotal.Sub(systemTotal).IsZero())

		// Per-method rows keep the discrepancies visible.
		assert.False(t, details[0].Variance.IsZero())
		assert.False(t, details[1].Variance.IsZero())
	})

	t.Run("missing count treated as zero", func(t *testing.T) {
		counts := map[string]string{
			cash.ID.String(): "150.00",
		}

		details, _, err := stageDetails(byMethod, methods, counts)
		require.NoError(t, err)

		require.Len(t, details, 2)
		assert.True(t, details[1].CountedAmount.IsZero())
		assert.True(t, details[1].Variance.Equal(decimal.RequireFromString("-75.00")))
	})

	t.Run("unparseable count names the method", func(t *testing.T) {
		counts := map[string]string{
			cash.ID.String(): "one hundred",
		}

		_, _, err := stageDetails(byMethod, methods, counts)
		var countedErr *CountedAmountError
		require.ErrorAs(t, err, &countedErr)
		assert.Equal(t, "Efectivo", countedErr.Method)
		assert.Equal(t, "one hundred", countedErr.Value)
	})
}
