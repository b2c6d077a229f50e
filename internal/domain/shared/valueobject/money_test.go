package valueobject

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewMoney(t *testing.T) {
	t.Run("valid currency", func(t *testing.T) {
		m, err := NewMoney(decimal.NewFromFloat(29.99), USD)
		require.NoError(t, err)
		assert.Equal(t, USD, m.Currency())
		assert.True(t, m.Amount().Equal(decimal.NewFromFloat(29.99)))
	})

	t.Run("empty currency", func(t *testing.T) {
		_, err := NewMoney(decimal.Zero, "")
		assert.Error(t, err)
	})

	t.Run("unsupported currency", func(t *testing.T) {
		_, err := NewMoney(decimal.Zero, "BTC")
		assert.Error(t, err)
	})
}

func TestMoney_ApplyDiscountPercent(t *testing.T) {
	t.Run("ten percent off USD rounds to two decimals", func(t *testing.T) {
		m := MustMoney(decimal.NewFromFloat(29.99), USD)
		got, err := m.ApplyDiscountPercent(decimal.NewFromInt(10))
		require.NoError(t, err)
		// 29.99 * 0.9 = 26.991, half-up to 2dp
		assert.Equal(t, "26.99", got.Amount().StringFixed(2))
	})

	t.Run("XOF rounds to whole units", func(t *testing.T) {
		m := MustMoney(decimal.NewFromInt(15000), XOF)
		got, err := m.ApplyDiscountPercent(decimal.NewFromInt(25))
		require.NoError(t, err)
		assert.Equal(t, "11250", got.Amount().StringFixed(0))
	})

	t.Run("zero percent is identity after rounding", func(t *testing.T) {
		m := MustMoney(decimal.NewFromFloat(10.00), EUR)
		got, err := m.ApplyDiscountPercent(decimal.Zero)
		require.NoError(t, err)
		assert.True(t, got.Equal(m.Round()))
	})

	t.Run("negative percent rejected", func(t *testing.T) {
		m := MustMoney(decimal.NewFromInt(10), USD)
		_, err := m.ApplyDiscountPercent(decimal.NewFromInt(-1))
		assert.Error(t, err)
	})

	t.Run("over one hundred percent rejected", func(t *testing.T) {
		m := MustMoney(decimal.NewFromInt(10), USD)
		_, err := m.ApplyDiscountPercent(decimal.NewFromInt(101))
		assert.Error(t, err)
	})
}

func TestMoney_Add(t *testing.T) {
	a := MustMoney(decimal.NewFromFloat(15.00), USD)
	b := MustMoney(decimal.NewFromFloat(30.00), USD)

	sum, err := a.Add(b)
	require.NoError(t, err)
	assert.Equal(t, "45.00", sum.Amount().StringFixed(2))

	_, err = a.Add(MustMoney(decimal.NewFromInt(1), EUR))
	assert.Error(t, err, "currency mismatch must be rejected")
}

func TestMoney_String(t *testing.T) {
	assert.Equal(t, "26.99 USD", MustMoney(decimal.NewFromFloat(26.99), USD).String())
	assert.Equal(t, "11250 XOF", MustMoney(decimal.NewFromInt(11250), XOF).String())
}
