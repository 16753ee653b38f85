package kernel_test

import (
	"testing"

	"freightline/internal/core/domain/model/kernel"
	"freightline/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewMoney(t *testing.T) {
	t.Run("should create money with valid amount and currency", func(t *testing.T) {
		m, err := kernel.NewMoney(1500, "ETB")

		require.NoError(t, err)
		require.NoError(t, m.Validate())
		assert.Equal(t, int64(1500), m.Amount())
		assert.Equal(t, "ETB", m.Currency())
	})

	t.Run("should default empty currency", func(t *testing.T) {
		m, err := kernel.NewMoney(100, "")

		require.NoError(t, err)
		assert.Equal(t, kernel.DefaultCurrency, m.Currency())
	})

	t.Run("should allow zero amount", func(t *testing.T) {
		m, err := kernel.NewMoney(0, "USD")

		require.NoError(t, err)
		assert.True(t, m.IsZero())
		assert.False(t, m.IsPositive())
	})

	t.Run("should fail with negative amount", func(t *testing.T) {
		_, err := kernel.NewMoney(-1, "ETB")

		require.Error(t, err)
		assert.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})

	t.Run("should fail with non three-letter currency", func(t *testing.T) {
		_, err := kernel.NewMoney(100, "BIRR")

		require.Error(t, err)
		assert.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})
}

func TestMoney_Validate(t *testing.T) {
	t.Run("should fail for zero value", func(t *testing.T) {
		var m kernel.Money

		assert.Error(t, m.Validate())
	})

	t.Run("should pass for ZeroMoney", func(t *testing.T) {
		m := kernel.ZeroMoney("ETB")

		assert.NoError(t, m.Validate())
		assert.True(t, m.IsZero())
	})
}

func TestMoney_LessThan(t *testing.T) {
	t.Run("should compare amounts in the same currency", func(t *testing.T) {
		small, _ := kernel.NewMoney(100, "ETB")
		big, _ := kernel.NewMoney(200, "ETB")

		less, err := small.LessThan(big)
		require.NoError(t, err)
		assert.True(t, less)

		less, err = big.LessThan(small)
		require.NoError(t, err)
		assert.False(t, less)
	})

	t.Run("should fail across currencies", func(t *testing.T) {
		etb, _ := kernel.NewMoney(100, "ETB")
		usd, _ := kernel.NewMoney(100, "USD")

		_, err := etb.LessThan(usd)

		assert.ErrorIs(t, err, kernel.ErrCurrencyMismatch)
	})

	t.Run("should fail for unconstructed operand", func(t *testing.T) {
		m, _ := kernel.NewMoney(100, "ETB")
		var zero kernel.Money

		_, err := m.LessThan(zero)

		assert.Error(t, err)
	})
}

func TestMoney_Add(t *testing.T) {
	t.Run("should add amounts in the same currency", func(t *testing.T) {
		a, _ := kernel.NewMoney(100, "ETB")
		b, _ := kernel.NewMoney(250, "ETB")

		sum, err := a.Add(b)

		require.NoError(t, err)
		assert.Equal(t, int64(350), sum.Amount())
	})

	t.Run("should fail across currencies", func(t *testing.T) {
		a, _ := kernel.NewMoney(100, "ETB")
		b, _ := kernel.NewMoney(100, "USD")

		_, err := a.Add(b)

		assert.ErrorIs(t, err, kernel.ErrCurrencyMismatch)
	})
}

func TestMoney_Percent(t *testing.T) {
	t.Run("should compute percentage truncated toward zero", func(t *testing.T) {
		m, _ := kernel.NewMoney(1050, "ETB")

		fee, err := m.Percent(40)

		require.NoError(t, err)
		assert.Equal(t, int64(420), fee.Amount())
		assert.Equal(t, "ETB", fee.Currency())
	})

	t.Run("should truncate fractional results", func(t *testing.T) {
		m, _ := kernel.NewMoney(99, "ETB")

		half, err := m.Percent(50)

		require.NoError(t, err)
		assert.Equal(t, int64(49), half.Amount())
	})

	t.Run("should fail for percent out of range", func(t *testing.T) {
		m, _ := kernel.NewMoney(100, "ETB")

		_, err := m.Percent(101)
		assert.ErrorIs(t, err, errs.ErrValueIsOutOfRange)

		_, err = m.Percent(-1)
		assert.ErrorIs(t, err, errs.ErrValueIsOutOfRange)
	})
}

func TestMoney_IsEqual(t *testing.T) {
	a, _ := kernel.NewMoney(100, "ETB")
	b, _ := kernel.NewMoney(100, "ETB")
	c, _ := kernel.NewMoney(100, "USD")
	d, _ := kernel.NewMoney(200, "ETB")

	assert.True(t, a.IsEqual(b))
	assert.False(t, a.IsEqual(c))
	assert.False(t, a.IsEqual(d))
}

func TestMoney_String(t *testing.T) {
	m, _ := kernel.NewMoney(1000, "ETB")

	assert.Equal(t, "1000 ETB", m.String())
}
