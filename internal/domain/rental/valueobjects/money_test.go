package valueobjects

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewMoney_DefaultCurrency(t *testing.T) {
	m := NewMoney(150_00, "")
	assert.Equal(t, DefaultCurrency, m.Currency())
	assert.Equal(t, int64(150_00), m.AmountInCents())
}

func TestMoney_Add(t *testing.T) {
	a := NewMoney(600_00, "IDR")
	b := NewMoney(40_00, "IDR")

	sum, err := a.Add(b)
	require.NoError(t, err)
	assert.Equal(t, int64(640_00), sum.AmountInCents())
}

func TestMoney_Add_CurrencyMismatch(t *testing.T) {
	a := NewMoney(100, "IDR")
	b := NewMoney(100, "USD")

	_, err := a.Add(b)
	assert.Error(t, err)
}

func TestMoney_MultiplyDays(t *testing.T) {
	rate := NewMoney(100_00, "IDR")
	assert.Equal(t, int64(600_00), rate.MultiplyDays(6).AmountInCents())
	assert.Equal(t, int64(0), rate.MultiplyDays(0).AmountInCents())
}

func TestMoney_Predicates(t *testing.T) {
	assert.True(t, Zero("IDR").IsZero())
	assert.True(t, NewMoney(1, "IDR").IsPositive())
	assert.True(t, NewMoney(-1, "IDR").IsNegative())
}

func TestMoney_String(t *testing.T) {
	assert.Equal(t, "640.00 IDR", NewMoney(640_00, "IDR").String())
	assert.Equal(t, "0.05 IDR", NewMoney(5, "IDR").String())
}
