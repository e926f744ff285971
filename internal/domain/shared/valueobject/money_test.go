package valueobject

import (
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewMoney(t *testing.T) {
	m, err := NewMoney(decimal.NewFromFloat(19.99), USD)
	require.NoError(t, err)
	assert.Equal(t, USD, m.Currency())
	assert.True(t, m.Amount().Equal(decimal.NewFromFloat(19.99)))
}

func TestNewMoney_EmptyCurrency(t *testing.T) {
	_, err := NewMoney(decimal.NewFromInt(1), "")
	assert.Error(t, err)
}

func TestNewMoneyFromString(t *testing.T) {
	m, err := NewMoneyFromString("10.50", USD)
	require.NoError(t, err)
	assert.True(t, m.Amount().Equal(decimal.NewFromFloat(10.50)))

	_, err = NewMoneyFromString("not-a-number", USD)
	assert.Error(t, err)
}

func TestMoney_Add(t *testing.T) {
	a := NewMoneyUSDFromFloat(10.10)
	b := NewMoneyUSDFromFloat(0.90)

	sum, err := a.Add(b)
	require.NoError(t, err)
	assert.True(t, sum.Amount().Equal(decimal.NewFromInt(11)))
}

func TestMoney_Add_CurrencyMismatch(t *testing.T) {
	a := NewMoneyUSDFromFloat(10)
	b, err := NewMoney(decimal.NewFromInt(5), EUR)
	require.NoError(t, err)

	_, err = a.Add(b)
	assert.Error(t, err)
}

func TestMoney_Sub(t *testing.T) {
	a := NewMoneyUSDFromFloat(10)
	b := NewMoneyUSDFromFloat(3.50)

	diff, err := a.Sub(b)
	require.NoError(t, err)
	assert.True(t, diff.Amount().Equal(decimal.NewFromFloat(6.50)))
}

func TestMoney_Mul(t *testing.T) {
	price := NewMoneyUSDFromFloat(9.99)
	total := price.Mul(decimal.NewFromInt(3))
	assert.True(t, total.Amount().Equal(decimal.NewFromFloat(29.97)))
}

func TestMoney_Comparisons(t *testing.T) {
	small := NewMoneyUSDFromFloat(1)
	big := NewMoneyUSDFromFloat(2)

	assert.True(t, small.LessThan(big))
	assert.True(t, big.GreaterThan(small))
	assert.False(t, small.Equal(big))
	assert.True(t, small.Equal(NewMoneyUSDFromFloat(1)))
	assert.True(t, ZeroUSD().IsZero())
	assert.True(t, big.IsPositive())

	neg, err := ZeroUSD().Sub(small)
	require.NoError(t, err)
	assert.True(t, neg.IsNegative())
}

func TestMoney_Round(t *testing.T) {
	// 10.00 * 1.13 accumulates without rounding; rounding is a display concern
	m := NewMoneyUSDFromFloat(10).Mul(decimal.NewFromFloat(1.13)).Mul(decimal.NewFromInt(3))
	assert.Equal(t, "33.90", m.Round(2).Amount().StringFixed(2))
}

func TestMoney_String(t *testing.T) {
	assert.Equal(t, "5.00 USD", NewMoneyUSDFromFloat(5).String())
}

func TestMoney_JSONRoundTrip(t *testing.T) {
	m := NewMoneyUSDFromFloat(42.42)
	data, err := json.Marshal(m)
	require.NoError(t, err)

	var decoded Money
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.True(t, m.Equal(decoded))
}
