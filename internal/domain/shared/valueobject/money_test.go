package valueobject

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRound2(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"already two places", "600.00", "600"},
		{"half rounds away from zero", "54.005", "54.01"},
		{"rounds down below half", "54.004", "54"},
		{"negative half rounds away from zero", "-54.005", "-54.01"},
		{"long fraction", "99.999999", "100"},
		{"zero", "0", "0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in, err := decimal.NewFromString(tt.input)
			require.NoError(t, err)
			want, err := decimal.NewFromString(tt.expected)
			require.NoError(t, err)
			assert.True(t, want.Equal(Round2(in)), "Round2(%s) = %s, want %s", tt.input, Round2(in), want)
		})
	}
}

func TestRound2_IsStable(t *testing.T) {
	d := decimal.NewFromFloat(1296.005)
	once := Round2(d)
	twice := Round2(once)
	assert.True(t, once.Equal(twice))
}

func TestNewMoney(t *testing.T) {
	m, err := NewMoney(decimal.NewFromInt(100), INR)
	require.NoError(t, err)
	assert.Equal(t, INR, m.Currency())
	assert.True(t, m.Amount().Equal(decimal.NewFromInt(100)))

	_, err = NewMoney(decimal.NewFromInt(100), "")
	assert.Error(t, err)
}

func TestMoney_AddSubtract(t *testing.T) {
	a := NewMoneyINRFromFloat(708.00)
	b := NewMoneyINRFromFloat(590.00)

	sum, err := a.Add(b)
	require.NoError(t, err)
	assert.True(t, sum.Amount().Equal(decimal.NewFromFloat(1298.00)))

	diff, err := sum.Subtract(b)
	require.NoError(t, err)
	assert.True(t, diff.Equal(a))
}

func TestMoney_CurrencyMismatch(t *testing.T) {
	a := NewMoneyINRFromFloat(10)
	b, err := NewMoney(decimal.NewFromInt(10), USD)
	require.NoError(t, err)

	_, err = a.Add(b)
	assert.Error(t, err)
	_, err = a.Subtract(b)
	assert.Error(t, err)
}

func TestMoney_Comparisons(t *testing.T) {
	a := NewMoneyINRFromFloat(100)
	b := NewMoneyINRFromFloat(200)

	assert.True(t, a.LessThan(b))
	assert.True(t, b.GreaterThan(a))
	assert.False(t, a.Equal(b))
	assert.True(t, ZeroINR().IsZero())
}

func TestMoney_String(t *testing.T) {
	m := NewMoneyINRFromFloat(1296.5)
	assert.Equal(t, "INR 1296.50", m.String())
}
